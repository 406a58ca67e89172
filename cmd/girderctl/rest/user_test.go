package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/girder/girderctl/api/types/users"
	gprof "github.com/girder/girderctl/cmd/girderctl/config/profiles"
	grst "github.com/girder/girderctl/cmd/girderctl/rest"
	"github.com/girder/girderctl/internal/testutils/girder"
	"github.com/girder/girderctl/pkg/utils/try"
)

func TestAuthenticate(t *testing.T) {
	t.Run("it sends basic auth and keeps the token for later requests", func(t *testing.T) {
		var authRequest, laterRequest *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/v1/user/authentication":
				authRequest = r
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"authToken": {"token": "fake-token", "expires": "2026-01-01T00:00:00+00:00"},
					"user": {"_id": "user-1", "login": "admin", "admin": true}
				}`))
			case "/api/v1/system/version":
				laterRequest = r
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"release": "2.0.0"}`))
			default:
				t.Errorf("unexpected request: %s", r.URL.Path)
			}
		}))
		defer server.Close()

		profile := gprof.GirderProfile{ApiRoot: server.URL + "/api/v1"}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		auth := try.To(testee.Authenticate(
			context.Background(), "admin", "s3cret",
		)).OrFatal(t)

		if auth.AuthToken.Token != "fake-token" {
			t.Errorf("wrong token: %s", auth.AuthToken.Token)
		}
		if login, password, ok := authRequest.BasicAuth(); !ok || login != "admin" || password != "s3cret" {
			t.Errorf("wrong basic auth: %s:%s (ok=%v)", login, password, ok)
		}

		try.To(testee.GetVersion(context.Background())).OrFatal(t)
		if token := laterRequest.Header.Get("Girder-Token"); token != "fake-token" {
			t.Errorf("token is not sent on later requests: %s", token)
		}
	})

	t.Run("when the login is rejected, it returns error", func(t *testing.T) {
		server := girder.Server{Token: "fake-token"}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t)}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		if _, err := testee.Authenticate(context.Background(), "nobody", "wrong"); err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}

func TestAuthenticateWithKey(t *testing.T) {
	t.Run("it exchanges the profile's api key for a token", func(t *testing.T) {
		server := girder.Server{ApiKey: "the-key", Token: "fake-token"}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t), ApiKey: "the-key"}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		token := try.To(testee.AuthenticateWithKey(context.Background())).OrFatal(t)
		if token.Token != "fake-token" {
			t.Errorf("wrong token: %s", token.Token)
		}

		// the token opens admin endpoints.
		try.To(testee.ListAssetstores(context.Background())).OrFatal(t)
	})

	t.Run("when the profile has no api key, it returns error without a request", func(t *testing.T) {
		server := girder.Server{Token: "fake-token"}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t)}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		if _, err := testee.AuthenticateWithKey(context.Background()); err == nil {
			t.Error("error is expected, but not returned")
		}
	})

	t.Run("when the key is rejected, it returns error", func(t *testing.T) {
		server := girder.Server{ApiKey: "the-key", Token: "fake-token"}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t), ApiKey: "wrong-key"}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		if _, err := testee.AuthenticateWithKey(context.Background()); err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}

func userSpecFixture() users.Spec {
	return users.Spec{
		Login:     "admin",
		Email:     "admin@example.com",
		FirstName: "Ad",
		LastName:  "Min",
		Password:  "s3cret",
		Admin:     true,
	}
}

func TestFindAndCreateUsers(t *testing.T) {
	t.Run("it registers a user and finds it back", func(t *testing.T) {
		server := girder.Server{}
		profile := gprof.GirderProfile{ApiRoot: server.Start(t)}
		testee := try.To(grst.NewClient(&profile)).OrFatal(t)

		created := try.To(testee.CreateUser(context.Background(), userSpecFixture())).OrFatal(t)
		if created.Login != "admin" || !created.Admin {
			t.Errorf("wrong user is created: %v", created)
		}

		found := try.To(testee.FindUsers(context.Background(), "admin")).OrFatal(t)
		if len(found) != 1 || !found[0].Equal(created) {
			t.Errorf("created user is not found back: %v", found)
		}

		if none := try.To(testee.FindUsers(context.Background(), "nobody")).OrFatal(t); len(none) != 0 {
			t.Errorf("unexpected users are found: %v", none)
		}
	})
}
