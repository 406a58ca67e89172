package profiles_test

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"path/filepath"
	"testing"

	"github.com/girder/girderctl/cmd/girderctl/config/profiles"
	"github.com/girder/girderctl/pkg/utils/try"
)

func TestGirderProfile_Verify(t *testing.T) {
	fakeCert := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{
		Type: "CERTIFICATE", Bytes: []byte("fake certificate"),
	}))

	for name, testcase := range map[string]struct {
		profile profiles.GirderProfile
		ok      bool
	}{
		"a profile with an absolute api root is valid": {
			profile: profiles.GirderProfile{ApiRoot: "http://girder.example.com:8080/api/v1"},
			ok:      true,
		},
		"a profile with an api key is valid": {
			profile: profiles.GirderProfile{
				ApiRoot: "https://girder.example.com/api/v1",
				ApiKey:  "some-key",
			},
			ok: true,
		},
		"a profile with a PEM ca cert is valid": {
			profile: profiles.GirderProfile{
				ApiRoot: "https://girder.example.com/api/v1",
				Cert:    profiles.GirderCert{CA: fakeCert},
			},
			ok: true,
		},
		"a profile without an api root is invalid": {
			profile: profiles.GirderProfile{},
			ok:      false,
		},
		"a profile with a relative api root is invalid": {
			profile: profiles.GirderProfile{ApiRoot: "api/v1"},
			ok:      false,
		},
		"a profile with a non-PEM ca cert is invalid": {
			profile: profiles.GirderProfile{
				ApiRoot: "https://girder.example.com/api/v1",
				Cert:    profiles.GirderCert{CA: "not a cert"},
			},
			ok: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := testcase.profile.Verify()
			if testcase.ok && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !testcase.ok && !errors.Is(err, profiles.ErrProfileInvalid) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProfileStore(t *testing.T) {
	t.Run("it saves and loads back profiles", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".girder", "profile")

		store := profiles.ProfileStore{
			"dev": {
				ApiRoot: "http://localhost:8080/api/v1",
				ApiKey:  "dev-key",
			},
			"prod": {
				ApiRoot: "https://girder.example.com/api/v1",
			},
		}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		loaded := try.To(profiles.LoadProfileStore(path)).OrFatal(t)
		if len(loaded) != 2 {
			t.Fatalf("wrong number of profiles: %d", len(loaded))
		}
		if *loaded["dev"] != *store["dev"] || *loaded["prod"] != *store["prod"] {
			t.Errorf("loaded store does not match: %v", loaded)
		}
	})

	t.Run("loading a missing store is ErrProfileStoreNotFound", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no", "such", "file")
		if _, err := profiles.LoadProfileStore(path); !errors.Is(err, profiles.ErrProfileStoreNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("saving twice updates in place", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile")

		store := profiles.ProfileStore{
			"dev": {ApiRoot: "http://localhost:8080/api/v1"},
		}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		store["dev"].ApiKey = "rotated-key"
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		loaded := try.To(profiles.LoadProfileStore(path)).OrFatal(t)
		if loaded["dev"].ApiKey != "rotated-key" {
			t.Errorf("store is not updated: %v", loaded["dev"])
		}
	})
}
