// Package girder is a fake Girder server for tests.
//
// It speaks just enough of the REST API for the client in this repo:
// collections, users and token exchange, assetstores, plugins and the
// version endpoint. State is plain exported fields, so a test can
// preload documents and inspect what a run changed.
package girder

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/girder/girderctl/api/types/assetstores"
	"github.com/girder/girderctl/api/types/collections"
	"github.com/girder/girderctl/api/types/misc/rfctime"
	"github.com/girder/girderctl/api/types/plugins"
	"github.com/girder/girderctl/api/types/system"
	"github.com/girder/girderctl/api/types/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Account is a login & password pair known to the fake server.
type Account struct {
	Password string
	User     users.Detail
}

type Server struct {
	// ApiKey accepted at POST api_key/token. Empty rejects all keys.
	ApiKey string

	// Token issued on successful authentication.
	//
	// When non-empty, admin endpoints (assetstore, system/plugins)
	// reject requests without it in the Girder-Token header.
	Token string

	Accounts    map[string]Account
	Collections map[string]map[string]any
	Assetstores []assetstores.Detail
	Plugins     plugins.Status
	Version     system.Version

	// records of state-changing calls.
	CreatedCollections []collections.Spec
	CreatedUsers       []users.Spec
	CreatedAssetstores []assetstores.Spec
	CurrentAssetstores []string
	PluginSets         [][]string

	serial int
}

// Start serves the fake api until the test ends.
//
// The returned URL points at the api root, as a profile's apiRoot
// field expects.
func (s *Server) Start(t *testing.T) string {
	t.Helper()

	if s.Accounts == nil {
		s.Accounts = map[string]Account{}
	}
	if s.Collections == nil {
		s.Collections = map[string]map[string]any{}
	}
	if s.Plugins.All == nil {
		s.Plugins.All = map[string]plugins.Meta{}
	}

	e := echo.New()
	e.Logger.SetLevel(log.OFF)
	e.HideBanner = true

	v1 := e.Group("/api/v1")
	v1.GET("/collection/:id", s.getCollection)
	v1.GET("/collection", s.findCollections)
	v1.POST("/collection", s.createCollection)
	v1.GET("/user/authentication", s.authenticate)
	v1.POST("/api_key/token", s.apiKeyToken)
	v1.GET("/user", s.findUsers)
	v1.POST("/user", s.createUser)
	v1.GET("/assetstore", s.listAssetstores, s.adminOnly)
	v1.POST("/assetstore", s.createAssetstore, s.adminOnly)
	v1.PUT("/assetstore/:id", s.updateAssetstore, s.adminOnly)
	v1.GET("/system/plugins", s.getPlugins, s.adminOnly)
	v1.PUT("/system/plugins", s.setPlugins, s.adminOnly)
	v1.GET("/system/version", s.getVersion)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func (s *Server) nextId(prefix string) string {
	s.serial += 1
	return fmt.Sprintf("%s-%06d", prefix, s.serial)
}

func girderError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{
		"message": message, "type": "rest",
	})
}

func (s *Server) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Token != "" && c.Request().Header.Get("Girder-Token") != s.Token {
			return girderError(c, http.StatusUnauthorized, "You must be logged in.")
		}
		return next(c)
	}
}

func (s *Server) getCollection(c echo.Context) error {
	id := c.Param("id")
	doc, ok := s.Collections[id]
	if !ok {
		return girderError(c, http.StatusBadRequest, "Invalid Collection id ("+id+").")
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) findCollections(c echo.Context) error {
	text := c.QueryParam("text")
	found := []map[string]any{}
	for _, doc := range s.Collections {
		if name, ok := doc["name"].(string); !ok || text != "" && name != text {
			continue
		}
		found = append(found, doc)
	}
	slices.SortFunc(found, func(a, b map[string]any) int {
		an, _ := a["name"].(string)
		bn, _ := b["name"].(string)
		if an < bn {
			return -1
		} else if bn < an {
			return 1
		}
		return 0
	})
	return c.JSON(http.StatusOK, found)
}

func (s *Server) createCollection(c echo.Context) error {
	public, _ := strconv.ParseBool(c.FormValue("public"))
	spec := collections.Spec{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Public:      public,
	}
	s.CreatedCollections = append(s.CreatedCollections, spec)

	id := s.nextId("col")
	doc := map[string]any{
		"_id":         id,
		"name":        spec.Name,
		"description": spec.Description,
		"public":      spec.Public,
		"size":        float64(0),
		"created":     rfctime.RFC3339(time.Now()).String(),
	}
	s.Collections[id] = doc
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) authenticate(c echo.Context) error {
	login, password, ok := c.Request().BasicAuth()
	account, found := s.Accounts[login]
	if !ok || !found || account.Password != password {
		return girderError(c, http.StatusUnauthorized, "Login failed.")
	}
	return c.JSON(http.StatusOK, users.Authentication{
		AuthToken: users.Token{
			Token:   s.Token,
			Expires: rfctime.RFC3339(time.Now().Add(24 * time.Hour)),
		},
		User: account.User,
	})
}

func (s *Server) apiKeyToken(c echo.Context) error {
	if s.ApiKey == "" || c.FormValue("key") != s.ApiKey {
		return girderError(c, http.StatusBadRequest, "Invalid API key.")
	}
	return c.JSON(http.StatusOK, map[string]users.Token{
		"authToken": {
			Token:   s.Token,
			Expires: rfctime.RFC3339(time.Now().Add(24 * time.Hour)),
		},
	})
}

func (s *Server) findUsers(c echo.Context) error {
	text := c.QueryParam("text")
	found := []users.Detail{}
	for _, account := range s.Accounts {
		if text != "" && account.User.Login != text {
			continue
		}
		found = append(found, account.User)
	}
	slices.SortFunc(found, func(a, b users.Detail) int {
		if a.Login < b.Login {
			return -1
		} else if b.Login < a.Login {
			return 1
		}
		return 0
	})
	return c.JSON(http.StatusOK, found)
}

func (s *Server) createUser(c echo.Context) error {
	admin, _ := strconv.ParseBool(c.FormValue("admin"))
	spec := users.Spec{
		Login:     c.FormValue("login"),
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Password:  c.FormValue("password"),
		Admin:     admin,
	}
	if _, taken := s.Accounts[spec.Login]; taken {
		return girderError(c, http.StatusBadRequest, "That login is already registered.")
	}
	s.CreatedUsers = append(s.CreatedUsers, spec)

	detail := users.Detail{
		Id:        s.nextId("user"),
		Login:     spec.Login,
		Email:     spec.Email,
		FirstName: spec.FirstName,
		LastName:  spec.LastName,
		Admin:     spec.Admin,
		Created:   rfctime.RFC3339(time.Now()),
	}
	s.Accounts[spec.Login] = Account{Password: spec.Password, User: detail}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) listAssetstores(c echo.Context) error {
	found := s.Assetstores
	if found == nil {
		found = []assetstores.Detail{}
	}
	return c.JSON(http.StatusOK, found)
}

func (s *Server) createAssetstore(c echo.Context) error {
	typ, err := strconv.Atoi(c.FormValue("type"))
	if err != nil {
		return girderError(c, http.StatusBadRequest, "Invalid assetstore type.")
	}
	spec := assetstores.Spec{
		Name: c.FormValue("name"),
		Type: assetstores.Type(typ),
		Root: c.FormValue("root"),
	}
	s.CreatedAssetstores = append(s.CreatedAssetstores, spec)

	detail := assetstores.Detail{
		Id:      s.nextId("store"),
		Name:    spec.Name,
		Type:    spec.Type,
		Root:    spec.Root,
		Current: len(s.Assetstores) == 0,
		Created: rfctime.RFC3339(time.Now()),
	}
	s.Assetstores = append(s.Assetstores, detail)
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) updateAssetstore(c echo.Context) error {
	id := c.Param("id")
	nth := slices.IndexFunc(s.Assetstores, func(a assetstores.Detail) bool {
		return a.Id == id
	})
	if nth < 0 {
		return girderError(c, http.StatusBadRequest, "Invalid assetstore id ("+id+").")
	}

	store := &s.Assetstores[nth]
	store.Name = c.FormValue("name")
	store.Root = c.FormValue("root")
	if current, _ := strconv.ParseBool(c.FormValue("current")); current {
		for i := range s.Assetstores {
			s.Assetstores[i].Current = i == nth
		}
		s.CurrentAssetstores = append(s.CurrentAssetstores, id)
	}
	return c.JSON(http.StatusOK, *store)
}

func (s *Server) getPlugins(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Plugins)
}

func (s *Server) setPlugins(c echo.Context) error {
	names := []string{}
	if err := json.Unmarshal([]byte(c.FormValue("plugins")), &names); err != nil {
		return girderError(c, http.StatusBadRequest, "Invalid plugins list.")
	}
	for _, name := range names {
		if _, known := s.Plugins.All[name]; !known {
			return girderError(c, http.StatusBadRequest, "Invalid plugin name: "+name)
		}
	}
	s.Plugins.Enabled = names
	s.PluginSets = append(s.PluginSets, names)
	return c.JSON(http.StatusOK, names)
}

func (s *Server) getVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Version)
}
