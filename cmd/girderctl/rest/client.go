package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	apiassetstores "github.com/girder/girderctl/api/types/assetstores"
	apicollections "github.com/girder/girderctl/api/types/collections"
	apiplugins "github.com/girder/girderctl/api/types/plugins"
	apisystem "github.com/girder/girderctl/api/types/system"
	apiusers "github.com/girder/girderctl/api/types/users"
	gprof "github.com/girder/girderctl/cmd/girderctl/config/profiles"
	"github.com/girder/girderctl/pkg/utils"
)

// GirderClient talks to the REST API of a Girder server.
type GirderClient interface {
	// GetCollection gets a Collection with given id.
	//
	// # Args
	//
	// - context.Context
	//
	// - string: id of the Collection to be found
	//
	// # Returns
	//
	// - collections.Detail: the found Collection
	//
	// - error
	GetCollection(ctx context.Context, id string) (apicollections.Detail, error)

	// GetCollectionRaw gets a Collection with given id, undecoded.
	//
	// The result mirrors the response body verbatim, field by field.
	// Use GetCollection when you want a typed document.
	GetCollectionRaw(ctx context.Context, id string) (map[string]any, error)

	// FindCollections finds Collections matching text.
	//
	// Empty text matches all Collections readable by the caller.
	FindCollections(ctx context.Context, text string, limit int, offset int) ([]apicollections.Detail, error)

	// CreateCollection registers a new Collection.
	CreateCollection(ctx context.Context, spec apicollections.Spec) (apicollections.Detail, error)

	// Authenticate exchanges login & password for a session token.
	//
	// On success, the token is used for subsequent requests.
	Authenticate(ctx context.Context, login string, password string) (apiusers.Authentication, error)

	// AuthenticateWithKey exchanges the profile's api key for a session token.
	//
	// On success, the token is used for subsequent requests.
	AuthenticateWithKey(ctx context.Context) (apiusers.Token, error)

	// FindUsers finds Users matching text (login or name).
	FindUsers(ctx context.Context, text string) ([]apiusers.Detail, error)

	// CreateUser registers a new User.
	//
	// On a freshly provisioned server, the first User created this way
	// becomes the site admin.
	CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error)

	// ListAssetstores lists all Assetstores. Admin only.
	ListAssetstores(ctx context.Context) ([]apiassetstores.Detail, error)

	// CreateAssetstore registers a new Assetstore. Admin only.
	CreateAssetstore(ctx context.Context, spec apiassetstores.Spec) (apiassetstores.Detail, error)

	// SetAssetstoreCurrent marks the Assetstore as the current one,
	// where new uploads land. Admin only.
	SetAssetstoreCurrent(ctx context.Context, store apiassetstores.Detail) (apiassetstores.Detail, error)

	// GetPlugins gets the plugin state of the server. Admin only.
	GetPlugins(ctx context.Context) (apiplugins.Status, error)

	// SetPlugins replaces the set of enabled plugins. Admin only.
	//
	// # Returns
	//
	// - []string: names of plugins enabled after the change.
	// A restart of the server may be needed before they load.
	//
	// - error
	SetPlugins(ctx context.Context, names []string) ([]string, error)

	// GetVersion gets the server version.
	GetVersion(ctx context.Context) (apisystem.Version, error)
}

type client struct {
	httpclient *http.Client
	api        string
	apiKey     string

	mu    sync.Mutex
	token string
}

// create new Girder client for GirderProfile
//
// # Args
//
// - *gprof.GirderProfile
//
// # Return
//
// - GirderClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *gprof.GirderProfile) (GirderClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	c := &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
		apiKey:     prof.ApiKey,
	}

	return c, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

// newRequest builds a request with the session token header, if a token is held.
func (c *client) newRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Girder-Token", token)
	}
	return req, nil
}

func (c *client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// form builds an x-www-form-urlencoded body from parameters.
func form(params map[string]string) io.Reader {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return strings.NewReader(q.Encode())
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
