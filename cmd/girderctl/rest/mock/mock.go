package mock

import (
	"context"
	"testing"

	apiassetstores "github.com/girder/girderctl/api/types/assetstores"
	apicollections "github.com/girder/girderctl/api/types/collections"
	apiplugins "github.com/girder/girderctl/api/types/plugins"
	apisystem "github.com/girder/girderctl/api/types/system"
	apiusers "github.com/girder/girderctl/api/types/users"
	"github.com/girder/girderctl/cmd/girderctl/rest"
)

type FindCollectionsArgs struct {
	Text   string
	Limit  int
	Offset int
}

type AuthenticateArgs struct {
	Login    string
	Password string
}

func New(t *testing.T) *mockGirderClient {
	return &mockGirderClient{t: t}
}

type mockGirderClient struct {
	t *testing.T

	Impl struct {
		GetCollection        func(ctx context.Context, id string) (apicollections.Detail, error)
		GetCollectionRaw     func(ctx context.Context, id string) (map[string]any, error)
		FindCollections      func(ctx context.Context, text string, limit int, offset int) ([]apicollections.Detail, error)
		CreateCollection     func(ctx context.Context, spec apicollections.Spec) (apicollections.Detail, error)
		Authenticate         func(ctx context.Context, login string, password string) (apiusers.Authentication, error)
		AuthenticateWithKey  func(ctx context.Context) (apiusers.Token, error)
		FindUsers            func(ctx context.Context, text string) ([]apiusers.Detail, error)
		CreateUser           func(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error)
		ListAssetstores      func(ctx context.Context) ([]apiassetstores.Detail, error)
		CreateAssetstore     func(ctx context.Context, spec apiassetstores.Spec) (apiassetstores.Detail, error)
		SetAssetstoreCurrent func(ctx context.Context, store apiassetstores.Detail) (apiassetstores.Detail, error)
		GetPlugins           func(ctx context.Context) (apiplugins.Status, error)
		SetPlugins           func(ctx context.Context, names []string) ([]string, error)
		GetVersion           func(ctx context.Context) (apisystem.Version, error)
	}

	Calls struct {
		GetCollection        []string
		GetCollectionRaw     []string
		FindCollections      []FindCollectionsArgs
		CreateCollection     []apicollections.Spec
		Authenticate         []AuthenticateArgs
		AuthenticateWithKey  int
		FindUsers            []string
		CreateUser           []apiusers.Spec
		ListAssetstores      int
		CreateAssetstore     []apiassetstores.Spec
		SetAssetstoreCurrent []apiassetstores.Detail
		GetPlugins           int
		SetPlugins           [][]string
		GetVersion           int
	}
}

var _ rest.GirderClient = &mockGirderClient{}

func (m *mockGirderClient) GetCollection(ctx context.Context, id string) (apicollections.Detail, error) {
	m.t.Helper()

	m.Calls.GetCollection = append(m.Calls.GetCollection, id)
	if m.Impl.GetCollection == nil {
		m.t.Fatal("GetCollection is not ready to be called")
	}
	return m.Impl.GetCollection(ctx, id)
}

func (m *mockGirderClient) GetCollectionRaw(ctx context.Context, id string) (map[string]any, error) {
	m.t.Helper()

	m.Calls.GetCollectionRaw = append(m.Calls.GetCollectionRaw, id)
	if m.Impl.GetCollectionRaw == nil {
		m.t.Fatal("GetCollectionRaw is not ready to be called")
	}
	return m.Impl.GetCollectionRaw(ctx, id)
}

func (m *mockGirderClient) FindCollections(ctx context.Context, text string, limit int, offset int) ([]apicollections.Detail, error) {
	m.t.Helper()

	m.Calls.FindCollections = append(
		m.Calls.FindCollections,
		FindCollectionsArgs{Text: text, Limit: limit, Offset: offset},
	)
	if m.Impl.FindCollections == nil {
		m.t.Fatal("FindCollections is not ready to be called")
	}
	return m.Impl.FindCollections(ctx, text, limit, offset)
}

func (m *mockGirderClient) CreateCollection(ctx context.Context, spec apicollections.Spec) (apicollections.Detail, error) {
	m.t.Helper()

	m.Calls.CreateCollection = append(m.Calls.CreateCollection, spec)
	if m.Impl.CreateCollection == nil {
		m.t.Fatal("CreateCollection is not ready to be called")
	}
	return m.Impl.CreateCollection(ctx, spec)
}

func (m *mockGirderClient) Authenticate(ctx context.Context, login string, password string) (apiusers.Authentication, error) {
	m.t.Helper()

	m.Calls.Authenticate = append(m.Calls.Authenticate, AuthenticateArgs{Login: login, Password: password})
	if m.Impl.Authenticate == nil {
		m.t.Fatal("Authenticate is not ready to be called")
	}
	return m.Impl.Authenticate(ctx, login, password)
}

func (m *mockGirderClient) AuthenticateWithKey(ctx context.Context) (apiusers.Token, error) {
	m.t.Helper()

	m.Calls.AuthenticateWithKey += 1
	if m.Impl.AuthenticateWithKey == nil {
		m.t.Fatal("AuthenticateWithKey is not ready to be called")
	}
	return m.Impl.AuthenticateWithKey(ctx)
}

func (m *mockGirderClient) FindUsers(ctx context.Context, text string) ([]apiusers.Detail, error) {
	m.t.Helper()

	m.Calls.FindUsers = append(m.Calls.FindUsers, text)
	if m.Impl.FindUsers == nil {
		m.t.Fatal("FindUsers is not ready to be called")
	}
	return m.Impl.FindUsers(ctx, text)
}

func (m *mockGirderClient) CreateUser(ctx context.Context, spec apiusers.Spec) (apiusers.Detail, error) {
	m.t.Helper()

	m.Calls.CreateUser = append(m.Calls.CreateUser, spec)
	if m.Impl.CreateUser == nil {
		m.t.Fatal("CreateUser is not ready to be called")
	}
	return m.Impl.CreateUser(ctx, spec)
}

func (m *mockGirderClient) ListAssetstores(ctx context.Context) ([]apiassetstores.Detail, error) {
	m.t.Helper()

	m.Calls.ListAssetstores += 1
	if m.Impl.ListAssetstores == nil {
		m.t.Fatal("ListAssetstores is not ready to be called")
	}
	return m.Impl.ListAssetstores(ctx)
}

func (m *mockGirderClient) CreateAssetstore(ctx context.Context, spec apiassetstores.Spec) (apiassetstores.Detail, error) {
	m.t.Helper()

	m.Calls.CreateAssetstore = append(m.Calls.CreateAssetstore, spec)
	if m.Impl.CreateAssetstore == nil {
		m.t.Fatal("CreateAssetstore is not ready to be called")
	}
	return m.Impl.CreateAssetstore(ctx, spec)
}

func (m *mockGirderClient) SetAssetstoreCurrent(ctx context.Context, store apiassetstores.Detail) (apiassetstores.Detail, error) {
	m.t.Helper()

	m.Calls.SetAssetstoreCurrent = append(m.Calls.SetAssetstoreCurrent, store)
	if m.Impl.SetAssetstoreCurrent == nil {
		m.t.Fatal("SetAssetstoreCurrent is not ready to be called")
	}
	return m.Impl.SetAssetstoreCurrent(ctx, store)
}

func (m *mockGirderClient) GetPlugins(ctx context.Context) (apiplugins.Status, error) {
	m.t.Helper()

	m.Calls.GetPlugins += 1
	if m.Impl.GetPlugins == nil {
		m.t.Fatal("GetPlugins is not ready to be called")
	}
	return m.Impl.GetPlugins(ctx)
}

func (m *mockGirderClient) SetPlugins(ctx context.Context, names []string) ([]string, error) {
	m.t.Helper()

	m.Calls.SetPlugins = append(m.Calls.SetPlugins, names)
	if m.Impl.SetPlugins == nil {
		m.t.Fatal("SetPlugins is not ready to be called")
	}
	return m.Impl.SetPlugins(ctx, names)
}

func (m *mockGirderClient) GetVersion(ctx context.Context) (apisystem.Version, error) {
	m.t.Helper()

	m.Calls.GetVersion += 1
	if m.Impl.GetVersion == nil {
		m.t.Fatal("GetVersion is not ready to be called")
	}
	return m.Impl.GetVersion(ctx)
}
