package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/girder/girderctl/api/types/plugins"
	"github.com/girder/girderctl/api/types/users"
	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/cmd/girderctl/rest/mock"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/internal/commandline"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/logger"
	"github.com/girder/girderctl/cmd/girderctl/subcommands/provision/apply"
)

func writePlaybook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playbook.yaml")
	if err := os.WriteFile(path, []byte(content), os.FileMode(0644)); err != nil {
		t.Fatal(err)
	}
	return path
}

const playbookFixture = `
tasks:
  - name: ensure admin
    user:
      login: ${admin_login}
      password: s3cret
      email: admin@example.com
      first_name: Ad
      last_name: Min
      admin: true
  - name: enable plugins
    plugins:
      names: [oauth]
`

func TestApplyTask(t *testing.T) {
	girderEnv := env.GirderEnv{Vars: map[string]string{"admin_login": "admin"}}

	t.Run("it applies unsatisfied steps of the playbook", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.FindUsers = func(ctx context.Context, text string) ([]users.Detail, error) {
			return []users.Detail{{Id: "user-1", Login: "admin", Admin: true}}, nil
		}
		client.Impl.GetPlugins = func(ctx context.Context) (plugins.Status, error) {
			return plugins.Status{
				All:     map[string]plugins.Meta{"oauth": {}},
				Enabled: []string{},
			}, nil
		}
		client.Impl.SetPlugins = func(ctx context.Context, names []string) ([]string, error) {
			return names, nil
		}

		cl := commandline.MockCommandline[apply.Flag]{
			Fullname_: "girderctl provision apply",
			Flags_:    apply.Flag{},
			Args_: map[string][]string{
				apply.ARG_PLAYBOOK: {writePlaybook(t, playbookFixture)},
			},
			Stdout_: new(strings.Builder),
			Stderr_: new(strings.Builder),
		}

		if err := apply.Task()(
			context.Background(), logger.Null(), girderEnv, client, cl, nil,
		); err != nil {
			t.Fatal(err)
		}

		if len(client.Calls.CreateUser) != 0 {
			t.Error("the existing admin should not be recreated")
		}
		if len(client.Calls.SetPlugins) != 1 {
			t.Fatalf("SetPlugins should be called once: %v", client.Calls.SetPlugins)
		}
		if len(client.Calls.SetPlugins[0]) != 1 || client.Calls.SetPlugins[0][0] != "oauth" {
			t.Errorf("wrong plugins: %v", client.Calls.SetPlugins[0])
		}
	})

	t.Run("in check mode, unsatisfied steps fail the run without applying", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.FindUsers = func(ctx context.Context, text string) ([]users.Detail, error) {
			return []users.Detail{}, nil
		}
		client.Impl.GetPlugins = func(ctx context.Context) (plugins.Status, error) {
			return plugins.Status{
				All:     map[string]plugins.Meta{"oauth": {}},
				Enabled: []string{},
			}, nil
		}

		cl := commandline.MockCommandline[apply.Flag]{
			Fullname_: "girderctl provision apply",
			Flags_:    apply.Flag{Check: true},
			Args_: map[string][]string{
				apply.ARG_PLAYBOOK: {writePlaybook(t, playbookFixture)},
			},
			Stdout_: new(strings.Builder),
			Stderr_: new(strings.Builder),
		}

		if err := apply.Task()(
			context.Background(), logger.Null(), girderEnv, client, cl, nil,
		); err == nil {
			t.Error("check mode should report pending changes as an error")
		}

		if len(client.Calls.CreateUser) != 0 {
			t.Error("check mode should not create users")
		}
	})

	t.Run("a playbook with undefined vars is an error", func(t *testing.T) {
		client := mock.New(t)
		cl := commandline.MockCommandline[apply.Flag]{
			Fullname_: "girderctl provision apply",
			Flags_:    apply.Flag{},
			Args_: map[string][]string{
				apply.ARG_PLAYBOOK: {writePlaybook(t, playbookFixture)},
			},
			Stdout_: new(strings.Builder),
			Stderr_: new(strings.Builder),
		}

		if err := apply.Task()(
			context.Background(), logger.Null(), env.GirderEnv{}, client, cl, nil,
		); err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}
