package env_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/girder/girderctl/cmd/girderctl/env"
	"github.com/girder/girderctl/pkg/utils/cmp"
	"github.com/girder/girderctl/pkg/utils/try"
)

func TestLoadGirderEnv(t *testing.T) {
	t.Run("it loads vars from a girderenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "girderenv")
		if err := os.WriteFile(path, []byte(`
vars:
  girder_root: /opt/girder
  girder_version: v2.0.0
`), os.FileMode(0644)); err != nil {
			t.Fatal(err)
		}

		testee := try.To(env.LoadGirderEnv(path)).OrFatal(t)
		if !cmp.MapEq(testee.Vars, map[string]string{
			"girder_root":    "/opt/girder",
			"girder_version": "v2.0.0",
		}) {
			t.Errorf("wrong vars: %v", testee.Vars)
		}

		if v, ok := testee.Lookup("girder_root"); !ok || v != "/opt/girder" {
			t.Errorf("Lookup(girder_root) = %s, %v", v, ok)
		}
		if _, ok := testee.Lookup("no_such_var"); ok {
			t.Error("Lookup should miss for unknown names")
		}
	})

	t.Run("a missing file is an empty env with os.ErrNotExist", func(t *testing.T) {
		testee, err := env.LoadGirderEnv(
			filepath.Join(t.TempDir(), "no-such-file"),
		)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error should be os.ErrNotExist: %v", err)
		}
		if testee == nil || len(testee.Vars) != 0 {
			t.Errorf("env should be empty: %v", testee)
		}
	})

	t.Run("a broken file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "girderenv")
		if err := os.WriteFile(path, []byte(`{`), os.FileMode(0644)); err != nil {
			t.Fatal(err)
		}
		if _, err := env.LoadGirderEnv(path); err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}
