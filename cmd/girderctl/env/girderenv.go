package env

import (
	"os"

	yaml "gopkg.in/yaml.v3"
)

// GirderEnv holds per-project defaults, loaded from a "girderenv" file.
//
// Vars are merged under a playbook's own vars when provisioning,
// so a project can share one playbook across environments.
type GirderEnv struct {
	Vars map[string]string `yaml:"vars"`
}

func New() *GirderEnv {
	return &GirderEnv{Vars: map[string]string{}}
}

func (ge *GirderEnv) Lookup(name string) (string, bool) {
	v, ok := ge.Vars[name]
	return v, ok
}

// LoadGirderEnv reads a girderenv file.
//
// A missing file returns a usable empty env along with the
// os.ErrNotExist, so callers can treat absence as "no defaults".
func LoadGirderEnv(filepath string) (*GirderEnv, error) {

	env := GirderEnv{Vars: map[string]string{}}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, err
	}

	err = yaml.Unmarshal(content, &env)
	if err != nil {
		return nil, err
	}

	if env.Vars == nil {
		env.Vars = map[string]string{}
	}

	return &env, nil
}
