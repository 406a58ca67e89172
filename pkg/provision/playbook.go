package provision

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

var ErrPlaybookInvalid = errors.New("playbook is invalid")

// Step is one named task of a Playbook.
type Step struct {
	Name string
	Task Task
}

// Playbook is an ordered list of Steps to bring a host and its Girder
// server to a desired state.
type Playbook struct {
	Vars  map[string]string
	Steps []Step
}

// taskDoc is the YAML shape of a Step: a name and exactly one module key.
type taskDoc struct {
	Name string `yaml:"name"`

	Packages   *PackagesTask   `yaml:"packages,omitempty"`
	Git        *GitTask        `yaml:"git,omitempty"`
	Pip        *PipTask        `yaml:"pip,omitempty"`
	WaitFor    *WaitForTask    `yaml:"wait_for,omitempty"`
	User       *UserTask       `yaml:"user,omitempty"`
	Assetstore *AssetstoreTask `yaml:"assetstore,omitempty"`
	Plugins    *PluginsTask    `yaml:"plugins,omitempty"`
}

func (doc taskDoc) step(nth int) (Step, error) {
	type module struct {
		kind string
		task Task
	}

	found := []module{}
	if doc.Packages != nil {
		found = append(found, module{"packages", doc.Packages})
	}
	if doc.Git != nil {
		found = append(found, module{"git", doc.Git})
	}
	if doc.Pip != nil {
		found = append(found, module{"pip", doc.Pip})
	}
	if doc.WaitFor != nil {
		found = append(found, module{"wait_for", doc.WaitFor})
	}
	if doc.User != nil {
		found = append(found, module{"user", doc.User})
	}
	if doc.Assetstore != nil {
		found = append(found, module{"assetstore", doc.Assetstore})
	}
	if doc.Plugins != nil {
		found = append(found, module{"plugins", doc.Plugins})
	}

	if len(found) != 1 {
		return Step{}, fmt.Errorf(
			"%w: task #%d should have exactly one module, but has %d",
			ErrPlaybookInvalid, nth+1, len(found),
		)
	}

	name := doc.Name
	if name == "" {
		name = found[0].kind
	}
	if err := found[0].task.Verify(); err != nil {
		return Step{}, fmt.Errorf("%w: task %s: %s", ErrPlaybookInvalid, name, err)
	}
	return Step{Name: name, Task: found[0].task}, nil
}

type playbookDoc struct {
	Vars  map[string]string `yaml:"vars"`
	Tasks []taskDoc         `yaml:"tasks"`
}

// Load reads a Playbook from file.
//
// baseVars (from girderenv, say) sit under the playbook's own vars; the
// playbook wins on conflict. `${name}` references anywhere in the file are
// expanded with the merged vars before parsing tasks.
func Load(path string, baseVars map[string]string) (Playbook, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Playbook{}, err
	}
	return Unmarshal(buf, baseVars)
}

// Unmarshal parses a Playbook from yaml in byte array. See Load.
func Unmarshal(buf []byte, baseVars map[string]string) (Playbook, error) {
	head := struct {
		Vars map[string]string `yaml:"vars"`
	}{}
	if err := yaml.Unmarshal(buf, &head); err != nil {
		return Playbook{}, fmt.Errorf("%w: %s", ErrPlaybookInvalid, err)
	}

	vars := map[string]string{}
	maps.Copy(vars, baseVars)
	maps.Copy(vars, head.Vars)

	expanded, err := expandVars(string(buf), vars)
	if err != nil {
		return Playbook{}, err
	}

	doc := playbookDoc{}
	if err := yaml.Unmarshal([]byte(expanded), &doc); err != nil {
		return Playbook{}, fmt.Errorf("%w: %s", ErrPlaybookInvalid, err)
	}

	steps := make([]Step, 0, len(doc.Tasks))
	for nth, t := range doc.Tasks {
		step, err := t.step(nth)
		if err != nil {
			return Playbook{}, err
		}
		steps = append(steps, step)
	}

	return Playbook{Vars: vars, Steps: steps}, nil
}

// expandVars replaces ${name} references with vars. Unknown names are errors.
func expandVars(text string, vars map[string]string) (string, error) {
	missing := []string{}
	expanded := os.Expand(text, func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		missing = append(missing, name)
		return ""
	})
	if 0 < len(missing) {
		return "", fmt.Errorf(
			"%w: undefined vars: %s",
			ErrPlaybookInvalid, strings.Join(missing, ", "),
		)
	}
	return expanded, nil
}

// Duration is a time.Duration with yaml support, like "90s" or "5m".
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
