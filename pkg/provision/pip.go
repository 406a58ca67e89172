package provision

import (
	"context"
	"errors"
	"strings"
)

// PipTask ensures a python package is installed, optionally at a pinned
// version.
type PipTask struct {
	// Name of the python package.
	Name string `yaml:"name"`

	// Version to pin. Empty accepts whatever version is installed.
	Version string `yaml:"version,omitempty"`

	// Executable is the pip command. Default: pip.
	Executable string `yaml:"executable,omitempty"`
}

func (t *PipTask) Verify() error {
	if t.Name == "" {
		return errors.New("pip: name is required")
	}
	return nil
}

func (t *PipTask) executable() string {
	if t.Executable == "" {
		return "pip"
	}
	return t.Executable
}

func (t *PipTask) Check(ctx context.Context, h *Host) (bool, error) {
	out, err := h.Runner.Run(ctx, t.executable(), "show", t.Name)
	if err != nil {
		return false, nil // pip show exits non-zero when not installed
	}
	if t.Version == "" {
		return true, nil
	}
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "Version:"); ok {
			return strings.TrimSpace(v) == t.Version, nil
		}
	}
	return false, nil
}

func (t *PipTask) Apply(ctx context.Context, h *Host) error {
	spec := t.Name
	if t.Version != "" {
		spec = t.Name + "==" + t.Version
	}
	_, err := h.Runner.Run(ctx, t.executable(), "install", spec)
	return err
}
