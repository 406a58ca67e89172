package provision

import (
	"context"
	"errors"
	"strings"
)

// PackagesTask ensures OS packages are installed.
type PackagesTask struct {
	// Names of packages to be installed.
	Names []string `yaml:"names"`

	// Manager is the package manager command. Default: apt-get.
	Manager string `yaml:"manager,omitempty"`
}

func (t *PackagesTask) Verify() error {
	if len(t.Names) == 0 {
		return errors.New("packages: names is required")
	}
	return nil
}

func (t *PackagesTask) manager() string {
	if t.Manager == "" {
		return "apt-get"
	}
	return t.Manager
}

// missing returns the subset of Names not installed yet.
func (t *PackagesTask) missing(ctx context.Context, h *Host) ([]string, error) {
	missing := []string{}
	for _, name := range t.Names {
		out, err := h.Runner.Run(
			ctx, "dpkg-query", "-W", "-f=${Status}", name,
		)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// dpkg-query exits non-zero for unknown packages.
			missing = append(missing, name)
			continue
		}
		if !strings.Contains(out, "install ok installed") {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (t *PackagesTask) Check(ctx context.Context, h *Host) (bool, error) {
	missing, err := t.missing(ctx, h)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

func (t *PackagesTask) Apply(ctx context.Context, h *Host) error {
	missing, err := t.missing(ctx, h)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	args := append([]string{"install", "-y"}, missing...)
	_, err = h.Runner.Run(ctx, t.manager(), args...)
	return err
}
