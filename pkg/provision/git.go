package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// GitTask ensures a source tree is checked out at a pinned version.
type GitTask struct {
	// Repo is the clone URL.
	Repo string `yaml:"repo"`

	// Dest is the local directory of the working tree.
	Dest string `yaml:"dest"`

	// Version is a branch, tag or commit-ish to pin to.
	Version string `yaml:"version"`
}

func (t *GitTask) Verify() error {
	if t.Repo == "" {
		return errors.New("git: repo is required")
	}
	if t.Dest == "" {
		return errors.New("git: dest is required")
	}
	if t.Version == "" {
		return errors.New("git: version is required")
	}
	return nil
}

func (t *GitTask) Check(ctx context.Context, h *Host) (bool, error) {
	if _, err := os.Stat(t.Dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	head, err := h.Runner.Run(ctx, "git", "-C", t.Dest, "rev-parse", "HEAD")
	if err != nil {
		return false, nil // not a repo, or broken; treat as unsatisfied
	}
	want, err := h.Runner.Run(
		ctx, "git", "-C", t.Dest, "rev-parse", t.Version+"^{commit}",
	)
	if err != nil {
		return false, nil // version unknown locally; needs a fetch
	}
	return strings.TrimSpace(head) == strings.TrimSpace(want), nil
}

func (t *GitTask) Apply(ctx context.Context, h *Host) error {
	if _, err := os.Stat(t.Dest); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if _, err := h.Runner.Run(ctx, "git", "clone", t.Repo, t.Dest); err != nil {
			return fmt.Errorf("git: clone %s: %w", t.Repo, err)
		}
	}

	if _, err := h.Runner.Run(ctx, "git", "-C", t.Dest, "fetch", "--all", "--tags"); err != nil {
		return fmt.Errorf("git: fetch in %s: %w", t.Dest, err)
	}
	if _, err := h.Runner.Run(ctx, "git", "-C", t.Dest, "checkout", t.Version); err != nil {
		return fmt.Errorf("git: checkout %s: %w", t.Version, err)
	}
	return nil
}
