package provision

import (
	"context"
	"errors"
	"slices"
)

// PluginsTask ensures plugins are enabled.
//
// Plugins enabled by someone else stay enabled; this task only ever
// grows the set.
type PluginsTask struct {
	Names []string `yaml:"names"`
}

func (t *PluginsTask) Verify() error {
	if len(t.Names) == 0 {
		return errors.New("plugins: names is required")
	}
	return nil
}

func (t *PluginsTask) Check(ctx context.Context, h *Host) (bool, error) {
	status, err := h.Client.GetPlugins(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range t.Names {
		if !status.IsEnabled(name) {
			return false, nil
		}
	}
	return true, nil
}

func (t *PluginsTask) Apply(ctx context.Context, h *Host) error {
	status, err := h.Client.GetPlugins(ctx)
	if err != nil {
		return err
	}

	names := slices.Clone(status.Enabled)
	changed := false
	for _, name := range t.Names {
		if !status.IsEnabled(name) {
			names = append(names, name)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	_, err = h.Client.SetPlugins(ctx, names)
	return err
}
