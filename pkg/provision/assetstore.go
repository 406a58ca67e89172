package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/girder/girderctl/api/types/assetstores"
)

// AssetstoreTask ensures an assetstore exists, and optionally that it
// is the current one.
type AssetstoreTask struct {
	Name string `yaml:"name"`

	// Type is one of "filesystem", "gridfs" or "s3".
	Type string `yaml:"type"`

	// Root is the data directory, for filesystem assetstores.
	Root string `yaml:"root,omitempty"`

	// Current marks the assetstore as the target of new uploads.
	Current bool `yaml:"current,omitempty"`
}

func (t *AssetstoreTask) Verify() error {
	if t.Name == "" {
		return errors.New("assetstore: name is required")
	}
	typ, err := assetstores.TypeOf(t.Type)
	if err != nil {
		return fmt.Errorf("assetstore: %w", err)
	}
	if typ == assetstores.Filesystem && t.Root == "" {
		return errors.New("assetstore: root is required for filesystem assetstores")
	}
	return nil
}

func (t *AssetstoreTask) find(ctx context.Context, h *Host) (*assetstores.Detail, error) {
	stores, err := h.Client.ListAssetstores(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range stores {
		if s.Name == t.Name {
			return &s, nil
		}
	}
	return nil, nil
}

func (t *AssetstoreTask) Check(ctx context.Context, h *Host) (bool, error) {
	s, err := t.find(ctx, h)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, nil
	}
	if t.Current && !s.Current {
		return false, nil
	}
	return true, nil
}

func (t *AssetstoreTask) Apply(ctx context.Context, h *Host) error {
	s, err := t.find(ctx, h)
	if err != nil {
		return err
	}

	if s == nil {
		typ, err := assetstores.TypeOf(t.Type)
		if err != nil {
			return fmt.Errorf("assetstore: %w", err)
		}
		created, err := h.Client.CreateAssetstore(ctx, assetstores.Spec{
			Name:    t.Name,
			Type:    typ,
			Root:    t.Root,
			Current: t.Current,
		})
		if err != nil {
			return err
		}
		s = &created
	}

	if t.Current && !s.Current {
		if _, err := h.Client.SetAssetstoreCurrent(ctx, *s); err != nil {
			return err
		}
	}
	return nil
}
