package plugins

import (
	"github.com/girder/girderctl/api/types/internal/utils/cmp"
)

// Meta describes an installed plugin.
type Meta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Status is the plugin state of the server: everything installed,
// and the subset currently enabled.
type Status struct {
	All     map[string]Meta `json:"all"`
	Enabled []string        `json:"enabled"`
}

func (s Status) Equal(o Status) bool {
	return cmp.MapEqEq(s.All, o.All) && cmp.SliceEq(s.Enabled, o.Enabled)
}

// IsEnabled reports whether the named plugin is enabled.
func (s Status) IsEnabled(name string) bool {
	for _, e := range s.Enabled {
		if e == name {
			return true
		}
	}
	return false
}
