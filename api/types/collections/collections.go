package collections

import (
	"github.com/girder/girderctl/api/types/misc/rfctime"
)

// Detail is a Collection document as the server returns it.
type Detail struct {
	Id          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
	Size        int64           `json:"size"`
	Created     rfctime.RFC3339 `json:"created"`
	Updated     rfctime.RFC3339 `json:"updated"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.Public == o.Public &&
		d.Size == o.Size &&
		d.Created.Equal(o.Created) &&
		d.Updated.Equal(o.Updated)
}

// Spec is a request to create a new Collection.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
}

func (s Spec) Equal(o Spec) bool {
	return s == o
}
