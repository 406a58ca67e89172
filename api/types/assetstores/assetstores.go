package assetstores

import (
	"fmt"

	"github.com/girder/girderctl/api/types/misc/rfctime"
)

// Type of an assetstore backend.
//
// The wire representation is numeric, as the server defines it.
type Type int

const (
	Filesystem Type = 0
	GridFS     Type = 1
	S3         Type = 2
)

func (t Type) String() string {
	switch t {
	case Filesystem:
		return "filesystem"
	case GridFS:
		return "gridfs"
	case S3:
		return "s3"
	default:
		return fmt.Sprintf("unknown (%d)", int(t))
	}
}

// TypeOf resolves an assetstore type by its name.
func TypeOf(name string) (Type, error) {
	switch name {
	case "filesystem":
		return Filesystem, nil
	case "gridfs":
		return GridFS, nil
	case "s3":
		return S3, nil
	default:
		return Type(-1), fmt.Errorf("unknown assetstore type: %s", name)
	}
}

// Capacity of a filesystem assetstore, in bytes.
type Capacity struct {
	Free  int64 `json:"free"`
	Total int64 `json:"total"`
}

// Detail is an Assetstore document as the server returns it.
type Detail struct {
	Id       string          `json:"_id"`
	Name     string          `json:"name"`
	Type     Type            `json:"type"`
	Root     string          `json:"root,omitempty"`
	Current  bool            `json:"current"`
	Created  rfctime.RFC3339 `json:"created"`
	Capacity *Capacity       `json:"capacity,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	if (d.Capacity == nil) != (o.Capacity == nil) {
		return false
	}
	if d.Capacity != nil && *d.Capacity != *o.Capacity {
		return false
	}
	return d.Id == o.Id &&
		d.Name == o.Name &&
		d.Type == o.Type &&
		d.Root == o.Root &&
		d.Current == o.Current &&
		d.Created.Equal(o.Created)
}

// Spec is a request to create a new Assetstore.
type Spec struct {
	Name    string `json:"name"`
	Type    Type   `json:"type"`
	Root    string `json:"root,omitempty"`
	Current bool   `json:"current,omitempty"`
}
