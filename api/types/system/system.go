package system

// Version describes the server build.
type Version struct {
	Release    string `json:"release"`
	ApiVersion string `json:"apiVersion,omitempty"`
	ShortSHA   string `json:"shortSHA,omitempty"`
}

func (v Version) Equal(o Version) bool {
	return v == o
}
