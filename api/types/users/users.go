package users

import (
	"github.com/girder/girderctl/api/types/misc/rfctime"
)

// Detail is a User document as the server returns it.
type Detail struct {
	Id        string          `json:"_id"`
	Login     string          `json:"login"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Admin     bool            `json:"admin"`
	Status    string          `json:"status,omitempty"`
	Created   rfctime.RFC3339 `json:"created"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Login == o.Login &&
		d.Email == o.Email &&
		d.FirstName == o.FirstName &&
		d.LastName == o.LastName &&
		d.Admin == o.Admin &&
		d.Status == o.Status &&
		d.Created.Equal(o.Created)
}

// Spec is a request to create a new User.
type Spec struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Admin     bool   `json:"admin"`
}

// Token is a session token with its expiry.
type Token struct {
	Token   string          `json:"token"`
	Expires rfctime.RFC3339 `json:"expires"`
}

func (t Token) Equal(o Token) bool {
	return t.Token == o.Token && t.Expires.Equal(o.Expires)
}

// Authentication is the payload of a successful token exchange.
type Authentication struct {
	AuthToken Token  `json:"authToken"`
	User      Detail `json:"user"`
}

func (a Authentication) Equal(o Authentication) bool {
	return a.AuthToken.Equal(o.AuthToken) && a.User.Equal(o.User)
}
