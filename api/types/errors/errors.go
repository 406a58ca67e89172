package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorMessage is the error payload Girder returns for 4xx/5xx responses.
//
//	{"message": "Invalid ObjectId: xxx", "type": "validation", "field": "id"}
type ErrorMessage struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
	Cause   error  `json:"-"`
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Message *string `json:"message"`
		Type    *string `json:"type,omitempty"`
		Field   *string `json:"field,omitempty"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Message == nil {
		return fmt.Errorf(`required field missing: "message"`)
	}
	em.Message = *f.Message

	if f.Type != nil {
		em.Type = *f.Type
	}
	if f.Field != nil {
		em.Field = *f.Field
	}

	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Message}
	if e.Type != "" {
		lines = append(lines, "type: "+e.Type)
	}
	if e.Field != "" {
		lines = append(lines, "field: "+e.Field)
	}
	if e.Cause != nil {
		lines = append(lines, " caused by: "+e.Cause.Error())
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}
