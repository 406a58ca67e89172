package provision

import (
	"context"
	"errors"

	"github.com/girder/girderctl/api/types/users"
)

// UserTask ensures a user account exists.
//
// It never updates an existing account. In particular, the password of
// an account that already exists is left as is.
type UserTask struct {
	Login     string `yaml:"login"`
	Password  string `yaml:"password"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Admin     bool   `yaml:"admin,omitempty"`
}

func (t *UserTask) Verify() error {
	if t.Login == "" {
		return errors.New("user: login is required")
	}
	if t.Password == "" {
		return errors.New("user: password is required")
	}
	if t.Email == "" {
		return errors.New("user: email is required")
	}
	if t.FirstName == "" || t.LastName == "" {
		return errors.New("user: first_name and last_name are required")
	}
	return nil
}

func (t *UserTask) find(ctx context.Context, h *Host) (*users.Detail, error) {
	found, err := h.Client.FindUsers(ctx, t.Login)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		if u.Login == t.Login {
			return &u, nil
		}
	}
	return nil, nil
}

func (t *UserTask) Check(ctx context.Context, h *Host) (bool, error) {
	u, err := t.find(ctx, h)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (t *UserTask) Apply(ctx context.Context, h *Host) error {
	u, err := t.find(ctx, h)
	if err != nil {
		return err
	}
	if u != nil {
		return nil
	}

	if _, err := h.Client.CreateUser(ctx, users.Spec{
		Login:     t.Login,
		Password:  t.Password,
		Email:     t.Email,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Admin:     t.Admin,
	}); err != nil {
		return err
	}

	if t.Admin {
		// later steps, assetstores and plugins say, need an admin session.
		if _, err := h.Client.Authenticate(ctx, t.Login, t.Password); err != nil {
			return err
		}
	}
	return nil
}
