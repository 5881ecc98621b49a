package user

import (
	"bytes"
	"encoding/json"
	"time"
)

// OptionalString distinguishes a field that was absent from one explicitly
// sent as null. Set false leaves the column untouched; Set true with a nil
// Value clears it to NULL.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Avatar       *string    `json:"avatar,omitempty"`
	Active       bool       `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Public returns the fields exposed in auth responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// UpdateUserParams describes a partial profile update. Avatar is tri-state:
// absent, explicit NULL, or a value.
type UpdateUserParams struct {
	Name   *string
	Email  *string
	Avatar OptionalString
}

// IsEmpty reports whether the update carries no fields.
func (p UpdateUserParams) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && !p.Avatar.Set
}
