package user

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrNoFieldsToUpdate is returned when an update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// EmailInUse reports whether email is already taken by a user other than
	// excludeUserID. Pass 0 to check against all users. The match is
	// case-sensitive, exactly as stored.
	EmailInUse(ctx context.Context, email string, excludeUserID int64) (bool, error)
	Update(ctx context.Context, userID int64, params UpdateUserParams) (*User, error)
	// TouchLastLogin records a successful login. Best-effort: callers treat a
	// failure as non-fatal.
	TouchLastLogin(ctx context.Context, userID int64) error
}
