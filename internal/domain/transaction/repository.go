package transaction

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound covers both "no such transaction" and "owned by someone
	// else"; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("transaction not found")
	// ErrNoFieldsToUpdate is returned when an update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Repository defines the interface for transaction data access. Every
// operation is scoped to the owning user: rows belonging to other users are
// invisible.
type Repository interface {
	List(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error)
	GetByID(ctx context.Context, userID, id int64) (*Transaction, error)
	Create(ctx context.Context, params CreateTransactionParams) (*Transaction, error)
	Update(ctx context.Context, userID, id int64, params UpdateTransactionParams) (*Transaction, error)
	Delete(ctx context.Context, userID, id int64) error
	// Summarize aggregates income, expense, balance and count in a single
	// pass over the user's transactions within the optional date window.
	Summarize(ctx context.Context, userID int64, startDate, endDate *time.Time) (*Summary, error)
}
