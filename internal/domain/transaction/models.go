package transaction

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

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// ValidType reports whether t is one of the two transaction types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Transaction struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	// TransactionDate carries the day the money moved; time of day is not
	// significant.
	TransactionDate time.Time `json:"transaction_date"`
	Type            string    `json:"transaction_type"`
	// Exactly one of the two category references is set, matching Type.
	IncomeCategoryID    *int64    `json:"income_category_id"`
	ExpenseCategoryID   *int64    `json:"expense_category_id"`
	IncomeCategoryName  *string   `json:"income_category_name,omitempty"`
	ExpenseCategoryName *string   `json:"expense_category_name,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	Tags                *string   `json:"tags,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type CreateTransactionParams struct {
	UserID          int64
	Description     string
	Amount          float64
	TransactionDate time.Time
	Type            string
	// CategoryID lands in the income or expense column depending on Type.
	CategoryID *int64
	Notes      *string
	Tags       *string
}

// UpdateTransactionParams describes a partial update. Nil means "leave
// untouched". A non-nil Type re-derives which category column is active and
// nulls the other; a non-nil CategoryID without a Type change applies to the
// column matching the transaction's current stored type. Notes and Tags are
// tri-state: absent, explicit NULL, or a value.
type UpdateTransactionParams struct {
	Description     *string
	Amount          *float64
	TransactionDate *time.Time
	Type            *string
	CategoryID      *int64
	Notes           OptionalString
	Tags            OptionalString
}

// IsEmpty reports whether the update carries no fields.
func (p UpdateTransactionParams) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.TransactionDate == nil &&
		p.Type == nil && p.CategoryID == nil && !p.Notes.Set && !p.Tags.Set
}

// Filter narrows a transaction listing. All supplied criteria are combined
// with AND. CategoryID matches either category column regardless of type.
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *string
	CategoryID *int64
}

type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
	Count        int64   `json:"total_transactions"`
}
