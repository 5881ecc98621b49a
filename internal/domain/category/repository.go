package category

import "context"

// Repository defines the interface for category reference data. Categories
// are read-only from the API's point of view; rows come from seed migrations.
type Repository interface {
	ListIncome(ctx context.Context) ([]*IncomeCategory, error)
	// ListExpense returns the flat expense category list with parent names
	// resolved. categoryType filters by "FIXED" or "VARIABLE"; empty means all.
	ListExpense(ctx context.Context, categoryType string) ([]*ExpenseCategory, error)
}
