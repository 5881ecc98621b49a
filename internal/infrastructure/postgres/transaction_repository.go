package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"devfinance/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.description, t.amount, t.transaction_date,
	       t.transaction_type, t.income_category_id, t.expense_category_id,
	       ic.name AS income_category_name, ec.name AS expense_category_name,
	       t.notes, t.tags, t.created_at
	FROM transactions t
	LEFT JOIN income_categories ic ON t.income_category_id = ic.id
	LEFT JOIN expense_categories ec ON t.expense_category_id = ec.id
`

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
	query, args := buildListQuery(userID, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*transaction.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// buildListQuery combines the supplied filters with AND. The categoryId
// filter matches either category column on purpose: it is type-agnostic.
func buildListQuery(userID int64, filter transaction.Filter) (string, []any) {
	var b strings.Builder
	b.WriteString(transactionSelect)
	b.WriteString("	WHERE t.user_id = $1")
	args := []any{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		fmt.Fprintf(&b, " AND t.transaction_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		fmt.Fprintf(&b, " AND t.transaction_date <= $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		fmt.Fprintf(&b, " AND t.transaction_type = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&b, " AND (t.income_category_id = $%d OR t.expense_category_id = $%d)", len(args), len(args))
	}

	b.WriteString(" ORDER BY t.transaction_date DESC, t.created_at DESC")
	return b.String(), args
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	// Scoped to the owner: a row held by another user is indistinguishable
	// from a missing row.
	query := transactionSelect + "	WHERE t.id = $1 AND t.user_id = $2"

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return tx, nil
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	var incomeCategoryID, expenseCategoryID *int64
	if params.Type == transaction.TypeIncome {
		incomeCategoryID = params.CategoryID
	} else {
		expenseCategoryID = params.CategoryID
	}

	query := `
		INSERT INTO transactions
			(user_id, description, amount, transaction_date, transaction_type,
			 income_category_id, expense_category_id, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.Description, params.Amount, params.TransactionDate,
		params.Type, incomeCategoryID, expenseCategoryID, params.Notes, params.Tags,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Re-read through the joins so category names come back resolved.
	return r.GetByID(ctx, params.UserID, id)
}

func (r *TransactionRepository) Update(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if params.IsEmpty() {
		return nil, transaction.ErrNoFieldsToUpdate
	}

	// Ownership check doubles as the read of the current stored type, which
	// a category-only update needs to pick the right column. This read-then-
	// write pair is not transactional; a concurrent type change can race it.
	var currentType string
	err := r.db.QueryRowContext(ctx,
		`SELECT transaction_type FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&currentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check transaction %d: %w", id, err)
	}

	query, args := buildUpdateQuery(id, currentType, params)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}

	return r.GetByID(ctx, userID, id)
}

// buildUpdateQuery assembles the SET clauses for a partial update. A type
// change moves the category reference and forces the opposite column to NULL;
// a category without a type change applies to whichever column matches the
// current stored type.
func buildUpdateQuery(id int64, currentType string, params transaction.UpdateTransactionParams) (string, []any) {
	setClauses := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Description != nil {
		addSet("description", *params.Description)
	}
	if params.Amount != nil {
		addSet("amount", *params.Amount)
	}
	if params.TransactionDate != nil {
		addSet("transaction_date", *params.TransactionDate)
	}

	switch {
	case params.Type != nil:
		addSet("transaction_type", *params.Type)
		if *params.Type == transaction.TypeIncome {
			addSet("income_category_id", params.CategoryID)
			setClauses = append(setClauses, "expense_category_id = NULL")
		} else {
			addSet("expense_category_id", params.CategoryID)
			setClauses = append(setClauses, "income_category_id = NULL")
		}
	case params.CategoryID != nil:
		if currentType == transaction.TypeIncome {
			addSet("income_category_id", *params.CategoryID)
		} else {
			addSet("expense_category_id", *params.CategoryID)
		}
	}

	// A nil Value on a set field clears the column to NULL.
	if params.Notes.Set {
		addSet("notes", params.Notes.Value)
	}
	if params.Tags.Set {
		addSet("tags", params.Tags.Value)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))
	return query, args
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		// Absent and not-owned look the same.
		return transaction.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Summarize(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error) {
	// Balance is computed in the same pass as the totals rather than
	// subtracting two separately rounded sums.
	query := `
		SELECT COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN transaction_type = 'EXPENSE' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE -amount END), 0),
		       COUNT(*)
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}

	if startDate != nil {
		args = append(args, *startDate)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}

	var s transaction.Summary
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.TotalIncome, &s.TotalExpense, &s.Balance, &s.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	return &s, nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var incomeCategoryID, expenseCategoryID sql.NullInt64
	var incomeCategoryName, expenseCategoryName, notes, tags sql.NullString

	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.TransactionDate,
		&tx.Type, &incomeCategoryID, &expenseCategoryID,
		&incomeCategoryName, &expenseCategoryName,
		&notes, &tags, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if incomeCategoryID.Valid {
		tx.IncomeCategoryID = &incomeCategoryID.Int64
	}
	if expenseCategoryID.Valid {
		tx.ExpenseCategoryID = &expenseCategoryID.Int64
	}
	tx.IncomeCategoryName = nullableString(incomeCategoryName)
	tx.ExpenseCategoryName = nullableString(expenseCategoryName)
	tx.Notes = nullableString(notes)
	tx.Tags = nullableString(tags)

	return &tx, nil
}
