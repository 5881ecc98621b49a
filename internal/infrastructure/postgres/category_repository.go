package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"devfinance/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListIncome(ctx context.Context) ([]*category.IncomeCategory, error) {
	query := `
		SELECT id, name, description, icon, color
		FROM income_categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list income categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.IncomeCategory{}
	for rows.Next() {
		var c category.IncomeCategory
		var description, icon, color sql.NullString

		if err := rows.Scan(&c.ID, &c.Name, &description, &icon, &color); err != nil {
			return nil, fmt.Errorf("failed to scan income category: %w", err)
		}

		c.Description = nullableString(description)
		c.Icon = nullableString(icon)
		c.Color = nullableString(color)
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read income categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) ListExpense(ctx context.Context, categoryType string) ([]*category.ExpenseCategory, error) {
	query := `
		SELECT c.id, c.name, c.description, c.icon, c.color, c.category_type,
		       c.parent_id, p.name AS parent_name
		FROM expense_categories c
		LEFT JOIN expense_categories p ON c.parent_id = p.id
	`
	args := []any{}

	if categoryType != "" {
		query += " WHERE c.category_type = $1"
		args = append(args, categoryType)
	}

	// Parents first so one level of nesting can be assembled in order.
	query += " ORDER BY c.parent_id NULLS FIRST, c.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.ExpenseCategory{}
	for rows.Next() {
		var c category.ExpenseCategory
		var description, icon, color, parentName sql.NullString
		var parentID sql.NullInt64

		err := rows.Scan(&c.ID, &c.Name, &description, &icon, &color, &c.CategoryType, &parentID, &parentName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense category: %w", err)
		}

		c.Description = nullableString(description)
		c.Icon = nullableString(icon)
		c.Color = nullableString(color)
		c.ParentName = nullableString(parentName)
		if parentID.Valid {
			c.ParentID = &parentID.Int64
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense categories: %w", err)
	}

	return categories, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
