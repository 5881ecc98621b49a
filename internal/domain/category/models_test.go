package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(id int64, name string, parentID *int64) *ExpenseCategory {
	return &ExpenseCategory{ID: id, Name: name, CategoryType: "VARIABLE", ParentID: parentID}
}

func TestNest(t *testing.T) {
	housing := int64(1)
	food := int64(2)
	flat := []*ExpenseCategory{
		expense(1, "Housing", nil),
		expense(2, "Food", nil),
		expense(3, "Rent", &housing),
		expense(4, "Utilities", &housing),
		expense(5, "Groceries", &food),
	}

	roots := Nest(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "Housing", roots[0].Name)
	assert.Equal(t, "Food", roots[1].Name)

	require.Len(t, roots[0].Subcategories, 2)
	assert.Equal(t, "Rent", roots[0].Subcategories[0].Name)
	assert.Equal(t, "Utilities", roots[0].Subcategories[1].Name)

	require.Len(t, roots[1].Subcategories, 1)
	assert.Equal(t, "Groceries", roots[1].Subcategories[0].Name)
}

func TestNest_NoChildren(t *testing.T) {
	roots := Nest([]*ExpenseCategory{expense(1, "Transport", nil)})

	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Subcategories)
}

func TestNest_OrphanParent(t *testing.T) {
	missing := int64(99)
	roots := Nest([]*ExpenseCategory{
		expense(1, "Housing", nil),
		expense(2, "Stray", &missing),
	})

	// A child pointing at an unknown parent is dropped rather than promoted.
	require.Len(t, roots, 1)
	assert.Equal(t, "Housing", roots[0].Name)
}

func TestNest_Empty(t *testing.T) {
	assert.Empty(t, Nest(nil))
}
