package category

type IncomeCategory struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type ExpenseCategory struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	// CategoryType is "FIXED" or "VARIABLE".
	CategoryType  string             `json:"category_type"`
	ParentID      *int64             `json:"parent_id,omitempty"`
	ParentName    *string            `json:"parent_name,omitempty"`
	Subcategories []*ExpenseCategory `json:"subcategories,omitempty"`
}

// Nest arranges a flat, parent-first category list into one level of
// parent/child nesting. Categories with a parent appear only under that
// parent; roots keep their relative order.
func Nest(flat []*ExpenseCategory) []*ExpenseCategory {
	byID := make(map[int64]*ExpenseCategory, len(flat))
	roots := make([]*ExpenseCategory, 0, len(flat))

	for _, c := range flat {
		if c.ParentID == nil {
			root := *c
			root.Subcategories = []*ExpenseCategory{}
			byID[c.ID] = &root
			roots = append(roots, &root)
		}
	}

	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Subcategories = append(parent.Subcategories, c)
		}
	}

	return roots
}
