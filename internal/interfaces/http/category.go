package http

import (
	"net/http"
	"strings"

	"devfinance/internal/domain/category"
)

type CategoryHandler struct {
	categoryRepo category.Repository
}

func NewCategoryHandler(categoryRepo category.Repository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

// HandleListCategories returns income and expense categories together, with
// expense subcategories nested under their parents.
func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	ctx := r.Context()

	income, err := h.categoryRepo.ListIncome(ctx)
	if err != nil {
		respondInternalError(w, "Failed to fetch categories", err)
		return
	}

	expense, err := h.categoryRepo.ListExpense(ctx, "")
	if err != nil {
		respondInternalError(w, "Failed to fetch categories", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"income":  income,
		"expense": category.Nest(expense),
	})
}

func (h *CategoryHandler) HandleListIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	income, err := h.categoryRepo.ListIncome(r.Context())
	if err != nil {
		respondInternalError(w, "Failed to fetch categories", err)
		return
	}

	respondData(w, http.StatusOK, income)
}

// HandleListExpense returns the flat expense category list, optionally
// filtered by ?type=FIXED|VARIABLE.
func (h *CategoryHandler) HandleListExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	categoryType := strings.ToUpper(r.URL.Query().Get("type"))

	expense, err := h.categoryRepo.ListExpense(r.Context(), categoryType)
	if err != nil {
		respondInternalError(w, "Failed to fetch categories", err)
		return
	}

	respondData(w, http.StatusOK, expense)
}
