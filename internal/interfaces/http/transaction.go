package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"devfinance/internal/domain/transaction"
	"devfinance/internal/shared/middleware"
)

const dateLayout = "2006-01-02"

type TransactionHandler struct {
	transactionRepo transaction.Repository
}

func NewTransactionHandler(transactionRepo transaction.Repository) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

// HandleTransactions serves the collection route: GET lists, POST creates.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	filter, err := parseListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.transactionRepo.List(r.Context(), userID, filter)
	if err != nil {
		respondInternalError(w, "Failed to fetch transactions", err)
		return
	}

	respondData(w, http.StatusOK, transactions)
}

func parseListFilter(r *http.Request) (transaction.Filter, error) {
	var filter transaction.Filter
	q := r.URL.Query()

	startDate, err := parseDateParam(q.Get("startDate"), "startDate")
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate

	endDate, err := parseDateParam(q.Get("endDate"), "endDate")
	if err != nil {
		return filter, err
	}
	filter.EndDate = endDate

	if t := q.Get("type"); t != "" {
		upper := strings.ToUpper(t)
		filter.Type = &upper
	}

	if c := q.Get("categoryId"); c != "" {
		id, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return filter, errors.New("categoryId must be a number")
		}
		filter.CategoryID = &id
	}

	return filter, nil
}

func parseDateParam(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.New(name + " must be formatted YYYY-MM-DD")
	}
	return &t, nil
}

type CreateTransactionRequest struct {
	Description     string   `json:"description"`
	Amount          *float64 `json:"amount"`
	TransactionDate string   `json:"transaction_date"`
	TransactionType string   `json:"transaction_type"`
	CategoryID      *int64   `json:"category_id"`
	Notes           *string  `json:"notes"`
	Tags            *string  `json:"tags"`
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Description == "" || req.Amount == nil || req.TransactionDate == "" || req.TransactionType == "" {
		respondError(w, http.StatusBadRequest,
			"Required fields: description, amount, transaction_date, transaction_type")
		return
	}

	txType := strings.ToUpper(req.TransactionType)
	if !transaction.ValidType(txType) {
		respondError(w, http.StatusBadRequest, "transaction_type must be INCOME or EXPENSE")
		return
	}

	if *req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	txDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "transaction_date must be formatted YYYY-MM-DD")
		return
	}

	created, err := h.transactionRepo.Create(r.Context(), transaction.CreateTransactionParams{
		UserID:          userID,
		Description:     req.Description,
		Amount:          *req.Amount,
		TransactionDate: txDate,
		Type:            txType,
		CategoryID:      req.CategoryID,
		Notes:           req.Notes,
		Tags:            req.Tags,
	})
	if err != nil {
		respondInternalError(w, "Failed to create transaction", err)
		return
	}

	respondMessage(w, http.StatusCreated, "Transaction created successfully", created)
}

// HandleSummary aggregates the caller's totals within an optional date window.
func (h *TransactionHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	q := r.URL.Query()
	startDate, err := parseDateParam(q.Get("startDate"), "startDate")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDateParam(q.Get("endDate"), "endDate")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.transactionRepo.Summarize(r.Context(), userID, startDate, endDate)
	if err != nil {
		respondInternalError(w, "Failed to fetch summary", err)
		return
	}

	respondData(w, http.StatusOK, summary)
}

// HandleTransactionByID serves GET, PUT and DELETE on a single transaction,
// always scoped to the authenticated owner.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, id)
	case http.MethodPut:
		h.handleUpdate(w, r, userID, id)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, id int64) {
	tx, err := h.transactionRepo.GetByID(r.Context(), userID, id)
	if errors.Is(err, transaction.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to fetch transaction", err)
		return
	}

	respondData(w, http.StatusOK, tx)
}

type UpdateTransactionRequest struct {
	Description     *string                    `json:"description"`
	Amount          *float64                   `json:"amount"`
	TransactionDate *string                    `json:"transaction_date"`
	TransactionType *string                    `json:"transaction_type"`
	CategoryID      *int64                     `json:"category_id"`
	Notes           transaction.OptionalString `json:"notes"`
	Tags            transaction.OptionalString `json:"tags"`
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id int64) {
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := transaction.UpdateTransactionParams{
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
		Tags:       req.Tags,
	}

	// A blank description or zero amount counts as "not provided", same as
	// the profile handler's blank-name rule.
	if req.Description != nil && *req.Description != "" {
		params.Description = req.Description
	}
	if req.Amount != nil && *req.Amount != 0 {
		params.Amount = req.Amount
	}

	if req.TransactionType != nil {
		txType := strings.ToUpper(*req.TransactionType)
		if !transaction.ValidType(txType) {
			respondError(w, http.StatusBadRequest, "transaction_type must be INCOME or EXPENSE")
			return
		}
		params.Type = &txType
	}

	if req.TransactionDate != nil {
		txDate, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "transaction_date must be formatted YYYY-MM-DD")
			return
		}
		params.TransactionDate = &txDate
	}

	updated, err := h.transactionRepo.Update(r.Context(), userID, id, params)
	if errors.Is(err, transaction.ErrNoFieldsToUpdate) {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if errors.Is(err, transaction.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to update transaction", err)
		return
	}

	respondMessage(w, http.StatusOK, "Transaction updated successfully", updated)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, id int64) {
	err := h.transactionRepo.Delete(r.Context(), userID, id)
	if errors.Is(err, transaction.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to delete transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Transaction deleted successfully"})
}
