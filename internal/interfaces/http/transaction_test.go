package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devfinance/internal/domain/transaction"
	"devfinance/internal/shared/middleware"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	ListFunc      func(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error)
	GetByIDFunc   func(ctx context.Context, userID, id int64) (*transaction.Transaction, error)
	CreateFunc    func(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error)
	UpdateFunc    func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error)
	DeleteFunc    func(ctx context.Context, userID, id int64) error
	SummarizeFunc func(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error)
}

func (m *MockTransactionRepo) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockTransactionRepo) Summarize(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, userID, startDate, endDate)
	}
	return nil, nil
}

func authedRequest(method, target string, body []byte, userID int64) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestHandleListTransactions(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name:  "Success",
			query: "",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					ListFunc: func(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
						return []*transaction.Transaction{{ID: 1, UserID: userID}}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Filters Passed Through",
			query: "?startDate=2023-01-01&endDate=2023-01-31&type=expense&categoryId=3",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					ListFunc: func(ctx context.Context, userID int64, filter transaction.Filter) ([]*transaction.Transaction, error) {
						if filter.StartDate == nil || filter.EndDate == nil {
							t.Error("expected date filters to be set")
						}
						if filter.Type == nil || *filter.Type != "EXPENSE" {
							t.Errorf("expected type EXPENSE, got %v", filter.Type)
						}
						if filter.CategoryID == nil || *filter.CategoryID != 3 {
							t.Errorf("expected categoryId 3, got %v", filter.CategoryID)
						}
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Invalid Start Date",
			query: "?startDate=01/01/2023",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Invalid Category ID",
			query: "?categoryId=food",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(tt.mockRepo())

			req := authedRequest(http.MethodGet, "/api/transactions"+tt.query, nil, 1)
			rr := httptest.NewRecorder()
			handler.HandleTransactions(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCreateTransaction(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"description":      "Groceries",
				"amount":           125.50,
				"transaction_date": "2023-06-15",
				"transaction_type": "expense",
				"category_id":      2,
			},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					CreateFunc: func(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
						if params.Type != transaction.TypeExpense {
							t.Errorf("expected type EXPENSE, got %s", params.Type)
						}
						return &transaction.Transaction{ID: 10, UserID: params.UserID}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Required Fields",
			body: map[string]interface{}{
				"description": "Groceries",
			},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Type",
			body: map[string]interface{}{
				"description":      "Groceries",
				"amount":           125.50,
				"transaction_date": "2023-06-15",
				"transaction_type": "TRANSFER",
			},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Zero Amount",
			body: map[string]interface{}{
				"description":      "Groceries",
				"amount":           0.0,
				"transaction_date": "2023-06-15",
				"transaction_type": "EXPENSE",
			},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Date",
			body: map[string]interface{}{
				"description":      "Groceries",
				"amount":           125.50,
				"transaction_date": "15/06/2023",
				"transaction_type": "EXPENSE",
			},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(tt.mockRepo())

			body, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPost, "/api/transactions", body, 1)
			rr := httptest.NewRecorder()
			handler.HandleTransactions(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleTransactionByID(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		id             string
		body           map[string]interface{}
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name:   "Get Success",
			method: http.MethodGet,
			id:     "7",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					GetByIDFunc: func(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
						return &transaction.Transaction{ID: id, UserID: userID}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Get Not Found",
			method: http.MethodGet,
			id:     "7",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					GetByIDFunc: func(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
						return nil, transaction.ErrNotFound
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Invalid ID",
			method: http.MethodGet,
			id:     "abc",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Update Success",
			method: http.MethodPut,
			id:     "7",
			body:   map[string]interface{}{"description": "Updated"},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
						return &transaction.Transaction{ID: id, UserID: userID}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Update Empty Body",
			method: http.MethodPut,
			id:     "7",
			body:   map[string]interface{}{},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
						return nil, transaction.ErrNoFieldsToUpdate
					},
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Update Not Owned",
			method: http.MethodPut,
			id:     "7",
			body:   map[string]interface{}{"description": "Updated"},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
						return nil, transaction.ErrNotFound
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Update Invalid Type",
			method: http.MethodPut,
			id:     "7",
			body:   map[string]interface{}{"transaction_type": "TRANSFER"},
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Delete Success",
			method: http.MethodDelete,
			id:     "7",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					DeleteFunc: func(ctx context.Context, userID, id int64) error {
						return nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Delete Not Found",
			method: http.MethodDelete,
			id:     "7",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					DeleteFunc: func(ctx context.Context, userID, id int64) error {
						return transaction.ErrNotFound
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(tt.mockRepo())

			var body []byte
			if tt.body != nil {
				body, _ = json.Marshal(tt.body)
			}
			req := authedRequest(tt.method, "/api/transactions/"+tt.id, body, 1)
			req.SetPathValue("id", tt.id)

			rr := httptest.NewRecorder()
			handler.HandleTransactionByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleSummary(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockRepo       func() *MockTransactionRepo
		expectedStatus int
	}{
		{
			name:  "Success",
			query: "",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					SummarizeFunc: func(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error) {
						return &transaction.Summary{TotalIncome: 500, TotalExpense: 200, Balance: 300, Count: 4}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Window Passed Through",
			query: "?startDate=2023-01-01&endDate=2023-12-31",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{
					SummarizeFunc: func(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error) {
						if startDate == nil || endDate == nil {
							t.Error("expected date window to be set")
						}
						return &transaction.Summary{}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Invalid End Date",
			query: "?endDate=yesterday",
			mockRepo: func() *MockTransactionRepo {
				return &MockTransactionRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(tt.mockRepo())

			req := authedRequest(http.MethodGet, "/api/transactions/summary"+tt.query, nil, 1)
			rr := httptest.NewRecorder()
			handler.HandleSummary(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleSummaryResponseBody(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionRepo{
		SummarizeFunc: func(ctx context.Context, userID int64, startDate, endDate *time.Time) (*transaction.Summary, error) {
			return &transaction.Summary{TotalIncome: 500, TotalExpense: 200, Balance: 300, Count: 4}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/transactions/summary", nil, 1)
	rr := httptest.NewRecorder()
	handler.HandleSummary(rr, req)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalIncome       float64 `json:"total_income"`
			TotalExpense      float64 `json:"total_expense"`
			Balance           float64 `json:"balance"`
			TotalTransactions int64   `json:"total_transactions"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success to be true")
	}
	if resp.Data.Balance != 300 {
		t.Errorf("expected balance 300, got %v", resp.Data.Balance)
	}
	if resp.Data.TotalTransactions != 4 {
		t.Errorf("expected 4 transactions, got %v", resp.Data.TotalTransactions)
	}
}

func TestHandleUpdateTransactionNullClearsNotes(t *testing.T) {
	var got transaction.UpdateTransactionParams
	handler := NewTransactionHandler(&MockTransactionRepo{
		UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
			got = params
			return &transaction.Transaction{ID: id, UserID: userID}, nil
		},
	})

	req := authedRequest(http.MethodPut, "/api/transactions/7", []byte(`{"notes":null}`), 1)
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()
	handler.HandleTransactionByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", rr.Code)
	}
	if !got.Notes.Set {
		t.Error("expected an explicit null to mark notes as provided")
	}
	if got.Notes.Value != nil {
		t.Errorf("expected a nil value for explicit null, got %q", *got.Notes.Value)
	}
	if got.Tags.Set {
		t.Error("expected absent tags to stay unset")
	}
}

func TestHandleUpdateTransactionBlankFieldsIgnored(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionRepo{
		UpdateFunc: func(ctx context.Context, userID, id int64, params transaction.UpdateTransactionParams) (*transaction.Transaction, error) {
			if params.Description != nil {
				t.Errorf("expected blank description to be dropped, got %q", *params.Description)
			}
			if params.Amount != nil {
				t.Errorf("expected zero amount to be dropped, got %v", *params.Amount)
			}
			return nil, transaction.ErrNoFieldsToUpdate
		},
	})

	req := authedRequest(http.MethodPut, "/api/transactions/7", []byte(`{"description":"","amount":0}`), 1)
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()
	handler.HandleTransactionByID(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when only blank fields are sent, got %v", rr.Code)
	}
}
