package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

// ---- mock implementations ----

type mockEngine struct {
	depositFn  func(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error)
	withdrawFn func(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error)
	transferFn func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error)
}

func (m *mockEngine) Deposit(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error) {
	if m.depositFn != nil {
		return m.depositFn(ctx, to, amount, principal)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockEngine) Withdraw(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error) {
	if m.withdrawFn != nil {
		return m.withdrawFn(ctx, from, amount, principal)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockEngine) Transfer(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
	if m.transferFn != nil {
		return m.transferFn(ctx, from, to, amount, principal)
	}
	return money.Money{}, fmt.Errorf("not configured")
}

// ---- helpers ----

func fakeAuth(principal string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("principal", principal)
		c.Next()
	}
}

func newTxTestRouter(engine LedgerEngine, principal string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if principal != "" {
		r.Use(fakeAuth(principal))
	}
	h := NewTransactionHandler(engine)
	v1 := r.Group("/v1/transactions")
	v1.POST("/deposit", h.Deposit)
	v1.POST("/withdraw", h.Withdraw)
	v1.POST("/transfer", h.Transfer)
	return r
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var testAccount = &ledger.Account{
	AccountNo:   "01000001",
	AccountType: ledger.AccountTypeRegular,
	Balance:     money.MustParse("1500.00", "EUR"),
	Currency:    "EUR",
}

// ---- tests ----

func TestDepositEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		depositFn      func(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error)
		expectedStatus int
	}{
		{
			name: "created - deposit into own account",
			body: map[string]any{"toAccountNo": "01000001", "amount": 500.00},
			depositFn: func(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error) {
				return testAccount, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "not found - account does not exist",
			body: map[string]any{"toAccountNo": "09999999", "amount": 10.00},
			depositFn: func(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error) {
				return nil, ledger.ErrAccountNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "forbidden - another customer's account",
			body: map[string]any{"toAccountNo": "02000001", "amount": 10.00},
			depositFn: func(ctx context.Context, to string, amount money.Money, principal string) (*ledger.Account, error) {
				return nil, fmt.Errorf("%w: cannot deposit into another customer's account", ledger.ErrUnauthorized)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "bad request - zero amount",
			body:           map[string]any{"toAccountNo": "01000001", "amount": 0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - amount too precise for currency",
			body:           map[string]any{"toAccountNo": "01000001", "amount": "10.001"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - unsupported currency",
			body:           map[string]any{"toAccountNo": "01000001", "amount": 10.00, "currency": "XRP"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "forbidden - missing destination account",
			body:           map[string]any{"amount": 10.00},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "bad request - malformed body",
			body:           "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockEngine{depositFn: tt.depositFn}, "alice")
			w := doRequest(router, http.MethodPost, "/v1/transactions/deposit", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestWithdrawEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		withdrawFn     func(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error)
		expectedStatus int
	}{
		{
			name: "ok - withdraw from own account",
			body: map[string]any{"fromAccountNo": "01000001", "amount": 200.00},
			withdrawFn: func(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error) {
				return testAccount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "forbidden - savings account",
			body: map[string]any{"fromAccountNo": "01000002", "amount": 100.00},
			withdrawFn: func(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error) {
				return nil, fmt.Errorf("%w: withdrawal is not permitted from a savings account", ledger.ErrPolicyViolation)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "unprocessable entity - insufficient funds",
			body: map[string]any{"fromAccountNo": "01000001", "amount": 2000.00},
			withdrawFn: func(ctx context.Context, from string, amount money.Money, principal string) (*ledger.Account, error) {
				return nil, fmt.Errorf("%w: balance cannot cover amount", ledger.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "forbidden - missing source account",
			body:           map[string]any{"amount": 10.00},
			expectedStatus: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockEngine{withdrawFn: tt.withdrawFn}, "alice")
			w := doRequest(router, http.MethodPost, "/v1/transactions/withdraw", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestTransferEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		transferFn     func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error)
		expectedStatus int
	}{
		{
			name: "ok - transfer between accounts",
			body: map[string]any{"fromAccountNo": "01000001", "toAccountNo": "01000002", "amount": 200.00},
			transferFn: func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
				return amount, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "forbidden - cross-customer limit exceeded",
			body: map[string]any{"fromAccountNo": "01000001", "toAccountNo": "02000001", "amount": 20000.00},
			transferFn: func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
				return money.Money{}, fmt.Errorf("%w: transfer is not permitted for more than 15000 to another customer's account", ledger.ErrPolicyViolation)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "not found - sender missing",
			body: map[string]any{"fromAccountNo": "09999999", "toAccountNo": "01000001", "amount": 10.00},
			transferFn: func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
				return money.Money{}, fmt.Errorf("sender %w", ledger.ErrAccountNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "service unavailable - store timed out",
			body: map[string]any{"fromAccountNo": "01000001", "toAccountNo": "01000002", "amount": 10.00},
			transferFn: func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
				return money.Money{}, fmt.Errorf("%w: deadline exceeded", ledger.ErrStoreTimeout)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "forbidden - missing both account numbers",
			body:           map[string]any{"amount": 10.00},
			expectedStatus: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTxTestRouter(&mockEngine{transferFn: tt.transferFn}, "alice")
			w := doRequest(router, http.MethodPost, "/v1/transactions/transfer", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestTransactionEndpointsRequirePrincipal(t *testing.T) {
	router := newTxTestRouter(&mockEngine{}, "")
	body := map[string]any{"toAccountNo": "01000001", "amount": 10.00}

	w := doRequest(router, http.MethodPost, "/v1/transactions/deposit", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without principal, got %d", w.Code)
	}
}

func TestTransferResponseBody(t *testing.T) {
	router := newTxTestRouter(&mockEngine{
		transferFn: func(ctx context.Context, from, to string, amount money.Money, principal string) (money.Money, error) {
			return amount, nil
		},
	}, "alice")
	body := map[string]any{"fromAccountNo": "01000001", "toAccountNo": "01000002", "amount": 200.00}

	w := doRequest(router, http.MethodPost, "/v1/transactions/transfer", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}
	var resp TransferResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Transferred.Equal(money.MustParse("200.00", "EUR")) {
		t.Errorf("transferred = %s, want 200.00 EUR", resp.Transferred)
	}
}
