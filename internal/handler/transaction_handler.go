package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
	"github.com/surbhisaraf/customer-banking-service/internal/middleware"
	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

const defaultCurrency = "EUR"

// LedgerEngine defines the engine operations used by TransactionHandler.
type LedgerEngine interface {
	Deposit(ctx context.Context, toAccountNo string, amount money.Money, principal string) (*ledger.Account, error)
	Withdraw(ctx context.Context, fromAccountNo string, amount money.Money, principal string) (*ledger.Account, error)
	Transfer(ctx context.Context, fromAccountNo, toAccountNo string, amount money.Money, principal string) (money.Money, error)
}

// TransactionHandler adapts HTTP requests onto the ledger engine and maps
// domain errors back to status codes. It holds no business rules.
type TransactionHandler struct {
	engine LedgerEngine
}

func NewTransactionHandler(engine LedgerEngine) *TransactionHandler {
	return &TransactionHandler{engine: engine}
}

// TransactionRequest is the request body for all three operations. Which
// account fields are required depends on the endpoint; that check belongs to
// ledger.ValidateRequest, not the binding layer.
type TransactionRequest struct {
	FromAccountNo string          `json:"fromAccountNo"`
	ToAccountNo   string          `json:"toAccountNo"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"omitempty,oneof=EUR GBP USD JPY"`
}

type TransferResponse struct {
	Transferred money.Money `json:"transferred"`
}

// bindAmount parses and validates the body shared by the three endpoints,
// answering the request itself on failure.
func (h *TransactionHandler) bindAmount(c *gin.Context, action ledger.Action) (TransactionRequest, money.Money, bool) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return req, money.Money{}, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return req, money.Money{}, false
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	amount, err := money.New(req.Amount, currency)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
		return req, money.Money{}, false
	}
	if !amount.IsPositive() {
		middleware.RespondWithError(c, http.StatusBadRequest, "Amount must be greater than zero")
		return req, money.Money{}, false
	}

	if err := ledger.ValidateRequest(ledger.TransactionRequest{
		FromAccountNo: req.FromAccountNo,
		ToAccountNo:   req.ToAccountNo,
		Amount:        amount,
	}, action); err != nil {
		respondDomainError(c, err)
		return req, money.Money{}, false
	}
	return req, amount, true
}

func (h *TransactionHandler) Deposit(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	req, amount, ok := h.bindAmount(c, ledger.ActionDeposit)
	if !ok {
		return
	}

	account, err := h.engine.Deposit(c.Request.Context(), req.ToAccountNo, amount, principal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *TransactionHandler) Withdraw(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	req, amount, ok := h.bindAmount(c, ledger.ActionWithdraw)
	if !ok {
		return
	}

	account, err := h.engine.Withdraw(c.Request.Context(), req.FromAccountNo, amount, principal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *TransactionHandler) Transfer(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	req, amount, ok := h.bindAmount(c, ledger.ActionTransfer)
	if !ok {
		return
	}

	moved, err := h.engine.Transfer(c.Request.Context(), req.FromAccountNo, req.ToAccountNo, amount, principal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, TransferResponse{Transferred: moved})
}

// respondDomainError maps the ledger error taxonomy onto HTTP statuses. This
// is the only place transport codes and domain errors meet.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, ledger.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrUnauthenticated):
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, ledger.ErrUnauthorized), errors.Is(err, ledger.ErrPolicyViolation):
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrStoreTimeout):
		middleware.RespondWithError(c, http.StatusServiceUnavailable, "Ledger busy, please retry")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
