package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surbhisaraf/customer-banking-service/internal/middleware"
	"github.com/surbhisaraf/customer-banking-service/internal/repository"
)

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	ListAccounts(ctx context.Context, principal string) ([]repository.AccountView, error)
	GetAccount(ctx context.Context, accountNo, principal string) (*repository.AccountView, error)
}

type AccountHandler struct {
	queries AccountQuerier
}

type ListAccountsResponse struct {
	Accounts []repository.AccountView `json:"accounts"`
}

func NewAccountHandler(queries AccountQuerier) *AccountHandler {
	return &AccountHandler{queries: queries}
}

// ListAccounts returns every account owned by the authenticated customer.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	views, err := h.queries.ListAccounts(c.Request.Context(), principal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if views == nil {
		views = []repository.AccountView{}
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

// GetAccount returns a single account view. Customers can only read accounts
// they own.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), c.Param("accountNo"), principal)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
