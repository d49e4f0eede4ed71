package query

import (
	"context"
	"fmt"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
	"github.com/surbhisaraf/customer-banking-service/internal/repository"
)

// AccountQueryService serves the read side: listing the authenticated
// customer's accounts. Balance mutation never goes through here.
type AccountQueryService struct {
	customers *repository.CustomerRepository
	readRepo  *repository.AccountReadRepository
}

func NewAccountQueryService(customers *repository.CustomerRepository, readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{customers: customers, readRepo: readRepo}
}

// ListAccounts resolves the principal's customer record and returns all of
// its account views.
func (s *AccountQueryService) ListAccounts(ctx context.Context, principal string) ([]repository.AccountView, error) {
	customer, err := s.customers.FindByUsername(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.readRepo.ListByCustomerID(ctx, customer.ID)
}

// GetAccount fetches a single account view and enforces ownership: customers
// may only see their own accounts.
func (s *AccountQueryService) GetAccount(ctx context.Context, accountNo, principal string) (*repository.AccountView, error) {
	view, err := s.readRepo.GetByAccountNo(ctx, accountNo)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByUsername(ctx, principal)
	if err != nil {
		return nil, err
	}
	if view.CustomerID != customer.ID {
		return nil, fmt.Errorf("%w: cannot view another customer's account", ledger.ErrUnauthorized)
	}
	return view, nil
}
