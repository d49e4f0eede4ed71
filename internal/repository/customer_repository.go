package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
)

// CustomerRepository resolves customers for ownership checks and for the
// account-listing read path. It is read-only: provisioning customers is an
// out-of-scope collaborator's job.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*ledger.Customer, error) {
	query := `SELECT id, name, username FROM customers WHERE id = $1`
	var customer ledger.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.OwnerUsername)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByUsername(ctx context.Context, username string) (*ledger.Customer, error) {
	query := `SELECT id, name, username FROM customers WHERE username = $1`
	var customer ledger.Customer
	err := r.db.QueryRowContext(ctx, query, username).Scan(&customer.ID, &customer.Name, &customer.OwnerUsername)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}
