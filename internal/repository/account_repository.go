package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

const defaultTxTimeout = 5 * time.Second

// AccountRepository is the PostgreSQL write store for accounts. It implements
// ledger.UnitOfWork: each engine operation runs inside one database
// transaction with row locks, so the read-check-mutate-write sequence is
// atomic and isolated from concurrent operations on the same accounts.
type AccountRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db, timeout: defaultTxTimeout}
}

// WithinTx runs fn inside a transaction bounded by the store timeout.
// FindByAccountNo takes row locks (SELECT ... FOR UPDATE), so balances read by
// fn are the committed values, not a stale snapshot. Rollback is guaranteed on
// every non-commit path, including fn errors and context cancellation.
func (r *AccountRepository) WithinTx(ctx context.Context, fn func(ledger.AccountStore) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translateCtxErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	if err := fn(&txAccountStore{tx: tx}); err != nil {
		tx.Rollback()
		return translateCtxErr(err)
	}
	if err := ctx.Err(); err != nil {
		tx.Rollback()
		return translateCtxErr(err)
	}
	if err := tx.Commit(); err != nil {
		return translateCtxErr(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// translateCtxErr surfaces deadline expiry as the retryable store timeout
// instead of letting the operation look like an internal failure.
func translateCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ledger.ErrStoreTimeout, err)
	}
	return err
}

// txAccountStore scopes account reads and writes to one transaction.
type txAccountStore struct {
	tx *sql.Tx
}

func (s *txAccountStore) FindByAccountNo(ctx context.Context, accountNo string) (*ledger.Account, error) {
	query := `
		SELECT account_no, customer_id, account_type, balance, currency
		FROM accounts
		WHERE account_no = $1
		FOR UPDATE
	`
	var (
		account ledger.Account
		balance decimal.Decimal
	)
	err := s.tx.QueryRowContext(ctx, query, accountNo).Scan(
		&account.AccountNo, &account.OwnerCustomerID, &account.AccountType,
		&balance, &account.Currency,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account.Balance = money.Money{Amount: balance, Currency: account.Currency}
	return &account, nil
}

func (s *txAccountStore) Save(ctx context.Context, account *ledger.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, updated_at = NOW()
		WHERE account_no = $1
	`
	result, err := s.tx.ExecContext(ctx, query, account.AccountNo, account.Balance.Amount)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}
