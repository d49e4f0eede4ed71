package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
	svcredis "github.com/surbhisaraf/customer-banking-service/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// AccountView is the read-model projection served to clients. CustomerID is
// kept internally for ownership checks but never rendered.
type AccountView struct {
	AccountNo   string          `json:"accountNo"`
	CustomerID  string          `json:"-"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	UpdatedAt   time.Time       `json:"updatedTimestamp"`
}

// accountCacheEntry is the Redis representation of an account view. Unlike
// AccountView it serialises CustomerID, so ownership can be checked from the
// cache without a database round trip.
type accountCacheEntry struct {
	AccountNo   string          `json:"accountNo"`
	CustomerID  string          `json:"customerId"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
	UpdatedAt   time.Time       `json:"updatedTimestamp"`
}

// AccountReadRepository serves account reads. Redis holds the projection;
// PostgreSQL is the transparent fallback, warming the cache on cold reads.
type AccountReadRepository struct {
	db    *sql.DB
	cache *svcredis.ViewCache[accountCacheEntry]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: svcredis.NewViewCache[accountCacheEntry](redisClient, 0),
	}
}

func entryToView(e *accountCacheEntry) *AccountView {
	return &AccountView{
		AccountNo:   e.AccountNo,
		CustomerID:  e.CustomerID,
		AccountType: e.AccountType,
		Balance:     e.Balance,
		Currency:    e.Currency,
		UpdatedAt:   e.UpdatedAt,
	}
}

func viewToEntry(v *AccountView) *accountCacheEntry {
	return &accountCacheEntry{
		AccountNo:   v.AccountNo,
		CustomerID:  v.CustomerID,
		AccountType: v.AccountType,
		Balance:     v.Balance,
		Currency:    v.Currency,
		UpdatedAt:   v.UpdatedAt,
	}
}

// GetByAccountNo returns an account view, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByAccountNo(ctx context.Context, accountNo string) (*AccountView, error) {
	cacheKey := accountViewKeyPrefix + accountNo

	if entry, ok := r.cache.Get(ctx, cacheKey); ok {
		return entryToView(entry), nil
	}

	query := `
		SELECT account_no, customer_id, account_type, balance, currency, updated_at
		FROM accounts
		WHERE account_no = $1
	`
	var view AccountView
	err := r.db.QueryRowContext(ctx, query, accountNo).Scan(
		&view.AccountNo, &view.CustomerID, &view.AccountType,
		&view.Balance, &view.Currency, &view.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account view: %w", err)
	}

	r.CacheAccountView(ctx, &view)
	return &view, nil
}

// ListByCustomerID returns all account views owned by the customer.
func (r *AccountReadRepository) ListByCustomerID(ctx context.Context, customerID string) ([]AccountView, error) {
	query := `
		SELECT account_no, customer_id, account_type, balance, currency, updated_at
		FROM accounts
		WHERE customer_id = $1
		ORDER BY account_no
	`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var views []AccountView
	for rows.Next() {
		var view AccountView
		if err := rows.Scan(
			&view.AccountNo, &view.CustomerID, &view.AccountType,
			&view.Balance, &view.Currency, &view.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account view: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return views, nil
}

// CacheAccountView warms the Redis projection for one account.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *AccountView) {
	r.cache.Set(ctx, accountViewKeyPrefix+view.AccountNo, viewToEntry(view))
}

// InvalidateAccountView drops the cached projection after a balance change;
// the next read repopulates it from PostgreSQL.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, accountNo string) {
	r.cache.Delete(ctx, accountViewKeyPrefix+accountNo)
}
