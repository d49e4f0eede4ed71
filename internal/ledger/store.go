package ledger

import (
	"context"
	"time"

	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

// AccountStore is the collaborator contract for durable account state. Inside
// a unit of work, FindByAccountNo must return the current committed balance
// (not a stale snapshot) and Save must stage the write for atomic commit.
type AccountStore interface {
	FindByAccountNo(ctx context.Context, accountNo string) (*Account, error)
	Save(ctx context.Context, account *Account) error
}

// CustomerStore resolves account ownership.
type CustomerStore interface {
	FindByID(ctx context.Context, id string) (*Customer, error)
}

// UnitOfWork runs fn against a transaction-scoped AccountStore. All saves made
// by fn commit together or not at all; any error from fn, and cancellation of
// ctx before commit, must roll the transaction back completely.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(AccountStore) error) error
}

// CompletedTransaction describes a committed ledger operation for downstream
// notification. Balances holds the post-commit balance of every touched account.
type CompletedTransaction struct {
	ID            string
	Type          string
	FromAccountNo string
	ToAccountNo   string
	Amount        money.Money
	Balances      map[string]money.Money
	CompletedAt   time.Time
}

// Recorder receives successful operations after commit. Implementations must
// not fail the operation; delivery is best effort.
type Recorder interface {
	TransactionCompleted(ctx context.Context, tx CompletedTransaction)
}
