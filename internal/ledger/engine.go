// Package ledger implements the transaction engine: the single component
// allowed to mutate account balances. Every operation is a read-check-mutate-
// write unit of work executed under per-account locks, so concurrent requests
// can never lose an update or observe a half-applied transfer.
package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

// Engine orchestrates account lookup, policy checks and balance mutation.
// It holds no durable state of its own; all account data lives behind the
// UnitOfWork. The engine is safe for concurrent use.
type Engine struct {
	uow       UnitOfWork
	customers CustomerStore
	policy    Policy
	locks     *accountLocks
	recorder  Recorder
}

// NewEngine wires the engine to its collaborators. recorder may be nil when
// no post-commit notification is wanted.
func NewEngine(uow UnitOfWork, customers CustomerStore, policy Policy, recorder Recorder) *Engine {
	return &Engine{
		uow:       uow,
		customers: customers,
		policy:    policy,
		locks:     newAccountLocks(),
		recorder:  recorder,
	}
}

// Deposit credits amount to the given account and returns the updated account.
// Only the owning customer may deposit; the rule order is lookup, ownership,
// amount.
func (e *Engine) Deposit(ctx context.Context, toAccountNo string, amount money.Money, principal string) (*Account, error) {
	if principal == "" {
		return nil, ErrUnauthenticated
	}

	unlock := e.locks.lockOrdered(toAccountNo)
	defer unlock()

	var updated *Account
	err := e.uow.WithinTx(ctx, func(store AccountStore) error {
		account, err := store.FindByAccountNo(ctx, toAccountNo)
		if err != nil {
			return err
		}
		if err := e.checkOwnership(ctx, account, principal, "deposit into"); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return fmt.Errorf("%w: deposit amount must be greater than zero", ErrInvalidAmount)
		}
		balance, err := account.Balance.Add(amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		account.Balance = balance
		if err := store.Save(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(ctx, CompletedTransaction{
		Type:        "deposit",
		ToAccountNo: toAccountNo,
		Amount:      amount,
		Balances:    map[string]money.Money{toAccountNo: updated.Balance},
	})
	return updated, nil
}

// Withdraw debits amount from the given account and returns the updated
// account. Savings accounts cannot be withdrawn from, and sufficient funds
// are checked under the account lock so a concurrent debit cannot overdraw.
func (e *Engine) Withdraw(ctx context.Context, fromAccountNo string, amount money.Money, principal string) (*Account, error) {
	if principal == "" {
		return nil, ErrUnauthenticated
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be greater than zero", ErrInvalidAmount)
	}

	unlock := e.locks.lockOrdered(fromAccountNo)
	defer unlock()

	var updated *Account
	err := e.uow.WithinTx(ctx, func(store AccountStore) error {
		account, err := store.FindByAccountNo(ctx, fromAccountNo)
		if err != nil {
			return err
		}
		if err := e.checkOwnership(ctx, account, principal, "withdraw from"); err != nil {
			return err
		}
		if !e.policy.AllowsDebit(account) {
			return fmt.Errorf("%w: withdrawal is not permitted from a savings account", ErrPolicyViolation)
		}
		if !e.policy.HasSufficientFunds(account, amount) {
			return fmt.Errorf("%w: balance %s cannot cover %s", ErrInsufficientFunds, account.Balance, amount)
		}
		balance, err := account.Balance.Sub(amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		account.Balance = balance
		if err := store.Save(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(ctx, CompletedTransaction{
		Type:          "withdrawal",
		FromAccountNo: fromAccountNo,
		Amount:        amount,
		Balances:      map[string]money.Money{fromAccountNo: updated.Balance},
	})
	return updated, nil
}

// Transfer moves amount from one account to another and returns the amount
// moved. Both balance mutations commit as one unit; locks are taken in a
// fixed total order over the two account numbers. Rule order follows the
// ledger contract: sender lookup, receiver lookup, savings restriction,
// transfer limit, ownership, funds.
func (e *Engine) Transfer(ctx context.Context, fromAccountNo, toAccountNo string, amount money.Money, principal string) (money.Money, error) {
	if principal == "" {
		return money.Money{}, ErrUnauthenticated
	}
	if !amount.IsPositive() {
		return money.Money{}, fmt.Errorf("%w: transfer amount must be greater than zero", ErrInvalidAmount)
	}
	if fromAccountNo == toAccountNo {
		return money.Money{}, fmt.Errorf("%w: transfer requires two distinct accounts", ErrPolicyViolation)
	}

	unlock := e.locks.lockOrdered(fromAccountNo, toAccountNo)
	defer unlock()

	var fromBalance, toBalance money.Money
	err := e.uow.WithinTx(ctx, func(store AccountStore) error {
		from, err := store.FindByAccountNo(ctx, fromAccountNo)
		if err != nil {
			return fmt.Errorf("sender %w", err)
		}
		to, err := store.FindByAccountNo(ctx, toAccountNo)
		if err != nil {
			return fmt.Errorf("receiver %w", err)
		}
		if !e.policy.AllowsDebit(from) {
			return fmt.Errorf("%w: transfer is not permitted from a savings account", ErrPolicyViolation)
		}
		sameCustomer := from.OwnerCustomerID == to.OwnerCustomerID
		if !e.policy.WithinTransferLimit(amount, sameCustomer) {
			limit := e.policy.TransferLimit(sameCustomer)
			if sameCustomer {
				return fmt.Errorf("%w: transfer is not permitted for more than %s between accounts of the same customer", ErrPolicyViolation, limit)
			}
			return fmt.Errorf("%w: transfer is not permitted for more than %s to another customer's account", ErrPolicyViolation, limit)
		}
		if err := e.checkOwnership(ctx, from, principal, "transfer from"); err != nil {
			return err
		}
		if !e.policy.HasSufficientFunds(from, amount) {
			return fmt.Errorf("%w: balance %s in sender's account cannot cover %s", ErrInsufficientFunds, from.Balance, amount)
		}

		debited, err := from.Balance.Sub(amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		credited, err := to.Balance.Add(amount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		from.Balance = debited
		to.Balance = credited
		if err := store.Save(ctx, from); err != nil {
			return err
		}
		if err := store.Save(ctx, to); err != nil {
			return err
		}
		fromBalance, toBalance = from.Balance, to.Balance
		return nil
	})
	if err != nil {
		return money.Money{}, err
	}

	e.record(ctx, CompletedTransaction{
		Type:          "transfer",
		FromAccountNo: fromAccountNo,
		ToAccountNo:   toAccountNo,
		Amount:        amount,
		Balances: map[string]money.Money{
			fromAccountNo: fromBalance,
			toAccountNo:   toBalance,
		},
	})
	return amount, nil
}

// checkOwnership resolves the account's customer and verifies the principal
// owns it. Rejections are audit-logged.
func (e *Engine) checkOwnership(ctx context.Context, account *Account, principal, action string) error {
	owner, err := e.customers.FindByID(ctx, account.OwnerCustomerID)
	if err != nil {
		return err
	}
	if !e.policy.IsOwnedBy(owner, principal) {
		log.Printf("audit: principal %q denied attempt to %s account %s", principal, action, account.AccountNo)
		return fmt.Errorf("%w: cannot %s another customer's account", ErrUnauthorized, action)
	}
	return nil
}

func (e *Engine) record(ctx context.Context, tx CompletedTransaction) {
	if e.recorder == nil {
		return
	}
	tx.ID = "tan-" + uuid.NewString()
	tx.CompletedAt = time.Now().UTC()
	e.recorder.TransactionCompleted(ctx, tx)
}
