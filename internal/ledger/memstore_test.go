package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/surbhisaraf/customer-banking-service/internal/money"
)

// memStore is an in-memory AccountStore/CustomerStore/UnitOfWork used by the
// engine tests. Writes are staged per transaction and applied atomically on
// commit, mirroring the contract the Postgres repository provides.
type memStore struct {
	mu        sync.Mutex
	accounts  map[string]*Account
	customers map[string]*Customer

	// failOnSave fails the Nth Save call across the store; 0 never fails.
	failOnSave int
	saves      int

	// findGate, when set, runs before each uncached account lookup; tests use
	// it to hold a transaction open at a known point.
	findGate func(accountNo string)
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[string]*Account),
		customers: make(map[string]*Customer),
	}
}

func (s *memStore) put(a *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.AccountNo] = a.Clone()
}

func (s *memStore) putCustomer(c *Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

func (s *memStore) balance(accountNo string) money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountNo].Balance
}

func (s *memStore) FindByID(ctx context.Context, id string) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (s *memStore) WithinTx(ctx context.Context, fn func(AccountStore) error) error {
	tx := &memTx{store: s, staged: make(map[string]*Account)}
	if err := fn(tx); err != nil {
		return err
	}
	// Cancellation before commit leaves the store untouched.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for no, a := range tx.staged {
		s.accounts[no] = a.Clone()
	}
	return nil
}

type memTx struct {
	store  *memStore
	staged map[string]*Account
}

func (t *memTx) FindByAccountNo(ctx context.Context, accountNo string) (*Account, error) {
	if a, ok := t.staged[accountNo]; ok {
		return a, nil
	}
	if t.store.findGate != nil {
		t.store.findGate(accountNo)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	a, ok := t.store.accounts[accountNo]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (t *memTx) Save(ctx context.Context, account *Account) error {
	s := t.store
	s.mu.Lock()
	s.saves++
	fail := s.failOnSave != 0 && s.saves == s.failOnSave
	s.mu.Unlock()
	if fail {
		return errors.New("save failed")
	}
	t.staged[account.AccountNo] = account.Clone()
	return nil
}
