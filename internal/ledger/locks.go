package ledger

import (
	"sort"
	"sync"
)

// accountLocks hands out one mutex per account number so operations on
// disjoint accounts never block each other, while operations touching the
// same account serialize. Entries are reference counted and deleted when the
// last holder releases, so lookups for arbitrary account numbers (including
// nonexistent ones) cannot grow the table without bound.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*accountLock)}
}

// acquire registers interest in the account before blocking on its mutex;
// the entry cannot be evicted while anyone holds or waits for it.
func (l *accountLocks) acquire(accountNo string) *accountLock {
	l.mu.Lock()
	e, ok := l.locks[accountNo]
	if !ok {
		e = &accountLock{}
		l.locks[accountNo] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return e
}

func (l *accountLocks) release(accountNo string, e *accountLock) {
	e.mu.Unlock()

	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, accountNo)
	}
	l.mu.Unlock()
}

// lockOrdered acquires the locks for the given account numbers in
// lexicographic order regardless of argument order, so two concurrent
// transfers between the same pair of accounts cannot deadlock. Duplicates are
// collapsed. The returned function releases the locks in reverse order.
func (l *accountLocks) lockOrdered(accountNos ...string) func() {
	nos := make([]string, 0, len(accountNos))
	seen := make(map[string]bool, len(accountNos))
	for _, no := range accountNos {
		if !seen[no] {
			seen[no] = true
			nos = append(nos, no)
		}
	}
	sort.Strings(nos)

	held := make([]*accountLock, 0, len(nos))
	for _, no := range nos {
		held = append(held, l.acquire(no))
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(nos[i], held[i])
		}
	}
}
