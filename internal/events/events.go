// Package events publishes ledger outcomes to Redis streams for downstream
// consumers (statements, notifications, fraud screening). Publication happens
// after commit and is best effort; the ledger never fails an operation over a
// missed notification.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TransactionCompleted = "transaction.completed"
	BalanceUpdated       = "balance.updated"
)

// Stream names
const (
	TransactionEventsStream = "transaction.events"
	AccountEventsStream     = "account.events"
)

// Event is the envelope written to a stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type TransactionCompletedEvent struct {
	TransactionID string          `json:"transactionId"`
	Type          string          `json:"transactionType"`
	FromAccountNo string          `json:"fromAccountNo,omitempty"`
	ToAccountNo   string          `json:"toAccountNo,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

type BalanceUpdatedEvent struct {
	AccountNo  string          `json:"accountNo"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Currency   string          `json:"currency"`
}
