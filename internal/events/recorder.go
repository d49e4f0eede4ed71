package events

import (
	"context"
	"log"

	"github.com/surbhisaraf/customer-banking-service/internal/ledger"
)

// ViewInvalidator drops a cached account projection after its balance changed.
type ViewInvalidator interface {
	InvalidateAccountView(ctx context.Context, accountNo string)
}

// EventSink is the stream surface the recorder publishes to. StreamPublisher
// satisfies it.
type EventSink interface {
	TransactionCompleted(ctx context.Context, payload TransactionCompletedEvent) error
	BalanceUpdated(ctx context.Context, payload BalanceUpdatedEvent) error
}

// LedgerRecorder is the engine's post-commit sink: it invalidates stale read
// model entries and publishes the committed operation to the event streams.
// It implements ledger.Recorder.
type LedgerRecorder struct {
	sink  EventSink
	views ViewInvalidator
}

func NewLedgerRecorder(sink EventSink, views ViewInvalidator) *LedgerRecorder {
	return &LedgerRecorder{sink: sink, views: views}
}

// TransactionCompleted runs after the unit of work committed; by then the
// operation is final, so every failure here is logged and swallowed.
func (r *LedgerRecorder) TransactionCompleted(ctx context.Context, tx ledger.CompletedTransaction) {
	err := r.sink.TransactionCompleted(ctx, TransactionCompletedEvent{
		TransactionID: tx.ID,
		Type:          tx.Type,
		FromAccountNo: tx.FromAccountNo,
		ToAccountNo:   tx.ToAccountNo,
		Amount:        tx.Amount.Amount,
		Currency:      tx.Amount.Currency,
	})
	if err != nil {
		log.Printf("Failed to publish %s event for %s: %v", TransactionCompleted, tx.ID, err)
	}

	for accountNo, balance := range tx.Balances {
		if r.views != nil {
			r.views.InvalidateAccountView(ctx, accountNo)
		}
		err := r.sink.BalanceUpdated(ctx, BalanceUpdatedEvent{
			AccountNo:  accountNo,
			NewBalance: balance.Amount,
			Currency:   balance.Currency,
		})
		if err != nil {
			log.Printf("Failed to publish %s event for account %s: %v", BalanceUpdated, accountNo, err)
		}
	}
}
