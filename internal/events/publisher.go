package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxStreamLen caps each stream with an approximate trim so an unconsumed
// backlog cannot grow without bound.
const maxStreamLen = 10_000

// StreamPublisher writes ledger events to this service's Redis streams. Each
// event type has its own method so a payload can never land on the wrong
// stream.
type StreamPublisher struct {
	client *redis.Client
}

func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// TransactionCompleted appends a committed operation to the transaction stream.
func (p *StreamPublisher) TransactionCompleted(ctx context.Context, payload TransactionCompletedEvent) error {
	return p.append(ctx, TransactionEventsStream, TransactionCompleted, payload)
}

// BalanceUpdated appends a post-commit balance to the account stream.
func (p *StreamPublisher) BalanceUpdated(ctx context.Context, payload BalanceUpdatedEvent) error {
	return p.append(ctx, AccountEventsStream, BalanceUpdated, payload)
}

func (p *StreamPublisher) append(ctx context.Context, stream, eventType string, payload any) error {
	body, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]any{
			"event": body,
		},
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to append to %s: %w", stream, err)
	}
	return nil
}
