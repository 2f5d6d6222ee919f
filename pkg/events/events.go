package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	OrderCreated = "order_created"
	OrderDeleted = "order_deleted"

	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event Event) error
}

type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Discard is used when no brokers are configured.
type Discard struct{}

func (Discard) PublishEvent(context.Context, string, string, Event) error { return nil }
