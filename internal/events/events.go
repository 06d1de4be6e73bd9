// Package events publishes order lifecycle events.
package events

import (
	"context"
	"time"

	"orderdesk/internal/model"

	"github.com/google/uuid"
)

// TypeOrderPlaced is emitted once per committed order.
const TypeOrderPlaced = "order.placed"

// Event is the envelope written to the broker.
type Event struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	OrderID   int          `json:"order_id"`
	CreatedAt time.Time    `json:"created_at"`
	Payload   *model.Order `json:"payload"`
}

// NewOrderPlacedEvent wraps a committed order.
func NewOrderPlacedEvent(order *model.Order) Event {
	return Event{
		EventID:   uuid.NewString(),
		Type:      TypeOrderPlaced,
		OrderID:   order.ID,
		CreatedAt: time.Now().UTC(),
		Payload:   order,
	}
}

// Publisher announces committed orders to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.Order) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderPlaced(context.Context, *model.Order) error { return nil }
func (nopPublisher) Close() error                                           { return nil }
