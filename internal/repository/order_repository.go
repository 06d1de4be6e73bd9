package repository

import (
	"orderdesk/internal/model"
)

// OrderBook is an in-memory view over the commandes collection. Orders can
// only be appended.
type OrderBook struct {
	orders  []model.Order
	changed bool
}

// NewOrderBook wraps orders loaded from the store.
func NewOrderBook(orders []model.Order) *OrderBook {
	return &OrderBook{orders: orders}
}

// Orders returns a copy of the order list in stored order.
func (b *OrderBook) Orders() []model.Order {
	out := make([]model.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// NextID returns max(id)+1, or 1 when there are no orders.
func (b *OrderBook) NextID() int {
	return nextID(b.orders, func(o model.Order) int { return o.ID })
}

// Append assigns the next id to o and appends it.
func (b *OrderBook) Append(o model.Order) model.Order {
	o.ID = b.NextID()
	b.orders = append(b.orders, o)
	b.changed = true
	return o
}

// Changed reports whether an order was appended since the book was loaded.
func (b *OrderBook) Changed() bool {
	return b.changed
}
