package service

import (
	"context"

	"orderdesk/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List returns every product in the catalogue.
	List(ctx context.Context) ([]model.Product, error)

	// Create validates input, assigns the next id and persists the new product.
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// List returns every committed order.
	List(ctx context.Context) ([]model.Order, error)

	// PlaceOrder validates items against the catalogue, decrements stock and
	// records the order. Either everything is persisted or nothing is.
	PlaceOrder(ctx context.Context, items []model.OrderLineRequest) (*model.Order, error)
}
