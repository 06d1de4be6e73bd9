package repository

import (
	"context"
	"sync"

	"orderdesk/internal/model"
	"orderdesk/internal/store"

	"github.com/rs/zerolog"
)

// Repository gives access to the produits and commandes collections.
type Repository interface {
	// ListProducts reads the current catalogue.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// ListOrders reads every committed order.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// Update loads both collections fresh, runs fn against them and persists
	// whatever fn changed. If fn returns an error nothing is persisted.
	// Updates are serialised process-wide.
	Update(ctx context.Context, fn func(tx *Tx) error) error
}

// Tx holds the collections loaded for one Update call.
type Tx struct {
	Catalog *Catalog
	Orders  *OrderBook
}

// storeRepository implements Repository on top of a store.Store.
type storeRepository struct {
	store  store.Store
	mu     sync.RWMutex
	logger zerolog.Logger
}

// New creates a repository backed by s.
func New(s store.Store, logger zerolog.Logger) Repository {
	return &storeRepository{
		store:  s,
		logger: logger.With().Str("repository", "collections").Logger(),
	}
}

// ListProducts reads the current catalogue.
func (r *storeRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return load[model.Product](ctx, r, store.Products)
}

// ListOrders reads every committed order.
func (r *storeRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return load[model.Order](ctx, r, store.Orders)
}

// Update runs fn under the write lock and commits the changed collections in one batch.
func (r *storeRepository) Update(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := load[model.Product](ctx, r, store.Products)
	if err != nil {
		return err
	}
	orders, err := load[model.Order](ctx, r, store.Orders)
	if err != nil {
		return err
	}

	tx := &Tx{
		Catalog: NewCatalog(products),
		Orders:  NewOrderBook(orders),
	}

	if err := fn(tx); err != nil {
		return err
	}

	var writes []store.Write
	if tx.Catalog.Changed() {
		data, err := store.Encode(tx.Catalog.products)
		if err != nil {
			return model.NewPersistenceError("encode "+store.Products, err)
		}
		writes = append(writes, store.Write{Collection: store.Products, Data: data})
	}
	if tx.Orders.Changed() {
		data, err := store.Encode(tx.Orders.orders)
		if err != nil {
			return model.NewPersistenceError("encode "+store.Orders, err)
		}
		writes = append(writes, store.Write{Collection: store.Orders, Data: data})
	}

	if len(writes) == 0 {
		return nil
	}

	if err := store.SaveAll(ctx, r.store, writes); err != nil {
		r.logger.Error().Err(err).Int("collections", len(writes)).Msg("failed to commit collections")
		return model.NewPersistenceError("commit collections", err)
	}

	r.logger.Debug().Int("collections", len(writes)).Msg("collections committed")
	return nil
}

func load[T any](ctx context.Context, r *storeRepository, collection string) ([]T, error) {
	data, err := r.store.Load(ctx, collection)
	if err != nil {
		r.logger.Error().Err(err).Str("collection", collection).Msg("failed to load collection")
		return nil, model.NewPersistenceError("load "+collection, err)
	}

	records, err := store.Decode[T](data)
	if err != nil {
		r.logger.Error().Err(err).Str("collection", collection).Msg("failed to decode collection")
		return nil, model.NewPersistenceError("decode "+collection, err)
	}

	return records, nil
}
