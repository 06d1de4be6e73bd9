package service

import (
	"context"
	"math"
	"time"

	"orderdesk/internal/events"
	"orderdesk/internal/metrics"
	"orderdesk/internal/model"
	"orderdesk/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	repo      repository.Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.Repository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// List returns every committed order.
func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, err
	}

	s.logger.Debug().Int("count", len(orders)).Msg("retrieved orders")
	return orders, nil
}

// PlaceOrder walks items in request order against a freshly loaded catalogue.
// A produitId with no matching product fails with ProductNotFoundError at its
// position in the walk, whatever its value.
// Stock is decremented as each item is accepted, so a product listed twice is
// checked against what the earlier line left. Nothing is persisted unless
// every item passes.
func (s *orderService) PlaceOrder(ctx context.Context, items []model.OrderLineRequest) (*model.Order, error) {
	if err := s.validateItems(items); err != nil {
		s.metrics.OrderRejected(string(model.KindInvalidInput))
		return nil, err
	}

	var order model.Order
	err := s.repo.Update(ctx, func(tx *repository.Tx) error {
		total := decimal.Zero
		lines := make([]model.OrderLine, 0, len(items))

		for _, item := range items {
			product := tx.Catalog.FindByID(item.ProductID)
			if product == nil {
				return model.NewProductNotFoundError(item.ProductID)
			}

			if product.Stock < item.Quantity {
				return model.NewInsufficientStockError(product)
			}

			total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
			lines = append(lines, model.OrderLine{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})

			tx.Catalog.ApplyStockDelta(product.ID, -item.Quantity)
		}

		// A total beyond float64 range cannot be stored or returned.
		amount := total.InexactFloat64()
		if math.IsInf(amount, 0) {
			return model.NewInvalidInputError(model.MsgTotalOutOfRange)
		}

		order = tx.Orders.Append(model.Order{
			Date:   s.now().UTC(),
			Items:  lines,
			Total:  amount,
			Status: model.StatusInProgress,
		})
		return nil
	})
	if err != nil {
		s.logRejection(err, len(items))
		return nil, err
	}

	s.metrics.OrderPlaced()
	s.logger.Info().
		Int("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Msg("order placed")

	if err := s.publisher.PublishOrderPlaced(ctx, &order); err != nil {
		s.logger.Warn().Err(err).Int("order_id", order.ID).Msg("order committed but event not published")
	}

	return &order, nil
}

// validateItems rejects requests that cannot be placed whatever the catalogue holds.
func (s *orderService) validateItems(items []model.OrderLineRequest) error {
	if len(items) == 0 {
		s.logger.Warn().Msg("order request without items")
		return model.NewInvalidInputError(model.MsgItemsInvalid)
	}

	for i, item := range items {
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int("produit_id", item.ProductID).
				Int("quantite", item.Quantity).
				Msg("invalid quantity")
			return model.NewInvalidInputError(model.MsgQuantityInvalid)
		}
	}

	return nil
}

func (s *orderService) logRejection(err error, itemCount int) {
	kind := model.KindOf(err)
	s.metrics.OrderRejected(string(kind))

	if kind == model.KindProductNotFound || kind == model.KindInsufficientStock || kind == model.KindInvalidInput {
		s.logger.Warn().Err(err).Str("kind", string(kind)).Int("item_count", itemCount).Msg("order rejected")
		return
	}
	s.logger.Error().Err(err).Int("item_count", itemCount).Msg("failed to place order")
}
