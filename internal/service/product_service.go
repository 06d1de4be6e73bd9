package service

import (
	"context"
	"math"
	"strings"
	"time"

	"orderdesk/internal/metrics"
	"orderdesk/internal/model"
	"orderdesk/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo    repository.Repository
	metrics *metrics.Metrics
	now     func() time.Time
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.Repository, m *metrics.Metrics, logger zerolog.Logger) ProductService {
	return &productService{
		repo:    repo,
		metrics: m,
		now:     time.Now,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// List returns every product in the catalogue.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, err
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// Create validates input, assigns the next id and persists the new product.
func (s *productService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateProductInput(name, input); err != nil {
		s.logger.Warn().
			Str("nom", input.Name).
			Float64("prix", input.Price).
			Float64("stock", input.Stock).
			Msg("invalid product input")
		return nil, err
	}

	var created model.Product
	err := s.repo.Update(ctx, func(tx *repository.Tx) error {
		created = tx.Catalog.Add(model.Product{
			Name:      name,
			Price:     input.Price,
			Stock:     int(input.Stock),
			CreatedAt: s.now().UTC(),
		})
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("nom", name).Msg("failed to create product")
		return nil, err
	}

	s.metrics.ProductCreated()
	s.logger.Info().
		Int("product_id", created.ID).
		Str("nom", created.Name).
		Int("stock", created.Stock).
		Msg("product created")

	return &created, nil
}

func validateProductInput(name string, input model.ProductInput) error {
	if name == "" || !isFinite(input.Price) || !isFinite(input.Stock) {
		return model.NewInvalidInputError(model.MsgProductFieldsRequired)
	}
	if input.Price < 0 || input.Stock < 0 {
		return model.NewInvalidInputError(model.MsgProductNegative)
	}
	if input.Stock != math.Trunc(input.Stock) || input.Stock > math.MaxInt32 {
		return model.NewInvalidInputError(model.MsgStockNotInteger)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
