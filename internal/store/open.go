package store

import (
	"context"
	"fmt"

	"orderdesk/internal/config"
	"orderdesk/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Open builds the store selected by cfg.Store.Backend and bootstraps the
// produits and commandes collections. The returned close function releases
// backend connections.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Store, func(), error) {
	var (
		s       Store
		closeFn = func() {}
	)

	switch cfg.Store.Backend {
	case config.BackendFile:
		s = NewFileStore(cfg.Store.DataDir, logger)

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialise database: %w", err)
		}
		s = NewPostgresStore(pool, logger)
		closeFn = pool.Close

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s = NewRedisStore(client, cfg.Redis.KeyPrefix, logger)
		closeFn = func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}

	case config.BackendS3:
		client, err := NewS3Client(ctx, cfg.S3.Region)
		if err != nil {
			return nil, nil, err
		}
		s = NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix, logger)

	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}

	if err := s.Bootstrap(ctx, Products, Orders); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to bootstrap store: %w", err)
	}

	logger.Info().Str("backend", cfg.Store.Backend).Msg("store ready")

	return s, closeFn, nil
}
