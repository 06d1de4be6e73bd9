package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStore keeps each collection under <prefix><collection>.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client, prefix string, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: logger.With().Str("store", "redis").Logger(),
	}
}

func (s *RedisStore) key(collection string) string {
	return s.prefix + collection
}

// Bootstrap sets each missing collection key to "[]".
func (s *RedisStore) Bootstrap(ctx context.Context, collections ...string) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to ping redis")
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	for _, c := range collections {
		created, err := s.client.SetNX(ctx, s.key(c), emptyCollection, 0).Result()
		if err != nil {
			s.logger.Error().Err(err).Str("collection", c).Msg("failed to initialise collection")
			return fmt.Errorf("failed to initialise collection %s: %w", c, err)
		}
		if created {
			s.logger.Info().Str("collection", c).Msg("collection initialised")
		}
	}

	return nil
}

// Load retrieves the collection document.
func (s *RedisStore) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return emptyCollection, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to get collection")
		return nil, fmt.Errorf("failed to get collection %s: %w", collection, err)
	}
	return data, nil
}

// Save replaces the collection document.
func (s *RedisStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to set collection")
		return fmt.Errorf("failed to set collection %s: %w", collection, err)
	}
	return nil
}

// SaveBatch replaces every collection in writes inside one MULTI/EXEC block.
func (s *RedisStore) SaveBatch(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range writes {
			pipe.Set(ctx, s.key(w.Collection), w.Data, 0)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("collections", len(writes)).Msg("failed to commit batch")
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
