package store

import (
	"context"
	"errors"
	"fmt"

	"orderdesk/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const upsertCollection = `
	INSERT INTO collections (name, data, updated_at)
	VALUES ($1, CAST($2::text AS json), NOW())
	ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
`

// PostgresStore keeps each collection as one row of the collections table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}
}

// Bootstrap creates the collections table and an empty row per missing collection.
func (s *PostgresStore) Bootstrap(ctx context.Context, collections ...string) error {
	if err := database.Migrate(ctx, s.pool, s.logger); err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}

	query := `
		INSERT INTO collections (name, data)
		VALUES ($1, CAST($2::text AS json))
		ON CONFLICT (name) DO NOTHING
	`
	for _, c := range collections {
		if _, err := s.pool.Exec(ctx, query, c, string(emptyCollection)); err != nil {
			s.logger.Error().Err(err).Str("collection", c).Msg("failed to initialise collection")
			return fmt.Errorf("failed to initialise collection %s: %w", c, err)
		}
	}

	return nil
}

// Load retrieves the collection document.
func (s *PostgresStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data string
	err := s.pool.QueryRow(ctx, `SELECT data::text FROM collections WHERE name = $1`, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Str("collection", collection).Msg("collection not found")
			return emptyCollection, nil
		}
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to query collection")
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	return []byte(data), nil
}

// Save replaces the collection document.
func (s *PostgresStore) Save(ctx context.Context, collection string, data []byte) error {
	if _, err := s.pool.Exec(ctx, upsertCollection, collection, string(data)); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to save collection")
		return fmt.Errorf("failed to save collection %s: %w", collection, err)
	}
	return nil
}

// SaveBatch replaces every collection in writes within a single transaction.
func (s *PostgresStore) SaveBatch(ctx context.Context, writes []Write) (err error) {
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	batch := &pgx.Batch{}
	for _, w := range writes {
		batch.Queue(upsertCollection, w.Collection, string(w.Data))
	}

	results := tx.SendBatch(ctx, batch)
	for _, w := range writes {
		if _, err = results.Exec(); err != nil {
			results.Close()
			s.logger.Error().Err(err).Str("collection", w.Collection).Msg("failed to save collection")
			return fmt.Errorf("failed to save collection %s: %w", w.Collection, err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug().Int("collections", len(writes)).Msg("batch committed")
	return nil
}
