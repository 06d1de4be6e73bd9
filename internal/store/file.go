package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileStore keeps each collection in <dir>/<collection>.json.
type FileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger.With().Str("store", "file").Str("dir", dir).Logger(),
	}
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Bootstrap creates the data directory and writes "[]" for each missing collection.
func (s *FileStore) Bootstrap(ctx context.Context, collections ...string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Msg("failed to create data directory")
		return fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}

	for _, c := range collections {
		_, err := os.Stat(s.path(c))
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat collection %s: %w", c, err)
		}
		if err := s.Save(ctx, c, emptyCollection); err != nil {
			return err
		}
		s.logger.Info().Str("collection", c).Msg("collection initialised")
	}

	return nil
}

// Load reads the collection file.
func (s *FileStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyCollection, nil
		}
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to read collection")
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	return data, nil
}

// Save writes the collection through a temporary file and a rename, so readers
// never observe a half-written document.
func (s *FileStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to create temp file")
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close collection %s: %w", collection, err)
	}

	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to replace collection file")
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}

	s.logger.Debug().Str("collection", collection).Int("bytes", len(data)).Msg("collection saved")
	return nil
}
