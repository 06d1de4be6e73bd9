// Package store persists named collections as JSON array documents.
//
// A collection is always read and written whole. Backends only move bytes;
// Encode and Decode fix the on-disk format so every backend stores the same
// document for the same records.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Collection names.
const (
	Products = "produits"
	Orders   = "commandes"
)

var emptyCollection = []byte("[]")

// Store loads and saves whole collections.
type Store interface {
	// Bootstrap creates every missing collection as an empty array.
	Bootstrap(ctx context.Context, collections ...string) error

	// Load returns the collection document. A missing collection reads as "[]".
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save replaces the collection document.
	Save(ctx context.Context, collection string, data []byte) error
}

// Write is one collection replacement within a batch.
type Write struct {
	Collection string
	Data       []byte
}

// Batcher is implemented by stores that can replace several collections atomically.
type Batcher interface {
	SaveBatch(ctx context.Context, writes []Write) error
}

// SaveAll persists writes in one batch when s supports it, otherwise one at a time in order.
func SaveAll(ctx context.Context, s Store, writes []Write) error {
	if b, ok := s.(Batcher); ok {
		return b.SaveBatch(ctx, writes)
	}

	for _, w := range writes {
		if err := s.Save(ctx, w.Collection, w.Data); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses a collection document. Blank input decodes to an empty slice.
func Decode[T any](data []byte) ([]T, error) {
	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Encode renders records as a two-space indented JSON array.
func Encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}
