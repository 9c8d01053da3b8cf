// Package store persists whiteboard documents by key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"scrawl/internal/state"
)

var (
	ErrNotFound    = errors.New("store: key not found")
	ErrInvalidPath = errors.New("store: invalid document path")
)

// TreeKey holds the notes tree and is never a document.
const TreeKey = "dirtree"

// Blobs is a flat key/value byte store.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Store maps document paths to stroke lists encoded as JSON.
type Store struct {
	blobs Blobs
}

func New(b Blobs) *Store {
	return &Store{blobs: b}
}

// NewMemory returns a store that lives only as long as the process.
func NewMemory() *Store {
	return New(NewMemoryBlobs())
}

// Blobs exposes the underlying key/value store for non-document data.
func (s *Store) Blobs() Blobs { return s.blobs }

func checkPath(path string) error {
	if path == "" || path == TreeKey {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

// Load reads the document at path. A path that was never saved yields an
// empty document.
func (s *Store) Load(ctx context.Context, path string) (state.Document, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	data, err := s.blobs.Get(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return state.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	var doc state.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if doc == nil {
		doc = state.Document{}
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, path string, doc state.Document) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if doc == nil {
		doc = state.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := s.blobs.Put(ctx, path, data); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}

// Delete removes the document at path. Deleting a missing path is not an
// error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	err := s.blobs.Delete(ctx, path)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	log.Printf("[store] deleted %q", path)
	return nil
}

// ListKeys returns every stored document path.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.blobs.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := keys[:0]
	for _, k := range keys {
		if k != TreeKey {
			out = append(out, k)
		}
	}
	return out, nil
}
