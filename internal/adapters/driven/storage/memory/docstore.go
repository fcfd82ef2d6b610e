// Package memory provides in-memory implementations of the driven store
// interfaces. They back tests and the MCP server's ephemeral mode, where
// nothing should touch the filesystem.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu      sync.RWMutex
	records map[string]domain.DocumentRecord
}

// NewDocumentStore creates an empty in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{records: make(map[string]domain.DocumentRecord)}
}

// Put inserts or replaces a document record.
func (s *DocumentStore) Put(_ context.Context, rec domain.DocumentRecord) error {
	if rec.DocID == "" {
		return fmt.Errorf("document record: %w", domain.ErrInvalidInput)
	}
	if rec.IngestedAt.IsZero() {
		rec.IngestedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = domain.StatusQueued
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.DocID] = rec
	return nil
}

// Get returns the record for a document id.
func (s *DocumentStore) Get(_ context.Context, docID string) (*domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns all records, most recently ingested first.
func (s *DocumentStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DocumentRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IngestedAt.Equal(out[j].IngestedAt) {
			return out[i].IngestedAt.After(out[j].IngestedAt)
		}
		return out[i].DocID < out[j].DocID
	})
	return out, nil
}

// SetStatus updates the lifecycle status of a document.
func (s *DocumentStore) SetStatus(_ context.Context, docID string, status domain.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[docID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	s.records[docID] = rec
	return nil
}

// SetExtractionStatus updates one extraction status field.
func (s *DocumentStore) SetExtractionStatus(_ context.Context, docID, itemType string, status domain.ExtractionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[docID]
	if !ok {
		return domain.ErrNotFound
	}
	switch itemType {
	case "definitions":
		rec.DefinitionsStatus = status
	case "entitlements":
		rec.EntitlementsStatus = status
	default:
		return fmt.Errorf("extraction type %q: %w", itemType, domain.ErrInvalidInput)
	}
	s.records[docID] = rec
	return nil
}

// Close is a no-op for the in-memory store.
func (s *DocumentStore) Close() error {
	return nil
}
