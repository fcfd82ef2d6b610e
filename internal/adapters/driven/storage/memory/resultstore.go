package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore is an in-memory implementation of driven.ResultStore.
type ResultStore struct {
	mu           sync.RWMutex
	chunkSets    map[string]*domain.ChunkSet
	definitions  map[string]*domain.DefinitionsResult
	entitlements map[string]*domain.EntitlementsResult
	feedback     map[string][]domain.FeedbackItem
}

// NewResultStore creates an empty in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		chunkSets:    make(map[string]*domain.ChunkSet),
		definitions:  make(map[string]*domain.DefinitionsResult),
		entitlements: make(map[string]*domain.EntitlementsResult),
		feedback:     make(map[string][]domain.FeedbackItem),
	}
}

// PutChunkSet replaces the stored chunk set for a document.
func (s *ResultStore) PutChunkSet(_ context.Context, set *domain.ChunkSet) error {
	if set == nil || set.DocID == "" {
		return fmt.Errorf("chunk set: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunkSets[set.DocID] = set
	return nil
}

// GetChunkSet loads the stored chunk set for a document.
func (s *ResultStore) GetChunkSet(_ context.Context, docID string) (*domain.ChunkSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.chunkSets[docID]
	if !ok {
		return nil, domain.ErrNoChunks
	}
	return set, nil
}

// ListChunkSets returns the doc ids that have a stored chunk set, sorted.
func (s *ResultStore) ListChunkSets(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.chunkSets))
	for id := range s.chunkSets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// PutDefinitions replaces the definitions result for a document.
func (s *ResultStore) PutDefinitions(_ context.Context, res *domain.DefinitionsResult) error {
	if res == nil || res.DocID == "" {
		return fmt.Errorf("definitions result: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[res.DocID] = res
	return nil
}

// GetDefinitions loads the definitions result for a document.
func (s *ResultStore) GetDefinitions(_ context.Context, docID string) (*domain.DefinitionsResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.definitions[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

// PutEntitlements replaces the entitlements result for a document.
func (s *ResultStore) PutEntitlements(_ context.Context, res *domain.EntitlementsResult) error {
	if res == nil || res.DocID == "" {
		return fmt.Errorf("entitlements result: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entitlements[res.DocID] = res
	return nil
}

// GetEntitlements loads the entitlements result for a document.
func (s *ResultStore) GetEntitlements(_ context.Context, docID string) (*domain.EntitlementsResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.entitlements[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

// AppendFeedback records a review verdict.
func (s *ResultStore) AppendFeedback(_ context.Context, item domain.FeedbackItem) error {
	if item.DocID == "" {
		return fmt.Errorf("feedback item: %w", domain.ErrInvalidInput)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback[item.DocID] = append(s.feedback[item.DocID], item)
	return nil
}

// ListFeedback returns all recorded verdicts for a document.
func (s *ResultStore) ListFeedback(_ context.Context, docID string) ([]domain.FeedbackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback[docID], nil
}
