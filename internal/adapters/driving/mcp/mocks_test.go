package mcp

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// mockSearch is a configurable driving.SearchService.
type mockSearch struct {
	hits    []domain.SearchHit
	err     error
	lastQ   string
	lastF   domain.SearchFilters
	lastLim int
}

func (m *mockSearch) Search(_ context.Context, query string, filters domain.SearchFilters, _ domain.SearchMode, limit int) ([]domain.SearchHit, error) {
	m.lastQ = query
	m.lastF = filters
	m.lastLim = limit
	return m.hits, m.err
}

// mockResults is a minimal driven.ResultStore.
type mockResults struct {
	chunkSets    map[string]*domain.ChunkSet
	definitions  map[string]*domain.DefinitionsResult
	entitlements map[string]*domain.EntitlementsResult
}

func newMockResults() *mockResults {
	return &mockResults{
		chunkSets:    make(map[string]*domain.ChunkSet),
		definitions:  make(map[string]*domain.DefinitionsResult),
		entitlements: make(map[string]*domain.EntitlementsResult),
	}
}

func (m *mockResults) PutChunkSet(_ context.Context, set *domain.ChunkSet) error {
	m.chunkSets[set.DocID] = set
	return nil
}

func (m *mockResults) GetChunkSet(_ context.Context, docID string) (*domain.ChunkSet, error) {
	set, ok := m.chunkSets[docID]
	if !ok {
		return nil, domain.ErrNoChunks
	}
	return set, nil
}

func (m *mockResults) ListChunkSets(context.Context) ([]string, error) {
	var ids []string
	for id := range m.chunkSets {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockResults) PutDefinitions(_ context.Context, res *domain.DefinitionsResult) error {
	m.definitions[res.DocID] = res
	return nil
}

func (m *mockResults) GetDefinitions(_ context.Context, docID string) (*domain.DefinitionsResult, error) {
	res, ok := m.definitions[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (m *mockResults) PutEntitlements(_ context.Context, res *domain.EntitlementsResult) error {
	m.entitlements[res.DocID] = res
	return nil
}

func (m *mockResults) GetEntitlements(_ context.Context, docID string) (*domain.EntitlementsResult, error) {
	res, ok := m.entitlements[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (m *mockResults) AppendFeedback(context.Context, domain.FeedbackItem) error {
	return nil
}

// mockDocs is a minimal driven.DocumentStore.
type mockDocs struct {
	recs []domain.DocumentRecord
}

func (m *mockDocs) Put(_ context.Context, rec domain.DocumentRecord) error {
	m.recs = append(m.recs, rec)
	return nil
}

func (m *mockDocs) Get(_ context.Context, docID string) (*domain.DocumentRecord, error) {
	for i := range m.recs {
		if m.recs[i].DocID == docID {
			return &m.recs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocs) List(context.Context) ([]domain.DocumentRecord, error) {
	return m.recs, nil
}

func (m *mockDocs) SetStatus(context.Context, string, domain.DocumentStatus) error {
	return nil
}

func (m *mockDocs) SetExtractionStatus(context.Context, string, string, domain.ExtractionStatus) error {
	return nil
}

func (m *mockDocs) Close() error {
	return nil
}
