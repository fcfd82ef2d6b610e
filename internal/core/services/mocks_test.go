package services

import (
	"context"
	"sync"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// fakeDocStore records status transitions for assertions.
type fakeDocStore struct {
	mu                 sync.Mutex
	records            map[string]domain.DocumentRecord
	statuses           []domain.DocumentStatus
	extractionStatuses []domain.ExtractionStatus
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{records: make(map[string]domain.DocumentRecord)}
}

func (f *fakeDocStore) Put(_ context.Context, rec domain.DocumentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.DocID] = rec
	return nil
}

func (f *fakeDocStore) Get(_ context.Context, docID string) (*domain.DocumentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeDocStore) List(_ context.Context) ([]domain.DocumentRecord, error) {
	return nil, nil
}

func (f *fakeDocStore) SetStatus(_ context.Context, _ string, status domain.DocumentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeDocStore) SetExtractionStatus(_ context.Context, _, _ string, status domain.ExtractionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extractionStatuses = append(f.extractionStatuses, status)
	return nil
}

func (f *fakeDocStore) Close() error { return nil }

// fakeResultStore captures stored results.
type fakeResultStore struct {
	mu           sync.Mutex
	chunkSets    map[string]*domain.ChunkSet
	definitions  map[string]*domain.DefinitionsResult
	entitlements map[string]*domain.EntitlementsResult
	feedback     []domain.FeedbackItem
	putErr       error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{
		chunkSets:    make(map[string]*domain.ChunkSet),
		definitions:  make(map[string]*domain.DefinitionsResult),
		entitlements: make(map[string]*domain.EntitlementsResult),
	}
}

func (f *fakeResultStore) PutChunkSet(_ context.Context, set *domain.ChunkSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.chunkSets[set.DocID] = set
	return nil
}

func (f *fakeResultStore) GetChunkSet(_ context.Context, docID string) (*domain.ChunkSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.chunkSets[docID]
	if !ok {
		return nil, domain.ErrNoChunks
	}
	return set, nil
}

func (f *fakeResultStore) ListChunkSets(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.chunkSets {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeResultStore) PutDefinitions(_ context.Context, res *domain.DefinitionsResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.definitions[res.DocID] = res
	return nil
}

func (f *fakeResultStore) GetDefinitions(_ context.Context, docID string) (*domain.DefinitionsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.definitions[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (f *fakeResultStore) PutEntitlements(_ context.Context, res *domain.EntitlementsResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.entitlements[res.DocID] = res
	return nil
}

func (f *fakeResultStore) GetEntitlements(_ context.Context, docID string) (*domain.EntitlementsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.entitlements[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return res, nil
}

func (f *fakeResultStore) AppendFeedback(_ context.Context, item domain.FeedbackItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, item)
	return nil
}

// fakeSearchEngine counts calls and returns canned hits.
type fakeSearchEngine struct {
	hits  []domain.SearchHit
	err   error
	calls int
	limit int
}

func (f *fakeSearchEngine) Search(_ context.Context, _ string, _ domain.SearchFilters, _ domain.SearchMode, limit int) ([]domain.SearchHit, error) {
	f.calls++
	f.limit = limit
	return f.hits, f.err
}
