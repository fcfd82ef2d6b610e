// Package file provides a filesystem-backed implementation of the result
// store. Each document owns a directory of JSON artifacts plus the
// human-facing exports derived from them.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// Artifact filenames within a document directory.
const (
	chunksFile       = "chunks.json"
	definitionsFile  = "definitions.json"
	entitlementsFile = "entitlements.json"
	feedbackFile     = "feedback.json"
)

// Ensure Store implements the interface.
var _ driven.ResultStore = (*Store)(nil)

// Store persists chunk sets and extraction results under a root
// directory, one subdirectory per document.
type Store struct {
	root string

	// mu serialises feedback read-modify-write cycles.
	mu sync.Mutex
}

// NewStore creates a file store rooted at dir. If dir is empty, defaults
// to ~/.ipdf/data/results.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".ipdf", "data", "results")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// DocDir returns the directory for a document's artifacts.
func (s *Store) DocDir(docID string) string {
	return filepath.Join(s.root, docID)
}

// PutChunkSet replaces the stored chunk set for a document.
func (s *Store) PutChunkSet(_ context.Context, set *domain.ChunkSet) error {
	if set == nil || set.DocID == "" {
		return fmt.Errorf("chunk set: %w", domain.ErrInvalidInput)
	}
	return s.writeJSON(set.DocID, chunksFile, set)
}

// GetChunkSet loads the stored chunk set for a document.
func (s *Store) GetChunkSet(_ context.Context, docID string) (*domain.ChunkSet, error) {
	var set domain.ChunkSet
	if err := s.readJSON(docID, chunksFile, &set); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoChunks
		}
		return nil, err
	}
	return &set, nil
}

// ListChunkSets returns the doc ids that have a stored chunk set, sorted.
func (s *Store) ListChunkSets(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading results directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), chunksFile)); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// PutDefinitions replaces the definitions result for a document.
func (s *Store) PutDefinitions(_ context.Context, res *domain.DefinitionsResult) error {
	if res == nil || res.DocID == "" {
		return fmt.Errorf("definitions result: %w", domain.ErrInvalidInput)
	}
	return s.writeJSON(res.DocID, definitionsFile, res)
}

// GetDefinitions loads the definitions result for a document.
func (s *Store) GetDefinitions(_ context.Context, docID string) (*domain.DefinitionsResult, error) {
	var res domain.DefinitionsResult
	if err := s.readJSON(docID, definitionsFile, &res); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// PutEntitlements replaces the entitlements result for a document.
func (s *Store) PutEntitlements(_ context.Context, res *domain.EntitlementsResult) error {
	if res == nil || res.DocID == "" {
		return fmt.Errorf("entitlements result: %w", domain.ErrInvalidInput)
	}
	return s.writeJSON(res.DocID, entitlementsFile, res)
}

// GetEntitlements loads the entitlements result for a document.
func (s *Store) GetEntitlements(_ context.Context, docID string) (*domain.EntitlementsResult, error) {
	var res domain.EntitlementsResult
	if err := s.readJSON(docID, entitlementsFile, &res); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// AppendFeedback records a review verdict in the document's feedback log.
func (s *Store) AppendFeedback(_ context.Context, item domain.FeedbackItem) error {
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

	var items []domain.FeedbackItem
	if err := s.readJSON(item.DocID, feedbackFile, &items); err != nil && !os.IsNotExist(err) {
		return err
	}
	items = append(items, item)
	return s.writeJSON(item.DocID, feedbackFile, items)
}

// ListFeedback returns all recorded verdicts for a document.
func (s *Store) ListFeedback(_ context.Context, docID string) ([]domain.FeedbackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.FeedbackItem
	if err := s.readJSON(docID, feedbackFile, &items); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

// writeJSON writes an artifact atomically: temp file then rename.
func (s *Store) writeJSON(docID, name string, v any) error {
	dir := s.DocDir(docID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", name, err)
	}

	tmp := filepath.Join(dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(docID, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.DocDir(docID), name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", name, err)
	}
	return nil
}
