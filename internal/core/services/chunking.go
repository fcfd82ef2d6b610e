package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thatssomoneybaby/IPdf/internal/chunker"
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// Ensure ChunkingService implements the interface.
var _ driving.ChunkingService = (*ChunkingService)(nil)

// ChunkingService derives and persists chunk sets. The document store and
// result store are optional; without them the service still chunks and
// returns the set, it just persists nothing.
type ChunkingService struct {
	assembler *chunker.Assembler
	docStore  driven.DocumentStore
	results   driven.ResultStore
}

// NewChunkingService creates a chunking service.
func NewChunkingService(assembler *chunker.Assembler, docStore driven.DocumentStore, results driven.ResultStore) *ChunkingService {
	if assembler == nil {
		assembler = chunker.New()
	}
	return &ChunkingService{
		assembler: assembler,
		docStore:  docStore,
		results:   results,
	}
}

// Chunk derives the chunk set for a parsed document. An empty or
// malformed block list aborts chunking; no partial chunk set is emitted
// or stored.
func (s *ChunkingService) Chunk(ctx context.Context, doc *domain.Document) (*domain.ChunkSet, error) {
	if doc == nil || doc.DocID == "" {
		return nil, fmt.Errorf("chunking: %w", domain.ErrInvalidInput)
	}
	s.register(ctx, doc)
	if len(doc.Blocks) == 0 {
		s.setStatus(ctx, doc.DocID, domain.StatusFailedChunking)
		return nil, fmt.Errorf("chunking %s: %w", doc.DocID, domain.ErrEmptyDocument)
	}

	s.setStatus(ctx, doc.DocID, domain.StatusChunking)

	chunks := s.assembler.Assemble(doc)
	if len(chunks) == 0 {
		s.setStatus(ctx, doc.DocID, domain.StatusFailedChunking)
		return nil, fmt.Errorf("chunking %s: %w", doc.DocID, domain.ErrEmptyDocument)
	}

	set := &domain.ChunkSet{
		DocID:     doc.DocID,
		ChunkedAt: time.Now().UTC(),
		Chunking: domain.ChunkingInfo{
			Version: chunker.Version,
			Ruleset: s.assembler.Ruleset(),
		},
		Chunks: chunks,
	}

	if s.results != nil {
		if err := s.results.PutChunkSet(ctx, set); err != nil {
			s.setStatus(ctx, doc.DocID, domain.StatusFailedChunking)
			return nil, fmt.Errorf("storing chunk set for %s: %w", doc.DocID, err)
		}
	}
	s.recordCounts(ctx, doc, len(chunks))
	s.setStatus(ctx, doc.DocID, domain.StatusReady)

	logger.Debug("chunked document: doc=%s blocks=%d chunks=%d", doc.DocID, len(doc.Blocks), len(chunks))
	return set, nil
}

// register creates the metadata record on first contact so later status
// updates have a row to land on.
func (s *ChunkingService) register(ctx context.Context, doc *domain.Document) {
	if s.docStore == nil {
		return
	}
	if _, err := s.docStore.Get(ctx, doc.DocID); err == nil {
		return
	}
	rec := domain.DocumentRecord{
		DocID:     doc.DocID,
		PageCount: doc.PageCount,
	}
	if err := s.docStore.Put(ctx, rec); err != nil {
		logger.Warn("document registration failed: doc=%s err=%v", doc.DocID, err)
	}
}

// recordCounts stores the page and chunk counts after a successful run.
func (s *ChunkingService) recordCounts(ctx context.Context, doc *domain.Document, chunkCount int) {
	if s.docStore == nil {
		return
	}
	rec, err := s.docStore.Get(ctx, doc.DocID)
	if err != nil {
		return
	}
	rec.PageCount = doc.PageCount
	rec.ChunkCount = chunkCount
	if err := s.docStore.Put(ctx, *rec); err != nil {
		logger.Warn("count update failed: doc=%s err=%v", doc.DocID, err)
	}
}

func (s *ChunkingService) setStatus(ctx context.Context, docID string, status domain.DocumentStatus) {
	if s.docStore == nil {
		return
	}
	if err := s.docStore.SetStatus(ctx, docID, status); err != nil {
		logger.Warn("status update failed: doc=%s status=%s err=%v", docID, status, err)
	}
}
