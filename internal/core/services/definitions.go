package services

import (
	"context"
	"fmt"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
	"github.com/thatssomoneybaby/IPdf/internal/extract/definitions"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// Ensure DefinitionsService implements the interface.
var _ driving.DefinitionsService = (*DefinitionsService)(nil)

// DefinitionsService runs the definitions engine and persists its result.
type DefinitionsService struct {
	engine   *definitions.Engine
	docStore driven.DocumentStore
	results  driven.ResultStore
}

// NewDefinitionsService creates a definitions service.
func NewDefinitionsService(engine *definitions.Engine, docStore driven.DocumentStore, results driven.ResultStore) *DefinitionsService {
	if engine == nil {
		engine = definitions.NewEngine()
	}
	return &DefinitionsService{
		engine:   engine,
		docStore: docStore,
		results:  results,
	}
}

// Extract runs the definitions lane over a chunk set and stores the
// result wholesale.
func (s *DefinitionsService) Extract(ctx context.Context, set *domain.ChunkSet) (*domain.DefinitionsResult, error) {
	if set == nil || set.DocID == "" {
		return nil, fmt.Errorf("definitions: %w", domain.ErrInvalidInput)
	}

	s.setExtractionStatus(ctx, set.DocID, domain.ExtractionRunning)

	res, err := s.engine.Extract(ctx, set)
	if err != nil {
		s.setExtractionStatus(ctx, set.DocID, domain.ExtractionFailed)
		return nil, fmt.Errorf("extracting definitions for %s: %w", set.DocID, err)
	}

	if s.results != nil {
		if err := s.results.PutDefinitions(ctx, res); err != nil {
			s.setExtractionStatus(ctx, set.DocID, domain.ExtractionFailed)
			return nil, fmt.Errorf("storing definitions for %s: %w", set.DocID, err)
		}
	}
	s.setExtractionStatus(ctx, set.DocID, domain.ExtractionComplete)
	return res, nil
}

func (s *DefinitionsService) setExtractionStatus(ctx context.Context, docID string, status domain.ExtractionStatus) {
	if s.docStore == nil {
		return
	}
	if err := s.docStore.SetExtractionStatus(ctx, docID, "definitions", status); err != nil {
		logger.Warn("extraction status update failed: doc=%s err=%v", docID, err)
	}
}
