package services

import (
	"context"
	"fmt"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
	"github.com/thatssomoneybaby/IPdf/internal/extract/entitlements"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// Ensure EntitlementsService implements the interface.
var _ driving.EntitlementsService = (*EntitlementsService)(nil)

// EntitlementsService runs the entitlement lanes and persists the result.
type EntitlementsService struct {
	engine   *entitlements.Engine
	docStore driven.DocumentStore
	results  driven.ResultStore
}

// NewEntitlementsService creates an entitlements service.
func NewEntitlementsService(engine *entitlements.Engine, docStore driven.DocumentStore, results driven.ResultStore) *EntitlementsService {
	if engine == nil {
		engine = entitlements.NewEngine()
	}
	return &EntitlementsService{
		engine:   engine,
		docStore: docStore,
		results:  results,
	}
}

// Extract runs the table-first and prose-fallback lanes over a chunk set
// and stores the result wholesale. A document with no products yields an
// explicit not-found status, not an error.
func (s *EntitlementsService) Extract(ctx context.Context, set *domain.ChunkSet) (*domain.EntitlementsResult, error) {
	if set == nil || set.DocID == "" {
		return nil, fmt.Errorf("entitlements: %w", domain.ErrInvalidInput)
	}

	s.setExtractionStatus(ctx, set.DocID, domain.ExtractionRunning)

	res, err := s.engine.Extract(ctx, set)
	if err != nil {
		s.setExtractionStatus(ctx, set.DocID, domain.ExtractionFailed)
		return nil, fmt.Errorf("extracting entitlements for %s: %w", set.DocID, err)
	}

	if s.results != nil {
		if err := s.results.PutEntitlements(ctx, res); err != nil {
			s.setExtractionStatus(ctx, set.DocID, domain.ExtractionFailed)
			return nil, fmt.Errorf("storing entitlements for %s: %w", set.DocID, err)
		}
	}
	s.setExtractionStatus(ctx, set.DocID, domain.ExtractionComplete)
	return res, nil
}

func (s *EntitlementsService) setExtractionStatus(ctx context.Context, docID string, status domain.ExtractionStatus) {
	if s.docStore == nil {
		return
	}
	if err := s.docStore.SetExtractionStatus(ctx, docID, "entitlements", status); err != nil {
		logger.Warn("extraction status update failed: doc=%s err=%v", docID, err)
	}
}
