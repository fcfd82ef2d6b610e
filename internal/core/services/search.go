package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService exposes chunk search to the front ends. It delegates to
// the configured search engine; without one, search is unavailable but
// nothing else degrades.
type SearchService struct {
	engine driven.SearchEngine
}

// NewSearchService creates a search service.
func NewSearchService(engine driven.SearchEngine) *SearchService {
	return &SearchService{engine: engine}
}

// Search returns ranked, evidence-bearing hits for the query.
func (s *SearchService) Search(ctx context.Context, query string, filters domain.SearchFilters, mode domain.SearchMode, limit int) ([]domain.SearchHit, error) {
	if s.engine == nil {
		return nil, domain.ErrSearchUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("empty query, returning no results")
		return []domain.SearchHit{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	if mode == "" {
		mode = domain.SearchModeKeyword
	}

	hits, err := s.engine.Search(ctx, query, filters, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	logger.Debug("search: query=%q mode=%s hits=%d", query, mode, len(hits))
	return hits, nil
}
