package driving

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// SearchService searches stored chunk sets.
type SearchService interface {
	// Search returns ranked, evidence-bearing hits for the query.
	Search(ctx context.Context, query string, filters domain.SearchFilters, mode domain.SearchMode, limit int) ([]domain.SearchHit, error)
}
