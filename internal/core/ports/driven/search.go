package driven

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// SearchEngine is the optional retrieval collaborator used to widen
// candidate selection when section and pattern scans come up short.
//
// Implementations must honour the context deadline; callers apply a
// per-call timeout and treat any error as "no fallback candidates" rather
// than failing the extraction. The core functions, at reduced recall, with
// this collaborator entirely absent (nil).
type SearchEngine interface {
	// Search returns ranked hits for the query, best first.
	Search(ctx context.Context, query string, filters domain.SearchFilters, mode domain.SearchMode, limit int) ([]domain.SearchHit, error)
}
