package driving

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// DefinitionsService extracts defined terms from a chunk set.
type DefinitionsService interface {
	// Extract runs the definitions engine over the chunk set.
	// Single-chunk pattern failures are skipped, not fatal.
	Extract(ctx context.Context, set *domain.ChunkSet) (*domain.DefinitionsResult, error)
}

// EntitlementsService extracts licensing entitlements from a chunk set.
type EntitlementsService interface {
	// Extract runs the table-first and prose-fallback entitlement lanes.
	// When no products are found the result status is
	// domain.EntitlementsNotFound and any captured references are kept.
	Extract(ctx context.Context, set *domain.ChunkSet) (*domain.EntitlementsResult, error)
}
