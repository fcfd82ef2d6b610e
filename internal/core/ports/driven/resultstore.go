package driven

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// ResultStore persists chunk sets and extraction results. The storage
// layout is an adapter concern; the core only fixes the shapes.
type ResultStore interface {
	// PutChunkSet replaces the stored chunk set for a document.
	PutChunkSet(ctx context.Context, set *domain.ChunkSet) error

	// GetChunkSet loads the stored chunk set for a document.
	// Returns domain.ErrNoChunks when chunking has not run.
	GetChunkSet(ctx context.Context, docID string) (*domain.ChunkSet, error)

	// ListChunkSets returns the doc ids that have a stored chunk set.
	ListChunkSets(ctx context.Context) ([]string, error)

	// PutDefinitions replaces the definitions result for a document.
	PutDefinitions(ctx context.Context, res *domain.DefinitionsResult) error

	// GetDefinitions loads the definitions result for a document.
	GetDefinitions(ctx context.Context, docID string) (*domain.DefinitionsResult, error)

	// PutEntitlements replaces the entitlements result for a document.
	PutEntitlements(ctx context.Context, res *domain.EntitlementsResult) error

	// GetEntitlements loads the entitlements result for a document.
	GetEntitlements(ctx context.Context, docID string) (*domain.EntitlementsResult, error)

	// AppendFeedback records a review verdict.
	AppendFeedback(ctx context.Context, item domain.FeedbackItem) error
}
