package driving

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// ChunkingService turns a parsed document into a deterministic chunk set.
type ChunkingService interface {
	// Chunk derives the chunk set for a document. Re-running with the
	// same blocks and the same ruleset reproduces identical chunk ids
	// and boundaries.
	//
	// Returns domain.ErrEmptyDocument for a document with no usable
	// blocks; no partial chunk set is emitted.
	Chunk(ctx context.Context, doc *domain.Document) (*domain.ChunkSet, error)
}
