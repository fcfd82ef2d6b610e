package driven

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// BlockSource reads the upstream parser's output for a document.
// The parsing service itself is external; the core only consumes its
// ordered block list.
type BlockSource interface {
	// Load returns the parsed document for the given id.
	// Returns domain.ErrNotFound if the parser has not produced output.
	Load(ctx context.Context, docID string) (*domain.Document, error)
}
