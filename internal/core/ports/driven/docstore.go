package driven

import (
	"context"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// DocumentStore persists document processing metadata.
type DocumentStore interface {
	// Put inserts or replaces a document record.
	Put(ctx context.Context, rec domain.DocumentRecord) error

	// Get returns the record for a document id.
	// Returns domain.ErrNotFound when the document is unknown.
	Get(ctx context.Context, docID string) (*domain.DocumentRecord, error)

	// List returns all document records, most recently ingested first.
	List(ctx context.Context) ([]domain.DocumentRecord, error)

	// SetStatus updates the lifecycle status of a document.
	SetStatus(ctx context.Context, docID string, status domain.DocumentStatus) error

	// SetExtractionStatus updates one extraction status column.
	// itemType is "definitions" or "entitlements".
	SetExtractionStatus(ctx context.Context, docID, itemType string, status domain.ExtractionStatus) error

	// Close releases resources.
	Close() error
}
