package mcp

import (
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs. A single injection
// point keeps wiring in main simple.
type Ports struct {
	// Search answers keyword queries over stored chunks.
	Search driving.SearchService

	// Results serves stored chunk sets and extraction results.
	Results driven.ResultStore

	// Docs lists processing metadata. Optional; the documents resource
	// degrades to an empty list without it.
	Docs driven.DocumentStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Results == nil {
		return ErrMissingResultStore
	}
	return nil
}
