// Package mcp provides a Model Context Protocol server adapter. It lets
// AI assistants search processed contracts and read extraction results,
// always with the evidence attached.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingResultStore is returned when the result store is not provided.
var ErrMissingResultStore = errors.New("mcp: result store is required")
