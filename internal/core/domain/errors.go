package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a document with no usable blocks.
	// Chunking aborts rather than emitting a partial chunk set.
	ErrEmptyDocument = errors.New("document has no blocks")

	// ErrNoChunks indicates extraction was requested before chunking.
	ErrNoChunks = errors.New("no chunk set for document")

	// ErrSearchUnavailable indicates the fallback search collaborator is
	// not configured. Candidate selection degrades, extraction continues.
	ErrSearchUnavailable = errors.New("search engine unavailable")
)
