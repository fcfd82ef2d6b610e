// Package domain contains the core data model for contract chunking and
// extraction: parsed blocks, derived chunks, extraction records, and the
// evidence pointers that tie every record back to its source.
//
// Types here are plain data with no infrastructure dependencies. Blocks are
// read-only input from the upstream parser; chunks are derived
// deterministically from blocks; extraction records are derived from chunks
// and always carry evidence.
package domain
