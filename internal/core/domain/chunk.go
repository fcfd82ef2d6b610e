package domain

import "time"

// ChunkKind classifies a derived chunk.
type ChunkKind string

// Chunk kinds. The taxonomy is closed so downstream consumers can handle
// every case exhaustively.
const (
	ChunkHeading    ChunkKind = "heading"
	ChunkDefinition ChunkKind = "definition"
	ChunkClause     ChunkKind = "clause"
	ChunkSchedule   ChunkKind = "schedule"
	ChunkTable      ChunkKind = "table"
	ChunkParagraph  ChunkKind = "paragraph"
	ChunkUnknown    ChunkKind = "unknown"
)

// IsValid returns true if the chunk kind is recognised.
func (k ChunkKind) IsValid() bool {
	switch k {
	case ChunkHeading, ChunkDefinition, ChunkClause, ChunkSchedule,
		ChunkTable, ChunkParagraph, ChunkUnknown:
		return true
	default:
		return false
	}
}

// Chunk is the stable retrieval/extraction unit derived from one or more
// source blocks.
type Chunk struct {
	// ID is a content-derived SHA-256 identifier. It is stable across
	// re-chunking runs of the same blocks under the same ruleset, which
	// keeps downstream upsert-by-id idempotent.
	ID string `json:"chunk_id"`

	// Kind classifies the chunk.
	Kind ChunkKind `json:"kind"`

	// Text is the normalised chunk text. For table chunks this is a
	// readable row/column serialisation; the raw grid stays in Table.
	Text string `json:"text"`

	// SectionPath is the ordered ancestor heading texts, root to leaf.
	SectionPath []string `json:"section_path"`

	// Heading is the nearest enclosing heading, if any.
	Heading string `json:"heading,omitempty"`

	// ClauseRef is the display clause reference, e.g. "2.3(a)".
	ClauseRef string `json:"clause_ref,omitempty"`

	// ClauseLevel is the clause nesting depth; 0 when no clause ref.
	ClauseLevel int `json:"clause_level,omitempty"`

	// PageStart and PageEnd are the union of the source blocks' pages.
	PageStart int `json:"page_start"`
	PageEnd   int `json:"page_end"`

	// SourceBlockIDs is the ordered, never-empty provenance list.
	SourceBlockIDs []string `json:"source_block_ids"`

	// CharLen is the length of Text in bytes.
	CharLen int `json:"char_len"`

	// Table carries the raw cell grid for table chunks.
	Table *Table `json:"table,omitempty"`
}

// SectionPathString renders the section path as "A > B > C".
func (c Chunk) SectionPathString() string {
	s := ""
	for i, p := range c.SectionPath {
		if i > 0 {
			s += " > "
		}
		s += p
	}
	return s
}

// ChunkingInfo records the configuration version a chunk set was produced
// under, so historical chunk sets stay interpretable after rule changes.
type ChunkingInfo struct {
	Version string `json:"version"`
	Ruleset string `json:"ruleset"`
}

// ChunkSet is the complete, ordered chunking output for one document.
type ChunkSet struct {
	DocID     string       `json:"doc_id"`
	ChunkedAt time.Time    `json:"chunked_at"`
	Chunking  ChunkingInfo `json:"chunking"`
	Chunks    []Chunk      `json:"chunks"`
}
