package domain

// SearchMode selects the retrieval strategy of a search collaborator.
type SearchMode string

// Search modes.
const (
	SearchModeKeyword  SearchMode = "keyword"
	SearchModeSemantic SearchMode = "semantic"
	SearchModeHybrid   SearchMode = "hybrid"
)

// SearchFilters narrows a search to a slice of the corpus.
type SearchFilters struct {
	// DocIDs limits hits to specific documents.
	DocIDs []string

	// Kind limits hits to one chunk kind.
	Kind ChunkKind

	// SectionContains is a case-insensitive substring match against the
	// rendered section path.
	SectionContains string

	// PageStart/PageEnd bound the page window; zero means unbounded.
	PageStart int
	PageEnd   int
}

// SearchHit is one ranked result from a search collaborator.
type SearchHit struct {
	ChunkID     string   `json:"chunk_id"`
	DocID       string   `json:"doc_id"`
	Score       float64  `json:"score"`
	Snippet     string   `json:"snippet"`
	SectionPath []string `json:"section_path,omitempty"`
	ClauseRef   string   `json:"clause_ref,omitempty"`
	PageStart   int      `json:"page_start"`
	PageEnd     int      `json:"page_end"`
}
