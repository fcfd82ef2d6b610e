package domain

// Evidence is the mandatory source pointer attached to every extracted
// record. A record without complete evidence is never persisted.
type Evidence struct {
	// ChunkID is the source chunk.
	ChunkID string `json:"chunk_id"`

	// PageStart and PageEnd locate the source chunk in the document.
	PageStart int `json:"page_start"`
	PageEnd   int `json:"page_end"`

	// ClauseRef is the source chunk's clause reference, if any.
	ClauseRef string `json:"clause_ref,omitempty"`

	// Snippet is a short excerpt around the matched text.
	Snippet string `json:"snippet,omitempty"`
}

// Complete returns true when the pointer is sufficient to locate the
// source: a chunk id and a sane page range.
func (e Evidence) Complete() bool {
	return e.ChunkID != "" && e.PageStart > 0 && e.PageEnd >= e.PageStart
}
