package domain

import "time"

// Location places an extracted record within the document structure.
type Location struct {
	SectionPath []string `json:"section_path,omitempty"`
	ClauseRef   string   `json:"clause_ref,omitempty"`
}

// DefinitionRecord is one extracted defined term.
type DefinitionRecord struct {
	// Term preserves the display case of the defined term.
	Term string `json:"term"`

	// Definition is the cleaned defining text.
	Definition string `json:"definition"`

	// Location is where the definition was found.
	Location Location `json:"location"`

	// Confidence is the clamped [0,1] score.
	Confidence float64 `json:"confidence"`

	// Conflict is set when another retained record defines the same
	// normalised term with materially different text.
	Conflict bool `json:"conflict,omitempty"`

	// Evidence is never empty on a persisted record.
	Evidence []Evidence `json:"evidence"`
}

// PipelineInfo versions an extraction result so historical outputs stay
// interpretable after rule changes.
type PipelineInfo struct {
	Version string `json:"version"`
	Ruleset string `json:"ruleset"`
}

// DefinitionsResult is the complete definitions output for one document.
// Results are regenerated wholesale on re-extraction, never patched.
type DefinitionsResult struct {
	DocID       string             `json:"doc_id"`
	ExtractedAt time.Time          `json:"extracted_at"`
	Pipeline    PipelineInfo       `json:"pipeline"`
	Definitions []DefinitionRecord `json:"definitions"`

	// Dropped counts records removed by the evidence gate. Informational,
	// not an error.
	Dropped int `json:"dropped,omitempty"`
}
