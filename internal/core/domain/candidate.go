package domain

// CandidateReason records why a chunk was selected for an extraction concept.
type CandidateReason string

// Candidate reasons, strongest first.
const (
	ReasonSectionMatch   CandidateReason = "section_match"
	ReasonPatternMatch   CandidateReason = "pattern_match"
	ReasonSearchFallback CandidateReason = "search_fallback"
)

// Strength orders reasons for dedup: a chunk found by both a section match
// and a pattern scan keeps the section-match label.
func (r CandidateReason) Strength() int {
	switch r {
	case ReasonSectionMatch:
		return 3
	case ReasonPatternMatch:
		return 2
	case ReasonSearchFallback:
		return 1
	default:
		return 0
	}
}

// Candidate is a chunk selected as plausibly relevant to one extraction
// concept, before pattern matching is attempted.
type Candidate struct {
	// ChunkID identifies the selected chunk.
	ChunkID string

	// Reason is the strongest selection reason for this chunk.
	Reason CandidateReason
}
