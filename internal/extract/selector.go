package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// DefaultCandidateCap bounds candidates per document.
const DefaultCandidateCap = 250

// DefaultSmallDocThreshold waives the cap for small documents: below this
// many chunks, all matching chunks are used.
const DefaultSmallDocThreshold = 300

// DefaultCoverageThreshold is the minimum section-match count before the
// pattern scan lane is consulted.
const DefaultCoverageThreshold = 5

// DefaultFallbackHits is the per-query hit limit for the search fallback.
const DefaultFallbackHits = 10

// DefaultSearchTimeout bounds each fallback search call. Timeouts degrade
// to "no fallback candidates", never to a failed extraction.
const DefaultSearchTimeout = 3 * time.Second

// Concept parameterizes candidate selection for one extraction target.
type Concept struct {
	// Name labels the concept in logs and fallback filters.
	Name string

	// SectionKeywords select chunks whose section path or heading contains
	// any keyword, case-insensitively.
	SectionKeywords []string

	// Indicators are whole-text patterns scanned when section matches come
	// up short.
	Indicators []*regexp.Regexp

	// FallbackQueries are issued to the search collaborator when both
	// local lanes are insufficient.
	FallbackQueries []string
}

// Selector produces a bounded, deduplicated candidate set for a concept.
// The search collaborator is optional; a nil engine skips the fallback lane.
type Selector struct {
	search            driven.SearchEngine
	cap               int
	smallDocThreshold int
	coverage          int
	fallbackHits      int
	searchTimeout     time.Duration
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithSearchEngine injects the fallback search collaborator.
func WithSearchEngine(engine driven.SearchEngine) SelectorOption {
	return func(s *Selector) {
		s.search = engine
	}
}

// WithCandidateCap overrides the per-document candidate cap.
func WithCandidateCap(n int) SelectorOption {
	return func(s *Selector) {
		if n > 0 {
			s.cap = n
		}
	}
}

// WithSmallDocThreshold overrides the chunk count below which the
// candidate cap is waived.
func WithSmallDocThreshold(n int) SelectorOption {
	return func(s *Selector) {
		if n > 0 {
			s.smallDocThreshold = n
		}
	}
}

// WithSearchTimeout overrides the per-call fallback search timeout.
func WithSearchTimeout(d time.Duration) SelectorOption {
	return func(s *Selector) {
		if d > 0 {
			s.searchTimeout = d
		}
	}
}

// NewSelector creates a selector with the given options.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		cap:               DefaultCandidateCap,
		smallDocThreshold: DefaultSmallDocThreshold,
		coverage:          DefaultCoverageThreshold,
		fallbackHits:      DefaultFallbackHits,
		searchTimeout:     DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns candidates for the concept in a deterministic order:
// section matches first, then pattern matches, then search-fallback hits,
// document order within each lane. Under the cap, weaker lanes are
// truncated before stronger ones.
func (s *Selector) Select(ctx context.Context, set *domain.ChunkSet, concept Concept) []domain.Candidate {
	byID := make(map[string]int, len(set.Chunks))
	for i, c := range set.Chunks {
		byID[c.ID] = i
	}

	reasons := make(map[string]domain.CandidateReason)
	mark := func(chunkID string, reason domain.CandidateReason) {
		if _, ok := byID[chunkID]; !ok {
			return
		}
		if prev, ok := reasons[chunkID]; ok && prev.Strength() >= reason.Strength() {
			return
		}
		reasons[chunkID] = reason
	}

	sectionMatches := 0
	for _, c := range set.Chunks {
		if matchesSection(&c, concept.SectionKeywords) {
			mark(c.ID, domain.ReasonSectionMatch)
			sectionMatches++
		}
	}

	if sectionMatches < s.coverage {
		for _, c := range set.Chunks {
			if matchesIndicator(&c, concept.Indicators) {
				mark(c.ID, domain.ReasonPatternMatch)
			}
		}
	}

	if len(reasons) < s.coverage && s.search != nil {
		for _, hit := range s.fallback(ctx, set.DocID, concept) {
			mark(hit.ChunkID, domain.ReasonSearchFallback)
		}
	}

	// Document order within each lane keeps the downstream combine
	// reproducible regardless of map iteration.
	var out []domain.Candidate
	for _, reason := range []domain.CandidateReason{
		domain.ReasonSectionMatch,
		domain.ReasonPatternMatch,
		domain.ReasonSearchFallback,
	} {
		for _, c := range set.Chunks {
			if reasons[c.ID] == reason {
				out = append(out, domain.Candidate{ChunkID: c.ID, Reason: reason})
			}
		}
	}

	if len(set.Chunks) >= s.smallDocThreshold && len(out) > s.cap {
		logger.Debug("candidate cap reached: concept=%s selected=%d cap=%d", concept.Name, len(out), s.cap)
		out = out[:s.cap]
	}
	return out
}

// Chunks resolves candidates back to their chunks, in candidate order.
func Chunks(set *domain.ChunkSet, candidates []domain.Candidate) []domain.Chunk {
	byID := make(map[string]int, len(set.Chunks))
	for i, c := range set.Chunks {
		byID[c.ID] = i
	}
	out := make([]domain.Chunk, 0, len(candidates))
	for _, cand := range candidates {
		if i, ok := byID[cand.ChunkID]; ok {
			out = append(out, set.Chunks[i])
		}
	}
	return out
}

func (s *Selector) fallback(ctx context.Context, docID string, concept Concept) []domain.SearchHit {
	var hits []domain.SearchHit
	filters := domain.SearchFilters{DocIDs: []string{docID}}
	for _, q := range concept.FallbackQueries {
		callCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
		got, err := s.search.Search(callCtx, q, filters, domain.SearchModeKeyword, s.fallbackHits)
		cancel()
		if err != nil {
			logger.Warn("fallback search degraded: concept=%s query=%q err=%v", concept.Name, q, err)
			continue
		}
		hits = append(hits, got...)
	}
	return hits
}

func matchesSection(c *domain.Chunk, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	haystack := strings.ToLower(strings.Join(c.SectionPath, " ") + " " + c.Heading)
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func matchesIndicator(c *domain.Chunk, indicators []*regexp.Regexp) bool {
	for _, re := range indicators {
		if re.MatchString(c.Text) {
			return true
		}
	}
	return false
}
