// Package keyword implements the search collaborator as a token-overlap
// ranker over stored chunk sets. No index is maintained; the corpus is
// small enough to scan per query, and results stay deterministic.
package keyword

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/normalise"
)

// DefaultLimit caps result counts when the caller passes zero.
const DefaultLimit = 20

// phraseBonus rewards chunks containing the whole query as a phrase.
const phraseBonus = 2.0

// ChunkSource is the slice of the result store this engine reads.
type ChunkSource interface {
	GetChunkSet(ctx context.Context, docID string) (*domain.ChunkSet, error)
	ListChunkSets(ctx context.Context) ([]string, error)
}

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine ranks chunks by query token overlap.
type Engine struct {
	source ChunkSource
}

// NewEngine creates a keyword engine over the given chunk source.
func NewEngine(source ChunkSource) *Engine {
	return &Engine{source: source}
}

// Search scans the filtered corpus and returns the best hits first.
// Ties break on document order so repeated queries rank identically.
func (e *Engine) Search(ctx context.Context, query string, filters domain.SearchFilters, _ domain.SearchMode, limit int) ([]domain.SearchHit, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	docIDs := filters.DocIDs
	if len(docIDs) == 0 {
		ids, err := e.source.ListChunkSets(ctx)
		if err != nil {
			return nil, err
		}
		docIDs = ids
	}

	type scored struct {
		hit   domain.SearchHit
		order int
	}
	var hits []scored
	order := 0
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	for _, docID := range docIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set, err := e.source.GetChunkSet(ctx, docID)
		if err != nil {
			if errors.Is(err, domain.ErrNoChunks) {
				continue
			}
			return nil, err
		}
		for i := range set.Chunks {
			c := &set.Chunks[i]
			order++
			if !matchesFilters(c, filters) {
				continue
			}
			sc := score(terms, lowerQuery, c.Text)
			if sc <= 0 {
				continue
			}
			hits = append(hits, scored{
				hit: domain.SearchHit{
					ChunkID:     c.ID,
					DocID:       docID,
					Score:       sc,
					Snippet:     normalise.Snippet(c.Text, terms[0], 240),
					SectionPath: c.SectionPath,
					ClauseRef:   c.ClauseRef,
					PageStart:   c.PageStart,
					PageEnd:     c.PageEnd,
				},
				order: order,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].hit.Score != hits[j].hit.Score {
			return hits[i].hit.Score > hits[j].hit.Score
		}
		return hits[i].order < hits[j].order
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]domain.SearchHit, len(hits))
	for i, h := range hits {
		out[i] = h.hit
	}
	return out, nil
}

func matchesFilters(c *domain.Chunk, f domain.SearchFilters) bool {
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.SectionContains != "" {
		path := strings.ToLower(strings.Join(c.SectionPath, " > "))
		if !strings.Contains(path, strings.ToLower(f.SectionContains)) {
			return false
		}
	}
	if f.PageStart > 0 && c.PageEnd < f.PageStart {
		return false
	}
	if f.PageEnd > 0 && c.PageStart > f.PageEnd {
		return false
	}
	return true
}

// score sums query term frequencies, dampened by chunk length so short
// focused chunks outrank long ones with incidental mentions.
func score(terms []string, lowerQuery, text string) float64 {
	chunkTerms := tokenize(text)
	if len(chunkTerms) == 0 {
		return 0
	}
	freq := make(map[string]int, len(chunkTerms))
	for _, t := range chunkTerms {
		freq[t]++
	}

	var sum float64
	matched := 0
	for _, t := range terms {
		if n := freq[t]; n > 0 {
			matched++
			sum += float64(n)
		}
	}
	if matched == 0 {
		return 0
	}

	s := sum * float64(matched) / float64(len(terms)) / math.Sqrt(float64(len(chunkTerms)))
	if len(terms) > 1 && strings.Contains(strings.ToLower(text), lowerQuery) {
		s += phraseBonus
	}
	return s
}

// tokenize lowercases and splits on non-alphanumeric runs.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
