package definitions

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
	"github.com/thatssomoneybaby/IPdf/internal/sectionize"
)

// Multi-line merge limits: a continued definition absorbs at most this
// many following paragraphs and this many characters in total.
const (
	maxMergeParagraphs = 3
	maxMergeChars      = 1200
)

const avoidanceOfDoubt = "for the avoidance of doubt"

var trailingContinuation = regexp.MustCompile(`(?i)(?:,|\band\b|\bor\b|\bincluding\b)$`)

// concept drives candidate selection for the definitions lane.
var concept = extract.Concept{
	Name:            "definitions",
	SectionKeywords: []string{"definitions", "definition", "interpretation", "defined terms"},
	Indicators: []*regexp.Regexp{
		regexp.MustCompile(`\b` + verbPhrase),
	},
	FallbackQueries: []string{
		"definitions defined terms",
		"shall mean has the meaning",
	},
}

// Engine runs the full definitions lane: candidate selection, pattern
// extraction, conflict resolution, and the evidence gate.
type Engine struct {
	selector *extract.Selector
	workers  int
}

// Option configures the engine.
type Option func(*Engine)

// WithSelector injects a configured candidate selector.
func WithSelector(s *extract.Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

// WithWorkers bounds the per-chunk scan pool.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates a definitions engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{selector: extract.NewSelector()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract derives the definitions result for a chunk set. Results are
// regenerated wholesale; nothing is patched in place.
func (e *Engine) Extract(ctx context.Context, set *domain.ChunkSet) (*domain.DefinitionsResult, error) {
	if set == nil || len(set.Chunks) == 0 {
		return nil, domain.ErrNoChunks
	}

	candidates := e.selector.Select(ctx, set, concept)
	chunks := extract.Chunks(set, candidates)

	perChunk := extract.MapChunks(ctx, chunks, e.workers, func(_ context.Context, c *domain.Chunk) []scored {
		return scanChunk(c)
	})
	// A cancelled run stops scheduling mid-document; whatever partial
	// results exist must never be persisted as a completed extraction.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var flat []scored
	for _, recs := range perChunk {
		for _, r := range recs {
			r.order = len(flat)
			flat = append(flat, r)
		}
	}

	kept, dropped := extract.GateDefinitions(resolve(flat))
	logger.Debug("definitions extracted: doc=%s candidates=%d kept=%d dropped=%d",
		set.DocID, len(candidates), len(kept), dropped)

	return &domain.DefinitionsResult{
		DocID:       set.DocID,
		ExtractedAt: time.Now().UTC(),
		Pipeline: domain.PipelineInfo{
			Version: extract.PipelineVersion,
			Ruleset: extract.RulesetVersion,
		},
		Definitions: kept,
		Dropped:     dropped,
	}, nil
}

// scored carries a record with the flags the resolver needs for duplicate
// preference ordering.
type scored struct {
	rec    domain.DefinitionRecord
	inDefs bool
	quoted bool
	order  int
}

// scanChunk applies the pattern families to one chunk's paragraphs. A
// pattern failure on a single chunk is skipped, never fatal to the
// candidate set.
func scanChunk(c *domain.Chunk) (out []scored) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("definition scan skipped chunk %s: %v", c.ID, r)
			out = nil
		}
	}()

	inDefs := inDefinitionsSection(c)
	paras := strings.Split(c.Text, "\n\n")

	for i := 0; i < len(paras); i++ {
		span := strings.TrimSpace(paras[i])
		if span == "" {
			continue
		}

		var matches []match
		for _, fam := range families() {
			if got := fam.attempt(span); got != nil {
				matches = got
				break
			}
		}
		if matches == nil {
			continue
		}

		// A single matched definition may continue over following
		// paragraphs; runs never merge.
		if len(matches) == 1 {
			def, consumed := mergeContinuation(matches[0].def, paras[i+1:])
			matches[0].def = def
			i += consumed
		}

		for _, m := range matches {
			rec, ok := build(m, c, inDefs)
			if !ok {
				continue
			}
			out = append(out, scored{rec: rec, inDefs: inDefs, quoted: m.quoted})
		}
	}
	return out
}

// mergeContinuation appends following paragraphs to an unfinished
// definition, returning the merged text and how many paragraphs were
// consumed. Merging stops on a new term trigger, a clause number at the
// line start, or an avoidance-of-doubt opener.
func mergeContinuation(def string, rest []string) (string, int) {
	merged := strings.TrimSpace(def)
	consumed := 0
	for _, next := range rest {
		if consumed >= maxMergeParagraphs {
			break
		}
		if !needsContinuation(merged) {
			break
		}
		span := strings.TrimSpace(next)
		if span == "" {
			break
		}
		if beginsNewTerm(span) {
			break
		}
		if ref, _ := sectionize.ClauseRef(span); ref != "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(span), avoidanceOfDoubt) {
			break
		}
		if len(merged)+len(span) > maxMergeChars {
			break
		}
		merged = merged + " " + span
		consumed++
	}
	return merged, consumed
}

// needsContinuation reports whether a definition looks unfinished: a
// trailing comma, conjunction, "including", or no terminal punctuation.
func needsContinuation(def string) bool {
	t := strings.TrimSpace(def)
	if t == "" {
		return false
	}
	if trailingContinuation.MatchString(t) {
		return true
	}
	last := t[len(t)-1]
	switch last {
	case '.', ';', ':', '!', '?':
		return false
	}
	return true
}

// build turns a raw match into a scored record, applying term and
// definition acceptance rules.
func build(m match, c *domain.Chunk, inDefs bool) (domain.DefinitionRecord, bool) {
	term := strings.TrimSpace(m.term)
	if !acceptTerm(term) {
		return domain.DefinitionRecord{}, false
	}
	def := cleanDefinition(m.def)
	if def == "" {
		return domain.DefinitionRecord{}, false
	}

	score := extract.DefinitionBase
	if inDefs {
		score += extract.DefinitionInSection
	}
	if m.quoted {
		score += extract.DefinitionQuoted
	}
	if c.ClauseRef != "" {
		score += extract.DefinitionClauseRef
	}
	if len(def) >= extract.DefinitionGoodLenMin && len(def) <= extract.DefinitionGoodLenMax {
		score += extract.DefinitionGoodLength
	}
	if len(term) > extract.DefinitionLongTermLen {
		score += extract.DefinitionLongTerm
	}
	if len(def) < extract.DefinitionShortLen {
		// Short definitions are flagged low-confidence, not rejected.
		score += extract.DefinitionShortText
	}

	return domain.DefinitionRecord{
		Term:       term,
		Definition: def,
		Location: domain.Location{
			SectionPath: c.SectionPath,
			ClauseRef:   c.ClauseRef,
		},
		Confidence: extract.Clamp(score),
		Evidence:   []domain.Evidence{extract.EvidenceFor(c, term)},
	}, true
}

// inDefinitionsSection reports whether a chunk sits in a recognised
// definitions-type section.
func inDefinitionsSection(c *domain.Chunk) bool {
	if c.Kind == domain.ChunkDefinition {
		return true
	}
	haystack := strings.ToLower(strings.Join(c.SectionPath, " "))
	for _, kw := range []string{"definition", "interpretation", "defined terms"} {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
