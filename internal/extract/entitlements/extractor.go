package entitlements

import (
	"context"
	"regexp"
	"time"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// concept drives candidate selection for the entitlements lanes.
var concept = extract.Concept{
	Name: "entitlements",
	SectionKeywords: []string{
		"schedule", "exhibit", "appendix", "annex", "order",
		"licensed", "entitlement", "product", "pricing", "support",
	},
	Indicators: []*regexp.Regexp{
		regexp.MustCompile(`(?i)licensed\s+(?:product|program|service)`),
		regexp.MustCompile(`(?i)\bentitle(?:d|ment|ments)\b`),
		regexp.MustCompile(`(?i)\b(?:metric|quantit|qty)`),
		regexp.MustCompile(`(?i)subscription\s+(?:term|period)`),
		regexp.MustCompile(`(?i)\b(?:processor|core|named\s+user|employee|seat)s?\b`),
		regexp.MustCompile(`(?i)\border\s+forms?\b|\bordering\s+documents?\b|statements?\s+of\s+work|\bSOWs?\b|master\s+(?:services?\s+|subscription\s+)?agreement|support\s+schedules?\b`),
	},
	FallbackQueries: []string{
		"licensed programs quantity metric",
		"entitlements order form schedule",
	},
}

// Engine runs the entitlement lanes: table-first extraction, prose
// fallback, and reference capture, followed by the evidence gate.
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

// NewEngine creates an entitlements engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{selector: extract.NewSelector()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// laneResult is the per-chunk output combined in document order.
type laneResult struct {
	table      *tableResult
	products   []domain.EntitlementProduct
	references []domain.EntitlementReference
}

// Extract derives the entitlements result for a chunk set. A document
// with no products carries an explicit not-found status so the output is
// never mistaken for "not yet run".
func (e *Engine) Extract(ctx context.Context, set *domain.ChunkSet) (*domain.EntitlementsResult, error) {
	if set == nil || len(set.Chunks) == 0 {
		return nil, domain.ErrNoChunks
	}

	candidates := e.selector.Select(ctx, set, concept)
	chunks := extract.Chunks(set, candidates)

	perChunk := extract.MapChunks(ctx, chunks, e.workers, func(_ context.Context, c *domain.Chunk) []laneResult {
		return scanChunk(c)
	})
	// A cancelled run stops scheduling mid-document; whatever partial
	// results exist must never be persisted as a completed extraction.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		tables     []domain.EntitlementTable
		products   []domain.EntitlementProduct
		references []domain.EntitlementReference
	)
	for _, results := range perChunk {
		for _, r := range results {
			if r.table != nil {
				tables = append(tables, *r.table.table)
				products = append(products, r.table.products...)
			}
			products = append(products, r.products...)
			references = append(references, r.references...)
		}
	}

	tables, droppedTables := extract.GateTables(tables)
	products, droppedProducts := extract.GateProducts(products)
	references, droppedRefs := extract.GateReferences(dedupeRefs(references))
	dropped := droppedTables + droppedProducts + droppedRefs

	status := domain.EntitlementsOK
	if len(products) == 0 {
		status = domain.EntitlementsNotFound
	}

	logger.Debug("entitlements extracted: doc=%s candidates=%d tables=%d products=%d refs=%d dropped=%d",
		set.DocID, len(candidates), len(tables), len(products), len(references), dropped)

	return &domain.EntitlementsResult{
		DocID:       set.DocID,
		ExtractedAt: time.Now().UTC(),
		Pipeline: domain.PipelineInfo{
			Version: extract.PipelineVersion,
			Ruleset: extract.RulesetVersion,
		},
		Entitlements: domain.Entitlements{
			Status:     status,
			Tables:     tables,
			Products:   products,
			References: references,
		},
		Dropped: dropped,
	}, nil
}

// scanChunk routes one chunk to the table or prose lane and captures
// references. Failures on a single chunk are skipped, never fatal.
func scanChunk(c *domain.Chunk) (out []laneResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("entitlement scan skipped chunk %s: %v", c.ID, r)
			out = nil
		}
	}()

	var r laneResult
	if c.Kind == domain.ChunkTable {
		r.table = fromTable(c)
	} else {
		r.products = fromProse(c)
	}
	r.references = fromReferences(c)
	if r.table == nil && len(r.products) == 0 && len(r.references) == 0 {
		return nil
	}
	return []laneResult{r}
}

// dedupeRefs keeps the first reference per type; repeated mentions across
// chunks add nothing.
func dedupeRefs(refs []domain.EntitlementReference) []domain.EntitlementReference {
	seen := make(map[domain.RefType]bool, len(refs))
	var out []domain.EntitlementReference
	for _, r := range refs {
		if seen[r.RefType] {
			continue
		}
		seen[r.RefType] = true
		out = append(out, r)
	}
	return out
}
