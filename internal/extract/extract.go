// Package extract holds the machinery shared by the definitions and
// entitlements engines: candidate selection, confidence scoring, the
// evidence gate, and the per-chunk worker pool.
package extract

import (
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/normalise"
)

// PipelineVersion is the extraction pipeline version stamped on results.
const PipelineVersion = "v1"

// RulesetVersion is the extraction ruleset tag stamped on results.
const RulesetVersion = "2026-01"

// EvidenceFor builds the source pointer for a record extracted from chunk,
// with the snippet centred on needle when present.
func EvidenceFor(chunk *domain.Chunk, needle string) domain.Evidence {
	return domain.Evidence{
		ChunkID:   chunk.ID,
		PageStart: chunk.PageStart,
		PageEnd:   chunk.PageEnd,
		ClauseRef: chunk.ClauseRef,
		Snippet:   normalise.Snippet(chunk.Text, needle, 240),
	}
}
