package definitions

import (
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/normalise"
)

// resolve deduplicates scored records by normalised term and marks
// conflicts. Terms compare case-insensitively with collapsed whitespace;
// display case is preserved on the surviving records.
//
// Among materially identical duplicates one survives, preferred in order:
// found in a Definitions-type section, then quoted-pattern source, then
// higher raw confidence, then earlier occurrence. Materially different
// texts for the same term are all retained, each marked conflict, with
// their evidence preserved.
func resolve(cands []scored) []domain.DefinitionRecord {
	groups := make(map[string][]scored)
	var keys []string
	for _, s := range cands {
		key := termKey(s.rec.Term)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], s)
	}

	var out []domain.DefinitionRecord
	for _, key := range keys {
		group := groups[key]

		variants := make(map[string][]scored)
		var variantKeys []string
		for _, s := range group {
			dk := defKey(s.rec.Definition)
			if _, seen := variants[dk]; !seen {
				variantKeys = append(variantKeys, dk)
			}
			variants[dk] = append(variants[dk], s)
		}

		conflict := len(variantKeys) > 1
		for _, dk := range variantKeys {
			best := prefer(variants[dk])
			rec := best.rec
			rec.Conflict = conflict
			out = append(out, rec)
		}
	}
	return out
}

// prefer picks the surviving record among materially identical duplicates.
func prefer(dups []scored) scored {
	best := dups[0]
	for _, s := range dups[1:] {
		if better(s, best) {
			best = s
		}
	}
	return best
}

func better(a, b scored) bool {
	if a.inDefs != b.inDefs {
		return a.inDefs
	}
	if a.quoted != b.quoted {
		return a.quoted
	}
	if a.rec.Confidence != b.rec.Confidence {
		return a.rec.Confidence > b.rec.Confidence
	}
	return a.order < b.order
}

func termKey(term string) string {
	return strings.ToLower(normalise.Collapse(term))
}

func defKey(def string) string {
	return strings.ToLower(normalise.Collapse(strings.TrimRight(def, " .;,")))
}
