package file

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// ExportDefinitionsCSV writes a flat CSV of a definitions result and
// returns the file path.
func (s *Store) ExportDefinitionsCSV(res *domain.DefinitionsResult) (string, error) {
	if res == nil || res.DocID == "" {
		return "", fmt.Errorf("definitions result: %w", domain.ErrInvalidInput)
	}

	rows := [][]string{{"term", "definition", "clause_ref", "section", "pages", "confidence", "conflict"}}
	for _, d := range res.Definitions {
		rows = append(rows, []string{
			d.Term,
			d.Definition,
			d.Location.ClauseRef,
			strings.Join(d.Location.SectionPath, " > "),
			pageRange(d.Evidence),
			fmt.Sprintf("%.2f", d.Confidence),
			fmt.Sprintf("%t", d.Conflict),
		})
	}
	return s.writeCSV(res.DocID, "definitions.csv", rows)
}

// ExportEntitlementsCSV writes a flat CSV of an entitlements result and
// returns the file path. References are appended after products so a
// single file captures the whole result.
func (s *Store) ExportEntitlementsCSV(res *domain.EntitlementsResult) (string, error) {
	if res == nil || res.DocID == "" {
		return "", fmt.Errorf("entitlements result: %w", domain.ErrInvalidInput)
	}

	rows := [][]string{{"kind", "name", "metric", "quantity", "term", "territory", "restrictions", "pages", "confidence"}}
	for _, p := range res.Entitlements.Products {
		qty := ""
		if p.Quantity != nil {
			qty = fmt.Sprintf("%d", *p.Quantity)
		} else if p.QuantityRaw != "" {
			qty = p.QuantityRaw
		}
		term := ""
		if p.Term != nil {
			term = p.Term.Raw
		}
		rows = append(rows, []string{
			"product",
			p.Name,
			p.Metric,
			qty,
			term,
			p.Territory,
			strings.Join(p.Restrictions, "; "),
			pageRange(p.Evidence),
			fmt.Sprintf("%.2f", p.Confidence),
		})
	}
	for _, r := range res.Entitlements.References {
		rows = append(rows, []string{
			"reference",
			string(r.RefType),
			"", "", "", "",
			r.RefText,
			pageRange(r.Evidence),
			fmt.Sprintf("%.2f", r.Confidence),
		})
	}
	return s.writeCSV(res.DocID, "entitlements.csv", rows)
}

// WriteReviewPack renders a markdown summary of everything extracted
// from a document, for human review outside the terminal. Either result
// may be nil when that extraction has not run.
func (s *Store) WriteReviewPack(docID string, defs *domain.DefinitionsResult, ents *domain.EntitlementsResult) (string, error) {
	if docID == "" {
		return "", fmt.Errorf("review pack: %w", domain.ErrInvalidInput)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Review pack: %s\n\n", docID)

	b.WriteString("## Defined terms\n\n")
	if defs == nil || len(defs.Definitions) == 0 {
		b.WriteString("_No definitions extracted._\n\n")
	} else {
		for _, d := range defs.Definitions {
			fmt.Fprintf(&b, "### %s\n\n", d.Term)
			fmt.Fprintf(&b, "%s\n\n", d.Definition)
			fmt.Fprintf(&b, "- Confidence: %.2f\n", d.Confidence)
			if d.Location.ClauseRef != "" {
				fmt.Fprintf(&b, "- Clause: %s\n", d.Location.ClauseRef)
			}
			if len(d.Location.SectionPath) > 0 {
				fmt.Fprintf(&b, "- Section: %s\n", strings.Join(d.Location.SectionPath, " > "))
			}
			if d.Conflict {
				b.WriteString("- **Conflict: multiple differing definitions found**\n")
			}
			writeEvidence(&b, d.Evidence)
			b.WriteString("\n")
		}
	}

	b.WriteString("## Licensing entitlements\n\n")
	if ents == nil {
		b.WriteString("_No entitlements extracted._\n\n")
	} else {
		fmt.Fprintf(&b, "Status: %s\n\n", ents.Entitlements.Status)
		for _, p := range ents.Entitlements.Products {
			fmt.Fprintf(&b, "### %s\n\n", p.Name)
			if p.Metric != "" {
				fmt.Fprintf(&b, "- Metric: %s\n", p.Metric)
			}
			if p.Quantity != nil {
				fmt.Fprintf(&b, "- Quantity: %d\n", *p.Quantity)
			} else if p.QuantityRaw != "" {
				fmt.Fprintf(&b, "- Quantity: %s\n", p.QuantityRaw)
			}
			if p.Term != nil {
				fmt.Fprintf(&b, "- Term: %s\n", p.Term.Raw)
			}
			if p.Territory != "" {
				fmt.Fprintf(&b, "- Territory: %s\n", p.Territory)
			}
			for _, r := range p.Restrictions {
				fmt.Fprintf(&b, "- Restriction: %s\n", r)
			}
			fmt.Fprintf(&b, "- Confidence: %.2f\n", p.Confidence)
			writeEvidence(&b, p.Evidence)
			b.WriteString("\n")
		}
		if len(ents.Entitlements.References) > 0 {
			b.WriteString("### References to other documents\n\n")
			for _, r := range ents.Entitlements.References {
				fmt.Fprintf(&b, "- %s: %q (pages %s)\n", r.RefType, r.RefText, pageRange(r.Evidence))
			}
			b.WriteString("\n")
		}
	}

	path := filepath.Join(s.DocDir(docID), "review_pack.md")
	if err := os.MkdirAll(s.DocDir(docID), 0700); err != nil {
		return "", fmt.Errorf("creating document directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return "", fmt.Errorf("writing review pack: %w", err)
	}
	return path, nil
}

// WriteChunkDebug renders a chunk set as markdown, one section per
// chunk, for inspecting sectionization decisions.
func (s *Store) WriteChunkDebug(set *domain.ChunkSet) (string, error) {
	if set == nil || set.DocID == "" {
		return "", fmt.Errorf("chunk set: %w", domain.ErrInvalidInput)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Chunks: %s\n\n", set.DocID)
	fmt.Fprintf(&b, "%d chunks, chunker %s ruleset %s\n\n", len(set.Chunks), set.Chunking.Version, set.Chunking.Ruleset)
	for i, c := range set.Chunks {
		fmt.Fprintf(&b, "## %d. %s (pages %d-%d)\n\n", i+1, c.Kind, c.PageStart, c.PageEnd)
		fmt.Fprintf(&b, "- ID: `%s`\n", c.ID)
		if len(c.SectionPath) > 0 {
			fmt.Fprintf(&b, "- Section: %s\n", strings.Join(c.SectionPath, " > "))
		}
		if c.ClauseRef != "" {
			fmt.Fprintf(&b, "- Clause: %s\n", c.ClauseRef)
		}
		fmt.Fprintf(&b, "\n```\n%s\n```\n\n", c.Text)
	}

	path := filepath.Join(s.DocDir(set.DocID), "chunks_debug.md")
	if err := os.MkdirAll(s.DocDir(set.DocID), 0700); err != nil {
		return "", fmt.Errorf("creating document directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return "", fmt.Errorf("writing chunk debug: %w", err)
	}
	return path, nil
}

func (s *Store) writeCSV(docID, name string, rows [][]string) (string, error) {
	dir := s.DocDir(docID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating document directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// pageRange summarises the page span covered by a set of evidence items.
func pageRange(ev []domain.Evidence) string {
	lo, hi := 0, 0
	for _, e := range ev {
		if lo == 0 || e.PageStart < lo {
			lo = e.PageStart
		}
		if e.PageEnd > hi {
			hi = e.PageEnd
		}
	}
	if lo == 0 {
		return ""
	}
	if lo == hi {
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func writeEvidence(b *strings.Builder, ev []domain.Evidence) {
	for _, e := range ev {
		fmt.Fprintf(b, "- Evidence (pages %d-%d): %s\n", e.PageStart, e.PageEnd, e.Snippet)
	}
}
