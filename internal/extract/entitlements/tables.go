// Package entitlements extracts licensing entitlements from candidate
// chunks: a table-first lane over table chunks, a prose fallback lane, and
// external-document reference capture.
package entitlements

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
	"github.com/thatssomoneybaby/IPdf/internal/normalise"
)

// headerSynonyms maps header cell variants to canonical column names.
var headerSynonyms = map[string]string{
	"program":           "product",
	"programs":          "product",
	"product":           "product",
	"products":          "product",
	"service":           "product",
	"services":          "product",
	"licensed program":  "product",
	"licensed programs": "product",
	"item":              "product",
	"description":       "product",

	"metric":          "metric",
	"license metric":  "metric",
	"licence metric":  "metric",
	"measure":         "metric",
	"unit of measure": "metric",

	"qty":      "quantity",
	"quantity": "quantity",
	"units":    "quantity",
	"number":   "quantity",

	"term":              "term",
	"subscription term": "term",
	"start":             "term",
	"start date":        "term",
	"end":               "term",
	"end date":          "term",
	"duration":          "term",

	"territory": "territory",
	"region":    "territory",

	"restriction":  "restrictions",
	"restrictions": "restrictions",
	"limitations":  "restrictions",
	"notes":        "restrictions",

	"sku":       "sku",
	"part":      "sku",
	"part no":   "sku",
	"item code": "sku",

	"csi":        "csi",
	"support id": "csi",

	"price": "price",
	"rate":  "price",
	"total": "price",
	"fees":  "price",
}

// Signal groups for table classification; the group with the most matched
// keywords decides the type.
var tableSignals = []struct {
	kind     domain.TableKind
	keywords []string
}{
	{domain.TableLicensedPrograms, []string{"program", "product", "service", "sku", "metric", "quantity", "qty", "units", "licensed"}},
	{domain.TablePricing, []string{"price", "rate", "total", "fees", "usd", "eur", "gbp", "amount"}},
	{domain.TableSupport, []string{"support", "csi", "severity", "maintenance"}},
}

var (
	firstInteger = regexp.MustCompile(`\d[\d,]*`)
	numericCell  = regexp.MustCompile(`^[\d.,%$€£\s-]+$`)
	datePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|[A-Z][a-z]+ \d{1,2}, \d{4}`)
	duration     = regexp.MustCompile(`(?i)(\d+)[\s-]*(year|month)s?`)
	anyLetter    = regexp.MustCompile(`[A-Za-z]`)
	anyDigit     = regexp.MustCompile(`\d`)
)

// tableResult is the output of the table lane for one chunk.
type tableResult struct {
	table    *domain.EntitlementTable
	products []domain.EntitlementProduct
}

// fromTable derives a normalised entitlement table and its product rows
// from one table chunk.
func fromTable(c *domain.Chunk) *tableResult {
	rows := tableRows(c)
	if len(rows) == 0 {
		return nil
	}

	headers, data, hasHeader := detectHeader(rows)
	cols := make([]string, len(headers))
	for i, h := range headers {
		if canon := canonicalColumn(h); canon != "" {
			cols[i] = canon
		} else {
			cols[i] = fmt.Sprintf("col_%d", i+1)
		}
	}

	kind := classify(headers, rows)
	confidence := extract.TableWithoutHeader
	if hasHeader {
		confidence = extract.TableWithHeader
	}

	ev := extract.EvidenceFor(c, "")
	table := &domain.EntitlementTable{
		Title:      c.Heading,
		TableType:  kind,
		Headers:    headers,
		Confidence: confidence,
		Evidence:   []domain.Evidence{ev},
	}

	var products []domain.EntitlementProduct
	for _, row := range data {
		m := make(map[string]string, len(cols))
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			m[cols[i]] = strings.TrimSpace(cell)
		}
		table.Rows = append(table.Rows, m)

		name := m["product"]
		positional := false
		if name == "" {
			// No recognised product column: the first cell is the best
			// available name. Rows that still have nothing there continue
			// the previous row, their text landing in its restrictions.
			if name = m["col_1"]; name != "" {
				positional = true
			}
		}
		if name == "" {
			if spill := strings.TrimSpace(strings.Join(nonEmpty(m), "; ")); spill != "" && len(products) > 0 {
				prev := &products[len(products)-1]
				prev.Restrictions = append(prev.Restrictions, spill)
			}
			continue
		}
		products = append(products, rowProduct(name, m, kind, c, positional))
	}

	return &tableResult{table: table, products: products}
}

// rowProduct builds one product record from a canonical row mapping.
// Unrecognised columns fall back positionally: col_2 supplies the metric
// when it carries letters, col_2 or col_3 the quantity when it carries
// digits. A positionally recovered name scores the empty-cell penalty.
func rowProduct(name string, m map[string]string, kind domain.TableKind, c *domain.Chunk, positional bool) domain.EntitlementProduct {
	p := domain.EntitlementProduct{
		Name:      name,
		Metric:    m["metric"],
		Territory: m["territory"],
		Source:    domain.SourceTable,
		Evidence:  []domain.Evidence{extract.EvidenceFor(c, name)},
	}
	if p.Metric == "" {
		if c2 := m["col_2"]; anyLetter.MatchString(c2) {
			p.Metric = c2
		}
	}
	raw := m["quantity"]
	if raw == "" {
		if c2 := m["col_2"]; c2 != "" && anyDigit.MatchString(c2) && p.Metric == "" {
			raw = c2
		} else if c3 := m["col_3"]; anyDigit.MatchString(c3) {
			raw = c3
		}
	}
	if raw != "" {
		p.QuantityRaw = raw
		p.Quantity = parseQuantity(raw)
	}
	if t := parseTerm(m["term"]); t != nil {
		p.Term = t
	}
	if r := m["restrictions"]; r != "" {
		p.Restrictions = append(p.Restrictions, r)
	}

	score := extract.TableProductBase
	if kind == domain.TableLicensedPrograms {
		score += extract.TableProductLicensed
	}
	if p.Metric != "" {
		score += extract.TableProductMetric
	}
	if p.Quantity != nil {
		score += extract.TableProductQuantity
	}
	if positional {
		score += extract.TableProductEmptyName
	}
	p.Confidence = extract.Clamp(score)
	return p
}

// tableRows returns the raw grid for a table chunk, falling back to the
// pipe-delimited text form when raw rows were not retained.
func tableRows(c *domain.Chunk) [][]string {
	if c.Table != nil && len(c.Table.Rows) > 0 {
		return c.Table.Rows
	}
	var rows [][]string
	for _, line := range strings.Split(c.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := strings.Split(line, " | ")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

// detectHeader finds the header row: row 1 if it has at least two
// non-numeric cells carrying header keywords, else row 2 under the same
// rule, else the table is headerless and positional names are synthesized.
func detectHeader(rows [][]string) (headers []string, data [][]string, hasHeader bool) {
	if headerScore(rows[0]) >= 2 {
		return rows[0], rows[1:], true
	}
	if len(rows) > 1 && headerScore(rows[1]) >= 2 {
		return rows[1], rows[2:], true
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	headers = make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("col_%d", i+1)
	}
	return headers, rows, false
}

func headerScore(row []string) int {
	score := 0
	for _, cell := range row {
		t := strings.TrimSpace(cell)
		if t == "" || numericCell.MatchString(t) {
			continue
		}
		if canonicalColumn(t) != "" {
			score++
		}
	}
	return score
}

// canonicalColumn maps a header cell to its canonical column name, or ""
// when unrecognised. Exact variant matches win over substring matches;
// among substrings the longest variant decides.
func canonicalColumn(cell string) string {
	t := strings.ToLower(normalise.Collapse(cell))
	if canon, ok := headerSynonyms[t]; ok {
		return canon
	}
	bestLen := 0
	best := ""
	for variant, canon := range headerSynonyms {
		if strings.Contains(t, variant) && len(variant) > bestLen {
			bestLen = len(variant)
			best = canon
		}
	}
	return best
}

// classify picks the table type from the strongest header signal group.
func classify(headers []string, rows [][]string) domain.TableKind {
	haystack := strings.ToLower(strings.Join(headers, " "))
	if len(rows) > 0 {
		haystack += " " + strings.ToLower(strings.Join(rows[0], " "))
	}
	best := domain.TableUnknownKind
	bestCount := 0
	for _, sig := range tableSignals {
		count := 0
		for _, kw := range sig.keywords {
			if strings.Contains(haystack, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = sig.kind
		}
	}
	return best
}

// parseQuantity extracts the first integer from a cell, commas stripped.
// Unparseable cells return nil; the raw string is always retained on the
// record.
func parseQuantity(raw string) *int {
	m := firstInteger.FindString(raw)
	if m == "" {
		return nil
	}
	m = strings.ReplaceAll(m, ",", "")
	n := 0
	for _, r := range m {
		n = n*10 + int(r-'0')
	}
	return &n
}

// parseTerm best-effort parses a term-like cell into start/end dates or a
// raw duration.
func parseTerm(cell string) *domain.Term {
	t := strings.TrimSpace(cell)
	if t == "" {
		return nil
	}
	term := &domain.Term{Raw: t}
	if dates := datePattern.FindAllString(t, 2); len(dates) > 0 {
		term.Start = dates[0]
		if len(dates) > 1 {
			term.End = dates[1]
		}
	}
	return term
}

func nonEmpty(m map[string]string) []string {
	var out []string
	// Canonical order keeps continuation text deterministic.
	for _, k := range []string{"product", "metric", "quantity", "term", "territory", "restrictions", "sku", "csi", "price"} {
		if v := m[k]; v != "" {
			out = append(out, v)
		}
	}
	for i := 1; i <= len(m); i++ {
		if v := m[fmt.Sprintf("col_%d", i)]; v != "" {
			out = append(out, v)
		}
	}
	return out
}
