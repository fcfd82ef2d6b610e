package entitlements

import (
	"regexp"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
)

// The prose lane only runs on non-table chunks carrying entitlement
// vocabulary; it never synthesizes a product without a name.

var vocabulary = []*regexp.Regexp{
	regexp.MustCompile(`(?i)licensed\s+(?:product|program|service)`),
	regexp.MustCompile(`(?i)\bentitle(?:d|ment|ments)\b`),
	regexp.MustCompile(`(?i)subscription\s+(?:term|period)`),
	regexp.MustCompile(`(?i)\b(?:processor|core|named\s+user|user|employee|seat)s?\b`),
}

// metricSynonyms maps prose keywords to canonical metric names. Longer
// phrases are tried first so "named user plus" never collapses to "user".
var metricSynonyms = []struct {
	pattern *regexp.Regexp
	metric  string
}{
	{regexp.MustCompile(`(?i)\bnamed\s+user\s+plus\b`), "Named User Plus"},
	{regexp.MustCompile(`(?i)\bnamed\s+users?\b`), "Named User"},
	{regexp.MustCompile(`(?i)\bprocessors?\b`), "Processor"},
	{regexp.MustCompile(`(?i)\bcores?\b`), "Core"},
	{regexp.MustCompile(`(?i)\bemployees?\b`), "Employee"},
	{regexp.MustCompile(`(?i)\bseats?\b`), "Seat"},
	{regexp.MustCompile(`(?i)\busers?\b`), "User"},
}

var (
	quantityPhrase = regexp.MustCompile(`(?i)\b(?:up\s+to\s+)?(\d{1,3}(?:,\d{3})*|\d+)\s+((?:named\s+user\s+plus|named\s+users?|processors?|cores?|employees?|seats?|users?)\b)`)

	// A Title-Case run of up to six words, allowing digits and interior
	// lowercase connectors, is the product-name shape.
	titleRun = regexp.MustCompile(`(?:[A-Z][A-Za-z0-9]+)(?:\s+(?:[A-Z][A-Za-z0-9]+|for|of|and)){0,5}`)

	ambiguousRef = regexp.MustCompile(`(?i)\bsuch\s+(?:software|product|program)s?\b|\bthe\s+foregoing\b`)
)

// stopNames are Title-Case runs that are contract boilerplate, never
// product names.
var stopNames = map[string]struct{}{
	"agreement": {}, "licensee": {}, "licensor": {}, "customer": {},
	"supplier": {}, "effective date": {}, "order form": {}, "schedule": {},
	"exhibit": {}, "appendix": {}, "confidential information": {},
	"intellectual property": {}, "the": {}, "named user": {},
	"named users": {}, "named user plus": {}, "processor": {},
	"processors": {}, "core": {}, "cores": {}, "seat": {}, "seats": {},
	"user": {}, "users": {}, "employee": {}, "employees": {},
	"subscription term": {}, "software": {}, "services": {},
}

var connectorWords = map[string]struct{}{
	"for": {}, "of": {}, "and": {},
}

// hasVocabulary gates the prose lane.
func hasVocabulary(text string) bool {
	for _, re := range vocabulary {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// fromProse derives product records from one non-table chunk. A record is
// emitted only when a product name is present together with a metric or a
// quantity.
func fromProse(c *domain.Chunk) []domain.EntitlementProduct {
	if !hasVocabulary(c.Text) {
		return nil
	}

	name, strong := productName(c.Text)
	if name == "" {
		return nil
	}

	metric := proseMetric(c.Text)
	qtyRaw, qty, unit := proseQuantity(c.Text)
	if metric == "" && qty == nil {
		return nil
	}

	p := domain.EntitlementProduct{
		Name:        name,
		Metric:      metric,
		Quantity:    qty,
		QuantityRaw: qtyRaw,
		Unit:        unit,
		Source:      domain.SourceProse,
		Evidence:    []domain.Evidence{extract.EvidenceFor(c, name)},
	}
	if t := proseTerm(c.Text); t != nil {
		p.Term = t
	}

	score := extract.ProseProductBase
	if strong {
		score += extract.ProseProductStrong
	}
	if metric != "" {
		score += extract.ProseProductMetric
	}
	if qty != nil {
		score += extract.ProseProductQuantity
	}
	if !strong && ambiguousRef.MatchString(c.Text) {
		score += extract.ProseProductAmbiguous
	}
	p.Confidence = extract.Clamp(score)
	return []domain.EntitlementProduct{p}
}

// productName finds the best Title-Case run that is not boilerplate.
// strong is true for multi-word names.
func productName(text string) (name string, strong bool) {
	for _, run := range titleRun.FindAllString(text, -1) {
		words := strings.Fields(run)
		for len(words) > 0 {
			if _, conn := connectorWords[words[len(words)-1]]; !conn {
				break
			}
			words = words[:len(words)-1]
		}
		if len(words) == 0 {
			continue
		}
		candidate := strings.Join(words, " ")
		if _, stop := stopNames[strings.ToLower(candidate)]; stop {
			continue
		}
		if len(words) >= 2 {
			return candidate, true
		}
		if name == "" {
			name = candidate
		}
	}
	return name, false
}

func proseMetric(text string) string {
	for _, ms := range metricSynonyms {
		if ms.pattern.MatchString(text) {
			return ms.metric
		}
	}
	return ""
}

func proseQuantity(text string) (raw string, qty *int, unit string) {
	m := quantityPhrase.FindStringSubmatch(text)
	if m == nil {
		return "", nil, ""
	}
	return strings.TrimSpace(m[0]), parseQuantity(m[1]), strings.TrimSpace(m[2])
}

func proseTerm(text string) *domain.Term {
	if m := duration.FindStringSubmatch(text); m != nil {
		return &domain.Term{Raw: strings.TrimSpace(m[0])}
	}
	if dates := datePattern.FindAllString(text, 2); len(dates) == 2 {
		return &domain.Term{Start: dates[0], End: dates[1], Raw: dates[0] + " - " + dates[1]}
	}
	return nil
}
