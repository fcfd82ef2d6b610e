package entitlements

import (
	"regexp"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
)

// refPatterns are checked in order; "order form" must precede the generic
// ordering-document pattern.
var refPatterns = []struct {
	refType domain.RefType
	pattern *regexp.Regexp
}{
	{domain.RefOrderForm, regexp.MustCompile(`(?i)\border\s+forms?\b`)},
	{domain.RefOrderingDocument, regexp.MustCompile(`(?i)\bordering\s+documents?\b`)},
	{domain.RefSOW, regexp.MustCompile(`(?i)statements?\s+of\s+work|\bSOWs?\b`)},
	{domain.RefMSA, regexp.MustCompile(`(?i)master\s+(?:services?\s+|subscription\s+)?agreement|\bMSA\b`)},
	{domain.RefSupportSchedule, regexp.MustCompile(`(?i)support\s+schedules?\b`)},
}

// refContext requires pointing language or entitlement vocabulary before a
// mention counts as a reference.
var refContext = regexp.MustCompile(`(?i)set\s+(?:out|forth)\s+in|specified\s+in|described\s+in|pursuant\s+to|applicable|entitl|licen[cs]e|quantit`)

// fromReferences captures pointers to external entitlement documents in
// one chunk, at most one per reference type.
func fromReferences(c *domain.Chunk) []domain.EntitlementReference {
	if !refContext.MatchString(c.Text) {
		return nil
	}
	var out []domain.EntitlementReference
	for _, rp := range refPatterns {
		loc := rp.pattern.FindStringIndex(c.Text)
		if loc == nil {
			continue
		}
		mention := c.Text[loc[0]:loc[1]]
		out = append(out, domain.EntitlementReference{
			RefType:    rp.refType,
			RefText:    mention,
			Confidence: extract.ReferenceConfidence,
			Evidence:   []domain.Evidence{extract.EvidenceFor(c, mention)},
		})
	}
	return out
}
