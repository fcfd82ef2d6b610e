package extract

// Confidence scoring constants. Scores are additive from a per-lane base
// and clamped to [0,1] before a record is emitted.

// Definitions lane.
const (
	DefinitionBase        = 0.4
	DefinitionInSection   = 0.25
	DefinitionQuoted      = 0.20
	DefinitionClauseRef   = 0.10
	DefinitionGoodLength  = 0.05
	DefinitionLongTerm    = -0.20
	DefinitionShortText   = -0.20
	DefinitionGoodLenMin  = 30
	DefinitionGoodLenMax  = 500
	DefinitionLongTermLen = 60
	DefinitionShortLen    = 10
)

// Entitlement table lane.
const (
	TableProductBase      = 0.6
	TableProductLicensed  = 0.2
	TableProductMetric    = 0.1
	TableProductQuantity  = 0.1
	TableProductEmptyName = -0.2
	TableWithHeader       = 0.8
	TableWithoutHeader    = 0.6
)

// Entitlement prose lane.
const (
	ProseProductBase      = 0.45
	ProseProductStrong    = 0.15
	ProseProductMetric    = 0.15
	ProseProductQuantity  = 0.10
	ProseProductAmbiguous = -0.20
)

// ReferenceConfidence scores a captured external-document reference.
const ReferenceConfidence = 0.6

// Clamp bounds a score to [0,1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
