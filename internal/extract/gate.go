package extract

import "github.com/thatssomoneybaby/IPdf/internal/core/domain"

// The evidence gate is the last pass before output: any record lacking a
// chunk id or a complete page range is dropped, never passed through with
// partial evidence. Drops are counted, not errors.

func complete(ev []domain.Evidence) bool {
	if len(ev) == 0 {
		return false
	}
	for _, e := range ev {
		if !e.Complete() {
			return false
		}
	}
	return true
}

// GateDefinitions filters definition records, returning the kept records
// and the dropped count.
func GateDefinitions(recs []domain.DefinitionRecord) ([]domain.DefinitionRecord, int) {
	kept := recs[:0:0]
	dropped := 0
	for _, r := range recs {
		if complete(r.Evidence) {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	return kept, dropped
}

// GateTables filters entitlement tables.
func GateTables(recs []domain.EntitlementTable) ([]domain.EntitlementTable, int) {
	kept := recs[:0:0]
	dropped := 0
	for _, r := range recs {
		if complete(r.Evidence) {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	return kept, dropped
}

// GateProducts filters entitlement products.
func GateProducts(recs []domain.EntitlementProduct) ([]domain.EntitlementProduct, int) {
	kept := recs[:0:0]
	dropped := 0
	for _, r := range recs {
		if complete(r.Evidence) {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	return kept, dropped
}

// GateReferences filters entitlement references.
func GateReferences(recs []domain.EntitlementReference) ([]domain.EntitlementReference, int) {
	kept := recs[:0:0]
	dropped := 0
	for _, r := range recs {
		if complete(r.Evidence) {
			kept = append(kept, r)
		} else {
			dropped++
		}
	}
	return kept, dropped
}
