package domain

import "time"

// TableKind classifies an entitlement table by its header signals.
type TableKind string

// Table kinds.
const (
	TableLicensedPrograms TableKind = "licensed_programs"
	TablePricing          TableKind = "pricing"
	TableSupport          TableKind = "support"
	TableUnknownKind      TableKind = "unknown"
)

// ProductSource records which extraction lane produced a product.
type ProductSource string

// Product sources.
const (
	SourceTable ProductSource = "table"
	SourceProse ProductSource = "prose"
)

// RefType classifies a pointer to an external entitlement document.
type RefType string

// Reference types.
const (
	RefOrderForm        RefType = "order_form"
	RefOrderingDocument RefType = "ordering_document"
	RefSOW              RefType = "sow"
	RefMSA              RefType = "msa"
	RefSupportSchedule  RefType = "support_schedule"
)

// EntitlementTable is one recognised table with normalised columns.
type EntitlementTable struct {
	Title     string    `json:"title,omitempty"`
	TableType TableKind `json:"table_type"`

	// Headers are the raw header cells as found in the table.
	Headers []string `json:"headers"`

	// Rows map canonical column names to cell text.
	Rows []map[string]string `json:"rows"`

	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// Term is a best-effort parsed licence term.
type Term struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

// EntitlementProduct is one normalised licensed product row or prose match.
type EntitlementProduct struct {
	Name   string `json:"name"`
	Metric string `json:"metric,omitempty"`

	// Quantity is the parsed integer quantity; nil when not parseable.
	// QuantityRaw always preserves the source cell text.
	Quantity    *int   `json:"quantity,omitempty"`
	QuantityRaw string `json:"quantity_raw,omitempty"`

	Unit         string        `json:"unit,omitempty"`
	Term         *Term         `json:"term,omitempty"`
	Territory    string        `json:"territory,omitempty"`
	Restrictions []string      `json:"restrictions,omitempty"`
	Source       ProductSource `json:"source"`
	Confidence   float64       `json:"confidence"`
	Evidence     []Evidence    `json:"evidence"`
}

// EntitlementReference points at an external document that carries the
// actual entitlements ("as set out in the applicable Order Form").
type EntitlementReference struct {
	RefType    RefType    `json:"ref_type"`
	RefText    string     `json:"ref_text"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// EntitlementStatus distinguishes "nothing found" from "not yet run".
type EntitlementStatus string

// Entitlement statuses.
const (
	EntitlementsOK       EntitlementStatus = "OK"
	EntitlementsNotFound EntitlementStatus = "NO_ENTITLEMENTS_FOUND_IN_DOCUMENT"
)

// Entitlements groups all entitlement output for one document.
type Entitlements struct {
	Status     EntitlementStatus      `json:"status"`
	Tables     []EntitlementTable     `json:"tables"`
	Products   []EntitlementProduct   `json:"products"`
	References []EntitlementReference `json:"references"`
}

// EntitlementsResult is the complete entitlements output for one document.
type EntitlementsResult struct {
	DocID        string       `json:"doc_id"`
	ExtractedAt  time.Time    `json:"extracted_at"`
	Pipeline     PipelineInfo `json:"pipeline"`
	Entitlements Entitlements `json:"entitlements"`

	// Dropped counts records removed by the evidence gate.
	Dropped int `json:"dropped,omitempty"`
}
