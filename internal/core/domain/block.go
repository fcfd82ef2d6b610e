package domain

// BlockKind classifies a parsed block from the upstream document parser.
type BlockKind string

// Block kinds emitted by the upstream parser.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockListItem  BlockKind = "list_item"
	BlockTable     BlockKind = "table"
	BlockHeader    BlockKind = "header"
	BlockFooter    BlockKind = "footer"
	BlockUnknown   BlockKind = "unknown"
)

// IsNoise returns true for running headers/footers that are excluded from
// chunk formation.
func (k BlockKind) IsNoise() bool {
	return k == BlockHeader || k == BlockFooter
}

// Box is a spatial bounding box on a page, in PDF points.
type Box struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Table holds the raw cell grid the parser recovered for a table block.
type Table struct {
	// Rows is the raw cell text, row-major.
	Rows [][]string `json:"rows"`
}

// Block is an immutable unit of parsed text with page provenance.
// The core never mutates blocks; it only reads them.
type Block struct {
	// ID is the parser-assigned block identifier.
	ID string `json:"block_id"`

	// Kind is the parser's classification of the block.
	Kind BlockKind `json:"kind"`

	// Text is the raw block text before normalisation.
	Text string `json:"text"`

	// PageStart and PageEnd are 1-based page numbers.
	PageStart int `json:"page_start"`
	PageEnd   int `json:"page_end"`

	// BBox is the optional spatial position of the block.
	BBox *Box `json:"bbox,omitempty"`

	// Table holds raw rows for table blocks, nil otherwise.
	Table *Table `json:"table,omitempty"`
}

// Document is the ordered block list for one parsed document.
type Document struct {
	// DocID identifies the document, typically the source file's SHA-256.
	DocID string `json:"doc_id"`

	// PageCount is the number of pages the parser reported.
	PageCount int `json:"page_count"`

	// Blocks is the ordered block stream.
	Blocks []Block `json:"blocks"`
}
