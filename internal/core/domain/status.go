package domain

import "time"

// DocumentStatus tracks a document through the processing lifecycle.
type DocumentStatus string

// Document statuses.
const (
	StatusQueued         DocumentStatus = "QUEUED"
	StatusChunking       DocumentStatus = "CHUNKING"
	StatusReady          DocumentStatus = "READY"
	StatusFailedChunking DocumentStatus = "FAILED_CHUNKING"
)

// ExtractionStatus tracks one extraction run against a document.
type ExtractionStatus string

// Extraction statuses. Empty means the extraction has not been requested.
const (
	ExtractionRunning  ExtractionStatus = "RUNNING"
	ExtractionComplete ExtractionStatus = "COMPLETE"
	ExtractionFailed   ExtractionStatus = "FAILED"
)

// DocumentRecord is the stored processing metadata for one document.
type DocumentRecord struct {
	DocID              string           `json:"doc_id"`
	Filename           string           `json:"filename,omitempty"`
	Status             DocumentStatus   `json:"status"`
	PageCount          int              `json:"page_count,omitempty"`
	ChunkCount         int              `json:"chunk_count,omitempty"`
	IngestedAt         time.Time        `json:"ingested_at"`
	DefinitionsStatus  ExtractionStatus `json:"definitions_status,omitempty"`
	EntitlementsStatus ExtractionStatus `json:"entitlements_status,omitempty"`
	Errors             []string         `json:"errors,omitempty"`
}

// FeedbackVerdict is a reviewer's judgement of one extracted record.
type FeedbackVerdict string

// Feedback verdicts.
const (
	VerdictCorrect   FeedbackVerdict = "correct"
	VerdictIncorrect FeedbackVerdict = "incorrect"
	VerdictPartial   FeedbackVerdict = "partial"
)

// FeedbackItem records a human review verdict against an extracted record.
type FeedbackItem struct {
	ID        string          `json:"id"`
	DocID     string          `json:"doc_id"`
	ItemType  string          `json:"item_type"` // definitions | entitlements
	ItemKey   string          `json:"item_key"`  // term or product name
	Verdict   FeedbackVerdict `json:"verdict"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
