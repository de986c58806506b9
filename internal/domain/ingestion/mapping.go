package ingestion

import (
	"errors"

	"github.com/vendorvet/vendorvet/internal/domain/assessment"
)

// ColumnMapping names the uploaded file's columns. Question and Answer are
// required; Category and Supplier are optional.
type ColumnMapping struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Supplier string `json:"supplier,omitempty"`
}

// Auto reports whether the mapping asks the ingester to locate the question
// and answer columns by header name heuristics instead of exact names.
func (m ColumnMapping) Auto() bool {
	return m.Question == "" && m.Answer == ""
}

// SkippedLine records one input line the parser could not use.
type SkippedLine struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

var (
	ErrEmptyFile      = errors.New("file appears empty or missing headers")
	ErrColumnNotFound = errors.New("mapped column not found in file headers")
)

// Ingester port: turns a delimited text file plus a column mapping into
// submission rows. The engine treats this as an opaque upstream producer.
type Ingester interface {
	Headers(text string) ([]string, error)
	Parse(text string, mapping ColumnMapping) ([]assessment.SubmissionRow, []SkippedLine, error)
}
