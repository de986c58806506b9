package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/ingestion"
)

// CSVIngester parses comma-delimited questionnaire uploads. Quoted fields,
// escaped quotes and CRLF line endings follow RFC 4180.
type CSVIngester struct{}

func NewCSVIngester() *CSVIngester { return &CSVIngester{} }

func newReader(text string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

// Headers reads only the header row, for the column-mapping step in the UI.
func (*CSVIngester) Headers(text string) ([]string, error) {
	record, err := newReader(text).Read()
	if err == io.EOF {
		return nil, ingestion.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("parsing headers: %w", err)
	}
	headers := make([]string, len(record))
	for i, h := range record {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// Parse turns the file into submission rows using the column mapping. Lines
// shorter than the mapped columns are skipped and reported, never silently
// dropped.
func (*CSVIngester) Parse(text string, mapping ingestion.ColumnMapping) ([]assessment.SubmissionRow, []ingestion.SkippedLine, error) {
	records, err := newReader(text).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing file: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, ingestion.ErrEmptyFile
	}

	headers := records[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	qIdx, aIdx, cIdx, sIdx, err := resolveColumns(headers, mapping)
	if err != nil {
		return nil, nil, err
	}

	need := qIdx
	if aIdx > need {
		need = aIdx
	}

	var rows []assessment.SubmissionRow
	var skipped []ingestion.SkippedLine
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header row
		if len(record) <= need {
			skipped = append(skipped, ingestion.SkippedLine{
				Line:   line,
				Reason: fmt.Sprintf("row has %d fields, mapped columns need at least %d", len(record), need+1),
			})
			continue
		}
		row := assessment.SubmissionRow{
			ID:       fmt.Sprintf("row-%d", i+1),
			Question: fieldOr(record, qIdx, "Unknown Question"),
			Answer:   fieldOr(record, aIdx, "No Answer"),
			Category: fieldOr(record, cIdx, "General"),
			Supplier: fieldOr(record, sIdx, "Unknown"),
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func resolveColumns(headers []string, mapping ingestion.ColumnMapping) (q, a, c, s int, err error) {
	c, s = -1, -1
	if mapping.Auto() {
		q = indexContaining(headers, "question")
		a = indexContaining(headers, "answer")
		if q == -1 || a == -1 {
			return 0, 0, 0, 0, fmt.Errorf("%w: file must contain question and answer columns", ingestion.ErrColumnNotFound)
		}
		c = indexContaining(headers, "category")
		s = indexContaining(headers, "supplier")
		return q, a, c, s, nil
	}

	q = indexOf(headers, mapping.Question)
	a = indexOf(headers, mapping.Answer)
	if q == -1 || a == -1 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q or %q", ingestion.ErrColumnNotFound, mapping.Question, mapping.Answer)
	}
	if mapping.Category != "" {
		c = indexOf(headers, mapping.Category)
	}
	if mapping.Supplier != "" {
		s = indexOf(headers, mapping.Supplier)
	}
	return q, a, c, s, nil
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

func indexContaining(headers []string, substr string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), substr) {
			return i
		}
	}
	return -1
}

func fieldOr(record []string, idx int, fallback string) string {
	if idx < 0 || idx >= len(record) {
		return fallback
	}
	if v := strings.TrimSpace(record[idx]); v != "" {
		return v
	}
	return fallback
}
