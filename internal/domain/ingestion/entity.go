package ingestion

import "time"

// IngestError represents one input line the ingester could not turn into a
// submission row. Classification itself never drops rows; these entries audit
// what the upstream file parser skipped, so reviewers can see the gap.
type IngestError struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ReportID  string    `json:"report_id"`
	Line      int       `json:"line"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
