package review

import "time"

// SetID identifier type
type SetID string

// Status enum
type Status string

const (
	StatusOpen     Status = "Open"
	StatusClosed   Status = "Closed"
	StatusArchived Status = "Archived"
)

// ReviewSet groups the audit reports belonging to one bid or procurement
// round. Reports are referenced by ID; the report aggregate stays owned by
// the assessment package.
type ReviewSet struct {
	ID          SetID     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"date_created"`
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	ReportIDs   []string  `json:"report_ids"`
}
