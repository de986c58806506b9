package standard

import "time"

// SetID identifier type
type SetID string

// MasterRow is organizational ground truth for one control: a reference
// question with the three canonical answers per risk tier.
type MasterRow struct {
	Question       string `json:"question"`
	PassAnswer     string `json:"pass_answer"`
	ConsiderAnswer string `json:"consider_answer"`
	FailAnswer     string `json:"fail_answer"`
}

// Set is a named master standard. Exactly one set is active per tenant;
// classification runs always read a snapshot of the active set's rows.
type Set struct {
	ID          SetID       `json:"id"`
	TenantID    string      `json:"tenant_id"`
	Name        string      `json:"name"`
	LastUpdated time.Time   `json:"last_updated"`
	Rows        []MasterRow `json:"rows"`
}
