package assessment

import (
	"time"
)

// ID tipe untuk AuditReport
type ReportID string

// RiskLevel enum
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
	RiskPass   RiskLevel = "Pass"
)

// Rank returns the ordinal of a risk level for sorting: High > Medium > Low > Pass.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	case RiskPass:
		return 0
	}
	return -1
}

// Valid reports whether r is one of the four known tiers.
func (r RiskLevel) Valid() bool {
	return r.Rank() >= 0
}

// Decision enum, the business-facing label derived from a risk level.
type Decision string

const (
	DecisionUnacceptable Decision = "Unacceptable"
	DecisionConsider     Decision = "Consider"
	DecisionAccepted     Decision = "Accepted"
)

// Decision derives the review decision from the risk level. It is computed at
// read time and never persisted, so the two can never disagree.
func (r RiskLevel) Decision() Decision {
	switch r {
	case RiskHigh:
		return DecisionUnacceptable
	case RiskPass:
		return DecisionAccepted
	}
	return DecisionConsider
}

// SubmissionRow is one question/answer pair from an uploaded questionnaire.
type SubmissionRow struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Supplier string `json:"supplier,omitempty"`
}

// AnalysisResult is the verdict for one submission row. Produced exactly once
// per classification run, immutable after creation.
type AnalysisResult struct {
	RowID            string    `json:"row_id"`
	RiskLevel        RiskLevel `json:"risk_level"`
	Feedback         string    `json:"feedback"`
	EvidenceRequired bool      `json:"evidence_required"`
	ComplianceFlag   string    `json:"compliance_flag,omitempty"`
}

// SubmissionSummary value object, derived entirely from the result set.
type SubmissionSummary struct {
	Total       int `json:"total"`
	HighCount   int `json:"high"`
	MediumCount int `json:"medium"`
	LowCount    int `json:"low"`
	PassCount   int `json:"pass"`
	Score       int `json:"score"`
}

// Aggregate Root: AuditReport, one analyzed questionnaire upload.
type AuditReport struct {
	ID           ReportID                  `json:"id"`
	TenantID     string                    `json:"tenant_id"`
	FileName     string                    `json:"file_name"`
	UploadedAt   time.Time                 `json:"uploaded_at"`
	StandardName string                    `json:"standard_name"`
	ArtifactURL  string                    `json:"artifact_url,omitempty"`
	Rows         []SubmissionRow           `json:"rows"`
	Results      map[string]AnalysisResult `json:"results"`
	Summary      SubmissionSummary         `json:"summary"`
}
