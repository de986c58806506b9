package analysis

import (
	"errors"
	"fmt"

	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

// Compliance flags attached to analysis results.
const (
	FlagTechnicalPolicyViolation = "Technical Policy Violation"
	FlagUnknownQuestion          = "Unknown Question"
	FlagPolicyMismatch           = "Policy Mismatch"
)

// Batch contract violations. Classification semantics are undefined without a
// standard to compare against, so these fail the whole batch up front.
var (
	ErrEmptyStandard  = errors.New("master standard has no rows")
	ErrMissingRowID   = errors.New("submission row missing id")
	ErrDuplicateRowID = errors.New("duplicate submission row id")
)

// Engine is the deterministic classification strategy: category red-flag
// overrides first, then fuzzy question routing, then confidence-gated answer
// matching. Holds no mutable state; safe for concurrent use and idempotent
// for fixed inputs.
type Engine struct {
	metric            Metric
	questionThreshold float64
	answerThreshold   float64
}

type Option func(*Engine)

// WithMetric swaps the similarity metric.
func WithMetric(m Metric) Option {
	return func(e *Engine) { e.metric = m }
}

// WithThresholds overrides the acceptance thresholds. The answer threshold is
// stricter than the question threshold on purpose: misrouting a question is
// recoverable by a human skimming feedback, silently accepting the wrong
// verdict is not.
func WithThresholds(question, answer float64) Option {
	return func(e *Engine) {
		e.questionThreshold = question
		e.answerThreshold = answer
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		metric:            TokenSetMetric{},
		questionThreshold: 0.4,
		answerThreshold:   0.3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify runs every submission row against the master standard snapshot and
// returns exactly one result per row, keyed by row ID. Rows are independent:
// no row's outcome depends on any other row or on processing order.
func (e *Engine) Classify(rows []assessment.SubmissionRow, master []standard.MasterRow) (map[string]assessment.AnalysisResult, error) {
	if len(master) == 0 {
		return nil, ErrEmptyStandard
	}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			return nil, ErrMissingRowID
		}
		if _, dup := seen[row.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRowID, row.ID)
		}
		seen[row.ID] = struct{}{}
	}

	results := make(map[string]assessment.AnalysisResult, len(rows))
	for _, row := range rows {
		results[row.ID] = e.classifyRow(row, master)
	}
	return results, nil
}

func (e *Engine) classifyRow(row assessment.SubmissionRow, master []standard.MasterRow) assessment.AnalysisResult {
	normalized := Normalize(row.Answer)
	category := row.Category
	if category == "" {
		category = "General"
	}

	// red flags override everything else for the row
	if flag := CheckRedFlags(category, normalized); flag != "" {
		return assessment.AnalysisResult{
			RowID:            row.ID,
			RiskLevel:        assessment.RiskHigh,
			Feedback:         fmt.Sprintf("Critical technical discrepancy: %q detected in %s context. This standard is considered insecure or non-compliant.", flag, category),
			EvidenceRequired: true,
			ComplianceFlag:   FlagTechnicalPolicyViolation,
		}
	}

	idx, _, ok := e.matchQuestion(row.Question, master)
	if !ok {
		// fail open to caution: unmatched content is never silently passed
		return assessment.AnalysisResult{
			RowID:            row.ID,
			RiskLevel:        assessment.RiskMedium,
			Feedback:         "No direct match found in the active master standard. Manual assessment required.",
			EvidenceRequired: true,
			ComplianceFlag:   FlagUnknownQuestion,
		}
	}

	return e.classifyAnswer(row, normalized, master[idx])
}
