package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

func testMaster() []standard.MasterRow {
	return []standard.MasterRow{
		{
			Question:       "Is data encrypted at rest?",
			PassAnswer:     "Yes, AES-256.",
			ConsiderAnswer: "Yes, but older standard (e.g. 3DES).",
			FailAnswer:     "No encryption.",
		},
		{
			Question:       "Is Multi-Factor Authentication (MFA) enforced for all access?",
			PassAnswer:     "Yes, enforced for all users.",
			ConsiderAnswer: "Admins only.",
			FailAnswer:     "No MFA.",
		},
	}
}

func TestEngineClassify(t *testing.T) {
	e := NewEngine()

	t.Run("red flag overrides everything", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "Yes, we use 3DES encryption.", Category: "Encryption"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		require.Len(t, results, 1)

		r := results["row-1"]
		assert.Equal(t, assessment.RiskHigh, r.RiskLevel)
		assert.Equal(t, FlagTechnicalPolicyViolation, r.ComplianceFlag)
		assert.True(t, r.EvidenceRequired)
		assert.Contains(t, r.Feedback, "3des")
		assert.Contains(t, r.Feedback, "Encryption")
	})

	t.Run("paraphrased question routes to pass answer", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Do you encrypt data at rest?", Answer: "Yes, AES-256.", Category: "General"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)

		r := results["row-1"]
		assert.Equal(t, assessment.RiskPass, r.RiskLevel)
		assert.Empty(t, r.ComplianceFlag)
		assert.False(t, r.EvidenceRequired)
		assert.Contains(t, r.Feedback, "Is data encrypted at rest?")
	})

	t.Run("fail answer raises policy mismatch", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "No encryption.", Category: "General"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)

		r := results["row-1"]
		assert.Equal(t, assessment.RiskHigh, r.RiskLevel)
		assert.Equal(t, FlagPolicyMismatch, r.ComplianceFlag)
		assert.True(t, r.EvidenceRequired)
	})

	t.Run("unrelated question is flagged unknown", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "What is the airspeed velocity of an unladen swallow?", Answer: "Very fast.", Category: "General"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)

		r := results["row-1"]
		assert.Equal(t, assessment.RiskMedium, r.RiskLevel)
		assert.Equal(t, FlagUnknownQuestion, r.ComplianceFlag)
		assert.True(t, r.EvidenceRequired)
	})

	t.Run("low-confidence answer defers to manual review", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "Encryption is handled via AES256 algorithms with key rotation.", Category: "General"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)

		r := results["row-1"]
		assert.Equal(t, assessment.RiskMedium, r.RiskLevel)
		assert.Empty(t, r.ComplianceFlag)
		assert.True(t, r.EvidenceRequired)
		assert.Contains(t, r.Feedback, "Manual review required")
	})

	t.Run("missing category defaults to general", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "Yes, we use 3DES encryption."},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)

		// General has no red-flag rules, so 3DES answer is judged against
		// the matched row instead of short-circuiting
		r := results["row-1"]
		assert.NotEqual(t, FlagTechnicalPolicyViolation, r.ComplianceFlag)
	})

	t.Run("one result per row", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "Yes, AES-256."},
			{ID: "row-2", Question: "Is Multi-Factor Authentication (MFA) enforced for all access?", Answer: "Admins only."},
			{ID: "row-3", Question: "Something else entirely unrelated to the list", Answer: "n/a"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		require.Len(t, results, len(rows))
		for _, row := range rows {
			assert.Equal(t, row.ID, results[row.ID].RowID)
		}
	})

	t.Run("deterministic for fixed inputs", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Do you encrypt data at rest?", Answer: "Yes, AES-256."},
			{ID: "row-2", Question: "Is MFA enforced?", Answer: "No MFA.", Category: "Access Control"},
		}
		first, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		second, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestEngineClassifyErrors(t *testing.T) {
	e := NewEngine()

	t.Run("empty master", func(t *testing.T) {
		_, err := e.Classify([]assessment.SubmissionRow{{ID: "row-1"}}, nil)
		assert.ErrorIs(t, err, ErrEmptyStandard)
	})

	t.Run("missing row id", func(t *testing.T) {
		rows := []assessment.SubmissionRow{{Question: "q", Answer: "a"}}
		_, err := e.Classify(rows, testMaster())
		assert.ErrorIs(t, err, ErrMissingRowID)
	})

	t.Run("duplicate row id", func(t *testing.T) {
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "q", Answer: "a"},
			{ID: "row-1", Question: "q2", Answer: "a2"},
		}
		_, err := e.Classify(rows, testMaster())
		assert.ErrorIs(t, err, ErrDuplicateRowID)
		assert.Contains(t, err.Error(), "row-1")
	})

	t.Run("empty rows classify to empty result set", func(t *testing.T) {
		results, err := e.Classify(nil, testMaster())
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestEngineOptions(t *testing.T) {
	t.Run("strict thresholds reject everything", func(t *testing.T) {
		e := NewEngine(WithThresholds(0, 0))
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "Is data encrypted at rest?", Answer: "Yes, AES-256."},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		assert.Equal(t, FlagUnknownQuestion, results["row-1"].ComplianceFlag)
	})

	t.Run("custom metric is used", func(t *testing.T) {
		e := NewEngine(WithMetric(zeroMetric{}))
		rows := []assessment.SubmissionRow{
			{ID: "row-1", Question: "anything", Answer: "anything"},
		}
		results, err := e.Classify(rows, testMaster())
		require.NoError(t, err)
		// zero distance everywhere means the first master row and its pass
		// answer always win
		assert.Equal(t, assessment.RiskPass, results["row-1"].RiskLevel)
	})
}

type zeroMetric struct{}

func (zeroMetric) Score(a, b string) float64 { return 0 }
