package analysis

import (
	"fmt"
	"math"

	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

type candidate struct {
	level assessment.RiskLevel
	text  string
}

// classifyAnswer scores the normalized answer against the matched row's three
// canonical answers. The best candidate is accepted only below the answer
// threshold; anything weaker defers to manual review instead of guessing.
func (e *Engine) classifyAnswer(row assessment.SubmissionRow, normalizedAnswer string, master standard.MasterRow) assessment.AnalysisResult {
	candidates := [3]candidate{
		{level: assessment.RiskPass, text: master.PassAnswer},
		{level: assessment.RiskMedium, text: master.ConsiderAnswer},
		{level: assessment.RiskHigh, text: master.FailAnswer},
	}

	bestIdx := 0
	bestScore := math.Inf(1)
	for i, c := range candidates {
		if score := e.metric.Score(normalizedAnswer, Normalize(c.text)); score < bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	if bestScore < e.answerThreshold {
		best := candidates[bestIdx]
		flag := ""
		if best.level == assessment.RiskHigh {
			flag = FlagPolicyMismatch
		}
		return assessment.AnalysisResult{
			RowID:            row.ID,
			RiskLevel:        best.level,
			Feedback:         fmt.Sprintf("Matched with master question: %q. Answer aligns with standard: %q.", master.Question, best.text),
			EvidenceRequired: best.level != assessment.RiskPass,
			ComplianceFlag:   flag,
		}
	}

	// low confidence: the question matched but the answer's technical content
	// is unique, so report Medium rather than guess a verdict
	return assessment.AnalysisResult{
		RowID:            row.ID,
		RiskLevel:        assessment.RiskMedium,
		Feedback:         fmt.Sprintf("Matched question: %q, but the answer contains unique technical details or low-confidence alignment. Manual review required.", master.Question),
		EvidenceRequired: true,
	}
}
