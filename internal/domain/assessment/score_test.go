package assessment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func results(levels ...RiskLevel) map[string]AnalysisResult {
	out := make(map[string]AnalysisResult, len(levels))
	for i, l := range levels {
		id := fmt.Sprintf("row-%d", i+1)
		out[id] = AnalysisResult{RowID: id, RiskLevel: l}
	}
	return out
}

func TestSummarize(t *testing.T) {
	w := DefaultScoreWeights()

	t.Run("empty result set is a perfect score", func(t *testing.T) {
		s := Summarize(nil, w)
		assert.Equal(t, SubmissionSummary{Score: 100}, s)
	})

	t.Run("counts and weighted deductions", func(t *testing.T) {
		s := Summarize(results(RiskHigh, RiskHigh, RiskMedium, RiskLow, RiskPass), w)
		assert.Equal(t, 5, s.Total)
		assert.Equal(t, 2, s.HighCount)
		assert.Equal(t, 1, s.MediumCount)
		assert.Equal(t, 1, s.LowCount)
		assert.Equal(t, 1, s.PassCount)
		assert.Equal(t, 100-2*15-5-1, s.Score)
	})

	t.Run("all pass keeps the baseline", func(t *testing.T) {
		s := Summarize(results(RiskPass, RiskPass, RiskPass), w)
		assert.Equal(t, 100, s.Score)
	})

	t.Run("score clamps at zero", func(t *testing.T) {
		levels := make([]RiskLevel, 10)
		for i := range levels {
			levels[i] = RiskHigh
		}
		s := Summarize(results(levels...), w)
		assert.Equal(t, 0, s.Score)
	})

	t.Run("custom weights", func(t *testing.T) {
		s := Summarize(results(RiskHigh, RiskMedium), ScoreWeights{High: 50, Medium: 10, Low: 2})
		assert.Equal(t, 40, s.Score)
	})

	t.Run("each extra high finding costs its full weight until the floor", func(t *testing.T) {
		prev := Summarize(nil, w).Score
		var levels []RiskLevel
		for i := 0; i < 8; i++ {
			levels = append(levels, RiskHigh)
			cur := Summarize(results(levels...), w).Score
			if prev >= w.High {
				assert.Equal(t, prev-w.High, cur, "after %d high findings", i+1)
			} else {
				assert.Equal(t, 0, cur)
			}
			prev = cur
		}
	})
}

func TestRiskLevelRank(t *testing.T) {
	assert.Equal(t, 3, RiskHigh.Rank())
	assert.Equal(t, 2, RiskMedium.Rank())
	assert.Equal(t, 1, RiskLow.Rank())
	assert.Equal(t, 0, RiskPass.Rank())
	assert.Equal(t, -1, RiskLevel("Bogus").Rank())

	assert.True(t, RiskHigh.Valid())
	assert.False(t, RiskLevel("").Valid())
}

func TestRiskLevelDecision(t *testing.T) {
	assert.Equal(t, DecisionUnacceptable, RiskHigh.Decision())
	assert.Equal(t, DecisionConsider, RiskMedium.Decision())
	assert.Equal(t, DecisionConsider, RiskLow.Decision())
	assert.Equal(t, DecisionAccepted, RiskPass.Decision())
}
