package analysis

import (
	"math"

	"github.com/vendorvet/vendorvet/internal/domain/standard"
)

// matchQuestion routes a submission question to the most similar master row.
// Ties keep the first row in the standard's declared order, so routing is
// stable and deterministic.
func (e *Engine) matchQuestion(question string, master []standard.MasterRow) (int, float64, bool) {
	bestIdx := -1
	bestScore := math.Inf(1)
	for i, m := range master {
		if score := e.metric.Score(question, m.Question); score < bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestScore < e.questionThreshold {
		return bestIdx, bestScore, true
	}
	return -1, bestScore, false
}
