package assessment

// ScoreWeights are the per-tier deductions applied to the 100-point baseline.
// The shipped defaults are a product policy, not a derived quantity, so they
// are injectable rather than constants.
type ScoreWeights struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// DefaultScoreWeights are the shipped deduction policy.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{High: 15, Medium: 5, Low: 1}
}

// Summarize folds a result set into counts and a single weighted score.
// It recomputes from scratch on every call; a Pass is the zero-penalty
// baseline and contributes nothing to the deduction.
func Summarize(results map[string]AnalysisResult, w ScoreWeights) SubmissionSummary {
	var s SubmissionSummary
	for _, r := range results {
		s.Total++
		switch r.RiskLevel {
		case RiskHigh:
			s.HighCount++
		case RiskMedium:
			s.MediumCount++
		case RiskLow:
			s.LowCount++
		case RiskPass:
			s.PassCount++
		}
	}
	score := 100 - w.High*s.HighCount - w.Medium*s.MediumCount - w.Low*s.LowCount
	if score < 0 {
		score = 0
	}
	s.Score = score
	return s
}
