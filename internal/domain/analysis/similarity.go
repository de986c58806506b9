package analysis

import (
	"math"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// Metric scores the dissimilarity of two strings in [0,1]; 0 means identical,
// lower is always the better match. The engine depends only on this
// interface, so the scoring algorithm is swappable without touching
// classification logic.
type Metric interface {
	Score(a, b string) float64
}

var levParams = levenshtein.NewParams()

// TokenSetMetric is the default metric: the better of whole-string edit
// similarity and a soft token-set overlap where near-equal tokens
// ("encrypt" vs "encrypted") still count. Free-text answers reorder and
// inflect words; plain edit distance alone punishes both too hard.
type TokenSetMetric struct{}

func (TokenSetMetric) Score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 0
	}
	if a == "" || b == "" {
		return 1
	}
	seq := levenshtein.Similarity(a, b, levParams)
	soft := softTokenSimilarity(tokenize(a), tokenize(b))
	return 1 - math.Max(seq, soft)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// softTokenSimilarity averages each token's best counterpart similarity over
// both directions, so extra filler words dilute the score symmetrically.
func softTokenSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return (bestMatchSum(a, b) + bestMatchSum(b, a)) / float64(len(a)+len(b))
}

func bestMatchSum(from, to []string) float64 {
	var sum float64
	for _, t := range from {
		best := 0.0
		for _, u := range to {
			if sim := levenshtein.Similarity(t, u, levParams); sim > best {
				best = sim
			}
		}
		sum += best
	}
	return sum
}
