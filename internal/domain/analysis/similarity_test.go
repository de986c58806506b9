package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetMetricScore(t *testing.T) {
	m := TokenSetMetric{}

	t.Run("identical strings score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, m.Score("aes-256 at rest", "aes-256 at rest"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, 0.0, m.Score("AES-256", "aes-256"))
	})

	t.Run("empty vs non-empty scores one", func(t *testing.T) {
		assert.Equal(t, 1.0, m.Score("", "aes-256"))
		assert.Equal(t, 1.0, m.Score("aes-256", ""))
	})

	t.Run("bounded and symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"is data encrypted at rest?", "do you encrypt data at rest?"},
			{"no encryption", "yes, aes-256"},
			{"tls 1.2", "completely unrelated text"},
		}
		for _, p := range pairs {
			ab := m.Score(p[0], p[1])
			ba := m.Score(p[1], p[0])
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
			assert.InDelta(t, ab, ba, 1e-9, "pair %v", p)
		}
	})

	t.Run("paraphrased question stays under routing threshold", func(t *testing.T) {
		score := m.Score("Do you encrypt data at rest?", "Is data encrypted at rest?")
		assert.Less(t, score, 0.4)
	})

	t.Run("free-form answer stays above acceptance threshold", func(t *testing.T) {
		score := m.Score("encryption is handled via aes256 algorithms with key rotation", "aes-256.")
		assert.GreaterOrEqual(t, score, 0.3)
	})

	t.Run("closer text scores lower", func(t *testing.T) {
		near := m.Score("yes, enforced for all users", "enforced for all users")
		far := m.Score("yes, enforced for all users", "no background checks")
		assert.Less(t, near, far)
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"aes", "256", "at", "rest"}, tokenize("aes-256, at rest!"))
	assert.Empty(t, tokenize("?!--"))
}
