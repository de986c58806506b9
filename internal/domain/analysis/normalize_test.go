package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "AES-256 Encryption", "aes-256 encryption"},
		{"trims whitespace", "  yes  ", "yes"},
		{"strips yes comma", "Yes, we use AES-256.", "we use aes-256."},
		{"strips bare yes", "Yes we do", "we do"},
		{"strips we use", "We use TLS 1.2", "tls 1.2"},
		{"strips we have", "We have a policy", "a policy"},
		{"strips currently", "Currently in progress", "in progress"},
		{"strips our", "Our team reviews access", "team reviews access"},
		{"strips the", "The data is tokenized", "data is tokenized"},
		{"strips no", "No encryption", "encryption"},
		{"strips at most one prefix", "Yes, we use MFA", "we use mfa"},
		{"prefix must be its own token", "nothing to report", "nothing to report"},
		{"yeswithoutspace untouched", "yesterday", "yesterday"},
		{"empty in empty out", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeStable(t *testing.T) {
	// outputs with no remaining filler prefix survive a second pass
	inputs := []string{
		"AES-256 at rest",
		"plain text storage",
		"in progress",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
