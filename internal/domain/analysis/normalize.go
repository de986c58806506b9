package analysis

import "strings"

// leadingFiller are conversational prefixes that carry no risk signal.
// Ordered longest-first so the single-pass strip removes the most specific
// token ("yes," before "yes").
var leadingFiller = []string{
	"currently",
	"we have",
	"we use",
	"yes,",
	"yes",
	"our",
	"the",
	"no",
}

// Normalize lower-cases text and strips at most one leading filler token,
// then trims whitespace. Pure and total: empty in, empty out.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, p := range leadingFiller {
		if !strings.HasPrefix(s, p) {
			continue
		}
		rest := s[len(p):]
		// the token must be followed by whitespace, otherwise "nothing"
		// would lose its "no"
		if trimmed := strings.TrimLeft(rest, " \t"); trimmed != rest {
			return strings.TrimSpace(trimmed)
		}
	}
	return s
}
