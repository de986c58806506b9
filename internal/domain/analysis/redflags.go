package analysis

import "strings"

// redFlags maps an answer category to admissions that are disqualifying on
// their own, no matter how the active standard words its reference answers.
// A hit here must never be subject to fuzzy-match uncertainty.
var redFlags = map[string][]string{
	"Encryption":     {"3des", "md5", "sha1", "tls 1.0", "tls 1.1", "wep", "proprietary", "base64", "obfuscation"},
	"Access Control": {"no mfa", "shared accounts", "sms 2fa", "passwords only", "complex passwords", "no multi-factor"},
	"Data Privacy":   {"russia", "china", "undisclosed", "plain text", "unencrypted"},
	"HR Security":    {"no background checks", "self-certified", "trust-based", "no checks"},
	"Vulnerability":  {"internal only", "ad-hoc", "no pentest", "occasionally", "irregular"},
	"Compliance":     {"no certification", "readiness phase", "in progress", "what is", "no report"},
}

// CheckRedFlags returns the first disqualifying term contained in the
// normalized answer for the given category, or "" when none applies.
// Unknown categories carry no rules.
func CheckRedFlags(category, normalizedAnswer string) string {
	for _, flag := range redFlags[category] {
		if strings.Contains(normalizedAnswer, flag) {
			return flag
		}
	}
	return ""
}
