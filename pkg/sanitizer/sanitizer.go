package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses any internal
// whitespace runs into a single space. Applied to free-text fields
// (exception reasons, consultation identifiers) before persistence.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	lastWasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}
	return b.String()
}

// NormalizeReason is TrimAndNormalize under a domain name, so call
// sites read as intent.
func NormalizeReason(reason string) string {
	return TrimAndNormalize(reason)
}
