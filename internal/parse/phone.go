package parse

import (
	"strings"
	"unicode"
)

// NormalizePhone strips hyphens and whitespace from a phone number so
// "010-1234-5678" and "01012345678" compare equal. Other characters are
// left untouched; lookup queries match both the raw and normalized form.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsPlausiblePhone reports whether the normalized value looks like a
// dialable number: optional leading +, then digits only, at least 7.
func IsPlausiblePhone(normalized string) bool {
	s := normalized
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if len(s) < 7 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
