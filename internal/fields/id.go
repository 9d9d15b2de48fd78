package fields

import (
	"fmt"
	"strings"
	"unicode"
)

// GenerateFieldID returns the first id of the form "field_<N>" (N starting
// at 1) not present in existing. The caller must pass the union of ids
// across every page of the store, since ids are unique template-wide.
func GenerateFieldID(existing map[string]struct{}) string {
	for n := 1; ; n++ {
		id := fmt.Sprintf("field_%d", n)
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}

// Slugify normalizes s into an identifier-safe token: lower-cased,
// whitespace runs replaced by a single underscore, everything outside
// [a-z0-9_] stripped, underscore runs collapsed, leading and trailing
// underscores trimmed.
func Slugify(s string) string {
	var b strings.Builder
	prevUnderscore := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r) || r == '_':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}
