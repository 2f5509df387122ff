package match

import (
	"strings"
	"unicode"
)

// Fold returns the comparison form of a markup name: lower case, without
// '-', '_', '.' and whitespace. The ':' of a prefixed tag is kept.
func Fold(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}
