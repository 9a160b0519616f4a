package ident

import (
	"strings"
	"unicode"
)

// Pascal converts a snake_case, kebab-case or lowerCamel identifier into
// PascalCase: the identifier is split on separator characters, the first rune
// of every segment is upper-cased and the segments are concatenated. Interior
// capitals are preserved, so "addPlusN" and "add_plus_n" both map to
// "AddPlusN". The function is pure and deterministic.
func Pascal(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	upper := true
	for _, r := range name {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
