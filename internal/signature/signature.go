// Package signature parses the defunc attribute argument into a CallSignature.
//
// The argument has a function-signature shape:
//
//	fn [Name] [<T: bounds, ...>] (name: type, ...) [-> type] [where pred, ...]
//
// Type expressions, generic bounds and where-predicates are opaque token
// sequences. They are echoed into the generated source and compared textually;
// they are never type-checked here, that is the host compiler's job.
package signature

import (
	"strings"
	"unicode"
)

// Param is one named parameter of the shared call interface.
type Param struct {
	Name string
	Type string
}

// GenericParam is one declared type parameter with its opaque bounds.
type GenericParam struct {
	Name   string
	Bounds string
}

// CallSignature is the parsed shared call interface for one group. Immutable
// once parsed; created once per group from the attribute argument.
type CallSignature struct {
	// ExplicitName overrides the union type name derived from the group
	// name. It is used verbatim, never re-cased.
	ExplicitName string
	Generics     []GenericParam
	Params       []Param
	// Result is the opaque result type text, empty when the signature
	// declares no result.
	Result string
	Where  []string
}

// Arity returns the number of shared parameters every candidate must accept
// as its trailing parameter list.
func (s *CallSignature) Arity() int {
	return len(s.Params)
}

// NormalizeType canonicalizes the whitespace of an opaque type expression so
// that textual comparison is insensitive to formatting. A single space is kept
// only between two word tokens ("chan int" stays two words, "map[string] int"
// collapses to "map[string]int").
func NormalizeType(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var last rune
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			if b.Len() > 0 && isWordRune(last) && isWordRune(r) {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
