package diag

import (
	"fmt"
	"go/token"
)

// Kind classifies a generation-time failure.
type Kind int

const (
	KindSignatureSyntax Kind = iota
	KindMissingParameterName
	KindArityTooSmall
	KindTypeMismatch
	KindReturnTypeMismatch
	KindCandidateGenerics
	KindDuplicateVariant
	KindDuplicateFieldName
)

var kindNames = map[Kind]string{
	KindSignatureSyntax:      "SignatureSyntaxError",
	KindMissingParameterName: "MissingParameterName",
	KindArityTooSmall:        "ArityTooSmall",
	KindTypeMismatch:         "TypeMismatch",
	KindReturnTypeMismatch:   "ReturnTypeMismatch",
	KindCandidateGenerics:    "CandidateGenericsUnsupported",
	KindDuplicateVariant:     "DuplicateVariantName",
	KindDuplicateFieldName:   "DuplicateFieldName",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a fatal, group-scoped generation error. The first diagnostic
// aborts the whole pipeline for its group; nothing is emitted for that group.
type Diagnostic struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

// New builds a diagnostic at pos. A zero pos is allowed for errors that have
// no source location, such as a malformed attribute argument given by flag.
func New(kind Kind, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind: kind,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
}
