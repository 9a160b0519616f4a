package diag

import (
	"go/token"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSignatureSyntax, "SignatureSyntaxError"},
		{KindMissingParameterName, "MissingParameterName"},
		{KindArityTooSmall, "ArityTooSmall"},
		{KindTypeMismatch, "TypeMismatch"},
		{KindReturnTypeMismatch, "ReturnTypeMismatch"},
		{KindCandidateGenerics, "CandidateGenericsUnsupported"},
		{KindDuplicateVariant, "DuplicateVariantName"},
		{KindDuplicateFieldName, "DuplicateFieldName"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("Kind.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDiagnostic_ErrorIncludesLocation(t *testing.T) {
	pos := token.Position{Filename: "group.go", Line: 12, Column: 1}
	d := New(KindArityTooSmall, pos, "function %q has %d parameters", "Neg", 1)

	msg := d.Error()
	if !strings.Contains(msg, "group.go:12:1") {
		t.Fatalf("missing location in %q", msg)
	}
	if !strings.Contains(msg, "ArityTooSmall") {
		t.Fatalf("missing kind in %q", msg)
	}
	if !strings.Contains(msg, `function "Neg" has 1 parameters`) {
		t.Fatalf("missing message in %q", msg)
	}
}

func TestDiagnostic_ErrorWithoutLocation(t *testing.T) {
	d := New(KindSignatureSyntax, token.Position{}, "bad shape")
	if got, want := d.Error(), "SignatureSyntaxError: bad shape"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
