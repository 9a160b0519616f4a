package scanner

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan_GroupPackage(t *testing.T) {
	s := New()

	g, err := s.Scan("github.com/seitarof/defunc/testdata/arith")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if g.Name != "arith" {
		t.Fatalf("group name = %q, want arith", g.Name)
	}
	if g.PkgPath != "github.com/seitarof/defunc/testdata/arith" {
		t.Fatalf("unexpected package path %q", g.PkgPath)
	}
	if g.Dir == "" {
		t.Fatal("group directory should be resolved")
	}

	if got, want := g.Signature(), "fn Arithmetic(x: uint32, y: uint32) -> uint32"; got != want {
		t.Fatalf("Signature() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"//defunc:derive json"}, g.Annotations()); diff != "" {
		t.Fatalf("annotations mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_NotFound(t *testing.T) {
	s := New()

	if _, err := s.Scan("github.com/seitarof/defunc/testdata/doesnotexist"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSplit_PartitionsDeclarations(t *testing.T) {
	g := parseGroup(t, `
//defunc:signature fn(x: int) -> int
package sample

import "strings"

type helper struct{}

const scale = 10

func Visible(x int) int { return x }

func hidden(x int) int { return x }

func (h helper) Method(x int) int { return x }

func AlsoVisible(x int) int { return strings.Count("x", "x") * x }
`)

	part := Split(g)

	var names []string
	for _, fn := range part.Candidates {
		names = append(names, fn.Name.Name)
	}
	if diff := cmp.Diff([]string{"Visible", "AlsoVisible"}, names); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	// import, type, const, unexported func, method
	if len(part.Passthrough) != 5 {
		t.Fatalf("passthrough count = %d, want 5", len(part.Passthrough))
	}
}

func TestDirectives_NameAndArgSplit(t *testing.T) {
	g := parseGroup(t, `
//defunc:signature fn(x: int) -> int
//defunc:derive json
//defunc:note spaced  argument
package sample

func Visible(x int) int { return x }
`)

	if len(g.Directives) != 3 {
		t.Fatalf("directive count = %d, want 3", len(g.Directives))
	}
	note := g.Directives[2]
	if note.Name != "note" {
		t.Fatalf("directive name = %q, want note", note.Name)
	}
	if note.Arg != "spaced  argument" {
		t.Fatalf("directive arg = %q", note.Arg)
	}
	if note.Raw != "//defunc:note spaced  argument" {
		t.Fatalf("directive raw = %q", note.Raw)
	}
	if !note.Pos.IsValid() {
		t.Fatal("directive position should be valid")
	}
}

// parseGroup builds a Group from inline source, bypassing the package loader.
func parseGroup(t *testing.T, src string) *Group {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "sample.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	g := &Group{
		Name:    f.Name.Name,
		PkgPath: "example.com/" + f.Name.Name,
		Fset:    fset,
		Files:   []*ast.File{f},
	}
	g.Directives = CollectDirectives(fset, g.Files)
	return g
}
