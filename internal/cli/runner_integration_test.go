package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/defunc/internal/generator"
	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/validate"
)

func TestRunner_Run_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "arith_defunc.go")

	r := NewRunner(
		scanner.New(),
		validate.New(),
		generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter()),
	)

	cfg := &Config{
		Group:   "github.com/seitarof/defunc/testdata/arith",
		Out:     out,
		Package: "calc",
	}
	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(b)

	// The group's signature directive carries the explicit name Arithmetic.
	if !strings.Contains(got, "type Arithmetic interface {") {
		t.Fatalf("union type missing: %s", got)
	}
	if !strings.Contains(got, "func CallArithmetic(v Arithmetic, x uint32, y uint32) uint32") {
		t.Fatalf("dispatch missing: %s", got)
	}
	for _, variant := range []string{"Add", "Sub", "Mult"} {
		if !strings.Contains(got, "func ("+variant+") isArithmetic()") {
			t.Fatalf("variant %s missing: %s", variant, got)
		}
	}
	if !strings.Contains(got, "//defunc:derive json") {
		t.Fatalf("forwarded annotation missing: %s", got)
	}
	if !strings.Contains(got, `"github.com/seitarof/defunc/testdata/arith"`) {
		t.Fatalf("group import missing: %s", got)
	}
}

func TestRunner_Run_EndToEnd_SharedParamNamedV(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "partial_defunc.go")

	r := NewRunner(
		scanner.New(),
		validate.New(),
		generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter()),
	)

	cfg := &Config{
		Group:     "github.com/seitarof/defunc/testdata/partial",
		Out:       out,
		Package:   "ops",
		Signature: "fn(v: uint32) -> uint32",
	}
	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(b)

	if strings.Contains(got, "(v Partial, v uint32)") {
		t.Fatalf("dispatch declares the parameter v twice: %s", got)
	}
	if !strings.Contains(got, "func CallPartial(v_ Partial, v uint32) uint32") {
		t.Fatalf("union parameter should be renamed around the shared v: %s", got)
	}
	if !strings.Contains(got, "return partial.Sub(v_.X, v)") {
		t.Fatalf("payload access should follow the renamed parameter: %s", got)
	}
}

func TestRunner_Run_EndToEnd_PayloadGroup(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "partial_defunc.go")

	r := NewRunner(
		scanner.New(),
		validate.New(),
		generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter()),
	)

	cfg := &Config{
		Group:   "github.com/seitarof/defunc/testdata/partial",
		Out:     out,
		Package: "ops",
	}
	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(b)

	if !strings.Contains(got, "type Partial interface {") {
		t.Fatalf("union type missing: %s", got)
	}
	if !strings.Contains(got, "X uint32") {
		t.Fatalf("payload field missing: %s", got)
	}
	if !strings.Contains(got, "return partial.Sub(v.X, rhs)") {
		t.Fatalf("payload delegation missing: %s", got)
	}
	if !strings.Contains(got, "return partial.Identity(rhs)") {
		t.Fatalf("unit delegation missing: %s", got)
	}
}
