// Package scanner loads a group package and splits its declarations into
// defunctionalization candidates and passthrough members.
package scanner

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

// directivePrefix marks group-level directive comments, e.g.
// "//defunc:signature fn(x: uint32, y: uint32) -> uint32".
const directivePrefix = "//defunc:"

// Directive is one //defunc: comment line found in the group's files.
type Directive struct {
	Name string
	Arg  string
	Raw  string
	Pos  token.Position
}

// Group is one loaded group package. Its files are the member declarations of
// the annotated group; the package on disk is never modified.
type Group struct {
	Name       string
	PkgPath    string
	Dir        string
	Fset       *token.FileSet
	Files      []*ast.File
	Directives []Directive
}

// Signature returns the attribute argument of the group's signature
// directive, or "" when the group declares none.
func (g *Group) Signature() string {
	for _, d := range g.Directives {
		if d.Name == "signature" {
			return d.Arg
		}
	}
	return ""
}

// Annotations returns the raw directive lines other than the signature, in
// source order. They are forwarded verbatim onto the synthesized type.
func (g *Group) Annotations() []string {
	var out []string
	for _, d := range g.Directives {
		if d.Name == "signature" {
			continue
		}
		out = append(out, d.Raw)
	}
	return out
}

// Scanner loads group packages.
type Scanner interface {
	Scan(pattern string) (*Group, error)
}

type scannerImpl struct{}

// New returns the default package-based scanner.
func New() Scanner {
	return &scannerImpl{}
}

func (s *scannerImpl) Scan(pattern string) (*Group, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedModule,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "load group package %q", pattern)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.Errorf("group package %q has errors", pattern)
	}
	if len(pkgs) != 1 {
		return nil, errors.Errorf("pattern %q matched %d packages, want exactly 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Syntax) == 0 {
		return nil, errors.Errorf("group package %q has no Go files", pattern)
	}

	g := &Group{
		Name:    pkg.Name,
		PkgPath: pkg.PkgPath,
		Fset:    pkg.Fset,
		Files:   pkg.Syntax,
	}
	if len(pkg.GoFiles) > 0 {
		g.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	g.Directives = CollectDirectives(pkg.Fset, pkg.Syntax)
	return g, nil
}

// CollectDirectives gathers every //defunc: line in the given files, in file
// then position order. All directives are group-level.
func CollectDirectives(fset *token.FileSet, files []*ast.File) []Directive {
	var out []Directive
	for _, f := range files {
		for _, cg := range f.Comments {
			for _, c := range cg.List {
				if !strings.HasPrefix(c.Text, directivePrefix) {
					continue
				}
				rest := strings.TrimPrefix(c.Text, directivePrefix)
				name, arg, _ := strings.Cut(rest, " ")
				out = append(out, Directive{
					Name: name,
					Arg:  strings.TrimSpace(arg),
					Raw:  c.Text,
					Pos:  fset.Position(c.Pos()),
				})
			}
		}
	}
	return out
}
