// Package validate checks each candidate function against the group's shared
// call signature and derives its extra payload fields.
package validate

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"

	"github.com/seitarof/defunc/internal/diag"
	"github.com/seitarof/defunc/internal/ident"
	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/signature"
)

// ExtraField is one leading candidate parameter that is not part of the
// shared call interface. It becomes variant payload, in declaration order.
type ExtraField struct {
	Name string
	Type string
}

// Candidate is one validated exported function of the group.
type Candidate struct {
	Decl        *ast.FuncDecl
	Name        string
	VariantName string
	Extras      []ExtraField
}

// Validator validates candidates against a CallSignature.
type Validator interface {
	Validate(g *scanner.Group, funcs []*ast.FuncDecl, sig *signature.CallSignature) ([]Candidate, error)
}

type validatorImpl struct{}

// New returns the default validator.
func New() Validator {
	return &validatorImpl{}
}

// Validate checks every candidate in declaration order and stops at the first
// failure; a single diagnostic aborts the whole group.
func (v *validatorImpl) Validate(
	g *scanner.Group,
	funcs []*ast.FuncDecl,
	sig *signature.CallSignature,
) ([]Candidate, error) {
	cands := make([]Candidate, 0, len(funcs))
	byVariant := map[string]string{}

	for _, fn := range funcs {
		cand, err := validateOne(g.Fset, fn, sig)
		if err != nil {
			return nil, err
		}

		if prev, ok := byVariant[cand.VariantName]; ok {
			return nil, diag.New(diag.KindDuplicateVariant, g.Fset.Position(fn.Pos()),
				"functions %q and %q both map to variant %q", prev, cand.Name, cand.VariantName)
		}
		byVariant[cand.VariantName] = cand.Name
		cands = append(cands, cand)
	}
	return cands, nil
}

func validateOne(fset *token.FileSet, fn *ast.FuncDecl, sig *signature.CallSignature) (Candidate, error) {
	pos := fset.Position(fn.Pos())

	if err := checkGenerics(fset, fn, sig); err != nil {
		return Candidate{}, err
	}

	params, err := flattenParams(fset, fn)
	if err != nil {
		return Candidate{}, err
	}

	n := sig.Arity()
	if len(params) < n {
		return Candidate{}, diag.New(diag.KindArityTooSmall, pos,
			"function %q has %d parameters, the shared signature requires at least %d",
			fn.Name.Name, len(params), n)
	}

	prefix := params[:len(params)-n]
	suffix := params[len(params)-n:]
	for i, p := range suffix {
		want := signature.NormalizeType(sig.Params[i].Type)
		if p.Type != want {
			return Candidate{}, diag.New(diag.KindTypeMismatch, pos,
				"function %q: shared parameter %d has type %s, the signature declares %s",
				fn.Name.Name, i+1, p.Type, want)
		}
	}

	if err := checkResult(fset, fn, sig); err != nil {
		return Candidate{}, err
	}

	extras := make([]ExtraField, 0, len(prefix))
	byField := map[string]string{}
	for _, p := range prefix {
		goName := ident.Pascal(p.Name)
		if prev, ok := byField[goName]; ok {
			return Candidate{}, diag.New(diag.KindDuplicateFieldName, pos,
				"parameters %q and %q of function %q both map to payload field %q",
				prev, p.Name, fn.Name.Name, goName)
		}
		byField[goName] = p.Name
		extras = append(extras, ExtraField{Name: p.Name, Type: p.Type})
	}

	return Candidate{
		Decl:        fn,
		Name:        fn.Name.Name,
		VariantName: ident.Pascal(fn.Name.Name),
		Extras:      extras,
	}, nil
}

// checkGenerics enforces the type-parameter policy: a candidate declares
// either no type parameters at all, or exactly the shared signature's, name
// for name and bound for bound. Anything else introduces candidate-level
// generics, which are unsupported.
func checkGenerics(fset *token.FileSet, fn *ast.FuncDecl, sig *signature.CallSignature) error {
	tp := fn.Type.TypeParams
	if tp == nil {
		return nil
	}
	pos := fset.Position(fn.Pos())

	var declared []signature.GenericParam
	for _, field := range tp.List {
		bounds := typeText(fset, field.Type)
		for _, name := range field.Names {
			declared = append(declared, signature.GenericParam{Name: name.Name, Bounds: bounds})
		}
	}

	if len(declared) != len(sig.Generics) {
		return diag.New(diag.KindCandidateGenerics, pos,
			"function %q declares %d type parameters, the shared signature declares %d",
			fn.Name.Name, len(declared), len(sig.Generics))
	}
	for i, d := range declared {
		want := sig.Generics[i]
		wantBounds := signature.NormalizeType(want.Bounds)
		if wantBounds == "" {
			wantBounds = "any"
		}
		if d.Name != want.Name || d.Bounds != wantBounds {
			return diag.New(diag.KindCandidateGenerics, pos,
				"function %q: type parameter %d is %s %s, the shared signature declares %s %s",
				fn.Name.Name, i+1, d.Name, d.Bounds, want.Name, wantBounds)
		}
	}
	return nil
}

func checkResult(fset *token.FileSet, fn *ast.FuncDecl, sig *signature.CallSignature) error {
	pos := fset.Position(fn.Pos())
	results := fn.Type.Results

	if sig.Result == "" {
		if results != nil && len(results.List) > 0 {
			return diag.New(diag.KindReturnTypeMismatch, pos,
				"function %q returns a value, the shared signature declares none", fn.Name.Name)
		}
		return nil
	}

	if results == nil || len(results.List) == 0 {
		return diag.New(diag.KindReturnTypeMismatch, pos,
			"function %q returns nothing, the shared signature declares %s",
			fn.Name.Name, signature.NormalizeType(sig.Result))
	}
	if len(results.List) > 1 || len(results.List[0].Names) > 0 {
		return diag.New(diag.KindReturnTypeMismatch, pos,
			"function %q must have a single unnamed result", fn.Name.Name)
	}

	got := typeText(fset, results.List[0].Type)
	want := signature.NormalizeType(sig.Result)
	if got != want {
		return diag.New(diag.KindReturnTypeMismatch, pos,
			"function %q returns %s, the shared signature declares %s", fn.Name.Name, got, want)
	}
	return nil
}

type flatParam struct {
	Name string
	Type string
}

// flattenParams expands grouped parameters ("x, y uint32") into one entry per
// name. Every parameter must be named so that extra fields keep their names.
func flattenParams(fset *token.FileSet, fn *ast.FuncDecl) ([]flatParam, error) {
	var out []flatParam
	for _, field := range fn.Type.Params.List {
		typ := typeText(fset, field.Type)
		if len(field.Names) == 0 {
			return nil, diag.New(diag.KindMissingParameterName, fset.Position(field.Pos()),
				"parameters of function %q must be named", fn.Name.Name)
		}
		for _, name := range field.Names {
			out = append(out, flatParam{Name: name.Name, Type: typ})
		}
	}
	return out, nil
}

// typeText renders a type expression as canonical opaque text for structural
// comparison and re-emission.
func typeText(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}
	return signature.NormalizeType(buf.String())
}
