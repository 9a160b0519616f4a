// Package synth builds the tagged-union model and its dispatch operation from
// the validated candidates of one group.
package synth

import (
	"github.com/seitarof/defunc/internal/ident"
	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/signature"
	"github.com/seitarof/defunc/internal/validate"
)

// Field is one payload field of a variant. GoName is the exported struct
// field name derived from the original parameter name.
type Field struct {
	Name   string
	GoName string
	Type   string
}

// Variant is one case of the union, corresponding to exactly one candidate.
type Variant struct {
	Name     string
	FuncName string
	Fields   []Field
}

// UnionType is the synthesized tagged union for one group.
type UnionType struct {
	Name string
	// Generics are the shared signature's type parameters, echoed onto the
	// union, every variant and the dispatch operation.
	Generics []signature.GenericParam
	// Annotations are forwarded directive lines, copied verbatim and never
	// interpreted.
	Annotations []string
	Variants    []Variant
}

// BuildUnion assembles the union model. The union name is, in order of
// precedence: the explicit override, the signature's declared name, or the
// group name run through the Pascal transform. Explicit names are used
// verbatim. Variant order is candidate declaration order; field order is the
// candidate's original parameter order. A variant without extra fields has an
// empty struct payload.
func BuildUnion(
	g *scanner.Group,
	sig *signature.CallSignature,
	cands []validate.Candidate,
	nameOverride string,
) *UnionType {
	name := nameOverride
	if name == "" {
		name = sig.ExplicitName
	}
	if name == "" {
		name = ident.Pascal(g.Name)
	}

	u := &UnionType{
		Name:        name,
		Generics:    sig.Generics,
		Annotations: g.Annotations(),
		Variants:    make([]Variant, 0, len(cands)),
	}
	for _, c := range cands {
		v := Variant{
			Name:     c.VariantName,
			FuncName: c.Name,
			Fields:   make([]Field, 0, len(c.Extras)),
		}
		for _, e := range c.Extras {
			v.Fields = append(v.Fields, Field{
				Name:   e.Name,
				GoName: ident.Pascal(e.Name),
				Type:   e.Type,
			})
		}
		u.Variants = append(u.Variants, v)
	}
	return u
}
