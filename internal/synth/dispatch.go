package synth

import (
	"go/ast"

	"github.com/seitarof/defunc/internal/scanner"
	"github.com/seitarof/defunc/internal/signature"
	"github.com/seitarof/defunc/internal/validate"
)

// Dispatch is the single generated operation for one union. Per variant it
// invokes the original candidate with the variant's extra-field values, in
// declared order, followed by the shared arguments.
type Dispatch struct {
	Name   string
	Params []signature.Param
	Result string
	Where  []string
}

// BuildDispatch derives the dispatch operation from the union and the shared
// signature. The mapping is total: one branch per variant, no fallback.
func BuildDispatch(u *UnionType, sig *signature.CallSignature) *Dispatch {
	params := make([]signature.Param, 0, len(sig.Params))
	for _, p := range sig.Params {
		params = append(params, signature.Param{
			Name: p.Name,
			Type: signature.NormalizeType(p.Type),
		})
	}
	return &Dispatch{
		Name:   "Call" + u.Name,
		Params: params,
		Result: signature.NormalizeType(sig.Result),
		Where:  sig.Where,
	}
}

// Result is the ordered replacement produced for one group: the passthrough
// members unchanged, then the union type, then the dispatch operation. The
// passthrough members live on in the group package itself; the generator only
// materializes the synthesized declarations.
type Result struct {
	GroupName   string
	GroupPath   string
	Passthrough []ast.Decl
	Union       *UnionType
	Dispatch    *Dispatch
}

// Build runs union and dispatch synthesis for one group. It cannot fail: all
// validation already happened upstream.
func Build(
	g *scanner.Group,
	sig *signature.CallSignature,
	cands []validate.Candidate,
	part scanner.Partition,
	nameOverride string,
) *Result {
	u := BuildUnion(g, sig, cands, nameOverride)
	return &Result{
		GroupName:   g.Name,
		GroupPath:   g.PkgPath,
		Passthrough: part.Passthrough,
		Union:       u,
		Dispatch:    BuildDispatch(u, sig),
	}
}
