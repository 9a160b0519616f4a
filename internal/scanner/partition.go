package scanner

import "go/ast"

// Partition is the order-preserving split of a group's declarations.
// Candidates are the exported top-level functions without receivers;
// everything else passes through unchanged.
type Partition struct {
	Candidates  []*ast.FuncDecl
	Passthrough []ast.Decl
}

// Split partitions the group's declarations. It is pure: no declaration is
// modified, dropped or reordered within its side of the split. Methods,
// unexported functions, types, constants and variables are never candidates.
func Split(g *Group) Partition {
	var part Partition
	for _, f := range g.Files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || !fn.Name.IsExported() {
				part.Passthrough = append(part.Passthrough, decl)
				continue
			}
			part.Candidates = append(part.Candidates, fn)
		}
	}
	return part
}
