package program

import (
	"iter"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/tree"
)

// findAll collects every node of kind in the program, in breadth first
// order.
func findAll(src *source.FortranSource, kind string) ([]tree.Node, error) {
	seq, err := src.FindAll(nil, kind)
	if err != nil {
		return nil, err
	}
	return tree.Collect(seq), nil
}

// statements yields the nodes of kind found anywhere in the program which
// are of the statement type S.
func statements[S fortran.Statement](src *source.FortranSource, kind string) (iter.Seq[S], error) {
	nodes, err := findAll(src, kind)
	if err != nil {
		return nil, err
	}
	return func(yield func(S) bool) {
		for _, n := range nodes {
			if s, ok := n.(S); ok && !yield(s) {
				return
			}
		}
	}, nil
}

// subprograms returns the subprograms contained by scope, following
// internal and module subprogram parts down to any depth. Interface bodies
// are not subprograms and are never returned.
func subprograms(src *source.FortranSource, scope tree.Node) ([]tree.Node, error) {
	var out []tree.Node
	paths := [][]string{
		{fortran.KindInternalSubprogramPart, fortran.KindInternalSubprogram},
		{fortran.KindModuleSubprogramPart, fortran.KindModuleSubprogram},
	}
	for _, path := range paths {
		found, err := src.Path(scope, path...)
		if err != nil {
			return nil, err
		}
		for _, sub := range found {
			out = append(out, sub)
			nested, err := subprograms(src, sub)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

// unitStatement returns the opening statement of a program unit or
// subprogram, if it has one. A main program may omit its PROGRAM statement.
func unitStatement(src *source.FortranSource, scope tree.Node) (*fortran.UnitStmt, bool) {
	first, err := src.FirstStatement(scope)
	if err != nil {
		return nil, false
	}
	unit, ok := first.(*fortran.UnitStmt)
	return unit, ok
}
