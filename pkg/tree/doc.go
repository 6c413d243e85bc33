// Package tree queries syntax trees whose node kinds are defined by an
// external grammar.
//
// The package never enumerates node types at compile time. A Grammar maps
// kind names to the subtype names each kind may stand in for, and a Query
// answers "is this node a K" by searching that mapping breadth first.
// Nodes expose their children through one of two shapes:
//
//   - Block: a flat ordered content list
//   - Sequence: ordered items where some entries may be nil
//
// Anything else is a leaf.
//
// Usage:
//
//	q := tree.NewQuery(grammar)
//	units, err := q.Path(root, "Module/Module_Subprogram_Part", "Module_Subprogram")
//	uses, err := q.FindAll(root, "Use_Stmt")
//	for n := range uses {
//		line, _ := tree.LineOf(n)
//	}
package tree
