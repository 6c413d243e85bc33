package tree

// Node is a syntax tree node.
type Node interface {
	// Kind returns the grammar production name of the node.
	Kind() string
	// Parent returns the enclosing node or nil for the root.
	Parent() Node
}

// Block is a node whose children are a flat ordered list.
type Block interface {
	Node
	Content() []Node
}

// Sequence is a node whose children are ordered items, some of which may be nil.
type Sequence interface {
	Node
	Items() []Node
}

// Positioned is implemented by nodes which know where they start in the source.
// A zero line means the position is unknown.
type Positioned interface {
	Node
	Line() int
}

// Children returns the children of a node according to its shape.
// Nil sequence items are dropped. Leaves have no children.
func Children(n Node) []Node {
	switch v := n.(type) {
	case nil:
		return nil
	case Block:
		return compact(v.Content())
	case Sequence:
		return compact(v.Items())
	default:
		return nil
	}
}

func compact(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// LineOf returns the starting line of a node, walking up to the nearest
// ancestor carrying a position when the node itself has none.
func LineOf(n Node) (int, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if p, ok := cur.(Positioned); ok && p.Line() > 0 {
			return p.Line(), true
		}
	}
	return 0, false
}

// IsAncestor reports whether anc is a strict ancestor of n.
func IsAncestor(anc, n Node) bool {
	if anc == nil || n == nil {
		return false
	}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur == anc {
			return true
		}
	}
	return false
}
