package tree

import (
	"fmt"
	"iter"
	"strings"
	"sync"
)

// Query evaluates kind matches, paths and searches against one grammar.
// A Query is safe for concurrent use.
type Query struct {
	grammar Grammar

	mu       sync.RWMutex
	closures map[string]map[string]struct{}
}

// NewQuery creates a query bound to a grammar.
func NewQuery(g Grammar) *Query {
	return &Query{
		grammar:  g,
		closures: make(map[string]map[string]struct{}),
	}
}

// Grammar returns the grammar the query resolves kinds against.
func (q *Query) Grammar() Grammar {
	return q.grammar
}

// Matches reports whether node is of kind, directly or through the
// transitive subtype lists of kind. Comment nodes only match when the
// comment kind itself is sought.
func (q *Query) Matches(node Node, kind string) (bool, error) {
	closure, err := q.closure(kind)
	if err != nil {
		return false, err
	}
	if node == nil {
		return false, nil
	}
	_, ok := closure[node.Kind()]
	return ok, nil
}

// closure returns every kind name reachable from kind through subtype lists.
func (q *Query) closure(kind string) (map[string]struct{}, error) {
	q.mu.RLock()
	c, ok := q.closures[kind]
	q.mu.RUnlock()
	if ok {
		return c, nil
	}

	if _, ok := q.grammar.Lookup(kind); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	comment := q.grammar.CommentKind()
	visited := map[string]struct{}{kind: {}}
	worklist := []string{kind}
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		k, ok := q.grammar.Lookup(current)
		if !ok {
			// A name without a descriptor can still be matched but has no subtypes.
			continue
		}
		for _, sub := range k.Subtypes {
			if sub == comment && kind != comment {
				continue
			}
			if _, seen := visited[sub]; seen {
				continue
			}
			visited[sub] = struct{}{}
			worklist = append(worklist, sub)
		}
	}

	q.mu.Lock()
	q.closures[kind] = visited
	q.mu.Unlock()
	return visited, nil
}

// splitPath flattens path elements, splitting any that contain '/'.
func splitPath(path []string) []string {
	var out []string
	for _, p := range path {
		for _, part := range strings.Split(p, "/") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Path returns the nodes reached by stepping from the children of root
// through each kind in turn. Elements may be '/' joined. A nil root or an
// empty path yields no nodes.
func (q *Query) Path(root Node, path ...string) ([]Node, error) {
	if root == nil {
		return q.PathFrom(nil, path...)
	}
	return q.PathFrom(Children(root), path...)
}

// PathFrom is Path with an explicit starting frontier.
func (q *Query) PathFrom(frontier []Node, path ...string) ([]Node, error) {
	steps := splitPath(path)
	closures := make([]map[string]struct{}, len(steps))
	for i, step := range steps {
		c, err := q.closure(step)
		if err != nil {
			return nil, err
		}
		closures[i] = c
	}

	var found []Node
	candidates := compact(frontier)
	for i, c := range closures {
		if len(candidates) == 0 {
			return nil, nil
		}
		last := i == len(closures)-1
		var next []Node
		for _, cand := range candidates {
			if _, ok := c[cand.Kind()]; !ok {
				continue
			}
			if last {
				found = append(found, cand)
			} else {
				next = append(next, Children(cand)...)
			}
		}
		candidates = next
	}
	return found, nil
}

// FindAll yields every node of kind at or below root, breadth first.
// Descent stops at a match so no yielded node is a descendant of another.
// The kind is validated before the sequence is returned.
func (q *Query) FindAll(root Node, kind string) (iter.Seq[Node], error) {
	if root == nil {
		return q.FindAllIn(nil, kind)
	}
	return q.FindAllIn([]Node{root}, kind)
}

// FindAllIn is FindAll starting from several candidate roots.
func (q *Query) FindAllIn(roots []Node, kind string) (iter.Seq[Node], error) {
	c, err := q.closure(kind)
	if err != nil {
		return nil, err
	}
	start := compact(roots)
	return func(yield func(Node) bool) {
		candidates := append([]Node(nil), start...)
		for len(candidates) > 0 {
			cand := candidates[0]
			candidates = candidates[1:]
			if _, ok := c[cand.Kind()]; ok {
				if !yield(cand) {
					return
				}
				continue
			}
			candidates = append(candidates, Children(cand)...)
		}
	}, nil
}

// Collect drains a FindAll sequence into a slice.
func Collect(seq iter.Seq[Node]) []Node {
	var out []Node
	for n := range seq {
		out = append(out, n)
	}
	return out
}
