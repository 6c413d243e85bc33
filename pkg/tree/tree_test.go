package tree_test

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/stylist/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal grammar used across the tests:
//
//	Unit       = Comment | Program | Procedure
//	Procedure  = Function | Subroutine
//	Statement  = Assign | Call
type fakeNode struct {
	kind   string
	parent tree.Node
	line   int
}

func (n *fakeNode) Kind() string      { return n.kind }
func (n *fakeNode) Parent() tree.Node { return n.parent }
func (n *fakeNode) Line() int         { return n.line }

type fakeBlock struct {
	fakeNode
	content []tree.Node
}

func (b *fakeBlock) Content() []tree.Node { return b.content }

type fakeSeq struct {
	fakeNode
	items []tree.Node
}

func (s *fakeSeq) Items() []tree.Node { return s.items }

func block(kind string, line int, children ...tree.Node) *fakeBlock {
	b := &fakeBlock{fakeNode: fakeNode{kind: kind, line: line}, content: children}
	for _, c := range children {
		adopt(c, b)
	}
	return b
}

func seq(kind string, items ...tree.Node) *fakeSeq {
	s := &fakeSeq{fakeNode: fakeNode{kind: kind}, items: items}
	for _, c := range items {
		adopt(c, s)
	}
	return s
}

func leaf(kind string, line int) *fakeNode {
	return &fakeNode{kind: kind, line: line}
}

func adopt(child, parent tree.Node) {
	switch c := child.(type) {
	case *fakeNode:
		c.parent = parent
	case *fakeBlock:
		c.parent = parent
	case *fakeSeq:
		c.parent = parent
	}
}

func grammar() *tree.Registry {
	return tree.NewRegistry("Comment",
		tree.Kind{Name: "Comment"},
		tree.Kind{Name: "Root"},
		tree.Kind{Name: "Unit", Subtypes: []string{"Comment", "Program", "Procedure"}},
		tree.Kind{Name: "Program"},
		tree.Kind{Name: "Procedure", Subtypes: []string{"Function", "Subroutine"}},
		tree.Kind{Name: "Function"},
		tree.Kind{Name: "Subroutine"},
		tree.Kind{Name: "Body"},
		tree.Kind{Name: "Statement", Subtypes: []string{"Assign", "Call"}},
		tree.Kind{Name: "Assign"},
		tree.Kind{Name: "Call"},
		tree.Kind{Name: "List"},
		tree.Kind{Name: "Name"},
	)
}

// sample builds:
//
//	Root
//	  Comment @1
//	  Program @2
//	    Body
//	      Assign @3
//	      Subroutine @4
//	        Body
//	          Call @5
//	  Function @7
//	    List [Name, nil, Name]
func sample() *fakeBlock {
	return block("Root", 0,
		leaf("Comment", 1),
		block("Program", 2,
			block("Body", 0,
				leaf("Assign", 3),
				block("Subroutine", 4,
					block("Body", 0, leaf("Call", 5)),
				),
			),
		),
		block("Function", 7,
			seq("List", leaf("Name", 0), nil, leaf("Name", 0)),
		),
	)
}

func TestRegistryValidate(t *testing.T) {
	require.NoError(t, grammar().Validate())

	broken := tree.NewRegistry("Comment", tree.Kind{Name: "A", Subtypes: []string{"B"}})
	err := broken.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrUnknownKind)
	assert.Contains(t, err.Error(), `"B"`)
	assert.Contains(t, err.Error(), `comment kind "Comment"`)
}

func TestMatches(t *testing.T) {
	q := tree.NewQuery(grammar())

	tests := []struct {
		name string
		node tree.Node
		kind string
		want bool
	}{
		{"reflexive", leaf("Function", 1), "Function", true},
		{"direct subtype", leaf("Function", 1), "Procedure", true},
		{"transitive subtype", leaf("Subroutine", 1), "Unit", true},
		{"unrelated", leaf("Call", 1), "Unit", false},
		{"supertype is not a subtype", leaf("Procedure", 1), "Function", false},
		{"comment filtered from ordinary match", leaf("Comment", 1), "Unit", false},
		{"comment found when sought", leaf("Comment", 1), "Comment", true},
		{"nil node", nil, "Unit", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := q.Matches(tt.node, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesUnknownKind(t *testing.T) {
	q := tree.NewQuery(grammar())
	_, err := q.Matches(leaf("Call", 1), "Nonsense")
	assert.ErrorIs(t, err, tree.ErrUnknownKind)
}

func TestMatchesCyclicSubtypes(t *testing.T) {
	g := tree.NewRegistry("Comment",
		tree.Kind{Name: "Comment"},
		tree.Kind{Name: "A", Subtypes: []string{"B"}},
		tree.Kind{Name: "B", Subtypes: []string{"A", "C"}},
		tree.Kind{Name: "C"},
	)
	q := tree.NewQuery(g)
	ok, err := q.Matches(leaf("C", 1), "A")
	require.NoError(t, err)
	assert.True(t, ok)
}

func kinds(nodes []tree.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind())
	}
	return out
}

func TestPath(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()

	tests := []struct {
		name string
		path []string
		want []string
	}{
		{"top level units skip comments", []string{"Unit"}, []string{"Program", "Function"}},
		{"comment sought explicitly", []string{"Comment"}, []string{"Comment"}},
		{"two steps", []string{"Program", "Body"}, []string{"Body"}},
		{"slash joined", []string{"Program/Body/Statement"}, []string{"Assign"}},
		{"mixed forms", []string{"Program/Body", "Procedure", "Body", "Call"}, []string{"Call"}},
		{"sequence items with nil dropped", []string{"Function", "List", "Name"}, []string{"Name", "Name"}},
		{"no match at first step", []string{"Subroutine"}, nil},
		{"short circuit", []string{"Subroutine", "Body", "Call"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := q.Path(root, tt.path...)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, kinds(got))
		})
	}
}

func TestPathEmptyStaysEmpty(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()

	base, err := q.Path(root, "Function", "Body")
	require.NoError(t, err)
	require.Empty(t, base)

	for _, extra := range []string{"Call", "Statement", "Unit", "Comment"} {
		got, err := q.Path(root, "Function", "Body", extra)
		require.NoError(t, err)
		assert.Empty(t, got, extra)
	}
}

func TestPathErrors(t *testing.T) {
	q := tree.NewQuery(grammar())

	_, err := q.Path(sample(), "Program", "Bogus")
	assert.ErrorIs(t, err, tree.ErrUnknownKind)

	got, err := q.Path(nil, "Program")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPathFrom(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()
	program := root.content[1]

	got, err := q.PathFrom(tree.Children(program), "Body", "Subroutine")
	require.NoError(t, err)
	assert.Equal(t, []string{"Subroutine"}, kinds(got))
}

func TestFindAll(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()

	seq, err := q.FindAll(root, "Statement")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assign", "Call"}, kinds(tree.Collect(seq)))

	seq, err = q.FindAll(root, "Procedure")
	require.NoError(t, err)
	got := tree.Collect(seq)
	assert.Equal(t, []string{"Function", "Subroutine"}, kinds(got), "breadth first order")
}

func TestFindAllStopsAtMatch(t *testing.T) {
	q := tree.NewQuery(grammar())
	nested := block("Root", 0,
		block("Body", 1,
			block("Body", 2,
				block("Body", 3),
			),
		),
		block("Body", 4),
	)

	seq, err := q.FindAll(nested, "Body")
	require.NoError(t, err)
	got := tree.Collect(seq)
	require.Len(t, got, 2)

	for _, a := range got {
		for _, b := range got {
			assert.False(t, tree.IsAncestor(a, b), "%v contains %v", a, b)
		}
	}
}

func TestFindAllIncludesRoot(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()
	program := root.content[1]

	seq, err := q.FindAll(program, "Program")
	require.NoError(t, err)
	assert.Equal(t, []tree.Node{program}, tree.Collect(seq))
}

func TestFindAllIsLazyAndRestartable(t *testing.T) {
	q := tree.NewQuery(grammar())
	root := sample()

	seq, err := q.FindAll(root, "Unit")
	require.NoError(t, err)

	var first tree.Node
	for n := range seq {
		first = n
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, "Program", first.Kind())

	again := tree.Collect(seq)
	assert.Equal(t, []string{"Program", "Function"}, kinds(again))
}

func TestFindAllUnknownKind(t *testing.T) {
	q := tree.NewQuery(grammar())
	_, err := q.FindAll(sample(), "Bogus")
	assert.ErrorIs(t, err, tree.ErrUnknownKind)

	seq, err := q.FindAllIn(nil, "Call")
	require.NoError(t, err)
	assert.Empty(t, tree.Collect(seq))
}

func TestLineOf(t *testing.T) {
	root := sample()
	function := root.content[2].(*fakeBlock)
	list := function.content[0].(*fakeSeq)

	line, ok := tree.LineOf(list.items[0])
	require.True(t, ok)
	assert.Equal(t, 7, line)

	_, ok = tree.LineOf(leaf("Name", 0))
	assert.False(t, ok)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tree.Dump(&buf, sample().content[2]))
	assert.Equal(t, "Function @7\n  List\n    Name\n    Name\n", buf.String())
}
