package source

import (
	"iter"
	"sync"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/tree"
)

// Source is a checkable unit of text.
type Source interface {
	Text
	Name() string
}

// TreeSource is a Source which can also be parsed. Tree returns nil exactly
// when TreeError returns non-nil.
type TreeSource interface {
	Source
	Tree() tree.Node
	TreeError() error
}

var fortranQuery = sync.OnceValue(func() *tree.Query {
	return tree.NewQuery(fortran.Grammar())
})

// FortranSource holds Fortran text and, once asked for, its parse tree.
type FortranSource struct {
	text Text

	once sync.Once
	root *fortran.Block
	err  error
}

// NewFortranSource creates a source over the outermost link of a text chain.
func NewFortranSource(text Text) *FortranSource {
	return &FortranSource{text: text}
}

func (s *FortranSource) Name() string { return "Fortran source" }

// Text returns the fully decorated text.
func (s *FortranSource) Text() string { return s.text.Text() }

func (s *FortranSource) parse() {
	s.once.Do(func() {
		s.root, s.err = fortran.Parse(s.text.Text())
	})
}

// Tree returns the parsed program, or nil if parsing failed.
func (s *FortranSource) Tree() tree.Node {
	if p := s.Program(); p != nil {
		return p
	}
	return nil
}

// Program returns the parsed program block, or nil if parsing failed.
func (s *FortranSource) Program() *fortran.Block {
	s.parse()
	return s.root
}

// TreeError returns the parse failure, if any.
func (s *FortranSource) TreeError() error {
	s.parse()
	return s.err
}

// Query returns the query engine bound to the Fortran grammar.
func (s *FortranSource) Query() *tree.Query { return fortranQuery() }

// Path follows path down from root, or from the whole program when root is
// nil. An unparsed source yields an empty result.
func (s *FortranSource) Path(root tree.Node, path ...string) ([]tree.Node, error) {
	if root == nil {
		root = s.Tree()
	}
	return s.Query().Path(root, path...)
}

// FindAll searches for kind below root. With a nil root the search covers
// the program's content.
func (s *FortranSource) FindAll(root tree.Node, kind string) (iter.Seq[tree.Node], error) {
	if root != nil {
		return s.Query().FindAll(root, kind)
	}
	var roots []tree.Node
	if p := s.Program(); p != nil {
		roots = p.Content()
	}
	return s.Query().FindAllIn(roots, kind)
}

// FirstStatement returns the first statement at or below root, or below the
// whole program when root is nil.
func (s *FortranSource) FirstStatement(root tree.Node) (fortran.Statement, error) {
	if root == nil {
		root = s.Tree()
	}
	return fortran.FirstStatement(root)
}
