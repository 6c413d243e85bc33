package fortran

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/tree"
)

// node carries the kind and parent link shared by every tree node.
type node struct {
	kind   string
	parent tree.Node
}

func (n *node) Kind() string { return n.kind }

func (n *node) Parent() tree.Node { return n.parent }

func (n *node) setParent(p tree.Node) { n.parent = p }

type linkable interface {
	tree.Node
	setParent(tree.Node)
}

// Block is a node with a flat ordered content list.
type Block struct {
	node
	content []tree.Node
}

func newBlock(kind string, content ...tree.Node) *Block {
	return &Block{node: node{kind: kind}, content: content}
}

// Content returns the children of the block.
func (b *Block) Content() []tree.Node { return b.content }

func (b *Block) add(n ...tree.Node) { b.content = append(b.content, n...) }

// Sequence is a node with ordered items, some of which may be nil.
type Sequence struct {
	node
	items []tree.Node
}

func newSequence(kind string, items ...tree.Node) *Sequence {
	return &Sequence{node: node{kind: kind}, items: items}
}

// Items returns the items of the sequence.
func (s *Sequence) Items() []tree.Node { return s.items }

// Item is a leaf holding a fragment of source text, such as a name or an
// attribute.
type Item struct {
	node
	text string
}

func newItem(kind, text string) *Item {
	return &Item{node: node{kind: kind}, text: text}
}

func (i *Item) String() string { return i.text }

// Comment is a comment line or trailing comment.
type Comment struct {
	node
	text     string
	line     int
	trailing bool
}

// IsTrailing reports whether the comment follows code on the same line.
func (c *Comment) IsTrailing() bool { return c.trailing }

// Line returns the line the comment is on.
func (c *Comment) Line() int { return c.line }

func (c *Comment) String() string { return c.text }

// Statement is implemented by every statement node.
type Statement interface {
	tree.Positioned
	Label() string
	ConstructName() string
	String() string
}

// Stmt is a statement. Plain statements are leaves. USE, declaration and
// logical IF statements are sequences whose items are their structured
// parts, so tree queries reach ONLY lists, entities and IF actions.
type Stmt struct {
	node
	line      int
	label     string
	construct string
	text      string
}

// Line returns the line the statement starts on.
func (s *Stmt) Line() int { return s.line }

// Label returns the numeric statement label, if any.
func (s *Stmt) Label() string { return s.label }

// ConstructName returns the "name:" prefix of a construct statement, if any.
func (s *Stmt) ConstructName() string { return s.construct }

func (s *Stmt) String() string { return s.text }

func (s *Stmt) stmt() *Stmt { return s }

// UnitStmt opens a program unit or procedure: PROGRAM, MODULE, FUNCTION or SUBROUTINE.
type UnitStmt struct {
	Stmt
	name   string
	args   []string
	result string
	prefix []string
}

// Name returns the unit name as written.
func (s *UnitStmt) Name() string { return s.name }

// Args returns the dummy argument names as written.
func (s *UnitStmt) Args() []string { return s.args }

// Result returns the RESULT clause variable, if any.
func (s *UnitStmt) Result() string { return s.result }

// Prefix returns lower-cased prefix words such as "pure" or "integer".
func (s *UnitStmt) Prefix() []string { return s.prefix }

// EndStmt closes a unit or construct.
type EndStmt struct {
	Stmt
	word string
	name string
}

// Closes returns the lower-cased word after END, empty for a bare END.
func (s *EndStmt) Closes() string { return s.word }

// Name returns the optional name following the END keyword.
func (s *EndStmt) Name() string { return s.name }

// UseStmt is a USE statement.
type UseStmt struct {
	Stmt
	nature string
	module string
	only   *Sequence
}

// Nature returns the lower-cased module nature: "intrinsic", "non_intrinsic" or empty.
func (s *UseStmt) Nature() string { return s.nature }

// Module returns the module name as written.
func (s *UseStmt) Module() string { return s.module }

// Only returns the ONLY list or nil when there is no ONLY clause. An empty
// "only:" yields an empty, non-nil list.
func (s *UseStmt) Only() *Sequence { return s.only }

// Items returns [Only_List], nil when there is no ONLY clause.
func (s *UseStmt) Items() []tree.Node { return []tree.Node{optional(s.only)} }

// DeclStmt declares entities: type declarations, procedure declarations and
// their derived type component forms.
type DeclStmt struct {
	Stmt
	typeSpec string
	attrs    *Sequence
	entities *Sequence
}

// TypeSpec returns the lower-cased declared type, e.g. "integer(i_def)" or "procedure(some_if)".
func (s *DeclStmt) TypeSpec() string { return s.typeSpec }

// AttrList returns the attribute list or nil when none was written.
func (s *DeclStmt) AttrList() *Sequence { return s.attrs }

// Items returns [attribute list, entity list] with an absent attribute
// list nil.
func (s *DeclStmt) Items() []tree.Node {
	return []tree.Node{optional(s.attrs), optional(s.entities)}
}

// Attributes returns the attributes lower-cased with blanks removed,
// e.g. "intent(inout)".
func (s *DeclStmt) Attributes() []string {
	if s.attrs == nil {
		return nil
	}
	out := make([]string, 0, len(s.attrs.items))
	for _, it := range s.attrs.items {
		if item, ok := it.(*Item); ok {
			out = append(out, item.text)
		}
	}
	return out
}

// HasAttribute reports whether the declaration carries the attribute.
func (s *DeclStmt) HasAttribute(attr string) bool {
	for _, a := range s.Attributes() {
		if a == attr {
			return true
		}
	}
	return false
}

// Intent returns the declared intent, if any: "in", "out" or "inout".
func (s *DeclStmt) Intent() (string, bool) {
	for _, a := range s.Attributes() {
		if strings.HasPrefix(a, "intent(") && strings.HasSuffix(a, ")") {
			return a[len("intent(") : len(a)-1], true
		}
	}
	return "", false
}

// Entities returns the declared entities in order.
func (s *DeclStmt) Entities() []*Entity {
	if s.entities == nil {
		return nil
	}
	out := make([]*Entity, 0, len(s.entities.items))
	for _, it := range s.entities.items {
		if e, ok := it.(*Entity); ok {
			out = append(out, e)
		}
	}
	return out
}

// Entity is one declared name with its optional array spec, character
// length and initialisation. Its items are [Name, Array_Spec, Char_Length,
// Initialization] with absent parts nil.
type Entity struct {
	Sequence
	name string
	init string
}

// Name returns the entity name as written.
func (e *Entity) Name() string { return e.name }

// Init returns the initialisation expression including its "=" or "=>".
func (e *Entity) Init() (string, bool) { return e.init, e.init != "" }

// NamesStmt is a statement applying an attribute to a list of names,
// such as INTENT(IN) :: a, b or PRIVATE :: x.
type NamesStmt struct {
	Stmt
	spec  string
	names []string
}

// Spec returns the lower-cased attribute, e.g. "intent(in)".
func (s *NamesStmt) Spec() string { return s.spec }

// Names returns the names the statement applies to.
func (s *NamesStmt) Names() []string { return s.names }

// IfStmt is a logical IF with a single action statement.
type IfStmt struct {
	Stmt
	action Statement
}

// Action returns the statement executed when the condition holds.
func (s *IfStmt) Action() Statement { return s.action }

// Items returns [action].
func (s *IfStmt) Items() []tree.Node {
	if s.action == nil {
		return []tree.Node{nil}
	}
	return []tree.Node{s.action}
}

// BranchStmt is EXIT or CYCLE with an optional construct name.
type BranchStmt struct {
	Stmt
	target string
}

// Target returns the construct name the statement refers to, if any.
func (s *BranchStmt) Target() string { return s.target }

// DoStmt opens a DO construct.
type DoStmt struct {
	Stmt
	endLabel string
}

// EndLabel returns the terminating statement label of a labelled DO.
func (s *DoStmt) EndLabel() string { return s.endLabel }

// ErrNoStatement is returned by FirstStatement when a subtree holds none.
var ErrNoStatement = errors.New("block without any statements")

// FirstStatement returns the first statement found breadth first at or
// below root. Comments are skipped.
func FirstStatement(root tree.Node) (Statement, error) {
	candidates := []tree.Node{root}
	for len(candidates) > 0 {
		cand := candidates[0]
		candidates = candidates[1:]
		if s, ok := cand.(Statement); ok {
			return s, nil
		}
		candidates = append(candidates, tree.Children(cand)...)
	}
	return nil, ErrNoStatement
}

// link sets parent pointers throughout the subtree below n, including the
// structured parts of statements.
func link(n tree.Node) {
	for _, c := range tree.Children(n) {
		if l, ok := c.(linkable); ok {
			l.setParent(n)
		}
		link(c)
	}
}

// optional keeps an absent sequence a nil item.
func optional(s *Sequence) tree.Node {
	if s == nil {
		return nil
	}
	return s
}
