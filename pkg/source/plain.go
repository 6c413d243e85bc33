package source

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/stylist/pkg/tree"
)

// Node kinds produced by PlainText.
const (
	KindText = "Text"
	KindLine = "Line"
)

// PlainText treats any text as source whose tree is its lines.
type PlainText struct {
	text Text
}

// NewPlainText creates a plain text source.
func NewPlainText(text Text) *PlainText {
	return &PlainText{text: text}
}

func (s *PlainText) Name() string { return "plain text" }

func (s *PlainText) Text() string { return s.text.Text() }

// Tree returns a block holding one Line per line of text. It never fails.
func (s *PlainText) Tree() tree.Node {
	block := &lines{}
	for i, l := range SplitLines(s.text.Text()) {
		block.content = append(block.content, &Line{parent: block, number: i + 1, text: l})
	}
	return block
}

func (s *PlainText) TreeError() error { return nil }

type lines struct {
	content []tree.Node
}

func (l *lines) Kind() string { return KindText }
func (l *lines) Parent() tree.Node { return nil }
func (l *lines) Content() []tree.Node { return l.content }

// Line is one line of plain text.
type Line struct {
	parent tree.Node
	number int
	text   string
}

func (l *Line) Kind() string { return KindLine }
func (l *Line) Parent() tree.Node { return l.parent }
func (l *Line) Line() int { return l.number }
func (l *Line) String() string { return l.text }

// SplitLines splits text on "\n", "\r\n" or "\r" line endings. A final
// line ending does not produce an empty last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// ErrNotSupported is the tree error of sources whose language has no parser.
var ErrNotSupported = errors.New("C/C++ source is not supported yet")

// CSource holds C or C++ text. Parsing is not implemented.
type CSource struct {
	text Text
}

// NewCSource creates a C source.
func NewCSource(text Text) *CSource {
	return &CSource{text: text}
}

func (s *CSource) Name() string { return "C source" }

func (s *CSource) Text() string { return s.text.Text() }

func (s *CSource) Tree() tree.Node { return nil }

func (s *CSource) TreeError() error { return ErrNotSupported }
