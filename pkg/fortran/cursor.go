package fortran

import (
	"strings"

	"github.com/leapstack-labs/stylist/pkg/token"
)

// cursor walks the tokens of one statement.
type cursor struct {
	toks []token.Token
	i    int
}

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) done() bool { return c.i >= len(c.toks) }

func (c *cursor) peek() token.Token { return c.peekAt(0) }

func (c *cursor) peekAt(n int) token.Token {
	if c.i+n >= len(c.toks) {
		return token.Token{Type: token.EOF}
	}
	return c.toks[c.i+n]
}

func (c *cursor) next() token.Token {
	tok := c.peek()
	if !c.done() {
		c.i++
	}
	return tok
}

func (c *cursor) accept(t token.TokenType) bool {
	if c.peek().Type == t {
		c.i++
		return true
	}
	return false
}

func (c *cursor) acceptWord(word string) bool {
	if c.peek().Is(word) {
		c.i++
		return true
	}
	return false
}

func (c *cursor) rest() []token.Token {
	if c.done() {
		return nil
	}
	r := c.toks[c.i:]
	c.i = len(c.toks)
	return r
}

// group consumes a parenthesised group and returns the tokens inside it.
func (c *cursor) group() ([]token.Token, bool) {
	if c.peek().Type != token.LPAREN {
		return nil, false
	}
	end := matchingParen(c.toks, c.i)
	if end < 0 {
		return nil, false
	}
	inner := c.toks[c.i+1 : end]
	c.i = end + 1
	return inner, true
}

// until consumes tokens up to, not including, the first top level token of
// type t. It reports whether t was found.
func (c *cursor) until(t token.TokenType) ([]token.Token, bool) {
	depth := 0
	for j := c.i; j < len(c.toks); j++ {
		switch c.toks[j].Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		}
		if depth == 0 && c.toks[j].Type == t {
			out := c.toks[c.i:j]
			c.i = j
			return out, true
		}
	}
	return nil, false
}

// matchingParen returns the index of the bracket closing the one at open, or -1.
func matchingParen(toks []token.Token, open int) int {
	depth := 0
	for j := open; j < len(toks); j++ {
		switch toks[j].Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitTop splits tokens on top level commas.
func splitTop(toks []token.Token) [][]token.Token {
	if len(toks) == 0 {
		return nil
	}
	var parts [][]token.Token
	depth, start := 0, 0
	for j, tok := range toks {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		case token.COMMA:
			if depth == 0 {
				parts = append(parts, toks[start:j])
				start = j + 1
			}
		}
	}
	return append(parts, toks[start:])
}

// hasTop reports whether a token of type t appears outside any brackets.
func hasTop(toks []token.Token, t token.TokenType) bool {
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		}
		if depth == 0 && tok.Type == t {
			return true
		}
	}
	return false
}

// canonical joins tokens lower-cased with no blanks, e.g. "intent(inout)".
func canonical(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.Type == token.STRING {
			b.WriteString(tok.Literal)
			continue
		}
		b.WriteString(strings.ToLower(tok.Literal))
	}
	return b.String()
}

// render joins tokens as readable source text.
func render(toks []token.Token) string {
	var b strings.Builder
	for j, tok := range toks {
		if j > 0 && needsSpace(toks[j-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Literal)
	}
	return b.String()
}

func needsSpace(prev, cur token.Token) bool {
	switch {
	case prev.Type == token.COMMA:
		return true
	case prev.Type == token.DCOLON || cur.Type == token.DCOLON:
		return true
	case prev.Type == token.ASSIGN || cur.Type == token.ASSIGN:
		return true
	case prev.Type == token.ARROW || cur.Type == token.ARROW:
		return true
	case wordy(prev) && wordy(cur):
		return true
	case prev.Type == token.RPAREN && wordy(cur):
		return true
	}
	return false
}

func wordy(tok token.Token) bool {
	switch tok.Type {
	case token.NAME, token.INT, token.REAL, token.STRING, token.DOTOP:
		return true
	}
	return false
}
