package fortran

import (
	"strings"

	"github.com/leapstack-labs/stylist/pkg/token"
)

// Lexer tokenizes free form Fortran source.
//
// Continuation lines are joined transparently: a trailing '&' swallows the
// newline, any comment or blank lines which follow, and an optional leading
// '&' on the next code line. Comments inside a continued statement are
// collected but produce no token.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing, including those swallowed by continuations.
	Comments []*token.Comment

	lineHasCode bool
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekAt returns the character n places after the current one.
func (l *Lexer) peekAt(n int) byte {
	i := l.pos + n
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipBlanks() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipBlanks()
	pos := l.currentPos()

	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}
	}

	switch {
	case l.ch == '\n':
		l.readChar()
		l.lineHasCode = false
		return token.Token{Type: token.EOS, Literal: "\n", Pos: pos}
	case l.ch == ';':
		l.readChar()
		return token.Token{Type: token.EOS, Literal: ";", Pos: pos}
	case l.ch == '!':
		text := l.readComment()
		kind := token.StandaloneComment
		if l.lineHasCode {
			kind = token.TrailingComment
		}
		l.Comments = append(l.Comments, &token.Comment{
			Kind: kind,
			Text: text,
			Span: token.Span{Start: pos, End: l.currentPos()},
		})
		return token.Token{Type: token.COMMENT, Literal: text, Pos: pos}
	case l.ch == '&':
		if l.continueLine() {
			return l.NextToken()
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "&", Pos: pos}
	}

	l.lineHasCode = true

	switch {
	case l.ch == '\'' || l.ch == '"':
		return l.readString(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(pos)
	case l.ch == '.':
		if op, ok := l.dotOperator(); ok {
			for range len(op) {
				l.readChar()
			}
			return token.Token{Type: token.DOTOP, Literal: strings.ToLower(op), Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: ".", Pos: pos}
	case isLetter(l.ch):
		return token.Token{Type: token.NAME, Literal: l.readName(), Pos: pos}
	}

	return l.readOperator(pos)
}

func (l *Lexer) readOperator(pos token.Position) token.Token {
	two := func(t token.TokenType, lit string) token.Token {
		l.readChar()
		l.readChar()
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}
	one := func(t token.TokenType) token.Token {
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: t, Literal: lit, Pos: pos}
	}

	next := l.peekChar()
	switch l.ch {
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case '[':
		return one(token.LBRACKET)
	case ']':
		return one(token.RBRACKET)
	case ',':
		return one(token.COMMA)
	case '%':
		return one(token.PERCENT)
	case '+':
		return one(token.PLUS)
	case '-':
		return one(token.MINUS)
	case ':':
		if next == ':' {
			return two(token.DCOLON, "::")
		}
		return one(token.COLON)
	case '=':
		switch next {
		case '>':
			return two(token.ARROW, "=>")
		case '=':
			return two(token.EQ, "==")
		}
		return one(token.ASSIGN)
	case '*':
		if next == '*' {
			return two(token.POWER, "**")
		}
		return one(token.STAR)
	case '/':
		switch next {
		case '/':
			return two(token.CONCAT, "//")
		case '=':
			return two(token.NE, "/=")
		}
		return one(token.SLASH)
	case '<':
		if next == '=' {
			return two(token.LE, "<=")
		}
		return one(token.LT)
	case '>':
		if next == '=' {
			return two(token.GE, ">=")
		}
		return one(token.GT)
	}
	return one(token.ILLEGAL)
}

// readComment reads from '!' up to, not including, the newline.
func (l *Lexer) readComment() string {
	start := l.pos
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
	return strings.TrimRight(l.input[start:l.pos], " \t\r")
}

// continueLine consumes a continuation marker if the current '&' is one.
// It reports false when the '&' is followed by more code on the same line.
func (l *Lexer) continueLine() bool {
	i := l.pos + 1
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t' || l.input[i] == '\r') {
		i++
	}
	if i < len(l.input) && l.input[i] != '\n' && l.input[i] != '!' {
		return false
	}

	l.readChar() // '&'
	l.skipBlanks()
	if l.ch == '!' {
		l.collectComment()
	}
	if l.ch == '\n' {
		l.readChar()
	}
	l.skipContinuationGap()
	return true
}

// skipContinuationGap skips blank and comment lines between continued lines,
// then the leading whitespace and optional '&' of the next code line.
func (l *Lexer) skipContinuationGap() {
	for {
		l.skipBlanks()
		switch {
		case l.ch == '\n':
			l.readChar()
		case l.ch == '!':
			l.collectComment()
		default:
			if l.ch == '&' {
				l.readChar()
			}
			return
		}
	}
}

func (l *Lexer) collectComment() {
	pos := l.currentPos()
	text := l.readComment()
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.TrailingComment,
		Text: text,
		Span: token.Span{Start: pos, End: l.currentPos()},
	})
}

func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	var b strings.Builder
	b.WriteByte(quote)
	l.readChar()
	for {
		switch {
		case l.atEOF() || l.ch == '\n':
			return token.Token{Type: token.ILLEGAL, Literal: ErrUnterminatedString, Pos: pos}
		case l.ch == '&' && l.restOfLineBlank():
			// A character context continuation resumes after the next line's '&'.
			l.readChar()
			l.skipBlanks()
			if l.ch == '\n' {
				l.readChar()
			}
			l.skipBlanks()
			if l.ch == '&' {
				l.readChar()
			}
		case l.ch == quote:
			if l.peekChar() == quote {
				b.WriteByte(quote)
				b.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			b.WriteByte(quote)
			l.readChar()
			return token.Token{Type: token.STRING, Literal: b.String(), Pos: pos}
		default:
			b.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) restOfLineBlank() bool {
	for i := l.pos + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (l *Lexer) readName() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// dotOperator returns the .word. operator starting at the current '.', if any.
func (l *Lexer) dotOperator() (string, bool) {
	i := 1
	for isLetter(l.peekAt(i)) {
		i++
	}
	if i == 1 || l.peekAt(i) != '.' {
		return "", false
	}
	return l.input[l.pos : l.pos+i+1], true
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	typ := token.INT
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		if _, isOp := l.dotOperator(); !isOp {
			typ = token.REAL
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	if c := l.ch | 0x20; c == 'e' || c == 'd' || c == 'q' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n++
		}
		if isDigit(l.peekAt(n)) {
			typ = token.REAL
			for range n {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	if l.ch == '_' && (isLetter(l.peekChar()) || isDigit(l.peekChar())) {
		l.readChar()
		l.readName()
	}
	return token.Token{Type: typ, Literal: l.input[start:l.pos], Pos: pos}
}

// Tokenize returns every token up to and including EOF.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
