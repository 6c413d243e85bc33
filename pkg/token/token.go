// Package token defines the token types for Fortran lexing.
//
// Fortran keywords are not reserved, so the lexer never produces keyword
// tokens. Every word is a NAME and statement classification decides what
// it means.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	EOS     // end of statement: newline or ';'
	COMMENT // ! to end of line

	// Literals
	NAME   // identifier or keyword
	INT    // 42, 42_i_def
	REAL   // 1.0, 1.e5, 2.5d0, 1.0_r_def
	STRING // 'abc', "abc"
	DOTOP  // .and., .true., .eq., user defined .op.

	// Punctuation and operators
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	COLON    // :
	DCOLON   // ::
	ASSIGN   // =
	ARROW    // =>
	PERCENT  // %
	PLUS     // +
	MINUS    // -
	STAR     // *
	POWER    // **
	SLASH    // /
	CONCAT   // //
	EQ       // ==
	NE       // /=
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	EOS:     "EOS",
	COMMENT: "COMMENT",

	NAME:   "NAME",
	INT:    "INT",
	REAL:   "REAL",
	STRING: "STRING",
	DOTOP:  "DOTOP",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
	COLON:    ":",
	DCOLON:   "::",
	ASSIGN:   "=",
	ARROW:    "=>",
	PERCENT:  "%",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	POWER:    "**",
	SLASH:    "/",
	CONCAT:   "//",
	EQ:       "==",
	NE:       "/=",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",
}

// Token is a single lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Is reports whether the token is a NAME spelling the given word, ignoring case.
// word must be lower case.
func (t Token) Is(word string) bool {
	if t.Type != NAME || len(t.Literal) != len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := t.Literal[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
