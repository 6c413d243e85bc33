package text

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(CharactersetSpec)
}

const charactersetName = "FortranCharacterset"

// CharactersetSpec registers FortranCharacterset.
var CharactersetSpec = lint.RuleSpec{
	Name:        charactersetName,
	Description: "Code outside comments and strings uses only the Fortran character set.",
	Kind:        lint.RuleKindText,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return NewCharacterset(logger), nil
	},
}

// ErrUnknownState is returned if the scanner reaches a state it does not
// know how to handle.
var ErrUnknownState = errors.New("parser in unknown state")

const (
	fortranLetters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	fortranDigits   = "0123456789"
	fortranSpecials = " =+-*/\\()[]{},.:;!\"%&~<>?'`^|$#@"

	fortranCharacterset = fortranLetters + fortranDigits + "_" + fortranSpecials
)

type scanState int

const (
	stateCode scanState = iota
	stateComment
	stateApostropheString
	stateQuoteString
)

func (s scanState) String() string {
	switch s {
	case stateCode:
		return "code"
	case stateComment:
		return "comment"
	case stateApostropheString:
		return "apostrophe string"
	case stateQuoteString:
		return "quote string"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Characterset reports characters which are not in the Fortran character
// set. Comments and character literals may hold anything. A doubled quote
// inside a literal is seen as the literal closing and immediately
// reopening, which leaves the outcome unchanged.
type Characterset struct {
	lint.Base
}

// NewCharacterset creates the rule.
func NewCharacterset(logger *slog.Logger) *Characterset {
	return &Characterset{Base: lint.NewBase(charactersetName, logger)}
}

func (r *Characterset) Examine(src source.Source) ([]lint.Issue, error) {
	issues, err := r.Base.Examine(src)
	if err != nil {
		return nil, err
	}

	line := 1
	state := stateCode
	for _, char := range src.Text() {
		switch state {
		case stateCode:
			switch {
			case char == '\n':
				line++
			case char == '!':
				state = stateComment
			case char == '\'':
				state = stateApostropheString
			case char == '"':
				state = stateQuoteString
			case strings.ContainsRune(fortranCharacterset, char):
			default:
				description := fmt.Sprintf("Found character %s not in Fortran character set", quoteChar(char))
				issues = append(issues, lint.NewIssue(description, line))
			}
		case stateComment:
			if char == '\n' {
				line++
				state = stateCode
			}
		case stateApostropheString:
			if char == '\'' {
				state = stateCode
			}
		case stateQuoteString:
			if char == '"' {
				state = stateCode
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownState, state)
		}
	}
	return issues, nil
}

// quoteChar renders a character in single quotes, escaping it when it is
// not printable, e.g. '\t' or '\x0c'.
func quoteChar(r rune) string {
	switch r {
	case '\t':
		return `'\t'`
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\\':
		return `'\\'`
	case '\'':
		return `"'"`
	}
	switch {
	case unicode.IsPrint(r):
		return "'" + string(r) + "'"
	case r < 0x100:
		return fmt.Sprintf(`'\x%02x'`, r)
	case r < 0x10000:
		return fmt.Sprintf(`'\u%04x'`, r)
	default:
		return fmt.Sprintf(`'\U%08x'`, r)
	}
}
