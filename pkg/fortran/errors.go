package fortran

import "fmt"

// ParseError represents a parsing error with the line it occurred on.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("at line %d: %s", e.Line, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated character literal"
	ErrUnexpectedCharacter = "unexpected character %q"
	ErrUnrecognised        = "unrecognised statement %q"
	ErrUnexpectedStatement = "unexpected %s in %s"
	ErrMissingEnd          = "missing end of %s"
	ErrMismatchedEnd       = "%s does not close %s"
	ErrMalformed           = "malformed %s"
)
