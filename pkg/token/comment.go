package token

// CommentKind distinguishes comments on their own line from ones trailing a statement.
type CommentKind int

// Comment kinds.
const (
	StandaloneComment CommentKind = iota // ! on a line of its own
	TrailingComment                      // x = 1 ! after a statement
)

// Comment represents a Fortran comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes the leading !
	Span Span
}

// IsTrailing returns true if the comment followed code on the same line.
func (c *Comment) IsTrailing() bool {
	return c.Kind == TrailingComment
}
