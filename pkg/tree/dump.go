package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the nodes and their descendants.
// Positioned nodes show their line and stringers their text, even when
// they have children of their own.
func Dump(w io.Writer, nodes ...Node) error {
	for _, n := range compact(nodes) {
		if err := dump(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, n Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind())
	if p, ok := n.(Positioned); ok && p.Line() > 0 {
		fmt.Fprintf(&b, " @%d", p.Line())
	}
	if s, ok := n.(fmt.Stringer); ok {
		if text := s.String(); text != "" {
			fmt.Fprintf(&b, ": %s", text)
		}
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range Children(n) {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
