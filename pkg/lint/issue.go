package lint

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Issue is a single style violation. The zero line means the issue is not
// tied to a line and the empty file means no file has been attached yet.
type Issue struct {
	description string
	line        int
	file        string
}

// NewIssue creates an issue not yet attached to a file. A line of zero or
// less means the issue has no line.
func NewIssue(description string, line int) Issue {
	return Issue{description: description, line: max(line, 0)}
}

// NewFileIssue creates an issue attached to a file.
func NewFileIssue(description string, line int, file string) Issue {
	return NewIssue(description, line).WithFile(file)
}

// WithFile returns a copy of the issue attached to file.
func (i Issue) WithFile(file string) Issue {
	i.file = file
	return i
}

// Description returns the human readable text of the issue.
func (i Issue) Description() string { return i.description }

// Line returns the line number, if the issue has one.
func (i Issue) Line() (int, bool) { return i.line, i.line > 0 }

// File returns the file path, if one has been attached.
func (i Issue) File() (string, bool) { return i.file, i.file != "" }

// String renders "file: line: description", leaving out absent parts.
func (i Issue) String() string {
	var b strings.Builder
	if i.file != "" {
		b.WriteString(i.file)
		b.WriteString(": ")
	}
	if i.line > 0 {
		b.WriteString(strconv.Itoa(i.line))
		b.WriteString(": ")
	}
	b.WriteString(i.description)
	return b.String()
}

// Compare orders issues by file, then line, then description. Issues
// without a file sort before any file and issues without a line before
// line one.
func Compare(a, b Issue) int {
	if c := cmp.Compare(a.file, b.file); c != 0 {
		return c
	}
	if c := cmp.Compare(a.line, b.line); c != 0 {
		return c
	}
	return cmp.Compare(a.description, b.description)
}

// Less reports whether a sorts before b.
func Less(a, b Issue) bool { return Compare(a, b) < 0 }

// SortIssues sorts issues in place, keeping the order of equal issues.
func SortIssues(issues []Issue) {
	slices.SortStableFunc(issues, Compare)
}

type issueJSON struct {
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description"`
}

// MarshalJSON renders the issue as an object, omitting absent fields.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(issueJSON{File: i.file, Line: i.line, Description: i.description})
}
