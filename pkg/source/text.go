package source

import (
	"fmt"
	"io"
	"os"
)

// Text produces source text. It never fails.
type Text interface {
	Text() string
}

// StringReader serves text held in memory.
type StringReader struct {
	text string
}

// NewStringReader creates a reader over s.
func NewStringReader(s string) *StringReader {
	return &StringReader{text: s}
}

// Text returns the string unchanged.
func (r *StringReader) Text() string { return r.text }

// FileReader serves the content of a file, read eagerly when constructed.
type FileReader struct {
	path string
	text string
}

// NewFileReader reads the file at path.
func NewFileReader(path string) (*FileReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return &FileReader{path: path, text: string(data)}, nil
}

// ReadFrom reads all of r, recording name as the file path.
func ReadFrom(name string, r io.Reader) (*FileReader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", name, err)
	}
	return &FileReader{path: name, text: string(data)}, nil
}

// Path returns the path the text was read from.
func (r *FileReader) Path() string { return r.path }

// Text returns the file content.
func (r *FileReader) Text() string { return r.text }
