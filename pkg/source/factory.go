package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Errors returned by the factory.
var (
	ErrUnknownExtension   = errors.New("unknown source file extension")
	ErrDuplicateExtension = errors.New("extension already mapped to a handler")
	ErrUnknownLanguage    = errors.New("unknown source language")
	ErrInvalidPipe        = errors.New("invalid pipe description")
)

// Languages understood by FilePipe.
const (
	LanguageFortran = "fortran"
	LanguageC       = "c"
	LanguageText    = "text"
)

var languages = map[string]func(Text) Source{
	LanguageFortran: func(t Text) Source { return NewFortranSource(t) },
	LanguageC:       func(t Text) Source { return NewCSource(t) },
	LanguageText:    func(t Text) Source { return NewPlainText(t) },
}

// FilePipe names the language source and the preprocessors, innermost
// first, needed to handle a kind of file.
type FilePipe struct {
	Language      string
	Preprocessors []string
}

// NewFilePipe validates and builds a pipe.
func NewFilePipe(language string, preprocessors ...string) (FilePipe, error) {
	if _, ok := languages[language]; !ok {
		return FilePipe{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
	for _, tag := range preprocessors {
		if _, ok := processors[tag]; !ok {
			return FilePipe{}, fmt.Errorf("%w: %s", ErrUnknownPreprocessor, tag)
		}
	}
	return FilePipe{Language: language, Preprocessors: preprocessors}, nil
}

func mustPipe(language string, preprocessors ...string) FilePipe {
	p, err := NewFilePipe(language, preprocessors...)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the pipe as "language[:preprocessor]...".
func (p FilePipe) String() string {
	return strings.Join(append([]string{p.Language}, p.Preprocessors...), ":")
}

// Build decorates text with the pipe's preprocessors and wraps it in the
// language source.
func (p FilePipe) Build(text Text) (Source, error) {
	ctor, ok := languages[p.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, p.Language)
	}
	for _, tag := range p.Preprocessors {
		proc, err := NewProcessor(tag, text)
		if err != nil {
			return nil, err
		}
		text = proc
	}
	return ctor(text), nil
}

// ParsePipe parses "language[:preprocessor]...".
func ParsePipe(desc string) (FilePipe, error) {
	parts := strings.Split(strings.TrimSpace(desc), ":")
	if parts[0] == "" {
		return FilePipe{}, fmt.Errorf("%w: %q", ErrInvalidPipe, desc)
	}
	return NewFilePipe(parts[0], parts[1:]...)
}

// ParsePipeDescription parses "extension:language[:preprocessor]...".
func ParsePipeDescription(desc string) (string, FilePipe, error) {
	ext, rest, ok := strings.Cut(strings.TrimSpace(desc), ":")
	if !ok || ext == "" {
		return "", FilePipe{}, fmt.Errorf("%w: %q", ErrInvalidPipe, desc)
	}
	pipe, err := ParsePipe(rest)
	if err != nil {
		return "", FilePipe{}, err
	}
	return strings.TrimPrefix(ext, "."), pipe, nil
}

// DefaultPipes returns the built in extension map. Extensions are case
// sensitive: upper case Fortran suffixes are preprocessed.
func DefaultPipes() map[string]FilePipe {
	fortranPipe := mustPipe(LanguageFortran)
	fpp := mustPipe(LanguageFortran, TagFortran)
	cpp := mustPipe(LanguageC, TagC)
	return map[string]FilePipe{
		"f90": fortranPipe,
		"F90": fpp,
		"f":   fortranPipe,
		"F":   fpp,
		"c":   cpp,
		"h":   cpp,
		"cc":  cpp,
		"cpp": cpp,
		"pf":  mustPipe(LanguageFortran, TagPFUnit),
	}
}

// Factory creates sources for files according to their extension.
type Factory struct {
	mu    sync.RWMutex
	pipes map[string]FilePipe
}

// NewFactory creates a factory holding the default extension map.
func NewFactory() *Factory {
	return &Factory{pipes: DefaultPipes()}
}

// AddExtension maps a new extension to a pipe. Mapping an extension twice
// is an error.
func (f *Factory) AddExtension(ext string, pipe FilePipe) error {
	ext = strings.TrimPrefix(ext, ".")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pipes[ext]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateExtension, ext)
	}
	f.pipes[ext] = pipe
	return nil
}

// SetExtension maps an extension to a pipe, replacing any existing mapping.
func (f *Factory) SetExtension(ext string, pipe FilePipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pipes[strings.TrimPrefix(ext, ".")] = pipe
}

// Pipe returns the pipe for an extension.
func (f *Factory) Pipe(ext string) (FilePipe, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.pipes[ext]
	return p, ok
}

// Extensions returns the recognised extensions, sorted.
func (f *Factory) Extensions() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	exts := make([]string, 0, len(f.pipes))
	for ext := range f.pipes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Handles reports whether path has a recognised extension.
func (f *Factory) Handles(path string) bool {
	_, ok := f.Pipe(extension(path))
	return ok
}

func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func (f *Factory) pipeFor(path string) (FilePipe, error) {
	ext := extension(path)
	pipe, ok := f.Pipe(ext)
	if !ok {
		return FilePipe{}, fmt.Errorf("%w: source file extension '%s' not in handler map", ErrUnknownExtension, ext)
	}
	return pipe, nil
}

// ReadFile reads path and builds the source its extension calls for.
func (f *Factory) ReadFile(path string) (Source, error) {
	pipe, err := f.pipeFor(path)
	if err != nil {
		return nil, err
	}
	reader, err := NewFileReader(path)
	if err != nil {
		return nil, err
	}
	return pipe.Build(reader)
}

// Read builds a source from r, choosing the pipe by the extension of name.
func (f *Factory) Read(name string, r io.Reader) (Source, error) {
	pipe, err := f.pipeFor(name)
	if err != nil {
		return nil, err
	}
	reader, err := ReadFrom(name, r)
	if err != nil {
		return nil, err
	}
	return pipe.Build(reader)
}
