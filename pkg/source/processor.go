package source

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrUnknownPreprocessor is returned when a pipe names a preprocessor tag
// which is not registered.
var ErrUnknownPreprocessor = errors.New("unknown preprocessor")

// Processor is a Text decorator transforming the text of the link it wraps.
type Processor interface {
	Text
	Name() string
}

var (
	conditionalDirective = regexp.MustCompile(`(?m)^(\s*)(#if(def|\s+)*)$`)
	otherDirective       = regexp.MustCompile(`(?m)^(\s*)(#.*)$`)
	pfunitDirective      = regexp.MustCompile(`(?m)^(\s*)(@\w+.*)$`)
)

// commentOut rewrites directive lines as comments, keeping their indentation.
func commentOut(text, marker string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "${1}"+marker+"${2}")
	}
	return text
}

// FortranPreProcessor comments out preprocessor directives with "!" so the
// whole file is syntax checked regardless of conditional compilation.
type FortranPreProcessor struct {
	source Text
}

// NewFortranPreProcessor wraps src.
func NewFortranPreProcessor(src Text) *FortranPreProcessor {
	return &FortranPreProcessor{source: src}
}

func (p *FortranPreProcessor) Name() string { return "Fortran preprocessor" }

func (p *FortranPreProcessor) Text() string {
	return commentOut(p.source.Text(), "! ", conditionalDirective, otherDirective)
}

// CPreProcessor comments out preprocessor directives with "//".
type CPreProcessor struct {
	source Text
}

// NewCPreProcessor wraps src.
func NewCPreProcessor(src Text) *CPreProcessor {
	return &CPreProcessor{source: src}
}

func (p *CPreProcessor) Name() string { return "C preprocessor" }

func (p *CPreProcessor) Text() string {
	return commentOut(p.source.Text(), "// ", conditionalDirective, otherDirective)
}

// PFUnitProcessor comments out pFUnit "@" directives.
type PFUnitProcessor struct {
	source Text
}

// NewPFUnitProcessor wraps src.
func NewPFUnitProcessor(src Text) *PFUnitProcessor {
	return &PFUnitProcessor{source: src}
}

func (p *PFUnitProcessor) Name() string { return "pFUnit preprocessor" }

func (p *PFUnitProcessor) Text() string {
	return commentOut(p.source.Text(), "! ", pfunitDirective)
}

// Preprocessor tags used in pipe descriptions.
const (
	TagFortran = "fpp"
	TagC       = "cpp"
	TagPFUnit  = "pfp"
)

var processors = map[string]func(Text) Processor{
	TagFortran: func(t Text) Processor { return NewFortranPreProcessor(t) },
	TagC:       func(t Text) Processor { return NewCPreProcessor(t) },
	TagPFUnit:  func(t Text) Processor { return NewPFUnitProcessor(t) },
}

// NewProcessor wraps src in the preprocessor registered under tag.
func NewProcessor(tag string, src Text) (Processor, error) {
	ctor, ok := processors[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreprocessor, tag)
	}
	return ctor(src), nil
}

// ProcessorTags returns the registered preprocessor tags, sorted.
func ProcessorTags() []string {
	tags := make([]string, 0, len(processors))
	for tag := range processors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
