package tree

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownKind is returned when a query names a kind the grammar does not define.
var ErrUnknownKind = errors.New("unknown node kind")

// Kind describes one grammar production.
type Kind struct {
	Name string
	// Subtypes lists the productions which may stand in for this one.
	Subtypes []string
}

// Grammar resolves kind names to their descriptors.
type Grammar interface {
	Lookup(name string) (Kind, bool)
	// CommentKind names the generic comment placeholder production.
	CommentKind() string
}

// Registry is an in-memory Grammar populated from a kind list.
type Registry struct {
	comment string
	kinds   map[string]Kind
}

// NewRegistry creates a registry. Later kinds replace earlier ones with the same name.
func NewRegistry(comment string, kinds ...Kind) *Registry {
	r := &Registry{
		comment: comment,
		kinds:   make(map[string]Kind, len(kinds)),
	}
	for _, k := range kinds {
		r.kinds[k.Name] = k
	}
	return r
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// CommentKind returns the comment placeholder kind name.
func (r *Registry) CommentKind() string {
	return r.comment
}

// Names returns all registered kind names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the comment kind and every subtype name resolve.
func (r *Registry) Validate() error {
	var errs []error
	if _, ok := r.kinds[r.comment]; !ok {
		errs = append(errs, fmt.Errorf("comment kind %q: %w", r.comment, ErrUnknownKind))
	}
	for _, name := range r.Names() {
		for _, sub := range r.kinds[name].Subtypes {
			if _, ok := r.kinds[sub]; !ok {
				errs = append(errs, fmt.Errorf("subtype %q of %q: %w", sub, name, ErrUnknownKind))
			}
		}
	}
	return errors.Join(errs...)
}
