package codemod

import (
	"fmt"
	"sort"

	"github.com/viant/codemod/syntax"
)

// Codemod rewrites one document. A nil result means the codemod does not
// apply to the document; a result whose text equals the input means it was
// rewritten to itself.
type Codemod interface {
	Name() string
	Transform(doc *syntax.Document) (*Result, error)
}

// Result holds the printed document and any structural mismatch reports.
type Result struct {
	Text        string
	Diagnostics []Diagnostic
}

// Diagnostic reports a site a codemod left untouched.
type Diagnostic struct {
	Codemod string `yaml:"codemod" json:"codemod"`
	Path    string `yaml:"path" json:"path"`
	Line    int    `yaml:"line" json:"line"`
	Message string `yaml:"message" json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s (%s)", d.Path, d.Line, d.Message, d.Codemod)
}

// NewDiagnostic reports a message at node.
func NewDiagnostic(codemod string, node *syntax.Node, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Codemod: codemod, Path: node.Document().Path(), Line: node.Line(), Message: fmt.Sprintf(format, args...)}
}

// Factory creates a configured codemod.
type Factory func(params Params) (Codemod, error)

type entry struct {
	description string
	factory     Factory
}

// Registry maps codemod names to factories.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*entry{}}
}

// Register adds a codemod factory.
func (r *Registry) Register(name, description string, factory Factory) {
	r.entries[name] = &entry{description: description, factory: factory}
}

// New creates the named codemod.
func (r *Registry) New(name string, params Params) (Codemod, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown codemod: %s", name)
	}
	mod, err := e.factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create codemod %s: %w", name, err)
	}
	return mod, nil
}

// Names returns registered names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the description of a registered codemod.
func (r *Registry) Description(name string) string {
	if e, ok := r.entries[name]; ok {
		return e.description
	}
	return ""
}
