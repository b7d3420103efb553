package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Scope is a lexical region holding declared names.
type Scope struct {
	Kind    string // "module", "function", "block", "class"
	Parent  *Scope
	Start   int
	End     int
	Symbols map[string]*Symbol
	order   []string
	nested  []*Scope
}

// Symbol is a named binding with its declarations in source order.
type Symbol struct {
	Name         string
	Declarations []*Node
}

func newScope(kind string, parent *Scope, raw *sitter.Node) *Scope {
	scope := &Scope{Kind: kind, Parent: parent, Start: int(raw.StartByte()), End: int(raw.EndByte()), Symbols: map[string]*Symbol{}}
	if parent != nil {
		parent.nested = append(parent.nested, scope)
	}
	return scope
}

func (s *Scope) declare(name string, decl *Node) {
	if name == "" {
		return
	}
	symbol, ok := s.Symbols[name]
	if !ok {
		symbol = &Symbol{Name: name}
		s.Symbols[name] = symbol
		s.order = append(s.order, name)
	}
	symbol.Declarations = append(symbol.Declarations, decl)
}

// Lookup finds name in the scope chain.
func (s *Scope) Lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.Parent {
		if symbol, ok := cur.Symbols[name]; ok {
			return symbol
		}
	}
	return nil
}

// Names returns names declared directly in the scope in declaration order.
func (s *Scope) Names() []string {
	return s.order
}

// innermost returns the deepest scope containing offset.
func (s *Scope) innermost(offset int) *Scope {
	for _, child := range s.nested {
		if child.Start <= offset && offset < child.End {
			return child.innermost(offset)
		}
	}
	return s
}

// functionScope returns the closest function or module scope, where var
// declarations are hoisted.
func (s *Scope) functionScope() *Scope {
	cur := s
	for cur.Parent != nil && cur.Kind != "function" {
		cur = cur.Parent
	}
	return cur
}
