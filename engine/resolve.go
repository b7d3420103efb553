package engine

import (
	"strings"

	"github.com/viant/codemod/syntax"
)

// MaxDepth bounds reference chains followed by Resolve.
const MaxDepth = 64

type visit struct {
	start int
	end   int
	typ   string
}

type resolver struct {
	visited map[visit]bool
}

// Resolve follows a reference chain to the node that produces its value:
// export assignments, property assignments and variable declarations yield
// their initializer, identifiers their first definition, calls stop the walk.
// Cycles and chains deeper than MaxDepth end at the last node reached.
// The tree is never modified.
func Resolve(node *syntax.Node) *syntax.Node {
	r := &resolver{visited: map[visit]bool{}}
	return r.resolve(node, 0)
}

func (r *resolver) resolve(node *syntax.Node, depth int) *syntax.Node {
	if node == nil || !node.Valid() {
		return node
	}
	key := visit{start: node.Start(), end: node.End(), typ: node.Type()}
	if r.visited[key] || depth >= MaxDepth {
		return node
	}
	r.visited[key] = true
	switch node.Kind() {
	case syntax.ExportAssignment:
		if value := node.Field("value"); value != nil {
			return r.resolve(value, depth+1)
		}
	case syntax.PropertyAssignment, syntax.VariableDeclaration:
		if value := node.Field("value"); value != nil {
			return r.resolve(value, depth+1)
		}
	case syntax.Identifier, syntax.ShorthandProperty:
		if definitions := node.Document().Symbols().Definitions(node); len(definitions) > 0 {
			return r.resolve(definitions[0], depth+1)
		}
	case syntax.CallExpression:
		// terminal
	}
	return node
}

// ResolveSymbol resolves the first declaration of a symbol.
func ResolveSymbol(symbol *syntax.Symbol) (*syntax.Node, error) {
	if symbol == nil {
		return nil, &PreconditionError{Expected: "symbol", Context: "resolve"}
	}
	if len(symbol.Declarations) == 0 {
		return nil, &PreconditionError{Expected: "declaration", Context: "symbol " + symbol.Name}
	}
	return Resolve(symbol.Declarations[0]), nil
}

// ResolveAs resolves node and requires the result to be one of kinds.
func ResolveAs(node *syntax.Node, context string, kinds ...syntax.Kind) (*syntax.Node, error) {
	resolved := Resolve(node)
	if resolved != nil && resolved.Is(kinds...) {
		return resolved, nil
	}
	actual := "nothing"
	if resolved != nil {
		actual = resolved.Kind().String()
	}
	return nil, &PreconditionError{Expected: expected(kinds), Actual: actual, Context: context}
}

func expected(kinds []syntax.Kind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}
	return strings.Join(names, " or ")
}
