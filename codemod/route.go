package codemod

import (
	"strings"

	"github.com/viant/codemod/syntax"
)

// IsRouteModule reports whether doc is a UI route: its path has a routes
// segment and it has a default export. Resource routes have no default export.
func IsRouteModule(doc *syntax.Document) bool {
	return InRoutes(doc) && doc.Symbols().DefaultExport() != nil
}

// InRoutes reports whether doc is a script under a routes directory.
func InRoutes(doc *syntax.Document) bool {
	return doc.Dialect() != syntax.JSON && strings.Contains(doc.Path(), "routes")
}

// HasSuffix reports whether the document path ends with one of suffixes.
func HasSuffix(doc *syntax.Document, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(doc.Path(), suffix) {
			return true
		}
	}
	return false
}

// IsFunction reports whether node is a function declaration, expression or arrow.
func IsFunction(node *syntax.Node) bool {
	return node != nil && node.Is(syntax.FunctionDeclaration, syntax.FunctionExpression, syntax.ArrowFunction)
}

// EnclosingFunction returns the closest function-like ancestor of node.
func EnclosingFunction(node *syntax.Node) *syntax.Node {
	return node.FirstAncestor(func(n *syntax.Node) bool { return n.Kind().IsFunctionLike() })
}
