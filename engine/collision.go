package engine

import (
	"strconv"

	"github.com/viant/codemod/syntax"
)

var bindingTypes = []string{"identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern"}

// Occurrences returns identifier and shorthand occurrences of name within
// scope that are bound by a declaration inside scope.
func Occurrences(scope *syntax.Node, name string) []*syntax.Node {
	inner, _ := partition(scope, name)
	return inner
}

// OuterReferences returns occurrences of name within scope bound outside it
// or not declared at all.
func OuterReferences(scope *syntax.Node, name string) []*syntax.Node {
	_, outer := partition(scope, name)
	return outer
}

func partition(scope *syntax.Node, name string) (inner, outer []*syntax.Node) {
	table := scope.Document().Symbols()
	for _, node := range named(scope, name) {
		declared := table.DeclaringScope(node)
		if declared != nil && declared.Start >= scope.Start() && declared.End <= scope.End() {
			inner = append(inner, node)
			continue
		}
		outer = append(outer, node)
	}
	return inner, outer
}

func named(scope *syntax.Node, name string) []*syntax.Node {
	var result []*syntax.Node
	for _, node := range scope.DescendantsOfType(bindingTypes...) {
		if node.Text() == name {
			result = append(result, node)
		}
	}
	return result
}

// AvoidCollision renames every occurrence of name bound in scope to the
// first free name2, name3, ... in one batch, keeping shorthand object shapes
// intact. It returns the new name, or "" when name was not used. A reference
// to an outer binding of name yields a *CollisionError and nothing is
// renamed. Call it before the binding that needs name is introduced.
func AvoidCollision(scope *syntax.Node, name string) (string, error) {
	occurrences, outer := partition(scope, name)
	if len(outer) > 0 {
		return "", &CollisionError{Name: name, Line: outer[0].Line()}
	}
	if len(occurrences) == 0 {
		return "", nil
	}
	replacement := suffixed(scope, name)
	edits := make([]syntax.Edit, 0, len(occurrences))
	for _, node := range occurrences {
		text := replacement
		if node.Type() != "identifier" {
			text = name + ": " + replacement
		}
		edits = append(edits, syntax.Edit{Start: node.Start(), End: node.End(), Text: text})
	}
	if err := scope.Document().Apply(edits...); err != nil {
		return "", err
	}
	return replacement, nil
}

// FreeName returns name when scope does not use it, otherwise the first
// unused name2, name3, ... Nothing is renamed.
func FreeName(scope *syntax.Node, name string) string {
	if len(named(scope, name)) == 0 {
		return name
	}
	return suffixed(scope, name)
}

func suffixed(scope *syntax.Node, name string) string {
	used := map[string]bool{}
	for _, node := range scope.DescendantsOfType(bindingTypes...) {
		used[node.Text()] = true
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}
