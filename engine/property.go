package engine

import (
	"github.com/viant/codemod/syntax"
)

// objectOf returns target when it is an object literal or binding pattern,
// otherwise its first object binding pattern descendant.
func objectOf(target *syntax.Node) *syntax.Node {
	if target == nil {
		return nil
	}
	if target.Is(syntax.ObjectLiteral, syntax.ObjectBindingPattern) {
		return target
	}
	if patterns := target.Descendants(syntax.ObjectBindingPattern); len(patterns) > 0 {
		return patterns[0]
	}
	return nil
}

// EnsureProperty appends name to the object literal or destructuring
// pattern denoted by target. Existing entries are not checked, see HasProperty.
func EnsureProperty(target *syntax.Node, name string) error {
	object := objectOf(target)
	if object == nil {
		actual := "nothing"
		if target != nil {
			actual = target.Kind().String()
		}
		return &PreconditionError{Expected: "object literal or binding pattern", Actual: actual, Context: "add property " + name}
	}
	return object.Document().AddEntry(object, name)
}

// HasProperty reports whether the object denoted by target has an entry named name.
func HasProperty(target *syntax.Node, name string) bool {
	object := objectOf(target)
	return object != nil && syntax.Property(object, name) != nil
}
