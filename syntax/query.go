package syntax

import (
	"strconv"
	"strings"
)

// Callee returns the text of a call or new expression target.
func Callee(call *Node) string {
	var target *Node
	switch call.Kind() {
	case CallExpression:
		target = call.Field("function")
	case NewExpression:
		target = call.Field("constructor")
	}
	if target == nil {
		return ""
	}
	return target.Text()
}

// Args returns call or new expression arguments.
func Args(call *Node) []*Node {
	if args := call.Field("arguments"); args != nil {
		return args.Children()
	}
	return nil
}

// Entries returns the members of an object literal, binding pattern,
// array or named import list.
func Entries(container *Node) []*Node {
	return container.Children()
}

// PropertyKey returns the static name of an object member or binding element.
func PropertyKey(entry *Node) string {
	switch entry.Type() {
	case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		return entry.Text()
	case "pair", "pair_pattern", "method_definition":
		key := entry.Field("key")
		if key == nil {
			key = entry.Field("name")
		}
		if key == nil {
			return ""
		}
		switch key.Type() {
		case "string":
			return Unquote(key.Text())
		case "computed_property_name":
			return ""
		}
		return key.Text()
	case "object_assignment_pattern":
		if left := entry.Field("left"); left != nil {
			return left.Text()
		}
	case "import_specifier", "export_specifier":
		if name := entry.Field("name"); name != nil {
			return name.Text()
		}
	}
	return ""
}

// Property returns the member of an object literal or pattern with the given key.
func Property(container *Node, key string) *Node {
	for _, entry := range Entries(container) {
		if PropertyKey(entry) == key {
			return entry
		}
	}
	return nil
}

// Value returns the initializer of a property assignment, shorthand
// properties yield the property itself.
func Value(entry *Node) *Node {
	switch entry.Kind() {
	case PropertyAssignment:
		return entry.Field("value")
	case ShorthandProperty:
		return entry
	}
	return nil
}

// Unwrap strips parentheses, type assertions and non-null assertions.
func Unwrap(node *Node) *Node {
	for node != nil {
		switch node.Kind() {
		case ParenthesizedExpression, NonNullExpression, AsExpression:
			node = node.Child(0)
		default:
			return node
		}
	}
	return node
}

// Unquote strips string literal quotes.
func Unquote(literal string) string {
	if len(literal) >= 2 {
		first, last := literal[0], literal[len(literal)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			if first == '"' {
				if value, err := strconv.Unquote(literal); err == nil {
					return value
				}
			}
			return literal[1 : len(literal)-1]
		}
	}
	return literal
}

// Quote renders value as a string literal with the given quote character.
func Quote(value string, quote byte) string {
	if quote == '"' {
		return strconv.Quote(value)
	}
	q := string(quote)
	replacer := strings.NewReplacer(`\`, `\\`, q, `\`+q, "\n", `\n`)
	return q + replacer.Replace(value) + q
}

// ModuleSource returns the unquoted module specifier of an import declaration.
func ModuleSource(decl *Node) string {
	if source := decl.Field("source"); source != nil {
		return Unquote(source.Text())
	}
	return ""
}

// Statement returns the closest ancestor-or-self that is a direct statement
// of a block or the program.
func Statement(node *Node) *Node {
	for cur := node; cur != nil; cur = cur.Parent() {
		parent := cur.Parent()
		if parent != nil && parent.Is(Block, Program) {
			return cur
		}
	}
	return nil
}
