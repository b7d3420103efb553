package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a handle to a tree node. Handles survive document edits: they
// re-anchor to the node occupying the remapped span, or become detached when
// an edit overwrote part of their span.
type Node struct {
	doc   *Document
	gen   int
	raw   *sitter.Node
	start int
	end   int
	typ   string
}

func (d *Document) wrap(raw *sitter.Node) *Node {
	if raw == nil {
		return nil
	}
	return &Node{doc: d, gen: d.gen, raw: raw, start: int(raw.StartByte()), end: int(raw.EndByte()), typ: raw.Type()}
}

func (n *Node) sync() bool {
	if n == nil {
		return false
	}
	if n.gen == n.doc.gen {
		return n.raw != nil
	}
	if n.raw == nil {
		n.gen = n.doc.gen
		return false
	}
	start, end, ok := n.doc.remap(n.gen, n.start, n.end)
	n.gen = n.doc.gen
	if !ok {
		n.raw = nil
		return false
	}
	n.raw = n.doc.lookup(start, end, n.typ)
	if n.raw == nil {
		return false
	}
	n.start, n.end, n.typ = start, end, n.raw.Type()
	return true
}

// Valid reports whether the node still maps to the current tree.
func (n *Node) Valid() bool {
	return n.sync()
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Type returns the grammar node type.
func (n *Node) Type() string {
	if !n.sync() {
		return ""
	}
	return n.typ
}

// Kind classifies the node.
func (n *Node) Kind() Kind {
	if !n.sync() {
		return Unknown
	}
	if n.typ == "export_statement" {
		if n.raw.ChildByFieldName("value") != nil {
			return ExportAssignment
		}
		return ExportDeclaration
	}
	return kindByType[n.typ]
}

// Is reports whether the node is one of kinds.
func (n *Node) Is(kinds ...Kind) bool {
	k := n.Kind()
	for _, candidate := range kinds {
		if k == candidate {
			return true
		}
	}
	return false
}

func (n *Node) Start() int {
	n.sync()
	return n.start
}

func (n *Node) End() int {
	n.sync()
	return n.end
}

// Text returns the node source.
func (n *Node) Text() string {
	if !n.sync() {
		return ""
	}
	return string(n.doc.src[n.start:n.end])
}

// Line returns the 1-based line the node starts on.
func (n *Node) Line() int {
	return n.doc.Line(n.Start())
}

// Indent returns the indentation of the line the node starts on.
func (n *Node) Indent() string {
	return n.doc.LineIndent(n.Start())
}

// Parent returns the parent node or nil for the root.
func (n *Node) Parent() *Node {
	if !n.sync() {
		return nil
	}
	return n.doc.wrap(n.raw.Parent())
}

// Field returns the child stored under a grammar field name.
func (n *Node) Field(name string) *Node {
	if !n.sync() {
		return nil
	}
	return n.doc.wrap(n.raw.ChildByFieldName(name))
}

// Children returns named children, comments excluded.
func (n *Node) Children() []*Node {
	if !n.sync() {
		return nil
	}
	var result []*Node
	for i := 0; i < int(n.raw.NamedChildCount()); i++ {
		child := n.raw.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		result = append(result, n.doc.wrap(child))
	}
	return result
}

// Child returns the i-th named child, comments excluded.
func (n *Node) Child(i int) *Node {
	children := n.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// HasToken reports whether an anonymous child token such as "default" or
// "export" is present.
func (n *Node) HasToken(token string) bool {
	return n.Token(token) != nil
}

// Token returns the first anonymous child token with the given text.
func (n *Node) Token(token string) *Node {
	if !n.sync() {
		return nil
	}
	for i := 0; i < int(n.raw.ChildCount()); i++ {
		child := n.raw.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return n.doc.wrap(child)
		}
	}
	return nil
}

// Descendants returns named descendants in source order, optionally
// restricted to kinds.
func (n *Node) Descendants(kinds ...Kind) []*Node {
	if !n.sync() {
		return nil
	}
	var result []*Node
	var visit func(raw *sitter.Node)
	visit = func(raw *sitter.Node) {
		for i := 0; i < int(raw.NamedChildCount()); i++ {
			child := raw.NamedChild(i)
			if child == nil {
				continue
			}
			node := n.doc.wrap(child)
			if len(kinds) == 0 || node.Is(kinds...) {
				result = append(result, node)
			}
			visit(child)
		}
	}
	visit(n.raw)
	return result
}

// DescendantsOfType returns named descendants whose grammar type is one of types.
func (n *Node) DescendantsOfType(types ...string) []*Node {
	var result []*Node
	for _, node := range n.Descendants() {
		for _, typ := range types {
			if node.typ == typ {
				result = append(result, node)
				break
			}
		}
	}
	return result
}

// FirstAncestor returns the closest ancestor matching predicate.
func (n *Node) FirstAncestor(predicate func(*Node) bool) *Node {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if predicate(cur) {
			return cur
		}
	}
	return nil
}

// AncestorOfKind returns the closest ancestor of one of kinds.
func (n *Node) AncestorOfKind(kinds ...Kind) *Node {
	return n.FirstAncestor(func(node *Node) bool { return node.Is(kinds...) })
}

// Contains reports whether other lies within the node span.
func (n *Node) Contains(other *Node) bool {
	return n.Start() <= other.Start() && other.End() <= n.End()
}

// Same reports whether both handles denote the same node.
func (n *Node) Same(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !n.sync() || !other.sync() {
		return false
	}
	return n.doc == other.doc && n.start == other.start && n.end == other.end && n.typ == other.typ
}

func (n *Node) String() string {
	if !n.sync() {
		return "<detached>"
	}
	return n.Kind().String() + "(" + snippet(n.Text()) + ")"
}

func snippet(text string) string {
	const limit = 40
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
