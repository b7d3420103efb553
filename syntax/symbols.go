package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Table is the symbol table of one document generation.
type Table struct {
	doc     *Document
	gen     int
	Module  *Scope
	exports []*Symbol
	byName  map[string]*Symbol
}

// Symbols returns the symbol table for the current tree, binding it on first use.
func (d *Document) Symbols() *Table {
	if d.table == nil {
		d.table = bind(d)
	}
	return d.table
}

func (t *Table) current() *Table {
	if t.gen == t.doc.gen {
		return t
	}
	return t.doc.Symbols()
}

// Definitions returns the declarations visible for an identifier at its position.
func (t *Table) Definitions(id *Node) []*Node {
	t = t.current()
	if !id.Valid() {
		return nil
	}
	scope := t.Module.innermost(id.Start())
	if symbol := scope.Lookup(id.Text()); symbol != nil {
		return symbol.Declarations
	}
	return nil
}

// DeclaringScope returns the scope declaring the name visible at id, or nil
// when the name is not declared in the document.
func (t *Table) DeclaringScope(id *Node) *Scope {
	t = t.current()
	if !id.Valid() {
		return nil
	}
	name := id.Text()
	for cur := t.Module.innermost(id.Start()); cur != nil; cur = cur.Parent {
		if _, ok := cur.Symbols[name]; ok {
			return cur
		}
	}
	return nil
}

// ScopeAt returns the innermost scope holding offset.
func (t *Table) ScopeAt(offset int) *Scope {
	return t.current().Module.innermost(offset)
}

// Exports returns export symbols in source order.
func (t *Table) Exports() []*Symbol {
	return t.current().exports
}

// Export returns the export symbol with the given exported name.
func (t *Table) Export(name string) *Symbol {
	return t.current().byName[name]
}

// DefaultExport returns the default export symbol or nil.
func (t *Table) DefaultExport() *Symbol {
	return t.Export("default")
}

func (t *Table) export(name string, decls ...*Node) {
	if name == "" {
		return
	}
	if symbol, ok := t.byName[name]; ok {
		symbol.Declarations = append(symbol.Declarations, decls...)
		return
	}
	symbol := &Symbol{Name: name, Declarations: decls}
	t.byName[name] = symbol
	t.exports = append(t.exports, symbol)
}

type binder struct {
	doc *Document
}

func bind(d *Document) *Table {
	root := d.tree.RootNode()
	table := &Table{doc: d, gen: d.gen, byName: map[string]*Symbol{}}
	table.Module = newScope("module", nil, root)
	b := &binder{doc: d}
	b.visit(root, table.Module)
	table.collectExports(root)
	return table
}

func (b *binder) text(raw *sitter.Node) string {
	return raw.Content(b.doc.src)
}

func (b *binder) visit(raw *sitter.Node, scope *Scope) {
	for i := 0; i < int(raw.NamedChildCount()); i++ {
		b.node(raw.NamedChild(i), scope)
	}
}

func (b *binder) node(raw *sitter.Node, scope *Scope) {
	if raw == nil {
		return
	}
	switch raw.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := raw.ChildByFieldName("name"); name != nil {
			scope.declare(b.text(name), b.doc.wrap(raw))
		}
		b.function(raw, scope)
		return
	case "function_expression", "function", "generator_function", "arrow_function":
		inner := b.function(raw, scope)
		if name := raw.ChildByFieldName("name"); name != nil {
			inner.declare(b.text(name), b.doc.wrap(raw))
		}
		return
	case "method_definition":
		b.function(raw, scope)
		return
	case "class_declaration", "abstract_class_declaration", "class":
		if name := raw.ChildByFieldName("name"); name != nil && raw.Type() != "class" {
			scope.declare(b.text(name), b.doc.wrap(raw))
		}
		b.visit(raw, newScope("class", scope, raw))
		return
	case "variable_declarator":
		target := scope
		if parent := raw.Parent(); parent != nil && parent.Type() == "variable_declaration" {
			target = scope.functionScope()
		}
		b.pattern(raw.ChildByFieldName("name"), target, raw)
		b.node(raw.ChildByFieldName("value"), scope)
		return
	case "import_statement":
		b.imports(raw, scope)
		return
	case "statement_block":
		b.visit(raw, newScope("block", scope, raw))
		return
	case "for_statement", "for_in_statement":
		inner := newScope("block", scope, raw)
		if left := raw.ChildByFieldName("left"); left != nil && (hasToken(raw, "const") || hasToken(raw, "let") || hasToken(raw, "var")) {
			b.pattern(left, inner, left)
		}
		b.visit(raw, inner)
		return
	case "catch_clause":
		inner := newScope("block", scope, raw)
		b.pattern(raw.ChildByFieldName("parameter"), inner, raw)
		if body := raw.ChildByFieldName("body"); body != nil {
			b.visit(body, inner)
		}
		return
	}
	b.visit(raw, scope)
}

func (b *binder) function(raw *sitter.Node, scope *Scope) *Scope {
	inner := newScope("function", scope, raw)
	if params := raw.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			b.parameter(params.NamedChild(i), inner)
		}
	} else if param := raw.ChildByFieldName("parameter"); param != nil {
		b.pattern(param, inner, param)
	}
	body := raw.ChildByFieldName("body")
	if body == nil {
		return inner
	}
	if body.Type() == "statement_block" {
		b.visit(body, inner)
	} else {
		b.node(body, inner)
	}
	return inner
}

func (b *binder) parameter(raw *sitter.Node, scope *Scope) {
	if raw == nil {
		return
	}
	switch raw.Type() {
	case "required_parameter", "optional_parameter":
		b.pattern(raw.ChildByFieldName("pattern"), scope, raw)
		b.node(raw.ChildByFieldName("value"), scope)
	case "comment":
	default:
		b.pattern(raw, scope, raw)
	}
}

// pattern declares every name bound by a binding target.
func (b *binder) pattern(raw *sitter.Node, scope *Scope, decl *sitter.Node) {
	if raw == nil {
		return
	}
	switch raw.Type() {
	case "identifier":
		scope.declare(b.text(raw), b.doc.wrap(decl))
	case "shorthand_property_identifier_pattern":
		scope.declare(b.text(raw), b.doc.wrap(raw))
	case "object_pattern", "array_pattern":
		for i := 0; i < int(raw.NamedChildCount()); i++ {
			child := raw.NamedChild(i)
			b.pattern(child, scope, child)
		}
	case "pair_pattern":
		b.pattern(raw.ChildByFieldName("value"), scope, raw)
	case "object_assignment_pattern", "assignment_pattern":
		b.pattern(raw.ChildByFieldName("left"), scope, raw)
		b.node(raw.ChildByFieldName("right"), scope)
	case "rest_pattern":
		if raw.NamedChildCount() > 0 {
			b.pattern(raw.NamedChild(0), scope, raw)
		}
	}
}

func (b *binder) imports(raw *sitter.Node, scope *Scope) {
	for i := 0; i < int(raw.NamedChildCount()); i++ {
		clause := raw.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			child := clause.NamedChild(j)
			switch child.Type() {
			case "identifier":
				scope.declare(b.text(child), b.doc.wrap(child))
			case "namespace_import":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					if id := child.NamedChild(k); id.Type() == "identifier" {
						scope.declare(b.text(id), b.doc.wrap(child))
					}
				}
			case "named_imports":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					spec := child.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					if local != nil {
						scope.declare(b.text(local), b.doc.wrap(spec))
					}
				}
			}
		}
	}
}

func (t *Table) collectExports(root *sitter.Node) {
	src := t.doc.src
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" {
			continue
		}
		isDefault := hasToken(stmt, "default")
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			switch decl.Type() {
			case "lexical_declaration", "variable_declaration":
				for j := 0; j < int(decl.NamedChildCount()); j++ {
					declarator := decl.NamedChild(j)
					if declarator.Type() != "variable_declarator" {
						continue
					}
					if name := declarator.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
						t.export(name.Content(src), t.doc.wrap(declarator))
					}
				}
			default:
				name := "default"
				if !isDefault {
					if id := decl.ChildByFieldName("name"); id != nil {
						name = id.Content(src)
					}
				}
				t.export(name, t.doc.wrap(decl))
			}
			continue
		}
		if stmt.ChildByFieldName("value") != nil {
			t.export("default", t.doc.wrap(stmt))
			continue
		}
		fromSource := stmt.ChildByFieldName("source") != nil
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			clause := stmt.NamedChild(j)
			if clause.Type() != "export_clause" {
				continue
			}
			for k := 0; k < int(clause.NamedChildCount()); k++ {
				spec := clause.NamedChild(k)
				if spec.Type() != "export_specifier" {
					continue
				}
				local := spec.ChildByFieldName("name")
				if local == nil {
					continue
				}
				exported := local
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					exported = alias
				}
				decls := []*Node{t.doc.wrap(spec)}
				if !fromSource {
					if symbol, ok := t.Module.Symbols[local.Content(src)]; ok {
						decls = symbol.Declarations
					}
				}
				t.export(exported.Content(src), decls...)
			}
		}
	}
}

func hasToken(raw *sitter.Node, token string) bool {
	for i := 0; i < int(raw.ChildCount()); i++ {
		child := raw.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}
