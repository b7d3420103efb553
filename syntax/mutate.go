package syntax

import (
	"fmt"
	"strings"
)

func delimiters(container *Node) (string, string) {
	switch container.Type() {
	case "array":
		return "[", "]"
	case "arguments", "formal_parameters":
		return "(", ")"
	}
	return "{ ", " }"
}

// AddEntry appends entry to an object literal, binding pattern, array,
// named import list, argument list or parameter list. Multi-line containers
// receive the entry on its own line with the indentation of the last entry.
func (d *Document) AddEntry(container *Node, entry string) error {
	if !container.Valid() {
		return ErrDetached
	}
	entries := container.Children()
	if len(entries) == 0 {
		open, closing := delimiters(container)
		return d.Replace(container, open+entry+closing)
	}
	first, last := entries[0], entries[len(entries)-1]
	separator := ", "
	if strings.Contains(d.Slice(container.Start(), first.Start()), "\n") {
		separator = ",\n" + last.Indent()
	}
	if last.Type() == "rest_pattern" {
		return d.InsertAt(last.Start(), entry+separator)
	}
	return d.InsertAt(last.End(), separator+entry)
}

// RemoveExportModifier strips the export keyword from an exported declaration.
func (d *Document) RemoveExportModifier(stmt *Node) error {
	if stmt.Type() != "export_statement" {
		return fmt.Errorf("expected export statement, got %v", stmt.Kind())
	}
	decl := stmt.Field("declaration")
	if decl == nil {
		return fmt.Errorf("export statement has no declaration: %v", stmt)
	}
	return d.Apply(Edit{Start: stmt.Start(), End: decl.Start()})
}

// RemoveStatement deletes a statement together with its line break.
func (d *Document) RemoveStatement(stmt *Node) error {
	if !stmt.Valid() {
		return ErrDetached
	}
	start, end := stmt.Start(), stmt.End()
	limit := len(d.src) - d.suffix
	if end < limit && d.src[end] == '\n' {
		end++
	}
	return d.Apply(Edit{Start: start, End: end})
}

// AppendStatement appends a statement at the end of the program.
func (d *Document) AppendStatement(text string) error {
	end := len(d.src) - d.suffix
	lead := ""
	if end > d.prefix && d.src[end-1] != '\n' {
		lead = "\n"
	}
	return d.InsertAt(end, lead+text+"\n")
}

// Terminate appends a semicolon when the document uses them.
func (d *Document) Terminate(text string) string {
	return terminate(text, d.Style())
}

// Imports returns the import declarations of the program.
func (d *Document) Imports() []*Node {
	var result []*Node
	for _, stmt := range d.Root().Children() {
		if stmt.Kind() == ImportDeclaration {
			result = append(result, stmt)
		}
	}
	return result
}

// EnsureNamedImport makes name importable from module by extending an
// existing value import or adding a new declaration.
func (d *Document) EnsureNamedImport(module, name string) error {
	imports := d.Imports()
	for _, decl := range imports {
		if ModuleSource(decl) != module || decl.HasToken("type") {
			continue
		}
		var clause *Node
		for _, child := range decl.Children() {
			if child.Kind() == ImportClause {
				clause = child
			}
		}
		if clause == nil {
			continue
		}
		parts := clause.Children()
		for _, part := range parts {
			if part.Kind() == NamedImports {
				if Property(part, name) != nil {
					return nil
				}
				return d.AddEntry(part, name)
			}
		}
		if len(parts) == 1 && parts[0].Kind() == Identifier {
			return d.InsertAt(parts[0].End(), ", { "+name+" }")
		}
	}
	text := d.Terminate("import { " + name + " } from " + Quote(module, d.Style().Quote))
	if len(imports) > 0 {
		return d.InsertAt(imports[len(imports)-1].End(), "\n"+text)
	}
	return d.InsertAt(d.prefix, text+"\n\n")
}
