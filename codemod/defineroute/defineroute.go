// Package defineroute moves route module exports into a single
// export default defineRoute({ ... }) call.
package defineroute

import (
	"strings"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const (
	Name       = "remix/2/route-exports-to-define-route"
	callee     = "defineRoute"
	module     = "@remix-run/react"
	component  = "Component"
	descriptor = "move loader, action and the default component into defineRoute()"
)

var defaultExports = []string{"loader", "action"}

// Register adds the codemod to registry.
func Register(registry *codemod.Registry) {
	registry.Register(Name, descriptor, New)
}

type defineRoute struct {
	exports map[string]bool
}

// New creates the codemod; the exports param lists the named exports to move.
func New(params codemod.Params) (codemod.Codemod, error) {
	ret := &defineRoute{exports: map[string]bool{}}
	for _, name := range params.Strings("exports", defaultExports) {
		ret.exports[name] = true
	}
	return ret, nil
}

func (c *defineRoute) Name() string { return Name }

func (c *defineRoute) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !codemod.InRoutes(doc) {
		return nil, nil
	}
	table := doc.Symbols()
	var entries []string
	var statements []*syntax.Node
	for _, symbol := range table.Exports() {
		if !c.exports[symbol.Name] {
			continue
		}
		stmt := exportStatement(symbol)
		if stmt == nil {
			continue
		}
		entries = append(entries, symbol.Name)
		if !contains(statements, stmt) {
			statements = append(statements, stmt)
		}
	}
	plan, err := c.planDefault(doc, table.DefaultExport())
	if err != nil {
		return nil, err
	}
	if plan.entry != "" {
		entries = append(entries, plan.entry)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	for _, stmt := range statements {
		if err := doc.RemoveExportModifier(stmt); err != nil {
			return nil, err
		}
	}
	if plan.apply != nil {
		if err := plan.apply(); err != nil {
			return nil, err
		}
	}
	if err := c.addEntries(doc, plan.call, entries); err != nil {
		return nil, err
	}
	if err := doc.EnsureNamedImport(module, callee); err != nil {
		return nil, err
	}
	return &codemod.Result{Text: doc.Text()}, nil
}

// defaultPlan describes how the default export is folded into defineRoute.
type defaultPlan struct {
	call  *syntax.Node
	entry string
	apply func() error
}

func (c *defineRoute) planDefault(doc *syntax.Document, symbol *syntax.Symbol) (*defaultPlan, error) {
	plan := &defaultPlan{}
	if symbol == nil {
		return plan, nil
	}
	target, err := engine.ResolveSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if target.Kind() == syntax.CallExpression {
		if syntax.Callee(target) != callee {
			return nil, &engine.PreconditionError{Expected: callee + "() call", Actual: syntax.Callee(target) + "()", Context: "default export"}
		}
		plan.call = target
		return plan, nil
	}
	if !codemod.IsFunction(target) {
		return nil, &engine.PreconditionError{Expected: "component function or " + callee + "() call", Actual: target.Kind().String(), Context: "default export"}
	}
	decl := symbol.Declarations[0]
	switch decl.Kind() {
	case syntax.FunctionDeclaration:
		name := decl.Field("name")
		stmt := decl.Parent()
		plan.entry = entry(name.Text())
		plan.apply = func() error { return doc.RemoveExportModifier(stmt) }
	case syntax.ExportAssignment:
		stmt := decl
		value := syntax.Unwrap(stmt.Field("value"))
		if value.Kind() == syntax.Identifier {
			plan.entry = entry(value.Text())
			plan.apply = func() error { return doc.RemoveStatement(stmt) }
			return plan, nil
		}
		name := engine.FreeName(doc.Root(), component)
		plan.entry = entry(name)
		plan.apply = func() error { return nameComponent(doc, stmt, value, name) }
	default:
		return nil, &engine.PreconditionError{Expected: "default export declaration", Actual: decl.Kind().String(), Context: "default export"}
	}
	return plan, nil
}

// nameComponent turns an anonymous default export into a named declaration.
func nameComponent(doc *syntax.Document, stmt, value *syntax.Node, name string) error {
	if value.Kind() == syntax.FunctionExpression && value.Field("name") == nil {
		keyword := value.Token("function")
		if keyword == nil {
			return &engine.PreconditionError{Expected: "function keyword", Actual: value.String(), Context: "default export"}
		}
		return doc.Apply(
			syntax.Edit{Start: stmt.Start(), End: value.Start()},
			syntax.Edit{Start: keyword.End(), End: keyword.End(), Text: " " + name},
		)
	}
	return doc.Apply(syntax.Edit{Start: stmt.Start(), End: value.Start(), Text: "const " + name + " = "})
}

func (c *defineRoute) addEntries(doc *syntax.Document, call *syntax.Node, entries []string) error {
	if call == nil {
		text := doc.Terminate("export default " + callee + "({ " + strings.Join(entries, ", ") + " })")
		if !strings.HasSuffix(doc.Text(), "\n\n") {
			text = "\n" + text
		}
		return doc.AppendStatement(text)
	}
	args := syntax.Args(call)
	if len(args) == 0 {
		return doc.AddEntry(call.Field("arguments"), "{ "+strings.Join(entries, ", ")+" }")
	}
	object, err := engine.ResolveAs(args[0], callee+"() argument", syntax.ObjectLiteral)
	if err != nil {
		return err
	}
	for _, item := range entries {
		key, _, _ := strings.Cut(item, ":")
		if syntax.Property(object, key) != nil {
			continue
		}
		if err := doc.AddEntry(object, item); err != nil {
			return err
		}
	}
	return nil
}

// exportStatement returns the export statement declaring symbol, or nil for
// clause exports.
func exportStatement(symbol *syntax.Symbol) *syntax.Node {
	if len(symbol.Declarations) == 0 {
		return nil
	}
	stmt := symbol.Declarations[0].FirstAncestor(func(n *syntax.Node) bool { return n.Type() == "export_statement" })
	if stmt == nil || stmt.Field("declaration") == nil {
		return nil
	}
	return stmt
}

func entry(name string) string {
	if name == component {
		return component
	}
	return component + ": " + name
}

func contains(nodes []*syntax.Node, node *syntax.Node) bool {
	for _, candidate := range nodes {
		if candidate.Same(node) {
			return true
		}
	}
	return false
}
