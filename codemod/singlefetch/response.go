package singlefetch

import (
	"errors"
	"strings"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const (
	responseName = "response"
	argsName     = "args"
)

var defaultExports = []string{"loader", "action"}

// responseCodemod turns response helper calls inside loader and action
// exports into plain return values plus statements on the single fetch
// response stub passed in the function arguments.
type responseCodemod struct {
	name     string
	callees  []string
	kind     syntax.Kind
	redirect bool
	exports  []string
}

func (c *responseCodemod) Name() string { return c.name }

func (c *responseCodemod) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !codemod.IsRouteModule(doc) {
		return nil, nil
	}
	result := &codemod.Result{}
	rewritten := false
	for _, name := range c.exports {
		symbol := doc.Symbols().Export(name)
		if symbol == nil {
			continue
		}
		fn, err := engine.ResolveSymbol(symbol)
		if err != nil {
			return nil, err
		}
		if !codemod.IsFunction(fn) {
			continue
		}
		r := &rewriter{codemod: c, doc: doc, fn: fn, export: name}
		changed, err := r.run()
		if err != nil {
			return nil, err
		}
		rewritten = rewritten || changed
		result.Diagnostics = append(result.Diagnostics, r.diagnostics...)
	}
	if !rewritten && len(result.Diagnostics) == 0 {
		return nil, nil
	}
	result.Text = doc.Text()
	return result, nil
}

func (c *responseCodemod) matches(node *syntax.Node) bool {
	if node.Kind() != c.kind {
		return false
	}
	callee := syntax.Callee(node)
	for _, candidate := range c.callees {
		if callee == candidate {
			return true
		}
	}
	return false
}

type rewriter struct {
	codemod     *responseCodemod
	doc         *syntax.Document
	fn          *syntax.Node
	export      string
	skipped     []*syntax.Node
	accessor    syntax.Expr
	diagnostics []codemod.Diagnostic
}

func (r *rewriter) run() (bool, error) {
	changed := false
	for {
		call := r.next()
		if call == nil {
			return changed, nil
		}
		done, err := r.rewrite(call)
		if err != nil {
			return changed, err
		}
		if !done {
			r.skipped = append(r.skipped, call)
			continue
		}
		changed = true
	}
}

// next returns the first helper call in the function not yet skipped.
func (r *rewriter) next() *syntax.Node {
	for _, node := range r.fn.Descendants(r.codemod.kind) {
		if !r.codemod.matches(node) || r.isSkipped(node) {
			continue
		}
		return node
	}
	return nil
}

func (r *rewriter) isSkipped(node *syntax.Node) bool {
	for _, skipped := range r.skipped {
		if skipped.Same(node) {
			return true
		}
	}
	return false
}

func (r *rewriter) report(node *syntax.Node, format string, args ...interface{}) {
	r.diagnostics = append(r.diagnostics, codemod.NewDiagnostic(r.codemod.name, node, format, args...))
}

func (r *rewriter) rewrite(call *syntax.Node) (bool, error) {
	if r.codemod.kind == syntax.NewExpression && isThrown(call) {
		return false, nil
	}
	args := syntax.Args(call)
	var body, options *syntax.Node
	if len(args) > 0 {
		body = args[0]
	}
	if len(args) > 1 {
		options = args[1]
	}
	plan := r.plan(call, body, options)
	if !plan.empty() {
		point, err := engine.FindInsertionPoint(call)
		if err != nil {
			var insertion *engine.InsertionError
			if errors.As(err, &insertion) {
				r.report(call, "left %s untouched: %v", syntax.Callee(call), insertion.Reason)
				return false, nil
			}
			return false, err
		}
		if !codemod.EnclosingFunction(point.Pivot).Same(codemod.EnclosingFunction(call)) {
			r.report(call, "left %s untouched: call is in a nested function without a block body", syntax.Callee(call))
			return false, nil
		}
		accessor, err := r.response()
		if err != nil {
			var collision *engine.CollisionError
			if errors.As(err, &collision) {
				r.report(call, "left %s untouched: %v", syntax.Callee(call), collision)
				return false, nil
			}
			return false, err
		}
		if err := point.Insert(plan.statements(syntax.NonNull(accessor))...); err != nil {
			return false, err
		}
	}
	return true, r.replace(call, body)
}

// response makes the response stub reachable from the function and returns
// the expression that accesses it.
func (r *rewriter) response() (syntax.Expr, error) {
	if r.accessor != nil {
		return r.accessor, nil
	}
	if param := r.fn.Field("parameter"); param != nil {
		r.accessor = syntax.Member(syntax.Ident(param.Text()), responseName)
		return r.accessor, nil
	}
	params := r.fn.Field("parameters")
	if params == nil {
		return nil, &engine.PreconditionError{Expected: "parameter list", Actual: r.fn.Kind().String(), Context: r.export}
	}
	list := params.Children()
	if len(list) == 0 {
		name := engine.FreeName(r.fn, argsName)
		param := name
		if r.doc.Dialect().Typed() {
			param += ": " + argsType(r.export)
		}
		if err := r.doc.AddEntry(params, param); err != nil {
			return nil, err
		}
		r.accessor = syntax.Member(syntax.Ident(name), responseName)
		return r.accessor, nil
	}
	first := list[0]
	pattern := first
	if first.Kind() == syntax.Parameter {
		pattern = first.Field("pattern")
	}
	switch {
	case pattern == nil:
	case pattern.Kind() == syntax.ObjectBindingPattern:
		if element := syntax.Property(pattern, responseName); element != nil {
			local := boundName(element)
			if local == "" {
				return nil, &engine.PreconditionError{Expected: "identifier binding", Actual: element.Text(), Context: r.export + " " + responseName + " parameter"}
			}
			r.accessor = syntax.Ident(local)
			return r.accessor, nil
		}
		if _, err := engine.AvoidCollision(r.fn, responseName); err != nil {
			return nil, err
		}
		if err := engine.EnsureProperty(pattern, responseName); err != nil {
			return nil, err
		}
		r.accessor = syntax.Ident(responseName)
		return r.accessor, nil
	case pattern.Kind() == syntax.Identifier:
		r.accessor = syntax.Member(syntax.Ident(pattern.Text()), responseName)
		return r.accessor, nil
	}
	return nil, &engine.PreconditionError{Expected: "identifier or object binding pattern", Actual: first.Kind().String(), Context: r.export + " parameter"}
}

// boundName returns the local name an object pattern element binds, or ""
// when it destructures further.
func boundName(element *syntax.Node) string {
	if element.Type() != "pair_pattern" {
		return syntax.PropertyKey(element)
	}
	value := element.Field("value")
	if value != nil && value.Type() == "assignment_pattern" {
		value = value.Field("left")
	}
	if value == nil || value.Type() != "identifier" {
		return ""
	}
	return value.Text()
}

func argsType(export string) string {
	if export == "action" {
		return "ActionFunctionArgs"
	}
	return "LoaderFunctionArgs"
}

// replace substitutes the helper call with its payload, or with the response
// stub for redirects.
func (r *rewriter) replace(call, body *syntax.Node) error {
	var text string
	switch {
	case r.codemod.redirect:
		accessor, err := r.response()
		if err != nil {
			return err
		}
		text = r.doc.RenderExpr(accessor)
	case body != nil:
		text = body.Text()
	case r.codemod.kind == syntax.NewExpression:
		text = "null"
	default:
		text = "{}"
	}
	if strings.HasPrefix(text, "{") && needsParens(call) {
		text = "(" + text + ")"
	}
	return r.doc.Replace(call, text)
}

// needsParens reports whether an object literal replacing call would be
// read as a block.
func needsParens(call *syntax.Node) bool {
	parent := call.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case syntax.ExpressionStatement:
		return true
	case syntax.ArrowFunction:
		body := parent.Field("body")
		return body != nil && body.Same(call)
	}
	return false
}

func isThrown(node *syntax.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case syntax.ParenthesizedExpression, syntax.AsExpression, syntax.NonNullExpression:
			continue
		case syntax.ThrowStatement:
			return true
		}
		return false
	}
	return false
}
