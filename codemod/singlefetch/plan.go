package singlefetch

import (
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

type header struct {
	key   syntax.Expr
	value syntax.Expr
}

// responsePlan is the set of response stub statements derived from a helper
// call. Expressions render lazily so renames applied before insertion show up.
type responsePlan struct {
	status  syntax.Expr
	headers []header
	todo    syntax.Expr
}

func (p *responsePlan) empty() bool {
	return p.status == nil && len(p.headers) == 0 && p.todo == nil
}

func (p *responsePlan) statements(response syntax.Expr) []syntax.Stmt {
	var stmts []syntax.Stmt
	if p.status != nil {
		stmts = append(stmts, syntax.Assign(syntax.Member(response, "status"), p.status))
	}
	set := syntax.Member(syntax.Member(response, "headers"), "set")
	for _, h := range p.headers {
		stmts = append(stmts, syntax.Do(syntax.Call(set, h.key, h.value)))
	}
	if p.todo != nil {
		stmts = append(stmts, syntax.Todo(syntax.Assign(syntax.Member(response, "headers"), p.todo)))
	}
	return stmts
}

func (r *rewriter) plan(call, body, options *syntax.Node) *responsePlan {
	p := &responsePlan{}
	if r.codemod.redirect && body != nil {
		p.headers = append(p.headers, header{key: syntax.String("Location"), value: syntax.From(body)})
	}
	if options != nil {
		resolved := engine.Resolve(options)
		switch resolved.Kind() {
		case syntax.NumericLiteral:
			p.status = syntax.From(resolved)
		case syntax.ObjectLiteral:
			r.planInit(p, resolved)
		default:
			r.report(options, "%s options are not an object literal, status and headers were not carried over", syntax.Callee(call))
		}
	}
	if r.codemod.redirect && p.status == nil {
		p.status = syntax.Text("302")
	}
	return p
}

func (r *rewriter) planInit(p *responsePlan, init *syntax.Node) {
	if status := syntax.Property(init, "status"); status != nil {
		if value := syntax.Value(status); value != nil {
			p.status = syntax.From(value)
		}
	}
	headers := syntax.Property(init, "headers")
	if headers == nil {
		return
	}
	value := syntax.Value(headers)
	if value == nil {
		return
	}
	resolved := engine.Resolve(headers)
	if resolved.Kind() != syntax.ObjectLiteral {
		p.todo = syntax.From(value)
		return
	}
	for _, entry := range syntax.Entries(resolved) {
		switch entry.Kind() {
		case syntax.PropertyAssignment:
			key := entry.Field("key")
			var name syntax.Expr
			switch key.Type() {
			case "string":
				name = syntax.From(key)
			case "computed_property_name":
				name = syntax.From(key.Child(0))
			default:
				name = syntax.String(key.Text())
			}
			p.headers = append(p.headers, header{key: name, value: syntax.From(entry.Field("value"))})
		case syntax.ShorthandProperty:
			p.headers = append(p.headers, header{key: syntax.String(entry.Text()), value: syntax.Binding(entry)})
		default:
			r.report(entry, "header %s was not carried over", entry.Text())
		}
	}
}
