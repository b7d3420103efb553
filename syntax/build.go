package syntax

import (
	"strings"
)

// Expr is an expression fragment rendered in a document style.
type Expr interface {
	render(style Style) string
}

// Stmt is a statement fragment rendered in a document style.
type Stmt interface {
	statement(style Style) string
}

type (
	identExpr  string
	sourceExpr struct{ node *Node }
	textExpr   string
	stringExpr string
	memberExpr struct {
		object Expr
		name   string
	}
	nonNullExpr struct{ expr Expr }
	bindingExpr struct{ node *Node }
	callExpr    struct {
		callee Expr
		args   []Expr
	}
	assignStmt struct {
		target Expr
		value  Expr
	}
	exprStmt struct{ expr Expr }
	todoStmt struct{ inner Stmt }
)

// Ident references a name.
func Ident(name string) Expr { return identExpr(name) }

// From renders the text a node has at render time.
func From(node *Node) Expr { return sourceExpr{node: node} }

// Binding renders the name a shorthand property refers to, following a
// rename that turned the shorthand into a key: value pair.
func Binding(node *Node) Expr { return bindingExpr{node: node} }

// Text embeds literal source text.
func Text(text string) Expr { return textExpr(text) }

// String renders a string literal in the document quote style.
func String(value string) Expr { return stringExpr(value) }

// Member renders object.name.
func Member(object Expr, name string) Expr { return memberExpr{object: object, name: name} }

// NonNull renders a non-null assertion on typed dialects only.
func NonNull(expr Expr) Expr { return nonNullExpr{expr: expr} }

// Call renders callee(args...).
func Call(callee Expr, args ...Expr) Expr { return callExpr{callee: callee, args: args} }

// Assign renders target = value as a statement.
func Assign(target, value Expr) Stmt { return assignStmt{target: target, value: value} }

// Do renders an expression statement.
func Do(expr Expr) Stmt { return exprStmt{expr: expr} }

// Todo renders a statement inside a TODO block comment.
func Todo(inner Stmt) Stmt { return todoStmt{inner: inner} }

func (e identExpr) render(Style) string { return string(e) }

func (e sourceExpr) render(Style) string { return e.node.Text() }

func (e bindingExpr) render(Style) string {
	if value := Value(e.node); value != nil {
		return value.Text()
	}
	return e.node.Text()
}

func (e textExpr) render(Style) string { return string(e) }

func (e stringExpr) render(style Style) string { return Quote(string(e), style.Quote) }

func (e memberExpr) render(style Style) string { return e.object.render(style) + "." + e.name }

func (e nonNullExpr) render(style Style) string {
	if style.Typed {
		return e.expr.render(style) + "!"
	}
	return e.expr.render(style)
}

func (e callExpr) render(style Style) string {
	args := make([]string, len(e.args))
	for i, arg := range e.args {
		args[i] = arg.render(style)
	}
	return e.callee.render(style) + "(" + strings.Join(args, ", ") + ")"
}

func (s assignStmt) statement(style Style) string {
	return terminate(s.target.render(style)+" = "+s.value.render(style), style)
}

func (s exprStmt) statement(style Style) string {
	return terminate(s.expr.render(style), style)
}

func (s todoStmt) statement(style Style) string {
	style.Semicolons = false
	body := strings.ReplaceAll(s.inner.statement(style), "*/", "*\\/")
	return "/* TODO: " + body + " */"
}

func terminate(text string, style Style) string {
	if style.Semicolons {
		return text + ";"
	}
	return text
}

// RenderExpr renders an expression in the document style.
func (d *Document) RenderExpr(expr Expr) string {
	return expr.render(d.Style())
}

// Render renders a statement in the document style and checks that it parses.
func (d *Document) Render(stmt Stmt) (string, error) {
	text := stmt.statement(d.Style())
	if err := d.Validate(text); err != nil {
		return "", err
	}
	return text, nil
}
