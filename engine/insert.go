package engine

import (
	"fmt"
	"strings"

	"github.com/viant/codemod/syntax"
)

// InsertionPoint is a statement directly inside a block before which new
// statements can be placed.
type InsertionPoint struct {
	Block *syntax.Node
	Pivot *syntax.Node
}

func insertionError(anchor *syntax.Node, reason InsertionReason) *InsertionError {
	return &InsertionError{Reason: reason, Anchor: anchor.String(), Line: anchor.Line()}
}

func isPivot(node *syntax.Node) bool {
	return node.Is(syntax.ExpressionStatement, syntax.ReturnStatement, syntax.ThrowStatement)
}

// FindInsertionPoint locates the statement enclosing anchor within its
// nearest block.
func FindInsertionPoint(anchor *syntax.Node) (*InsertionPoint, error) {
	block := anchor.AncestorOfKind(syntax.Block)
	if block == nil {
		return nil, insertionError(anchor, NoBlock)
	}
	pivot := anchor.FirstAncestor(isPivot)
	if pivot == nil {
		return nil, insertionError(anchor, NoPivot)
	}
	if parent := pivot.Parent(); parent == nil || !parent.Same(block) {
		return nil, insertionError(anchor, PivotOutsideBlock)
	}
	return &InsertionPoint{Block: block, Pivot: pivot}, nil
}

// Insert places statements, in order, immediately before the pivot using
// the pivot indentation.
func (p *InsertionPoint) Insert(stmts ...syntax.Stmt) error {
	if len(stmts) == 0 {
		return nil
	}
	doc := p.Pivot.Document()
	indent := p.Pivot.Indent()
	var text strings.Builder
	for _, stmt := range stmts {
		rendered, err := doc.Render(stmt)
		if err != nil {
			return fmt.Errorf("failed to render statement: %w", err)
		}
		text.WriteString(rendered)
		text.WriteString("\n")
		text.WriteString(indent)
	}
	return doc.InsertAt(p.Pivot.Start(), text.String())
}

// InsertBefore inserts statements before the statement enclosing anchor.
func InsertBefore(anchor *syntax.Node, stmts ...syntax.Stmt) error {
	point, err := FindInsertionPoint(anchor)
	if err != nil {
		return err
	}
	return point.Insert(stmts...)
}
