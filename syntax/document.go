package syntax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrDetached is returned when a node no longer maps to the current tree.
var ErrDetached = errors.New("node is detached from the document")

// Document owns the source text and syntax tree of one file for one pass.
// Every mutation re-parses eagerly, so later queries observe earlier edits.
type Document struct {
	path    string
	dialect Dialect
	ctx     context.Context
	parser  *sitter.Parser
	tree    *sitter.Tree
	src     []byte
	prefix  int
	suffix  int
	gen     int
	log     []change
	table   *Table
	style   *Style
}

// Edit replaces the byte range [Start, End) with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

type change struct {
	gen   int
	start int
	end   int
	size  int
}

// Parse parses src with the dialect inferred from name.
func Parse(ctx context.Context, name string, src []byte) (*Document, error) {
	return ParseDialect(ctx, name, src, DialectOf(name))
}

// ParseDialect parses src with an explicit dialect.
func ParseDialect(ctx context.Context, name string, src []byte, dialect Dialect) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc := &Document{path: name, dialect: dialect, ctx: ctx}
	doc.parser = sitter.NewParser()
	doc.parser.SetLanguage(dialect.language())
	text := src
	if dialect == JSON {
		text = make([]byte, 0, len(src)+3)
		text = append(text, '(')
		text = append(text, src...)
		text = append(text, '\n', ')')
		doc.prefix, doc.suffix = 1, 2
	}
	if err := doc.reparse(text); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return doc, nil
}

func (d *Document) reparse(text []byte) error {
	tree, err := d.parser.ParseCtx(d.ctx, nil, text)
	if err != nil {
		return err
	}
	if tree == nil {
		return errors.New("parser returned no tree")
	}
	d.src = text
	d.tree = tree
	d.table = nil
	d.style = nil
	return nil
}

// Path returns the document file name.
func (d *Document) Path() string { return d.path }

// Dialect returns the document dialect.
func (d *Document) Dialect() Dialect { return d.dialect }

// Text prints the document.
func (d *Document) Text() string {
	return string(d.src[d.prefix : len(d.src)-d.suffix])
}

// Root returns the program node.
func (d *Document) Root() *Node {
	return d.wrap(d.tree.RootNode())
}

// HasErrors reports whether the current tree contains syntax errors.
func (d *Document) HasErrors() bool {
	return d.tree.RootNode().HasError()
}

// Slice returns the source between two offsets.
func (d *Document) Slice(start, end int) string {
	return string(d.src[start:end])
}

// Replace replaces the node text.
func (d *Document) Replace(node *Node, text string) error {
	if !node.Valid() {
		return ErrDetached
	}
	return d.Apply(Edit{Start: node.Start(), End: node.End(), Text: text})
}

// InsertAt inserts text at offset.
func (d *Document) InsertAt(offset int, text string) error {
	return d.Apply(Edit{Start: offset, End: offset, Text: text})
}

// Apply applies a batch of non-overlapping edits expressed against the
// current text and re-parses. Insertions at the same offset keep their order.
func (d *Document) Apply(edits ...Edit) error {
	if len(edits) == 0 {
		return nil
	}
	ordered := make([]Edit, len(edits))
	for i, e := range edits {
		ordered[len(edits)-1-i] = e
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })
	limit := len(d.src) - d.suffix
	for i, e := range ordered {
		if e.Start < d.prefix || e.End > limit || e.Start > e.End {
			return fmt.Errorf("edit [%d,%d) is out of range", e.Start-d.prefix, e.End-d.prefix)
		}
		if i > 0 && e.End > ordered[i-1].Start {
			return fmt.Errorf("edit [%d,%d) overlaps [%d,%d)", e.Start-d.prefix, e.End-d.prefix, ordered[i-1].Start-d.prefix, ordered[i-1].End-d.prefix)
		}
	}
	text := d.src
	for _, e := range ordered {
		next := make([]byte, 0, len(text)-(e.End-e.Start)+len(e.Text))
		next = append(next, text[:e.Start]...)
		next = append(next, e.Text...)
		next = append(next, text[e.End:]...)
		text = next
	}
	if err := d.reparse(text); err != nil {
		return fmt.Errorf("failed to reparse %s: %w", d.path, err)
	}
	d.gen++
	for _, e := range ordered {
		d.log = append(d.log, change{gen: d.gen, start: e.Start, end: e.End, size: len(e.Text)})
	}
	return nil
}

// remap carries a span recorded at generation since through later edits.
func (d *Document) remap(since, start, end int) (int, int, bool) {
	for _, c := range d.log {
		if c.gen <= since {
			continue
		}
		delta := c.size - (c.end - c.start)
		switch {
		case c.end <= start:
			start += delta
			end += delta
		case c.start >= end:
		case c.start >= start && c.end <= end:
			end += delta
		default:
			return 0, 0, false
		}
	}
	return start, end, true
}

// lookup finds the node spanning exactly [start, end), preferring typ and
// otherwise the outermost match.
func (d *Document) lookup(start, end int, typ string) *sitter.Node {
	var outer *sitter.Node
	cur := d.tree.RootNode()
	for cur != nil {
		if int(cur.StartByte()) == start && int(cur.EndByte()) == end {
			if cur.Type() == typ {
				return cur
			}
			if outer == nil {
				outer = cur
			}
		}
		var next *sitter.Node
		for i := 0; i < int(cur.ChildCount()); i++ {
			child := cur.Child(i)
			if child == nil || child.StartByte() == child.EndByte() {
				continue
			}
			if int(child.StartByte()) <= start && int(child.EndByte()) >= end {
				next = child
				break
			}
		}
		cur = next
	}
	return outer
}

// LineIndent returns the leading whitespace of the line holding offset.
func (d *Document) LineIndent(offset int) string {
	lineStart := bytes.LastIndexByte(d.src[:offset], '\n') + 1
	i := lineStart
	for i < len(d.src) && (d.src[i] == ' ' || d.src[i] == '\t') {
		i++
	}
	return string(d.src[lineStart:i])
}

// Line returns the 1-based line number of offset.
func (d *Document) Line(offset int) int {
	return bytes.Count(d.src[d.prefix:offset], []byte{'\n'}) + 1
}

// Validate parses a fragment with the document grammar.
func (d *Document) Validate(fragment string) error {
	parser := sitter.NewParser()
	parser.SetLanguage(d.dialect.language())
	tree, err := parser.ParseCtx(d.ctx, nil, []byte(fragment))
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}
	if tree.RootNode().HasError() {
		return fmt.Errorf("invalid fragment: %q", fragment)
	}
	return nil
}
