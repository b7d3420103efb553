package singlefetch

import (
	"fmt"
	"strings"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/syntax"
)

var defaultTypeChanges = map[string]string{
	"UIMatch":  "UIMatch_SingleFetch",
	"MetaArgs": "MetaArgs_SingleFetch",
}

// declarationNames are the parent types whose name field declares rather
// than references a type.
var declarationNames = map[string]bool{
	"type_alias_declaration":     true,
	"interface_declaration":      true,
	"class_declaration":          true,
	"abstract_class_declaration": true,
	"type_parameter":             true,
	"enum_declaration":           true,
}

type replaceTypes struct {
	changes map[string]string
}

// NewReplaceTypes creates the type renaming codemod; the optional types
// param lists From=To pairs.
func NewReplaceTypes(params codemod.Params) (codemod.Codemod, error) {
	changes := defaultTypeChanges
	if pairs := params.Strings("types", nil); len(pairs) > 0 {
		changes = map[string]string{}
		for _, pair := range pairs {
			from, to, ok := strings.Cut(pair, "=")
			if !ok || from == "" || to == "" {
				return nil, fmt.Errorf("invalid type change %q, expected From=To", pair)
			}
			changes[from] = to
		}
	}
	return &replaceTypes{changes: changes}, nil
}

func (c *replaceTypes) Name() string { return ReplaceTypes }

func (c *replaceTypes) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !doc.Dialect().Typed() {
		return nil, nil
	}
	var edits []syntax.Edit
	for _, decl := range doc.Imports() {
		for _, specifier := range decl.Descendants(syntax.ImportSpecifier) {
			name := specifier.Field("name")
			if to, ok := c.changes[name.Text()]; ok {
				edits = append(edits, syntax.Edit{Start: name.Start(), End: name.End(), Text: to})
			}
		}
	}
	for _, id := range doc.Root().Descendants(syntax.TypeIdentifier) {
		to, ok := c.changes[id.Text()]
		if !ok || !isTypeReference(id) {
			continue
		}
		edits = append(edits, syntax.Edit{Start: id.Start(), End: id.End(), Text: to})
	}
	if err := doc.Apply(edits...); err != nil {
		return nil, err
	}
	return &codemod.Result{Text: doc.Text()}, nil
}

func isTypeReference(id *syntax.Node) bool {
	parent := id.Parent()
	if parent == nil {
		return true
	}
	if parent.Type() == "nested_type_identifier" {
		return false
	}
	if declarationNames[parent.Type()] {
		name := parent.Field("name")
		return name == nil || !name.Same(id)
	}
	return true
}
