package singlefetch

import (
	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const defaultTypedef = "node_modules/@remix-run/react/future/single-fetch.d.ts"

type includeTypedef struct {
	typedef string
}

// NewIncludeTypedef creates the codemod adding the typedef to tsconfig include.
func NewIncludeTypedef(params codemod.Params) (codemod.Codemod, error) {
	return &includeTypedef{typedef: params.String("typedef", defaultTypedef)}, nil
}

func (c *includeTypedef) Name() string { return IncludeTypedef }

func (c *includeTypedef) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !codemod.HasSuffix(doc, "tsconfig.json") {
		return nil, nil
	}
	objects := doc.Root().Descendants(syntax.ObjectLiteral)
	if len(objects) == 0 {
		return nil, &engine.PreconditionError{Expected: "object", Context: "tsconfig.json"}
	}
	config := objects[0]
	if syntax.Property(config, "include") == nil {
		if err := doc.AddEntry(config, `"include": []`); err != nil {
			return nil, err
		}
	}
	include, err := engine.ResolveAs(syntax.Property(config, "include"), "tsconfig include", syntax.ArrayLiteral)
	if err != nil {
		return nil, err
	}
	for _, element := range include.Children() {
		if element.Kind() == syntax.StringLiteral && syntax.Unquote(element.Text()) == c.typedef {
			return &codemod.Result{Text: doc.Text()}, nil
		}
	}
	if err := doc.AddEntry(include, syntax.Quote(c.typedef, '"')); err != nil {
		return nil, err
	}
	return &codemod.Result{Text: doc.Text()}, nil
}
