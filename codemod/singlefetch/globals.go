package singlefetch

import (
	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const nativeFetch = "nativeFetch"

type nativeFetchCodemod struct{}

// NewNativeFetch creates the codemod that opts installGlobals() into native fetch.
func NewNativeFetch(codemod.Params) (codemod.Codemod, error) {
	return &nativeFetchCodemod{}, nil
}

func (c *nativeFetchCodemod) Name() string { return NativeFetch }

func (c *nativeFetchCodemod) Transform(doc *syntax.Document) (*codemod.Result, error) {
	var call *syntax.Node
	for _, candidate := range doc.Root().Descendants(syntax.CallExpression) {
		if fn := candidate.Field("function"); fn != nil && fn.Kind() == syntax.Identifier && fn.Text() == "installGlobals" {
			call = candidate
			break
		}
	}
	if call == nil {
		return nil, nil
	}
	args := syntax.Args(call)
	if len(args) == 0 {
		if err := doc.AddEntry(call.Field("arguments"), "{ "+nativeFetch+": true }"); err != nil {
			return nil, err
		}
		return &codemod.Result{Text: doc.Text()}, nil
	}
	options := engine.Resolve(args[0])
	if options.Kind() != syntax.ObjectLiteral {
		return nil, nil
	}
	if err := setFlag(doc, options, nativeFetch, true); err != nil {
		return nil, err
	}
	return &codemod.Result{Text: doc.Text()}, nil
}
