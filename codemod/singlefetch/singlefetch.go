// Package singlefetch migrates route modules and project configuration to
// single fetch data loading.
package singlefetch

import (
	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/syntax"
)

const prefix = "remix/single-fetch/"

const (
	JSONToResponse     = prefix + "json-to-response"
	DeferToResponse    = prefix + "defer-to-response"
	RedirectToResponse = prefix + "redirect-to-response"
	NewResponse        = prefix + "new-response-to-response"
	EnableFlag         = prefix + "enable-flag"
	NativeFetch        = prefix + "enable-install-globals-native-fetch"
	IncludeTypedef     = prefix + "include-typedef"
	ReplaceTypes       = prefix + "replace-types"
	BumpDependencies   = prefix + "bump-dependencies"
)

// Register adds the single fetch codemods to registry.
func Register(registry *codemod.Registry) {
	registry.Register(JSONToResponse, "replace json() in loaders and actions with the raw payload", responseFactory(JSONToResponse, syntax.CallExpression, false, "json"))
	registry.Register(DeferToResponse, "replace defer() in loaders and actions with the raw payload", responseFactory(DeferToResponse, syntax.CallExpression, false, "defer"))
	registry.Register(RedirectToResponse, "replace redirect() with status and Location on the response stub", responseFactory(RedirectToResponse, syntax.CallExpression, true, "redirect", "redirectDocument"))
	registry.Register(NewResponse, "replace returned new Response() with its body", responseFactory(NewResponse, syntax.NewExpression, false, "Response"))
	registry.Register(EnableFlag, "enable a future flag in the remix vite plugin config", NewEnableFlag)
	registry.Register(NativeFetch, "pass nativeFetch: true to installGlobals()", NewNativeFetch)
	registry.Register(IncludeTypedef, "include the single fetch typedef in tsconfig.json", NewIncludeTypedef)
	registry.Register(ReplaceTypes, "rename UIMatch and MetaArgs to their single fetch variants", NewReplaceTypes)
	registry.Register(BumpDependencies, "bump @remix-run dependencies in package.json", NewBumpDependencies)
}

func responseFactory(name string, kind syntax.Kind, redirect bool, callees ...string) codemod.Factory {
	return func(params codemod.Params) (codemod.Codemod, error) {
		return &responseCodemod{
			name:     name,
			kind:     kind,
			redirect: redirect,
			callees:  params.Strings("callees", callees),
			exports:  params.Strings("exports", defaultExports),
		}, nil
	}
}
