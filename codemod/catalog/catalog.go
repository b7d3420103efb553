// Package catalog assembles the registry of all available codemods.
package catalog

import (
	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/codemod/defineroute"
	"github.com/viant/codemod/codemod/singlefetch"
)

// Registry returns a registry holding every codemod of this module.
func Registry() *codemod.Registry {
	registry := codemod.NewRegistry()
	singlefetch.Register(registry)
	defineroute.Register(registry)
	return registry
}
