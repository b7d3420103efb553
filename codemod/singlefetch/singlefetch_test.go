package singlefetch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/codemod/codemodtest"
	"github.com/viant/codemod/codemod/singlefetch"
)

func newRegistry() *codemod.Registry {
	registry := codemod.NewRegistry()
	singlefetch.Register(registry)
	return registry
}

func TestCodemods(t *testing.T) {
	codemodtest.Run(t, newRegistry(), "testdata")
}

func TestRegister(t *testing.T) {
	registry := newRegistry()
	assert.Equal(t, []string{
		singlefetch.BumpDependencies,
		singlefetch.DeferToResponse,
		singlefetch.EnableFlag,
		singlefetch.NativeFetch,
		singlefetch.IncludeTypedef,
		singlefetch.JSONToResponse,
		singlefetch.NewResponse,
		singlefetch.RedirectToResponse,
		singlefetch.ReplaceTypes,
	}, registry.Names())
	for _, name := range registry.Names() {
		assert.NotEmpty(t, registry.Description(name), name)
		mod, err := registry.New(name, codemod.Params{})
		require.NoError(t, err, name)
		assert.Equal(t, name, mod.Name())
	}
}

func TestFactories_InvalidParams(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		params      codemod.Params
		expect      string
	}{
		{
			description: "invalid version",
			name:        singlefetch.BumpDependencies,
			params:      codemod.Params{"version": "latest"},
			expect:      "invalid version",
		},
		{
			description: "invalid bumpMajor",
			name:        singlefetch.BumpDependencies,
			params:      codemod.Params{"bumpMajor": "maybe"},
			expect:      "invalid bumpMajor",
		},
		{
			description: "invalid type change",
			name:        singlefetch.ReplaceTypes,
			params:      codemod.Params{"types": []string{"UIMatch"}},
			expect:      "expected From=To",
		},
	}

	registry := newRegistry()
	for _, testCase := range testCases {
		_, err := registry.New(testCase.name, testCase.params)
		if assert.Error(t, err, testCase.description) {
			assert.Contains(t, err.Error(), testCase.expect, testCase.description)
		}
	}
}
