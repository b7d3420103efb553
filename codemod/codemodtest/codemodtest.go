// Package codemodtest runs codemods against txtar fixtures.
//
// Each archive comment holds "codemod: <name>" and optional "params: k=v ..."
// lines. The first file is the input, named after the document path. The
// expectation is one of: a "want" file with the printed result, an empty
// "skip" file for a codemod that does not apply, or an "error" file holding
// a substring of the returned error. An optional "diagnostics" file lists
// substrings, one per expected diagnostic, in order.
package codemodtest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/syntax"
)

// Case is a decoded fixture.
type Case struct {
	Name        string
	Codemod     string
	Params      codemod.Params
	Path        string
	Input       string
	Want        *string
	Skip        bool
	Error       string
	Diagnostics []string
}

// Load decodes a fixture archive.
func Load(t *testing.T, path string) *Case {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	require.NoError(t, err, path)
	require.NotEmpty(t, archive.Files, path)
	ret := &Case{Name: strings.TrimSuffix(filepath.Base(path), ".txtar"), Params: codemod.Params{}}
	for _, line := range strings.Split(string(archive.Comment), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "codemod":
			ret.Codemod = value
		case "params":
			params, err := codemod.ParseParams(strings.Fields(value))
			require.NoError(t, err, path)
			ret.Params = params
		}
	}
	input := archive.Files[0]
	ret.Path, ret.Input = input.Name, string(input.Data)
	for _, file := range archive.Files[1:] {
		switch file.Name {
		case "want":
			want := string(file.Data)
			ret.Want = &want
		case "skip":
			ret.Skip = true
		case "error":
			ret.Error = strings.TrimSpace(string(file.Data))
		case "diagnostics":
			for _, line := range strings.Split(strings.TrimSpace(string(file.Data)), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					ret.Diagnostics = append(ret.Diagnostics, line)
				}
			}
		}
	}
	require.NotEmpty(t, ret.Codemod, path)
	return ret
}

// Run executes every fixture under dir against codemods from registry.
func Run(t *testing.T, registry *codemod.Registry, dir string) {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, dir)
	for _, path := range paths {
		testCase := Load(t, path)
		t.Run(testCase.Name, func(t *testing.T) {
			testCase.Check(t, registry)
		})
	}
}

// Check runs the case and asserts its expectation.
func (c *Case) Check(t *testing.T, registry *codemod.Registry) {
	t.Helper()
	mod, err := registry.New(c.Codemod, c.Params)
	require.NoError(t, err)
	doc, err := syntax.Parse(context.Background(), c.Path, []byte(c.Input))
	require.NoError(t, err)
	result, err := mod.Transform(doc)
	if c.Error != "" {
		require.Error(t, err)
		assert.Contains(t, err.Error(), c.Error)
		return
	}
	require.NoError(t, err)
	if c.Skip {
		assert.Nil(t, result)
		return
	}
	require.NotNil(t, result)
	if c.Want != nil {
		assert.Equal(t, *c.Want, result.Text)
	}
	require.Len(t, result.Diagnostics, len(c.Diagnostics), "%v", result.Diagnostics)
	for i, expect := range c.Diagnostics {
		assert.Contains(t, result.Diagnostics[i].Message, expect)
	}
}
