package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/codemod/syntax"
)

const module = `import { json } from "@remix-run/node"
import * as db from "./db"

const helper = 1
var hoisted = 2

export const loader = async ({ request }) => {
  const helper = request
  return json(helper)
}

export function action(args) {
  return args
}

export default function Page() {}

export { helper as util }
`

func TestTable_Exports(t *testing.T) {
	doc := parse(t, "routes/page.tsx", module)
	table := doc.Symbols()

	var names []string
	for _, symbol := range table.Exports() {
		names = append(names, symbol.Name)
	}
	assert.Equal(t, []string{"loader", "action", "default", "util"}, names)

	loader := table.Export("loader")
	require.NotNil(t, loader)
	assert.Equal(t, syntax.VariableDeclaration, loader.Declarations[0].Kind())

	page := table.DefaultExport()
	require.NotNil(t, page)
	assert.Equal(t, syntax.FunctionDeclaration, page.Declarations[0].Kind())

	util := table.Export("util")
	require.NotNil(t, util)
	assert.Equal(t, "helper = 1", util.Declarations[0].Text())
}

func TestTable_Definitions(t *testing.T) {
	doc := parse(t, "routes/page.tsx", module)
	table := doc.Symbols()

	testCases := []struct {
		description  string
		typ          string
		text         string
		occurrence   int
		expectedKind syntax.Kind
		expectedText string
	}{
		{
			description:  "inner declaration shadows module binding",
			typ:          "identifier",
			text:         "helper",
			occurrence:   2,
			expectedKind: syntax.VariableDeclaration,
			expectedText: "helper = request",
		},
		{
			description:  "destructured parameter",
			typ:          "identifier",
			text:         "request",
			occurrence:   0,
			expectedKind: syntax.BindingElement,
			expectedText: "request",
		},
		{
			description:  "plain parameter",
			typ:          "identifier",
			text:         "args",
			occurrence:   1,
			expectedKind: syntax.Parameter,
			expectedText: "args",
		},
		{
			description:  "named import",
			typ:          "identifier",
			text:         "json",
			occurrence:   1,
			expectedKind: syntax.ImportSpecifier,
			expectedText: "json",
		},
		{
			description:  "namespace import",
			typ:          "identifier",
			text:         "db",
			occurrence:   0,
			expectedKind: syntax.NamespaceImport,
			expectedText: "* as db",
		},
	}

	for _, testCase := range testCases {
		var matches []*syntax.Node
		for _, node := range doc.Root().Descendants() {
			if node.Type() == testCase.typ && node.Text() == testCase.text {
				matches = append(matches, node)
			}
		}
		require.Greater(t, len(matches), testCase.occurrence, testCase.description)
		definitions := table.Definitions(matches[testCase.occurrence])
		require.NotEmpty(t, definitions, testCase.description)
		assert.Equal(t, testCase.expectedKind, definitions[0].Kind(), testCase.description)
		assert.Equal(t, testCase.expectedText, definitions[0].Text(), testCase.description)
	}

	assert.NotNil(t, table.Module.Lookup("hoisted"))
	assert.Nil(t, table.Module.Lookup("request"))
}

func TestTable_RebindsAfterEdit(t *testing.T) {
	doc := parse(t, "file.ts", "export const a = 1\n")
	table := doc.Symbols()
	require.NotNil(t, table.Export("a"))
	require.NoError(t, doc.AppendStatement("export const b = 2"))
	assert.NotNil(t, table.Export("b"))
	assert.Equal(t, "export const a = 1\nexport const b = 2\n", doc.Text())
}
