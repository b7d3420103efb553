package syntax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/codemod/syntax"
)

func parse(t *testing.T, name, src string) *syntax.Document {
	t.Helper()
	doc, err := syntax.Parse(context.Background(), name, []byte(src))
	require.NoError(t, err)
	return doc
}

func find(doc *syntax.Document, typ, text string) *syntax.Node {
	for _, node := range doc.Root().Descendants() {
		if node.Type() == typ && node.Text() == text {
			return node
		}
	}
	return nil
}

func TestDocument_Apply(t *testing.T) {
	testCases := []struct {
		description string
		source      string
		edits       []syntax.Edit
		expected    string
		expectErr   bool
	}{
		{
			description: "single replacement",
			source:      "const a = 1\n",
			edits:       []syntax.Edit{{Start: 10, End: 11, Text: "2"}},
			expected:    "const a = 2\n",
		},
		{
			description: "batch is applied against original offsets",
			source:      "const a = 1\nconst b = 2\n",
			edits:       []syntax.Edit{{Start: 6, End: 7, Text: "alpha"}, {Start: 18, End: 19, Text: "beta"}},
			expected:    "const alpha = 1\nconst beta = 2\n",
		},
		{
			description: "insertions at the same offset keep their order",
			source:      "f()\n",
			edits:       []syntax.Edit{{Start: 0, End: 0, Text: "a()\n"}, {Start: 0, End: 0, Text: "b()\n"}},
			expected:    "a()\nb()\nf()\n",
		},
		{
			description: "overlapping edits are rejected",
			source:      "const a = 1\n",
			edits:       []syntax.Edit{{Start: 0, End: 7, Text: "x"}, {Start: 6, End: 11, Text: "y"}},
			expectErr:   true,
		},
		{
			description: "out of range edits are rejected",
			source:      "a\n",
			edits:       []syntax.Edit{{Start: 1, End: 10, Text: "x"}},
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		doc := parse(t, "file.ts", testCase.source)
		err := doc.Apply(testCase.edits...)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			assert.Equal(t, testCase.source, doc.Text(), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expected, doc.Text(), testCase.description)
	}
}

func TestNode_Reanchor(t *testing.T) {
	doc := parse(t, "file.ts", "const a = 1\nconst b = { x }\n")
	b := find(doc, "identifier", "b")
	require.NotNil(t, b)
	object := find(doc, "object", "{ x }")
	require.NotNil(t, object)
	declarator := find(doc, "variable_declarator", "a = 1")
	require.NotNil(t, declarator)

	require.NoError(t, doc.InsertAt(0, "// header\n"))
	assert.True(t, b.Valid())
	assert.Equal(t, "b", b.Text())
	assert.Equal(t, 28, b.Start())

	require.NoError(t, doc.AddEntry(object, "y"))
	assert.Equal(t, "{ x, y }", object.Text())
	assert.Equal(t, syntax.ObjectLiteral, object.Kind())

	statement := declarator.Parent()
	require.NoError(t, doc.Replace(statement, "let z = 3"))
	assert.False(t, declarator.Valid())
	assert.Equal(t, "", declarator.Text())
	assert.Equal(t, "// header\nlet z = 3\nconst b = { x, y }\n", doc.Text())
}

func TestDocument_AddEntry(t *testing.T) {
	testCases := []struct {
		description string
		source      string
		typ         string
		text        string
		entry       string
		expected    string
	}{
		{
			description: "empty object",
			source:      "const a = {}\n",
			typ:         "object",
			text:        "{}",
			entry:       "b: 1",
			expected:    "const a = { b: 1 }\n",
		},
		{
			description: "inline object",
			source:      "const a = { x: 1 }\n",
			typ:         "object",
			text:        "{ x: 1 }",
			entry:       "b: 1",
			expected:    "const a = { x: 1, b: 1 }\n",
		},
		{
			description: "multi-line object keeps trailing comma",
			source:      "const a = {\n  x: 1,\n}\n",
			typ:         "object",
			text:        "{\n  x: 1,\n}",
			entry:       "b: 1",
			expected:    "const a = {\n  x: 1,\n  b: 1,\n}\n",
		},
		{
			description: "binding pattern with rest",
			source:      "function f({ a, ...rest }) {}\n",
			typ:         "object_pattern",
			text:        "{ a, ...rest }",
			entry:       "b",
			expected:    "function f({ a, b, ...rest }) {}\n",
		},
		{
			description: "empty array",
			source:      "const a = []\n",
			typ:         "array",
			text:        "[]",
			entry:       "1",
			expected:    "const a = [1]\n",
		},
		{
			description: "empty arguments",
			source:      "f()\n",
			typ:         "arguments",
			text:        "()",
			entry:       "{ a: true }",
			expected:    "f({ a: true })\n",
		},
		{
			description: "empty parameters",
			source:      "function f() {}\n",
			typ:         "formal_parameters",
			text:        "()",
			entry:       "args: Args",
			expected:    "function f(args: Args) {}\n",
		},
	}

	for _, testCase := range testCases {
		doc := parse(t, "file.ts", testCase.source)
		container := find(doc, testCase.typ, testCase.text)
		require.NotNil(t, container, testCase.description)
		require.NoError(t, doc.AddEntry(container, testCase.entry), testCase.description)
		assert.Equal(t, testCase.expected, doc.Text(), testCase.description)
	}
}

func TestDocument_JSON(t *testing.T) {
	source := "{\n  // options\n  \"compilerOptions\": {},\n}\n"
	doc := parse(t, "tsconfig.json", source)
	assert.Equal(t, syntax.JSON, doc.Dialect())
	assert.Equal(t, source, doc.Text())

	objects := doc.Root().Descendants(syntax.ObjectLiteral)
	require.NotEmpty(t, objects)
	config := objects[0]
	require.NotNil(t, syntax.Property(config, "compilerOptions"))
	require.NoError(t, doc.AddEntry(config, `"include": []`))
	assert.Equal(t, "{\n  // options\n  \"compilerOptions\": {},\n  \"include\": [],\n}\n", doc.Text())
}

func TestDocument_EnsureNamedImport(t *testing.T) {
	testCases := []struct {
		description string
		source      string
		expected    string
	}{
		{
			description: "no imports",
			source:      "const a = 'x'\n",
			expected:    "import { defineRoute } from '@remix-run/react'\n\nconst a = 'x'\n",
		},
		{
			description: "extends named imports",
			source:      "import { json } from \"@remix-run/react\"\n",
			expected:    "import { json, defineRoute } from \"@remix-run/react\"\n",
		},
		{
			description: "already imported",
			source:      "import { defineRoute } from \"@remix-run/react\";\n",
			expected:    "import { defineRoute } from \"@remix-run/react\";\n",
		},
		{
			description: "extends default import",
			source:      "import React from \"@remix-run/react\"\n",
			expected:    "import React, { defineRoute } from \"@remix-run/react\"\n",
		},
		{
			description: "adds after other imports",
			source:      "import { a } from \"a\";\nimport type { b } from \"@remix-run/react\";\n\nconst c = 1;\n",
			expected:    "import { a } from \"a\";\nimport type { b } from \"@remix-run/react\";\nimport { defineRoute } from \"@remix-run/react\";\n\nconst c = 1;\n",
		},
	}

	for _, testCase := range testCases {
		doc := parse(t, "route.tsx", testCase.source)
		require.NoError(t, doc.EnsureNamedImport("@remix-run/react", "defineRoute"), testCase.description)
		assert.Equal(t, testCase.expected, doc.Text(), testCase.description)
	}
}

func TestDocument_Render(t *testing.T) {
	status := syntax.Assign(syntax.Member(syntax.NonNull(syntax.Ident("response")), "status"), syntax.Text("200"))
	header := syntax.Do(syntax.Call(syntax.Member(syntax.Member(syntax.NonNull(syntax.Ident("response")), "headers"), "set"), syntax.String("Location"), syntax.Text("url")))
	todo := syntax.Todo(syntax.Assign(syntax.Member(syntax.NonNull(syntax.Ident("response")), "headers"), syntax.Text("/* inner */ h")))

	testCases := []struct {
		description string
		name        string
		source      string
		stmt        syntax.Stmt
		expected    string
	}{
		{
			description: "typed without semicolons",
			name:        "route.ts",
			source:      "const a = 1\n",
			stmt:        status,
			expected:    "response!.status = 200",
		},
		{
			description: "javascript drops non-null assertion",
			name:        "route.js",
			source:      "const a = 1;\n",
			stmt:        status,
			expected:    "response.status = 200;",
		},
		{
			description: "quote style follows the document",
			name:        "route.tsx",
			source:      "const a = \"x\"\n",
			stmt:        header,
			expected:    "response!.headers.set(\"Location\", url)",
		},
		{
			description: "todo comment escapes terminators",
			name:        "route.ts",
			source:      "const a = 1;\n",
			stmt:        todo,
			expected:    "/* TODO: response!.headers = /* inner *\\/ h */",
		},
	}

	for _, testCase := range testCases {
		doc := parse(t, testCase.name, testCase.source)
		actual, err := doc.Render(testCase.stmt)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expected, actual, testCase.description)
	}
}

func TestBinding(t *testing.T) {
	testCases := []struct {
		description string
		rename      string
		expected    string
	}{
		{
			description: "shorthand",
			expected:    "call(response);",
		},
		{
			description: "shorthand renamed to a pair",
			rename:      "response: response2",
			expected:    "call(response2);",
		},
	}

	for _, testCase := range testCases {
		doc := parse(t, "route.ts", "const response = 1;\nconst o = { response };\n")
		entry := find(doc, "shorthand_property_identifier", "response")
		require.NotNil(t, entry, testCase.description)
		binding := syntax.Binding(entry)
		if testCase.rename != "" {
			require.NoError(t, doc.Replace(entry, testCase.rename), testCase.description)
		}
		actual, err := doc.Render(syntax.Do(syntax.Call(syntax.Ident("call"), binding)))
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expected, actual, testCase.description)
	}
}
