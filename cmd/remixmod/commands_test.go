package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const route = `import { json } from "@remix-run/node";

export async function loader() {
  return json({ message: "hello" });
}

export default function Index() {
  return null;
}
`

func writeProject(t *testing.T) string {
	dir := t.TempDir()
	files := map[string]string{
		"package.json":          "{\n  \"name\": \"web\"\n}\n",
		"app/routes/_index.tsx": route,
	}
	for name, content := range files {
		location := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	root := newRootCommand(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "remix/single-fetch/json-to-response")
	assert.Contains(t, out, "remix/2/route-exports-to-define-route")
	assert.Contains(t, out, "remix/single-fetch ")
}

func TestRun(t *testing.T) {
	var testCases = []struct {
		description string
		args        []string
		expect      []string
		modified    bool
	}{
		{
			description: "dry run with diff",
			args:        []string{"--dry-run", "--diff"},
			expect:      []string{"M    app/routes/_index.tsx", "-  return json({ message: \"hello\" });", "1 modified"},
		},
		{
			description: "write",
			expect:      []string{"M    app/routes/_index.tsx", "1 modified"},
			modified:    true,
		},
	}

	for _, testCase := range testCases {
		dir := writeProject(t)
		args := append([]string{"run", "remix/single-fetch/json-to-response", dir}, testCase.args...)
		out, err := runCommand(t, args...)
		require.NoError(t, err, testCase.description)
		for _, fragment := range testCase.expect {
			assert.Contains(t, out, fragment, testCase.description)
		}
		data, err := os.ReadFile(filepath.Join(dir, "app/routes/_index.tsx"))
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.modified, string(data) != route, testCase.description)
	}
}

func TestRun_UnknownCodemod(t *testing.T) {
	_, err := runCommand(t, "run", "remix/unknown", t.TempDir())
	assert.Error(t, err)
}

func TestRun_InvalidParam(t *testing.T) {
	_, err := runCommand(t, "run", "remix/single-fetch/json-to-response", t.TempDir(), "--param", "novalue")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "expected key=value")
	}
}

func TestRecipe_Report(t *testing.T) {
	dir := writeProject(t)
	report := filepath.Join(t.TempDir(), "report.yaml")
	out, err := runCommand(t, "recipe", "remix/single-fetch", dir, "--dry-run", "--report", report)
	require.NoError(t, err)
	assert.Contains(t, out, "remix/single-fetch:")
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "recipe: remix/single-fetch")
	assert.Contains(t, string(data), "path: app/routes/_index.tsx")
}
