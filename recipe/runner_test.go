package recipe

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/viant/codemod/codemod/catalog"
)

const baseURL = "mem://localhost/runner"

var project = map[string]string{
	"package.json": `{
  "name": "web",
  "version": "1.0.0",
  "dependencies": {
    "@remix-run/react": "^2.8.0"
  }
}
`,
	"tsconfig.json": `{
  "include": ["**/*.ts"]
}
`,
	"vite.config.ts": `import { vitePlugin as remix } from "@remix-run/dev";
import { defineConfig } from "vite";

export default defineConfig({
  plugins: [remix({})],
});
`,
	"app/routes/_index.tsx": `import { json } from "@remix-run/node";

export const loader = async () => {
  return json({ message: "hello" });
};

export default function Index() {
  return null;
}
`,
	"app/routes/broken.tsx": `export function loader([first]) {
  return json(first, { status: 201 });
}

export default function Broken() {
  return null;
}
`,
	"app/utils.ts": `export const answer = 42;
`,
	"node_modules/@remix-run/node/index.ts": `export const json = (data: unknown) => data;
`,
}

func setup(t *testing.T, root string) afs.Service {
	t.Helper()
	fs := afs.New()
	ctx := context.Background()
	_ = fs.Delete(ctx, root)
	for name, content := range project {
		require.NoError(t, fs.Upload(ctx, root+"/"+name, file.DefaultFileOsMode, strings.NewReader(content)))
	}
	return fs
}

func download(t *testing.T, fs afs.Service, URL string) string {
	t.Helper()
	data, err := fs.DownloadWithURL(context.Background(), URL)
	require.NoError(t, err)
	return string(data)
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_Run(t *testing.T) {
	root := baseURL + "/apply"
	fs := setup(t, root)
	singleFetch, err := Builtin("remix/single-fetch")
	require.NoError(t, err)

	runner := New(catalog.Registry(), WithFS(fs), WithWorkers(2), WithLogger(quiet()))
	report, err := runner.Run(context.Background(), root, singleFetch)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "remix/single-fetch", report.Recipe)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "web", report.Projects[0].Name)
	assert.Equal(t, 4, report.Count(Modified), report.Summary())
	assert.Equal(t, 1, report.Count(Failed), report.Summary())
	assert.Equal(t, 1, report.Count(Untouched), report.Summary())
	assert.Nil(t, report.File("node_modules/@remix-run/node/index.ts"))

	var testCases = []struct {
		description string
		path        string
		expect      string
	}{
		{
			description: "future flag enabled",
			path:        "vite.config.ts",
			expect:      "  plugins: [remix({ future: { unstable_singleFetch: true } })],\n",
		},
		{
			description: "typedef included",
			path:        "tsconfig.json",
			expect:      `"include": ["**/*.ts", "node_modules/@remix-run/react/future/single-fetch.d.ts"]`,
		},
		{
			description: "json call replaced",
			path:        "app/routes/_index.tsx",
			expect:      "  return { message: \"hello\" };\n",
		},
		{
			description: "dependency bumped",
			path:        "package.json",
			expect:      `"@remix-run/react": "2.9.0"`,
		},
		{
			description: "package major bumped",
			path:        "package.json",
			expect:      `"version": "2.0.0"`,
		},
		{
			description: "failed file left as it was",
			path:        "app/routes/broken.tsx",
			expect:      project["app/routes/broken.tsx"],
		},
	}
	for _, testCase := range testCases {
		assert.Contains(t, download(t, fs, root+"/"+testCase.path), testCase.expect, testCase.description)
	}

	index := report.File("app/routes/_index.tsx")
	require.NotNil(t, index)
	assert.Equal(t, Modified, index.Status)
	assert.Equal(t, []string{"remix/single-fetch/json-to-response"}, index.Codemods)
	assert.NotEqual(t, index.Before, index.After)
	assert.Empty(t, index.Diff)

	broken := report.File("app/routes/broken.tsx")
	require.NotNil(t, broken)
	assert.Equal(t, Failed, broken.Status)
	assert.Contains(t, broken.Error, "identifier or object binding pattern")
}

func TestRunner_DryRun(t *testing.T) {
	root := baseURL + "/dry"
	fs := setup(t, root)

	runner := New(catalog.Registry(), WithFS(fs), WithDryRun(true), WithDiff(true), WithLogger(quiet()), WithInclude("app/**"))
	report, err := runner.Run(context.Background(), root, Single("remix/single-fetch/json-to-response", nil))
	require.NoError(t, err)

	index := report.File("app/routes/_index.tsx")
	require.NotNil(t, index)
	assert.Equal(t, Modified, index.Status)
	assert.Contains(t, index.Diff, "-  return json({ message: \"hello\" });\n")
	assert.Contains(t, index.Diff, "+  return { message: \"hello\" };\n")
	require.NotNil(t, index.Stat)
	assert.Equal(t, project["app/routes/_index.tsx"], download(t, fs, root+"/app/routes/_index.tsx"))
	assert.Nil(t, report.File("package.json"))
	assert.True(t, report.DryRun)
}

func TestRunner_Unchanged(t *testing.T) {
	root := baseURL + "/unchanged"
	fs := setup(t, root)

	runner := New(catalog.Registry(), WithFS(fs), WithLogger(quiet()))
	report, err := runner.Run(context.Background(), root, Single("remix/single-fetch/replace-types", nil, "app/utils.ts"))
	require.NoError(t, err)

	utils := report.File("app/utils.ts")
	require.NotNil(t, utils)
	assert.Equal(t, Unchanged, utils.Status)
	assert.Equal(t, utils.Before, utils.After)
	assert.Equal(t, 0, report.Count(Modified))
}

func TestRunner_UnknownCodemod(t *testing.T) {
	runner := New(catalog.Registry(), WithLogger(quiet()))
	_, err := runner.Run(context.Background(), baseURL+"/none", Single("remix/unknown", nil))
	assert.Error(t, err)
}
