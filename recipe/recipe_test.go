package recipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs/file"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/codemod/catalog"
)

func TestDecode(t *testing.T) {
	var testCases = []struct {
		description string
		data        string
		expectSteps int
		expectErr   string
	}{
		{
			description: "valid recipe",
			data: `name: custom
steps:
  - codemod: remix/single-fetch/enable-flag
    params:
      flagName: v3_singleFetch
  - codemod: remix/single-fetch/json-to-response
    include: ["app/routes/**"]
`,
			expectSteps: 2,
		},
		{
			description: "no steps",
			data:        "name: empty\n",
			expectErr:   "has no steps",
		},
		{
			description: "step without codemod",
			data:        "name: broken\nsteps:\n  - include: [\"**\"]\n",
			expectErr:   "step 1 has no codemod",
		},
		{
			description: "invalid include",
			data:        "name: broken\nsteps:\n  - codemod: x\n    include: [\"app/[routes\"]\n",
			expectErr:   "invalid include",
		},
	}

	for _, testCase := range testCases {
		actual, err := Decode([]byte(testCase.data))
		if testCase.expectErr != "" {
			if assert.Error(t, err, testCase.description) {
				assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
			}
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Len(t, actual.Steps, testCase.expectSteps, testCase.description)
	}
}

func TestDecode_Params(t *testing.T) {
	actual, err := Decode([]byte(`name: custom
steps:
  - codemod: remix/single-fetch/bump-dependencies
    params:
      version: "2.10.0"
      bumpMajor: false
      packages: ["@remix-run/node", "@remix-run/react"]
`))
	require.NoError(t, err)
	params := actual.Steps[0].Params
	assert.Equal(t, "2.10.0", params.String("version", ""))
	bumpMajor, err := params.Bool("bumpMajor", true)
	require.NoError(t, err)
	assert.False(t, bumpMajor)
	assert.Equal(t, []string{"@remix-run/node", "@remix-run/react"}, params.Strings("packages", nil))
	require.NoError(t, actual.Validate(catalog.Registry()))
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"remix/define-route", "remix/single-fetch"}, BuiltinNames())
	registry := catalog.Registry()
	for _, name := range BuiltinNames() {
		actual, err := Builtin(name)
		require.NoError(t, err, name)
		assert.NoError(t, actual.Validate(registry), name)
	}
	_, err := Builtin("remix/unknown")
	assert.Error(t, err)
}

func TestRecipe_Validate(t *testing.T) {
	err := Single("remix/unknown", nil).Validate(catalog.Registry())
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unknown codemod")
	}
	err = Single("remix/single-fetch/bump-dependencies", codemod.Params{"version": "next"}).Validate(catalog.Registry())
	assert.Error(t, err)
}

func TestStage_Matches(t *testing.T) {
	var testCases = []struct {
		description string
		include     []string
		path        string
		expect      bool
	}{
		{description: "no include", path: "app/root.tsx", expect: true},
		{description: "routes glob", include: []string{"**/routes/**"}, path: "app/routes/_index.tsx", expect: true},
		{description: "nested routes glob", include: []string{"**/routes/**"}, path: "app/routes/admin/users.tsx", expect: true},
		{description: "routes glob miss", include: []string{"**/routes/**"}, path: "app/root.tsx", expect: false},
		{description: "root file", include: []string{"**/tsconfig.json"}, path: "tsconfig.json", expect: true},
		{description: "second glob", include: []string{"*.ts", "app/*.tsx"}, path: "app/root.tsx", expect: true},
	}
	for _, testCase := range testCases {
		s := &stage{Step: &Step{Include: testCase.include}}
		assert.Equal(t, testCase.expect, s.matches(testCase.path), testCase.description)
	}
}

func TestSourceFiles(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		isDir       bool
		expect      bool
	}{
		{description: "route module", name: "_index.tsx", expect: true},
		{description: "javascript", name: "server.mjs", expect: true},
		{description: "typedef", name: "env.d.ts", expect: false},
		{description: "package manifest", name: "package.json", expect: true},
		{description: "tsconfig", name: "tsconfig.json", expect: true},
		{description: "other json", name: "data.json", expect: false},
		{description: "stylesheet", name: "app.css", expect: false},
		{description: "source dir", name: "app", isDir: true, expect: true},
		{description: "dependencies", name: "node_modules", isDir: true, expect: false},
		{description: "build output", name: "build", isDir: true, expect: false},
	}
	for _, testCase := range testCases {
		info := file.NewInfo(testCase.name, 0, file.DefaultFileOsMode, time.Now(), testCase.isDir)
		assert.Equal(t, testCase.expect, SourceFiles(info), testCase.description)
	}
}

func TestFingerprint(t *testing.T) {
	first, err := Fingerprint([]byte("export default defineRoute({ loader })"))
	require.NoError(t, err)
	second, err := Fingerprint([]byte("export default defineRoute({ loader })"))
	require.NoError(t, err)
	third, err := Fingerprint([]byte("export default defineRoute({ action })"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, third)
}

func TestUnifiedDiff(t *testing.T) {
	text, stat, err := unifiedDiff("app/routes/a.tsx", "a\nb\nc\n", "a\nB\nc\nd\n")
	require.NoError(t, err)
	assert.Contains(t, text, "--- a/app/routes/a.tsx")
	assert.Contains(t, text, "+++ b/app/routes/a.tsx")
	assert.Contains(t, text, "-b\n+B\n")
	require.NotNil(t, stat)
	assert.Positive(t, stat.Added+stat.Changed)
}
