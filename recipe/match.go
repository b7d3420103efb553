package recipe

import (
	"os"
	"path"

	"github.com/viant/codemod/syntax"
)

// MatcherFn decides whether a walked entry is visited; returning false for a
// directory skips its subtree.
type MatcherFn func(info os.FileInfo) bool

var skippedDirs = map[string]bool{
	"node_modules": true,
	"build":        true,
	"dist":         true,
	".cache":       true,
	".git":         true,
	"coverage":     true,
}

var configFiles = map[string]bool{
	"package.json":  true,
	"tsconfig.json": true,
}

// SourceFiles matches scripts and project configuration files and skips
// dependency and build output directories.
func SourceFiles(info os.FileInfo) bool {
	name := info.Name()
	if info.IsDir() {
		return !skippedDirs[name]
	}
	if path.Ext(name) == ".json" {
		return configFiles[name]
	}
	return syntax.SourceFile(name)
}
