package syntax

import (
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the grammar and the output conventions of a document.
type Dialect int

const (
	TypeScript Dialect = iota
	TSX
	JavaScript
	JSON
)

func (d Dialect) String() string {
	switch d {
	case TSX:
		return "tsx"
	case JavaScript:
		return "javascript"
	case JSON:
		return "json"
	}
	return "typescript"
}

// Typed reports whether type annotations and non-null assertions may be emitted.
func (d Dialect) Typed() bool {
	return d == TypeScript || d == TSX
}

// language returns the grammar for the dialect. JavaScript is a subset the
// TSX grammar accepts, JSON is parsed as a parenthesised expression.
func (d Dialect) language() *sitter.Language {
	switch d {
	case TypeScript, JSON:
		return typescript.GetLanguage()
	}
	return tsx.GetLanguage()
}

// DialectOf infers the dialect from a file name.
func DialectOf(name string) Dialect {
	switch strings.ToLower(path.Ext(name)) {
	case ".tsx":
		return TSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript
	case ".json":
		return JSON
	}
	return TypeScript
}

// SourceFile reports whether name is a file a codemod can parse.
func SourceFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs", ".json":
		return !strings.HasSuffix(name, ".d.ts")
	}
	return false
}
