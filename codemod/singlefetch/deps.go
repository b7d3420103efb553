package singlefetch

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/engine"
	"github.com/viant/codemod/syntax"
)

const defaultVersion = "2.9.0"

var (
	defaultPackages = []string{
		"@remix-run/react",
		"@remix-run/express",
		"@remix-run/node",
		"@remix-run/dev",
		"@remix-run/eslint-config",
	}
	defaultSections = []string{"dependencies", "devDependencies"}
)

type bumpDependencies struct {
	version   string
	packages  map[string]bool
	sections  []string
	bumpMajor bool
}

// NewBumpDependencies creates the package.json dependency bump codemod.
func NewBumpDependencies(params codemod.Params) (codemod.Codemod, error) {
	version := strings.TrimPrefix(params.String("version", defaultVersion), "v")
	if !semver.IsValid("v" + version) {
		return nil, fmt.Errorf("invalid version: %v", version)
	}
	bumpMajor, err := params.Bool("bumpMajor", true)
	if err != nil {
		return nil, err
	}
	ret := &bumpDependencies{
		version:   version,
		packages:  map[string]bool{},
		sections:  params.Strings("sections", defaultSections),
		bumpMajor: bumpMajor,
	}
	for _, pkg := range params.Strings("packages", defaultPackages) {
		ret.packages[pkg] = true
	}
	return ret, nil
}

func (c *bumpDependencies) Name() string { return BumpDependencies }

func (c *bumpDependencies) Transform(doc *syntax.Document) (*codemod.Result, error) {
	if !codemod.HasSuffix(doc, "package.json") {
		return nil, nil
	}
	objects := doc.Root().Descendants(syntax.ObjectLiteral)
	if len(objects) == 0 {
		return nil, &engine.PreconditionError{Expected: "object", Context: "package.json"}
	}
	manifest := objects[0]
	result := &codemod.Result{}
	var edits []syntax.Edit
	for _, section := range c.sections {
		entry := syntax.Property(manifest, section)
		if entry == nil {
			continue
		}
		deps := syntax.Value(entry)
		if deps == nil || deps.Kind() != syntax.ObjectLiteral {
			continue
		}
		for _, dep := range syntax.Entries(deps) {
			if !c.packages[syntax.PropertyKey(dep)] {
				continue
			}
			value := syntax.Value(dep)
			if value == nil || value.Kind() != syntax.StringLiteral {
				continue
			}
			current := syntax.Unquote(value.Text())
			if !outdated(current, c.version) {
				if !semver.IsValid("v" + trimRange(current)) {
					result.Diagnostics = append(result.Diagnostics, codemod.NewDiagnostic(BumpDependencies, value, "%s version %s is not a semantic version", syntax.PropertyKey(dep), current))
				}
				continue
			}
			edits = append(edits, syntax.Edit{Start: value.Start(), End: value.End(), Text: strconv.Quote(c.version)})
		}
	}
	if len(edits) > 0 && c.bumpMajor {
		if entry := syntax.Property(manifest, "version"); entry != nil {
			if value := syntax.Value(entry); value != nil && value.Kind() == syntax.StringLiteral {
				if next, ok := nextMajor(syntax.Unquote(value.Text())); ok {
					edits = append(edits, syntax.Edit{Start: value.Start(), End: value.End(), Text: strconv.Quote(next)})
				}
			}
		}
	}
	if err := doc.Apply(edits...); err != nil {
		return nil, err
	}
	result.Text = doc.Text()
	return result, nil
}

// trimRange strips npm range operators from a version.
func trimRange(version string) string {
	return strings.TrimLeft(strings.TrimSpace(version), "^~=>v")
}

// outdated reports whether current is a semantic version below target.
func outdated(current, target string) bool {
	version := "v" + trimRange(current)
	if !semver.IsValid(version) {
		return false
	}
	return semver.Compare(version, "v"+target) < 0
}

// nextMajor returns the first release of the next major version.
func nextMajor(version string) (string, bool) {
	canonical := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(canonical) {
		return "", false
	}
	major, err := strconv.Atoi(strings.TrimPrefix(semver.Major(canonical), "v"))
	if err != nil {
		return "", false
	}
	return strconv.Itoa(major+1) + ".0.0", true
}
