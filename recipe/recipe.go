// Package recipe applies ordered codemod steps to the source files of
// JS/TS projects stored on any afs supported file system.
package recipe

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/codemod/codemod"
)

// Step runs one codemod over the files matching Include, or all files when empty.
type Step struct {
	Codemod string         `yaml:"codemod"`
	Include []string       `yaml:"include,omitempty"`
	Params  codemod.Params `yaml:"params,omitempty"`
}

// Recipe is an ordered list of steps applied file by file.
type Recipe struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Steps       []*Step `yaml:"steps"`
}

//go:embed builtin/*.yaml
var builtin embed.FS

// Decode parses a YAML recipe.
func Decode(data []byte) (*Recipe, error) {
	ret := &Recipe{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if len(ret.Steps) == 0 {
		return nil, fmt.Errorf("recipe %v has no steps", ret.Name)
	}
	for i, step := range ret.Steps {
		if step == nil || step.Codemod == "" {
			return nil, fmt.Errorf("recipe %v: step %d has no codemod", ret.Name, i+1)
		}
		for _, glob := range step.Include {
			if !doublestar.ValidatePattern(glob) {
				return nil, fmt.Errorf("recipe %v: step %d: invalid include %q", ret.Name, i+1, glob)
			}
		}
	}
	return ret, nil
}

// Load reads a YAML recipe from URL.
func Load(ctx context.Context, fs afs.Service, URL string) (*Recipe, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %v: %w", URL, err)
	}
	return Decode(data)
}

// Single wraps one codemod into a recipe.
func Single(name string, params codemod.Params, include ...string) *Recipe {
	return &Recipe{Name: name, Steps: []*Step{{Codemod: name, Include: include, Params: params}}}
}

// Builtin returns the embedded recipe with the given name.
func Builtin(name string) (*Recipe, error) {
	recipes, err := builtins()
	if err != nil {
		return nil, err
	}
	if ret, ok := recipes[name]; ok {
		return ret, nil
	}
	return nil, fmt.Errorf("unknown builtin recipe: %v", name)
}

// BuiltinNames lists the embedded recipes.
func BuiltinNames() []string {
	recipes, err := builtins()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtins() (map[string]*Recipe, error) {
	entries, err := builtin.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	ret := map[string]*Recipe{}
	for _, entry := range entries {
		data, err := builtin.ReadFile(path.Join("builtin", entry.Name()))
		if err != nil {
			return nil, err
		}
		decoded, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", entry.Name(), err)
		}
		ret[decoded.Name] = decoded
	}
	return ret, nil
}

// stage is a step bound to its codemod instance.
type stage struct {
	*Step
	codemod codemod.Codemod
}

func (s *stage) matches(relPath string) bool {
	if len(s.Include) == 0 {
		return true
	}
	return matchAny(s.Include, relPath)
}

func matchAny(globs []string, relPath string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, relPath); ok {
			return true
		}
	}
	return false
}

// Validate checks that every step names a registered codemod with valid params.
func (r *Recipe) Validate(registry *codemod.Registry) error {
	_, err := r.compile(registry)
	return err
}

func (r *Recipe) compile(registry *codemod.Registry) ([]*stage, error) {
	var ret []*stage
	for _, step := range r.Steps {
		mod, err := registry.New(step.Codemod, step.Params)
		if err != nil {
			return nil, err
		}
		ret = append(ret, &stage{Step: step, codemod: mod})
	}
	return ret, nil
}
