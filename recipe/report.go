package recipe

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"

	"github.com/viant/codemod/codemod"
)

// Status is the outcome of a recipe for one file.
type Status string

const (
	// Untouched files had no applicable codemod.
	Untouched Status = "untouched"
	// Unchanged files were rewritten to themselves.
	Unchanged Status = "unchanged"
	Modified  Status = "modified"
	// Failed files were left as they were.
	Failed Status = "failed"
)

// Stat counts diff lines of a modified file.
type Stat struct {
	Added   int `yaml:"added" json:"added"`
	Changed int `yaml:"changed" json:"changed"`
	Deleted int `yaml:"deleted" json:"deleted"`
}

// FileReport describes what a recipe did to one file.
type FileReport struct {
	URL         string               `yaml:"url" json:"url"`
	Path        string               `yaml:"path" json:"path"`
	Project     string               `yaml:"project" json:"project"`
	Status      Status               `yaml:"status" json:"status"`
	Codemods    []string             `yaml:"codemods,omitempty" json:"codemods,omitempty"`
	Diagnostics []codemod.Diagnostic `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
	Error       string               `yaml:"error,omitempty" json:"error,omitempty"`
	Before      string               `yaml:"before,omitempty" json:"before,omitempty"`
	After       string               `yaml:"after,omitempty" json:"after,omitempty"`
	Stat        *Stat                `yaml:"stat,omitempty" json:"stat,omitempty"`
	Diff        string               `yaml:"diff,omitempty" json:"diff,omitempty"`
}

func (f *FileReport) fail(err error) *FileReport {
	f.Status = Failed
	f.Error = err.Error()
	return f
}

// Report summarizes one recipe run.
type Report struct {
	RunID     string        `yaml:"runId" json:"runId"`
	Recipe    string        `yaml:"recipe" json:"recipe"`
	Root      string        `yaml:"root" json:"root"`
	DryRun    bool          `yaml:"dryRun,omitempty" json:"dryRun,omitempty"`
	Started   time.Time     `yaml:"started" json:"started"`
	Elapsed   time.Duration `yaml:"elapsed" json:"elapsed"`
	Projects  []*Project    `yaml:"projects,omitempty" json:"projects,omitempty"`
	Files     []*FileReport `yaml:"files,omitempty" json:"files,omitempty"`
	Untouched int           `yaml:"untouched" json:"untouched"`
}

func (r *Report) add(files ...*FileReport) {
	for _, file := range files {
		if file == nil {
			continue
		}
		if file.Status == Untouched {
			r.Untouched++
			continue
		}
		r.Files = append(r.Files, file)
	}
	sort.Slice(r.Files, func(i, j int) bool { return r.Files[i].URL < r.Files[j].URL })
}

// Count returns the number of reported files with status.
func (r *Report) Count(status Status) int {
	if status == Untouched {
		return r.Untouched
	}
	count := 0
	for _, file := range r.Files {
		if file.Status == status {
			count++
		}
	}
	return count
}

// File returns the report of the file with the given project relative path.
func (r *Report) File(path string) *FileReport {
	for _, file := range r.Files {
		if file.Path == path {
			return file
		}
	}
	return nil
}

// Diagnostics returns all diagnostics in file order.
func (r *Report) Diagnostics() []codemod.Diagnostic {
	var ret []codemod.Diagnostic
	for _, file := range r.Files {
		ret = append(ret, file.Diagnostics...)
	}
	return ret
}

// Summary renders one line of counts.
func (r *Report) Summary() string {
	parts := []string{
		fmt.Sprintf("%d modified", r.Count(Modified)),
		fmt.Sprintf("%d unchanged", r.Count(Unchanged)),
		fmt.Sprintf("%d failed", r.Count(Failed)),
		fmt.Sprintf("%d untouched", r.Untouched),
	}
	if diagnostics := len(r.Diagnostics()); diagnostics > 0 {
		parts = append(parts, fmt.Sprintf("%d diagnostics", diagnostics))
	}
	return fmt.Sprintf("%s: %s (run %s)", r.Recipe, strings.Join(parts, ", "), r.RunID)
}

// unifiedDiff renders a unified diff of a file and counts its lines.
func unifiedDiff(name, before, after string) (string, *Stat, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return "", nil, err
	}
	parsed, err := diff.ParseFileDiff([]byte(text))
	if err != nil {
		return text, nil, fmt.Errorf("failed to parse diff of %v: %w", name, err)
	}
	stat := parsed.Stat()
	return text, &Stat{Added: int(stat.Added), Changed: int(stat.Changed), Deleted: int(stat.Deleted)}, nil
}
