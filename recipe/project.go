package recipe

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/codemod/syntax"
)

// Project is a directory holding a project marker such as package.json.
type Project struct {
	URL  string `yaml:"url" json:"url"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// source is a matched file with its path relative to its project root.
type source struct {
	URL     string
	Path    string
	Project *Project
}

// scan walks root, detecting project roots and collecting matched files.
// Files belong to the deepest enclosing project; root itself is the
// fallback project.
func (r *Runner) scan(ctx context.Context, root string) ([]*source, []*Project, error) {
	var files []string
	roots := map[string]bool{}
	base := root
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !r.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		base = baseURL
		dir := strings.TrimRight(url.Join(baseURL, parent), "/")
		for _, marker := range r.projectFiles {
			if info.Name() == marker {
				roots[dir] = true
				break
			}
		}
		files = append(files, dir+"/"+info.Name())
		return true, nil
	}
	if err := r.fs.Walk(ctx, root, visitor); err != nil {
		return nil, nil, err
	}
	base = strings.TrimRight(base, "/")
	if len(roots) == 0 {
		roots[base] = true
	}
	var projects []*Project
	for projectURL := range roots {
		projects = append(projects, &Project{URL: projectURL, Name: r.projectName(ctx, projectURL)})
	}
	sort.Slice(projects, func(i, j int) bool {
		if len(projects[i].URL) != len(projects[j].URL) {
			return len(projects[i].URL) > len(projects[j].URL)
		}
		return projects[i].URL < projects[j].URL
	})
	fallback := &Project{URL: base}
	sort.Strings(files)
	sources := make([]*source, 0, len(files))
	for _, fileURL := range files {
		project := fallback
		for _, candidate := range projects {
			if strings.HasPrefix(fileURL, candidate.URL+"/") {
				project = candidate
				break
			}
		}
		sources = append(sources, &source{URL: fileURL, Path: strings.TrimPrefix(fileURL, project.URL+"/"), Project: project})
	}
	return sources, projects, nil
}

// projectName reads the package name from the package.json of a project.
func (r *Runner) projectName(ctx context.Context, projectURL string) string {
	data, err := r.fs.DownloadWithURL(ctx, url.Join(projectURL, "package.json"))
	if err != nil {
		return ""
	}
	doc, err := syntax.Parse(ctx, "package.json", data)
	if err != nil {
		return ""
	}
	objects := doc.Root().Descendants(syntax.ObjectLiteral)
	if len(objects) == 0 {
		return ""
	}
	entry := syntax.Property(objects[0], "name")
	if entry == nil {
		return ""
	}
	if value := syntax.Value(entry); value != nil && value.Kind() == syntax.StringLiteral {
		return syntax.Unquote(value.Text())
	}
	return ""
}
