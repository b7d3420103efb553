package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"golang.org/x/sync/errgroup"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/syntax"
)

// Runner applies recipes to project trees.
type Runner struct {
	registry     *codemod.Registry
	fs           afs.Service
	workers      int
	dryRun       bool
	diff         bool
	logger       *slog.Logger
	match        MatcherFn
	include      []string
	projectFiles []string
}

// New creates a runner resolving codemods from registry.
func New(registry *codemod.Registry, options ...Option) *Runner {
	ret := &Runner{
		registry:     registry,
		fs:           afs.New(),
		workers:      runtime.NumCPU(),
		logger:       slog.Default(),
		match:        SourceFiles,
		projectFiles: []string{"package.json"},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Run applies recipe to every matched file under root. Files are processed
// concurrently; the steps of one file run in order on one document. A file
// whose codemod fails is reported and left as it was.
func (r *Runner) Run(ctx context.Context, root string, recipe *Recipe) (*Report, error) {
	stages, err := recipe.compile(r.registry)
	if err != nil {
		return nil, err
	}
	sources, projects, err := r.scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %v: %w", root, err)
	}
	report := &Report{
		RunID:    uuid.New().String(),
		Recipe:   recipe.Name,
		Root:     root,
		DryRun:   r.dryRun,
		Started:  time.Now(),
		Projects: projects,
	}
	logger := r.logger.With("run", report.RunID, "recipe", recipe.Name)
	logger.Info("running recipe", "root", root, "files", len(sources), "projects", len(projects))
	results := make([]*FileReport, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, src := range sources {
		group.Go(func() error {
			result, err := r.process(groupCtx, logger, src, stages)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	report.add(results...)
	report.Elapsed = time.Since(report.Started)
	logger.Info("recipe done", "modified", report.Count(Modified), "failed", report.Count(Failed), "elapsed", report.Elapsed)
	return report, nil
}

// process runs the applicable stages over one file. Returned errors abort
// the run; codemod failures are recorded on the file report instead.
func (r *Runner) process(ctx context.Context, logger *slog.Logger, src *source, stages []*stage) (*FileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := &FileReport{URL: src.URL, Path: src.Path, Project: src.Project.URL, Status: Untouched}
	var applicable []*stage
	for _, candidate := range stages {
		if candidate.matches(src.Path) && (len(r.include) == 0 || matchAny(r.include, src.Path)) {
			applicable = append(applicable, candidate)
		}
	}
	if len(applicable) == 0 {
		return result, nil
	}
	data, err := r.fs.DownloadWithURL(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", src.URL, err)
	}
	logger = logger.With("path", src.Path)
	doc, err := syntax.Parse(ctx, src.Path, data)
	if err != nil {
		return result.fail(err), nil
	}
	if doc.HasErrors() {
		logger.Warn("skipping file with syntax errors")
		return result.fail(errors.New("source has syntax errors")), nil
	}
	before := doc.Text()
	for _, current := range applicable {
		out, err := current.codemod.Transform(doc)
		if err != nil {
			logger.Warn("codemod failed", "codemod", current.Codemod, "error", err)
			return result.fail(fmt.Errorf("%v: %w", current.Codemod, err)), nil
		}
		if out == nil {
			continue
		}
		result.Codemods = append(result.Codemods, current.Codemod)
		result.Diagnostics = append(result.Diagnostics, out.Diagnostics...)
		if out.Text != doc.Text() {
			if doc, err = syntax.Parse(ctx, src.Path, []byte(out.Text)); err != nil {
				return result.fail(err), nil
			}
		}
	}
	if len(result.Codemods) == 0 {
		return result, nil
	}
	after := doc.Text()
	if doc.HasErrors() {
		logger.Warn("rewrite produced syntax errors", "codemods", result.Codemods)
		return result.fail(errors.New("rewrite produced syntax errors")), nil
	}
	if result.Before, err = Fingerprint([]byte(before)); err != nil {
		return nil, err
	}
	if result.After, err = Fingerprint([]byte(after)); err != nil {
		return nil, err
	}
	if before == after {
		result.Status = Unchanged
		logger.Debug("rewritten to itself", "codemods", result.Codemods)
		return result, nil
	}
	result.Status = Modified
	if r.diff {
		if result.Diff, result.Stat, err = unifiedDiff(src.Path, before, after); err != nil {
			return nil, err
		}
	}
	if !r.dryRun {
		if err = r.fs.Upload(ctx, src.URL, file.DefaultFileOsMode, strings.NewReader(after)); err != nil {
			return nil, fmt.Errorf("failed to write %v: %w", src.URL, err)
		}
	}
	logger.Debug("modified", "codemods", result.Codemods, "diagnostics", len(result.Diagnostics))
	return result, nil
}
