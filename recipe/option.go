package recipe

import (
	"log/slog"

	"github.com/viant/afs"
)

type Option func(*Runner)

// WithFS sets the file system used to walk, read and write project files.
func WithFS(fs afs.Service) Option {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithWorkers bounds the number of files processed concurrently.
func WithWorkers(workers int) Option {
	return func(r *Runner) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithDryRun computes the report without writing files.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithDiff adds unified diffs of modified files to the report.
func WithDiff(diff bool) Option {
	return func(r *Runner) {
		r.diff = diff
	}
}

// WithLogger sets the run logger, nil keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMatcher sets the walk filter.
func WithMatcher(matcher MatcherFn) Option {
	return func(r *Runner) {
		r.match = matcher
	}
}

// WithInclude restricts every step to files matching one of globs,
// relative to their project root.
func WithInclude(globs ...string) Option {
	return func(r *Runner) {
		r.include = append(r.include, globs...)
	}
}

// WithProjectFiles sets the file names marking project roots.
func WithProjectFiles(files ...string) Option {
	return func(r *Runner) {
		r.projectFiles = files
	}
}
