package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gopkg.in/yaml.v3"

	"github.com/viant/codemod/codemod"
	"github.com/viant/codemod/codemod/catalog"
	"github.com/viant/codemod/recipe"
)

// runFlags hold the flags shared by run and recipe.
type runFlags struct {
	params  []string
	include []string
	dryRun  bool
	diff    bool
	verbose bool
	workers int
	report  string
}

func (f *runFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.params, "param", "p", nil, "codemod param as key=value, comma separated values become lists")
	flags.StringArrayVar(&f.include, "include", nil, "only process files matching glob, relative to the project root")
	flags.BoolVar(&f.dryRun, "dry-run", false, "report changes without writing files")
	flags.BoolVar(&f.diff, "diff", false, "print unified diffs of modified files")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log every file")
	flags.IntVarP(&f.workers, "workers", "w", runtime.NumCPU(), "files processed concurrently")
	flags.StringVar(&f.report, "report", "", "write a YAML report to this file")
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "remixmod",
		Short:        "Apply codemods to Remix projects",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.AddCommand(newListCommand(), newRunCommand(), newRecipeCommand())
	return root
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List codemods and builtin recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := catalog.Registry()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "codemods:")
			for _, name := range registry.Names() {
				fmt.Fprintf(out, "  %-56s %s\n", name, registry.Description(name))
			}
			fmt.Fprintln(out, "recipes:")
			for _, name := range recipe.BuiltinNames() {
				builtin, err := recipe.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-56s %s\n", name, builtin.Description)
			}
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <codemod> [dir]",
		Short: "Apply one codemod to a project tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := codemod.ParseParams(flags.params)
			if err != nil {
				return err
			}
			return execute(cmd, flags, recipe.Single(args[0], params), dirArg(args))
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRecipeCommand() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "recipe <recipe.yaml|builtin> [dir]",
		Short: "Apply a recipe to a project tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := loadRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(flags.params) > 0 {
				params, err := codemod.ParseParams(flags.params)
				if err != nil {
					return err
				}
				for _, step := range selected.Steps {
					if step.Params == nil {
						step.Params = codemod.Params{}
					}
					for k, v := range params {
						step.Params[k] = v
					}
				}
			}
			return execute(cmd, flags, selected, dirArg(args))
		},
	}
	flags.bind(cmd)
	return cmd
}

func loadRecipe(ctx context.Context, name string) (*recipe.Recipe, error) {
	for _, builtin := range recipe.BuiltinNames() {
		if builtin == name {
			return recipe.Builtin(name)
		}
	}
	location, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	return recipe.Load(ctx, afs.New(), location)
}

func dirArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return "."
}

func execute(cmd *cobra.Command, flags *runFlags, selected *recipe.Recipe, dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fs := afs.New()
	runner := recipe.New(catalog.Registry(),
		recipe.WithFS(fs),
		recipe.WithWorkers(flags.workers),
		recipe.WithDryRun(flags.dryRun),
		recipe.WithDiff(flags.diff),
		recipe.WithInclude(flags.include...),
		recipe.WithLogger(logger),
	)
	report, err := runner.Run(ctx, root, selected)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, item := range report.Files {
		switch item.Status {
		case recipe.Failed:
			fmt.Fprintf(out, "FAIL %s: %s\n", item.Path, item.Error)
		case recipe.Modified:
			fmt.Fprintf(out, "M    %s\n", item.Path)
			if item.Diff != "" {
				fmt.Fprint(out, item.Diff)
			}
		}
		for _, diagnostic := range item.Diagnostics {
			fmt.Fprintf(out, "     %s\n", diagnostic)
		}
	}
	fmt.Fprintln(out, report.Summary())
	if flags.report != "" {
		if err := writeReport(ctx, fs, flags.report, report); err != nil {
			return err
		}
	}
	if failed := report.Count(recipe.Failed); failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func writeReport(ctx context.Context, fs afs.Service, location string, report *recipe.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	if !strings.Contains(location, "://") {
		if location, err = filepath.Abs(location); err != nil {
			return err
		}
	}
	return fs.Upload(ctx, location, file.DefaultFileOsMode, strings.NewReader(string(data)))
}
