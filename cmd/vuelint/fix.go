package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/cache"
	"github.com/HueCodes/vuelint/internal/formatter"
	"github.com/HueCodes/vuelint/internal/optimizer"
	"github.com/HueCodes/vuelint/internal/parallel"
)

// fixOutcome is the optimizer result for one file and its convergence error
type fixOutcome struct {
	result *optimizer.Result
	err    error
}

func fixCmd() *cobra.Command {
	var (
		sel    selection
		diff   bool
		dryRun bool
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Auto-fix issues in templates",
		Long: `Apply automatic fixes until the templates stop changing.

With a single file and no flags the fixed source is printed to stdout.
Use --write to update files in place or --diff to review the changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup(cmd, &sel)
			if err != nil {
				return err
			}

			files, err := collectFiles(s.cfg, args)
			if err != nil {
				return err
			}
			if !write && !dryRun && len(files) != 1 {
				diff = true
			}

			opt := optimizer.New(s.analyzer,
				optimizer.WithMaxPasses(s.cfg.MaxFixPasses),
				optimizer.WithCache(cache.NewASTCache()),
			)

			proc := parallel.New(parallel.WithWorkers(s.cfg.Workers))
			results := parallel.Process(cmd.Context(), proc, files, func(_ context.Context, filename string) (fixOutcome, error) {
				source, err := readSource(filename)
				if err != nil {
					return fixOutcome{}, err
				}
				res, err := opt.Optimize(filename, source)
				if err != nil && !errors.Is(err, optimizer.ErrNotConverged) {
					return fixOutcome{}, err
				}
				return fixOutcome{result: res, err: err}, nil
			})

			w, colors := output(cmd)
			stderr := cmd.ErrOrStderr()

			var (
				failed    bool
				remaining int
				errs      []error
			)
			for _, r := range results {
				if r.Error != nil {
					continue
				}
				res := r.Result.result
				if r.Result.err != nil {
					fmt.Fprintf(stderr, "warning: %v\n", r.Result.err)
					failed = true
				}
				remaining += len(res.Remaining)
				for _, d := range res.Remaining {
					if d.Severity == analyzer.SeverityError {
						failed = true
					}
				}

				switch {
				case dryRun:
					printChanges(w, res)
				case write:
					if !res.HasChanges() {
						continue
					}
					if err := writeFixed(res); err != nil {
						errs = append(errs, err)
						continue
					}
					fmt.Fprintf(w, "Fixed %s (%d changes)\n", res.Filename, len(res.Changes))
				case diff:
					d := formatter.Diff(res.Filename, res.Original, res.Fixed)
					if colors {
						d = formatter.Colorize(d)
					}
					fmt.Fprint(w, d)
				default:
					fmt.Fprint(w, res.Fixed)
				}
			}

			if remaining > 0 && (write || dryRun) {
				fmt.Fprintf(stderr, "%d issues need manual attention, run `vuelint lint` for details\n", remaining)
			}

			if aggErr := parallel.CollectErrors(results); aggErr != nil {
				errs = append(errs, aggErr)
			}
			if err := errors.Join(errs...); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			if failed {
				return errFindings
			}
			return nil
		},
	}

	sel.addFlags(cmd)
	cmd.Flags().BoolVar(&diff, "diff", false, "Show a unified diff instead of the fixed source")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the fixes that would be applied without changing files")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write changes back to the files")

	return cmd
}

func printChanges(w io.Writer, res *optimizer.Result) {
	if !res.HasChanges() {
		return
	}
	fmt.Fprintf(w, "%s:\n", res.Filename)
	for _, c := range res.Changes {
		fmt.Fprintf(w, "  pass %d  %d:%d  [%s] %s\n", c.Pass, c.Pos.Line, c.Pos.Column, c.Rule, c.Title)
	}
}

// writeFixed replaces the file contents, keeping its permissions
func writeFixed(res *optimizer.Result) error {
	info, err := os.Stat(res.Filename)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Filename, err)
	}
	if err := os.WriteFile(res.Filename, []byte(res.Fixed), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Filename, err)
	}
	return nil
}
