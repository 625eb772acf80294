package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/cache"
	"github.com/HueCodes/vuelint/internal/config"
	"github.com/HueCodes/vuelint/internal/logger"
	"github.com/HueCodes/vuelint/internal/parallel"
	"github.com/HueCodes/vuelint/internal/reporter"
)

func lintCmd() *cobra.Command {
	var (
		sel           selection
		format        string
		useCache      bool
		cacheLocation string
	)

	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Analyze templates and report issues",
		Long: `Analyze Vue and HTML templates for style problems and deprecated syntax.

Directories are walked recursively. With no arguments the current
directory is linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := reporter.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := loadSetup(cmd, &sel)
			if err != nil {
				return err
			}

			files, err := collectFiles(s.cfg, args)
			if err != nil {
				return err
			}

			var store *cache.ResultStore
			if useCache {
				fp, err := cache.Fingerprint(struct {
					Version   string         `msgpack:"version"`
					Config    *config.Config `msgpack:"config"`
					Selection *selection     `msgpack:"selection"`
				}{version, s.cfg, &sel})
				if err != nil {
					return fmt.Errorf("fingerprinting config: %w", err)
				}
				if store, err = cache.OpenResultStore(cacheLocation, fp); err != nil {
					return err
				}
			}

			proc := parallel.New(parallel.WithWorkers(s.cfg.Workers))
			results := parallel.Process(cmd.Context(), proc, files, func(_ context.Context, filename string) (reporter.File, error) {
				return lintFile(s.analyzer, store, filename)
			})

			var report []reporter.File
			for _, r := range results {
				if r.Error == nil {
					report = append(report, r.Result)
				}
			}

			w, colors := output(cmd)
			verbose, _ := cmd.Flags().GetBool("verbose")
			rep := reporter.New(f, w,
				reporter.WithColors(colors),
				reporter.WithVerbose(verbose),
				reporter.WithVersion(version),
				reporter.WithRuleMeta(ruleMeta()...),
			)
			if err := rep.Report(report); err != nil {
				return fmt.Errorf("failed to report: %w", err)
			}

			if err := store.Save(); err != nil {
				logger.Log.Warn("could not save result cache", "path", cacheLocation, "error", err)
			}

			if errs := parallel.CollectErrors(results); errs != nil {
				return &exitError{code: exitFailure, err: errs}
			}
			if reporter.Summarize(report).Errors > 0 {
				return errFindings
			}
			return nil
		},
	}

	sel.addFlags(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "terminal", "Output format: terminal|json|sarif|markdown|github")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for unchanged files")
	cmd.Flags().StringVar(&cacheLocation, "cache-location", cache.DefaultResultFile, "Result cache file")

	return cmd
}

// lintFile analyzes one file, consulting the result store first. Files with
// parse errors are never stored so their errors are reported on every run.
func lintFile(a *analyzer.Analyzer, store *cache.ResultStore, filename string) (reporter.File, error) {
	source, err := readSource(filename)
	if err != nil {
		return reporter.File{}, err
	}

	if diags, ok := store.Get(filename, source); ok {
		logger.Log.Debug("result cache hit", "file", filename)
		return reporter.File{
			Result: &analyzer.Result{Filename: filename, Diagnostics: diags},
			Source: source,
		}, nil
	}

	result, parseErrors := a.AnalyzeSource(source, filename)
	if len(parseErrors) == 0 {
		store.Put(filename, source, result.Diagnostics)
	}
	return reporter.File{Result: result, Source: source, ParseErrors: parseErrors}, nil
}
