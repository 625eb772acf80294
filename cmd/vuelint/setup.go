package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/config"
	"github.com/HueCodes/vuelint/internal/logger"
	"github.com/HueCodes/vuelint/internal/reporter"
	"github.com/HueCodes/vuelint/internal/rules"
)

// selection narrows the rule set from command-line flags
type selection struct {
	Only     []string `msgpack:"only"`
	Ignore   []string `msgpack:"ignore"`
	Severity string   `msgpack:"severity"`
	Quiet    bool     `msgpack:"quiet"`
}

func (s *selection) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.Severity, "severity", "", "Minimum severity: error|warning|info|hint (default from config)")
	cmd.Flags().StringSliceVar(&s.Ignore, "ignore", nil, "Rules to ignore (e.g., --ignore STY001,STY002)")
	cmd.Flags().StringSliceVar(&s.Only, "only", nil, "Only run these rules")
}

// setup is the configuration shared by lint and fix
type setup struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
}

func loadSetup(cmd *cobra.Command, sel *selection) (*setup, error) {
	configPath, _ := cmd.Flags().GetString("config")
	sel.Quiet, _ = cmd.Flags().GetBool("quiet")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.AnalyzerOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts = append([]analyzer.Option{analyzer.WithRules(rules.Analyzer(rules.All())...)}, opts...)

	if sel.Severity != "" {
		s, err := analyzer.ParseSeverity(sel.Severity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, analyzer.WithMinSeverity(s))
	}
	if sel.Quiet {
		opts = append(opts, analyzer.WithMinSeverity(analyzer.SeverityError))
	}

	only, err := resolveIDs(sel.Only)
	if err != nil {
		return nil, err
	}
	if len(only) > 0 {
		opts = append(opts, analyzer.WithEnabled(only...))
	}
	ignore, err := resolveIDs(sel.Ignore)
	if err != nil {
		return nil, err
	}
	if len(ignore) > 0 {
		opts = append(opts, analyzer.WithDisabled(ignore...))
	}

	a, err := analyzer.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Log.Debug("analyzer ready", "analyzer", a.String())

	return &setup{cfg: cfg, analyzer: a}, nil
}

// resolveIDs maps rule IDs or names given on the command line to IDs
func resolveIDs(names []string) ([]string, error) {
	var ids []string
	for _, name := range names {
		id, ok := rules.ResolveID(name)
		if !ok {
			id, ok = rules.ResolveID(strings.ToUpper(name))
		}
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, analyzer.ErrUnknownRule)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// collectFiles expands path arguments into template files. Directories are
// walked and filtered by the configured extensions and ignore patterns;
// files named explicitly are always included.
func collectFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range args {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}

			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") || cfg.Ignored(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasExtension(d.Name()) && !cfg.Ignored(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	logger.Log.Debug("collected files", "count", len(files))
	return files, nil
}

// output returns the writer for reports and whether it can show colors
func output(cmd *cobra.Command) (io.Writer, bool) {
	noColor, _ := cmd.Flags().GetBool("no-color")
	w := cmd.OutOrStdout()
	if w != os.Stdout {
		return w, false
	}
	w, tty := reporter.Stdout()
	return w, tty && !noColor
}

// ruleMeta describes every registered rule for reporters
func ruleMeta() []reporter.RuleMeta {
	all := rules.All()
	meta := make([]reporter.RuleMeta, len(all))
	for i, r := range all {
		meta[i] = reporter.RuleMeta{ID: r.ID(), Name: r.Name(), Description: r.Description()}
	}
	return meta
}

func readSource(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return string(content), nil
}
