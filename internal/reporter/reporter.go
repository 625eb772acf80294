package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/parser"
)

// File is the lint outcome of one template
type File struct {
	Result      *analyzer.Result
	Source      string
	ParseErrors []parser.ParseError
}

// Reporter is the interface for outputting analysis results
type Reporter interface {
	Report(files []File) error
}

// Format represents the output format
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
	FormatSARIF    Format = "sarif"
	FormatMarkdown Format = "markdown"
	FormatGitHub   Format = "github"
)

// Formats lists every supported format
var Formats = []Format{FormatTerminal, FormatJSON, FormatSARIF, FormatMarkdown, FormatGitHub}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(formatNames(), ", "))
}

func formatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// New creates a reporter for the given format
func New(format Format, w io.Writer, opts ...Option) Reporter {
	cfg := &Config{
		Writer:    w,
		UseColors: true,
		Version:   "dev",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return &JSONReporter{cfg: cfg}
	case FormatSARIF:
		return &SARIFReporter{cfg: cfg}
	case FormatMarkdown:
		return &MarkdownReporter{cfg: cfg}
	case FormatGitHub:
		return &GitHubReporter{cfg: cfg}
	default:
		return &TerminalReporter{cfg: cfg}
	}
}

// RuleMeta describes a rule for formats that embed rule metadata
type RuleMeta struct {
	ID          string
	Name        string
	Description string
}

// Config holds reporter configuration
type Config struct {
	Writer    io.Writer
	UseColors bool
	Verbose   bool
	Version   string
	Rules     map[string]RuleMeta
}

// Option is a function that configures a reporter
type Option func(*Config)

// WithColors enables or disables colors
func WithColors(enabled bool) Option {
	return func(c *Config) {
		c.UseColors = enabled
	}
}

// WithVerbose enables verbose output
func WithVerbose(enabled bool) Option {
	return func(c *Config) {
		c.Verbose = enabled
	}
}

// WithVersion sets the tool version written by SARIF
func WithVersion(v string) Option {
	return func(c *Config) {
		c.Version = v
	}
}

// WithRuleMeta registers rule names and descriptions
func WithRuleMeta(rules ...RuleMeta) Option {
	return func(c *Config) {
		if c.Rules == nil {
			c.Rules = make(map[string]RuleMeta, len(rules))
		}
		for _, r := range rules {
			c.Rules[r.ID] = r
		}
	}
}

// Summary counts diagnostics across files
type Summary struct {
	Files    int
	Total    int
	Errors   int
	Warnings int
	Info     int
	Hints    int
	Fixable  int
}

// Summarize counts the diagnostics of files
func Summarize(files []File) Summary {
	s := Summary{Files: len(files)}
	for _, f := range files {
		counts := f.Result.CountBySeverity()
		s.Total += len(f.Result.Diagnostics)
		s.Errors += counts[analyzer.SeverityError]
		s.Warnings += counts[analyzer.SeverityWarning]
		s.Info += counts[analyzer.SeverityInfo]
		s.Hints += counts[analyzer.SeverityHint]
		s.Fixable += f.Result.CountFixable()
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
