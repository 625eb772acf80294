package analyzer

import (
	"errors"
	"fmt"

	"github.com/HueCodes/vuelint/internal/parser"
)

// Rule is the interface that linting rules must implement
// This is duplicated here to avoid circular imports
type Rule interface {
	ID() string
	Category() Category
	Severity() Severity
	Create(ctx *RuleContext) *Visitor
}

// Configurable is implemented by rules that accept options.
// Configure validates options and returns a configured copy of the rule.
type Configurable interface {
	Configure(options map[string]interface{}) (Rule, error)
}

// RuleContext provides context for one rule during one pass over one file
type RuleContext struct {
	Filename string
	Source   string
	Document *parser.Document
	Resolver *Resolver
	Config   map[string]interface{}

	severity  Severity
	collector *Collector
}

// Report records a diagnostic and returns its id for Revoke
func (c *RuleContext) Report(d Diagnostic) int {
	d.Severity = c.severity
	if d.Context == "" {
		d.Context = c.GetLine(d.Pos.Line)
	}
	return c.collector.Report(d)
}

// Revoke drops the fix of an earlier reported diagnostic
func (c *RuleContext) Revoke(id int) {
	c.collector.Revoke(id)
}

// GetLine returns the source line at the given line number (1-based)
func (c *RuleContext) GetLine(lineNum int) string {
	return c.Resolver.Index().Line(lineNum)
}

// Text returns the source text covered by n
func (c *RuleContext) Text(n parser.Node) string {
	return c.Source[n.Pos().Offset:n.End().Offset]
}

// Analyzer runs rules against parsed templates.
// It is immutable after New and safe for concurrent use.
type Analyzer struct {
	rules       []Rule
	enabled     map[string]bool
	disabled    map[string]bool
	minSeverity Severity
	config      map[string]map[string]interface{}
	severities  map[string]Severity
}

// Option is a function that configures an Analyzer
type Option func(*Analyzer)

// New creates a new Analyzer with the given options. Rule options are
// validated here; every invalid option is reported in the joined error.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		enabled:     make(map[string]bool),
		disabled:    make(map[string]bool),
		minSeverity: SeverityWarning,
		config:      make(map[string]map[string]interface{}),
		severities:  make(map[string]Severity),
	}
	for _, opt := range opts {
		opt(a)
	}

	known := make(map[string]bool, len(a.rules))
	var errs []error
	configured := make([]Rule, 0, len(a.rules))
	for _, rule := range a.rules {
		known[rule.ID()] = true
		c, ok := rule.(Configurable)
		if !ok {
			configured = append(configured, rule)
			continue
		}
		r, err := c.Configure(a.config[rule.ID()])
		if err != nil {
			errs = append(errs, withRuleID(rule.ID(), err))
			continue
		}
		configured = append(configured, r)
	}
	a.rules = configured

	for id := range a.config {
		if !known[id] {
			errs = append(errs, &ConfigError{RuleID: id, Err: ErrUnknownRule})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return a, nil
}

func withRuleID(id string, err error) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		if ce.RuleID == "" {
			ce.RuleID = id
		}
		return err
	}
	return &ConfigError{RuleID: id, Err: err}
}

// WithRules sets the rules to run
func WithRules(rules ...Rule) Option {
	return func(a *Analyzer) {
		a.rules = append(a.rules, rules...)
	}
}

// WithEnabled sets specific rules to enable (if set, only these run)
func WithEnabled(ids ...string) Option {
	return func(a *Analyzer) {
		for _, id := range ids {
			a.enabled[id] = true
		}
	}
}

// WithDisabled sets specific rules to disable
func WithDisabled(ids ...string) Option {
	return func(a *Analyzer) {
		for _, id := range ids {
			a.disabled[id] = true
		}
	}
}

// WithMinSeverity sets the minimum severity to report
func WithMinSeverity(s Severity) Option {
	return func(a *Analyzer) {
		a.minSeverity = s
	}
}

// WithRuleConfig sets configuration for a specific rule
func WithRuleConfig(ruleID string, config map[string]interface{}) Option {
	return func(a *Analyzer) {
		a.config[ruleID] = config
	}
}

// WithSeverityOverride replaces a rule's default severity
func WithSeverityOverride(ruleID string, s Severity) Option {
	return func(a *Analyzer) {
		a.severities[ruleID] = s
	}
}

// Rules returns the configured rules that will run
func (a *Analyzer) Rules() []Rule {
	var out []Rule
	for _, r := range a.rules {
		if a.shouldRun(r) {
			out = append(out, r)
		}
	}
	return out
}

// Analyze runs all enabled rules against the document in a single traversal
func (a *Analyzer) Analyze(doc *parser.Document, filename string) *Result {
	collector := NewCollector(len(doc.Source))
	resolver := NewResolver(doc.Source)

	var visitors []*Visitor
	for _, rule := range a.rules {
		// Check if rule should run
		if !a.shouldRun(rule) {
			continue
		}

		severity := rule.Severity()
		if s, ok := a.severities[rule.ID()]; ok {
			severity = s
		}
		if severity < a.minSeverity {
			continue
		}

		ctx := &RuleContext{
			Filename:  filename,
			Source:    doc.Source,
			Document:  doc,
			Resolver:  resolver,
			Config:    a.config[rule.ID()],
			severity:  severity,
			collector: collector,
		}
		visitors = append(visitors, rule.Create(ctx))
	}

	for _, root := range Roots(doc) {
		Walk(root, visitors...)
	}

	return &Result{
		Diagnostics: collector.Diagnostics(),
		Filename:    filename,
	}
}

// shouldRun checks if a rule should be run
func (a *Analyzer) shouldRun(rule Rule) bool {
	// If disabled, don't run
	if a.disabled[rule.ID()] {
		return false
	}

	// If enabled set is specified, only run those
	if len(a.enabled) > 0 {
		return a.enabled[rule.ID()]
	}

	return true
}

// AnalyzeSource parses and analyzes source code
func (a *Analyzer) AnalyzeSource(source, filename string) (*Result, []parser.ParseError) {
	doc, parseErrors := parser.Parse(source)
	// Still try to analyze what we can
	return a.Analyze(doc, filename), parseErrors
}

// String summarizes the analyzer for debug logging
func (a *Analyzer) String() string {
	return fmt.Sprintf("analyzer(%d rules, min %s)", len(a.Rules()), a.minSeverity)
}
