// Package optimizer applies rule fixes to a template until no fixable
// diagnostic is left.
package optimizer

import (
	"errors"
	"fmt"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/cache"
	"github.com/HueCodes/vuelint/internal/lexer"
	"github.com/HueCodes/vuelint/internal/logger"
	"github.com/HueCodes/vuelint/internal/parser"
)

// DefaultMaxPasses bounds the fix loop when no limit is configured
const DefaultMaxPasses = 10

// ErrNotConverged is returned when fixable diagnostics remain after the last pass
var ErrNotConverged = errors.New("fixes did not converge")

// Optimizer runs the analyze/fix loop for one file at a time.
// It holds no per-file state and is safe for concurrent use.
type Optimizer struct {
	analyzer  *analyzer.Analyzer
	parser    *cache.CachedParser
	maxPasses int
}

// Option configures an Optimizer
type Option func(*Optimizer)

// New creates an Optimizer that fixes with the rules of a
func New(a *analyzer.Analyzer, opts ...Option) *Optimizer {
	o := &Optimizer{
		analyzer:  a,
		parser:    cache.NewCachedParser(nil),
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxPasses sets how many fix passes may run
func WithMaxPasses(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.maxPasses = n
		}
	}
}

// WithCache parses through c so unchanged text is not parsed twice
func WithCache(c *cache.ASTCache) Option {
	return func(o *Optimizer) {
		o.parser = cache.NewCachedParser(c)
	}
}

// Change is one fix applied during a pass
type Change struct {
	Pass  int
	Rule  string
	Title string
	Pos   lexer.Position
}

// Result holds the outcome of fixing one file
type Result struct {
	Filename    string
	Original    string
	Fixed       string
	Passes      int
	Converged   bool
	Changes     []Change
	Remaining   []analyzer.Diagnostic
	ParseErrors []parser.ParseError
}

// HasChanges reports whether the fixed text differs from the original
func (r *Result) HasChanges() bool {
	return r.Fixed != r.Original
}

// Optimize fixes source until a pass finds nothing fixable. Remaining holds the
// diagnostics of the final text. When the pass limit is hit the partially
// fixed result is returned along with ErrNotConverged.
func (o *Optimizer) Optimize(filename, source string) (*Result, error) {
	result := &Result{
		Filename: filename,
		Original: source,
		Fixed:    source,
	}

	text := source
	for pass := 1; ; pass++ {
		doc, parseErrors := o.parser.Parse(filename, text)
		analysis := o.analyzer.Analyze(doc, filename)
		result.Remaining = analysis.Diagnostics
		result.ParseErrors = parseErrors

		var fixable []analyzer.Diagnostic
		for _, d := range analysis.Diagnostics {
			if d.Fixable() {
				fixable = append(fixable, d)
			}
		}
		if len(fixable) == 0 {
			result.Converged = true
			return result, nil
		}
		if pass > o.maxPasses {
			logger.Log.Warn("fix loop did not converge", "file", filename, "passes", o.maxPasses, "fixable", len(fixable))
			return result, fmt.Errorf("%s: %w after %d passes", filename, ErrNotConverged, o.maxPasses)
		}

		fixes := make([]*analyzer.Fix, len(fixable))
		for i := range fixable {
			fixes[i] = fixable[i].Fix
		}
		next, applied, err := ApplyFixes(text, fixes)
		if err != nil {
			return nil, fmt.Errorf("%s: pass %d: %w", filename, pass, err)
		}
		if next == text {
			// fixes that change nothing would repeat forever
			return result, fmt.Errorf("%s: %w: pass %d made no progress", filename, ErrNotConverged, pass)
		}

		for i, d := range fixable {
			if applied[i] {
				result.Changes = append(result.Changes, Change{Pass: pass, Rule: d.Rule, Title: d.Fix.Title, Pos: d.Pos})
			}
		}
		logger.Log.Debug("fix pass", "file", filename, "pass", pass, "fixes", len(fixable))

		text = next
		result.Fixed = text
		result.Passes = pass
	}
}

// ApplyFixes splices fixes into source. Fixes are taken whole in order; a fix
// with an edit conflicting with an earlier accepted fix is skipped.
// applied[i] reports whether fixes[i] was used.
func ApplyFixes(source string, fixes []*analyzer.Fix) (string, []bool, error) {
	applied := make([]bool, len(fixes))
	var accepted []analyzer.Edit

	for i, fix := range fixes {
		if fix == nil || len(fix.Edits) == 0 || conflictsWith(accepted, fix.Edits) {
			continue
		}
		accepted = append(accepted, fix.Edits...)
		applied[i] = true
	}

	out, err := analyzer.Splice(source, accepted)
	if err != nil {
		return "", nil, err
	}
	return out, applied, nil
}

func conflictsWith(accepted, edits []analyzer.Edit) bool {
	for _, e := range edits {
		for _, a := range accepted {
			if analyzer.Conflicts(a, e) {
				return true
			}
		}
	}
	return false
}
