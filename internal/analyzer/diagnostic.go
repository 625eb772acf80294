package analyzer

import (
	"fmt"
	"strings"

	"github.com/HueCodes/vuelint/internal/lexer"
)

// Severity represents the severity of a diagnostic
type Severity int

const (
	SeverityHint Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityHint:
		return "hint"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to a Severity
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hint":
		return SeverityHint, nil
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityHint, fmt.Errorf("unknown severity %q", s)
}

// Category represents the category of a rule
type Category string

const (
	CategoryStyle      Category = "style"
	CategoryDeprecated Category = "deprecated"
)

// Diagnostic represents a linting issue
type Diagnostic struct {
	Rule      string         // rule ID (e.g., DEP001)
	Category  Category       // rule category
	Severity  Severity       // issue severity
	MessageID string         // stable identifier of the message template
	Message   string         // human-readable message
	Pos       lexer.Position // start position
	EndPos    lexer.Position // end position (exclusive)
	Context   string         // source context (the line of Pos)
	Help      string         // help message with suggestion
	Fix       *Fix           // nil when no safe fix exists
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s at %s", d.Rule, d.Severity, d.Message, d.Pos)
}

// Fixable reports whether the diagnostic carries a fix
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil && len(d.Fix.Edits) > 0
}

// DiagnosticBuilder helps construct diagnostics
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic creates a new diagnostic builder
func NewDiagnostic(rule string, category Category) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			Rule:     rule,
			Category: category,
			Severity: SeverityWarning, // default
		},
	}
}

// WithSeverity sets the severity
func (b *DiagnosticBuilder) WithSeverity(s Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithMessage sets the message and its identifier
func (b *DiagnosticBuilder) WithMessage(id, msg string) *DiagnosticBuilder {
	b.diag.MessageID = id
	b.diag.Message = msg
	return b
}

// WithMessagef sets a formatted message and its identifier
func (b *DiagnosticBuilder) WithMessagef(id, format string, args ...interface{}) *DiagnosticBuilder {
	b.diag.MessageID = id
	b.diag.Message = fmt.Sprintf(format, args...)
	return b
}

// WithRange sets the position range
func (b *DiagnosticBuilder) WithRange(pos, endPos lexer.Position) *DiagnosticBuilder {
	b.diag.Pos = pos
	b.diag.EndPos = endPos
	return b
}

// WithContext sets the source context
func (b *DiagnosticBuilder) WithContext(ctx string) *DiagnosticBuilder {
	b.diag.Context = ctx
	return b
}

// WithHelp sets the help message
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.diag.Help = help
	return b
}

// WithFix attaches a fix; a nil fix leaves the diagnostic report-only
func (b *DiagnosticBuilder) WithFix(fix *Fix) *DiagnosticBuilder {
	b.diag.Fix = fix
	return b
}

// Build returns the constructed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}

// Result holds the results of analyzing a template file
type Result struct {
	Diagnostics []Diagnostic
	Filename    string
}

// HasErrors returns true if there are any error-level diagnostics
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity returns the count of diagnostics by severity
func (r *Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range r.Diagnostics {
		counts[d.Severity]++
	}
	return counts
}

// FilterBySeverity returns diagnostics at or above the given severity
func (r *Result) FilterBySeverity(minSeverity Severity) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity >= minSeverity {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FilterByCategory returns diagnostics of the given category
func (r *Result) FilterByCategory(category Category) []Diagnostic {
	var filtered []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Category == category {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Fixes returns the fixes of all fixable diagnostics in report order
func (r *Result) Fixes() []*Fix {
	var fixes []*Fix
	for _, d := range r.Diagnostics {
		if d.Fixable() {
			fixes = append(fixes, d.Fix)
		}
	}
	return fixes
}

// CountFixable returns the number of diagnostics carrying a fix
func (r *Result) CountFixable() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Fixable() {
			n++
		}
	}
	return n
}
