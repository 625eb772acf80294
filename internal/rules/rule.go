package rules

import (
	"github.com/HueCodes/vuelint/internal/analyzer"
)

// Rule is the interface that all linting rules must implement
type Rule interface {
	analyzer.Rule

	// Name returns a human-readable name for the rule
	Name() string

	// Description returns a detailed description of what the rule checks
	Description() string
}

// OptionDoc documents one rule option for `vuelint explain`
type OptionDoc struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// Documented is implemented by rules that accept options
type Documented interface {
	Options() []OptionDoc
}

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleID          string
	RuleName        string
	RuleDescription string
	RuleCategory    analyzer.Category
	RuleSeverity    analyzer.Severity
}

func (r *BaseRule) ID() string                  { return r.RuleID }
func (r *BaseRule) Name() string                { return r.RuleName }
func (r *BaseRule) Description() string         { return r.RuleDescription }
func (r *BaseRule) Category() analyzer.Category { return r.RuleCategory }
func (r *BaseRule) Severity() analyzer.Severity { return r.RuleSeverity }

// NewDiagnostic creates a diagnostic for this rule
func (r *BaseRule) NewDiagnostic() *analyzer.DiagnosticBuilder {
	return analyzer.NewDiagnostic(r.RuleID, r.RuleCategory).
		WithSeverity(r.RuleSeverity)
}
