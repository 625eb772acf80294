// Package ruletest runs table-driven valid/invalid cases against a single rule.
package ruletest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// Error is an expected diagnostic. Zero positions are not checked.
type Error struct {
	Message   string
	MessageID string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Case is one template to lint. For invalid cases, an empty Output means
// the source must come back unchanged.
type Case struct {
	Name    string
	Code    string
	Options map[string]interface{}
	Output  string
	Errors  []Error
}

// Lint runs rule over code and applies every accepted fix once
func Lint(t *testing.T, rule analyzer.Rule, options map[string]interface{}, code string) ([]analyzer.Diagnostic, string) {
	t.Helper()

	a, err := analyzer.New(
		analyzer.WithRules(rule),
		analyzer.WithRuleConfig(rule.ID(), options),
		analyzer.WithMinSeverity(analyzer.SeverityHint),
	)
	require.NoError(t, err)

	result, _ := a.AnalyzeSource(code, "test.vue")

	var edits []analyzer.Edit
	for _, fix := range result.Fixes() {
		edits = append(edits, fix.Edits...)
	}
	out, err := analyzer.Splice(code, edits)
	require.NoError(t, err)

	return result.Diagnostics, out
}

// Run checks that valid cases report nothing and invalid cases report
// exactly the expected errors and fixed output
func Run(t *testing.T, rule analyzer.Rule, valid, invalid []Case) {
	t.Helper()

	for i, tc := range valid {
		t.Run(caseName("valid", i, tc), func(t *testing.T) {
			diags, _ := Lint(t, rule, tc.Options, tc.Code)
			assert.Empty(t, diags)
		})
	}

	for i, tc := range invalid {
		t.Run(caseName("invalid", i, tc), func(t *testing.T) {
			diags, out := Lint(t, rule, tc.Options, tc.Code)
			require.Len(t, diags, len(tc.Errors), "diagnostics: %v", diags)

			for j, want := range tc.Errors {
				got := diags[j]
				assert.Equal(t, rule.ID(), got.Rule)
				if want.Message != "" {
					assert.Equal(t, want.Message, got.Message, "error %d message", j)
				}
				if want.MessageID != "" {
					assert.Equal(t, want.MessageID, got.MessageID, "error %d message id", j)
				}
				checkPos(t, j, "line", want.Line, got.Pos.Line)
				checkPos(t, j, "column", want.Column, got.Pos.Column)
				checkPos(t, j, "end line", want.EndLine, got.EndPos.Line)
				checkPos(t, j, "end column", want.EndColumn, got.EndPos.Column)
			}

			expected := tc.Output
			if expected == "" {
				expected = tc.Code
			}
			assert.Equal(t, expected, out)
		})
	}
}

func checkPos(t *testing.T, idx int, what string, want, got int) {
	t.Helper()
	if want != 0 {
		assert.Equal(t, want, got, "error %d %s", idx, what)
	}
}

func caseName(kind string, i int, tc Case) string {
	if tc.Name != "" {
		return fmt.Sprintf("%s/%s", kind, tc.Name)
	}
	return fmt.Sprintf("%s/%d", kind, i)
}
