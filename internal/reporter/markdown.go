package reporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// MarkdownReporter outputs results as Markdown, for PR comments
type MarkdownReporter struct {
	cfg *Config
}

// Report outputs the analysis results as Markdown
func (r *MarkdownReporter) Report(files []File) error {
	w := r.cfg.Writer
	s := Summarize(files)

	if s.Total == 0 {
		fmt.Fprintf(w, "## ✅ No issues found\n\n%s passed all checks.\n", plural(s.Files, "template"))
		return nil
	}

	fmt.Fprintf(w, "## Template lint results\n\n")
	fmt.Fprintf(w, "| Severity | Count |\n")
	fmt.Fprintf(w, "|----------|-------|\n")
	if s.Errors > 0 {
		fmt.Fprintf(w, "| 🔴 Error | %d |\n", s.Errors)
	}
	if s.Warnings > 0 {
		fmt.Fprintf(w, "| 🟡 Warning | %d |\n", s.Warnings)
	}
	if s.Info > 0 {
		fmt.Fprintf(w, "| 🔵 Info | %d |\n", s.Info)
	}
	if s.Hints > 0 {
		fmt.Fprintf(w, "| 💡 Hint | %d |\n", s.Hints)
	}
	if s.Fixable > 0 {
		fmt.Fprintf(w, "\n%s can be fixed with `vuelint fix -w`.\n", plural(s.Fixable, "issue"))
	}
	fmt.Fprintln(w)

	for _, f := range files {
		if len(f.Result.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintf(w, "### `%s`\n\n", f.Result.Filename)
		lang := fenceLanguage(f.Result.Filename)

		for _, d := range f.Result.Diagnostics {
			fmt.Fprintf(w, "#### %s `%s` - Line %d\n\n", severityEmoji(d.Severity), d.Rule, d.Pos.Line)
			fmt.Fprintf(w, "%s\n\n", d.Message)

			if d.Context != "" {
				fmt.Fprintf(w, "```%s\n%s\n```\n\n", lang, d.Context)
			}
			if d.Help != "" {
				fmt.Fprintf(w, "> 💡 %s\n\n", d.Help)
			}
		}
	}
	return nil
}

func fenceLanguage(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".vue") {
		return "vue"
	}
	return "html"
}

func severityEmoji(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityError:
		return "🔴"
	case analyzer.SeverityWarning:
		return "🟡"
	case analyzer.SeverityInfo:
		return "🔵"
	default:
		return "💡"
	}
}
