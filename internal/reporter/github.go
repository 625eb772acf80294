package reporter

import (
	"fmt"
	"strings"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// GitHubReporter outputs results as GitHub Actions workflow commands
type GitHubReporter struct {
	cfg *Config
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// Report outputs the analysis results as GitHub workflow commands
func (r *GitHubReporter) Report(files []File) error {
	w := r.cfg.Writer

	for _, f := range files {
		file := propertyEscaper.Replace(f.Result.Filename)
		for _, d := range f.Result.Diagnostics {
			// ::warning file={name},line={line},col={col},endLine=..,endColumn=..,title={rule}::{message}
			fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d,endLine=%d,endColumn=%d,title=%s::%s\n",
				githubLevel(d.Severity),
				file,
				d.Pos.Line,
				d.Pos.Column,
				d.EndPos.Line,
				d.EndPos.Column,
				propertyEscaper.Replace(d.Rule),
				dataEscaper.Replace(d.Message),
			)
		}
	}

	s := Summarize(files)
	if s.Total > 0 {
		fmt.Fprintf(w, "::group::Summary\n")
		fmt.Fprintf(w, "Found %s in %s\n", plural(s.Total, "issue"), plural(s.Files, "file"))
		fmt.Fprintf(w, "::endgroup::\n")
	}
	return nil
}

func githubLevel(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityError:
		return "error"
	case analyzer.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}
