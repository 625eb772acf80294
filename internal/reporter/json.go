package reporter

import (
	"github.com/goccy/go-json"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	cfg *Config
}

// JSONOutput is the JSON output structure
type JSONOutput struct {
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile holds the diagnostics of one template
type JSONFile struct {
	Filename    string           `json:"filename"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	ParseErrors []JSONParseError `json:"parse_errors,omitempty"`
}

// JSONDiagnostic represents a diagnostic in JSON format
type JSONDiagnostic struct {
	Rule      string   `json:"rule"`
	Category  string   `json:"category"`
	Severity  string   `json:"severity"`
	MessageID string   `json:"message_id,omitempty"`
	Message   string   `json:"message"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"end_line,omitempty"`
	EndColumn int      `json:"end_column,omitempty"`
	Context   string   `json:"context,omitempty"`
	Help      string   `json:"help,omitempty"`
	Fixable   bool     `json:"fixable"`
	Fix       *JSONFix `json:"fix,omitempty"`
}

// JSONFix is a fix with byte-offset edits
type JSONFix struct {
	Title string     `json:"title"`
	Edits []JSONEdit `json:"edits"`
}

// JSONEdit replaces source bytes [Start, End) with Text
type JSONEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// JSONParseError is a recovered parse problem
type JSONParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// JSONSummary contains summary counts
type JSONSummary struct {
	Files    int `json:"files"`
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`
	Fixable  int `json:"fixable"`
}

// Report outputs the analysis results as one JSON document
func (r *JSONReporter) Report(files []File) error {
	s := Summarize(files)
	output := JSONOutput{
		Files: make([]JSONFile, 0, len(files)),
		Summary: JSONSummary{
			Files:    s.Files,
			Total:    s.Total,
			Errors:   s.Errors,
			Warnings: s.Warnings,
			Info:     s.Info,
			Hints:    s.Hints,
			Fixable:  s.Fixable,
		},
	}

	for _, f := range files {
		jf := JSONFile{
			Filename:    f.Result.Filename,
			Diagnostics: make([]JSONDiagnostic, 0, len(f.Result.Diagnostics)),
		}
		for _, d := range f.Result.Diagnostics {
			jf.Diagnostics = append(jf.Diagnostics, jsonDiagnostic(d))
		}
		for _, pe := range f.ParseErrors {
			jf.ParseErrors = append(jf.ParseErrors, JSONParseError{Message: pe.Message, Line: pe.Pos.Line, Column: pe.Pos.Column})
		}
		output.Files = append(output.Files, jf)
	}

	encoder := json.NewEncoder(r.cfg.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func jsonDiagnostic(d analyzer.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		Rule:      d.Rule,
		Category:  string(d.Category),
		Severity:  d.Severity.String(),
		MessageID: d.MessageID,
		Message:   d.Message,
		Line:      d.Pos.Line,
		Column:    d.Pos.Column,
		EndLine:   d.EndPos.Line,
		EndColumn: d.EndPos.Column,
		Context:   d.Context,
		Help:      d.Help,
		Fixable:   d.Fixable(),
	}
	if d.Fix != nil {
		jd.Fix = &JSONFix{Title: d.Fix.Title, Edits: make([]JSONEdit, len(d.Fix.Edits))}
		for i, e := range d.Fix.Edits {
			jd.Fix.Edits[i] = JSONEdit{Start: e.Start, End: e.End, Text: e.NewText}
		}
	}
	return jd
}
