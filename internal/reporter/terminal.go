package reporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// Stdout returns a writer that renders ANSI colors on every platform, and
// whether standard output is a terminal
func Stdout() (io.Writer, bool) {
	fd := os.Stdout.Fd()
	return colorable.NewColorable(os.Stdout), isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalReporter prints diagnostics with source excerpts
type TerminalReporter struct {
	cfg *Config
}

type palette struct {
	error, warning, info, hint *color.Color
	gutter, help, bold         *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		error:   color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgBlue),
		hint:    color.New(color.FgCyan),
		gutter:  color.New(color.FgHiBlack),
		help:    color.New(color.FgCyan),
		bold:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.error, p.warning, p.info, p.hint, p.gutter, p.help, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s analyzer.Severity) *color.Color {
	switch s {
	case analyzer.SeverityError:
		return p.error
	case analyzer.SeverityWarning:
		return p.warning
	case analyzer.SeverityInfo:
		return p.info
	default:
		return p.hint
	}
}

// Report prints every file's diagnostics followed by one summary line
func (r *TerminalReporter) Report(files []File) error {
	w := r.cfg.Writer
	p := newPalette(r.cfg.UseColors)

	for _, f := range files {
		lines := strings.Split(f.Source, "\n")
		width := len(strconv.Itoa(len(lines)))

		if r.cfg.Verbose {
			for _, pe := range f.ParseErrors {
				fmt.Fprintf(w, "%s:%d:%d %s %s\n", f.Result.Filename, pe.Pos.Line, pe.Pos.Column, p.gutter.Sprint("parse"), pe.Message)
			}
		}

		for _, d := range f.Result.Diagnostics {
			sev := p.severity(d.Severity)
			fixable := ""
			if d.Fixable() {
				fixable = p.gutter.Sprint(" (fixable)")
			}
			fmt.Fprintf(w, "%s %s %s %s%s\n",
				p.bold.Sprintf("%s:%d:%d", f.Result.Filename, d.Pos.Line, d.Pos.Column),
				sev.Sprint(d.Severity.String()),
				p.gutter.Sprint("["+d.Rule+"]"),
				d.Message,
				fixable,
			)

			if d.Pos.Line > 0 && d.Pos.Line <= len(lines) {
				line := strings.TrimSuffix(lines[d.Pos.Line-1], "\r")
				pad, mark := underline(line, d)
				blank := strings.Repeat(" ", width)
				fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprintf("%*d", width, d.Pos.Line), p.gutter.Sprint("│"), line)
				fmt.Fprintf(w, " %s %s %s%s\n", blank, p.gutter.Sprint("│"), pad, sev.Sprint(mark))
			}

			if d.Help != "" {
				fmt.Fprintf(w, " %s %s %s\n", strings.Repeat(" ", width), p.help.Sprint("= help:"), d.Help)
			}
			if r.cfg.Verbose && d.Fix != nil {
				fmt.Fprintf(w, " %s %s %s\n", strings.Repeat(" ", width), p.help.Sprint("= fix:"), d.Fix.Title)
			}
			fmt.Fprintln(w)
		}
	}

	s := Summarize(files)
	if s.Total == 0 {
		fmt.Fprintf(w, "%s No issues found in %s\n", p.gutter.Sprint("✓"), plural(s.Files, "file"))
		return nil
	}

	var parts []string
	if s.Errors > 0 {
		parts = append(parts, p.error.Sprint(plural(s.Errors, "error")))
	}
	if s.Warnings > 0 {
		parts = append(parts, p.warning.Sprint(plural(s.Warnings, "warning")))
	}
	if s.Info > 0 {
		parts = append(parts, p.info.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, p.hint.Sprint(plural(s.Hints, "hint")))
	}
	fmt.Fprintf(w, "Found %s in %s", strings.Join(parts, ", "), plural(s.Files, "file"))
	if s.Fixable > 0 {
		fmt.Fprintf(w, " (%d fixable with `vuelint fix`)", s.Fixable)
	}
	fmt.Fprintln(w)
	return nil
}

// underline returns the padding and caret run placed under the reported
// span of line. Widths follow the display width of each rune and tabs are
// kept so the carets line up with the echoed source.
func underline(line string, d analyzer.Diagnostic) (string, string) {
	runes := []rune(line)
	start := min(max(d.Pos.Column-1, 0), len(runes))
	end := len(runes)
	if d.EndPos.Line == d.Pos.Line {
		end = min(max(d.EndPos.Column-1, start), len(runes))
	}

	var pad strings.Builder
	for _, r := range runes[:start] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}

	n := runewidth.StringWidth(string(runes[start:end]))
	if n < 1 {
		n = 1
	}
	return pad.String(), strings.Repeat("^", n)
}
