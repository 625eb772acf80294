package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/lexer"
	"github.com/HueCodes/vuelint/internal/parser"
)

const appSource = "<template>\n  <div class=\"a  b\"></div>\n  <Foo><a slot=\"x\" /></Foo>\n</template>\n"

func pos(line, col, off int) lexer.Position {
	return lexer.Position{Line: line, Column: col, Offset: off}
}

func sampleFiles() []File {
	class := analyzer.NewDiagnostic("STY001", analyzer.CategoryStyle).
		WithSeverity(analyzer.SeverityWarning).
		WithMessage("extraSpaces", "Class attribute contains extra spaces.").
		WithRange(pos(2, 14, 24), pos(2, 20, 30)).
		WithContext(`  <div class="a  b"></div>`).
		WithHelp("Separate class names with a single space").
		WithFix(&analyzer.Fix{Title: "Remove extra spaces", Edits: []analyzer.Edit{{Start: 24, End: 30, NewText: `"a b"`}}}).
		Build()
	slot := analyzer.NewDiagnostic("DEP001", analyzer.CategoryDeprecated).
		WithSeverity(analyzer.SeverityError).
		WithMessage("forbiddenSlotAttribute", "`slot` attributes are deprecated.").
		WithRange(pos(3, 11, 49), pos(3, 15, 53)).
		WithContext(`  <Foo><a slot="x" /></Foo>`).
		Build()

	return []File{
		{
			Result: &analyzer.Result{Filename: "src/App.vue", Diagnostics: []analyzer.Diagnostic{class, slot}},
			Source: appSource,
		},
		{
			Result:      &analyzer.Result{Filename: "index.html"},
			Source:      "<p></p>\n",
			ParseErrors: []parser.ParseError{{Message: "unclosed element <p>", Pos: pos(1, 1, 0)}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleFiles())
	assert.Equal(t, Summary{Files: 2, Total: 2, Errors: 1, Warnings: 1, Fixable: 1}, s)
}

func TestTerminalReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatTerminal, &buf, WithColors(false))
	require.NoError(t, r.Report(sampleFiles()))

	out := buf.String()
	assert.Contains(t, out, "src/App.vue:2:14 warning [STY001] Class attribute contains extra spaces. (fixable)\n")
	assert.Contains(t, out, " 2 │   <div class=\"a  b\"></div>\n")
	assert.Contains(t, out, "   │              ^^^^^^\n")
	assert.Contains(t, out, "= help: Separate class names with a single space")
	assert.Contains(t, out, "src/App.vue:3:11 error [DEP001]")
	assert.Contains(t, out, "Found 1 error, 1 warning in 2 files (1 fixable with `vuelint fix`)")
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "unclosed element", "parse errors are verbose only")
}

func TestTerminalReporterVerbose(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatTerminal, &buf, WithColors(false), WithVerbose(true))
	require.NoError(t, r.Report(sampleFiles()))

	assert.Contains(t, buf.String(), "index.html:1:1 parse unclosed element <p>")
	assert.Contains(t, buf.String(), "= fix: Remove extra spaces")
}

func TestTerminalReporterClean(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatTerminal, &buf, WithColors(false))
	require.NoError(t, r.Report([]File{{Result: &analyzer.Result{Filename: "a.vue"}}}))
	assert.Equal(t, "✓ No issues found in 1 file\n", buf.String())
}

func TestTerminalReporterColors(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatTerminal, &buf, WithColors(true))
	require.NoError(t, r.Report(sampleFiles()))

	want := color.New(color.FgRed, color.Bold)
	want.EnableColor()
	assert.Contains(t, buf.String(), "\x1b[31;1merror")
	assert.Contains(t, buf.String(), want.Sprint("error"))
}

func TestUnderline(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		col, end int
		endLine  int
		pad      string
		mark     string
	}{
		{"ascii", `<a class=" b">`, 10, 14, 1, "         ", "^^^^"},
		{"wide runes before span", `<p title="日本" class=" x">`, 21, 25, 1, strings.Repeat(" ", 22), "^^^^"},
		{"wide runes inside span", `<p class="日  本">`, 10, 16, 1, strings.Repeat(" ", 9), strings.Repeat("^", 8)},
		{"tabs are kept", "\t<p class=\" x\">", 11, 15, 1, "\t" + strings.Repeat(" ", 9), "^^^^"},
		{"multiline runs to end of line", `<p class="a`, 10, 3, 2, strings.Repeat(" ", 9), "^^"},
		{"empty span", `<p>`, 4, 4, 1, "   ", "^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := analyzer.Diagnostic{Pos: pos(1, tt.col, 0), EndPos: pos(tt.endLine, tt.end, 0)}
			pad, mark := underline(tt.line, d)
			assert.Equal(t, tt.pad, pad)
			assert.Equal(t, tt.mark, mark)
		})
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatJSON, &buf).Report(sampleFiles()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Files, 2)
	assert.Equal(t, JSONSummary{Files: 2, Total: 2, Errors: 1, Warnings: 1, Fixable: 1}, out.Summary)

	app := out.Files[0]
	assert.Equal(t, "src/App.vue", app.Filename)
	require.Len(t, app.Diagnostics, 2)

	class := app.Diagnostics[0]
	assert.Equal(t, "STY001", class.Rule)
	assert.Equal(t, "warning", class.Severity)
	assert.Equal(t, "extraSpaces", class.MessageID)
	assert.True(t, class.Fixable)
	require.NotNil(t, class.Fix)
	assert.Equal(t, []JSONEdit{{Start: 24, End: 30, Text: `"a b"`}}, class.Fix.Edits)

	assert.False(t, app.Diagnostics[1].Fixable)
	assert.Nil(t, app.Diagnostics[1].Fix)

	html := out.Files[1]
	assert.Empty(t, html.Diagnostics)
	assert.NotNil(t, html.Diagnostics, "clean files encode an empty list")
	require.Len(t, html.ParseErrors, 1)
	assert.Equal(t, "unclosed element <p>", html.ParseErrors[0].Message)
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(FormatSARIF, &buf,
		WithVersion("1.2.3"),
		WithRuleMeta(RuleMeta{ID: "STY001", Name: "no-extra-space-in-class", Description: "no extra spaces"}),
	)
	require.NoError(t, r.Report(sampleFiles()))

	var log SARIFLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "DEP001", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "error", run.Tool.Driver.Rules[0].DefaultConfig.Level)
	assert.Equal(t, "no-extra-space-in-class", run.Tool.Driver.Rules[1].Name)

	require.Len(t, run.Results, 2)
	class := run.Results[0]
	assert.Equal(t, 1, class.RuleIndex)
	assert.Equal(t, "warning", class.Level)
	region := class.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 2, region.StartLine)
	assert.Equal(t, 24, region.ByteOffset)
	assert.Equal(t, 6, region.ByteLength)

	require.Len(t, class.Fixes, 1)
	rep := class.Fixes[0].ArtifactChanges[0].Replacements[0]
	assert.Equal(t, 24, rep.DeletedRegion.ByteOffset)
	assert.Equal(t, `"a b"`, rep.InsertedContent.Text)

	assert.Empty(t, run.Results[1].Fixes)
}

func TestMarkdownReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatMarkdown, &buf).Report(sampleFiles()))

	out := buf.String()
	assert.Contains(t, out, "## Template lint results")
	assert.Contains(t, out, "| 🔴 Error | 1 |")
	assert.Contains(t, out, "1 issue can be fixed")
	assert.Contains(t, out, "### `src/App.vue`")
	assert.Contains(t, out, "```vue\n  <div class=\"a  b\"></div>\n```")
	assert.NotContains(t, out, "index.html", "clean files are skipped")
}

func TestMarkdownReporterClean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatMarkdown, &buf).Report([]File{{Result: &analyzer.Result{Filename: "a.vue"}}}))
	assert.Contains(t, buf.String(), "1 template passed all checks.")
}

func TestGitHubReporter(t *testing.T) {
	files := sampleFiles()
	files[0].Result.Diagnostics[1].Message = "bad, really\nbad: 100%"

	var buf bytes.Buffer
	require.NoError(t, New(FormatGitHub, &buf).Report(files))

	out := buf.String()
	assert.Contains(t, out, "::warning file=src/App.vue,line=2,col=14,endLine=2,endColumn=20,title=STY001::Class attribute contains extra spaces.\n")
	assert.Contains(t, out, "::error file=src/App.vue,line=3,col=11,endLine=3,endColumn=15,title=DEP001::bad, really%0Abad: 100%25\n")
	assert.Contains(t, out, "Found 2 issues in 2 files")
}
