// Package formatter renders the difference between original and fixed templates.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ContextLines is the number of unchanged lines shown around each change
const ContextLines = 3

// Diff generates a unified diff between original and fixed content.
// It returns "" when the two are equal.
func Diff(filename, original, fixed string) string {
	if original == fixed {
		return ""
	}

	origLines := splitLines(original)
	newLines := splitLines(fixed)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", filename)
	fmt.Fprintf(&sb, "+++ b/%s\n", filename)
	for _, hunk := range generateHunks(origLines, newLines, ContextLines) {
		sb.WriteString(hunk.String())
	}
	return sb.String()
}

// splitLines splits on newlines; a trailing newline does not add an empty line
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// DiffLine represents a line in a diff
type DiffLine struct {
	Type byte // ' ', '+', '-'
	Text string
}

// Hunk represents a diff hunk
type Hunk struct {
	OrigStart, OrigCount int
	NewStart, NewCount   int
	Lines                []DiffLine
}

// String formats a hunk as unified diff
func (h *Hunk) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OrigStart, h.OrigCount, h.NewStart, h.NewCount)
	for _, line := range h.Lines {
		sb.WriteByte(line.Type)
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// op is one step of the edit script: a kept, removed or added line
type op struct {
	kind    byte
	origIdx int
	newIdx  int
}

// editScript walks the LCS table to turn orig into new line by line
func editScript(orig, new []string) []op {
	m, n := len(orig), len(new)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if orig[i] == new[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var ops []op
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case orig[i] == new[j]:
			ops = append(ops, op{' ', i, j})
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			ops = append(ops, op{'-', i, j})
			i++
		default:
			ops = append(ops, op{'+', i, j})
			j++
		}
	}
	for ; i < m; i++ {
		ops = append(ops, op{'-', i, j})
	}
	for ; j < n; j++ {
		ops = append(ops, op{'+', i, j})
	}
	return ops
}

// generateHunks groups changes that are within 2*context lines of each other
func generateHunks(orig, new []string, context int) []*Hunk {
	ops := editScript(orig, new)

	var hunks []*Hunk
	for start := 0; start < len(ops); {
		if ops[start].kind == ' ' {
			start++
			continue
		}

		// extend over changes separated by short runs of kept lines
		end := start
		for k := start; k < len(ops); k++ {
			if ops[k].kind != ' ' {
				end = k
				continue
			}
			if k-end > 2*context {
				break
			}
		}

		from := max(0, start-context)
		to := min(len(ops), end+context+1)

		h := &Hunk{OrigStart: ops[from].origIdx + 1, NewStart: ops[from].newIdx + 1}
		for _, o := range ops[from:to] {
			switch o.kind {
			case ' ':
				h.Lines = append(h.Lines, DiffLine{Type: ' ', Text: orig[o.origIdx]})
				h.OrigCount++
				h.NewCount++
			case '-':
				h.Lines = append(h.Lines, DiffLine{Type: '-', Text: orig[o.origIdx]})
				h.OrigCount++
			case '+':
				h.Lines = append(h.Lines, DiffLine{Type: '+', Text: new[o.newIdx]})
				h.NewCount++
			}
		}
		// an empty side starts at the line before it, as in diff -u
		if h.OrigCount == 0 {
			h.OrigStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}
		hunks = append(hunks, h)
		start = to
	}
	return hunks
}

// Colorize colors a unified diff for a terminal: headers bold, hunk
// markers cyan, removals red and additions green
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}

	header := color.New(color.Bold)
	marker := color.New(color.FgCyan)
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)

	lines := strings.SplitAfter(diff, "\n")
	var sb strings.Builder
	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		nl := line[len(text):]
		switch {
		case strings.HasPrefix(text, "--- "), strings.HasPrefix(text, "+++ "):
			sb.WriteString(header.Sprint(text))
		case strings.HasPrefix(text, "@@"):
			sb.WriteString(marker.Sprint(text))
		case strings.HasPrefix(text, "-"):
			sb.WriteString(removed.Sprint(text))
		case strings.HasPrefix(text, "+"):
			sb.WriteString(added.Sprint(text))
		default:
			sb.WriteString(text)
		}
		sb.WriteString(nl)
	}
	return sb.String()
}
