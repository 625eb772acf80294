// Package fixer builds text edits from template nodes.
package fixer

import (
	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/parser"
)

// New groups edits into a fix that is applied all or nothing
func New(title string, edits ...analyzer.Edit) *analyzer.Fix {
	return &analyzer.Fix{Title: title, Edits: edits}
}

// ReplaceNode replaces the text of n
func ReplaceNode(n parser.Node, text string) analyzer.Edit {
	return analyzer.Edit{Start: n.Pos().Offset, End: n.End().Offset, NewText: text}
}

// RemoveNode deletes the text of n, leaving surrounding whitespace alone
func RemoveNode(n parser.Node) analyzer.Edit {
	return ReplaceNode(n, "")
}

// ReplaceRange replaces the byte range [start, end)
func ReplaceRange(start, end int, text string) analyzer.Edit {
	return analyzer.Edit{Start: start, End: end, NewText: text}
}

// InsertBefore inserts text at the start of n
func InsertBefore(n parser.Node, text string) analyzer.Edit {
	off := n.Pos().Offset
	return analyzer.Edit{Start: off, End: off, NewText: text}
}

// Wrap replaces the whole element with open + body + close in one edit
func Wrap(el *parser.Element, open, body, close string) analyzer.Edit {
	return ReplaceNode(el, open+body+close)
}

// RenderWithout returns the source text of el with the given attributes cut out.
// Attributes that do not belong to el are ignored.
func RenderWithout(source string, el *parser.Element, remove ...*parser.Attribute) (string, error) {
	base := el.Pos().Offset
	text := source[base:el.End().Offset]

	var edits []analyzer.Edit
	for _, a := range remove {
		if a == nil || a.Element != el {
			continue
		}
		edits = append(edits, analyzer.Edit{
			Start: a.Pos().Offset - base,
			End:   a.End().Offset - base,
		})
	}
	return analyzer.Splice(text, edits)
}
