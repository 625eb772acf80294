package analyzer

import (
	"sort"
	"unicode/utf8"

	"github.com/HueCodes/vuelint/internal/lexer"
	"github.com/HueCodes/vuelint/internal/parser"
)

// Locus selects which part of a node a diagnostic points at
type Locus int

const (
	LocusNode     Locus = iota // the whole node
	LocusKey                   // an attribute's key token
	LocusValue                 // an attribute's value token, falling back to the key
	LocusStartTag              // an element's start tag
	LocusTagName               // an element's name inside the start tag
)

// LineIndex maps byte offsets to line/column positions
type LineIndex struct {
	source     string
	lineStarts []int
}

// NewLineIndex builds an index over source
func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{source: source, lineStarts: starts}
}

// Position returns the 1-based line and rune column of a byte offset.
// Offsets are clamped to the source.
func (x *LineIndex) Position(offset int) lexer.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.source) {
		offset = len(x.source)
	}
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	start := x.lineStarts[line]
	return lexer.Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(x.source[start:offset]) + 1,
		Offset: offset,
	}
}

// Line returns the text of a 1-based line without its newline
func (x *LineIndex) Line(n int) string {
	if n < 1 || n > len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[n-1]
	end := len(x.source)
	if n < len(x.lineStarts) {
		end = x.lineStarts[n] - 1
	}
	if end > start && x.source[end-1] == '\r' {
		end--
	}
	return x.source[start:end]
}

// LineCount returns the number of lines in the source
func (x *LineIndex) LineCount() int {
	return len(x.lineStarts)
}

// Resolver computes reported ranges for nodes
type Resolver struct {
	index *LineIndex
}

// NewResolver creates a resolver over source
func NewResolver(source string) *Resolver {
	return &Resolver{index: NewLineIndex(source)}
}

// Index returns the underlying line index
func (r *Resolver) Index() *LineIndex {
	return r.index
}

// Offsets returns the byte range a locus covers on node n
func (r *Resolver) Offsets(n parser.Node, locus Locus) (int, int) {
	switch locus {
	case LocusKey:
		if a, ok := n.(*parser.Attribute); ok {
			return a.Key.Pos().Offset, a.Key.End().Offset
		}
	case LocusValue:
		if a, ok := n.(*parser.Attribute); ok {
			if a.Value != nil {
				return a.Value.Pos().Offset, a.Value.End().Offset
			}
			return a.Key.Pos().Offset, a.Key.End().Offset
		}
	case LocusStartTag:
		if el, ok := n.(*parser.Element); ok {
			return el.Pos().Offset, el.StartTagEnd.Offset
		}
	case LocusTagName:
		if el, ok := n.(*parser.Element); ok {
			return el.Pos().Offset + 1, el.NameEnd.Offset
		}
	}
	return n.Pos().Offset, n.End().Offset
}

// Resolve returns the start and exclusive end positions of a locus on node n
func (r *Resolver) Resolve(n parser.Node, locus Locus) (lexer.Position, lexer.Position) {
	start, end := r.Offsets(n, locus)
	return r.Span(start, end)
}

// Span converts a byte range to positions
func (r *Resolver) Span(start, end int) (lexer.Position, lexer.Position) {
	return r.index.Position(start), r.index.Position(end)
}
