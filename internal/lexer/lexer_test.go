package lexer

import (
	"testing"
)

func TestLexerBasicElement(t *testing.T) {
	input := `<div class="a b">hi</div>`
	l := New(input)
	tokens := l.Tokenize()

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{TokenTagOpen, "<div"},
		{TokenAttrName, "class"},
		{TokenEquals, "="},
		{TokenAttrValue, `"a b"`},
		{TokenTagClose, ">"},
		{TokenText, "hi"},
		{TokenEndTagOpen, "</div"},
		{TokenTagClose, ">"},
		{TokenEOF, ""},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp.typ {
			t.Errorf("token %d: expected type %s, got %s", i, exp.typ, tokens[i].Type)
		}
		if tokens[i].Literal != exp.literal {
			t.Errorf("token %d: expected literal %q, got %q", i, exp.literal, tokens[i].Literal)
		}
	}
}

func TestLexerDirectiveNames(t *testing.T) {
	input := `<my-comp :slot="name" @click.stop="go" #header v-bind:[key]="x" />`
	l := New(input)
	tokens := l.Tokenize()

	var names []string
	for _, tok := range tokens {
		if tok.Type == TokenAttrName {
			names = append(names, tok.Literal)
		}
	}

	expected := []string{":slot", "@click.stop", "#header", "v-bind:[key]"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d attribute names, got %d: %v", len(expected), len(names), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("attribute %d: expected %q, got %q", i, expected[i], names[i])
		}
	}

	last := tokens[len(tokens)-2]
	if last.Type != TokenSelfClose {
		t.Errorf("expected self close, got %s", last.Type)
	}
}

func TestLexerQuoting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`<a x="1 2">`, `"1 2"`},
		{`<a x='it"s'>`, `'it"s'`},
		{`<a x=bare>`, `bare`},
		{`<a x = "spaced">`, `"spaced"`},
		{`<a x="">`, `""`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := New(tt.input).Tokenize()
			var got string
			for _, tok := range tokens {
				if tok.Type == TokenAttrValue {
					got = tok.Literal
				}
			}
			if got != tt.expected {
				t.Errorf("expected value %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLexerValuelessAttribute(t *testing.T) {
	tokens := New(`<a slot disabled>`).Tokenize()

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	expected := []TokenType{TokenTagOpen, TokenAttrName, TokenAttrName, TokenTagClose, TokenEOF}
	if len(types) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, types)
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Errorf("token %d: expected %s, got %s", i, expected[i], types[i])
		}
	}
}

func TestLexerComment(t *testing.T) {
	tokens := New(`<!-- <div class="x"> -->text`).Tokenize()

	if tokens[0].Type != TokenComment {
		t.Errorf("expected comment, got %s", tokens[0].Type)
	}
	if tokens[0].Literal != `<!-- <div class="x"> -->` {
		t.Errorf("expected comment text, got %q", tokens[0].Literal)
	}
	if tokens[1].Type != TokenText || tokens[1].Literal != "text" {
		t.Errorf("expected trailing text, got %s", tokens[1])
	}
}

func TestLexerRawText(t *testing.T) {
	input := `<script>if (a < b) { x = "<div>" }</script><p></p>`
	tokens := New(input).Tokenize()

	if tokens[2].Type != TokenText {
		t.Fatalf("expected raw text, got %s", tokens[2].Type)
	}
	if tokens[2].Literal != `if (a < b) { x = "<div>" }` {
		t.Errorf("unexpected raw text %q", tokens[2].Literal)
	}
	if tokens[3].Type != TokenEndTagOpen || tokens[3].TagName() != "script" {
		t.Errorf("expected </script, got %s", tokens[3])
	}
	if tokens[5].TagName() != "p" {
		t.Errorf("expected <p after script, got %s", tokens[5])
	}
}

func TestLexerLessThanInText(t *testing.T) {
	tokens := New(`a < b <div>`).Tokenize()

	if tokens[0].Type != TokenText || tokens[0].Literal != "a < b " {
		t.Errorf("expected text %q, got %s", "a < b ", tokens[0])
	}
	if tokens[1].Type != TokenTagOpen {
		t.Errorf("expected tag open, got %s", tokens[1].Type)
	}
}

func TestLexerPositions(t *testing.T) {
	input := "<div>\n  <a slot=\"x\">é</a>\n</div>"
	tokens := New(input).Tokenize()

	tests := []struct {
		idx     int
		literal string
		line    int
		col     int
		endLine int
		endCol  int
	}{
		{0, "<div", 1, 1, 1, 5},
		{3, "<a", 2, 3, 2, 5},
		{4, "slot", 2, 6, 2, 10},
		{6, `"x"`, 2, 11, 2, 14},
		{8, "é", 2, 15, 2, 16},
	}

	for _, tt := range tests {
		tok := tokens[tt.idx]
		if tok.Literal != tt.literal {
			t.Fatalf("token %d: expected %q, got %q", tt.idx, tt.literal, tok.Literal)
		}
		if tok.Pos.Line != tt.line || tok.Pos.Column != tt.col {
			t.Errorf("%q: expected start %d:%d, got %s", tt.literal, tt.line, tt.col, tok.Pos)
		}
		if tok.EndPos.Line != tt.endLine || tok.EndPos.Column != tt.endCol {
			t.Errorf("%q: expected end %d:%d, got %s", tt.literal, tt.endLine, tt.endCol, tok.EndPos)
		}
	}

	// byte offsets stay byte-based with multibyte text
	if tokens[8].EndPos.Offset-tokens[8].Pos.Offset != len("é") {
		t.Errorf("expected %d bytes, got %d", len("é"), tokens[8].EndPos.Offset-tokens[8].Pos.Offset)
	}
}

func TestLexerNewlineEndPosition(t *testing.T) {
	tokens := New("ab\n").Tokenize()

	if tokens[0].EndPos.Line != 2 || tokens[0].EndPos.Column != 1 {
		t.Errorf("expected text to end at 2:1, got %s", tokens[0].EndPos)
	}
}

func TestTokenizePooled(t *testing.T) {
	input := `<a b="c"></a>`
	plain := New(input).Tokenize()

	// the second run reuses the released buffer and lexer
	for run := 0; run < 2; run++ {
		buf := TokenizePooled(input)
		if len(buf.Tokens) != len(plain) {
			t.Fatalf("run %d: expected %d tokens, got %d", run, len(plain), len(buf.Tokens))
		}
		for i := range plain {
			if buf.Tokens[i] != plain[i] {
				t.Errorf("run %d: token %d: expected %s, got %s", run, i, plain[i], buf.Tokens[i])
			}
		}
		buf.Release()
	}
}

func TestTokenTypeString(t *testing.T) {
	if TokenTagOpen.String() != "TAG_OPEN" {
		t.Errorf("expected TAG_OPEN, got %s", TokenTagOpen.String())
	}
	if TokenType(999).String() != "TokenType(999)" {
		t.Errorf("unexpected %s", TokenType(999).String())
	}
}
