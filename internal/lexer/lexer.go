package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type mode int

const (
	modeData mode = iota
	modeTag
	modeRawText
)

// Lexer tokenizes template markup
type Lexer struct {
	input       string
	pos         int  // current position in input (points to current char)
	readPos     int  // current reading position (after current char)
	ch          rune // current character
	line        int  // line of the current character (1-based)
	column      int  // column of the current character (1-based)
	startLine   int  // line at start of current token
	startColumn int  // column at start of current token
	startOffset int  // offset at start of current token
	mode        mode
	tagName     string // name of the tag being lexed in modeTag
	endTag      bool   // true while lexing the inside of an end tag
	rawTag      string // element whose raw text is being read in modeRawText
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		l.column++
		return
	}
	var size int
	l.ch, size = utf8.DecodeRuneInString(l.input[l.readPos:])
	l.pos = l.readPos
	l.readPos += size
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// hasPrefix reports whether the input at the current char starts with s
func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// advance consumes n bytes worth of characters
func (l *Lexer) advance(n int) {
	end := l.pos + n
	for !l.atEOF() && l.pos < end {
		l.readChar()
	}
}

// markStart marks the start position for the current token
func (l *Lexer) markStart() {
	l.startLine = l.line
	l.startColumn = l.column
	l.startOffset = l.pos
}

// Position returns the position of the current character
func (l *Lexer) Position() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// makeToken creates a token with the current position info
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:    typ,
		Literal: literal,
		Pos: Position{
			Line:   l.startLine,
			Column: l.startColumn,
			Offset: l.startOffset,
		},
		EndPos: l.Position(),
	}
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	switch l.mode {
	case modeTag:
		return l.lexTag()
	case modeRawText:
		return l.lexRawText()
	default:
		return l.lexData()
	}
}

func (l *Lexer) lexData() Token {
	l.markStart()

	if l.atEOF() {
		return l.makeToken(TokenEOF, "")
	}

	if l.ch == '<' {
		switch {
		case l.hasPrefix("<!--"):
			return l.readComment()
		case l.hasPrefix("<!"):
			return l.readDoctype()
		case l.hasPrefix("</") && isTagStart(l.runeAt(l.pos+2)):
			return l.readTagOpen(true)
		case isTagStart(l.peekChar()):
			return l.readTagOpen(false)
		}
	}

	return l.readText()
}

// runeAt decodes the rune at byte offset i
func (l *Lexer) runeAt(i int) rune {
	if i >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[i:])
	return r
}

// readText reads character data up to the next tag-like construct
func (l *Lexer) readText() Token {
	start := l.pos
	l.readChar()
	for !l.atEOF() {
		if l.ch == '<' {
			next := l.peekChar()
			if isTagStart(next) || next == '!' || (next == '/' && isTagStart(l.runeAt(l.pos+2))) {
				break
			}
		}
		l.readChar()
	}
	return l.makeToken(TokenText, l.input[start:l.pos])
}

// readComment reads <!-- ... -->
func (l *Lexer) readComment() Token {
	start := l.pos
	l.advance(4)
	for !l.atEOF() && !l.hasPrefix("-->") {
		l.readChar()
	}
	l.advance(3)
	return l.makeToken(TokenComment, l.input[start:l.pos])
}

// readDoctype reads <!DOCTYPE ...> and other markup declarations
func (l *Lexer) readDoctype() Token {
	start := l.pos
	for !l.atEOF() && l.ch != '>' {
		l.readChar()
	}
	if l.ch == '>' {
		l.readChar()
	}
	return l.makeToken(TokenDoctype, l.input[start:l.pos])
}

// readTagOpen reads "<name" or "</name" and switches to tag mode
func (l *Lexer) readTagOpen(end bool) Token {
	start := l.pos
	l.readChar() // consume <
	if end {
		l.readChar() // consume /
	}
	nameStart := l.pos
	for !l.atEOF() && isTagNameChar(l.ch) {
		l.readChar()
	}
	l.tagName = l.input[nameStart:l.pos]
	l.endTag = end
	l.mode = modeTag
	if end {
		return l.makeToken(TokenEndTagOpen, l.input[start:l.pos])
	}
	return l.makeToken(TokenTagOpen, l.input[start:l.pos])
}

func (l *Lexer) lexTag() Token {
	l.skipWhitespace()
	l.markStart()

	if l.atEOF() {
		l.mode = modeData
		return l.makeToken(TokenEOF, "")
	}

	switch {
	case l.ch == '>':
		l.readChar()
		l.closeTag(false)
		return l.makeToken(TokenTagClose, ">")
	case l.ch == '/' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		l.closeTag(true)
		return l.makeToken(TokenSelfClose, "/>")
	case l.ch == '/':
		// stray solidus between attributes
		l.readChar()
		return l.lexTag()
	case l.ch == '=':
		l.readChar()
		tok := l.makeToken(TokenEquals, "=")
		return tok
	}

	return l.readAttrName()
}

// closeTag leaves tag mode, entering raw text for script-like elements
func (l *Lexer) closeTag(selfClosing bool) {
	l.mode = modeData
	if !l.endTag && !selfClosing && IsRawTextElement(strings.ToLower(l.tagName)) {
		l.mode = modeRawText
		l.rawTag = l.tagName
	}
	l.tagName = ""
	l.endTag = false
}

// readAttrName reads an attribute name; a value may follow after '='
func (l *Lexer) readAttrName() Token {
	start := l.pos
	for !l.atEOF() && isAttrNameChar(l.ch) {
		l.readChar()
	}
	if l.pos == start {
		// unexpected character such as a quote; consume it as a name
		l.readChar()
	}
	return l.makeToken(TokenAttrName, l.input[start:l.pos])
}

// ReadAttrValue reads the value following an '=' token.
// It is driven by the parser because only it knows an '=' was just seen.
func (l *Lexer) ReadAttrValue() (Token, bool) {
	l.skipWhitespace()
	l.markStart()
	if l.atEOF() || l.ch == '>' {
		return Token{}, false
	}

	start := l.pos
	if l.ch == '"' || l.ch == '\'' {
		quote := l.ch
		l.readChar() // consume opening quote
		for !l.atEOF() && l.ch != quote {
			l.readChar()
		}
		if l.ch == quote {
			l.readChar() // consume closing quote
		}
		return l.makeToken(TokenAttrValue, l.input[start:l.pos]), true
	}

	for !l.atEOF() && !isSpace(l.ch) && l.ch != '>' {
		l.readChar()
	}
	return l.makeToken(TokenAttrValue, l.input[start:l.pos]), true
}

// lexRawText reads everything up to the closing tag of the raw text element
func (l *Lexer) lexRawText() Token {
	l.markStart()
	start := l.pos
	closing := "</" + strings.ToLower(l.rawTag)
	for !l.atEOF() {
		if l.ch == '<' && strings.HasPrefix(strings.ToLower(l.input[l.pos:min(len(l.input), l.pos+len(closing))]), closing) {
			break
		}
		l.readChar()
	}
	l.mode = modeData
	l.rawTag = ""
	if l.pos == start {
		return l.lexData()
	}
	return l.makeToken(TokenText, l.input[start:l.pos])
}

// skipWhitespace skips spaces, tabs and newlines inside a tag
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && isSpace(l.ch) {
		l.readChar()
	}
}

// Tokenize returns all tokens from the input.
// Attribute values are read eagerly after each '=' token.
func (l *Lexer) Tokenize() []Token {
	return l.appendTokens(nil)
}

func (l *Lexer) appendTokens(tokens []Token) []Token {
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEquals {
			if val, ok := l.ReadAttrValue(); ok {
				tokens = append(tokens, val)
			}
		}
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// isTagStart returns true if r can begin a tag name
func isTagStart(r rune) bool {
	return unicode.IsLetter(r)
}

// isTagNameChar returns true if r can be part of a tag name
func isTagNameChar(r rune) bool {
	return !isSpace(r) && r != '/' && r != '>' && r != '<' && r != 0
}

// isAttrNameChar returns true if r can be part of an attribute name
func isAttrNameChar(r rune) bool {
	return !isSpace(r) && r != '/' && r != '>' && r != '=' && r != '"' && r != '\'' && r != '<' && r != 0
}
