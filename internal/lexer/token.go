package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenText
	TokenComment
	TokenDoctype

	// Tags
	TokenTagOpen    // <name
	TokenEndTagOpen // </name
	TokenTagClose   // >
	TokenSelfClose  // />

	// Attributes
	TokenAttrName
	TokenEquals
	TokenAttrValue // quoted or unquoted value, quotes included
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenText:       "TEXT",
	TokenComment:    "COMMENT",
	TokenDoctype:    "DOCTYPE",
	TokenTagOpen:    "TAG_OPEN",
	TokenEndTagOpen: "END_TAG_OPEN",
	TokenTagClose:   "TAG_CLOSE",
	TokenSelfClose:  "SELF_CLOSE",
	TokenAttrName:   "ATTR_NAME",
	TokenEquals:     "EQUALS",
	TokenAttrValue:  "ATTR_VALUE",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// rawTextElements hold their content verbatim until the matching end tag
var rawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// IsRawTextElement reports whether the content of the named element is raw text
func IsRawTextElement(name string) bool {
	return rawTextElements[name]
}

// Position represents a position in the source
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string   // the actual text
	Pos     Position // start position
	EndPos  Position // end position (exclusive)
}

func (t Token) String() string {
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s(%q...) at %s", t.Type, t.Literal[:20], t.Pos)
	}
	return fmt.Sprintf("%s(%q) at %s", t.Type, t.Literal, t.Pos)
}

// TagName returns the element name carried by a tag open token
func (t Token) TagName() string {
	switch t.Type {
	case TokenTagOpen:
		return t.Literal[1:]
	case TokenEndTagOpen:
		return t.Literal[2:]
	}
	return ""
}
