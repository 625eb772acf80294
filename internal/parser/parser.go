package parser

import (
	"fmt"
	"strings"

	"github.com/HueCodes/vuelint/internal/lexer"
)

// Parser parses template tokens into an AST
type Parser struct {
	tokens  []lexer.Token
	pos     int
	current lexer.Token
	errors  []ParseError
	stack   []*Element
	doc     *Document
}

// ParseError represents a parsing error
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// voidElements never have content or an end tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// New creates a new Parser
func New(tokens []lexer.Token) *Parser {
	p := &Parser{
		tokens: tokens,
		pos:    0,
	}
	if len(tokens) > 0 {
		p.current = tokens[0]
	}
	return p
}

// Parse parses the input and returns a Document AST.
// Parsing never fails; problems are returned as errors alongside a best-effort tree.
func Parse(input string) (*Document, []ParseError) {
	buf := lexer.TokenizePooled(input)
	defer buf.Release()

	p := New(buf.Tokens)
	doc := p.ParseDocument(input)
	return doc, p.errors
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
	if p.pos < len(p.tokens) {
		p.current = p.tokens[p.pos]
	} else {
		p.current = lexer.Token{Type: lexer.TokenEOF, Pos: p.current.EndPos, EndPos: p.current.EndPos}
	}
}

// peek returns the next token without advancing
func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return lexer.Token{Type: lexer.TokenEOF}
}

// error records a parsing error
func (p *Parser) error(msg string) {
	p.errors = append(p.errors, ParseError{
		Message: msg,
		Pos:     p.current.Pos,
	})
}

// ParseDocument parses all tokens into a Document
func (p *Parser) ParseDocument(source string) *Document {
	p.doc = &Document{
		Source:   source,
		StartPos: lexer.Position{Line: 1, Column: 1, Offset: 0},
	}
	p.stack = p.stack[:0]

	for p.current.Type != lexer.TokenEOF {
		switch p.current.Type {
		case lexer.TokenTagOpen:
			p.parseStartTag()
		case lexer.TokenEndTagOpen:
			p.parseEndTag()
		case lexer.TokenText:
			p.appendChild(&Text{
				Value:    p.current.Literal,
				StartPos: p.current.Pos,
				EndPos:   p.current.EndPos,
			})
			p.advance()
		case lexer.TokenComment, lexer.TokenDoctype:
			p.appendChild(&Comment{
				Text:     p.current.Literal,
				StartPos: p.current.Pos,
				EndPos:   p.current.EndPos,
			})
			p.advance()
		default:
			p.error(fmt.Sprintf("unexpected %s", p.current.Type))
			p.advance()
		}
	}

	eof := p.current.Pos
	if len(p.tokens) > 0 {
		eof = p.tokens[len(p.tokens)-1].EndPos
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		el := p.stack[i]
		p.errors = append(p.errors, ParseError{
			Message: fmt.Sprintf("unclosed element <%s>", el.Name),
			Pos:     el.StartPos,
		})
		el.EndPos = eof
	}
	p.stack = p.stack[:0]
	p.doc.EndPos = eof

	return p.doc
}

// parent returns the innermost open element, or nil at top level
func (p *Parser) parent() *Element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) appendChild(n Node) {
	if parent := p.parent(); parent != nil {
		parent.Children = append(parent.Children, n)
		return
	}
	p.doc.Children = append(p.doc.Children, n)
}

// parseStartTag parses "<name attrs... >" or "<name attrs... />"
func (p *Parser) parseStartTag() {
	el := &Element{
		Name:     p.current.TagName(),
		Parent:   p.parent(),
		StartPos: p.current.Pos,
		NameEnd:  p.current.EndPos,
	}
	p.appendChild(el)
	p.advance()

	for {
		switch p.current.Type {
		case lexer.TokenAttrName:
			el.Attributes = append(el.Attributes, p.parseAttribute(el))
			continue
		case lexer.TokenTagClose:
			el.StartTagEnd = p.current.EndPos
			p.advance()
			if voidElements[el.LowerName()] {
				el.EndPos = el.StartTagEnd
				return
			}
			p.stack = append(p.stack, el)
			return
		case lexer.TokenSelfClose:
			el.SelfClosing = true
			el.StartTagEnd = p.current.EndPos
			el.EndPos = el.StartTagEnd
			p.advance()
			return
		case lexer.TokenEquals:
			p.error("attribute value without a name")
			p.advance()
			if p.current.Type == lexer.TokenAttrValue {
				p.advance()
			}
			continue
		}

		// EOF or anything else ends the start tag
		p.error(fmt.Sprintf("unterminated start tag <%s>", el.Name))
		el.StartTagEnd = p.current.Pos
		el.EndPos = p.current.Pos
		return
	}
}

// parseAttribute parses a name with an optional "=value"
func (p *Parser) parseAttribute(el *Element) *Attribute {
	key := &AttributeKey{
		Raw:      p.current.Literal,
		StartPos: p.current.Pos,
		EndPos:   p.current.EndPos,
	}
	decomposeKey(key)

	attr := &Attribute{
		Key:      key,
		Element:  el,
		StartPos: key.StartPos,
		EndPos:   key.EndPos,
	}
	p.advance()

	if p.current.Type != lexer.TokenEquals {
		return attr
	}
	attr.EndPos = p.current.EndPos
	if p.peek().Type != lexer.TokenAttrValue {
		p.advance()
		p.error(fmt.Sprintf("missing value for attribute %s", key.Raw))
		return attr
	}
	p.advance()

	attr.Value = newAttributeValue(p.current)
	attr.EndPos = attr.Value.EndPos
	p.advance()
	return attr
}

func newAttributeValue(tok lexer.Token) *AttributeValue {
	v := &AttributeValue{
		Raw:      tok.Literal,
		Text:     tok.Literal,
		StartPos: tok.Pos,
		EndPos:   tok.EndPos,
	}
	raw := tok.Literal
	if len(raw) > 0 && (raw[0] == '"' || raw[0] == '\'') {
		v.Quote = rune(raw[0])
		v.Text = raw[1:]
		if len(v.Text) > 0 && v.Text[len(v.Text)-1] == raw[0] {
			v.Text = v.Text[:len(v.Text)-1]
		}
	}
	return v
}

// parseEndTag parses "</name>" and closes the matching open element
func (p *Parser) parseEndTag() {
	name := p.current.TagName()
	start := p.current.Pos
	p.advance()

	// end tags may not carry attributes; skip anything up to '>'
	for p.current.Type != lexer.TokenTagClose && p.current.Type != lexer.TokenEOF {
		p.advance()
	}
	end := p.current.EndPos
	if p.current.Type == lexer.TokenTagClose {
		p.advance()
	} else {
		end = p.current.Pos
	}

	match := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(p.stack[i].Name, name) {
			match = i
			break
		}
	}
	if match == -1 {
		p.errors = append(p.errors, ParseError{
			Message: fmt.Sprintf("unexpected end tag </%s>", name),
			Pos:     start,
		})
		return
	}

	for i := len(p.stack) - 1; i > match; i-- {
		el := p.stack[i]
		p.errors = append(p.errors, ParseError{
			Message: fmt.Sprintf("unclosed element <%s>", el.Name),
			Pos:     el.StartPos,
		})
		el.EndPos = start
	}

	el := p.stack[match]
	el.HasEndTag = true
	el.EndTagStart = start
	el.EndPos = end
	p.stack = p.stack[:match]
}
