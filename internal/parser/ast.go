package parser

import (
	"strings"

	"github.com/HueCodes/vuelint/internal/lexer"
)

// NodeKind identifies the concrete type of a node
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindElement
	KindAttribute
	KindAttributeKey
	KindAttributeValue
	KindText
	KindComment
)

var kindNames = map[NodeKind]string{
	KindDocument:       "Document",
	KindElement:        "Element",
	KindAttribute:      "Attribute",
	KindAttributeKey:   "AttributeKey",
	KindAttributeValue: "AttributeValue",
	KindText:           "Text",
	KindComment:        "Comment",
}

func (k NodeKind) String() string {
	return kindNames[k]
}

// Node is the interface implemented by all AST nodes.
// End is exclusive.
type Node interface {
	Pos() lexer.Position
	End() lexer.Position
	Kind() NodeKind
	node()
}

// Document is the root of a parsed template file
type Document struct {
	Children []Node
	Source   string
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (d *Document) Pos() lexer.Position { return d.StartPos }
func (d *Document) End() lexer.Position { return d.EndPos }
func (d *Document) Kind() NodeKind      { return KindDocument }
func (d *Document) node()               {}

// Text returns the source text covered by n
func (d *Document) Text(n Node) string {
	return d.Source[n.Pos().Offset:n.End().Offset]
}

// Elements returns the top-level elements in document order
func (d *Document) Elements() []*Element {
	return elementsOf(d.Children)
}

// Element is a markup element with its attributes and children
type Element struct {
	Name        string // name as written
	Attributes  []*Attribute
	Children    []Node
	Parent      *Element // nil for top-level elements
	SelfClosing bool
	HasEndTag   bool
	StartPos    lexer.Position
	NameEnd     lexer.Position // end of the tag name in the start tag
	StartTagEnd lexer.Position // just after the start tag's '>'
	EndTagStart lexer.Position // start of the end tag, if any
	EndPos      lexer.Position
}

func (e *Element) Pos() lexer.Position { return e.StartPos }
func (e *Element) End() lexer.Position { return e.EndPos }
func (e *Element) Kind() NodeKind      { return KindElement }
func (e *Element) node()               {}

// LowerName returns the element name in lower case
func (e *Element) LowerName() string {
	return strings.ToLower(e.Name)
}

// IsTemplate reports whether e is a <template> element
func (e *Element) IsTemplate() bool {
	return e.LowerName() == "template"
}

// IsVoid reports whether e is an HTML void element such as <br> or <img>
func (e *Element) IsVoid() bool {
	return voidElements[e.LowerName()]
}

// Attr returns the static attribute with the given name, or nil
func (e *Element) Attr(name string) *Attribute {
	for _, a := range e.Attributes {
		if !a.Key.Directive && a.Key.Name == name {
			return a
		}
	}
	return nil
}

// Directive returns the first directive with the given name, or nil.
// An empty argument matches any argument.
func (e *Element) Directive(name, argument string) *Attribute {
	for _, a := range e.Attributes {
		k := a.Key
		if !k.Directive || k.Name != name {
			continue
		}
		if argument == "" || (!k.DynamicArgument && k.Argument == argument) {
			return a
		}
	}
	return nil
}

// ChildElements returns the element children in document order
func (e *Element) ChildElements() []*Element {
	return elementsOf(e.Children)
}

// PrevElementSibling returns the element preceding e among its parent's
// children, skipping text and comments. siblings are the parent's children.
func (e *Element) PrevElementSibling(siblings []Node) *Element {
	var prev *Element
	for _, n := range siblings {
		if n == Node(e) {
			return prev
		}
		if el, ok := n.(*Element); ok {
			prev = el
		}
	}
	return nil
}

func elementsOf(nodes []Node) []*Element {
	var out []*Element
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Attribute is a static attribute or a directive on an element
type Attribute struct {
	Key      *AttributeKey
	Value    *AttributeValue // nil when the attribute has no value
	Element  *Element
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (a *Attribute) Pos() lexer.Position { return a.StartPos }
func (a *Attribute) End() lexer.Position { return a.EndPos }
func (a *Attribute) Kind() NodeKind      { return KindAttribute }
func (a *Attribute) node()               {}

// AttributeKey is the name part of an attribute, decomposed for directives.
//
//	class            -> Name "class"
//	:slot            -> Directive, Name "bind", Argument "slot"
//	v-bind:[key]     -> Directive, Name "bind", Argument "key", DynamicArgument
//	@click.stop      -> Directive, Name "on", Argument "click", Modifiers [stop]
//	#header          -> Directive, Name "slot", Argument "header"
type AttributeKey struct {
	Raw             string
	Name            string
	Directive       bool
	Argument        string
	DynamicArgument bool
	Modifiers       []string
	StartPos        lexer.Position
	EndPos          lexer.Position
}

func (k *AttributeKey) Pos() lexer.Position { return k.StartPos }
func (k *AttributeKey) End() lexer.Position { return k.EndPos }
func (k *AttributeKey) Kind() NodeKind      { return KindAttributeKey }
func (k *AttributeKey) node()               {}

// AttributeValue is the value token of an attribute
type AttributeValue struct {
	Raw      string // as written, quotes included
	Text     string // contents without quotes
	Quote    rune   // '"', '\'' or 0 when unquoted
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (v *AttributeValue) Pos() lexer.Position { return v.StartPos }
func (v *AttributeValue) End() lexer.Position { return v.EndPos }
func (v *AttributeValue) Kind() NodeKind      { return KindAttributeValue }
func (v *AttributeValue) node()               {}

// Text is character data between tags
type Text struct {
	Value    string
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (t *Text) Pos() lexer.Position { return t.StartPos }
func (t *Text) End() lexer.Position { return t.EndPos }
func (t *Text) Kind() NodeKind      { return KindText }
func (t *Text) node()               {}

// Comment is a markup comment or declaration
type Comment struct {
	Text     string
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (c *Comment) Pos() lexer.Position { return c.StartPos }
func (c *Comment) End() lexer.Position { return c.EndPos }
func (c *Comment) Kind() NodeKind      { return KindComment }
func (c *Comment) node()               {}

// Visitor receives nodes during Walk.
// Enter returning false skips the node's attributes and children.
type Visitor interface {
	Enter(Node) bool
	Exit(Node)
}

// Walk traverses the tree in document order: an element, then its
// attributes, then its children, then the element's exit.
func Walk(v Visitor, node Node) {
	switch n := node.(type) {
	case *Document:
		if !v.Enter(n) {
			return
		}
		for _, child := range n.Children {
			Walk(v, child)
		}
		v.Exit(n)
	case *Element:
		if !v.Enter(n) {
			return
		}
		for _, attr := range n.Attributes {
			if v.Enter(attr) {
				v.Exit(attr)
			}
		}
		for _, child := range n.Children {
			Walk(v, child)
		}
		v.Exit(n)
	default:
		if v.Enter(n) {
			v.Exit(n)
		}
	}
}
