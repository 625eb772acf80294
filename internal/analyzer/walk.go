package analyzer

import (
	"strings"

	"github.com/HueCodes/vuelint/internal/parser"
)

// Visitor holds a rule's node handlers. Nil handlers are skipped.
type Visitor struct {
	Element     func(*parser.Element)
	ElementExit func(*parser.Element)
	Attribute   func(*parser.Attribute)
	Text        func(*parser.Text)
}

type handler func(parser.Node)

// dispatcher routes nodes to handlers keyed by node kind
type dispatcher struct {
	enter map[parser.NodeKind][]handler
	exit  map[parser.NodeKind][]handler
}

func newDispatcher(visitors []*Visitor) *dispatcher {
	d := &dispatcher{
		enter: make(map[parser.NodeKind][]handler),
		exit:  make(map[parser.NodeKind][]handler),
	}
	for _, v := range visitors {
		if v == nil {
			continue
		}
		if fn := v.Element; fn != nil {
			d.enter[parser.KindElement] = append(d.enter[parser.KindElement], func(n parser.Node) { fn(n.(*parser.Element)) })
		}
		if fn := v.ElementExit; fn != nil {
			d.exit[parser.KindElement] = append(d.exit[parser.KindElement], func(n parser.Node) { fn(n.(*parser.Element)) })
		}
		if fn := v.Attribute; fn != nil {
			d.enter[parser.KindAttribute] = append(d.enter[parser.KindAttribute], func(n parser.Node) { fn(n.(*parser.Attribute)) })
		}
		if fn := v.Text; fn != nil {
			d.enter[parser.KindText] = append(d.enter[parser.KindText], func(n parser.Node) { fn(n.(*parser.Text)) })
		}
	}
	return d
}

func (d *dispatcher) Enter(n parser.Node) bool {
	for _, h := range d.enter[n.Kind()] {
		h(n)
	}
	return true
}

func (d *dispatcher) Exit(n parser.Node) {
	for _, h := range d.exit[n.Kind()] {
		h(n)
	}
}

// Walk visits every node under root exactly once in document order,
// calling the handlers of all visitors in registration order.
func Walk(root parser.Node, visitors ...*Visitor) {
	parser.Walk(newDispatcher(visitors), root)
}

// Roots returns the nodes a rule pass starts from. A document with a
// top-level <template> is treated as a single-file component and only the
// template is linted; a template in a non-HTML language is skipped.
func Roots(doc *parser.Document) []parser.Node {
	for _, el := range doc.Elements() {
		if !el.IsTemplate() {
			continue
		}
		if lang := el.Attr("lang"); lang != nil && lang.Value != nil {
			if l := strings.ToLower(strings.TrimSpace(lang.Value.Text)); l != "" && l != "html" {
				return nil
			}
		}
		return []parser.Node{el}
	}
	return doc.Children
}
