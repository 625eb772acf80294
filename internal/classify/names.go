package classify

import (
	"strings"
	"unicode"

	"golang.org/x/net/html/atom"

	"github.com/HueCodes/vuelint/internal/parser"
)

// htmlElements are the well-known HTML element names
var htmlElements = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.Address: true, atom.Area: true,
	atom.Article: true, atom.Aside: true, atom.Audio: true, atom.B: true,
	atom.Base: true, atom.Bdi: true, atom.Bdo: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Button: true, atom.Canvas: true,
	atom.Caption: true, atom.Cite: true, atom.Code: true, atom.Col: true,
	atom.Colgroup: true, atom.Data: true, atom.Datalist: true, atom.Dd: true,
	atom.Del: true, atom.Details: true, atom.Dfn: true, atom.Dialog: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Em: true,
	atom.Embed: true, atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Head: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Html: true, atom.I: true, atom.Iframe: true, atom.Img: true,
	atom.Input: true, atom.Ins: true, atom.Kbd: true, atom.Label: true,
	atom.Legend: true, atom.Li: true, atom.Link: true, atom.Main: true,
	atom.Map: true, atom.Mark: true, atom.Math: true, atom.Menu: true,
	atom.Meta: true, atom.Meter: true, atom.Nav: true, atom.Noscript: true,
	atom.Object: true, atom.Ol: true, atom.Optgroup: true, atom.Option: true,
	atom.Output: true, atom.P: true, atom.Param: true, atom.Picture: true,
	atom.Pre: true, atom.Progress: true, atom.Q: true, atom.Rp: true,
	atom.Rt: true, atom.Ruby: true, atom.S: true, atom.Samp: true,
	atom.Script: true, atom.Section: true, atom.Select: true, atom.Slot: true,
	atom.Small: true, atom.Source: true, atom.Span: true, atom.Strong: true,
	atom.Style: true, atom.Sub: true, atom.Summary: true, atom.Sup: true,
	atom.Svg: true, atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Template: true, atom.Textarea: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Time: true, atom.Title: true, atom.Tr: true,
	atom.Track: true, atom.U: true, atom.Ul: true, atom.Var: true,
	atom.Video: true, atom.Wbr: true,
}

// svgElements are well-known SVG element names, matched case-sensitively
var svgElements = map[string]bool{
	"circle": true, "clipPath": true, "defs": true, "desc": true,
	"ellipse": true, "feBlend": true, "feColorMatrix": true, "feGaussianBlur": true,
	"feOffset": true, "filter": true, "foreignObject": true, "g": true,
	"image": true, "line": true, "linearGradient": true, "marker": true,
	"mask": true, "path": true, "pattern": true, "polygon": true,
	"polyline": true, "radialGradient": true, "rect": true, "stop": true,
	"switch": true, "symbol": true, "text": true, "textPath": true,
	"tspan": true, "use": true, "view": true,
}

// IsKnownElement reports whether name, as written, is a well-known HTML or
// SVG element. Names with upper case letters are never HTML elements.
func IsKnownElement(name string) bool {
	if svgElements[name] {
		return true
	}
	return htmlElements[atom.Lookup([]byte(name))]
}

// IsCustomComponent reports whether el renders a component rather than a
// plain element. <template> and <component> are never custom components.
func IsCustomComponent(el *parser.Element) bool {
	switch el.LowerName() {
	case "template", "component":
		return false
	}
	if el.Attr("is") != nil || el.Directive("bind", "is") != nil {
		return true
	}
	return !IsKnownElement(el.Name)
}

// Kebab converts a component name to kebab-case: MyComponent -> my-component
func Kebab(name string) string {
	name = strings.ReplaceAll(name, "_", "-")

	var b strings.Builder
	var prev rune
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) && isWordRune(prev) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// Pascal converts a component name to PascalCase: my-component -> MyComponent
func Pascal(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
