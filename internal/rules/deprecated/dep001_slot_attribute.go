package deprecated

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/classify"
	"github.com/HueCodes/vuelint/internal/fixer"
	"github.com/HueCodes/vuelint/internal/parser"
	"github.com/HueCodes/vuelint/internal/rules"
)

// DEP001SlotAttribute reports the deprecated slot attribute and rewrites it to v-slot
type DEP001SlotAttribute struct {
	rules.BaseRule
	ignore        classify.Patterns
	ignoreParents classify.Patterns
}

// NewDEP001 returns the rule with nothing ignored
func NewDEP001() *DEP001SlotAttribute {
	return &DEP001SlotAttribute{
		BaseRule: rules.BaseRule{
			RuleID:   "DEP001",
			RuleName: "no-deprecated-slot-attribute",
			RuleDescription: "The slot attribute is deprecated in favor of v-slot. " +
				"Slot content on a <template> is rewritten in place; other elements are wrapped in a <template>.",
			RuleCategory: analyzer.CategoryDeprecated,
			RuleSeverity: analyzer.SeverityError,
		},
	}
}

func (r *DEP001SlotAttribute) Options() []rules.OptionDoc {
	return []rules.OptionDoc{
		{Name: "ignore", Type: "[]string", Description: "element names or /regex/flags to skip"},
		{Name: "ignoreParents", Type: "[]string", Description: "skip elements inside a matching ancestor"},
	}
}

// Configure compiles the ignore and ignoreParents patterns
func (r *DEP001SlotAttribute) Configure(options map[string]interface{}) (analyzer.Rule, error) {
	c := *NewDEP001()

	var err error
	if c.ignore, err = patternOption(options, "ignore"); err != nil {
		return nil, err
	}
	if c.ignoreParents, err = patternOption(options, "ignoreParents"); err != nil {
		return nil, err
	}
	return &c, nil
}

func patternOption(options map[string]interface{}, name string) (classify.Patterns, error) {
	v, ok := options[name]
	if !ok || v == nil {
		return nil, nil
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, analyzer.OptionError(name, err)
	}
	patterns, err := classify.CompilePatterns(list)
	if err != nil {
		return nil, analyzer.OptionError(name, err)
	}
	return patterns, nil
}

// claim records a slot name used under one parent
type claim struct {
	id      int
	element *parser.Element
}

func (r *DEP001SlotAttribute) Create(ctx *analyzer.RuleContext) *analyzer.Visitor {
	// slot names already used, per parent element, for this traversal only
	claims := make(map[*parser.Element]map[string][]claim)

	return &analyzer.Visitor{
		Element: func(el *parser.Element) {
			if r.ignored(el) {
				return
			}
			for _, attr := range el.Attributes {
				if isSlotAttribute(attr) {
					r.check(ctx, el, attr, claims)
				}
			}
		},
	}
}

func isSlotAttribute(attr *parser.Attribute) bool {
	k := attr.Key
	if !k.Directive {
		return k.Name == "slot"
	}
	return k.Name == "bind" && !k.DynamicArgument && k.Argument == "slot"
}

func (r *DEP001SlotAttribute) ignored(el *parser.Element) bool {
	if r.ignore.MatchName(el.Name) {
		return true
	}
	if len(r.ignoreParents) == 0 {
		return false
	}
	for p := el.Parent; p != nil; p = p.Parent {
		if r.ignoreParents.MatchName(p.Name) {
			return true
		}
	}
	return false
}

func (r *DEP001SlotAttribute) check(ctx *analyzer.RuleContext, el *parser.Element, attr *parser.Attribute, claims map[*parser.Element]map[string][]claim) {
	fix := r.fix(ctx, el, attr)

	key := claimKey(el, attr)
	siblings := ctx.Document.Children
	if el.Parent != nil {
		siblings = el.Parent.Children
	}
	byKey := claims[el.Parent]
	if byKey == nil {
		byKey = make(map[string][]claim)
		claims[el.Parent] = byKey
	}

	var conflicts []claim
	for _, c := range byKey[key] {
		if !sameConditionalChain(c.element, el, siblings) {
			conflicts = append(conflicts, c)
		}
	}
	if len(conflicts) > 0 {
		fix = nil
	}

	start, end := ctx.Resolver.Resolve(attr, analyzer.LocusKey)
	id := ctx.Report(r.NewDiagnostic().
		WithMessage("forbiddenSlotAttribute", "`slot` attributes are deprecated.").
		WithRange(start, end).
		WithHelp("Use v-slot on a <template>, or the #name shorthand").
		WithFix(fix).
		Build())

	// the same slot name twice under one parent cannot be expressed with v-slot
	for _, c := range conflicts {
		ctx.Revoke(c.id)
	}
	byKey[key] = append(byKey[key], claim{id: id, element: el})
}

// claimKey identifies the slot an element fills within its parent
func claimKey(el *parser.Element, attr *parser.Attribute) string {
	if !attr.Key.Directive {
		name := "default"
		if attr.Value != nil && attr.Value.Text != "" {
			name = attr.Value.Text
		}
		return "static:" + name
	}

	// a valueless binding is shorthand for :slot="slot"
	expr := "slot"
	if attr.Value != nil {
		expr = strings.TrimSpace(attr.Value.Text)
	}
	if expr == "" {
		expr = "default"
	}
	iterable := ""
	if vFor := el.Directive("for", ""); vFor != nil && vFor.Value != nil {
		iterable = strings.TrimSpace(classify.ForIterable(vFor.Value.Text))
	}
	return "dynamic:" + expr + "|" + iterable
}

// sameConditionalChain reports whether later is a v-else or v-else-if
// branch of the chain that earlier belongs to
func sameConditionalChain(earlier, later *parser.Element, siblings []parser.Node) bool {
	cur := later
	for isElseBranch(cur) {
		prev := cur.PrevElementSibling(siblings)
		if prev == nil || !isConditional(prev) {
			return false
		}
		if prev == earlier {
			return true
		}
		cur = prev
	}
	return false
}

func isElseBranch(el *parser.Element) bool {
	return el.Directive("else", "") != nil || el.Directive("else-if", "") != nil
}

func isConditional(el *parser.Element) bool {
	return el.Directive("if", "") != nil || isElseBranch(el)
}

// fix builds the v-slot rewrite, or returns nil when it would be unsafe
func (r *DEP001SlotAttribute) fix(ctx *analyzer.RuleContext, el *parser.Element, attr *parser.Attribute) *analyzer.Fix {
	if el.Parent == nil || !classify.IsCustomComponent(el.Parent) {
		return nil
	}
	// v-slot is already declared here
	if el.Directive("slot", "") != nil {
		return nil
	}
	// closed only by recovery, so there is no end tag to wrap
	if !el.IsTemplate() && !el.SelfClosing && !el.HasEndTag && !el.IsVoid() {
		return nil
	}

	vFor := el.Directive("for", "")
	directive, ok := slotDirective(attr, vFor != nil)
	if !ok {
		return nil
	}

	scope := el.Attr("slot-scope")
	if scope == nil && el.IsTemplate() {
		scope = el.Attr("scope")
	}
	if scope != nil && scope.Value != nil {
		value := scope.Value.Raw
		if scope.Value.Quote == 0 {
			value = `"` + value + `"`
		}
		directive += "=" + value
	}

	if el.IsTemplate() {
		edits := []analyzer.Edit{fixer.ReplaceNode(attr, directive)}
		if scope != nil {
			edits = append(edits, fixer.RemoveNode(scope))
		}
		return fixer.New("Replace with "+directive, edits...)
	}

	body, err := fixer.RenderWithout(ctx.Source, el, attr, scope, vFor)
	if err != nil {
		return nil
	}
	open := "<template"
	if vFor != nil {
		open += " " + ctx.Text(vFor)
	}
	open += " " + directive + ">\n"
	return fixer.New("Wrap in <template "+directive+">", fixer.Wrap(el, open, body, "\n</template>"))
}

// slotDirective converts a slot attribute to its v-slot form
func slotDirective(attr *parser.Attribute, hasFor bool) (string, bool) {
	if !attr.Key.Directive {
		// a static name repeated by v-for would declare the slot many times
		if hasFor {
			return "", false
		}
		if attr.Value == nil || attr.Value.Text == "" {
			return "v-slot", true
		}
		if !classify.IsBareSlotName(attr.Value.Text) {
			return "", false
		}
		return "v-slot:" + attr.Value.Text, true
	}

	if attr.Value == nil {
		return "v-slot:[slot]", true
	}
	expr := strings.TrimSpace(attr.Value.Text)
	if !classify.IsIdentifier(expr) {
		return "", false
	}
	return "v-slot:[" + expr + "]", true
}

func init() {
	Register(NewDEP001())
}
