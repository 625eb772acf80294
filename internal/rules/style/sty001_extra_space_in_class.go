package style

import (
	"strings"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/classify"
	"github.com/HueCodes/vuelint/internal/fixer"
	"github.com/HueCodes/vuelint/internal/parser"
)

// STY001ExtraSpaceInClass checks static class values for stray whitespace
type STY001ExtraSpaceInClass struct{}

func (r *STY001ExtraSpaceInClass) ID() string                  { return "STY001" }
func (r *STY001ExtraSpaceInClass) Name() string                { return "no-extra-space-in-class" }
func (r *STY001ExtraSpaceInClass) Category() analyzer.Category { return analyzer.CategoryStyle }
func (r *STY001ExtraSpaceInClass) Severity() analyzer.Severity { return analyzer.SeverityWarning }

func (r *STY001ExtraSpaceInClass) Description() string {
	return "Static class attributes should not have leading, trailing or repeated spaces. " +
		"Multiline values keep their indentation; only repeated spaces between classes are reported."
}

func (r *STY001ExtraSpaceInClass) Create(ctx *analyzer.RuleContext) *analyzer.Visitor {
	return &analyzer.Visitor{
		Attribute: func(attr *parser.Attribute) {
			// :class and v-bind:class hold expressions, not class lists
			if attr.Key.Directive || attr.Key.Name != "class" || attr.Value == nil {
				return
			}

			raw := attr.Value.Text
			if !classify.HasExtraSpaces(raw) {
				return
			}

			start, end := ctx.Resolver.Resolve(attr, analyzer.LocusValue)
			ctx.Report(analyzer.NewDiagnostic(r.ID(), r.Category()).
				WithMessage("extraSpaces", "Class attribute contains extra spaces.").
				WithRange(start, end).
				WithHelp("Separate class names with a single space").
				WithFix(r.fix(attr.Value, raw)).
				Build())
		},
	}
}

func (r *STY001ExtraSpaceInClass) fix(value *parser.AttributeValue, raw string) *analyzer.Fix {
	fixed := classify.CollapseSpaces(raw)

	quote := `"`
	if strings.Contains(fixed, `"`) {
		if strings.Contains(fixed, `'`) {
			return nil
		}
		quote = `'`
	}
	return fixer.New("Remove extra spaces", fixer.ReplaceNode(value, quote+fixed+quote))
}

func init() {
	Register(&STY001ExtraSpaceInClass{})
}
