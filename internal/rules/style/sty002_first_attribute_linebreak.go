package style

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/fixer"
	"github.com/HueCodes/vuelint/internal/parser"
	"github.com/HueCodes/vuelint/internal/rules"
)

// Placement is where the first attribute of a start tag must go
type Placement string

const (
	PlacementBeside Placement = "beside"
	PlacementBelow  Placement = "below"
	PlacementIgnore Placement = "ignore"
)

// STY002FirstAttributeLinebreak enforces the line of the first attribute
type STY002FirstAttributeLinebreak struct {
	singleline Placement
	multiline  Placement
}

// NewSTY002 returns the rule with its default placements
func NewSTY002() *STY002FirstAttributeLinebreak {
	return &STY002FirstAttributeLinebreak{
		singleline: PlacementIgnore,
		multiline:  PlacementBelow,
	}
}

func (r *STY002FirstAttributeLinebreak) ID() string                  { return "STY002" }
func (r *STY002FirstAttributeLinebreak) Name() string                { return "first-attribute-linebreak" }
func (r *STY002FirstAttributeLinebreak) Category() analyzer.Category { return analyzer.CategoryStyle }
func (r *STY002FirstAttributeLinebreak) Severity() analyzer.Severity { return analyzer.SeverityWarning }

func (r *STY002FirstAttributeLinebreak) Description() string {
	return "The first attribute of a start tag should be on the same line as the tag name (beside) " +
		"or on the next line (below). Tags whose attributes span several lines are multiline."
}

func (r *STY002FirstAttributeLinebreak) Options() []rules.OptionDoc {
	return []rules.OptionDoc{
		{Name: "singleline", Type: "beside|below|ignore", Default: string(PlacementIgnore), Description: "placement when all attributes are on one line"},
		{Name: "multiline", Type: "beside|below|ignore", Default: string(PlacementBelow), Description: "placement when attributes span several lines"},
	}
}

// Configure validates the singleline and multiline options
func (r *STY002FirstAttributeLinebreak) Configure(options map[string]interface{}) (analyzer.Rule, error) {
	c := *NewSTY002()

	for name, dst := range map[string]*Placement{"singleline": &c.singleline, "multiline": &c.multiline} {
		v, ok := options[name]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, analyzer.OptionError(name, err)
		}
		switch p := Placement(s); p {
		case PlacementBeside, PlacementBelow, PlacementIgnore:
			*dst = p
		default:
			return nil, analyzer.OptionError(name, fmt.Errorf("expected beside, below or ignore, got %q", s))
		}
	}
	return &c, nil
}

func (r *STY002FirstAttributeLinebreak) Create(ctx *analyzer.RuleContext) *analyzer.Visitor {
	return &analyzer.Visitor{
		Element: func(el *parser.Element) {
			if len(el.Attributes) == 0 {
				return
			}
			first := el.Attributes[0]
			last := el.Attributes[len(el.Attributes)-1]

			placement := r.singleline
			if first.Pos().Line != last.End().Line {
				placement = r.multiline
			}

			beside := first.Pos().Line == el.NameEnd.Line
			var diag *analyzer.DiagnosticBuilder
			switch {
			case placement == PlacementBelow && beside:
				diag = analyzer.NewDiagnostic(r.ID(), r.Category()).
					WithMessage("expected", "Expected a linebreak before this attribute.").
					WithFix(fixer.New("Insert line break", fixer.ReplaceRange(el.NameEnd.Offset, first.Pos().Offset, "\n")))
			case placement == PlacementBeside && !beside:
				diag = analyzer.NewDiagnostic(r.ID(), r.Category()).
					WithMessage("unexpected", "Expected no linebreak before this attribute.").
					WithFix(fixer.New("Remove line break", fixer.ReplaceRange(el.NameEnd.Offset, first.Pos().Offset, " ")))
			default:
				return
			}

			start, end := ctx.Resolver.Resolve(first, analyzer.LocusNode)
			ctx.Report(diag.WithRange(start, end).Build())
		},
	}
}

func init() {
	Register(NewSTY002())
}
