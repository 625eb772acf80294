package reporter

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// SARIFReporter outputs results in SARIF 2.1.0
type SARIFReporter struct {
	cfg *Config
}

// SARIF format structures
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

type SARIFRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name,omitempty"`
	ShortDescription SARIFMessage    `json:"shortDescription"`
	DefaultConfig    SARIFRuleConfig `json:"defaultConfiguration"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

type SARIFReplacement struct {
	DeletedRegion   SARIFRegion  `json:"deletedRegion"`
	InsertedContent SARIFMessage `json:"insertedContent"`
}

func severityToSARIFLevel(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityError:
		return "error"
	case analyzer.SeverityWarning:
		return "warning"
	case analyzer.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}

// Report outputs all files as a single SARIF run
func (r *SARIFReporter) Report(files []File) error {
	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "vuelint",
				Version:        r.cfg.Version,
				InformationURI: "https://github.com/HueCodes/vuelint",
				Rules:          []SARIFRule{},
			},
		},
		Results: []SARIFResult{},
	}

	// rules are listed once, in ID order, and results point at them by index
	levels := make(map[string]string)
	for _, f := range files {
		for _, d := range f.Result.Diagnostics {
			if _, ok := levels[d.Rule]; !ok {
				levels[d.Rule] = severityToSARIFLevel(d.Severity)
			}
		}
	}
	ids := make([]string, 0, len(levels))
	for id := range levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
		rule := SARIFRule{ID: id, DefaultConfig: SARIFRuleConfig{Level: levels[id]}}
		if meta, ok := r.cfg.Rules[id]; ok {
			rule.Name = meta.Name
			rule.ShortDescription = SARIFMessage{Text: meta.Description}
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
	}

	for _, f := range files {
		artifact := SARIFArtifactLocation{URI: f.Result.Filename}
		for _, d := range f.Result.Diagnostics {
			res := SARIFResult{
				RuleID:    d.Rule,
				RuleIndex: index[d.Rule],
				Level:     severityToSARIFLevel(d.Severity),
				Message:   SARIFMessage{Text: d.Message},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: artifact,
						Region: SARIFRegion{
							StartLine:   d.Pos.Line,
							StartColumn: d.Pos.Column,
							EndLine:     d.EndPos.Line,
							EndColumn:   d.EndPos.Column,
							ByteOffset:  d.Pos.Offset,
							ByteLength:  d.EndPos.Offset - d.Pos.Offset,
						},
					},
				}},
			}
			if d.Fix != nil {
				change := SARIFArtifactChange{ArtifactLocation: artifact}
				for _, e := range d.Fix.Edits {
					change.Replacements = append(change.Replacements, SARIFReplacement{
						DeletedRegion:   SARIFRegion{ByteOffset: e.Start, ByteLength: e.End - e.Start},
						InsertedContent: SARIFMessage{Text: e.NewText},
					})
				}
				res.Fixes = []SARIFFix{{
					Description:     SARIFMessage{Text: d.Fix.Title},
					ArtifactChanges: []SARIFArtifactChange{change},
				}}
			}
			run.Results = append(run.Results, res)
		}
	}

	log := SARIFLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs:    []SARIFRun{run},
	}

	encoder := json.NewEncoder(r.cfg.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
