package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern matches element names. It is either a literal name or a
// regular expression written as /source/flags.
type Pattern struct {
	source  string
	literal string
	re      *regexp.Regexp
}

var regexLiteral = regexp.MustCompile(`^/(.+)/([a-z]*)$`)

// CompilePattern parses a literal name or a /regex/flags pattern.
// Flags i, m and s carry over; g, u, y and d do not change matching.
func CompilePattern(s string) (*Pattern, error) {
	m := regexLiteral.FindStringSubmatch(s)
	if m == nil {
		return &Pattern{source: s, literal: s}, nil
	}

	var flags string
	for _, f := range m[2] {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(flags, f) {
				flags += string(f)
			}
		case 'g', 'u', 'y', 'd':
		default:
			return nil, fmt.Errorf("invalid flag %q in %s", f, s)
		}
	}

	expr := m[1]
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", s, err)
	}
	return &Pattern{source: s, re: re}, nil
}

// MatchString reports whether the pattern matches s exactly (literal) or anywhere (regex)
func (p *Pattern) MatchString(s string) bool {
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return p.literal == s
}

// MatchName tests the raw name and its kebab-case and PascalCase forms
func (p *Pattern) MatchName(name string) bool {
	return p.MatchString(name) || p.MatchString(Kebab(name)) || p.MatchString(Pascal(name))
}

func (p *Pattern) String() string {
	return p.source
}

// Patterns is a list of patterns matching when any member matches
type Patterns []*Pattern

// CompilePatterns compiles every entry, stopping at the first invalid one
func CompilePatterns(list []string) (Patterns, error) {
	out := make(Patterns, 0, len(list))
	for _, s := range list {
		p, err := CompilePattern(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// MatchName reports whether any pattern matches name in any casing form
func (ps Patterns) MatchName(name string) bool {
	for _, p := range ps {
		if p.MatchName(name) {
			return true
		}
	}
	return false
}
