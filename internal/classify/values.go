package classify

import (
	"regexp"
	"strings"
	"unicode"
)

// whitespace as JavaScript's \s sees it, which is wider than RE2's
const (
	space    = `[\t\n\v\f\r\x{2028}\x{2029}\x{FEFF}\p{Zs}]`
	nonSpace = `[^\t\n\v\f\r\x{2028}\x{2029}\x{FEFF}\p{Zs}]`
)

var (
	identifierRe  = regexp.MustCompile(`^[\p{L}\p{Nl}_$][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$]*$`)
	illegalSlotRe = regexp.MustCompile("[\\s./=<>\"'`\\[\\]]")
	extraSpaceRe  = regexp.MustCompile(`^` + space + `|` + space + `$|` + space + `{2,}`)
	spaceRunRe    = regexp.MustCompile(space + `{2,}`)
	innerSpaceRe  = regexp.MustCompile(nonSpace + space + `{2,}` + nonSpace)
)

// reserved words cannot name a slot through a dynamic argument
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "false": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "null": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true,
}

// IsIdentifier reports whether s is a plain JavaScript identifier
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s) && !reserved[s]
}

// IsBareSlotName reports whether s can be written as a static v-slot argument
func IsBareSlotName(s string) bool {
	return s != "" && !illegalSlotRe.MatchString(s)
}

// HasExtraSpaces reports whether a class value has leading, trailing or
// repeated whitespace. Multiline values only count repeated whitespace
// between tokens on the same line.
func HasExtraSpaces(value string) bool {
	if !strings.Contains(value, "\n") {
		return extraSpaceRe.MatchString(value)
	}
	for _, line := range strings.Split(value, "\n") {
		if innerSpaceRe.MatchString(line) {
			return true
		}
	}
	return false
}

// CollapseSpaces normalizes class value whitespace. A single-line value is
// trimmed and runs are collapsed; a multiline value keeps each line's
// indentation and trailing whitespace and collapses runs between tokens.
func CollapseSpaces(value string) string {
	if !strings.Contains(value, "\n") {
		return spaceRunRe.ReplaceAllString(strings.TrimFunc(value, isSpace), " ")
	}

	lines := strings.Split(value, "\n")
	for i, line := range lines {
		trimmed := strings.TrimFunc(line, isSpace)
		if trimmed == "" {
			continue
		}
		start := strings.Index(line, trimmed)
		end := start + len(trimmed)
		lines[i] = line[:start] + spaceRunRe.ReplaceAllString(trimmed, " ") + line[end:]
	}
	return strings.Join(lines, "\n")
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

var forAliasRe = regexp.MustCompile(`(?s)^\s*(?:\([^)]*\)|[^\s]+)\s+(?:in|of)\s+(.+?)\s*$`)

// ForIterable returns the iterated expression of a v-for value:
// "(item, i) in items" -> "items". It returns "" when the value does not parse.
func ForIterable(expr string) string {
	m := forAliasRe.FindStringSubmatch(expr)
	if m == nil {
		return ""
	}
	return m[1]
}
