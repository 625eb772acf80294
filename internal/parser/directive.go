package parser

import "strings"

var shorthands = map[byte]string{
	':': "bind",
	'.': "bind",
	'@': "on",
	'#': "slot",
}

// decomposeKey fills the directive fields of k from k.Raw
func decomposeKey(k *AttributeKey) {
	raw := k.Raw

	var rest string
	switch {
	case strings.HasPrefix(raw, "v-"):
		body := raw[2:]
		end := strings.IndexAny(body, ":.")
		if end == -1 {
			end = len(body)
		}
		k.Directive = true
		k.Name = body[:end]
		rest = body[end:]
		if !strings.HasPrefix(rest, ":") {
			k.Modifiers = splitModifiers(rest)
			return
		}
		rest = rest[1:]
	case len(raw) > 1 && shorthands[raw[0]] != "":
		k.Directive = true
		k.Name = shorthands[raw[0]]
		rest = raw[1:]
		if raw[0] == '.' {
			k.Modifiers = append(k.Modifiers, "prop")
		}
	default:
		k.Name = strings.ToLower(raw)
		return
	}

	if strings.HasPrefix(rest, "[") {
		if end := strings.LastIndex(rest, "]"); end > 0 {
			k.Argument = rest[1:end]
			k.DynamicArgument = true
			k.Modifiers = append(k.Modifiers, splitModifiers(rest[end+1:])...)
			return
		}
	}

	end := strings.IndexByte(rest, '.')
	if end == -1 {
		k.Argument = rest
		return
	}
	k.Argument = rest[:end]
	k.Modifiers = append(k.Modifiers, splitModifiers(rest[end:])...)
}

// splitModifiers splits ".a.b" into [a b]
func splitModifiers(s string) []string {
	if s == "" {
		return nil
	}
	var mods []string
	for _, m := range strings.Split(strings.TrimPrefix(s, "."), ".") {
		if m != "" {
			mods = append(mods, m)
		}
	}
	return mods
}
