package style

import (
	"github.com/HueCodes/vuelint/internal/rules"
)

var all []rules.Rule

// Register adds a rule to the style rules list and the global registry
func Register(rule rules.Rule) {
	all = append(all, rule)
	rules.Register(rule)
}

// All returns all style rules
func All() []rules.Rule {
	return all
}
