package deprecated

import (
	"github.com/HueCodes/vuelint/internal/rules"
)

var all []rules.Rule

// Register adds a rule to the deprecated rules list and the global registry
func Register(rule rules.Rule) {
	all = append(all, rule)
	rules.Register(rule)
}

// All returns all deprecated-syntax rules
func All() []rules.Rule {
	return all
}
