package analyzer

import (
	"errors"
	"fmt"
)

// ErrUnknownRule is returned when configuration names a rule that is not registered
var ErrUnknownRule = errors.New("unknown rule")

// ConfigError describes an invalid rule configuration
type ConfigError struct {
	RuleID string
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	switch {
	case e.RuleID == "":
		return fmt.Sprintf("option %q: %v", e.Option, e.Err)
	case e.Option == "":
		return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
	default:
		return fmt.Sprintf("rule %s: option %q: %v", e.RuleID, e.Option, e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// OptionError reports an invalid value for a rule option.
// The analyzer fills in the rule ID.
func OptionError(option string, err error) error {
	return &ConfigError{Option: option, Err: err}
}
