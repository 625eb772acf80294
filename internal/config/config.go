package config

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/optimizer"
	"github.com/HueCodes/vuelint/internal/rules"
)

// Config holds all vuelint configuration.
type Config struct {
	Severity     string                `yaml:"severity" toml:"severity" msgpack:"severity"`
	Rules        map[string]RuleConfig `yaml:"rules" toml:"rules" msgpack:"rules"`
	IgnorePaths  []string              `yaml:"ignore_paths" toml:"ignore_paths" msgpack:"ignore_paths"`
	Extensions   []string              `yaml:"extensions" toml:"extensions" msgpack:"extensions"`
	MaxFixPasses int                   `yaml:"max_fix_passes" toml:"max_fix_passes" msgpack:"max_fix_passes"`
	Workers      int                   `yaml:"workers" toml:"workers" msgpack:"workers"`
}

// RuleConfig configures one rule. Enabled is nil when the file does not say.
type RuleConfig struct {
	Enabled  *bool                  `yaml:"enabled" toml:"enabled" msgpack:"enabled"`
	Severity string                 `yaml:"severity" toml:"severity" msgpack:"severity"`
	Options  map[string]interface{} `yaml:"options" toml:"options" msgpack:"options"`
}

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		Severity:     "warning",
		Rules:        map[string]RuleConfig{},
		IgnorePaths:  []string{"node_modules/**", "dist/**"},
		Extensions:   []string{".vue", ".html"},
		MaxFixPasses: optimizer.DefaultMaxPasses,
	}
}

// AnalyzerOptions converts the configuration to analyzer options.
// Rule keys may be IDs or names. Every problem is reported in the joined error.
func (c *Config) AnalyzerOptions() ([]analyzer.Option, error) {
	var (
		opts []analyzer.Option
		errs []error
	)

	if c.Severity != "" {
		s, err := analyzer.ParseSeverity(c.Severity)
		if err != nil {
			errs = append(errs, fmt.Errorf("severity: %w", err))
		} else {
			opts = append(opts, analyzer.WithMinSeverity(s))
		}
	}

	keys := make([]string, 0, len(c.Rules))
	for k := range c.Rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rc := c.Rules[key]
		id, ok := rules.ResolveID(key)
		if !ok {
			errs = append(errs, &analyzer.ConfigError{RuleID: key, Err: analyzer.ErrUnknownRule})
			continue
		}
		if rc.Enabled != nil && !*rc.Enabled {
			opts = append(opts, analyzer.WithDisabled(id))
		}
		if rc.Severity != "" {
			s, err := analyzer.ParseSeverity(rc.Severity)
			if err != nil {
				errs = append(errs, &analyzer.ConfigError{RuleID: id, Option: "severity", Err: err})
			} else {
				opts = append(opts, analyzer.WithSeverityOverride(id, s))
			}
		}
		if len(rc.Options) > 0 {
			opts = append(opts, analyzer.WithRuleConfig(id, normalizeOptions(rc.Options)))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return opts, nil
}

// normalizeOptions coerces decoded option trees to the shapes rules expect:
// string-keyed maps and []interface{} lists.
func normalizeOptions(opts map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(opts))
	for k, v := range opts {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return normalizeOptions(t)
	case map[interface{}]interface{}:
		return normalizeOptions(cast.ToStringMap(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, x := range t {
			out[i] = normalizeValue(x)
		}
		return out
	case []string:
		out := make([]interface{}, len(t))
		for i, x := range t {
			out[i] = x
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, m := range t {
			out[i] = normalizeOptions(m)
		}
		return out
	}
	return v
}

// HasExtension reports whether name has one of the configured extensions.
func (c *Config) HasExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range c.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Ignored reports whether a slash-separated relative path matches an ignore
// pattern. A trailing "/**" matches everything below a directory; other
// patterns are matched against the whole path and then the base name.
func (c *Config) Ignored(rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, p := range c.IgnorePaths {
		p = strings.TrimPrefix(p, "./")
		if dir, ok := strings.CutSuffix(p, "/**"); ok {
			if rel == dir || strings.HasPrefix(rel, dir+"/") || containsDir(rel, dir) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// containsDir matches a single-segment directory anywhere in rel,
// so "node_modules/**" also covers "web/node_modules/x.vue".
func containsDir(rel, dir string) bool {
	if strings.Contains(dir, "/") {
		return false
	}
	return strings.Contains("/"+rel, "/"+dir+"/")
}
