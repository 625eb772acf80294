package rules

import (
	"sort"
	"sync"

	"github.com/HueCodes/vuelint/internal/analyzer"
)

// Registry holds all registered rules
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	names map[string]string // rule name -> ID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		names: make(map[string]string),
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// Register adds a rule to the global registry
func Register(rule Rule) {
	globalRegistry.Register(rule)
}

// Get returns a rule by ID or name from the global registry
func Get(idOrName string) (Rule, bool) {
	return globalRegistry.Get(idOrName)
}

// All returns all rules from the global registry
func All() []Rule {
	return globalRegistry.All()
}

// ByCategory returns rules filtered by category from the global registry
func ByCategory(category analyzer.Category) []Rule {
	return globalRegistry.ByCategory(category)
}

// Analyzer converts rules to the analyzer's rule type
func Analyzer(rules []Rule) []analyzer.Rule {
	out := make([]analyzer.Rule, len(rules))
	for i, r := range rules {
		out[i] = r
	}
	return out
}

// Register adds a rule to the registry
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// Get returns a rule by ID or by name
func (r *Registry) Get(idOrName string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rule, ok := r.rules[idOrName]; ok {
		return rule, true
	}
	if id, ok := r.names[idOrName]; ok {
		return r.rules[id], true
	}
	return nil, false
}

// ResolveID maps a rule ID or name to its ID
func (r *Registry) ResolveID(idOrName string) (string, bool) {
	rule, ok := r.Get(idOrName)
	if !ok {
		return "", false
	}
	return rule.ID(), true
}

// ResolveID maps a rule ID or name to its ID using the global registry
func ResolveID(idOrName string) (string, bool) {
	return globalRegistry.ResolveID(idOrName)
}

// All returns all registered rules, sorted by ID
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})

	return rules
}

// ByCategory returns rules filtered by category
func (r *Registry) ByCategory(category analyzer.Category) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []Rule
	for _, rule := range r.rules {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})

	return rules
}

// IDs returns all rule IDs
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered rules
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
