// Package rule defines the contract every lint rule implements, the
// registry that holds them, and the report/fix protocol rules use to
// hand findings to the host.
package rule

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/yacobolo/csslint/internal/options"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// Messages maps a violation kind ("expected", "rejected") to a fmt template
type Messages map[string]string

// Format renders the template for key with args
func (m Messages) Format(key string, args ...any) string {
	tmpl, ok := m[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(tmpl, args...)
}

// Keys returns the message keys in sorted order
func (m Messages) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Meta is static rule metadata
type Meta struct {
	URL         string
	Fixable     bool
	Description string
}

// Check walks one stylesheet and reports through sink. A Check must not
// block and must only mutate the tree from within Fix callbacks.
type Check func(root *stylesheet.Root, sink Sink)

// Factory turns configured options into a Check. Option validation happens
// inside the returned Check so that problems reach the same sink as
// violations.
type Factory func(primary any, secondary map[string]any) Check

// Rule is a named, independently runnable checker
type Rule struct {
	Name     string
	Messages Messages
	Meta     Meta
	Factory  Factory
}

// ValidateOptions checks options against schemas. On failure it emits a
// single invalid-option warning for the rule and returns false; the caller
// returns without walking.
func ValidateOptions(sink Sink, ruleName string, schemas ...options.Schema) bool {
	if err := options.Validate(ruleName, schemas...); err != nil {
		sink.Warn(Warning{
			Rule:    ruleName,
			Kind:    KindInvalidOption,
			Message: err.Error(),
		})
		return false
	}
	return true
}

// Registry holds rules by name
type Registry struct {
	rules map[string]*Rule
}

// NewRegistry creates a registry holding rules. It panics on duplicate
// names, which is a programming error.
func NewRegistry(rules ...*Rule) *Registry {
	r := &Registry{rules: make(map[string]*Rule, len(rules))}
	for _, rl := range rules {
		if err := r.Register(rl); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a rule
func (r *Registry) Register(rl *Rule) error {
	if rl == nil || rl.Name == "" {
		return fmt.Errorf("rule must have a name")
	}
	if rl.Factory == nil {
		return fmt.Errorf("rule %q has no factory", rl.Name)
	}
	if _, exists := r.rules[rl.Name]; exists {
		return fmt.Errorf("rule %q already registered", rl.Name)
	}
	r.rules[rl.Name] = rl
	return nil
}

// Get returns the rule with the given name
func (r *Registry) Get(name string) (*Rule, bool) {
	rl, ok := r.rules[name]
	return rl, ok
}

// Names returns the registered rule names in natural order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Rules returns the registered rules in natural name order
func (r *Registry) Rules() []*Rule {
	names := r.Names()
	rules := make([]*Rule, len(names))
	for i, name := range names {
		rules[i] = r.rules[name]
	}
	return rules
}
