package linter

import (
	"fmt"
	"strings"
)

// Severity levels attached to reported warnings
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// RuleConfig is the resolved setting of one enabled rule
type RuleConfig struct {
	Primary   any
	Secondary map[string]any
}

// Severity returns the secondary "severity" option, defaulting to error
func (rc RuleConfig) Severity() string {
	if s, ok := rc.Secondary["severity"].(string); ok && s == SeverityWarning {
		return SeverityWarning
	}
	return SeverityError
}

// Message returns the secondary "message" override, if any
func (rc RuleConfig) Message() string {
	s, _ := rc.Secondary["message"].(string)
	return s
}

// FixDisabled reports whether the secondary "disableFix" option is set
func (rc RuleConfig) FixDisabled() bool {
	b, _ := rc.Secondary["disableFix"].(bool)
	return b
}

// Config selects and configures the rules a Linter runs
type Config struct {
	Rules map[string]RuleConfig
	// Fix applies autofixes and reports only what is left
	Fix bool
	// Jobs bounds how many documents LintFiles handles at once; zero or
	// less means GOMAXPROCS
	Jobs int
}

// ParseRuleSetting converts a raw configuration entry into a RuleConfig.
// It returns false when the entry disables the rule (null or an empty list).
//
// Accepted shapes are a bare primary option, [primary] and
// [primary, {secondary}]. A list whose second item is not an object is a
// list-valued primary option.
func ParseRuleSetting(v any) (RuleConfig, bool, error) {
	switch val := v.(type) {
	case nil:
		return RuleConfig{}, false, nil
	case []any:
		switch {
		case len(val) == 0:
			return RuleConfig{}, false, nil
		case len(val) == 1:
			if val[0] == nil {
				return RuleConfig{}, false, nil
			}
			return RuleConfig{Primary: val[0]}, true, nil
		case len(val) == 2:
			if secondary, ok := asObject(val[1]); ok {
				if val[0] == nil {
					return RuleConfig{}, false, nil
				}
				return RuleConfig{Primary: val[0], Secondary: secondary}, true, nil
			}
		}
		return RuleConfig{Primary: val}, true, nil
	case map[string]any, map[any]any:
		return RuleConfig{}, false, fmt.Errorf("rule setting must be a primary option or a [primary, secondary] list, got an object")
	}
	return RuleConfig{Primary: v}, true, nil
}

// ParseRules converts a raw "rules" configuration section
func ParseRules(raw map[string]any) (map[string]RuleConfig, error) {
	rules := make(map[string]RuleConfig, len(raw))
	for name, v := range raw {
		rc, enabled, err := ParseRuleSetting(v)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		if enabled {
			rules[strings.TrimSpace(name)] = rc
		}
	}
	return rules, nil
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
