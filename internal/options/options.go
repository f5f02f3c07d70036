// Package options validates rule configuration and matches option values
// against inputs.
//
// Option values arrive from YAML, JSON or Go callers, so a primary option
// is any of bool, number, string, []any or map[string]any. Patterns are
// either *regexp.Regexp values or strings written as "/source/flags".
package options

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// Predicate accepts or rejects a single option value
type Predicate func(any) bool

// Schema describes one option of a rule.
//
// Possible is nil (any truthy value), a Predicate, a []any of literals and
// Predicates, or a map[string][]any describing a secondary options object.
type Schema struct {
	Actual   any
	Possible any
	Optional bool
}

// HostKeys are secondary option keys consumed by the host, not by rules
var HostKeys = map[string]bool{
	"severity":       true,
	"message":        true,
	"url":            true,
	"disableFix":     true,
	"reportDisables": true,
}

// Validate checks every schema and returns all complaints combined into
// one error, or nil when the options are valid
func Validate(ruleName string, schemas ...Schema) error {
	var err error
	for _, s := range schemas {
		err = multierr.Append(err, validate(ruleName, s))
	}
	return err
}

func validate(ruleName string, s Schema) error {
	actual, possible := s.Actual, s.Possible

	if b, ok := actual.(bool); ok && !b && !isValid(possible, false) {
		return fmt.Errorf(`invalid option value "false" for rule %q. Are you trying to disable this rule? If so use "null" instead`, ruleName)
	}

	nothingPossible := possible == nil
	if list, ok := possible.([]any); ok && len(list) == 0 {
		nothingPossible = true
	}

	if actual == nil {
		if nothingPossible || s.Optional {
			return nil
		}
		return fmt.Errorf("expected option value for rule %q", ruleName)
	}
	if nothingPossible {
		if b, ok := actual.(bool); ok && b {
			return nil
		}
		if s.Optional {
			return fmt.Errorf("incorrect configuration for rule %q: rule should declare possible option values", ruleName)
		}
		return fmt.Errorf("unexpected option value %s for rule %q", stringify(actual), ruleName)
	}

	switch p := possible.(type) {
	case Predicate:
		if !p(actual) {
			return fmt.Errorf("invalid option %s for rule %q", stringify(actual), ruleName)
		}
		return nil
	case []any:
		var err error
		for _, a := range flatten(actual) {
			if !isValid(p, a) {
				err = multierr.Append(err, fmt.Errorf("invalid option value %q for rule %q", fmt.Sprint(a), ruleName))
			}
		}
		return err
	case map[string][]any:
		obj, ok := actual.(map[string]any)
		if !ok {
			return fmt.Errorf("invalid option value %s for rule %q: should be an object", stringify(actual), ruleName)
		}
		return validateObject(ruleName, obj, p)
	}
	return fmt.Errorf("incorrect configuration for rule %q: unsupported schema %T", ruleName, possible)
}

func validateObject(ruleName string, obj map[string]any, possible map[string][]any) error {
	// Sorted for stable messages
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, name := range keys {
		if HostKeys[name] {
			continue
		}
		allowed, ok := possible[name]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("invalid option name %q for rule %q", name, ruleName))
			continue
		}
		for _, a := range flatten(obj[name]) {
			if !isValid(allowed, a) {
				err = multierr.Append(err, fmt.Errorf("invalid value %q for option %q of rule %q", fmt.Sprint(a), name, ruleName))
			}
		}
	}
	return err
}

func isValid(possible any, actual any) bool {
	var list []any
	switch p := possible.(type) {
	case []any:
		list = p
	case nil:
		return false
	default:
		list = []any{p}
	}
	for _, p := range list {
		if pred, ok := p.(Predicate); ok {
			if pred(actual) {
				return true
			}
			continue
		}
		if equalScalar(p, actual) {
			return true
		}
	}
	return false
}

func equalScalar(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func flatten(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	}
	return []any{v}
}

func stringify(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// IsString accepts strings
var IsString Predicate = func(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsRegExp accepts compiled patterns and "/source/flags" strings
var IsRegExp Predicate = func(v any) bool {
	switch p := v.(type) {
	case *regexp.Regexp:
		return p != nil
	case string:
		_, ok := compilePattern(p)
		return ok
	}
	return false
}

// IsBoolean accepts booleans
var IsBoolean Predicate = func(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsNumber accepts any numeric type
var IsNumber Predicate = func(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// IsNonNegativeInteger accepts whole numbers >= 0
var IsNonNegativeInteger Predicate = func(v any) bool {
	f, ok := toFloat(v)
	return ok && f >= 0 && f == math.Trunc(f) && !math.IsInf(f, 0)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Int converts a validated numeric option to int
func Int(v any) int {
	f, _ := toFloat(v)
	return int(f)
}

var patternCache sync.Map

// compilePattern turns "/source/flags" into a regexp. Only the "i", "m"
// and "s" flags have Go equivalents; "g", "u" and "y" are accepted and ignored.
func compilePattern(s string) (*regexp.Regexp, bool) {
	if cached, ok := patternCache.Load(s); ok {
		re, _ := cached.(*regexp.Regexp)
		return re, re != nil
	}

	re := parsePattern(s)
	patternCache.Store(s, re)
	return re, re != nil
}

func parsePattern(s string) *regexp.Regexp {
	if len(s) < 2 || s[0] != '/' {
		return nil
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return nil
	}
	source, flags := s[1:end], s[end+1:]

	var goFlags string
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			goFlags += string(f)
		case 'g', 'u', 'y':
		default:
			return nil
		}
	}
	if goFlags != "" {
		source = "(?" + goFlags + ")" + source
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil
	}
	return re
}

// MatchesStringOrPattern reports whether input equals one of the string
// literals in comparison, or matches one of its patterns
func MatchesStringOrPattern(input string, comparison any) bool {
	for _, c := range flatten(comparison) {
		switch p := c.(type) {
		case *regexp.Regexp:
			if p != nil && p.MatchString(input) {
				return true
			}
		case string:
			if re, ok := compilePattern(p); ok {
				if re.MatchString(input) {
					return true
				}
				continue
			}
			if p == input {
				return true
			}
		}
	}
	return false
}

// Matches reports whether the secondary option key of a rule matches input
func Matches(secondary map[string]any, key, input string) bool {
	if secondary == nil {
		return false
	}
	v, ok := secondary[key]
	if !ok || v == nil {
		return false
	}
	return MatchesStringOrPattern(input, v)
}

// Strings returns the string items of an option that may be a scalar or a list
func Strings(secondary map[string]any, key string) []string {
	if secondary == nil {
		return nil
	}
	var out []string
	for _, v := range flatten(secondary[key]) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bool reads a boolean secondary option
func Bool(secondary map[string]any, key string) bool {
	b, _ := secondary[key].(bool)
	return b
}
