package rules

import (
	"strings"

	"github.com/yacobolo/csslint/internal/complexity"
	"github.com/yacobolo/csslint/internal/guards"
	"github.com/yacobolo/csslint/internal/options"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/selectorparser"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// selectorMax describes one of the selector-max-* rules
type selectorMax struct {
	name        string
	feature     complexity.Feature
	singular    string
	plural      string
	description string
	// extra secondary options on top of the context options
	extra map[string][]any
	// ignore builds the per-node filter from validated secondary options
	ignore func(secondary map[string]any) func(*selectorparser.Node) bool
}

const selectorMaxMessage = `Expected "%s" to have no more than %d %s`

var contextOptions = map[string][]any{
	"checkContextFunctionalPseudoClasses":  {options.IsString, options.IsRegExp},
	"ignoreContextFunctionalPseudoClasses": {options.IsString, options.IsRegExp},
	"resolveNestedSelectors":               {options.IsBoolean},
}

func newSelectorMax(s selectorMax) *rule.Rule {
	possible := make(map[string][]any, len(contextOptions)+len(s.extra))
	for k, v := range contextOptions {
		possible[k] = v
	}
	for k, v := range s.extra {
		possible[k] = v
	}

	messages := rule.Messages{"expected": selectorMaxMessage}

	return &rule.Rule{
		Name:     s.name,
		Messages: messages,
		Meta: rule.Meta{
			URL:         docsURL(s.name),
			Description: s.description,
		},
		Factory: func(primary any, secondary map[string]any) rule.Check {
			return func(root *stylesheet.Root, sink rule.Sink) {
				valid := rule.ValidateOptions(sink, s.name,
					options.Schema{Actual: primary, Possible: options.IsNonNegativeInteger},
					options.Schema{Actual: secondaryActual(secondary), Possible: possible, Optional: true},
				)
				if !valid {
					return
				}

				limit := options.Int(primary)
				counter := complexity.Counter{
					Feature: s.feature,
					Max:     limit,
					Check: func(pseudo string) bool {
						return options.Matches(secondary, "checkContextFunctionalPseudoClasses", pseudo)
					},
					IgnoreContext: func(pseudo string) bool {
						return options.Matches(secondary, "ignoreContextFunctionalPseudoClasses", pseudo)
					},
					ResolveNested: options.Bool(secondary, "resolveNestedSelectors"),
				}
				if s.ignore != nil {
					counter.Ignore = s.ignore(secondary)
				}

				noun := s.plural
				if limit == 1 {
					noun = s.singular
				}

				root.WalkRules(func(r *stylesheet.Rule) {
					if !guards.IsStandardSyntaxRule(r) || inKeyframes(r) {
						return
					}
					for _, f := range counter.CheckRule(r) {
						rule.Report(sink, rule.Descriptor{
							Rule:     s.name,
							Message:  messages.Format("expected", f.Selector, limit, noun),
							Node:     r,
							Index:    f.Index,
							EndIndex: f.EndIndex,
						})
					}
				})
			}
		},
	}
}

// inKeyframes reports whether r is a keyframe block such as "from" or "50%"
func inKeyframes(r *stylesheet.Rule) bool {
	a, ok := r.Parent().(*stylesheet.AtRule)
	return ok && strings.HasSuffix(strings.ToLower(a.Name), "keyframes")
}

// SelectorMaxClass limits the number of classes per selector
var SelectorMaxClass = newSelectorMax(selectorMax{
	name:        "selector-max-class",
	feature:     complexity.FeatureClass,
	singular:    "class",
	plural:      "classes",
	description: "Limit the number of classes in a selector.",
})

// SelectorMaxID limits the number of ID selectors per selector
var SelectorMaxID = newSelectorMax(selectorMax{
	name:        "selector-max-id",
	feature:     complexity.FeatureID,
	singular:    "ID selector",
	plural:      "ID selectors",
	description: "Limit the number of ID selectors in a selector.",
})

// SelectorMaxAttribute limits the number of attribute selectors per selector
var SelectorMaxAttribute = newSelectorMax(selectorMax{
	name:        "selector-max-attribute",
	feature:     complexity.FeatureAttribute,
	singular:    "attribute selector",
	plural:      "attribute selectors",
	description: "Limit the number of attribute selectors in a selector.",
	extra: map[string][]any{
		"ignoreAttributes": {options.IsString, options.IsRegExp},
	},
	ignore: func(secondary map[string]any) func(*selectorparser.Node) bool {
		return func(n *selectorparser.Node) bool {
			return options.Matches(secondary, "ignoreAttributes", n.Value)
		}
	},
})

// SelectorMaxType limits the number of type selectors per selector
var SelectorMaxType = newSelectorMax(selectorMax{
	name:        "selector-max-type",
	feature:     complexity.FeatureType,
	singular:    "type selector",
	plural:      "type selectors",
	description: "Limit the number of type selectors in a selector.",
	extra: map[string][]any{
		"ignore":      {"child", "compounded", "custom-elements", "descendant", "next-sibling"},
		"ignoreTypes": {options.IsString, options.IsRegExp},
	},
	ignore: func(secondary map[string]any) func(*selectorparser.Node) bool {
		ignores := func(what string) bool { return options.Matches(secondary, "ignore", what) }
		return func(n *selectorparser.Node) bool {
			if !guards.IsStandardSyntaxTypeSelector(n) {
				return true
			}
			if options.Matches(secondary, "ignoreTypes", n.Value) {
				return true
			}
			if ignores("custom-elements") && guards.IsCustomElement(n.Value) {
				return true
			}
			if ignores("compounded") && isCompounded(n) {
				return true
			}
			switch precedingCombinator(n) {
			case " ":
				return ignores("descendant")
			case ">":
				return ignores("child")
			case "+":
				return ignores("next-sibling")
			}
			return false
		}
	},
})

// precedingCombinator returns the combinator before n's compound, or ""
func precedingCombinator(n *selectorparser.Node) string {
	sel := n.Parent
	if sel == nil {
		return ""
	}
	i := indexOf(sel.Nodes, n)
	for k := i - 1; k >= 0; k-- {
		if sel.Nodes[k].Type == selectorparser.TypeCombinator {
			return sel.Nodes[k].Value
		}
	}
	return ""
}

// isCompounded reports whether n shares its compound with another simple selector
func isCompounded(n *selectorparser.Node) bool {
	sel := n.Parent
	if sel == nil {
		return false
	}
	for _, compound := range selectorparser.Compounds(sel) {
		if indexOf(compound, n) >= 0 {
			return len(compound) > 1
		}
	}
	return false
}

func indexOf(nodes []*selectorparser.Node, n *selectorparser.Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}
