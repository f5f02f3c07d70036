package rules

import (
	"github.com/yacobolo/csslint/internal/guards"
	"github.com/yacobolo/csslint/internal/options"
	"github.com/yacobolo/csslint/internal/reference"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/selectorparser"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

const nameTypeNoUnknown = "selector-type-no-unknown"

var typeNoUnknownMessages = rule.Messages{
	"rejected": `Unexpected unknown type selector "%s"`,
}

// SelectorTypeNoUnknown rejects type selectors that are not HTML, SVG or
// MathML elements
var SelectorTypeNoUnknown = &rule.Rule{
	Name:     nameTypeNoUnknown,
	Messages: typeNoUnknownMessages,
	Meta: rule.Meta{
		URL:         docsURL(nameTypeNoUnknown),
		Description: "Disallow unknown type selectors.",
	},
	Factory: func(primary any, secondary map[string]any) rule.Check {
		return func(root *stylesheet.Root, sink rule.Sink) {
			valid := rule.ValidateOptions(sink, nameTypeNoUnknown,
				options.Schema{Actual: primary},
				options.Schema{
					Actual: secondaryActual(secondary),
					Possible: map[string][]any{
						"ignore":           {"custom-elements", "default-namespace"},
						"ignoreNamespaces": {options.IsString, options.IsRegExp},
						"ignoreTypes":      {options.IsString, options.IsRegExp},
					},
					Optional: true,
				},
			)
			if !valid {
				return
			}

			root.WalkRules(func(r *stylesheet.Rule) {
				if !guards.IsStandardSyntaxRule(r) || inKeyframes(r) {
					return
				}

				list := selectorparser.Parse(r.Selector)
				for _, sel := range list.Selectors {
					if guards.IsKeyframeSelector(list.Text(sel)) {
						return
					}
				}

				list.Walk(func(n *selectorparser.Node) bool {
					if n.Type != selectorparser.TypeTag || !guards.IsStandardSyntaxTypeSelector(n) {
						return true
					}
					if isAllowedType(n, secondary) {
						return true
					}

					// Point at the local name, after any namespace
					start := n.SourceEndIndex - len(n.Value)
					rule.Report(sink, rule.Descriptor{
						Rule:     nameTypeNoUnknown,
						Message:  typeNoUnknownMessages.Format("rejected", n.Value),
						Node:     r,
						Index:    start,
						EndIndex: n.SourceEndIndex,
					})
					return true
				})
			})
		}
	},
}

func isAllowedType(n *selectorparser.Node, secondary map[string]any) bool {
	ignores := func(what string) bool { return options.Matches(secondary, "ignore", what) }

	switch {
	case ignores("custom-elements") && guards.IsCustomElement(n.Value):
		return true
	case ignores("default-namespace") && !n.HasNamespace:
		return true
	case n.HasNamespace && options.Matches(secondary, "ignoreNamespaces", n.Namespace):
		return true
	case options.Matches(secondary, "ignoreTypes", n.Value):
		return true
	}
	return reference.IsKnownTag(n.Value)
}
