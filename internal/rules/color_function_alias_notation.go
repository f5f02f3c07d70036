package rules

import (
	"strings"

	"github.com/yacobolo/csslint/internal/guards"
	"github.com/yacobolo/csslint/internal/options"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/stylesheet"
	"github.com/yacobolo/csslint/internal/valueparser"
)

const nameColorAlias = "color-function-alias-notation"

var colorAliasMessages = rule.Messages{
	"expected": `Expected "%s" to be "%s"`,
}

// ColorFunctionAliasNotation enforces rgb/rgba and hsl/hsla naming
var ColorFunctionAliasNotation = &rule.Rule{
	Name:     nameColorAlias,
	Messages: colorAliasMessages,
	Meta: rule.Meta{
		URL:         docsURL(nameColorAlias),
		Fixable:     true,
		Description: "Require or disallow alias notation for color functions.",
	},
	Factory: func(primary any, _ map[string]any) rule.Check {
		return func(root *stylesheet.Root, sink rule.Sink) {
			valid := rule.ValidateOptions(sink, nameColorAlias, options.Schema{
				Actual:   primary,
				Possible: []any{"with-alpha", "without-alpha"},
			})
			if !valid {
				return
			}

			withAlpha := primary == "with-alpha"
			targets := []string{"rgba", "hsla"}
			if withAlpha {
				targets = []string{"rgb", "hsl"}
			}

			root.WalkDecls(func(decl *stylesheet.Declaration) {
				if !mentionsFunction(decl.Value, targets) {
					return
				}

				parsed := valueparser.Parse(decl.Value)
				parsed.Walk(func(c *valueparser.Cursor) bool {
					fn := c.Node()
					if fn.Type != valueparser.Function || !guards.IsStandardSyntaxColorFunction(fn) {
						return true
					}
					if !isOneOf(fn.Value, targets) {
						return true
					}

					name := fn.Value
					fixed := name[:len(name)-1]
					if withAlpha {
						fixed = name + "a"
					}

					index := decl.ValueIndex() + fn.SourceIndex
					rule.Report(sink, rule.Descriptor{
						Rule:     nameColorAlias,
						Message:  colorAliasMessages.Format("expected", name, fixed),
						Node:     decl,
						Index:    index,
						EndIndex: index + len(name),
						Fix: rule.NewFix(decl, func() {
							fn.Value = fixed
							decl.Value = parsed.String()
						}),
					})
					return true
				})
			})
		}
	},
}

// mentionsFunction is a cheap pre-check for "name(" in a value
func mentionsFunction(value string, names []string) bool {
	lower := strings.ToLower(value)
	for _, name := range names {
		if strings.Contains(lower, name+"(") {
			return true
		}
	}
	return false
}

func isOneOf(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}
