package rules

import (
	"github.com/yacobolo/csslint/internal/guards"
	"github.com/yacobolo/csslint/internal/options"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/shorthand"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

const nameRedundantLonghand = "declaration-block-no-redundant-longhand-properties"

var redundantLonghandMessages = rule.Messages{
	"expected": `Expected shorthand property "%s"`,
}

// DeclarationBlockNoRedundantLonghandProperties flags longhand sets that
// can be written as one shorthand
var DeclarationBlockNoRedundantLonghandProperties = &rule.Rule{
	Name:     nameRedundantLonghand,
	Messages: redundantLonghandMessages,
	Meta: rule.Meta{
		URL:         docsURL(nameRedundantLonghand),
		Fixable:     true,
		Description: "Disallow redundant longhand properties within declaration blocks.",
	},
	Factory: func(primary any, secondary map[string]any) rule.Check {
		return func(root *stylesheet.Root, sink rule.Sink) {
			valid := rule.ValidateOptions(sink, nameRedundantLonghand,
				options.Schema{Actual: primary},
				options.Schema{
					Actual: secondaryActual(secondary),
					Possible: map[string][]any{
						"ignoreShorthands": {options.IsString, options.IsRegExp},
						"ignoreLonghands":  {options.IsString},
					},
					Optional: true,
				},
			)
			if !valid {
				return
			}

			engine := shorthand.NewEngine(shorthand.Config{
				IgnoreShorthand: func(s string) bool {
					return options.Matches(secondary, "ignoreShorthands", s)
				},
				IgnoreLonghands: options.Strings(secondary, "ignoreLonghands"),
			})

			root.EachDeclarationBlock(func(block stylesheet.Container) {
				groups := engine.NewBlock()
				for _, decl := range stylesheet.Decls(block) {
					if !guards.IsStandardSyntaxDeclaration(decl) {
						continue
					}
					for _, c := range groups.Add(decl) {
						var fix *rule.Fix
						if c.Resolved {
							fix = rule.NewFix(block, c.Apply)
						}
						msg := redundantLonghandMessages.Format("expected", c.Shorthand)
						for _, d := range c.Declarations {
							rule.Report(sink, rule.Descriptor{
								Rule:    nameRedundantLonghand,
								Message: msg,
								Node:    d,
								Word:    d.Prop,
								Fix:     fix,
							})
						}
					}
				}
			})
		}
	},
}

// secondaryActual keeps a nil map distinct from an empty one for validation
func secondaryActual(secondary map[string]any) any {
	if secondary == nil {
		return nil
	}
	return secondary
}
