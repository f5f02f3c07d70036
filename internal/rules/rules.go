// Package rules contains the built-in lint rules.
package rules

import (
	"github.com/yacobolo/csslint/internal/rule"
)

const docsBaseURL = "https://github.com/yacobolo/csslint/blob/main/docs/rules/"

// All returns every built-in rule
func All() []*rule.Rule {
	return []*rule.Rule{
		ColorFunctionAliasNotation,
		DeclarationBlockNoRedundantLonghandProperties,
		SelectorMaxAttribute,
		SelectorMaxClass,
		SelectorMaxID,
		SelectorMaxType,
		SelectorTypeNoUnknown,
	}
}

// Default returns a registry holding every built-in rule
func Default() *rule.Registry {
	return rule.NewRegistry(All()...)
}

func docsURL(name string) string {
	return docsBaseURL + name + ".md"
}
