package reference

import "strings"

// context functional pseudo-classes take a selector list whose matches
// refine the element the pseudo is attached to
var contextFunctionalPseudoClasses = map[string]bool{
	"has":            true,
	"is":             true,
	"matches":        true,
	"not":            true,
	"where":          true,
	"nth-child":      true,
	"nth-last-child": true,
}

// IsContextFunctionalPseudoClass reports whether name (with or without
// leading colons) is a logical combination or "of S" pseudo-class
func IsContextFunctionalPseudoClass(name string) bool {
	return contextFunctionalPseudoClasses[strings.ToLower(strings.TrimLeft(name, ":"))]
}

var reservedCustomElementNames = set(
	"annotation-xml", "color-profile", "font-face", "font-face-src",
	"font-face-uri", "font-face-format", "font-face-name", "missing-glyph",
)

// IsReservedCustomElementName reports whether name contains a hyphen but
// is reserved by the HTML spec
func IsReservedCustomElementName(name string) bool {
	return reservedCustomElementNames[name]
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}
