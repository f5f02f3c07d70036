// Package reference holds the static tables rules consult: shorthand
// sub-properties, keywords, known element names and pseudo-classes.
// The tables are built once at package init and never written afterwards.
package reference

import "strings"

// LonghandSubProperties maps each shorthand to its longhands in canonical
// order. The order is what the default shorthand resolver joins by.
var LonghandSubProperties = map[string][]string{
	"animation": {
		"animation-name", "animation-duration", "animation-timing-function", "animation-delay",
		"animation-iteration-count", "animation-direction", "animation-fill-mode", "animation-play-state",
	},
	"background": {
		"background-image", "background-size", "background-position", "background-repeat",
		"background-origin", "background-clip", "background-attachment", "background-color",
	},
	"border": {
		"border-top-width", "border-bottom-width", "border-left-width", "border-right-width",
		"border-top-style", "border-bottom-style", "border-left-style", "border-right-style",
		"border-top-color", "border-bottom-color", "border-left-color", "border-right-color",
	},
	"border-block-end":    {"border-block-end-width", "border-block-end-style", "border-block-end-color"},
	"border-block-start":  {"border-block-start-width", "border-block-start-style", "border-block-start-color"},
	"border-bottom":       {"border-bottom-width", "border-bottom-style", "border-bottom-color"},
	"border-color":        {"border-top-color", "border-right-color", "border-bottom-color", "border-left-color"},
	"border-image":        {"border-image-source", "border-image-slice", "border-image-width", "border-image-outset", "border-image-repeat"},
	"border-inline-end":   {"border-inline-end-width", "border-inline-end-style", "border-inline-end-color"},
	"border-inline-start": {"border-inline-start-width", "border-inline-start-style", "border-inline-start-color"},
	"border-left":         {"border-left-width", "border-left-style", "border-left-color"},
	"border-radius": {
		"border-top-right-radius", "border-top-left-radius", "border-bottom-right-radius", "border-bottom-left-radius",
	},
	"border-right":   {"border-right-width", "border-right-style", "border-right-color"},
	"border-style":   {"border-top-style", "border-right-style", "border-bottom-style", "border-left-style"},
	"border-top":     {"border-top-width", "border-top-style", "border-top-color"},
	"border-width":   {"border-top-width", "border-right-width", "border-bottom-width", "border-left-width"},
	"column-rule":    {"column-rule-width", "column-rule-style", "column-rule-color"},
	"columns":        {"column-width", "column-count"},
	"flex":           {"flex-grow", "flex-shrink", "flex-basis"},
	"flex-flow":      {"flex-direction", "flex-wrap"},
	"font":           {"font-style", "font-variant", "font-weight", "font-stretch", "font-size", "font-family", "line-height"},
	"font-synthesis": {"font-synthesis-weight", "font-synthesis-style", "font-synthesis-small-caps"},
	"gap":            {"row-gap", "column-gap"},
	"grid": {
		"grid-template-rows", "grid-template-columns", "grid-template-areas",
		"grid-auto-rows", "grid-auto-columns", "grid-auto-flow", "column-gap", "row-gap",
	},
	"grid-area":      {"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"},
	"grid-column":    {"grid-column-start", "grid-column-end"},
	"grid-gap":       {"grid-row-gap", "grid-column-gap"},
	"grid-row":       {"grid-row-start", "grid-row-end"},
	"grid-template":  {"grid-template-columns", "grid-template-rows", "grid-template-areas"},
	"inset":          {"top", "right", "bottom", "left"},
	"list-style":     {"list-style-type", "list-style-position", "list-style-image"},
	"margin":         {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"margin-block":   {"margin-block-start", "margin-block-end"},
	"margin-inline":  {"margin-inline-start", "margin-inline-end"},
	"mask":           {"mask-image", "mask-mode", "mask-position", "mask-size", "mask-repeat", "mask-origin", "mask-clip", "mask-composite"},
	"outline":        {"outline-color", "outline-style", "outline-width"},
	"overflow":       {"overflow-x", "overflow-y"},
	"padding":        {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	"padding-block":  {"padding-block-start", "padding-block-end"},
	"padding-inline": {"padding-inline-start", "padding-inline-end"},
	"place-content":  {"align-content", "justify-content"},
	"place-items":    {"align-items", "justify-items"},
	"place-self":     {"align-self", "justify-self"},
	"text-decoration": {"text-decoration-color", "text-decoration-style", "text-decoration-line"},
	"text-emphasis":  {"text-emphasis-style", "text-emphasis-color"},
	"transition":     {"transition-delay", "transition-duration", "transition-property", "transition-timing-function"},
}

// ConflictingShorthands share longhands with another shorthand, so one
// longhand can complete more than one group in the same block
var ConflictingShorthands = map[string]bool{
	"border-width":  true,
	"border-style":  true,
	"border-color":  true,
	"border-top":    true,
	"border-right":  true,
	"border-bottom": true,
	"border-left":   true,
	"grid-column":   true,
	"grid-row":      true,
}

var basicKeywords = map[string]bool{
	"initial":      true,
	"inherit":      true,
	"revert":       true,
	"revert-layer": true,
	"unset":        true,
}

// IsBasicKeyword reports whether v is a CSS-wide keyword
func IsBasicKeyword(v string) bool {
	return basicKeywords[strings.ToLower(strings.TrimSpace(v))]
}

// VendorPrefix returns the vendor prefix of a property or function name,
// such as "-webkit-", or "" when there is none. Custom properties have no prefix.
func VendorPrefix(name string) string {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return ""
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if c == '-' {
			if i == 1 {
				return ""
			}
			return name[:i+1]
		}
		if !isWordChar(c) {
			return ""
		}
	}
	return ""
}

// Unprefixed strips a vendor prefix
func Unprefixed(name string) string {
	return name[len(VendorPrefix(name)):]
}

func isWordChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
