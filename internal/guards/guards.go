// Package guards decides whether stylesheet nodes are plain CSS or a
// preprocessor construct that rules should leave alone.
package guards

import (
	"strings"

	"github.com/yacobolo/csslint/internal/reference"
	"github.com/yacobolo/csslint/internal/selectorparser"
	"github.com/yacobolo/csslint/internal/stylesheet"
	"github.com/yacobolo/csslint/internal/valueparser"
)

// HasInterpolation reports whether s contains SCSS, Less, PostCSS-simple-vars
// or template interpolation
func HasInterpolation(s string) bool {
	return strings.Contains(s, "#{") ||
		strings.Contains(s, "@{") ||
		strings.Contains(s, "$(") ||
		strings.Contains(s, "{{")
}

// IsStandardSyntaxRule reports whether a rule is a plain CSS style rule
func IsStandardSyntaxRule(r *stylesheet.Rule) bool {
	if r.Mixin {
		return false
	}
	sel := strings.TrimSpace(r.Selector)
	// Less detached rulesets: @detached: { }
	if strings.HasPrefix(sel, "@") {
		return false
	}
	// Less guards: .mixin() when (@a > 0)
	if strings.Contains(sel, " when ") || strings.Contains(sel, ")when") {
		return false
	}
	return IsStandardSyntaxSelector(sel)
}

// IsStandardSyntaxSelector reports whether a selector list is plain CSS
func IsStandardSyntaxSelector(sel string) bool {
	switch {
	case HasInterpolation(sel):
		return false
	case strings.HasPrefix(sel, "%"):
		// SCSS placeholder
		return false
	case strings.HasSuffix(sel, ":"):
		// SCSS nested properties
		return false
	case strings.Contains(sel, ":extend"):
		return false
	case isLessMixinSelector(sel):
		return false
	case strings.Contains(sel, "<%") || strings.Contains(sel, "%>"):
		return false
	case strings.Contains(sel, "//"):
		return false
	}
	return true
}

// isLessMixinSelector matches mixin definitions and calls: ".m()", ".m(@a: 1)",
// ".m().b"
func isLessMixinSelector(sel string) bool {
	if strings.Contains(sel, "(@") {
		return true
	}
	if strings.HasSuffix(sel, ")") && !strings.Contains(sel, ":") {
		return true
	}
	if strings.HasPrefix(sel, ".") {
		if open := strings.IndexByte(sel, '('); open > 1 && !strings.ContainsAny(sel[:open], ":[ ") {
			if end := strings.IndexByte(sel[open:], ')'); end >= 0 && open+end+1 < len(sel) {
				return true
			}
		}
	}
	return false
}

// IsStandardSyntaxTypeSelector reports whether a tag node is a real type
// selector and not a keyframe selector, placeholder or interpolation
func IsStandardSyntaxTypeSelector(n *selectorparser.Node) bool {
	if n.Type != selectorparser.TypeTag || n.Value == "" {
		return false
	}
	if strings.HasPrefix(n.Value, "%") || IsKeyframeSelector(n.Value) {
		return false
	}
	if HasInterpolation(n.Raw) {
		return false
	}
	// Less mixin parameters end up as tags inside parentheses
	if p := n.Parent; p != nil && p.Parent != nil && p.Parent.Type == selectorparser.TypePseudo {
		name := p.Parent.Name()
		if strings.HasPrefix(name, "nth-") {
			return false
		}
	}
	return true
}

// IsStandardSyntaxDeclaration reports whether a declaration is plain CSS
func IsStandardSyntaxDeclaration(d *stylesheet.Declaration) bool {
	if !IsStandardSyntaxProperty(d.Prop) {
		return false
	}
	// SCSS nested property values: font: 12px { family: x }
	if p, ok := d.Parent().(*stylesheet.Rule); ok && strings.HasSuffix(strings.TrimSpace(p.Selector), ":") {
		return false
	}
	return true
}

// IsStandardSyntaxProperty reports whether a property name is plain CSS
func IsStandardSyntaxProperty(prop string) bool {
	switch {
	case prop == "":
		return false
	case strings.HasPrefix(prop, "$"), strings.HasPrefix(prop, "@"):
		// SCSS and Less variables
		return false
	case strings.HasSuffix(prop, "+") || strings.HasSuffix(prop, "+_"):
		// Less merge
		return false
	case strings.Contains(prop, ".") && !strings.HasPrefix(prop, "--"):
		// SCSS module members: namespace.$var
		return false
	case HasInterpolation(prop):
		return false
	}
	return true
}

// IsStandardSyntaxFunction reports whether a value function is plain CSS.
// Nameless parentheses (SCSS maps, math groups) are not.
func IsStandardSyntaxFunction(n *valueparser.Node) bool {
	if n.Type != valueparser.Function || n.Value == "" {
		return false
	}
	if strings.ContainsAny(n.Value, ".$@") || HasInterpolation(n.Value) {
		return false
	}
	return true
}

// IsStandardSyntaxColorFunction reports whether a color function and all of
// its arguments are plain CSS
func IsStandardSyntaxColorFunction(n *valueparser.Node) bool {
	if !IsStandardSyntaxFunction(n) {
		return false
	}
	for _, child := range n.Nodes {
		switch child.Type {
		case valueparser.Function:
			if child.Value != "" && !IsStandardSyntaxColorFunction(child) {
				return false
			}
		case valueparser.Word:
			if strings.HasPrefix(child.Value, "$") || strings.HasPrefix(child.Value, "@") ||
				HasInterpolation(child.Value) {
				return false
			}
		}
	}
	return true
}

// IsStandardSyntaxAtRule reports whether an at-rule is plain CSS. Less
// variables and detached ruleset calls are not.
func IsStandardSyntaxAtRule(a *stylesheet.AtRule) bool {
	if a.Name == "" {
		return false
	}
	if strings.HasSuffix(a.Name, ":") || strings.HasPrefix(strings.TrimSpace(a.Params), ":") {
		return false
	}
	if strings.HasSuffix(a.Name, "()") || strings.HasPrefix(a.Params, "(") && !a.HasBlock && a.AfterName == "" {
		return false
	}
	return true
}

var timelineRanges = []string{"cover", "contain", "entry-crossing", "exit-crossing", "entry", "exit"}

// IsKeyframeSelector reports whether s is "from", "to", a percentage, or a
// timeline range such as "entry 10%"
func IsKeyframeSelector(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "from" || s == "to" || isPercentage(s) {
		return true
	}
	for _, r := range timelineRanges {
		if rest, ok := strings.CutPrefix(s, r); ok {
			rest = strings.TrimSpace(rest)
			return rest != "" && rest != s && isPercentage(rest)
		}
	}
	return false
}

func isPercentage(s string) bool {
	num, ok := strings.CutSuffix(s, "%")
	if !ok || num == "" {
		return false
	}
	dot := false
	for i := 0; i < len(num); i++ {
		c := num[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot && i < len(num)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}

// IsCustomElement reports whether name is a valid custom element name that
// is not also a known HTML, SVG or MathML element
func IsCustomElement(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") || strings.ToLower(name) != name {
		return false
	}
	if reference.IsReservedCustomElementName(name) {
		return false
	}
	if reference.IsHTMLTag(name) || reference.IsSVGTag(name) || reference.IsMathMLTag(name) {
		return false
	}
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			return false
		}
		if r < 0x80 && !(r == '-' || r == '.' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}
