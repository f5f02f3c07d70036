package linter

import (
	"slices"
	"strings"

	"github.com/yacobolo/csslint/internal/stylesheet"
)

const (
	directiveDisable         = "csslint-disable"
	directiveEnable          = "csslint-enable"
	directiveDisableLine     = "csslint-disable-line"
	directiveDisableNextLine = "csslint-disable-next-line"
)

// toggle is a disable or enable comment that applies from its end onward
type toggle struct {
	enable bool
	rules  []string // empty means every rule
	offset int
}

// disables holds the suppression comments of one document
type disables struct {
	toggles []toggle
	// lines maps a line to the rules disabled on it; a nil entry means all
	lines map[int][]string
	all   map[int]bool
}

func newDisables(root *stylesheet.Root) *disables {
	d := &disables{lines: make(map[int][]string), all: make(map[int]bool)}
	for _, c := range root.Comments {
		name, rules, ok := parseDirective(c.Text)
		if !ok {
			continue
		}
		switch name {
		case directiveDisable, directiveEnable:
			d.toggles = append(d.toggles, toggle{
				enable: name == directiveEnable,
				rules:  rules,
				offset: c.Span.End,
			})
		case directiveDisableLine:
			line, _ := root.Position(c.Span.Start)
			d.disableLine(line, rules)
		case directiveDisableNextLine:
			line, _ := root.Position(c.Span.End)
			d.disableLine(line+1, rules)
		}
	}
	return d
}

func (d *disables) disableLine(line int, rules []string) {
	if len(rules) == 0 {
		d.all[line] = true
		return
	}
	d.lines[line] = append(d.lines[line], rules...)
}

// suppressed reports whether a warning of rule at offset (on line) is
// silenced by a comment
func (d *disables) suppressed(rule string, offset, line int) bool {
	if d.all[line] || slices.Contains(d.lines[line], rule) {
		return true
	}

	all := false
	off := make(map[string]bool)
	on := make(map[string]bool)
	for _, t := range d.toggles {
		if t.offset > offset {
			break
		}
		switch {
		case !t.enable && len(t.rules) == 0:
			all = true
			clear(off)
			clear(on)
		case !t.enable:
			for _, r := range t.rules {
				off[r] = true
				delete(on, r)
			}
		case len(t.rules) == 0:
			all = false
			clear(off)
			clear(on)
		default:
			for _, r := range t.rules {
				delete(off, r)
				if all {
					on[r] = true
				}
			}
		}
	}
	return off[rule] || (all && !on[rule])
}

// parseDirective reads "csslint-disable a, b -- reason" style comments
func parseDirective(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, " --"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	name, rest := text, ""
	if i := strings.IndexAny(text, " \t\r\n"); i >= 0 {
		name, rest = text[:i], text[i+1:]
	}
	switch name {
	case directiveDisable, directiveEnable, directiveDisableLine, directiveDisableNextLine:
	default:
		return "", nil, false
	}

	var rules []string
	for _, r := range strings.Split(rest, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, r)
		}
	}
	return name, rules, true
}
