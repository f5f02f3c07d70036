package shorthand

import (
	"strings"

	"github.com/yacobolo/csslint/internal/stylesheet"
	"github.com/yacobolo/csslint/internal/valueparser"
)

// Kind selects how a shorthand value is composed from its longhands
type Kind int

const (
	KindDefault Kind = iota
	KindFontSynthesis
	KindGridColumn
	KindGridRow
	KindGridTemplate
	KindTransition
)

// KindOf returns the resolver kind of an unprefixed shorthand
func KindOf(shorthand string) Kind {
	switch shorthand {
	case "font-synthesis":
		return KindFontSynthesis
	case "grid-column":
		return KindGridColumn
	case "grid-row":
		return KindGridRow
	case "grid-template":
		return KindGridTemplate
	case "transition":
		return KindTransition
	default:
		return KindDefault
	}
}

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindFontSynthesis:
		return "font-synthesis"
	case KindGridColumn:
		return "grid-column"
	case KindGridRow:
		return "grid-row"
	case KindGridTemplate:
		return "grid-template"
	case KindTransition:
		return "transition"
	}
	return "unknown"
}

// values looks up trimmed longhand values by unprefixed name
type values struct {
	prefix string
	byProp map[string]string
}

func newValues(prefix string, decls []*stylesheet.Declaration) values {
	v := values{prefix: prefix, byProp: make(map[string]string, len(decls))}
	for _, d := range decls {
		v.byProp[strings.ToLower(d.Prop)] = strings.TrimSpace(d.Value)
	}
	return v
}

func (v values) get(longhand string) string {
	return v.byProp[v.prefix+longhand]
}

func resolve(kind Kind, prefix string, required []string, decls []*stylesheet.Declaration) (string, bool) {
	v := newValues(prefix, decls)

	switch kind {
	case KindFontSynthesis:
		return resolveFontSynthesis(v)
	case KindGridColumn:
		return resolveStartEnd(v, "grid-column-start", "grid-column-end")
	case KindGridRow:
		return resolveStartEnd(v, "grid-row-start", "grid-row-end")
	case KindGridTemplate:
		return resolveGridTemplate(v)
	case KindTransition:
		return resolveTransition(v)
	default:
		var parts []string
		for _, longhand := range required {
			if s := v.get(longhand); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " "), len(parts) > 0
	}
}

func resolveFontSynthesis(v values) (string, bool) {
	names := []struct{ longhand, keyword string }{
		{"font-synthesis-weight", "weight"},
		{"font-synthesis-style", "style"},
		{"font-synthesis-small-caps", "small-caps"},
	}

	var auto []string
	for _, n := range names {
		switch v.get(n.longhand) {
		case "auto":
			auto = append(auto, n.keyword)
		case "none":
		default:
			return "", false
		}
	}
	if len(auto) == 0 {
		return "none", true
	}
	return strings.Join(auto, " "), true
}

func resolveStartEnd(v values, startProp, endProp string) (string, bool) {
	start, end := v.get(startProp), v.get(endProp)
	if start == "" || end == "" {
		return "", false
	}
	return start + " / " + end, true
}

// resolveGridTemplate zips each area string with its row size:
// "a" 1fr "b" 2fr / columns
func resolveGridTemplate(v values) (string, bool) {
	areas := v.get("grid-template-areas")
	columns := v.get("grid-template-columns")
	rows := v.get("grid-template-rows")
	if areas == "" || columns == "" || rows == "" {
		return "", false
	}

	// repeat() is not allowed in the track listings of grid-template
	if hasRepeat(columns) || hasRepeat(rows) {
		return "", false
	}

	var areaStrings []string
	for _, n := range valueparser.Parse(areas).Nodes {
		if n.Type == valueparser.String && n.Quote == '"' && !n.Unclosed && n.Value != "" {
			areaStrings = append(areaStrings, n.String())
		}
	}
	rowSizes := valueparser.Words(rows)
	if len(areaStrings) == 0 || len(areaStrings) != len(rowSizes) {
		return "", false
	}

	zipped := make([]string, len(areaStrings))
	for i, area := range areaStrings {
		zipped[i] = area + " " + rowSizes[i]
	}
	return strings.Join(zipped, " ") + " / " + columns, true
}

func hasRepeat(value string) bool {
	for _, fn := range valueparser.Parse(value).Functions() {
		if valueparser.IsFunction(fn, "repeat") {
			return true
		}
	}
	return false
}

// resolveTransition builds one "property duration timing delay" item per
// transition-property entry. The other lists repeat cyclically when shorter
// and are left out when absent.
func resolveTransition(v values) (string, bool) {
	properties := listItems(v.get("transition-property"))
	others := [][]string{
		listItems(v.get("transition-duration")),
		listItems(v.get("transition-timing-function")),
		listItems(v.get("transition-delay")),
	}
	// A shorthand resets every omitted longhand, so all four lists must be known
	if len(properties) == 0 {
		return "", false
	}
	for _, list := range others {
		if len(list) == 0 {
			return "", false
		}
	}

	items := make([]string, len(properties))
	for i, property := range properties {
		parts := []string{property}
		for _, list := range others {
			parts = append(parts, list[i%len(list)])
		}
		items[i] = strings.Join(parts, " ")
	}
	return strings.Join(items, ", "), true
}

func listItems(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range valueparser.SplitList(value) {
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
