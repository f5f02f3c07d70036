// Package complexity counts one kind of simple selector per top-level
// selector alternative and reports the alternatives above a limit.
package complexity

import (
	"sort"
	"strings"

	"github.com/yacobolo/csslint/internal/reference"
	"github.com/yacobolo/csslint/internal/selectorparser"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// Feature is the kind of simple selector being counted
type Feature int

const (
	FeatureClass Feature = iota
	FeatureID
	FeatureAttribute
	FeatureType
)

func (f Feature) matches(n *selectorparser.Node) bool {
	switch f {
	case FeatureClass:
		return n.Type == selectorparser.TypeClass
	case FeatureID:
		return n.Type == selectorparser.TypeID
	case FeatureAttribute:
		return n.Type == selectorparser.TypeAttribute
	case FeatureType:
		return n.Type == selectorparser.TypeTag
	}
	return false
}

// Counter checks selectors against a limit for one feature.
//
// For a functional pseudo-class, Check takes precedence: its argument
// matches count toward the enclosing selector. Otherwise IgnoreContext
// skips the argument entirely. Remaining logical combinations (":not",
// ":is", ":has", ...) have each argument checked on its own, and an
// offending argument makes the enclosing alternative offend. Other
// functional pseudos are not looked into.
type Counter struct {
	Feature Feature
	Max     int

	Check         func(pseudo string) bool
	IgnoreContext func(pseudo string) bool
	// Ignore drops individual matched nodes from the count
	Ignore func(n *selectorparser.Node) bool

	// ResolveNested counts the selector chain a nested rule resolves to
	// instead of its own selector text
	ResolveNested bool
}

// Finding is one offending top-level alternative. Index and EndIndex are
// relative to the checked selector text.
type Finding struct {
	Selector string
	Index    int
	EndIndex int
	Count    int
}

// CheckSelector checks each alternative of a selector list independently
func (c Counter) CheckSelector(raw string) []Finding {
	list := selectorparser.Parse(raw)

	var findings []Finding
	for _, sel := range list.Selectors {
		if len(sel.Nodes) == 0 {
			continue
		}
		total, offends := c.count(sel)
		if total > c.Max || offends {
			findings = append(findings, Finding{
				Selector: list.Text(sel),
				Index:    sel.SourceIndex,
				EndIndex: sel.SourceEndIndex,
				Count:    total,
			})
		}
	}
	return findings
}

// CheckRule checks a rule's selector. With ResolveNested the counts come
// from the resolved selectors while the findings still point at the rule's
// own alternatives.
func (c Counter) CheckRule(r *stylesheet.Rule) []Finding {
	if !c.ResolveNested {
		return c.CheckSelector(r.Selector)
	}

	parents := ancestorSelectors(r)
	if len(parents) == 0 {
		return c.CheckSelector(r.Selector)
	}

	list := selectorparser.Parse(r.Selector)
	var findings []Finding
	for _, sel := range list.Selectors {
		if len(sel.Nodes) == 0 {
			continue
		}
		worst, offends := 0, false
		for _, resolved := range resolveAlternative(list, sel, parents) {
			for _, rs := range selectorparser.Parse(resolved).Selectors {
				total, o := c.count(rs)
				if total > worst {
					worst = total
				}
				offends = offends || o
			}
		}
		if worst > c.Max || offends {
			findings = append(findings, Finding{
				Selector: list.Text(sel),
				Index:    sel.SourceIndex,
				EndIndex: sel.SourceEndIndex,
				Count:    worst,
			})
		}
	}
	return findings
}

// count returns the number of matches in sel and whether a logical
// combination argument offends on its own
func (c Counter) count(sel *selectorparser.Node) (int, bool) {
	total, offends := 0, false
	for _, n := range sel.Nodes {
		if c.Feature.matches(n) {
			if c.Ignore == nil || !c.Ignore(n) {
				total++
			}
			continue
		}
		if n.Type != selectorparser.TypePseudo || !n.Functional {
			continue
		}

		name := strings.ToLower(n.Value)
		switch {
		case c.Check != nil && c.Check(name):
			for _, arg := range argumentSelectors(n) {
				t, o := c.count(arg)
				total += t
				offends = offends || o
			}
		case c.IgnoreContext != nil && c.IgnoreContext(name):
		case reference.IsContextFunctionalPseudoClass(name):
			for _, arg := range argumentSelectors(n) {
				t, o := c.count(arg)
				if t > c.Max || o {
					offends = true
				}
			}
		}
	}
	return total, offends
}

func argumentSelectors(pseudo *selectorparser.Node) []*selectorparser.Node {
	var args []*selectorparser.Node
	for _, n := range pseudo.Nodes {
		if n.Type == selectorparser.TypeSelector && len(n.Nodes) > 0 {
			args = append(args, n)
		}
	}
	return args
}

// ancestorSelectors returns the fully resolved selectors of the closest
// enclosing style rule, or nil at the top level. At-rules are transparent.
func ancestorSelectors(r *stylesheet.Rule) []string {
	for p := r.Parent(); p != nil; {
		switch v := p.(type) {
		case *stylesheet.Rule:
			own := selectorparser.Parse(v.Selector)
			grand := ancestorSelectors(v)
			var out []string
			for _, sel := range own.Selectors {
				if len(sel.Nodes) == 0 {
					continue
				}
				if len(grand) == 0 {
					out = append(out, own.Text(sel))
					continue
				}
				out = append(out, resolveAlternative(own, sel, grand)...)
			}
			return out
		case *stylesheet.AtRule:
			p = v.Parent()
		default:
			return nil
		}
	}
	return nil
}

// resolveAlternative substitutes every "&" in sel with each parent, or
// joins parent and sel with a descendant combinator when sel has no "&"
func resolveAlternative(list *selectorparser.List, sel *selectorparser.Node, parents []string) []string {
	text := list.Text(sel)

	var nesting []*selectorparser.Node
	selectorparser.Walk(sel, func(n *selectorparser.Node) bool {
		if n.Type == selectorparser.TypeNesting {
			nesting = append(nesting, n)
		}
		return true
	})

	out := make([]string, 0, len(parents))
	for _, parent := range parents {
		if len(nesting) == 0 {
			out = append(out, parent+" "+text)
			continue
		}
		out = append(out, substitute(list.Source, sel, nesting, parent))
	}
	return out
}

func substitute(source string, sel *selectorparser.Node, nesting []*selectorparser.Node, parent string) string {
	sort.Slice(nesting, func(i, j int) bool { return nesting[i].SourceIndex < nesting[j].SourceIndex })

	var b strings.Builder
	pos := sel.SourceIndex
	for _, n := range nesting {
		b.WriteString(source[pos:n.SourceIndex])
		b.WriteString(parent)
		// "&-suffix" keeps its suffix
		b.WriteString(strings.TrimPrefix(n.Value, "&"))
		pos = n.SourceEndIndex
	}
	b.WriteString(source[pos:sel.SourceEndIndex])
	return b.String()
}
