package selectorparser

import "strings"

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Type {
	case TypeSelector:
		b.WriteString(n.Before)
		for _, c := range n.Nodes {
			c.write(b)
		}
		b.WriteString(n.After)
	case TypePseudo:
		b.WriteString(n.Raw)
		if !n.Functional {
			return
		}
		b.WriteByte('(')
		first := true
		for _, c := range n.Nodes {
			if c.Type == TypeSelector {
				if !first {
					b.WriteByte(',')
				}
				first = false
			}
			c.write(b)
		}
		if !n.Unclosed {
			b.WriteByte(')')
		}
	default:
		b.WriteString(n.Raw)
	}
}

// String serializes the list back to selector text
func (l *List) String() string {
	var b strings.Builder
	for i, sel := range l.Selectors {
		if i > 0 {
			b.WriteByte(',')
		}
		sel.write(&b)
	}
	return b.String()
}

// Walk visits n and its descendants depth-first. Returning false skips
// the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Nodes {
		Walk(c, fn)
	}
}

// Walk visits every node of every selector in the list
func (l *List) Walk(fn func(*Node) bool) {
	for _, sel := range l.Selectors {
		Walk(sel, fn)
	}
}

// Compounds splits a selector's nodes into compound selectors separated
// by combinators. Comment nodes are dropped.
func Compounds(sel *Node) [][]*Node {
	var out [][]*Node
	var cur []*Node
	for _, n := range sel.Nodes {
		switch n.Type {
		case TypeCombinator:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
		case TypeComment:
		default:
			cur = append(cur, n)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// HasNesting reports whether the selector contains "&" anywhere, including
// inside pseudo arguments
func HasNesting(sel *Node) bool {
	found := false
	Walk(sel, func(n *Node) bool {
		if n.Type == TypeNesting {
			found = true
		}
		return !found
	})
	return found
}
