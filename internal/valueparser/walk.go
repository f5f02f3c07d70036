package valueparser

import "strings"

// String serializes the node back to CSS text
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Type {
	case String:
		b.WriteByte(n.Quote)
		b.WriteString(n.Value)
		if !n.Unclosed {
			b.WriteByte(n.Quote)
		}
	case Function:
		b.WriteString(n.Value)
		b.WriteByte('(')
		b.WriteString(n.Before)
		for _, c := range n.Nodes {
			c.write(b)
		}
		b.WriteString(n.After)
		if !n.Unclosed {
			b.WriteByte(')')
		}
	case Div:
		b.WriteString(n.Before)
		b.WriteString(n.Value)
		b.WriteString(n.After)
	case Comment:
		b.WriteString("/*")
		b.WriteString(n.Value)
		if !n.Unclosed {
			b.WriteString("*/")
		}
	default:
		b.WriteString(n.Value)
	}
}

// Stringify serializes a sequence of nodes
func Stringify(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		n.write(&b)
	}
	return b.String()
}

func (r *Root) String() string { return Stringify(r.Nodes) }

// Cursor describes the node being visited by Walk
type Cursor struct {
	node   *Node
	parent *Node
	list   []*Node
	index  int

	replaced bool
	root     *Root
	visited  map[int]struct{}
}

// Node returns the current node
func (c *Cursor) Node() *Node { return c.node }

// Parent returns the enclosing function, or nil at the top level
func (c *Cursor) Parent() *Node { return c.parent }

// Index returns the position of the current node among its siblings
func (c *Cursor) Index() int { return c.index }

// Replace swaps the current node for n. The new subtree is marked visited
// and is not descended into, even when it contains the node it replaced.
func (c *Cursor) Replace(n *Node) {
	if n.ID == 0 {
		c.root.nextID++
		n.ID = c.root.nextID
	}
	c.root.assignIDs(n.Nodes)
	c.markVisited(n)
	c.list[c.index] = n
	c.node = n
	c.replaced = true
}

func (c *Cursor) markVisited(n *Node) {
	c.visited[n.ID] = struct{}{}
	for _, child := range n.Nodes {
		c.markVisited(child)
	}
}

// Walk visits every node depth-first, pre-order. Returning false from fn
// skips the children of the current node. Each node ID is visited at most once.
func (r *Root) Walk(fn func(*Cursor) bool) {
	c := &Cursor{root: r, visited: make(map[int]struct{})}
	c.walkList(nil, r.Nodes, fn)
}

func (c *Cursor) walkList(parent *Node, list []*Node, fn func(*Cursor) bool) {
	for i := 0; i < len(list); i++ {
		n := list[i]
		if _, seen := c.visited[n.ID]; seen {
			continue
		}
		c.visited[n.ID] = struct{}{}

		c.node, c.parent, c.list, c.index, c.replaced = n, parent, list, i, false
		descend := fn(c)
		if c.replaced || !descend {
			continue
		}
		if n.Type == Function {
			c.walkList(n, n.Nodes, fn)
		}
	}
}

// Functions returns every function node in document order, nested ones included
func (r *Root) Functions() []*Node {
	var fns []*Node
	r.Walk(func(c *Cursor) bool {
		if c.Node().Type == Function {
			fns = append(fns, c.Node())
		}
		return true
	})
	return fns
}

// IsFunction reports whether n is a function with the given name, ignoring case
func IsFunction(n *Node, name string) bool {
	return n.Type == Function && strings.EqualFold(n.Value, name)
}

// SplitTopLevel splits nodes on top-level dividers with the given value.
// Commas nested inside functions never split.
func SplitTopLevel(nodes []*Node, div string) [][]*Node {
	var parts [][]*Node
	var cur []*Node
	for _, n := range nodes {
		if n.Type == Div && n.Value == div {
			parts = append(parts, cur)
			cur = nil
			continue
		}
		cur = append(cur, n)
	}
	return append(parts, cur)
}

// SplitList splits a comma separated value into trimmed item strings
func SplitList(value string) []string {
	parts := SplitTopLevel(Parse(value).Nodes, ",")
	items := make([]string, len(parts))
	for i, part := range parts {
		items[i] = strings.TrimSpace(Stringify(part))
	}
	return items
}

// Words returns the top-level space separated items of a value, each
// serialized. Functions and strings count as a single item.
func Words(value string) []string {
	var items []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			items = append(items, cur.String())
			cur.Reset()
		}
	}
	for _, n := range Parse(value).Nodes {
		switch n.Type {
		case Space, Comment:
			flush()
		case Div:
			flush()
			items = append(items, n.Value)
		default:
			cur.WriteString(n.String())
		}
	}
	flush()
	return items
}
