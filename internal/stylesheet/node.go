// Package stylesheet provides the mutable stylesheet tree that rules walk
// and fixes edit. Every node keeps the raw text surrounding it so that an
// unmodified tree prints back byte-for-byte.
package stylesheet

import "strings"

// Type identifies the kind of a stylesheet node
type Type int

const (
	TypeRoot Type = iota
	TypeRule
	TypeAtRule
	TypeDecl
	TypeComment
)

func (t Type) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeRule:
		return "rule"
	case TypeAtRule:
		return "atrule"
	case TypeDecl:
		return "decl"
	case TypeComment:
		return "comment"
	}
	return "unknown"
}

// Span is a half-open byte range into the original source text.
// Nodes created by fixes carry the span of the node they were cloned from.
type Span struct {
	Start int
	End   int
}

// Node is implemented by every stylesheet node
type Node interface {
	Type() Type
	Parent() Container
	Span() Span
	String() string
	base() *nodeBase
}

// Container is a node that owns an ordered list of children
type Container interface {
	Node
	Children() []Node
	container() *containerBase
}

type nodeBase struct {
	parent Container
	span   Span

	// Before is the raw text (whitespace, stray semicolons) preceding the node
	Before string
}

func (n *nodeBase) Parent() Container { return n.parent }
func (n *nodeBase) Span() Span        { return n.span }
func (n *nodeBase) base() *nodeBase   { return n }

type containerBase struct {
	nodeBase
	self  Container
	nodes []Node

	// After is the raw text between the last child and the closing brace
	After string
}

// Children returns the direct children in document order
func (c *containerBase) Children() []Node { return c.nodes }

func (c *containerBase) container() *containerBase { return c }

// Append adds nodes to the end of the container, detaching them from any previous parent
func (c *containerBase) Append(nodes ...Node) {
	for _, n := range nodes {
		Remove(n)
		n.base().parent = c.self
		c.nodes = append(c.nodes, n)
	}
}

// Index returns the position of n among the children, or -1
func (c *containerBase) Index(n Node) int {
	for i, child := range c.nodes {
		if child.base() == n.base() {
			return i
		}
	}
	return -1
}

// Walk visits every descendant depth-first in document order.
// Returning false from fn skips the children of the visited node.
func (c *containerBase) Walk(fn func(Node) bool) {
	for _, child := range c.nodes {
		if !fn(child) {
			continue
		}
		if cc, ok := child.(Container); ok {
			cc.container().Walk(fn)
		}
	}
}

// WalkDecls visits every descendant declaration
func (c *containerBase) WalkDecls(fn func(*Declaration)) {
	c.Walk(func(n Node) bool {
		if d, ok := n.(*Declaration); ok {
			fn(d)
		}
		return true
	})
}

// WalkRules visits every descendant rule, mixin calls included
func (c *containerBase) WalkRules(fn func(*Rule)) {
	c.Walk(func(n Node) bool {
		if r, ok := n.(*Rule); ok {
			fn(r)
		}
		return true
	})
}

// WalkAtRules visits every descendant at-rule
func (c *containerBase) WalkAtRules(fn func(*AtRule)) {
	c.Walk(func(n Node) bool {
		if a, ok := n.(*AtRule); ok {
			fn(a)
		}
		return true
	})
}

func (c *containerBase) stringChildren(b *strings.Builder) {
	for _, child := range c.nodes {
		b.WriteString(child.String())
	}
}

func (c *containerBase) cloneChildren(dst *containerBase) {
	dst.nodes = make([]Node, 0, len(c.nodes))
	for _, child := range c.nodes {
		cl := Clone(child)
		cl.base().parent = dst.self
		dst.nodes = append(dst.nodes, cl)
	}
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func Remove(n Node) bool {
	b := n.base()
	if b.parent == nil {
		return false
	}
	pc := b.parent.container()
	i := pc.Index(n)
	if i >= 0 {
		pc.nodes = append(pc.nodes[:i:i], pc.nodes[i+1:]...)
	}
	b.parent = nil
	return i >= 0
}

// ReplaceWith puts replacements where n is and detaches n.
// It reports false when n is no longer attached to a tree.
func ReplaceWith(n Node, replacements ...Node) bool {
	b := n.base()
	if b.parent == nil {
		return false
	}
	parent := b.parent
	pc := parent.container()
	i := pc.Index(n)
	if i < 0 {
		b.parent = nil
		return false
	}

	for _, r := range replacements {
		Remove(r)
		r.base().parent = parent
	}
	// Index may have shifted if a replacement was a sibling
	i = pc.Index(n)

	nodes := make([]Node, 0, len(pc.nodes)-1+len(replacements))
	nodes = append(nodes, pc.nodes[:i]...)
	nodes = append(nodes, replacements...)
	nodes = append(nodes, pc.nodes[i+1:]...)
	pc.nodes = nodes
	b.parent = nil
	return true
}

// Clone returns a detached deep copy of n
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Declaration:
		return v.Clone()
	case *Comment:
		c := *v
		c.parent = nil
		return &c
	case *Rule:
		return v.Clone()
	case *AtRule:
		return v.Clone()
	case *Root:
		return v.Clone()
	}
	return n
}

// Declaration is a single "prop: value" entry of a declaration block
type Declaration struct {
	nodeBase
	Prop string
	// Between holds the raw text from the end of Prop up to the value, colon included
	Between      string
	Value        string
	Important    bool
	ImportantRaw string
	// After holds whitespace between the value and the terminating semicolon
	After     string
	Semicolon bool
}

// NewDeclaration creates a detached declaration with default raws
func NewDeclaration(prop, value string) *Declaration {
	return &Declaration{Prop: prop, Between: ": ", Value: value, Semicolon: true}
}

func (d *Declaration) Type() Type { return TypeDecl }

// ValueIndex is the offset of the value relative to the start of the declaration
func (d *Declaration) ValueIndex() int { return len(d.Prop) + len(d.Between) }

// Text is the declaration without its leading raws or semicolon
func (d *Declaration) Text() string {
	return d.Prop + d.Between + d.Value + d.ImportantRaw
}

func (d *Declaration) String() string {
	var b strings.Builder
	b.WriteString(d.Before)
	b.WriteString(d.Text())
	b.WriteString(d.After)
	if d.Semicolon {
		b.WriteByte(';')
	}
	return b.String()
}

// Clone returns a detached copy of the declaration
func (d *Declaration) Clone() *Declaration {
	c := *d
	c.parent = nil
	return &c
}

// Comment is a statement-level comment. Comments inside selectors and
// values stay part of the raw text and are only recorded in Root.Comments.
type Comment struct {
	nodeBase
	Text     string
	Inline   bool // "//" comment
	Unclosed bool
}

func (c *Comment) Type() Type { return TypeComment }

func (c *Comment) String() string {
	if c.Inline {
		return c.Before + "//" + c.Text
	}
	s := c.Before + "/*" + c.Text
	if !c.Unclosed {
		s += "*/"
	}
	return s
}

// Rule is a qualified rule: a selector followed by a block.
// Less mixin calls (".mixin();") are rules without a block.
type Rule struct {
	containerBase
	Selector string
	// Between is the raw text between the selector and "{"
	Between   string
	Mixin     bool
	Semicolon bool
	Unclosed  bool
}

// NewRule creates a detached rule with an empty block
func NewRule(selector string) *Rule {
	r := &Rule{Selector: selector, Between: " "}
	r.self = r
	return r
}

func (r *Rule) Type() Type { return TypeRule }

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Before)
	b.WriteString(r.Selector)
	b.WriteString(r.Between)
	if r.Mixin {
		if r.Semicolon {
			b.WriteByte(';')
		}
		return b.String()
	}
	b.WriteByte('{')
	r.stringChildren(&b)
	b.WriteString(r.After)
	if !r.Unclosed {
		b.WriteByte('}')
	}
	return b.String()
}

// Clone returns a detached deep copy of the rule
func (r *Rule) Clone() *Rule {
	c := *r
	c.parent = nil
	c.self = &c
	r.cloneChildren(&c.containerBase)
	return &c
}

// AtRule is an "@name params" statement with an optional block
type AtRule struct {
	containerBase
	Name      string
	AfterName string
	Params    string
	// Between is the raw text between the params and "{" or ";"
	Between   string
	HasBlock  bool
	Semicolon bool
	Unclosed  bool
}

func (a *AtRule) Type() Type { return TypeAtRule }

func (a *AtRule) String() string {
	var b strings.Builder
	b.WriteString(a.Before)
	b.WriteByte('@')
	b.WriteString(a.Name)
	b.WriteString(a.AfterName)
	b.WriteString(a.Params)
	b.WriteString(a.Between)
	switch {
	case a.HasBlock:
		b.WriteByte('{')
		a.stringChildren(&b)
		b.WriteString(a.After)
		if !a.Unclosed {
			b.WriteByte('}')
		}
	case a.Semicolon:
		b.WriteByte(';')
	}
	return b.String()
}

// Clone returns a detached deep copy of the at-rule
func (a *AtRule) Clone() *AtRule {
	c := *a
	c.parent = nil
	c.self = &c
	a.cloneChildren(&c.containerBase)
	return &c
}

// SourceComment is any comment found while tokenizing, including comments
// nested inside selectors, values and at-rule params.
type SourceComment struct {
	Text   string // without delimiters
	Span   Span
	Inline bool
}

// Root is the top of a parsed stylesheet
type Root struct {
	containerBase

	// Input is the original source text all spans refer to
	Input    string
	Comments []SourceComment
	Errors   []error

	lineStarts []int
}

// NewRoot creates an empty root over the given source text
func NewRoot(input string) *Root {
	r := &Root{Input: input}
	r.self = r
	r.lineStarts = computeLineStarts(input)
	return r
}

func (r *Root) Type() Type { return TypeRoot }

func (r *Root) String() string {
	var b strings.Builder
	r.stringChildren(&b)
	b.WriteString(r.After)
	return b.String()
}

// Clone returns a deep copy of the tree sharing the original source text
func (r *Root) Clone() *Root {
	c := *r
	c.self = &c
	c.Comments = append([]SourceComment(nil), r.Comments...)
	c.Errors = append([]error(nil), r.Errors...)
	r.cloneChildren(&c.containerBase)
	return &c
}

// EachDeclarationBlock calls fn for the root and every rule or at-rule that
// owns a block, outermost first. Each block is visited once, so state kept
// per call never leaks into nested blocks.
func (r *Root) EachDeclarationBlock(fn func(Container)) {
	fn(r)
	r.Walk(func(n Node) bool {
		switch v := n.(type) {
		case *Rule:
			if !v.Mixin {
				fn(v)
			}
		case *AtRule:
			if v.HasBlock {
				fn(v)
			}
		}
		return true
	})
}

// Decls returns the declarations directly owned by a container
func Decls(c Container) []*Declaration {
	var decls []*Declaration
	for _, n := range c.Children() {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}
