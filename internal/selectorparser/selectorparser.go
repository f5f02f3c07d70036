// Package selectorparser parses a selector list into top-level alternatives
// made of simple selectors, pseudo-classes and combinators.
package selectorparser

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/csslint/internal/csstoken"
)

// Type identifies a selector node variant
type Type int

const (
	TypeSelector Type = iota
	TypeTag
	TypeUniversal
	TypeClass
	TypeID
	TypeAttribute
	TypePseudo
	TypeCombinator
	TypeNesting
	TypeComment
	TypeLiteral
)

func (t Type) String() string {
	switch t {
	case TypeSelector:
		return "selector"
	case TypeTag:
		return "tag"
	case TypeUniversal:
		return "universal"
	case TypeClass:
		return "class"
	case TypeID:
		return "id"
	case TypeAttribute:
		return "attribute"
	case TypePseudo:
		return "pseudo"
	case TypeCombinator:
		return "combinator"
	case TypeNesting:
		return "nesting"
	case TypeComment:
		return "comment"
	case TypeLiteral:
		return "literal"
	}
	return "unknown"
}

// Node is a selector AST node.
//
// For a Selector, Nodes is the flat sequence of compound parts and
// combinators. For a functional Pseudo, Nodes holds the argument
// selectors, optionally preceded by one Literal for arguments that are
// not selectors ("2n+1 of ", "en").
type Node struct {
	Type   Type
	Parent *Node

	// Value is the name of a tag, class, id or attribute, the pseudo name
	// with its colons, or the trimmed combinator (" " for descendant)
	Value string

	Namespace    string
	HasNamespace bool

	// Attribute parts
	Operator    string
	AttrValue   string
	Quote       byte
	Insensitive bool

	// Raw is the exact source text of a leaf or of a pseudo name
	Raw string

	// Before and After hold whitespace and comments outside a Selector's span
	Before string
	After  string

	Nodes      []*Node
	Functional bool
	Unclosed   bool

	SourceIndex    int
	SourceEndIndex int
}

// List is a parsed selector list
type List struct {
	Source    string
	Selectors []*Node
}

// IsPseudoElement reports whether the node is a "::" pseudo, or one of the
// legacy single-colon pseudo-elements
func (n *Node) IsPseudoElement() bool {
	if n.Type != TypePseudo {
		return false
	}
	if strings.HasPrefix(n.Value, "::") {
		return true
	}
	switch strings.ToLower(n.Value) {
	case ":before", ":after", ":first-line", ":first-letter":
		return true
	}
	return false
}

// Name returns the lowercase pseudo name without colons
func (n *Node) Name() string {
	return strings.ToLower(strings.TrimLeft(n.Value, ":"))
}

// Text returns the source text covered by the node's span
func (l *List) Text(n *Node) string {
	return l.Source[n.SourceIndex:n.SourceEndIndex]
}

// Parse parses a selector list. It never fails: unknown tokens become
// Literal nodes.
func Parse(selector string) *List {
	p := &parser{src: selector, toks: csstoken.Tokenize(selector)}
	return &List{Source: selector, Selectors: p.parseList(nil, false)}
}

// pseudos whose arguments are not a selector list
var opaquePseudos = map[string]bool{
	"nth-child":                   true,
	"nth-last-child":              true,
	"nth-of-type":                 true,
	"nth-last-of-type":            true,
	"nth-col":                     true,
	"nth-last-col":                true,
	"lang":                        true,
	"dir":                         true,
	"-moz-locale-dir":             true,
	"state":                       true,
	"highlight":                   true,
	"part":                        true,
	"active-view-transition-type": true,
	"view-transition-group":       true,
	"view-transition-image-pair":  true,
	"view-transition-old":         true,
	"view-transition-new":         true,
}

type parser struct {
	src  string
	toks []csstoken.Token
	i    int
}

func (p *parser) peek() (csstoken.Token, bool) {
	if p.i >= len(p.toks) {
		return csstoken.Token{}, false
	}
	return p.toks[p.i], true
}

func (p *parser) pos() int {
	if p.i >= len(p.toks) {
		return len(p.src)
	}
	return p.toks[p.i].Pos
}

// parseList reads comma separated selectors until EOF or, inside a
// pseudo, an unmatched ")" which is left unconsumed.
func (p *parser) parseList(parent *Node, inPseudo bool) []*Node {
	var selectors []*Node
	for {
		sel := p.parseSelector(parent, inPseudo)
		selectors = append(selectors, sel)

		tok, ok := p.peek()
		if !ok || tok.Type != css.CommaToken {
			return selectors
		}
		p.i++
	}
}

func (p *parser) parseSelector(parent *Node, inPseudo bool) *Node {
	sel := &Node{Type: TypeSelector, Parent: parent}
	start := p.pos()

	for {
		tok, ok := p.peek()
		if !ok || tok.Type == css.CommaToken || (inPseudo && tok.Type == css.RightParenthesisToken) {
			break
		}

		if csstoken.IsTrivia(tok) || isCombinatorToken(tok) {
			p.parseGap(sel, inPseudo)
			continue
		}
		sel.Nodes = append(sel.Nodes, p.parseSimple(sel, inPseudo))
	}
	end := p.pos()

	// The span covers the first through last significant node
	first, last := -1, -1
	for k, n := range sel.Nodes {
		if n.Type == TypeComment {
			continue
		}
		if first < 0 {
			first = k
		}
		last = k
	}
	if first < 0 {
		sel.SourceIndex, sel.SourceEndIndex = end, end
		sel.Before = p.src[start:end]
		sel.Nodes = nil
		return sel
	}

	// Leading and trailing comments live in the raws, not the node list
	sel.SourceIndex = sel.Nodes[first].SourceIndex
	sel.SourceEndIndex = sel.Nodes[last].SourceEndIndex
	sel.Before = p.src[start:sel.SourceIndex]
	sel.After = p.src[sel.SourceEndIndex:end]
	sel.Nodes = sel.Nodes[first : last+1]
	return sel
}

func isCombinatorToken(tok csstoken.Token) bool {
	return tok.IsDelim('>') || tok.IsDelim('+') || tok.IsDelim('~') || tok.Type == css.ColumnToken
}

// parseGap consumes a run of whitespace, comments and combinator tokens.
// Between two compounds it becomes a combinator; at the edges of a
// selector it becomes raw text unless it holds an explicit combinator.
func (p *parser) parseGap(sel *Node, inPseudo bool) {
	start := p.i
	combinator := ""
	combStart := -1
	hasSpace := false
	for p.i < len(p.toks) {
		tok := p.toks[p.i]
		if tok.Type == css.WhitespaceToken {
			hasSpace = true
		} else if isCombinatorToken(tok) {
			if combinator != "" {
				break
			}
			combinator = tok.Text
			combStart = p.i
		} else if tok.Type != css.CommentToken {
			break
		}
		p.i++
	}

	atStart := len(sel.Nodes) == 0
	tok, ok := p.peek()
	atEnd := !ok || tok.Type == css.CommaToken || (inPseudo && tok.Type == css.RightParenthesisToken)

	if combinator == "" && (atStart || atEnd || !hasSpace) {
		// Not a descendant combinator; keep any comments as nodes so that
		// the selector span can exclude them
		for k := start; k < p.i; k++ {
			if p.toks[k].Type == css.CommentToken {
				t := p.toks[k]
				sel.Nodes = append(sel.Nodes, &Node{
					Type: TypeComment, Parent: sel, Raw: t.Text,
					SourceIndex: t.Pos, SourceEndIndex: t.End(),
				})
			}
		}
		return
	}

	// A leading explicit combinator ("> a" in :has or nesting) starts at
	// the combinator character
	from := start
	if atStart && combStart >= 0 {
		from = combStart
		for k := start; k < combStart; k++ {
			if p.toks[k].Type == css.CommentToken {
				t := p.toks[k]
				sel.Nodes = append(sel.Nodes, &Node{
					Type: TypeComment, Parent: sel, Raw: t.Text,
					SourceIndex: t.Pos, SourceEndIndex: t.End(),
				})
			}
		}
	}
	to := p.i
	if atEnd && combStart >= 0 {
		to = combStart + 1
		p.i = to
	}

	value := combinator
	if value == "" {
		value = " "
	}
	startPos, endPos := p.toks[from].Pos, p.toks[to-1].End()
	sel.Nodes = append(sel.Nodes, &Node{
		Type:           TypeCombinator,
		Parent:         sel,
		Value:          value,
		Raw:            p.src[startPos:endPos],
		SourceIndex:    startPos,
		SourceEndIndex: endPos,
	})
}

func (p *parser) leaf(t Type, sel *Node, value string, start int) *Node {
	end := p.pos()
	return &Node{
		Type: t, Parent: sel, Value: value,
		Raw:         p.src[start:end],
		SourceIndex: start, SourceEndIndex: end,
	}
}

// parseSimple reads one simple selector, pseudo or nesting marker
func (p *parser) parseSimple(sel *Node, inPseudo bool) *Node {
	tok := p.toks[p.i]
	start := tok.Pos

	switch {
	case tok.Type == css.IdentToken || tok.IsDelim('*') || tok.IsDelim('|'):
		return p.parseTypeOrUniversal(sel)

	case tok.Type == css.HashToken:
		p.i++
		return p.leaf(TypeID, sel, tok.Text[1:], start)

	case tok.IsDelim('.'):
		if p.i+1 < len(p.toks) && p.toks[p.i+1].Type == css.IdentToken && p.toks[p.i+1].Pos == tok.End() {
			name := p.toks[p.i+1].Text
			p.i += 2
			return p.leaf(TypeClass, sel, name, start)
		}

	case tok.Type == css.LeftBracketToken:
		return p.parseAttribute(sel)

	case tok.Type == css.ColonToken:
		if n := p.parsePseudo(sel); n != nil {
			return n
		}

	case tok.IsDelim('&'):
		p.i++
		// "&-suffix" and "&__elem" are preprocessor concatenation
		for p.i < len(p.toks) && p.toks[p.i].Type == css.IdentToken && p.toks[p.i].Pos == p.toks[p.i-1].End() {
			p.i++
		}
		return p.leaf(TypeNesting, sel, p.src[start:p.pos()], start)
	}

	return p.parseLiteral(sel, inPseudo)
}

// parseLiteral keeps unrecognized text up to the next boundary, with
// interpolation braces balanced.
func (p *parser) parseLiteral(sel *Node, inPseudo bool) *Node {
	start := p.toks[p.i].Pos
	braces, parens := 0, 0
	for p.i < len(p.toks) {
		tok := p.toks[p.i]
		if braces == 0 && parens == 0 && p.i > 0 && p.toks[p.i].Pos != start {
			if csstoken.IsTrivia(tok) || tok.Type == css.CommaToken || isCombinatorToken(tok) ||
				tok.Type == css.ColonToken || tok.Type == css.LeftBracketToken || tok.Type == css.HashToken ||
				tok.IsDelim('.') || (inPseudo && tok.Type == css.RightParenthesisToken) {
				break
			}
		}
		switch {
		case tok.Type == css.LeftBraceToken:
			braces++
		case tok.Type == css.RightBraceToken && braces > 0:
			braces--
		case csstoken.Opens(tok):
			parens++
		case tok.Type == css.RightParenthesisToken && parens > 0:
			parens--
		}
		p.i++
	}
	return p.leaf(TypeLiteral, sel, p.src[start:p.pos()], start)
}

func (p *parser) parseTypeOrUniversal(sel *Node) *Node {
	start := p.toks[p.i].Pos

	name, nameOK := p.takeName()
	if p.i < len(p.toks) && p.toks[p.i].IsDelim('|') && p.toks[p.i].Pos == p.prevEnd() &&
		p.i+1 < len(p.toks) && p.toks[p.i+1].Pos == p.toks[p.i].End() &&
		(p.toks[p.i+1].Type == css.IdentToken || p.toks[p.i+1].IsDelim('*')) {
		// ns|name, *|name, |name
		ns := ""
		if nameOK {
			ns = name
		}
		p.i++
		local, _ := p.takeName()
		n := p.leaf(TypeTag, sel, local, start)
		if local == "*" {
			n.Type = TypeUniversal
		}
		n.Namespace, n.HasNamespace = ns, true
		return n
	}

	if !nameOK {
		return p.parseLiteral(sel, false)
	}
	n := p.leaf(TypeTag, sel, name, start)
	if name == "*" {
		n.Type = TypeUniversal
	}
	return n
}

// takeName consumes an identifier or "*". A lone "|" yields no name.
func (p *parser) takeName() (string, bool) {
	tok := p.toks[p.i]
	if tok.Type == css.IdentToken || tok.IsDelim('*') {
		p.i++
		return tok.Text, true
	}
	return "", false
}

func (p *parser) prevEnd() int {
	if p.i == 0 {
		return 0
	}
	return p.toks[p.i-1].End()
}

func (p *parser) parseAttribute(sel *Node) *Node {
	start := p.toks[p.i].Pos
	p.i++

	n := &Node{Type: TypeAttribute, Parent: sel, SourceIndex: start}
	var parts []csstoken.Token
	closed := false
	for p.i < len(p.toks) {
		tok := p.toks[p.i]
		p.i++
		if tok.Type == css.RightBracketToken {
			closed = true
			break
		}
		if !csstoken.IsTrivia(tok) {
			parts = append(parts, tok)
		}
	}
	n.Unclosed = !closed
	n.SourceEndIndex = p.pos()
	if closed {
		n.SourceEndIndex = p.toks[p.i-1].End()
	}
	n.Raw = p.src[start:n.SourceEndIndex]

	// [ns|name op value flag]
	k := 0
	if k+1 < len(parts) && parts[k+1].IsDelim('|') && (parts[k].Type == css.IdentToken || parts[k].IsDelim('*')) {
		n.Namespace, n.HasNamespace = parts[k].Text, true
		k += 2
	} else if k < len(parts) && parts[k].IsDelim('|') {
		n.HasNamespace = true
		k++
	}
	if k < len(parts) {
		n.Value = parts[k].Text
		k++
	}
	if k < len(parts) {
		switch {
		case parts[k].IsDelim('='):
			n.Operator = "="
			k++
		case parts[k].Type == css.IncludeMatchToken, parts[k].Type == css.DashMatchToken,
			parts[k].Type == css.PrefixMatchToken, parts[k].Type == css.SuffixMatchToken,
			parts[k].Type == css.SubstringMatchToken:
			n.Operator = parts[k].Text
			k++
		}
	}
	if n.Operator != "" && k < len(parts) {
		v := parts[k]
		if v.Type == css.StringToken && len(v.Text) >= 2 {
			n.Quote = v.Text[0]
			n.AttrValue = v.Text[1 : len(v.Text)-1]
		} else {
			n.AttrValue = v.Text
		}
		k++
	}
	if k < len(parts) && strings.EqualFold(parts[k].Text, "i") {
		n.Insensitive = true
	}
	return n
}

func (p *parser) parsePseudo(sel *Node) *Node {
	start := p.toks[p.i].Pos
	k := p.i + 1
	if k < len(p.toks) && p.toks[k].Type == css.ColonToken {
		k++
	}
	if k >= len(p.toks) {
		return nil
	}

	tok := p.toks[k]

	// ":--custom" may lex as a custom property name
	if tok.Type == css.CustomPropertyNameToken {
		if k+1 < len(p.toks) && p.toks[k+1].Type == css.LeftParenthesisToken && p.toks[k+1].Pos == tok.End() {
			p.i = k + 2
			name := p.src[start:tok.End()]
			n := &Node{
				Type: TypePseudo, Parent: sel, Value: name, Functional: true,
				Raw: name, SourceIndex: start,
			}
			p.parsePseudoArgs(n)
			return n
		}
		tok.Type = css.IdentToken
	}

	switch tok.Type {
	case css.IdentToken:
		p.i = k + 1
		n := p.leaf(TypePseudo, sel, p.src[start:tok.End()], start)
		return n
	case css.FunctionToken:
		p.i = k + 1
		name := p.src[start : tok.End()-1]
		n := &Node{
			Type: TypePseudo, Parent: sel, Value: name, Functional: true,
			Raw: name, SourceIndex: start,
		}
		p.parsePseudoArgs(n)
		return n
	}
	return nil
}

func (p *parser) parsePseudoArgs(n *Node) {
	name := n.Name()
	argStart := p.pos()

	if opaquePseudos[name] {
		end := p.matchingParen()
		argEnd := len(p.src)
		if end < len(p.toks) {
			argEnd = p.toks[end].Pos
		}

		ofEnd := -1
		if name == "nth-child" || name == "nth-last-child" {
			ofEnd = p.findOf(end)
		}
		if ofEnd < 0 {
			if argEnd > argStart {
				n.Nodes = append(n.Nodes, &Node{
					Type: TypeLiteral, Parent: n, Value: p.src[argStart:argEnd],
					Raw: p.src[argStart:argEnd], SourceIndex: argStart, SourceEndIndex: argEnd,
				})
			}
			p.i = end
		} else {
			litEnd := p.toks[ofEnd].Pos
			n.Nodes = append(n.Nodes, &Node{
				Type: TypeLiteral, Parent: n, Value: p.src[argStart:litEnd],
				Raw: p.src[argStart:litEnd], SourceIndex: argStart, SourceEndIndex: litEnd,
			})
			p.i = ofEnd
			n.Nodes = append(n.Nodes, p.parseList(n, true)...)
		}
	} else {
		n.Nodes = p.parseList(n, true)
	}

	if p.i < len(p.toks) && p.toks[p.i].Type == css.RightParenthesisToken {
		p.i++
		n.SourceEndIndex = p.toks[p.i-1].End()
	} else {
		n.Unclosed = true
		n.SourceEndIndex = len(p.src)
	}
}

// matchingParen returns the index of the ")" closing the current group
func (p *parser) matchingParen() int {
	depth := 0
	for k := p.i; k < len(p.toks); k++ {
		switch {
		case csstoken.Opens(p.toks[k]):
			depth++
		case p.toks[k].Type == css.RightParenthesisToken:
			if depth == 0 {
				return k
			}
			depth--
		}
	}
	return len(p.toks)
}

// findOf returns the index of the first token after "of " in an
// nth-child argument, or -1
func (p *parser) findOf(end int) int {
	for k := p.i; k < end; k++ {
		if p.toks[k].Type == css.IdentToken && strings.EqualFold(p.toks[k].Text, "of") {
			k++
			for k < end && p.toks[k].Type == css.WhitespaceToken {
				k++
			}
			if k < end {
				return k
			}
			return -1
		}
	}
	return -1
}
