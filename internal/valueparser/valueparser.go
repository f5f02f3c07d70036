// Package valueparser parses a single declaration value into a small node
// tree of words, strings, functions and dividers.
//
// Parsing never fails. Text the parser cannot make sense of (a stray
// closing parenthesis, a broken url) is kept as a Literal node holding the
// rest of the input, so walks degrade to "no match" instead of crashing.
package valueparser

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/csslint/internal/csstoken"
)

// Type identifies a value node variant
type Type int

const (
	Word Type = iota
	String
	Function
	Space
	Div
	Comment
	Literal
)

func (t Type) String() string {
	switch t {
	case Word:
		return "word"
	case String:
		return "string"
	case Function:
		return "function"
	case Space:
		return "space"
	case Div:
		return "div"
	case Comment:
		return "comment"
	case Literal:
		return "literal"
	}
	return "unknown"
}

// Node is one element of a parsed value.
//
// Value holds the word text, the string contents without quotes, the
// function name, the divider character (",", "/" or ":"), the whitespace
// of a Space, or the comment text without delimiters.
type Node struct {
	ID    int
	Type  Type
	Value string
	Quote byte

	// Before and After hold whitespace around a divider, or inside the
	// parentheses of a function
	Before string
	After  string

	Nodes    []*Node
	Unclosed bool

	SourceIndex    int
	SourceEndIndex int
}

// Root is a parsed value. It hands out node IDs, so nodes built for
// replacement should be created through it.
type Root struct {
	Nodes  []*Node
	nextID int
}

// NewNode creates a node with a fresh ID from the root's arena
func (r *Root) NewNode(t Type, value string) *Node {
	r.nextID++
	return &Node{ID: r.nextID, Type: t, Value: value}
}

func (r *Root) assignIDs(nodes []*Node) {
	for _, n := range nodes {
		if n.ID == 0 {
			r.nextID++
			n.ID = r.nextID
		}
		r.assignIDs(n.Nodes)
	}
}

// Parse tokenizes a declaration value
func Parse(value string) *Root {
	p := &parser{src: value, toks: csstoken.Tokenize(value)}
	root := &Root{}
	root.Nodes = p.parseList(false)
	root.assignIDs(root.Nodes)
	return root
}

type parser struct {
	src  string
	toks []csstoken.Token
	i    int
}

// parseList reads nodes until EOF or, inside a function, the closing
// parenthesis (left unconsumed).
func (p *parser) parseList(inFunction bool) []*Node {
	var nodes []*Node
	for p.i < len(p.toks) {
		tok := p.toks[p.i]

		switch {
		case tok.Type == css.RightParenthesisToken:
			if inFunction {
				return foldDividers(nodes)
			}
			// Stray ")" turns the remainder into an opaque literal
			nodes = append(nodes, &Node{
				Type:           Literal,
				Value:          p.src[tok.Pos:],
				SourceIndex:    tok.Pos,
				SourceEndIndex: len(p.src),
			})
			p.i = len(p.toks)
		case tok.Type == css.WhitespaceToken:
			nodes = append(nodes, p.leaf(Space, tok.Text, tok))
		case tok.Type == css.CommaToken, tok.Type == css.ColonToken, tok.IsDelim('/'):
			nodes = append(nodes, p.leaf(Div, tok.Text, tok))
		case tok.Type == css.CommentToken:
			n := p.leaf(Comment, strings.TrimSuffix(strings.TrimPrefix(tok.Text, "/*"), "*/"), tok)
			n.Unclosed = !strings.HasSuffix(tok.Text, "*/") || len(tok.Text) < 4
			nodes = append(nodes, n)
		case tok.Type == css.StringToken, tok.Type == css.BadStringToken:
			nodes = append(nodes, p.parseString(tok))
		case tok.Type == css.URLToken:
			nodes = append(nodes, p.parseURL(tok))
		case tok.Type == css.BadURLToken:
			nodes = append(nodes, p.leaf(Literal, tok.Text, tok))
		case tok.Type == css.FunctionToken, tok.Type == css.LeftParenthesisToken:
			nodes = append(nodes, p.parseFunction(tok))
		default:
			nodes = append(nodes, p.parseWord())
		}
	}
	return foldDividers(nodes)
}

func (p *parser) leaf(t Type, value string, tok csstoken.Token) *Node {
	p.i++
	return &Node{Type: t, Value: value, SourceIndex: tok.Pos, SourceEndIndex: tok.End()}
}

// parseWord merges adjacent tokens that are not structural into one word,
// so "#{$x}", "$var" and "1px+2px" stay whole.
func (p *parser) parseWord() *Node {
	start := p.toks[p.i].Pos
	end := start
	braces := 0
	for p.i < len(p.toks) {
		tok := p.toks[p.i]
		if braces == 0 && isWordBoundary(tok) {
			break
		}
		switch tok.Type {
		case css.LeftBraceToken:
			braces++
		case css.RightBraceToken:
			if braces > 0 {
				braces--
			}
		}
		end = tok.End()
		p.i++
	}
	return &Node{Type: Word, Value: p.src[start:end], SourceIndex: start, SourceEndIndex: end}
}

func isWordBoundary(tok csstoken.Token) bool {
	switch tok.Type {
	case css.WhitespaceToken, css.CommaToken, css.ColonToken, css.CommentToken,
		css.StringToken, css.BadStringToken, css.URLToken, css.BadURLToken,
		css.FunctionToken, css.LeftParenthesisToken, css.RightParenthesisToken:
		return true
	}
	return tok.IsDelim('/')
}

func (p *parser) parseString(tok csstoken.Token) *Node {
	n := p.leaf(String, "", tok)
	n.Quote = tok.Text[0]
	inner := tok.Text[1:]
	if len(inner) > 0 && inner[len(inner)-1] == n.Quote && !endsEscaped(inner[:len(inner)-1]) {
		inner = inner[:len(inner)-1]
	} else {
		n.Unclosed = true
	}
	n.Value = inner
	return n
}

func endsEscaped(s string) bool {
	backslashes := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// parseURL splits a url(...) token into a function holding one word or string
func (p *parser) parseURL(tok csstoken.Token) *Node {
	open := strings.IndexByte(tok.Text, '(')
	fn := p.leaf(Function, tok.Text[:open], tok)

	body := tok.Text[open+1:]
	if strings.HasSuffix(body, ")") {
		body = body[:len(body)-1]
	} else {
		fn.Unclosed = true
	}

	trimmed := strings.TrimLeft(body, " \t\n\r\f")
	fn.Before = body[:len(body)-len(trimmed)]
	inner := strings.TrimRight(trimmed, " \t\n\r\f")
	fn.After = trimmed[len(inner):]

	if inner == "" {
		return fn
	}

	innerPos := tok.Pos + open + 1 + len(fn.Before)
	child := &Node{Type: Word, Value: inner, SourceIndex: innerPos, SourceEndIndex: innerPos + len(inner)}
	if q := inner[0]; q == '"' || q == '\'' {
		child.Type = String
		child.Quote = q
		if len(inner) > 1 && inner[len(inner)-1] == q {
			child.Value = inner[1 : len(inner)-1]
		} else {
			child.Value = inner[1:]
			child.Unclosed = true
		}
	}
	fn.Nodes = []*Node{child}
	return fn
}

func (p *parser) parseFunction(tok csstoken.Token) *Node {
	fn := p.leaf(Function, strings.TrimSuffix(tok.Text, "("), tok)

	children := p.parseList(true)
	if p.i < len(p.toks) && p.toks[p.i].Type == css.RightParenthesisToken {
		fn.SourceEndIndex = p.toks[p.i].End()
		p.i++
	} else {
		fn.Unclosed = true
		fn.SourceEndIndex = len(p.src)
	}

	// Whitespace just inside the parentheses belongs to the function
	if len(children) > 0 && children[0].Type == Space {
		fn.Before = children[0].Value
		children = children[1:]
	}
	if len(children) > 0 && children[len(children)-1].Type == Space {
		fn.After = children[len(children)-1].Value
		children = children[:len(children)-1]
	}
	fn.Nodes = children
	return fn
}

// foldDividers moves whitespace around "," "/" ":" into the divider's raws
func foldDividers(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.Type != Div {
			out = append(out, n)
			continue
		}
		if len(out) > 0 && out[len(out)-1].Type == Space {
			sp := out[len(out)-1]
			n.Before = sp.Value
			out = out[:len(out)-1]
		}
		if i+1 < len(nodes) && nodes[i+1].Type == Space {
			n.After = nodes[i+1].Value
			i++
		}
		out = append(out, n)
	}
	return out
}
