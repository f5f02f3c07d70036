package stylesheet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/csslint/internal/csstoken"
)

// ErrUnclosedBlock is recorded on Root.Errors when a block reaches EOF
var ErrUnclosedBlock = errors.New("unclosed block")

// ErrEmptySelector is recorded on Root.Errors for a block with no selector
var ErrEmptySelector = errors.New("empty selector")

// parser maintains context while building the tree
type parser struct {
	src  string
	toks []csstoken.Token
	i    int
	root *Root

	// cursor is the end offset of the raw text already assigned to a node
	cursor int
}

// Parse builds a stylesheet tree from CSS, SCSS or Less source.
// Parsing never fails: malformed input is kept as raw text on the nearest
// node and problems are recorded on Root.Errors.
func Parse(input string) *Root {
	p := &parser{
		src:  input,
		toks: csstoken.Tokenize(input),
		root: NewRoot(input),
	}

	for _, tok := range p.toks {
		if tok.Type == css.CommentToken {
			p.root.Comments = append(p.root.Comments, SourceComment{
				Text: trimCommentDelims(tok.Text),
				Span: Span{Start: tok.Pos, End: tok.End()},
			})
		}
	}

	p.root.span = Span{Start: 0, End: len(input)}
	p.parseBlock(&p.root.containerBase, false)

	sort.SliceStable(p.root.Comments, func(i, j int) bool {
		return p.root.Comments[i].Span.Start < p.root.Comments[j].Span.Start
	})
	return p.root
}

func trimCommentDelims(text string) string {
	text = strings.TrimPrefix(text, "/*")
	return strings.TrimSuffix(text, "*/")
}

func (p *parser) errorf(format string, args ...any) {
	p.root.Errors = append(p.root.Errors, fmt.Errorf(format, args...))
}

func (p *parser) add(parent *containerBase, n Node) {
	n.base().parent = parent.self
	parent.nodes = append(parent.nodes, n)
}

// parseBlock reads statements into c until the closing brace (nested) or EOF.
// It reports whether a closing brace was consumed.
func (p *parser) parseBlock(c *containerBase, nested bool) bool {
	for {
		start := p.cursor

		// Whitespace and stray semicolons belong to the next node's raws
		for p.i < len(p.toks) && (p.toks[p.i].Type == css.WhitespaceToken || p.toks[p.i].Type == css.SemicolonToken) {
			p.i++
		}

		if p.i >= len(p.toks) {
			c.After = p.src[start:]
			p.cursor = len(p.src)
			if nested {
				p.errorf("%w at offset %d", ErrUnclosedBlock, c.span.Start)
			}
			return false
		}

		tok := p.toks[p.i]
		before := p.src[start:tok.Pos]

		switch {
		case tok.Type == css.RightBraceToken:
			if nested {
				c.After = before
				p.i++
				p.cursor = tok.End()
				return true
			}
			// A stray brace at the top level stays in the next node's raws
			p.errorf("unexpected \"}\" at offset %d", tok.Pos)
			p.i++
		case tok.Type == css.CommentToken:
			p.parseComment(c, before)
		case tok.Type == css.AtKeywordToken:
			p.parseAtRule(c, before)
		case tok.IsDelim('/') && p.i+1 < len(p.toks) && p.toks[p.i+1].IsDelim('/') && p.toks[p.i+1].Pos == tok.End():
			p.parseInlineComment(c, before)
		default:
			p.parseStatement(c, before)
		}
	}
}

func (p *parser) parseComment(parent *containerBase, before string) {
	tok := p.toks[p.i]
	cm := &Comment{
		Text:     trimCommentDelims(tok.Text),
		Unclosed: len(tok.Text) < 4 || !strings.HasSuffix(tok.Text, "*/"),
	}
	cm.Before = before
	cm.span = Span{Start: tok.Pos, End: tok.End()}
	p.add(parent, cm)

	p.i++
	p.cursor = tok.End()
}

// parseInlineComment handles "//" comments used by SCSS and Less
func (p *parser) parseInlineComment(parent *containerBase, before string) {
	start := p.toks[p.i].Pos
	end := len(p.src)
	if nl := strings.IndexByte(p.src[start:], '\n'); nl >= 0 {
		end = start + nl
	}

	for p.i < len(p.toks) && p.toks[p.i].Pos < end {
		if e := p.toks[p.i].End(); e > end {
			end = e
		}
		p.i++
	}
	if end > start+2 && p.src[end-1] == '\r' {
		end--
		if p.i > 0 && p.toks[p.i-1].Pos >= end {
			p.i--
		}
	}

	cm := &Comment{Text: p.src[start+2 : end], Inline: true}
	cm.Before = before
	cm.span = Span{Start: start, End: end}
	p.add(parent, cm)
	p.root.Comments = append(p.root.Comments, SourceComment{Text: cm.Text, Span: cm.span, Inline: true})
	p.cursor = end
}

func (p *parser) parseAtRule(parent *containerBase, before string) {
	tok := p.toks[p.i]
	a := &AtRule{Name: tok.Text[1:]}
	a.self = a
	a.Before = before
	a.span.Start = tok.Pos
	p.add(parent, a)

	ps := p.i + 1
	for ps < len(p.toks) && p.toks[ps].Type == css.WhitespaceToken {
		ps++
	}
	end, _ := p.scan(ps, false)
	last, paramsEnd := p.lastSignificant(ps, end)
	if last < 0 {
		paramsEnd = tok.End()
		last = p.i
	} else {
		a.AfterName = p.src[tok.End():p.toks[ps].Pos]
		a.Params = p.src[p.toks[ps].Pos:paramsEnd]
	}

	if end >= len(p.toks) || p.toks[end].Type == css.RightBraceToken {
		// Statement ended without a terminator; trailing raws go to the parent
		p.i = last + 1
		p.cursor = paramsEnd
		a.span.End = paramsEnd
		return
	}

	term := p.toks[end]
	a.Between = p.src[paramsEnd:term.Pos]
	p.i = end + 1
	p.cursor = term.End()

	if term.Type == css.SemicolonToken {
		a.Semicolon = true
		a.span.End = term.End()
		return
	}

	a.HasBlock = true
	a.Unclosed = !p.parseBlock(&a.containerBase, true)
	a.span.End = p.cursor
}

// parseStatement reads a declaration, a rule, or a Less mixin call
func (p *parser) parseStatement(parent *containerBase, before string) {
	from := p.i
	custom := p.isCustomPropertyStart(from)
	end, colon := p.scan(from, custom)

	switch {
	case custom && colon >= 0:
		p.parseDecl(parent, before, from, colon, end)
	case end < len(p.toks) && p.toks[end].Type == css.LeftBraceToken:
		p.parseRule(parent, before, from, end)
	case colon >= 0 && p.looksLikeProperty(from, colon):
		p.parseDecl(parent, before, from, colon, end)
	default:
		p.parseMixin(parent, before, from, end)
	}
}

func (p *parser) parseRule(parent *containerBase, before string, from, end int) {
	start := p.toks[from].Pos
	_, selectorEnd := p.lastSignificant(from, end)
	if selectorEnd < start {
		selectorEnd = start
		p.errorf("%w at offset %d", ErrEmptySelector, start)
	}

	r := &Rule{
		Selector: p.src[start:selectorEnd],
		Between:  p.src[selectorEnd:p.toks[end].Pos],
	}
	r.self = r
	r.Before = before
	r.span.Start = start
	p.add(parent, r)

	p.i = end + 1
	p.cursor = p.toks[end].End()
	r.Unclosed = !p.parseBlock(&r.containerBase, true)
	r.span.End = p.cursor
}

func (p *parser) parseMixin(parent *containerBase, before string, from, end int) {
	start := p.toks[from].Pos
	last, selectorEnd := p.lastSignificant(from, end)

	r := &Rule{Selector: p.src[start:selectorEnd], Mixin: true}
	r.self = r
	r.Before = before
	r.span = Span{Start: start, End: selectorEnd}
	p.add(parent, r)

	if end < len(p.toks) && p.toks[end].Type == css.SemicolonToken {
		r.Between = p.src[selectorEnd:p.toks[end].Pos]
		r.Semicolon = true
		p.i = end + 1
		p.cursor = p.toks[end].End()
		return
	}
	p.i = last + 1
	p.cursor = selectorEnd
}

func (p *parser) parseDecl(parent *containerBase, before string, from, colon, end int) {
	propStart := p.toks[from].Pos
	_, propEnd := p.lastSignificant(from, colon)
	if propEnd < propStart {
		propEnd = propStart
	}

	termPos := len(p.src)
	if end < len(p.toks) {
		termPos = p.toks[end].Pos
	}

	vs := colon + 1
	for vs < end && p.toks[vs].Type == css.WhitespaceToken {
		vs++
	}
	valueStart := termPos
	if vs < end {
		valueStart = p.toks[vs].Pos
	}
	last, valueEnd := p.lastSignificant(vs, end)
	if last < 0 {
		last = vs - 1
		valueEnd = valueStart
	}

	d := &Declaration{
		Prop:    p.src[propStart:propEnd],
		Between: p.src[propEnd:valueStart],
		Value:   p.src[valueStart:valueEnd],
	}
	d.Before = before
	d.span = Span{Start: propStart, End: valueEnd}

	if bang := p.importantStart(vs, last); bang >= 0 {
		_, valueOnlyEnd := p.lastSignificant(vs, bang)
		if valueOnlyEnd < 0 {
			valueOnlyEnd = valueStart
		}
		d.Important = true
		d.Value = p.src[valueStart:valueOnlyEnd]
		d.ImportantRaw = p.src[valueOnlyEnd:valueEnd]
	}
	p.add(parent, d)

	if end < len(p.toks) && p.toks[end].Type == css.SemicolonToken {
		d.After = p.src[valueEnd:termPos]
		d.Semicolon = true
		p.i = end + 1
		p.cursor = p.toks[end].End()
		return
	}
	if valueEnd == valueStart && valueStart == termPos {
		p.i = end
		p.cursor = termPos
		return
	}
	p.i = last + 1
	p.cursor = valueEnd
}

// importantStart returns the index of the "!" token of a trailing
// "!important", or -1 when the value has none.
func (p *parser) importantStart(from, last int) int {
	if last < from || p.toks[last].Type != css.IdentToken || !strings.EqualFold(p.toks[last].Text, "important") {
		return -1
	}
	for k := last - 1; k >= from; k-- {
		if p.toks[k].Type == css.WhitespaceToken {
			continue
		}
		if p.toks[k].IsDelim('!') {
			return k
		}
		return -1
	}
	return -1
}

// scan finds the token that terminates the statement starting at from:
// "{" or "}" outside interpolation, or ";" outside parentheses. With
// allowBraces, "{...}" groups are part of the statement (custom property sets).
// It also returns the index of the first top-level colon.
func (p *parser) scan(from int, allowBraces bool) (end, colon int) {
	depth, braces := 0, 0
	colon = -1
	for k := from; k < len(p.toks); k++ {
		t := p.toks[k]
		switch t.Type {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.ColonToken:
			if depth == 0 && braces == 0 && colon < 0 {
				colon = k
			}
		case css.LeftBraceToken:
			if braces > 0 || p.isInterpolation(k) || (allowBraces && colon >= 0) {
				braces++
				continue
			}
			return k, colon
		case css.RightBraceToken:
			if braces > 0 {
				braces--
				continue
			}
			return k, colon
		case css.SemicolonToken:
			if depth == 0 && braces == 0 {
				return k, colon
			}
		}
	}
	return len(p.toks), colon
}

// isInterpolation reports whether the "{" at k opens "#{", "@{" or "${"
func (p *parser) isInterpolation(k int) bool {
	if k == 0 {
		return false
	}
	prev := p.toks[k-1]
	if prev.End() != p.toks[k].Pos {
		return false
	}
	return prev.IsDelim('#') || prev.IsDelim('@') || prev.IsDelim('$')
}

func (p *parser) isCustomPropertyStart(k int) bool {
	return strings.HasPrefix(p.toks[k].Text, "--")
}

// looksLikeProperty reports whether the tokens before colon can name a property
func (p *parser) looksLikeProperty(from, colon int) bool {
	t := p.toks[from]
	switch t.Type {
	case css.IdentToken, css.CustomPropertyNameToken:
		return true
	case css.DelimToken:
		// IE hacks and preprocessor variables: *zoom, _height, $var, #{$prop}
		if t.IsDelim('*') || t.IsDelim('_') || t.IsDelim('$') {
			return true
		}
		return t.IsDelim('#') && from+1 < colon && p.isInterpolation(from+1)
	}
	return false
}

// lastSignificant returns the index and end offset of the last
// non-whitespace token in [from, to), or -1, -1.
func (p *parser) lastSignificant(from, to int) (int, int) {
	if to > len(p.toks) {
		to = len(p.toks)
	}
	for k := to - 1; k >= from; k-- {
		if p.toks[k].Type != css.WhitespaceToken {
			return k, p.toks[k].End()
		}
	}
	return -1, -1
}
