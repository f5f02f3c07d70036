// Package csstoken turns CSS source text into positioned tokens using the
// tdewolff CSS lexer. The stylesheet parser and both sub-parsers share it.
package csstoken

import (
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Token is a lexer token with its byte offset in the tokenized text
type Token struct {
	Type css.TokenType
	Text string
	Pos  int
}

// End returns the offset just past the token
func (t Token) End() int { return t.Pos + len(t.Text) }

// IsDelim reports whether the token is a delimiter with the given character
func (t Token) IsDelim(c byte) bool {
	return t.Type == css.DelimToken && len(t.Text) == 1 && t.Text[0] == c
}

// Tokenize lexes s completely. Tokens cover the input without gaps; when
// the lexer stops early the remaining text becomes a single DelimToken so
// that callers can still account for every byte.
func Tokenize(s string) []Token {
	lexer := css.NewLexer(parse.NewInputString(s))

	var tokens []Token
	pos := 0
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		tokens = append(tokens, Token{Type: tt, Text: string(text), Pos: pos})
		pos += len(text)
	}

	if pos < len(s) {
		tokens = append(tokens, Token{Type: css.DelimToken, Text: s[pos:], Pos: pos})
	}
	return tokens
}

// IsSpace reports whether the token is whitespace
func IsSpace(t Token) bool { return t.Type == css.WhitespaceToken }

// IsTrivia reports whether the token is whitespace or a comment
func IsTrivia(t Token) bool {
	return t.Type == css.WhitespaceToken || t.Type == css.CommentToken
}

// Opens reports whether the token opens a parenthesised group
func Opens(t Token) bool {
	return t.Type == css.FunctionToken || t.Type == css.LeftParenthesisToken
}
