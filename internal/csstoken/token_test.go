package csstoken

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2/css"
)

func TestTokenizeCoversInput(t *testing.T) {
	inputs := []string{
		"",
		"a { color: red; }",
		".a > .b:not(#c) [d=\"e\" i]",
		"rgba(0, 0, 0, .5) url(x.png)",
		"/* c */ 1px/2px",
		"\"unterminated",
		"#{$var} @{less}",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)

			var b strings.Builder
			pos := 0
			for _, tok := range tokens {
				require.Equal(t, pos, tok.Pos)
				b.WriteString(tok.Text)
				pos = tok.End()
			}
			assert.Equal(t, input, b.String())
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	tokens := Tokenize("a(b) /* c */ > (")
	require.NotEmpty(t, tokens)

	assert.Equal(t, css.FunctionToken, tokens[0].Type)
	assert.True(t, Opens(tokens[0]))
	assert.False(t, IsTrivia(tokens[0]))

	var sawSpace, sawComment, sawDelim, sawParen bool
	for _, tok := range tokens {
		switch {
		case IsSpace(tok):
			sawSpace = true
			assert.True(t, IsTrivia(tok))
		case tok.Type == css.CommentToken:
			sawComment = true
			assert.True(t, IsTrivia(tok))
		case tok.IsDelim('>'):
			sawDelim = true
			assert.False(t, tok.IsDelim('+'))
		case tok.Type == css.LeftParenthesisToken:
			sawParen = true
			assert.True(t, Opens(tok))
		}
	}
	assert.True(t, sawSpace)
	assert.True(t, sawComment)
	assert.True(t, sawDelim)
	assert.True(t, sawParen)
}
