package stylesheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "simple rule", input: "a { color: red; }"},
		{name: "no trailing semicolon", input: "a{color:red}"},
		{name: "important", input: "a { color: red !important; margin: 0 ! IMPORTANT }"},
		{name: "comments", input: "/* head */\na { /* inner */ color: red; }\n/* tail */"},
		{name: "media", input: "@media (min-width: 10px) {\n  a { top: 0 }\n}\n"},
		{name: "import", input: "@import url(foo.css);\n@charset \"utf-8\";"},
		{name: "nested", input: ".a { .b { color: red; } &:hover { color: blue } }"},
		{name: "scss interpolation", input: ".n-#{$n} { content: \"n: #{1 + 1}\"; }"},
		{name: "less interpolation", input: ".n-@{n} { color: red; }"},
		{name: "less mixin call", input: ".a { .mixin(); .b(@n + 1) }"},
		{name: "less guard", input: ".for(@n: 1) when (@n <= 10) { .n-@{n} { top: 0 } .for(@n + 1); }"},
		{name: "custom property set", input: ":root { --foo: { color: red; }; --bar: 1px }"},
		{name: "inline comment", input: "a {\n  // note\n  color: red; // trailing\n}\n"},
		{name: "unclosed block", input: "a { color: red;"},
		{name: "stray brace", input: "} a { top: 0 }"},
		{name: "stray semicolons", input: "a { ;; color: red;; }"},
		{name: "at-rule without terminator", input: "a { @include foo }"},
		{name: "empty value", input: "a { color: ; top:}"},
		{name: "crlf", input: "a {\r\n  color: red;\r\n}\r\n"},
		{name: "lone brace", input: "{"},
		{name: "empty selector", input: "a{} {color:red}"},
		{name: "stray brace then block", input: "}{"},
		{name: "empty selector between rules", input: "a { color: red; }\n{ color: blue; }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.input)
			require.Equal(t, tt.input, root.String())
		})
	}
}

func TestParseDeclaration(t *testing.T) {
	root := Parse("a { margin-top : 1px  !important ; }")
	rules := root.Children()
	require.Len(t, rules, 1)

	rule, ok := rules[0].(*Rule)
	require.True(t, ok)
	assert.Equal(t, "a", rule.Selector)

	decls := Decls(rule)
	require.Len(t, decls, 1)
	d := decls[0]
	assert.Equal(t, "margin-top", d.Prop)
	assert.Equal(t, " : ", d.Between)
	assert.Equal(t, "1px", d.Value)
	assert.True(t, d.Important)
	assert.Equal(t, "  !important", d.ImportantRaw)
	assert.Equal(t, " ", d.After)
	assert.True(t, d.Semicolon)
	assert.Equal(t, 4, d.Span().Start)
	assert.Equal(t, len("margin-top : "), d.ValueIndex())
}

func TestParseStatementKinds(t *testing.T) {
	root := Parse(".a { color: red; .mixin(); &:hover { top: 0 } font: { family: x } @include b; }")
	rule := root.Children()[0].(*Rule)

	var kinds []string
	for _, n := range rule.Children() {
		switch v := n.(type) {
		case *Declaration:
			kinds = append(kinds, "decl:"+v.Prop)
		case *Rule:
			if v.Mixin {
				kinds = append(kinds, "mixin:"+v.Selector)
			} else {
				kinds = append(kinds, "rule:"+v.Selector)
			}
		case *AtRule:
			kinds = append(kinds, "at:"+v.Name)
		}
	}

	assert.Equal(t, []string{
		"decl:color",
		"mixin:.mixin()",
		"rule:&:hover",
		"rule:font:",
		"at:include",
	}, kinds)
}

func TestParseCustomPropertySet(t *testing.T) {
	root := Parse(":root { --set: { color: red; }; }")
	decls := Decls(root.Children()[0].(*Rule))
	require.Len(t, decls, 1)
	assert.Equal(t, "--set", decls[0].Prop)
	assert.Equal(t, "{ color: red; }", decls[0].Value)
}

func TestParseCollectsAllComments(t *testing.T) {
	input := "/* a */ .x, /* b */ .y { color: /* c */ red; }\n// d\n"
	root := Parse(input)

	var texts []string
	for _, c := range root.Comments {
		texts = append(texts, c.Text)
		assert.Equal(t, c.Span.End-c.Span.Start, len(input[c.Span.Start:c.Span.End]))
	}
	assert.Equal(t, []string{" a ", " b ", " c ", " d"}, texts)
}

func TestParseUnclosedBlockRecordsError(t *testing.T) {
	root := Parse("a { color: red")
	require.Len(t, root.Errors, 1)
	assert.ErrorIs(t, root.Errors[0], ErrUnclosedBlock)
	assert.True(t, root.Children()[0].(*Rule).Unclosed)
}

func TestParseEmptySelector(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		rules  int
		errors int
	}{
		{name: "lone brace", input: "{", rules: 1, errors: 2},
		{name: "after a rule", input: "a{} {color:red}", rules: 2, errors: 1},
		{name: "after a stray brace", input: "}{", rules: 1, errors: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Parse(tt.input)
			require.Len(t, root.Children(), tt.rules)
			last, ok := root.Children()[tt.rules-1].(*Rule)
			require.True(t, ok)
			assert.Equal(t, "", last.Selector)
			assert.Len(t, root.Errors, tt.errors)

			var empty int
			for _, err := range root.Errors {
				if errors.Is(err, ErrEmptySelector) {
					empty++
				}
			}
			assert.Equal(t, 1, empty)
		})
	}
}

func TestPosition(t *testing.T) {
	root := Parse("a {\n  color: red;\n}")

	line, col := root.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = root.Position(6)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)

	assert.Equal(t, "  color: red;", root.Line(2))
	assert.Equal(t, "}", root.Line(3))
	assert.Equal(t, "", root.Line(9))
}
