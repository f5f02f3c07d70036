package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

type recorder struct {
	warnings []rule.Warning
}

func (r *recorder) Warn(w rule.Warning) { r.warnings = append(r.warnings, w) }

// run lints src with one rule and returns the parsed root and its warnings
func run(t *testing.T, rl *rule.Rule, primary any, secondary map[string]any, src string) (*stylesheet.Root, []rule.Warning) {
	t.Helper()
	root := stylesheet.Parse(src)
	rec := &recorder{}
	rl.Factory(primary, secondary)(root, rec)
	return root, rec.warnings
}

// position returns the 1-based line and column a warning starts at
func position(root *stylesheet.Root, w rule.Warning) (int, int) {
	return root.Position(w.Node.Span().Start + w.Index)
}

// applyFixes runs every fix once in report order and returns the new source
func applyFixes(root *stylesheet.Root, warnings []rule.Warning) string {
	for _, w := range warnings {
		if w.Fix != nil {
			w.Fix.Apply()
		}
	}
	return root.String()
}

func messages(warnings []rule.Warning) []string {
	var out []string
	for _, w := range warnings {
		out = append(out, w.Message)
	}
	return out
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	assert.Len(t, reg.Names(), len(All()))
	for _, rl := range reg.Rules() {
		assert.NotEmpty(t, rl.Meta.URL, rl.Name)
		assert.NotEmpty(t, rl.Messages, rl.Name)
	}
	rl, ok := reg.Get(nameRedundantLonghand)
	require.True(t, ok)
	assert.True(t, rl.Meta.Fixable)
}

func TestRedundantLonghandTransition(t *testing.T) {
	src := "a { transition-delay: 1s; transition-duration: 2s; transition-timing-function: ease; transition-property: opacity; }"
	root, warnings := run(t, DeclarationBlockNoRedundantLonghandProperties, true, nil, src)

	require.Len(t, warnings, 4)
	for _, w := range warnings {
		assert.Equal(t, `Expected shorthand property "transition"`, w.Message)
		assert.Equal(t, rule.KindViolation, w.Kind)
		assert.Same(t, warnings[0].Fix, w.Fix)
		assert.Equal(t, 0, w.Index)
		assert.Equal(t, len(w.Node.(*stylesheet.Declaration).Prop), w.EndIndex)
	}

	line, col := position(root, warnings[1])
	assert.Equal(t, 1, line)
	assert.Equal(t, 27, col)

	fixed := applyFixes(root, warnings)
	assert.Equal(t, "a { transition: opacity 2s ease 1s; }", fixed)

	// A second pass over the fixed output finds nothing
	_, again := run(t, DeclarationBlockNoRedundantLonghandProperties, true, nil, fixed)
	assert.Empty(t, again)
}

func TestRedundantLonghand(t *testing.T) {
	tests := []struct {
		name      string
		secondary map[string]any
		src       string
		count     int
		fixable   bool
		fixed     string
	}{
		{
			name:    "margin",
			src:     "a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
			count:   4,
			fixable: true,
			fixed:   "a { margin: 1px 2px 3px 4px; }",
		},
		{
			name:  "grid-template with repeat has no fix",
			src:   "a { grid-template-areas: \"a\"; grid-template-rows: 1fr; grid-template-columns: repeat(2, 1fr); }",
			count: 3,
		},
		{
			name: "nested blocks do not share state",
			src:  "a { margin-top: 1px; margin-right: 1px; b { margin-bottom: 1px; margin-left: 1px; } }",
		},
		{
			name:    "at-rule blocks are declaration blocks",
			src:     "@page { margin-top: 1px; margin-right: 1px; margin-bottom: 1px; margin-left: 1px; }",
			count:   4,
			fixable: true,
			fixed:   "@page { margin: 1px 1px 1px 1px; }",
		},
		{
			name:      "ignored shorthand pattern",
			secondary: map[string]any{"ignoreShorthands": []any{"/^mar/"}},
			src:       "a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
		},
		{
			name:      "ignored longhands shrink the required set",
			secondary: map[string]any{"ignoreLonghands": []any{"transition-delay", "transition-timing-function"}},
			src:       "a { transition-property: opacity, color; transition-duration: 1s; }",
			count:     2,
		},
		{
			name:      "ignored longhand present in the block is not reset",
			secondary: map[string]any{"ignoreLonghands": []any{"transition-delay"}},
			src:       "a { transition-delay: 1s; transition-property: opacity; transition-duration: 2s; transition-timing-function: ease; }",
			count:     3,
		},
		{
			name:  "mixed importance",
			src:   "a { margin-top: 1px !important; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
			count: 0,
		},
		{
			name: "preprocessor variables are skipped",
			src:  "a { $margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, warnings := run(t, DeclarationBlockNoRedundantLonghandProperties, true, tt.secondary, tt.src)
			require.Len(t, warnings, tt.count)
			if tt.count == 0 {
				return
			}
			if !tt.fixable {
				for _, w := range warnings {
					assert.Nil(t, w.Fix)
				}
				assert.Equal(t, tt.src, applyFixes(root, warnings))
				return
			}
			assert.Equal(t, tt.fixed, applyFixes(root, warnings))
		})
	}
}

func TestRedundantLonghandInvalidOptions(t *testing.T) {
	_, warnings := run(t, DeclarationBlockNoRedundantLonghandProperties, true,
		map[string]any{"ignoreShorthands": 5, "bogus": true},
		"a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }")

	require.Len(t, warnings, 1)
	assert.Equal(t, rule.KindInvalidOption, warnings[0].Kind)
	assert.Nil(t, warnings[0].Node)
}

func TestSelectorMaxClass(t *testing.T) {
	root, warnings := run(t, SelectorMaxClass, 2, nil, ".ab.cd.ef {} .ab.cd {}")
	require.Len(t, warnings, 1)
	assert.Equal(t, `Expected ".ab.cd.ef" to have no more than 2 classes`, warnings[0].Message)
	assert.Equal(t, 0, warnings[0].Index)
	assert.Equal(t, 9, warnings[0].EndIndex)

	line, col := position(root, warnings[0])
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	_, warnings = run(t, SelectorMaxClass, 1, nil, ".a.b {}")
	assert.Equal(t, []string{`Expected ".a.b" to have no more than 1 class`}, messages(warnings))
}

func TestSelectorMaxAttribute(t *testing.T) {
	src := `a[rel="external"] {}`
	_, warnings := run(t, SelectorMaxAttribute, 0, nil, src)
	require.Len(t, warnings, 1)
	assert.Equal(t, `a[rel="external"]`, src[warnings[0].Index:warnings[0].EndIndex])

	_, warnings = run(t, SelectorMaxAttribute, 1,
		map[string]any{"ignoreAttributes": []any{"/^data-/", "disabled"}},
		"[data-a][data-b][disabled][rel] {}")
	assert.Empty(t, warnings)
}

func TestSelectorMaxID(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		secondary map[string]any
		src       string
		want      []string
	}{
		{
			name: "interpolation is skipped",
			src:  ".foo #{$interpolation} {}",
		},
		{
			name: "less mixin definitions are skipped",
			src:  ".mixin(@a: 1) { color: red; }",
		},
		{
			name: "logical combination",
			src:  ":not(#foo) {}",
			want: []string{`Expected ":not(#foo)" to have no more than 0 ID selectors`},
		},
		{
			name:      "ignored context functional pseudo-classes",
			secondary: map[string]any{"ignoreContextFunctionalPseudoClasses": []any{":not", "/^:(h|H)as$/"}},
			src:       "a:not(#foo) {} a:has(#foo) {} a:matches(#foo) {}",
			want:      []string{`Expected "a:matches(#foo)" to have no more than 0 ID selectors`},
		},
		{
			name:      "checked context functional pseudo-classes",
			limit:     2,
			secondary: map[string]any{"checkContextFunctionalPseudoClasses": []any{":not"}, "ignoreContextFunctionalPseudoClasses": []any{":not"}},
			src:       "a:not(#foo #bar #baz) {}",
			want:      []string{`Expected "a:not(#foo #bar #baz)" to have no more than 2 ID selectors`},
		},
		{
			name:  "nested rules are independent",
			limit: 2,
			src:   "#foo #bar { #baz { #quux {} } }",
		},
		{
			name:      "nested rules resolved on request",
			limit:     2,
			secondary: map[string]any{"resolveNestedSelectors": true},
			src:       "#foo #bar { #baz { #quux {} } }",
			want: []string{
				`Expected "#baz" to have no more than 2 ID selectors`,
				`Expected "#quux" to have no more than 2 ID selectors`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warnings := run(t, SelectorMaxID, tt.limit, tt.secondary, tt.src)
			assert.Equal(t, tt.want, messages(warnings))
		})
	}
}

func TestSelectorMaxIDPositions(t *testing.T) {
	root, warnings := run(t, SelectorMaxID, 0, nil, "@include test { #foo {} }")
	require.Len(t, warnings, 1)
	line, col := position(root, warnings[0])
	assert.Equal(t, 1, line)
	assert.Equal(t, 17, col)

	src := "/* a comment */\n#foo, /* a comment */\n#bar,\n/* a comment */\n#foo {}"
	root, warnings = run(t, SelectorMaxID, 0, nil, src)
	require.Len(t, warnings, 3)

	var got [][2]int
	for _, w := range warnings {
		l, c := position(root, w)
		got = append(got, [2]int{l, c})
	}
	assert.Equal(t, [][2]int{{2, 1}, {3, 1}, {5, 1}}, got)
}

func TestSelectorMaxType(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		secondary map[string]any
		src       string
		count     int
	}{
		{name: "above limit", limit: 2, src: "ul li a {}", count: 1},
		{name: "ignore descendant", limit: 1, secondary: map[string]any{"ignore": "descendant"}, src: "ul li a {}"},
		{name: "ignore child", limit: 1, secondary: map[string]any{"ignore": []any{"child"}}, src: "ul > li {}"},
		{name: "ignore compounded", limit: 1, secondary: map[string]any{"ignore": []any{"compounded"}}, src: "div.foo span {}"},
		{name: "ignore custom elements", limit: 0, secondary: map[string]any{"ignore": []any{"custom-elements"}}, src: "my-element {}"},
		{name: "ignore types", limit: 0, secondary: map[string]any{"ignoreTypes": []any{"/^fo/"}}, src: "foo {}"},
		{name: "keyframes", limit: 0, src: "@keyframes x { from {} 50% {} to {} }"},
		{name: "universal is not a type", limit: 0, src: "* {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warnings := run(t, SelectorMaxType, tt.limit, tt.secondary, tt.src)
			assert.Len(t, warnings, tt.count)
		})
	}
}

func TestSelectorTypeNoUnknown(t *testing.T) {
	tests := []struct {
		name      string
		secondary map[string]any
		src       string
		want      []string
	}{
		{name: "known elements", src: "div, clipPath, mfrac, SPAN {}"},
		{name: "unknown element", src: "unknown {}", want: []string{"unknown"}},
		{name: "svg names are case sensitive", src: "clippath {}", want: []string{"clippath"}},
		{name: "inside a pseudo argument", src: "a:not(foo) {}", want: []string{"foo"}},
		{name: "nth arguments are not types", src: "li:nth-child(2n+1) {}"},
		{name: "custom element", src: "my-element {}", want: []string{"my-element"}},
		{
			name:      "ignored custom element",
			secondary: map[string]any{"ignore": []any{"custom-elements"}},
			src:       "my-element {}",
		},
		{
			name:      "ignored namespace",
			secondary: map[string]any{"ignoreNamespaces": []any{"ns"}},
			src:       "ns|unknown {}",
		},
		{
			name:      "default namespace",
			secondary: map[string]any{"ignore": []any{"default-namespace"}},
			src:       "unknown {}",
		},
		{name: "keyframe selectors", src: "@keyframes x { from {} to {} }"},
		{name: "scss placeholder", src: "%placeholder {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warnings := run(t, SelectorTypeNoUnknown, true, tt.secondary, tt.src)
			var got []string
			for _, w := range warnings {
				text := rule.NodeText(w.Node)
				got = append(got, text[w.Index:w.EndIndex])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectorTypeNoUnknownNamespacedIndex(t *testing.T) {
	_, warnings := run(t, SelectorTypeNoUnknown, true, nil, "ns|unknown {}")
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Index)
	assert.Equal(t, 10, warnings[0].EndIndex)
}

func TestColorFunctionAliasNotation(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		src     string
		want    []string
		fixed   string
	}{
		{
			name:    "without alpha",
			primary: "without-alpha",
			src:     "a { color: rgba(0, 0, 0, .5); }",
			want:    []string{`Expected "rgba" to be "rgb"`},
			fixed:   "a { color: rgb(0, 0, 0, .5); }",
		},
		{
			name:    "with alpha keeps case",
			primary: "with-alpha",
			src:     "a { color: hsl(1, 2%, 3%); background: RGB(1 2 3) }",
			want:    []string{`Expected "hsl" to be "hsla"`, `Expected "RGB" to be "RGBa"`},
			fixed:   "a { color: hsla(1, 2%, 3%); background: RGBa(1 2 3) }",
		},
		{
			name:    "two functions in one value",
			primary: "without-alpha",
			src:     "a { background: linear-gradient(rgba(0, 0, 0, 0), hsla(0, 0%, 0%, 1)) !important; }",
			want:    []string{`Expected "rgba" to be "rgb"`, `Expected "hsla" to be "hsl"`},
			fixed:   "a { background: linear-gradient(rgb(0, 0, 0, 0), hsl(0, 0%, 0%, 1)) !important; }",
		},
		{
			name:    "scss variables are skipped",
			primary: "without-alpha",
			src:     "a { color: rgba($c, .5); }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, warnings := run(t, ColorFunctionAliasNotation, tt.primary, nil, tt.src)
			assert.Equal(t, tt.want, messages(warnings))
			if tt.fixed != "" {
				assert.Equal(t, tt.fixed, applyFixes(root, warnings))
			}
		})
	}
}

func TestColorFunctionAliasNotationPosition(t *testing.T) {
	root, warnings := run(t, ColorFunctionAliasNotation, "without-alpha", nil, "a { color: rgba(0, 0, 0, .5); }")
	require.Len(t, warnings, 1)
	line, col := position(root, warnings[0])
	assert.Equal(t, 1, line)
	assert.Equal(t, 12, col)
}

func TestColorFunctionAliasNotationInvalidOption(t *testing.T) {
	_, warnings := run(t, ColorFunctionAliasNotation, "always", nil, "a { color: rgba(0, 0, 0, .5); }")
	require.Len(t, warnings, 1)
	assert.Equal(t, rule.KindInvalidOption, warnings[0].Kind)
}
