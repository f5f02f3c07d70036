package shorthand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/csslint/internal/stylesheet"
)

// collect feeds every declaration of the first rule to a fresh block
func collect(t *testing.T, e *Engine, src string) (*stylesheet.Root, []Candidate) {
	t.Helper()
	root := stylesheet.Parse(src)
	require.NotEmpty(t, root.Children())
	rule, ok := root.Children()[0].(*stylesheet.Rule)
	require.True(t, ok)

	block := e.NewBlock()
	var found []Candidate
	for _, d := range stylesheet.Decls(rule) {
		found = append(found, block.Add(d)...)
	}
	return root, found
}

func TestResolveShorthands(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		src       string
		shorthand string
		value     string
		resolved  bool
	}{
		{
			name:      "transition",
			src:       "a { transition-delay: 1s; transition-duration: 2s; transition-timing-function: ease; transition-property: opacity; }",
			shorthand: "transition",
			value:     "opacity 2s ease 1s",
			resolved:  true,
		},
		{
			name:      "transition cycles shorter lists",
			src:       "a { transition-property: opacity, color, top; transition-duration: 1s, 2s; transition-timing-function: ease; transition-delay: 0s; }",
			shorthand: "transition",
			value:     "opacity 1s ease 0s, color 2s ease 0s, top 1s ease 0s",
			resolved:  true,
		},
		{
			name: "transition with ignored longhands has no value",
			cfg: Config{IgnoreLonghands: []string{
				"transition-delay", "transition-timing-function",
			}},
			src:       "a { transition-property: opacity, color; transition-duration: 1s; }",
			shorthand: "transition",
			resolved:  false,
		},
		{
			name:      "transition keeps function commas",
			src:       "a { transition-property: opacity, color; transition-duration: 1s, 2s; transition-timing-function: cubic-bezier(0, 0, 1, 1); transition-delay: 0s; }",
			shorthand: "transition",
			value:     "opacity 1s cubic-bezier(0, 0, 1, 1) 0s, color 2s cubic-bezier(0, 0, 1, 1) 0s",
			resolved:  true,
		},
		{
			name:      "prefixed transition",
			src:       "a { -webkit-transition-delay: 1s; -webkit-transition-duration: 2s; -webkit-transition-timing-function: ease; -webkit-transition-property: opacity; }",
			shorthand: "-webkit-transition",
			value:     "opacity 2s ease 1s",
			resolved:  true,
		},
		{
			name:      "default joins in canonical order",
			src:       "a { margin-left: 4px; margin-top: 1px; margin-bottom: 3px; margin-right: 2px; }",
			shorthand: "margin",
			value:     "1px 2px 3px 4px",
			resolved:  true,
		},
		{
			name:      "grid-template",
			src:       "a { grid-template-areas: \"a b\" \"c d\"; grid-template-rows: 10px 20px; grid-template-columns: 1fr 2fr; }",
			shorthand: "grid-template",
			value:     "\"a b\" 10px \"c d\" 20px / 1fr 2fr",
			resolved:  true,
		},
		{
			name:      "grid-template with repeat has no fix",
			src:       "a { grid-template-areas: \"a b\" \"c d\"; grid-template-rows: 10px 20px; grid-template-columns: repeat(2, 1fr); }",
			shorthand: "grid-template",
			resolved:  false,
		},
		{
			name:      "grid-template row count mismatch",
			src:       "a { grid-template-areas: \"a b\"; grid-template-rows: 10px 20px; grid-template-columns: 1fr; }",
			shorthand: "grid-template",
			resolved:  false,
		},
		{
			name:      "grid-column",
			src:       "a { grid-column-start: 1; grid-column-end: span 2; }",
			shorthand: "grid-column",
			value:     "1 / span 2",
			resolved:  true,
		},
		{
			name:      "font-synthesis",
			src:       "a { font-synthesis-weight: none; font-synthesis-style: auto; font-synthesis-small-caps: auto; }",
			shorthand: "font-synthesis",
			value:     "style small-caps",
			resolved:  true,
		},
		{
			name:      "font-synthesis all none",
			src:       "a { font-synthesis-weight: none; font-synthesis-style: none; font-synthesis-small-caps: none; }",
			shorthand: "font-synthesis",
			value:     "none",
			resolved:  true,
		},
		{
			name:      "font-synthesis unknown keyword",
			src:       "a { font-synthesis-weight: none; font-synthesis-style: maybe; font-synthesis-small-caps: none; }",
			shorthand: "font-synthesis",
			resolved:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found := collect(t, NewEngine(tt.cfg), tt.src)
			require.Len(t, found, 1)
			c := found[0]
			assert.Equal(t, tt.shorthand, c.Shorthand)
			assert.Equal(t, tt.resolved, c.Resolved)
			if tt.resolved {
				assert.Equal(t, tt.value, c.Value)
			}
		})
	}
}

func TestCandidateCarriesEveryLonghand(t *testing.T) {
	_, found := collect(t, NewEngine(Config{}),
		"a { transition-delay: 1s; transition-duration: 2s; transition-timing-function: ease; transition-property: opacity; }")
	require.Len(t, found, 1)

	var props []string
	for _, d := range found[0].Declarations {
		props = append(props, d.Prop)
	}
	assert.Equal(t, []string{
		"transition-delay", "transition-duration", "transition-timing-function", "transition-property",
	}, props)
}

func TestNoCandidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		src  string
	}{
		{
			name: "mixed importance",
			src:  "a { transition-delay: 1s; transition-duration: 2s !important; transition-timing-function: ease; transition-property: opacity; }",
		},
		{
			name: "incomplete set",
			src:  "a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; }",
		},
		{
			name: "basic keyword",
			src:  "a { margin-top: inherit; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
		},
		{
			name: "duplicate longhand breaks the exact set",
			src:  "a { margin-top: 1px; margin-top: 2px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
		},
		{
			name: "ignored shorthand",
			cfg:  Config{IgnoreShorthand: func(s string) bool { return s == "margin" }},
			src:  "a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }",
		},
		{
			name: "prefix mismatch",
			src:  "a { -webkit-transition-delay: 1s; transition-duration: 2s; transition-timing-function: ease; transition-property: opacity; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found := collect(t, NewEngine(tt.cfg), tt.src)
			assert.Empty(t, found)
		})
	}
}

func TestAllImportantStillTriggers(t *testing.T) {
	_, found := collect(t, NewEngine(Config{}),
		"a { margin-top: 1px !important; margin-right: 2px !important; margin-bottom: 3px !important; margin-left: 4px !important; }")
	require.Len(t, found, 1)
	assert.Equal(t, "1px 2px 3px 4px", found[0].Value)
}

func TestConflictPurge(t *testing.T) {
	_, found := collect(t, NewEngine(Config{}), `a {
  border-top-width: 1px;
  border-top-style: solid;
  border-top-color: red;
  border-right-width: 1px;
  border-bottom-width: 1px;
  border-left-width: 1px;
}`)
	require.Len(t, found, 1)
	assert.Equal(t, "border-top", found[0].Shorthand)
	assert.Equal(t, "1px solid red", found[0].Value)
}

func TestApply(t *testing.T) {
	root, found := collect(t, NewEngine(Config{}),
		"a { margin-top: 1px; margin-right: 2px; margin-bottom: 3px; margin-left: 4px; }")
	require.Len(t, found, 1)

	found[0].Apply()
	assert.Equal(t, "a { margin: 1px 2px 3px 4px; }", root.String())

	// The first declaration is detached now, so a second call is a no-op
	found[0].Apply()
	assert.Equal(t, "a { margin: 1px 2px 3px 4px; }", root.String())
}

func TestApplyUnresolvedDoesNothing(t *testing.T) {
	src := "a { grid-template-areas: \"a\"; grid-template-rows: 1fr; grid-template-columns: repeat(2, 1fr); }"
	root, found := collect(t, NewEngine(Config{}), src)
	require.Len(t, found, 1)

	found[0].Apply()
	assert.Equal(t, src, root.String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTransition, KindOf("transition"))
	assert.Equal(t, KindGridTemplate, KindOf("grid-template"))
	assert.Equal(t, KindDefault, KindOf("margin"))
	assert.Equal(t, "grid-row", KindGridRow.String())
}
