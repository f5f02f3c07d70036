package options

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidatePrimary(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{
			name:   "true with nothing possible",
			schema: Schema{Actual: true},
		},
		{
			name:    "false is rejected",
			schema:  Schema{Actual: false},
			wantErr: `invalid option value "false" for rule "r"`,
		},
		{
			name:    "missing required value",
			schema:  Schema{Actual: nil, Possible: IsNonNegativeInteger},
			wantErr: `expected option value for rule "r"`,
		},
		{
			name:   "predicate accepts",
			schema: Schema{Actual: 2, Possible: IsNonNegativeInteger},
		},
		{
			name:   "float from json is an integer",
			schema: Schema{Actual: 2.0, Possible: IsNonNegativeInteger},
		},
		{
			name:    "predicate rejects",
			schema:  Schema{Actual: -1, Possible: IsNonNegativeInteger},
			wantErr: `invalid option -1 for rule "r"`,
		},
		{
			name:   "enum accepts",
			schema: Schema{Actual: "with-alpha", Possible: []any{"with-alpha", "without-alpha"}},
		},
		{
			name:    "enum rejects",
			schema:  Schema{Actual: "always", Possible: []any{"with-alpha", "without-alpha"}},
			wantErr: `invalid option value "always" for rule "r"`,
		},
		{
			name:    "unexpected value when nothing possible",
			schema:  Schema{Actual: "yes"},
			wantErr: `unexpected option value "yes" for rule "r"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("r", tt.schema)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSecondary(t *testing.T) {
	possible := map[string][]any{
		"ignoreShorthands": {IsString, IsRegExp},
		"ignore":           {"child", "descendant"},
	}

	err := Validate("r", Schema{Actual: nil, Possible: possible, Optional: true})
	assert.NoError(t, err)

	err = Validate("r", Schema{
		Actual:   map[string]any{"ignoreShorthands": []any{"margin", "/^pad/i"}, "severity": "warning"},
		Possible: possible,
		Optional: true,
	})
	assert.NoError(t, err)

	err = Validate("r", Schema{
		Actual:   map[string]any{"ignore": []any{"child", "sibling"}, "bogus": true},
		Possible: possible,
		Optional: true,
	})
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `invalid option name "bogus"`)
	assert.Contains(t, errs[1].Error(), `invalid value "sibling" for option "ignore"`)

	err = Validate("r", Schema{Actual: "nope", Possible: possible, Optional: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be an object")
}

func TestValidateCombinesSchemas(t *testing.T) {
	err := Validate("r",
		Schema{Actual: "x", Possible: IsNonNegativeInteger},
		Schema{Actual: map[string]any{"nope": 1}, Possible: map[string][]any{}, Optional: true},
	)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestIsRegExp(t *testing.T) {
	assert.True(t, IsRegExp("/^a/"))
	assert.True(t, IsRegExp("/^a/gi"))
	assert.True(t, IsRegExp(regexp.MustCompile("a")))
	assert.False(t, IsRegExp("plain"))
	assert.False(t, IsRegExp("/(/"))
	assert.False(t, IsRegExp("/a/q"))
}

func TestMatches(t *testing.T) {
	secondary := map[string]any{
		"ignore":  []any{"margin", "/^pad/i", regexp.MustCompile("^flex$")},
		"literal": "border",
	}

	assert.True(t, Matches(secondary, "ignore", "margin"))
	assert.True(t, Matches(secondary, "ignore", "PADDING"))
	assert.True(t, Matches(secondary, "ignore", "flex"))
	assert.False(t, Matches(secondary, "ignore", "flex-grow"))
	assert.True(t, Matches(secondary, "literal", "border"))
	assert.False(t, Matches(secondary, "missing", "border"))
	assert.False(t, Matches(nil, "ignore", "margin"))
}

func TestStringsAndBool(t *testing.T) {
	secondary := map[string]any{"a": "x", "b": []any{"y", 1, "z"}, "c": true}
	assert.Equal(t, []string{"x"}, Strings(secondary, "a"))
	assert.Equal(t, []string{"y", "z"}, Strings(secondary, "b"))
	assert.Nil(t, Strings(secondary, "missing"))
	assert.True(t, Bool(secondary, "c"))
	assert.False(t, Bool(nil, "c"))
	assert.Equal(t, 3, Int(3.0))
}
