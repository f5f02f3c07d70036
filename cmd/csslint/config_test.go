package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/csslint"
	"github.com/yacobolo/csslint/internal/report"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	configContent := `
verbose: true

rules:
  selector-max-id: 0
  selector-max-class: [2, {resolveNestedSelectors: true}]

lint:
  strict: true
  jobs: 4
  paths:
    - "custom/**/*.css"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.True(t, k.Bool("lint.strict"))
	assert.Equal(t, 4, k.Int("lint.jobs"))

	rules := ruleSettings()
	assert.Equal(t, 0, rules["selector-max-id"])
	assert.Equal(t, []any{2, map[string]any{"resolveNestedSelectors": true}}, rules["selector-max-class"])
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.csslint.yaml"))

	config := buildLintConfig(nil)
	assert.Equal(t, []string{"**/*.css"}, config.Paths)
	assert.Empty(t, config.Rules)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	configContent := `
lint:
  strict: false
  fix: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CSSLINT_LINT_STRICT", "true")
	t.Setenv("CSSLINT_LINT_FIX", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("lint.strict"))
	config := buildLintConfig(nil)
	assert.True(t, config.Fix)
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildLintConfig(nil)
	assert.False(t, config.Strict)
	assert.False(t, config.Fix)
	assert.Equal(t, 0, config.Jobs)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.False(t, config.UseColors)
}

func TestBuildLintConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	configContent := `
lint:
  strict: true
  paths:
    - "src/**/*.scss"
  max-issues-per-linter: 10
  print-lines: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig(nil)
	assert.True(t, config.Strict)
	assert.Equal(t, []string{"src/**/*.scss"}, config.Paths)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.False(t, config.PrintIssuedLines)

	// Positional patterns win
	config = buildLintConfig([]string{"a.css"})
	assert.Equal(t, []string{"a.css"}, config.Paths)
}

func TestDefaultConfigIsValid(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(defaultConfig), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig(nil)
	l, err := csslint.NewLinter(config)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"color-function-alias-notation",
		"declaration-block-no-redundant-longhand-properties",
		"selector-max-id",
		"selector-type-no-unknown",
	}, l.RuleNames())
}

func TestRunLint(t *testing.T) {
	resetKoanf()
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("rules:\n  selector-max-id: 0\n"), 0644))
	cssPath := filepath.Join(dir, "a.css")
	require.NoError(t, os.WriteFile(cssPath, []byte("#a {}\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	var buf bytes.Buffer
	code, err := runLintTo(context.Background(), &buf, []string{filepath.Join(dir, "*.css")})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "a.css:1:1: Expected \"#a\" to have no more than 0 ID selectors (selector-max-id)")
}

func TestRunLintWarningsPassSoftGate(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".csslint.yaml")
	configContent := "rules:\n  selector-max-id: [0, {severity: warning}]\nlint:\n  output-format: json\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte("#a {}\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	var buf bytes.Buffer
	code, err := runLintTo(context.Background(), &buf, []string{filepath.Join(dir, "*.css")})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	var decoded report.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Summary.Warnings)
}

func TestExitCode(t *testing.T) {
	errorIssue := report.Issue{Severity: report.SeverityError}
	warningIssue := report.Issue{Severity: report.SeverityWarning}

	tests := []struct {
		name   string
		issues []report.Issue
		strict bool
		want   int
	}{
		{name: "clean", want: 0},
		{name: "warnings only", issues: []report.Issue{warningIssue}, want: 0},
		{name: "errors", issues: []report.Issue{errorIssue}, want: 1},
		{name: "strict warnings", issues: []report.Issue{warningIssue}, strict: true, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &csslint.LintResult{}
			result.Issues = tt.issues
			assert.Equal(t, tt.want, exitCode(result, tt.strict))
		})
	}
}

func TestWriteRules(t *testing.T) {
	registry := csslint.Registry()

	var buf bytes.Buffer
	require.NoError(t, writeRules(&buf, registry, "text", false))
	assert.Contains(t, buf.String(), "declaration-block-no-redundant-longhand-properties [fixable]\n")

	buf.Reset()
	require.NoError(t, writeRules(&buf, registry, "json", false))
	var fromJSON []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Len(t, fromJSON, len(registry.Names()))

	buf.Reset()
	require.NoError(t, writeRules(&buf, registry, "yaml", false))
	var fromYAML []ruleInfo
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)

	assert.Error(t, writeRules(&buf, registry, "xml", false))
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".csslint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "rules:")
	assert.Contains(t, string(data), "lint:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".csslint.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".csslint.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".csslint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "rules:")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "csslint dev\n", buf.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
