// Package csslint lints CSS, SCSS and Less stylesheets with pluggable rules.
//
// # Rules
//
// Each rule is configured with a primary option and optional secondary
// options:
//
//	rules:
//	  selector-max-id: 0
//	  selector-max-class: [2, {resolveNestedSelectors: true}]
//	  declaration-block-no-redundant-longhand-properties: true
//	  color-function-alias-notation: [without-alpha, {severity: warning}]
//
// # Linting
//
//	result, err := csslint.Lint(ctx, csslint.LintConfig{
//		Paths: []string{"web/styles/**/*.css"},
//		Rules: map[string]any{"selector-max-id": 0},
//	})
//
// # Fixing
//
// With Fix set, fixable findings are rewritten and written back, and only
// what is left is reported.
//
// # Disable comments
//
//	/* csslint-disable selector-max-id */
//	/* csslint-enable */
//	/* csslint-disable-line */
//	/* csslint-disable-next-line selector-max-class, selector-max-id */
package csslint

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/csslint/internal/linter"
	"github.com/yacobolo/csslint/internal/report"
	"github.com/yacobolo/csslint/internal/rule"
	"github.com/yacobolo/csslint/internal/rules"
)

// LintConfig holds linting configuration
type LintConfig struct {
	Paths  []string       // Patterns to lint (e.g., "web/styles/**/*.css")
	Rules  map[string]any // Raw rule settings, keyed by rule name
	Fix    bool           // Apply fixes and write files back
	Jobs   int            // Parallel documents; 0 = GOMAXPROCS
	Strict bool           // Exit with code 1 if any issue is found
	Logger *zap.Logger    // nil = no logging

	// golangci-style output configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (rule-name) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains the outcome of a lint run
type LintResult struct {
	report.Summary

	// Results holds the per-document outcome, in path order
	Results []*linter.Result
}

// ErrorCount returns the number of error-severity issues
func (r *LintResult) ErrorCount() int {
	errors, _ := report.CountBySeverity(r.Issues)
	return errors
}

// Registry returns the built-in rules
func Registry() *rule.Registry {
	return rules.Default()
}

// NewLinter builds a linter for the configured rules
func NewLinter(config LintConfig) (*linter.Linter, error) {
	ruleConfigs, err := linter.ParseRules(config.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rule configuration: %w", err)
	}
	return linter.New(Registry(), linter.Config{
		Rules: ruleConfigs,
		Fix:   config.Fix,
		Jobs:  config.Jobs,
	}, linter.WithLogger(config.Logger))
}

// Lint lints every stylesheet matching config.Paths
func Lint(ctx context.Context, config LintConfig) (*LintResult, error) {
	l, err := NewLinter(config)
	if err != nil {
		return nil, err
	}

	files, stats, err := ExpandPatterns(config.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to expand patterns: %w", err)
	}

	results, readErr := l.LintFiles(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &LintResult{Results: results}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped
	for _, e := range multierr.Errors(readErr) {
		result.Problems = append(result.Problems, e.Error())
	}

	if config.Fix {
		if err := writeFixes(results); err != nil {
			return nil, err
		}
	}

	finish(result, config)
	return result, nil
}

// LintSource lints a single in-memory document; name is only used in reports
func LintSource(ctx context.Context, config LintConfig, name, src string) (*LintResult, error) {
	l, err := NewLinter(config)
	if err != nil {
		return nil, err
	}
	res, err := l.LintSource(ctx, name, src)
	if err != nil {
		return nil, err
	}

	result := &LintResult{Results: []*linter.Result{res}}
	result.FilesScanned = 1
	finish(result, config)
	return result, nil
}

// finish converts results to issues and applies the configured limits
func finish(result *LintResult, config LintConfig) {
	for _, res := range result.Results {
		result.Fixed += res.Fixed
		for _, perr := range res.ParseErrors {
			result.Problems = append(result.Problems, fmt.Sprintf("%s: %v", res.Name, perr))
		}
	}

	result.Issues = report.FromResults(result.Results)
	report.SortIssues(result.Issues)
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.Truncated = report.LimitIssues(result.Issues, report.Limits{
			MaxIssuesPerLinter: config.MaxIssuesPerLinter,
			MaxSameIssues:      config.MaxSameIssues,
		})
	}
}

// writeFixes writes changed documents back in place
func writeFixes(results []*linter.Result) error {
	var err error
	for _, res := range results {
		if !res.Changed() {
			continue
		}
		info, statErr := os.Stat(res.Name)
		mode := os.FileMode(0o644)
		if statErr == nil {
			mode = info.Mode().Perm()
		}
		if werr := os.WriteFile(res.Name, []byte(res.Output), mode); werr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to write %s: %w", res.Name, werr))
		}
	}
	return err
}
