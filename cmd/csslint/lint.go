package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/csslint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [patterns...]",
	Short: "Lint stylesheets",
	Long: `Run the configured rules over every stylesheet matching the patterns.
Patterns default to lint.paths from the config file, then "**/*.css".`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitWith(runLint(cmd.Context(), args))
	},
}

func init() {
	f := lintCmd.Flags()
	f.Bool("fix", false, "Fix issues where possible and write files back")
	f.Int("jobs", 0, "Files to lint in parallel (0=GOMAXPROCS)")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per rule (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (rule-name) suffix on issues")
}

// exitWith turns a lint exit code into a process exit
func exitWith(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// runLint is shared between `csslint lint` and bare `csslint`.
// It returns the process exit code.
func runLint(ctx context.Context, patterns []string) (int, error) {
	return runLintTo(ctx, os.Stdout, patterns)
}

func runLintTo(ctx context.Context, w io.Writer, patterns []string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger(getBoolWithFallback("verbose", "verbose", false))
	if err != nil {
		return 0, err
	}
	defer func() { _ = log.Sync() }()

	lintConfig := buildLintConfig(patterns)
	lintConfig.Logger = log
	log.Debug("lint config",
		zap.Strings("paths", lintConfig.Paths),
		zap.Int("rules", len(lintConfig.Rules)),
		zap.Bool("fix", lintConfig.Fix))

	lintResult, err := csslint.Lint(ctx, lintConfig)
	if err != nil {
		return 0, fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := csslint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		csslint.WriteOutput(w, lintResult, format, lintConfig)
	}

	return exitCode(lintResult, lintConfig.Strict), nil
}

// exitCode implements the "soft gate": errors fail the build, and in
// strict mode any issue does
func exitCode(result *csslint.LintResult, strict bool) int {
	if strict {
		if len(result.Issues) > 0 || result.Truncated > 0 {
			return 1
		}
		return 0
	}
	if result.ErrorCount() > 0 {
		return 1
	}
	return 0
}
