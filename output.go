package csslint

import (
	"io"
	"os"

	"github.com/yacobolo/csslint/internal/report"
)

// OutputFormat selects how lint results are printed
type OutputFormat string

const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint style issues (default)
	OutputSummary OutputFormat = "summary" // statistics and per-rule breakdown only
	OutputFull    OutputFormat = "full"    // issues plus statistics
	OutputJSON    OutputFormat = "json"    // machine readable
)

// DetermineOutputFormat selects the appropriate output format based on flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
// Following golangci-lint's UX: issues only by default
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) {
	opts := report.Options{
		PrintIssuedLines: config.PrintIssuedLines,
		PrintLinterName:  config.PrintLinterName,
		UseColors:        config.UseColors,
	}

	switch format {
	case OutputIssues:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Summary)

	case OutputSummary:
		verboseReporter := report.NewVerboseReporter(w, report.ShouldUseColors(config.UseColors))
		verboseReporter.PrintStatistics(result.Summary)
		verboseReporter.PrintRuleBreakdown(result.Summary)
		verboseReporter.PrintProblems(result.Summary)

	case OutputFull:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Summary)

		verboseReporter := report.NewVerboseReporter(w, reporter.UseColors())
		verboseReporter.PrintStatistics(result.Summary)
		verboseReporter.PrintRuleBreakdown(result.Summary)
		verboseReporter.PrintProblems(result.Summary)

	case OutputJSON:
		if err := report.WriteJSON(w, result.Summary); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}
	}
}
