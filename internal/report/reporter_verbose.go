package report

import (
	"fmt"
	"io"
)

// VerboseReporter prints run statistics and per-rule breakdowns
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs detailed linting statistics
func (r *VerboseReporter) PrintStatistics(s Summary) {
	errors, warnings := CountBySeverity(s.Issues)

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "CSS Linter Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Files Scanned:  %d\n", s.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:  %d\n", s.FilesSkipped)
	fmt.Fprintf(r.w, "Errors:         %d\n", errors)
	fmt.Fprintf(r.w, "Warnings:       %d\n", warnings)
	fmt.Fprintf(r.w, "Fixable:        %d\n", countFixable(s.Issues))
	fmt.Fprintf(r.w, "Fixed:          %d\n", s.Fixed)
}

// PrintRuleBreakdown shows how the issues spread over rules
func (r *VerboseReporter) PrintRuleBreakdown(s Summary) {
	counts := RuleCounts(s.Issues)
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Issues by Rule", r.useColors))
	fmt.Fprintln(r.w, "--------------")

	total := len(s.Issues)
	width := 0
	for _, rc := range counts {
		width = max(width, len(rc.Rule))
	}
	for _, rc := range counts {
		percentage := float64(rc.Count) / float64(total) * 100
		fmt.Fprintf(r.w, "%-*s ", width, rc.Rule)
		printProgressBar(r.w, rc.Count, percentage)
	}
}

// PrintProblems lists files that could not be read or fully parsed
func (r *VerboseReporter) PrintProblems(s Summary) {
	if len(s.Problems) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, problem := range s.Problems {
		fmt.Fprintf(r.w, "• %s\n", problem)
	}
}

// printProgressBar prints a visual share bar
func printProgressBar(w io.Writer, count int, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %d (%.1f%%)\n", count, percentage)
}
