package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Options configures the text reporter
type Options struct {
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show the (rule-name) suffix
	UseColors        bool // Force color output; otherwise auto-detect
}

// Reporter handles formatting and outputting linting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.UseColors),
		printLines:      opts.PrintIssuedLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(explicit bool) bool {
	if explicit {
		return true
	}

	// NO_COLOR wins over every auto-detection
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// FORCE_COLOR is set by GitHub Actions and friends
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// SortIssues orders issues by file, then line, then column
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return natural.Less(issues[i].Pos.Filename, issues[j].Pos.Filename)
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// file:line:col: message (rule); configuration problems have no line
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	if issue.Pos.Line == 0 {
		location = issue.Pos.Filename + ":"
	}

	linterSuffix := ""
	if r.printLinterName && issue.FromLinter != "" {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	style := StyleCyan
	if issue.Severity == SeverityWarning {
		style = StyleYellow
	}
	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(style, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(s Summary) {
	totalIssues := len(s.Issues)
	truncated := s.Truncated
	errors, warnings := CountBySeverity(s.Issues)

	fmt.Fprintln(r.w, "")

	if errors > 0 && warnings > 0 {
		if truncated > 0 {
			fmt.Fprintf(r.w, "%s (%s, %s; %s truncated):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(errors, "error", "errors"),
				pluralizeCount(warnings, "warning", "warnings"),
				pluralizeCount(truncated, "issue", "issues"))
		} else {
			fmt.Fprintf(r.w, "%s (%s, %s):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(errors, "error", "errors"),
				pluralizeCount(warnings, "warning", "warnings"))
		}
	} else {
		if truncated > 0 {
			fmt.Fprintf(r.w, "%s (%s truncated):\n",
				pluralizeCount(totalIssues, "issue", "issues"),
				pluralizeCount(truncated, "issue", "issues"))
		} else {
			fmt.Fprintf(r.w, "%s:\n", pluralizeCount(totalIssues, "issue", "issues"))
		}
	}

	for _, rc := range RuleCounts(s.Issues) {
		fmt.Fprintf(r.w, "* %s: %d\n", rc.Rule, rc.Count)
	}

	if s.Fixed > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, fmt.Sprintf("Fixed %s", pluralizeCount(s.Fixed, "issue", "issues")), r.useColors))
	}

	if fixable := countFixable(s.Issues); fixable > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			fmt.Sprintf("Hint: %s can be fixed with --fix", pluralizeCount(fixable, "issue", "issues")), r.useColors))
	}
}

// RuleCount is the number of issues one rule produced
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// RuleCounts groups issues by rule, in natural rule-name order
func RuleCounts(issues []Issue) []RuleCount {
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.FromLinter]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	out := make([]RuleCount, len(names))
	for i, name := range names {
		out[i] = RuleCount{Rule: name, Count: counts[name]}
	}
	return out
}

func countFixable(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
