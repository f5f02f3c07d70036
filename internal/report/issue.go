// Package report renders lint results for people and machines:
// golangci-lint style text, per-rule statistics and JSON.
package report

import (
	"strings"

	"github.com/yacobolo/csslint/internal/linter"
	"github.com/yacobolo/csslint/internal/rule"
)

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "selector-max-id"
	Text        string     `json:"Text"`        // "Expected \"#a #b\" to have no more than 1 ID selector"
	Severity    string     `json:"Severity"`    // "error", "warning"
	Kind        rule.Kind  `json:"Kind"`        // "violation", "invalidOption", "internal"
	SourceLines []string   `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Set when the issue spans lines
	Fixable     bool       `json:"Fixable"`     // --fix would resolve it
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/components.css"
	Line     int    `json:"Line"`     // 35, zero for rule configuration problems
	Column   int    `json:"Column"`   // 15 (1-based)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Severity constants
const (
	SeverityError   = linter.SeverityError
	SeverityWarning = linter.SeverityWarning
)

// Summary is everything the reporters print for one run
type Summary struct {
	Issues       []Issue
	Truncated    int // Issues removed due to limits
	FilesScanned int
	FilesSkipped int // Generated or gitignored files
	Fixed        int
	// Problems are files that could not be read or fully parsed
	Problems []string
}

// FromResults converts linter results into issues, one per warning
func FromResults(results []*linter.Result) []Issue {
	var issues []Issue
	for _, res := range results {
		lines := strings.Split(res.Output, "\n")
		for _, w := range res.Warnings {
			issue := Issue{
				FromLinter: w.Rule,
				Text:       w.Message,
				Severity:   w.Severity,
				Kind:       w.Kind,
				Pos: IssuePos{
					Filename: res.Name,
					Line:     w.Line,
					Column:   w.Column,
				},
				Fixable: w.Fixable,
			}
			if w.Line > 0 && w.Line <= len(lines) {
				issue.SourceLines = []string{strings.TrimSuffix(lines[w.Line-1], "\r")}
			}
			if w.EndLine > w.Line {
				issue.LineRange = &LineRange{From: w.Line, To: w.EndLine}
			}
			issues = append(issues, issue)
		}
	}
	return issues
}

// CountBySeverity returns the number of error and warning issues
func CountBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
