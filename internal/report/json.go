package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Rules     []RuleCount `json:"rules"`
	Issues    []JSONIssue `json:"issues"`
	Problems  []string    `json:"problems,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Fixable      int `json:"fixable"`
	Fixed        int `json:"fixed"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	EndLine  int    `json:"end_line,omitempty"`
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Rule     string `json:"rule"`
	Fixable  bool   `json:"fixable,omitempty"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the run summary as indented JSON
func WriteJSON(w io.Writer, s Summary) error {
	output := buildJSONOutput(s, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildJSONOutput(s Summary, now time.Time) JSONOutput {
	errors, warnings := CountBySeverity(s.Issues)

	jsonIssues := make([]JSONIssue, len(s.Issues))
	for i, issue := range s.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		endLine := 0
		if issue.LineRange != nil {
			endLine = issue.LineRange.To
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			EndLine:  endLine,
			Severity: issue.Severity,
			Kind:     string(issue.Kind),
			Message:  issue.Text,
			Rule:     issue.FromLinter,
			Fixable:  issue.Fixable,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(s.Issues),
			Errors:       errors,
			Warnings:     warnings,
			Fixable:      countFixable(s.Issues),
			Fixed:        s.Fixed,
			Truncated:    s.Truncated,
			FilesScanned: s.FilesScanned,
		},
		Rules:    RuleCounts(s.Issues),
		Issues:   jsonIssues,
		Problems: s.Problems,
	}
}
