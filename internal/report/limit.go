package report

// Limits caps how many issues are shown; zero means unlimited
type Limits struct {
	MaxIssuesPerLinter int
	MaxSameIssues      int
}

// LimitIssues applies max-issues-per-linter and max-same-issues and returns
// the kept issues with the number removed
func LimitIssues(issues []Issue, limits Limits) ([]Issue, int) {
	originalCount := len(issues)

	if limits.MaxIssuesPerLinter > 0 {
		issues = limitPerLinter(issues, limits.MaxIssuesPerLinter)
	}

	// Same message text counts as the same issue
	if limits.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, limits.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

func limitPerLinter(issues []Issue, maxPerLinter int) []Issue {
	counts := make(map[string]int)
	var filtered []Issue
	for _, issue := range issues {
		if counts[issue.FromLinter] < maxPerLinter {
			filtered = append(filtered, issue)
			counts[issue.FromLinter]++
		}
	}
	return filtered
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
