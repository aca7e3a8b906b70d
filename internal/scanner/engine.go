package scanner

import (
	"context"
	"sort"

	arunner "github.com/secretlit/secretlit/internal/analyzers/runner"
)

// Engine runs a selected set of extraction analyzers over Go packages and
// normalizes their diagnostics into Issues.
type Engine struct {
	specs []arunner.Spec
}

// NewEngine builds an engine for the given analyzer specs.
func NewEngine(specs []arunner.Spec) *Engine {
	return &Engine{specs: append([]arunner.Spec{}, specs...)}
}

// Run loads the packages under dir and applies every configured analyzer.
// Results are sorted by file, line, column and rule ID so repeated runs over
// the same tree produce identical output.
func (e *Engine) Run(ctx context.Context, dir string) ([]Issue, error) {
	findings, err := arunner.RunSpecs(ctx, dir, e.specs)
	if err != nil {
		return nil, err
	}
	issues := make([]Issue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, Issue{
			RuleID:     f.RuleID,
			Title:      f.Title,
			Message:    f.Message,
			Severity:   SeverityFor(f.RuleID),
			Position:   Position{Filename: f.Filename, Line: f.Line, Column: f.Column},
			Suggestion: f.Suggestion,
		})
	}
	SortIssues(issues)
	return issues, nil
}

// SortIssues orders issues by position then rule ID, giving deterministic
// output regardless of analyzer execution order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Position.Filename != b.Position.Filename {
			return a.Position.Filename < b.Position.Filename
		}
		if a.Position.Line != b.Position.Line {
			return a.Position.Line < b.Position.Line
		}
		if a.Position.Column != b.Position.Column {
			return a.Position.Column < b.Position.Column
		}
		return a.RuleID < b.RuleID
	})
}
