// Package validation lints generated CloudFormation templates with cfn-lint-go.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
)

// Result contains the outcome of linting one template file.
type Result struct {
	Path          string   `json:"path"`
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r Result) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// LintFile runs cfn-lint-go on a template file. A template passes when no
// issue is at the Error level.
func LintFile(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return &Result{
			Path:   path,
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", path)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return nil, fmt.Errorf("linting %s: %w", path, err)
	}

	result := &Result{
		Path:          path,
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}
	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}
	result.Passed = len(result.Errors) == 0

	return result, nil
}

// LintFiles lints each file and reports whether all of them passed.
func LintFiles(paths []string) ([]*Result, bool, error) {
	results := make([]*Result, 0, len(paths))
	passed := true
	for _, p := range paths {
		r, err := LintFile(p)
		if err != nil {
			return results, false, err
		}
		results = append(results, r)
		passed = passed && r.Passed
	}
	return results, passed, nil
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	if len(match.Location.Path) == 0 {
		return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
	}
	parts := make([]string, len(match.Location.Path))
	for i, p := range match.Location.Path {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, strings.Join(parts, "/"))
}
