package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"allurectl/internal/domain"
)

// ResultSuffix identifies test result artifacts among the other JSON files
// (containers, metadata) in a results directory
const ResultSuffix = "-result.json"

// AllureParser parses Allure result artifacts
type AllureParser struct{}

// NewAllureParser creates a new AllureParser
func NewAllureParser() *AllureParser {
	return &AllureParser{}
}

// IsResultFile reports whether path names a test result artifact
func IsResultFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), ResultSuffix)
}

// ParseFile reads a single result artifact
func (p *AllureParser) ParseFile(path string) (domain.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Result{}, fmt.Errorf("read result %s: %w", path, err)
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.Result{}, fmt.Errorf("parse result %s: %w", path, err)
	}
	if result.Status == "" {
		result.Status = domain.StatusUnknown
	}
	if result.Name == "" {
		result.Name = strings.TrimSuffix(filepath.Base(path), ResultSuffix)
	}
	result.Path = path

	return result, nil
}

// ParseAll parses every result artifact in paths, skipping non-result files.
// onParsed, when set, is called after each file for progress reporting.
// Unreadable artifacts are returned as errors alongside the parsed results.
func (p *AllureParser) ParseAll(paths []string, onParsed func()) ([]domain.Result, []error) {
	var results []domain.Result
	var errs []error

	for _, path := range paths {
		if IsResultFile(path) {
			result, err := p.ParseFile(path)
			if err != nil {
				errs = append(errs, err)
			} else {
				results = append(results, result)
			}
		}
		if onParsed != nil {
			onParsed()
		}
	}

	return results, errs
}

// Summarize counts results per status and collects failures
func (p *AllureParser) Summarize(results []domain.Result) domain.Summary {
	var summary domain.Summary
	var earliest, latest int64

	for _, r := range results {
		summary.Meta.TotalTests++
		switch r.Status {
		case domain.StatusPassed:
			summary.Meta.PassedTests++
		case domain.StatusFailed:
			summary.Meta.FailedTests++
		case domain.StatusBroken:
			summary.Meta.BrokenTests++
		case domain.StatusSkipped:
			summary.Meta.SkippedTests++
		default:
			summary.Meta.UnknownTests++
		}
		if r.Status.IsFailure() {
			summary.Failures = append(summary.Failures, r)
		}

		if r.Start > 0 && (earliest == 0 || r.Start < earliest) {
			earliest = r.Start
		}
		if r.Stop > latest {
			latest = r.Stop
		}
	}

	// Wall-clock span of the run, not the sum of test durations
	if latest > earliest && earliest > 0 {
		summary.Meta.DurationSeconds = (time.Duration(latest-earliest) * time.Millisecond).Seconds()
	}
	summary.Meta.Timestamp = time.Now().Format(time.RFC3339)

	return summary
}
