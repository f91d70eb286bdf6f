package discovery

import (
	"path/filepath"
	"strings"

	"allurectl/internal/domain"
)

// Filter filters results by test name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters results by name pattern using wildcard matching
// Supports patterns like "test_search*" or "*navigation*"
func (f *Filter) FilterByName(results []domain.Result, pattern string) []domain.Result {
	if pattern == "" {
		return results
	}

	var filtered []domain.Result

	for _, result := range results {
		if matchName(result.Name, pattern) {
			filtered = append(filtered, result)
		}
	}

	return filtered
}

func matchName(name, pattern string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Fall back to ordered substring matching for patterns like "*Docs*Page*"
		hasPart := false
		rest := name
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
			hasPart = true
		}
		return hasPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}

	return false
}
