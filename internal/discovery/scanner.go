package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner finds result artifacts in a results directory
type Scanner struct {
	ext       string
	skipFiles map[string]bool
}

// NewScanner creates a new Scanner matching files with ext and ignoring skipFiles
func NewScanner(ext string, skipFiles []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, name := range skipFiles {
		skipMap[name] = true
	}
	return &Scanner{ext: ext, skipFiles: skipMap}
}

// Scan lists the artifacts directly inside root, sorted by name.
// The report tool does not descend into subdirectories, so neither do we.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("results path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("results path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read results dir %s: %w", root, err)
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || s.skipFiles[name] {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), s.ext) {
			artifacts = append(artifacts, filepath.Join(root, name))
		}
	}
	sort.Strings(artifacts)

	return artifacts, nil
}

// HasArtifacts reports whether root exists and holds at least one artifact
func (s *Scanner) HasArtifacts(root string) bool {
	artifacts, err := s.Scan(root)
	return err == nil && len(artifacts) > 0
}
