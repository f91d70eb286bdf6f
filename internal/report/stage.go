package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// stageResults mirrors the top-level files of resultsDir into a temporary
// directory so render hooks never write into the results directory. Files
// are hard-linked where possible and copied otherwise, so hooks must replace
// files rather than write through them.
func stageResults(resultsDir string) (string, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return "", fmt.Errorf("read results: %w", err)
	}

	stageDir, err := os.MkdirTemp("", "allurectl-results-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		src := filepath.Join(resultsDir, entry.Name())
		dst := filepath.Join(stageDir, entry.Name())
		if err := linkOrCopy(src, dst); err != nil {
			os.RemoveAll(stageDir)
			return "", fmt.Errorf("stage %s: %w", entry.Name(), err)
		}
	}

	return stageDir, nil
}

func linkOrCopy(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
