package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"allurectl/internal/domain"
)

// ResultWriter writes result artifacts and report metadata into a results directory
type ResultWriter struct {
	dir string
}

// NewResultWriter creates a ResultWriter for dir
func NewResultWriter(dir string) *ResultWriter {
	return &ResultWriter{dir: dir}
}

// WriteResult stores result as <uuid>-result.json, assigning a UUID if missing
func (w *ResultWriter) WriteResult(result *domain.Result) (string, error) {
	if result.UUID == "" {
		result.UUID = uuid.NewString()
	}
	if result.HistoryID == "" && result.FullName != "" {
		result.HistoryID = HistoryID(result.FullName)
	}
	return w.writeJSON(result.UUID+"-result.json", result)
}

// WriteAttachment stores body as <uuid>-attachment<ext> and returns the
// attachment record to reference from a result
func (w *ResultWriter) WriteAttachment(name, mimeType, ext string, body []byte) (domain.Attachment, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return domain.Attachment{}, fmt.Errorf("create results dir: %w", err)
	}

	source := uuid.NewString() + "-attachment" + ext
	if err := os.WriteFile(filepath.Join(w.dir, source), body, 0644); err != nil {
		return domain.Attachment{}, fmt.Errorf("write attachment %s: %w", name, err)
	}

	return domain.Attachment{Name: name, Source: source, Type: mimeType}, nil
}

// WriteExecutor stores executor.json, whose reportName is the report title
func (w *ResultWriter) WriteExecutor(reportName string) error {
	executor := struct {
		Name       string `json:"name"`
		Type       string `json:"type"`
		ReportName string `json:"reportName"`
	}{
		Name:       "allurectl",
		Type:       "local",
		ReportName: reportName,
	}
	_, err := w.writeJSON("executor.json", executor)
	return err
}

// WriteEnvironment stores environment.properties shown on the report overview
func (w *ResultWriter) WriteEnvironment(props map[string]string) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, props[k])
	}

	if err := replaceFile(filepath.Join(w.dir, "environment.properties"), []byte(b.String())); err != nil {
		return fmt.Errorf("write environment: %w", err)
	}
	return nil
}

func (w *ResultWriter) writeJSON(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := replaceFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// replaceFile swaps in a new file at path instead of writing through an
// existing one, so a hard-linked original is left untouched
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// HistoryID derives a stable id from a test's full name so the report can
// track the same test across runs
func HistoryID(fullName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fullName)).String()
}
