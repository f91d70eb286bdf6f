package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"allurectl/internal/config"
	"allurectl/internal/discovery"
	"allurectl/internal/execution"
	"allurectl/internal/ui"
)

// fakeExecutor records invocations and answers from a table keyed by command name
type fakeExecutor struct {
	calls   []execution.Invocation
	results map[string]error
	// onRun runs before answering, e.g. to simulate an interrupt
	onRun func(inv execution.Invocation)
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{results: make(map[string]error)}
}

func (f *fakeExecutor) Run(_ context.Context, inv execution.Invocation) error {
	f.calls = append(f.calls, inv)
	if f.onRun != nil {
		f.onRun(inv)
	}
	return f.results[inv.Name]
}

func (f *fakeExecutor) missing(name string) {
	f.results[name] = fmt.Errorf("%s: %w", name, exec.ErrNotFound)
}

type fixture struct {
	cfg        *config.Config
	exec       *fakeExecutor
	out        *bytes.Buffer
	controller *Controller
	resultsDir string
	reportDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	fx := &fixture{
		cfg:        cfg,
		exec:       newFakeExecutor(),
		out:        &bytes.Buffer{},
		resultsDir: cfg.GetResultsPath(),
		reportDir:  cfg.GetReportPath(),
	}
	scanner := discovery.NewScanner(cfg.ArtifactExt, config.ReservedMetadataFiles)
	fx.controller = NewController(cfg, fx.exec, scanner, ui.NewFormatterTo(fx.out, "allurectl"), nil)
	return fx
}

func (fx *fixture) addResult(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(fx.resultsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(fx.resultsDir, name), []byte(`{"status":"passed"}`), 0644))
}
