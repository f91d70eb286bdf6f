package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allurectl/internal/cli"
	"allurectl/internal/config"
	"allurectl/internal/domain"
	"allurectl/internal/execution"
	"allurectl/internal/ui"
)

type recordingExecutor struct {
	calls   []execution.Invocation
	missing map[string]bool
}

func (r *recordingExecutor) Run(_ context.Context, inv execution.Invocation) error {
	r.calls = append(r.calls, inv)
	if r.missing[inv.Name] {
		return fmt.Errorf("%s: %w", inv.Name, exec.ErrNotFound)
	}
	return nil
}

type recordingViewer struct {
	viewed []domain.Result
	called bool
}

func (v *recordingViewer) View(failures []domain.Result) error {
	v.called = true
	v.viewed = failures
	return nil
}

type harness struct {
	cfg    *config.Config
	exec   *recordingExecutor
	viewer *recordingViewer
	out    *bytes.Buffer
	root   *cobra.Command
}

func newHarness(t *testing.T, missing ...string) *harness {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	h := &harness{
		cfg:    cfg,
		exec:   &recordingExecutor{missing: make(map[string]bool)},
		viewer: &recordingViewer{},
		out:    &bytes.Buffer{},
		root:   &cobra.Command{Use: "allurectl"},
	}
	for _, name := range missing {
		h.exec.missing[name] = true
	}

	cmds := NewCommands(cfg, h.exec, ui.NewFormatterTo(h.out, "allurectl"))
	cmds.Generate.SetViewer(h.viewer)
	cmds.Register(h.root, &cli.Flags{}, cfg)
	h.root.SetOut(h.out)
	h.root.SetErr(h.out)
	return h
}

func (h *harness) run(args ...string) error {
	h.root.SetArgs(args)
	return h.root.Execute()
}

func (h *harness) writeResult(t *testing.T, name, body string) {
	t.Helper()
	dir := h.cfg.GetResultsPath()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func (h *harness) resultNames(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(h.cfg.GetResultsPath())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestDispatch_NoArgs(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run())

	assert.Contains(t, h.out.String(), "Usage:")
	assert.Empty(t, h.exec.calls)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"Foo", "Unknown command: foo"},
		{"help", "Unknown command: help"},
		{"HELP", "Unknown command: help"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			h := newHarness(t)

			require.NoError(t, h.run(tt.token))

			assert.Contains(t, h.out.String(), tt.expected)
			assert.Contains(t, h.out.String(), "Available commands: serve, generate, open, install")
			assert.NotContains(t, h.out.String(), "Available Commands:")
			assert.Empty(t, h.exec.calls)
		})
	}
}

func TestDispatch_CaseInsensitive(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("INSTALL"))

	assert.Contains(t, h.out.String(), "Allure is already installed")
	require.Len(t, h.exec.calls, 1)
	assert.Equal(t, "allure --version", h.exec.calls[0].String())
}

func TestToolMissing(t *testing.T) {
	for _, command := range []string{"serve", "generate", "open"} {
		t.Run(command, func(t *testing.T) {
			h := newHarness(t, "allure")
			h.writeResult(t, "a-result.json", `{"status":"passed"}`)
			require.NoError(t, os.MkdirAll(h.cfg.GetReportPath(), 0755))

			err := h.run(command)

			assert.ErrorIs(t, err, ErrFailed)
			assert.Contains(t, h.out.String(), "Run 'allurectl install' first")
			require.Len(t, h.exec.calls, 1, "only the version probe may run")
			assert.Equal(t, []string{"--version"}, h.exec.calls[0].Args)
		})
	}

	t.Run("install", func(t *testing.T) {
		h := newHarness(t, "allure", "npm")

		err := h.run("install")

		assert.ErrorIs(t, err, ErrFailed)
		assert.Contains(t, h.out.String(), "Please install Allure manually")
		require.Len(t, h.exec.calls, 2)
		assert.Equal(t, "npm", h.exec.calls[1].Name)
	})
}

func TestInstall_WhenMissing(t *testing.T) {
	h := newHarness(t, "allure")

	require.NoError(t, h.run("install"))

	require.Len(t, h.exec.calls, 2)
	assert.Equal(t, "npm install -g allure-commandline", h.exec.calls[1].String())
}

func TestGenerate(t *testing.T) {
	t.Run("no results", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("generate")

		assert.ErrorIs(t, err, ErrFailed)
		assert.Contains(t, h.out.String(), "No Allure results found")
		assert.Len(t, h.exec.calls, 1)
	})

	t.Run("renders and summarizes", func(t *testing.T) {
		h := newHarness(t)
		h.writeResult(t, "a-result.json", `{"name":"TestBasicNavigation","status":"passed","start":1000,"stop":2000}`)
		h.writeResult(t, "b-result.json", `{"name":"TestSearch","status":"failed","start":1000,"stop":3000}`)

		before := h.resultNames(t)

		require.NoError(t, h.run("generate"))

		require.Len(t, h.exec.calls, 2)
		args := h.exec.calls[1].Args
		require.Len(t, args, 5)
		assert.Equal(t, "generate", args[0])
		assert.NotEqual(t, h.cfg.GetResultsPath(), args[1], "the tool reads a staged copy")
		assert.Equal(t, []string{"--clean", "-o", h.cfg.GetReportPath()}, args[2:])
		assert.Contains(t, h.out.String(), "Test Report Statistics")
		assert.Contains(t, h.out.String(), "TestSearch")
		assert.FileExists(t, h.cfg.GetSummaryPath())
		assert.Equal(t, before, h.resultNames(t), "results directory is read-only")
		assert.NoFileExists(t, filepath.Join(h.cfg.GetResultsPath(), "executor.json"))
		assert.False(t, h.viewer.called)
	})

	t.Run("failures viewer with filter", func(t *testing.T) {
		h := newHarness(t)
		h.writeResult(t, "a-result.json", `{"name":"TestSearch","status":"failed"}`)
		h.writeResult(t, "b-result.json", `{"name":"TestDocs","status":"broken"}`)

		require.NoError(t, h.run("generate", "--failures", "--filter", "*Docs*"))

		require.True(t, h.viewer.called)
		require.Len(t, h.viewer.viewed, 1)
		assert.Equal(t, "TestDocs", h.viewer.viewed[0].Name)
	})
}

func TestOpen(t *testing.T) {
	t.Run("without report", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("open")

		assert.ErrorIs(t, err, ErrFailed)
		assert.Contains(t, h.out.String(), "Generate report first")
		assert.Len(t, h.exec.calls, 1)
	})

	t.Run("after generate shows stored summary", func(t *testing.T) {
		h := newHarness(t)
		h.writeResult(t, "a-result.json", `{"name":"TestDocs","status":"passed"}`)
		require.NoError(t, h.run("generate"))
		h.out.Reset()
		h.exec.calls = nil

		require.NoError(t, h.run("open"))

		assert.Contains(t, h.out.String(), "Test Report Statistics")
		require.Len(t, h.exec.calls, 2)
		assert.Equal(t, []string{"open", h.cfg.GetReportPath()}, h.exec.calls[1].Args)
	})
}

func TestServe(t *testing.T) {
	h := newHarness(t)
	h.writeResult(t, "a-result.json", `{"status":"passed"}`)

	require.NoError(t, h.run("serve"))

	require.Len(t, h.exec.calls, 2)
	assert.Equal(t, "serve", h.exec.calls[1].Args[0])
}
