package execution

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"allurectl/internal/config"
)

// waitDelay bounds how long a cancelled child may take to exit after the interrupt
const waitDelay = 10 * time.Second

// Runner executes external commands in the project directory
type Runner struct {
	config *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a new Runner streaming to the process stdout/stderr.
// A nil logger defers to the global zap logger.
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects streamed output
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run executes the invocation and waits for it to exit.
// Cancelling ctx sends an interrupt to the child instead of killing it.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	start := time.Now()
	logger := r.logger
	if logger == nil {
		logger = zap.L()
	}
	log := logger.With(zap.String("command", inv.Name), zap.Strings("args", inv.Args))
	log.Debug("Starting external process")

	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = os.Environ()
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = waitDelay

	var captured bytes.Buffer
	if inv.Quiet {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	}

	err := cmd.Run()
	log = log.With(zap.Duration("duration", time.Since(start)))
	if err != nil {
		log.Debug("External process failed", zap.Error(err), zap.String("output", captured.String()))
		return fmt.Errorf("%s: %w", inv, err)
	}

	log.Debug("External process finished")
	return nil
}
