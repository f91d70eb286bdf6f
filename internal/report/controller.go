package report

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"allurectl/internal/config"
	"allurectl/internal/discovery"
	"allurectl/internal/execution"
	"allurectl/internal/ui"
)

const releasesURL = "https://github.com/allure-framework/allure2/releases"

// Controller drives the external report tool. Every operation is a failure
// boundary: errors are printed and reported as false, never returned.
type Controller struct {
	config    *config.Config
	executor  execution.Executor
	scanner   *discovery.Scanner
	formatter *ui.Formatter
	logger    *zap.Logger
	hooks     []RenderHook

	// notify scopes operator interrupts to the serve call
	notify func(ctx context.Context) (context.Context, context.CancelFunc)
}

// NewController creates a new Controller. A nil logger defers to the global zap logger.
func NewController(cfg *config.Config, executor execution.Executor, scanner *discovery.Scanner, formatter *ui.Formatter, logger *zap.Logger) *Controller {
	return &Controller{
		config:    cfg,
		executor:  executor,
		scanner:   scanner,
		formatter: formatter,
		logger:    logger,
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		},
	}
}

// CheckToolAvailable probes the tool version. False if the executable is
// missing or the probe exits non-zero.
func (c *Controller) CheckToolAvailable(ctx context.Context) bool {
	err := c.executor.Run(ctx, execution.Invocation{
		Name:  c.config.ToolName,
		Args:  []string{"--version"},
		Quiet: true,
	})
	if err != nil {
		c.log().Debug("Report tool unavailable", zap.Error(err))
		return false
	}
	return true
}

// InstallTool installs the tool through the package manager. No retries.
func (c *Controller) InstallTool(ctx context.Context) bool {
	c.formatter.Printf("Installing Allure command line tool...")

	if len(c.config.InstallCommand) == 0 {
		c.printManualInstall()
		return false
	}

	err := c.executor.Run(ctx, execution.Invocation{
		Name: c.config.InstallCommand[0],
		Args: c.config.InstallCommand[1:],
	})
	if err != nil {
		c.log().Debug("Install failed", zap.Error(err))
		c.printManualInstall()
		return false
	}

	c.formatter.Success("Allure installed successfully via %s", c.config.InstallCommand[0])
	return true
}

func (c *Controller) log() *zap.Logger {
	if c.logger == nil {
		return zap.L()
	}
	return c.logger
}

func (c *Controller) printManualInstall() {
	c.formatter.Failure("Failed to install Allure via %s", c.installerName())
	c.formatter.Printf("Please install Allure manually:")
	c.formatter.Printf("1. Download from: %s", releasesURL)
	c.formatter.Printf("2. Or install via package manager (choco, brew, etc.)")
}

func (c *Controller) installerName() string {
	if len(c.config.InstallCommand) == 0 {
		return "package manager"
	}
	return c.config.InstallCommand[0]
}

// Render builds a static report from resultsDir into outputDir, discarding
// any previous output.
func (c *Controller) Render(ctx context.Context, resultsDir, outputDir string) bool {
	if !c.checkResults(resultsDir) {
		return false
	}
	inputDir, cleanup, ok := c.prepare(resultsDir)
	if !ok {
		return false
	}
	defer cleanup()

	c.formatter.Step("📊", "Generating Allure report...")
	err := c.executor.Run(ctx, execution.Invocation{
		Name: c.config.ToolName,
		Args: []string{"generate", inputDir, "--clean", "-o", outputDir},
	})
	if err != nil {
		c.formatter.Failure("Failed to generate report: %v", err)
		return false
	}

	c.formatter.Success("Allure report generated in '%s/' directory", outputDir)
	return true
}

// Serve hosts a live report for resultsDir and blocks until the operator
// interrupts it (success) or the server exits on its own.
func (c *Controller) Serve(ctx context.Context, resultsDir string) bool {
	if !c.checkResults(resultsDir) {
		return false
	}
	inputDir, cleanup, ok := c.prepare(resultsDir)
	if !ok {
		return false
	}
	defer cleanup()

	port := strconv.Itoa(c.config.ServePort)
	c.formatter.Step("🌐", "Starting Allure report server...")
	c.formatter.Printf("📱 Report will be available at: http://localhost:%s", port)
	c.formatter.Printf("⏹️  Press Ctrl+C to stop the server")

	ctx, stop := c.notify(ctx)
	defer stop()

	err := c.executor.Run(ctx, execution.Invocation{
		Name: c.config.ToolName,
		Args: []string{"serve", inputDir, "--port", port},
	})
	if interrupted(ctx, err) {
		c.formatter.Printf("")
		c.formatter.Step("🛑", "Server stopped")
		return true
	}
	if err != nil {
		c.formatter.Failure("Failed to serve report: %v", err)
		return false
	}

	return true
}

// Open opens a previously rendered report in the browser.
func (c *Controller) Open(ctx context.Context, outputDir string) bool {
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		c.formatter.Failure("No report found. Generate report first:")
		c.formatter.Hint("%s generate", c.formatter.Command())
		return false
	}

	c.formatter.Step("🌐", "Opening Allure report in browser...")
	err := c.executor.Run(ctx, execution.Invocation{
		Name: c.config.ToolName,
		Args: []string{"open", outputDir},
	})
	if err != nil {
		c.formatter.Failure("Failed to open report: %v", err)
		return false
	}

	return true
}

// checkResults enforces the results precondition shared by render and serve
func (c *Controller) checkResults(resultsDir string) bool {
	if c.scanner.HasArtifacts(resultsDir) {
		return true
	}
	c.formatter.Failure("No Allure results found. Run tests first:")
	c.formatter.Hint("go test -tags e2e ./e2e/...")
	return false
}

// interrupted reports whether the serve call ended because of an operator
// interrupt, either seen by us or only by the child (exit 130 / signal).
func interrupted(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if exitErr.ExitCode() == 130 {
		return true
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return status.Signal() == syscall.SIGINT || status.Signal() == syscall.SIGTERM
	}
	return false
}
