package main

import (
	"errors"
	"fmt"
	"os"

	"allurectl/internal/cli"
	"allurectl/internal/cli/commands"
	"allurectl/internal/config"
	"allurectl/internal/execution"
	"allurectl/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "allurectl",
		Short:   "Allure report generator for the browser test suite",
		Long:    `Install the Allure command line tool, then generate, serve or open reports built from the allure-results directory written by the browser tests.`,
		Version: version,
	}

	// Load config from defaults, .env and E2E_* variables
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	runner := execution.NewRunner(cfg, nil)
	cmds := commands.NewCommands(cfg, runner, ui.NewFormatter(rootCmd.Use))

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	err = rootCmd.Execute()
	_ = zap.L().Sync()
	if errors.Is(err, commands.ErrFailed) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
