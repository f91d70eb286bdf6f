package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"allurectl/internal/cli"
	"allurectl/internal/config"
	"allurectl/internal/discovery"
	"allurectl/internal/execution"
	"allurectl/internal/observability"
	"allurectl/internal/parser"
	"allurectl/internal/report"
	"allurectl/internal/storage"
	"allurectl/internal/ui"
)

// ErrFailed signals that an operation failed and already told the user why.
// main maps it to a non-zero exit status without printing anything else.
var ErrFailed = errors.New("operation failed")

// Commands holds all CLI commands
type Commands struct {
	Install  *InstallCommand
	Serve    *ServeCommand
	Generate *GenerateCommand
	Open     *OpenCommand

	formatter *ui.Formatter
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, executor execution.Executor, formatter *ui.Formatter) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.ArtifactExt, config.ReservedMetadataFiles)
	filter := discovery.NewFilter()
	allureParser := parser.NewAllureParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	viewer := ui.NewFailureViewer(cfg.GetResultsPath())

	controller := report.NewController(cfg, executor, scanner, formatter, nil)
	controller.OnBeforeRender(report.TitleHook(cfg.ReportTitle))
	controller.OnBeforeRender(report.EnvironmentHook(map[string]string{
		"Base.URL": cfg.Browser.BaseURL,
		"Browser":  cfg.Browser.Browser,
		"Headless": strconv.FormatBool(cfg.Browser.Headless),
	}))

	return &Commands{
		Install:   NewInstallCommand(cfg, controller, formatter),
		Serve:     NewServeCommand(cfg, controller, formatter),
		Generate:  NewGenerateCommand(cfg, controller, scanner, filter, allureParser, jsonStorage, formatter, viewer),
		Open:      NewOpenCommand(cfg, controller, jsonStorage, formatter),
		formatter: formatter,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	cobra.EnableCaseInsensitive = true

	rootCmd.Args = cobra.ArbitraryArgs
	rootCmd.RunE = c.Dispatch
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	// help is not one of the commands, so it gets the unknown-command message
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.formatter.PrintUnknownCommand(cmd.Name())
		},
	})
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every external command with timings")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Flags = flags.ToConfigFlags()
		zap.ReplaceGlobals(observability.NewLogger(flags.Verbose))
		return nil
	}

	// Install command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Install Allure CLI",
		Long:  "Install the Allure command line tool via npm unless it is already available",
		Args:  cobra.NoArgs,
		RunE:  c.Install.Execute,
	})

	// Serve command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve report locally",
		Long:  "Render the results into a temporary report and serve it on localhost until interrupted",
		Args:  cobra.NoArgs,
		RunE:  c.Serve.Execute,
	})

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate static report",
		Long:  "Render the results directory into a static report, replacing any previous report",
		Args:  cobra.NoArgs,
		RunE:  c.Generate.Execute,
	}
	generateCmd.Flags().BoolVar(&flags.ShowFailures, "failures", false, "Browse failed tests interactively after generating")
	generateCmd.Flags().StringVarP(&flags.FailureFilter, "filter", "f", "", "Filter listed failures by test name (supports wildcards, e.g. 'TestSearch*' or '*Docs*')")
	rootCmd.AddCommand(generateCmd)

	// Open command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "open",
		Short: "Open generated report",
		Long:  "Open a previously generated report in the browser",
		Args:  cobra.NoArgs,
		RunE:  c.Open.Execute,
	})
}

// Dispatch handles the root command: usage without a token, an
// unknown-command message otherwise. Neither invokes anything external.
func (c *Commands) Dispatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		c.formatter.PrintUsage()
		return nil
	}
	c.formatter.PrintUnknownCommand(strings.ToLower(args[0]))
	return nil
}
