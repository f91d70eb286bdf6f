package commands

import (
	"github.com/spf13/cobra"

	"allurectl/internal/config"
	"allurectl/internal/discovery"
	"allurectl/internal/domain"
	"allurectl/internal/parser"
	"allurectl/internal/report"
	"allurectl/internal/storage"
	"allurectl/internal/ui"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config     *config.Config
	controller *report.Controller
	scanner    *discovery.Scanner
	filter     *discovery.Filter
	parser     *parser.AllureParser
	storage    storage.Storage
	formatter  *ui.Formatter
	viewer     ui.Viewer
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(
	cfg *config.Config,
	controller *report.Controller,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	parser *parser.AllureParser,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *GenerateCommand {
	return &GenerateCommand{
		config:     cfg,
		controller: controller,
		scanner:    scanner,
		filter:     filter,
		parser:     parser,
		storage:    st,
		formatter:  formatter,
		viewer:     viewer,
	}
}

// SetViewer replaces the failure viewer
func (gc *GenerateCommand) SetViewer(viewer ui.Viewer) {
	gc.viewer = viewer
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireTool(cmd, gc.controller, gc.formatter); err != nil {
		return err
	}

	resultsDir := gc.config.GetResultsPath()
	reportDir := gc.config.GetReportPath()
	if !gc.controller.Render(cmd.Context(), resultsDir, reportDir) {
		return ErrFailed
	}

	// The report exists at this point; summary problems are only warnings
	summary, err := gc.summarize(resultsDir, reportDir)
	if err != nil {
		gc.formatter.Hint("Could not summarize results: %v", err)
		return nil
	}
	if err := gc.storage.Save(summary); err != nil {
		gc.formatter.Hint("Could not store summary: %v", err)
	}
	gc.formatter.PrintSummary(summary)

	if gc.config.Flags.ShowFailures {
		failures := gc.filter.FilterByName(summary.Failures, gc.config.Flags.FailureFilter)
		return gc.viewer.View(failures)
	}
	return nil
}

func (gc *GenerateCommand) summarize(resultsDir, reportDir string) (*domain.Summary, error) {
	artifacts, err := gc.scanner.Scan(resultsDir)
	if err != nil {
		return nil, err
	}

	progress := ui.NewProgressBar(len(artifacts), "Reading results: ")
	results, errs := gc.parser.ParseAll(artifacts, progress.Increment)
	progress.Finish()
	for _, err := range errs {
		gc.formatter.Hint("Skipped unreadable result: %v", err)
	}

	summary := gc.parser.Summarize(results)
	summary.Meta.ResultsDir = resultsDir
	summary.Meta.ReportDir = reportDir
	return &summary, nil
}
