package commands

import (
	"github.com/spf13/cobra"

	"allurectl/internal/config"
	"allurectl/internal/report"
	"allurectl/internal/storage"
	"allurectl/internal/ui"
)

// OpenCommand handles the open command
type OpenCommand struct {
	config     *config.Config
	controller *report.Controller
	storage    storage.Storage
	formatter  *ui.Formatter
}

// NewOpenCommand creates a new OpenCommand
func NewOpenCommand(cfg *config.Config, controller *report.Controller, st storage.Storage, formatter *ui.Formatter) *OpenCommand {
	return &OpenCommand{
		config:     cfg,
		controller: controller,
		storage:    st,
		formatter:  formatter,
	}
}

// Execute runs the command
func (oc *OpenCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireTool(cmd, oc.controller, oc.formatter); err != nil {
		return err
	}

	// Reports rendered by the tool directly have no stored summary
	if summary, err := oc.storage.Load(); err == nil {
		oc.formatter.PrintSummary(summary)
	}

	if !oc.controller.Open(cmd.Context(), oc.config.GetReportPath()) {
		return ErrFailed
	}
	return nil
}
