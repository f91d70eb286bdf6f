package commands

import (
	"github.com/spf13/cobra"

	"allurectl/internal/config"
	"allurectl/internal/report"
	"allurectl/internal/ui"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	config     *config.Config
	controller *report.Controller
	formatter  *ui.Formatter
}

// NewServeCommand creates a new ServeCommand
func NewServeCommand(cfg *config.Config, controller *report.Controller, formatter *ui.Formatter) *ServeCommand {
	return &ServeCommand{
		config:     cfg,
		controller: controller,
		formatter:  formatter,
	}
}

// Execute runs the command
func (sc *ServeCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireTool(cmd, sc.controller, sc.formatter); err != nil {
		return err
	}
	if !sc.controller.Serve(cmd.Context(), sc.config.GetResultsPath()) {
		return ErrFailed
	}
	return nil
}

// requireTool stops serve, generate and open before any real work when the
// report tool is absent
func requireTool(cmd *cobra.Command, controller *report.Controller, formatter *ui.Formatter) error {
	if controller.CheckToolAvailable(cmd.Context()) {
		return nil
	}
	formatter.PrintToolMissing()
	return ErrFailed
}
