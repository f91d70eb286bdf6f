package commands

import (
	"github.com/spf13/cobra"

	"allurectl/internal/config"
	"allurectl/internal/report"
	"allurectl/internal/ui"
)

// InstallCommand handles the install command
type InstallCommand struct {
	config     *config.Config
	controller *report.Controller
	formatter  *ui.Formatter
}

// NewInstallCommand creates a new InstallCommand
func NewInstallCommand(cfg *config.Config, controller *report.Controller, formatter *ui.Formatter) *InstallCommand {
	return &InstallCommand{
		config:     cfg,
		controller: controller,
		formatter:  formatter,
	}
}

// Execute runs the command
func (ic *InstallCommand) Execute(cmd *cobra.Command, args []string) error {
	if ic.controller.CheckToolAvailable(cmd.Context()) {
		ic.formatter.Success("Allure is already installed")
		return nil
	}
	if !ic.controller.InstallTool(cmd.Context()) {
		return ErrFailed
	}
	return nil
}
