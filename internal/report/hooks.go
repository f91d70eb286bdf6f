package report

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"allurectl/internal/storage"
)

// RenderHook adds report metadata to stageDir, a private copy of the results
// the report tool reads instead of the results directory
type RenderHook func(stageDir string) error

// OnBeforeRender registers a hook run once per render or serve, after the
// results precondition passed and before the tool is invoked.
func (c *Controller) OnBeforeRender(hook RenderHook) {
	c.hooks = append(c.hooks, hook)
}

// prepare runs the hooks against a staged copy of resultsDir and returns the
// directory to hand to the tool. Without hooks that is resultsDir itself.
// cleanup must be called once the tool has finished.
func (c *Controller) prepare(resultsDir string) (dir string, cleanup func(), ok bool) {
	if len(c.hooks) == 0 {
		return resultsDir, func() {}, true
	}

	stageDir, err := stageResults(resultsDir)
	if err != nil {
		c.formatter.Failure("Failed to prepare report: %v", err)
		return "", nil, false
	}
	cleanup = func() {
		if err := os.RemoveAll(stageDir); err != nil {
			c.log().Debug("Could not remove staging dir", zap.String("dir", stageDir), zap.Error(err))
		}
	}

	for _, hook := range c.hooks {
		if err := hook(stageDir); err != nil {
			cleanup()
			c.formatter.Failure("Failed to prepare report: %v", err)
			return "", nil, false
		}
	}
	return stageDir, cleanup, true
}

// TitleHook sets the report title shown on the overview page
func TitleHook(title string) RenderHook {
	return func(stageDir string) error {
		if title == "" {
			return nil
		}
		if err := storage.NewResultWriter(stageDir).WriteExecutor(title); err != nil {
			return fmt.Errorf("set report title: %w", err)
		}
		return nil
	}
}

// EnvironmentHook publishes props in the report's environment widget
func EnvironmentHook(props map[string]string) RenderHook {
	return func(stageDir string) error {
		if len(props) == 0 {
			return nil
		}
		if err := storage.NewResultWriter(stageDir).WriteEnvironment(props); err != nil {
			return fmt.Errorf("set report environment: %w", err)
		}
		return nil
	}
}
