package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Report tool settings
	ToolName       string
	InstallCommand []string
	ServePort      int
	ReportTitle    string

	// Filesystem conventions
	ResultsDir  string
	ReportDir   string
	ArtifactExt string
	SummaryFile string

	// Browser harness settings
	Browser BrowserConfig

	// Command flags
	Flags Flags
}

// BrowserConfig configures the browser test harness
type BrowserConfig struct {
	BaseURL           string
	Browser           string
	Headless          bool
	SlowMo            float64
	Timeout           float64
	ViewportWidth     int
	ViewportHeight    int
	IgnoreHTTPSErrors bool
	ExtraHTTPHeaders  map[string]string

	// Opt-in capture
	Tracing          bool
	CaptureOnFailure bool
	ArtifactsDir     string
}

// Flags holds command-line flags
type Flags struct {
	Verbose       bool
	ShowFailures  bool
	FailureFilter string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: ".",
		ToolName:    DefaultToolName,
		ServePort:   DefaultServePort,
		ReportTitle: DefaultReportTitle,
		ResultsDir:  DefaultResultsDir,
		ReportDir:   DefaultReportDir,
		ArtifactExt: DefaultArtifactExt,
		SummaryFile: DefaultSummaryFile,
		Browser: BrowserConfig{
			BaseURL:           DefaultBaseURL,
			Browser:           DefaultBrowser,
			Headless:          true,
			Timeout:           DefaultTimeout,
			ViewportWidth:     DefaultViewportWidth,
			ViewportHeight:    DefaultViewportHeight,
			IgnoreHTTPSErrors: true,
			CaptureOnFailure:  true,
			ArtifactsDir:      DefaultArtifactsDir,
		},
	}
	cfg.InstallCommand = make([]string, len(DefaultInstallCommand))
	copy(cfg.InstallCommand, DefaultInstallCommand)
	cfg.Browser.ExtraHTTPHeaders = make(map[string]string, len(DefaultExtraHTTPHeaders))
	for k, v := range DefaultExtraHTTPHeaders {
		cfg.Browser.ExtraHTTPHeaders[k] = v
	}
	return cfg
}

// Load creates a config for the project at projectPath and applies
// .env and E2E_* environment overrides. Report paths are not overridable.
// A missing .env is fine, an unreadable or malformed one is an error.
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	// .env is optional, real environment variables win
	envFile := filepath.Join(cfg.ProjectPath, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix("e2e")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", cfg.Browser.BaseURL)
	v.SetDefault("browser", cfg.Browser.Browser)
	v.SetDefault("headless", cfg.Browser.Headless)
	v.SetDefault("slow_mo", cfg.Browser.SlowMo)
	v.SetDefault("timeout", cfg.Browser.Timeout)
	v.SetDefault("tracing", cfg.Browser.Tracing)
	v.SetDefault("capture_on_failure", cfg.Browser.CaptureOnFailure)
	v.SetDefault("report_title", cfg.ReportTitle)

	cfg.Browser.BaseURL = strings.TrimRight(v.GetString("base_url"), "/")
	cfg.Browser.Browser = strings.ToLower(v.GetString("browser"))
	cfg.Browser.Headless = v.GetBool("headless")
	cfg.Browser.SlowMo = v.GetFloat64("slow_mo")
	cfg.Browser.Timeout = v.GetFloat64("timeout")
	cfg.Browser.Tracing = v.GetBool("tracing")
	cfg.Browser.CaptureOnFailure = v.GetBool("capture_on_failure")
	cfg.ReportTitle = v.GetString("report_title")

	return cfg, nil
}

// GetResultsPath returns the results directory under the project
func (c *Config) GetResultsPath() string {
	return filepath.Join(c.ProjectPath, c.ResultsDir)
}

// GetReportPath returns the report directory under the project
func (c *Config) GetReportPath() string {
	return filepath.Join(c.ProjectPath, c.ReportDir)
}

// GetSummaryPath returns the stored run summary path.
// Resolves to an absolute path so generate and open always agree regardless of cwd.
func (c *Config) GetSummaryPath() string {
	p := filepath.Join(c.GetReportPath(), c.SummaryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetArtifactsPath returns where harness traces are kept
func (c *Config) GetArtifactsPath() string {
	if filepath.IsAbs(c.Browser.ArtifactsDir) {
		return c.Browser.ArtifactsDir
	}
	return filepath.Join(c.ProjectPath, c.Browser.ArtifactsDir)
}
