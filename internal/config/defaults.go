package config

const (
	// DefaultToolName is the report tool executable
	DefaultToolName = "allure"
	// DefaultResultsDir is where test runs drop result artifacts
	DefaultResultsDir = "allure-results"
	// DefaultReportDir is where rendered reports are written
	DefaultReportDir = "allure-report"
	// DefaultArtifactExt is the extension of result artifacts
	DefaultArtifactExt = ".json"
	// DefaultServePort is the local port used by serve
	DefaultServePort = 8080
	// DefaultSummaryFile is the run summary stored inside the report directory
	DefaultSummaryFile = "allurectl-summary.json"
	// DefaultReportTitle is the report name shown on the overview page
	DefaultReportTitle = "Playwright Test Report"

	// DefaultBaseURL is the site under test
	DefaultBaseURL = "https://playwright.dev"
	// DefaultBrowser is the browser engine used by the harness
	DefaultBrowser = "chromium"
	// DefaultArtifactsDir receives traces kept from failed tests
	DefaultArtifactsDir = "test-results"
	// DefaultTimeout is the page default timeout in milliseconds
	DefaultTimeout = 30000
	// DefaultViewportWidth and DefaultViewportHeight size every page
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// DefaultInstallCommand installs the report tool through npm
var DefaultInstallCommand = []string{"npm", "install", "-g", "allure-commandline"}

// ReservedMetadataFiles live in the results directory but are not test artifacts
var ReservedMetadataFiles = []string{
	"executor.json",
	"categories.json",
}

// DefaultExtraHTTPHeaders are sent with every harness request
var DefaultExtraHTTPHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}
