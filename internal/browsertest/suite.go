// Package browsertest provides browser fixtures for end-to-end tests that
// record every test as a report result artifact.
//
// A Suite owns the driver and browser for a whole test binary; start it in
// TestMain. NewPage gives each test an isolated context and page and records
// the outcome when the test ends:
//
//	func TestMain(m *testing.M) {
//		cfg, err := config.Load("..")
//		...
//		suite = browsertest.NewSuite(cfg)
//		if err := suite.Start(); err != nil { ... }
//		code := m.Run()
//		suite.Stop()
//		os.Exit(code)
//	}
package browsertest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/playwright-community/playwright-go"

	"allurectl/internal/config"
	"allurectl/internal/storage"
)

// Suite manages the driver and browser shared by all tests in a binary
type Suite struct {
	config    *config.Config
	writer    *storage.ResultWriter
	observers []FailureObserver

	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewSuite creates a Suite writing results into the configured results
// directory. Failure capture is registered when enabled in config.
func NewSuite(cfg *config.Config) *Suite {
	s := &Suite{
		config: cfg,
		writer: storage.NewResultWriter(cfg.GetResultsPath()),
	}
	if cfg.Browser.CaptureOnFailure {
		s.OnFailure(CaptureOnFailure)
	}
	return s
}

// OnFailure registers an observer run for every failed test
func (s *Suite) OnFailure(observer FailureObserver) {
	s.observers = append(s.observers, observer)
}

// BaseURL returns the site under test
func (s *Suite) BaseURL() string {
	return s.config.Browser.BaseURL
}

// Start installs the driver and browser if needed, then launches the browser
func (s *Suite) Start() error {
	browserName := s.config.Browser.Browser
	runOptions := &playwright.RunOptions{Browsers: []string{browserName}}
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(runOptions); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run(runOptions)
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	s.pw = pw

	browserType, err := s.browserType()
	if err != nil {
		s.Stop()
		return err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.config.Browser.Headless),
		SlowMo:   playwright.Float(s.config.Browser.SlowMo),
	})
	if err != nil {
		s.Stop()
		return fmt.Errorf("could not launch %s: %w", browserName, err)
	}
	s.browser = browser

	return nil
}

func (s *Suite) browserType() (playwright.BrowserType, error) {
	switch s.config.Browser.Browser {
	case "chromium", "":
		return s.pw.Chromium, nil
	case "firefox":
		return s.pw.Firefox, nil
	case "webkit":
		return s.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser %q (chromium, firefox, webkit)", s.config.Browser.Browser)
	}
}

// Stop closes the browser and the driver
func (s *Suite) Stop() {
	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	if s.pw != nil {
		_ = s.pw.Stop()
		s.pw = nil
	}
}

// NewPage opens an isolated context and page for t. The context is closed
// and the test's result recorded when t finishes, including when setup fails.
func (s *Suite) NewPage(t testing.TB, opts ...PageOption) playwright.Page {
	t.Helper()

	// registered first so it runs last, after the page cleanup below
	rec := newRecorder(t, s.writer, opts...)
	t.Cleanup(func() {
		if err := rec.finish(t); err != nil {
			t.Logf("%v", err)
		}
	})

	if s.browser == nil {
		t.Fatal("browser suite not started")
	}

	ctx, err := s.browser.NewContext(s.contextOptions())
	if err != nil {
		t.Fatalf("could not create context: %v", err)
	}

	tracing := s.config.Browser.Tracing
	if tracing {
		if err := ctx.Tracing().Start(playwright.TracingStartOptions{
			Name:        playwright.String(t.Name()),
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
			Sources:     playwright.Bool(true),
		}); err != nil {
			t.Logf("could not start tracing: %v", err)
			tracing = false
		}
	}

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		t.Fatalf("could not create page: %v", err)
	}
	page.SetDefaultTimeout(s.config.Browser.Timeout)

	t.Cleanup(func() {
		failed := t.Failed()
		if failed {
			for _, observer := range s.observers {
				observer(t, pageCapture{page: page}, rec)
			}
		}
		if tracing {
			s.stopTracing(t, ctx, rec, failed)
		}
		if err := ctx.Close(); err != nil {
			t.Logf("could not close context: %v", err)
		}
	})

	return page
}

func (s *Suite) contextOptions() playwright.BrowserNewContextOptions {
	b := s.config.Browser
	return playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(b.BaseURL),
		Viewport: &playwright.Size{
			Width:  b.ViewportWidth,
			Height: b.ViewportHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(b.IgnoreHTTPSErrors),
		ExtraHttpHeaders:  b.ExtraHTTPHeaders,
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// stopTracing keeps the trace of failed tests only, on disk and in the report
func (s *Suite) stopTracing(t testing.TB, ctx playwright.BrowserContext, rec *recorder, failed bool) {
	if !failed {
		if err := ctx.Tracing().Stop(); err != nil {
			t.Logf("could not stop tracing: %v", err)
		}
		return
	}

	dir := s.config.GetArtifactsPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Logf("could not create artifacts dir: %v", err)
		return
	}
	path := filepath.Join(dir, unsafeFileChars.ReplaceAllString(t.Name(), "_")+"-trace.zip")
	if err := ctx.Tracing().Stop(path); err != nil {
		t.Logf("could not save trace: %v", err)
		return
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Logf("could not read trace: %v", err)
		return
	}
	if err := rec.Attach("trace", "application/zip", ".zip", body); err != nil {
		t.Logf("could not attach trace: %v", err)
	}
}
