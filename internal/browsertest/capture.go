package browsertest

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

// Capture grabs the state of the page under test
type Capture interface {
	Screenshot() ([]byte, error)
	Content() (string, error)
}

// Attacher adds an artifact to the current test's report entry
type Attacher interface {
	Attach(name, mimeType, ext string, body []byte) error
}

// FailureObserver runs after a failed test, before its page is closed
type FailureObserver func(t testing.TB, capture Capture, attacher Attacher)

// CaptureOnFailure attaches a full-page screenshot and the page HTML
func CaptureOnFailure(t testing.TB, capture Capture, attacher Attacher) {
	if shot, err := capture.Screenshot(); err != nil {
		t.Logf("capture screenshot: %v", err)
	} else if err := attacher.Attach("screenshot", "image/png", ".png", shot); err != nil {
		t.Logf("attach screenshot: %v", err)
	}

	if html, err := capture.Content(); err != nil {
		t.Logf("capture page content: %v", err)
	} else if err := attacher.Attach("page content", "text/html", ".html", []byte(html)); err != nil {
		t.Logf("attach page content: %v", err)
	}
}

type pageCapture struct {
	page playwright.Page
}

func (c pageCapture) Screenshot() ([]byte, error) {
	return c.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

func (c pageCapture) Content() (string, error) {
	return c.page.Content()
}
