// Package pages holds page objects for the site under test
package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// HomePage is the site landing page
type HomePage struct {
	page playwright.Page

	SearchButton playwright.Locator
	DocsLink     playwright.Locator
	MainHeading  playwright.Locator
	SearchBox    playwright.Locator
}

// NewHomePage binds the landing page locators to page
func NewHomePage(page playwright.Page) *HomePage {
	return &HomePage{
		page: page,
		SearchButton: page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
			Name: "Search (Ctrl+K)",
		}),
		DocsLink: page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
			Name: "Docs",
		}),
		MainHeading: page.Locator("h1"),
		SearchBox: page.GetByRole(*playwright.AriaRoleSearchbox, playwright.PageGetByRoleOptions{
			Name: "Search",
		}),
	}
}

// Navigate opens the landing page relative to the context base URL
func (h *HomePage) Navigate() error {
	if _, err := h.page.Goto("/"); err != nil {
		return fmt.Errorf("navigate to home: %w", err)
	}
	return nil
}

// Search opens the search dialog and types query
func (h *HomePage) Search(query string) error {
	if err := h.SearchButton.Click(); err != nil {
		return fmt.Errorf("open search: %w", err)
	}
	if err := h.SearchBox.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("wait for search box: %w", err)
	}
	return h.SearchBox.Fill(query)
}

// GoToDocs follows the documentation link
func (h *HomePage) GoToDocs() error {
	return h.DocsLink.Click()
}
