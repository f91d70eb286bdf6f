//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"allurectl/internal/browsertest"
)

func TestExample(t *testing.T) {
	t.Run("basic navigation", func(t *testing.T) {
		page := suite.NewPage(t, browsertest.WithTag("smoke"))

		_, err := page.Goto("/")
		require.NoError(t, err)

		require.NoError(t, expect.Page(page).ToHaveTitle(homeTitle))
		require.NoError(t, expect.Locator(page.Locator("h1")).ToContainText(homeHeading))
	})

	t.Run("search functionality", func(t *testing.T) {
		page := suite.NewPage(t, browsertest.WithTag("regression"))

		_, err := page.Goto("/")
		require.NoError(t, err)

		require.NoError(t, page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
			Name: "Search (Ctrl+K)",
		}).Click())

		searchBox := page.GetByRole(*playwright.AriaRoleSearchbox, playwright.PageGetByRoleOptions{
			Name: "Search",
		})
		require.NoError(t, searchBox.WaitFor(playwright.LocatorWaitForOptions{
			State: playwright.WaitForSelectorStateVisible,
		}))
		require.NoError(t, searchBox.Fill("python"))

		require.NoError(t, expect.Locator(searchBox).ToHaveValue("python"))
		require.NoError(t, expect.Locator(searchBox).ToBeVisible())
	})

	t.Run("documentation navigation", func(t *testing.T) {
		page := suite.NewPage(t, browsertest.WithTag("slow"))

		_, err := page.Goto("/")
		require.NoError(t, err)

		require.NoError(t, page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
			Name: "Docs",
		}).Click())

		require.NoError(t, expect.Page(page).ToHaveURL(suite.BaseURL()+"/docs/intro"))
		require.NoError(t, expect.Locator(page.Locator("h1")).ToContainText("Installation"))
	})
}
