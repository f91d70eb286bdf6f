package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"allurectl/internal/domain"
)

// maxTraceLines caps the stack trace shown in the details pane
const maxTraceLines = 15

// FailureViewer displays failed results in an interactive TUI
type FailureViewer struct {
	resultsDir string
}

// NewFailureViewer creates a new FailureViewer. resultsDir is used to show
// where attachments live.
func NewFailureViewer(resultsDir string) *FailureViewer {
	return &FailureViewer{resultsDir: resultsDir}
}

// View displays failures in an interactive TUI
func (fv *FailureViewer) View(failures []domain.Result) error {
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	// Reviewed entries are tracked for this session only
	reviewed := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	getListItemText := func(index int) string {
		failure := failures[index]
		name := failure.Name
		if name == "" {
			name = fmt.Sprintf("Test %d", index+1)
		}
		if reviewed[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range failures {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	// List on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		pending := 0
		for i := range failures {
			if !reviewed[i] {
				pending++
			}
		}
		headerView.SetText(fmt.Sprintf(" Test Failures (%d total, %d to review) | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, Ctrl+C exit ", len(failures), pending))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(fv.formatFailureStats(failures[index]))
			detailsView.SetText(fv.formatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					reviewed[index] = !reviewed[index]
					list.SetItemText(index, getListItemText(index), "")
					updateHeader()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatFailureDetails formats a failed result for display using tview color tags ([red], [cyan], etc.)
func (fv *FailureViewer) formatFailureDetails(failure domain.Result) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ %s: %s[white]\n\n", strings.ToUpper(string(failure.Status)), tview.Escape(failure.Name))

	if failure.FullName != "" {
		fmt.Fprintf(w, "[cyan]Full name:[white]\t%s\n", tview.Escape(failure.FullName))
	}
	if d := failure.DurationMillis(); d > 0 {
		fmt.Fprintf(w, "[cyan]Duration:[white]\t%s\n", time.Duration(d)*time.Millisecond)
	}
	for _, label := range failure.Labels {
		fmt.Fprintf(w, "[cyan]%s:[white]\t%s\n", tview.Escape(label.Name), tview.Escape(label.Value))
	}
	fmt.Fprintf(w, "\n")

	if msg := failure.StatusDetails.Message; msg != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", tview.Escape(msg))
	}

	if trace := failure.StatusDetails.Trace; trace != "" {
		lines := strings.Split(strings.TrimSpace(trace), "\n")
		fmt.Fprintf(w, "[yellow]Trace:[white]\n")
		for i, line := range lines {
			if i == maxTraceLines {
				fmt.Fprintf(w, "  [gray]... and %d more lines[white]\n", len(lines)-maxTraceLines)
				break
			}
			fmt.Fprintf(w, "  %s\n", tview.Escape(line))
		}
		fmt.Fprintf(w, "\n")
	}

	if len(failure.Attachments) > 0 {
		fmt.Fprintf(w, "[yellow]Attachments:[white]\n")
		for _, att := range failure.Attachments {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", tview.Escape(att.Name), att.Type, filepath.Join(fv.resultsDir, att.Source))
		}
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the header line for a failed result
func (fv *FailureViewer) formatFailureStats(failure domain.Result) string {
	suite := failure.Label("suite")
	if suite == "" {
		suite = "Unknown suite"
	}
	severity := failure.Label("severity")
	if severity == "" {
		severity = "normal"
	}

	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white] | [cyan]severity:[white] [yellow]%s[white]\n",
		tview.Escape(suite), tview.Escape(severity))
}
