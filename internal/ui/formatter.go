package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"allurectl/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Commands lists the report commands in the order they are advertised
var Commands = []string{"serve", "generate", "open", "install"}

// Formatter formats and displays output
type Formatter struct {
	out     io.Writer
	command string
}

// NewFormatter creates a new Formatter writing to stdout.
// command is how users invoke the tool in hints, e.g. "allurectl".
func NewFormatter(command string) *Formatter {
	return NewFormatterTo(os.Stdout, command)
}

// NewFormatterTo creates a new Formatter writing to out
func NewFormatterTo(out io.Writer, command string) *Formatter {
	return &Formatter{out: out, command: command}
}

// Command returns the invocation used in hints
func (f *Formatter) Command() string {
	return f.command
}

// Printf prints a plain line
func (f *Formatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.out, format+"\n", args...)
}

// Step announces an action that is about to run
func (f *Formatter) Step(icon, format string, args ...any) {
	cyan.Fprintf(f.out, icon+" "+format+"\n", args...)
}

// Success prints a green confirmation
func (f *Formatter) Success(format string, args ...any) {
	green.Fprintf(f.out, "✅ "+format+"\n", args...)
}

// Failure prints a red error line
func (f *Formatter) Failure(format string, args ...any) {
	red.Fprintf(f.out, "❌ "+format+"\n", args...)
}

// Hint prints an indented follow-up instruction
func (f *Formatter) Hint(format string, args ...any) {
	yellow.Fprintf(f.out, "   "+format+"\n", args...)
}

// PrintUsage prints the help text shown when no command is given
func (f *Formatter) PrintUsage() {
	title := "Allure Report Generator"
	cyan.Fprintln(f.out, title)
	fmt.Fprintln(f.out, strings.Repeat("=", 30))
	fmt.Fprintln(f.out, "Usage:")
	descriptions := map[string]string{
		"serve":    "Serve report locally",
		"generate": "Generate static report",
		"open":     "Open generated report",
		"install":  "Install Allure CLI",
	}
	for _, cmd := range Commands {
		fmt.Fprintf(f.out, "  %-28s # %s\n", f.command+" "+cmd, descriptions[cmd])
	}
}

// PrintUnknownCommand reports an unrecognized command token
func (f *Formatter) PrintUnknownCommand(token string) {
	f.Failure("Unknown command: %s", token)
	fmt.Fprintf(f.out, "Available commands: %s\n", strings.Join(Commands, ", "))
}

// PrintToolMissing tells the user to install the report tool first
func (f *Formatter) PrintToolMissing() {
	f.Failure("Allure not installed. Run '%s install' first", f.command)
}

// PrintSummary displays the statistics of a rendered report
func (f *Formatter) PrintSummary(summary *domain.Summary) {
	meta := summary.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                      Test Report Statistics                   ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Tests", fmt.Sprint(meta.TotalTests), white},
		{"Passed", fmt.Sprint(meta.PassedTests), green},
		{"Failed", fmt.Sprint(meta.FailedTests), red},
		{"Broken", fmt.Sprint(meta.BrokenTests), yellow},
		{"Skipped", fmt.Sprint(meta.SkippedTests), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Report", meta.ReportDir, white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	failed := meta.FailedTests + meta.BrokenTests
	if failed == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d test(s) failed or broken\n", failed)
	fmt.Fprintln(f.out)
	f.printFailuresBySuite(summary.Failures)
}

// printFailuresBySuite prints failed tests grouped by their suite label
func (f *Formatter) printFailuresBySuite(failures []domain.Result) {
	suites := make(map[string][]domain.Result)
	for _, failure := range failures {
		suite := failure.Label("suite")
		if suite == "" {
			suite = "(no suite)"
		}
		suites[suite] = append(suites[suite], failure)
	}

	var names []string
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cyan.Fprintln(f.out, name)
		for _, failure := range suites[name] {
			red.Fprintf(f.out, "  |_ ✗ %s", failure.Name)
			if msg := firstLine(failure.StatusDetails.Message); msg != "" {
				yellow.Fprintf(f.out, " (%s)", msg)
			}
			fmt.Fprintln(f.out)
		}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
