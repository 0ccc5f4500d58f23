package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func printTitle(format string, args ...any) {
	fmt.Println(titleStyle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) {
	fmt.Println(successStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(warningStyle.Render("!") + " " + fmt.Sprintf(format, args...))
}

func printFailure(format string, args ...any) {
	fmt.Println(errorStyle.Render("✗") + " " + fmt.Sprintf(format, args...))
}

func printNote(format string, args ...any) {
	fmt.Println(dimStyle.Render(fmt.Sprintf(format, args...)))
}

// newTable returns a tabwriter on stdout with the column layout every list
// command shares. Callers must Flush.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
}
