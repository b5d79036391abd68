package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/danieljhkim/foldmerge/internal/engine"
	"github.com/danieljhkim/foldmerge/internal/report"
)

var (
	// Color functions - fatih/color disables them when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = valueColor.Println(value)
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintCount formats a count with the right noun form
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// PrintEntry renders one log entry, colored by severity.
func PrintEntry(e report.Entry) {
	switch e.Severity {
	case report.SeverityWarn:
		_, _ = warningColor.Println(e.String())
	case report.SeverityError:
		_, _ = errorColor.Fprintln(os.Stderr, e.String())
	default:
		_, _ = infoColor.Println(e.String())
	}
}

// PrintStats renders the run counters as a label-value block.
func PrintStats(stats engine.Stats) {
	PrintLabelValue("Folders merged", fmt.Sprintf("%d", stats.FoldersMerged))
	PrintLabelValue("Folders renamed", fmt.Sprintf("%d", stats.FoldersRenamed))
	PrintLabelValue("Files moved", fmt.Sprintf("%d", stats.FilesMoved))
	PrintLabelValue("Name conflicts", fmt.Sprintf("%d", stats.NameConflicts))
	PrintLabelValue("Items skipped", fmt.Sprintf("%d", stats.ItemsSkipped))
	PrintLabelValue("Dirs removed", fmt.Sprintf("%d", stats.DirsRemoved))
	PrintLabelValue("Operations", fmt.Sprintf("%d done, %d failed, %d skipped",
		stats.OperationsDone, stats.OperationsFailed, stats.OperationsSkipped))
}
