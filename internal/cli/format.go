package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// PrintSuccess prints a success message with a checkmark to stderr
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(os.Stderr, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol to stderr
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(os.Stderr, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintLabelValue prints a label-value pair to stderr
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(os.Stderr, "  %s: ", label)
	_, _ = valueColor.Fprintln(os.Stderr, value)
}

// writeJSON writes v as indented JSON; results go to stdout so they can be piped.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
