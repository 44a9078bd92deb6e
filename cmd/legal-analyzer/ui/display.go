package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
)

// Error displays an error message.
func Error(format string, args ...interface{}) {
	errorColor.Fprintf(out, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Success displays a success message.
func Success(format string, args ...interface{}) {
	successColor.Fprintf(out, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Info displays an informational message when verbose output is on.
func Info(format string, args ...interface{}) {
	if !verboseFlag {
		return
	}
	infoColor.Fprintf(out, "ℹ %s\n", fmt.Sprintf(format, args...))
}
