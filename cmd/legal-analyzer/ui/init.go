// Package ui provides console feedback for the legal-analyzer CLI.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	verboseFlag bool

	// out receives progress and status lines; stdout carries reports.
	out io.Writer = os.Stderr
)

// InitUI initializes the UI with color and verbose settings.
func InitUI(noColor, verbose bool) {
	verboseFlag = verbose
	if noColor {
		color.NoColor = true
	}
}
