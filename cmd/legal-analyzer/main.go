package main

import (
	"os"

	"github.com/spherical/legal-analyzer/cmd/legal-analyzer/commands"
	"github.com/spherical/legal-analyzer/cmd/legal-analyzer/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.Error("%s", commands.UserMessage(err))
		os.Exit(1)
	}
}
