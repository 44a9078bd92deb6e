package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/spherical/legal-analyzer/internal/domain"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "legal-analyzer",
	Short: "Legal document analyzer - plain-language clause summaries with Urdu translation",
	Long: `legal-analyzer reads a PDF, checks that it is a legal document, identifies
the agreement type, extracts the important clauses and rewrites each one in
plain English with an Urdu translation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default $CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// UserMessage returns the text shown for a failed command. Pipeline outcomes
// such as a non-legal document print their message alone.
func UserMessage(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		switch de.Type {
		case domain.ErrorTypeNotFound, domain.ErrorTypeNotLegalDocument, domain.ErrorTypeNoClausesFound:
			return de.Message
		}
	}
	return err.Error()
}
