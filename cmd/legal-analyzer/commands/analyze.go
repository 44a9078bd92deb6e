package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spherical/legal-analyzer/cmd/legal-analyzer/ui"
	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/pdf"
	"github.com/spherical/legal-analyzer/internal/report"
)

const defaultDocument = "media/legal_document.pdf"

var (
	analyzeFormat    string
	analyzeOutput    string
	analyzeSkipType  bool
	analyzeThreshold int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pdf]",
	Short: "Analyze a legal PDF",
	Long: `Analyze a PDF and print plain-English and Urdu renditions of its important
clauses. The path may be local or gs://bucket/object. Defaults to ` + defaultDocument + `.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format: text, json or xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeSkipType, "skip-type", false, "skip agreement type classification")
	analyzeCmd.Flags().IntVar(&analyzeThreshold, "threshold", 0, "override the legal keyword threshold")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := defaultDocument
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ui.InitUI(noColor, verbose)

	renderer, err := report.NewRenderer(analyzeFormat)
	if err != nil {
		return err
	}

	// Logs stay quiet under the spinner unless asked for.
	level := "warn"
	if verbose {
		level = ""
	}
	logger := newLogger(cfg, level)

	a, err := buildApp(ctx, cfg, logger, pdf.IsRemote(path))
	if err != nil {
		return err
	}
	defer a.Close()

	opts := a.analyzer.Options()
	if analyzeSkipType {
		opts.ClassifyAgreement = false
	}
	if cmd.Flags().Changed("threshold") {
		if analyzeThreshold < 0 {
			return domain.ValidationError("threshold must not be negative", nil)
		}
		opts.LegalThreshold = analyzeThreshold
	}

	ui.Info("Document: %s", path)
	ui.Info("Provider: %s", cfg.Models.Provider)

	events := make(chan domain.StreamEvent, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ui.TrackAnalysis(events)
	}()

	result, err := a.analyzer.AnalyzeWith(ctx, path, opts, events)
	close(events)
	<-done
	if err != nil {
		return err
	}

	return writeReport(renderer, result, outputPath(path))
}

// outputPath returns where the report goes; "" means stdout. Workbooks are
// never written to a terminal.
func outputPath(document string) string {
	if analyzeOutput != "" || strings.ToLower(analyzeFormat) != string(report.FormatXLSX) {
		return analyzeOutput
	}
	base := filepath.Base(document)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-analysis.xlsx"
}

func writeReport(renderer report.Renderer, result *domain.AnalysisResult, path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := renderer.Render(w, result); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if path != "" {
		ui.Success("Report saved to: %s", path)
	}
	return nil
}
