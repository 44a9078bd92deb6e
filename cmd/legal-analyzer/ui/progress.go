package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// ProgressBar wraps a progressbar instance for per-clause progress.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a new progress bar with the given total and description.
func NewProgressBar(total int64, description string) *ProgressBar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Set moves the bar to current.
func (p *ProgressBar) Set(current int64) {
	_ = p.bar.Set64(current)
}

// Describe replaces the bar description.
func (p *ProgressBar) Describe(description string) {
	p.bar.Describe(description)
}

// Finish completes the progress bar.
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

// Spinner wraps a spinner instance for indeterminate progress display.
type Spinner struct {
	spinner *spinner.Spinner
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = out
	return &Spinner{spinner: s}
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	s.spinner.Start()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// UpdateMessage updates the spinner's message.
func (s *Spinner) UpdateMessage(message string) {
	s.spinner.Lock()
	s.spinner.Suffix = " " + message
	s.spinner.Unlock()
}

var stageMessages = map[domain.Stage]string{
	domain.StageExtractText:    "Extracting text from PDF...",
	domain.StageClassifyLegal:  "Checking for legal content...",
	domain.StageClassifyType:   "Classifying agreement type...",
	domain.StageExtractClauses: "Finding important clauses...",
	domain.StageAssemble:       "Assembling results...",
}

// TrackAnalysis renders events from an analysis run until events is closed.
// Stages drive a spinner; clause processing drives a progress bar.
func TrackAnalysis(events <-chan domain.StreamEvent) {
	spin := NewSpinner("Starting analysis...")
	spin.Start()
	spinning := true

	var bar *ProgressBar

	stopSpinner := func() {
		if spinning {
			spin.Stop()
			spinning = false
		}
	}

	for ev := range events {
		switch ev.Type {
		case domain.EventStage:
			if msg, ok := stageMessages[ev.Stage]; ok && spinning {
				spin.UpdateMessage(msg)
			}
		case domain.EventClauseProcessing:
			stopSpinner()
			if bar == nil {
				bar = NewProgressBar(int64(ev.Total), "Simplifying clauses")
			}
			bar.Describe(fmt.Sprintf("Simplifying %-16s", ev.Clause))
		case domain.EventClauseComplete:
			if bar != nil {
				bar.Set(int64(ev.Index))
			}
		case domain.EventComplete, domain.EventError:
			stopSpinner()
			if bar != nil && ev.Type == domain.EventComplete {
				bar.Finish()
			}
		}
	}
	stopSpinner()
}
