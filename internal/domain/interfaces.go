package domain

import "context"

// TextExtractor returns the text of a PDF
type TextExtractor interface {
	// ExtractText reads pages in order, skips pages without text, joins them
	// with newlines and trims the result.
	ExtractText(ctx context.Context, path string) (string, error)
}

// ZeroShotResult holds candidate labels ranked by score
type ZeroShotResult struct {
	Labels []string
	Scores []float64
}

// ZeroShotClassifier assigns one of an arbitrary candidate label set to a text
type ZeroShotClassifier interface {
	ClassifyZeroShot(ctx context.Context, text string, labels []string, multiLabel bool) (*ZeroShotResult, error)
}

// SummaryOptions bounds an abstractive summary, in model tokens
type SummaryOptions struct {
	MaxLength int
	MinLength int
	DoSample  bool
}

// Summarizer produces an abstractive summary
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// Translator translates English text into the target language
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Analyzer runs the whole pipeline for one document
type Analyzer interface {
	Analyze(ctx context.Context, path string, eventCh chan<- StreamEvent) (*AnalysisResult, error)
}
