// Package pdf extracts document text from PDF files.
package pdf

import (
	"context"
	"strings"

	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
)

// PageReader returns per-page text in document order
type PageReader interface {
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// Fetcher materialises a remote path as a local file
type Fetcher interface {
	Fetch(ctx context.Context, path string) (local string, cleanup func(), err error)
}

// Extractor implements domain.TextExtractor on top of a PageReader.
type Extractor struct {
	reader         PageReader
	validator      *Validator
	checkStructure bool
	fetcher        Fetcher
	logger         *observability.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStructureValidation runs pdfcpu validation before reading pages.
func WithStructureValidation(enabled bool) Option {
	return func(e *Extractor) { e.checkStructure = enabled }
}

// WithFetcher enables gs:// inputs.
func WithFetcher(f Fetcher) Option {
	return func(e *Extractor) { e.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l *observability.Logger) Option {
	return func(e *Extractor) { e.logger = l.WithComponent("pdf") }
}

// NewExtractor creates an extractor over reader.
func NewExtractor(reader PageReader, opts ...Option) *Extractor {
	e := &Extractor{
		reader:    reader,
		validator: NewValidator(),
		logger:    observability.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewReader returns the page reader for a configured backend name.
func NewReader(backend string) PageReader {
	if backend == "native" {
		return NewNativeReader()
	}
	return NewFitzReader()
}

// ExtractText returns the trimmed, newline-joined text of all pages that have any.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	log := e.logger.WithContext(ctx)

	if IsRemote(path) {
		if e.fetcher == nil {
			return "", domain.NotFoundError("PDF file not found: remote sources are not enabled", nil)
		}
		local, cleanup, err := e.fetcher.Fetch(ctx, path)
		if err != nil {
			return "", err
		}
		defer cleanup()
		log.Debug().Str("source", path).Str("local", local).Msg("fetched remote PDF")
		path = local
	}

	if err := e.validator.ValidatePath(path); err != nil {
		return "", err
	}

	if e.checkStructure {
		if err := e.validator.ValidateStructure(path); err != nil {
			return "", err
		}
	}

	pages, err := e.reader.ReadPages(ctx, path)
	if err != nil {
		return "", domain.AsCapabilityError("failed to read PDF", err)
	}

	text := JoinPages(pages)
	log.Debug().Int("pages", len(pages)).Int("chars", len(text)).Msg("extracted text")
	return text, nil
}

// JoinPages skips pages that yield no text, joins the rest with newlines and
// trims the result. Whitespace-only pages are kept.
func JoinPages(pages []string) string {
	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
