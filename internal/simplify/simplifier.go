// Package simplify rewrites clause text as a short plain-English summary.
package simplify

import (
	"context"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// MaxInputLength is the most characters of a clause passed to the summarizer
const MaxInputLength = 1024

// DefaultOptions are the decoding bounds used for every clause
var DefaultOptions = domain.SummaryOptions{
	MaxLength: 60,
	MinLength: 25,
	DoSample:  false,
}

// Simplifier summarizes clause text.
type Simplifier struct {
	model domain.Summarizer
	opts  domain.SummaryOptions
}

// NewSimplifier creates a simplifier with DefaultOptions.
func NewSimplifier(model domain.Summarizer) *Simplifier {
	return &Simplifier{model: model, opts: DefaultOptions}
}

// Simplify truncates text to MaxInputLength characters and summarizes it.
func (s *Simplifier) Simplify(ctx context.Context, text string) (string, error) {
	summary, err := s.model.Summarize(ctx, domain.TruncateRunes(text, MaxInputLength), s.opts)
	if err != nil {
		return "", domain.AsCapabilityError("summarization failed", err)
	}
	return summary, nil
}
