// Package translate renders simplified clause text in the target language.
package translate

import (
	"context"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// Service translates one text per call.
type Service struct {
	model domain.Translator
}

// NewService wraps a translation capability.
func NewService(model domain.Translator) *Service {
	return &Service{model: model}
}

// Translate sends text to the model in a single pass.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	out, err := s.model.Translate(ctx, text)
	if err != nil {
		return "", domain.AsCapabilityError("translation failed", err)
	}
	return out, nil
}
