package classify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// SnippetLength is the number of leading characters sent for agreement-type classification
const SnippetLength = 2000

// AgreementClassifier picks the most likely agreement type with a zero-shot model.
type AgreementClassifier struct {
	model  domain.ZeroShotClassifier
	labels []string
}

// NewAgreementClassifier creates a classifier over domain.AgreementTypes.
func NewAgreementClassifier(model domain.ZeroShotClassifier) *AgreementClassifier {
	return &AgreementClassifier{
		model:  model,
		labels: domain.AgreementTypes,
	}
}

// Classify sends the first SnippetLength characters of text to the model with
// single-label semantics and returns the top label and its score rounded to two decimals.
func (c *AgreementClassifier) Classify(ctx context.Context, text string) (*domain.AgreementClassification, error) {
	res, err := c.model.ClassifyZeroShot(ctx, domain.TruncateRunes(text, SnippetLength), c.labels, false)
	if err != nil {
		return nil, domain.AsCapabilityError("agreement type classification failed", err)
	}

	if len(res.Labels) == 0 || len(res.Labels) != len(res.Scores) {
		return nil, domain.CapabilityError(
			fmt.Sprintf("malformed classification result: %d labels, %d scores", len(res.Labels), len(res.Scores)), nil)
	}

	best := 0
	for i := range res.Scores {
		if res.Scores[i] > res.Scores[best] {
			best = i
		}
	}

	return &domain.AgreementClassification{
		Type:       res.Labels[best],
		Confidence: Round2(res.Scores[best]),
	}, nil
}

// Round2 rounds x to two decimal places. Ties are decided on the exact
// binary value of x, so 0.735 rounds down.
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
