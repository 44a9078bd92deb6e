package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spherical/legal-analyzer/internal/domain"
)

// Generator produces a completion for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatModel implements the pipeline capabilities on top of a chat Generator
// by prompting.
type ChatModel struct {
	gen            Generator
	targetLanguage string
	timeout        time.Duration
}

// NewChatModel creates a chat-backed capability set. A zero timeout disables it.
func NewChatModel(gen Generator, targetLanguage string, timeout time.Duration) *ChatModel {
	if targetLanguage == "" {
		targetLanguage = "Urdu"
	}
	return &ChatModel{gen: gen, targetLanguage: targetLanguage, timeout: timeout}
}

type classificationAnswer struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyZeroShot asks the model to pick one label and rate its confidence.
// Only single-label classification is supported.
func (m *ChatModel) ClassifyZeroShot(ctx context.Context, text string, labels []string, multiLabel bool) (*domain.ZeroShotResult, error) {
	if multiLabel {
		return nil, domain.CapabilityError("multi-label classification is not supported by chat models", nil)
	}

	raw, err := m.generate(ctx, buildClassificationPrompt(text, labels))
	if err != nil {
		return nil, err
	}

	data := []byte(stripCodeFence(raw))
	if err := ValidateJSONAgainstSchema(classificationSchema(labels), data); err != nil {
		return nil, domain.CapabilityError("invalid classification answer", err)
	}

	var answer classificationAnswer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, domain.CapabilityError("invalid classification answer", err)
	}

	return &domain.ZeroShotResult{
		Labels: []string{answer.Label},
		Scores: []float64{answer.Score},
	}, nil
}

// Summarize rewrites text as plain English within the word bounds of opts.
func (m *ChatModel) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (string, error) {
	out, err := m.generate(ctx, buildSummaryPrompt(text, opts))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Translate renders text in the target language.
func (m *ChatModel) Translate(ctx context.Context, text string) (string, error) {
	out, err := m.generate(ctx, buildTranslationPrompt(text, m.targetLanguage))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (m *ChatModel) generate(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	out, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		return "", domain.AsCapabilityError("chat model call failed", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", domain.CapabilityError("chat model returned an empty response", nil)
	}
	return out, nil
}

func buildClassificationPrompt(text string, labels []string) string {
	var b strings.Builder
	b.WriteString("Classify the following document excerpt into exactly one of these agreement types:\n")
	for _, l := range labels {
		fmt.Fprintf(&b, "- %s\n", l)
	}
	b.WriteString("\nRespond with a single JSON object of the form ")
	b.WriteString(`{"label": "<one of the types above, verbatim>", "score": <confidence between 0 and 1>}`)
	b.WriteString(" and nothing else.\n\nExcerpt:\n")
	b.WriteString(text)
	return b.String()
}

func buildSummaryPrompt(text string, opts domain.SummaryOptions) string {
	return fmt.Sprintf(
		"Rewrite the following legal clause in short, easy English that a non-lawyer can understand. "+
			"Use between %d and %d words. Return only the rewritten text.\n\nClause:\n%s",
		opts.MinLength, opts.MaxLength, text)
}

func buildTranslationPrompt(text, language string) string {
	return fmt.Sprintf(
		"Translate the following English text into %s. Return only the translation.\n\nText:\n%s",
		language, text)
}

func classificationSchema(labels []string) map[string]any {
	enum := make([]any, 0, len(labels))
	for _, l := range labels {
		enum = append(enum, l)
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"label", "score"},
		"properties": map[string]any{
			"label": map[string]any{"type": "string", "enum": enum},
			"score": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		},
	}
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
