package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spherical/legal-analyzer/internal/config"
	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
)

// Capabilities bundles the model-backed services the pipeline depends on.
// They are built once per process and shared read-only across analyses.
type Capabilities struct {
	Classifier domain.ZeroShotClassifier
	Summarizer domain.Summarizer
	Translator domain.Translator
	closers    []io.Closer
}

// Close releases provider clients.
func (c *Capabilities) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewCapabilities builds the capabilities for the configured provider.
func NewCapabilities(ctx context.Context, cfg config.ModelsConfig, logger *observability.Logger) (*Capabilities, error) {
	if cfg.Provider == "huggingface" {
		hf := NewHuggingFaceClient(HuggingFaceConfig{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			ClassifierModel: cfg.ClassifierModel,
			SummarizerModel: cfg.SummarizerModel,
			TranslatorModel: cfg.TranslatorModel,
			Timeout:         cfg.Timeout,
			MaxRetries:      cfg.MaxRetries,
			Logger:          logger,
		})
		return &Capabilities{Classifier: hf, Summarizer: hf, Translator: hf}, nil
	}

	gen, closer, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("create %s provider", cfg.Provider), err)
	}

	chat := NewChatModel(gen, cfg.TargetLanguage, cfg.Timeout)
	caps := &Capabilities{Classifier: chat, Summarizer: chat, Translator: chat}
	if closer != nil {
		caps.closers = append(caps.closers, closer)
	}
	return caps, nil
}

func newGenerator(ctx context.Context, cfg config.ModelsConfig) (Generator, io.Closer, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIGenerator(cfg.APIKey, cfg.ChatModel, cfg.BaseURL), nil, nil
	case "anthropic":
		return NewAnthropicGenerator(cfg.APIKey, cfg.ChatModel, cfg.BaseURL), nil, nil
	case "gemini":
		g, err := NewGeminiGenerator(ctx, cfg.APIKey, cfg.ChatModel)
		if err != nil {
			return nil, nil, err
		}
		return g, g, nil
	case "vertex":
		g, err := NewVertexGenerator(ctx, cfg.Vertex.Project, cfg.Vertex.Region, cfg.ChatModel)
		if err != nil {
			return nil, nil, err
		}
		return g, g, nil
	default:
		return nil, nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// Namespace identifies the provider and models for cache keys.
func Namespace(cfg config.ModelsConfig) string {
	if cfg.Provider == "huggingface" {
		return fmt.Sprintf("hf|%s|%s|%s", cfg.ClassifierModel, cfg.SummarizerModel, cfg.TranslatorModel)
	}
	return fmt.Sprintf("%s|%s|%s", cfg.Provider, cfg.ChatModel, cfg.TargetLanguage)
}
