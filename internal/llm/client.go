package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
)

const defaultHuggingFaceURL = "https://router.huggingface.co/hf-inference/models"

// HuggingFaceConfig configures the Inference API client
type HuggingFaceConfig struct {
	APIKey          string
	BaseURL         string
	ClassifierModel string
	SummarizerModel string
	TranslatorModel string
	Timeout         time.Duration // 0 disables
	MaxRetries      int
	Logger          *observability.Logger
}

// HuggingFaceClient calls task models on the Hugging Face Inference API.
// It implements domain.ZeroShotClassifier, domain.Summarizer and domain.Translator.
type HuggingFaceClient struct {
	apiKey          string
	baseURL         string
	classifierModel string
	summarizerModel string
	translatorModel string
	httpClient      *http.Client
	retry           *RetryConfig
	logger          *observability.Logger
}

type inferenceRequest struct {
	Inputs     string      `json:"inputs"`
	Parameters interface{} `json:"parameters,omitempty"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type summarizationParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type zeroShotObject struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type summaryOutput struct {
	SummaryText string `json:"summary_text"`
}

type translationOutput struct {
	TranslationText string `json:"translation_text"`
}

// NewHuggingFaceClient creates a new Inference API client
func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.Nop()
	}

	return &HuggingFaceClient{
		apiKey:          cfg.APIKey,
		baseURL:         baseURL,
		classifierModel: cfg.ClassifierModel,
		summarizerModel: cfg.SummarizerModel,
		translatorModel: cfg.TranslatorModel,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		retry:           NewRetryConfig(cfg.MaxRetries),
		logger:          logger.WithComponent("huggingface"),
	}
}

// ClassifyZeroShot scores labels against text
func (c *HuggingFaceClient) ClassifyZeroShot(ctx context.Context, text string, labels []string, multiLabel bool) (*domain.ZeroShotResult, error) {
	body, err := c.post(ctx, c.classifierModel, inferenceRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels, MultiLabel: multiLabel},
	})
	if err != nil {
		return nil, err
	}

	res, err := parseZeroShot(body)
	if err != nil {
		return nil, domain.CapabilityError("Failed to parse zero-shot response", err)
	}
	return res, nil
}

// Summarize returns an abstractive summary of text
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (string, error) {
	body, err := c.post(ctx, c.summarizerModel, inferenceRequest{
		Inputs: text,
		Parameters: summarizationParameters{
			MaxLength: opts.MaxLength,
			MinLength: opts.MinLength,
			DoSample:  opts.DoSample,
		},
	})
	if err != nil {
		return "", err
	}

	var out []summaryOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return "", domain.CapabilityError("Failed to parse summarization response", err)
	}
	if len(out) == 0 {
		return "", domain.CapabilityError("summarization returned no results", nil)
	}
	return out[0].SummaryText, nil
}

// Translate returns the translation of text
func (c *HuggingFaceClient) Translate(ctx context.Context, text string) (string, error) {
	body, err := c.post(ctx, c.translatorModel, inferenceRequest{Inputs: text})
	if err != nil {
		return "", err
	}

	var out []translationOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return "", domain.CapabilityError("Failed to parse translation response", err)
	}
	if len(out) == 0 {
		return "", domain.CapabilityError("translation returned no results", nil)
	}
	return out[0].TranslationText, nil
}

// post sends payload to a model endpoint and returns the response body
func (c *HuggingFaceClient) post(ctx context.Context, model string, payload inferenceRequest) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.CapabilityError("Failed to marshal request", err)
	}

	url := c.baseURL + "/" + model
	start := time.Now()

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, domain.CapabilityError(fmt.Sprintf("Failed to call model %s", model), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.CapabilityError("Failed to read response", err)
	}

	c.logger.Debug().
		Str("model", model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("model call")

	if resp.StatusCode != http.StatusOK {
		return nil, domain.CapabilityError(
			fmt.Sprintf("model %s returned status %d: %s", model, resp.StatusCode, strings.TrimSpace(string(respBody))), nil)
	}

	return respBody, nil
}

// parseZeroShot accepts both the {labels, scores} object and the
// [{label, score}] list shapes served by the API.
func parseZeroShot(body []byte) (*domain.ZeroShotResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	if trimmed[0] == '{' {
		var obj zeroShotObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		if len(obj.Labels) != len(obj.Scores) {
			return nil, fmt.Errorf("got %d labels and %d scores", len(obj.Labels), len(obj.Scores))
		}
		return &domain.ZeroShotResult{Labels: obj.Labels, Scores: obj.Scores}, nil
	}

	var list []labelScore
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	res := &domain.ZeroShotResult{
		Labels: make([]string, 0, len(list)),
		Scores: make([]float64, 0, len(list)),
	}
	for _, ls := range list {
		res.Labels = append(res.Labels, ls.Label)
		res.Scores = append(res.Scores, ls.Score)
	}
	return res, nil
}
