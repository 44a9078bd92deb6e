package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spherical/legal-analyzer/internal/cache"
	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
)

// cacheStore wraps a cache.Client with JSON encoding. Cache failures are
// logged and treated as misses so they never fail an analysis.
type cacheStore struct {
	client    cache.Client
	ttl       time.Duration
	namespace string
	logger    *observability.Logger
}

func (s *cacheStore) load(ctx context.Context, key string, v any) bool {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (s *cacheStore) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *cacheStore) key(capability string, parts ...string) string {
	return cache.HashKey(capability, append([]string{s.namespace}, parts...)...)
}

type cachedClassifier struct {
	next domain.ZeroShotClassifier
	*cacheStore
}

func (c *cachedClassifier) ClassifyZeroShot(ctx context.Context, text string, labels []string, multiLabel bool) (*domain.ZeroShotResult, error) {
	key := c.key("zero-shot", strings.Join(labels, "\x1f"), fmt.Sprint(multiLabel), text)

	var hit domain.ZeroShotResult
	if c.load(ctx, key, &hit) {
		return &hit, nil
	}

	res, err := c.next.ClassifyZeroShot(ctx, text, labels, multiLabel)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, res)
	return res, nil
}

type cachedSummarizer struct {
	next domain.Summarizer
	*cacheStore
}

func (c *cachedSummarizer) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (string, error) {
	key := c.key("summarize", fmt.Sprintf("%d/%d/%t", opts.MaxLength, opts.MinLength, opts.DoSample), text)

	var hit string
	if c.load(ctx, key, &hit) {
		return hit, nil
	}

	out, err := c.next.Summarize(ctx, text, opts)
	if err != nil {
		return "", err
	}
	c.store(ctx, key, out)
	return out, nil
}

type cachedTranslator struct {
	next domain.Translator
	*cacheStore
}

func (c *cachedTranslator) Translate(ctx context.Context, text string) (string, error) {
	key := c.key("translate", text)

	var hit string
	if c.load(ctx, key, &hit) {
		return hit, nil
	}

	out, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	c.store(ctx, key, out)
	return out, nil
}

// WithCache returns capabilities whose results are stored in client for ttl.
// namespace separates entries produced by different providers or models.
func WithCache(caps *Capabilities, client cache.Client, ttl time.Duration, namespace string, logger *observability.Logger) *Capabilities {
	if logger == nil {
		logger = observability.Nop()
	}
	store := &cacheStore{
		client:    client,
		ttl:       ttl,
		namespace: namespace,
		logger:    logger.WithComponent("capability-cache"),
	}
	return &Capabilities{
		Classifier: &cachedClassifier{next: caps.Classifier, cacheStore: store},
		Summarizer: &cachedSummarizer{next: caps.Summarizer, cacheStore: store},
		Translator: &cachedTranslator{next: caps.Translator, cacheStore: store},
		closers:    append(caps.closers, client),
	}
}
