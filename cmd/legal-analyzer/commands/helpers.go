package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spherical/legal-analyzer/internal/analyzer"
	"github.com/spherical/legal-analyzer/internal/cache"
	"github.com/spherical/legal-analyzer/internal/config"
	"github.com/spherical/legal-analyzer/internal/llm"
	"github.com/spherical/legal-analyzer/internal/observability"
	"github.com/spherical/legal-analyzer/internal/pdf"
)

// app holds the services shared by the analyze and serve commands.
type app struct {
	analyzer *analyzer.Service
	closers  []io.Closer
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config, level string) *observability.Logger {
	if level == "" {
		level = cfg.Observability.LogLevel
	}
	return observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
}

// buildApp wires capabilities, the optional cache and the PDF extractor into
// an analyzer. remote enables gs:// inputs.
func buildApp(ctx context.Context, cfg *config.Config, logger *observability.Logger, remote bool) (*app, error) {
	a := &app{}

	caps, err := llm.NewCapabilities(ctx, cfg.Models, logger)
	if err != nil {
		return nil, err
	}

	client, err := newCacheClient(ctx, cfg.Cache)
	if err != nil {
		caps.Close()
		return nil, err
	}
	if client != nil {
		caps = llm.WithCache(caps, client, cfg.Cache.TTL, llm.Namespace(cfg.Models), logger)
		logger.Debug().Str("driver", cfg.Cache.Driver).Dur("ttl", cfg.Cache.TTL).Msg("capability cache enabled")
	}
	a.closers = append(a.closers, caps)

	opts := []pdf.Option{
		pdf.WithStructureValidation(cfg.PDF.ValidateStructure),
		pdf.WithLogger(logger),
	}
	if remote {
		fetcher, err := pdf.NewGCSFetcher(ctx)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create gcs fetcher: %w", err)
		}
		a.closers = append(a.closers, fetcher)
		opts = append(opts, pdf.WithFetcher(fetcher))
	}
	extractor := pdf.NewExtractor(pdf.NewReader(cfg.PDF.Backend), opts...)

	a.analyzer = analyzer.NewService(analyzer.Dependencies{
		Extractor:  extractor,
		Classifier: caps.Classifier,
		Summarizer: caps.Summarizer,
		Translator: caps.Translator,
		Logger:     logger,
	}, analyzer.Options{
		LegalThreshold:    cfg.Pipeline.LegalThreshold,
		ClassifyAgreement: cfg.Pipeline.ClassifyAgreement,
	})

	return a, nil
}

// newCacheClient returns nil when caching is off.
func newCacheClient(ctx context.Context, cfg config.CacheConfig) (cache.Client, error) {
	switch cfg.Driver {
	case "memory":
		return cache.NewMemoryClient(cfg.MaxEntries), nil
	case "redis":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return client, nil
	default:
		return nil, nil
	}
}
