// Package api exposes the analyzer over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/spherical/legal-analyzer/internal/observability"
)

// RouterConfig holds HTTP settings for the router.
type RouterConfig struct {
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// DefaultRouterConfig returns default router settings.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: 5 * time.Minute,
		MaxUploadBytes: 32 << 20,
	}
}

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, analyzer Analyzer, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = observability.Nop()
	}
	logger = logger.WithComponent("api")

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"legal-analyzer"}`))
	})

	h := NewAnalyzeHandler(logger, analyzer, cfg.MaxUploadBytes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.Analyze)
	})

	return r
}

// requestLogger logs one line per request with its chi request id.
func requestLogger(logger *observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("http request")
		})
	}
}
