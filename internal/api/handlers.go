package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/spherical/legal-analyzer/internal/analyzer"
	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
)

// Analyzer runs the pipeline with per-request options.
type Analyzer interface {
	Options() analyzer.Options
	AnalyzeWith(ctx context.Context, path string, opts analyzer.Options, eventCh chan<- domain.StreamEvent) (*domain.AnalysisResult, error)
}

// AnalyzeHandler handles document uploads.
type AnalyzeHandler struct {
	logger         *observability.Logger
	analyzer       Analyzer
	maxUploadBytes int64
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(logger *observability.Logger, a Analyzer, maxUploadBytes int64) *AnalyzeHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultRouterConfig().MaxUploadBytes
	}
	return &AnalyzeHandler{
		logger:         logger,
		analyzer:       a,
		maxUploadBytes: maxUploadBytes,
	}
}

// ErrorDTO is the error response body.
type ErrorDTO struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Analyze handles POST /api/v1/analyze.
//
// The request is multipart with a "file" part holding the PDF and optional
// "skip_type" and "threshold" fields.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.writeError(w, domain.ValidationError("invalid multipart upload", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := h.parseOptions(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, domain.ValidationError("file is required", err))
		return
	}
	defer file.Close()

	path, cleanup, err := saveUpload(file)
	if err != nil {
		h.writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}
	defer cleanup()

	ctx := observability.ContextWithRunID(r.Context(), chimiddleware.GetReqID(r.Context()))

	h.logger.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Int("threshold", opts.LegalThreshold).
		Bool("classify_agreement", opts.ClassifyAgreement).
		Msg("Analyzing upload")

	result, err := h.analyzer.AnalyzeWith(ctx, path, opts, nil)
	if err != nil {
		h.writeError(w, err)
		return
	}
	result.Document = header.Filename

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (h *AnalyzeHandler) parseOptions(r *http.Request) (analyzer.Options, error) {
	opts := h.analyzer.Options()

	if v := r.FormValue("skip_type"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return opts, domain.ValidationError("invalid skip_type", err)
		}
		if skip {
			opts.ClassifyAgreement = false
		}
	}

	if v := r.FormValue("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, domain.ValidationError(fmt.Sprintf("invalid threshold %q", v), err)
		}
		opts.LegalThreshold = n
	}

	return opts, nil
}

// saveUpload copies the upload into a temp file that the extractor can open.
func saveUpload(src io.Reader) (string, func(), error) {
	tmp, err := os.CreateTemp("", "legal-upload-*.pdf")
	if err != nil {
		return "", nil, err
	}
	path := tmp.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return filepath.Clean(path), cleanup, nil
}

func (h *AnalyzeHandler) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	kind := domain.KindOf(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("Analysis request failed")
	} else {
		h.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Analysis request rejected")
	}

	message := err.Error()
	var de *domain.DomainError
	if errors.As(err, &de) && de.Type != domain.ErrorTypeExternalCapability {
		message = de.Message
	}
	if kind == "" {
		kind = "internal"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorDTO{Error: message, Kind: string(kind)})
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeNotLegalDocument, domain.ErrorTypeNoClausesFound:
		return http.StatusUnprocessableEntity
	case domain.ErrorTypeExternalCapability:
		return http.StatusBadGateway
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
