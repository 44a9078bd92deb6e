// Package analyzer sequences the legal analysis pipeline for one document.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/spherical/legal-analyzer/internal/classify"
	"github.com/spherical/legal-analyzer/internal/clause"
	"github.com/spherical/legal-analyzer/internal/domain"
	"github.com/spherical/legal-analyzer/internal/observability"
	"github.com/spherical/legal-analyzer/internal/simplify"
	"github.com/spherical/legal-analyzer/internal/translate"
)

// Options control optional pipeline behaviour
type Options struct {
	LegalThreshold    int
	ClassifyAgreement bool
}

// DefaultOptions matches the reference pipeline
func DefaultOptions() Options {
	return Options{
		LegalThreshold:    domain.DefaultLegalThreshold,
		ClassifyAgreement: true,
	}
}

// Dependencies are the capabilities injected into the Service. They are
// built once at start-up and shared across analyses.
type Dependencies struct {
	Extractor  domain.TextExtractor
	Classifier domain.ZeroShotClassifier
	Summarizer domain.Summarizer
	Translator domain.Translator
	Logger     *observability.Logger
}

// Service orchestrates the analysis of a document
type Service struct {
	extractor  domain.TextExtractor
	agreement  *classify.AgreementClassifier
	clauses    *clause.Extractor
	simplifier *simplify.Simplifier
	translator *translate.Service
	opts       Options
	logger     *observability.Logger
}

// NewService creates a new analysis service
func NewService(deps Dependencies, opts Options) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = observability.Nop()
	}

	return &Service{
		extractor:  deps.Extractor,
		agreement:  classify.NewAgreementClassifier(deps.Classifier),
		clauses:    clause.NewExtractor(),
		simplifier: simplify.NewSimplifier(deps.Summarizer),
		translator: translate.NewService(deps.Translator),
		opts:       opts,
		logger:     logger.WithComponent("analyzer"),
	}
}

// Options returns the service defaults.
func (s *Service) Options() Options {
	return s.opts
}

// Analyze runs the pipeline with the service defaults.
func (s *Service) Analyze(ctx context.Context, path string, eventCh chan<- domain.StreamEvent) (*domain.AnalysisResult, error) {
	return s.AnalyzeWith(ctx, path, s.opts, eventCh)
}

// AnalyzeWith runs ExtractText, ClassifyLegal, the optional ClassifyType,
// ExtractClauses, then Simplify and Translate per clause, and assembles the
// result. Any failure aborts the run and no partial result is returned.
func (s *Service) AnalyzeWith(ctx context.Context, path string, opts Options, eventCh chan<- domain.StreamEvent) (*domain.AnalysisResult, error) {
	startTime := time.Now()
	ctx, _ = observability.EnsureRunID(ctx)
	log := s.logger.WithContext(ctx)

	s.emitEvent(eventCh, domain.StreamEvent{
		Type:      domain.EventStart,
		Payload:   fmt.Sprintf("Starting analysis of %s", path),
		Timestamp: time.Now(),
	})
	log.Info().Str("path", path).Msg("analysis started")

	s.emitStage(eventCh, domain.StageExtractText)
	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		return s.fail(ctx, eventCh, domain.StageExtractText, err)
	}
	doc := domain.Document{Path: path, Text: text}
	log.Debug().Int("chars", len(doc.Text)).Msg("text extracted")

	s.emitStage(eventCh, domain.StageClassifyLegal)
	matched := classify.MatchedKeywords(doc.Text)
	if len(matched) < opts.LegalThreshold {
		log.Info().Strs("keywords", matched).Int("threshold", opts.LegalThreshold).Msg("legal keyword gate rejected document")
		return s.fail(ctx, eventCh, domain.StageClassifyLegal, domain.NotLegalDocumentError("This PDF is NOT a legal document."))
	}

	result := &domain.AnalysisResult{Document: path}

	if opts.ClassifyAgreement {
		s.emitStage(eventCh, domain.StageClassifyType)
		agreement, err := s.agreement.Classify(ctx, doc.Text)
		if err != nil {
			return s.fail(ctx, eventCh, domain.StageClassifyType, err)
		}
		result.AgreementType = agreement
		log.Info().Str("type", agreement.Type).Float64("confidence", agreement.Confidence).Msg("agreement classified")
	}

	s.emitStage(eventCh, domain.StageExtractClauses)
	clauses := s.clauses.Extract(doc.Text)
	if len(clauses) == 0 {
		return s.fail(ctx, eventCh, domain.StageExtractClauses, domain.NoClausesFoundError("No important legal clauses found."))
	}
	log.Info().Strs("clauses", clauses.Names()).Msg("clauses extracted")

	result.Clauses = make(domain.ClauseResults, 0, len(clauses))
	for i, c := range clauses {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, eventCh, domain.StageSimplify, err)
		}

		s.emitEvent(eventCh, domain.StreamEvent{
			Type:      domain.EventClauseProcessing,
			Clause:    c.Name,
			Index:     i + 1,
			Total:     len(clauses),
			Payload:   fmt.Sprintf("Processing clause %s", c.Name),
			Timestamp: time.Now(),
		})

		english, err := s.simplifier.Simplify(ctx, c.Text)
		if err != nil {
			return s.fail(ctx, eventCh, domain.StageSimplify, fmt.Errorf("clause %s: %w", c.Name, err))
		}

		urdu, err := s.translator.Translate(ctx, english)
		if err != nil {
			return s.fail(ctx, eventCh, domain.StageTranslate, fmt.Errorf("clause %s: %w", c.Name, err))
		}

		result.Clauses = append(result.Clauses, domain.ClauseResult{
			Name:        c.Name,
			EasyEnglish: english,
			EasyUrdu:    urdu,
		})

		s.emitEvent(eventCh, domain.StreamEvent{
			Type:      domain.EventClauseComplete,
			Clause:    c.Name,
			Index:     i + 1,
			Total:     len(clauses),
			Timestamp: time.Now(),
		})
	}

	s.emitStage(eventCh, domain.StageAssemble)
	duration := time.Since(startTime)
	s.emitEvent(eventCh, domain.StreamEvent{
		Type:      domain.EventComplete,
		Payload:   fmt.Sprintf("Analysis complete: %d clauses in %v", len(result.Clauses), duration.Round(time.Millisecond)),
		Timestamp: time.Now(),
	})
	log.Info().Int("clauses", len(result.Clauses)).Dur("duration", duration).Msg("analysis complete")

	return result, nil
}

func (s *Service) fail(ctx context.Context, eventCh chan<- domain.StreamEvent, stage domain.Stage, err error) (*domain.AnalysisResult, error) {
	s.logger.WithContext(ctx).Error().
		Err(err).
		Str("stage", string(stage)).
		Str("kind", string(domain.KindOf(err))).
		Msg("analysis failed")

	s.emitEvent(eventCh, domain.StreamEvent{
		Type:      domain.EventError,
		Stage:     stage,
		Payload:   err.Error(),
		Timestamp: time.Now(),
	})
	return nil, err
}

func (s *Service) emitStage(eventCh chan<- domain.StreamEvent, stage domain.Stage) {
	s.emitEvent(eventCh, domain.StreamEvent{
		Type:      domain.EventStage,
		Stage:     stage,
		Timestamp: time.Now(),
	})
}

// emitEvent sends without blocking; a full channel drops the event
func (s *Service) emitEvent(eventCh chan<- domain.StreamEvent, event domain.StreamEvent) {
	if eventCh == nil {
		return
	}
	select {
	case eventCh <- event:
	default:
		s.logger.Warn().Str("event", string(event.Type)).Msg("event channel full, dropping event")
	}
}
