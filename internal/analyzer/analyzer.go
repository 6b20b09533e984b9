// Package analyzer drives one similarity analysis end to end: validation, segmentation,
// vocabulary, vectorization, scoring and report assembly.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/simcheck/internal/config"
	"github.com/hyperjump/simcheck/internal/models"
	"github.com/hyperjump/simcheck/internal/report"
	"github.com/hyperjump/simcheck/internal/segment"
	"github.com/hyperjump/simcheck/internal/similarity"
	"github.com/hyperjump/simcheck/internal/tfidf"
	"go.uber.org/zap"
)

// Analyzer is stateless between calls; every Analyze gets a fresh vocabulary and
// fresh documents, so one Analyzer can serve concurrent requests.
type Analyzer struct {
	segmenter *segment.Segmenter
	engine    *similarity.Engine
	workers   int
	logger    *zap.Logger
	observer  func(runID string, stage Stage)
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(a *Analyzer) { a.segmenter = s }
}

// WithEngine replaces the default similarity engine.
func WithEngine(e *similarity.Engine) Option {
	return func(a *Analyzer) { a.engine = e }
}

// WithWorkers bounds the vectorization worker pool. Values <= 0 use runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// WithLogger sets a logger for stage transitions and run summaries.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithStageObserver registers fn to be called on every stage transition.
func WithStageObserver(fn func(runID string, stage Stage)) Option {
	return func(a *Analyzer) { a.observer = fn }
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.segmenter == nil {
		a.segmenter = segment.NewSegmenter()
	}
	if a.engine == nil {
		a.engine = similarity.NewEngine(similarity.WithWorkers(a.workers), similarity.WithLogger(a.logger))
	}
	return a
}

// NewFromConfig creates an Analyzer using the analysis settings in cfg.
func NewFromConfig(cfg *config.AnalysisConfig, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	seg := segment.NewSegmenter(
		segment.WithAbbreviationGuard(cfg.AbbreviationGuardOrDefault()),
		segment.WithParagraphBreaks(cfg.ParagraphBreaks),
	)
	engine := similarity.NewEngine(
		similarity.WithWorkers(cfg.Workers),
		similarity.WithBlockSize(cfg.BlockSize),
		similarity.WithLogger(logger),
	)
	return New(
		WithSegmenter(seg),
		WithEngine(engine),
		WithWorkers(cfg.Workers),
		WithLogger(logger),
	)
}

// Analyze runs the full pipeline for req. It returns either a complete result or an
// error, never both. Validation errors wrap models.ErrInvalidInputCount or
// models.ErrInvalidThreshold. If ctx is cancelled mid-run the in-flight work is
// abandoned and an error wrapping ctx.Err() is returned.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := a.logger.With(zap.String("run_id", runID))

	a.enter(log, runID, StageValidating)
	if err := req.Validate(); err != nil {
		a.enter(log, runID, StageFailed)
		log.Debug("validation failed", zap.Error(err))
		return nil, err
	}

	a.enter(log, runID, StageSegmenting)
	docs := make([]*models.Document, len(req.Documents))
	for i, in := range req.Documents {
		id := uuid.New().String()
		docs[i] = &models.Document{
			ID:        id,
			Name:      in.Name,
			RawText:   in.Text,
			Position:  i,
			Sentences: a.segmenter.Segment(id, in.Text),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	a.enter(log, runID, StageBuildingVocabulary)
	vocab := tfidf.BuildVocabulary(docs)

	a.enter(log, runID, StageVectorizing)
	vz := tfidf.NewVectorizer(vocab, tfidf.WithWorkers(a.workers), tfidf.WithLogger(log))
	docVectors, err := vz.Vectorize(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	a.enter(log, runID, StageScoring)
	scores, err := a.engine.Score(ctx, docs, docVectors, req.Threshold)
	if err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	a.enter(log, runID, StageAssembling)
	result := report.Assemble(docs, scores.Sentences, scores.Documents, req.Threshold)
	result.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	a.enter(log, runID, StageDone)
	log.Info("analysis complete",
		zap.Int("documents", result.Metadata.DocumentsCount),
		zap.Int("sentences", result.Metadata.TotalSentences),
		zap.Int("vocabulary_size", vocab.Size()),
		zap.Int("matches", len(result.Matches)),
		zap.Float64("threshold", req.Threshold),
		zap.Int64("processing_time_ms", result.Metadata.ProcessingTimeMs),
	)
	return result, nil
}

func (a *Analyzer) enter(log *zap.Logger, runID string, s Stage) {
	log.Debug("stage", zap.Stringer("stage", s))
	if a.observer != nil {
		a.observer(runID, s)
	}
}
