// Package similarity computes cosine similarity for every cross-document sentence pair
// and every document pair, fanning the work out over a bounded worker pool.
package similarity

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hyperjump/simcheck/internal/models"
	"github.com/hyperjump/simcheck/internal/vector"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the number of source sentences per scoring task.
const DefaultBlockSize = 64

// Engine scores sentence pairs and document pairs.
// It holds no per-run state and may be shared by concurrent runs.
type Engine struct {
	workers   int
	blockSize int
	logger    *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers bounds concurrent scoring tasks. Values <= 0 use runtime.NumCPU().
func WithWorkers(n int) EngineOption {
	return func(e *Engine) { e.workers = n }
}

// WithBlockSize sets how many source sentences one task scores.
func WithBlockSize(n int) EngineOption {
	return func(e *Engine) { e.blockSize = n }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a similarity engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{blockSize: DefaultBlockSize, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	if e.blockSize <= 0 {
		e.blockSize = DefaultBlockSize
	}
	return e
}

// Scores holds the raw output of one scoring pass. Sentences are in no particular order;
// Documents follow documentPairs order.
type Scores struct {
	Sentences []models.SentencePairScore
	Documents []models.DocumentPairScore
}

// Score compares every sentence of each document with every sentence of each later
// document, and every document vector with every later one. Sentences are never compared
// within their own document, and sentences without terms are skipped. Sentence pairs
// scoring below floor are dropped inside the workers; a floor of 0 keeps all of them.
// docVectors must be aligned with docs and every sentence must already carry its vector.
func (e *Engine) Score(ctx context.Context, docs []*models.Document, docVectors []*vector.SparseVector, floor float64) (*Scores, error) {
	if len(docVectors) != len(docs) {
		return nil, fmt.Errorf("document vectors: got %d, expected %d", len(docVectors), len(docs))
	}
	start := time.Now()
	blocks := partitionBlocks(docs, e.blockSize)
	pairs := documentPairs(len(docs))

	blockResults := make([][]models.SentencePairScore, len(blocks))
	docResults := make([]models.DocumentPairScore, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for k, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docResults[k] = models.DocumentPairScore{
				DocA:  p[0],
				DocB:  p[1],
				Score: vector.Cosine(docVectors[p[0]], docVectors[p[1]]),
			}
			return nil
		})
	}
	for k, b := range blocks {
		g.Go(func() error {
			out, err := scoreBlock(gctx, docs, b, floor)
			if err != nil {
				return err
			}
			blockResults[k] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score pairs: %w", err)
	}

	total := 0
	for _, r := range blockResults {
		total += len(r)
	}
	sentences := make([]models.SentencePairScore, 0, total)
	for _, r := range blockResults {
		sentences = append(sentences, r...)
	}
	e.logger.Debug("scored pairs",
		zap.Int("blocks", len(blocks)),
		zap.Int("document_pairs", len(pairs)),
		zap.Int("sentence_pairs_kept", len(sentences)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Scores{Sentences: sentences, Documents: docResults}, nil
}

func scoreBlock(ctx context.Context, docs []*models.Document, b block, floor float64) ([]models.SentencePairScore, error) {
	src, dst := docs[b.src], docs[b.dst]
	var out []models.SentencePairScore
	for _, s := range src.Sentences[b.from:b.to] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.HasTerms() {
			continue
		}
		for _, t := range dst.Sentences {
			if !t.HasTerms() {
				continue
			}
			sim := vector.Cosine(s.Vector, t.Vector)
			if sim < floor {
				continue
			}
			out = append(out, models.SentencePairScore{
				SourceDoc:   b.src,
				SourceIndex: s.Index,
				TargetDoc:   b.dst,
				TargetIndex: t.Index,
				Similarity:  sim,
			})
		}
	}
	return out, nil
}
