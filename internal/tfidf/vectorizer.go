package tfidf

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hyperjump/simcheck/internal/models"
	"github.com/hyperjump/simcheck/internal/vector"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Vectorizer turns sentences and documents into TF-IDF weighted sparse vectors.
type Vectorizer struct {
	vocab   *Vocabulary
	workers int
	logger  *zap.Logger
}

// VectorizerOption configures a Vectorizer.
type VectorizerOption func(*Vectorizer)

// WithWorkers bounds the number of concurrent vectorization tasks. Values <= 0 use runtime.NumCPU().
func WithWorkers(n int) VectorizerOption {
	return func(vz *Vectorizer) { vz.workers = n }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) VectorizerOption {
	return func(vz *Vectorizer) { vz.logger = l }
}

// NewVectorizer creates a vectorizer over a frozen vocabulary.
func NewVectorizer(vocab *Vocabulary, opts ...VectorizerOption) *Vectorizer {
	vz := &Vectorizer{vocab: vocab, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(vz)
	}
	if vz.workers <= 0 {
		vz.workers = runtime.NumCPU()
	}
	return vz
}

// SentenceVector weights each term by raw count times IDF. Tokens missing from the
// vocabulary are ignored.
func (vz *Vectorizer) SentenceVector(tokens []string) *vector.SparseVector {
	tf := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		if t, ok := vz.vocab.Lookup(tok); ok {
			tf[t.Index]++
		}
	}
	for idx, count := range tf {
		tf[idx] = count * vz.vocab.IDF(idx)
	}
	return vector.New(tf)
}

// Vectorize sets the Vector of every sentence in docs and returns one document vector
// per document, in the order of docs. Each sentence is owned by exactly one task.
func (vz *Vectorizer) Vectorize(ctx context.Context, docs []*models.Document) ([]*vector.SparseVector, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(vz.workers)
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.Vector = vz.SentenceVector(s.Tokens)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vectorize sentences: %w", err)
	}

	docVectors := make([]*vector.SparseVector, len(docs))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(vz.workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docVectors[i] = DocumentVector(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vectorize documents: %w", err)
	}
	vz.logger.Debug("vectorized",
		zap.Int("documents", len(docs)),
		zap.Int("sentences", vz.vocab.TotalSentences()),
		zap.Int("vocabulary_size", vz.vocab.Size()),
	)
	return docVectors, nil
}

// DocumentVector returns the element-wise sum (not the mean) of the document's sentence vectors.
func DocumentVector(doc *models.Document) *vector.SparseVector {
	vs := make([]*vector.SparseVector, len(doc.Sentences))
	for i, s := range doc.Sentences {
		vs[i] = s.Vector
	}
	return vector.Sum(vs)
}
