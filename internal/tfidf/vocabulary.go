// Package tfidf builds the per-run shared vocabulary and TF-IDF vectors for sentences
// and documents.
package tfidf

import (
	"math"

	"github.com/hyperjump/simcheck/internal/models"
)

// Term is a vocabulary entry.
type Term struct {
	Index             int
	DocumentFrequency int // number of sentences containing the term
}

// Vocabulary maps terms to dense indices and sentence frequencies.
// It is built once per run and is read-only afterwards, so workers share it without locking.
type Vocabulary struct {
	terms          map[string]Term
	order          []string
	idf            []float64
	totalSentences int
}

// BuildVocabulary scans every sentence of docs in upload and sentence order, assigning
// indices to terms in first-seen order. Frequencies count sentences, not documents.
func BuildVocabulary(docs []*models.Document) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]Term)}
	df := make([]int, 0)
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			v.totalSentences++
			seen := make(map[string]struct{}, len(s.Tokens))
			for _, tok := range s.Tokens {
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				t, ok := v.terms[tok]
				if !ok {
					t = Term{Index: len(v.order)}
					v.order = append(v.order, tok)
					df = append(df, 0)
				}
				df[t.Index]++
				t.DocumentFrequency = df[t.Index]
				v.terms[tok] = t
			}
		}
	}
	n := float64(v.totalSentences)
	v.idf = make([]float64, len(df))
	for i, f := range df {
		// Smoothed IDF: strictly positive even for terms in every sentence.
		v.idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}
	return v
}

// Lookup returns the entry for term.
func (v *Vocabulary) Lookup(term string) (Term, bool) {
	t, ok := v.terms[term]
	return t, ok
}

// Size returns the number of distinct terms.
func (v *Vocabulary) Size() int {
	return len(v.order)
}

// TotalSentences returns the number of sentences the vocabulary was built from.
func (v *Vocabulary) TotalSentences() int {
	return v.totalSentences
}

// IDF returns the inverse document frequency of the term at index, or 0 if out of range.
func (v *Vocabulary) IDF(index int) float64 {
	if index < 0 || index >= len(v.idf) {
		return 0
	}
	return v.idf[index]
}
