// Package models defines the documents, sentences and report structures shared by the
// analysis pipeline and its transports.
package models

import "github.com/hyperjump/simcheck/internal/vector"

// DocumentInput is one named plain-text document supplied for analysis.
type DocumentInput struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Document is a document owned by a single analysis run.
// Sentences are set once by the segmenter and only read afterwards.
type Document struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	RawText   string      `json:"-"`
	Position  int         `json:"position"`
	Sentences []*Sentence `json:"sentences"`
}

// Sentence is a single sentence of a document.
// Vector is written exactly once by the vectorizer.
type Sentence struct {
	DocumentID string               `json:"document_id"`
	Index      int                  `json:"index"`
	Text       string               `json:"text"`
	Tokens     []string             `json:"tokens"`
	Vector     *vector.SparseVector `json:"-"`
}

// HasTerms reports whether the sentence produced at least one token.
func (s *Sentence) HasTerms() bool {
	return len(s.Tokens) > 0
}

// TotalSentences returns the number of sentences across docs.
func TotalSentences(docs []*Document) int {
	total := 0
	for _, d := range docs {
		total += len(d.Sentences)
	}
	return total
}
