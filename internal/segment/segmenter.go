// Package segment splits document text into ordered sentences with normalized tokens.
//
// Boundary detection is an approximation: a run of '.', '!' or '?' (optionally followed
// by closing quotes or brackets) ends a sentence when whitespace or the end of text
// follows it. No stemming or stop-word removal is applied.
package segment

import (
	"unicode"

	"github.com/hyperjump/simcheck/internal/models"
)

// Segmenter splits raw text into sentences.
type Segmenter struct {
	abbreviationGuard bool
	paragraphBreaks   bool
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithAbbreviationGuard controls whether a single letter followed by a period
// ("J. Smith") is kept inside the sentence. Enabled by default.
func WithAbbreviationGuard(enabled bool) Option {
	return func(s *Segmenter) { s.abbreviationGuard = enabled }
}

// WithParagraphBreaks makes a blank line end a sentence as well.
func WithParagraphBreaks(enabled bool) Option {
	return func(s *Segmenter) { s.paragraphBreaks = enabled }
}

// NewSegmenter returns a Segmenter with the abbreviation guard on and paragraph breaks off.
func NewSegmenter(opts ...Option) *Segmenter {
	s := &Segmenter{abbreviationGuard: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment splits text into sentences owned by docID, indexed from zero in order of
// appearance. Sentences whose tokens come out empty are kept so indices stay stable.
// Empty or whitespace-only text yields nil.
func (s *Segmenter) Segment(docID, text string) []*models.Sentence {
	parts := s.Split(text)
	if len(parts) == 0 {
		return nil
	}
	sentences := make([]*models.Sentence, len(parts))
	for i, p := range parts {
		sentences[i] = &models.Sentence{
			DocumentID: docID,
			Index:      i,
			Text:       p,
			Tokens:     Tokenize(p),
		}
	}
	return sentences
}

// Split returns the display text of each sentence in text.
func (s *Segmenter) Split(text string) []string {
	rs := []rune(text)
	n := len(rs)
	var out []string
	emit := func(from, to int) {
		if t := Preprocess(string(rs[from:to])); t != "" {
			out = append(out, t)
		}
	}
	start := 0
	for i := 0; i < n; i++ {
		r := rs[i]
		if s.paragraphBreaks && r == '\n' {
			if next, ok := blankLineEnd(rs, i); ok {
				emit(start, i)
				start = next
				i = next - 1
				continue
			}
		}
		if !isTerminal(r) {
			continue
		}
		j := i
		for j+1 < n && isTerminal(rs[j+1]) {
			j++
		}
		for j+1 < n && isCloser(rs[j+1]) {
			j++
		}
		if j+1 < n && !unicode.IsSpace(rs[j+1]) {
			i = j
			continue
		}
		if s.abbreviationGuard && r == '.' && j == i && singleLetterBefore(rs, start, i) {
			i = j
			continue
		}
		emit(start, j+1)
		start = j + 1
		i = j
	}
	if start < n {
		emit(start, n)
	}
	return out
}

// blankLineEnd reports whether the newline at i is followed by another newline with
// only whitespace in between, returning the index just past the whitespace run.
func blankLineEnd(rs []rune, i int) (int, bool) {
	blank := false
	j := i + 1
	for ; j < len(rs) && unicode.IsSpace(rs[j]); j++ {
		if rs[j] == '\n' {
			blank = true
		}
	}
	return j, blank
}

// singleLetterBefore reports whether the period at i closes a one-letter token.
func singleLetterBefore(rs []rune, start, i int) bool {
	if i-1 < start || !unicode.IsLetter(rs[i-1]) {
		return false
	}
	return i-2 < start || !isWordRune(rs[i-2])
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}
