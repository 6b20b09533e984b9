// Package report turns raw similarity scores into the ranked, thresholded analysis result.
package report

import (
	"sort"

	"github.com/hyperjump/simcheck/internal/models"
)

type pairKey struct {
	srcDoc, srcIdx, dstDoc, dstIdx int
}

// Assemble filters sentence pairs by threshold, removes duplicate pairs, ranks the rest
// and attaches the document-pair scores. ProcessingTimeMs is left for the caller to set.
// docs are indexed by upload position, matching the positions in the scores.
func Assemble(
	docs []*models.Document,
	sentences []models.SentencePairScore,
	documents []models.DocumentPairScore,
	threshold float64,
) *models.AnalysisResult {
	total := models.TotalSentences(docs)
	kept := Filter(sentences, threshold)
	Rank(docs, kept)

	matches := make([]models.Match, 0, len(kept))
	for _, p := range kept {
		src, dst := docs[p.SourceDoc], docs[p.TargetDoc]
		matches = append(matches, models.Match{
			SourceDoc:           src.Name,
			SourceSentenceIndex: p.SourceIndex,
			SourceSentence:      src.Sentences[p.SourceIndex].Text,
			TargetDoc:           dst.Name,
			TargetSentenceIndex: p.TargetIndex,
			TargetSentence:      dst.Sentences[p.TargetIndex].Text,
			Similarity:          p.Similarity,
		})
	}

	return &models.AnalysisResult{
		Metadata: models.Metadata{
			DocumentsCount: len(docs),
			TotalSentences: total,
			Threshold:      threshold,
		},
		Matches:          matches,
		GlobalSimilarity: globalSimilarity(docs, documents, total),
	}
}

// Filter keeps pairs with similarity >= threshold. When the same sentence pair occurs
// more than once, the highest score wins.
func Filter(sentences []models.SentencePairScore, threshold float64) []models.SentencePairScore {
	seen := make(map[pairKey]int, len(sentences))
	out := make([]models.SentencePairScore, 0, len(sentences))
	for _, p := range sentences {
		if p.Similarity < threshold {
			continue
		}
		key := pairKey{p.SourceDoc, p.SourceIndex, p.TargetDoc, p.TargetIndex}
		if at, ok := seen[key]; ok {
			if p.Similarity > out[at].Similarity {
				out[at] = p
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, p)
	}
	return out
}

// Rank sorts pairs by similarity descending, then source document name, source sentence
// index, target document name and target sentence index. Upload positions break any
// remaining tie so the order is total.
func Rank(docs []*models.Document, pairs []models.SentencePairScore) {
	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if an, bn := docs[a.SourceDoc].Name, docs[b.SourceDoc].Name; an != bn {
			return an < bn
		}
		if a.SourceIndex != b.SourceIndex {
			return a.SourceIndex < b.SourceIndex
		}
		if an, bn := docs[a.TargetDoc].Name, docs[b.TargetDoc].Name; an != bn {
			return an < bn
		}
		if a.TargetIndex != b.TargetIndex {
			return a.TargetIndex < b.TargetIndex
		}
		if a.SourceDoc != b.SourceDoc {
			return a.SourceDoc < b.SourceDoc
		}
		return a.TargetDoc < b.TargetDoc
	})
}

// globalSimilarity orders document pairs by upload position (A-B, A-C, B-C).
// An empty corpus reports no pairs.
func globalSimilarity(docs []*models.Document, documents []models.DocumentPairScore, totalSentences int) []models.GlobalSimilarity {
	out := make([]models.GlobalSimilarity, 0, len(documents))
	if totalSentences == 0 {
		return out
	}
	ordered := append([]models.DocumentPairScore(nil), documents...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].DocA != ordered[j].DocA {
			return ordered[i].DocA < ordered[j].DocA
		}
		return ordered[i].DocB < ordered[j].DocB
	})
	for _, d := range ordered {
		out = append(out, models.GlobalSimilarity{
			DocA:  docs[d.DocA].Name,
			DocB:  docs[d.DocB].Name,
			Score: d.Score,
		})
	}
	return out
}
