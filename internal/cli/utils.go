// Package cli provides result formatting for the simcheck command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/simcheck/internal/models"
	"github.com/hyperjump/simcheck/pkg/utils"
)

// OutputFormat is the format for analysis output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is the same JSON document the HTTP API returns.
	OutputJSON OutputFormat = "json"
)

// sentencePreview is how many runes of a sentence the text output shows.
const sentencePreview = 120

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteAnalysisResult writes res to w in the given format.
func WriteAnalysisResult(w io.Writer, res *models.AnalysisResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		writeAnalysisText(w, res)
		return nil
	}
}

func writeAnalysisText(w io.Writer, res *models.AnalysisResult) {
	m := res.Metadata
	fmt.Fprintf(w, "\nAnalyzed %d documents (%d sentences) in %dms, threshold %.2f\n\n",
		m.DocumentsCount, m.TotalSentences, m.ProcessingTimeMs, m.Threshold)

	if len(res.GlobalSimilarity) > 0 {
		fmt.Fprintln(w, "--- Document similarity ---")
		for _, g := range res.GlobalSimilarity {
			fmt.Fprintf(w, "%-30s %-30s %.4f\n", g.DocA, g.DocB, g.Score)
		}
		fmt.Fprintln(w)
	}

	if len(res.Matches) == 0 {
		fmt.Fprintln(w, "No matching sentences.")
		return
	}
	fmt.Fprintf(w, "--- %d matching sentence pairs ---\n", len(res.Matches))
	for i, match := range res.Matches {
		writeOneMatch(w, i+1, match)
	}
}

func writeOneMatch(w io.Writer, rank int, match models.Match) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "#%d | Similarity: %.4f\n", rank, match.Similarity)
	fmt.Fprintf(w, "  %s [%d]: %s\n", match.SourceDoc, match.SourceSentenceIndex, utils.Truncate(match.SourceSentence, sentencePreview))
	fmt.Fprintf(w, "  %s [%d]: %s\n", match.TargetDoc, match.TargetSentenceIndex, utils.Truncate(match.TargetSentence, sentencePreview))
}
