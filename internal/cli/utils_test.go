package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/simcheck/internal/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Metadata: models.Metadata{
			DocumentsCount:   2,
			TotalSentences:   4,
			ProcessingTimeMs: 7,
			Threshold:        0.5,
		},
		Matches: []models.Match{
			{
				SourceDoc:           "A",
				SourceSentenceIndex: 1,
				SourceSentence:      "Dogs bark loudly.",
				TargetDoc:           "B",
				TargetSentenceIndex: 0,
				TargetSentence:      "Dogs bark loudly.",
				Similarity:          1,
			},
		},
		GlobalSimilarity: []models.GlobalSimilarity{{DocA: "A", DocB: "B", Score: 0.42}},
	}
}

func TestWriteAnalysisResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnalysisResult(&buf, sampleResult(), OutputJSON); err != nil {
		t.Fatalf("WriteAnalysisResult(json): %v", err)
	}
	var decoded models.AnalysisResult
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Metadata.DocumentsCount != 2 || decoded.Metadata.Threshold != 0.5 {
		t.Errorf("metadata mismatch: %+v", decoded.Metadata)
	}
	if len(decoded.Matches) != 1 || decoded.Matches[0].TargetDoc != "B" {
		t.Errorf("matches mismatch: %+v", decoded.Matches)
	}
}

func TestWriteAnalysisResult_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnalysisResult(&buf, sampleResult(), OutputText); err != nil {
		t.Fatalf("WriteAnalysisResult(text): %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Analyzed 2 documents (4 sentences)", "0.4200", "#1 | Similarity: 1.0000", "A [1]: Dogs bark loudly."} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteAnalysisResult_textNoMatches(t *testing.T) {
	res := sampleResult()
	res.Matches = []models.Match{}
	var buf bytes.Buffer
	_ = WriteAnalysisResult(&buf, res, OutputText)
	if !strings.Contains(buf.String(), "No matching sentences.") {
		t.Errorf("expected no-match notice, got:\n%s", buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
