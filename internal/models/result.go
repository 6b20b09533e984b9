package models

// Metadata describes a single analysis run.
type Metadata struct {
	DocumentsCount   int     `json:"documents_count"`
	TotalSentences   int     `json:"total_sentences"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	Threshold        float64 `json:"threshold"`
}

// Match is a cross-document sentence pair whose similarity reached the threshold.
type Match struct {
	SourceDoc           string  `json:"source_doc"`
	SourceSentenceIndex int     `json:"source_sentence_index"`
	SourceSentence      string  `json:"source_sentence"`
	TargetDoc           string  `json:"target_doc"`
	TargetSentenceIndex int     `json:"target_sentence_index"`
	TargetSentence      string  `json:"target_sentence"`
	Similarity          float64 `json:"similarity"`
}

// GlobalSimilarity is the document-level similarity of one unordered document pair.
type GlobalSimilarity struct {
	DocA  string  `json:"docA"`
	DocB  string  `json:"docB"`
	Score float64 `json:"score"`
}

// AnalysisResult is the complete report of one analysis run.
// Matches and GlobalSimilarity are never nil so they encode as [] when empty.
type AnalysisResult struct {
	Metadata         Metadata           `json:"metadata"`
	Matches          []Match            `json:"matches"`
	GlobalSimilarity []GlobalSimilarity `json:"global_similarity"`
}

// SentencePairScore is the raw similarity of two sentences from different documents.
// Docs are referenced by upload position; Source is always the earlier document.
type SentencePairScore struct {
	SourceDoc   int
	SourceIndex int
	TargetDoc   int
	TargetIndex int
	Similarity  float64
}

// DocumentPairScore is the raw similarity of two documents by upload position, A < B.
type DocumentPairScore struct {
	DocA  int
	DocB  int
	Score float64
}

// ErrorResponse is the error payload returned instead of a result.
type ErrorResponse struct {
	Error string `json:"error"`
}
