package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInputCount is returned when fewer than two documents are supplied.
	ErrInvalidInputCount = errors.New("at least 2 documents are required")
	// ErrInvalidThreshold is returned when the threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
)

// MinDocuments is the smallest number of documents that yields a cross-document pair.
const MinDocuments = 2

// AnalysisRequest is the engine-facing input: ordered documents and a threshold.
type AnalysisRequest struct {
	Documents []DocumentInput `json:"documents"`
	Threshold float64         `json:"threshold"`
}

// Validate checks the document count and threshold range.
// It does not clamp: out-of-range thresholds are rejected.
func (r *AnalysisRequest) Validate() error {
	if len(r.Documents) < MinDocuments {
		return fmt.Errorf("%w: got %d", ErrInvalidInputCount, len(r.Documents))
	}
	return ValidateThreshold(r.Threshold)
}

// ValidateThreshold returns ErrInvalidThreshold unless 0 <= t <= 1.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, t)
	}
	return nil
}

// IsValidationError reports whether err is one of the request validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInputCount) || errors.Is(err, ErrInvalidThreshold)
}
