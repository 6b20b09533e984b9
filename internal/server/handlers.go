package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/hyperjump/simcheck/internal/extract"
	"github.com/hyperjump/simcheck/internal/models"
	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
const multipartMemory = 32 << 20

// uploadFields are the form field names accepted for uploaded files.
var uploadFields = []string{"files[]", "files"}

type textAnalyzeRequest struct {
	Documents []models.DocumentInput `json:"documents"`
	Threshold *float64               `json:"threshold"`
}

func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var files []*multipart.FileHeader
	for _, field := range uploadFields {
		files = append(files, r.MultipartForm.File[field]...)
	}
	if len(files) == 0 {
		s.respondError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	if msg := s.checkDocumentCount(len(files)); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	threshold, err := s.parseThreshold(r.FormValue("threshold"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs := make([]models.DocumentInput, 0, len(files))
	for _, fh := range files {
		ext := extract.Ext(fh.Filename)
		if !s.config.Analysis.AllowsExtension(ext) {
			s.respondError(w, http.StatusBadRequest,
				fmt.Sprintf("unsupported file type %q: allowed %s", fh.Filename, strings.Join(s.config.Analysis.Extensions, ", ")))
			return
		}
		text, err := s.readUpload(fh, ext)
		if err != nil {
			s.logger.Warn("extraction failed", zap.String("file", fh.Filename), zap.Error(err))
			s.respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to extract text from %s", fh.Filename))
			return
		}
		docs = append(docs, models.DocumentInput{Name: fh.Filename, Text: text})
	}
	s.logger.Debug("analyze upload request", zap.Int("files", len(docs)), zap.Float64("threshold", threshold))
	s.analyze(w, r, &models.AnalysisRequest{Documents: docs, Threshold: threshold})
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
	var body textAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "request exceeds size limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := s.checkDocumentCount(len(body.Documents)); msg != "" {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	threshold := s.config.Analysis.DefaultThresholdOrDefault()
	if body.Threshold != nil {
		threshold = *body.Threshold
	}
	s.logger.Debug("analyze text request", zap.Int("documents", len(body.Documents)), zap.Float64("threshold", threshold))
	s.analyze(w, r, &models.AnalysisRequest{Documents: body.Documents, Threshold: threshold})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req *models.AnalysisRequest) {
	result, err := s.analyzer.Analyze(r.Context(), req)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, result)
	case models.IsValidationError(err):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("analysis abandoned", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "analysis cancelled")
	default:
		s.logger.Error("analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// checkDocumentCount returns a message when n exceeds the configured cap.
// The lower bound is left to the analyzer's validation.
func (s *Server) checkDocumentCount(n int) string {
	if limit := s.config.Analysis.MaxDocuments; n > limit {
		return fmt.Sprintf("too many documents: got %d, maximum is %d", n, limit)
	}
	return ""
}

// parseThreshold parses the form value; an empty value means the configured default.
// Range is checked by the analyzer.
func (s *Server) parseThreshold(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return s.config.Analysis.DefaultThresholdOrDefault(), nil
	}
	t, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q", v)
	}
	return t, nil
}

func (s *Server) readUpload(fh *multipart.FileHeader, ext string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return s.extractor.ExtractBytes(content, ext)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Error: message})
}
