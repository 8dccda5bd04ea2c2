// Package chi exposes the similarity API over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/domain/report"
	"github.com/paperlane/simcheck/internal/domain/signal"
	"github.com/paperlane/simcheck/internal/extract"
	healthuc "github.com/paperlane/simcheck/internal/usecase/health"
	metadatauc "github.com/paperlane/simcheck/internal/usecase/metadata"
)

// maxUploadBytes bounds the accepted multipart upload size.
const maxUploadBytes = 32 << 20

// ErrorCode categorizes API error responses.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeExtractionFailed ErrorCode = "extraction_failed"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// similarityChecker runs the full-content comparison pipeline.
type similarityChecker interface {
	Check(ctx context.Context, query string, corpus []domain.Document) (report.Report, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the similarity API.
type Server struct {
	similarity    similarityChecker
	metadata      *metadatauc.Service
	health        *healthuc.Service
	sampleCorpus  []domain.Document
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. sampleCorpus may be empty; it backs
// /check-similarity requests that carry no comparison documents.
func NewServer(
	similarity similarityChecker,
	metadata *metadatauc.Service,
	health *healthuc.Service,
	sampleCorpus []domain.Document,
	logger *zap.Logger,
) *Server {
	s := &Server{
		similarity:   similarity,
		metadata:     metadata,
		health:       health,
		sampleCorpus: sampleCorpus,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrTextTooShort, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrMetadataRequired, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmptyCorpus, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotPDF, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrEmptyUpload, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNoExtractableText, http.StatusBadRequest, CodeValidationFailed),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/check-similarity", s.CheckSimilarity)
	r.Post("/check-metadata-similarity", s.CheckMetadataSimilarity)
	r.Post("/extract-pdf-text", s.ExtractPDFText)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

type checkSimilarityRequest struct {
	Text     string            `json:"text"`
	Projects []domain.Document `json:"projects"`
}

// CheckSimilarity handles POST /check-similarity.
func (s *Server) CheckSimilarity(w http.ResponseWriter, r *http.Request) {
	var req checkSimilarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	corpus := req.Projects
	if len(corpus) == 0 {
		corpus = s.sampleCorpus
	}
	if len(corpus) == 0 {
		s.handleDomainError(w, domain.ErrEmptyCorpus)
		return
	}

	rep, err := s.similarity.Check(r.Context(), req.Text, corpus)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

type checkMetadataRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Projects    []domain.Document `json:"projects"`
}

// CheckMetadataSimilarity handles POST /check-metadata-similarity.
func (s *Server) CheckMetadataSimilarity(w http.ResponseWriter, r *http.Request) {
	var req checkMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Projects) == 0 {
		s.handleDomainError(w, domain.ErrEmptyCorpus)
		return
	}

	rep, err := s.metadata.Check(req.Title, req.Description, req.Projects)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

type extractPDFResponse struct {
	Text     string `json:"text"`
	Length   int    `json:"length"`
	Filename string `json:"filename"`
}

// ExtractPDFText handles POST /extract-pdf-text.
func (s *Server) ExtractPDFText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Multipart field 'file' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.handleDomainError(w, domain.ErrNotPDF)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Failed to read uploaded file")
		return
	}
	if len(data) == 0 {
		s.handleDomainError(w, domain.ErrEmptyUpload)
		return
	}
	if !extract.IsPDF(data) {
		s.handleDomainError(w, domain.ErrNotPDF)
		return
	}

	text, err := extract.PDFText(data)
	if err != nil {
		s.logger.Error("pdf extraction failed",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, CodeExtractionFailed, "Failed to extract text from PDF")
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < signal.MinQueryChars {
		s.handleDomainError(w, domain.ErrNoExtractableText)
		return
	}

	writeJSON(w, http.StatusOK, extractPDFResponse{
		Text:     text,
		Length:   utf8.RuneCountInString(text),
		Filename: header.Filename,
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check())
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTextTooShort,
		domain.ErrMetadataRequired,
		domain.ErrEmptyCorpus,
		domain.ErrNotPDF,
		domain.ErrEmptyUpload,
		domain.ErrNoExtractableText,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
