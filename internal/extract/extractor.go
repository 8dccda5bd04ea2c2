// Package extract resolves document references to plain text. Extraction is
// best-effort by contract: every failure — network error, unsupported type,
// decode failure — is swallowed into an empty result, which downstream logic
// interprets as "fall back to metadata".
package extract

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/metrics"
)

// DefaultTimeout bounds each content fetch.
const DefaultTimeout = 30 * time.Second

// maxFetchBytes bounds how much of a remote document is read.
const maxFetchBytes = 32 << 20

const userAgent = "simcheck/1.0"

// Extractor fetches remote documents and extracts their text.
type Extractor struct {
	client *http.Client
	logger *zap.Logger
}

// New creates an extractor with the given fetch timeout. A zero timeout
// falls back to DefaultTimeout.
func New(timeout time.Duration, logger *zap.Logger) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FromURL resolves a document URL to plain text, dispatching on the resolved
// file extension and the declared content type. PDF yields the text layer,
// plain text and markdown yield the raw body, anything else yields empty
// text. Never returns an error: all failures produce an empty result.
func (e *Extractor) FromURL(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	body, contentType, ok := e.fetch(ctx, rawURL)
	if !ok {
		metrics.ExtractionTotal.WithLabelValues("fetch_error").Inc()
		return ""
	}

	ext := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		ext = strings.ToLower(path.Ext(parsed.Path))
	}
	contentType = strings.ToLower(contentType)

	switch {
	case ext == ".pdf" || strings.Contains(contentType, "pdf"):
		text, err := PDFText(body)
		if err != nil {
			e.logger.Warn("PDF extraction failed", zap.String("url", rawURL), zap.Error(err))
			metrics.ExtractionTotal.WithLabelValues("parse_error").Inc()
			return ""
		}
		metrics.ExtractionTotal.WithLabelValues("pdf").Inc()
		return text
	case ext == ".txt" || ext == ".md" || strings.Contains(contentType, "text"):
		metrics.ExtractionTotal.WithLabelValues("text").Inc()
		return string(body)
	default:
		e.logger.Debug("unsupported document type",
			zap.String("url", rawURL),
			zap.String("content_type", contentType),
		)
		metrics.ExtractionTotal.WithLabelValues("unsupported").Inc()
		return ""
	}
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (body []byte, contentType string, ok bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		e.logger.Debug("invalid document URL", zap.String("url", rawURL), zap.Error(err))
		return nil, "", false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("document fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("document fetch returned non-OK status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, "", false
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		e.logger.Warn("document read failed", zap.String("url", rawURL), zap.Error(err))
		return nil, "", false
	}

	return body, resp.Header.Get("Content-Type"), true
}
