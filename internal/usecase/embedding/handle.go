// Package embedding owns the process-wide handle to the semantic embedding
// capability. The handle is initialized at most once per process, guarded so
// concurrent first-use does not trigger duplicate probes, and is read-only
// afterwards.
package embedding

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/domain"
)

// Handle is the lazily-initialized semantic capability. Callers select a
// scoring strategy via Available() instead of catching failures deep inside
// the scoring hot path.
type Handle struct {
	provider     domain.Embedder
	probeTimeout time.Duration
	logger       *zap.Logger

	once      sync.Once
	available atomic.Bool
}

// NewHandle wraps an embedding provider. A nil provider means the semantic
// capability is absent for the process lifetime.
func NewHandle(provider domain.Embedder, probeTimeout time.Duration, logger *zap.Logger) *Handle {
	return &Handle{
		provider:     provider,
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// Available reports whether the semantic signal can be computed. The first
// call probes the provider; a failed probe disables the capability for the
// remainder of the process.
func (h *Handle) Available() bool {
	if h.provider == nil {
		return false
	}

	h.once.Do(func() {
		probe, ok := h.provider.(domain.HealthChecker)
		if !ok {
			h.available.Store(true)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.probeTimeout)
		defer cancel()

		if err := probe.HealthCheck(ctx); err != nil {
			h.logger.Warn("semantic model unavailable, running lexical-only", zap.Error(err))
			return
		}
		h.available.Store(true)
		h.logger.Info("semantic model ready")
	})

	return h.available.Load()
}

// Similarity computes the embedding cosine similarity between two texts,
// clamped to [0, 1]. Each text is embedded independently. A per-call
// provider failure surfaces as an error so the caller can drop the semantic
// signal for the remainder of its request; it does not disable the handle.
func (h *Handle) Similarity(ctx context.Context, query, candidate string) (float64, error) {
	if !h.Available() {
		return 0, domain.ErrSemanticUnavailable
	}

	queryRes, err := h.provider.Embed(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("embed query: %w", err)
	}
	candRes, err := h.provider.Embed(ctx, candidate)
	if err != nil {
		return 0, fmt.Errorf("embed candidate: %w", err)
	}

	cos := domain.CosineSimilarity(queryRes.Embedding, candRes.Embedding)
	if cos < 0 {
		return 0, nil
	}
	if cos > 1 {
		return 1, nil
	}
	return cos, nil
}
