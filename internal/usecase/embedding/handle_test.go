package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/domain"
)

type mockEmbedder struct {
	embedFunc  func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	healthFunc func(ctx context.Context) error
	healthCnt  int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	return m.embedFunc(ctx, text)
}

func (m *mockEmbedder) HealthCheck(ctx context.Context) error {
	m.healthCnt++
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return nil
}

func TestHandleAvailableNilProvider(t *testing.T) {
	h := NewHandle(nil, time.Second, zap.NewNop())
	if h.Available() {
		t.Error("expected nil provider to be unavailable")
	}
	if _, err := h.Similarity(context.Background(), "a", "b"); !errors.Is(err, domain.ErrSemanticUnavailable) {
		t.Errorf("expected ErrSemanticUnavailable, got %v", err)
	}
}

func TestHandleProbeRunsOnce(t *testing.T) {
	mock := &mockEmbedder{}
	h := NewHandle(mock, time.Second, zap.NewNop())

	for i := 0; i < 3; i++ {
		if !h.Available() {
			t.Fatal("expected handle to be available")
		}
	}
	if mock.healthCnt != 1 {
		t.Errorf("expected single probe, got %d", mock.healthCnt)
	}
}

func TestHandleProbeFailureIsPermanent(t *testing.T) {
	mock := &mockEmbedder{
		healthFunc: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	}
	h := NewHandle(mock, time.Second, zap.NewNop())

	if h.Available() {
		t.Error("expected failed probe to disable the handle")
	}

	// A later recovery of the provider must not re-enable the handle.
	mock.healthFunc = nil
	if h.Available() {
		t.Error("expected handle to stay disabled after failed probe")
	}
	if mock.healthCnt != 1 {
		t.Errorf("expected single probe, got %d", mock.healthCnt)
	}
}

func TestHandleSimilarity(t *testing.T) {
	vectors := map[string][]float32{
		"query":      {1, 0},
		"same":       {1, 0},
		"opposite":   {-1, 0},
		"orthogonal": {0, 1},
	}
	mock := &mockEmbedder{
		embedFunc: func(ctx context.Context, text string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{Embedding: vectors[text]}, nil
		},
	}
	h := NewHandle(mock, time.Second, zap.NewNop())

	tests := []struct {
		name      string
		candidate string
		want      float64
	}{
		{"identical vectors", "same", 1},
		{"orthogonal vectors", "orthogonal", 0},
		{"negative cosine clamps to zero", "opposite", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Similarity(context.Background(), "query", tt.candidate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleSimilarityEmbedErrorDoesNotDisable(t *testing.T) {
	fail := true
	mock := &mockEmbedder{
		embedFunc: func(ctx context.Context, text string) (domain.EmbeddingResult, error) {
			if fail {
				return domain.EmbeddingResult{}, errors.New("rate limited")
			}
			return domain.EmbeddingResult{Embedding: []float32{1, 0}}, nil
		},
	}
	h := NewHandle(mock, time.Second, zap.NewNop())

	if _, err := h.Similarity(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected error from failing provider")
	}
	if !h.Available() {
		t.Error("per-call failure must not disable the handle")
	}

	fail = false
	got, err := h.Similarity(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if got != 1 {
		t.Errorf("Similarity() = %v, want 1", got)
	}
}
