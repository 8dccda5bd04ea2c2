package similarity

import "context"

// TextExtractor resolves a document URL to plain text. An empty result means
// no usable content and triggers the metadata fallback.
type TextExtractor interface {
	FromURL(ctx context.Context, rawURL string) string
}

// SemanticScorer exposes the embedding-based similarity capability.
type SemanticScorer interface {
	Available() bool
	Similarity(ctx context.Context, query, candidate string) (float64, error)
}
