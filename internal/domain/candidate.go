package domain

// Comparison methods recorded per candidate in the signal breakdown.
const (
	MethodFullContent      = "full_content"
	MethodMetadataFallback = "metadata_fallback"
	MethodMetadataOnly     = "title_and_description_only"
)

// Skip and failure reasons recorded when a candidate cannot be scored.
const (
	ReasonTooShort         = "document too short for meaningful comparison"
	ReasonInsufficientData = "insufficient valid documents for comparison"
)

// Breakdown explains how a candidate's score was produced. Signal values are
// percentages except LengthFactor, which stays in [0.7, 1.0] (or 0 when a
// text had no words). Reason is set when the candidate was skipped or failed.
type Breakdown struct {
	Semantic       *float64 `json:"semantic,omitempty"`
	Lexical        float64  `json:"lexical"`
	KeywordOverlap float64  `json:"keyword_overlap"`
	LengthFactor   float64  `json:"length_factor"`
	QueryKeywords  []string `json:"query_keywords,omitempty"`
	DocKeywords    []string `json:"doc_keywords,omitempty"`
	Method         string   `json:"method"`
	Reason         string   `json:"reason,omitempty"`
}

// ScoredCandidate is a Document copy augmented with its similarity score and
// the signal breakdown. Created per request and discarded with the response.
type ScoredCandidate struct {
	Document
	SimilarityScore float64   `json:"similarity_score"`
	Breakdown       Breakdown `json:"similarity_details"`
}
