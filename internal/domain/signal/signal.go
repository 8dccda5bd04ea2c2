// Package signal fuses independent similarity signals into one bounded
// score. All heuristic thresholds live here as named constants so they can
// be tuned and tested apart from the fusion structure.
package signal

// Gating thresholds on keyword overlap.
const (
	// LowOverlapGate caps scores for pairs that share almost no vocabulary.
	LowOverlapGate = 0.1
	// ModerateOverlapGate bounds the dampened middle tier.
	ModerateOverlapGate = 0.2
)

// Tier weights.
const (
	lowOverlapPenalty = 0.3

	moderatePrimaryWeight = 0.6
	moderateOverlapWeight = 0.4
	moderateDampening     = 0.7

	semanticWeight         = 0.4
	overlapWeight          = 0.3
	lexicalSupportWeight   = 0.2
	lengthSupportWeight    = 0.1
	lexicalPrimaryWeight   = 0.7
	overlapSecondaryWeight = 0.3
)

// Length factor bounds: 0.7 + 0.3 * (shorter/longer word count).
const (
	lengthFactorFloor = 0.7
	lengthFactorRange = 0.3
)

// Near-duplicate boost under metadata-only comparison.
const (
	// TitleOverlapGate is the title token Jaccard ratio that marks a
	// potentially identical document.
	TitleOverlapGate = 0.7
	// NearDuplicateBoost multiplies the score of a potential duplicate.
	NearDuplicateBoost = 2.5
	// BoostCeiling caps boosted scores so metadata alone never reads as a
	// certain 100% match.
	BoostCeiling = 95.0
)

// Shared comparison limits, all counted in characters, not bytes.
const (
	// MinComparableChars is the minimum normalized text length a candidate
	// needs to participate in vectorization.
	MinComparableChars = 20
	// MinQueryChars is the minimum trimmed query length accepted by the API.
	MinQueryChars = 10
	// MinExtractedChars is the minimum trimmed length for extracted full
	// content to be preferred over metadata.
	MinExtractedChars = 100
	// SignificantMatch is the score above which a match counts as significant.
	SignificantMatch = 20.0
	// InclusionThreshold is the score above which a metadata match is
	// included in the ranked list at all.
	InclusionThreshold = 5.0
)

// Set holds the independent similarity signals for one query/candidate pair.
// Semantic is meaningful only when HasSemantic is true; its absence marks
// degraded-capability mode. All signal values are in [0, 1]. A LengthFactor
// of 0 marks the pair as non-comparable.
type Set struct {
	Semantic       float64
	HasSemantic    bool
	Lexical        float64
	KeywordOverlap float64
	LengthFactor   float64
}

// Fuse combines the available signals into one score in [0, 100].
//
// Keyword overlap gates the combination: pairs sharing no vocabulary are
// heavily penalized even under high semantic similarity, the middle tier is
// dampened, and only above ModerateOverlapGate do all signals contribute by
// weight. The result is scaled by the length factor and expressed as a
// percentage.
func Fuse(s Set) float64 {
	if s.LengthFactor == 0 {
		return 0
	}

	primary := s.Lexical
	if s.HasSemantic {
		primary = s.Semantic
	}

	var combined float64
	switch {
	case s.KeywordOverlap < LowOverlapGate:
		combined = primary * lowOverlapPenalty
	case s.KeywordOverlap < ModerateOverlapGate:
		combined = (primary*moderatePrimaryWeight + s.KeywordOverlap*moderateOverlapWeight) * moderateDampening
	case s.HasSemantic:
		combined = s.Semantic*semanticWeight +
			s.KeywordOverlap*overlapWeight +
			s.Lexical*lexicalSupportWeight +
			s.LengthFactor*lengthSupportWeight
	default:
		combined = s.Lexical*lexicalPrimaryWeight + s.KeywordOverlap*overlapSecondaryWeight
	}

	return Clamp(combined * s.LengthFactor * 100)
}

// LengthFactor scales similarity by how comparable two texts are in length.
// Returns a value in [0.7, 1.0], or 0 when either text has no words, which
// downstream fusion must treat as non-comparable.
func LengthFactor(queryWords, docWords int) float64 {
	if queryWords == 0 || docWords == 0 {
		return 0
	}
	shorter, longer := queryWords, docWords
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return lengthFactorFloor + lengthFactorRange*float64(shorter)/float64(longer)
}

// Clamp bounds a score to [0, 100].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
