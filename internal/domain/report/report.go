// Package report ranks scored candidates and assembles the response report.
package report

import (
	"sort"
	"strings"

	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/domain/signal"
)

// MaxMatches bounds the number of matches included in a report.
const MaxMatches = 5

// Methodology tags which scoring pipeline produced a report.
type Methodology string

const (
	// Semantic marks the full multi-signal pipeline with embedding similarity.
	Semantic Methodology = "semantic"
	// Lexical marks the degraded pipeline without the embedding signal.
	Lexical Methodology = "lexical"
)

// Match is the projection of a scored candidate exposed in a report. The
// full signal breakdown is intentionally not part of it.
type Match struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Year            int     `json:"year"`
	SimilarityScore float64 `json:"similarity_score"`
	DocumentURL     string  `json:"document_url,omitempty"`
}

// Report is the ranked similarity report for one request.
type Report struct {
	OverallSimilarity float64     `json:"overall_similarity"`
	Matches           []Match     `json:"matches"`
	CorpusSize        int         `json:"corpus_size"`
	QueryWordCount    int         `json:"query_word_count"`
	Methodology       Methodology `json:"methodology"`
}

// Build sorts candidates descending by score (stable on ties, preserving the
// original candidate order), selects the top matches, and computes the
// overall similarity.
//
// The semantic pipeline reports the maximum top score: duplication detection
// asks "is there any one strong match". The lexical pipeline reports a
// self-weighted average where each candidate weighs in proportionally to its
// own score, degenerating to the max when one score dominates.
func Build(query string, candidates []domain.ScoredCandidate, corpusSize int, m Methodology) Report {
	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SimilarityScore > ranked[j].SimilarityScore
	})

	top := ranked
	if len(top) > MaxMatches {
		top = top[:MaxMatches]
	}

	matches := make([]Match, len(top))
	for i, c := range top {
		matches[i] = Match{
			ID:              c.ID,
			Title:           c.Title,
			Author:          c.Author,
			Year:            c.Year,
			SimilarityScore: signal.Clamp(c.SimilarityScore),
			DocumentURL:     c.DocumentURL,
		}
	}

	return Report{
		OverallSimilarity: signal.Clamp(overallSimilarity(matches, m)),
		Matches:           matches,
		CorpusSize:        corpusSize,
		QueryWordCount:    len(strings.Fields(query)),
		Methodology:       m,
	}
}

func overallSimilarity(matches []Match, m Methodology) float64 {
	if len(matches) == 0 {
		return 0
	}

	if m == Semantic {
		best := 0.0
		for _, match := range matches {
			if match.SimilarityScore > best {
				best = match.SimilarityScore
			}
		}
		return best
	}

	total := 0.0
	for _, match := range matches {
		total += match.SimilarityScore
	}
	if total == 0 {
		return 0
	}
	overall := 0.0
	for _, match := range matches {
		overall += match.SimilarityScore * (match.SimilarityScore / total)
	}
	return overall
}
