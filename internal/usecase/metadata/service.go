// Package metadata implements the lightweight title-and-description
// comparison pipeline. It never extracts content or calls the embedding
// provider: candidates are scored on lexical similarity and keyword overlap
// alone, with a near-duplicate boost for strongly overlapping titles.
package metadata

import (
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/analysis/keyword"
	"github.com/paperlane/simcheck/internal/analysis/lexical"
	"github.com/paperlane/simcheck/internal/analysis/normalize"
	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/domain/report"
	"github.com/paperlane/simcheck/internal/domain/signal"
	"github.com/paperlane/simcheck/internal/metrics"
)

// Report is the extended response of the metadata-only comparison. Unlike
// the full-content report it carries every match above the inclusion
// threshold, not just the top five.
type Report struct {
	OverallSimilarity  float64                  `json:"overall_similarity"`
	Matches            []domain.ScoredCandidate `json:"matches"`
	SignificantMatches int                      `json:"significant_matches"`
	TotalMatches       int                      `json:"total_matches"`
	CorpusSize         int                      `json:"corpus_size"`
	Methodology        report.Methodology       `json:"methodology"`
	QueryLength        int                      `json:"query_length"`
	ComparisonType     string                   `json:"comparison_type"`
}

// Service scores a title/description pair against corpus metadata.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Check compares the query title and description against every corpus
// document's title and description. Matches are included only above the
// inclusion threshold and sorted descending; the overall similarity is the
// top match's score, or 0 without matches.
func (s *Service) Check(title, description string, corpus []domain.Document) (Report, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return Report{}, domain.ErrMetadataRequired
	}

	rawQuery := domain.JoinTitleDescription(title, description)
	query := normalize.Aggressive(rawQuery)

	// Metadata too thin to vectorize yields an empty report, not an error.
	if utf8.RuneCountInString(strings.TrimSpace(query)) < signal.MinQueryChars {
		s.logger.Debug("metadata query too short for comparison",
			zap.Int("query_chars", utf8.RuneCountInString(query)),
		)
		return Report{
			CorpusSize:     len(corpus),
			Methodology:    report.Lexical,
			QueryLength:    len(strings.Fields(rawQuery)),
			ComparisonType: domain.MethodMetadataOnly,
		}, nil
	}

	texts := make([]string, len(corpus))
	for i, doc := range corpus {
		texts[i] = normalize.Aggressive(doc.TitleAndDescription())
	}
	lexScores := lexical.Similarities(query, texts)

	queryKeywords := keyword.Extract(query)
	queryWords := len(strings.Fields(query))

	matches := make([]domain.ScoredCandidate, 0, len(corpus))
	for i, doc := range corpus {
		metrics.CandidatesTotal.WithLabelValues(domain.MethodMetadataOnly).Inc()
		if lexScores[i].Reason != "" {
			continue
		}

		docKeywords := keyword.Extract(texts[i])
		set := signal.Set{
			Lexical:        lexScores[i].Similarity,
			KeywordOverlap: keyword.Overlap(queryKeywords, docKeywords),
			LengthFactor:   signal.LengthFactor(queryWords, len(strings.Fields(texts[i]))),
		}
		score := signal.BoostNearDuplicate(signal.Fuse(set), title, doc.Title)
		if score <= signal.InclusionThreshold {
			continue
		}

		matches = append(matches, domain.ScoredCandidate{
			Document:        doc,
			SimilarityScore: score,
			Breakdown: domain.Breakdown{
				Lexical:        set.Lexical * 100,
				KeywordOverlap: set.KeywordOverlap * 100,
				LengthFactor:   set.LengthFactor,
				QueryKeywords:  queryKeywords,
				DocKeywords:    docKeywords,
				Method:         domain.MethodMetadataOnly,
			},
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})

	overall := 0.0
	significant := 0
	for _, m := range matches {
		if m.SimilarityScore > overall {
			overall = m.SimilarityScore
		}
		if m.SimilarityScore > signal.SignificantMatch {
			significant++
		}
	}

	metrics.SimilarityChecksTotal.WithLabelValues("metadata").Inc()
	s.logger.Debug("metadata similarity check completed",
		zap.Int("corpus_size", len(corpus)),
		zap.Int("matches", len(matches)),
		zap.Int("significant", significant),
	)

	return Report{
		OverallSimilarity:  signal.Clamp(overall),
		Matches:            matches,
		SignificantMatches: significant,
		TotalMatches:       len(matches),
		CorpusSize:         len(corpus),
		Methodology:        report.Lexical,
		QueryLength:        len(strings.Fields(rawQuery)),
		ComparisonType:     domain.MethodMetadataOnly,
	}, nil
}
