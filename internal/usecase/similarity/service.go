// Package similarity implements the full-content comparison pipeline: a
// query text scored against every corpus document across semantic, lexical,
// keyword and length signals.
package similarity

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/paperlane/simcheck/internal/analysis/keyword"
	"github.com/paperlane/simcheck/internal/analysis/lexical"
	"github.com/paperlane/simcheck/internal/analysis/normalize"
	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/domain/report"
	"github.com/paperlane/simcheck/internal/domain/signal"
	"github.com/paperlane/simcheck/internal/metrics"
)

// DefaultWorkers bounds per-candidate concurrency when no worker count is
// configured.
const DefaultWorkers = 4

// Service runs the multi-signal similarity pipeline. Extraction and
// per-candidate scoring fan out over a shared worker pool; the lexical pass
// stays batched because its vector space is built from all texts jointly.
type Service struct {
	extractor TextExtractor
	semantic  SemanticScorer
	pool      *ants.Pool
	logger    *zap.Logger
}

// NewService builds the pipeline service. The worker pool is owned by the
// service and released by Close.
func NewService(extractor TextExtractor, semantic SemanticScorer, workers int, logger *zap.Logger) (*Service, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Service{
		extractor: extractor,
		semantic:  semantic,
		pool:      pool,
		logger:    logger,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// candidate carries per-document pipeline state between phases.
type candidate struct {
	doc    domain.Document
	text   string
	method string
}

// Check scores the query text against the corpus and assembles a ranked
// report. An empty corpus yields an empty report rather than an error; the
// caller decides whether that is acceptable for its endpoint.
func (s *Service) Check(ctx context.Context, query string, corpus []domain.Document) (report.Report, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < signal.MinQueryChars {
		return report.Report{}, domain.ErrTextTooShort
	}

	semanticMode := s.semantic != nil && s.semantic.Available()
	methodology := report.Lexical
	if semanticMode {
		methodology = report.Semantic
	}

	if len(corpus) == 0 {
		rep := report.Build(query, nil, 0, methodology)
		metrics.SimilarityChecksTotal.WithLabelValues(string(methodology)).Inc()
		return rep, nil
	}

	normalizedQuery := normalize.Structured(query)
	candidates := s.prepare(ctx, corpus)

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.text
	}
	lexScores := lexical.Similarities(normalizedQuery, texts)

	scored := s.score(ctx, normalizedQuery, candidates, lexScores, semanticMode)

	// A provider failure mid-request drops the semantic signal for the
	// remaining candidates; the report labels what was actually delivered.
	if semanticMode {
		for _, c := range scored {
			if c.Breakdown.Semantic == nil && c.Breakdown.Reason == "" {
				methodology = report.Lexical
				break
			}
		}
	}

	rep := report.Build(query, scored, len(corpus), methodology)
	metrics.SimilarityChecksTotal.WithLabelValues(string(methodology)).Inc()
	return rep, nil
}

// prepare resolves each document's comparison text concurrently: extracted
// full content when it is substantial, assembled metadata otherwise.
func (s *Service) prepare(ctx context.Context, corpus []domain.Document) []candidate {
	candidates := make([]candidate, len(corpus))

	var wg sync.WaitGroup
	for i, doc := range corpus {
		i, doc := i, doc
		wg.Add(1)
		task := func() {
			defer wg.Done()
			candidates[i] = s.resolveText(ctx, doc)
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return candidates
}

func (s *Service) resolveText(ctx context.Context, doc domain.Document) candidate {
	if doc.DocumentURL != "" {
		extracted := s.extractor.FromURL(ctx, doc.DocumentURL)
		if utf8.RuneCountInString(strings.TrimSpace(extracted)) > signal.MinExtractedChars {
			return candidate{
				doc:    doc,
				text:   normalize.Structured(extracted),
				method: domain.MethodFullContent,
			}
		}
		s.logger.Debug("extracted content too thin, using metadata",
			zap.String("document_id", doc.ID),
		)
	}
	return candidate{
		doc:    doc,
		text:   normalize.Structured(doc.MetadataText()),
		method: domain.MethodMetadataFallback,
	}
}

// score fans the per-candidate signal computation out over the worker pool
// and fuses each signal set into a final score.
func (s *Service) score(ctx context.Context, normalizedQuery string, candidates []candidate, lexScores []lexical.Score, semanticMode bool) []domain.ScoredCandidate {
	queryKeywords := keyword.Extract(normalizedQuery)
	queryWords := len(strings.Fields(normalizedQuery))

	// Once one embedding call fails, the rest of the request runs lexical.
	var degraded atomic.Bool

	scored := make([]domain.ScoredCandidate, len(candidates))
	var wg sync.WaitGroup
	for i := range candidates {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			scored[i] = s.scoreOne(ctx, normalizedQuery, queryKeywords, queryWords, candidates[i], lexScores[i], semanticMode, &degraded)
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return scored
}

func (s *Service) scoreOne(ctx context.Context, normalizedQuery string, queryKeywords []string, queryWords int, c candidate, lex lexical.Score, semanticMode bool, degraded *atomic.Bool) domain.ScoredCandidate {
	metrics.CandidatesTotal.WithLabelValues(c.method).Inc()

	if lex.Reason != "" {
		return domain.ScoredCandidate{
			Document: c.doc,
			Breakdown: domain.Breakdown{
				Method: c.method,
				Reason: lex.Reason,
			},
		}
	}

	docKeywords := keyword.Extract(c.text)
	set := signal.Set{
		Lexical:        lex.Similarity,
		KeywordOverlap: keyword.Overlap(queryKeywords, docKeywords),
		LengthFactor:   signal.LengthFactor(queryWords, len(strings.Fields(c.text))),
	}

	var semanticPct *float64
	if semanticMode && !degraded.Load() {
		cos, err := s.semantic.Similarity(ctx, normalizedQuery, c.text)
		if err != nil {
			degraded.Store(true)
			s.logger.Warn("semantic scoring failed, degrading request to lexical",
				zap.String("document_id", c.doc.ID),
				zap.Error(err),
			)
		} else {
			set.Semantic = cos
			set.HasSemantic = true
			pct := cos * 100
			semanticPct = &pct
		}
	}

	// A metadata comparison under-weights an obviously identical title, so
	// fallback candidates whose title tokens strongly overlap the query get
	// the near-duplicate boost.
	score := signal.Fuse(set)
	if c.method == domain.MethodMetadataFallback {
		score = signal.BoostNearDuplicate(score, normalizedQuery, c.doc.Title)
	}

	return domain.ScoredCandidate{
		Document:        c.doc,
		SimilarityScore: score,
		Breakdown: domain.Breakdown{
			Semantic:       semanticPct,
			Lexical:        set.Lexical * 100,
			KeywordOverlap: set.KeywordOverlap * 100,
			LengthFactor:   set.LengthFactor,
			QueryKeywords:  queryKeywords,
			DocKeywords:    docKeywords,
			Method:         c.method,
		},
	}
}
