// Package lexical computes vector-space similarity between a query and a
// candidate batch in one pass. The vocabulary and inverse document
// frequencies are built from the query and all candidate texts jointly, so
// term weights reflect the whole batch rather than isolated pairs.
package lexical

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/paperlane/simcheck/internal/analysis/keyword"
	"github.com/paperlane/simcheck/internal/domain"
	"github.com/paperlane/simcheck/internal/domain/signal"
)

const (
	// maxFeatures caps the joint vocabulary to avoid overfitting to rare terms.
	maxFeatures = 1000
	// maxDocFraction drops terms that appear in nearly every text; they carry
	// no distinguishing weight.
	maxDocFraction = 0.95
)

// Score is the lexical similarity outcome for one candidate. Reason is set
// when the candidate could not participate in vectorization.
type Score struct {
	Similarity float64
	Reason     string
}

// Similarities scores every candidate text against the query in one batched
// pass. Texts are expected to be normalized already.
//
// Candidates shorter than the minimum comparable length are excluded from
// vectorization and scored 0 with a "too short" reason. When fewer than two
// non-empty texts exist overall there is no vector space to build, and every
// candidate scores 0 with an "insufficient data" reason.
func Similarities(query string, texts []string) []Score {
	scores := make([]Score, len(texts))

	usable := make([]bool, len(texts))
	usableCount := 0
	if len(query) > 0 {
		usableCount++
	}
	for i, t := range texts {
		if utf8.RuneCountInString(t) >= signal.MinComparableChars {
			usable[i] = true
			usableCount++
		} else {
			scores[i] = Score{Reason: domain.ReasonTooShort}
		}
	}

	if usableCount < 2 {
		for i := range scores {
			scores[i] = Score{Reason: domain.ReasonInsufficientData}
		}
		return scores
	}

	batch := make([]map[string]int, 0, usableCount)
	batch = append(batch, keyword.TermFrequencies(query))
	for i, t := range texts {
		if usable[i] {
			batch = append(batch, keyword.TermFrequencies(t))
		}
	}

	vocab, idf := buildVocabulary(batch)

	queryVec := vectorize(batch[0], vocab, idf)
	next := 1
	for i := range texts {
		if !usable[i] {
			continue
		}
		scores[i] = Score{Similarity: dot(queryVec, vectorize(batch[next], vocab, idf))}
		next++
	}

	return scores
}

// buildVocabulary assigns indices to the retained terms and computes
// smoothed inverse document frequencies over the batch.
func buildVocabulary(batch []map[string]int) (map[string]int, []float64) {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range batch {
		for term, count := range doc {
			df[term]++
			total[term] += count
		}
	}

	n := len(batch)
	maxDF := int(maxDocFraction * float64(n))
	if maxDF < 1 {
		maxDF = 1
	}

	terms := make([]string, 0, len(df))
	for term, d := range df {
		if d <= maxDF {
			terms = append(terms, term)
		}
	}

	// Feature cap: most frequent first, lexicographic on ties so the space
	// is deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	return vocab, idf
}

// vectorize builds the L2-normalized tf-idf vector for one document.
func vectorize(doc map[string]int, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(idf))
	for term, count := range doc {
		if idx, ok := vocab[term]; ok {
			vec[idx] = float64(count) * idf[idx]
		}
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// dot is the cosine similarity of two already-normalized vectors.
func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	if sum < 0 {
		return 0
	}
	return sum
}
