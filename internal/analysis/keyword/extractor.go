// Package keyword derives bounded salient-term sets from text via weighted
// term statistics.
package keyword

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// maxFeatures caps the vocabulary considered for keyword ranking.
	maxFeatures = 20
	// maxKeywords bounds the returned keyword set.
	maxKeywords = 10
	// fallbackMinWordLen filters trivial tokens in the degraded path.
	fallbackMinWordLen = 3
)

var tokenPattern = regexp.MustCompile(`\w\w+`)

// Extract returns up to 10 salient terms (unigrams and bigrams) ordered by
// weight descending, ties broken lexicographically so identical input always
// yields the identical ordered list.
//
// Weights follow a TF-IDF scheme over a synthetic two-document corpus formed
// by duplicating the input — the scheme needs at least two documents to
// produce non-degenerate weights for a single text. Every term then appears
// in both documents, so the smoothed IDF is the constant ln((1+2)/(1+2))+1
// and ranking reduces to term frequency; the constant is kept explicit so
// the weighting stays a faithful TF-IDF computation.
//
// When the text yields no usable terms, falls back to lower-cased whitespace
// tokens longer than three characters, first ten, in input order.
func Extract(text string) []string {
	terms := TermFrequencies(text)
	if len(terms) == 0 {
		return fallback(text)
	}

	const duplicatedCorpusIDF = 1.0 // ln((1+N)/(1+df))+1 with N=df=2

	type weighted struct {
		term   string
		weight float64
	}
	features := make([]weighted, 0, len(terms))
	for term, count := range terms {
		features = append(features, weighted{term, float64(count) * duplicatedCorpusIDF})
	}

	// Vocabulary cap mirrors a max_features cut: keep the most frequent
	// terms, lexicographic on ties for determinism.
	sort.Slice(features, func(i, j int) bool {
		if features[i].weight != features[j].weight {
			return features[i].weight > features[j].weight
		}
		return features[i].term < features[j].term
	})
	if len(features) > maxFeatures {
		features = features[:maxFeatures]
	}

	n := len(features)
	if n > maxKeywords {
		n = maxKeywords
	}
	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = features[i].term
	}
	return keywords
}

// Overlap computes the Jaccard ratio of two keyword lists. Either list being
// empty yields 0.
func Overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, k := range a {
		setA[k] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, k := range b {
		setB[k] = struct{}{}
	}

	intersection := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Tokens splits text into lower-cased word tokens of at least two
// characters with stop words removed. Shared by the lexical vectorizer so
// both signal paths see the same token stream.
func Tokens(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if !isStopword(t) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// TermFrequencies counts unigrams and adjacent-pair bigrams over the
// stopword-filtered token stream.
func TermFrequencies(text string) map[string]int {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}

	terms := make(map[string]int, len(tokens)*2)
	for i, t := range tokens {
		terms[t]++
		if i+1 < len(tokens) {
			terms[t+" "+tokens[i+1]]++
		}
	}
	return terms
}

func fallback(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	keywords := make([]string, 0, maxKeywords)
	for _, w := range words {
		if len(w) > fallbackMinWordLen {
			keywords = append(keywords, w)
			if len(keywords) == maxKeywords {
				break
			}
		}
	}
	return keywords
}
