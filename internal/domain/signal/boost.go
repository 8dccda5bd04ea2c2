package signal

import "strings"

// TitleOverlap computes the Jaccard ratio (intersection over union) of the
// whitespace-tokenized, lower-cased word sets of two titles.
func TitleOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// BoostNearDuplicate amplifies a metadata-mode score when the query and
// candidate titles overlap strongly enough to suggest the same document.
// The boosted score never exceeds BoostCeiling: metadata comparison alone
// must not produce a false "identical" signal.
func BoostNearDuplicate(score float64, queryTitle, candidateTitle string) float64 {
	if TitleOverlap(queryTitle, candidateTitle) < TitleOverlapGate {
		return score
	}
	boosted := score * NearDuplicateBoost
	if boosted > BoostCeiling {
		return BoostCeiling
	}
	return boosted
}

func tokenSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
