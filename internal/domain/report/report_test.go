package report

import (
	"fmt"
	"math"
	"testing"

	"github.com/paperlane/simcheck/internal/domain"
)

func scored(id string, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Document:        domain.Document{ID: id, Title: "t-" + id},
		SimilarityScore: score,
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	rep := Build("some query text", nil, 0, Lexical)

	if rep.OverallSimilarity != 0 {
		t.Errorf("overall = %v, want 0", rep.OverallSimilarity)
	}
	if len(rep.Matches) != 0 {
		t.Errorf("matches = %d, want 0", len(rep.Matches))
	}
	if rep.CorpusSize != 0 {
		t.Errorf("corpus_size = %d, want 0", rep.CorpusSize)
	}
	if rep.QueryWordCount != 3 {
		t.Errorf("query_word_count = %d, want 3", rep.QueryWordCount)
	}
}

func TestBuildSortsDescending(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("low", 10),
		scored("high", 90),
		scored("mid", 50),
	}

	rep := Build("query", candidates, len(candidates), Semantic)

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if rep.Matches[i].ID != want {
			t.Errorf("matches[%d] = %q, want %q", i, rep.Matches[i].ID, want)
		}
	}
}

func TestBuildStableOnTies(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("first", 50),
		scored("second", 50),
		scored("third", 50),
	}

	rep := Build("query", candidates, len(candidates), Lexical)

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if rep.Matches[i].ID != want {
			t.Errorf("matches[%d] = %q, want %q (ties must keep input order)", i, rep.Matches[i].ID, want)
		}
	}
}

func TestBuildBoundsMatches(t *testing.T) {
	candidates := make([]domain.ScoredCandidate, 9)
	for i := range candidates {
		candidates[i] = scored(fmt.Sprintf("d%d", i), float64(90-i))
	}

	rep := Build("query", candidates, len(candidates), Semantic)

	if len(rep.Matches) != MaxMatches {
		t.Fatalf("matches = %d, want %d", len(rep.Matches), MaxMatches)
	}
	if rep.CorpusSize != 9 {
		t.Errorf("corpus_size = %d, want 9", rep.CorpusSize)
	}
}

func TestBuildSemanticOverallIsMax(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("a", 80),
		scored("b", 40),
		scored("c", 20),
	}

	rep := Build("query", candidates, len(candidates), Semantic)

	if rep.OverallSimilarity != 80 {
		t.Errorf("overall = %v, want 80 (max of top scores)", rep.OverallSimilarity)
	}
}

func TestBuildLexicalOverallIsSelfWeighted(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("a", 60),
		scored("b", 30),
	}

	rep := Build("query", candidates, len(candidates), Lexical)

	// sum(s * s/total) with total = 90
	want := 60*(60.0/90) + 30*(30.0/90)
	if math.Abs(rep.OverallSimilarity-want) > 1e-9 {
		t.Errorf("overall = %v, want %v", rep.OverallSimilarity, want)
	}
}

func TestBuildLexicalOverallDegeneratesToMax(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("dominant", 90),
		scored("noise", 0),
	}

	rep := Build("query", candidates, len(candidates), Lexical)

	if math.Abs(rep.OverallSimilarity-90) > 1e-9 {
		t.Errorf("overall = %v, want 90 when one score dominates", rep.OverallSimilarity)
	}
}

func TestBuildClampsScores(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		scored("over", 130),
		scored("under", -5),
	}

	rep := Build("query", candidates, len(candidates), Semantic)

	for _, m := range rep.Matches {
		if m.SimilarityScore < 0 || m.SimilarityScore > 100 {
			t.Errorf("match %q score = %v, out of [0, 100]", m.ID, m.SimilarityScore)
		}
	}
	if rep.OverallSimilarity < 0 || rep.OverallSimilarity > 100 {
		t.Errorf("overall = %v, out of [0, 100]", rep.OverallSimilarity)
	}
}

func TestBuildProjectsMatchFields(t *testing.T) {
	candidates := []domain.ScoredCandidate{
		{
			Document: domain.Document{
				ID: "d1", Title: "Title", Author: "Author", Year: 2024,
				DocumentURL: "https://example.com/d1.pdf",
			},
			SimilarityScore: 55,
			Breakdown:       domain.Breakdown{Lexical: 55},
		},
	}

	rep := Build("query", candidates, 1, Lexical)

	m := rep.Matches[0]
	if m.ID != "d1" || m.Title != "Title" || m.Author != "Author" || m.Year != 2024 {
		t.Errorf("unexpected projection: %+v", m)
	}
	if m.DocumentURL != "https://example.com/d1.pdf" {
		t.Errorf("document_url = %q", m.DocumentURL)
	}
}
