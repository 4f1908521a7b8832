package quiz

import (
	"math/rand"
	"testing"

	"art-quiz-service/internal/domain"
)

func TestGenerateQuestionCandidateInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pool := []domain.Artwork{
		{ID: "1", Artist: "A"},
		{ID: "2", Artist: "B"},
		{ID: "3", Artist: "C"},
		{ID: "4", Artist: "D"},
		{ID: "5", Artist: "E"},
	}
	artists := []string{"A", "B", "C", "D", "E"}

	for i := 0; i < 200; i++ {
		q, err := generateQuestion(rnd, pool, nil, artists, nil)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(q.Candidates) != 4 {
			t.Fatalf("expected 4 candidates, got %d", len(q.Candidates))
		}
		seen := make(map[string]int)
		for _, c := range q.Candidates {
			seen[c]++
		}
		if seen[q.CorrectArtist] != 1 {
			t.Fatalf("correct artist should appear exactly once, got %d", seen[q.CorrectArtist])
		}
		for name, count := range seen {
			if count != 1 {
				t.Fatalf("duplicate candidate %q", name)
			}
		}
		if q.InsufficientArtists {
			t.Fatalf("unexpected degraded question with 5 artists")
		}
		if got := len(q.Decoys()); got != 3 {
			t.Fatalf("expected 3 decoys, got %d", got)
		}
	}
}

func TestGenerateQuestionDegradesBelowFourArtists(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	pool := []domain.Artwork{
		{ID: "1", Artist: "A"},
		{ID: "2", Artist: "B"},
		{ID: "3", Artist: "C"},
	}

	q, err := generateQuestion(rnd, pool, nil, []string{"A", "B", "C"}, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(q.Candidates) != 3 {
		t.Fatalf("expected 3 candidates with 3 artists, got %d", len(q.Candidates))
	}
	if !q.InsufficientArtists {
		t.Fatalf("expected insufficient-artists warning")
	}
}

func TestGenerateQuestionExcludesAnswered(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	pool := []domain.Artwork{
		{ID: "1", Artist: "A"},
		{ID: "2", Artist: "B"},
		{ID: "3", Artist: "C"},
		{ID: "4", Artist: "D"},
	}
	artists := []string{"A", "B", "C", "D"}
	excluded := map[string]struct{}{"1": {}}

	for i := 0; i < 100; i++ {
		q, err := generateQuestion(rnd, pool, nil, artists, excluded)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if q.Artwork.ID == "1" {
			t.Fatalf("excluded artwork re-offered")
		}
	}
}

func TestGenerateQuestionSignalsCompletion(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	pool := []domain.Artwork{{ID: "1", Artist: "A"}}
	excluded := map[string]struct{}{"1": {}}

	_, err := generateQuestion(rnd, pool, nil, []string{"A", "B", "C", "D"}, excluded)
	if err != domain.ErrQuizComplete {
		t.Fatalf("expected quiz complete, got %v", err)
	}
}

func TestPickDecoysPrefersCollectionArtists(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	preferred := []string{"B", "C", "D", "Correct"}
	fallback := []string{"E", "F", "G", "H"}

	for i := 0; i < 100; i++ {
		decoys := pickDecoys(rnd, "Correct", preferred, fallback)
		if len(decoys) != 3 {
			t.Fatalf("expected 3 decoys, got %d", len(decoys))
		}
		for _, d := range decoys {
			if d == "Correct" {
				t.Fatalf("correct answer offered as decoy")
			}
			if d != "B" && d != "C" && d != "D" {
				t.Fatalf("decoy %q taken from fallback while preferred had enough", d)
			}
		}
	}
}

func TestPickDecoysTopsUpFromFallback(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	preferred := []string{"B", "Correct"}
	fallback := []string{"B", "E", "F", "Correct"}

	decoys := pickDecoys(rnd, "Correct", preferred, fallback)
	if len(decoys) != 3 {
		t.Fatalf("expected 3 decoys after top-up, got %d", len(decoys))
	}
	if decoys[0] != "B" {
		t.Fatalf("expected the collection decoy first, got %q", decoys[0])
	}
	seen := make(map[string]struct{})
	for _, d := range decoys {
		if _, dup := seen[d]; dup {
			t.Fatalf("duplicate decoy %q", d)
		}
		seen[d] = struct{}{}
	}
}
