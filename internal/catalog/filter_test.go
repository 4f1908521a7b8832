package catalog

import (
	"math/rand"
	"testing"

	"art-quiz-service/internal/domain"
)

func tenArtworks() []domain.Artwork {
	artworks := make([]domain.Artwork, 0, 10)
	for i := 0; i < 6; i++ {
		artworks = append(artworks, domain.Artwork{
			ID: string(rune('a' + i)), Artist: "A", Museum: "Louvre",
		})
	}
	for i := 6; i < 10; i++ {
		artworks = append(artworks, domain.Artwork{
			ID: string(rune('a' + i)), Artist: "B", Museum: "Prado",
		})
	}
	return artworks
}

func TestApplyFiltersByMuseum(t *testing.T) {
	engine := newEngineWithRand(rand.New(rand.NewSource(1)))

	matched := engine.Apply(domain.FilterSelection{Museum: "Louvre", Artist: domain.FilterAll}, tenArtworks())
	if len(matched) != 6 {
		t.Fatalf("expected 6 matches, got %d", len(matched))
	}
	for _, a := range matched {
		if a.Museum != "Louvre" {
			t.Fatalf("non-Louvre artwork %s in result", a.ID)
		}
	}
}

func TestApplyComposesFacetsWithAnd(t *testing.T) {
	engine := newEngineWithRand(rand.New(rand.NewSource(2)))
	artworks := tenArtworks()
	artworks = append(artworks, domain.Artwork{ID: "x", Artist: "B", Museum: "Louvre"})

	matched := engine.Apply(domain.FilterSelection{Museum: "Louvre", Artist: "B"}, artworks)
	if len(matched) != 1 || matched[0].ID != "x" {
		t.Fatalf("expected only the Louvre/B artwork, got %+v", matched)
	}
}

func TestApplyNormalizesMissingMuseum(t *testing.T) {
	engine := newEngineWithRand(rand.New(rand.NewSource(3)))
	artworks := []domain.Artwork{
		{ID: "1", Artist: "A"},
		{ID: "2", Artist: "A", Museum: "  "},
		{ID: "3", Artist: "A", Museum: "Louvre"},
	}

	matched := engine.Apply(domain.FilterSelection{Museum: domain.UnknownMuseum}, artworks)
	if len(matched) != 2 {
		t.Fatalf("expected 2 unknown-museum artworks, got %d", len(matched))
	}
}

func TestApplyAllMatchesEverything(t *testing.T) {
	engine := newEngineWithRand(rand.New(rand.NewSource(4)))

	matched := engine.Apply(domain.FilterSelection{Museum: domain.FilterAll, Artist: domain.FilterAll}, tenArtworks())
	if len(matched) != 10 {
		t.Fatalf("expected all 10, got %d", len(matched))
	}
}

func TestApplyShufflesButKeepsMembership(t *testing.T) {
	engine := newEngineWithRand(rand.New(rand.NewSource(5)))
	artworks := tenArtworks()

	ids := make(map[string]int)
	for i := 0; i < 50; i++ {
		matched := engine.Apply(domain.FilterSelection{}, artworks)
		if len(matched) != 10 {
			t.Fatalf("membership changed across shuffles: %d", len(matched))
		}
		for _, a := range matched {
			ids[a.ID]++
		}
	}
	if len(ids) != 10 {
		t.Fatalf("expected the same 10 ids across shuffles, got %d", len(ids))
	}
	for id, count := range ids {
		if count != 50 {
			t.Fatalf("artwork %s appeared %d times in 50 shuffles", id, count)
		}
	}
}
