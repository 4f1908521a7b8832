package redis

import (
	"testing"
	"time"

	"art-quiz-service/internal/domain"
	"art-quiz-service/internal/quiz"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)

	session := quiz.NewSession("s1", "u1", domain.Source{Provider: domain.ProviderCatalog},
		sampleArtworks(), nil, []string{"Monet", "Renoir"}, 0)
	store.Put(session)

	if !mr.Exists("quiz:session:s1") {
		t.Fatalf("expected redis key to be set")
	}
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session present locally")
	}

	store.Delete("s1")
	if mr.Exists("quiz:session:s1") {
		t.Fatalf("expected redis key to be removed")
	}
}
