package quiz

import (
	"math/rand"

	"art-quiz-service/internal/domain"
)

// decoyCount is the number of wrong artists offered alongside the correct one.
const decoyCount = 3

// generateQuestion draws a uniformly random target from pool minus excluded
// and assembles the shuffled candidate list. Returns ErrQuizComplete when no
// unanswered artwork remains.
//
// preferredArtists is consulted for decoys before fallbackArtists; collection
// quizzes pass the collection's own artists there so decoys stay plausible,
// topping up from the full catalog only when the collection runs short.
func generateQuestion(rnd *rand.Rand, pool []domain.Artwork, preferredArtists, fallbackArtists []string, excluded map[string]struct{}) (domain.Question, error) {
	available := make([]domain.Artwork, 0, len(pool))
	for _, a := range pool {
		if _, done := excluded[a.ID]; !done {
			available = append(available, a)
		}
	}
	if len(available) == 0 {
		return domain.Question{}, domain.ErrQuizComplete
	}

	target := available[rnd.Intn(len(available))]
	decoys := pickDecoys(rnd, target.Artist, preferredArtists, fallbackArtists)

	candidates := make([]string, 0, len(decoys)+1)
	candidates = append(candidates, target.Artist)
	candidates = append(candidates, decoys...)
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return domain.Question{
		Artwork:             target,
		CorrectArtist:       target.Artist,
		Candidates:          candidates,
		InsufficientArtists: len(decoys) < decoyCount,
	}, nil
}

// pickDecoys chooses up to decoyCount distinct artists, never the correct
// one, draining preferred before fallback. Each group is sampled uniformly.
func pickDecoys(rnd *rand.Rand, correct string, preferred, fallback []string) []string {
	chosen := make([]string, 0, decoyCount)
	used := map[string]struct{}{correct: {}}

	for _, group := range [][]string{preferred, fallback} {
		if len(chosen) == decoyCount {
			break
		}
		eligible := make([]string, 0, len(group))
		for _, name := range group {
			if _, taken := used[name]; taken {
				continue
			}
			used[name] = struct{}{}
			eligible = append(eligible, name)
		}
		rnd.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		for _, name := range eligible {
			if len(chosen) == decoyCount {
				break
			}
			chosen = append(chosen, name)
		}
	}
	return chosen
}

// distinctArtists returns the distinct artist names of a pool in first-seen
// order.
func distinctArtists(pool []domain.Artwork) []string {
	seen := make(map[string]struct{}, len(pool))
	names := make([]string, 0, len(pool))
	for _, a := range pool {
		if a.Artist == "" {
			continue
		}
		if _, ok := seen[a.Artist]; ok {
			continue
		}
		seen[a.Artist] = struct{}{}
		names = append(names, a.Artist)
	}
	return names
}
