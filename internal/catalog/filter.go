package catalog

import (
	"math/rand"
	"sync"
	"time"

	"art-quiz-service/internal/domain"
)

// Engine derives working artwork subsets from facet selections. Membership
// is deterministic for a given selection; presentation order is freshly
// shuffled on every Apply so browse order never equals insertion order.
type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewEngine() *Engine {
	return newEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newEngineWithRand allows deterministic shuffles in tests.
func newEngineWithRand(rnd *rand.Rand) *Engine {
	return &Engine{rnd: rnd}
}

// Apply filters artworks by the selection and returns a shuffled copy.
func (e *Engine) Apply(sel domain.FilterSelection, artworks []domain.Artwork) []domain.Artwork {
	matched := make([]domain.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if sel.Matches(a) {
			matched = append(matched, a)
		}
	}

	// Fisher-Yates via rand.Shuffle; the old sort-by-random-comparator
	// trick is biased.
	e.mu.Lock()
	e.rnd.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})
	e.mu.Unlock()
	return matched
}
