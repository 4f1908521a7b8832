package catalog

import (
	"sort"
	"sync"

	"art-quiz-service/internal/domain"
)

// Build derives a Catalog value from a slice of artworks: the slice is kept
// as-is and the distinct artist names are recomputed, sorted for stable
// iteration.
func Build(artworks []domain.Artwork) domain.Catalog {
	seen := make(map[string]struct{}, len(artworks))
	artists := make([]string, 0, len(artworks))
	for _, a := range artworks {
		if a.Artist == "" {
			continue
		}
		if _, ok := seen[a.Artist]; ok {
			continue
		}
		seen[a.Artist] = struct{}{}
		artists = append(artists, a.Artist)
	}
	sort.Strings(artists)
	return domain.Catalog{Artworks: artworks, Artists: artists}
}

// Store holds the loaded catalog for the server's lifetime. Load swaps the
// whole catalog under one lock so no partial state is ever visible.
type Store struct {
	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the held artworks and rederives the artist set atomically.
func (s *Store) Load(artworks []domain.Artwork) {
	built := Build(artworks)
	s.mu.Lock()
	s.catalog = built
	s.mu.Unlock()
}

// Artworks returns a copy of the loaded artworks.
func (s *Store) Artworks() []domain.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Artwork, len(s.catalog.Artworks))
	copy(out, s.catalog.Artworks)
	return out
}

// ArtistNames returns a copy of the distinct artist names.
func (s *Store) ArtistNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.catalog.Artists))
	copy(out, s.catalog.Artists)
	return out
}

// Museums returns the distinct museum labels, sorted, with missing fields
// normalized to "Unknown".
func (s *Store) Museums() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	museums := make([]string, 0)
	for _, a := range s.catalog.Artworks {
		label := a.MuseumLabel()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		museums = append(museums, label)
	}
	sort.Strings(museums)
	return museums
}

// Get looks an artwork up by ID.
func (s *Store) Get(id string) (domain.Artwork, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.catalog.Artworks {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Artwork{}, false
}

// Len reports the number of loaded artworks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalog.Artworks)
}
