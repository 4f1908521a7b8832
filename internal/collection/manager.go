package collection

import (
	"context"
	"log"
	"sync"

	"art-quiz-service/internal/domain"
)

// Persister receives full-collection writes after every mutation. Writes
// are last-write-wins upserts, so overlapping requests resolve cleanly.
type Persister interface {
	SaveCollection(ctx context.Context, userID string, items []domain.Artwork) error
}

// Manager owns a signed-in user's favorites list: an ordered artwork list
// with membership keyed by artwork ID, plus the browse cursor over it.
type Manager struct {
	userID  string
	persist Persister

	mu        sync.Mutex
	items     []domain.Artwork
	viewIndex int
}

// NewManager seeds the manager with the user's persisted collection.
func NewManager(userID string, items []domain.Artwork, persist Persister) *Manager {
	return &Manager{
		userID:  userID,
		persist: persist,
		items:   append([]domain.Artwork(nil), items...),
	}
}

// Add appends the artwork unless one with the same ID is already present.
// Reports whether the collection changed.
func (m *Manager) Add(_ context.Context, artwork domain.Artwork) bool {
	m.mu.Lock()
	for _, item := range m.items {
		if item.ID == artwork.ID {
			m.mu.Unlock()
			return false
		}
	}
	m.items = append(m.items, artwork)
	snapshot := append([]domain.Artwork(nil), m.items...)
	m.mu.Unlock()

	m.requestWrite(snapshot)
	return true
}

// RemoveByID drops the matching entry. Reports whether anything was removed.
func (m *Manager) RemoveByID(_ context.Context, id string) bool {
	m.mu.Lock()
	index := -1
	for i, item := range m.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		m.mu.Unlock()
		return false
	}
	snapshot := m.removeLocked(index)
	m.mu.Unlock()

	m.requestWrite(snapshot)
	return true
}

// RemoveAt drops the entry at index. Reports whether the index was valid.
func (m *Manager) RemoveAt(_ context.Context, index int) bool {
	m.mu.Lock()
	if index < 0 || index >= len(m.items) {
		m.mu.Unlock()
		return false
	}
	snapshot := m.removeLocked(index)
	m.mu.Unlock()

	m.requestWrite(snapshot)
	return true
}

// removeLocked deletes items[index] and fixes the view cursor: removing the
// currently viewed entry resets the view to the start.
func (m *Manager) removeLocked(index int) []domain.Artwork {
	m.items = append(m.items[:index], m.items[index+1:]...)
	if index == m.viewIndex || m.viewIndex >= len(m.items) {
		m.viewIndex = 0
	} else if index < m.viewIndex {
		m.viewIndex--
	}
	return append([]domain.Artwork(nil), m.items...)
}

// Contains reports membership by artwork ID.
func (m *Manager) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the ordered collection.
func (m *Manager) Items() []domain.Artwork {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Artwork(nil), m.items...)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Current returns the artwork under the view cursor; false when empty.
func (m *Manager) Current() (domain.Artwork, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return domain.Artwork{}, false
	}
	return m.items[m.viewIndex], true
}

// Next advances the view cursor, wrapping past the end.
func (m *Manager) Next() (domain.Artwork, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return domain.Artwork{}, false
	}
	m.viewIndex = (m.viewIndex + 1) % len(m.items)
	return m.items[m.viewIndex], true
}

// Prev moves the view cursor back, wrapping before the start.
func (m *Manager) Prev() (domain.Artwork, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return domain.Artwork{}, false
	}
	m.viewIndex = (m.viewIndex - 1 + len(m.items)) % len(m.items)
	return m.items[m.viewIndex], true
}

// ViewIndex exposes the browse cursor for view-model assembly.
func (m *Manager) ViewIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewIndex
}

// requestWrite fires the full-collection upsert without waiting on it.
func (m *Manager) requestWrite(snapshot []domain.Artwork) {
	go func() {
		if err := m.persist.SaveCollection(context.Background(), m.userID, snapshot); err != nil {
			log.Printf("persist collection for %s: %v", m.userID, err)
		}
	}()
}
