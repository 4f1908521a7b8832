package memory

import (
	"context"
	"sync"

	"art-quiz-service/internal/domain"
)

// ProfileStore keeps user profiles in memory. Unknown users get a fresh
// profile rather than an error, matching the external store's contract.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.Profile)}
}

func (s *ProfileStore) FetchProfile(_ context.Context, userID string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return domain.Profile{UserID: userID}, nil
}

// RecordResult bumps the lifetime correct-answer counter. Incorrect answers
// are accepted and ignored so callers can fire on every submission.
func (s *ProfileStore) RecordResult(_ context.Context, userID string, correct bool) error {
	if !correct {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile := s.profiles[userID]
	profile.UserID = userID
	profile.LifetimeCorrect++
	s.profiles[userID] = profile
	return nil
}

// SaveCollection replaces the stored collection wholesale.
func (s *ProfileStore) SaveCollection(_ context.Context, userID string, items []domain.Artwork) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile := s.profiles[userID]
	profile.UserID = userID
	profile.Collection = append([]domain.Artwork(nil), items...)
	s.profiles[userID] = profile
	return nil
}
