package quiz

import (
	"context"
	"fmt"
	"log"

	"art-quiz-service/internal/catalog"
	"art-quiz-service/internal/domain"
)

// CatalogRepository loads catalog content (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, source string) (domain.Catalog, error)
}

// SessionRepository abstracts how live sessions are stored (in-memory,
// Redis-tracked, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// ProfileStore is the external user-profile collaborator. Reads feed the
// session; writes are best-effort deltas the engine never waits on.
type ProfileStore interface {
	FetchProfile(ctx context.Context, userID string) (domain.Profile, error)
	RecordResult(ctx context.Context, userID string, correct bool) error
	SaveCollection(ctx context.Context, userID string, items []domain.Artwork) error
}

// Service contains the quiz use cases: session lifecycle, answering, hints,
// and the elimination aid.
type Service struct {
	sessions   SessionRepository
	catalogs   CatalogRepository
	profiles   ProfileStore
	filter     *catalog.Engine
	catalogKey string
}

func NewService(sessions SessionRepository, catalogs CatalogRepository, profiles ProfileStore, catalogKey string) *Service {
	return &Service{
		sessions:   sessions,
		catalogs:   catalogs,
		profiles:   profiles,
		filter:     catalog.NewEngine(),
		catalogKey: catalogKey,
	}
}

// Start creates a session over the chosen source and serves its first
// question. The previous session under the same ID, if any, is replaced.
func (s *Service) Start(ctx context.Context, sessionID, userID string, source domain.Source) (domain.Question, domain.Progress, error) {
	cat, err := s.catalogs.GetCatalog(ctx, s.catalogKey)
	if err != nil {
		return domain.Question{}, domain.Progress{}, fmt.Errorf("load catalog: %w", err)
	}
	if len(cat.Artworks) == 0 {
		return domain.Question{}, domain.Progress{}, domain.ErrEmptyCatalog
	}

	profile, err := s.profiles.FetchProfile(ctx, userID)
	if err != nil {
		// A missing or unreachable profile store degrades to a fresh
		// profile; lifetime score starts at zero for this session.
		log.Printf("fetch profile for %s: %v", userID, err)
		profile = domain.Profile{UserID: userID}
	}

	var pool []domain.Artwork
	var preferred []string
	switch source.Provider {
	case domain.ProviderCollection:
		pool = profile.Collection
		preferred = distinctArtists(pool)
	default:
		pool = s.filter.Apply(source.Filter, cat.Artworks)
	}
	if len(pool) == 0 {
		return domain.Question{}, domain.Progress{}, domain.ErrEmptyPool
	}

	if prev, ok := s.sessions.Get(sessionID); ok {
		log.Printf("session %s: replacing live session for %s", sessionID, prev.UserID())
	}
	session := NewSession(sessionID, userID, source, pool, preferred, cat.Artists, profile.LifetimeCorrect)
	s.sessions.Put(session)

	question, err := session.nextQuestion()
	if err != nil {
		return domain.Question{}, domain.Progress{}, err
	}
	return question, session.progress(), nil
}

// Answer records one submission for the live question. Correct answers bump
// the session score and fire a lifetime-score delta at the profile store
// without waiting on it.
func (s *Service) Answer(ctx context.Context, sessionID, artist string) (domain.AnswerResult, domain.Progress, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AnswerResult{}, domain.Progress{}, domain.ErrSessionNotFound
	}

	result, err := session.submitAnswer(artist)
	if err != nil {
		return domain.AnswerResult{}, domain.Progress{}, err
	}

	go func(userID string, correct bool) {
		if err := s.profiles.RecordResult(context.Background(), userID, correct); err != nil {
			log.Printf("record result for %s: %v", userID, err)
		}
	}(session.UserID(), result.Correct)

	return result, session.progress(), nil
}

// Next advances an answered session to a fresh question, or reports
// ErrQuizComplete once the pool is exhausted.
func (s *Service) Next(_ context.Context, sessionID string) (domain.Question, domain.Progress, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Question{}, domain.Progress{}, domain.ErrSessionNotFound
	}
	question, err := session.nextQuestion()
	if err != nil {
		return domain.Question{}, session.progress(), err
	}
	return question, session.progress(), nil
}

// Hint reveals one field of the live question's artwork.
func (s *Service) Hint(_ context.Context, sessionID string, kind domain.HintKind) (string, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return session.hint(kind)
}

// FiftyFifty invokes the once-per-session elimination aid and returns the
// options still visible.
func (s *Service) FiftyFifty(_ context.Context, sessionID string) ([]string, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.fiftyFifty()
}

// Progress returns the session's current standing.
func (s *Service) Progress(_ context.Context, sessionID string) (domain.Progress, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Progress{}, domain.ErrSessionNotFound
	}
	return session.progress(), nil
}

// End discards the session. In-flight persistence writes may still land;
// they are full-state upserts, so a torn-down session observes nothing.
func (s *Service) End(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}
