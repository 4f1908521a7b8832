package quiz

import (
	"math/rand"
	"sync"
	"time"

	"art-quiz-service/internal/domain"
)

// unknownHint is shown when the hinted field is absent from the record.
const unknownHint = "Unknown"

// State names the session's position in the question cycle.
type State string

const (
	StateAwaitingQuestion State = "awaiting_question"
	StateQuestionActive   State = "question_active"
	StateAnswered         State = "answered"
	StateComplete         State = "complete"
)

// Session is one continuous play period over a fixed pool. All quiz state
// lives here; nothing is ambient. Mutations go through the documented
// operations under one mutex.
type Session struct {
	id     string
	userID string
	source domain.Source

	mu              sync.Mutex
	state           State
	pool            []domain.Artwork
	preferredNames  []string
	fallbackNames   []string
	score           int
	lifetimeCorrect int
	answeredIDs     map[string]struct{}
	fiftyFiftyUsed  bool
	current         *domain.Question
	visible         []string

	rnd       *rand.Rand
	now       func() time.Time
	createdAt time.Time
}

// NewSession builds a session over a pool. preferredNames seeds decoy
// selection ahead of fallbackNames; catalog quizzes pass nil preferred.
func NewSession(id, userID string, source domain.Source, pool []domain.Artwork, preferredNames, fallbackNames []string, lifetimeCorrect int) *Session {
	return newSessionWith(id, userID, source, pool, preferredNames, fallbackNames, lifetimeCorrect,
		rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewSessionWithRand is test-only for deterministic draws and timestamps.
func NewSessionWithRand(id, userID string, source domain.Source, pool []domain.Artwork, preferredNames, fallbackNames []string, lifetimeCorrect int, rnd *rand.Rand, now func() time.Time) *Session {
	return newSessionWith(id, userID, source, pool, preferredNames, fallbackNames, lifetimeCorrect, rnd, now)
}

func newSessionWith(id, userID string, source domain.Source, pool []domain.Artwork, preferredNames, fallbackNames []string, lifetimeCorrect int, rnd *rand.Rand, now func() time.Time) *Session {
	return &Session{
		id:              id,
		userID:          userID,
		source:          source,
		state:           StateAwaitingQuestion,
		pool:            pool,
		preferredNames:  preferredNames,
		fallbackNames:   fallbackNames,
		lifetimeCorrect: lifetimeCorrect,
		answeredIDs:     make(map[string]struct{}),
		rnd:             rnd,
		now:             now,
		createdAt:       now(),
	}
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() string { return s.userID }

// State reports the current state of the question cycle.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// nextQuestion advances AwaitingQuestion/Answered into a fresh live
// question, or into Complete when the pool is exhausted.
func (s *Session) nextQuestion() (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateComplete:
		return domain.Question{}, domain.ErrQuizComplete
	case StateQuestionActive:
		// The live question stands until answered.
		return *s.current, nil
	}

	q, err := generateQuestion(s.rnd, s.pool, s.preferredNames, s.fallbackNames, s.answeredIDs)
	if err != nil {
		s.state = StateComplete
		s.current = nil
		s.visible = nil
		return domain.Question{}, err
	}

	s.current = &q
	s.visible = append([]string(nil), q.Candidates...)
	s.state = StateQuestionActive
	return q, nil
}

// submitAnswer accepts exactly one submission per question. Repeats get
// ErrAlreadyAnswered regardless of what the presentation layer disables.
func (s *Session) submitAnswer(artist string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAnswered:
		return domain.AnswerResult{}, domain.ErrAlreadyAnswered
	case StateQuestionActive:
	default:
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}

	correct := artist == s.current.CorrectArtist
	if correct {
		s.score++
		s.lifetimeCorrect++
		s.answeredIDs[s.current.Artwork.ID] = struct{}{}
	}
	s.state = StateAnswered

	return domain.AnswerResult{
		Correct:       correct,
		CorrectArtist: s.current.CorrectArtist,
		SessionScore:  s.score,
	}, nil
}

// hint reveals one field of the live question's artwork. Pure read; asking
// twice yields the identical value.
func (s *Session) hint(kind domain.HintKind) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return "", domain.ErrNoActiveQuestion
	}

	artwork := s.current.Artwork
	switch kind {
	case domain.HintYear:
		if artwork.DisplayDate == "" {
			return unknownHint, nil
		}
		return artwork.DisplayDate, nil
	case domain.HintGenre:
		if artwork.Genre == "" {
			return unknownHint, nil
		}
		return artwork.Genre, nil
	case domain.HintMuseum:
		return artwork.MuseumLabel(), nil
	default:
		return "", domain.ErrUnknownHintKind
	}
}

// fiftyFifty eliminates two decoys from the live question, leaving the
// correct answer and one decoy. Usable once per session; the flag never
// resets on a new question.
func (s *Session) fiftyFifty() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fiftyFiftyUsed {
		return nil, domain.ErrFiftyFiftyUsed
	}
	if s.state != StateQuestionActive {
		return nil, domain.ErrNoActiveQuestion
	}

	decoys := make([]string, 0, len(s.visible))
	for _, name := range s.visible {
		if name != s.current.CorrectArtist {
			decoys = append(decoys, name)
		}
	}
	if len(decoys) < 2 {
		// Degraded question with one decoy or none; nothing to eliminate,
		// so the aid is not consumed.
		return append([]string(nil), s.visible...), nil
	}

	keep := decoys[s.rnd.Intn(len(decoys))]
	remaining := make([]string, 0, 2)
	for _, name := range s.visible {
		if name == s.current.CorrectArtist || name == keep {
			remaining = append(remaining, name)
		}
	}
	s.visible = remaining
	s.fiftyFiftyUsed = true
	return append([]string(nil), remaining...), nil
}

func (s *Session) progress() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Progress{
		Score:           s.score,
		Answered:        len(s.answeredIDs),
		PoolSize:        len(s.pool),
		LifetimeCorrect: s.lifetimeCorrect,
	}
}
