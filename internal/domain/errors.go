package domain

import "errors"

var (
	// ErrEmptyCatalog is returned when a caller asks for questions or a
	// browse view over a catalog holding zero artworks.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrEmptyPool is returned when the selected quiz source filters down
	// to zero artworks.
	ErrEmptyPool = errors.New("quiz pool is empty")
	// ErrQuizComplete signals that every artwork in the pool has been
	// answered correctly. A terminal state, not a failure.
	ErrQuizComplete = errors.New("quiz complete")
	// ErrSessionNotFound is returned when a session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNoActiveQuestion is returned when an answer, hint, or elimination
	// arrives with no question live.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrAlreadyAnswered rejects a second submission for the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrFiftyFiftyUsed rejects the elimination aid after its one use.
	ErrFiftyFiftyUsed = errors.New("fifty-fifty already used this session")
	// ErrUnknownHintKind rejects hint requests for a kind the engine does
	// not recognize.
	ErrUnknownHintKind = errors.New("unknown hint kind")
	// ErrCatalogNotFound indicates the catalog source could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
)
