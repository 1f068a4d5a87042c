// internal/game/session.go
//
// Session is the turn-taking state machine for a single game.
//
// Validation rules (checked in this order, each with its own error):
//   - Guess length must equal the solution length  → words.ErrInvalidWordLength
//   - Guess must be in the allowed vocabulary       → ErrNotInAllowedVocabulary
//   - Session must still be in progress             → ErrSessionTerminated
//
// State transitions:
//   - Feedback all Correct                → Won.
//   - Else turns used reaches MaxTurns    → Lost.
//   - Terminal states never change again.

package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// DefaultMaxTurns is the number of guesses a game allows unless configured.
const DefaultMaxTurns = 6

// Config describes a session at construction.
type Config struct {
	Solution words.Word
	Allowed  *words.Vocabulary // guess list; must be non-empty
	MaxTurns int               // 0 means DefaultMaxTurns
}

// Session holds the state of one game. Its methods serialise on an internal
// mutex, so a session handed to several goroutines is never observed mid-turn.
type Session struct {
	mu       sync.Mutex
	id       string
	solution words.Word
	allowed  *words.Vocabulary
	maxTurns int
	status   Status
	history  []GuessRecord
}

// NewSession validates cfg and returns a session in StatusInProgress.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Allowed == nil || cfg.Allowed.Len() == 0 {
		return nil, fmt.Errorf("allowed guesses: %w", words.ErrEmptyVocabulary)
	}
	if cfg.Solution.IsZero() {
		return nil, errors.New("game: solution is required")
	}
	if cfg.Solution.Len() != cfg.Allowed.WordLength() {
		return nil, fmt.Errorf("solution: %w: %d letters, guess list has %d",
			words.ErrInvalidWordLength, cfg.Solution.Len(), cfg.Allowed.WordLength())
	}
	// A solution that cannot be guessed makes the game unwinnable.
	if !cfg.Allowed.Contains(cfg.Solution) {
		return nil, fmt.Errorf("solution: %w: %q", ErrNotInAllowedVocabulary, cfg.Solution)
	}
	switch {
	case cfg.MaxTurns == 0:
		cfg.MaxTurns = DefaultMaxTurns
	case cfg.MaxTurns < 0:
		return nil, fmt.Errorf("game: max turns must be positive, got %d", cfg.MaxTurns)
	}
	return &Session{
		id:       uuid.NewString(),
		solution: cfg.Solution,
		allowed:  cfg.Allowed,
		maxTurns: cfg.MaxTurns,
		status:   StatusInProgress,
	}, nil
}

// NewRandomSession draws the solution from answers using r. r must be
// supplied by the caller; seeding it makes the game reproducible.
func NewRandomSession(answers, allowed *words.Vocabulary, r *rand.Rand, maxTurns int) (*Session, error) {
	if answers == nil || answers.Len() == 0 {
		return nil, fmt.Errorf("answers: %w", words.ErrEmptyVocabulary)
	}
	if r == nil {
		return nil, errors.New("game: random source is required")
	}
	return NewSession(Config{Solution: answers.Pick(r), Allowed: allowed, MaxTurns: maxTurns})
}

// Guess parses raw input and submits it.
func (s *Session) Guess(raw string) (GuessResult, error) {
	w, err := words.ParseN(raw, s.solution.Len())
	if err != nil {
		return GuessResult{}, err
	}
	return s.SubmitGuess(w)
}

// SubmitGuess scores w against the hidden solution, records the turn and
// advances the state machine.
func (s *Session) SubmitGuess(w words.Word) (GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.Len() != s.solution.Len() {
		return GuessResult{}, fmt.Errorf("%w: %q has %d letters, want %d",
			words.ErrInvalidWordLength, w, w.Len(), s.solution.Len())
	}
	if !s.allowed.Contains(w) {
		return GuessResult{}, fmt.Errorf("%w: %q", ErrNotInAllowedVocabulary, w)
	}
	if s.status.Terminal() {
		return GuessResult{}, fmt.Errorf("%w: game is %s", ErrSessionTerminated, s.status)
	}

	fb := MustScore(w, s.solution)
	s.history = append(s.history, GuessRecord{Guess: w, Feedback: fb})

	switch {
	case fb.Solved():
		s.status = StatusWon
	case len(s.history) >= s.maxTurns:
		s.status = StatusLost
	}
	return GuessResult{
		Feedback:       fb.Clone(),
		Status:         s.status,
		TurnsRemaining: s.maxTurns - len(s.history),
	}, nil
}

// ID is a random identifier for correlating server state.
func (s *Session) ID() string { return s.id }

// MaxTurns is the configured turn bound.
func (s *Session) MaxTurns() int { return s.maxTurns }

// WordLength is the length every guess must have.
func (s *Session) WordLength() int { return s.solution.Len() }

// Status reports the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// TurnsUsed is the number of accepted guesses.
func (s *Session) TurnsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// TurnsRemaining is MaxTurns minus accepted guesses.
func (s *Session) TurnsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxTurns - len(s.history)
}

// History returns a copy of the accepted turns in order.
func (s *Session) History() []GuessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GuessRecord, len(s.history))
	for i, r := range s.history {
		out[i] = GuessRecord{Guess: r.Guess, Feedback: r.Feedback.Clone()}
	}
	return out
}

// RevealSolution returns the solution once the session is over.
func (s *Session) RevealSolution() (words.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Terminal() {
		return words.Word{}, false
	}
	return s.solution, true
}
