// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter verdict of a guess (correct/present/absent).
//   - Feedback: one Mark per guess position.
//   - Status: lifecycle of a Session (in_progress → won | lost).
//   - GuessRecord / GuessResult: what a Session records and returns per turn.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

var (
	// ErrNotInAllowedVocabulary is returned when a guess is not in the session's guess list.
	ErrNotInAllowedVocabulary = errors.New("game: not in allowed vocabulary")
	// ErrLengthMismatch is returned when a guess and a solution (or a guess and
	// its feedback) differ in length. Inside a session it indicates a bug.
	ErrLengthMismatch = errors.New("game: length mismatch")
	// ErrSessionTerminated is returned by guesses submitted after a win or loss.
	ErrSessionTerminated = errors.New("game: session terminated")
	// ErrInvalidFeedback is returned when a feedback string has an unknown symbol.
	ErrInvalidFeedback = errors.New("game: invalid feedback")
)

// Mark is the verdict for a single letter in a guess. Its numeric value is
// the canonical numeric code (0, 1, 2).
type Mark uint8

const (
	// MarkAbsent: the letter is not in the solution at the count remaining.
	MarkAbsent Mark = iota
	// MarkPresent: the letter is in the solution at a different position.
	MarkPresent
	// MarkCorrect: right letter, right position.
	MarkCorrect
)

// Letter returns the letter code: G, Y or X.
func (m Mark) Letter() byte {
	switch m {
	case MarkCorrect:
		return 'G'
	case MarkPresent:
		return 'Y'
	case MarkAbsent:
		return 'X'
	default:
		panic(fmt.Sprintf("game: unknown mark %d", m))
	}
}

// Digit returns the numeric code as an ASCII digit: 2, 1 or 0.
func (m Mark) Digit() byte {
	switch m {
	case MarkCorrect, MarkPresent, MarkAbsent:
		return '0' + byte(m)
	default:
		panic(fmt.Sprintf("game: unknown mark %d", m))
	}
}

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkPresent:
		return "present"
	case MarkAbsent:
		return "absent"
	default:
		return fmt.Sprintf("Mark(%d)", uint8(m))
	}
}

// Status is the lifecycle state of a Session.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool {
	switch s {
	case StatusWon, StatusLost:
		return true
	case StatusInProgress:
		return false
	default:
		panic(fmt.Sprintf("game: unknown status %d", s))
	}
}

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText encodes the status as its snake_case name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "in_progress":
		*s = StatusInProgress
	case "won":
		*s = StatusWon
	case "lost":
		*s = StatusLost
	default:
		return fmt.Errorf("game: unknown status %q", b)
	}
	return nil
}

// GuessRecord pairs a guess with the feedback it received. Treat as immutable.
type GuessRecord struct {
	Guess    words.Word `json:"guess"`
	Feedback Feedback   `json:"feedback"`
}

// GuessResult is what Session.SubmitGuess hands back for one turn.
type GuessResult struct {
	Feedback       Feedback `json:"feedback"`
	Status         Status   `json:"status"`
	TurnsRemaining int      `json:"turnsRemaining"`
}
