// internal/game/engine.go
//
// Feedback oracle: scores a guess against a solution.
//
// Score implements the standard two-pass Wordle algorithm:
//
// Pass 1:
//   - Mark every exact match Correct and consume that letter from the
//     solution's letter counts.
//
// Pass 2:
//   - Walk the remaining positions left to right: if the letter still has
//     unconsumed count, mark Present and consume one; otherwise Absent.
//
// All exact matches are consumed before any Present is handed out, so a
// letter repeated more often in the guess than in the solution never
// receives more Correct+Present marks than the solution holds.

package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Score returns the feedback for guess against solution. It is pure and
// safe for concurrent use.
func Score(guess, solution words.Word) (Feedback, error) {
	n := solution.Len()
	if guess.Len() != n {
		return nil, fmt.Errorf("%w: guess %q has %d letters, solution has %d", ErrLengthMismatch, guess, guess.Len(), n)
	}

	remaining := solution.Counts()
	res := make(Feedback, n)
	pending := make([]bool, n)

	for i := 0; i < n; i++ {
		if guess.At(i) == solution.At(i) {
			res[i] = MarkCorrect
			remaining[words.Index(guess.At(i))]--
		} else {
			pending[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if !pending[i] {
			continue
		}
		j := words.Index(guess.At(i))
		if remaining[j] > 0 {
			res[i] = MarkPresent
			remaining[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// MustScore is Score for callers that have already validated lengths; a
// mismatch there is a programming error and panics.
func MustScore(guess, solution words.Word) Feedback {
	f, err := Score(guess, solution)
	if err != nil {
		panic(err)
	}
	return f
}
