// Package solver holds baseline guessers built on the candidate filter. They
// pick among surviving candidates without scoring them; guess-quality
// heuristics live elsewhere.
package solver

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/robalobadob/wordle/apps/go-engine/internal/constraint"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Solver proposes the next guess given every turn played so far. ok is false
// when it has nothing left to offer.
type Solver interface {
	Next(history []game.GuessRecord) (w words.Word, ok bool)
}

// Strategy selects how Baseline chooses among candidates.
type Strategy string

const (
	// StrategyRandom picks a surviving candidate uniformly.
	StrategyRandom Strategy = "random"
	// StrategyFirst picks the first surviving candidate in vocabulary order.
	StrategyFirst Strategy = "first"
)

// ErrUnknownStrategy is returned by ParseStrategy.
var ErrUnknownStrategy = errors.New("solver: unknown strategy")

// ParseStrategy maps a name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyRandom:
		return StrategyRandom, nil
	case StrategyFirst:
		return StrategyFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Baseline recomputes candidates from the full history on every call and
// picks one of them.
type Baseline struct {
	vocab    *words.Vocabulary
	strategy Strategy
	rand     *rand.Rand
}

// NewBaseline returns a Baseline over vocab. StrategyRandom requires r.
func NewBaseline(vocab *words.Vocabulary, strategy Strategy, r *rand.Rand) (*Baseline, error) {
	if vocab == nil || vocab.Len() == 0 {
		return nil, words.ErrEmptyVocabulary
	}
	switch strategy {
	case StrategyRandom:
		if r == nil {
			return nil, errors.New("solver: random strategy needs a random source")
		}
	case StrategyFirst:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	return &Baseline{vocab: vocab, strategy: strategy, rand: r}, nil
}

// Next implements Solver.
func (b *Baseline) Next(history []game.GuessRecord) (words.Word, bool) {
	cands, err := constraint.Filter(history, b.vocab)
	if err != nil || len(cands) == 0 {
		return words.Word{}, false
	}
	switch b.strategy {
	case StrategyRandom:
		return cands[b.rand.Intn(len(cands))], true
	case StrategyFirst:
		return cands[0], true
	default:
		panic(fmt.Sprintf("solver: unknown strategy %q", b.strategy))
	}
}

// Suggest returns up to limit candidates consistent with history, in
// vocabulary order, plus the total number of candidates. limit <= 0 means all.
func Suggest(history []game.GuessRecord, vocab *words.Vocabulary, limit int) ([]words.Word, int, error) {
	cands, err := constraint.Filter(history, vocab)
	if err != nil {
		return nil, 0, err
	}
	total := len(cands)
	if limit > 0 && limit < total {
		cands = cands[:limit]
	}
	return cands, total, nil
}
