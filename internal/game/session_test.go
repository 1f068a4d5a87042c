package game_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func testVocab(t *testing.T) *words.Vocabulary {
	t.Helper()
	v, err := words.NewVocabulary(5, []string{
		"chase", "crane", "slate", "trash", "apple", "sassy", "speed", "erase", "light", "night", "water",
	})
	require.NoError(t, err)
	return v
}

func newSession(t *testing.T, solution string, maxTurns int) *game.Session {
	t.Helper()
	s, err := game.NewSession(game.Config{Solution: words.MustParse(solution), Allowed: testVocab(t), MaxTurns: maxTurns})
	require.NoError(t, err)
	return s
}

func TestSession_Won(t *testing.T) {
	s := newSession(t, "chase", 0)
	assert.Equal(t, game.DefaultMaxTurns, s.MaxTurns())
	assert.Equal(t, 5, s.WordLength())
	assert.NotEmpty(t, s.ID())

	_, ok := s.RevealSolution()
	assert.False(t, ok, "solution hidden while in progress")

	res, err := s.Guess("sassy")
	require.NoError(t, err)
	assert.Equal(t, "XYXGX", res.Feedback.String())
	assert.Equal(t, game.StatusInProgress, res.Status)
	assert.Equal(t, 5, res.TurnsRemaining)

	res, err = s.Guess("  CHASE ")
	require.NoError(t, err)
	assert.True(t, res.Feedback.Solved())
	assert.Equal(t, game.StatusWon, res.Status)
	assert.Equal(t, 4, res.TurnsRemaining)

	sol, ok := s.RevealSolution()
	require.True(t, ok)
	assert.Equal(t, "chase", sol.String())

	_, err = s.Guess("crane")
	assert.ErrorIs(t, err, game.ErrSessionTerminated)
	assert.Equal(t, 2, s.TurnsUsed())
}

func TestSession_Lost(t *testing.T) {
	s := newSession(t, "chase", 6)
	for i, g := range []string{"crane", "slate", "trash", "apple", "light", "night"} {
		res, err := s.Guess(g)
		require.NoError(t, err, g)
		if i < 5 {
			assert.Equal(t, game.StatusInProgress, res.Status)
		} else {
			assert.Equal(t, game.StatusLost, res.Status)
			assert.Equal(t, 0, res.TurnsRemaining)
		}
	}
	_, err := s.Guess("chase")
	assert.ErrorIs(t, err, game.ErrSessionTerminated)
	assert.Equal(t, game.StatusLost, s.Status())
	assert.Len(t, s.History(), 6)
}

func TestSession_WinOnLastTurn(t *testing.T) {
	s := newSession(t, "water", 2)
	_, err := s.Guess("light")
	require.NoError(t, err)
	res, err := s.Guess("water")
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, res.Status)
}

func TestSession_Rejections(t *testing.T) {
	s := newSession(t, "chase", 6)

	cases := []struct {
		name  string
		guess string
		err   error
	}{
		{"TooShort", "cat", words.ErrInvalidWordLength},
		{"TooLong", "chases", words.ErrInvalidWordLength},
		{"BadSymbol", "ch4se", words.ErrInvalidAlphabet},
		{"NotAllowed", "zzzzz", game.ErrNotInAllowedVocabulary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Guess(tc.guess)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	// Rejected guesses do not consume turns.
	assert.Equal(t, 0, s.TurnsUsed())
	assert.Equal(t, game.StatusInProgress, s.Status())
}

func TestSession_ValidationOrder(t *testing.T) {
	s := newSession(t, "chase", 1)
	_, err := s.Guess("crane")
	require.NoError(t, err)
	require.Equal(t, game.StatusLost, s.Status())

	// Length and vocabulary checks come before the terminal check.
	_, err = s.Guess("cat")
	assert.ErrorIs(t, err, words.ErrInvalidWordLength)
	_, err = s.Guess("zzzzz")
	assert.ErrorIs(t, err, game.ErrNotInAllowedVocabulary)
	_, err = s.Guess("chase")
	assert.ErrorIs(t, err, game.ErrSessionTerminated)
}

func TestSession_HistoryIsCopy(t *testing.T) {
	s := newSession(t, "chase", 6)
	_, err := s.Guess("crane")
	require.NoError(t, err)

	h := s.History()
	h[0].Feedback[0] = game.MarkAbsent
	assert.Equal(t, "GXGXG", s.History()[0].Feedback.String())
}

func TestNewSession_Errors(t *testing.T) {
	v := testVocab(t)
	four, err := words.ParseN("cart", 4)
	require.NoError(t, err)

	_, err = game.NewSession(game.Config{Solution: words.MustParse("chase")})
	assert.ErrorIs(t, err, words.ErrEmptyVocabulary)

	_, err = game.NewSession(game.Config{Allowed: v})
	assert.Error(t, err)

	_, err = game.NewSession(game.Config{Solution: four, Allowed: v})
	assert.ErrorIs(t, err, words.ErrInvalidWordLength)

	_, err = game.NewSession(game.Config{Solution: words.MustParse("chase"), Allowed: v, MaxTurns: -1})
	assert.Error(t, err)

	_, err = game.NewSession(game.Config{Solution: words.MustParse("zzzzz"), Allowed: v})
	assert.ErrorIs(t, err, game.ErrNotInAllowedVocabulary)
}

func TestNewRandomSession(t *testing.T) {
	v := testVocab(t)

	_, err := game.NewRandomSession(v, v, nil, 0)
	assert.Error(t, err)

	play := func(seed int64) string {
		s, err := game.NewRandomSession(v, v, rand.New(rand.NewSource(seed)), 1)
		require.NoError(t, err)
		_, err = s.Guess("crane")
		require.NoError(t, err)
		sol, ok := s.RevealSolution()
		require.True(t, ok)
		return sol.String()
	}
	assert.Equal(t, play(42), play(42))
}

func TestSession_ConcurrentGuesses(t *testing.T) {
	s := newSession(t, "chase", 6)
	guesses := []string{"crane", "slate", "trash", "apple", "light", "night", "water", "speed"}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for _, g := range guesses {
		wg.Add(1)
		go func(g string) {
			defer wg.Done()
			if _, err := s.Guess(g); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 6, accepted)
	assert.Equal(t, game.StatusLost, s.Status())
	assert.Len(t, s.History(), 6)
}
