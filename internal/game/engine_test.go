package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name     string
		guess    string
		solution string
		want     string
	}{
		{"AllCorrect", "crane", "crane", "GGGGG"},
		{"NothingShared", "lumpy", "crane", "XXXXX"},
		{"RepeatedGuessLetterBothPresent", "speed", "erase", "YXYYX"},
		{"CorrectConsumesOnlyCopy", "sassy", "chase", "XYXGX"},
		{"CorrectBeforePresent", "geese", "sheep", "XYGYX"},
		{"SurplusCopiesAbsent", "eerie", "crane", "XXYXG"},
		{"RepeatsBeyondCount", "llama", "apple", "YXYXX"},
		{"Anagram", "carte", "crate", "GYYGG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := game.Score(words.MustParse(tc.guess), words.MustParse(tc.solution))
			require.NoError(t, err)
			assert.Equal(t, tc.want, fb.String(), "Score(%s, %s)", tc.guess, tc.solution)
		})
	}
}

func TestScore_Properties(t *testing.T) {
	vocab := []string{"apple", "chase", "erase", "speed", "sassy", "geese", "sheep", "llama", "mamma", "eerie", "crane", "error"}
	for _, s := range vocab {
		sol := words.MustParse(s)

		self, err := game.Score(sol, sol)
		require.NoError(t, err)
		assert.True(t, self.Solved(), "self-score of %s", s)

		for _, g := range vocab {
			guess := words.MustParse(g)
			fb, err := game.Score(guess, sol)
			require.NoError(t, err)
			require.Len(t, fb, sol.Len())

			// Correct+Present marks for a letter never exceed its count in the solution.
			var matched [words.AlphabetSize]int
			for i, m := range fb {
				if m != game.MarkAbsent {
					matched[words.Index(guess.At(i))]++
				}
				if m == game.MarkCorrect {
					assert.Equal(t, sol.At(i), guess.At(i))
				}
			}
			counts := sol.Counts()
			for j := range matched {
				assert.LessOrEqual(t, matched[j], counts[j], "%s vs %s letter %c", g, s, 'a'+j)
			}
			assert.Equal(t, g == s, fb.Solved())
		}
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	four, err := words.ParseN("cart", 4)
	require.NoError(t, err)

	_, err = game.Score(four, words.MustParse("crane"))
	require.ErrorIs(t, err, game.ErrLengthMismatch)

	assert.Panics(t, func() { game.MustScore(four, words.MustParse("crane")) })
}
