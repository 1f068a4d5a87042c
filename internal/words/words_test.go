package words_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func strs(ws []words.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

func TestParse(t *testing.T) {
	w, err := words.Parse("  CrAnE\n")
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())
	assert.Equal(t, 5, w.Len())
	assert.Equal(t, byte('a'), w.At(2))

	cases := []struct {
		name string
		raw  string
		err  error
	}{
		{"Empty", "", words.ErrInvalidWordLength},
		{"Short", "cran", words.ErrInvalidWordLength},
		{"Long", "cranes", words.ErrInvalidWordLength},
		{"Digit", "cr4ne", words.ErrInvalidAlphabet},
		{"Accent", "cranè", words.ErrInvalidWordLength}, // è is two bytes
		{"Punct", "cra-e", words.ErrInvalidAlphabet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := words.Parse(tc.raw)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseN(t *testing.T) {
	w, err := words.ParseN("Quiz", 4)
	require.NoError(t, err)
	assert.Equal(t, "quiz", w.String())

	_, err = words.ParseN("quiz", 5)
	assert.ErrorIs(t, err, words.ErrInvalidWordLength)
}

func TestCounts(t *testing.T) {
	c := words.MustParse("geese").Counts()
	assert.Equal(t, 3, c[words.Index('e')])
	assert.Equal(t, 1, c[words.Index('g')])
	assert.Equal(t, 1, c[words.Index('s')])
	assert.Equal(t, 0, c[words.Index('z')])
}

func TestVocabulary(t *testing.T) {
	v, err := words.NewVocabulary(5, []string{"crane", "Slate", "trash"})
	require.NoError(t, err)

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 5, v.WordLength())
	if diff := cmp.Diff([]string{"crane", "slate", "trash"}, strs(v.Words())); diff != "" {
		t.Errorf("unexpected words (-want +got)\n%s", diff)
	}
	assert.True(t, v.Contains(words.MustParse("slate")))
	assert.False(t, v.Contains(words.MustParse("chase")))
	assert.Equal(t, 2, v.IndexOf(words.MustParse("trash")))
	assert.Equal(t, -1, v.IndexOf(words.MustParse("chase")))

	// Words returns a copy.
	ws := v.Words()
	ws[0] = words.MustParse("zebra")
	assert.Equal(t, "crane", v.At(0).String())
}

func TestVocabulary_Errors(t *testing.T) {
	_, err := words.NewVocabulary(5, nil)
	assert.ErrorIs(t, err, words.ErrEmptyVocabulary)

	_, err = words.NewVocabulary(5, []string{"crane", "CRANE"})
	assert.ErrorIs(t, err, words.ErrDuplicateWord)

	_, err = words.NewVocabulary(5, []string{"crane", "cat"})
	assert.ErrorIs(t, err, words.ErrInvalidWordLength)

	_, err = words.NewVocabulary(5, []string{"cr@ne"})
	assert.ErrorIs(t, err, words.ErrInvalidAlphabet)
}

func TestVocabulary_Union(t *testing.T) {
	a, err := words.NewVocabulary(5, []string{"crane", "slate"})
	require.NoError(t, err)
	b, err := words.NewVocabulary(5, []string{"slate", "trash"})
	require.NoError(t, err)

	u, err := a.Union(b)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"crane", "slate", "trash"}, strs(u.Words())); diff != "" {
		t.Errorf("unexpected union (-want +got)\n%s", diff)
	}

	four, err := words.NewVocabulary(4, []string{"quiz"})
	require.NoError(t, err)
	_, err = a.Union(four)
	assert.ErrorIs(t, err, words.ErrInvalidWordLength)
}

func TestVocabulary_Pick(t *testing.T) {
	v, err := words.NewVocabulary(5, []string{"crane", "slate", "trash", "chase", "apple"})
	require.NoError(t, err)

	draw := func() []string {
		r := rand.New(rand.NewSource(7))
		var out []string
		for i := 0; i < 10; i++ {
			w := v.Pick(r)
			require.True(t, v.Contains(w))
			out = append(out, w.String())
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestReadLines(t *testing.T) {
	got, err := words.ReadLines(strings.NewReader("# header\ncrane\n\n  slate  \n#trash\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, got)
}

func writeList(t *testing.T, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")), 0o644))
	return p
}

func TestLoadFiles(t *testing.T) {
	t.Run("Embedded", func(t *testing.T) {
		l, err := words.LoadFiles("", "")
		require.NoError(t, err)
		assert.Greater(t, l.Answers.Len(), 0)
		assert.GreaterOrEqual(t, l.Allowed.Len(), l.Answers.Len())
		for _, w := range l.Answers.Words() {
			assert.True(t, l.Allowed.Contains(w), "answer %s not allowed", w)
		}
		assert.True(t, l.Allowed.Contains(words.MustParse("sassy")))
	})

	t.Run("BothFiles", func(t *testing.T) {
		ans := writeList(t, "answers.txt", "crane", "SLATE", "bad!1", "crane")
		allow := writeList(t, "allowed.txt", "# extras", "trash", "toolong")
		l, err := words.LoadFiles(ans, allow)
		require.NoError(t, err)
		assert.Equal(t, []string{"crane", "slate"}, strs(l.Answers.Words()))
		assert.Equal(t, []string{"crane", "slate", "trash"}, strs(l.Allowed.Words()))
		assert.Equal(t, 2, l.Skipped)
	})

	t.Run("AllowedOnly", func(t *testing.T) {
		allow := writeList(t, "allowed.txt", "trash", "chase")
		l, err := words.LoadFiles("", allow)
		require.NoError(t, err)
		assert.Equal(t, []string{"trash", "chase"}, strs(l.Answers.Words()))
		assert.Equal(t, l.Answers.Len(), l.Allowed.Len())
	})

	t.Run("AnswersOnly", func(t *testing.T) {
		ans := writeList(t, "answers.txt", "zzzzz", "qqqqq")
		l, err := words.LoadFiles(ans, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"zzzzz", "qqqqq"}, strs(l.Answers.Words()))
		for _, w := range l.Answers.Words() {
			assert.True(t, l.Allowed.Contains(w), "answer %s not allowed", w)
		}
		assert.True(t, l.Allowed.Contains(words.MustParse("sassy")), "embedded extras still allowed")

		_, err = words.LoadFiles(filepath.Join(t.TempDir(), "nope.txt"), "")
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := words.LoadFiles(filepath.Join(t.TempDir(), "nope.txt"), filepath.Join(t.TempDir(), "nope2.txt"))
		assert.Error(t, err)
	})

	t.Run("NoValidAnswers", func(t *testing.T) {
		ans := writeList(t, "answers.txt", "x", "12345")
		allow := writeList(t, "allowed.txt", "crane")
		_, err := words.LoadFiles(ans, allow)
		assert.ErrorIs(t, err, words.ErrEmptyVocabulary)
	})
}

func TestLoad_Env(t *testing.T) {
	allow := writeList(t, "allowed.txt", "crane", "slate")
	t.Setenv("WORDS_ANSWERS_FILE", "")
	t.Setenv("WORDS_ALLOWED_FILE", allow)

	l, err := words.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Answers.Len())
}
