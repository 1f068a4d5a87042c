// internal/words/word.go
//
// Word is the validated, immutable letter sequence every other package
// exchanges. Construction normalises to lowercase and rejects anything that
// is not exactly n letters a-z.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLength is the word length of the reference game.
const DefaultLength = 5

// AlphabetSize is the number of letters a word may contain.
const AlphabetSize = 26

var (
	// ErrInvalidWordLength is returned when a word does not have the expected length.
	ErrInvalidWordLength = errors.New("words: invalid word length")
	// ErrInvalidAlphabet is returned when a word contains a symbol outside a-z.
	ErrInvalidAlphabet = errors.New("words: invalid alphabet")
	// ErrEmptyVocabulary is returned when a vocabulary would contain no words.
	ErrEmptyVocabulary = errors.New("words: empty vocabulary")
	// ErrDuplicateWord is returned when a vocabulary is built from a list with repeats.
	ErrDuplicateWord = errors.New("words: duplicate word")
)

// Word is a fixed-length lowercase word. The zero value is not a valid word.
type Word struct {
	s string
}

// Parse validates raw as a DefaultLength word.
func Parse(raw string) (Word, error) {
	return ParseN(raw, DefaultLength)
}

// ParseN validates raw as a word of exactly n letters. Surrounding
// whitespace is trimmed and letters are lowercased.
func ParseN(raw string, n int) (Word, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) != n {
		return Word{}, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWordLength, s, len(s), n)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return Word{}, fmt.Errorf("%w: %q", ErrInvalidAlphabet, s)
		}
	}
	return Word{s: s}, nil
}

// MustParse is Parse for literals in tests and tables; it panics on error.
func MustParse(raw string) Word {
	w, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the lowercase letters of w.
func (w Word) String() string { return w.s }

// Len is the number of letters in w.
func (w Word) Len() int { return len(w.s) }

// At returns the letter at position i.
func (w Word) At(i int) byte { return w.s[i] }

// IsZero reports whether w was never constructed.
func (w Word) IsZero() bool { return w.s == "" }

// Counts returns the multiplicity of each letter, indexed 0..25.
func (w Word) Counts() [AlphabetSize]int {
	var c [AlphabetSize]int
	for i := 0; i < len(w.s); i++ {
		c[w.s[i]-'a']++
	}
	return c
}

// MarshalText encodes w as its lowercase string.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.s), nil }

// UnmarshalText parses a DefaultLength word.
func (w *Word) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = p
	return nil
}

// Index maps a lowercase letter to 0..25.
func Index(c byte) int { return int(c - 'a') }
