// internal/constraint/constraint.go
//
// Candidate reduction: derives the predicates implied by a history of
// (guess, feedback) records and keeps the vocabulary words that satisfy all
// of them.
//
// Derivation, per record:
//   - Correct at i: candidate must have that letter at i.
//   - Present at i: candidate must not have that letter at i.
//   - Absent at i:  candidate must not have that letter at i.
//   - For each letter c of the guess, matched(c) is the number of Correct or
//     Present tiles of c. The candidate holds at least matched(c) copies;
//     if any tile of c was Absent it holds exactly matched(c).
//
// Across records the bounds are intersected (largest minimum, smallest
// exact cap), so the derived Set does not depend on record order.

package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Set is the conjunction of every predicate derived from a history. The zero
// value is not usable; build one with New or Derive.
type Set struct {
	n int

	// fixed[i] is the required letter at i, or 0 when the position is open.
	fixed    []byte
	excluded [][words.AlphabetSize]bool

	// Letter count bounds; max is n when the letter is uncapped.
	min [words.AlphabetSize]int
	max [words.AlphabetSize]int

	// conflict is set when two records fix different letters at one position.
	conflict bool
}

// New returns an empty Set for n-letter words; it matches every word of that length.
func New(n int) *Set {
	s := &Set{
		n:        n,
		fixed:    make([]byte, n),
		excluded: make([][words.AlphabetSize]bool, n),
	}
	for c := range s.max {
		s.max[c] = n
	}
	return s
}

// Derive builds the Set for n-letter words from history.
func Derive(n int, history []game.GuessRecord) (*Set, error) {
	s := New(n)
	for i, rec := range history {
		if err := s.Add(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return s, nil
}

// Add intersects the predicates of one record into s.
func (s *Set) Add(rec game.GuessRecord) error {
	if rec.Guess.Len() != s.n || len(rec.Feedback) != s.n {
		return fmt.Errorf("%w: guess %q (%d letters) with %d marks, want %d",
			game.ErrLengthMismatch, rec.Guess, rec.Guess.Len(), len(rec.Feedback), s.n)
	}

	var (
		matched [words.AlphabetSize]int
		capped  [words.AlphabetSize]bool
		seen    [words.AlphabetSize]bool
	)
	for i, m := range rec.Feedback {
		c := rec.Guess.At(i)
		j := words.Index(c)
		seen[j] = true
		switch m {
		case game.MarkCorrect:
			if s.fixed[i] != 0 && s.fixed[i] != c {
				s.conflict = true
			}
			s.fixed[i] = c
			matched[j]++
		case game.MarkPresent:
			s.excluded[i][j] = true
			matched[j]++
		case game.MarkAbsent:
			s.excluded[i][j] = true
			capped[j] = true
		default:
			panic(fmt.Sprintf("constraint: unknown mark %d", m))
		}
	}

	for j := range seen {
		if !seen[j] {
			continue
		}
		if matched[j] > s.min[j] {
			s.min[j] = matched[j]
		}
		if capped[j] && matched[j] < s.max[j] {
			s.max[j] = matched[j]
		}
	}
	return nil
}

// WordLength is the length of words the Set applies to.
func (s *Set) WordLength() int { return s.n }

// Bounds returns the inclusive count range required for letter c.
func (s *Set) Bounds(c byte) (min, max int) {
	j := words.Index(c)
	return s.min[j], s.max[j]
}

// Satisfiable reports whether the bounds and positions are not
// self-contradictory. A false result means no word can match; true does not
// guarantee some vocabulary word does.
func (s *Set) Satisfiable() bool {
	if s.conflict {
		return false
	}
	total := 0
	for j := range s.min {
		if s.min[j] > s.max[j] {
			return false
		}
		total += s.min[j]
	}
	return total <= s.n
}

// Matches reports whether w is consistent with every derived predicate.
func (s *Set) Matches(w words.Word) bool {
	if w.Len() != s.n || s.conflict {
		return false
	}
	for i := 0; i < s.n; i++ {
		c := w.At(i)
		if f := s.fixed[i]; f != 0 && c != f {
			return false
		}
		if s.excluded[i][words.Index(c)] {
			return false
		}
	}
	counts := w.Counts()
	for j, k := range counts {
		if k < s.min[j] || k > s.max[j] {
			return false
		}
	}
	return true
}

// Survivors returns a bitset over v's indices with bit i set when v.At(i)
// matches. Intersecting survivor sets of two histories gives the survivors
// of their union.
func (s *Set) Survivors(v *words.Vocabulary) *bitset.BitSet {
	b := bitset.New(uint(v.Len()))
	if v.WordLength() != s.n {
		return b
	}
	for i := 0; i < v.Len(); i++ {
		if s.Matches(v.At(i)) {
			b.Set(uint(i))
		}
	}
	return b
}

// Filter returns the matching words of v in vocabulary order.
func (s *Set) Filter(v *words.Vocabulary) []words.Word {
	b := s.Survivors(v)
	out := make([]words.Word, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, v.At(int(i)))
	}
	return out
}

// Count is the number of matching words in v.
func (s *Set) Count(v *words.Vocabulary) int {
	return int(s.Survivors(v).Count())
}

// Filter derives the Set for history and applies it to v. An empty history
// returns every word of v.
func Filter(history []game.GuessRecord, v *words.Vocabulary) ([]words.Word, error) {
	s, err := Derive(v.WordLength(), history)
	if err != nil {
		return nil, err
	}
	return s.Filter(v), nil
}
