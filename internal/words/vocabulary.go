package words

import (
	"fmt"
	"math/rand"
)

// Vocabulary is an ordered, duplicate-free, read-only list of words of one
// length. It is safe to share between goroutines.
type Vocabulary struct {
	length int
	list   []Word
	index  map[Word]int
}

// NewVocabulary validates raw and builds a vocabulary of n-letter words.
// Any invalid or repeated entry is an error; so is an empty list.
func NewVocabulary(n int, raw []string) (*Vocabulary, error) {
	list := make([]Word, 0, len(raw))
	for i, r := range raw {
		w, err := ParseN(r, n)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		list = append(list, w)
	}
	return FromWords(n, list)
}

// FromWords builds a vocabulary from already-parsed words.
func FromWords(n int, list []Word) (*Vocabulary, error) {
	if len(list) == 0 {
		return nil, ErrEmptyVocabulary
	}
	v := &Vocabulary{
		length: n,
		list:   make([]Word, len(list)),
		index:  make(map[Word]int, len(list)),
	}
	for i, w := range list {
		if w.Len() != n {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWordLength, w, w.Len(), n)
		}
		if _, dup := v.index[w]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, w)
		}
		v.list[i] = w
		v.index[w] = i
	}
	return v, nil
}

// WordLength is the length shared by every word in v.
func (v *Vocabulary) WordLength() int { return v.length }

// Len is the number of words.
func (v *Vocabulary) Len() int { return len(v.list) }

// At returns the i-th word in insertion order.
func (v *Vocabulary) At(i int) Word { return v.list[i] }

// Words returns a copy of the ordered word list.
func (v *Vocabulary) Words() []Word {
	out := make([]Word, len(v.list))
	copy(out, v.list)
	return out
}

// Contains reports whether w is a member of v.
func (v *Vocabulary) Contains(w Word) bool {
	_, ok := v.index[w]
	return ok
}

// IndexOf returns the position of w, or -1.
func (v *Vocabulary) IndexOf(w Word) int {
	if i, ok := v.index[w]; ok {
		return i
	}
	return -1
}

// Pick draws a word uniformly using r. The caller owns r; nothing here
// touches the process-wide generator.
func (v *Vocabulary) Pick(r *rand.Rand) Word {
	return v.list[r.Intn(len(v.list))]
}

// Union returns a vocabulary holding v's words followed by any words of
// other not already present. Both must share a word length.
func (v *Vocabulary) Union(other *Vocabulary) (*Vocabulary, error) {
	if other == nil {
		return v, nil
	}
	if other.length != v.length {
		return nil, fmt.Errorf("%w: union of %d- and %d-letter vocabularies", ErrInvalidWordLength, v.length, other.length)
	}
	list := v.Words()
	for _, w := range other.list {
		if !v.Contains(w) {
			list = append(list, w)
		}
	}
	return FromWords(v.length, list)
}
