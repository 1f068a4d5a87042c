package game

import (
	"fmt"
)

// Feedback is one Mark per guess position.
type Feedback []Mark

// Solved reports whether every mark is MarkCorrect.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// String renders the letter code, e.g. "GYXXG".
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, m := range f {
		b[i] = m.Letter()
	}
	return string(b)
}

// Numeric renders the numeric code, e.g. "21002".
func (f Feedback) Numeric() string {
	b := make([]byte, len(f))
	for i, m := range f {
		b[i] = m.Digit()
	}
	return string(b)
}

// Ints returns the numeric code as integers (0=absent, 1=present, 2=correct).
func (f Feedback) Ints() []int {
	out := make([]int, len(f))
	for i, m := range f {
		out[i] = int(m)
	}
	return out
}

// Clone returns an independent copy of f.
func (f Feedback) Clone() Feedback {
	if f == nil {
		return nil
	}
	out := make(Feedback, len(f))
	copy(out, f)
	return out
}

// Equal reports whether f and o hold the same marks.
func (f Feedback) Equal(o Feedback) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// ParseFeedback decodes either representation: letters G/Y/X or digits
// 2/1/0, case-insensitive. Codes may be mixed within one string.
func ParseFeedback(s string) (Feedback, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFeedback)
	}
	out := make(Feedback, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'g', '2':
			out[i] = MarkCorrect
		case 'Y', 'y', '1':
			out[i] = MarkPresent
		case 'X', 'x', '0':
			out[i] = MarkAbsent
		default:
			return nil, fmt.Errorf("%w: symbol %q at %d", ErrInvalidFeedback, s[i], i)
		}
	}
	return out, nil
}

// FeedbackFromInts decodes the numeric code given as integers.
func FeedbackFromInts(v []int) (Feedback, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFeedback)
	}
	out := make(Feedback, len(v))
	for i, n := range v {
		if n < 0 || n > int(MarkCorrect) {
			return nil, fmt.Errorf("%w: value %d at %d", ErrInvalidFeedback, n, i)
		}
		out[i] = Mark(n)
	}
	return out, nil
}

// MarshalText encodes f as its letter code.
func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText accepts either code.
func (f *Feedback) UnmarshalText(b []byte) error {
	p, err := ParseFeedback(string(b))
	if err != nil {
		return err
	}
	*f = p
	return nil
}
