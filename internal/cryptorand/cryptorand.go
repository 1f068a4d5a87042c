// Package cryptorand adapts crypto/rand to math/rand's Source so production
// callers can hand a *rand.Rand to code that otherwise runs on a seeded one.
package cryptorand

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source is a math/rand.Source backed by crypto/rand. Seed is a no-op.
type Source struct{}

// New returns a *rand.Rand drawing from crypto/rand.
func New() *mrand.Rand { return mrand.New(Source{}) }

func (Source) Int63() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) & (1<<63 - 1))
}

func (Source) Seed(int64) {}
