// Package idgen produces the short random identifiers used for both short
// links and user accounts.
package idgen

import (
	"crypto/rand"
	"math/big"
)

const (
	Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length   = 6

	// MaxAttempts bounds how many fresh ids an inserting caller tries before
	// giving up on a collision.
	MaxAttempts = 10
)

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// New returns a Length-character id drawn uniformly, with replacement, from Alphabet.
// Uniqueness is not guaranteed; callers retry on collision.
func New() string {
	return newN(Length)
}

func newN(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic("idgen: read random: " + err.Error())
		}
		b[i] = Alphabet[idx.Int64()]
	}
	return string(b)
}
