// Package codegen produces random candidate short codes.
package codegen

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

const (
	// Alphabet is the set of symbols a short code is drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the length of generated codes.
	DefaultLength = 6
)

var base = big.NewInt(int64(len(Alphabet)))

// Random draws every symbol of a code independently and uniformly from
// Alphabet. Codes are not unique on their own.
type Random struct {
	source io.Reader
	length int
}

// New returns a generator of DefaultLength codes backed by crypto/rand.
func New() *Random {
	return NewWithSource(rand.Reader, DefaultLength)
}

// NewWithSource returns a generator reading randomness from source.
// A non-positive length falls back to DefaultLength.
func NewWithSource(source io.Reader, length int) *Random {
	if length <= 0 {
		length = DefaultLength
	}
	return &Random{
		source: source,
		length: length,
	}
}

// Generate returns one candidate code.
func (g *Random) Generate() (string, error) {
	var b strings.Builder
	b.Grow(g.length)

	for i := 0; i < g.length; i++ {
		idx, err := rand.Int(g.source, base)
		if err != nil {
			return "", err
		}
		b.WriteByte(Alphabet[idx.Int64()])
	}

	return b.String(), nil
}
