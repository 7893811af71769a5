// Package seed produces the replay seeds handed to clients: the numbers that
// decide which piece comes next. They must be unpredictable to the player, so
// they are read from a cryptographic source, never from math/rand.
package seed

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

type Generator interface {
	Next() (int64, error)
}

// CryptoSource draws uniformly over the full int64 range.
type CryptoSource struct {
	r io.Reader
}

func NewCryptoSource() *CryptoSource {
	return &CryptoSource{r: crand.Reader}
}

// NewSourceFromReader is used by tests to make seeds reproducible.
func NewSourceFromReader(r io.Reader) *CryptoSource {
	return &CryptoSource{r: r}
}

func (s *CryptoSource) Next() (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Pair returns two seeds, as needed for the first two pieces of a new game.
func Pair(g Generator) (int64, int64, error) {
	first, err := g.Next()
	if err != nil {
		return 0, 0, err
	}
	second, err := g.Next()
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
