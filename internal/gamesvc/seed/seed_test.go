package seed

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDecodesLittleEndian(t *testing.T) {
	src := NewSourceFromReader(bytes.NewReader([]byte{
		0x01, 0, 0, 0, 0, 0, 0, 0,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 0, 0, 0, 0, 0x80,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}))

	want := []int64{1, -1, math.MinInt64, math.MaxInt64}
	for _, w := range want {
		got, err := src.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestNextShortRead(t *testing.T) {
	src := NewSourceFromReader(bytes.NewReader([]byte{1, 2, 3}))

	_, err := src.Next()
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestPairPropagatesErrors(t *testing.T) {
	_, _, err := Pair(NewSourceFromReader(failingReader{}))
	assert.ErrorContains(t, err, "entropy unavailable")
}

func TestCryptoSourceCoversBothSigns(t *testing.T) {
	src := NewCryptoSource()
	seen := make(map[int64]struct{})
	var negative, positive int

	for i := 0; i < 256; i++ {
		v, err := src.Next()
		require.NoError(t, err)
		seen[v] = struct{}{}
		if v < 0 {
			negative++
		} else {
			positive++
		}
	}

	// 256 draws over 2^64 values: a collision or a one-sided sample means the
	// source is broken, not unlucky.
	assert.Len(t, seen, 256)
	assert.Greater(t, negative, 64)
	assert.Greater(t, positive, 64)
}
