package marshal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interleaved(n int) []float32 {
	src := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		src[2*i] = float32(i) + 0.25
		src[2*i+1] = -float32(i) - 0.5
	}
	return src
}

func TestDeinterleave(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 513} {
		src := interleaved(n)
		mags := make([]float32, n)
		phases := make([]float32, n)

		got, err := Deinterleave(mags, phases, src)
		require.NoError(t, err)
		assert.Equal(t, n, got)

		for i := 0; i < n; i++ {
			assert.Equal(t, src[2*i], mags[i], "magnitude %d", i)
			assert.Equal(t, src[2*i+1], phases[i], "phase %d", i)
		}
	}
}

func TestDeinterleaveLeavesShortOutputsUntouched(t *testing.T) {
	src := interleaved(4)
	mags := []float32{9, 9, 9}
	phases := []float32{9, 9, 9, 9}

	_, err := Deinterleave(mags, phases, src)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, []float32{9, 9, 9}, mags)
	assert.Equal(t, []float32{9, 9, 9, 9}, phases)
}

func TestDeinterleaveOddLength(t *testing.T) {
	_, err := Deinterleave(make([]float32, 2), make([]float32, 2), []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrOddLength)
}

func TestInterleaveRoundTrip(t *testing.T) {
	src := interleaved(5)
	a := make([]float32, 5)
	b := make([]float32, 5)
	_, err := Deinterleave(a, b, src)
	require.NoError(t, err)

	dst := make([]float32, 10)
	n, err := Interleave(dst, a, b)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, src, dst)

	_, err = Interleave(dst, a, b[:4])
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = Interleave(dst[:9], a, b)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPairsToComplex(t *testing.T) {
	dst := make([]complex64, 2)
	n, err := PairsToComplex(dst, []float32{1, 2, 3, -4})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, complex64(complex(1, 2)), dst[0])
	assert.Equal(t, complex64(complex(3, -4)), dst[1])

	_, err = PairsToComplex(dst[:1], []float32{1, 2, 3, -4})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPolarToComplex(t *testing.T) {
	dst := make([]complex64, 2)
	_, err := PolarToComplex(dst, []float32{2, 0, 1, math.Pi / 2})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, real(dst[0]), 1e-6)
	assert.InDelta(t, 0.0, imag(dst[0]), 1e-6)
	assert.InDelta(t, 0.0, real(dst[1]), 1e-6)
	assert.InDelta(t, 1.0, imag(dst[1]), 1e-6)
}
