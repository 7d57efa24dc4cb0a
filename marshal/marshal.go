// Package marshal converts between the interleaved record layouts written by
// the reader library and the split or complex shapes exposed to callers.
//
// Paired content (magnitude/phase, real/imaginary) is stored as
// [a0, b0, a1, b1, ...]. Element i of each output array corresponds to
// interleaved positions 2i and 2i+1. All conversions are single pass and
// write into caller-provided slices.
package marshal

import (
	"errors"
	"fmt"
	"math/cmplx"
)

var (
	// ErrOddLength indicates an interleaved buffer with an odd number of values
	ErrOddLength = errors.New("interleaved buffer has odd length")

	// ErrLengthMismatch indicates output slices that cannot hold the converted data
	ErrLengthMismatch = errors.New("output length mismatch")
)

// Deinterleave splits src into a (even positions) and b (odd positions).
// a and b must hold at least len(src)/2 values; nothing is written otherwise.
// Returns the number of pairs written.
func Deinterleave(a, b, src []float32) (int, error) {
	n, err := pairCount(src)
	if err != nil {
		return 0, err
	}
	if len(a) < n || len(b) < n {
		return 0, fmt.Errorf("%w: need %d values per array, have %d and %d", ErrLengthMismatch, n, len(a), len(b))
	}
	a, b = a[:n], b[:n]
	for i := range a {
		a[i] = src[2*i]
		b[i] = src[2*i+1]
	}
	return n, nil
}

// Interleave writes a and b into dst as pairs. a and b must have equal length
// and dst must hold 2*len(a) values.
func Interleave(dst, a, b []float32) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: arrays of %d and %d values", ErrLengthMismatch, len(a), len(b))
	}
	if len(dst) < 2*len(a) {
		return 0, fmt.Errorf("%w: need %d values, have %d", ErrLengthMismatch, 2*len(a), len(dst))
	}
	for i := range a {
		dst[2*i] = a[i]
		dst[2*i+1] = b[i]
	}
	return len(a), nil
}

// PairsToComplex reads src as real/imaginary pairs.
func PairsToComplex(dst []complex64, src []float32) (int, error) {
	n, err := pairCount(src)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d values, have %d", ErrLengthMismatch, n, len(dst))
	}
	for i := 0; i < n; i++ {
		dst[i] = complex(src[2*i], src[2*i+1])
	}
	return n, nil
}

// PolarToComplex reads src as magnitude/phase pairs, phase in radians.
func PolarToComplex(dst []complex64, src []float32) (int, error) {
	n, err := pairCount(src)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d values, have %d", ErrLengthMismatch, n, len(dst))
	}
	for i := 0; i < n; i++ {
		dst[i] = complex64(cmplx.Rect(float64(src[2*i]), float64(src[2*i+1])))
	}
	return n, nil
}

func pairCount(src []float32) (int, error) {
	if len(src)%2 != 0 {
		return 0, fmt.Errorf("%w: %d values", ErrOddLength, len(src))
	}
	return len(src) / 2, nil
}
