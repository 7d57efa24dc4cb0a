// Package limits provides the buffer contract for per-record data accessors.
// This ensures no caller-provided buffer is written unless it can hold the
// whole record.
package limits

import (
	"errors"
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
)

const (
	// PairWidth is the number of float32 values per element of paired content
	// (magnitude/phase for MPS, real/imaginary for DFT)
	PairWidth = 2

	// MaxRecordValues is the absolute maximum number of float32 values a single
	// record channel may require. Larger sizes reported by a library are treated
	// as corrupt rather than allocated.
	MaxRecordValues = 1 << 24

	// DefaultMaxHandles is the default bound on live reader handles
	DefaultMaxHandles = 4096

	// MaxHandles is the largest configurable handle bound. Slot indices must fit
	// in the lower 32 bits of a handle.
	MaxHandles = 1 << 20
)

var (
	// ErrBufferTooSmall indicates the caller's output capacity is below the record size
	ErrBufferTooSmall = errors.New("output buffer too small")

	// ErrInvalidCapacity indicates a negative output capacity
	ErrInvalidCapacity = errors.New("invalid output capacity")

	// ErrRecordTooLarge indicates a record size outside [0, MaxRecordValues]
	ErrRecordTooLarge = errors.New("record size out of range")
)

// ValuesPerElement returns how many float32 values the native layout stores
// for one logical element of the given content type.
func ValuesPerElement(ct interfaces.ContentType) int {
	switch ct {
	case interfaces.ContentTypeMPS, interfaces.ContentTypeDFT:
		return PairWidth
	default:
		return 1
	}
}

// NativeLength returns the number of float32 values the library writes for one
// record channel holding elements logical elements (filter taps, frequencies or
// DFT coefficients).
func NativeLength(ct interfaces.ContentType, elements int) (int, error) {
	if elements < 0 || elements > MaxRecordValues/PairWidth {
		return 0, fmt.Errorf("%w: %d elements for %s", ErrRecordTooLarge, elements, ct.ShortString())
	}
	return elements * ValuesPerElement(ct), nil
}

// ValidateOutputCapacity checks a single output buffer against the required
// number of values. Returns an error with the actual and required sizes.
func ValidateOutputCapacity(capacity, required int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if capacity < required {
		return fmt.Errorf("%w: capacity %d below required %d", ErrBufferTooSmall, capacity, required)
	}
	return nil
}

// ValidateSplitCapacity checks two output arrays that each receive required
// values, such as separate magnitude and phase arrays.
func ValidateSplitCapacity(capacityA, capacityB, required int) error {
	if err := ValidateOutputCapacity(capacityA, required); err != nil {
		return err
	}
	return ValidateOutputCapacity(capacityB, required)
}
