package main

import (
	"fmt"
	"math"
)

// safeIntToInt32 converts a Go count or index to the int32 used at the C
// boundary, checking for overflow.
//
// CWE-190: Integer Overflow or Wraparound
// gosec G115: Integer overflow check
func safeIntToInt32(val int) (int32, error) {
	if val > math.MaxInt32 || val < math.MinInt32 {
		return 0, fmt.Errorf("int value outside int32 range: %d", val)
	}
	return int32(val), nil
}

// toCInt converts val, mapping values that do not fit to -1.
func toCInt(val int) int32 {
	v, err := safeIntToInt32(val)
	if err != nil {
		return -1
	}
	return v
}
