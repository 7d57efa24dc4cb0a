// Package limits provides the buffer contract shared by every per-record data
// accessor of the binding.
//
// # Required Capacity
//
// The capacity a caller must provide is intrinsic to the content type:
//
//   - Impulse response: FilterLength values
//   - Magnitude or phase spectrum: NumFrequencies values
//   - Magnitude-phase spectrum: NumFrequencies values per output array
//   - DFT spectrum: 2*NumDFTCoeffs values interleaved, or NumDFTCoeffs per
//     array when real and imaginary parts are split
//
// NativeLength converts an element count into the number of float32 values
// the library writes, using PairWidth for paired content.
//
// # Validation Functions
//
//	if err := limits.ValidateOutputCapacity(len(dst), required); err != nil {
//	    // ErrBufferTooSmall or ErrInvalidCapacity; nothing was written
//	}
//
// Validation always happens before the library is asked for data, so a
// failing call leaves the caller's buffer untouched.
//
// # Error Types
//
//   - ErrBufferTooSmall: capacity below the required size
//   - ErrInvalidCapacity: negative capacity (only reachable from the C boundary)
//   - ErrRecordTooLarge: the library reported an implausible record size
package limits
