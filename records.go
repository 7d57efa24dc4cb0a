package daffbind

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
	"github.com/opd-ai/daffbind/marshal"
)

// readRecord validates dst against the native record size of elements and
// lets read fill exactly that many values.
func readRecord(ct interfaces.ContentType, elements int, dst []float32, read func([]float32) error) error {
	n, err := limits.NativeLength(ct, elements)
	if err != nil {
		return err
	}
	if err := limits.ValidateOutputCapacity(len(dst), n); err != nil {
		return err
	}
	if err := read(dst[:n]); err != nil {
		return fmt.Errorf("%w: %w", ErrRecordAccess, err)
	}
	return nil
}

// readPairs fetches a paired record into the handle's scratch buffer and
// hands it to split. Capacity is checked by the caller before anything is
// read.
func readPairs(e *entry, ct interfaces.ContentType, elements int, read func([]float32) error, split func([]float32) error) error {
	n, err := limits.NativeLength(ct, elements)
	if err != nil {
		return err
	}
	native := e.pairScratch(n)
	if err := read(native); err != nil {
		return fmt.Errorf("%w: %w", ErrRecordAccess, err)
	}
	return split(native)
}

// FilterCoeffs writes the FilterLength taps of one record channel into dst.
// dst must hold at least FilterLength values; otherwise ErrBufferTooSmall
// is returned and dst is left untouched.
func (v *IRView) FilterCoeffs(recordIndex, channel int, dst []float32) error {
	return v.b.guard("IR.FilterCoeffs", v.h, func() error {
		_, ir, err := resolveContent[interfaces.IContentIR](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		return readRecord(v.tag, ir.FilterLength(), dst, func(out []float32) error {
			return ir.FilterCoeffs(recordIndex, channel, out)
		})
	})
}

// Magnitudes writes NumFrequencies magnitudes of one record channel into dst.
func (v *MSView) Magnitudes(recordIndex, channel int, dst []float32) error {
	return v.b.guard("MS.Magnitudes", v.h, func() error {
		_, ms, err := resolveContent[interfaces.IContentMS](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		return readRecord(v.tag, ms.NumFrequencies(), dst, func(out []float32) error {
			return ms.Magnitudes(recordIndex, channel, out)
		})
	})
}

// Phases writes NumFrequencies phases in radians of one record channel into dst.
func (v *PSView) Phases(recordIndex, channel int, dst []float32) error {
	return v.b.guard("PS.Phases", v.h, func() error {
		_, ps, err := resolveContent[interfaces.IContentPS](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		return readRecord(v.tag, ps.NumFrequencies(), dst, func(out []float32) error {
			return ps.Phases(recordIndex, channel, out)
		})
	})
}

// Coefficients splits one record channel into NumFrequencies magnitudes
// and phases. Both arrays must hold NumFrequencies values.
func (v *MPSView) Coefficients(recordIndex, channel int, mags, phases []float32) error {
	return v.b.guard("MPS.Coefficients", v.h, func() error {
		e, mps, err := resolveContent[interfaces.IContentMPS](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		n := mps.NumFrequencies()
		if err := limits.ValidateSplitCapacity(len(mags), len(phases), n); err != nil {
			return err
		}
		return readPairs(e, v.tag, n,
			func(native []float32) error { return mps.CoefficientsMP(recordIndex, channel, native) },
			func(native []float32) error {
				_, err := marshal.Deinterleave(mags[:n], phases[:n], native)
				return err
			})
	})
}

// CoefficientsComplex writes one record channel as NumFrequencies complex
// values built from magnitude and phase.
func (v *MPSView) CoefficientsComplex(recordIndex, channel int, dst []complex64) error {
	return v.b.guard("MPS.CoefficientsComplex", v.h, func() error {
		e, mps, err := resolveContent[interfaces.IContentMPS](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		n := mps.NumFrequencies()
		if err := limits.ValidateOutputCapacity(len(dst), n); err != nil {
			return err
		}
		return readPairs(e, v.tag, n,
			func(native []float32) error { return mps.CoefficientsMP(recordIndex, channel, native) },
			func(native []float32) error {
				_, err := marshal.PolarToComplex(dst[:n], native)
				return err
			})
	})
}

// DFTCoeffs writes one record channel in the native interleaved layout:
// 2*NumDFTCoeffs values, real parts at even and imaginary parts at odd
// positions.
func (v *DFTView) DFTCoeffs(recordIndex, channel int, dst []float32) error {
	return v.b.guard("DFT.DFTCoeffs", v.h, func() error {
		_, dft, err := resolveContent[interfaces.IContentDFT](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		return readRecord(v.tag, dft.NumDFTCoeffs(), dst, func(out []float32) error {
			return dft.DFTCoeffs(recordIndex, channel, out)
		})
	})
}

// DFTCoeffsSplit writes NumDFTCoeffs real and imaginary parts into separate
// arrays.
func (v *DFTView) DFTCoeffsSplit(recordIndex, channel int, re, im []float32) error {
	return v.b.guard("DFT.DFTCoeffsSplit", v.h, func() error {
		e, dft, err := resolveContent[interfaces.IContentDFT](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		n := dft.NumDFTCoeffs()
		if err := limits.ValidateSplitCapacity(len(re), len(im), n); err != nil {
			return err
		}
		return readPairs(e, v.tag, n,
			func(native []float32) error { return dft.DFTCoeffs(recordIndex, channel, native) },
			func(native []float32) error {
				_, err := marshal.Deinterleave(re[:n], im[:n], native)
				return err
			})
	})
}

// DFTCoeffsComplex writes NumDFTCoeffs complex coefficients into dst.
func (v *DFTView) DFTCoeffsComplex(recordIndex, channel int, dst []complex64) error {
	return v.b.guard("DFT.DFTCoeffsComplex", v.h, func() error {
		e, dft, err := resolveContent[interfaces.IContentDFT](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		n := dft.NumDFTCoeffs()
		if err := limits.ValidateOutputCapacity(len(dst), n); err != nil {
			return err
		}
		return readPairs(e, v.tag, n,
			func(native []float32) error { return dft.DFTCoeffs(recordIndex, channel, native) },
			func(native []float32) error {
				_, err := marshal.PairsToComplex(dst[:n], native)
				return err
			})
	})
}

// recordChannels collects every channel of a record with fetch.
func recordChannels[T any](v *view, function string, recordIndex int, size func() (int, error), fetch func(channel int, dst []T) error) ([][]T, error) {
	channels, err := v.b.NumberOfChannels(v.h)
	if err != nil {
		return nil, err
	}
	n, err := size()
	if err != nil {
		return nil, err
	}
	out := make([][]T, channels)
	for ch := range out {
		out[ch] = make([]T, n)
		if err := fetch(ch, out[ch]); err != nil {
			return nil, fmt.Errorf("%s record %d channel %d: %w", function, recordIndex, ch, err)
		}
	}
	return out, nil
}

// Record returns the filter taps of every channel of a record.
func (v *IRView) Record(recordIndex int) ([][]float32, error) {
	return recordChannels(&v.view, "IR", recordIndex, v.FilterLength, func(ch int, dst []float32) error {
		return v.FilterCoeffs(recordIndex, ch, dst)
	})
}

// Record returns the magnitudes of every channel of a record.
func (v *MSView) Record(recordIndex int) ([][]float32, error) {
	return recordChannels(&v.view, "MS", recordIndex, v.NumFrequencies, func(ch int, dst []float32) error {
		return v.Magnitudes(recordIndex, ch, dst)
	})
}

// Record returns the phases of every channel of a record.
func (v *PSView) Record(recordIndex int) ([][]float32, error) {
	return recordChannels(&v.view, "PS", recordIndex, v.NumFrequencies, func(ch int, dst []float32) error {
		return v.Phases(recordIndex, ch, dst)
	})
}

// Record returns every channel of a record as complex values.
func (v *MPSView) Record(recordIndex int) ([][]complex64, error) {
	return recordChannels(&v.view, "MPS", recordIndex, v.NumFrequencies, func(ch int, dst []complex64) error {
		return v.CoefficientsComplex(recordIndex, ch, dst)
	})
}

// Record returns every channel of a record as complex coefficients.
func (v *DFTView) Record(recordIndex int) ([][]complex64, error) {
	return recordChannels(&v.view, "DFT", recordIndex, v.NumDFTCoeffs, func(ch int, dst []complex64) error {
		return v.DFTCoeffsComplex(recordIndex, ch, dst)
	})
}
