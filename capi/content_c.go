package main

import (
	"fmt"

	"github.com/opd-ai/daffbind"
	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
)

// Content getters return the handle if the open file holds that content
// type, 0 otherwise. Per-content functions take the handle returned here.

//export DAFF_GetContentIR
func DAFF_GetContentIR(handle uint64) uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		if _, ok := b.ContentIR(daffbind.Handle(handle)); !ok {
			return 0
		}
		return handle
	})
}

//export DAFF_GetContentMS
func DAFF_GetContentMS(handle uint64) uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		if _, ok := b.ContentMS(daffbind.Handle(handle)); !ok {
			return 0
		}
		return handle
	})
}

//export DAFF_GetContentPS
func DAFF_GetContentPS(handle uint64) uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		if _, ok := b.ContentPS(daffbind.Handle(handle)); !ok {
			return 0
		}
		return handle
	})
}

//export DAFF_GetContentMPS
func DAFF_GetContentMPS(handle uint64) uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		if _, ok := b.ContentMPS(daffbind.Handle(handle)); !ok {
			return 0
		}
		return handle
	})
}

//export DAFF_GetContentDFT
func DAFF_GetContentDFT(handle uint64) uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		if _, ok := b.ContentDFT(daffbind.Handle(handle)); !ok {
			return 0
		}
		return handle
	})
}

// withView runs fn on the typed view of handle, returning fail if the
// handle does not hold content of that type.
func withView[V any, T any](fail T, handle uint64, get func(*daffbind.Binding, daffbind.Handle) (V, bool), fn func(b *daffbind.Binding, v V) T) T {
	return withBinding(fail, func(b *daffbind.Binding) T {
		v, ok := get(b, daffbind.Handle(handle))
		if !ok {
			return fail
		}
		return fn(b, v)
	})
}

func contentIR(b *daffbind.Binding, h daffbind.Handle) (*daffbind.IRView, bool) {
	return b.ContentIR(h)
}

func contentMS(b *daffbind.Binding, h daffbind.Handle) (*daffbind.MSView, bool) {
	return b.ContentMS(h)
}

func contentPS(b *daffbind.Binding, h daffbind.Handle) (*daffbind.PSView, bool) {
	return b.ContentPS(h)
}

func contentMPS(b *daffbind.Binding, h daffbind.Handle) (*daffbind.MPSView, bool) {
	return b.ContentMPS(h)
}

func contentDFT(b *daffbind.Binding, h daffbind.Handle) (*daffbind.DFTView, bool) {
	return b.ContentDFT(h)
}

// recordResult converts a data accessor outcome to the number of values
// written, or -1.
func recordResult(n int, err error) int32 {
	if err != nil {
		return -1
	}
	return toCInt(n)
}

// copyFrequencies writes the support frequencies into dst under the buffer
// contract.
func copyFrequencies(b *daffbind.Binding, freqs []float32, err error, dst *float32, capacity int32) int32 {
	if err != nil {
		return -1
	}
	if err := limits.ValidateOutputCapacity(max(int(capacity), 0), len(freqs)); err != nil {
		b.ReportError(err)
		return -1
	}
	return toCInt(copy(floats(dst, capacity), freqs))
}

//export DAFF_IR_GetFilterLength
func DAFF_IR_GetFilterLength(handle uint64) int32 {
	return withView(-1, handle, contentIR, func(_ *daffbind.Binding, v *daffbind.IRView) int32 {
		return intResult(v.FilterLength())
	})
}

//export DAFF_IR_GetSamplerate
func DAFF_IR_GetSamplerate(handle uint64) float64 {
	return withView(-1, handle, contentIR, func(_ *daffbind.Binding, v *daffbind.IRView) float64 {
		return floatResult(v.Samplerate())
	})
}

// DAFF_IR_GetFilterCoeffs writes FilterLength taps of one record channel
// and returns their number, or -1 without writing.
//
//export DAFF_IR_GetFilterCoeffs
func DAFF_IR_GetFilterCoeffs(handle uint64, record, channel int32, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentIR, func(_ *daffbind.Binding, v *daffbind.IRView) int32 {
		n, err := v.FilterLength()
		if err != nil {
			return -1
		}
		return recordResult(n, v.FilterCoeffs(int(record), int(channel), floats(dst, capacity)))
	})
}

//export DAFF_MS_GetNumFrequencies
func DAFF_MS_GetNumFrequencies(handle uint64) int32 {
	return withView(-1, handle, contentMS, func(_ *daffbind.Binding, v *daffbind.MSView) int32 {
		return intResult(v.NumFrequencies())
	})
}

//export DAFF_MS_GetFrequencies
func DAFF_MS_GetFrequencies(handle uint64, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentMS, func(b *daffbind.Binding, v *daffbind.MSView) int32 {
		freqs, err := v.Frequencies()
		return copyFrequencies(b, freqs, err, dst, capacity)
	})
}

//export DAFF_MS_GetMagnitudes
func DAFF_MS_GetMagnitudes(handle uint64, record, channel int32, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentMS, func(_ *daffbind.Binding, v *daffbind.MSView) int32 {
		n, err := v.NumFrequencies()
		if err != nil {
			return -1
		}
		return recordResult(n, v.Magnitudes(int(record), int(channel), floats(dst, capacity)))
	})
}

//export DAFF_PS_GetNumFrequencies
func DAFF_PS_GetNumFrequencies(handle uint64) int32 {
	return withView(-1, handle, contentPS, func(_ *daffbind.Binding, v *daffbind.PSView) int32 {
		return intResult(v.NumFrequencies())
	})
}

//export DAFF_PS_GetFrequencies
func DAFF_PS_GetFrequencies(handle uint64, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentPS, func(b *daffbind.Binding, v *daffbind.PSView) int32 {
		freqs, err := v.Frequencies()
		return copyFrequencies(b, freqs, err, dst, capacity)
	})
}

//export DAFF_PS_GetPhases
func DAFF_PS_GetPhases(handle uint64, record, channel int32, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentPS, func(_ *daffbind.Binding, v *daffbind.PSView) int32 {
		n, err := v.NumFrequencies()
		if err != nil {
			return -1
		}
		return recordResult(n, v.Phases(int(record), int(channel), floats(dst, capacity)))
	})
}

//export DAFF_MPS_GetNumFrequencies
func DAFF_MPS_GetNumFrequencies(handle uint64) int32 {
	return withView(-1, handle, contentMPS, func(_ *daffbind.Binding, v *daffbind.MPSView) int32 {
		return intResult(v.NumFrequencies())
	})
}

//export DAFF_MPS_GetFrequencies
func DAFF_MPS_GetFrequencies(handle uint64, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentMPS, func(b *daffbind.Binding, v *daffbind.MPSView) int32 {
		freqs, err := v.Frequencies()
		return copyFrequencies(b, freqs, err, dst, capacity)
	})
}

// DAFF_MPS_GetCoefficients splits one record channel into magnitudes and
// phases. Each array must hold NumFrequencies values; the return value is
// that number, or -1 with neither array written.
//
//export DAFF_MPS_GetCoefficients
func DAFF_MPS_GetCoefficients(handle uint64, record, channel int32, mags *float32, magsCapacity int32, phases *float32, phasesCapacity int32) int32 {
	return withView(-1, handle, contentMPS, func(_ *daffbind.Binding, v *daffbind.MPSView) int32 {
		n, err := v.NumFrequencies()
		if err != nil {
			return -1
		}
		return recordResult(n, v.Coefficients(int(record), int(channel), floats(mags, magsCapacity), floats(phases, phasesCapacity)))
	})
}

//export DAFF_DFT_GetNumDFTCoeffs
func DAFF_DFT_GetNumDFTCoeffs(handle uint64) int32 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) int32 {
		return intResult(v.NumDFTCoeffs())
	})
}

//export DAFF_DFT_GetTransformSize
func DAFF_DFT_GetTransformSize(handle uint64) int32 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) int32 {
		return intResult(v.TransformSize())
	})
}

//export DAFF_DFT_IsSymmetric
func DAFF_DFT_IsSymmetric(handle uint64) int32 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) int32 {
		sym, err := v.IsSymmetric()
		if err != nil {
			return -1
		}
		return boolInt(sym)
	})
}

//export DAFF_DFT_GetSamplerate
func DAFF_DFT_GetSamplerate(handle uint64) float64 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) float64 {
		return floatResult(v.Samplerate())
	})
}

//export DAFF_DFT_GetFrequencyBandwidth
func DAFF_DFT_GetFrequencyBandwidth(handle uint64) float64 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) float64 {
		return floatResult(v.FrequencyBandwidth())
	})
}

// DAFF_DFT_GetDFTCoeffs writes 2*NumDFTCoeffs interleaved values and returns
// their number, or -1 without writing.
//
//export DAFF_DFT_GetDFTCoeffs
func DAFF_DFT_GetDFTCoeffs(handle uint64, record, channel int32, dst *float32, capacity int32) int32 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) int32 {
		n, err := v.NumDFTCoeffs()
		if err != nil {
			return -1
		}
		return recordResult(limits.PairWidth*n, v.DFTCoeffs(int(record), int(channel), floats(dst, capacity)))
	})
}

//export DAFF_DFT_GetDFTCoeffsSplit
func DAFF_DFT_GetDFTCoeffsSplit(handle uint64, record, channel int32, re *float32, reCapacity int32, im *float32, imCapacity int32) int32 {
	return withView(-1, handle, contentDFT, func(_ *daffbind.Binding, v *daffbind.DFTView) int32 {
		n, err := v.NumDFTCoeffs()
		if err != nil {
			return -1
		}
		return recordResult(n, v.DFTCoeffsSplit(int(record), int(channel), floats(re, reCapacity), floats(im, imCapacity)))
	})
}

// gridView is the record grid part every typed view shares.
type gridView interface {
	NearestNeighbour(phi, theta float32) (int, error)
	NearestNeighbourView(view interfaces.View, angle1, angle2 float32) (int, bool, error)
	RecordCoords(recordIndex int) (alpha, beta float32, err error)
}

func gridViewOf(b *daffbind.Binding, h daffbind.Handle, ct interfaces.ContentType) (gridView, bool) {
	switch ct {
	case interfaces.ContentTypeIR:
		return b.ContentIR(h)
	case interfaces.ContentTypeMS:
		return b.ContentMS(h)
	case interfaces.ContentTypePS:
		return b.ContentPS(h)
	case interfaces.ContentTypeMPS:
		return b.ContentMPS(h)
	case interfaces.ContentTypeDFT:
		return b.ContentDFT(h)
	default:
		return nil, false
	}
}

// nearestNeighbour resolves an object view direction to a record index, or -1.
func nearestNeighbour(ct interfaces.ContentType, handle uint64, phi, theta float32) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		v, ok := gridViewOf(b, daffbind.Handle(handle), ct)
		if !ok {
			return -1
		}
		return intResult(v.NearestNeighbour(phi, theta))
	})
}

// nearestNeighbourEx resolves a direction in the given DAFF_VIEW and stores
// the out of bounds flag when outOfBounds is not null.
func nearestNeighbourEx(ct interfaces.ContentType, handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return withBinding(-1, func(b *daffbind.Binding) int32 {
		vw, ok := viewOf(view)
		if !ok {
			b.ReportError(fmt.Errorf("unknown view %d", view))
			return -1
		}
		v, ok := gridViewOf(b, daffbind.Handle(handle), ct)
		if !ok {
			return -1
		}
		rec, oob, err := v.NearestNeighbourView(vw, angle1, angle2)
		if err != nil {
			return -1
		}
		if outOfBounds != nil {
			*outOfBounds = boolInt(oob)
		}
		return toCInt(rec)
	})
}

// recordCoords writes the data view direction of a record and returns 1, or
// 0 without writing.
func recordCoords(ct interfaces.ContentType, handle uint64, record int32, alpha, beta *float32) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		if alpha == nil || beta == nil {
			b.ReportError(fmt.Errorf("%w: null coordinate output", daffbind.ErrBufferTooSmall))
			return 0
		}
		v, ok := gridViewOf(b, daffbind.Handle(handle), ct)
		if !ok {
			return 0
		}
		a, bt, err := v.RecordCoords(int(record))
		if err != nil {
			return 0
		}
		*alpha, *beta = a, bt
		return 1
	})
}

//export DAFF_IR_GetNearestNeighbour
func DAFF_IR_GetNearestNeighbour(handle uint64, phi, theta float32) int32 {
	return nearestNeighbour(interfaces.ContentTypeIR, handle, phi, theta)
}

//export DAFF_IR_GetNearestNeighbourEx
func DAFF_IR_GetNearestNeighbourEx(handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return nearestNeighbourEx(interfaces.ContentTypeIR, handle, view, angle1, angle2, outOfBounds)
}

//export DAFF_IR_GetRecordCoords
func DAFF_IR_GetRecordCoords(handle uint64, record int32, alpha, beta *float32) int32 {
	return recordCoords(interfaces.ContentTypeIR, handle, record, alpha, beta)
}

//export DAFF_MS_GetNearestNeighbour
func DAFF_MS_GetNearestNeighbour(handle uint64, phi, theta float32) int32 {
	return nearestNeighbour(interfaces.ContentTypeMS, handle, phi, theta)
}

//export DAFF_MS_GetNearestNeighbourEx
func DAFF_MS_GetNearestNeighbourEx(handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return nearestNeighbourEx(interfaces.ContentTypeMS, handle, view, angle1, angle2, outOfBounds)
}

//export DAFF_MS_GetRecordCoords
func DAFF_MS_GetRecordCoords(handle uint64, record int32, alpha, beta *float32) int32 {
	return recordCoords(interfaces.ContentTypeMS, handle, record, alpha, beta)
}

//export DAFF_PS_GetNearestNeighbour
func DAFF_PS_GetNearestNeighbour(handle uint64, phi, theta float32) int32 {
	return nearestNeighbour(interfaces.ContentTypePS, handle, phi, theta)
}

//export DAFF_PS_GetNearestNeighbourEx
func DAFF_PS_GetNearestNeighbourEx(handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return nearestNeighbourEx(interfaces.ContentTypePS, handle, view, angle1, angle2, outOfBounds)
}

//export DAFF_PS_GetRecordCoords
func DAFF_PS_GetRecordCoords(handle uint64, record int32, alpha, beta *float32) int32 {
	return recordCoords(interfaces.ContentTypePS, handle, record, alpha, beta)
}

//export DAFF_MPS_GetNearestNeighbour
func DAFF_MPS_GetNearestNeighbour(handle uint64, phi, theta float32) int32 {
	return nearestNeighbour(interfaces.ContentTypeMPS, handle, phi, theta)
}

//export DAFF_MPS_GetNearestNeighbourEx
func DAFF_MPS_GetNearestNeighbourEx(handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return nearestNeighbourEx(interfaces.ContentTypeMPS, handle, view, angle1, angle2, outOfBounds)
}

//export DAFF_MPS_GetRecordCoords
func DAFF_MPS_GetRecordCoords(handle uint64, record int32, alpha, beta *float32) int32 {
	return recordCoords(interfaces.ContentTypeMPS, handle, record, alpha, beta)
}

//export DAFF_DFT_GetNearestNeighbour
func DAFF_DFT_GetNearestNeighbour(handle uint64, phi, theta float32) int32 {
	return nearestNeighbour(interfaces.ContentTypeDFT, handle, phi, theta)
}

//export DAFF_DFT_GetNearestNeighbourEx
func DAFF_DFT_GetNearestNeighbourEx(handle uint64, view int32, angle1, angle2 float32, outOfBounds *int32) int32 {
	return nearestNeighbourEx(interfaces.ContentTypeDFT, handle, view, angle1, angle2, outOfBounds)
}

//export DAFF_DFT_GetRecordCoords
func DAFF_DFT_GetRecordCoords(handle uint64, record int32, alpha, beta *float32) int32 {
	return recordCoords(interfaces.ContentTypeDFT, handle, record, alpha, beta)
}
