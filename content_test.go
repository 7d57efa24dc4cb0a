package daffbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/daffbind/dataset"
	"github.com/opd-ai/daffbind/interfaces"
	simtest "github.com/opd-ai/daffbind/testing"
)

func TestDispatchMatrix(t *testing.T) {
	b, _ := newTestBinding(t, nil)

	getters := map[interfaces.ContentType]func(Handle) bool{
		interfaces.ContentTypeIR:  func(h Handle) bool { _, ok := b.ContentIR(h); return ok },
		interfaces.ContentTypeMS:  func(h Handle) bool { _, ok := b.ContentMS(h); return ok },
		interfaces.ContentTypePS:  func(h Handle) bool { _, ok := b.ContentPS(h); return ok },
		interfaces.ContentTypeMPS: func(h Handle) bool { _, ok := b.ContentMPS(h); return ok },
		interfaces.ContentTypeDFT: func(h Handle) bool { _, ok := b.ContentDFT(h); return ok },
	}
	files := map[interfaces.ContentType]string{
		interfaces.ContentTypeIR:  irPath,
		interfaces.ContentTypeMS:  msPath,
		interfaces.ContentTypePS:  psPath,
		interfaces.ContentTypeMPS: mpsPath,
		interfaces.ContentTypeDFT: dftPath,
	}

	for fileType, path := range files {
		t.Run(fileType.ShortString(), func(t *testing.T) {
			h := openHandle(t, b, path)
			for getterType, get := range getters {
				assert.Equal(t, fileType == getterType, get(h),
					"%s getter on %s file", getterType.ShortString(), fileType.ShortString())
			}

			require.NoError(t, b.Close(h))
			for getterType, get := range getters {
				assert.False(t, get(h), "%s getter on closed handle", getterType.ShortString())
			}
		})
	}
}

func TestStaleView(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	h := openHandle(t, b, irPath)

	v, ok := b.ContentIR(h)
	require.True(t, ok)
	assert.Equal(t, h, v.Handle())
	assert.Equal(t, interfaces.ContentTypeIR, v.ContentType())

	require.NoError(t, b.Close(h))
	_, err := v.FilterLength()
	assert.ErrorIs(t, err, ErrNotOpen)

	require.NoError(t, b.Open(h, msPath))
	_, err = v.Samplerate()
	assert.ErrorIs(t, err, ErrContentMismatch, "view of a reopened handle checks the tag again")

	b.Destroy(h)
	err = v.FilterCoeffs(0, 0, make([]float32, 8))
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestContentParameters(t *testing.T) {
	b, _ := newTestBinding(t, nil)

	ir, ok := b.ContentIR(openHandle(t, b, irPath))
	require.True(t, ok)
	n, err := ir.FilterLength()
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	rate, err := ir.Samplerate()
	require.NoError(t, err)
	assert.Equal(t, 44100.0, rate)

	ms, ok := b.ContentMS(openHandle(t, b, msPath))
	require.True(t, ok)
	freqs, err := ms.Frequencies()
	require.NoError(t, err)
	require.Len(t, freqs, 8)
	assert.Equal(t, float32(125), freqs[0])
	assert.Equal(t, float32(1000), freqs[7])

	mps, ok := b.ContentMPS(openHandle(t, b, mpsPath))
	require.True(t, ok)
	n, err = mps.NumFrequencies()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	dft, ok := b.ContentDFT(openHandle(t, b, dftPath))
	require.True(t, ok)
	coeffs, err := dft.NumDFTCoeffs()
	require.NoError(t, err)
	assert.Equal(t, 4, coeffs)
	size, err := dft.TransformSize()
	require.NoError(t, err)
	assert.Equal(t, 6, size)
	sym, err := dft.IsSymmetric()
	require.NoError(t, err)
	assert.True(t, sym)
	bw, err := dft.FrequencyBandwidth()
	require.NoError(t, err)
	assert.InDelta(t, 44100.0/6, bw, 1e-9)
}

// sentinel fills a buffer with a value no synthesized record contains.
func sentinel[T float32 | complex64](n int) []T {
	buf := make([]T, n)
	for i := range buf {
		buf[i] = T(-1)
	}
	return buf
}

func assertUntouched[T float32 | complex64](t *testing.T, buf []T) {
	t.Helper()
	for i, v := range buf {
		if v != T(-1) {
			t.Fatalf("buffer written at %d: %v", i, v)
		}
	}
}

func TestUndersizedBuffersAreUntouched(t *testing.T) {
	b, _ := newTestBinding(t, nil)

	ir, _ := b.ContentIR(openHandle(t, b, irPath))
	ms, _ := b.ContentMS(openHandle(t, b, msPath))
	ps, _ := b.ContentPS(openHandle(t, b, psPath))
	mps, _ := b.ContentMPS(openHandle(t, b, mpsPath))
	dft, _ := b.ContentDFT(openHandle(t, b, dftPath))

	small := sentinel[float32](3)
	full := sentinel[float32](16)
	cplx := sentinel[complex64](3)

	tests := []struct {
		name    string
		call    func() error
		buffers [][]float32
	}{
		{"IR", func() error { return ir.FilterCoeffs(0, 0, small) }, [][]float32{small}},
		{"MS", func() error { return ms.Magnitudes(0, 0, small) }, [][]float32{small}},
		{"PS", func() error { return ps.Phases(0, 0, small) }, [][]float32{small}},
		{"MPS mags short", func() error { return mps.Coefficients(0, 0, small, full) }, [][]float32{small, full}},
		{"MPS phases short", func() error { return mps.Coefficients(0, 0, full, small) }, [][]float32{small, full}},
		{"DFT", func() error { return dft.DFTCoeffs(0, 0, small) }, [][]float32{small}},
		{"DFT split", func() error { return dft.DFTCoeffsSplit(0, 0, full, small) }, [][]float32{small, full}},
		{"MPS complex", func() error { return mps.CoefficientsComplex(0, 0, cplx) }, nil},
		{"DFT complex", func() error { return dft.DFTCoeffsComplex(0, 0, cplx) }, nil},
		{"IR nil", func() error { return ir.FilterCoeffs(0, 0, nil) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, ErrBufferTooSmall)
			for _, buf := range tt.buffers {
				assertUntouched(t, buf)
			}
			assertUntouched(t, cplx)
		})
	}
}

func TestExactFill(t *testing.T) {
	b, _ := newTestBinding(t, nil)

	ir, _ := b.ContentIR(openHandle(t, b, irPath))
	buf := sentinel[float32](10)
	require.NoError(t, ir.FilterCoeffs(7, 1, buf))
	for i := 0; i < 8; i++ {
		assert.Equal(t, simtest.SampleValue(7, 1, i), buf[i])
	}
	assert.Equal(t, float32(-1), buf[8], "only FilterLength values are written")
	assert.Equal(t, float32(-1), buf[9])

	ps, _ := b.ContentPS(openHandle(t, b, psPath))
	phases := sentinel[float32](8)
	require.NoError(t, ps.Phases(61, 0, phases))
	assert.Equal(t, simtest.SampleValue(61, 0, 7), phases[7])
}

func TestRecordAccessErrors(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	ir, _ := b.ContentIR(openHandle(t, b, irPath))
	buf := make([]float32, 8)

	err := ir.FilterCoeffs(62, 0, buf)
	assert.ErrorIs(t, err, ErrRecordAccess)
	assert.ErrorIs(t, err, dataset.ErrRecordIndex)

	err = ir.FilterCoeffs(0, 2, buf)
	assert.ErrorIs(t, err, ErrRecordAccess)
	assert.ErrorIs(t, err, dataset.ErrChannel)

	err = ir.FilterCoeffs(-1, 0, buf)
	assert.ErrorIs(t, err, dataset.ErrRecordIndex)
}

func TestMagnitudePhaseSplit(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	mps, ok := b.ContentMPS(openHandle(t, b, mpsPath))
	require.True(t, ok)

	mags := sentinel[float32](5)
	phases := sentinel[float32](4)
	require.NoError(t, mps.Coefficients(3, 1, mags, phases))
	for i := 0; i < 4; i++ {
		assert.Equal(t, simtest.SampleValue(3, 1, 2*i), mags[i], "magnitude %d", i)
		assert.Equal(t, simtest.SampleValue(3, 1, 2*i+1), phases[i], "phase %d", i)
	}
	assert.Equal(t, float32(-1), mags[4])

	rec, err := mps.Record(3)
	require.NoError(t, err)
	require.Len(t, rec, 2)
	require.Len(t, rec[1], 4)
}

func TestDFTScenario(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	dft, ok := b.ContentDFT(openHandle(t, b, dftPath))
	require.True(t, ok)

	short := sentinel[float32](7)
	err := dft.DFTCoeffs(0, 0, short)
	assert.ErrorIs(t, err, ErrBufferTooSmall)
	assertUntouched(t, short)

	exact := sentinel[float32](8)
	require.NoError(t, dft.DFTCoeffs(0, 0, exact))
	for i := range exact {
		assert.Equal(t, simtest.SampleValue(0, 0, i), exact[i])
	}

	re := make([]float32, 4)
	im := make([]float32, 4)
	require.NoError(t, dft.DFTCoeffsSplit(2, 0, re, im))
	assert.Equal(t, []float32{2000, 2002, 2004, 2006}, re)
	assert.Equal(t, []float32{2001, 2003, 2005, 2007}, im)

	cplx := make([]complex64, 4)
	require.NoError(t, dft.DFTCoeffsComplex(2, 0, cplx))
	assert.Equal(t, complex64(complex(2004, 2005)), cplx[2])

	rec, err := dft.Record(2)
	require.NoError(t, err)
	require.Len(t, rec, 1)
	assert.Equal(t, cplx, rec[0])
}

func TestWholeRecord(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	ir, _ := b.ContentIR(openHandle(t, b, irPath))

	rec, err := ir.Record(4)
	require.NoError(t, err)
	require.Len(t, rec, 2)
	for ch, taps := range rec {
		require.Len(t, taps, 8)
		assert.Equal(t, simtest.SampleValue(4, ch, 5), taps[5])
	}

	_, err = ir.Record(1000)
	assert.ErrorIs(t, err, ErrRecordAccess)

	ms, _ := b.ContentMS(openHandle(t, b, msPath))
	mags, err := ms.Record(0)
	require.NoError(t, err)
	assert.Len(t, mags, 1)
}
