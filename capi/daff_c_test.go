package main

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/daffbind"
	"github.com/opd-ai/daffbind/interfaces"
	simtest "github.com/opd-ai/daffbind/testing"
)

// cstr returns a NUL terminated copy of s.
func cstr(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

// lastError reads DAFF_GetLastError into a Go string.
func lastError(t *testing.T) string {
	t.Helper()
	n := DAFF_GetLastErrorLength()
	buf := make([]byte, n+1)
	got := DAFF_GetLastError(&buf[0], int32(len(buf)))
	require.Equal(t, n, got)
	return string(buf[:got])
}

func setupSimulation(t *testing.T) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	lib := simtest.NewSimulatedLibrary(&interfaces.BindingConfig{UseSimulation: true, MaxHandles: 8})
	lib.Register("/sim/ir.daff", simtest.Synthesize(simtest.SynthSpec{ContentType: interfaces.ContentTypeIR, Channels: 2}))
	lib.Register("/sim/mps.daff", simtest.Synthesize(simtest.SynthSpec{ContentType: interfaces.ContentTypeMPS, Elements: 4}))
	lib.Register("/sim/dft.daff", simtest.Synthesize(simtest.SynthSpec{ContentType: interfaces.ContentTypeDFT, Elements: 6, Symmetric: true}))

	b, err := daffbind.New(lib, nil)
	require.NoError(t, err)
	installBinding(b)
}

func openFile(t *testing.T, path string) uint64 {
	t.Helper()
	h := DAFF_Create()
	require.NotZero(t, h)
	t.Cleanup(func() { DAFF_Destroy(h) })
	require.Equal(t, int32(1), DAFF_OpenFile(h, cstr(path)), lastError(t))
	return h
}

func TestLifecycle(t *testing.T) {
	setupSimulation(t)

	h := DAFF_Create()
	require.NotZero(t, h)
	assert.Equal(t, int32(1), DAFF_IsValid(h))
	assert.Equal(t, int32(0), DAFF_IsFileOpened(h))

	assert.Equal(t, int32(0), DAFF_OpenFile(h, cstr("/sim/missing.daff")))
	assert.Contains(t, lastError(t), "failed to open file")

	assert.Equal(t, int32(0), DAFF_OpenFile(h, nil))

	require.Equal(t, int32(1), DAFF_OpenFile(h, cstr("/sim/ir.daff")))
	assert.Equal(t, "", lastError(t))
	assert.Equal(t, int32(1), DAFF_IsFileOpened(h))

	assert.Equal(t, int32(1), DAFF_Close(h))
	assert.Equal(t, int32(0), DAFF_IsFileOpened(h))

	DAFF_Destroy(h)
	assert.Equal(t, int32(0), DAFF_IsValid(h))
	assert.Equal(t, int32(0), DAFF_Close(h))
	DAFF_Destroy(h)
}

func TestSentinelsOnInvalidHandle(t *testing.T) {
	setupSimulation(t)
	const bogus = uint64(0x42)

	assert.Equal(t, int32(-1), DAFF_GetContentType(bogus))
	assert.Equal(t, int32(-1), DAFF_GetNumberOfRecords(bogus))
	assert.Equal(t, float32(-1), DAFF_GetAlphaResolution(bogus))
	assert.Equal(t, int32(-1), DAFF_CoversFullSphere(bogus))
	assert.Equal(t, uint64(0), DAFF_GetContentIR(bogus))
	assert.Equal(t, int32(-1), DAFF_IR_GetFilterLength(bogus))
	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbour(bogus, 0, 0))
	assert.Equal(t, int32(-1), DAFF_HasMetadata(bogus, cstr("Description")))
	assert.Contains(t, lastError(t), "invalid handle")

	var yaw, pitch, roll float32 = 7, 7, 7
	assert.Equal(t, int32(0), DAFF_GetOrientationYPR(bogus, &yaw, &pitch, &roll))
	assert.Equal(t, float32(7), yaw)
}

func TestPropertiesAndMetadata(t *testing.T) {
	setupSimulation(t)
	h := openFile(t, "/sim/ir.daff")

	assert.Equal(t, int32(interfaces.ContentTypeIR), DAFF_GetContentType(h))
	assert.Equal(t, int32(interfaces.QuantizationFloat32), DAFF_GetQuantization(h))
	assert.Equal(t, int32(2), DAFF_GetNumberOfChannels(h))
	assert.Equal(t, int32(62), DAFF_GetNumberOfRecords(h))
	assert.Equal(t, int32(12), DAFF_GetAlphaPoints(h))
	assert.Equal(t, int32(7), DAFF_GetBetaPoints(h))
	assert.Equal(t, float32(30), DAFF_GetBetaResolution(h))
	assert.Equal(t, int32(1), DAFF_CoversFullSphere(h))

	label := make([]byte, 16)
	n := DAFF_GetChannelLabel(h, 1, &label[0], int32(len(label)))
	require.Equal(t, int32(5), n)
	assert.Equal(t, "right", string(label[:n]))
	assert.Equal(t, byte(0), label[n])

	small := []byte{'x', 'x', 'x'}
	assert.Equal(t, int32(-1), DAFF_GetFilename(h, &small[0], int32(len(small))))
	assert.Equal(t, []byte{'x', 'x', 'x'}, small)
	assert.Contains(t, lastError(t), "output buffer too small")

	assert.Equal(t, int32(1), DAFF_HasMetadata(h, cstr("synthetic")))
	assert.Equal(t, int32(0), DAFF_HasMetadata(h, cstr("Author")))
	assert.Equal(t, int32(interfaces.MetadataInt), DAFF_GetMetadataType(h, cstr("Elements")))
	assert.Equal(t, int32(1), DAFF_GetMetadataBool(h, cstr("Synthetic")))

	var elements int64
	require.Equal(t, int32(1), DAFF_GetMetadataInt(h, cstr("Elements"), &elements))
	assert.Equal(t, int64(8), elements)

	var resolution float64
	require.Equal(t, int32(1), DAFF_GetMetadataFloat(h, cstr("Resolution"), &resolution))
	assert.Equal(t, 30.0, resolution)

	desc := make([]byte, 64)
	n = DAFF_GetMetadataString(h, cstr("Description"), &desc[0], int32(len(desc)))
	require.Positive(t, n)
	assert.Equal(t, "synthesized ImpulseResponse", string(desc[:n]))

	assert.Equal(t, int32(-1), DAFF_GetMetadataString(h, cstr("Author"), &desc[0], int32(len(desc))))
	assert.Contains(t, lastError(t), "unknown metadata key")
}

func TestContentGettersReturnHandleOrZero(t *testing.T) {
	setupSimulation(t)
	h := openFile(t, "/sim/mps.daff")

	assert.Equal(t, uint64(0), DAFF_GetContentIR(h))
	assert.Equal(t, uint64(0), DAFF_GetContentMS(h))
	assert.Equal(t, uint64(0), DAFF_GetContentPS(h))
	assert.Equal(t, h, DAFF_GetContentMPS(h))
	assert.Equal(t, uint64(0), DAFF_GetContentDFT(h))
	assert.Equal(t, "", lastError(t), "a content type mismatch is not an error")
}

func TestIRBufferContract(t *testing.T) {
	setupSimulation(t)
	ir := DAFF_GetContentIR(openFile(t, "/sim/ir.daff"))
	require.NotZero(t, ir)
	require.Equal(t, int32(8), DAFF_IR_GetFilterLength(ir))
	assert.Equal(t, 44100.0, DAFF_IR_GetSamplerate(ir))

	short := []float32{-1, -1, -1, -1, -1, -1, -1}
	assert.Equal(t, int32(-1), DAFF_IR_GetFilterCoeffs(ir, 0, 0, &short[0], int32(len(short))))
	for _, v := range short {
		assert.Equal(t, float32(-1), v)
	}

	assert.Equal(t, int32(-1), DAFF_IR_GetFilterCoeffs(ir, 0, 0, nil, 8))

	taps := make([]float32, 8)
	require.Equal(t, int32(8), DAFF_IR_GetFilterCoeffs(ir, 3, 1, &taps[0], int32(len(taps))))
	assert.Equal(t, simtest.SampleValue(3, 1, 7), taps[7])

	assert.Equal(t, int32(-1), DAFF_IR_GetFilterCoeffs(ir, 99, 0, &taps[0], int32(len(taps))))
	assert.Contains(t, lastError(t), "record access failed")
}

func TestMPSCoefficients(t *testing.T) {
	setupSimulation(t)
	mps := DAFF_GetContentMPS(openFile(t, "/sim/mps.daff"))
	require.NotZero(t, mps)

	freqs := make([]float32, 4)
	require.Equal(t, int32(4), DAFF_MPS_GetFrequencies(mps, &freqs[0], 4))
	assert.Equal(t, []float32{125, 250, 375, 500}, freqs)
	assert.Equal(t, int32(-1), DAFF_MPS_GetFrequencies(mps, &freqs[0], 3))

	mags := make([]float32, 4)
	phases := make([]float32, 4)
	require.Equal(t, int32(4), DAFF_MPS_GetCoefficients(mps, 1, 0, &mags[0], 4, &phases[0], 4))
	assert.Equal(t, []float32{1000, 1002, 1004, 1006}, mags)
	assert.Equal(t, []float32{1001, 1003, 1005, 1007}, phases)

	assert.Equal(t, int32(-1), DAFF_MPS_GetCoefficients(mps, 1, 0, &mags[0], 4, &phases[0], 3))
}

func TestDFTCapacity(t *testing.T) {
	setupSimulation(t)
	dft := DAFF_GetContentDFT(openFile(t, "/sim/dft.daff"))
	require.NotZero(t, dft)
	require.Equal(t, int32(4), DAFF_DFT_GetNumDFTCoeffs(dft))
	assert.Equal(t, int32(6), DAFF_DFT_GetTransformSize(dft))
	assert.Equal(t, int32(1), DAFF_DFT_IsSymmetric(dft))
	assert.InDelta(t, 7350.0, DAFF_DFT_GetFrequencyBandwidth(dft), 1e-9)

	buf := make([]float32, 8)
	assert.Equal(t, int32(-1), DAFF_DFT_GetDFTCoeffs(dft, 0, 0, &buf[0], 7))
	assert.Equal(t, make([]float32, 8), buf)
	require.Equal(t, int32(8), DAFF_DFT_GetDFTCoeffs(dft, 0, 0, &buf[0], 8))
	assert.Equal(t, float32(7), buf[7])

	re := make([]float32, 4)
	im := make([]float32, 4)
	require.Equal(t, int32(4), DAFF_DFT_GetDFTCoeffsSplit(dft, 1, 0, &re[0], 4, &im[0], 4))
	assert.Equal(t, float32(1006), re[3])
	assert.Equal(t, float32(1007), im[3])
}

func TestNearestNeighbourBridge(t *testing.T) {
	setupSimulation(t)
	h := openFile(t, "/sim/dft.daff")

	front := DAFF_DFT_GetNearestNeighbour(h, 0, 0)
	require.GreaterOrEqual(t, front, int32(0))

	var alpha, beta float32
	require.Equal(t, int32(1), DAFF_DFT_GetRecordCoords(h, front, &alpha, &beta))
	assert.InDelta(t, 0, alpha, 1e-3)
	assert.InDelta(t, 90, beta, 1e-3)

	oob := int32(-1)
	rec := DAFF_DFT_GetNearestNeighbourEx(h, 0, alpha, beta, &oob)
	assert.Equal(t, front, rec)
	assert.Equal(t, int32(0), oob)

	assert.Equal(t, int32(-1), DAFF_DFT_GetNearestNeighbourEx(h, 5, 0, 0, &oob))
	assert.Equal(t, int32(0), DAFF_DFT_GetRecordCoords(h, 1000, &alpha, &beta))
	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbour(h, 0, 0), "wrong content type")
}

// DAFF_VIEW values; cgo is not available in test files.
const (
	dataView   int32 = 0
	objectView int32 = 1
)

func TestNearestNeighbourNonFinite(t *testing.T) {
	setupSimulation(t)
	h := openFile(t, "/sim/ir.daff")

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	oob := int32(7)
	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbourEx(h, dataView, nan, 10, &oob))
	assert.Equal(t, int32(7), oob, "flag untouched on failure")
	assert.Contains(t, lastError(t), "not finite")

	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbourEx(h, objectView, 0, inf, &oob))
	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbour(h, inf, 0))
	assert.Equal(t, int32(-1), DAFF_IR_GetNearestNeighbour(h, 0, nan))

	assert.GreaterOrEqual(t, DAFF_IR_GetNearestNeighbour(h, 0, 0), int32(0))
}

func TestLastErrorBuffer(t *testing.T) {
	setupSimulation(t)

	assert.Equal(t, int32(0), DAFF_GetLastError(nil, 0))

	DAFF_Close(0)
	n := DAFF_GetLastErrorLength()
	require.Positive(t, n)

	tiny := make([]byte, 2)
	assert.Equal(t, int32(-1), DAFF_GetLastError(&tiny[0], 2))
	assert.Equal(t, n, DAFF_GetLastErrorLength(), "reading does not consume the message")

	DAFF_ClearLastError()
	assert.Equal(t, int32(0), DAFF_GetLastErrorLength())
	assert.Equal(t, int32(0), DAFF_GetLastError(&tiny[0], 2))
}
