package daffbind

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/daffbind/dataset"
	"github.com/opd-ai/daffbind/interfaces"
	simtest "github.com/opd-ai/daffbind/testing"
)

func TestNearestNeighbourRoundTrip(t *testing.T) {
	orientations := []interfaces.Orientation{
		{},
		{Yaw: 90},
		{Yaw: -45, Pitch: 30, Roll: 10},
	}

	for _, o := range orientations {
		lib := simtest.NewSimulatedLibrary(&interfaces.BindingConfig{UseSimulation: true, MaxHandles: 4})
		lib.Register("/sim/oriented.daff", simtest.Synthesize(simtest.SynthSpec{
			ContentType:     interfaces.ContentTypeMS,
			AlphaResolution: 15,
			BetaResolution:  15,
			Orientation:     o,
		}))
		b, err := New(lib, nil)
		require.NoError(t, err)

		ms, ok := b.ContentMS(openHandle(t, b, "/sim/oriented.daff"))
		require.True(t, ok)
		records, err := b.NumberOfRecords(ms.Handle())
		require.NoError(t, err)

		for rec := 0; rec < records; rec++ {
			phi, theta, err := ms.RecordCoordsView(rec, interfaces.ObjectView)
			require.NoError(t, err)

			got, err := ms.NearestNeighbour(phi, theta)
			require.NoError(t, err)
			assert.Equal(t, rec, got, "orientation %+v record %d (phi %.2f theta %.2f)", o, rec, phi, theta)

			alpha, beta, err := ms.RecordCoords(rec)
			require.NoError(t, err)
			got, oob, err := ms.NearestNeighbourView(interfaces.DataView, alpha, beta)
			require.NoError(t, err)
			assert.False(t, oob)
			assert.Equal(t, rec, got)
		}
	}
}

func TestNearestNeighbourViews(t *testing.T) {
	b, _ := newTestBinding(t, nil)
	ir, ok := b.ContentIR(openHandle(t, b, irPath))
	require.True(t, ok)

	// object front is the data equator at alpha 0 for an unrotated file
	front, err := ir.NearestNeighbour(0, 0)
	require.NoError(t, err)
	alpha, beta, err := ir.RecordCoords(front)
	require.NoError(t, err)
	assert.InDelta(t, 0, alpha, 1e-3)
	assert.InDelta(t, 90, beta, 1e-3)

	south, oob, err := ir.NearestNeighbourView(interfaces.DataView, 123, 0)
	require.NoError(t, err)
	assert.False(t, oob)
	assert.Equal(t, 0, south, "the south pole is record 0")

	_, _, err = ir.NearestNeighbourView(interfaces.View(7), 0, 0)
	assert.Error(t, err)

	_, _, err = ir.RecordCoords(62)
	assert.ErrorIs(t, err, ErrRecordAccess)
}

func TestNearestNeighbourOutOfBounds(t *testing.T) {
	ds := simtest.Synthesize(simtest.SynthSpec{ContentType: interfaces.ContentTypeIR})
	ds.Properties.AlphaEnd = 90
	ds.Properties.BetaStart = 60
	ds.Properties.BetaEnd = 120
	ds.Records = nil
	ds.Params.FilterLength = 2

	grid, err := dataset.NewGrid(30, 0, 90, 30, 60, 120)
	require.NoError(t, err)
	for i := 0; i < grid.Records(); i++ {
		ds.Records = append(ds.Records, []float32{float32(i), 0})
	}

	lib := simtest.NewSimulatedLibrary(&interfaces.BindingConfig{UseSimulation: true, MaxHandles: 4})
	lib.Register("/sim/partial.daff", ds)
	b, err := New(lib, nil)
	require.NoError(t, err)

	h := openHandle(t, b, "/sim/partial.daff")
	full, err := b.CoversFullSphere(h)
	require.NoError(t, err)
	assert.False(t, full)

	ir, ok := b.ContentIR(h)
	require.True(t, ok)

	_, oob, err := ir.NearestNeighbourView(interfaces.DataView, 45, 90)
	require.NoError(t, err)
	assert.False(t, oob)

	rec, oob, err := ir.NearestNeighbourView(interfaces.DataView, 45, 170)
	require.NoError(t, err)
	assert.True(t, oob)
	assert.GreaterOrEqual(t, rec, 0, "out of bounds still resolves to a border record")
}

func TestNearestNeighbourRejectsNonFiniteAngles(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	b, _ := newTestBinding(t, nil)
	ir, ok := b.ContentIR(openHandle(t, b, irPath))
	require.True(t, ok)

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name   string
		view   interfaces.View
		a1, a2 float32
	}{
		{"data NaN alpha", interfaces.DataView, nan, 10},
		{"data NaN beta", interfaces.DataView, 0, nan},
		{"data infinite alpha", interfaces.DataView, -inf, 90},
		{"object NaN phi", interfaces.ObjectView, nan, 10},
		{"object infinite phi", interfaces.ObjectView, inf, 0},
		{"object infinite theta", interfaces.ObjectView, 0, inf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			rec, oob, err := ir.NearestNeighbourView(tt.view, tt.a1, tt.a2)
			assert.ErrorIs(t, err, ErrInvalidDirection)
			assert.Equal(t, -1, rec)
			assert.False(t, oob)
			assert.Contains(t, b.LastError(), "not finite")
		})
	}

	rec, err := ir.NearestNeighbour(nan, 0)
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, -1, rec)

	_, err = ir.NearestNeighbour(0, 0)
	require.NoError(t, err)
	assert.Empty(t, b.LastError(), "a successful query clears the error")
}
