package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name       string
		aRes, a0   float32
		a1         float32
		bRes, b0   float32
		b1         float32
		alphaPts   int
		betaPts    int
		records    int
		fullSphere bool
	}{
		{"full sphere 5 deg", 5, 0, 355, 5, 0, 180, 72, 37, 35*72 + 2, true},
		{"full sphere 30/90", 30, 0, 330, 90, 0, 180, 12, 3, 14, true},
		{"partial", 30, 0, 90, 30, 30, 150, 4, 5, 20, false},
		{"upper hemisphere", 10, 0, 350, 10, 90, 180, 36, 10, 9*36 + 1, false},
		{"single direction", 1, 0, 0, 1, 90, 90, 1, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.aRes, tt.a0, tt.a1, tt.bRes, tt.b0, tt.b1)
			require.NoError(t, err)
			assert.Equal(t, tt.alphaPts, g.Alpha.Points)
			assert.Equal(t, tt.betaPts, g.Beta.Points)
			assert.Equal(t, tt.records, g.Records())
			assert.Equal(t, tt.fullSphere, g.FullSphere())
		})
	}
}

func TestNewGridRejects(t *testing.T) {
	tests := []struct {
		name                       string
		aRes, a0, a1, bRes, b0, b1 float32
	}{
		{"zero resolution", 0, 0, 355, 5, 0, 180},
		{"alpha end at 360", 5, 0, 360, 5, 0, 180},
		{"reversed alpha", 5, 90, 10, 5, 0, 180},
		{"beta beyond pole", 5, 0, 355, 5, 0, 185},
		{"alpha not a multiple", 7, 0, 100, 5, 0, 180},
		{"beta not a multiple", 5, 0, 355, 7, 0, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.aRes, tt.a0, tt.a1, tt.bRes, tt.b0, tt.b1)
			assert.Error(t, err)
		})
	}
}

func TestGridCoords(t *testing.T) {
	g, err := NewGrid(30, 0, 330, 90, 0, 180)
	require.NoError(t, err)

	a, b, err := g.Coords(0)
	require.NoError(t, err)
	assert.Equal(t, float32(0), a)
	assert.Equal(t, float32(0), b, "first record is the south pole")

	a, b, err = g.Coords(3)
	require.NoError(t, err)
	assert.Equal(t, float32(60), a)
	assert.Equal(t, float32(90), b)

	a, b, err = g.Coords(13)
	require.NoError(t, err)
	assert.Equal(t, float32(0), a)
	assert.Equal(t, float32(180), b)

	_, _, err = g.Coords(14)
	assert.ErrorIs(t, err, ErrRecordIndex)
	_, _, err = g.Coords(-1)
	assert.ErrorIs(t, err, ErrRecordIndex)
}

func TestGridNearest(t *testing.T) {
	full, err := NewGrid(5, 0, 355, 5, 0, 180)
	require.NoError(t, err)
	partial, err := NewGrid(30, 0, 90, 30, 30, 150)
	require.NoError(t, err)

	tests := []struct {
		name   string
		g      *Grid
		alpha  float32
		beta   float32
		record int
		oob    bool
	}{
		{"south pole ignores alpha", full, 123, 1, 0, false},
		{"north pole", full, 45, 179, full.Records() - 1, false},
		{"equator front", full, 0, 90, 1 + 17*72, false},
		{"alpha wraps to zero", full, 358, 90, 1 + 17*72, false},
		{"negative alpha wraps", full, -5, 90, 1 + 17*72 + 71, false},
		{"inside partial", partial, 61, 89, 2*4 + 2, false},
		{"alpha past end", partial, 100, 90, 2*4 + 3, true},
		{"alpha before start", partial, 350, 90, 2 * 4, true},
		{"beta below start", partial, 30, 10, 1, true},
		{"beta above end", partial, 90, 170, 4*4 + 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, oob := tt.g.Nearest(tt.alpha, tt.beta)
			assert.Equal(t, tt.record, rec)
			assert.Equal(t, tt.oob, oob)
		})
	}
}

func TestGridNearestNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	for _, g := range []*Grid{
		mustGrid(t, 10, 0, 350, 10, 0, 180),
		mustGrid(t, 30, 0, 90, 30, 30, 150),
	} {
		for _, dir := range [][2]float32{{nan, 10}, {nan, 90}, {0, nan}, {inf, 90}, {-inf, 90}, {0, inf}, {nan, nan}} {
			rec, oob := g.Nearest(dir[0], dir[1])
			assert.True(t, oob, "direction %v", dir)
			assert.GreaterOrEqual(t, rec, 0, "direction %v", dir)
			assert.Less(t, rec, g.Records(), "direction %v", dir)
		}
	}
}

func TestGridCoordsNearestRoundTrip(t *testing.T) {
	for _, g := range []*Grid{
		mustGrid(t, 5, 0, 355, 5, 0, 180),
		mustGrid(t, 30, 0, 90, 30, 30, 150),
		mustGrid(t, 15, 30, 120, 10, 0, 60),
	} {
		for i := 0; i < g.Records(); i++ {
			a, b, err := g.Coords(i)
			require.NoError(t, err)
			rec, oob := g.Nearest(a, b)
			assert.Equal(t, i, rec)
			assert.False(t, oob)
		}
	}
}

func mustGrid(t *testing.T, aRes, a0, a1, bRes, b0, b1 float32) *Grid {
	t.Helper()
	g, err := NewGrid(aRes, a0, a1, bRes, b0, b1)
	require.NoError(t, err)
	return g
}
