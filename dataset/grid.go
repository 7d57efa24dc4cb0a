package dataset

import (
	"fmt"
	"math"
	"sort"
)

// angleEpsilon is the tolerance in degrees for comparing grid angles.
const angleEpsilon = 1e-3

// Range is one axis of the grid.
type Range struct {
	Points     int
	Resolution float32
	Start      float32
	End        float32
}

// Grid maps record indices to directions in the data view.
type Grid struct {
	Alpha Range
	Beta  Range

	fullCircle bool
	// rowOffset[i] is the index of the first record of beta row i;
	// rowOffset[Beta.Points] is the record count.
	rowOffset []int
}

// NewGrid builds a grid from the angular resolution and range of both axes.
func NewGrid(alphaRes, alphaStart, alphaEnd, betaRes, betaStart, betaEnd float32) (*Grid, error) {
	if alphaRes <= 0 || betaRes <= 0 {
		return nil, fmt.Errorf("resolution must be positive (alpha %g, beta %g)", alphaRes, betaRes)
	}
	if alphaStart < 0 || alphaEnd >= 360 || alphaStart > alphaEnd {
		return nil, fmt.Errorf("alpha range [%g, %g] outside [0, 360)", alphaStart, alphaEnd)
	}
	if betaStart < 0 || betaEnd > 180 || betaStart > betaEnd {
		return nil, fmt.Errorf("beta range [%g, %g] outside [0, 180]", betaStart, betaEnd)
	}

	g := &Grid{
		Alpha: Range{Resolution: alphaRes, Start: alphaStart, End: alphaEnd},
		Beta:  Range{Resolution: betaRes, Start: betaStart, End: betaEnd},
	}

	alphaSpan := float64(alphaEnd - alphaStart)
	if math.Abs(alphaSpan+float64(alphaRes)-360) < angleEpsilon {
		g.fullCircle = true
		n, ok := steps(360, float64(alphaRes))
		if !ok {
			return nil, fmt.Errorf("alpha resolution %g does not divide 360", alphaRes)
		}
		g.Alpha.Points = n
	} else {
		n, ok := steps(alphaSpan, float64(alphaRes))
		if !ok {
			return nil, fmt.Errorf("alpha range %g is not a multiple of resolution %g", alphaSpan, alphaRes)
		}
		g.Alpha.Points = n + 1
	}

	n, ok := steps(float64(betaEnd-betaStart), float64(betaRes))
	if !ok {
		return nil, fmt.Errorf("beta range %g is not a multiple of resolution %g", betaEnd-betaStart, betaRes)
	}
	g.Beta.Points = n + 1

	g.rowOffset = make([]int, g.Beta.Points+1)
	for i := 0; i < g.Beta.Points; i++ {
		g.rowOffset[i+1] = g.rowOffset[i] + g.rowLen(i)
	}
	return g, nil
}

// steps returns span/res if it is integral within tolerance.
func steps(span, res float64) (int, bool) {
	q := span / res
	r := math.Round(q)
	if math.Abs(q-r)*res > angleEpsilon {
		return 0, false
	}
	return int(r), true
}

func (g *Grid) betaAt(row int) float64 {
	return float64(g.Beta.Start) + float64(row)*float64(g.Beta.Resolution)
}

func isPole(beta float64) bool {
	return math.Abs(beta) < angleEpsilon || math.Abs(beta-180) < angleEpsilon
}

func (g *Grid) rowLen(row int) int {
	if isPole(g.betaAt(row)) {
		return 1
	}
	return g.Alpha.Points
}

// Records returns the number of records on the grid.
func (g *Grid) Records() int {
	return g.rowOffset[len(g.rowOffset)-1]
}

// FullCircle reports whether alpha wraps around 360 degrees.
func (g *Grid) FullCircle() bool {
	return g.fullCircle
}

// FullSphere reports whether the grid covers every direction.
func (g *Grid) FullSphere() bool {
	return g.fullCircle &&
		math.Abs(float64(g.Beta.Start)) < angleEpsilon &&
		math.Abs(float64(g.Beta.End)-180) < angleEpsilon
}

// Coords returns the data view direction of a record.
func (g *Grid) Coords(record int) (alpha, beta float32, err error) {
	if record < 0 || record >= g.Records() {
		return 0, 0, fmt.Errorf("%w: %d of %d", ErrRecordIndex, record, g.Records())
	}
	row := sort.Search(g.Beta.Points, func(i int) bool { return g.rowOffset[i+1] > record })
	b := g.betaAt(row)
	if isPole(b) {
		return 0, float32(b), nil
	}
	col := record - g.rowOffset[row]
	a := float64(g.Alpha.Start) + float64(col)*float64(g.Alpha.Resolution)
	return float32(a), float32(b), nil
}

// Nearest returns the record closest to a data view direction. outOfBounds
// is set when the direction lies outside the area the grid covers; the
// closest border record is returned in that case. A NaN or infinite angle
// is out of bounds and still yields a record of the grid.
func (g *Grid) Nearest(alpha, beta float32) (record int, outOfBounds bool) {
	b := float64(beta)
	if !finite(alpha) || !finite(beta) {
		outOfBounds = true
	}
	if b < float64(g.Beta.Start)-angleEpsilon || b > float64(g.Beta.End)+angleEpsilon {
		outOfBounds = true
	}
	row := int(math.Round((b - float64(g.Beta.Start)) / float64(g.Beta.Resolution)))
	if row < 0 {
		row = 0
	} else if row >= g.Beta.Points {
		row = g.Beta.Points - 1
	}
	if isPole(g.betaAt(row)) {
		return g.rowOffset[row], outOfBounds
	}

	res := float64(g.Alpha.Resolution)
	rel := wrap360(float64(alpha) - float64(g.Alpha.Start))
	var col int
	if g.fullCircle {
		col = int(math.Round(rel/res)) % g.Alpha.Points
	} else {
		span := float64(g.Alpha.End - g.Alpha.Start)
		switch {
		case rel <= span+angleEpsilon:
			col = int(math.Round(rel / res))
		case rel-span < 360-rel:
			outOfBounds = true
			col = g.Alpha.Points - 1
		default:
			outOfBounds = true
			col = 0
		}
	}
	if col < 0 {
		col = 0
	} else if col >= g.Alpha.Points {
		col = g.Alpha.Points - 1
	}
	return g.rowOffset[row] + col, outOfBounds
}

func finite(deg float32) bool {
	d := float64(deg)
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}

// wrap360 maps an angle to [0, 360).
func wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
