package dataset

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/opd-ai/daffbind/interfaces"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

func radians(deg float32) float64 {
	return float64(deg) * math.Pi / 180
}

// direction returns the unit vector of azimuth az and elevation el, in degrees.
func direction(az, el float64) r3.Vec {
	sa, ca := math.Sincos(az * math.Pi / 180)
	se, ce := math.Sincos(el * math.Pi / 180)
	return r3.Vec{X: ce * ca, Y: ce * sa, Z: se}
}

// angles returns azimuth in (-180, 180] and elevation in [-90, 90] of v.
func angles(v r3.Vec) (az, el float64) {
	v = r3.Unit(v)
	z := math.Max(-1, math.Min(1, v.Z))
	el = math.Asin(z) * 180 / math.Pi
	az = math.Atan2(v.Y, v.X) * 180 / math.Pi
	if az <= -180 {
		az += 360
	}
	return az, el
}

// ObjectToData converts an object view direction (phi, theta) into the data
// view (alpha, beta) of a file with orientation o. The inverse of the
// orientation is applied: yaw about Z, then pitch about Y, then roll about X.
func ObjectToData(o interfaces.Orientation, phi, theta float32) (alpha, beta float32) {
	v := direction(float64(phi), float64(theta))
	if !o.IsZero() {
		v = r3.NewRotation(-radians(o.Yaw), axisZ).Rotate(v)
		v = r3.NewRotation(-radians(o.Pitch), axisY).Rotate(v)
		v = r3.NewRotation(-radians(o.Roll), axisX).Rotate(v)
	}
	az, el := angles(v)
	alpha = float32(wrap360(az))
	if alpha >= 360 {
		alpha = 0
	}
	return alpha, float32(el + 90)
}

// DataToObject converts a data view direction (alpha, beta) into the object
// view (phi, theta) of a file with orientation o.
func DataToObject(o interfaces.Orientation, alpha, beta float32) (phi, theta float32) {
	v := direction(float64(alpha), float64(beta)-90)
	if !o.IsZero() {
		v = r3.NewRotation(radians(o.Roll), axisX).Rotate(v)
		v = r3.NewRotation(radians(o.Pitch), axisY).Rotate(v)
		v = r3.NewRotation(radians(o.Yaw), axisZ).Rotate(v)
	}
	az, el := angles(v)
	return float32(az), float32(el)
}
