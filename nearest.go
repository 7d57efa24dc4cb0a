package daffbind

import (
	"fmt"
	"math"

	"github.com/opd-ai/daffbind/interfaces"
)

// NearestNeighbour returns the record closest to the object view direction
// (phi, theta) in degrees: phi azimuth in (-180, 180], theta elevation in
// [-90, 90]. Directions outside the grid resolve to the closest border
// record; use NearestNeighbourView to detect that.
func (v *view) NearestNeighbour(phi, theta float32) (int, error) {
	rec, _, err := v.nearest("NearestNeighbour", interfaces.ObjectView, phi, theta)
	return rec, err
}

// NearestNeighbourView resolves a direction given in the chosen view and
// reports whether it lies outside the area covered by the grid.
func (v *view) NearestNeighbourView(vw interfaces.View, angle1, angle2 float32) (record int, outOfBounds bool, err error) {
	return v.nearest("NearestNeighbourView", vw, angle1, angle2)
}

func (v *view) nearest(function string, vw interfaces.View, angle1, angle2 float32) (int, bool, error) {
	rec, oob := -1, false
	err := v.b.guard(v.tag.ShortString()+"."+function, v.h, func() error {
		if !vw.Valid() {
			return fmt.Errorf("unknown view %d", int(vw))
		}
		if !finite(angle1) || !finite(angle2) {
			return fmt.Errorf("%w: (%g, %g)", ErrInvalidDirection, angle1, angle2)
		}
		_, c, err := resolveContent[interfaces.IContent](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		rec, oob = c.NearestNeighbour(vw, angle1, angle2)
		return nil
	})
	if err != nil {
		return -1, false, err
	}
	return rec, oob, nil
}

func finite(deg float32) bool {
	return !math.IsNaN(float64(deg)) && !math.IsInf(float64(deg), 0)
}

// RecordCoords returns the stored direction of a record in the data view:
// alpha azimuth in [0, 360) and beta in [0, 180], beta 0 being the south
// pole.
func (v *view) RecordCoords(recordIndex int) (alpha, beta float32, err error) {
	return v.RecordCoordsView(recordIndex, interfaces.DataView)
}

// RecordCoordsView returns the direction of a record in the chosen view.
func (v *view) RecordCoordsView(recordIndex int, vw interfaces.View) (angle1, angle2 float32, err error) {
	err = v.b.guard(v.tag.ShortString()+".RecordCoords", v.h, func() error {
		if !vw.Valid() {
			return fmt.Errorf("unknown view %d", int(vw))
		}
		_, c, err := resolveContent[interfaces.IContent](v.b, v.h, v.tag)
		if err != nil {
			return err
		}
		a1, a2, err := c.RecordCoords(recordIndex, vw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRecordAccess, err)
		}
		angle1, angle2 = a1, a2
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return angle1, angle2, nil
}
