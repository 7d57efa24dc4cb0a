package dataset

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
)

// content carries the grid and record access shared by all content shapes.
type content struct {
	ds   *Dataset
	grid *Grid
}

func newContent(base content) interfaces.IContent {
	switch base.ds.Properties.ContentType {
	case interfaces.ContentTypeIR:
		return &IRContent{content: base}
	case interfaces.ContentTypeMS:
		return &MSContent{spectrum: spectrum{base}}
	case interfaces.ContentTypePS:
		return &PSContent{spectrum: spectrum{base}}
	case interfaces.ContentTypeMPS:
		return &MPSContent{spectrum: spectrum{base}}
	case interfaces.ContentTypeDFT:
		return &DFTContent{content: base}
	default:
		return nil
	}
}

func (c *content) ContentType() interfaces.ContentType {
	return c.ds.Properties.ContentType
}

func (c *content) NearestNeighbour(view interfaces.View, angle1, angle2 float32) (int, bool) {
	if view == interfaces.ObjectView {
		angle1, angle2 = ObjectToData(c.ds.Properties.Orientation, angle1, angle2)
	}
	return c.grid.Nearest(angle1, angle2)
}

func (c *content) RecordCoords(recordIndex int, view interfaces.View) (float32, float32, error) {
	alpha, beta, err := c.grid.Coords(recordIndex)
	if err != nil {
		return 0, 0, err
	}
	if view == interfaces.ObjectView {
		phi, theta := DataToObject(c.ds.Properties.Orientation, alpha, beta)
		return phi, theta, nil
	}
	return alpha, beta, nil
}

// copyRecord writes a stored record channel into dst. dst is resliced to the
// record length without checking its capacity.
func (c *content) copyRecord(recordIndex, channel int, dst []float32) error {
	if recordIndex < 0 || recordIndex >= c.grid.Records() {
		return fmt.Errorf("%w: %d of %d", ErrRecordIndex, recordIndex, c.grid.Records())
	}
	if channel < 0 || channel >= c.ds.Properties.Channels {
		return fmt.Errorf("%w: %d of %d", ErrChannel, channel, c.ds.Properties.Channels)
	}
	src := c.ds.Records[recordIndex*c.ds.Properties.Channels+channel]
	copy(dst[:len(src)], src)
	return nil
}

// IRContent is impulse response content.
type IRContent struct {
	content
}

func (c *IRContent) FilterLength() int {
	return c.ds.Params.FilterLength
}

func (c *IRContent) Samplerate() float64 {
	return c.ds.Params.Samplerate
}

func (c *IRContent) FilterCoeffs(recordIndex, channel int, dst []float32) error {
	return c.copyRecord(recordIndex, channel, dst)
}

type spectrum struct {
	content
}

func (s *spectrum) NumFrequencies() int {
	return len(s.ds.Params.Frequencies)
}

// Frequencies returns a copy of the support frequencies in Hz.
func (s *spectrum) Frequencies() []float32 {
	out := make([]float32, len(s.ds.Params.Frequencies))
	copy(out, s.ds.Params.Frequencies)
	return out
}

// MSContent is magnitude spectrum content.
type MSContent struct {
	spectrum
}

func (c *MSContent) Magnitudes(recordIndex, channel int, dst []float32) error {
	return c.copyRecord(recordIndex, channel, dst)
}

// PSContent is phase spectrum content.
type PSContent struct {
	spectrum
}

func (c *PSContent) Phases(recordIndex, channel int, dst []float32) error {
	return c.copyRecord(recordIndex, channel, dst)
}

// MPSContent is magnitude-phase spectrum content.
type MPSContent struct {
	spectrum
}

func (c *MPSContent) CoefficientsMP(recordIndex, channel int, dst []float32) error {
	return c.copyRecord(recordIndex, channel, dst)
}

// DFTContent is complex DFT spectrum content.
type DFTContent struct {
	content
}

func (c *DFTContent) NumDFTCoeffs() int {
	return c.ds.Params.NumDFTCoeffs()
}

func (c *DFTContent) TransformSize() int {
	return c.ds.Params.TransformSize
}

func (c *DFTContent) IsSymmetric() bool {
	return c.ds.Params.Symmetric
}

func (c *DFTContent) Samplerate() float64 {
	return c.ds.Params.Samplerate
}

// FrequencyBandwidth returns the spacing of DFT bins in Hz.
func (c *DFTContent) FrequencyBandwidth() float64 {
	return c.ds.Params.Samplerate / float64(c.ds.Params.TransformSize)
}

func (c *DFTContent) DFTCoeffs(recordIndex, channel int, dst []float32) error {
	return c.copyRecord(recordIndex, channel, dst)
}
