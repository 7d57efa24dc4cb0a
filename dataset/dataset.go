package dataset

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
)

// Properties are the static properties stored in a dataset.
type Properties struct {
	ContentType   interfaces.ContentType
	Quantization  interfaces.Quantization
	Channels      int
	ChannelLabels []string

	AlphaResolution float32
	AlphaStart      float32
	AlphaEnd        float32
	BetaResolution  float32
	BetaStart       float32
	BetaEnd         float32

	Orientation        interfaces.Orientation
	DefaultOrientation interfaces.Orientation
}

// Params are the content specific parameters. Only the fields of the
// dataset's content type are used.
type Params struct {
	// IR
	FilterLength int

	// IR and DFT
	Samplerate float64

	// MS, PS and MPS
	Frequencies []float32

	// DFT
	TransformSize int
	Symmetric     bool
}

// Dataset is the decoded content of one file.
//
// Records holds one slice per record and channel at index
// record*Channels+channel, in the native layout of the content type:
// MPS interleaves magnitude and phase, DFT interleaves real and imaginary
// parts.
type Dataset struct {
	FormatVersion int
	Properties    Properties
	Params        Params
	Metadata      *Metadata
	Records       [][]float32
}

// NumDFTCoeffs returns the number of stored DFT coefficients. Symmetric
// spectra keep only the non-redundant half.
func (p Params) NumDFTCoeffs() int {
	if p.Symmetric {
		return p.TransformSize/2 + 1
	}
	return p.TransformSize
}

// Elements returns the number of logical elements per record channel: filter
// taps, frequencies or DFT coefficients.
func (d *Dataset) Elements() int {
	switch d.Properties.ContentType {
	case interfaces.ContentTypeIR:
		return d.Params.FilterLength
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		return len(d.Params.Frequencies)
	case interfaces.ContentTypeDFT:
		return d.Params.NumDFTCoeffs()
	default:
		return 0
	}
}

// Validate checks the dataset for consistency and returns its grid. path is
// only used in error messages.
func (d *Dataset) Validate(path string) (*Grid, error) {
	p := d.Properties
	if !p.ContentType.Valid() {
		return nil, &UnsupportedError{Path: path, Feature: "content type", Value: int(p.ContentType)}
	}
	switch p.Quantization {
	case interfaces.QuantizationInt16, interfaces.QuantizationInt24, interfaces.QuantizationFloat32:
	default:
		return nil, &UnsupportedError{Path: path, Feature: "quantization", Value: int(p.Quantization)}
	}
	if p.Channels <= 0 {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("channel count %d", p.Channels)}
	}
	if len(p.ChannelLabels) != 0 && len(p.ChannelLabels) != p.Channels {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("%d channel labels for %d channels", len(p.ChannelLabels), p.Channels)}
	}

	grid, err := NewGrid(p.AlphaResolution, p.AlphaStart, p.AlphaEnd, p.BetaResolution, p.BetaStart, p.BetaEnd)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}

	if err := d.validateParams(); err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}

	want, err := limits.NativeLength(p.ContentType, d.Elements())
	if err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}
	if n := grid.Records() * p.Channels; len(d.Records) != n {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("%d record channels stored, grid needs %d", len(d.Records), n)}
	}
	for i, r := range d.Records {
		if len(r) != want {
			return nil, &FormatError{Path: path, Reason: fmt.Sprintf("record %d channel %d holds %d values, want %d",
				i/p.Channels, i%p.Channels, len(r), want)}
		}
	}
	return grid, nil
}

func (d *Dataset) validateParams() error {
	pp := d.Params
	switch d.Properties.ContentType {
	case interfaces.ContentTypeIR:
		if pp.FilterLength <= 0 {
			return fmt.Errorf("filter length %d", pp.FilterLength)
		}
		if pp.Samplerate <= 0 {
			return fmt.Errorf("samplerate %g", pp.Samplerate)
		}
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		if len(pp.Frequencies) == 0 {
			return fmt.Errorf("no frequencies")
		}
		for i, f := range pp.Frequencies {
			if f <= 0 || (i > 0 && f <= pp.Frequencies[i-1]) {
				return fmt.Errorf("frequencies must be positive and increasing (index %d: %g)", i, f)
			}
		}
	case interfaces.ContentTypeDFT:
		if pp.TransformSize <= 0 {
			return fmt.Errorf("transform size %d", pp.TransformSize)
		}
		if pp.Samplerate <= 0 {
			return fmt.Errorf("samplerate %g", pp.Samplerate)
		}
	}
	return nil
}
