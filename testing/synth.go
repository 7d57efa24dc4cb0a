package testing

import (
	"github.com/opd-ai/daffbind/dataset"
	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
)

// SynthSpec describes a synthesized full sphere dataset.
type SynthSpec struct {
	ContentType     interfaces.ContentType
	Channels        int
	AlphaResolution float32
	BetaResolution  float32

	// Elements is the filter length (IR), number of frequencies (MS, PS,
	// MPS) or transform size (DFT).
	Elements  int
	Symmetric bool

	Orientation interfaces.Orientation
}

// SampleValue is the value synthesized at position i of the native record
// layout of record, channel.
func SampleValue(record, channel, i int) float32 {
	return float32(record*1000 + channel*100 + i)
}

// Synthesize builds a deterministic dataset. Zero fields default to one
// channel, 30 degree resolution and eight elements.
func Synthesize(spec SynthSpec) *dataset.Dataset {
	if spec.Channels == 0 {
		spec.Channels = 1
	}
	if spec.AlphaResolution == 0 {
		spec.AlphaResolution = 30
	}
	if spec.BetaResolution == 0 {
		spec.BetaResolution = 30
	}
	if spec.Elements == 0 {
		spec.Elements = 8
	}

	labels := make([]string, spec.Channels)
	for i := range labels {
		labels[i] = [...]string{"left", "right"}[i%2]
	}

	ds := &dataset.Dataset{
		FormatVersion: 170,
		Properties: dataset.Properties{
			ContentType:        spec.ContentType,
			Quantization:       interfaces.QuantizationFloat32,
			Channels:           spec.Channels,
			ChannelLabels:      labels,
			AlphaResolution:    spec.AlphaResolution,
			AlphaEnd:           360 - spec.AlphaResolution,
			BetaResolution:     spec.BetaResolution,
			BetaEnd:            180,
			Orientation:        spec.Orientation,
			DefaultOrientation: spec.Orientation,
		},
		Metadata: dataset.NewMetadata(),
	}
	ds.Metadata.SetString("Description", "synthesized "+spec.ContentType.String())
	ds.Metadata.SetInt("Elements", spec.Elements)
	ds.Metadata.SetFloat("Resolution", float64(spec.AlphaResolution))
	ds.Metadata.SetBool("Synthetic", true)

	switch spec.ContentType {
	case interfaces.ContentTypeIR:
		ds.Params.FilterLength = spec.Elements
		ds.Params.Samplerate = 44100
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		ds.Params.Frequencies = make([]float32, spec.Elements)
		for i := range ds.Params.Frequencies {
			ds.Params.Frequencies[i] = 125 * float32(i+1)
		}
	case interfaces.ContentTypeDFT:
		ds.Params.TransformSize = spec.Elements
		ds.Params.Symmetric = spec.Symmetric
		ds.Params.Samplerate = 44100
	}

	grid, err := dataset.NewGrid(spec.AlphaResolution, 0, 360-spec.AlphaResolution, spec.BetaResolution, 0, 180)
	if err != nil {
		return ds
	}
	n, err := limits.NativeLength(spec.ContentType, ds.Elements())
	if err != nil {
		return ds
	}
	ds.Records = make([][]float32, grid.Records()*spec.Channels)
	for r := 0; r < grid.Records(); r++ {
		for c := 0; c < spec.Channels; c++ {
			rec := make([]float32, n)
			for i := range rec {
				rec[i] = SampleValue(r, c, i)
			}
			ds.Records[r*spec.Channels+c] = rec
		}
	}
	return ds
}
