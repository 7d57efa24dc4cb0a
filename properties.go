package daffbind

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
)

// Properties is a snapshot of everything known about an open file.
// Content specific fields are zero for other content types.
type Properties struct {
	Filename          string
	FileFormatVersion int
	ContentType       interfaces.ContentType
	Quantization      interfaces.Quantization
	NumberOfChannels  int
	NumberOfRecords   int
	ChannelLabels     []string

	AlphaPoints     int
	AlphaResolution float32
	AlphaStart      float32
	AlphaEnd        float32
	BetaPoints      int
	BetaResolution  float32
	BetaStart       float32
	BetaEnd         float32

	Orientation        interfaces.Orientation
	DefaultOrientation interfaces.Orientation
	CoversFullSphere   bool

	// IR and DFT
	Samplerate float64
	// IR
	FilterLength int
	// MS, PS and MPS
	Frequencies []float32
	// DFT
	TransformSize      int
	NumDFTCoeffs       int
	IsSymmetric        bool
	FrequencyBandwidth float64
}

// property reads one value from the properties of the open file of h.
func property[T any](b *Binding, function string, h Handle, get func(interfaces.IProperties) T) (T, error) {
	var v T
	err := b.guard(function, h, func() error {
		e, err := b.resolveOpen(h)
		if err != nil {
			return err
		}
		p := e.reader.Properties()
		if p == nil {
			return fmt.Errorf("%w: library returned no properties", ErrNotOpen)
		}
		v = get(p)
		return nil
	})
	return v, err
}

// ContentType returns the content type tag of the open file.
func (b *Binding) ContentType(h Handle) (interfaces.ContentType, error) {
	return property(b, "ContentType", h, interfaces.IProperties.ContentType)
}

// Quantization returns the stored sample precision.
func (b *Binding) Quantization(h Handle) (interfaces.Quantization, error) {
	return property(b, "Quantization", h, interfaces.IProperties.Quantization)
}

// NumberOfChannels returns the channel count.
func (b *Binding) NumberOfChannels(h Handle) (int, error) {
	return property(b, "NumberOfChannels", h, interfaces.IProperties.NumberOfChannels)
}

// NumberOfRecords returns the number of records on the grid.
func (b *Binding) NumberOfRecords(h Handle) (int, error) {
	return property(b, "NumberOfRecords", h, interfaces.IProperties.NumberOfRecords)
}

func (b *Binding) AlphaPoints(h Handle) (int, error) {
	return property(b, "AlphaPoints", h, interfaces.IProperties.AlphaPoints)
}

func (b *Binding) AlphaResolution(h Handle) (float32, error) {
	return property(b, "AlphaResolution", h, interfaces.IProperties.AlphaResolution)
}

func (b *Binding) BetaPoints(h Handle) (int, error) {
	return property(b, "BetaPoints", h, interfaces.IProperties.BetaPoints)
}

func (b *Binding) BetaResolution(h Handle) (float32, error) {
	return property(b, "BetaResolution", h, interfaces.IProperties.BetaResolution)
}

// Orientation returns the yaw-pitch-roll orientation of the file in degrees.
func (b *Binding) Orientation(h Handle) (interfaces.Orientation, error) {
	return property(b, "Orientation", h, interfaces.IProperties.Orientation)
}

// CoversFullSphere reports whether the grid covers every direction.
func (b *Binding) CoversFullSphere(h Handle) (bool, error) {
	return property(b, "CoversFullSphere", h, interfaces.IProperties.CoversFullSphere)
}

// ChannelLabel returns the label of a channel, or "" if it has none.
func (b *Binding) ChannelLabel(h Handle, channel int) (string, error) {
	return property(b, "ChannelLabel", h, func(p interfaces.IProperties) string {
		return p.ChannelLabel(channel)
	})
}

// Filename returns the path the file of h was opened with.
func (b *Binding) Filename(h Handle) (string, error) {
	var name string
	err := b.guard("Filename", h, func() error {
		e, err := b.resolveOpen(h)
		if err != nil {
			return err
		}
		name = e.reader.Filename()
		return nil
	})
	return name, err
}

// Properties returns a snapshot of all properties of the open file of h,
// including the parameters of its content.
func (b *Binding) Properties(h Handle) (*Properties, error) {
	var out *Properties
	err := b.guard("Properties", h, func() error {
		e, err := b.resolveOpen(h)
		if err != nil {
			return err
		}
		p := e.reader.Properties()
		if p == nil {
			return fmt.Errorf("%w: library returned no properties", ErrNotOpen)
		}

		snap := &Properties{
			Filename:           e.reader.Filename(),
			FileFormatVersion:  e.reader.FileFormatVersion(),
			ContentType:        p.ContentType(),
			Quantization:       p.Quantization(),
			NumberOfChannels:   p.NumberOfChannels(),
			NumberOfRecords:    p.NumberOfRecords(),
			AlphaPoints:        p.AlphaPoints(),
			AlphaResolution:    p.AlphaResolution(),
			AlphaStart:         p.AlphaStart(),
			AlphaEnd:           p.AlphaEnd(),
			BetaPoints:         p.BetaPoints(),
			BetaResolution:     p.BetaResolution(),
			BetaStart:          p.BetaStart(),
			BetaEnd:            p.BetaEnd(),
			Orientation:        p.Orientation(),
			DefaultOrientation: p.DefaultOrientation(),
			CoversFullSphere:   p.CoversFullSphere(),
		}
		snap.ChannelLabels = make([]string, snap.NumberOfChannels)
		for i := range snap.ChannelLabels {
			snap.ChannelLabels[i] = p.ChannelLabel(i)
		}

		if err := fillContentProperties(snap, e.reader.Content()); err != nil {
			return err
		}
		out = snap
		return nil
	})
	return out, err
}

func fillContentProperties(snap *Properties, c interfaces.IContent) error {
	switch snap.ContentType {
	case interfaces.ContentTypeIR:
		ir, ok := c.(interfaces.IContentIR)
		if !ok {
			return contentMismatch(snap.ContentType, c)
		}
		snap.Samplerate = ir.Samplerate()
		snap.FilterLength = ir.FilterLength()
	case interfaces.ContentTypeMS:
		ms, ok := c.(interfaces.IContentMS)
		if !ok {
			return contentMismatch(snap.ContentType, c)
		}
		snap.Frequencies = ms.Frequencies()
	case interfaces.ContentTypePS:
		ps, ok := c.(interfaces.IContentPS)
		if !ok {
			return contentMismatch(snap.ContentType, c)
		}
		snap.Frequencies = ps.Frequencies()
	case interfaces.ContentTypeMPS:
		mps, ok := c.(interfaces.IContentMPS)
		if !ok {
			return contentMismatch(snap.ContentType, c)
		}
		snap.Frequencies = mps.Frequencies()
	case interfaces.ContentTypeDFT:
		dft, ok := c.(interfaces.IContentDFT)
		if !ok {
			return contentMismatch(snap.ContentType, c)
		}
		snap.Samplerate = dft.Samplerate()
		snap.TransformSize = dft.TransformSize()
		snap.NumDFTCoeffs = dft.NumDFTCoeffs()
		snap.IsSymmetric = dft.IsSymmetric()
		snap.FrequencyBandwidth = dft.FrequencyBandwidth()
	}
	return nil
}
