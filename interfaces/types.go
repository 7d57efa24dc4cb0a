package interfaces

import "strings"

// ContentType identifies which of the five content shapes a file stores.
// The numeric values match the DAFF container tags.
type ContentType int

const (
	ContentTypeUnknown ContentType = 0
	ContentTypeIR      ContentType = 1 // impulse response
	ContentTypeMS      ContentType = 2 // magnitude spectrum
	ContentTypePS      ContentType = 3 // phase spectrum
	ContentTypeMPS     ContentType = 4 // magnitude-phase spectrum
	ContentTypeDFT     ContentType = 5 // discrete Fourier spectrum
)

// String returns the long name of the content type.
func (c ContentType) String() string {
	switch c {
	case ContentTypeIR:
		return "ImpulseResponse"
	case ContentTypeMS:
		return "MagnitudeSpectrum"
	case ContentTypePS:
		return "PhaseSpectrum"
	case ContentTypeMPS:
		return "MagnitudePhaseSpectrum"
	case ContentTypeDFT:
		return "DFTSpectrum"
	default:
		return "Unknown"
	}
}

// ShortString returns the abbreviation used in file properties listings.
func (c ContentType) ShortString() string {
	switch c {
	case ContentTypeIR:
		return "IR"
	case ContentTypeMS:
		return "MS"
	case ContentTypePS:
		return "PS"
	case ContentTypeMPS:
		return "MPS"
	case ContentTypeDFT:
		return "DFT"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the five defined content tags.
func (c ContentType) Valid() bool {
	return c >= ContentTypeIR && c <= ContentTypeDFT
}

// ParseContentType maps a short or long content type name to its tag.
func ParseContentType(s string) (ContentType, bool) {
	for c := ContentTypeIR; c <= ContentTypeDFT; c++ {
		if strings.EqualFold(s, c.ShortString()) || strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return ContentTypeUnknown, false
}

// Quantization is the stored numeric precision of raw samples.
type Quantization int

const (
	QuantizationUnknown Quantization = 0
	QuantizationInt16   Quantization = 1
	QuantizationInt24   Quantization = 2
	QuantizationFloat32 Quantization = 3
)

// String returns the lower-case name used in dataset documents.
func (q Quantization) String() string {
	switch q {
	case QuantizationInt16:
		return "int16"
	case QuantizationInt24:
		return "int24"
	case QuantizationFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// ParseQuantization maps a quantization name to its value.
func ParseQuantization(s string) (Quantization, bool) {
	for q := QuantizationInt16; q <= QuantizationFloat32; q++ {
		if strings.EqualFold(s, q.String()) {
			return q, true
		}
	}
	return QuantizationUnknown, false
}

// View selects the angular reference frame of a direction.
//
// DataView addresses the stored grid: alpha in [0, 360) degrees azimuth and
// beta in [0, 180] degrees, beta 0 being the south pole. ObjectView is the
// frame of the sounding object: phi in (-180, 180] degrees azimuth and theta
// in [-90, 90] degrees elevation. The two frames differ by the file
// orientation.
type View int

const (
	DataView   View = 0
	ObjectView View = 1
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case DataView:
		return "data"
	case ObjectView:
		return "object"
	default:
		return "unknown"
	}
}

// Valid reports whether v is a defined view.
func (v View) Valid() bool {
	return v == DataView || v == ObjectView
}

// MetadataType is the declared type of a metadata value.
type MetadataType int

const (
	MetadataBool   MetadataType = 0
	MetadataInt    MetadataType = 1
	MetadataFloat  MetadataType = 2
	MetadataString MetadataType = 3
)

// String returns the metadata type name.
func (t MetadataType) String() string {
	switch t {
	case MetadataBool:
		return "bool"
	case MetadataInt:
		return "int"
	case MetadataFloat:
		return "float"
	case MetadataString:
		return "string"
	default:
		return "unknown"
	}
}

// Orientation is a yaw-pitch-roll rotation in degrees.
type Orientation struct {
	Yaw   float32
	Pitch float32
	Roll  float32
}

// IsZero reports whether the orientation is the identity rotation.
func (o Orientation) IsZero() bool {
	return o.Yaw == 0 && o.Pitch == 0 && o.Roll == 0
}
