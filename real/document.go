package real

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/daffbind/dataset"
	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/marshal"
)

// Document is the on-disk YAML form of a dataset.
type Document struct {
	FormatVersion      int            `yaml:"format_version"`
	ContentType        string         `yaml:"content_type"` // IR, MS, PS, MPS or DFT (long names accepted)
	Quantization       string         `yaml:"quantization"` // int16, int24 or float32
	Channels           int            `yaml:"channels"`
	ChannelLabels      []string       `yaml:"channel_labels,omitempty"`
	Alpha              AxisDoc        `yaml:"alpha"`
	Beta               AxisDoc        `yaml:"beta"`
	Orientation        OrientationDoc `yaml:"orientation"`
	DefaultOrientation OrientationDoc `yaml:"default_orientation"`
	Metadata           []MetadataDoc  `yaml:"metadata,omitempty"`
	IR                 *IRDoc         `yaml:"ir,omitempty"`
	Spectrum           *SpectrumDoc   `yaml:"spectrum,omitempty"`
	DFT                *DFTDoc        `yaml:"dft,omitempty"`
	Records            [][][]float32  `yaml:"records,omitempty"` // [record][channel][native values]
	SplitRecords       [][]SplitDoc   `yaml:"split_records,omitempty"`
}

// AxisDoc is one grid axis in degrees.
type AxisDoc struct {
	Resolution float32 `yaml:"resolution"`
	Start      float32 `yaml:"start"`
	End        float32 `yaml:"end"`
}

// OrientationDoc is a yaw-pitch-roll rotation in degrees.
type OrientationDoc struct {
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
	Roll  float32 `yaml:"roll"`
}

// MetadataDoc is one metadata entry. Value is decoded according to Type.
type MetadataDoc struct {
	Key   string    `yaml:"key"`
	Type  string    `yaml:"type"` // bool, int, float or string
	Value yaml.Node `yaml:"value"`
}

// SplitDoc is one record channel of paired content given as two arrays:
// magnitudes and phases for MPS, real and imaginary parts for DFT.
type SplitDoc struct {
	Magnitudes []float32 `yaml:"magnitudes,omitempty"`
	Phases     []float32 `yaml:"phases,omitempty"`
	Real       []float32 `yaml:"real,omitempty"`
	Imag       []float32 `yaml:"imag,omitempty"`
}

// native interleaves the pair belonging to ct.
func (s SplitDoc) native(ct interfaces.ContentType) ([]float32, error) {
	var a, b []float32
	switch ct {
	case interfaces.ContentTypeMPS:
		if s.Real != nil || s.Imag != nil {
			return nil, fmt.Errorf("real/imag given for MPS content")
		}
		a, b = s.Magnitudes, s.Phases
	case interfaces.ContentTypeDFT:
		if s.Magnitudes != nil || s.Phases != nil {
			return nil, fmt.Errorf("magnitudes/phases given for DFT content")
		}
		a, b = s.Real, s.Imag
	default:
		return nil, fmt.Errorf("%s content has no split form", ct.ShortString())
	}
	out := make([]float32, 2*len(a))
	if _, err := marshal.Interleave(out, a, b); err != nil {
		return nil, err
	}
	return out, nil
}

// IRDoc holds impulse response parameters.
type IRDoc struct {
	FilterLength int     `yaml:"filter_length"`
	Samplerate   float64 `yaml:"samplerate"`
}

// SpectrumDoc holds the support frequencies of MS, PS and MPS content.
type SpectrumDoc struct {
	Frequencies []float32 `yaml:"frequencies"`
}

// DFTDoc holds DFT spectrum parameters.
type DFTDoc struct {
	TransformSize int     `yaml:"transform_size"`
	Symmetric     bool    `yaml:"symmetric"`
	Samplerate    float64 `yaml:"samplerate"`
}

// DecodeDataset parses a YAML document into a dataset. Unknown fields are
// rejected. The result is not validated against its grid; readers do that
// on open.
func DecodeDataset(path string, data []byte) (*dataset.Dataset, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &dataset.FormatError{Path: path, Reason: err.Error()}
	}
	return doc.toDataset(path)
}

func (doc *Document) toDataset(path string) (*dataset.Dataset, error) {
	ct, ok := interfaces.ParseContentType(doc.ContentType)
	if !ok {
		return nil, &dataset.FormatError{Path: path, Reason: fmt.Sprintf("unknown content type %q", doc.ContentType)}
	}
	q, ok := interfaces.ParseQuantization(doc.Quantization)
	if !ok {
		return nil, &dataset.FormatError{Path: path, Reason: fmt.Sprintf("unknown quantization %q", doc.Quantization)}
	}

	ds := &dataset.Dataset{
		FormatVersion: doc.FormatVersion,
		Properties: dataset.Properties{
			ContentType:        ct,
			Quantization:       q,
			Channels:           doc.Channels,
			ChannelLabels:      doc.ChannelLabels,
			AlphaResolution:    doc.Alpha.Resolution,
			AlphaStart:         doc.Alpha.Start,
			AlphaEnd:           doc.Alpha.End,
			BetaResolution:     doc.Beta.Resolution,
			BetaStart:          doc.Beta.Start,
			BetaEnd:            doc.Beta.End,
			Orientation:        doc.Orientation.orientation(),
			DefaultOrientation: doc.DefaultOrientation.orientation(),
		},
		Metadata: dataset.NewMetadata(),
	}

	for _, m := range doc.Metadata {
		if err := setMetadata(ds.Metadata, m); err != nil {
			return nil, &dataset.FormatError{Path: path, Reason: err.Error()}
		}
	}

	switch ct {
	case interfaces.ContentTypeIR:
		if doc.IR == nil {
			return nil, &dataset.FormatError{Path: path, Reason: "IR content without ir section"}
		}
		ds.Params.FilterLength = doc.IR.FilterLength
		ds.Params.Samplerate = doc.IR.Samplerate
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		if doc.Spectrum == nil {
			return nil, &dataset.FormatError{Path: path, Reason: ct.ShortString() + " content without spectrum section"}
		}
		ds.Params.Frequencies = doc.Spectrum.Frequencies
	case interfaces.ContentTypeDFT:
		if doc.DFT == nil {
			return nil, &dataset.FormatError{Path: path, Reason: "DFT content without dft section"}
		}
		ds.Params.TransformSize = doc.DFT.TransformSize
		ds.Params.Symmetric = doc.DFT.Symmetric
		ds.Params.Samplerate = doc.DFT.Samplerate
	}

	if len(doc.SplitRecords) > 0 {
		return ds, doc.splitRecords(ds, path)
	}

	ds.Records = make([][]float32, 0, len(doc.Records)*doc.Channels)
	for r, channels := range doc.Records {
		if len(channels) != doc.Channels {
			return nil, &dataset.FormatError{Path: path, Reason: fmt.Sprintf("record %d has %d channels, want %d", r, len(channels), doc.Channels)}
		}
		ds.Records = append(ds.Records, channels...)
	}
	return ds, nil
}

func (doc *Document) splitRecords(ds *dataset.Dataset, path string) error {
	if len(doc.Records) > 0 {
		return &dataset.FormatError{Path: path, Reason: "both records and split_records given"}
	}
	ct := ds.Properties.ContentType
	ds.Records = make([][]float32, 0, len(doc.SplitRecords)*doc.Channels)
	for r, channels := range doc.SplitRecords {
		if len(channels) != doc.Channels {
			return &dataset.FormatError{Path: path, Reason: fmt.Sprintf("record %d has %d channels, want %d", r, len(channels), doc.Channels)}
		}
		for c, ch := range channels {
			rec, err := ch.native(ct)
			if err != nil {
				return &dataset.FormatError{Path: path, Reason: fmt.Sprintf("record %d channel %d: %v", r, c, err)}
			}
			ds.Records = append(ds.Records, rec)
		}
	}
	return nil
}

func (o OrientationDoc) orientation() interfaces.Orientation {
	return interfaces.Orientation{Yaw: o.Yaw, Pitch: o.Pitch, Roll: o.Roll}
}

func setMetadata(md *dataset.Metadata, m MetadataDoc) error {
	var err error
	switch m.Type {
	case "bool":
		var v bool
		if err = m.Value.Decode(&v); err == nil {
			err = md.Set(m.Key, interfaces.MetadataBool, v)
		}
	case "int":
		var v int
		if err = m.Value.Decode(&v); err == nil {
			err = md.Set(m.Key, interfaces.MetadataInt, v)
		}
	case "float":
		var v float64
		if err = m.Value.Decode(&v); err == nil {
			err = md.Set(m.Key, interfaces.MetadataFloat, v)
		}
	case "string":
		var v string
		if err = m.Value.Decode(&v); err == nil {
			err = md.Set(m.Key, interfaces.MetadataString, v)
		}
	default:
		return fmt.Errorf("metadata key %q: unknown type %q", m.Key, m.Type)
	}
	if err != nil {
		return fmt.Errorf("metadata key %q: %w", m.Key, err)
	}
	return nil
}

// EncodeDataset renders ds as a YAML document.
func EncodeDataset(ds *dataset.Dataset) ([]byte, error) {
	p := ds.Properties
	doc := Document{
		FormatVersion:      ds.FormatVersion,
		ContentType:        p.ContentType.ShortString(),
		Quantization:       p.Quantization.String(),
		Channels:           p.Channels,
		ChannelLabels:      p.ChannelLabels,
		Alpha:              AxisDoc{Resolution: p.AlphaResolution, Start: p.AlphaStart, End: p.AlphaEnd},
		Beta:               AxisDoc{Resolution: p.BetaResolution, Start: p.BetaStart, End: p.BetaEnd},
		Orientation:        OrientationDoc{Yaw: p.Orientation.Yaw, Pitch: p.Orientation.Pitch, Roll: p.Orientation.Roll},
		DefaultOrientation: OrientationDoc{Yaw: p.DefaultOrientation.Yaw, Pitch: p.DefaultOrientation.Pitch, Roll: p.DefaultOrientation.Roll},
	}

	for _, e := range ds.Metadata.Entries() {
		var node yaml.Node
		if err := node.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", e.Key, err)
		}
		doc.Metadata = append(doc.Metadata, MetadataDoc{Key: e.Key, Type: e.Type.String(), Value: node})
	}

	switch p.ContentType {
	case interfaces.ContentTypeIR:
		doc.IR = &IRDoc{FilterLength: ds.Params.FilterLength, Samplerate: ds.Params.Samplerate}
	case interfaces.ContentTypeMS, interfaces.ContentTypePS, interfaces.ContentTypeMPS:
		doc.Spectrum = &SpectrumDoc{Frequencies: ds.Params.Frequencies}
	case interfaces.ContentTypeDFT:
		doc.DFT = &DFTDoc{TransformSize: ds.Params.TransformSize, Symmetric: ds.Params.Symmetric, Samplerate: ds.Params.Samplerate}
	}

	if p.Channels > 0 {
		for i := 0; i+p.Channels <= len(ds.Records); i += p.Channels {
			doc.Records = append(doc.Records, ds.Records[i:i+p.Channels])
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
