package dataset

import (
	"fmt"

	"github.com/opd-ai/daffbind/interfaces"
)

// Loader returns the decoded dataset stored at path.
type Loader func(path string) (*Dataset, error)

// Reader implements interfaces.IReader over datasets returned by a Loader.
type Reader struct {
	load Loader

	path    string
	ds      *Dataset
	props   *properties
	content interfaces.IContent
}

// NewReader creates a closed reader.
func NewReader(load Loader) *Reader {
	return &Reader{load: load}
}

// OpenFile loads and validates the dataset at path.
func (r *Reader) OpenFile(path string) error {
	if r.ds != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, r.path)
	}
	if r.load == nil {
		return fmt.Errorf("reader has no loader")
	}

	ds, err := r.load(path)
	if err != nil {
		return err
	}
	if ds == nil {
		return &FormatError{Path: path, Reason: "loader returned no dataset"}
	}
	grid, err := ds.Validate(path)
	if err != nil {
		return err
	}

	base := content{ds: ds, grid: grid}
	r.path = path
	r.ds = ds
	r.props = &properties{ds: ds, grid: grid}
	r.content = newContent(base)
	return nil
}

// CloseFile releases the open dataset.
func (r *Reader) CloseFile() {
	r.path = ""
	r.ds = nil
	r.props = nil
	r.content = nil
}

// IsFileOpened reports whether a dataset is open.
func (r *Reader) IsFileOpened() bool {
	return r.ds != nil
}

// Filename returns the path passed to OpenFile.
func (r *Reader) Filename() string {
	return r.path
}

// FileFormatVersion returns the format version of the open dataset.
func (r *Reader) FileFormatVersion() int {
	if r.ds == nil {
		return 0
	}
	return r.ds.FormatVersion
}

// Properties returns nil when no dataset is open.
func (r *Reader) Properties() interfaces.IProperties {
	if r.props == nil {
		return nil
	}
	return r.props
}

// Metadata returns nil when no dataset is open.
func (r *Reader) Metadata() interfaces.IMetadata {
	if r.ds == nil {
		return nil
	}
	if r.ds.Metadata == nil {
		return NewMetadata()
	}
	return r.ds.Metadata
}

// Content returns nil when no dataset is open.
func (r *Reader) Content() interfaces.IContent {
	return r.content
}

type properties struct {
	ds   *Dataset
	grid *Grid
}

func (p *properties) ContentType() interfaces.ContentType   { return p.ds.Properties.ContentType }
func (p *properties) Quantization() interfaces.Quantization { return p.ds.Properties.Quantization }
func (p *properties) NumberOfChannels() int                 { return p.ds.Properties.Channels }
func (p *properties) NumberOfRecords() int                  { return p.grid.Records() }

func (p *properties) ChannelLabel(channel int) string {
	labels := p.ds.Properties.ChannelLabels
	if channel < 0 || channel >= len(labels) {
		return ""
	}
	return labels[channel]
}

func (p *properties) AlphaPoints() int         { return p.grid.Alpha.Points }
func (p *properties) AlphaResolution() float32 { return p.grid.Alpha.Resolution }
func (p *properties) AlphaStart() float32      { return p.grid.Alpha.Start }
func (p *properties) AlphaEnd() float32        { return p.grid.Alpha.End }
func (p *properties) BetaPoints() int          { return p.grid.Beta.Points }
func (p *properties) BetaResolution() float32  { return p.grid.Beta.Resolution }
func (p *properties) BetaStart() float32       { return p.grid.Beta.Start }
func (p *properties) BetaEnd() float32         { return p.grid.Beta.End }
func (p *properties) CoversFullSphere() bool   { return p.grid.FullSphere() }

func (p *properties) Orientation() interfaces.Orientation {
	return p.ds.Properties.Orientation
}

func (p *properties) DefaultOrientation() interfaces.Orientation {
	return p.ds.Properties.DefaultOrientation
}
