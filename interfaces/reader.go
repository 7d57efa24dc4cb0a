package interfaces

// ILibrary is the entry point of the external reader library. It creates
// reader instances; it never opens files itself.
type ILibrary interface {
	// NewReader creates a closed reader instance
	NewReader() (IReader, error)

	// IsSimulation returns true if this is a simulation implementation
	IsSimulation() bool
}

// IReader owns the decoded state of at most one open file.
//
// Implementations are not required to be safe for concurrent use; the
// binding layer never calls one reader from two goroutines at once unless
// its own caller does.
type IReader interface {
	// OpenFile parses the file at path. It fails if a file is already open.
	OpenFile(path string) error

	// CloseFile releases the open file. It is a no-op on a closed reader.
	CloseFile()

	// IsFileOpened reports whether a file is open
	IsFileOpened() bool

	// Filename returns the path of the open file
	Filename() string

	// FileFormatVersion returns the container version of the open file
	FileFormatVersion() int

	// Properties returns the immutable properties of the open file
	Properties() IProperties

	// Metadata returns the metadata table of the open file
	Metadata() IMetadata

	// Content returns the active content object of the open file
	Content() IContent
}

// IProperties exposes the static properties of an open file.
type IProperties interface {
	ContentType() ContentType
	Quantization() Quantization
	NumberOfChannels() int
	NumberOfRecords() int
	ChannelLabel(channel int) string

	AlphaPoints() int
	AlphaResolution() float32
	AlphaStart() float32
	AlphaEnd() float32

	BetaPoints() int
	BetaResolution() float32
	BetaStart() float32
	BetaEnd() float32

	Orientation() Orientation
	DefaultOrientation() Orientation
	CoversFullSphere() bool
}

// IMetadata is an ordered key/value table with typed values.
type IMetadata interface {
	HasKey(key string) bool
	Keys() []string
	KeyType(key string) (MetadataType, bool)
	Bool(key string) (bool, error)
	Int(key string) (int, error)
	Float(key string) (float64, error)
	String(key string) (string, error)
}

// IContent is the part every content shape shares: the record grid.
type IContent interface {
	// ContentType returns the tag of the concrete shape
	ContentType() ContentType

	// NearestNeighbour resolves a direction given in view to the closest
	// record. outOfBounds is set when the direction lies outside the grid.
	NearestNeighbour(view View, angle1, angle2 float32) (recordIndex int, outOfBounds bool)

	// RecordCoords returns the stored direction of a record in view
	RecordCoords(recordIndex int, view View) (angle1, angle2 float32, err error)
}

// IContentIR is impulse response content.
//
// The data accessor writes FilterLength values into dst and does not check
// the length of dst.
type IContentIR interface {
	IContent
	FilterLength() int
	Samplerate() float64
	FilterCoeffs(recordIndex, channel int, dst []float32) error
}

// IContentMS is magnitude spectrum content.
type IContentMS interface {
	IContent
	NumFrequencies() int
	Frequencies() []float32
	Magnitudes(recordIndex, channel int, dst []float32) error
}

// IContentPS is phase spectrum content.
type IContentPS interface {
	IContent
	NumFrequencies() int
	Frequencies() []float32
	Phases(recordIndex, channel int, dst []float32) error
}

// IContentMPS is magnitude-phase spectrum content. CoefficientsMP writes
// 2*NumFrequencies values, magnitudes at even and phases at odd positions.
type IContentMPS interface {
	IContent
	NumFrequencies() int
	Frequencies() []float32
	CoefficientsMP(recordIndex, channel int, dst []float32) error
}

// IContentDFT is complex DFT spectrum content. DFTCoeffs writes
// 2*NumDFTCoeffs values, real parts at even and imaginary parts at odd
// positions. Symmetric spectra store only the non-redundant half.
type IContentDFT interface {
	IContent
	NumDFTCoeffs() int
	TransformSize() int
	IsSymmetric() bool
	Samplerate() float64
	FrequencyBandwidth() float64
	DFTCoeffs(recordIndex, channel int, dst []float32) error
}
