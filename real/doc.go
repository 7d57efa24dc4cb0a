// Package real provides the file-backed reader library.
//
// FileLibrary implements interfaces.ILibrary by loading dataset documents
// from disk. A document is YAML:
//
//	format_version: 170
//	content_type: IR
//	quantization: float32
//	channels: 2
//	channel_labels: [left, right]
//	alpha: {resolution: 30, start: 0, end: 330}
//	beta: {resolution: 90, start: 0, end: 180}
//	orientation: {yaw: 0, pitch: 0, roll: 0}
//	metadata:
//	  - {key: Description, type: string, value: KEMAR}
//	ir: {filter_length: 128, samplerate: 44100}
//	records:            # [record][channel][values]
//	  - [[...], [...]]
//
// Spectrum content carries a spectrum section with the support frequencies
// and DFT content a dft section with transform_size, symmetric and
// samplerate. Paired content stores its native interleaved layout in
// records, or two arrays per channel in split_records:
//
//	split_records:
//	  - [{magnitudes: [...], phases: [...]}]   # MPS
//	  - [{real: [...], imag: [...]}]           # DFT
//
// # Factory Integration
//
// The package is typically instantiated via the factory package:
//
//	f := factory.NewLibraryFactory()
//	lib := f.CreateLibrary()
//
// # Caching
//
// Decoded datasets are immutable and shared between readers. The cache key
// is the BLAKE2b-256 digest of the file contents, so a file rewritten in
// place is decoded again on the next open while readers holding the old
// contents keep them.
//
// # Thread Safety
//
// All methods on FileLibrary are safe for concurrent use. Readers it creates
// are not.
//
// # Testing Support
//
// File access goes through the FileSystem interface, which can be replaced
// using SetFileSystem:
//
//	type mapFS map[string][]byte
//
//	func (m mapFS) ReadFile(path string) ([]byte, error) {
//	    if b, ok := m[path]; ok {
//	        return b, nil
//	    }
//	    return nil, os.ErrNotExist
//	}
//
//	lib.SetFileSystem(mapFS{"a.daff": doc})
package real
