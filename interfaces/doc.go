// Package interfaces defines the contract between the binding layer and the
// external directional audio reader library.
//
// The binding never decodes files itself. It drives an [ILibrary], which
// hands out [IReader] instances; an open reader exposes [IProperties],
// [IMetadata] and exactly one content object. The content object is one of
// five mutually exclusive shapes:
//
//   - [IContentIR]: impulse responses, FilterLength samples per record and channel
//   - [IContentMS]: magnitude spectra, NumFrequencies values
//   - [IContentPS]: phase spectra, NumFrequencies values
//   - [IContentMPS]: magnitude-phase spectra, 2*NumFrequencies interleaved values
//   - [IContentDFT]: complex spectra, 2*NumDFTCoeffs interleaved values
//
// Which shape is active is given by IProperties.ContentType. Callers must
// compare that tag before narrowing an [IContent] to a concrete shape:
//
//	if reader.Properties().ContentType() != interfaces.ContentTypeIR {
//	    return nil, false
//	}
//	ir, ok := reader.Content().(interfaces.IContentIR)
//
// # Data Accessors
//
// Per-record accessors write into caller-provided slices and do not check
// their length, mirroring the native library. Bounds of record index and
// channel are checked and reported as errors.
//
// # Implementation Selection
//
// The factory package creates implementations based on [BindingConfig]:
//   - UseSimulation=true: SimulatedLibrary from the testing package
//   - UseSimulation=false: FileLibrary from the real package
//
// # Thread Safety
//
// Library implementations must be safe for concurrent use. Reader instances
// need not be; distinct readers must be independent.
package interfaces
