// Package daffbind is an access layer over a directional audio (DAFF)
// reader library. It gives host programs a stable boundary for opening
// files and reading their properties, metadata and per-record content.
//
// # Handles
//
// Readers are addressed by opaque [Handle] values issued by [Binding.Create].
// A handle stays valid until [Binding.Destroy]; afterwards it never resolves
// again, even when its slot is reused.
//
//	b, err := daffbind.New(lib, nil)
//	if err != nil {
//	    return err
//	}
//	h, err := b.Create()
//	if err != nil {
//	    return err
//	}
//	defer b.Destroy(h)
//	if err := b.Open(h, "hrtf.daff"); err != nil {
//	    return err
//	}
//
// # Content
//
// An open file holds exactly one of five content types. The typed getters
// return (nil, false) when the file holds another type:
//
//	if ir, ok := b.ContentIR(h); ok {
//	    rec, _ := ir.NearestNeighbour(30, 0)
//	    taps := make([]float32, filterLength)
//	    err = ir.FilterCoeffs(rec, 0, taps)
//	}
//
// Data accessors write into caller slices. A slice shorter than one record
// channel fails with [ErrBufferTooSmall] and is left untouched; otherwise
// exactly one record channel is written.
//
// # Errors
//
// Every method returns an error. In addition the message of the last
// failure is kept per OS thread and returned by [Binding.LastError], for
// callers that cannot receive Go errors. Panics raised by the reader
// library are recovered and reported as [ErrLibraryFault].
package daffbind
