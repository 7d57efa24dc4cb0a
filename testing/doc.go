// Package testing provides a simulated reader library for deterministic
// testing of the binding layer.
//
// # Overview
//
// SimulatedLibrary serves datasets registered in memory under a path. No
// file is ever touched, so tests run fast and reproducibly.
//
// # Simulation vs Real Implementation
//
// The binding supports two reader libraries:
//
//   - Simulation (this package): datasets are registered in memory and
//     every open attempt is logged for verification.
//
//   - Real (real package): datasets are loaded from documents on disk.
//
// Both implementations conform to the interfaces.ILibrary interface,
// allowing switching via the factory package.
//
// # Usage
//
//	lib := testing.NewSimulatedLibrary(config)
//	lib.Register("hrtf.daff", testing.Synthesize(testing.SynthSpec{
//	    ContentType:     interfaces.ContentTypeIR,
//	    Channels:        2,
//	    AlphaResolution: 30,
//	    BetaResolution:  30,
//	    Elements:        16,
//	}))
//
//	b, _ := daffbind.New(lib, nil)
//	h, _ := b.Create()
//	err := b.Open(h, "hrtf.daff")
//
// # Synthesized Data
//
// Synthesize fills every record with SampleValue(record, channel, i), so a
// test can predict each value a data accessor returns.
//
// # Thread Safety
//
// All methods on SimulatedLibrary are safe for concurrent use from
// multiple goroutines. Readers it creates are not.
package testing
