// Package factory creates reader library implementations for the binding.
//
// The factory abstracts the choice between the simulated library (for
// testing) and the file-backed library, so consuming code never names a
// concrete implementation.
//
// # Configuration
//
// The factory supports configuration via environment variables:
//   - DAFF_USE_SIMULATION: "true" or "false" to enable simulation mode
//   - DAFF_MAX_HANDLES: maximum number of live handles
//   - DAFF_DATASET_CACHE_SIZE: decoded datasets kept for sharing, 0 disables
//   - DAFF_LOG_LEVEL: a logrus level name
//
// Unparseable or out of range values are logged and ignored.
//
// # Usage
//
//	f := factory.NewLibraryFactory()
//	lib, err := f.CreateLibrary()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b, err := daffbind.New(lib, daffbind.OptionsFromConfig(f.GetCurrentConfig()))
//
// # Testing Support
//
// CreateSimulationForTesting returns a SimulatedLibrary directly so tests
// can register datasets on it:
//
//	lib := factory.NewLibraryFactory().CreateSimulationForTesting()
//	lib.Register("a.daff", testing.Synthesize(spec))
package factory
