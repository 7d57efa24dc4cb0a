// Package main provides C API bindings for daffbind, so that C programs and
// other language runtimes can read directional audio (DAFF) files through
// a plain C ABI.
//
// # Build Instructions
//
// To build as a C shared library:
//
//	go build -buildmode=c-shared -o libdaffbind.so ./capi/
//
// This generates:
//   - libdaffbind.so: The shared library
//   - libdaffbind.h: Auto-generated C header with the function declarations
//     and the DAFF_CONTENT_TYPE, DAFF_VIEW and DAFF_METADATA_TYPE enums
//
// The reader library behind the API is chosen by the DAFF_USE_SIMULATION,
// DAFF_MAX_HANDLES, DAFF_DATASET_CACHE_SIZE and DAFF_LOG_LEVEL environment
// variables, read once on the first call.
//
// # C API Usage
//
//	#include "libdaffbind.h"
//
//	GoUint64 h = DAFF_Create();
//	if (!DAFF_OpenFile(h, "hrtf.daff")) {
//	    char msg[256];
//	    DAFF_GetLastError(msg, sizeof msg);
//	    fprintf(stderr, "%s\n", msg);
//	    DAFF_Destroy(h);
//	    return 1;
//	}
//
//	GoUint64 ir = DAFF_GetContentIR(h);
//	if (ir != 0) {
//	    int n = DAFF_IR_GetFilterLength(ir);
//	    float *taps = malloc(n * sizeof *taps);
//	    int rec = DAFF_IR_GetNearestNeighbour(ir, 30.0f, 0.0f);
//	    DAFF_IR_GetFilterCoeffs(ir, rec, 0, taps, n);
//	    free(taps);
//	}
//
//	DAFF_Destroy(h);
//
// # Return Conventions
//
//   - Handles: 0 is never a valid handle
//   - Counts, enums and record indices: -1 on failure
//   - Flags: 1 or 0, and -1 on failure where 0 is a valid answer
//   - Data accessors: the number of values written, or -1 with nothing written
//   - Strings: copied with a terminating NUL; the length, or -1 if the buffer
//     is too small
//
// Every failing call leaves a message for the calling thread, readable with
// DAFF_GetLastError; a succeeding call clears it. A thread that may exit
// with a pending message calls DAFF_ClearLastError first.
//
// # Thread Safety
//
// Distinct handles may be used from different threads at once. A single
// handle must not be used from two threads concurrently.
//
// # Files
//
//   - daff_c.go: binding setup, handle lifecycle and the error channel
//   - properties_c.go: property and metadata getters
//   - content_c.go: content getters, record data and nearest neighbour
//   - doc.go: This documentation file
package main
