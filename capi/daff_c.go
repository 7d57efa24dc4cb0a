package main

/*
#include <stdint.h>

enum DAFF_CONTENT_TYPE {
	DAFF_IMPULSE_RESPONSE = 1,
	DAFF_MAGNITUDE_SPECTRUM = 2,
	DAFF_PHASE_SPECTRUM = 3,
	DAFF_MAGNITUDE_PHASE_SPECTRUM = 4,
	DAFF_DFT_SPECTRUM = 5
};

enum DAFF_VIEW {
	DAFF_DATA_VIEW = 0,
	DAFF_OBJECT_VIEW = 1
};

enum DAFF_METADATA_TYPE {
	DAFF_METADATA_BOOL = 0,
	DAFF_METADATA_INT = 1,
	DAFF_METADATA_FLOAT = 2,
	DAFF_METADATA_STRING = 3
};
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/daffbind"
	"github.com/opd-ai/daffbind/factory"
	"github.com/opd-ai/daffbind/interfaces"
	"github.com/opd-ai/daffbind/limits"
)

// This is the main package required for building as c-shared
// It provides C-compatible wrappers for the daffbind access layer

func main() {} // Required for c-shared build mode

// The binding is created on first use from the DAFF_* environment settings.
var (
	bindingOnce sync.Once
	binding     *daffbind.Binding
	bindingErr  error
)

// maxCStringLength bounds the scan for the terminating NUL of input strings.
const maxCStringLength = 1 << 16

func getBinding() (*daffbind.Binding, error) {
	bindingOnce.Do(func() {
		f := factory.NewLibraryFactory()
		cfg := f.GetCurrentConfig()
		if err := factory.ConfigureLogging(cfg); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "getBinding",
				"error":    err.Error(),
			}).Warn("Invalid log level, keeping default")
		}

		lib, err := f.CreateLibrary()
		if err != nil {
			bindingErr = fmt.Errorf("%w: %w", daffbind.ErrCreateFailure, err)
			return
		}
		binding, bindingErr = daffbind.New(lib, daffbind.OptionsFromConfig(cfg))
		if bindingErr != nil {
			logrus.WithFields(logrus.Fields{
				"function": "getBinding",
				"error":    bindingErr.Error(),
			}).Error("Failed to create binding")
		}
	})
	return binding, bindingErr
}

// installBinding replaces the lazily created binding.
func installBinding(b *daffbind.Binding) {
	bindingOnce.Do(func() {})
	binding, bindingErr = b, nil
}

// goString copies a NUL terminated C string.
func goString(p *byte) (string, error) {
	if p == nil {
		return "", fmt.Errorf("null string")
	}
	for n := 0; n < maxCStringLength; n++ {
		if *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) == 0 {
			return string(unsafe.Slice(p, n)), nil
		}
	}
	return "", fmt.Errorf("string not terminated within %d bytes", maxCStringLength)
}

// floats views a caller array of capacity values. A null array or a
// non-positive capacity yields an empty slice.
func floats(p *float32, capacity int32) []float32 {
	if p == nil || capacity <= 0 {
		return nil
	}
	return unsafe.Slice(p, int(capacity))
}

// writeString copies s and a terminating NUL into dst. It returns len(s),
// or -1 without writing if dst cannot hold the string and its terminator.
func writeString(b *daffbind.Binding, s string, dst *byte, capacity int32) int32 {
	if dst == nil {
		capacity = 0
	}
	if err := limits.ValidateOutputCapacity(int(capacity), len(s)+1); err != nil {
		b.ReportError(err)
		return -1
	}
	out := unsafe.Slice(dst, len(s)+1)
	copy(out, s)
	out[len(s)] = 0
	return toCInt(len(s))
}

func boolInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// withBinding resolves the binding and returns fail if it is unavailable.
func withBinding[T any](fail T, fn func(b *daffbind.Binding) T) T {
	b, err := getBinding()
	if err != nil {
		return fail
	}
	return fn(b)
}

// intResult converts the outcome of a count getter to the C convention:
// the value, or -1 on failure.
func intResult(n int, err error) int32 {
	if err != nil {
		return -1
	}
	return toCInt(n)
}

func floatResult[T float32 | float64](v T, err error) T {
	if err != nil {
		return -1
	}
	return v
}

//export DAFF_Create
func DAFF_Create() uint64 {
	return withBinding(0, func(b *daffbind.Binding) uint64 {
		h, err := b.Create()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "DAFF_Create",
				"error":    err.Error(),
			}).Error("Failed to create reader handle")
			return 0
		}
		return uint64(h)
	})
}

//export DAFF_Destroy
func DAFF_Destroy(handle uint64) {
	withBinding(struct{}{}, func(b *daffbind.Binding) struct{} {
		b.Destroy(daffbind.Handle(handle))
		return struct{}{}
	})
}

// DAFF_OpenFile opens a file on a handle and returns 1 on success, 0 on
// failure.
//
//export DAFF_OpenFile
func DAFF_OpenFile(handle uint64, path *byte) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		p, err := goString(path)
		if err != nil {
			b.ReportError(fmt.Errorf("%w: path: %w", daffbind.ErrOpenFailure, err))
			return 0
		}
		return boolInt(b.Open(daffbind.Handle(handle), p) == nil)
	})
}

//export DAFF_Close
func DAFF_Close(handle uint64) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		return boolInt(b.Close(daffbind.Handle(handle)) == nil)
	})
}

//export DAFF_IsValid
func DAFF_IsValid(handle uint64) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		return boolInt(b.IsValid(daffbind.Handle(handle)))
	})
}

//export DAFF_IsFileOpened
func DAFF_IsFileOpened(handle uint64) int32 {
	return withBinding(0, func(b *daffbind.Binding) int32 {
		return boolInt(b.IsOpen(daffbind.Handle(handle)))
	})
}

// DAFF_GetLastError copies the last error message of the calling thread
// into dst. It returns the message length, 0 if the last call succeeded, or
// -1 if dst is too small. The pending message is left in place.
//
//export DAFF_GetLastError
func DAFF_GetLastError(dst *byte, capacity int32) int32 {
	msg := ""
	if b, err := getBinding(); err != nil {
		msg = err.Error()
	} else {
		msg = b.LastError()
	}
	if msg == "" {
		if dst != nil && capacity > 0 {
			*dst = 0
		}
		return 0
	}
	if dst == nil || int(capacity) < len(msg)+1 {
		return -1
	}
	out := unsafe.Slice(dst, len(msg)+1)
	copy(out, msg)
	out[len(msg)] = 0
	return toCInt(len(msg))
}

// DAFF_GetLastErrorLength returns the length of the pending message, so
// callers can size the buffer for DAFF_GetLastError.
//
//export DAFF_GetLastErrorLength
func DAFF_GetLastErrorLength() int32 {
	b, err := getBinding()
	if err != nil {
		return toCInt(len(err.Error()))
	}
	return toCInt(len(b.LastError()))
}

// DAFF_ClearLastError drops the pending message of the calling thread.
// Threads should call it before they exit.
//
//export DAFF_ClearLastError
func DAFF_ClearLastError() {
	if b, err := getBinding(); err == nil {
		b.ReportError(nil)
	}
}

// viewOf maps a DAFF_VIEW value.
func viewOf(v int32) (interfaces.View, bool) {
	switch v {
	case C.DAFF_DATA_VIEW:
		return interfaces.DataView, true
	case C.DAFF_OBJECT_VIEW:
		return interfaces.ObjectView, true
	default:
		return 0, false
	}
}
