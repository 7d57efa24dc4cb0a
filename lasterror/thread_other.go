//go:build !linux && !windows && !cgo

package lasterror

// ThreadID returns 0; without cgo there is no portable way to name the
// calling thread here, so every thread shares one slot.
func ThreadID() uint64 {
	return 0
}
