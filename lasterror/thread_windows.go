//go:build windows

package lasterror

import "golang.org/x/sys/windows"

// ThreadID returns the id of the calling thread.
func ThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
