//go:build !linux && !windows && cgo

package lasterror

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t current_thread_id(void) {
	return (uint64_t)(uintptr_t)pthread_self();
}
*/
import "C"

// ThreadID returns the pthread id of the calling thread.
func ThreadID() uint64 {
	return uint64(C.current_thread_id())
}
