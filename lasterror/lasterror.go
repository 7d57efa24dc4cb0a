// Package lasterror provides a thread-scoped last-error slot.
//
// Each OS thread owns one pending message. A fallible operation either sets
// the slot of the calling thread (failure) or clears it (success), and the
// message stays readable on that thread until the next fallible operation
// there. Threads never observe each other's messages.
//
// Goroutines migrate between threads. Code calling from Go must either use
// the returned error values directly or pin itself with runtime.LockOSThread
// around a call and the matching Get. Calls arriving through cgo from a
// foreign thread are pinned for their whole duration.
//
// A slot lives until a later successful operation or Clear on the same
// thread. The channel cannot see threads exit, so a thread that ends with a
// pending message leaves its slot behind, and a new thread that is given the
// same id by the operating system reads that message until its own first
// fallible call. Threads that fail and then exit should call Clear first.
package lasterror

import (
	"sync"
)

// Channel is a set of per-thread error slots.
type Channel struct {
	mu    sync.RWMutex
	slots map[uint64]string
}

// New creates an empty channel.
func New() *Channel {
	return &Channel{slots: make(map[uint64]string)}
}

// Set records err as the pending message of the calling thread. A nil err
// clears the slot.
func (c *Channel) Set(err error) {
	if err == nil {
		c.Clear()
		return
	}
	c.SetMessage(err.Error())
}

// SetMessage records msg as the pending message of the calling thread.
func (c *Channel) SetMessage(msg string) {
	tid := ThreadID()
	c.mu.Lock()
	c.slots[tid] = msg
	c.mu.Unlock()
}

// Clear empties the slot of the calling thread.
func (c *Channel) Clear() {
	tid := ThreadID()
	c.mu.RLock()
	_, ok := c.slots[tid]
	c.mu.RUnlock()
	if !ok {
		return
	}
	c.mu.Lock()
	delete(c.slots, tid)
	c.mu.Unlock()
}

// Get returns the pending message of the calling thread, or "" if the last
// fallible operation on this thread succeeded.
func (c *Channel) Get() string {
	tid := ThreadID()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slots[tid]
}

// Pending returns the number of threads holding a message.
func (c *Channel) Pending() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}
