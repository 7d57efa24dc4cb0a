package daffbind

import (
	"fmt"
	"math"
	"sync"

	"github.com/opd-ai/daffbind/interfaces"
)

// Handle is an opaque token for one reader. The zero Handle is never issued.
//
// A handle encodes a slot index and the slot's generation; destroying a
// handle bumps the generation, so a stale handle never resolves again, even
// after its slot is reused.
type Handle uint64

// NullHandle is the handle value that never refers to a reader.
const NullHandle Handle = 0

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | (uint64(index) + 1))
}

func (h Handle) split() (index, gen uint32, ok bool) {
	low := uint32(h)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(h >> 32), true
}

// String formats the handle for log output.
func (h Handle) String() string {
	return fmt.Sprintf("%#x", uint64(h))
}

// entry is the state bound to a live handle.
type entry struct {
	reader interfaces.IReader

	// scratch holds native paired records while they are split into
	// caller buffers.
	scratch []float32
}

// pairScratch returns a scratch slice of n values.
func (e *entry) pairScratch(n int) []float32 {
	if cap(e.scratch) < n {
		e.scratch = make([]float32, n)
	}
	return e.scratch[:n]
}

type slot struct {
	gen   uint32
	live  bool
	entry *entry
}

// handleTable issues and resolves handles. All operations are O(1).
type handleTable struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32
	live  int
	max   int
}

func newHandleTable(max int) *handleTable {
	return &handleTable{max: max}
}

func (t *handleTable) insert(e *entry) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live >= t.max {
		return NullHandle, fmt.Errorf("%w: %d live handles", ErrHandleLimit, t.live)
	}

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if len(t.slots) >= math.MaxUint32 {
			return NullHandle, fmt.Errorf("%w: slot space exhausted", ErrHandleLimit)
		}
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}

	s := &t.slots[index]
	s.live = true
	s.entry = e
	t.live++
	return makeHandle(index, s.gen), nil
}

func (t *handleTable) lookup(h Handle) (*entry, bool) {
	index, gen, ok := h.split()
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[index]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return s.entry, true
}

// remove invalidates h and returns its entry. A slot whose generation would
// wrap is retired instead of being reused.
func (t *handleTable) remove(h Handle) (*entry, bool) {
	index, gen, ok := h.split()
	if !ok {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[index]
	if !s.live || s.gen != gen {
		return nil, false
	}

	e := s.entry
	s.entry = nil
	s.live = false
	t.live--
	if s.gen == math.MaxUint32 {
		return e, true
	}
	s.gen++
	t.free = append(t.free, index)
	return e, true
}

func (t *handleTable) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}
