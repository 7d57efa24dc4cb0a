package daffbind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEncoding(t *testing.T) {
	tests := []struct {
		index, gen uint32
		want       Handle
	}{
		{0, 0, 0x1},
		{4, 0, 0x5},
		{0, 1, 0x1_0000_0001},
		{7, 3, 0x3_0000_0008},
	}

	for _, tt := range tests {
		h := makeHandle(tt.index, tt.gen)
		assert.Equal(t, tt.want, h)

		index, gen, ok := h.split()
		require.True(t, ok)
		assert.Equal(t, tt.index, index)
		assert.Equal(t, tt.gen, gen)
	}

	_, _, ok := NullHandle.split()
	assert.False(t, ok, "the null handle never splits into a slot")
}

func TestHandleTableReuse(t *testing.T) {
	table := newHandleTable(4)

	h1, err := table.insert(&entry{})
	require.NoError(t, err)
	e1, ok := table.lookup(h1)
	require.True(t, ok)

	removed, ok := table.remove(h1)
	require.True(t, ok)
	assert.Same(t, e1, removed)

	_, ok = table.remove(h1)
	assert.False(t, ok, "double removal")

	h2, err := table.insert(&entry{})
	require.NoError(t, err)
	i1, _, _ := h1.split()
	i2, _, _ := h2.split()
	assert.Equal(t, i1, i2, "freed slot is reused")
	assert.NotEqual(t, h1, h2, "reused slot carries a new generation")

	_, ok = table.lookup(h1)
	assert.False(t, ok, "stale handle resolves to nothing")
	_, ok = table.lookup(h2)
	assert.True(t, ok)
	assert.Equal(t, 1, table.count())
}

func TestHandleTableRetiresWrappedSlot(t *testing.T) {
	table := newHandleTable(4)

	_, err := table.insert(&entry{})
	require.NoError(t, err)
	table.slots[0].gen = math.MaxUint32
	h := makeHandle(0, math.MaxUint32)

	_, ok := table.remove(h)
	require.True(t, ok)
	assert.Empty(t, table.free, "slot at the last generation is not freed")

	next, err := table.insert(&entry{})
	require.NoError(t, err)
	index, gen, _ := next.split()
	assert.Equal(t, uint32(1), index)
	assert.Equal(t, uint32(0), gen)

	_, ok = table.lookup(makeHandle(0, 0))
	assert.False(t, ok, "retired slot never resolves after wrapping")
}

func TestHandleTableLimit(t *testing.T) {
	table := newHandleTable(2)

	_, err := table.insert(&entry{})
	require.NoError(t, err)
	h, err := table.insert(&entry{})
	require.NoError(t, err)

	_, err = table.insert(&entry{})
	assert.ErrorIs(t, err, ErrHandleLimit)

	table.remove(h)
	_, err = table.insert(&entry{})
	assert.NoError(t, err)
}

func TestHandleLookupRejectsForeignTokens(t *testing.T) {
	table := newHandleTable(4)
	h, err := table.insert(&entry{})
	require.NoError(t, err)

	for _, bogus := range []Handle{NullHandle, h + 1, makeHandle(0, 9), Handle(math.MaxUint64)} {
		_, ok := table.lookup(bogus)
		assert.False(t, ok, "handle %s", bogus)
	}
}
