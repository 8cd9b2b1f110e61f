package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocBumpsHighWaterMark(t *testing.T) {
	a := NewArena[int](4)
	require.EqualValues(t, 0, a.Alloc())
	require.EqualValues(t, 1, a.Alloc())
	assert.EqualValues(t, 2, a.Len())
}

func TestArenaFreeIsFIFO(t *testing.T) {
	a := NewArena[int](4)
	s0 := a.Alloc()
	s1 := a.Alloc()
	a.Free(s0)
	a.Free(s1)

	// FIFO: s0 was freed first, so it is reissued before s1.
	assert.Equal(t, s0, a.Alloc())
	assert.Equal(t, s1, a.Alloc())
}

func TestArenaGetMutatesInPlace(t *testing.T) {
	a := NewArena[int](2)
	idx := a.Alloc()
	*a.Get(idx) = 42
	assert.Equal(t, 42, *a.Get(idx))
}

func TestArenaExhaustionPanics(t *testing.T) {
	a := NewArena[int](2)
	a.Alloc()
	a.Alloc()
	assert.PanicsWithError(t, "lob: arena.alloc: arena exhausted", func() {
		a.Alloc()
	})
}

func TestArenaRecycledSlotPrecedesFreshAllocation(t *testing.T) {
	a := NewArena[int](2)
	s0 := a.Alloc()
	a.Free(s0)
	s1 := a.Alloc() // recycled, should equal s0
	s2 := a.Alloc() // fresh, bumps high-water mark
	assert.Equal(t, s0, s1)
	assert.EqualValues(t, 1, s2)
}

func TestNewArenaRequiresPowerOfTwoCapacity(t *testing.T) {
	assert.Panics(t, func() {
		NewArena[int](3)
	})
}
