package lob

// Arena is a fixed-capacity pool of homogeneous records addressed by a
// narrow uint32 handle, with O(1) allocate and free via a circular
// free-slot queue. Adapted from the quantcup engine's bookEntries arena
// (engine.go) and from the itch-order-book fixed_array_allocator: a
// freed slot queued in the FIFO free queue is reissued first, and only
// when the queue is empty does allocation bump the high-water mark.
// FIFO order spreads reuse across the arena instead of thrashing the
// same few slots.
//
// Double-free is a caller bug and is not detected, matching the source.
type Arena[T any] struct {
	records []T
	cap     uint32
	size    uint32 // high-water mark: slots [0, size) have ever been allocated

	free  []uint32 // circular buffer of length cap
	head  uint32   // next free slot to hand out
	tail  uint32   // next free slot to write
	count uint32   // number of entries currently queued in free
}

// NewArena constructs an arena of the given power-of-two capacity.
func NewArena[T any](capacity uint32) *Arena[T] {
	if !isPowerOfTwo(uint64(capacity)) {
		panicViolation("arena", "capacity must be a power of two")
	}
	return &Arena[T]{
		records: make([]T, capacity),
		free:    make([]uint32, capacity),
		cap:     capacity,
	}
}

// Alloc returns a fresh or recycled slot index. Panics with a
// ViolationError if the arena is exhausted.
func (a *Arena[T]) Alloc() uint32 {
	if a.count > 0 {
		idx := a.free[a.head%a.cap]
		a.head++
		a.count--
		return idx
	}
	if a.size >= a.cap {
		panicViolation("arena.alloc", "arena exhausted")
	}
	idx := a.size
	a.size++
	return idx
}

// Free returns idx to the tail of the free queue.
func (a *Arena[T]) Free(idx uint32) {
	a.free[a.tail%a.cap] = idx
	a.tail++
	a.count++
}

// Get returns a pointer to the record at idx for in-place mutation.
func (a *Arena[T]) Get(idx uint32) *T {
	return &a.records[idx]
}

// Len reports the current high-water mark (not the number of live
// records, which the arena does not track directly).
func (a *Arena[T]) Len() uint32 {
	return a.size
}

// Cap reports the arena's fixed capacity.
func (a *Arena[T]) Cap() uint32 {
	return a.cap
}

// FreeCount reports how many slots are currently queued for reuse.
func (a *Arena[T]) FreeCount() uint32 {
	return a.count
}
