package buddy

import (
	"log"
	"unsafe"
)

// Allocator manages a caller-supplied arena by subdividing it along a
// binary tree of power-of-two blocks. It is not internally synchronized:
// at most one Allocate or Free call may be in progress at a time against
// a given Allocator. Wrap it in Guarded for concurrent callers.
type Allocator struct {
	arena  []byte
	size   int64
	levels int
	bits   *bitfield

	inuse     int64
	unused    int64
	requested int64
}

// New creates an Allocator over arena, with levels levels of halving
// (levels >= 1; the root block covers the whole arena, the smallest
// block is len(arena)/2^(levels-1) bytes). arena should be a power-of-two
// size - the offset arithmetic is only exact when it is. The arena's
// backing memory is never read or written by the Allocator, but the
// slice itself is retained so the backing array can't be collected out
// from under a pointer Allocate already handed out.
func New(arena []byte, levels int) *Allocator {
	if levels < 1 {
		panic("buddy: levels must be >= 1")
	}
	if len(arena) == 0 {
		panic("buddy: arena must not be empty")
	}
	return &Allocator{
		arena:  arena,
		size:   int64(len(arena)),
		levels: levels,
		bits:   newBitfield(levels),
		unused: int64(len(arena)),
	}
}

// Close releases the Allocator's internal bookkeeping. The arena's
// backing memory remains the caller's responsibility.
func (a *Allocator) Close() {
	a.bits = nil
	a.arena = nil
}

// Allocate returns a pointer to a block of at least size bytes, or nil
// if no block is free. size <= 0 always fails.
func (a *Allocator) Allocate(size int) unsafe.Pointer {
	off, ok := a.allocRecurse(int64(size), 1, 1)
	if !ok {
		return nil
	}
	return unsafe.Pointer(&a.arena[off])
}

// Free releases the block previously returned by Allocate. A nil pointer
// or one outside the arena is a no-op with a logged diagnostic. A
// pointer inside the arena that does not correspond to a live
// allocation is silently ignored.
func (a *Allocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		log.Print("buddy: free of nil pointer")
		return
	}
	base := a.Base()
	p := uintptr(ptr)
	if p < base || p >= base+uintptr(a.size) {
		log.Print("buddy: free of pointer outside arena")
		return
	}
	a.freeRecurse(int64(p-base), 1, 1)
}

// Base returns the arena's base address.
func (a *Allocator) Base() uintptr { return uintptr(unsafe.Pointer(&a.arena[0])) }

// Size returns the arena's total size in bytes.
func (a *Allocator) Size() int64 { return a.size }

// InUse returns the sum of the rounded-up block sizes of currently full
// cells.
func (a *Allocator) InUse() int64 { return a.inuse }

// Unused returns Size() - InUse().
func (a *Allocator) Unused() int64 { return a.unused }

// Requested returns the sum of the raw request sizes honored so far.
func (a *Allocator) Requested() int64 { return a.requested }
