package buddy

import (
	"sync"
	"unsafe"
)

// Guarded wraps an Allocator with a mutex so it can be shared across
// goroutines. The Allocator itself stays single-owner; this is the
// opt-in caller-side synchronization spec'd for multi-goroutine use.
type Guarded struct {
	sync.Mutex
	Alloc *Allocator
}

// NewGuarded wraps a.
func NewGuarded(a *Allocator) *Guarded {
	return &Guarded{Alloc: a}
}

func (g *Guarded) Allocate(size int) unsafe.Pointer {
	g.Lock()
	defer g.Unlock()
	return g.Alloc.Allocate(size)
}

func (g *Guarded) Free(ptr unsafe.Pointer) {
	g.Lock()
	defer g.Unlock()
	g.Alloc.Free(ptr)
}

func (g *Guarded) Inspect() Snapshot {
	g.Lock()
	defer g.Unlock()
	return g.Alloc.Inspect()
}
