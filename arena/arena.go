// Package arena provisions the flat byte slice that a buddy.Allocator
// carves up. It owns exactly one anonymous mmap mapping per Arena and
// rounds the requested size up to the next power of two, since the
// buddy allocator's offset arithmetic is only exact over a power-of-two
// extent.
package arena

import (
	"fmt"
	"math/bits"

	"golang.org/x/sys/unix"
)

// Arena is a single mmap'd region of anonymous memory.
type Arena struct {
	mem []byte
}

// New maps a zeroed region of at least size bytes, rounded up to the
// next power of two, and returns an Arena owning it. size must be > 0.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: size must be positive, got %d", size)
	}
	rounded := nextPow2(size)
	mem, err := unix.Mmap(-1, 0, rounded, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap %d bytes: %w", rounded, err)
	}
	return &Arena{mem: mem}, nil
}

// Close unmaps the arena's backing memory. Any pointer a buddy.Allocator
// handed out into this arena is invalid after Close returns.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}
	err := unix.Munmap(a.mem)
	a.mem = nil
	return err
}

// Bytes returns the arena's backing slice. Its address is stable for the
// lifetime of the Arena: it is never grown, shrunk, or moved.
func (a *Arena) Bytes() []byte { return a.mem }

// Len returns the arena's size in bytes, which is always a power of two.
func (a *Arena) Len() int { return len(a.mem) }

func nextPow2(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
