// Package buddy implements a space-efficient binary-buddy allocator.
//
// The entire state of the allocator - the split/full/free status of every
// node in the binary tree of power-of-two blocks - lives in a fixed-size
// bitfield sized only by the configured tree depth. There are no free
// lists and no per-allocation bookkeeping: the address of a live
// allocation is never stored anywhere, it is recomputed on free by
// descending the tree along the offset.
package buddy
