package buddy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/2f30/budalloc/buddy"
)

func TestNewAllocatorStartsAllFree(t *testing.T) {
	a := newAllocator(128, 4)
	snap := a.Inspect()
	require.Equal(t, int64(0), snap.InUse)
	require.Equal(t, int64(0), snap.Requested)
	require.Equal(t, int64(128), snap.Unused)
	for _, b := range snap.Bits {
		require.Equal(t, byte(0), b)
	}
}

func TestNewPanicsOnZeroLevels(t *testing.T) {
	require.Panics(t, func() {
		buddy.New(make([]byte, 128), 0)
	})
}

func TestNewPanicsOnEmptyArena(t *testing.T) {
	require.Panics(t, func() {
		buddy.New(nil, 4)
	})
}

func TestInspectBitfieldSizeMatchesLevels(t *testing.T) {
	a := newAllocator(128, 4)
	// L=4 -> 15 cells -> 30 bits -> 4 bytes.
	require.Len(t, a.Inspect().Bits, 4)
}
