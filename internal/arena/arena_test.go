package arena

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestAllocateBumpsWithinBlock(t *testing.T) {
	Reserve(4 * pageSize)
	a := New()

	xs := Allocate[int32](a, 4)
	qt.Assert(t, qt.Equals(len(xs), 4))
	xs[0], xs[3] = 7, 11
	qt.Assert(t, qt.Equals(xs[0], int32(7)))
	qt.Assert(t, qt.Equals(xs[3], int32(11)))
}

func TestGrowCrossesBlocks(t *testing.T) {
	Reserve(4 * pageSize)
	a := New()

	// Each request is exactly one page; allocBytes asks grow for one byte
	// more than that, so every grow takes two pages and five requests
	// force more than one grow.
	for i := 0; i < 5; i++ {
		xs := Allocate[byte](a, pageSize)
		qt.Assert(t, qt.Equals(len(xs), pageSize))
	}
	qt.Assert(t, qt.IsTrue(a.ownedPages != nil))
}

func TestFreeCoalescesBackIntoFreeList(t *testing.T) {
	Reserve(4 * pageSize)
	a := New()
	_ = Allocate[byte](a, 3*pageSize)

	before := 0
	for b := freeListHead; b != nil; b = b.next {
		before++
	}

	a.Free()

	after := 0
	total := 0
	for b := freeListHead; b != nil; b = b.next {
		after++
		total += b.size()
	}
	// Everything returns to a single coalesced block covering the
	// whole reservation.
	qt.Assert(t, qt.Equals(after, 1))
	qt.Assert(t, qt.Equals(total, len(reservation)))
	_ = before
}

func TestDescriptorsAreRecycled(t *testing.T) {
	Reserve(8 * pageSize)
	a := New()
	_ = Allocate[byte](a, pageSize)
	_ = Allocate[byte](a, 2*pageSize)
	a.Free()
	recycled := descriptorPool

	b := New()
	_ = Allocate[byte](b, pageSize)
	qt.Assert(t, qt.IsTrue(recycled != nil && b.ownedPages == recycled))
}
