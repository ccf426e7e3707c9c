// Package arena implements the page-backed bump allocator that underlies
// every other data structure in the front end: tokens, AST nodes, scopes,
// and types are all allocated from an Arena and live until the Arena is
// freed as a unit.
//
// The design mirrors a C arena allocator built directly on mmap/mprotect:
// a process-wide reservation is split into page-aligned blocks, a global
// freelist of released blocks is coalesced on free, and a separate
// freelist recycles PageBlock descriptors so that bookkeeping allocations
// never recurse into the arena they describe. Go's bounds-checked slices
// and garbage collector already provide the memory-safety property the
// original got from mprotect(PROT_NONE), so block state here is tracked
// as bookkeeping rather than as a real page-protection transition.
package arena

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// pageSize is the unit of reservation and release. It does not need to
// match the OS page size since no real mprotect call is made; a large
// power of two keeps the block math simple and the capacity sequence in
// container.Vector aligned with typical allocation sizes.
const pageSize = 4096

type blockState int

const (
	stateNoAccess blockState = iota
	stateReadWrite
)

// PageBlock is a contiguous, page-aligned range of the reservation.
// Blocks form a doubly linked, address-ordered list either inside an
// Arena (owned pages) or on the module-level free list.
type PageBlock struct {
	next, prev         *PageBlock
	memoryBegin        int // byte offset into the global reservation
	memoryEnd          int
	state              blockState
}

func (b *PageBlock) size() int { return b.memoryEnd - b.memoryBegin }

// global module state: the reservation itself, the free list of
// released page ranges, and the recycled-descriptor pool. These are not
// re-entrant and are only ever touched by the single compilation thread
// (spec §5).
var (
	reservation   []byte
	freeListHead  *PageBlock
	descriptorPool *PageBlock // singly-threaded via next; prev unused here
)

// Reserve obtains a page-aligned reservation of at least totalBytes and
// resets the module-level free list to describe it in full. It must be
// called once before any Arena is created; re-calling it discards any
// prior reservation (the front end only ever compiles one source file
// per process per spec §6, so there is exactly one reservation).
func Reserve(totalBytes int) {
	pages := (totalBytes + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	reservation = make([]byte, pages*pageSize)
	freeListHead = &PageBlock{memoryBegin: 0, memoryEnd: len(reservation), state: stateNoAccess}
	descriptorPool = nil
}

func init() {
	// A reasonably sized default reservation so an Arena can be created
	// without every caller remembering to call Reserve first; a real
	// compilation driver calls Reserve(cfg.ArenaPageBudget) explicitly.
	Reserve(16 * pageSize)
}

func newBlockDescriptor() *PageBlock {
	if descriptorPool != nil {
		b := descriptorPool
		descriptorPool = b.next
		*b = PageBlock{}
		return b
	}
	return &PageBlock{}
}

func recycleBlockDescriptor(b *PageBlock) {
	*b = PageBlock{next: descriptorPool}
	descriptorPool = b
}

// findFirstFit returns the first free block whose size is at least
// requested, or nil if none exists.
func findFirstFit(requested int) *PageBlock {
	for b := freeListHead; b != nil; b = b.next {
		if b.size() >= requested {
			return b
		}
	}
	return nil
}

// insertAndCoalesce inserts newBlock into the address-ordered list
// headed by head and merges it with an adjacent left and/or right
// neighbour, returning the (possibly new) head.
func insertAndCoalesce(head, newBlock *PageBlock) *PageBlock {
	if head == nil {
		return newBlock
	}

	var left, right *PageBlock
	for p := head; p != nil && p.memoryBegin <= newBlock.memoryBegin; p = p.next {
		left = p
	}

	result := head
	if left != nil {
		right = left.next
		left.next = newBlock
		newBlock.prev = left
		newBlock.next = right
		if right != nil {
			right.prev = newBlock
		}
	} else {
		newBlock.next = head
		head.prev = newBlock
		right = head
		result = newBlock
	}

	stitchLeft := left != nil && left.memoryEnd == newBlock.memoryBegin
	stitchRight := right != nil && right.memoryBegin == newBlock.memoryEnd

	switch {
	case stitchLeft && stitchRight:
		left.memoryEnd = right.memoryEnd
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}
		recycleBlockDescriptor(right)
		recycleBlockDescriptor(newBlock)
	case stitchLeft:
		left.memoryEnd = newBlock.memoryEnd
		left.next = right
		if right != nil {
			right.prev = left
		}
		recycleBlockDescriptor(newBlock)
	case stitchRight:
		right.memoryBegin = newBlock.memoryBegin
		right.prev = left
		if left != nil {
			left.next = right
		} else {
			result = right
		}
		recycleBlockDescriptor(newBlock)
	}

	return result
}

// Arena is a bump-pointer allocator backed by a chain of owned
// PageBlocks. The zero value is not usable; use New.
type Arena struct {
	ID         uuid.UUID
	ownedPages *PageBlock
	avail      int // byte offset into reservation
	limit      int
}

// New creates an empty Arena. Its first allocation triggers grow, which
// takes its first block from the module-level free list.
func New() *Arena {
	return &Arena{ID: uuid.New()}
}

// grow finds a first-fit free block of at least size bytes (rounded up
// to whole pages), installs it as the arena's new bump window, and
// links it into the arena's owned-block list.
func (a *Arena) grow(size int) {
	pages := (size + pageSize - 1) / pageSize
	need := pages * pageSize

	free := findFirstFit(need)
	if free == nil {
		log.Fatalf("arena %s: out of memory requesting %d bytes", a.ID, size)
	}

	var begin, end int
	switch {
	case need < free.size():
		begin = free.memoryBegin
		end = begin + need
		free.memoryBegin = end
	case need == free.size():
		begin, end = free.memoryBegin, free.memoryEnd
		// free is fully consumed; detach it from the free list.
		if free.prev != nil {
			free.prev.next = free.next
		} else {
			freeListHead = free.next
		}
		if free.next != nil {
			free.next.prev = free.prev
		}
		recycleBlockDescriptor(free)
	default:
		panic("arena: first-fit search returned a block smaller than requested")
	}

	block := newBlockDescriptor()
	block.memoryBegin, block.memoryEnd, block.state = begin, end, stateReadWrite

	a.avail, a.limit = begin, end
	a.ownedPages = insertAndCoalesce(a.ownedPages, block)
}

// allocBytes bumps the arena pointer by size (aligned to align), growing
// the arena first if the current block has insufficient room. It
// returns the byte offset of the allocation within the global
// reservation.
func (a *Arena) allocBytes(size, align int) int {
	aligned := (a.avail + align - 1) &^ (align - 1)
	if aligned+size > a.limit {
		a.grow(size + align)
		aligned = (a.avail + align - 1) &^ (align - 1)
	}
	a.avail = aligned + size
	return aligned
}

// Free zeroes and releases every block this arena owns back to the
// module-level free list, coalescing with its neighbours. After Free the
// Arena must not be used again; per spec §5 the free lists are not
// re-entrant once an arena has been freed mid-compilation.
func (a *Arena) Free() {
	p := a.ownedPages
	for p != nil {
		next := p.next
		for i := p.memoryBegin; i < p.memoryEnd; i++ {
			reservation[i] = 0
		}
		p.state = stateNoAccess
		p.next, p.prev = nil, nil
		freeListHead = insertAndCoalesce(freeListHead, p)
		p = next
	}
	a.ownedPages = nil
	a.avail, a.limit = 0, 0
}

// Stats reports the number of blocks this arena currently owns, for
// diagnostics and tests.
func (a *Arena) Stats() string {
	n := 0
	for p := a.ownedPages; p != nil; p = p.next {
		n++
	}
	return fmt.Sprintf("arena %s: %d owned block(s)", a.ID, n)
}
