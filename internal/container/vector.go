// Package container implements the arena-backed collection types the
// rest of the front end is built on: an append-only segmented vector
// and a string-keyed hash map, both grounded on the C source's
// UnboundedArray/Hashmap (see original_source/foundation.h) but
// expressed with Go generics instead of void*+elem_size.
package container

import "github.com/dfrunza/p4c/internal/arena"

// segmentCapacity follows the source's closed-form capacity sequence
// C(n) = (2^n - 1) * 16, so segment n holds C(n) - C(n-1) new elements.
// A segmented vector never reallocates or copies existing elements when
// it grows, since each segment is an independent arena allocation and
// existing segments are never moved; this matters because its elements
// may be pointed into by indices held elsewhere in the arena-based AST.
func segmentCapacity(n int) int {
	return (1<<uint(n) - 1) * 16
}

// Vector is an append-only, arena-backed sequence of T. The zero value
// is usable once Init is called.
type Vector[T any] struct {
	a        *arena.Arena
	segments [][]T
	length   int
}

// Init prepares v to allocate from a. It may be called once.
func (v *Vector[T]) Init(a *arena.Arena) {
	v.a = a
	v.segments = nil
	v.length = 0
}

// NewVector allocates and initializes a Vector backed by a.
func NewVector[T any](a *arena.Arena) *Vector[T] {
	v := &Vector[T]{}
	v.Init(a)
	return v
}

// Len returns the number of appended elements.
func (v *Vector[T]) Len() int { return v.length }

func (v *Vector[T]) segmentFor(i int) (segIdx, offset int) {
	remaining := i
	for s := 1; ; s++ {
		cap := segmentCapacity(s) - segmentCapacity(s-1)
		if remaining < cap {
			return s - 1, remaining
		}
		remaining -= cap
	}
}

// Get returns the element at index i, which must be < Len().
func (v *Vector[T]) Get(i int) T {
	seg, off := v.segmentFor(i)
	return v.segments[seg][off]
}

// Set overwrites the element at index i, which must be < Len().
func (v *Vector[T]) Set(i int, val T) {
	seg, off := v.segmentFor(i)
	v.segments[seg][off] = val
}

// Append adds val to the end of v and returns its index.
func (v *Vector[T]) Append(val T) int {
	seg, off := v.segmentFor(v.length)
	if seg >= len(v.segments) {
		capThisSeg := segmentCapacity(seg+1) - segmentCapacity(seg)
		v.segments = append(v.segments, arena.Allocate[T](v.a, capThisSeg))
	}
	v.segments[seg][off] = val
	idx := v.length
	v.length++
	return idx
}

// AppendZero reserves room for one more zero-valued T and returns both
// its index and a pointer into the vector's backing storage, so callers
// can fill in fields of a struct T in place (used for AST nodes, whose
// tree links are populated after the node itself is appended).
func (v *Vector[T]) AppendZero() (int, *T) {
	var zero T
	idx := v.Append(zero)
	seg, off := v.segmentFor(idx)
	return idx, &v.segments[seg][off]
}

// Each calls fn for every element in order.
func (v *Vector[T]) Each(fn func(i int, val T)) {
	for i := 0; i < v.length; i++ {
		fn(i, v.Get(i))
	}
}
