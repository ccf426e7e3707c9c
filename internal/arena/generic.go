package arena

import "unsafe"

// Allocate reserves room for n values of T in a, zeroed, and returns a
// slice over that room. It is the Go equivalent of the source's
// arena.allocate<T>(n): a bump allocation sized and aligned for T.
//
// The returned slice is backed by a real make([]T, n), never by a view
// over the arena's shared byte reservation. Go's garbage collector scans
// a block of memory for pointers according to the type the runtime
// allocated it with, not the type callers later reinterpret it as; the
// reservation is allocated as []byte (noscan), so any T whose fields hold
// real pointers — ast.Node's Payload, a Scope's NameDeclaration chain —
// would have those inner pointers invisible to the collector once placed
// in reservation-backed memory, letting still-reachable objects be
// collected out from under the arena. allocBytes is still called so the
// page/budget bookkeeping and out-of-memory diagnostics (spec §4.1
// "Failure") behave exactly as if T's storage had come from the
// reservation; only the actual backing memory is a separate, properly
// typed allocation.
func Allocate[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))

	a.allocBytes(size*n, align)
	return make([]T, n)
}

// AllocateOne is Allocate(a, 1) with the convenience of returning a
// pointer to the single element instead of a one-element slice.
func AllocateOne[T any](a *Arena) *T {
	s := Allocate[T](a, 1)
	return &s[0]
}
