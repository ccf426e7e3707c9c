package container

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/minio/highwayhash"
)

// hashKey is a fixed, zero key for HighwayHash. Determinism (not
// collision-resistance against an adversary) is what this map needs:
// scope.Scope relies on a stable iteration and lookup order across
// repeated passes for the round-trip property (R1 in spec.md §8).
var hashKey = make([]byte, 32)

type mapEntry[V any] struct {
	key   string
	value V
	next  int // index into entries, -1 if none
}

// StringMap is an arena-backed, string-keyed hash map with separate
// chaining, grounded on original_source/foundation.h's Hashmap /
// HashmapEntry. Unlike a Go builtin map it never relocates existing
// entries when it grows, and its bucket hash is computed with
// HighwayHash rather than Go's randomized map seed, so that two
// StringMaps built from the same sequence of inserts always iterate
// entries within a bucket in the same order.
type StringMap[V any] struct {
	a        *arena.Arena
	buckets  []int // head entry index per bucket, -1 if empty
	entries  Vector[mapEntry[V]]
	entryCnt int
}

// Init prepares m to allocate from a with an initial bucket count.
func (m *StringMap[V]) Init(a *arena.Arena, initialBuckets int) {
	if initialBuckets < 1 {
		initialBuckets = 16
	}
	m.a = a
	m.buckets = make([]int, initialBuckets)
	for i := range m.buckets {
		m.buckets[i] = -1
	}
	m.entries.Init(a)
}

// NewStringMap allocates and initializes a StringMap backed by a.
func NewStringMap[V any](a *arena.Arena) *StringMap[V] {
	m := &StringMap[V]{}
	m.Init(a, 16)
	return m
}

func (m *StringMap[V]) bucketFor(key string) int {
	h := highwayhash.Sum64([]byte(key), hashKey)
	return int(h % uint64(len(m.buckets)))
}

// Lookup returns the value stored for key and whether it was present.
func (m *StringMap[V]) Lookup(key string) (V, bool) {
	var zero V
	b := m.bucketFor(key)
	for i := m.buckets[b]; i != -1; {
		e := m.entries.Get(i)
		if e.key == key {
			return e.value, true
		}
		i = e.next
	}
	return zero, false
}

// Insert stores value under key, chaining a new entry ahead of any
// existing entries for the same key (matching the source's
// hashmap_insert_entry, which always links new entries at the bucket
// head). It does not overwrite or remove the previous entry; callers
// that want "newest first, all visible" semantics (scope.NameEntry's
// per-namespace declaration lists) get that naturally by scanning the
// chain; callers that want plain overwrite semantics should use
// Lookup+Insert and ignore shadowed entries themselves, since this
// container never reclaims storage for overwritten entries (the arena
// it is built on never frees individual objects).
func (m *StringMap[V]) Insert(key string, value V) {
	b := m.bucketFor(key)
	idx, slot := m.entries.AppendZero()
	slot.key = key
	slot.value = value
	slot.next = m.buckets[b]
	m.buckets[b] = idx
	m.entryCnt++
}

// Each calls fn once per live (key, value) pair for which Lookup would
// return true, i.e. the newest entry per key, in arbitrary bucket
// order.
func (m *StringMap[V]) Each(fn func(key string, value V)) {
	seen := make(map[string]bool, m.entryCnt)
	for b := range m.buckets {
		for i := m.buckets[b]; i != -1; {
			e := m.entries.Get(i)
			if !seen[e.key] {
				seen[e.key] = true
				fn(e.key, e.value)
			}
			i = e.next
		}
	}
}
