package container

import (
	"runtime"
	"testing"

	"github.com/dfrunza/p4c/internal/arena"
	"github.com/go-quicktest/qt"
)

func TestVectorAppendAndGet(t *testing.T) {
	a := arena.New()
	v := NewVector[int](a)
	for i := 0; i < 200; i++ {
		idx := v.Append(i * 2)
		qt.Assert(t, qt.Equals(idx, i))
	}
	qt.Assert(t, qt.Equals(v.Len(), 200))
	qt.Assert(t, qt.Equals(v.Get(199), 398))
}

// TestVectorOfPointersSurvivesGC exercises a segment whose element type
// holds a real pointer, the shape internal/ast.Node and internal/scope's
// declaration chains use. A previous arena.Allocate implementation backed
// every T with a view over a noscan []byte reservation, making the
// garbage collector blind to pointers stored inside; forcing a GC cycle
// between population and lookup catches a regression back to that.
func TestVectorOfPointersSurvivesGC(t *testing.T) {
	type boxed struct {
		name *string
	}

	a := arena.New()
	v := NewVector[boxed](a)
	const n = 64
	for i := 0; i < n; i++ {
		s := make([]byte, 16)
		for j := range s {
			s[j] = 'a' + byte(i%26)
		}
		str := string(s)
		v.Append(boxed{name: &str})
	}

	runtime.GC()
	runtime.GC()

	for i := 0; i < n; i++ {
		want := string(make([]byte, 16))
		b := v.Get(i)
		qt.Assert(t, qt.IsTrue(b.name != nil))
		qt.Assert(t, qt.Equals(len(*b.name), len(want)))
		qt.Assert(t, qt.Equals((*b.name)[0], 'a'+byte(i%26)))
	}
}

func TestStringMapLookupAndShadowing(t *testing.T) {
	a := arena.New()
	m := NewStringMap[int](a)
	m.Insert("x", 1)
	m.Insert("y", 2)
	m.Insert("x", 3) // shadows the first "x"

	v, ok := m.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v, 3))

	_, ok = m.Lookup("z")
	qt.Assert(t, qt.IsFalse(ok))

	count := 0
	m.Each(func(key string, value int) { count++ })
	qt.Assert(t, qt.Equals(count, 2))
}
