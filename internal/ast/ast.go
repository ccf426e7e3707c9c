// Package ast implements the arena-indexed abstract syntax tree
// described in spec.md §3, §4.4, and the redesign notes in §9.
//
// The source (original_source/ast_tree.h, ast_visitor.h/.cpp) carries a
// raw-pointer tagged union with per-kind anonymous unions and a mirror
// hierarchy of visit_* methods, one switch-on-sub-variant per pass.
// Spec §9 calls for replacing both: tree links become arena *indices*
// rather than pointers, and per-kind dispatch becomes a single Children
// method per node kind (defined once, here) instead of every pass
// re-switching on every node kind. cue/ast/ast.go was read for its
// Node/Pos/comment-attachment conventions but is an interface-per-node-
// type hierarchy — exactly the pattern spec §9 says to avoid — so it
// informs naming only, not the tree representation itself.
package ast

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/container"
	"github.com/dfrunza/p4c/internal/token"
)

// Ref is an index-typed handle into a Tree's node storage. The zero
// Ref is not NoRef — always compare against NoRef explicitly — because
// index 0 is a valid node (the tree's first allocated node).
type Ref int

// NoRef is the sentinel for "no node" (an absent optional child, or the
// end of a sibling chain).
const NoRef Ref = -1

// Node is one entry in the tree: its kind tag, source position, the
// (first_child, right_sibling) link pair spec §3 requires for list
// nodes, and a kind-specific Payload. Payload is nil for pure list
// nodes (their children live entirely in the FirstChild/RightSibling
// chain); non-list kinds carry a *KindData struct (see payload.go)
// whose Children() method names their named child slots.
type Node struct {
	Kind         Kind
	Pos          token.Pos
	FirstChild   Ref
	RightSibling Ref
	Payload      any
}

// childLister is implemented by every non-list payload type so Walk has
// exactly one dispatch point per node kind, rather than a switch
// repeated in every pass (spec §9's "single dispatch per node via
// pattern matching, not a mirror hierarchy of methods").
type childLister interface {
	Children() []Ref
}

// Tree owns every Node allocated for one compilation unit, in an
// append-only arena-backed Vector (spec §3: "the AST is append-only
// during parsing").
type Tree struct {
	a     *arena.Arena
	Nodes container.Vector[Node]
}

// NewTree creates an empty Tree backed by a.
func NewTree(a *arena.Arena) *Tree {
	t := &Tree{a: a}
	t.Nodes.Init(a)
	return t
}

// Arena returns the arena t allocates from, for callers (internal/parser's
// token-stream construction) that need to allocate alongside the tree
// without threading a second *arena.Arena parameter through every entry
// point.
func (t *Tree) Arena() *arena.Arena { return t.a }

// New appends a non-list node and returns its Ref.
func (t *Tree) New(kind Kind, pos token.Pos, payload any) Ref {
	idx := t.Nodes.Append(Node{Kind: kind, Pos: pos, FirstChild: NoRef, RightSibling: NoRef, Payload: payload})
	return Ref(idx)
}

// Get returns the Node r refers to.
func (t *Tree) Get(r Ref) Node { return t.Nodes.Get(int(r)) }

// SetPayload overwrites r's payload in place. Used by the parser for
// type-introducing declarations, whose name must be bound into scope
// before the declaration's body is parsed (so the body can reference
// the type being declared) even though the final payload is only known
// once the body has been parsed.
func (t *Tree) SetPayload(r Ref, payload any) {
	n := t.Nodes.Get(int(r))
	n.Payload = payload
	t.Nodes.Set(int(r), n)
}

func (t *Tree) setFirstChild(r, child Ref) {
	n := t.Nodes.Get(int(r))
	n.FirstChild = child
	t.Nodes.Set(int(r), n)
}

func (t *Tree) setRightSibling(r, sib Ref) {
	n := t.Nodes.Get(int(r))
	n.RightSibling = sib
	t.Nodes.Set(int(r), n)
}

// ListBuilder is the "small tree-constructor helper" spec §4.4 asks
// for: it remembers the last-appended child of a list node so Append is
// O(1) instead of walking the sibling chain on every call.
type ListBuilder struct {
	t         *Tree
	list      Ref
	lastChild Ref
}

// NewList creates a new list-kind node (Payload is always nil for list
// nodes — their structure is entirely the sibling chain) and returns
// both its Ref and a builder to append elements to it in source order.
func (t *Tree) NewList(kind Kind, pos token.Pos) (Ref, *ListBuilder) {
	list := t.New(kind, pos, nil)
	return list, &ListBuilder{t: t, list: list, lastChild: NoRef}
}

// Append adds child as the next element of the list in source order.
func (b *ListBuilder) Append(child Ref) {
	if child == NoRef {
		return
	}
	if b.lastChild == NoRef {
		b.t.setFirstChild(b.list, child)
	} else {
		b.t.setRightSibling(b.lastChild, child)
	}
	b.lastChild = child
}

// Ref returns the list node's own Ref.
func (b *ListBuilder) Ref() Ref { return b.list }

// ListChildren returns the elements of a list-kind node in source
// order. Calling it on a non-list node returns nil; use Children for
// the kind-agnostic form that works on both.
func (t *Tree) ListChildren(list Ref) []Ref {
	var out []Ref
	n := t.Get(list)
	for c := n.FirstChild; c != NoRef; {
		out = append(out, c)
		c = t.Get(c).RightSibling
	}
	return out
}

// Children returns r's children regardless of whether r is a list node
// (sibling-chain children) or a payload-bearing node (named children,
// via its Payload's Children method). This is the one place a
// kind-agnostic tree walk (internal/scope, internal/types) needs to
// know how to descend.
func (t *Tree) Children(r Ref) []Ref {
	n := t.Get(r)
	if n.Payload == nil {
		return t.ListChildren(r)
	}
	if cl, ok := n.Payload.(childLister); ok {
		return cl.Children()
	}
	return nil
}
