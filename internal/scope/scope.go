// Package scope implements the nested-scope / namespace / name-binding
// model described in spec.md §3 and §4.5: a Scope is a hash map from
// identifier string to a NameEntry holding up to three newest-first
// NameDeclaration chains, one per namespace. Scopes form a stack via a
// parent link, rooted at a single preloaded root scope.
//
// The name table itself is a container.StringMap rather than a Go
// builtin map so that iteration order is deterministic across repeated
// passes (spec §8's round-trip invariant R1 requires ScopeHierarchyPass
// to be idempotent up to isomorphism, which a randomized map iteration
// order would make awkward to reason about even though R1 only
// constrains the *parent relation and name sets*, not iteration order
// itself — see original_source/scope.c's hashmap-based symbol table).
package scope

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/container"
)

// Namespace is a bitmask: P4 allows a variable and a type to share an
// identifier, so a single NameEntry may hold bindings in more than one
// namespace simultaneously (spec §4.5).
type Namespace int

const (
	Var Namespace = 1 << iota
	Type
	Keyword
)

func (ns Namespace) Has(bit Namespace) bool { return ns&bit != 0 }

// NameDeclaration records one binding: the name, which namespace it
// was declared in, the AST node that introduced it, and (filled in
// later by internal/types) its resolved type.
type NameDeclaration struct {
	Name      string
	Namespace Namespace
	Node      ast.Ref
	Type      any // *types.Type, set by SelectTypePass; any avoids an import cycle

	next *NameDeclaration // newest-first chain within one namespace
}

// NameEntry is the value a Scope's name table maps a string to: up to
// one declaration chain per namespace.
type NameEntry struct {
	Var     *NameDeclaration
	Type    *NameDeclaration
	Keyword *NameDeclaration
}

func (e *NameEntry) chain(ns Namespace) *NameDeclaration {
	switch ns {
	case Var:
		return e.Var
	case Type:
		return e.Type
	case Keyword:
		return e.Keyword
	default:
		return nil
	}
}

func (e *NameEntry) setChain(ns Namespace, head *NameDeclaration) {
	switch ns {
	case Var:
		e.Var = head
	case Type:
		e.Type = head
	case Keyword:
		e.Keyword = head
	}
}

// Scope is one lexical scope: a name table plus a parent link. The
// zero value is not usable; build scopes through NewRoot or Push.
type Scope struct {
	Parent *Scope
	names  container.StringMap[NameEntry]
}

func newScope(a *arena.Arena, parent *Scope) *Scope {
	s := &Scope{Parent: parent}
	s.names.Init(a, 16)
	return s
}

// Bind declares name in namespace ns, linking it to node. It always
// prepends to that namespace's chain — "newest first" — never
// overwriting an existing declaration, matching spec §4.5's model of
// NameEntry as a record of declaration chains rather than a single
// slot. Duplicate-declaration detection (spec §7's scoping-error kind)
// is the caller's responsibility: Bind itself never rejects a name,
// since `error`/`match_kind` legitimately accumulate many declarations
// in the same namespace (their members) and ordinary redeclaration
// checks need to inspect the existing chain before deciding whether a
// second declaration is an extension or an error.
func (s *Scope) Bind(name string, ns Namespace, node ast.Ref) *NameDeclaration {
	entry, _ := s.names.Lookup(name)
	decl := &NameDeclaration{Name: name, Namespace: ns, Node: node, next: entry.chain(ns)}
	entry.setChain(ns, decl)
	s.names.Insert(name, entry)
	return decl
}

// Entry returns the NameEntry recorded for name in this scope only (no
// parent-chain walk), and whether one exists.
func (s *Scope) Entry(name string) (NameEntry, bool) {
	return s.names.Lookup(name)
}

// Declarations returns every NameDeclaration bound to name in
// namespace ns within this scope only, newest first.
func (s *Scope) Declarations(name string, ns Namespace) []*NameDeclaration {
	entry, ok := s.names.Lookup(name)
	if !ok {
		return nil
	}
	var out []*NameDeclaration
	for d := entry.chain(ns); d != nil; d = d.next {
		out = append(out, d)
	}
	return out
}

// Resolve walks the scope chain starting at s, looking for name bound
// in any namespace named by nsMask, and returns the newest matching
// declaration plus the scope it was found in. This is the resolve()
// algorithm of spec §4.5 verbatim: stop at the first scope where the
// name exists in any requested namespace, even if a different,
// unrequested namespace also has a binding there (P4's dual var/type
// identifiers are disambiguated entirely by which namespace the
// use-site asks for).
func Resolve(s *Scope, name string, nsMask Namespace) (*NameDeclaration, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		entry, ok := cur.names.Lookup(name)
		if !ok {
			continue
		}
		for _, ns := range []Namespace{Var, Type, Keyword} {
			if nsMask.Has(ns) {
				if d := entry.chain(ns); d != nil {
					return d, cur
				}
			}
		}
	}
	return nil, nil
}
