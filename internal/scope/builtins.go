package scope

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
)

// builtinTypeNames are preloaded into the root scope's Type namespace,
// per spec §3/§4.5. They have no declaring AST node, so NoRef stands
// in for "the language itself declared this".
var builtinTypeNames = []string{
	"void", "bool", "int", "bit", "varbit", "string", "error", "match_kind", "_",
}

// builtinVarNames are the two parser-state names every parser implicitly
// has, preloaded into the Var namespace per SPEC_FULL.md's supplemented
// features (original_source/scope.c treats `accept`/`reject` as
// predeclared states rather than requiring every parser to declare
// them).
var builtinVarNames = []string{"accept", "reject"}

// NewRoot builds the single root scope, preloaded exactly once at
// startup (spec §5: "the root scope and built-in type table are
// written exactly once at startup; all later access is read-only").
func NewRoot(a *arena.Arena) *Scope {
	root := newScope(a, nil)
	for _, name := range builtinTypeNames {
		root.Bind(name, Type, ast.NoRef)
	}
	for _, name := range builtinVarNames {
		root.Bind(name, Var, ast.NoRef)
	}
	return root
}

// Push creates a child scope of parent, allocated from a.
func Push(a *arena.Arena, parent *Scope) *Scope {
	return newScope(a, parent)
}
