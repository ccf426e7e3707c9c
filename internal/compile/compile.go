// Package compile wires the front end's stages into the single pipeline
// spec §2 diagrams: an Arena-backed Scanner feeds the Parser, which
// builds an AST; ScopeHierarchyPass and NameBindingPass then annotate it
// with the scope tree and every resolved name use; PotentialTypePass and
// SelectTypePass run last, the two halves of the type checker.
//
// Grounded on cuelang.org/go's internal/core/compile/compile.go: one
// function (there, Files; here, Source) owns the whole "parse, then run
// the semantic passes in order" sequence, so every caller — the CLI
// driver, a test — gets the same pipeline instead of re-deriving it.
package compile

import (
	"github.com/dfrunza/p4c/internal/arena"
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/config"
	"github.com/dfrunza/p4c/internal/errors"
	"github.com/dfrunza/p4c/internal/parser"
	"github.com/dfrunza/p4c/internal/scope"
	"github.com/dfrunza/p4c/internal/types"
)

// Result collects every artifact a caller might need after a successful
// compilation: the tree itself, the scope/name-binding maps the two
// passes in internal/scope produced, and the final per-node Type
// environment SelectTypePass committed.
type Result struct {
	Arena    *arena.Arena
	Tree     *ast.Tree
	Program  ast.Ref
	Root     *scope.Scope
	ScopeMap scope.Map
	DeclMap  scope.DeclMap
	UseScope scope.UseScopeMap
	Index    *types.Index
	Types    types.TypeEnv
}

// Source compiles one P4-16 source file (spec §6: one compilation unit
// per process) through every stage, stopping at the first diagnostic any
// stage raises — the front end's single fatal-on-first-error policy
// (spec §7) applies across stage boundaries, not just within one.
//
// cfg.ArenaPageBudget sets the size of the arena reservation; the arena
// still grows block by block inside it as allocations need room.
// cfg.Recovery and cfg.MaxErrors are not passed to any stage: the
// parser's scan of the source stops at the first lexical error whether
// or not they are set.
func Source(cfg config.Config, filename string, src []byte) (*Result, *errors.Error) {
	arena.Reserve(cfg.ArenaPageBudget)
	a := arena.New()

	tree := ast.NewTree(a)
	root := scope.NewRoot(a)

	program, err := parser.Parse(tree, filename, src, root)
	if err != nil {
		return nil, err
	}

	scopeMap := scope.Run(a, tree, program, root)
	declMap, useScope, declNameRefs := scope.RunBinding(tree, scopeMap, root, program)

	ix := types.NewIndex(tree, declMap)
	potentials := types.RunSynthesis(tree, useScope, declMap, declNameRefs, ix, program)
	typeEnv, typeErrs := types.RunSelection(tree, potentials, ix, filename, program)
	if typeErrs.Len() > 0 {
		return nil, typeErrs.All()[0]
	}

	return &Result{
		Arena:    a,
		Tree:     tree,
		Program:  program,
		Root:     root,
		ScopeMap: scopeMap,
		DeclMap:  declMap,
		UseScope: useScope,
		Index:    ix,
		Types:    typeEnv,
	}, nil
}
