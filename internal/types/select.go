package types

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/errors"
	"github.com/dfrunza/p4c/internal/token"
)

// TypeEnv is spec §3's `type_env`: the committed, post-selection Type
// for every expression node and typeRef, replacing the PotentialType
// annotation (spec §4.6 phase 2).
type TypeEnv map[ast.Ref]*Type

// SelectTypePass is the top-down half of the checker. At each
// expression site it requires Potentials[site] to collapse to exactly
// one member satisfying the required_ty context carried down from its
// parent; sites with no external context (top-level statements, key
// expressions, select expressions) pass nil and accept any singleton.
type SelectTypePass struct {
	tree       *ast.Tree
	potentials Env
	ix         *Index
	filename   string
	Env        TypeEnv
	Errs       *errors.List
}

// NewSelectTypePass prepares a pass over potentials (PotentialTypePass's
// output), reporting located diagnostics against filename. ix supplies
// the declared Type at every site spec §4.6 names as carrying an
// external required_ty — an assignment's left-hand side, a variable or
// constant declaration's initializer, a parameter's default value —
// none of which PotentialTypePass itself computes, since those sites
// are declarations, not expressions with their own PotentialType entry.
func NewSelectTypePass(tree *ast.Tree, potentials Env, ix *Index, filename string) *SelectTypePass {
	return &SelectTypePass{
		tree:       tree,
		potentials: potentials,
		ix:         ix,
		filename:   filename,
		Env:        make(TypeEnv),
		Errs:       &errors.List{},
	}
}

// Select commits a type for r alone, filtering its candidates by
// requiredTy (nil if no external context); SelectSubtree is what walks
// the descendants. A site left with no candidate, or with more than
// one, is recorded in Errs and committed to AnyType or to its first
// candidate, and selection carries on; internal/compile reports the
// first recorded error.
func (p *SelectTypePass) Select(r ast.Ref, requiredTy *Type) *Type {
	if r == ast.NoRef {
		return nil
	}
	if t, ok := p.Env[r]; ok {
		return t
	}
	pt := p.potentials[r]
	if pt == nil {
		return p.commit(r, AnyType)
	}

	var candidates []*Type
	if requiredTy != nil {
		for _, c := range pt.Set {
			if Equiv(c, requiredTy) {
				candidates = append(candidates, c)
			}
		}
	} else {
		candidates = pt.Set
	}

	switch len(candidates) {
	case 0:
		pos := p.pos(r)
		if len(pt.Set) == 0 {
			p.Errs.Add(errors.New(errors.Type, p.filename, pos,
				"no type satisfies this expression (over-constrained)"))
		} else {
			p.Errs.Add(errors.New(errors.Type, p.filename, pos,
				"expression type does not match the required type"))
		}
		return p.commit(r, AnyType)
	case 1:
		return p.commit(r, candidates[0])
	default:
		p.Errs.Add(errors.New(errors.Type, p.filename, p.pos(r),
			"ambiguous expression: %d candidate types remain (under-constrained)", len(candidates)))
		return p.commit(r, candidates[0])
	}
}

func (p *SelectTypePass) commit(r ast.Ref, t *Type) *Type {
	p.Env[r] = t
	return t
}

func (p *SelectTypePass) pos(r ast.Ref) token.Pos { return p.tree.Get(r).Pos }

// SelectSubtree descends r's children, imposing the required_ty spec
// §4.6 names for the few declaration sites that carry one (assignment,
// variable/constant initializer, parameter default) and committing a
// typeRef's own Type directly (T1: "type_env[e] is non-null ... for
// every typeRef", a site PotentialTypePass never assigns a
// PotentialType to, since it is not itself an expression). Every other
// position passes nil, the default spec §4.6 calls context-free
// (top-level statements, key expressions, select expressions). The
// special cases below only prime the cache; the unconditional
// recursion at the bottom still walks every child so every nested
// expression gets a committed type too, not just the site directly
// carrying the required_ty.
func (p *SelectTypePass) SelectSubtree(r ast.Ref) {
	if r == ast.NoRef {
		return
	}
	switch d := p.tree.Get(r).Payload.(type) {
	case *ast.AssignmentStmtData:
		lhsTy := p.Select(d.LHS, nil)
		p.Select(d.RHS, lhsTy)
	case *ast.VariableDeclData:
		if d.Init != ast.NoRef {
			p.Select(d.Init, p.ix.TypeOfTypeRef(d.Type))
		}
	case *ast.ConstantDeclData:
		if d.Init != ast.NoRef {
			p.Select(d.Init, p.ix.TypeOfTypeRef(d.Type))
		}
	case *ast.ParameterData:
		if d.Default != ast.NoRef {
			p.Select(d.Default, p.ix.TypeOfTypeRef(d.Type))
		}
	case *ast.TypeRefData:
		p.commit(r, p.ix.TypeOfTypeRef(r))
	}
	if _, isExpr := p.potentials[r]; isExpr {
		p.Select(r, nil)
	}
	for _, c := range p.tree.Children(r) {
		p.SelectSubtree(c)
	}
}

// RunSelection executes SelectTypePass over program's subtree.
func RunSelection(tree *ast.Tree, potentials Env, ix *Index, filename string, program ast.Ref) (TypeEnv, *errors.List) {
	p := NewSelectTypePass(tree, potentials, ix, filename)
	p.SelectSubtree(program)
	return p.Env, p.Errs
}
