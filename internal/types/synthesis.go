package types

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/literal"
	"github.com/dfrunza/p4c/internal/scope"
)

// Env holds the PotentialType computed for every expression node by
// PotentialTypePass, the bottom-up half of spec §4.6's two-phase
// checker.
type Env map[ast.Ref]*PotentialType

// PotentialTypePass walks the tree and fills in Potentials, a synthesis
// bottom-up because a Visitor's Leave is only called after every child
// has already been visited (and so already has an entry in Potentials).
type PotentialTypePass struct {
	ast.BaseVisitor
	tree         *ast.Tree
	useScopeMap  scope.UseScopeMap
	declMap      scope.DeclMap
	declNameRefs map[ast.Ref]bool
	ix           *Index
	Potentials   Env
}

// NewPotentialTypePass prepares a pass sharing ix (and therefore its
// memoized declaration types) with any other consumer that needs
// Type-level information, e.g. SelectTypePass. declNameRefs (from
// scope.RunBinding) marks every Ident node that names a declaration
// rather than uses one; those carry no PotentialType of their own, so
// synthesis skips them instead of treating a failed decl_map lookup as
// an unresolved use.
func NewPotentialTypePass(tree *ast.Tree, useScopeMap scope.UseScopeMap, declMap scope.DeclMap, declNameRefs map[ast.Ref]bool, ix *Index) *PotentialTypePass {
	return &PotentialTypePass{tree: tree, useScopeMap: useScopeMap, declMap: declMap, declNameRefs: declNameRefs, ix: ix, Potentials: make(Env)}
}

func (p *PotentialTypePass) set(r ast.Ref, pt *PotentialType) { p.Potentials[r] = pt }
func (p *PotentialTypePass) get(r ast.Ref) *PotentialType      { return p.Potentials[r] }

func (p *PotentialTypePass) candidates(r ast.Ref) []*Type {
	if pt := p.get(r); pt != nil && !pt.IsProduct() {
		return pt.Set
	}
	return nil
}

func (p *PotentialTypePass) Leave(t *ast.Tree, r ast.Ref) {
	n := t.Get(r)
	switch d := n.Payload.(type) {
	case *ast.IntLiteralData:
		ty := IntType()
		if v, err := literal.ParseInt(d.Lexeme); err == nil && v.Width != nil {
			if v.Signed {
				ty = SignedIntType(*v.Width)
			} else {
				ty = BitType(*v.Width)
			}
		}
		p.set(r, SetOf(ty))
	case *ast.StringLiteralData:
		p.set(r, SetOf(StringType))
	case *ast.BoolLiteralData:
		p.set(r, SetOf(BoolType))

	case *ast.IdentData:
		if p.declNameRefs[r] {
			break
		}
		decl, found := p.declMap[r]
		if !found {
			p.set(r, SetOf())
			break
		}
		// Overload set: every Var-namespace declaration sharing decl's
		// name in the scope it was found in (spec §4.6: "more than one
		// [declaration] because P4 permits overloaded method names").
		var candidates []*Type
		for _, other := range p.declsSharingName(r, decl) {
			candidates = append(candidates, p.ix.TypeOfDecl(other.Node))
		}
		p.set(r, SetOf(candidates...))

	case *ast.TypeIdentData:
		p.set(r, SetOf(p.ix.TypeOfDecl(r)))

	case *ast.BinaryExprData:
		left, right := p.candidates(d.Left), p.candidates(d.Right)
		p.set(r, SetOf(BinaryResultTypes(d.Op, left, right)...))

	case *ast.UnaryExprData:
		p.set(r, SetOf(UnaryResultTypes(d.Op, p.candidates(d.Operand))...))

	case *ast.MaskExprData:
		value, mask := p.candidates(d.Value), p.candidates(d.Mask)
		var out []*Type
		for _, v := range value {
			for _, m := range mask {
				if isNumeric(v) && Equiv(v, m) {
					out = append(out, v)
				}
			}
		}
		p.set(r, SetOf(out...))

	case *ast.CastExprData:
		p.set(r, SetOf(p.ix.TypeOfTypeRef(d.Type)))

	case *ast.MemberExprData:
		p.set(r, p.synthesizeMember(d))

	case *ast.IndexExprData:
		var out []*Type
		for _, base := range p.candidates(d.Base) {
			if eff := EffectiveType(base); eff != nil && eff.Kind == Stack {
				out = append(out, eff.Elem)
			}
		}
		p.set(r, SetOf(out...))

	case *ast.SliceExprData:
		p.set(r, SetOf(p.candidates(d.Base)...))

	case *ast.CallExprData:
		p.set(r, p.synthesizeCall(d))

	case *ast.ThisExprData:
		p.set(r, SetOf(AnyType))
	}
}

func (p *PotentialTypePass) declsSharingName(useRef ast.Ref, first *scope.NameDeclaration) []*scope.NameDeclaration {
	n := p.tree.Get(useRef)
	id, ok := n.Payload.(*ast.IdentData)
	if !ok {
		return []*scope.NameDeclaration{first}
	}
	foundScope := p.useScopeMap[useRef]
	if foundScope == nil {
		return []*scope.NameDeclaration{first}
	}
	return foundScope.Declarations(id.Name, scope.Var)
}

func (p *PotentialTypePass) synthesizeMember(d *ast.MemberExprData) *PotentialType {
	var out []*Type
	for _, base := range p.candidates(d.Base) {
		eff := EffectiveType(base)
		if eff == nil {
			continue
		}
		switch eff.Kind {
		case Struct, Header, Union:
			for i, name := range eff.MemberNames {
				if name == d.Name {
					out = append(out, eff.Members[i])
				}
			}
		}
	}
	return SetOf(out...)
}

func (p *PotentialTypePass) synthesizeCall(d *ast.CallExprData) *PotentialType {
	callee := p.candidates(d.Callee)
	var argSets [][]*Type
	if d.Args != ast.NoRef {
		for _, a := range p.tree.ListChildren(d.Args) {
			argSets = append(argSets, p.candidates(a))
		}
	}
	matched := MatchFunctions(callee, argSets)
	var out []*Type
	for _, m := range matched {
		fn := EffectiveType(m)
		out = append(out, fn.Return)
	}
	return SetOf(out...)
}

// RunSynthesis executes PotentialTypePass over program's subtree.
func RunSynthesis(tree *ast.Tree, useScopeMap scope.UseScopeMap, declMap scope.DeclMap, declNameRefs map[ast.Ref]bool, ix *Index, program ast.Ref) Env {
	p := NewPotentialTypePass(tree, useScopeMap, declMap, declNameRefs, ix)
	ast.Walk(tree, program, p)
	return p.Potentials
}
