package scope

import "github.com/dfrunza/p4c/internal/ast"

// DeclMap records, for every name-use site requiring a binding, the
// NameDeclaration it resolved to (spec §4.5, §8's N2).
type DeclMap map[ast.Ref]*NameDeclaration

// UseScopeMap records, for every entry in a DeclMap, the Scope in which
// resolve() actually found the binding — the scope internal/types
// consults to recover every overloaded declaration sharing that use's
// name (not just the newest one DeclMap points at).
type UseScopeMap map[ast.Ref]*Scope

// BindingPass implements NameBindingPass (spec §4.5). Type-introducing
// declarations (typedef, struct, header, header union, enum, parser/
// control/package type, extern type) are already bound into the scope
// tree by internal/parser's scope seeding as each is parsed (spec
// §4.3), so this pass only binds the value-namespace declarations spec
// §4.3 defers — variable, parameter, action, instance, state, enum
// member — and resolves every name use it encounters against the scope
// map ScopeHierarchyPass already built.
type BindingPass struct {
	ast.BaseVisitor
	tree         *ast.Tree
	scopeMap     Map
	root         *Scope
	stack        []*Scope
	DeclMap      DeclMap
	UseScopeMap  UseScopeMap
	DeclNameRefs map[ast.Ref]bool
}

// NewBindingPass prepares a pass over tree using the scope map produced
// by a prior HierarchyPass run and the same root scope.
func NewBindingPass(tree *ast.Tree, scopeMap Map, root *Scope) *BindingPass {
	return &BindingPass{
		tree:         tree,
		scopeMap:     scopeMap,
		root:         root,
		stack:        []*Scope{root},
		DeclMap:      make(DeclMap),
		UseScopeMap:  make(UseScopeMap),
		DeclNameRefs: make(map[ast.Ref]bool),
	}
}

func (p *BindingPass) current() *Scope { return p.stack[len(p.stack)-1] }

// bindValue declares the identifier at nameRef in the Var namespace of
// s, linking it to declNode, and marks nameRef so the generic
// identifier-use handling below does not also try to resolve it as a
// use of itself.
func (p *BindingPass) bindValue(s *Scope, nameRef, declNode ast.Ref) {
	if nameRef == ast.NoRef {
		return
	}
	n := p.tree.Get(nameRef)
	id, ok := n.Payload.(*ast.IdentData)
	if !ok {
		return
	}
	s.Bind(id.Name, Var, declNode)
	p.DeclNameRefs[nameRef] = true
}

// bindMemberList declares every KindIdent child of a bare identifier
// list (list Ref) as a Var-namespace declaration in s.
func (p *BindingPass) bindMemberList(s *Scope, list ast.Ref, declNode ast.Ref) {
	if list == ast.NoRef {
		return
	}
	for _, child := range p.tree.ListChildren(list) {
		n := p.tree.Get(child)
		if id, ok := n.Payload.(*ast.IdentData); ok {
			s.Bind(id.Name, Var, declNode)
			p.DeclNameRefs[child] = true
		}
	}
}

func (p *BindingPass) Enter(t *ast.Tree, r ast.Ref) bool {
	n := t.Get(r)
	parent := p.current()

	switch d := n.Payload.(type) {
	case *ast.VariableDeclData:
		p.bindValue(parent, d.Name, r)
	case *ast.ConstantDeclData:
		p.bindValue(parent, d.Name, r)
	case *ast.ParameterData:
		p.bindValue(parent, d.Name, r)
	case *ast.ActionDeclData:
		p.bindValue(parent, d.Name, r)
	case *ast.InstantiationData:
		p.bindValue(parent, d.Name, r)
	case *ast.ParserStateData:
		p.bindValue(parent, d.Name, r)
	case *ast.SpecifiedIdentifierData:
		p.bindValue(parent, d.Name, r)
	}

	if scopeOpeningKinds[n.Kind] {
		p.stack = append(p.stack, p.scopeMap[r])
	}

	// Enum members declared as a bare identifier list (no explicit
	// value) live in the enum's own scope, now at the top of the
	// stack. KindSpecifiedIdentifierList members are ordinary list
	// elements instead (KindSpecifiedIdentifier), already handled by
	// the SpecifiedIdentifierData case above as Walk reaches them.
	if d, ok := n.Payload.(*ast.EnumDeclData); ok {
		if t.Get(d.Members).Kind == ast.KindIdentifierList {
			p.bindMemberList(p.current(), d.Members, r)
		}
	}

	// error/match_kind declarations extend the single global type's
	// member list rather than introducing scoped members (spec §4.5),
	// so their members are bound directly into the root scope
	// regardless of lexical position.
	switch d := n.Payload.(type) {
	case *ast.ErrorDeclData:
		p.bindMemberList(p.root, d.Members, r)
	case *ast.MatchKindDeclData:
		p.bindMemberList(p.root, d.Members, r)
	}

	switch d := n.Payload.(type) {
	case *ast.IdentData:
		if !p.DeclNameRefs[r] {
			if decl, foundScope := Resolve(p.current(), d.Name, Var); decl != nil {
				p.DeclMap[r] = decl
				p.UseScopeMap[r] = foundScope
			}
		}
	case *ast.TypeIdentData:
		if !p.DeclNameRefs[r] {
			if decl, foundScope := Resolve(p.current(), d.Name, Type); decl != nil {
				p.DeclMap[r] = decl
				p.UseScopeMap[r] = foundScope
			}
		}
	}

	return true
}

func (p *BindingPass) Leave(t *ast.Tree, r ast.Ref) {
	n := t.Get(r)
	if scopeOpeningKinds[n.Kind] {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// RunBinding executes NameBindingPass over program's subtree, returning
// the use→declaration map, the scope each use resolved in, and the set
// of Ident nodes that name a declaration rather than use one — the
// latter tells internal/types.PotentialTypePass which Ident nodes to
// skip, since a declaration's own name carries no PotentialType of its
// own.
func RunBinding(tree *ast.Tree, scopeMap Map, root *Scope, program ast.Ref) (DeclMap, UseScopeMap, map[ast.Ref]bool) {
	p := NewBindingPass(tree, scopeMap, root)
	ast.Walk(tree, program, p)
	return p.DeclMap, p.UseScopeMap, p.DeclNameRefs
}
