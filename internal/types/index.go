package types

import (
	"github.com/dfrunza/p4c/internal/ast"
	"github.com/dfrunza/p4c/internal/scope"
)

// Index lazily builds and memoizes the Type corresponding to any
// declaration or type-reference node in the tree, so PotentialTypePass
// never has to re-derive a declaration's type more than once and never
// depends on visiting declarations in a particular order (P4's
// declare-before-use rule already guarantees every reference DeclMap
// resolves points at a node whose type can be computed, recursively,
// without cycles).
type Index struct {
	tree    *ast.Tree
	declMap scope.DeclMap
	Arr     *Array

	declTypes map[ast.Ref]*Type
}

// NewIndex prepares an Index over tree, using declMap to resolve name
// references (internal/scope.BindingPass's output).
func NewIndex(tree *ast.Tree, declMap scope.DeclMap) *Index {
	return &Index{tree: tree, declMap: declMap, Arr: NewArray(), declTypes: make(map[ast.Ref]*Type)}
}

// TypeOfTypeRef resolves a KindTypeRef node to a Type.
func (ix *Index) TypeOfTypeRef(ref ast.Ref) *Type {
	if ref == ast.NoRef {
		return nil
	}
	n := ix.tree.Get(ref)
	data, ok := n.Payload.(*ast.TypeRefData)
	if !ok {
		return ix.TypeOfDecl(ref)
	}
	return ix.typeOfBase(data.Base, data.Args)
}

func (ix *Index) typeOfBase(base, args ast.Ref) *Type {
	if base == ast.NoRef {
		return nil
	}
	n := ix.tree.Get(base)
	switch n.Kind {
	case ast.KindBaseTypeBool:
		return BoolType
	case ast.KindBaseTypeString:
		return StringType
	case ast.KindBaseTypeVoid:
		return VoidType
	case ast.KindBaseTypeError:
		return &Type{Kind: ErrorType}
	case ast.KindBaseTypeMatchKind:
		return &Type{Kind: MatchKind}
	case ast.KindBaseTypeInt:
		if w := ix.firstArgWidth(args); w > 0 {
			return SignedIntType(w)
		}
		return IntType()
	case ast.KindBaseTypeBit:
		return BitType(ix.firstArgWidth(args))
	case ast.KindBaseTypeVarbit:
		return VarbitType(ix.firstArgWidth(args))
	case ast.KindTupleType:
		data := n.Payload.(*ast.TupleTypeData)
		return &Type{Kind: Tuple, Members: ix.typesOfArgList(data.Elems)}
	case ast.KindHeaderStackType:
		data := n.Payload.(*ast.HeaderStackTypeData)
		return &Type{Kind: Stack, Elem: ix.TypeOfTypeRef(data.ElemType)}
	case ast.KindTypeIdent, ast.KindSpecializedType:
		return ix.TypeOfDecl(base)
	default:
		return ix.TypeOfDecl(base)
	}
}

func (ix *Index) firstArgWidth(args ast.Ref) int {
	if args == ast.NoRef {
		return 0
	}
	children := ix.tree.ListChildren(args)
	if len(children) == 0 {
		return 0
	}
	data, ok := ix.tree.Get(children[0]).Payload.(*ast.TypeArgData)
	if !ok {
		return 0
	}
	return literalIntWidth(ix.tree, data.Arg)
}

func (ix *Index) typesOfArgList(list ast.Ref) []*Type {
	if list == ast.NoRef {
		return nil
	}
	var out []*Type
	for _, c := range ix.tree.ListChildren(list) {
		data, ok := ix.tree.Get(c).Payload.(*ast.TypeArgData)
		if !ok {
			continue
		}
		out = append(out, ix.TypeOfTypeRef(data.Arg))
	}
	return out
}

// TypeOfDecl resolves the Type of the declaration identified either
// directly by node, or, if node is a name reference (Ident/TypeIdent),
// by following declMap to the declaring node first.
func (ix *Index) TypeOfDecl(node ast.Ref) *Type {
	if node == ast.NoRef {
		return nil
	}
	if t, ok := ix.declTypes[node]; ok {
		return t
	}
	n := ix.tree.Get(node)
	switch n.Payload.(type) {
	case *ast.IdentData, *ast.TypeIdentData:
		if decl, ok := ix.declMap[node]; ok {
			return ix.TypeOfDecl(decl.Node)
		}
		return nil
	}

	// Placeholder breaks reference cycles while this declaration's own
	// type is still being computed (named types only reference each
	// other through TypeIdent indirection, not directly).
	placeholder := &Type{Kind: Any}
	ix.declTypes[node] = placeholder
	t := ix.buildDeclType(node, n)
	*placeholder = *t
	return placeholder
}

func (ix *Index) buildDeclType(node ast.Ref, n ast.Node) *Type {
	switch d := n.Payload.(type) {
	case *ast.HeaderTypeDeclData:
		names, members := ix.fieldTypes(d.Fields)
		return &Type{Kind: Header, Name: ix.identName(d.Name), Members: members, MemberNames: names}
	case *ast.HeaderUnionDeclData:
		names, members := ix.fieldTypes(d.Fields)
		return &Type{Kind: Union, Name: ix.identName(d.Name), Members: members, MemberNames: names}
	case *ast.StructTypeDeclData:
		names, members := ix.fieldTypes(d.Fields)
		return &Type{Kind: Struct, Name: ix.identName(d.Name), Members: members, MemberNames: names}
	case *ast.EnumDeclData:
		return &Type{Kind: Enum, Name: ix.identName(d.Name)}
	case *ast.TypedefDeclData:
		return &Type{Kind: Typedef, Name: ix.identName(d.Name), Target: ix.TypeOfTypeRef(d.Type)}
	case *ast.ParserTypeDeclData:
		return &Type{Kind: Parser, Name: ix.identName(d.Name), Params: ix.paramsProduct(d.Params)}
	case *ast.ControlTypeDeclData:
		return &Type{Kind: Control, Name: ix.identName(d.Name), Params: ix.paramsProduct(d.Params)}
	case *ast.PackageTypeDeclData:
		return &Type{Kind: Package, Name: ix.identName(d.Name), Params: ix.paramsProduct(d.Params)}
	case *ast.ExternTypeDeclData:
		return &Type{Kind: Extern, Name: ix.identName(d.Name)}
	case *ast.FunctionPrototypeData:
		return &Type{Kind: Function, Return: ix.TypeOfTypeRef(d.ReturnType), Params: ix.paramsProduct(d.Params)}
	case *ast.ExternFunctionDeclData:
		return ix.TypeOfDecl(d.Proto)
	case *ast.ActionDeclData:
		return &Type{Kind: Function, Return: VoidType, Params: ix.paramsProduct(d.Params)}
	case *ast.ParameterData:
		return ix.TypeOfTypeRef(d.Type)
	case *ast.VariableDeclData:
		return ix.TypeOfTypeRef(d.Type)
	case *ast.ConstantDeclData:
		return ix.TypeOfTypeRef(d.Type)
	case *ast.InstantiationData:
		return ix.TypeOfTypeRef(d.Type)
	case *ast.ParserStateData:
		return &Type{Kind: State, Name: ix.identName(d.Name)}
	case *ast.TableDeclData:
		return &Type{Kind: Table, Name: ix.identName(d.Name)}
	case *ast.ControlDeclData:
		return ix.TypeOfDecl(d.Type)
	case *ast.SpecifiedIdentifierData:
		return &Type{Kind: Enum}
	default:
		return AnyType
	}
}

func (ix *Index) identName(ref ast.Ref) string {
	if ref == ast.NoRef {
		return ""
	}
	if id, ok := ix.tree.Get(ref).Payload.(*ast.IdentData); ok {
		return id.Name
	}
	if id, ok := ix.tree.Get(ref).Payload.(*ast.TypeIdentData); ok {
		return id.Name
	}
	return ""
}

func (ix *Index) fieldTypes(list ast.Ref) ([]string, []*Type) {
	if list == ast.NoRef {
		return nil, nil
	}
	var names []string
	var types []*Type
	for _, c := range ix.tree.ListChildren(list) {
		field, ok := ix.tree.Get(c).Payload.(*ast.StructFieldData)
		if !ok {
			continue
		}
		names = append(names, ix.identName(field.Name))
		types = append(types, ix.TypeOfTypeRef(field.Type))
	}
	return names, types
}

func (ix *Index) paramsProduct(list ast.Ref) *Type {
	var names []string
	var types []*Type
	if list != ast.NoRef {
		for _, c := range ix.tree.ListChildren(list) {
			p, ok := ix.tree.Get(c).Payload.(*ast.ParameterData)
			if !ok {
				continue
			}
			names = append(names, ix.identName(p.Name))
			types = append(types, ix.TypeOfTypeRef(p.Type))
		}
	}
	return &Type{Kind: Product, Members: types, MemberNames: names}
}

// literalIntWidth reads a constant-sized type argument (almost always a
// plain IntLiteral in practice, e.g. `bit<8>`) down to a plain int for
// Width. Non-literal const-expression sizes are treated as
// unparameterized (Width 0) rather than guessed, since evaluating a
// general const expression is outside this checker's scope.
func literalIntWidth(tree *ast.Tree, ref ast.Ref) int {
	if ref == ast.NoRef {
		return 0
	}
	n := tree.Get(ref)
	if sz, ok := n.Payload.(*ast.IntegerTypeSizeData); ok {
		return literalIntWidth(tree, sz.Size)
	}
	data, ok := n.Payload.(*ast.IntLiteralData)
	if !ok {
		return 0
	}
	val := 0
	for _, c := range data.Lexeme {
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + int(c-'0')
	}
	return val
}
