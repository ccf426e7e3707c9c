package ast

// Payload types carry the kind-specific fields spec §3 calls "a
// kind-discriminated set of fields (operands, names, sub-declarations)".
// Each implements Children() once, which is the single dispatch point
// every generic tree walk (internal/scope, internal/types) relies on —
// see Tree.Children's doc comment.

func childrenOf(refs ...Ref) []Ref {
	out := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if r != NoRef {
			out = append(out, r)
		}
	}
	return out
}

// ProgramData is the payload of the KindProgram root node.
type ProgramData struct {
	Decls Ref // KindDeclList
}

func (d *ProgramData) Children() []Ref { return childrenOf(d.Decls) }

// ConstantDeclData is `const <type> <name> = <expr>;`.
type ConstantDeclData struct {
	Name Ref // KindIdent
	Type Ref // KindTypeRef
	Init Ref // expression
}

func (d *ConstantDeclData) Children() []Ref { return childrenOf(d.Type, d.Name, d.Init) }

// TypedefDeclData is `typedef <type> <name>;`.
type TypedefDeclData struct {
	Name Ref
	Type Ref
}

func (d *TypedefDeclData) Children() []Ref { return childrenOf(d.Type, d.Name) }

// InstantiationData is `<type> (<args>) <name>;`.
type InstantiationData struct {
	Type Ref
	Args Ref // KindArgList
	Name Ref
}

func (d *InstantiationData) Children() []Ref { return childrenOf(d.Type, d.Args, d.Name) }

// HeaderTypeDeclData is `header <name> { <fields> }`.
type HeaderTypeDeclData struct {
	Name   Ref
	Fields Ref // KindStructFieldList
}

func (d *HeaderTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Fields) }

// HeaderUnionDeclData is `header_union <name> { <fields> }`.
type HeaderUnionDeclData struct {
	Name   Ref
	Fields Ref
}

func (d *HeaderUnionDeclData) Children() []Ref { return childrenOf(d.Name, d.Fields) }

// StructTypeDeclData is `struct <name> { <fields> }`.
type StructTypeDeclData struct {
	Name   Ref
	Fields Ref
}

func (d *StructTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Fields) }

// StructFieldData is one `<type> <name>;` member of a header/struct.
type StructFieldData struct {
	Type Ref
	Name Ref
}

func (d *StructFieldData) Children() []Ref { return childrenOf(d.Type, d.Name) }

// EnumDeclData is `enum [<type>] <name> { <members> }`.
type EnumDeclData struct {
	Name      Ref
	UnderType Ref // optional base type, NoRef if bare enum
	Members   Ref // KindIdentifierList or KindSpecifiedIdentifierList
}

func (d *EnumDeclData) Children() []Ref { return childrenOf(d.UnderType, d.Name, d.Members) }

// ErrorDeclData is `error { <members> }`; semantically it *extends* the
// single global error type rather than declaring a new one (spec §4.5).
type ErrorDeclData struct {
	Members Ref // KindIdentifierList
}

func (d *ErrorDeclData) Children() []Ref { return childrenOf(d.Members) }

// MatchKindDeclData is `match_kind { <members> }`, extending the global
// match_kind type the same way ErrorDeclData does.
type MatchKindDeclData struct {
	Members Ref
}

func (d *MatchKindDeclData) Children() []Ref { return childrenOf(d.Members) }

// SpecifiedIdentifierData is `<name> = <expr>` inside an enum body.
type SpecifiedIdentifierData struct {
	Name Ref
	Init Ref
}

func (d *SpecifiedIdentifierData) Children() []Ref { return childrenOf(d.Name, d.Init) }

// ParserTypeDeclData is `parser <name> (<params>)`.
type ParserTypeDeclData struct {
	Name   Ref
	Params Ref // KindParameterList
}

func (d *ParserTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Params) }

// ParserDeclData is a full parser declaration with local elements and
// states (spec §8 scenario 3).
type ParserDeclData struct {
	Type   Ref // KindParserTypeDecl
	Locals Ref // KindParserLocalElementList
	States Ref // KindParserStateList
}

func (d *ParserDeclData) Children() []Ref { return childrenOf(d.Type, d.Locals, d.States) }

// ParserStateData is `state <name> { <statements> transition <stmt> }`.
type ParserStateData struct {
	Name        Ref
	Statements  Ref // KindParserStatementList
	Transition  Ref // KindTransitionStmt
}

func (d *ParserStateData) Children() []Ref { return childrenOf(d.Name, d.Statements, d.Transition) }

// TransitionStmtData is `transition <stateExpr>;`.
type TransitionStmtData struct {
	Target Ref // KindStateExprName or KindSelectExpr
}

func (d *TransitionStmtData) Children() []Ref { return childrenOf(d.Target) }

// StateExprNameData is a bare `transition accept;`-style name
// reference, resolved by name binding like any other Var-namespace use.
type StateExprNameData struct {
	Name Ref // KindIdent
}

func (d *StateExprNameData) Children() []Ref { return childrenOf(d.Name) }

// SelectExprData is `select (<exprs>) { <cases> }`.
type SelectExprData struct {
	Exprs Ref // KindSimpleExprList
	Cases Ref // KindSelectCaseList
}

func (d *SelectExprData) Children() []Ref { return childrenOf(d.Exprs, d.Cases) }

// SelectCaseData is `<keyset> : <stateName>;`.
type SelectCaseData struct {
	Keyset Ref
	State  Ref // KindStateExprName
}

func (d *SelectCaseData) Children() []Ref { return childrenOf(d.Keyset, d.State) }

// KeysetExprTupleData is `(<simpleExprs>)` as a select case key.
type KeysetExprTupleData struct {
	Exprs Ref // KindSimpleExprList
}

func (d *KeysetExprTupleData) Children() []Ref { return childrenOf(d.Exprs) }

// KeysetExprSimpleData wraps a single non-tuple select key expression
// (an expression, `default`, or `_`).
type KeysetExprSimpleData struct {
	Expr Ref
}

func (d *KeysetExprSimpleData) Children() []Ref { return childrenOf(d.Expr) }

// ControlTypeDeclData is `control <name> (<params>)`.
type ControlTypeDeclData struct {
	Name   Ref
	Params Ref
}

func (d *ControlTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Params) }

// ControlDeclData is a full control declaration.
type ControlDeclData struct {
	Type   Ref // KindControlTypeDecl
	Locals Ref // KindControlLocalDeclList
	Apply  Ref // KindBlockStatement
}

func (d *ControlDeclData) Children() []Ref { return childrenOf(d.Type, d.Locals, d.Apply) }

// PackageTypeDeclData is `package <name> (<params>);`.
type PackageTypeDeclData struct {
	Name   Ref
	Params Ref
}

func (d *PackageTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Params) }

// ExternTypeDeclData is `extern <name> { <methods> }`.
type ExternTypeDeclData struct {
	Name    Ref
	Methods Ref // KindMethodPrototypeList
}

func (d *ExternTypeDeclData) Children() []Ref { return childrenOf(d.Name, d.Methods) }

// ExternFunctionDeclData is a standalone `extern <retType> <name>(<params>);`.
type ExternFunctionDeclData struct {
	Proto Ref // KindFunctionPrototype
}

func (d *ExternFunctionDeclData) Children() []Ref { return childrenOf(d.Proto) }

// FunctionPrototypeData is `<retType> <name> (<params>)`.
type FunctionPrototypeData struct {
	ReturnType Ref
	Name       Ref
	Params     Ref
}

func (d *FunctionPrototypeData) Children() []Ref {
	return childrenOf(d.ReturnType, d.Name, d.Params)
}

// ParameterData is one `[in|out|inout] <type> <name> [= <default>]`.
type ParameterData struct {
	Direction string // "", "in", "out", "inout"
	Type      Ref
	Name      Ref
	Default   Ref
}

func (d *ParameterData) Children() []Ref { return childrenOf(d.Type, d.Name, d.Default) }

// ActionDeclData is `action <name> (<params>) { <body> }`.
type ActionDeclData struct {
	Name   Ref
	Params Ref
	Body   Ref // KindBlockStatement
}

func (d *ActionDeclData) Children() []Ref { return childrenOf(d.Name, d.Params, d.Body) }

// TableDeclData is `table <name> { <properties> }`.
type TableDeclData struct {
	Name       Ref
	Properties Ref // KindTablePropertyList
}

func (d *TableDeclData) Children() []Ref { return childrenOf(d.Name, d.Properties) }

// TableKeyPropertyData is the `key = { ... }` table property.
type TableKeyPropertyData struct {
	Elems Ref // KindTableKeyElemList
}

func (d *TableKeyPropertyData) Children() []Ref { return childrenOf(d.Elems) }

// TableKeyElemData is `<expr> : <matchKind>;` inside a key block.
type TableKeyElemData struct {
	Expr      Ref
	MatchKind Ref // KindIdent, resolved in the Var namespace, where match_kind members are bound (root scope)
}

func (d *TableKeyElemData) Children() []Ref { return childrenOf(d.Expr, d.MatchKind) }

// TableActionsPropertyData is the `actions = { ... }` table property.
type TableActionsPropertyData struct {
	Refs Ref // KindActionRefList
}

func (d *TableActionsPropertyData) Children() []Ref { return childrenOf(d.Refs) }

// ActionRefData is one `<name> [(<args>)]` entry in an actions list.
type ActionRefData struct {
	Name Ref
	Args Ref
}

func (d *ActionRefData) Children() []Ref { return childrenOf(d.Name, d.Args) }

// TableDefaultActionPropertyData is `default_action = <actionRef>;`.
type TableDefaultActionPropertyData struct {
	Ref Ref // KindActionRef
}

func (d *TableDefaultActionPropertyData) Children() []Ref { return childrenOf(d.Ref) }

// TableSizePropertyData is `size = <expr>;`.
type TableSizePropertyData struct {
	Expr Ref
}

func (d *TableSizePropertyData) Children() []Ref { return childrenOf(d.Expr) }

// BlockStatementData is `{ <statements> }`, itself a scope-opening node
// (spec §4.5's "general block statement").
type BlockStatementData struct {
	Statements Ref // KindStatementList
}

func (d *BlockStatementData) Children() []Ref { return childrenOf(d.Statements) }

// VariableDeclData is a local `<type> <name> [= <init>];`.
type VariableDeclData struct {
	Type Ref
	Name Ref
	Init Ref
}

func (d *VariableDeclData) Children() []Ref { return childrenOf(d.Type, d.Name, d.Init) }

// AssignmentStmtData is `<lhs> = <rhs>;`.
type AssignmentStmtData struct {
	LHS Ref
	RHS Ref
}

func (d *AssignmentStmtData) Children() []Ref { return childrenOf(d.LHS, d.RHS) }

// IfStmtData is `if (<cond>) <then> [else <else>]`.
type IfStmtData struct {
	Cond Ref
	Then Ref
	Else Ref
}

func (d *IfStmtData) Children() []Ref { return childrenOf(d.Cond, d.Then, d.Else) }

// SwitchStmtData is `switch (<expr>) { <cases> }`, itself scope-opening
// per spec §4.5.
type SwitchStmtData struct {
	Expr  Ref
	Cases Ref // KindSwitchCaseList
}

func (d *SwitchStmtData) Children() []Ref { return childrenOf(d.Expr, d.Cases) }

// SwitchCaseData is `<label> : <block>` (label is an ident or `default`).
type SwitchCaseData struct {
	Label Ref
	Body  Ref
}

func (d *SwitchCaseData) Children() []Ref { return childrenOf(d.Label, d.Body) }

// ReturnStmtData is `return [<expr>];`.
type ReturnStmtData struct {
	Expr Ref
}

func (d *ReturnStmtData) Children() []Ref { return childrenOf(d.Expr) }

// ExprStmtData wraps a bare expression statement, typically a method
// call (`apply();`, `pkt.extract(hdr);`).
type ExprStmtData struct {
	Expr Ref
}

func (d *ExprStmtData) Children() []Ref { return childrenOf(d.Expr) }

// TypeRefData names a type, either a base type node, a previously
// declared TYPE_IDENT, or a derived-type declaration inline. Args holds
// optional specialization arguments (bit<N>, T<int>).
type TypeRefData struct {
	Base Ref // one of the BaseType* kinds, KindTypeIdent, or a derived decl
	Args Ref // KindTypeArgList, NoRef if unspecialized
}

func (d *TypeRefData) Children() []Ref { return childrenOf(d.Base, d.Args) }

// IntegerTypeSizeData is the `<N>` in `bit<N>`/`int<N>`/`varbit<N>`; it
// may be a literal or a const expression.
type IntegerTypeSizeData struct {
	Size Ref
}

func (d *IntegerTypeSizeData) Children() []Ref { return childrenOf(d.Size) }

// TypeArgData is one element of a type argument list (`<N>` in
// `bit<N>`, or a nested TypeRef in `T<U>`).
type TypeArgData struct {
	Arg Ref
}

func (d *TypeArgData) Children() []Ref { return childrenOf(d.Arg) }

// TupleTypeData is `tuple<T1, T2, ...>`.
type TupleTypeData struct {
	Elems Ref // KindTypeArgList
}

func (d *TupleTypeData) Children() []Ref { return childrenOf(d.Elems) }

// HeaderStackTypeData is `<elemType>[<size>]`.
type HeaderStackTypeData struct {
	ElemType Ref
	Size     Ref
}

func (d *HeaderStackTypeData) Children() []Ref { return childrenOf(d.ElemType, d.Size) }

// SpecializedTypeData applies type arguments to a previously declared
// generic type, e.g. `packet_in<H>`.
type SpecializedTypeData struct {
	Base Ref // KindTypeIdent
	Args Ref // KindTypeArgList
}

func (d *SpecializedTypeData) Children() []Ref { return childrenOf(d.Base, d.Args) }

// IdentData is a name reference (value namespace); Name is filled in by
// the parser directly from the token lexeme.
type IdentData struct {
	Name string
}

func (d *IdentData) Children() []Ref { return nil }

// TypeIdentData is a type name reference, reclassified by the lexer
// feedback path (spec §4.3) the moment the identifier's TYPE namespace
// binding exists.
type TypeIdentData struct {
	Name string
}

func (d *TypeIdentData) Children() []Ref { return nil }

// IntLiteralData carries the raw lexeme; internal/literal decodes it on
// demand during type synthesis (spec §4.2, §4.6).
type IntLiteralData struct {
	Lexeme string
}

func (d *IntLiteralData) Children() []Ref { return nil }

// StringLiteralData carries the raw (still-quoted) lexeme.
type StringLiteralData struct {
	Lexeme string
}

func (d *StringLiteralData) Children() []Ref { return nil }

// BoolLiteralData is `true`/`false`.
type BoolLiteralData struct {
	Value bool
}

func (d *BoolLiteralData) Children() []Ref { return nil }

// BinaryExprData is `<left> <op> <right>`; Op is a token.Kind (e.g.
// token.PLUS), kept as an int to avoid internal/ast importing
// internal/token's full Kind space back into payload structs that
// predate lexer feedback concerns — callers type-assert via
// token.Kind(d.Op).
type BinaryExprData struct {
	Op    int
	Left  Ref
	Right Ref
}

func (d *BinaryExprData) Children() []Ref { return childrenOf(d.Left, d.Right) }

// UnaryExprData is `<op> <operand>` (`!`, `~`, unary `-`).
type UnaryExprData struct {
	Op      int
	Operand Ref
}

func (d *UnaryExprData) Children() []Ref { return childrenOf(d.Operand) }

// MaskExprData is `<value> &&& <mask>`.
type MaskExprData struct {
	Value Ref
	Mask  Ref
}

func (d *MaskExprData) Children() []Ref { return childrenOf(d.Value, d.Mask) }

// CastExprData is `(<type>) <expr>`.
type CastExprData struct {
	Type Ref
	Expr Ref
}

func (d *CastExprData) Children() []Ref { return childrenOf(d.Type, d.Expr) }

// MemberExprData is `<base> . <name>` (the postfix selector spec §4.3
// describes as a left-associative primary chained at any precedence).
type MemberExprData struct {
	Base Ref
	Name string
}

func (d *MemberExprData) Children() []Ref { return childrenOf(d.Base) }

// IndexExprData is `<base> [ <index> ]`.
type IndexExprData struct {
	Base  Ref
	Index Ref
}

func (d *IndexExprData) Children() []Ref { return childrenOf(d.Base, d.Index) }

// SliceExprData is `<base> [ <hi> : <lo> ]`.
type SliceExprData struct {
	Base   Ref
	Hi, Lo Ref
}

func (d *SliceExprData) Children() []Ref { return childrenOf(d.Base, d.Hi, d.Lo) }

// CallExprData is `<callee> ( <args> )`, with optional explicit type
// arguments `<callee> < <typeArgs> > ( <args> )` for generic extern
// methods.
type CallExprData struct {
	Callee   Ref
	TypeArgs Ref // KindTypeArgList, NoRef if absent
	Args     Ref // KindArgList
}

func (d *CallExprData) Children() []Ref { return childrenOf(d.Callee, d.TypeArgs, d.Args) }

// ThisExprData is the `this` expression inside an action body that
// refers to the enclosing table (no fields: it carries only position).
type ThisExprData struct{}

func (d *ThisExprData) Children() []Ref { return nil }
