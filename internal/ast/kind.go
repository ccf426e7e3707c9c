package ast

// Kind is the exhaustive tag discriminating every AST node variant,
// covering the P4-16 grammar productions named in
// original_source/scope_hierarchy.c's visit_* forward declarations
// (spec §3: "an exhaustive AstKind enumeration (≈90 kinds)").
type Kind int

const (
	KindInvalid Kind = iota

	// Program structure
	KindProgram
	KindDeclList

	// Top-level declarations
	KindConstantDecl
	KindTypedefDecl
	KindInstantiation

	// Derived types
	KindHeaderTypeDecl
	KindHeaderUnionDecl
	KindStructTypeDecl
	KindStructFieldList
	KindStructField
	KindEnumDecl
	KindErrorDecl
	KindMatchKindDecl
	KindIdentifierList
	KindSpecifiedIdentifierList
	KindSpecifiedIdentifier

	// Parser
	KindParserTypeDecl
	KindParserDecl
	KindParserLocalElementList
	KindParserStateList
	KindParserState
	KindParserStatementList
	KindParserBlockStatement
	KindTransitionStmt
	KindSelectExpr
	KindSelectCaseList
	KindSelectCase
	KindKeysetExprTuple
	KindKeysetExprSimple
	KindSimpleExprList
	KindStateExprName

	// Control
	KindControlTypeDecl
	KindControlDecl
	KindControlLocalDeclList

	// Package
	KindPackageTypeDecl

	// Extern
	KindExternTypeDecl
	KindExternFunctionDecl
	KindMethodPrototypeList
	KindFunctionPrototype
	KindParameterList
	KindParameter

	// Action / table
	KindActionDecl
	KindTableDecl
	KindTablePropertyList
	KindTableKeyProperty
	KindTableKeyElemList
	KindTableKeyElem
	KindTableActionsProperty
	KindActionRefList
	KindActionRef
	KindTableDefaultActionProperty
	KindTableSizeProperty

	// Statements
	KindBlockStatement
	KindStatementList
	KindVariableDecl
	KindAssignmentStmt
	KindIfStmt
	KindSwitchStmt
	KindSwitchCaseList
	KindSwitchCase
	KindReturnStmt
	KindExitStmt
	KindEmptyStmt
	KindExprStmt

	// Types
	KindTypeRef
	KindBaseTypeBool
	KindBaseTypeInt
	KindBaseTypeBit
	KindBaseTypeVarbit
	KindBaseTypeString
	KindBaseTypeVoid
	KindBaseTypeError
	KindBaseTypeMatchKind
	KindIntegerTypeSize
	KindTypeArgList
	KindTypeArg
	KindTupleType
	KindHeaderStackType
	KindSpecializedType
	KindDontCareType

	// Expressions
	KindIdent
	KindTypeIdent
	KindIntLiteral
	KindStringLiteral
	KindBoolLiteral
	KindBinaryExpr
	KindUnaryExpr
	KindCastExpr
	KindMemberExpr
	KindIndexExpr
	KindSliceExpr
	KindCallExpr
	KindArgList
	KindThisExpr
	KindMaskExpr
	KindListExpr

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                    "Invalid",
	KindProgram:                    "Program",
	KindDeclList:                   "DeclList",
	KindConstantDecl:               "ConstantDecl",
	KindTypedefDecl:                "TypedefDecl",
	KindInstantiation:              "Instantiation",
	KindHeaderTypeDecl:             "HeaderTypeDecl",
	KindHeaderUnionDecl:            "HeaderUnionDecl",
	KindStructTypeDecl:             "StructTypeDecl",
	KindStructFieldList:            "StructFieldList",
	KindStructField:                "StructField",
	KindEnumDecl:                   "EnumDecl",
	KindErrorDecl:                  "ErrorDecl",
	KindMatchKindDecl:              "MatchKindDecl",
	KindIdentifierList:             "IdentifierList",
	KindSpecifiedIdentifierList:    "SpecifiedIdentifierList",
	KindSpecifiedIdentifier:        "SpecifiedIdentifier",
	KindParserTypeDecl:             "ParserTypeDecl",
	KindParserDecl:                 "ParserDecl",
	KindParserLocalElementList:     "ParserLocalElementList",
	KindParserStateList:            "ParserStateList",
	KindParserState:                "ParserState",
	KindParserStatementList:        "ParserStatementList",
	KindParserBlockStatement:       "ParserBlockStatement",
	KindTransitionStmt:             "TransitionStmt",
	KindSelectExpr:                 "SelectExpr",
	KindSelectCaseList:             "SelectCaseList",
	KindSelectCase:                 "SelectCase",
	KindKeysetExprTuple:            "KeysetExprTuple",
	KindKeysetExprSimple:           "KeysetExprSimple",
	KindSimpleExprList:             "SimpleExprList",
	KindStateExprName:              "StateExprName",
	KindControlTypeDecl:            "ControlTypeDecl",
	KindControlDecl:                "ControlDecl",
	KindControlLocalDeclList:       "ControlLocalDeclList",
	KindPackageTypeDecl:            "PackageTypeDecl",
	KindExternTypeDecl:             "ExternTypeDecl",
	KindExternFunctionDecl:         "ExternFunctionDecl",
	KindMethodPrototypeList:        "MethodPrototypeList",
	KindFunctionPrototype:          "FunctionPrototype",
	KindParameterList:              "ParameterList",
	KindParameter:                  "Parameter",
	KindActionDecl:                 "ActionDecl",
	KindTableDecl:                  "TableDecl",
	KindTablePropertyList:          "TablePropertyList",
	KindTableKeyProperty:           "TableKeyProperty",
	KindTableKeyElemList:           "TableKeyElemList",
	KindTableKeyElem:               "TableKeyElem",
	KindTableActionsProperty:       "TableActionsProperty",
	KindActionRefList:              "ActionRefList",
	KindActionRef:                  "ActionRef",
	KindTableDefaultActionProperty: "TableDefaultActionProperty",
	KindTableSizeProperty:          "TableSizeProperty",
	KindBlockStatement:             "BlockStatement",
	KindStatementList:              "StatementList",
	KindVariableDecl:               "VariableDecl",
	KindAssignmentStmt:             "AssignmentStmt",
	KindIfStmt:                     "IfStmt",
	KindSwitchStmt:                 "SwitchStmt",
	KindSwitchCaseList:             "SwitchCaseList",
	KindSwitchCase:                 "SwitchCase",
	KindReturnStmt:                 "ReturnStmt",
	KindExitStmt:                   "ExitStmt",
	KindEmptyStmt:                  "EmptyStmt",
	KindExprStmt:                   "ExprStmt",
	KindTypeRef:                    "TypeRef",
	KindBaseTypeBool:               "BaseTypeBool",
	KindBaseTypeInt:                "BaseTypeInt",
	KindBaseTypeBit:                "BaseTypeBit",
	KindBaseTypeVarbit:             "BaseTypeVarbit",
	KindBaseTypeString:             "BaseTypeString",
	KindBaseTypeVoid:               "BaseTypeVoid",
	KindBaseTypeError:              "BaseTypeError",
	KindBaseTypeMatchKind:          "BaseTypeMatchKind",
	KindIntegerTypeSize:            "IntegerTypeSize",
	KindTypeArgList:                "TypeArgList",
	KindTypeArg:                    "TypeArg",
	KindTupleType:                  "TupleType",
	KindHeaderStackType:            "HeaderStackType",
	KindSpecializedType:            "SpecializedType",
	KindDontCareType:               "DontCareType",
	KindIdent:                      "Ident",
	KindTypeIdent:                  "TypeIdent",
	KindIntLiteral:                 "IntLiteral",
	KindStringLiteral:              "StringLiteral",
	KindBoolLiteral:                "BoolLiteral",
	KindBinaryExpr:                 "BinaryExpr",
	KindUnaryExpr:                  "UnaryExpr",
	KindCastExpr:                   "CastExpr",
	KindMemberExpr:                 "MemberExpr",
	KindIndexExpr:                  "IndexExpr",
	KindSliceExpr:                  "SliceExpr",
	KindCallExpr:                   "CallExpr",
	KindArgList:                    "ArgList",
	KindThisExpr:                   "ThisExpr",
	KindMaskExpr:                   "MaskExpr",
	KindListExpr:                   "ListExpr",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
