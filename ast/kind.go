package ast

// Kind tags every concrete node type. Unlike the teacher's ASTKind (which
// mirrors Zend's bit-flagged zend_ast.h layout so the VM can distinguish
// declaration/list/scalar nodes by bit test), this parser has no VM behind
// it, so a plain sequential enum is enough — see DESIGN.md.
type Kind int

const (
	KUnknown Kind = iota

	// Identifiers / variables.
	KIdentifier
	KVariable

	// Statements.
	KInlineHTML
	KNamespace
	KUse
	KGroupUse
	KConstant
	KExpressionStmt
	KEcho
	KReturn
	KIf
	KWhile
	KDoWhile
	KFor
	KForeach
	KSwitch
	KBreak
	KContinue
	KTry
	KThrowStmt
	KGoto
	KLabel
	KDeclare
	KGlobal
	KStaticVars
	KHaltCompiler
	KFunctionDecl
	KClassDecl
	KInterfaceDecl
	KTraitDecl
	KEnumDecl
	KBlock
	KNoop
	KComment

	// Expressions: literals.
	KInteger
	KFloat
	KString
	KBool
	KNull

	KDynamicVariable
	KSelf
	KStatic
	KParent
	KArray
	KInterpolatedString
	KHeredoc
	KNowdoc
	KShellExec

	KCall
	KMethodCall
	KNullsafeMethodCall
	KStaticMethodCall
	KPropertyFetch
	KNullsafePropertyFetch
	KStaticPropertyFetch
	KConstFetch
	KArrayIndex
	KNew
	KClone
	KThrowExpr
	KYield
	KYieldFrom
	KMatch
	KTernary
	KCoalesce
	KInfix

	KNegate
	KUnaryPlus
	KBitwiseNot
	KBooleanNot
	KPreInc
	KPreDec
	KPostInc
	KPostDec

	KCast
	KErrorSuppress
	KPrint
	KMagicConst
	KInclude

	KAnonymousFunction
	KArrowFunction
	KAnonymousClass

	// Type hints (params, return types, properties).
	KNullableType
	KUnionType
	KIntersectionType

	// Support structures (not top-level statements/expressions, but
	// carried as span-bearing payload nodes).
	KParam
	KArg
	KArrayItem
	KMatchArm
	KCatchClause
	KClassConst
	KProperty
	KClassMethod
	KTraitUse
	KTraitAliasAdaptation
	KTraitVisibilityAdaptation
	KTraitPrecedenceAdaptation
	KAttributeGroup
	KAttribute
	KEnumCase
)

var kindNames = map[Kind]string{
	KUnknown: "Unknown", KIdentifier: "Identifier", KVariable: "Variable",
	KInlineHTML: "InlineHtml", KNamespace: "Namespace", KUse: "Use", KGroupUse: "GroupUse",
	KConstant: "Constant", KExpressionStmt: "Expression", KEcho: "Echo", KReturn: "Return",
	KIf: "If", KWhile: "While", KDoWhile: "DoWhile", KFor: "For", KForeach: "Foreach",
	KSwitch: "Switch", KBreak: "Break", KContinue: "Continue", KTry: "Try",
	KThrowStmt: "ThrowStmt", KGoto: "Goto", KLabel: "Label", KDeclare: "Declare",
	KGlobal: "Global", KStaticVars: "Static", KHaltCompiler: "HaltCompiler",
	KFunctionDecl: "Function", KClassDecl: "Class", KInterfaceDecl: "Interface",
	KTraitDecl: "Trait", KEnumDecl: "Enum", KBlock: "Block", KNoop: "Noop", KComment: "Comment",
	KInteger: "Integer", KFloat: "Float", KString: "String", KBool: "Bool", KNull: "Null",
	KDynamicVariable: "DynamicVariable", KSelf: "Self", KStatic: "Static", KParent: "Parent",
	KArray: "Array", KInterpolatedString: "InterpolatedString", KHeredoc: "Heredoc",
	KNowdoc: "Nowdoc", KShellExec: "ShellExec", KCall: "Call", KMethodCall: "MethodCall",
	KNullsafeMethodCall: "NullsafeMethodCall", KStaticMethodCall: "StaticMethodCall",
	KPropertyFetch: "PropertyFetch", KNullsafePropertyFetch: "NullsafePropertyFetch",
	KStaticPropertyFetch: "StaticPropertyFetch", KConstFetch: "ConstFetch",
	KArrayIndex: "ArrayIndex", KNew: "New", KClone: "Clone", KThrowExpr: "Throw",
	KYield: "Yield", KYieldFrom: "YieldFrom", KMatch: "Match", KTernary: "Ternary",
	KCoalesce: "Coalesce", KInfix: "Infix", KNegate: "Negate", KUnaryPlus: "UnaryPlus",
	KBitwiseNot: "BitwiseNot", KBooleanNot: "BooleanNot", KPreInc: "PreInc", KPreDec: "PreDec",
	KPostInc: "Increment", KPostDec: "Decrement", KCast: "Cast", KErrorSuppress: "ErrorSuppress",
	KPrint: "Print", KMagicConst: "MagicConst", KInclude: "Include",
	KAnonymousFunction: "AnonymousFunction", KArrowFunction: "ArrowFunction",
	KAnonymousClass: "AnonymousClass", KNullableType: "NullableType", KUnionType: "UnionType",
	KIntersectionType: "IntersectionType", KParam: "Param", KArg: "Arg", KArrayItem: "ArrayItem",
	KMatchArm: "MatchArm", KCatchClause: "CatchClause", KClassConst: "ClassConst",
	KProperty: "Property", KClassMethod: "ClassMethod", KTraitUse: "TraitUse",
	KTraitAliasAdaptation: "Alias", KTraitVisibilityAdaptation: "Visibility",
	KTraitPrecedenceAdaptation: "Precedence", KAttributeGroup: "AttributeGroup",
	KAttribute: "Attribute", KEnumCase: "EnumCase",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}
