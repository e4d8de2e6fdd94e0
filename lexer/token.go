// Package lexer turns PHP source bytes into a token stream for the parser.
//
// It is deliberately thin: all grammar decisions (precedence, scoping,
// identifier disambiguation) live in the parser package. The lexer only
// recognizes the token kinds the parser's boundary contract names.
package lexer

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Unknown

	// Literals and names.
	Integer   // 123, 0x1F, 0b101, 0o17, 1_000
	Float     // 1.5, 1e10
	Str       // 'single quoted', fully resolved constant string
	Variable  // $name
	Identifier
	QualifiedIdentifier     // A\B
	FullyQualifiedIdentifier // \A\B
	InlineHTML

	// Double-quoted / heredoc / shell-exec interpolation structure.
	DoubleQuote      // "
	Backtick         // `
	StartHeredoc      // <<<LABEL or <<<'LABEL'
	EndHeredoc       // terminating label
	StringPart        // raw bytes between interpolation boundaries
	DollarOpenBrace   // ${
	CurlyOpen         // {$   (the `{` that opens a `{$expr}` interpolation)

	OpenTag  // <?php
	OpenTagWithEcho // <?=
	CloseTag // ?>

	CommentLine    // //... or #...
	CommentBlock   // /* ... */
	CommentDoc     // /** ... */

	Attribute // #[

	// Keywords.
	KwAbstract
	KwAnd
	KwArray
	KwAs
	KwBreak
	KwCallable
	KwCase
	KwCatch
	KwClass
	KwClone
	KwConst
	KwContinue
	KwDeclare
	KwDefault
	KwDo
	KwEcho
	KwElse
	KwElseif
	KwEmpty
	KwEnddeclare
	KwEndfor
	KwEndforeach
	KwEndif
	KwEndswitch
	KwEndwhile
	KwEnum
	KwExtends
	KwFinal
	KwFinally
	KwFn
	KwFor
	KwForeach
	KwFunction
	KwGlobal
	KwGoto
	KwHaltCompiler
	KwIf
	KwImplements
	KwInclude
	KwIncludeOnce
	KwInstanceof
	KwInsteadof
	KwInterface
	KwIsset
	KwList
	KwMatch
	KwNamespace
	KwNew
	KwOr
	KwParent
	KwPrint
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwRequire
	KwRequireOnce
	KwReturn
	KwSelf
	KwStatic
	KwSwitch
	KwThrow
	KwTrait
	KwTry
	KwUnset
	KwUse
	KwVar
	KwWhile
	KwXor
	KwYield
	KwYieldFrom // never emitted by the lexer; the parser reads `yield from` as KwYield + identifier "from"

	// Magic constants.
	MagicLine
	MagicFile
	MagicDir
	MagicClass
	MagicTrait
	MagicMethod
	MagicFunction
	MagicNamespace

	// Operators and punctuation.
	Plus
	Minus
	Star
	Slash
	Percent
	Pow   // **
	Dot   // .
	Bang  // !
	Tilde // ~
	Amp   // &
	Pipe  // |
	Caret // ^
	Lt
	Gt
	LtEq
	GtEq
	EqEq
	NotEq
	EqEqEq
	NotEqEq
	Spaceship // <=>
	Shl       // <<
	Shr       // >>
	BoolAnd   // &&
	BoolOr    // ||
	Question  // ?
	QuestionQuestion // ??
	Colon
	DoubleColon // ::
	Semicolon
	Comma
	Arrow        // ->
	NullsafeArrow // ?->
	DoubleArrow  // =>
	Ellipsis     // ...
	At           // @
	Dollar       // $
	Backslash    // \
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Inc // ++
	Dec // --

	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	DotEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq
	PowEq
	CoalesceEq // ??=

	IntCast
	DoubleCast
	StringCast
	ArrayCast
	ObjectCast
	BoolCast
	UnsetCast
)

var names = map[Kind]string{
	EOF: "EOF", Unknown: "Unknown",
	Integer: "Integer", Float: "Float", Str: "Str", Variable: "Variable",
	Identifier: "Identifier", QualifiedIdentifier: "QualifiedIdentifier",
	FullyQualifiedIdentifier: "FullyQualifiedIdentifier", InlineHTML: "InlineHTML",
	DoubleQuote: "DoubleQuote", Backtick: "Backtick", StartHeredoc: "StartHeredoc",
	EndHeredoc: "EndHeredoc", StringPart: "StringPart", DollarOpenBrace: "DollarOpenBrace",
	CurlyOpen: "CurlyOpen", OpenTag: "OpenTag", OpenTagWithEcho: "OpenTagWithEcho",
	CloseTag: "CloseTag", CommentLine: "CommentLine", CommentBlock: "CommentBlock",
	CommentDoc: "CommentDoc", Attribute: "Attribute",
}

// String renders a human-readable token kind name for diagnostics.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	if n, ok := keywordNameByKind[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps lower-cased keyword text to its token kind. PHP keywords are
// case-insensitive; the lexer downcases before lookup.
var Keywords = map[string]Kind{
	"abstract": KwAbstract, "and": KwAnd, "array": KwArray, "as": KwAs,
	"break": KwBreak, "callable": KwCallable, "case": KwCase, "catch": KwCatch,
	"class": KwClass, "clone": KwClone, "const": KwConst, "continue": KwContinue,
	"declare": KwDeclare, "default": KwDefault, "do": KwDo, "echo": KwEcho,
	"else": KwElse, "elseif": KwElseif, "empty": KwEmpty, "enddeclare": KwEnddeclare,
	"endfor": KwEndfor, "endforeach": KwEndforeach, "endif": KwEndif,
	"endswitch": KwEndswitch, "endwhile": KwEndwhile, "enum": KwEnum,
	"extends": KwExtends, "final": KwFinal, "finally": KwFinally, "fn": KwFn,
	"for": KwFor, "foreach": KwForeach, "function": KwFunction, "global": KwGlobal,
	"goto": KwGoto, "__halt_compiler": KwHaltCompiler, "if": KwIf,
	"implements": KwImplements, "include": KwInclude, "include_once": KwIncludeOnce,
	"instanceof": KwInstanceof, "insteadof": KwInsteadof, "interface": KwInterface,
	"isset": KwIsset, "list": KwList, "match": KwMatch, "namespace": KwNamespace,
	"new": KwNew, "or": KwOr, "parent": KwParent, "print": KwPrint,
	"private": KwPrivate, "protected": KwProtected, "public": KwPublic,
	"readonly": KwReadonly, "require": KwRequire, "require_once": KwRequireOnce,
	"return": KwReturn, "self": KwSelf, "static": KwStatic, "switch": KwSwitch,
	"throw": KwThrow, "trait": KwTrait, "try": KwTry, "unset": KwUnset,
	"use": KwUse, "var": KwVar, "while": KwWhile, "xor": KwXor, "yield": KwYield,

	"__line__": MagicLine, "__file__": MagicFile, "__dir__": MagicDir,
	"__class__": MagicClass, "__trait__": MagicTrait, "__method__": MagicMethod,
	"__function__": MagicFunction, "__namespace__": MagicNamespace,
}

var keywordNameByKind = func() map[Kind]string {
	m := make(map[Kind]string, len(Keywords))
	for text, k := range Keywords {
		m[k] = text
	}
	return m
}()

// Position is a single point in the source: 1-based line/column plus a
// 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is one lexical unit: its kind, the raw source bytes it spans, and
// start/end positions.
type Token struct {
	Kind  Kind
	Value []byte
	Start Position
	End   Position

	// IndentChar/IndentAmount are populated only on EndHeredoc tokens, per
	// the heredoc-dedent contract in spec.md §4.5.
	IndentChar   byte
	IndentAmount int
	// Nowdoc distinguishes a <<<'LABEL'...LABEL block (no interpolation)
	// from a <<<LABEL...LABEL heredoc, both lexed as StartHeredoc/EndHeredoc.
	Nowdoc bool
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Value, t.Start.Line, t.Start.Column)
}
