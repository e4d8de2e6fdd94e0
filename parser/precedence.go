package parser

import "github.com/tu6ge/parser-1/lexer"

// Precedence is the single authoritative ordering spec.md §4.1 asks for,
// grounded on original_source/trunk_parser/src/parser/precedence.rs's operator
// groupings (see DESIGN.md's Open Questions entry), numbered loosest-to-
// tightest since the expression loop below climbs by comparing magnitudes
// directly (a tighter-binding operator must outrank a looser one).
type Precedence int

const (
	Lowest Precedence = iota
	KeyOr
	KeyXor
	KeyAnd
	Print
	Yield
	YieldFrom
	Assignment
	Ternary
	NullCoalesce
	Or
	And
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Equality
	LtGt
	Concat
	BitShift
	AddSub
	MulDivMod
	Bang
	Instanceof
	Prefix
	Pow
	CloneOrNew
	CallDim
	ObjectAccess
	IncDec
)

// Associativity of a precedence class; classes with no listed behavior
// (prefix, call/dim, object-access, inc/dec) are treated as "none" — the
// Pratt loop breaks on equal precedence rather than looping or erroring.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
	AssocNonAssociative
)

func (p Precedence) Associativity() Associativity {
	switch p {
	case Instanceof, MulDivMod, AddSub, BitShift, Concat, BitwiseAnd, BitwiseOr,
		BitwiseXor, And, Or, KeyAnd, KeyOr, KeyXor:
		return AssocLeft
	case Pow, NullCoalesce, Assignment:
		return AssocRight
	case Ternary, Equality, LtGt:
		return AssocNonAssociative
	default:
		return AssocNone
	}
}

// prefixPrecedence implements Precedence.prefix(kind).
func prefixPrecedence(kind lexer.Kind) Precedence {
	switch kind {
	case lexer.Bang:
		return Bang
	case lexer.KwClone, lexer.KwNew:
		return CloneOrNew
	default:
		return Prefix
	}
}

// infixPrecedence implements Precedence.infix(kind). ok is false for tokens
// that have no infix meaning.
func infixPrecedence(kind lexer.Kind) (Precedence, bool) {
	switch kind {
	case lexer.Pow:
		return Pow, true
	case lexer.KwInstanceof:
		return Instanceof, true
	case lexer.Star, lexer.Slash, lexer.Percent:
		return MulDivMod, true
	case lexer.Plus, lexer.Minus:
		return AddSub, true
	case lexer.Shl, lexer.Shr:
		return BitShift, true
	case lexer.Dot:
		return Concat, true
	case lexer.Lt, lexer.LtEq, lexer.Gt, lexer.GtEq:
		return LtGt, true
	case lexer.EqEq, lexer.NotEq, lexer.EqEqEq, lexer.NotEqEq, lexer.Spaceship:
		return Equality, true
	case lexer.Amp:
		return BitwiseAnd, true
	case lexer.Caret:
		return BitwiseXor, true
	case lexer.Pipe:
		return BitwiseOr, true
	case lexer.BoolAnd:
		return And, true
	case lexer.BoolOr:
		return Or, true
	case lexer.KwAnd:
		return KeyAnd, true
	case lexer.KwXor:
		return KeyXor, true
	case lexer.KwOr:
		return KeyOr, true
	case lexer.QuestionQuestion:
		return NullCoalesce, true
	case lexer.Question:
		return Ternary, true
	case lexer.Assign, lexer.PlusEq, lexer.MinusEq, lexer.StarEq, lexer.SlashEq,
		lexer.DotEq, lexer.PercentEq, lexer.AmpEq, lexer.PipeEq, lexer.CaretEq,
		lexer.ShlEq, lexer.ShrEq, lexer.PowEq, lexer.CoalesceEq:
		return Assignment, true
	case lexer.KwYieldFrom:
		return YieldFrom, true
	case lexer.KwYield:
		return Yield, true
	case lexer.KwPrint:
		return Print, true
	default:
		return Lowest, false
	}
}

// postfixPrecedence implements Precedence.postfix(kind).
func postfixPrecedence(kind lexer.Kind) (Precedence, bool) {
	switch kind {
	case lexer.QuestionQuestion:
		return NullCoalesce, true
	case lexer.Inc, lexer.Dec:
		return IncDec, true
	case lexer.LParen, lexer.LBracket:
		return CallDim, true
	case lexer.Arrow, lexer.NullsafeArrow, lexer.DoubleColon:
		return ObjectAccess, true
	default:
		return Lowest, false
	}
}

// isAssignOp reports whether kind is one of the `=`-family operators, all of
// which map to Assignment precedence (spec.md §4.1).
func isAssignOp(kind lexer.Kind) bool {
	switch kind {
	case lexer.Assign, lexer.PlusEq, lexer.MinusEq, lexer.StarEq, lexer.SlashEq,
		lexer.DotEq, lexer.PercentEq, lexer.AmpEq, lexer.PipeEq, lexer.CaretEq,
		lexer.ShlEq, lexer.ShrEq, lexer.PowEq, lexer.CoalesceEq:
		return true
	default:
		return false
	}
}
