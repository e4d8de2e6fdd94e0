// Package errors defines the closed diagnostic taxonomy the parser reports
// (spec.md §7). Every variant carries a Span (or a plain Position, for the
// end-of-file case that has no extent) and whatever contextual strings it
// needs; there is no free-form fmt.Errorf escape hatch so downstream callers
// can switch exhaustively on Type.
package errors

import (
	"fmt"
	"strings"

	"github.com/tu6ge/parser-1/ast"
	"github.com/tu6ge/parser-1/lexer"
)

// Type tags one variant of the closed error taxonomy.
type Type int

const (
	UnexpectedEndOfFile Type = iota
	UnexpectedToken
	ExpectedToken
	ExpectedItemDefinitionAfterAttributes
	CannotFindTypeInCurrentScope
	MatchExpressionWithMultipleDefaultArms
	MultipleModifiers
	ConflictingModifiers
	StaticPropertyUsingReadonlyModifier
	ReadonlyPropertyHasDefaultValue
)

var typeNames = map[Type]string{
	UnexpectedEndOfFile:                    "UnexpectedEndOfFile",
	UnexpectedToken:                        "UnexpectedToken",
	ExpectedToken:                          "ExpectedToken",
	ExpectedItemDefinitionAfterAttributes:  "ExpectedItemDefinitionAfterAttributes",
	CannotFindTypeInCurrentScope:           "CannotFindTypeInCurrentScope",
	MatchExpressionWithMultipleDefaultArms: "MatchExpressionWithMultipleDefaultArms",
	MultipleModifiers:                      "MultipleModifiers",
	ConflictingModifiers:                   "ConflictingModifiers",
	StaticPropertyUsingReadonlyModifier:    "StaticPropertyUsingReadonlyModifier",
	ReadonlyPropertyHasDefaultValue:        "ReadonlyPropertyHasDefaultValue",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Error is a single diagnostic: its variant, the offending span, and any
// contextual strings the variant needs (operator text, expected-token list,
// modifier names, ...). No partial program tree is ever returned alongside
// an Error (spec.md §6); parse aborts at the first one.
type Error struct {
	Type     Type
	Span     ast.Span
	Got      string   // the token actually found, where relevant
	Expected []string // the alternatives that would have been accepted
}

func (e *Error) Error() string {
	switch e.Type {
	case UnexpectedEndOfFile:
		return fmt.Sprintf("unexpected end of file at %s", formatPos(e.Span.Start))
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %q at %s", e.Got, formatPos(e.Span.Start))
	case ExpectedToken:
		return fmt.Sprintf("expected %s, got %q at %s", strings.Join(e.Expected, " or "), e.Got, formatPos(e.Span.Start))
	case ExpectedItemDefinitionAfterAttributes:
		return fmt.Sprintf("expected item definition after attributes at %s", formatPos(e.Span.Start))
	case CannotFindTypeInCurrentScope:
		return fmt.Sprintf("cannot find type %q in current scope at %s", e.Got, formatPos(e.Span.Start))
	case MatchExpressionWithMultipleDefaultArms:
		return fmt.Sprintf("match expression has multiple default arms at %s", formatPos(e.Span.Start))
	case MultipleModifiers:
		return fmt.Sprintf("multiple %q modifiers at %s", e.Got, formatPos(e.Span.Start))
	case ConflictingModifiers:
		return fmt.Sprintf("conflicting modifiers %q and %q at %s", e.Got, strings.Join(e.Expected, ""), formatPos(e.Span.Start))
	case StaticPropertyUsingReadonlyModifier:
		return fmt.Sprintf("static property cannot be readonly at %s", formatPos(e.Span.Start))
	case ReadonlyPropertyHasDefaultValue:
		return fmt.Sprintf("readonly property cannot have a default value at %s", formatPos(e.Span.Start))
	default:
		return fmt.Sprintf("parse error at %s", formatPos(e.Span.Start))
	}
}

func formatPos(p lexer.Position) string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func NewUnexpectedEndOfFile(at lexer.Position) *Error {
	return &Error{Type: UnexpectedEndOfFile, Span: ast.Span{Start: at, End: at}}
}

func NewUnexpectedToken(got string, span ast.Span) *Error {
	return &Error{Type: UnexpectedToken, Span: span, Got: got}
}

func NewExpectedToken(expected []string, got string, span ast.Span) *Error {
	return &Error{Type: ExpectedToken, Span: span, Got: got, Expected: expected}
}

func NewExpectedItemDefinitionAfterAttributes(span ast.Span) *Error {
	return &Error{Type: ExpectedItemDefinitionAfterAttributes, Span: span}
}

func NewCannotFindTypeInCurrentScope(kind string, span ast.Span) *Error {
	return &Error{Type: CannotFindTypeInCurrentScope, Span: span, Got: kind}
}

func NewMatchExpressionWithMultipleDefaultArms(span ast.Span) *Error {
	return &Error{Type: MatchExpressionWithMultipleDefaultArms, Span: span}
}

func NewMultipleModifiers(modifier string, span ast.Span) *Error {
	return &Error{Type: MultipleModifiers, Span: span, Got: modifier}
}

func NewConflictingModifiers(a, b string, span ast.Span) *Error {
	return &Error{Type: ConflictingModifiers, Span: span, Got: a, Expected: []string{b}}
}

func NewStaticPropertyUsingReadonlyModifier(span ast.Span) *Error {
	return &Error{Type: StaticPropertyUsingReadonlyModifier, Span: span}
}

func NewReadonlyPropertyHasDefaultValue(span ast.Span) *Error {
	return &Error{Type: ReadonlyPropertyHasDefaultValue, Span: span}
}
