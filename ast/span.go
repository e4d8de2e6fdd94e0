package ast

import "github.com/tu6ge/parser-1/lexer"

// Span anchors a node to its source extent. Every statement, expression,
// identifier, and variable carries one (spec.md §3); it is frozen once the
// node is constructed and never mutated afterward.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// JoinSpans returns the span from a's start to b's end; it covers both only
// when a starts no later than b and b ends no earlier than a.
func JoinSpans(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}
