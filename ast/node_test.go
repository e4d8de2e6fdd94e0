package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu6ge/parser-1/lexer"
)

func pos(line, col int) lexer.Position {
	return lexer.Position{Line: line, Column: col}
}

func TestNewIdentifier(t *testing.T) {
	sp := Span{Start: pos(1, 1), End: pos(1, 4)}
	id := NewIdentifier(sp, []byte("Foo"))
	assert.Equal(t, KIdentifier, id.Kind())
	assert.Equal(t, sp, id.Span())
	assert.Equal(t, "Foo", id.String())
}

func TestNewVariable(t *testing.T) {
	sp := Span{Start: pos(2, 1), End: pos(2, 5)}
	v := NewVariable(sp, []byte("name"))
	assert.Equal(t, KVariable, v.Kind())
	assert.Equal(t, sp, v.Span())
	assert.Equal(t, "$name", v.String())

	var _ Expression = v
}

func TestJoinSpans(t *testing.T) {
	a := Span{Start: pos(1, 1), End: pos(1, 5)}
	b := Span{Start: pos(3, 1), End: pos(3, 9)}
	joined := JoinSpans(a, b)
	assert.Equal(t, a.Start, joined.Start)
	assert.Equal(t, b.End, joined.End)
}

type recordingVisitor struct {
	visited []Node
}

func (r *recordingVisitor) Visit(n Node) Visitor {
	r.visited = append(r.visited, n)
	return r
}

func TestWalkVisitsTopLevelStatementsInOrder(t *testing.T) {
	stmt1 := &ExpressionStmt{
		BaseNode: BaseNode{NodeKind: KExpressionStmt, NodeSpan: Span{Start: pos(1, 1), End: pos(1, 2)}},
		Expr:     NewVariable(Span{Start: pos(1, 1), End: pos(1, 2)}, []byte("a")),
	}
	stmt2 := &ExpressionStmt{
		BaseNode: BaseNode{NodeKind: KExpressionStmt, NodeSpan: Span{Start: pos(2, 1), End: pos(2, 2)}},
		Expr:     NewVariable(Span{Start: pos(2, 1), End: pos(2, 2)}, []byte("b")),
	}
	prog := &Program{Statements: []Statement{stmt1, stmt2}}

	rv := &recordingVisitor{}
	Walk(rv, prog)

	require.Len(t, rv.visited, 2)
	assert.Same(t, stmt1, rv.visited[0])
	assert.Same(t, stmt2, rv.visited[1])
}

func TestWalkNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Walk(nil, &Program{})
		Walk(&recordingVisitor{}, nil)
	})
}

func TestBaseNodeKindAndSpan(t *testing.T) {
	sp := Span{Start: pos(5, 1), End: pos(5, 10)}
	b := BaseNode{NodeKind: KIdentifier, NodeSpan: sp}
	assert.Equal(t, KIdentifier, b.Kind())
	assert.Equal(t, sp, b.Span())
}
