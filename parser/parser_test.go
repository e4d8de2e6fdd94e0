package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu6ge/parser-1/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func firstExprStmt(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	require.NotEmpty(t, prog.Statements)
	es, ok := prog.Statements[0].(*ast.ExpressionStmt)
	require.True(t, ok, "expected *ast.ExpressionStmt, got %T", prog.Statements[0])
	return es.Expr
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // Op at the root of the resulting InfixExpr tree
	}{
		{"mul binds tighter than add", "<?php 1 + 2 * 3;", "+"},
		{"concat binds looser than add", "<?php 1 . 2 + 3;", "."},
		{"assignment is lowest among these", "<?php $a = 1 + 2;", "="},
		{"comparison looser than add", "<?php 1 + 2 > 3;", ">"},
		{"logical or loosest", "<?php true && false || true;", "||"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			expr := firstExprStmt(t, prog)
			infix, ok := expr.(*ast.InfixExpr)
			require.True(t, ok, "expected *ast.InfixExpr, got %T", expr)
			assert.Equal(t, tt.want, infix.Op)
		})
	}
}

func TestRightAssociativeAssignmentChains(t *testing.T) {
	prog := mustParse(t, "<?php $a = $b = 1;")
	expr := firstExprStmt(t, prog)
	outer, ok := expr.(*ast.InfixExpr)
	require.True(t, ok)
	assert.Equal(t, "=", outer.Op)
	inner, ok := outer.Right.(*ast.InfixExpr)
	require.True(t, ok, "expected right-hand chain to be an assignment, got %T", outer.Right)
	assert.Equal(t, "=", inner.Op)
}

func TestTernaryAndElvis(t *testing.T) {
	prog := mustParse(t, "<?php $a ? $b : $c;")
	ternary := firstExprStmt(t, prog).(*ast.TernaryExpr)
	assert.NotNil(t, ternary.Then)
	assert.NotNil(t, ternary.Else)

	prog = mustParse(t, "<?php $a ?: $c;")
	elvis := firstExprStmt(t, prog).(*ast.TernaryExpr)
	assert.Nil(t, elvis.Then)
	assert.NotNil(t, elvis.Else)
}

func TestNullCoalesce(t *testing.T) {
	prog := mustParse(t, "<?php $a ?? $b ?? $c;")
	outer := firstExprStmt(t, prog).(*ast.CoalesceExpr)
	inner, ok := outer.Right.(*ast.CoalesceExpr)
	require.True(t, ok, "?? is right-associative and should nest on the right operand, got %T", outer.Right)
	assert.NotNil(t, inner.Left)
}

func TestMemberAccessChain(t *testing.T) {
	prog := mustParse(t, "<?php $obj->foo()->bar;")
	fetch, ok := firstExprStmt(t, prog).(*ast.PropertyFetchExpr)
	require.True(t, ok)
	assert.Equal(t, "bar", string(fetch.Property.Ident.Name))
	call, ok := fetch.Target.(*ast.MethodCallExpr)
	require.True(t, ok)
	assert.Equal(t, "foo", string(call.Method.Ident.Name))
}

func TestNullsafeChain(t *testing.T) {
	prog := mustParse(t, "<?php $obj?->foo?->bar;")
	fetch, ok := firstExprStmt(t, prog).(*ast.NullsafePropertyFetchExpr)
	require.True(t, ok)
	assert.Equal(t, "bar", string(fetch.Property.Ident.Name))
}

func TestMatchExpressionSingleDefault(t *testing.T) {
	prog := mustParse(t, `<?php match ($x) {
		1, 2 => "low",
		default => "high",
	};`)
	m := firstExprStmt(t, prog).(*ast.MatchExpr)
	require.Len(t, m.Arms, 2)
	assert.Len(t, m.Arms[0].Conditions, 2)
	assert.Nil(t, m.Arms[1].Conditions)
	require.NotNil(t, m.Default)
}

func TestMatchExpressionMultipleDefaultsErrors(t *testing.T) {
	_, err := Parse([]byte(`<?php match ($x) {
		default => 1,
		default => 2,
	};`))
	require.Error(t, err)
}

func TestArrayLiteralShortAndLongForm(t *testing.T) {
	prog := mustParse(t, `<?php [1, "k" => 2, ...$rest];`)
	arr := firstExprStmt(t, prog).(*ast.ArrayExpr)
	assert.True(t, arr.Short)
	require.Len(t, arr.Items, 3)
	assert.Nil(t, arr.Items[0].Key)
	assert.NotNil(t, arr.Items[1].Key)
	assert.True(t, arr.Items[2].Spread)

	prog = mustParse(t, `<?php array(1, 2);`)
	arr = firstExprStmt(t, prog).(*ast.ArrayExpr)
	assert.False(t, arr.Short)
}

func TestClosureUsesAndArrowFunction(t *testing.T) {
	prog := mustParse(t, `<?php function ($x) use (&$y) { return $x + $y; };`)
	fn := firstExprStmt(t, prog).(*ast.AnonymousFunctionExpr)
	require.Len(t, fn.Uses, 1)
	assert.True(t, fn.Uses[0].ByRef)

	prog = mustParse(t, `<?php fn($x) => $x + 1;`)
	arrow := firstExprStmt(t, prog).(*ast.ArrowFunctionExpr)
	require.Len(t, arrow.Params, 1)
}

func TestNamedAndSpreadArguments(t *testing.T) {
	prog := mustParse(t, `<?php foo(name: 1, ...$rest);`)
	call := firstExprStmt(t, prog).(*ast.CallExpr)
	require.Len(t, call.Args, 2)
	require.NotNil(t, call.Args[0].Name)
	assert.Equal(t, "name", string(call.Args[0].Name.Name))
	assert.True(t, call.Args[1].Spread)
}

func TestAnonymousClassExpression(t *testing.T) {
	prog := mustParse(t, `<?php new class extends Base implements Iface {
		public function foo() {}
	};`)
	newExpr := firstExprStmt(t, prog).(*ast.NewExpr)
	require.NotNil(t, newExpr.Class)
	require.NotNil(t, newExpr.Class.Extends)
	require.Len(t, newExpr.Class.Implements, 1)
}

func TestIfElseifElseAltSyntax(t *testing.T) {
	prog := mustParse(t, `<?php
if ($a):
	echo 1;
elseif ($b):
	echo 2;
else:
	echo 3;
endif;`)
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.ElseIfs, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestForeachKeyValueAndByRef(t *testing.T) {
	prog := mustParse(t, `<?php foreach ($items as $k => &$v) { echo $v; }`)
	fe, ok := prog.Statements[0].(*ast.ForeachStmt)
	require.True(t, ok)
	assert.NotNil(t, fe.KeyVar)
	assert.True(t, fe.ByRef)
}

func TestTryCatchMultiTypeFinally(t *testing.T) {
	prog := mustParse(t, `<?php
try {
	foo();
} catch (TypeError | ValueError $e) {
	bar();
} finally {
	baz();
}`)
	try, ok := prog.Statements[0].(*ast.TryStmt)
	require.True(t, ok)
	require.Len(t, try.Catches, 1)
	assert.Len(t, try.Catches[0].Types, 2)
	assert.NotNil(t, try.Catches[0].Varname)
	assert.NotNil(t, try.Finally)
}

func TestSwitchAltSyntax(t *testing.T) {
	prog := mustParse(t, `<?php
switch ($x):
	case 1:
		echo "one";
		break;
	default:
		echo "other";
endswitch;`)
	sw, ok := prog.Statements[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	assert.Nil(t, sw.Cases[1].Condition)
}

func TestAttributeGroupsOnFunction(t *testing.T) {
	prog := mustParse(t, `<?php #[Route("/x")] function handler() {}`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Len(t, fn.Attributes, 1)
}

func TestCommentsSurfaceBetweenStatements(t *testing.T) {
	prog := mustParse(t, "<?php\n// leading\necho 1;\n")
	require.GreaterOrEqual(t, len(prog.Statements), 2)
	_, ok := prog.Statements[0].(*ast.CommentStmt)
	assert.True(t, ok)
}
