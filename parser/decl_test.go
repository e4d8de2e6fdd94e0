package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu6ge/parser-1/ast"
)

func firstStmt(t *testing.T, src string) ast.Statement {
	t.Helper()
	prog := mustParse(t, src)
	require.NotEmpty(t, prog.Statements)
	return prog.Statements[0]
}

func TestClassWithModifiersAndMembers(t *testing.T) {
	stmt := firstStmt(t, `<?php
abstract class Shape {
	public readonly string $name;
	private const SIDES = 0;
	abstract public function area(): float;
	final public static function describe(): string { return "shape"; }
}`)
	cls, ok := stmt.(*ast.ClassDecl)
	require.True(t, ok)
	assert.True(t, hasModifier(cls.Modifiers, ast.ModAbstract))
	require.Len(t, cls.Members, 4)

	prop, ok := cls.Members[0].(*ast.Property)
	require.True(t, ok)
	assert.True(t, hasModifier(prop.Modifiers, ast.ModReadonly))

	constDecl, ok := cls.Members[1].(*ast.ClassConst)
	require.True(t, ok)
	assert.True(t, hasModifier(constDecl.Modifiers, ast.ModPrivate))

	method, ok := cls.Members[2].(*ast.ClassMethod)
	require.True(t, ok)
	assert.Nil(t, method.Body)
}

func TestConstructorPropertyPromotion(t *testing.T) {
	stmt := firstStmt(t, `<?php
class Point {
	public function __construct(
		public readonly float $x,
		protected float $y = 0.0,
	) {}
}`)
	cls := stmt.(*ast.ClassDecl)
	ctor := cls.Members[0].(*ast.ClassMethod)
	require.Len(t, ctor.Params, 2)
	assert.Equal(t, "public", ctor.Params[0].Visibility)
	assert.True(t, ctor.Params[0].Readonly)
	assert.Equal(t, "protected", ctor.Params[1].Visibility)
	assert.NotNil(t, ctor.Params[1].Default)
}

func TestInterfaceAndTraitDecl(t *testing.T) {
	prog := mustParse(t, `<?php
interface Comparable {
	public function compareTo(self $other): int;
}
trait Greet {
	public function hello(): string { return "hi"; }
}`)
	require.Len(t, prog.Statements, 2)
	iface, ok := prog.Statements[0].(*ast.InterfaceDecl)
	require.True(t, ok)
	assert.Len(t, iface.Members, 1)

	trait, ok := prog.Statements[1].(*ast.TraitDecl)
	require.True(t, ok)
	assert.Len(t, trait.Members, 1)
}

func TestTraitUseAdaptations(t *testing.T) {
	stmt := firstStmt(t, `<?php
class C {
	use A, B {
		A::foo insteadof B;
		B::bar as protected baz;
	}
}`)
	cls := stmt.(*ast.ClassDecl)
	use, ok := cls.Members[0].(*ast.TraitUse)
	require.True(t, ok)
	require.Len(t, use.Traits, 2)
	require.Len(t, use.Adaptations, 2)

	prec, ok := use.Adaptations[0].(*ast.TraitPrecedenceAdaptation)
	require.True(t, ok)
	assert.Equal(t, "foo", string(prec.Method.Name))
	require.Len(t, prec.InsteadOf, 1)

	alias, ok := use.Adaptations[1].(*ast.TraitAliasAdaptation)
	require.True(t, ok)
	assert.Equal(t, "bar", string(alias.Method.Name))
	require.NotNil(t, alias.Alias)
	assert.Equal(t, "baz", string(alias.Alias.Name))
	require.NotNil(t, alias.Visibility)
	assert.Equal(t, ast.ModProtected, *alias.Visibility)
}

func TestEnumBackedAndPure(t *testing.T) {
	prog := mustParse(t, `<?php
enum Suit: string {
	case Hearts = "H";
	case Spades = "S";
}
enum Direction {
	case Up;
	case Down;
}`)
	backed := prog.Statements[0].(*ast.EnumDecl)
	require.NotNil(t, backed.BackingType)
	require.Len(t, backed.Members, 2)
	firstCase := backed.Members[0].(*ast.EnumCase)
	assert.NotNil(t, firstCase.Value)

	pure := prog.Statements[1].(*ast.EnumDecl)
	assert.Nil(t, pure.BackingType)
	secondCase := pure.Members[0].(*ast.EnumCase)
	assert.Nil(t, secondCase.Value)
}

func TestClassDeclWithAttributePrefix(t *testing.T) {
	stmt := firstStmt(t, `<?php #[Entity] class Model { public int $id; }`)
	cls, ok := stmt.(*ast.ClassDecl)
	require.True(t, ok)
	require.Len(t, cls.Attributes, 1)
}

func TestMultipleModifiersError(t *testing.T) {
	_, err := Parse([]byte(`<?php class C { public public function f() {} }`))
	require.Error(t, err)
}

func TestConflictingVisibilityModifiersError(t *testing.T) {
	_, err := Parse([]byte(`<?php class C { public private function f() {} }`))
	require.Error(t, err)
}

func TestConflictingAbstractFinalModifiersError(t *testing.T) {
	_, err := Parse([]byte(`<?php abstract class C { abstract final function f(); }`))
	require.Error(t, err)
}

func TestStaticReadonlyPropertyError(t *testing.T) {
	_, err := Parse([]byte(`<?php class C { public static readonly int $x; }`))
	require.Error(t, err)
}

func TestReadonlyPropertyWithDefaultError(t *testing.T) {
	_, err := Parse([]byte(`<?php class C { public readonly int $x = 1; }`))
	require.Error(t, err)
}

func TestAnonymousFunctionParams(t *testing.T) {
	prog := mustParse(t, `<?php function (int $a, ?string $b = null, ...$rest) {};`)
	fn, ok := prog.Statements[0].(*ast.ExpressionStmt).Expr.(*ast.AnonymousFunctionExpr)
	require.True(t, ok)
	require.Len(t, fn.Params, 3)
	assert.True(t, fn.Params[2].Variadic)
	assert.NotNil(t, fn.Params[1].Default)
}
