package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/tu6ge/parser-1/errors"
)

func parseErr(t *testing.T, src string) *perrors.Error {
	t.Helper()
	_, err := Parse([]byte(src))
	require.Error(t, err)
	pe, ok := err.(*perrors.Error)
	require.True(t, ok, "expected *errors.Error, got %T", err)
	return pe
}

func TestUnexpectedEndOfFile(t *testing.T) {
	pe := parseErr(t, "<?php if (")
	assert.Equal(t, perrors.UnexpectedEndOfFile, pe.Type)
}

func TestUnexpectedToken(t *testing.T) {
	pe := parseErr(t, "<?php $a = ;")
	assert.Equal(t, perrors.UnexpectedToken, pe.Type)
}

func TestExpectedToken(t *testing.T) {
	pe := parseErr(t, "<?php if (true { echo 1; }")
	assert.Equal(t, perrors.ExpectedToken, pe.Type)
}

func TestExpectedItemDefinitionAfterAttributes(t *testing.T) {
	pe := parseErr(t, "<?php #[Foo] ;")
	assert.Equal(t, perrors.ExpectedItemDefinitionAfterAttributes, pe.Type)
}

func TestCannotFindTypeInCurrentScopeSelf(t *testing.T) {
	pe := parseErr(t, "<?php self::foo();")
	assert.Equal(t, perrors.CannotFindTypeInCurrentScope, pe.Type)
}

func TestCannotFindTypeInCurrentScopeParentOutsideClass(t *testing.T) {
	pe := parseErr(t, "<?php parent::foo();")
	assert.Equal(t, perrors.CannotFindTypeInCurrentScope, pe.Type)
}

func TestMatchExpressionWithMultipleDefaultArmsError(t *testing.T) {
	pe := parseErr(t, `<?php match (1) { default => 1, default => 2 };`)
	assert.Equal(t, perrors.MatchExpressionWithMultipleDefaultArms, pe.Type)
}

func TestMultipleModifiersErrorType(t *testing.T) {
	pe := parseErr(t, `<?php class C { public public function f() {} }`)
	assert.Equal(t, perrors.MultipleModifiers, pe.Type)
}

func TestConflictingModifiersErrorType(t *testing.T) {
	pe := parseErr(t, `<?php class C { public private function f() {} }`)
	assert.Equal(t, perrors.ConflictingModifiers, pe.Type)
}

func TestStaticPropertyUsingReadonlyModifierErrorType(t *testing.T) {
	pe := parseErr(t, `<?php class C { public static readonly int $x; }`)
	assert.Equal(t, perrors.StaticPropertyUsingReadonlyModifier, pe.Type)
}

func TestReadonlyPropertyHasDefaultValueErrorType(t *testing.T) {
	pe := parseErr(t, `<?php class C { public readonly int $x = 1; }`)
	assert.Equal(t, perrors.ReadonlyPropertyHasDefaultValue, pe.Type)
}

func TestNoPartialTreeOnError(t *testing.T) {
	prog, err := Parse([]byte("<?php echo 1; $a = ;"))
	require.Error(t, err)
	assert.Nil(t, prog)
}
