package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu6ge/parser-1/ast"
	"github.com/tu6ge/parser-1/lexer"
)

func span(line, col int) ast.Span {
	pos := lexer.Position{Line: line, Column: col}
	return ast.Span{Start: pos, End: pos}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{UnexpectedEndOfFile, "UnexpectedEndOfFile"},
		{UnexpectedToken, "UnexpectedToken"},
		{ExpectedToken, "ExpectedToken"},
		{ExpectedItemDefinitionAfterAttributes, "ExpectedItemDefinitionAfterAttributes"},
		{CannotFindTypeInCurrentScope, "CannotFindTypeInCurrentScope"},
		{MatchExpressionWithMultipleDefaultArms, "MatchExpressionWithMultipleDefaultArms"},
		{MultipleModifiers, "MultipleModifiers"},
		{ConflictingModifiers, "ConflictingModifiers"},
		{StaticPropertyUsingReadonlyModifier, "StaticPropertyUsingReadonlyModifier"},
		{ReadonlyPropertyHasDefaultValue, "ReadonlyPropertyHasDefaultValue"},
		{Type(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestNewUnexpectedEndOfFile(t *testing.T) {
	pos := lexer.Position{Line: 3, Column: 1}
	err := NewUnexpectedEndOfFile(pos)
	assert.Equal(t, UnexpectedEndOfFile, err.Type)
	assert.Equal(t, pos, err.Span.Start)
	assert.Equal(t, pos, err.Span.End)
	assert.Contains(t, err.Error(), "unexpected end of file")
	assert.Contains(t, err.Error(), "line 3, column 1")
}

func TestNewUnexpectedToken(t *testing.T) {
	err := NewUnexpectedToken(";", span(1, 10))
	assert.Equal(t, UnexpectedToken, err.Type)
	assert.Equal(t, ";", err.Got)
	assert.Contains(t, err.Error(), `unexpected token ";"`)
}

func TestNewExpectedToken(t *testing.T) {
	err := NewExpectedToken([]string{"}", ";"}, "EOF", span(2, 4))
	assert.Equal(t, ExpectedToken, err.Type)
	assert.Equal(t, []string{"}", ";"}, err.Expected)
	assert.Contains(t, err.Error(), `expected } or ;, got "EOF"`)
}

func TestNewExpectedItemDefinitionAfterAttributes(t *testing.T) {
	err := NewExpectedItemDefinitionAfterAttributes(span(1, 1))
	assert.Equal(t, ExpectedItemDefinitionAfterAttributes, err.Type)
	assert.Contains(t, err.Error(), "expected item definition after attributes")
}

func TestNewCannotFindTypeInCurrentScope(t *testing.T) {
	err := NewCannotFindTypeInCurrentScope("parent", span(5, 2))
	assert.Equal(t, CannotFindTypeInCurrentScope, err.Type)
	assert.Equal(t, "parent", err.Got)
	assert.Contains(t, err.Error(), `cannot find type "parent"`)
}

func TestNewMatchExpressionWithMultipleDefaultArms(t *testing.T) {
	err := NewMatchExpressionWithMultipleDefaultArms(span(1, 1))
	assert.Equal(t, MatchExpressionWithMultipleDefaultArms, err.Type)
	assert.Contains(t, err.Error(), "multiple default arms")
}

func TestNewMultipleModifiers(t *testing.T) {
	err := NewMultipleModifiers("public", span(1, 1))
	assert.Equal(t, MultipleModifiers, err.Type)
	assert.Equal(t, "public", err.Got)
	assert.Contains(t, err.Error(), `multiple "public" modifiers`)
}

func TestNewConflictingModifiers(t *testing.T) {
	err := NewConflictingModifiers("public", "private", span(1, 1))
	assert.Equal(t, ConflictingModifiers, err.Type)
	assert.Equal(t, "public", err.Got)
	assert.Equal(t, []string{"private"}, err.Expected)
	assert.Contains(t, err.Error(), `conflicting modifiers "public" and "private"`)
}

func TestNewStaticPropertyUsingReadonlyModifier(t *testing.T) {
	err := NewStaticPropertyUsingReadonlyModifier(span(1, 1))
	assert.Equal(t, StaticPropertyUsingReadonlyModifier, err.Type)
	assert.Contains(t, err.Error(), "static property cannot be readonly")
}

func TestNewReadonlyPropertyHasDefaultValue(t *testing.T) {
	err := NewReadonlyPropertyHasDefaultValue(span(1, 1))
	assert.Equal(t, ReadonlyPropertyHasDefaultValue, err.Type)
	assert.Contains(t, err.Error(), "readonly property cannot have a default value")
}

func TestUnknownTypeDefaultMessage(t *testing.T) {
	err := &Error{Type: Type(999), Span: span(7, 7)}
	assert.Contains(t, err.Error(), "parse error at line 7, column 7")
}
