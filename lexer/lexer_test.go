package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drives the lexer the way the parser does: it tracks brace depth
// while inside a `{$...}`/`${...}` interpolation island and calls
// PopInterpolation once the island's closing brace is consumed, exactly as
// the parser's interpolation reader (parser/interpolation.go) does.
func collect(src string) []Token {
	lx := New([]byte(src))
	var toks []Token
	depth := 0
	for {
		t := lx.Next()
		toks = append(toks, t)
		switch t.Kind {
		case CurlyOpen, DollarOpenBrace:
			depth++
		case LBrace:
			if depth > 0 {
				depth++
			}
		case RBrace:
			if depth > 0 {
				depth--
				if depth == 0 {
					lx.PopInterpolation()
				}
			}
		}
		if t.Kind == EOF {
			break
		}
	}
	return toks
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestInlineHTMLBeforeOpenTag(t *testing.T) {
	toks := collect("Hello <?php echo 1;")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, InlineHTML, toks[0].Kind)
	assert.Equal(t, "Hello ", string(toks[0].Value))
	assert.Equal(t, OpenTag, toks[1].Kind)
}

func TestEmptyProgramIsJustEOF(t *testing.T) {
	toks := collect("<?php")
	assert.Equal(t, []Kind{OpenTag, EOF}, kinds(toks))
}

func TestCloseTagAbsorbed(t *testing.T) {
	toks := collect("<?php ?>")
	assert.Equal(t, []Kind{OpenTag, CloseTag, EOF}, kinds(toks))
}

func TestVariableAndKeyword(t *testing.T) {
	toks := collect("<?php $a = 1 + 2 * 3;")
	got := kinds(toks)
	assert.Equal(t, []Kind{OpenTag, Variable, Assign, Integer, Plus, Integer, Star, Integer, Semicolon, EOF}, got)
	assert.Equal(t, "a", string(toks[1].Value))
}

func TestKeywordCaseInsensitive(t *testing.T) {
	toks := collect("<?php RETURN;")
	assert.Equal(t, KwReturn, toks[1].Kind)
}

func TestQualifiedAndFullyQualifiedNames(t *testing.T) {
	toks := collect(`<?php A\B; \A\B;`)
	assert.Equal(t, QualifiedIdentifier, toks[1].Kind)
	assert.Equal(t, FullyQualifiedIdentifier, toks[3].Kind)
}

func TestSpaceshipBeforeLessThan(t *testing.T) {
	toks := collect("<?php $a <=> $b;")
	got := kinds(toks)
	assert.Contains(t, got, Spaceship)
}

func TestSingleQuotedEscapes(t *testing.T) {
	toks := collect(`<?php 'it\'s $not \\interpolated';`)
	require.Equal(t, Str, toks[1].Kind)
	assert.Equal(t, `it's $not \interpolated`, string(toks[1].Value))
}

func TestDoubleQuotedInterpolation(t *testing.T) {
	toks := collect(`<?php "hello $name!";`)
	got := kinds(toks)
	assert.Equal(t, []Kind{OpenTag, DoubleQuote, StringPart, Variable, StringPart, DoubleQuote, Semicolon, EOF}, got)
}

func TestCurlyInterpolationSwitchesToScripting(t *testing.T) {
	toks := collect(`<?php "a{$obj->x}b";`)
	got := kinds(toks)
	assert.Equal(t, []Kind{
		OpenTag, DoubleQuote, StringPart, CurlyOpen, Variable, Arrow, Identifier, RBrace, StringPart, DoubleQuote, Semicolon, EOF,
	}, got)
}

func TestAttributeToken(t *testing.T) {
	toks := collect(`<?php #[Foo] class C {}`)
	assert.Equal(t, Attribute, toks[1].Kind)
}

func TestHeredocDedent(t *testing.T) {
	src := "<?php $x = <<<EOT\n    hello $name\n    EOT;\n"
	toks := collect(src)
	var end Token
	for _, tk := range toks {
		if tk.Kind == EndHeredoc {
			end = tk
		}
	}
	require.NotZero(t, end.IndentAmount)
	assert.Equal(t, byte(' '), end.IndentChar)
	assert.Equal(t, 4, end.IndentAmount)
	assert.False(t, end.Nowdoc)
}

func TestNowdocHasNoInterpolation(t *testing.T) {
	src := "<?php $x = <<<'EOT'\n  raw $not_interpolated\n  EOT;\n"
	toks := collect(src)
	var body []Kind
	inBody := false
	for _, tk := range toks {
		switch {
		case tk.Kind == StartHeredoc:
			inBody = true
		case tk.Kind == EndHeredoc:
			inBody = false
		case inBody:
			body = append(body, tk.Kind)
		}
	}
	assert.NotContains(t, body, Variable)
	var end Token
	for _, tk := range toks {
		if tk.Kind == EndHeredoc {
			end = tk
		}
	}
	assert.True(t, end.Nowdoc)
}

func TestCastTokens(t *testing.T) {
	toks := collect("<?php (int)$a; (array)$b;")
	got := kinds(toks)
	assert.Equal(t, IntCast, got[1])
	assert.Equal(t, ArrayCast, got[4])
}
