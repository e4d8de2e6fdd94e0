package lexer

import (
	"strings"
)

// Lexer scans PHP source bytes into Tokens. It is single-threaded,
// synchronous, and holds no reference to the parser: the parser drives it by
// repeatedly calling Next, and — only while reading interpolated strings —
// PopInterpolation once an embedded `{$...}`/`${...}` expression's closing
// brace has been consumed.
type Lexer struct {
	src []byte
	pos int // byte offset of the next unread byte

	line, col int

	state  state
	stack  *stateStack
	errors []string

	// pendingComments accumulates comments skipped while scanning scripting
	// tokens. DrainComments lets the parser pull them out in source order.
	pendingComments []Token
}

// DrainComments returns and clears any comment tokens collected since the
// last call, in source order. The parser calls this after every token it
// pulls from the lexer and keeps the comments in its own pending buffer.
func (l *Lexer) DrainComments() []Token {
	if len(l.pendingComments) == 0 {
		return nil
	}
	out := l.pendingComments
	l.pendingComments = nil
	return out
}

// New creates a Lexer over src. Scanning starts in InlineHTML mode, matching
// real PHP source files that may begin with arbitrary HTML before `<?php`.
func New(src []byte) *Lexer {
	return &Lexer{
		src:   src,
		line:  1,
		col:   1,
		state: stInitial,
		stack: newStateStack(),
	}
}

// Errors returns any lexical errors accumulated (unterminated strings,
// unterminated comments, and similar). The parser package does not read this
// list; cmd/phpparse's tokens command prints it.
func (l *Lexer) Errors() []string { return l.errors }

func (l *Lexer) here() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) byteAt(offset int) byte {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) advance() byte {
	if l.eof() {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) startsWith(s string) bool {
	return strings.HasPrefix(string(l.src[l.pos:]), s)
}

func (l *Lexer) startsWithFold(s string) bool {
	if l.pos+len(s) > len(l.src) {
		return false
	}
	return strings.EqualFold(string(l.src[l.pos:l.pos+len(s)]), s)
}

func (l *Lexer) make(kind Kind, start Position, value []byte) Token {
	return Token{Kind: kind, Value: value, Start: start, End: l.here()}
}

// PopInterpolation returns the lexer to the string-scanning mode it was in
// before a `{$expr}` or `${expr}` interpolation island was entered. The
// parser calls this immediately after consuming the island's closing `}`.
func (l *Lexer) PopInterpolation() {
	l.state = l.stack.pop()
}

// Next returns the next token, dispatching on the current lexer mode.
func (l *Lexer) Next() Token {
	switch l.state {
	case stInitial:
		return l.scanInlineHTML()
	case stDoubleQuotes, stBackquote, stHeredoc, stNowdoc:
		return l.scanStringPart()
	default:
		return l.scanScripting()
	}
}

// ---- InlineHTML ----

func (l *Lexer) scanInlineHTML() Token {
	start := l.here()
	if l.eof() {
		return l.make(EOF, start, nil)
	}
	if l.startsWithFold("<?php") {
		s := l.pos
		for i := 0; i < 5; i++ {
			l.advance()
		}
		tok := l.make(OpenTag, start, l.src[s:l.pos])
		l.state = stScripting
		return tok
	}
	if l.startsWith("<?=") {
		s := l.pos
		l.advance()
		l.advance()
		l.advance()
		tok := l.make(OpenTagWithEcho, start, l.src[s:l.pos])
		l.state = stScripting
		return tok
	}
	s := l.pos
	for !l.eof() {
		if l.startsWithFold("<?php") || l.startsWith("<?=") {
			break
		}
		l.advance()
	}
	return l.make(InlineHTML, start, l.src[s:l.pos])
}

// ---- Scripting (ordinary PHP tokens) ----

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) skipWhitespaceAndComments() []Token {
	var comments []Token
	for {
		for !l.eof() {
			c := l.byteAt(0)
			if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
				l.advance()
				continue
			}
			break
		}
		if l.eof() {
			return comments
		}
		if l.startsWith("//") || (l.byteAt(0) == '#' && l.byteAt(1) != '[') {
			comments = append(comments, l.scanLineComment())
			continue
		}
		if l.startsWith("/**") && !l.startsWith("/**/") {
			comments = append(comments, l.scanBlockComment(CommentDoc))
			continue
		}
		if l.startsWith("/*") {
			comments = append(comments, l.scanBlockComment(CommentBlock))
			continue
		}
		return comments
	}
}

func (l *Lexer) scanLineComment() Token {
	start := l.here()
	s := l.pos
	for !l.eof() {
		if l.byteAt(0) == '\n' {
			break
		}
		if l.startsWith("?>") {
			break
		}
		l.advance()
	}
	return l.make(CommentLine, start, l.src[s:l.pos])
}

func (l *Lexer) scanBlockComment(kind Kind) Token {
	start := l.here()
	s := l.pos
	l.advance()
	l.advance() // "/*"
	for !l.eof() && !l.startsWith("*/") {
		l.advance()
	}
	if l.startsWith("*/") {
		l.advance()
		l.advance()
	} else {
		l.errors = append(l.errors, "unterminated comment")
	}
	return l.make(kind, start, l.src[s:l.pos])
}

func (l *Lexer) scanScripting() Token {
	leading := l.skipWhitespaceAndComments()
	if len(leading) > 0 {
		l.pendingComments = append(l.pendingComments, leading...)
	}

	start := l.here()
	if l.eof() {
		return l.make(EOF, start, nil)
	}
	if l.startsWith("?>") {
		l.advance()
		l.advance()
		l.state = stInitial
		return l.make(CloseTag, start, []byte("?>"))
	}

	c := l.byteAt(0)

	if c == '$' && isIdentStart(l.byteAt(1)) {
		return l.scanVariable()
	}
	if c == '$' {
		l.advance()
		return l.make(Dollar, start, []byte("$"))
	}
	if isIdentStart(c) || c == '\\' {
		return l.scanName()
	}
	if isDigit(c) || (c == '.' && isDigit(l.byteAt(1))) {
		return l.scanNumber()
	}
	if c == '\'' {
		return l.scanSingleQuoted()
	}
	if c == '"' {
		l.advance()
		l.stack.push(l.state)
		l.state = stDoubleQuotes
		return l.make(DoubleQuote, start, []byte("\""))
	}
	if c == '`' {
		l.advance()
		l.stack.push(l.state)
		l.state = stBackquote
		return l.make(Backtick, start, []byte("`"))
	}
	if l.startsWith("<<<") {
		return l.scanHeredocStart()
	}
	if l.startsWith("#[") {
		l.advance()
		l.advance()
		return l.make(Attribute, start, []byte("#["))
	}
	if castKind, width, ok := l.matchCast(); ok {
		s := l.pos
		for i := 0; i < width; i++ {
			l.advance()
		}
		return l.make(castKind, start, l.src[s:l.pos])
	}

	return l.scanOperator()
}

func (l *Lexer) scanVariable() Token {
	start := l.here()
	l.advance() // $
	s := l.pos
	for isIdentPart(l.byteAt(0)) {
		l.advance()
	}
	return l.make(Variable, start, l.src[s:l.pos])
}

func (l *Lexer) scanName() Token {
	start := l.here()
	s := l.pos
	qualified := false
	fullyQualified := l.byteAt(0) == '\\'
	for {
		if l.byteAt(0) == '\\' {
			qualified = true
			l.advance()
			continue
		}
		if isIdentPart(l.byteAt(0)) {
			l.advance()
			continue
		}
		break
	}
	text := l.src[s:l.pos]

	if !qualified && !fullyQualified {
		lower := strings.ToLower(string(text))
		if kind, ok := Keywords[lower]; ok {
			return l.make(kind, start, text)
		}
	}
	switch {
	case fullyQualified:
		return l.make(FullyQualifiedIdentifier, start, text)
	case qualified:
		return l.make(QualifiedIdentifier, start, text)
	default:
		return l.make(Identifier, start, text)
	}
}

func (l *Lexer) scanNumber() Token {
	start := l.here()
	s := l.pos
	isFloat := false

	if l.byteAt(0) == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.byteAt(0)) || l.byteAt(0) == '_' {
			l.advance()
		}
		return l.make(Integer, start, l.src[s:l.pos])
	}
	if l.byteAt(0) == '0' && (l.byteAt(1) == 'b' || l.byteAt(1) == 'B') {
		l.advance()
		l.advance()
		for l.byteAt(0) == '0' || l.byteAt(0) == '1' || l.byteAt(0) == '_' {
			l.advance()
		}
		return l.make(Integer, start, l.src[s:l.pos])
	}
	if l.byteAt(0) == '0' && (l.byteAt(1) == 'o' || l.byteAt(1) == 'O') {
		l.advance()
		l.advance()
		for (l.byteAt(0) >= '0' && l.byteAt(0) <= '7') || l.byteAt(0) == '_' {
			l.advance()
		}
		return l.make(Integer, start, l.src[s:l.pos])
	}

	for isDigit(l.byteAt(0)) || l.byteAt(0) == '_' {
		l.advance()
	}
	if l.byteAt(0) == '.' && isDigit(l.byteAt(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.byteAt(0)) || l.byteAt(0) == '_' {
			l.advance()
		}
	}
	if l.byteAt(0) == 'e' || l.byteAt(0) == 'E' {
		look := 1
		if l.byteAt(1) == '+' || l.byteAt(1) == '-' {
			look = 2
		}
		if isDigit(l.byteAt(look)) {
			isFloat = true
			l.advance()
			if l.byteAt(0) == '+' || l.byteAt(0) == '-' {
				l.advance()
			}
			for isDigit(l.byteAt(0)) {
				l.advance()
			}
		}
	}
	if isFloat {
		return l.make(Float, start, l.src[s:l.pos])
	}
	return l.make(Integer, start, l.src[s:l.pos])
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanSingleQuoted() Token {
	start := l.here()
	l.advance() // opening '
	var out []byte
	for !l.eof() && l.byteAt(0) != '\'' {
		if l.byteAt(0) == '\\' && (l.byteAt(1) == '\'' || l.byteAt(1) == '\\') {
			l.advance()
			out = append(out, l.advance())
			continue
		}
		out = append(out, l.advance())
	}
	if l.byteAt(0) == '\'' {
		l.advance()
	} else {
		l.errors = append(l.errors, "unterminated string literal")
	}
	return l.make(Str, start, out)
}

func (l *Lexer) matchCast() (Kind, int, bool) {
	casts := []struct {
		text string
		kind Kind
	}{
		{"(int)", IntCast}, {"(integer)", IntCast},
		{"(double)", DoubleCast}, {"(float)", DoubleCast}, {"(real)", DoubleCast},
		{"(string)", StringCast}, {"(binary)", StringCast},
		{"(array)", ArrayCast},
		{"(object)", ObjectCast},
		{"(bool)", BoolCast}, {"(boolean)", BoolCast},
		{"(unset)", UnsetCast},
	}
	for _, c := range casts {
		if width, ok := l.startsWithCastFold(c.text); ok {
			return c.kind, width, true
		}
	}
	return Unknown, 0, false
}

// startsWithCastFold matches a cast such as "(int)" case-insensitively,
// allowing spaces or tabs after '(' and before ')' the way PHP's tokenizer
// does (e.g. "( int )"). It returns the matched width, that whitespace
// included.
func (l *Lexer) startsWithCastFold(text string) (int, bool) {
	if l.byteAt(0) != '(' {
		return 0, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	i := 1
	for l.byteAt(i) == ' ' || l.byteAt(i) == '\t' {
		i++
	}
	end := i + len(inner)
	if end > len(l.src)-l.pos {
		return 0, false
	}
	if !strings.EqualFold(string(l.src[l.pos+i:l.pos+end]), inner) {
		return 0, false
	}
	j := end
	for l.byteAt(j) == ' ' || l.byteAt(j) == '\t' {
		j++
	}
	if l.byteAt(j) != ')' {
		return 0, false
	}
	return j + 1, true
}

type op struct {
	text string
	kind Kind
}

// ordered longest-first so prefix ambiguities (e.g. "<=>" vs "<=" vs "<") resolve correctly.
var operators = []op{
	{"<=>", Spaceship}, {"===", EqEqEq}, {"!==", NotEqEq}, {"<<=", ShlEq}, {">>=", ShrEq},
	{"**=", PowEq}, {"??=", CoalesceEq}, {"...", Ellipsis}, {"?->", NullsafeArrow},
	{"<<", Shl}, {">>", Shr}, {"**", Pow}, {"==", EqEq}, {"!=", NotEq}, {"<>", NotEq},
	{"<=", LtEq}, {">=", GtEq}, {"&&", BoolAnd}, {"||", BoolOr}, {"??", QuestionQuestion},
	{"::", DoubleColon}, {"->", Arrow}, {"=>", DoubleArrow}, {"++", Inc}, {"--", Dec},
	{"+=", PlusEq}, {"-=", MinusEq}, {"*=", StarEq}, {"/=", SlashEq}, {".=", DotEq},
	{"%=", PercentEq}, {"&=", AmpEq}, {"|=", PipeEq}, {"^=", CaretEq},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent}, {".", Dot},
	{"!", Bang}, {"~", Tilde}, {"&", Amp}, {"|", Pipe}, {"^", Caret}, {"<", Lt}, {">", Gt},
	{"?", Question}, {":", Colon}, {";", Semicolon}, {",", Comma}, {"@", At},
	{"\\", Backslash}, {"(", LParen}, {")", RParen}, {"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket}, {"=", Assign},
}

func (l *Lexer) scanOperator() Token {
	start := l.here()
	for _, o := range operators {
		if l.startsWith(o.text) {
			s := l.pos
			for range o.text {
				l.advance()
			}
			return l.make(o.kind, start, l.src[s:l.pos])
		}
	}
	s := l.pos
	l.advance()
	return l.make(Unknown, start, l.src[s:l.pos])
}
