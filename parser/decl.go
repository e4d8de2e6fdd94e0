package parser

import (
	"github.com/tu6ge/parser-1/ast"
	perrors "github.com/tu6ge/parser-1/errors"
	"github.com/tu6ge/parser-1/lexer"
)

// takeAttributes merges any attribute groups already gathered by statement()'s
// attribute-prefixed dispatch with extra (groups passed explicitly by a
// caller that parsed them itself, e.g. an expression-position anonymous
// function/class), clearing the pending buffer.
func (p *Parser) takeAttributes(extra []ast.AttributeGroup) []ast.AttributeGroup {
	attrs := p.pendingAttributes
	p.pendingAttributes = nil
	if len(extra) == 0 {
		return attrs
	}
	return append(attrs, extra...)
}

// parseAttributeGroups reads one or more consecutive `#[...]` groups
// (spec.md §4.7).
func (p *Parser) parseAttributeGroups() ([]ast.AttributeGroup, error) {
	var groups []ast.AttributeGroup
	for p.s.current.Kind == lexer.Attribute {
		start := p.s.current.Start
		p.s.next() // #[
		var attrs []ast.Attribute
		for p.s.current.Kind != lexer.RBracket {
			aStart := p.s.current.Start
			name, err := p.fullName()
			if err != nil {
				return nil, err
			}
			var args []ast.Arg
			if p.s.current.Kind == lexer.LParen {
				args, err = p.parseArgs()
				if err != nil {
					return nil, err
				}
			}
			attrs = append(attrs, ast.Attribute{
				BaseNode: ast.BaseNode{NodeKind: ast.KAttribute, NodeSpan: p.s.span(aStart)},
				Name:     name, Args: args,
			})
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		groups = append(groups, ast.AttributeGroup{
			BaseNode:   ast.BaseNode{NodeKind: ast.KAttributeGroup, NodeSpan: p.s.span(start)},
			Attributes: attrs,
		})
	}
	return groups, nil
}

// isTypeStart reports whether kind can begin a type hint (spec.md §4.2/§4.7).
func isTypeStart(kind lexer.Kind) bool {
	switch kind {
	case lexer.Question, lexer.Identifier, lexer.QualifiedIdentifier, lexer.FullyQualifiedIdentifier,
		lexer.KwArray, lexer.KwCallable, lexer.KwStatic, lexer.KwSelf, lexer.KwParent:
		return true
	default:
		return false
	}
}

// ---- modifiers ----

func modifierName(m ast.Modifier) string {
	switch m {
	case ast.ModPublic:
		return "public"
	case ast.ModProtected:
		return "protected"
	case ast.ModPrivate:
		return "private"
	case ast.ModStatic:
		return "static"
	case ast.ModAbstract:
		return "abstract"
	case ast.ModFinal:
		return "final"
	case ast.ModReadonly:
		return "readonly"
	default:
		return "?"
	}
}

func isVisibilityModifier(m ast.Modifier) bool {
	return m == ast.ModPublic || m == ast.ModProtected || m == ast.ModPrivate
}

// parseModifiers reads the modifier-keyword run a class member may start
// with, rejecting repeats (MultipleModifiers) and direct conflicts
// (ConflictingModifiers: two visibilities, or abstract+final together),
// per spec.md §4.7 / §7.
func (p *Parser) parseModifiers() ([]ast.Modifier, error) {
	var mods []ast.Modifier
	seen := map[ast.Modifier]bool{}
	hasVisibility := false
	for {
		var m ast.Modifier
		switch p.s.current.Kind {
		case lexer.KwPublic:
			m = ast.ModPublic
		case lexer.KwProtected:
			m = ast.ModProtected
		case lexer.KwPrivate:
			m = ast.ModPrivate
		case lexer.KwStatic:
			m = ast.ModStatic
		case lexer.KwAbstract:
			m = ast.ModAbstract
		case lexer.KwFinal:
			m = ast.ModFinal
		case lexer.KwReadonly:
			m = ast.ModReadonly
		default:
			return mods, nil
		}
		span := p.currentSpan()
		if seen[m] {
			return nil, perrors.NewMultipleModifiers(modifierName(m), span)
		}
		if isVisibilityModifier(m) && hasVisibility {
			return nil, perrors.NewConflictingModifiers(modifierName(m), "visibility", span)
		}
		if m == ast.ModAbstract && seen[ast.ModFinal] {
			return nil, perrors.NewConflictingModifiers("abstract", "final", span)
		}
		if m == ast.ModFinal && seen[ast.ModAbstract] {
			return nil, perrors.NewConflictingModifiers("final", "abstract", span)
		}
		if isVisibilityModifier(m) {
			hasVisibility = true
		}
		seen[m] = true
		mods = append(mods, m)
		p.s.next()
	}
}

func hasModifier(mods []ast.Modifier, m ast.Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// ---- params / function signatures ----

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.s.current.Kind != lexer.RParen {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	start := p.s.current.Start
	var attrs []ast.AttributeGroup
	if p.s.current.Kind == lexer.Attribute {
		var err error
		attrs, err = p.parseAttributeGroups()
		if err != nil {
			return ast.Param{}, err
		}
	}

	var visibility string
	readonly := false
loop:
	for {
		switch p.s.current.Kind {
		case lexer.KwPublic:
			visibility = "public"
			p.s.next()
		case lexer.KwProtected:
			visibility = "protected"
			p.s.next()
		case lexer.KwPrivate:
			visibility = "private"
			p.s.next()
		case lexer.KwReadonly:
			readonly = true
			p.s.next()
		default:
			break loop
		}
	}

	var typ ast.Expression
	if isTypeStart(p.s.current.Kind) {
		var err error
		typ, err = p.parseType()
		if err != nil {
			return ast.Param{}, err
		}
	}

	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	variadic := false
	if p.s.current.Kind == lexer.Ellipsis {
		variadic = true
		p.s.next()
	}
	name, err := p.variable()
	if err != nil {
		return ast.Param{}, err
	}

	var def ast.Expression
	if p.s.current.Kind == lexer.Assign {
		p.s.next()
		def, err = p.expression(Lowest)
		if err != nil {
			return ast.Param{}, err
		}
	}

	return ast.Param{
		BaseNode:   ast.BaseNode{NodeKind: ast.KParam, NodeSpan: p.s.span(start)},
		Attributes: attrs, Type: typ, ByRef: byRef, Variadic: variadic,
		Name: name, Default: def, Visibility: visibility, Readonly: readonly,
	}, nil
}

// parseReturnType reads the optional `: T` trailer after a parameter list
// (spec.md §4.7).
func (p *Parser) parseReturnType() (ast.Expression, error) {
	if p.s.current.Kind != lexer.Colon {
		return nil, nil
	}
	p.s.next()
	return p.parseType()
}

// ---- function declaration ----

func (p *Parser) parseFunctionDecl(attrsParam []ast.AttributeGroup) (ast.Statement, error) {
	attrs := p.takeAttributes(attrsParam)
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwFunction); err != nil {
		return nil, err
	}
	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatements()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		BaseNode: ast.BaseNode{NodeKind: ast.KFunctionDecl, NodeSpan: p.s.span(start)},
		Attributes: attrs, ByRef: byRef, Name: name, Params: params, ReturnType: returnType, Body: body,
	}, nil
}

// ---- anonymous function / arrow function / anonymous class ----

func (p *Parser) parseAnonymousFunction(static bool, groups []ast.AttributeGroup) (ast.Expression, error) {
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwFunction); err != nil {
		return nil, err
	}
	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	var uses []ast.ClosureUse
	if p.s.current.Kind == lexer.KwUse {
		p.s.next()
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		for p.s.current.Kind != lexer.RParen {
			useByRef := false
			if p.s.current.Kind == lexer.Amp {
				useByRef = true
				p.s.next()
			}
			v, err := p.variable()
			if err != nil {
				return nil, err
			}
			uses = append(uses, ast.ClosureUse{Var: v, ByRef: useByRef})
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
	}
	returnType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatements()
	if err != nil {
		return nil, err
	}
	return &ast.AnonymousFunctionExpr{
		BaseNode:   ast.BaseNode{NodeKind: ast.KAnonymousFunction, NodeSpan: p.s.span(start)},
		ByRef:      byRef, Static: static, Params: params, Uses: uses, ReturnType: returnType, Body: body,
	}, nil
}

func (p *Parser) parseArrowFunction(static bool, groups []ast.AttributeGroup) (ast.Expression, error) {
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwFn); err != nil {
		return nil, err
	}
	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DoubleArrow); err != nil {
		return nil, err
	}
	body, err := p.expression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.ArrowFunctionExpr{
		BaseNode:   ast.BaseNode{NodeKind: ast.KArrowFunction, NodeSpan: p.s.span(start)},
		Static:     static, ByRef: byRef, Params: params, ReturnType: returnType, Body: body,
	}, nil
}

// parseAnonymousClass handles `class ... { ... }` reached directly in
// expression position after an attribute group (spec.md §4.7); it is
// represented the same way as `new class(...) {...}`, wrapped in a NewExpr
// with no Target, so downstream consumers have one canonical shape for
// anonymous classes regardless of how they were spelled.
func (p *Parser) parseAnonymousClass(groups []ast.AttributeGroup) (ast.Expression, error) {
	start := p.s.current.Start
	body, err := p.parseAnonymousClassBody(start, groups)
	if err != nil {
		return nil, err
	}
	return &ast.NewExpr{BaseNode: ast.BaseNode{NodeKind: ast.KNew, NodeSpan: p.s.span(start)}, Class: body}, nil
}

// parseAnonymousClassBody parses the `class [(...)] [extends X] [implements
// Y, Z] { members }` tail of `new class(...) {...}` (spec.md §4.4/§4.7).
// start is the span anchor the caller supplies (the `new` keyword, or the
// `class` keyword itself when there is no `new`).
func (p *Parser) parseAnonymousClassBody(start lexer.Position, groups []ast.AttributeGroup) (*ast.AnonymousClassExpr, error) {
	if _, err := p.expect(lexer.KwClass); err != nil {
		return nil, err
	}
	var args []ast.Arg
	if p.s.current.Kind == lexer.LParen {
		var err error
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	var extends *ast.Identifier
	if p.s.current.Kind == lexer.KwExtends {
		p.s.next()
		id, err := p.fullName()
		if err != nil {
			return nil, err
		}
		extends = &id
	}
	var implements []ast.Identifier
	if p.s.current.Kind == lexer.KwImplements {
		p.s.next()
		for {
			id, err := p.fullName()
			if err != nil {
				return nil, err
			}
			implements = append(implements, id)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
	}
	defer p.s.enterClassScope(extends != nil)()
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	return &ast.AnonymousClassExpr{
		BaseNode:   ast.BaseNode{NodeKind: ast.KAnonymousClass, NodeSpan: p.s.span(start)},
		Args:       args,
		Extends:    extends,
		Implements: implements,
		Members:    members,
	}, nil
}

// ---- class / interface / trait / enum declarations ----

func (p *Parser) parseClassDecl(attrsParam []ast.AttributeGroup) (ast.Statement, error) {
	attrs := p.takeAttributes(attrsParam)
	start := p.s.current.Start
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwClass); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	var extends *ast.Identifier
	if p.s.current.Kind == lexer.KwExtends {
		p.s.next()
		id, err := p.fullName()
		if err != nil {
			return nil, err
		}
		extends = &id
	}
	var implements []ast.Identifier
	if p.s.current.Kind == lexer.KwImplements {
		p.s.next()
		for {
			id, err := p.fullName()
			if err != nil {
				return nil, err
			}
			implements = append(implements, id)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
	}
	defer p.s.enterClassScope(extends != nil)()
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{
		BaseNode:   ast.BaseNode{NodeKind: ast.KClassDecl, NodeSpan: p.s.span(start)},
		Attributes: attrs, Modifiers: mods, Name: name, Extends: extends, Implements: implements, Members: members,
	}, nil
}

func (p *Parser) parseInterfaceDecl(attrsParam []ast.AttributeGroup) (ast.Statement, error) {
	attrs := p.takeAttributes(attrsParam)
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwInterface); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	var extends []ast.Identifier
	if p.s.current.Kind == lexer.KwExtends {
		p.s.next()
		for {
			id, err := p.fullName()
			if err != nil {
				return nil, err
			}
			extends = append(extends, id)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
	}
	defer p.s.enterClassScope(false)()
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceDecl{
		BaseNode: ast.BaseNode{NodeKind: ast.KInterfaceDecl, NodeSpan: p.s.span(start)},
		Attributes: attrs, Name: name, Extends: extends, Members: members,
	}, nil
}

func (p *Parser) parseTraitDecl(attrsParam []ast.AttributeGroup) (ast.Statement, error) {
	attrs := p.takeAttributes(attrsParam)
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwTrait); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	defer p.s.enterClassScope(true)()
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	return &ast.TraitDecl{
		BaseNode:   ast.BaseNode{NodeKind: ast.KTraitDecl, NodeSpan: p.s.span(start)},
		Attributes: attrs, Name: name, Members: members,
	}, nil
}

func (p *Parser) parseEnumDecl(attrsParam []ast.AttributeGroup) (ast.Statement, error) {
	attrs := p.takeAttributes(attrsParam)
	start := p.s.current.Start
	if _, err := p.expect(lexer.KwEnum); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	var backing *ast.Identifier
	if p.s.current.Kind == lexer.Colon {
		p.s.next()
		id, err := p.fullNameMaybeTypeKeyword()
		if err != nil {
			return nil, err
		}
		backing = &id
	}
	var implements []ast.Identifier
	if p.s.current.Kind == lexer.KwImplements {
		p.s.next()
		for {
			id, err := p.fullName()
			if err != nil {
				return nil, err
			}
			implements = append(implements, id)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
	}
	defer p.s.enterClassScope(false)()
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	return &ast.EnumDecl{
		BaseNode:    ast.BaseNode{NodeKind: ast.KEnumDecl, NodeSpan: p.s.span(start)},
		Attributes:  attrs, Name: name, BackingType: backing, Implements: implements, Members: members,
	}, nil
}

// ---- class-like bodies ----

func (p *Parser) parseClassMembers() ([]ast.Node, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	var members []ast.Node
	for p.s.current.Kind != lexer.RBrace {
		for _, c := range p.s.gatherComments() {
			c := c
			members = append(members, &c)
		}
		if p.s.current.Kind == lexer.RBrace {
			break
		}
		m, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Parser) parseClassMember() (ast.Node, error) {
	var attrs []ast.AttributeGroup
	if p.s.current.Kind == lexer.Attribute {
		var err error
		attrs, err = p.parseAttributeGroups()
		if err != nil {
			return nil, err
		}
	}
	if p.s.current.Kind == lexer.KwUse {
		return p.parseTraitUse()
	}
	if p.s.current.Kind == lexer.KwCase {
		return p.parseEnumCase(attrs)
	}

	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	if p.s.current.Kind == lexer.KwConst {
		return p.parseClassConst(attrs, mods)
	}
	if p.s.current.Kind == lexer.KwFunction {
		return p.parseClassMethod(attrs, mods)
	}
	if p.s.current.Kind == lexer.KwVar {
		p.s.next()
		if !hasModifier(mods, ast.ModPublic) {
			mods = append(mods, ast.ModPublic)
		}
		return p.parseProperty(attrs, mods, nil)
	}

	var typ ast.Expression
	if isTypeStart(p.s.current.Kind) {
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return p.parseProperty(attrs, mods, typ)
}

func (p *Parser) parseEnumCase(attrs []ast.AttributeGroup) (ast.Node, error) {
	start := p.s.current.Start
	p.s.next() // case
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if p.s.current.Kind == lexer.Assign {
		p.s.next()
		value, err = p.expression(Lowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.EnumCase{
		BaseNode:   ast.BaseNode{NodeKind: ast.KEnumCase, NodeSpan: p.s.span(start)},
		Attributes: attrs, Name: name, Value: value,
	}, nil
}

func (p *Parser) parseClassConst(attrs []ast.AttributeGroup, mods []ast.Modifier) (ast.Node, error) {
	start := p.s.current.Start
	p.s.next() // const
	var consts []ast.ClassConstDeclarator
	for {
		name, err := p.identMaybeReserved()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		val, err := p.expression(Lowest)
		if err != nil {
			return nil, err
		}
		consts = append(consts, ast.ClassConstDeclarator{Name: name, Value: val})
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ClassConst{
		BaseNode:   ast.BaseNode{NodeKind: ast.KClassConst, NodeSpan: p.s.span(start)},
		Attributes: attrs, Modifiers: mods, Constants: consts,
	}, nil
}

func (p *Parser) parseProperty(attrs []ast.AttributeGroup, mods []ast.Modifier, typ ast.Expression) (ast.Node, error) {
	start := p.s.current.Start
	readonly := hasModifier(mods, ast.ModReadonly)
	static := hasModifier(mods, ast.ModStatic)
	if readonly && static {
		return nil, perrors.NewStaticPropertyUsingReadonlyModifier(p.currentSpan())
	}
	var decls []ast.PropertyDeclarator
	for {
		name, err := p.variable()
		if err != nil {
			return nil, err
		}
		var def ast.Expression
		if p.s.current.Kind == lexer.Assign {
			defSpan := p.currentSpan()
			p.s.next()
			def, err = p.expression(Lowest)
			if err != nil {
				return nil, err
			}
			if readonly {
				return nil, perrors.NewReadonlyPropertyHasDefaultValue(defSpan)
			}
		}
		decls = append(decls, ast.PropertyDeclarator{Name: name, Default: def})
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Property{
		BaseNode:   ast.BaseNode{NodeKind: ast.KProperty, NodeSpan: p.s.span(start)},
		Attributes: attrs, Modifiers: mods, Type: typ, Properties: decls,
	}, nil
}

func (p *Parser) parseClassMethod(attrs []ast.AttributeGroup, mods []ast.Modifier) (ast.Node, error) {
	start := p.s.current.Start
	p.s.next() // function
	byRef := false
	if p.s.current.Kind == lexer.Amp {
		byRef = true
		p.s.next()
	}
	name, err := p.identMaybeReserved()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	returnType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	var body []ast.Statement
	if p.s.current.Kind == lexer.Semicolon {
		p.s.next()
	} else {
		body, err = p.parseBlockStatements()
		if err != nil {
			return nil, err
		}
	}
	return &ast.ClassMethod{
		BaseNode:   ast.BaseNode{NodeKind: ast.KClassMethod, NodeSpan: p.s.span(start)},
		Attributes: attrs, Modifiers: mods, ByRef: byRef, Name: name, Params: params, ReturnType: returnType, Body: body,
	}, nil
}

// ---- trait use + adaptations ----

func (p *Parser) parseTraitUse() (ast.Node, error) {
	start := p.s.current.Start
	p.s.next() // use
	var traits []ast.Identifier
	for {
		id, err := p.fullName()
		if err != nil {
			return nil, err
		}
		traits = append(traits, id)
		if p.s.current.Kind == lexer.Comma {
			p.s.next()
			continue
		}
		break
	}
	var adaptations []ast.TraitUsageAdaptation
	if p.s.current.Kind == lexer.LBrace {
		p.s.next()
		for p.s.current.Kind != lexer.RBrace {
			adapt, err := p.parseTraitAdaptation()
			if err != nil {
				return nil, err
			}
			adaptations = append(adaptations, adapt)
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
	}
	return &ast.TraitUse{
		BaseNode: ast.BaseNode{NodeKind: ast.KTraitUse, NodeSpan: p.s.span(start)},
		Traits:   traits, Adaptations: adaptations,
	}, nil
}

// parseTraitAdaptation reads one `Trait::method as ...;` / `Trait::method
// insteadof Other;` clause (spec.md §4.7's GLOSSARY-named adaptation forms).
func (p *Parser) parseTraitAdaptation() (ast.TraitUsageAdaptation, error) {
	start := p.s.current.Start
	var trait *ast.Identifier
	method, err := p.identMaybeReserved()
	if err != nil {
		return nil, err
	}
	if p.s.current.Kind == lexer.DoubleColon {
		p.s.next()
		qualifier := method
		trait = &qualifier
		method, err = p.identMaybeReserved()
		if err != nil {
			return nil, err
		}
	}

	switch p.s.current.Kind {
	case lexer.KwInsteadof:
		p.s.next()
		var insteadOf []ast.Identifier
		for {
			id, err := p.fullName()
			if err != nil {
				return nil, err
			}
			insteadOf = append(insteadOf, id)
			if p.s.current.Kind == lexer.Comma {
				p.s.next()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		if trait == nil {
			return nil, p.expectedTokenErr("'::'")
		}
		return &ast.TraitPrecedenceAdaptation{
			BaseNode: ast.BaseNode{NodeKind: ast.KTraitPrecedenceAdaptation, NodeSpan: p.s.span(start)},
			Trait:    *trait, Method: method, InsteadOf: insteadOf,
		}, nil
	case lexer.KwAs:
		p.s.next()
		var vis *ast.Modifier
		switch p.s.current.Kind {
		case lexer.KwPublic:
			m := ast.ModPublic
			vis = &m
			p.s.next()
		case lexer.KwProtected:
			m := ast.ModProtected
			vis = &m
			p.s.next()
		case lexer.KwPrivate:
			m := ast.ModPrivate
			vis = &m
			p.s.next()
		}
		var alias *ast.Identifier
		if p.s.current.Kind == lexer.Identifier || reservedAsIdent[p.s.current.Kind] {
			id, err := p.identMaybeReserved()
			if err != nil {
				return nil, err
			}
			alias = &id
		}
		if _, err := p.expect(lexer.Semicolon); err != nil {
			return nil, err
		}
		if vis != nil && alias == nil {
			return &ast.TraitVisibilityAdaptation{
				BaseNode: ast.BaseNode{NodeKind: ast.KTraitVisibilityAdaptation, NodeSpan: p.s.span(start)},
				Trait:    trait, Method: method, Visibility: *vis,
			}, nil
		}
		return &ast.TraitAliasAdaptation{
			BaseNode: ast.BaseNode{NodeKind: ast.KTraitAliasAdaptation, NodeSpan: p.s.span(start)},
			Trait:    trait, Method: method, Visibility: vis, Alias: alias,
		}, nil
	default:
		return nil, p.expectedTokenErr("'as' or 'insteadof'")
	}
}
