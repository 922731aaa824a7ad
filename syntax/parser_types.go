// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// typ parses a type, including unions, intersections and optionals.
func (p *Parser) typ() TypeNode {
	var lead *Lexeme
	if p.tok == Pipe || p.tok == Amp {
		lead = p.lx
		p.next()
	}
	first := p.optionalType()
	if lead == nil && p.tok != Pipe && p.tok != Amp {
		return first
	}
	u := &TypeUnion{Lead: lead}
	u.Types.Items = append(u.Types.Items, first)
	for (p.tok == Pipe || p.tok == Amp) && p.err == nil {
		sep := p.lx
		if prev := u.sepTok(); prev != illegalTok && prev != sep.Tok {
			p.curErr("mixing union and intersection types is not allowed; consider wrapping in parentheses")
			break
		}
		u.Types.Seps = append(u.Types.Seps, sep)
		p.next()
		u.Types.Items = append(u.Types.Items, p.optionalType())
	}
	return u
}

// sepTok returns the kind of separator used so far, if any.
func (u *TypeUnion) sepTok() Token {
	if u.Lead != nil {
		return u.Lead.Tok
	}
	if len(u.Types.Seps) > 0 {
		return u.Types.Seps[0].Tok
	}
	return illegalTok
}

func (p *Parser) optionalType() TypeNode {
	t := p.simpleType()
	for p.tok == Question && p.err == nil {
		t = &TypeOptional{X: t, Question: p.lx}
		p.next()
	}
	return t
}

func (p *Parser) simpleType() TypeNode {
	switch p.tok {
	case KwNil, KwTrue, KwFalse, String, LongString:
		l := p.lx
		p.next()
		return l
	case Name:
		if p.lx.Value == "typeof" && p.peek(1) == LeftParen {
			t := &TypeTypeof{Typeof: p.lx}
			p.next()
			t.Lparen = p.lx
			p.next()
			t.X = p.expr()
			t.Rparen = p.matched(t.Lparen, RightParen)
			return t
		}
		return p.typeName()
	case LeftBrace:
		return p.tableType()
	case LeftParen, Lss:
		return p.funcOrParenType()
	case InterpBegin, InterpSimple:
		p.curErr("interpolated strings cannot be used as types")
		return &Lexeme{}
	}
	p.curErr("expected a type, found %s", p.tokStr())
	return &Lexeme{}
}

func (p *Parser) typeName() *TypeName {
	t := &TypeName{Name: p.lx}
	p.next()
	if p.tok == Dot {
		t.Prefix, t.Dot = t.Name, p.lx
		p.next()
		t.Name = p.followName(t.Dot.Pos(), ".")
	}
	if p.tok == Lss {
		t.Lt = p.lx
		p.next()
		for p.tok != Gtr && p.err == nil {
			t.Args.Items = append(t.Args.Items, p.typeOrPack())
			if p.tok != Comma {
				break
			}
			t.Args.Seps = append(t.Args.Seps, p.lx)
			p.next()
		}
		t.Gt = p.matched(t.Lt, Gtr)
	}
	return t
}

// typeOrPack parses a type in a position where type packs are allowed,
// such as return types and type arguments.
func (p *Parser) typeOrPack() TypeNode {
	switch {
	case p.tok == Ellipsis:
		t := &TypeVariadic{Dots: p.lx}
		p.next()
		t.Type = p.typ()
		return t
	case p.tok == Name && p.peek(1) == Ellipsis:
		t := &TypeGenericPack{Name: p.lx}
		p.next()
		t.Dots = p.lx
		p.next()
		return t
	}
	return p.typ()
}

// variadicType parses the annotation of a "..." parameter, which may be
// a generic type pack.
func (p *Parser) variadicType() TypeNode {
	if p.tok == Name && p.peek(1) == Ellipsis {
		return p.typeOrPack()
	}
	return p.typ()
}

func (p *Parser) tableType() *TypeTable {
	t := &TypeTable{Lbrace: p.lx}
	p.next()
	for p.tok != RightBrace && p.err == nil {
		f := p.typeField(len(t.Fields.Items) == 0)
		t.Fields.Items = append(t.Fields.Items, f)
		if f.Name == nil && f.Lbrack == nil {
			break // array shorthand, {T}
		}
		if p.tok != Comma && p.tok != Semicolon {
			break
		}
		t.Fields.Seps = append(t.Fields.Seps, p.lx)
		p.next()
	}
	t.Rbrace = p.matched(t.Lbrace, RightBrace)
	return t
}

func (p *Parser) typeField(first bool) *TypeField {
	f := &TypeField{}
	if (p.isWord("read") || p.isWord("write")) && (p.peek(1) == Name || p.peek(1) == LeftBrack) {
		f.Access = p.lx
		p.next()
	}
	switch {
	case p.tok == LeftBrack:
		f.Lbrack = p.lx
		p.next()
		f.Key = p.typ()
		f.Rbrack = p.matched(f.Lbrack, RightBrack)
		f.Colon = p.follow(f.Lbrack.Pos(), "[key]", Colon)
	case p.tok == Name && p.peek(1) == Colon:
		f.Name = p.lx
		p.next()
		f.Colon = p.lx
		p.next()
	case !first || f.Access != nil:
		p.curErr("expected a table type field, found %s", p.tokStr())
		return f
	}
	f.Value = p.typ()
	return f
}

func (p *Parser) funcOrParenType() TypeNode {
	var generics *GenericDecl
	if p.tok == Lss {
		generics = p.genericDecl()
	}
	lparen := p.follow(p.lx.Pos(), "generic type parameters", LeftParen)
	if p.err != nil {
		return &Lexeme{}
	}
	var params List[*TypeParam]
	named := false
	for p.tok != RightParen && p.err == nil {
		param := &TypeParam{}
		if p.tok == Name && p.peek(1) == Colon {
			param.Name = p.lx
			p.next()
			param.Colon = p.lx
			p.next()
			named = true
		}
		param.Type = p.typeOrPack()
		params.Items = append(params.Items, param)
		if p.tok != Comma {
			break
		}
		params.Seps = append(params.Seps, p.lx)
		p.next()
	}
	rparen := p.matched(lparen, RightParen)
	if p.tok == Arrow || generics != nil || named {
		t := &TypeFunc{Generics: generics, Lparen: lparen, Params: params, Rparen: rparen}
		t.Arrow = p.follow(lparen.Pos(), "function type parameters", Arrow)
		t.Return = p.typeOrPack()
		return t
	}
	t := &TypeParen{Lparen: lparen, Rparen: rparen}
	t.Types.Seps = params.Seps
	for _, param := range params.Items {
		t.Types.Items = append(t.Types.Items, param.Type)
	}
	return t
}

func (p *Parser) genericDecl() *GenericDecl {
	g := &GenericDecl{Lt: p.lx}
	p.next()
	for p.tok != Gtr && p.err == nil {
		param := &GenericParam{Name: p.followName(g.Lt.Pos(), "<")}
		param.Dots = p.got(Ellipsis)
		if param.Equals = p.got(Assign); param.Equals != nil {
			if param.Dots != nil {
				param.Default = p.typeOrPack()
			} else {
				param.Default = p.typ()
			}
		}
		g.Params.Items = append(g.Params.Items, param)
		if p.tok != Comma {
			break
		}
		g.Params.Seps = append(g.Params.Seps, p.lx)
		p.next()
	}
	g.Gt = p.matched(g.Lt, Gtr)
	return g
}
