// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser holds the internal state of the parsing mechanism of a
// program.
type Parser struct {
	src []byte

	f *File

	err error

	npos   int    // lexer offset
	braces []bool // open braces; true for interpolated strings

	toks []*Lexeme
	i    int

	lx  *Lexeme // current lexeme
	tok Token   // current token, lx.Tok
}

// NewParser allocates a new Parser. A Parser may be reused for any number
// of sequential Parse calls.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and parses a Luau program with an optional name. It
// returns the parsed program if no issues were encountered. Otherwise,
// an error is returned. Reads from r are buffered.
//
// The resulting tree is lossless: printing it produces exactly the
// bytes that were read.
func (p *Parser) Parse(r io.Reader, name string) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p.reset(src)
	p.f.Name = name
	p.lexAll()
	if p.err != nil {
		return nil, p.err
	}
	p.i = -1
	p.next()
	p.f.Block = p.block()
	if p.tok != EOF {
		p.curErr("unexpected %s", p.tokStr())
	}
	if p.err != nil {
		return nil, p.err
	}
	p.f.EOF = p.toks[len(p.toks)-1]
	f := p.f
	p.f = nil
	p.toks = nil
	return f, nil
}

func (p *Parser) reset(src []byte) {
	*p = Parser{
		src:    src,
		f:      &File{Lines: []int{0}},
		toks:   p.toks[:0],
		braces: p.braces[:0],
	}
	for i, b := range src {
		if b == '\n' {
			p.f.Lines = append(p.f.Lines, i+1)
		}
	}
}

func (p *Parser) next() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
	p.lx = p.toks[p.i]
	p.tok = p.lx.Tok
}

// peek returns the token n lexemes ahead of the current one.
func (p *Parser) peek(n int) Token {
	if i := p.i + n; i < len(p.toks) {
		return p.toks[i].Tok
	}
	return EOF
}

func (p *Parser) got(tok Token) *Lexeme {
	if p.tok == tok {
		l := p.lx
		p.next()
		return l
	}
	return nil
}

// gotWord consumes the current lexeme if it is a name with the given
// value, such as the contextual keyword "type".
func (p *Parser) gotWord(word string) *Lexeme {
	if p.isWord(word) {
		return p.got(Name)
	}
	return nil
}

func (p *Parser) isWord(word string) bool {
	return p.tok == Name && p.lx.Value == word
}

func readableStr(s string) string {
	// don't quote tokens like ) or }
	if s != "" && s[0] >= 'a' && s[0] <= 'z' {
		return strconv.Quote(s)
	}
	return s
}

// tokStr describes the current token for error messages.
func (p *Parser) tokStr() string {
	if p.tok == EOF {
		return "EOF"
	}
	return readableStr(p.lx.Value)
}

func (p *Parser) followErr(pos Pos, left, right string) {
	leftStr := readableStr(left)
	p.posErr(pos, "%s must be followed by %s", leftStr, right)
}

func (p *Parser) follow(lpos Pos, left string, tok Token) *Lexeme {
	l := p.got(tok)
	if l == nil {
		p.followErr(lpos, left, readableStr(tok.String()))
	}
	return l
}

func (p *Parser) followName(lpos Pos, left string) *Lexeme {
	l := p.got(Name)
	if l == nil {
		p.followErr(lpos, left, "a name")
	}
	return l
}

func (p *Parser) matchingErr(lpos Pos, left, right Token) {
	p.posErr(lpos, "reached %s without matching %s with %s", p.tokStr(),
		readableStr(left.String()), readableStr(right.String()))
}

func (p *Parser) matched(left *Lexeme, right Token) *Lexeme {
	l := p.got(right)
	if l == nil {
		p.matchingErr(left.Pos(), left.Tok, right)
	}
	return l
}

func (p *Parser) errPass(err error) {
	if p.err == nil {
		p.err = err
		if len(p.toks) > 0 {
			p.i = len(p.toks) - 1
			p.lx = p.toks[p.i]
			p.tok = EOF
		}
	}
}

// ParseError represents an error found when parsing a source file.
type ParseError struct {
	Position
	Filename, Text string
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Filename != "" {
		prefix = e.Filename + ":"
	}
	return fmt.Sprintf("%s%d:%d: %s", prefix, e.Line, e.Column, e.Text)
}

func (p *Parser) posErr(pos Pos, format string, a ...any) {
	p.errPass(&ParseError{
		Position: p.f.Position(pos),
		Filename: p.f.Name,
		Text:     fmt.Sprintf(format, a...),
	})
}

func (p *Parser) curErr(format string, a ...any) {
	p.posErr(p.lx.Pos(), format, a...)
}

func (p *Parser) blockEnd() bool {
	switch p.tok {
	case EOF, KwEnd, KwElse, KwElseif, KwUntil:
		return true
	}
	return false
}

func (p *Parser) block() *Block {
	b := &Block{}
	for !p.blockEnd() {
		s := p.stmt()
		if p.err != nil {
			break
		}
		b.Stmts = append(b.Stmts, s)
		if last := lastStmtWord(s.X); last != "" {
			if !p.blockEnd() {
				p.curErr("%s must be the last statement in a block", readableStr(last))
			}
			break
		}
	}
	return b
}

// lastStmtWord returns the keyword of a statement which must end a
// block, or an empty string.
func lastStmtWord(x StmtNode) string {
	switch x.(type) {
	case *ReturnStmt:
		return "return"
	case *BreakStmt:
		return "break"
	case *ContinueStmt:
		return "continue"
	}
	return ""
}

func (p *Parser) stmt() *Stmt {
	s := &Stmt{X: p.stmtNode()}
	s.Semi = p.got(Semicolon)
	return s
}

func (p *Parser) stmtNode() StmtNode {
	switch p.tok {
	case KwIf:
		return p.ifStmt()
	case KwWhile:
		return p.whileStmt()
	case KwDo:
		do := p.lx
		p.next()
		s := &DoStmt{Do: do, Block: p.block()}
		s.EndKw = p.matched(do, KwEnd)
		return s
	case KwFor:
		return p.forStmt()
	case KwRepeat:
		return p.repeatStmt()
	case KwFunction:
		return p.funcDecl(nil)
	case KwLocal:
		return p.localStmt(nil)
	case KwReturn:
		return p.returnStmt()
	case KwBreak:
		s := &BreakStmt{Break: p.lx}
		p.next()
		return s
	case DblColon:
		return p.labelStmt()
	case Attribute:
		attrs := p.attributes()
		switch p.tok {
		case KwFunction:
			return p.funcDecl(attrs)
		case KwLocal:
			if p.peek(1) == KwFunction {
				return p.localStmt(attrs)
			}
		}
		p.followErr(attrs[0].Pos(), "attributes", `"function"`)
		return &BreakStmt{}
	case Name, LeftParen:
		return p.exprStmt()
	}
	p.curErr("%s is not a valid start for a statement", p.tokStr())
	return &BreakStmt{}
}

func (p *Parser) attributes() (attrs []*Lexeme) {
	for p.tok == Attribute {
		attrs = append(attrs, p.lx)
		p.next()
	}
	return attrs
}

func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{If: p.lx}
	p.next()
	s.Cond = p.expr()
	s.Then = p.follow(s.If.Pos(), "if <cond>", KwThen)
	s.Block = p.block()
	for p.tok == KwElseif {
		e := &ElseIf{ElseIf: p.lx}
		p.next()
		e.Cond = p.expr()
		e.Then = p.follow(e.ElseIf.Pos(), "elseif <cond>", KwThen)
		e.Block = p.block()
		s.ElseIfs = append(s.ElseIfs, e)
	}
	if s.Else = p.got(KwElse); s.Else != nil {
		s.ElseBlk = p.block()
	}
	s.EndKw = p.matched(s.If, KwEnd)
	return s
}

func (p *Parser) whileStmt() *WhileStmt {
	s := &WhileStmt{While: p.lx}
	p.next()
	s.Cond = p.expr()
	s.Do = p.follow(s.While.Pos(), "while <cond>", KwDo)
	s.Block = p.block()
	s.EndKw = p.matched(s.While, KwEnd)
	return s
}

func (p *Parser) repeatStmt() *RepeatStmt {
	s := &RepeatStmt{Repeat: p.lx}
	p.next()
	s.Block = p.block()
	s.Until = p.matched(s.Repeat, KwUntil)
	if s.Until != nil {
		s.Cond = p.expr()
	}
	return s
}

func (p *Parser) forStmt() StmtNode {
	forLx := p.lx
	p.next()
	name := p.followName(forLx.Pos(), "for")
	if p.err != nil {
		return &BreakStmt{}
	}
	typ := p.typeSpec()
	if eq := p.got(Assign); eq != nil {
		s := &NumericFor{For: forLx, Var: name, Type: typ, Equals: eq}
		s.Start = p.expr()
		s.Comma1 = p.follow(eq.Pos(), "for <name> = <start>", Comma)
		s.Stop = p.expr()
		if s.Comma2 = p.got(Comma); s.Comma2 != nil {
			s.Step = p.expr()
		}
		s.Do = p.follow(forLx.Pos(), "for <name> = <range>", KwDo)
		s.Block = p.block()
		s.EndKw = p.matched(forLx, KwEnd)
		return s
	}
	s := &GenericFor{For: forLx}
	s.Names.Items = append(s.Names.Items, name)
	types := []*TypeSpec{typ}
	for p.tok == Comma {
		s.Names.Seps = append(s.Names.Seps, p.lx)
		p.next()
		s.Names.Items = append(s.Names.Items, p.followName(forLx.Pos(), "for <names>,"))
		types = append(types, p.typeSpec())
	}
	s.Types = compactTypes(types)
	s.In = p.follow(forLx.Pos(), "for <names>", KwIn)
	s.Exprs = p.exprList()
	s.Do = p.follow(forLx.Pos(), "for <names> in <exprs>", KwDo)
	s.Block = p.block()
	s.EndKw = p.matched(forLx, KwEnd)
	return s
}

// compactTypes returns nil if none of the names were annotated.
func compactTypes(types []*TypeSpec) []*TypeSpec {
	for _, t := range types {
		if t != nil {
			return types
		}
	}
	return nil
}

// typeSpec parses an optional type annotation starting with a colon.
func (p *Parser) typeSpec() *TypeSpec {
	colon := p.got(Colon)
	if colon == nil {
		return nil
	}
	return &TypeSpec{Colon: colon, Type: p.typ()}
}

func (p *Parser) funcDecl(attrs []*Lexeme) *FuncDecl {
	s := &FuncDecl{Attrs: attrs, Function: p.lx}
	p.next()
	s.Name = &FuncName{}
	s.Name.Names.Items = append(s.Name.Names.Items, p.followName(s.Function.Pos(), "function"))
	for p.tok == Dot {
		s.Name.Names.Seps = append(s.Name.Names.Seps, p.lx)
		p.next()
		s.Name.Names.Items = append(s.Name.Names.Items, p.followName(s.Function.Pos(), "."))
	}
	if s.Name.Colon = p.got(Colon); s.Name.Colon != nil {
		s.Name.Method = p.followName(s.Name.Colon.Pos(), ":")
	}
	s.Body = p.funcBody(s.Function)
	return s
}

func (p *Parser) localStmt(attrs []*Lexeme) StmtNode {
	local := p.lx
	p.next()
	if fn := p.got(KwFunction); fn != nil {
		s := &LocalFunc{Attrs: attrs, Local: local, Function: fn}
		s.Name = p.followName(fn.Pos(), "local function")
		s.Body = p.funcBody(fn)
		return s
	}
	s := &LocalAssign{Local: local}
	var types []*TypeSpec
	for {
		s.Names.Items = append(s.Names.Items, p.followName(local.Pos(), "local"))
		types = append(types, p.typeSpec())
		if p.tok != Comma {
			break
		}
		s.Names.Seps = append(s.Names.Seps, p.lx)
		p.next()
	}
	s.Types = compactTypes(types)
	if s.Equals = p.got(Assign); s.Equals != nil {
		s.Values = p.exprList()
	}
	return s
}

func (p *Parser) funcBody(fn *Lexeme) *FuncBody {
	b := &FuncBody{}
	if p.tok == Lss {
		b.Generics = p.genericDecl()
	}
	b.Lparen = p.follow(fn.Pos(), "function", LeftParen)
	if p.err != nil {
		return b
	}
	var types []*TypeSpec
	for p.tok != RightParen && p.err == nil {
		switch p.tok {
		case Name:
			b.Params.Items = append(b.Params.Items, p.lx)
			p.next()
			types = append(types, p.typeSpec())
		case Ellipsis:
			b.Params.Items = append(b.Params.Items, p.lx)
			p.next()
			var ts *TypeSpec
			if colon := p.got(Colon); colon != nil {
				ts = &TypeSpec{Colon: colon, Type: p.variadicType()}
			}
			types = append(types, ts)
			if p.tok != RightParen {
				p.curErr(`"..." must be the last parameter`)
			}
			continue
		default:
			p.curErr("expected a parameter name, found %s", p.tokStr())
			continue
		}
		if p.tok != Comma {
			break
		}
		b.Params.Seps = append(b.Params.Seps, p.lx)
		p.next()
		if p.tok == RightParen {
			p.curErr("expected a parameter after %q", ",")
		}
	}
	b.Types = compactTypes(types)
	b.Rparen = p.matched(b.Lparen, RightParen)
	if colon := p.got(Colon); colon != nil {
		b.Return = &TypeSpec{Colon: colon, Type: p.typeOrPack()}
	}
	b.Block = p.block()
	b.EndKw = p.matched(fn, KwEnd)
	return b
}

func (p *Parser) returnStmt() *ReturnStmt {
	s := &ReturnStmt{Return: p.lx}
	p.next()
	if !p.blockEnd() && p.tok != Semicolon {
		s.Values = p.exprList()
	}
	return s
}

func (p *Parser) labelStmt() *LabelStmt {
	s := &LabelStmt{Open: p.lx}
	p.next()
	s.Name = p.followName(s.Open.Pos(), "::")
	s.Close = p.follow(s.Open.Pos(), ":: <name>", DblColon)
	return s
}

// exprStmt parses the statements starting with an expression, which
// includes calls, assignments, and those starting with a contextual
// keyword.
func (p *Parser) exprStmt() StmtNode {
	x := p.suffixedExpr()
	if p.err != nil {
		return &BreakStmt{}
	}
	if call, ok := x.(*CallExpr); ok {
		return &CallStmt{Call: call}
	}
	switch {
	case p.tok == Comma || p.tok == Assign:
		return p.assignStmt(x)
	case isCompoundAssign(p.tok):
		p.checkAssignable(x)
		s := &CompoundAssign{Var: x, Op: p.lx}
		p.next()
		s.Value = p.expr()
		return s
	}
	if word, ok := x.(*Lexeme); ok && word.Tok == Name {
		switch word.Value {
		case "type":
			if p.tok == Name || p.tok == KwFunction {
				return p.typeDecl(nil, word)
			}
		case "export":
			if typ := p.gotWord("type"); typ != nil {
				return p.typeDecl(word, typ)
			}
		case "continue":
			return &ContinueStmt{Continue: word}
		case "goto":
			if p.tok == Name {
				s := &GotoStmt{Goto: word, Label: p.lx}
				p.next()
				return s
			}
		}
	}
	p.curErr("expected an assignment or a function call, found %s", p.tokStr())
	return &BreakStmt{}
}

func (p *Parser) checkAssignable(x Expr) {
	switch x := x.(type) {
	case *DotExpr, *IndexExpr:
		return
	case *Lexeme:
		if x.Tok == Name {
			return
		}
	}
	p.posErr(x.Pos(), "cannot assign to this expression")
}

func (p *Parser) assignStmt(first Expr) *AssignStmt {
	s := &AssignStmt{}
	p.checkAssignable(first)
	s.Vars.Items = append(s.Vars.Items, first)
	for p.tok == Comma {
		s.Vars.Seps = append(s.Vars.Seps, p.lx)
		p.next()
		x := p.suffixedExpr()
		p.checkAssignable(x)
		s.Vars.Items = append(s.Vars.Items, x)
	}
	s.Equals = p.follow(first.Pos(), "assignment targets", Assign)
	s.Values = p.exprList()
	return s
}

func (p *Parser) typeDecl(export, typ *Lexeme) StmtNode {
	if fn := p.got(KwFunction); fn != nil {
		s := &TypeFuncDecl{Export: export, Type: typ, Function: fn}
		s.Name = p.followName(fn.Pos(), "type function")
		s.Body = p.funcBody(fn)
		return s
	}
	s := &TypeDecl{Export: export, Type: typ}
	s.Name = p.followName(typ.Pos(), "type")
	if p.tok == Lss {
		s.Generics = p.genericDecl()
	}
	s.Equals = p.follow(typ.Pos(), "type <name>", Assign)
	s.Value = p.typ()
	return s
}

func (p *Parser) exprList() (l List[Expr]) {
	l.Items = append(l.Items, p.expr())
	for p.tok == Comma {
		l.Seps = append(l.Seps, p.lx)
		p.next()
		l.Items = append(l.Items, p.expr())
	}
	return l
}

func (p *Parser) expr() Expr { return p.subExpr(0) }

// subExpr parses a chain of binary operations whose priority is higher
// than limit.
func (p *Parser) subExpr(limit int) Expr {
	var x Expr
	if isUnaryOp(p.tok) {
		op := p.lx
		p.next()
		x = &UnaryExpr{Op: op, X: p.subExpr(unaryPriority)}
	} else {
		x = p.assertionExpr()
	}
	for p.err == nil {
		prio, ok := binaryPriority[p.tok]
		if !ok || prio[0] <= limit {
			break
		}
		op := p.lx
		p.next()
		x = &BinaryExpr{X: x, Op: op, Y: p.subExpr(prio[1])}
	}
	return x
}

func (p *Parser) assertionExpr() Expr {
	x := p.simpleExpr()
	for p.tok == DblColon && p.err == nil {
		if p.newlineBefore() && p.peek(1) == Name && p.peek(2) == DblColon {
			break // a label on the next line
		}
		op := p.lx
		p.next()
		x = &TypeAssertion{X: x, Op: op, Type: p.typ()}
	}
	return x
}

func (p *Parser) simpleExpr() Expr {
	switch p.tok {
	case Number, String, LongString, KwNil, KwTrue, KwFalse, Ellipsis, InterpSimple:
		l := p.lx
		p.next()
		if l.Tok == InterpSimple {
			return &InterpString{Parts: []*Lexeme{l}}
		}
		return l
	case InterpBegin:
		return p.interpString()
	case LeftBrace:
		return p.tableExpr()
	case Attribute, KwFunction:
		x := &FuncExpr{Attrs: p.attributes()}
		x.Function = p.follow(p.lx.Pos(), "attributes", KwFunction)
		if p.err != nil {
			return x
		}
		x.Body = p.funcBody(x.Function)
		return x
	case KwIf:
		return p.ifExpr()
	}
	return p.suffixedExpr()
}

func (p *Parser) interpString() *InterpString {
	x := &InterpString{Parts: []*Lexeme{p.lx}}
	p.next()
	for p.err == nil {
		x.Exprs = append(x.Exprs, p.expr())
		switch p.tok {
		case InterpMid:
			x.Parts = append(x.Parts, p.lx)
			p.next()
			continue
		case InterpEnd:
			x.Parts = append(x.Parts, p.lx)
			p.next()
			return x
		}
		p.curErr("reached %s without closing the interpolated string expression", p.tokStr())
	}
	return x
}

func (p *Parser) primaryExpr() Expr {
	switch p.tok {
	case Name:
		l := p.lx
		p.next()
		return l
	case LeftParen:
		x := &ParenExpr{Lparen: p.lx}
		p.next()
		x.X = p.expr()
		x.Rparen = p.matched(x.Lparen, RightParen)
		return x
	}
	p.curErr("expected an expression, found %s", p.tokStr())
	return &Lexeme{}
}

func (p *Parser) suffixedExpr() Expr {
	x := p.primaryExpr()
	for p.err == nil {
		switch p.tok {
		case Dot:
			dot := p.lx
			p.next()
			x = &DotExpr{X: x, Dot: dot, Name: p.followName(dot.Pos(), ".")}
		case LeftBrack:
			ix := &IndexExpr{X: x, Lbrack: p.lx}
			p.next()
			ix.Index = p.expr()
			ix.Rbrack = p.matched(ix.Lbrack, RightBrack)
			x = ix
		case Colon:
			call := &CallExpr{X: x, Colon: p.lx}
			p.next()
			call.Method = p.followName(call.Colon.Pos(), ":")
			if p.err == nil {
				p.callArgs(call)
			}
			x = call
		case LeftParen, LeftBrace, String, LongString:
			if p.tok == LeftParen && p.newlineBefore() {
				p.curErr("ambiguous syntax: this could be a function call or a new statement; use ';' to separate statements")
				return x
			}
			call := &CallExpr{X: x}
			p.callArgs(call)
			x = call
		default:
			return x
		}
	}
	return x
}

// newlineBefore reports whether there is a line break between the
// previous lexeme and the current one.
func (p *Parser) newlineBefore() bool {
	if p.i == 0 {
		return false
	}
	prev := p.toks[p.i-1]
	return strings.Contains(prev.Trailing, "\n") || strings.Contains(p.lx.Leading, "\n")
}

func (p *Parser) callArgs(call *CallExpr) {
	switch p.tok {
	case LeftParen:
		call.Lparen = p.lx
		p.next()
		if p.tok != RightParen {
			call.Args = p.exprList()
		}
		call.Rparen = p.matched(call.Lparen, RightParen)
	case LeftBrace:
		call.Args.Items = []Expr{p.tableExpr()}
	case String, LongString:
		call.Args.Items = []Expr{p.lx}
		p.next()
	default:
		p.curErr("expected function arguments, found %s", p.tokStr())
	}
}

func (p *Parser) tableExpr() *TableExpr {
	x := &TableExpr{Lbrace: p.lx}
	p.next()
	for p.tok != RightBrace && p.err == nil {
		x.Fields.Items = append(x.Fields.Items, p.tableField())
		if p.tok != Comma && p.tok != Semicolon {
			break
		}
		x.Fields.Seps = append(x.Fields.Seps, p.lx)
		p.next()
	}
	x.Rbrace = p.matched(x.Lbrace, RightBrace)
	return x
}

func (p *Parser) tableField() *TableField {
	f := &TableField{}
	switch {
	case p.tok == LeftBrack:
		f.Lbrack = p.lx
		p.next()
		f.Key = p.expr()
		f.Rbrack = p.matched(f.Lbrack, RightBrack)
		f.Equals = p.follow(f.Lbrack.Pos(), "[key]", Assign)
	case p.tok == Name && p.peek(1) == Assign:
		f.Name = p.lx
		p.next()
		f.Equals = p.lx
		p.next()
	}
	f.Value = p.expr()
	return f
}

func (p *Parser) ifExpr() *IfExpr {
	x := &IfExpr{If: p.lx}
	p.next()
	x.Cond = p.expr()
	x.Then = p.follow(x.If.Pos(), "if <cond>", KwThen)
	x.X = p.expr()
	for p.tok == KwElseif && p.err == nil {
		e := &ElseIfExpr{ElseIf: p.lx}
		p.next()
		e.Cond = p.expr()
		e.Then = p.follow(e.ElseIf.Pos(), "elseif <cond>", KwThen)
		e.X = p.expr()
		x.ElseIfs = append(x.ElseIfs, e)
	}
	x.Else = p.follow(x.If.Pos(), "if-then expression", KwElse)
	x.Y = p.expr()
	return x
}
