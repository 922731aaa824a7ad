// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "strings"

// StripOption is a function which can be passed to StripTypes to alter
// its behavior.
type StripOption func(*stripper)

// AllBlocks makes StripTypes reach the code it leaves untouched by
// default: the bodies of elseif and else clauses, for loop bodies and
// variable annotations, and function expressions and type assertions
// anywhere within a statement.
//
// With this option the output contains no Luau type syntax, so it can
// be run by a plain Lua interpreter if it uses no other Luau features.
func AllBlocks(enabled bool) StripOption {
	return func(s *stripper) { s.allBlocks = enabled }
}

type stripper struct {
	allBlocks bool
}

// StripTypes returns a copy of f without type syntax. Type declarations
// and type functions are dropped entirely, while annotations on local
// variables, function parameters and return types are removed from the
// statements that hold them. Function bodies and the blocks of do,
// while, repeat and the primary clause of if statements are processed
// recursively.
//
// The input tree is not modified; nodes which are left untouched are
// shared between the input and the output.
//
// Whitespace and comments follow a simple rule: removed syntax takes its
// trivia with it, except that the lexeme before a removed annotation
// inherits the annotation's trailing trivia if its own holds no
// comments. For example, "local x: number = 5" becomes "local x = 5".
// Comment and blank lines above a dropped declaration are kept.
func StripTypes(f *File, opts ...StripOption) *File {
	s := &stripper{}
	for _, o := range opts {
		o(s)
	}
	block, pending := s.block(f.Block)
	if block == f.Block {
		return f
	}
	f2 := *f
	f2.Block = block
	f2.EOF = withLeading(f.EOF, pending)
	return &f2
}

func isTypeDecl(x StmtNode) bool {
	switch x.(type) {
	case *TypeDecl, *TypeFuncDecl:
		return true
	}
	return false
}

// block strips a block. If the block ends with dropped statements, the
// trivia to be kept from them is returned, to be placed before the
// lexeme which closes the block.
func (s *stripper) block(b *Block) (_ *Block, pending string) {
	changed := false
	stmts := make([]*Stmt, 0, len(b.Stmts))
	for _, st := range b.Stmts {
		if isTypeDecl(st.X) {
			changed = true
			pending += keptLeading(firstLexeme(st))
			continue
		}
		st2 := s.stmt(st)
		if pending != "" {
			st2 = &Stmt{X: leadingStmt(st2.X, pending), Semi: st2.Semi}
			pending = ""
		}
		if st2 != st {
			changed = true
		}
		stmts = append(stmts, st2)
	}
	if !changed {
		return b, ""
	}
	return &Block{Stmts: stmts}, pending
}

// keptLeading returns the lines of comments and blank lines before a
// lexeme, leaving out the indentation on its own line.
func keptLeading(l *Lexeme) string {
	if l == nil {
		return ""
	}
	return l.Leading[:strings.LastIndexByte(l.Leading, '\n')+1]
}

func (s *stripper) stmt(st *Stmt) *Stmt {
	x := s.stmtNode(st.X)
	if x == st.X {
		return st
	}
	return &Stmt{X: x, Semi: st.Semi}
}

func (s *stripper) stmtNode(x StmtNode) StmtNode {
	switch x := x.(type) {
	case *LocalAssign:
		y := *x
		if x.Types != nil {
			y.Names = clearTypes(x.Names, x.Types)
			y.Types = nil
		}
		y.Values = s.exprList(x.Values)
		if x.Types == nil && sameList(y.Values, x.Values) {
			return x
		}
		return &y
	case *FuncDecl:
		if body := s.funcBody(x.Body); body != x.Body {
			y := *x
			y.Body = body
			return &y
		}
	case *LocalFunc:
		if body := s.funcBody(x.Body); body != x.Body {
			y := *x
			y.Body = body
			return &y
		}
	case *DoStmt:
		y := *x
		y.Block, y.EndKw = s.blockBefore(x.Block, x.EndKw)
		if y.Block != x.Block {
			return &y
		}
	case *WhileStmt:
		y := *x
		y.Cond = s.expr(x.Cond)
		y.Block, y.EndKw = s.blockBefore(x.Block, x.EndKw)
		if y.Cond != x.Cond || y.Block != x.Block {
			return &y
		}
	case *RepeatStmt:
		y := *x
		y.Block, y.Until = s.blockBefore(x.Block, x.Until)
		y.Cond = s.expr(x.Cond)
		if y.Cond != x.Cond || y.Block != x.Block {
			return &y
		}
	case *IfStmt:
		return s.ifStmt(x)
	}
	if s.allBlocks {
		return s.otherStmt(x)
	}
	return x
}

// blockBefore strips a block along with the lexeme which closes it.
func (s *stripper) blockBefore(b *Block, closer *Lexeme) (*Block, *Lexeme) {
	b2, pending := s.block(b)
	return b2, withLeading(closer, pending)
}

func (s *stripper) ifStmt(x *IfStmt) StmtNode {
	y := *x
	y.Cond = s.expr(x.Cond)
	block, pending := s.block(x.Block)
	y.Block = block
	changed := y.Cond != x.Cond || y.Block != x.Block

	if !s.allBlocks {
		switch {
		case pending == "":
		case len(x.ElseIfs) > 0:
			e := *x.ElseIfs[0]
			e.ElseIf = withLeading(e.ElseIf, pending)
			y.ElseIfs = append([]*ElseIf{&e}, x.ElseIfs[1:]...)
		case x.Else != nil:
			y.Else = withLeading(x.Else, pending)
		default:
			y.EndKw = withLeading(x.EndKw, pending)
		}
		if !changed {
			return x
		}
		return &y
	}

	y.ElseIfs = make([]*ElseIf, len(x.ElseIfs))
	for i, e := range x.ElseIfs {
		e2 := *e
		e2.ElseIf = withLeading(e.ElseIf, pending)
		e2.Cond = s.expr(e.Cond)
		e2.Block, pending = s.block(e.Block)
		if e2.ElseIf == e.ElseIf && e2.Cond == e.Cond && e2.Block == e.Block {
			y.ElseIfs[i] = e
			continue
		}
		y.ElseIfs[i] = &e2
		changed = true
	}
	if x.Else != nil {
		y.Else = withLeading(x.Else, pending)
		y.ElseBlk, pending = s.block(x.ElseBlk)
		changed = changed || y.Else != x.Else || y.ElseBlk != x.ElseBlk
	}
	y.EndKw = withLeading(x.EndKw, pending)
	if !changed && y.EndKw == x.EndKw {
		return x
	}
	return &y
}

// otherStmt strips the statements outside of the default rule set, which
// are only reached with AllBlocks.
func (s *stripper) otherStmt(x StmtNode) StmtNode {
	switch x := x.(type) {
	case *NumericFor:
		y := *x
		if x.Type != nil {
			y.Var = absorb(x.Var, x.Type)
			y.Type = nil
		}
		y.Start = s.expr(x.Start)
		y.Stop = s.expr(x.Stop)
		if x.Step != nil {
			y.Step = s.expr(x.Step)
		}
		y.Block, y.EndKw = s.blockBefore(x.Block, x.EndKw)
		if x.Type != nil || y.Start != x.Start || y.Stop != x.Stop ||
			y.Step != x.Step || y.Block != x.Block {
			return &y
		}
	case *GenericFor:
		y := *x
		if x.Types != nil {
			y.Names = clearTypes(x.Names, x.Types)
			y.Types = nil
		}
		y.Exprs = s.exprList(x.Exprs)
		y.Block, y.EndKw = s.blockBefore(x.Block, x.EndKw)
		if x.Types != nil || !sameList(y.Exprs, x.Exprs) || y.Block != x.Block {
			return &y
		}
	case *ReturnStmt:
		if values := s.exprList(x.Values); !sameList(values, x.Values) {
			return &ReturnStmt{Return: x.Return, Values: values}
		}
	case *AssignStmt:
		y := *x
		y.Vars = s.exprList(x.Vars)
		y.Values = s.exprList(x.Values)
		if !sameList(y.Vars, x.Vars) || !sameList(y.Values, x.Values) {
			return &y
		}
	case *CompoundAssign:
		y := *x
		y.Var = s.expr(x.Var)
		y.Value = s.expr(x.Value)
		if y.Var != x.Var || y.Value != x.Value {
			return &y
		}
	case *CallStmt:
		if call := s.expr(x.Call); call != Expr(x.Call) {
			return &CallStmt{Call: call.(*CallExpr)}
		}
	}
	return x
}

func (s *stripper) funcBody(b *FuncBody) *FuncBody {
	y := *b
	changed := false
	if g := b.Generics; g != nil {
		y.Generics = nil
		if b.Lparen.Leading == "" {
			y.Lparen = withLeading(b.Lparen, g.Gt.Trailing)
		}
		changed = true
	}
	if b.Types != nil {
		y.Params = clearTypes(b.Params, b.Types)
		y.Types = nil
		changed = true
	}
	if b.Return != nil {
		y.Rparen = absorb(b.Rparen, b.Return)
		y.Return = nil
		changed = true
	}
	y.Block, y.EndKw = s.blockBefore(b.Block, b.EndKw)
	if !changed && y.Block == b.Block {
		return b
	}
	return &y
}

// clearTypes returns the names of a list of bindings after their type
// annotations have been removed.
func clearTypes(names List[*Lexeme], types []*TypeSpec) List[*Lexeme] {
	items := make([]*Lexeme, len(names.Items))
	for i, name := range names.Items {
		if i < len(types) && types[i] != nil {
			name = absorb(name, types[i])
		}
		items[i] = name
	}
	return List[*Lexeme]{Items: items, Seps: names.Seps}
}

// absorb returns prev with the trailing trivia of the last lexeme in
// removed, unless prev has comments in its own trailing trivia.
func absorb(prev *Lexeme, removed Node) *Lexeme {
	last := lastLexeme(removed)
	if last == nil || !onlySpace(prev.Trailing) || prev.Trailing == last.Trailing {
		return prev
	}
	cp := *prev
	cp.Trailing = last.Trailing
	return &cp
}

func onlySpace(s string) bool { return strings.TrimSpace(s) == "" }

// withLeading returns a copy of l with extra leading trivia, or l itself
// if there is none to add.
func withLeading(l *Lexeme, leading string) *Lexeme {
	if leading == "" {
		return l
	}
	cp := *l
	cp.Leading = leading + cp.Leading
	return &cp
}

func sameList[N Node](a, b List[N]) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if Node(a.Items[i]) != Node(b.Items[i]) {
			return false
		}
	}
	return true
}

func (s *stripper) exprList(l List[Expr]) List[Expr] {
	if !s.allBlocks {
		return l
	}
	var items []Expr
	for i, x := range l.Items {
		x2 := s.stripExpr(x)
		if x2 != x && items == nil {
			items = make([]Expr, len(l.Items))
			copy(items, l.Items[:i])
		}
		if items != nil {
			items[i] = x2
		}
	}
	if items == nil {
		return l
	}
	return List[Expr]{Items: items, Seps: l.Seps}
}

func (s *stripper) expr(x Expr) Expr {
	if !s.allBlocks || x == nil {
		return x
	}
	return s.stripExpr(x)
}

func (s *stripper) stripExpr(x Expr) Expr {
	switch x := x.(type) {
	case *ParenExpr:
		if inner := s.stripExpr(x.X); inner != x.X {
			return &ParenExpr{Lparen: x.Lparen, X: inner, Rparen: x.Rparen}
		}
	case *UnaryExpr:
		if inner := s.stripExpr(x.X); inner != x.X {
			return &UnaryExpr{Op: x.Op, X: inner}
		}
	case *BinaryExpr:
		y := &BinaryExpr{X: s.stripExpr(x.X), Op: x.Op, Y: s.stripExpr(x.Y)}
		if y.X != x.X || y.Y != x.Y {
			return y
		}
	case *DotExpr:
		if inner := s.stripExpr(x.X); inner != x.X {
			return &DotExpr{X: inner, Dot: x.Dot, Name: x.Name}
		}
	case *IndexExpr:
		y := *x
		y.X = s.stripExpr(x.X)
		y.Index = s.stripExpr(x.Index)
		if y.X != x.X || y.Index != x.Index {
			return &y
		}
	case *CallExpr:
		y := *x
		y.X = s.stripExpr(x.X)
		y.Args = s.exprList(x.Args)
		if y.X != x.X || !sameList(y.Args, x.Args) {
			return &y
		}
	case *FuncExpr:
		if body := s.funcBody(x.Body); body != x.Body {
			return &FuncExpr{Attrs: x.Attrs, Function: x.Function, Body: body}
		}
	case *TableExpr:
		y := *x
		y.Fields.Items = make([]*TableField, len(x.Fields.Items))
		changed := false
		for i, f := range x.Fields.Items {
			f2 := *f
			if f.Key != nil {
				f2.Key = s.stripExpr(f.Key)
			}
			f2.Value = s.stripExpr(f.Value)
			if f2.Key == f.Key && f2.Value == f.Value {
				y.Fields.Items[i] = f
				continue
			}
			y.Fields.Items[i] = &f2
			changed = true
		}
		if changed {
			return &y
		}
	case *IfExpr:
		y := *x
		y.Cond = s.stripExpr(x.Cond)
		y.X = s.stripExpr(x.X)
		y.Y = s.stripExpr(x.Y)
		changed := y.Cond != x.Cond || y.X != x.X || y.Y != x.Y
		y.ElseIfs = make([]*ElseIfExpr, len(x.ElseIfs))
		for i, e := range x.ElseIfs {
			e2 := *e
			e2.Cond = s.stripExpr(e.Cond)
			e2.X = s.stripExpr(e.X)
			if e2.Cond == e.Cond && e2.X == e.X {
				y.ElseIfs[i] = e
				continue
			}
			y.ElseIfs[i] = &e2
			changed = true
		}
		if changed {
			return &y
		}
	case *InterpString:
		var exprs []Expr
		for i, e := range x.Exprs {
			e2 := s.stripExpr(e)
			if e2 != e && exprs == nil {
				exprs = make([]Expr, len(x.Exprs))
				copy(exprs, x.Exprs[:i])
			}
			if exprs != nil {
				exprs[i] = e2
			}
		}
		if exprs != nil {
			return &InterpString{Parts: x.Parts, Exprs: exprs}
		}
	case *TypeAssertion:
		inner := s.stripExpr(x.X)
		last, typ := lastLexeme(inner), lastLexeme(x.Type)
		if last != nil && typ != nil && onlySpace(last.Trailing) && last.Trailing != typ.Trailing {
			inner = trailingExpr(inner, typ.Trailing)
		}
		return inner
	}
	return x
}

// trailingExpr returns a copy of x whose last lexeme has the given
// trailing trivia.
func trailingExpr(x Expr, trailing string) Expr {
	switch x := x.(type) {
	case *Lexeme:
		cp := *x
		cp.Trailing = trailing
		return &cp
	case *ParenExpr:
		y := *x
		y.Rparen = trailingExpr(x.Rparen, trailing).(*Lexeme)
		return &y
	case *UnaryExpr:
		return &UnaryExpr{Op: x.Op, X: trailingExpr(x.X, trailing)}
	case *BinaryExpr:
		return &BinaryExpr{X: x.X, Op: x.Op, Y: trailingExpr(x.Y, trailing)}
	case *DotExpr:
		return &DotExpr{X: x.X, Dot: x.Dot, Name: trailingExpr(x.Name, trailing).(*Lexeme)}
	case *IndexExpr:
		y := *x
		y.Rbrack = trailingExpr(x.Rbrack, trailing).(*Lexeme)
		return &y
	case *CallExpr:
		y := *x
		if x.Rparen != nil {
			y.Rparen = trailingExpr(x.Rparen, trailing).(*Lexeme)
			return &y
		}
		last := len(x.Args.Items) - 1
		y.Args.Items = append([]Expr(nil), x.Args.Items...)
		y.Args.Items[last] = trailingExpr(x.Args.Items[last], trailing)
		return &y
	case *FuncExpr:
		body := *x.Body
		body.EndKw = trailingExpr(x.Body.EndKw, trailing).(*Lexeme)
		return &FuncExpr{Attrs: x.Attrs, Function: x.Function, Body: &body}
	case *TableExpr:
		y := *x
		y.Rbrace = trailingExpr(x.Rbrace, trailing).(*Lexeme)
		return &y
	case *IfExpr:
		y := *x
		y.Y = trailingExpr(x.Y, trailing)
		return &y
	case *InterpString:
		parts := append([]*Lexeme(nil), x.Parts...)
		parts[len(parts)-1] = trailingExpr(parts[len(parts)-1], trailing).(*Lexeme)
		return &InterpString{Parts: parts, Exprs: x.Exprs}
	}
	return x
}

// leadingStmt returns a copy of x with extra leading trivia before its
// first lexeme.
func leadingStmt(x StmtNode, leading string) StmtNode {
	switch x := x.(type) {
	case *LocalAssign:
		y := *x
		y.Local = withLeading(x.Local, leading)
		return &y
	case *LocalFunc:
		y := *x
		if len(x.Attrs) > 0 {
			y.Attrs = leadingAttrs(x.Attrs, leading)
		} else {
			y.Local = withLeading(x.Local, leading)
		}
		return &y
	case *FuncDecl:
		y := *x
		if len(x.Attrs) > 0 {
			y.Attrs = leadingAttrs(x.Attrs, leading)
		} else {
			y.Function = withLeading(x.Function, leading)
		}
		return &y
	case *DoStmt:
		y := *x
		y.Do = withLeading(x.Do, leading)
		return &y
	case *IfStmt:
		y := *x
		y.If = withLeading(x.If, leading)
		return &y
	case *WhileStmt:
		y := *x
		y.While = withLeading(x.While, leading)
		return &y
	case *RepeatStmt:
		y := *x
		y.Repeat = withLeading(x.Repeat, leading)
		return &y
	case *NumericFor:
		y := *x
		y.For = withLeading(x.For, leading)
		return &y
	case *GenericFor:
		y := *x
		y.For = withLeading(x.For, leading)
		return &y
	case *ReturnStmt:
		return &ReturnStmt{Return: withLeading(x.Return, leading), Values: x.Values}
	case *BreakStmt:
		return &BreakStmt{Break: withLeading(x.Break, leading)}
	case *ContinueStmt:
		return &ContinueStmt{Continue: withLeading(x.Continue, leading)}
	case *GotoStmt:
		return &GotoStmt{Goto: withLeading(x.Goto, leading), Label: x.Label}
	case *LabelStmt:
		y := *x
		y.Open = withLeading(x.Open, leading)
		return &y
	case *AssignStmt:
		y := *x
		y.Vars.Items = append([]Expr(nil), x.Vars.Items...)
		y.Vars.Items[0] = leadingExpr(x.Vars.Items[0], leading)
		return &y
	case *CompoundAssign:
		y := *x
		y.Var = leadingExpr(x.Var, leading)
		return &y
	case *CallStmt:
		return &CallStmt{Call: leadingExpr(x.Call, leading).(*CallExpr)}
	}
	return x
}

func leadingAttrs(attrs []*Lexeme, leading string) []*Lexeme {
	attrs = append([]*Lexeme(nil), attrs...)
	attrs[0] = withLeading(attrs[0], leading)
	return attrs
}

// leadingExpr returns a copy of x with extra leading trivia before its
// first lexeme.
func leadingExpr(x Expr, leading string) Expr {
	switch x := x.(type) {
	case *Lexeme:
		return withLeading(x, leading)
	case *ParenExpr:
		y := *x
		y.Lparen = withLeading(x.Lparen, leading)
		return &y
	case *UnaryExpr:
		return &UnaryExpr{Op: withLeading(x.Op, leading), X: x.X}
	case *BinaryExpr:
		return &BinaryExpr{X: leadingExpr(x.X, leading), Op: x.Op, Y: x.Y}
	case *DotExpr:
		return &DotExpr{X: leadingExpr(x.X, leading), Dot: x.Dot, Name: x.Name}
	case *IndexExpr:
		y := *x
		y.X = leadingExpr(x.X, leading)
		return &y
	case *CallExpr:
		y := *x
		y.X = leadingExpr(x.X, leading)
		return &y
	case *FuncExpr:
		y := *x
		if len(x.Attrs) > 0 {
			y.Attrs = leadingAttrs(x.Attrs, leading)
		} else {
			y.Function = withLeading(x.Function, leading)
		}
		return &y
	case *TableExpr:
		y := *x
		y.Lbrace = withLeading(x.Lbrace, leading)
		return &y
	case *IfExpr:
		y := *x
		y.If = withLeading(x.If, leading)
		return &y
	case *InterpString:
		parts := append([]*Lexeme(nil), x.Parts...)
		parts[0] = withLeading(parts[0], leading)
		return &InterpString{Parts: parts, Exprs: x.Exprs}
	case *TypeAssertion:
		return &TypeAssertion{X: leadingExpr(x.X, leading), Op: x.Op, Type: x.Type}
	}
	return x
}
