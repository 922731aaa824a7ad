// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "fmt"

// Node represents a syntax tree node.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() Pos
	// End returns the position of the character immediately after the node.
	End() Pos
}

// Pos is a byte offset within a source file, starting at 1. The zero value
// is an invalid position, used by nodes which hold no source text.
type Pos uint32

// IsValid reports whether the position holds a source offset.
func (p Pos) IsValid() bool { return p > 0 }

// Offset returns the zero-based byte offset of the position.
func (p Pos) Offset() int { return int(p) - 1 }

// Position describes a source position in a human-friendly way.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // byte column number, starting at 1
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// File is a Luau source file.
type File struct {
	Name string

	Block *Block

	// EOF holds the whitespace and comments which follow the last
	// statement, in its Leading field.
	EOF *Lexeme

	// Lines contains the offset of the first character for each
	// line (the first entry is always 0)
	Lines []int
}

// Position converts a position within the file into line and column
// numbers.
func (f *File) Position(p Pos) (pos Position) {
	intp := int(p)
	pos.Offset = intp - 1
	if i := searchInts(f.Lines, pos.Offset); i >= 0 {
		pos.Line, pos.Column = i+1, pos.Offset-f.Lines[i]+1
	}
	return
}

// Inlined version of:
// sort.Search(len(a), func(i int) bool { return a[i] > x }) - 1
func searchInts(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}

// Lexeme is a single token along with its exact source text and the
// whitespace and comments surrounding it. Printing Leading, Value and
// Trailing for every lexeme in a tree reproduces the original source.
type Lexeme struct {
	Tok      Token
	ValuePos Pos
	Value    string

	// Leading holds the whitespace and comments before the token which
	// are not part of the previous token's trailing trivia.
	Leading string
	// Trailing holds the whitespace and comments after the token, up
	// to and including the first newline.
	Trailing string
}

func (l *Lexeme) Pos() Pos { return l.ValuePos }
func (l *Lexeme) End() Pos { return l.ValuePos + Pos(len(l.Value)) }

// List is a sequence of nodes separated by lexemes such as commas.
// Seps[i] follows Items[i]; there is either one fewer separator than
// items, or the same number when the list has a trailing separator.
type List[T Node] struct {
	Items []T
	Seps  []*Lexeme
}

// Len returns the number of items in the list.
func (l List[T]) Len() int { return len(l.Items) }

// Block is a list of statements, such as the body of a function.
type Block struct {
	Stmts []*Stmt
}

// Stmt is a single statement within a block, along with its optional
// trailing semicolon.
type Stmt struct {
	X    StmtNode
	Semi *Lexeme
}

// StmtNode represents all nodes which are statements, placed in a Stmt.
type StmtNode interface {
	Node
	stmtNode()
}

func (*LocalAssign) stmtNode()    {}
func (*LocalFunc) stmtNode()      {}
func (*FuncDecl) stmtNode()       {}
func (*TypeDecl) stmtNode()       {}
func (*TypeFuncDecl) stmtNode()   {}
func (*DoStmt) stmtNode()         {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*RepeatStmt) stmtNode()     {}
func (*NumericFor) stmtNode()     {}
func (*GenericFor) stmtNode()     {}
func (*ReturnStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*GotoStmt) stmtNode()       {}
func (*LabelStmt) stmtNode()      {}
func (*AssignStmt) stmtNode()     {}
func (*CompoundAssign) stmtNode() {}
func (*CallStmt) stmtNode()       {}

// TypeSpec is a type annotation, such as ": number".
type TypeSpec struct {
	Colon *Lexeme
	Type  TypeNode
}

// LocalAssign represents a local variable declaration, such as
// "local a: number, b = 1, 2". Types has one entry per name, with nil
// entries for names without an annotation; it may be nil when no name
// is annotated.
type LocalAssign struct {
	Local  *Lexeme
	Names  List[*Lexeme]
	Types  []*TypeSpec
	Equals *Lexeme // nil if there are no values
	Values List[Expr]
}

// LocalFunc represents a local function declaration, such as
// "local function f() end".
type LocalFunc struct {
	Attrs    []*Lexeme
	Local    *Lexeme
	Function *Lexeme
	Name     *Lexeme
	Body     *FuncBody
}

// FuncDecl represents a function declaration, such as
// "function a.b:c() end".
type FuncDecl struct {
	Attrs    []*Lexeme
	Function *Lexeme
	Name     *FuncName
	Body     *FuncBody
}

// FuncName is the name of a declared function, such as "a.b:c".
type FuncName struct {
	Names  List[*Lexeme] // separated by dots
	Colon  *Lexeme       // nil if not a method
	Method *Lexeme
}

// FuncBody holds the parameters, annotations and block of a function.
// Types has one entry per parameter, with nil entries for parameters
// without an annotation; it may be nil when no parameter is annotated.
type FuncBody struct {
	Generics *GenericDecl
	Lparen   *Lexeme
	Params   List[*Lexeme] // names, and possibly a final "..."
	Types    []*TypeSpec
	Rparen   *Lexeme
	Return   *TypeSpec // return type annotation, if any
	Block    *Block
	EndKw    *Lexeme
}

// GenericDecl is a list of generic type parameters, such as "<T, U...>".
type GenericDecl struct {
	Lt     *Lexeme
	Params List[*GenericParam]
	Gt     *Lexeme
}

// GenericParam is a single generic type parameter, with an optional
// default such as in "T = number".
type GenericParam struct {
	Name    *Lexeme
	Dots    *Lexeme // for generic type packs, "T..."
	Equals  *Lexeme
	Default TypeNode
}

// TypeDecl represents a type alias, such as "export type T<U> = {U}".
type TypeDecl struct {
	Export   *Lexeme // nil if not exported
	Type     *Lexeme
	Name     *Lexeme
	Generics *GenericDecl
	Equals   *Lexeme
	Value    TypeNode
}

// Exported reports whether the type declaration is exported.
func (t *TypeDecl) Exported() bool { return t.Export != nil }

// TypeFuncDecl represents a type function, such as
// "type function f(t) return t end".
type TypeFuncDecl struct {
	Export   *Lexeme // nil if not exported
	Type     *Lexeme
	Function *Lexeme
	Name     *Lexeme
	Body     *FuncBody
}

// Exported reports whether the type function is exported.
func (t *TypeFuncDecl) Exported() bool { return t.Export != nil }

// DoStmt represents a "do ... end" block.
type DoStmt struct {
	Do    *Lexeme
	Block *Block
	EndKw *Lexeme
}

// IfStmt represents an if statement, along with any elseif and else
// clauses.
type IfStmt struct {
	If      *Lexeme
	Cond    Expr
	Then    *Lexeme
	Block   *Block
	ElseIfs []*ElseIf
	Else    *Lexeme // nil if there is no else clause
	ElseBlk *Block
	EndKw   *Lexeme
}

// ElseIf is an elseif clause within an if statement.
type ElseIf struct {
	ElseIf *Lexeme
	Cond   Expr
	Then   *Lexeme
	Block  *Block
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	While *Lexeme
	Cond  Expr
	Do    *Lexeme
	Block *Block
	EndKw *Lexeme
}

// RepeatStmt represents a "repeat ... until" loop.
type RepeatStmt struct {
	Repeat *Lexeme
	Block  *Block
	Until  *Lexeme
	Cond   Expr
}

// NumericFor represents a numeric for loop, such as "for i = 1, 10, 2".
type NumericFor struct {
	For    *Lexeme
	Var    *Lexeme
	Type   *TypeSpec
	Equals *Lexeme
	Start  Expr
	Comma1 *Lexeme
	Stop   Expr
	Comma2 *Lexeme // nil if there is no step
	Step   Expr
	Do     *Lexeme
	Block  *Block
	EndKw  *Lexeme
}

// GenericFor represents a generic for loop, such as
// "for k, v in pairs(t)". Types follows the same rules as in
// LocalAssign.
type GenericFor struct {
	For   *Lexeme
	Names List[*Lexeme]
	Types []*TypeSpec
	In    *Lexeme
	Exprs List[Expr]
	Do    *Lexeme
	Block *Block
	EndKw *Lexeme
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Return *Lexeme
	Values List[Expr]
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	Break *Lexeme
}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	Continue *Lexeme
}

// GotoStmt represents a goto statement, such as "goto done".
type GotoStmt struct {
	Goto  *Lexeme
	Label *Lexeme
}

// LabelStmt represents a label, such as "::done::".
type LabelStmt struct {
	Open  *Lexeme
	Name  *Lexeme
	Close *Lexeme
}

// AssignStmt represents an assignment, such as "a, b.c = 1, 2".
type AssignStmt struct {
	Vars   List[Expr]
	Equals *Lexeme
	Values List[Expr]
}

// CompoundAssign represents a compound assignment, such as "a += 1".
type CompoundAssign struct {
	Var   Expr
	Op    *Lexeme
	Value Expr
}

// CallStmt represents a function call used as a statement.
type CallStmt struct {
	Call *CallExpr
}

// Expr represents all nodes which are expressions. Single-token
// expressions, such as names, numbers, strings, nil, true, false and
// "...", are represented as a *Lexeme.
type Expr interface {
	Node
	exprNode()
}

func (*Lexeme) exprNode()        {}
func (*ParenExpr) exprNode()     {}
func (*UnaryExpr) exprNode()     {}
func (*BinaryExpr) exprNode()    {}
func (*DotExpr) exprNode()       {}
func (*IndexExpr) exprNode()     {}
func (*CallExpr) exprNode()      {}
func (*FuncExpr) exprNode()      {}
func (*TableExpr) exprNode()     {}
func (*IfExpr) exprNode()        {}
func (*InterpString) exprNode()  {}
func (*TypeAssertion) exprNode() {}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Lparen *Lexeme
	X      Expr
	Rparen *Lexeme
}

// UnaryExpr represents a unary operation, such as "not a" or "#t".
type UnaryExpr struct {
	Op *Lexeme
	X  Expr
}

// BinaryExpr represents a binary operation, such as "a .. b".
type BinaryExpr struct {
	X  Expr
	Op *Lexeme
	Y  Expr
}

// DotExpr represents a field access, such as "a.b".
type DotExpr struct {
	X    Expr
	Dot  *Lexeme
	Name *Lexeme
}

// IndexExpr represents an index expression, such as "a[b]".
type IndexExpr struct {
	X      Expr
	Lbrack *Lexeme
	Index  Expr
	Rbrack *Lexeme
}

// CallExpr represents a function or method call. When Lparen is nil,
// the call has a single table or string argument, such as in
// f{1, 2} or f"str".
type CallExpr struct {
	X      Expr
	Colon  *Lexeme // nil unless this is a method call
	Method *Lexeme
	Lparen *Lexeme
	Args   List[Expr]
	Rparen *Lexeme
}

// FuncExpr represents an anonymous function, such as "function() end".
type FuncExpr struct {
	Attrs    []*Lexeme
	Function *Lexeme
	Body     *FuncBody
}

// TableExpr represents a table constructor, such as "{1, x = 2}".
type TableExpr struct {
	Lbrace *Lexeme
	Fields List[*TableField] // separated by commas or semicolons
	Rbrace *Lexeme
}

// TableField is a single field in a table constructor. It is one of
// "[key] = value", "name = value" or just "value".
type TableField struct {
	Lbrack *Lexeme
	Key    Expr
	Rbrack *Lexeme
	Name   *Lexeme
	Equals *Lexeme
	Value  Expr
}

// IfExpr represents an if-then-else expression.
type IfExpr struct {
	If      *Lexeme
	Cond    Expr
	Then    *Lexeme
	X       Expr
	ElseIfs []*ElseIfExpr
	Else    *Lexeme
	Y       Expr
}

// ElseIfExpr is an elseif clause within an if-then-else expression.
type ElseIfExpr struct {
	ElseIf *Lexeme
	Cond   Expr
	Then   *Lexeme
	X      Expr
}

// InterpString represents an interpolated string, such as `a{b}c`.
// Parts holds the string sections, and Exprs the expressions between
// them, so that len(Exprs) == len(Parts)-1.
type InterpString struct {
	Parts []*Lexeme
	Exprs []Expr
}

// TypeAssertion represents a type cast, such as "x :: number".
type TypeAssertion struct {
	X    Expr
	Op   *Lexeme
	Type TypeNode
}

// TypeNode represents all nodes which are Luau types. Singleton types,
// such as nil, true, false and string literals, are represented as a
// *Lexeme.
type TypeNode interface {
	Node
	typeNode()
}

func (*Lexeme) typeNode()          {}
func (*TypeName) typeNode()        {}
func (*TypeTypeof) typeNode()      {}
func (*TypeTable) typeNode()       {}
func (*TypeFunc) typeNode()        {}
func (*TypeParen) typeNode()       {}
func (*TypeOptional) typeNode()    {}
func (*TypeUnion) typeNode()       {}
func (*TypeVariadic) typeNode()    {}
func (*TypeGenericPack) typeNode() {}

// TypeName is a reference to a named type, such as "mod.T<U>".
type TypeName struct {
	Prefix *Lexeme // nil unless the type is qualified by a module
	Dot    *Lexeme
	Name   *Lexeme
	Lt     *Lexeme // nil if there are no type arguments
	Args   List[TypeNode]
	Gt     *Lexeme
}

// TypeTypeof represents a "typeof(expr)" type.
type TypeTypeof struct {
	Typeof *Lexeme
	Lparen *Lexeme
	X      Expr
	Rparen *Lexeme
}

// TypeTable represents a table type, such as "{x: number, [string]: T}"
// or the array shorthand "{T}".
type TypeTable struct {
	Lbrace *Lexeme
	Fields List[*TypeField] // separated by commas or semicolons
	Rbrace *Lexeme
}

// TypeField is a single field in a table type. It is one of
// "[key]: value", "name: value" or, for arrays, just "value". Access
// holds an optional "read" or "write" modifier.
type TypeField struct {
	Access *Lexeme
	Lbrack *Lexeme
	Key    TypeNode
	Rbrack *Lexeme
	Name   *Lexeme
	Colon  *Lexeme
	Value  TypeNode
}

// TypeFunc represents a function type, such as "<T>(x: T) -> T".
type TypeFunc struct {
	Generics *GenericDecl
	Lparen   *Lexeme
	Params   List[*TypeParam]
	Rparen   *Lexeme
	Arrow    *Lexeme
	Return   TypeNode
}

// TypeParam is a function type parameter with an optional name.
type TypeParam struct {
	Name  *Lexeme
	Colon *Lexeme
	Type  TypeNode
}

// TypeParen represents a parenthesized type or a type pack, such as
// "(T)", "()" or "(T, U)".
type TypeParen struct {
	Lparen *Lexeme
	Types  List[TypeNode]
	Rparen *Lexeme
}

// TypeOptional represents an optional type, such as "T?".
type TypeOptional struct {
	X        TypeNode
	Question *Lexeme
}

// TypeUnion represents a union or intersection of types, such as
// "A | B" or "A & B". Lead holds an optional leading separator, as in
// "| A | B".
type TypeUnion struct {
	Lead  *Lexeme
	Types List[TypeNode]
}

// TypeVariadic represents a variadic type pack, such as "...number".
type TypeVariadic struct {
	Dots *Lexeme
	Type TypeNode
}

// TypeGenericPack represents a generic type pack, such as "T...".
type TypeGenericPack struct {
	Name *Lexeme
	Dots *Lexeme
}

// The positions of the nodes below are taken from the first and last
// lexemes found by Walk.

func (f *File) Pos() Pos           { return firstPos(f) }
func (f *File) End() Pos           { return lastEnd(f) }
func (b *Block) Pos() Pos          { return firstPos(b) }
func (b *Block) End() Pos          { return lastEnd(b) }
func (s *Stmt) Pos() Pos           { return firstPos(s) }
func (s *Stmt) End() Pos           { return lastEnd(s) }
func (t *TypeSpec) Pos() Pos       { return t.Colon.Pos() }
func (t *TypeSpec) End() Pos       { return t.Type.End() }
func (x *LocalAssign) Pos() Pos    { return x.Local.Pos() }
func (x *LocalAssign) End() Pos    { return lastEnd(x) }
func (x *LocalFunc) Pos() Pos      { return firstPos(x) }
func (x *LocalFunc) End() Pos      { return x.Body.End() }
func (x *FuncDecl) Pos() Pos       { return firstPos(x) }
func (x *FuncDecl) End() Pos       { return x.Body.End() }
func (x *FuncName) Pos() Pos       { return firstPos(x) }
func (x *FuncName) End() Pos       { return lastEnd(x) }
func (x *FuncBody) Pos() Pos       { return firstPos(x) }
func (x *FuncBody) End() Pos       { return x.EndKw.End() }
func (x *GenericDecl) Pos() Pos    { return x.Lt.Pos() }
func (x *GenericDecl) End() Pos    { return x.Gt.End() }
func (x *GenericParam) Pos() Pos   { return x.Name.Pos() }
func (x *GenericParam) End() Pos   { return lastEnd(x) }
func (x *TypeDecl) Pos() Pos       { return firstPos(x) }
func (x *TypeDecl) End() Pos       { return x.Value.End() }
func (x *TypeFuncDecl) Pos() Pos   { return firstPos(x) }
func (x *TypeFuncDecl) End() Pos   { return x.Body.End() }
func (x *DoStmt) Pos() Pos         { return x.Do.Pos() }
func (x *DoStmt) End() Pos         { return x.EndKw.End() }
func (x *IfStmt) Pos() Pos         { return x.If.Pos() }
func (x *IfStmt) End() Pos         { return x.EndKw.End() }
func (x *ElseIf) Pos() Pos         { return x.ElseIf.Pos() }
func (x *ElseIf) End() Pos         { return lastEnd(x) }
func (x *WhileStmt) Pos() Pos      { return x.While.Pos() }
func (x *WhileStmt) End() Pos      { return x.EndKw.End() }
func (x *RepeatStmt) Pos() Pos     { return x.Repeat.Pos() }
func (x *RepeatStmt) End() Pos     { return x.Cond.End() }
func (x *NumericFor) Pos() Pos     { return x.For.Pos() }
func (x *NumericFor) End() Pos     { return x.EndKw.End() }
func (x *GenericFor) Pos() Pos     { return x.For.Pos() }
func (x *GenericFor) End() Pos     { return x.EndKw.End() }
func (x *ReturnStmt) Pos() Pos     { return x.Return.Pos() }
func (x *ReturnStmt) End() Pos     { return lastEnd(x) }
func (x *BreakStmt) Pos() Pos      { return x.Break.Pos() }
func (x *BreakStmt) End() Pos      { return x.Break.End() }
func (x *ContinueStmt) Pos() Pos   { return x.Continue.Pos() }
func (x *ContinueStmt) End() Pos   { return x.Continue.End() }
func (x *GotoStmt) Pos() Pos       { return x.Goto.Pos() }
func (x *GotoStmt) End() Pos       { return x.Label.End() }
func (x *LabelStmt) Pos() Pos      { return x.Open.Pos() }
func (x *LabelStmt) End() Pos      { return x.Close.End() }
func (x *AssignStmt) Pos() Pos     { return firstPos(x) }
func (x *AssignStmt) End() Pos     { return lastEnd(x) }
func (x *CompoundAssign) Pos() Pos { return x.Var.Pos() }
func (x *CompoundAssign) End() Pos { return x.Value.End() }
func (x *CallStmt) Pos() Pos       { return x.Call.Pos() }
func (x *CallStmt) End() Pos       { return x.Call.End() }

func (x *ParenExpr) Pos() Pos     { return x.Lparen.Pos() }
func (x *ParenExpr) End() Pos     { return x.Rparen.End() }
func (x *UnaryExpr) Pos() Pos     { return x.Op.Pos() }
func (x *UnaryExpr) End() Pos     { return x.X.End() }
func (x *BinaryExpr) Pos() Pos    { return x.X.Pos() }
func (x *BinaryExpr) End() Pos    { return x.Y.End() }
func (x *DotExpr) Pos() Pos       { return x.X.Pos() }
func (x *DotExpr) End() Pos       { return x.Name.End() }
func (x *IndexExpr) Pos() Pos     { return x.X.Pos() }
func (x *IndexExpr) End() Pos     { return x.Rbrack.End() }
func (x *CallExpr) Pos() Pos      { return x.X.Pos() }
func (x *CallExpr) End() Pos      { return lastEnd(x) }
func (x *FuncExpr) Pos() Pos      { return firstPos(x) }
func (x *FuncExpr) End() Pos      { return x.Body.End() }
func (x *TableExpr) Pos() Pos     { return x.Lbrace.Pos() }
func (x *TableExpr) End() Pos     { return x.Rbrace.End() }
func (x *TableField) Pos() Pos    { return firstPos(x) }
func (x *TableField) End() Pos    { return x.Value.End() }
func (x *IfExpr) Pos() Pos        { return x.If.Pos() }
func (x *IfExpr) End() Pos        { return x.Y.End() }
func (x *ElseIfExpr) Pos() Pos    { return x.ElseIf.Pos() }
func (x *ElseIfExpr) End() Pos    { return x.X.End() }
func (x *InterpString) Pos() Pos  { return x.Parts[0].Pos() }
func (x *InterpString) End() Pos  { return x.Parts[len(x.Parts)-1].End() }
func (x *TypeAssertion) Pos() Pos { return x.X.Pos() }
func (x *TypeAssertion) End() Pos { return x.Type.End() }

func (x *TypeName) Pos() Pos        { return firstPos(x) }
func (x *TypeName) End() Pos        { return lastEnd(x) }
func (x *TypeTypeof) Pos() Pos      { return x.Typeof.Pos() }
func (x *TypeTypeof) End() Pos      { return x.Rparen.End() }
func (x *TypeTable) Pos() Pos       { return x.Lbrace.Pos() }
func (x *TypeTable) End() Pos       { return x.Rbrace.End() }
func (x *TypeField) Pos() Pos       { return firstPos(x) }
func (x *TypeField) End() Pos       { return x.Value.End() }
func (x *TypeFunc) Pos() Pos        { return firstPos(x) }
func (x *TypeFunc) End() Pos        { return x.Return.End() }
func (x *TypeParam) Pos() Pos       { return firstPos(x) }
func (x *TypeParam) End() Pos       { return x.Type.End() }
func (x *TypeParen) Pos() Pos       { return x.Lparen.Pos() }
func (x *TypeParen) End() Pos       { return x.Rparen.End() }
func (x *TypeOptional) Pos() Pos    { return x.X.Pos() }
func (x *TypeOptional) End() Pos    { return x.Question.End() }
func (x *TypeUnion) Pos() Pos       { return firstPos(x) }
func (x *TypeUnion) End() Pos       { return lastEnd(x) }
func (x *TypeVariadic) Pos() Pos    { return x.Dots.Pos() }
func (x *TypeVariadic) End() Pos    { return x.Type.End() }
func (x *TypeGenericPack) Pos() Pos { return x.Name.Pos() }
func (x *TypeGenericPack) End() Pos { return x.Dots.End() }

func firstPos(node Node) Pos {
	if l := firstLexeme(node); l != nil {
		return l.Pos()
	}
	return 0
}

func lastEnd(node Node) Pos {
	if l := lastLexeme(node); l != nil {
		return l.End()
	}
	return 0
}

// firstLexeme returns the first lexeme within a node, or nil if it
// holds none, such as an empty block.
func firstLexeme(node Node) (first *Lexeme) {
	Walk(node, func(node Node) bool {
		if first != nil {
			return false
		}
		if l, ok := node.(*Lexeme); ok {
			first = l
			return false
		}
		return true
	})
	return first
}

// lastLexeme returns the last lexeme within a node, or nil if it holds
// none.
func lastLexeme(node Node) (last *Lexeme) {
	Walk(node, func(node Node) bool {
		if l, ok := node.(*Lexeme); ok {
			last = l
		}
		return true
	})
	return last
}
