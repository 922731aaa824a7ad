// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
)

var cmpOpt = cmp.FilterValues(func(p1, p2 Pos) bool { return true }, cmp.Ignore())

func lit(tok Token, val, trailing string) *Lexeme {
	return &Lexeme{Tok: tok, Value: val, Trailing: trailing}
}

func name(val, trailing string) *Lexeme { return lit(Name, val, trailing) }

func parseString(t *testing.T, src string) *File {
	t.Helper()
	f, err := NewParser().Parse(strings.NewReader(src), "")
	qt.Assert(t, err, qt.IsNil)
	return f
}

func firstStmt(t *testing.T, src string) StmtNode {
	t.Helper()
	f := parseString(t, src)
	qt.Assert(t, f.Block.Stmts, qt.HasLen, 1)
	return f.Block.Stmts[0].X
}

var parseTests = []struct {
	in   string
	want StmtNode
}{
	{
		"local x: number = 5",
		&LocalAssign{
			Local: lit(KwLocal, "local", " "),
			Names: List[*Lexeme]{Items: []*Lexeme{name("x", "")}},
			Types: []*TypeSpec{{
				Colon: lit(Colon, ":", " "),
				Type:  &TypeName{Name: name("number", " ")},
			}},
			Equals: lit(Assign, "=", " "),
			Values: List[Expr]{Items: []Expr{lit(Number, "5", "")}},
		},
	},
	{
		"local a, b: string",
		&LocalAssign{
			Local: lit(KwLocal, "local", " "),
			Names: List[*Lexeme]{
				Items: []*Lexeme{name("a", ""), name("b", "")},
				Seps:  []*Lexeme{lit(Comma, ",", " ")},
			},
			Types: []*TypeSpec{nil, {
				Colon: lit(Colon, ":", " "),
				Type:  &TypeName{Name: name("string", "")},
			}},
		},
	},
	{
		"export type T<U> = {U}",
		&TypeDecl{
			Export: name("export", " "),
			Type:   name("type", " "),
			Name:   name("T", ""),
			Generics: &GenericDecl{
				Lt:     lit(Lss, "<", ""),
				Params: List[*GenericParam]{Items: []*GenericParam{{Name: name("U", "")}}},
				Gt:     lit(Gtr, ">", " "),
			},
			Equals: lit(Assign, "=", " "),
			Value: &TypeTable{
				Lbrace: lit(LeftBrace, "{", ""),
				Fields: List[*TypeField]{Items: []*TypeField{{Value: &TypeName{Name: name("U", "")}}}},
				Rbrace: lit(RightBrace, "}", ""),
			},
		},
	},
	{
		"type F = (string, ...any) -> number?",
		&TypeDecl{
			Type:   name("type", " "),
			Name:   name("F", " "),
			Equals: lit(Assign, "=", " "),
			Value: &TypeFunc{
				Lparen: lit(LeftParen, "(", ""),
				Params: List[*TypeParam]{
					Items: []*TypeParam{
						{Type: &TypeName{Name: name("string", "")}},
						{Type: &TypeVariadic{
							Dots: lit(Ellipsis, "...", ""),
							Type: &TypeName{Name: name("any", "")},
						}},
					},
					Seps: []*Lexeme{lit(Comma, ",", " ")},
				},
				Rparen: lit(RightParen, ")", " "),
				Arrow:  lit(Arrow, "->", " "),
				Return: &TypeOptional{
					X:        &TypeName{Name: name("number", "")},
					Question: lit(Question, "?", ""),
				},
			},
		},
	},
	{
		"type U = A | B",
		&TypeDecl{
			Type:   name("type", " "),
			Name:   name("U", " "),
			Equals: lit(Assign, "=", " "),
			Value: &TypeUnion{Types: List[TypeNode]{
				Items: []TypeNode{&TypeName{Name: name("A", " ")}, &TypeName{Name: name("B", "")}},
				Seps:  []*Lexeme{lit(Pipe, "|", " ")},
			}},
		},
	},
	{
		"function a.b:c(x) end",
		&FuncDecl{
			Function: lit(KwFunction, "function", " "),
			Name: &FuncName{
				Names: List[*Lexeme]{
					Items: []*Lexeme{name("a", ""), name("b", "")},
					Seps:  []*Lexeme{lit(Dot, ".", "")},
				},
				Colon:  lit(Colon, ":", ""),
				Method: name("c", ""),
			},
			Body: &FuncBody{
				Lparen: lit(LeftParen, "(", ""),
				Params: List[*Lexeme]{Items: []*Lexeme{name("x", "")}},
				Rparen: lit(RightParen, ")", " "),
				Block:  &Block{},
				EndKw:  lit(KwEnd, "end", ""),
			},
		},
	},
	{
		"x += a * b + c",
		&CompoundAssign{
			Var: name("x", " "),
			Op:  lit(AddAssign, "+=", " "),
			Value: &BinaryExpr{
				X: &BinaryExpr{
					X:  name("a", " "),
					Op: lit(Star, "*", " "),
					Y:  name("b", " "),
				},
				Op: lit(Plus, "+", " "),
				Y:  name("c", ""),
			},
		},
	},
	{
		"x = a .. b .. c ^ d ^ e",
		&AssignStmt{
			Vars:   List[Expr]{Items: []Expr{name("x", " ")}},
			Equals: lit(Assign, "=", " "),
			Values: List[Expr]{Items: []Expr{&BinaryExpr{
				X:  name("a", " "),
				Op: lit(DblDot, "..", " "),
				Y: &BinaryExpr{
					X:  name("b", " "),
					Op: lit(DblDot, "..", " "),
					Y: &BinaryExpr{
						X:  name("c", " "),
						Op: lit(Caret, "^", " "),
						Y: &BinaryExpr{
							X:  name("d", " "),
							Op: lit(Caret, "^", " "),
							Y:  name("e", ""),
						},
					},
				},
			}}},
		},
	},
	{
		"f{1}",
		&CallStmt{Call: &CallExpr{
			X: name("f", ""),
			Args: List[Expr]{Items: []Expr{&TableExpr{
				Lbrace: lit(LeftBrace, "{", ""),
				Fields: List[*TableField]{Items: []*TableField{{Value: lit(Number, "1", "")}}},
				Rbrace: lit(RightBrace, "}", ""),
			}}},
		}},
	},
	{
		"continue",
		&ContinueStmt{Continue: name("continue", "")},
	},
	{
		"return x :: number",
		&ReturnStmt{
			Return: lit(KwReturn, "return", " "),
			Values: List[Expr]{Items: []Expr{&TypeAssertion{
				X:    name("x", " "),
				Op:   lit(DblColon, "::", " "),
				Type: &TypeName{Name: name("number", "")},
			}}},
		},
	},
}

func TestParseStmt(t *testing.T) {
	t.Parallel()
	for _, tc := range parseTests {
		t.Run("", func(t *testing.T) {
			got := firstStmt(t, tc.in)
			qt.Assert(t, got, qt.CmpEquals(cmpOpt), tc.want)
		})
	}
}

func TestParseContextualKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"type(x)", "*syntax.CallStmt"},
		{"type = 3", "*syntax.AssignStmt"},
		{"type T = number", "*syntax.TypeDecl"},
		{"type function f() end", "*syntax.TypeFuncDecl"},
		{"export type T = number", "*syntax.TypeDecl"},
		{"export.x = 1", "*syntax.AssignStmt"},
		{"continue()", "*syntax.CallStmt"},
		{"continue = 1", "*syntax.AssignStmt"},
		{"goto done", "*syntax.GotoStmt"},
		{"goto()", "*syntax.CallStmt"},
		{"::done::", "*syntax.LabelStmt"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := firstStmt(t, tc.in)
			qt.Assert(t, fmt.Sprintf("%T", got), qt.Equals, tc.want)
		})
	}
}

var errorCases = []struct {
	in, want string
}{
	{`if x then`, `1:1: reached EOF without matching "if" with "end"`},
	{"do\nrepeat until x", `1:1: reached EOF without matching "do" with "end"`},
	{`local function f(a b) end`, `1:17: reached "b" without matching ( with )`},
	{`return 1 print(2)`, `1:10: "return" must be the last statement in a block`},
	{"while x do break x = 1 end", `1:18: "break" must be the last statement in a block`},
	{`x`, `1:2: expected an assignment or a function call, found EOF`},
	{`x.y`, `1:4: expected an assignment or a function call, found EOF`},
	{"local x = f\n(g)", `2:1: ambiguous syntax: this could be a function call or a new statement; use ';' to separate statements`},
	{`type T = A | B & C`, `1:16: mixing union and intersection types is not allowed; consider wrapping in parentheses`},
	{`end`, `1:1: unexpected "end"`},
	{`local 1`, `1:1: "local" must be followed by a name`},
	{`local t = {1, 2`, `1:11: reached EOF without matching { with }`},
	{`@native local x = 1`, `1:1: "attributes" must be followed by "function"`},
	{`; x()`, `1:1: ; is not a valid start for a statement`},
	{`f() = 1`, `1:5: = is not a valid start for a statement`},
	{`(a) = 1`, `1:1: cannot assign to this expression`},
	{`if x y`, `1:1: "if <cond>" must be followed by "then"`},
	{`for i = 1 do end`, `1:7: "for <name> = <start>" must be followed by ,`},
	{`for i in do end`, `1:10: expected an expression, found "do"`},
	{`local x: = 1`, `1:10: expected a type, found =`},
	{"local x = `a{1 2}`", `1:16: reached 2 without closing the interpolated string expression`},
	{`type T = {x: number, string}`, `1:22: expected a table type field, found "string"`},
	{`local function f(..., a) end`, `1:21: "..." must be the last parameter`},
}

func TestParseErr(t *testing.T) {
	t.Parallel()
	p := NewParser()
	for _, c := range errorCases {
		t.Run("", func(t *testing.T) {
			t.Logf("input: %s", c.in)
			_, err := p.Parse(strings.NewReader(c.in), "")
			if err == nil {
				t.Fatalf("Expected error: %v", c.want)
			}
			if got := err.Error(); got != c.want {
				t.Fatalf("Error mismatch\nwant: %s\ngot:  %s", c.want, got)
			}
		})
	}
}

func TestInputName(t *testing.T) {
	t.Parallel()
	in := "("
	want := "some-file.luau:1:2: expected an expression, found EOF"
	_, err := NewParser().Parse(strings.NewReader(in), "some-file.luau")
	qt.Assert(t, err, qt.Not(qt.IsNil))
	qt.Assert(t, err.Error(), qt.Equals, want)

	var perr *ParseError
	qt.Assert(t, errors.As(err, &perr), qt.IsTrue)
	qt.Assert(t, perr.Filename, qt.Equals, "some-file.luau")
	qt.Assert(t, perr.Line, qt.Equals, 1)
	qt.Assert(t, perr.Column, qt.Equals, 2)
}

var errBadReader = errors.New("write: expected error")

type badReader struct{}

func (b badReader) Read(p []byte) (int, error) { return 0, errBadReader }

func TestReadErr(t *testing.T) {
	t.Parallel()
	_, err := NewParser().Parse(badReader{}, "")
	qt.Assert(t, errors.Is(err, errBadReader), qt.IsTrue)
}

func TestParseReuse(t *testing.T) {
	t.Parallel()
	p := NewParser()
	_, err := p.Parse(strings.NewReader("local x ="), "")
	qt.Assert(t, err, qt.Not(qt.IsNil))
	f, err := p.Parse(strings.NewReader("local x = 1"), "")
	qt.Assert(t, err, qt.IsNil)
	qt.Assert(t, f.Block.Stmts, qt.HasLen, 1)
	f2, err := p.Parse(strings.NewReader("print(2)"), "")
	qt.Assert(t, err, qt.IsNil)
	// the first tree must not be affected by later parses
	qt.Assert(t, f.Block.Stmts[0].X.(*LocalAssign).Local.Value, qt.Equals, "local")
	_, ok := f2.Block.Stmts[0].X.(*CallStmt)
	qt.Assert(t, ok, qt.IsTrue)
}

func TestPositions(t *testing.T) {
	t.Parallel()
	f := parseString(t, "local x = 1\nprint(x)")
	qt.Assert(t, f.Lines, qt.DeepEquals, []int{0, 12})
	stmt := f.Block.Stmts[1]
	qt.Check(t, f.Position(stmt.Pos()).String(), qt.Equals, "2:1")
	qt.Check(t, f.Position(stmt.End()).String(), qt.Equals, "2:9")
	qt.Check(t, f.Position(f.Block.Stmts[0].End()).String(), qt.Equals, "1:12")
	qt.Check(t, f.Pos(), qt.Equals, Pos(1))
	qt.Check(t, f.End(), qt.Equals, Pos(21))
	qt.Check(t, f.EOF.Pos().IsValid(), qt.IsTrue)
	qt.Check(t, Pos(0).IsValid(), qt.IsFalse)

	empty := parseString(t, "-- nothing\n")
	qt.Check(t, empty.Block.Pos().IsValid(), qt.IsFalse)
	qt.Check(t, empty.EOF.Leading, qt.Equals, "-- nothing\n")
}

func TestParseCorpus(t *testing.T) {
	t.Parallel()
	src, err := os.ReadFile("testdata/corpus.luau")
	qt.Assert(t, err, qt.IsNil)
	f, err := NewParser().Parse(bytes.NewReader(src), "corpus.luau")
	qt.Assert(t, err, qt.IsNil)

	var types, decls, asserts int
	Walk(f, func(node Node) bool {
		switch node.(type) {
		case *TypeSpec:
			types++
		case *TypeDecl, *TypeFuncDecl:
			decls++
		case *TypeAssertion:
			asserts++
		}
		return true
	})
	qt.Check(t, decls, qt.Equals, 14)
	qt.Check(t, types, qt.Equals, 12)
	qt.Check(t, asserts, qt.Equals, 3)

	var buf bytes.Buffer
	qt.Assert(t, NewPrinter().Print(&buf, f), qt.IsNil)
	qt.Assert(t, buf.String(), qt.Equals, string(src))
}
