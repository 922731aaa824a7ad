// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
)

// tok is a compact lexeme used to describe expected lexer output.
type tok struct {
	Tok                      Token
	Value, Leading, Trailing string
}

func lexString(src string) ([]tok, error) {
	p := NewParser()
	p.reset([]byte(src))
	p.lexAll()
	if p.err != nil {
		return nil, p.err
	}
	var toks []tok
	for _, l := range p.toks {
		toks = append(toks, tok{l.Tok, l.Value, l.Leading, l.Trailing})
	}
	return toks, nil
}

var lexTests = []struct {
	in   string
	want []tok
}{
	{"", []tok{{EOF, "", "", ""}}},
	{"  \n\t", []tok{{EOF, "", "  \n\t", ""}}},
	{
		"local x = 5 -- five\n\n-- c\nprint(x)",
		[]tok{
			{KwLocal, "local", "", " "},
			{Name, "x", "", " "},
			{Assign, "=", "", " "},
			{Number, "5", "", " -- five\n"},
			{Name, "print", "\n-- c\n", ""},
			{LeftParen, "(", "", ""},
			{Name, "x", "", ""},
			{RightParen, ")", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"#!/usr/bin/env luau\nprint(1)\n",
		[]tok{
			{Name, "print", "#!/usr/bin/env luau\n", ""},
			{LeftParen, "(", "", ""},
			{Number, "1", "", ""},
			{RightParen, ")", "", "\n"},
			{EOF, "", "", ""},
		},
	},
	{
		"x --[[ multi\nline ]] y\n--[==[ ]] ]==]",
		[]tok{
			{Name, "x", "", " --[[ multi\nline ]] "},
			{Name, "y", "", "\n"},
			{EOF, "", "--[==[ ]] ]==]", ""},
		},
	},
	{
		"a //= b ..= c ... :: -> ~= ..",
		[]tok{
			{Name, "a", "", " "},
			{FloorDivAssign, "//=", "", " "},
			{Name, "b", "", " "},
			{ConcatAssign, "..=", "", " "},
			{Name, "c", "", " "},
			{Ellipsis, "...", "", " "},
			{DblColon, "::", "", " "},
			{Arrow, "->", "", " "},
			{Neq, "~=", "", " "},
			{DblDot, "..", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"0x1F 0b1010 1_000 1e10 .5 3.14e-2 0XFF_FF",
		[]tok{
			{Number, "0x1F", "", " "},
			{Number, "0b1010", "", " "},
			{Number, "1_000", "", " "},
			{Number, "1e10", "", " "},
			{Number, ".5", "", " "},
			{Number, "3.14e-2", "", " "},
			{Number, "0XFF_FF", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		`"a\"b" 'c' [==[d]]e]==] [[]]`,
		[]tok{
			{String, `"a\"b"`, "", " "},
			{String, `'c'`, "", " "},
			{LongString, `[==[d]]e]==]`, "", " "},
			{LongString, `[[]]`, "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"\"a\\z\n   b\"",
		[]tok{
			{String, "\"a\\z\n   b\"", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"`a{b}c` `plain` `{ {1} }`",
		[]tok{
			{InterpBegin, "`a{", "", ""},
			{Name, "b", "", ""},
			{InterpEnd, "}c`", "", " "},
			{InterpSimple, "`plain`", "", " "},
			{InterpBegin, "`{", "", " "},
			{LeftBrace, "{", "", ""},
			{Number, "1", "", ""},
			{RightBrace, "}", "", " "},
			{InterpEnd, "}`", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"`x{1}y{2}z` `\\u{48}`",
		[]tok{
			{InterpBegin, "`x{", "", ""},
			{Number, "1", "", ""},
			{InterpMid, "}y{", "", ""},
			{Number, "2", "", ""},
			{InterpEnd, "}z`", "", " "},
			{InterpSimple, "`\\u{48}`", "", ""},
			{EOF, "", "", ""},
		},
	},
	{
		"@native function type",
		[]tok{
			{Attribute, "@native", "", " "},
			{KwFunction, "function", "", " "},
			{Name, "type", "", ""},
			{EOF, "", "", ""},
		},
	},
}

func TestLex(t *testing.T) {
	t.Parallel()
	for i, tc := range lexTests {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			got, err := lexString(tc.in)
			qt.Assert(t, err, qt.IsNil)
			qt.Assert(t, got, qt.DeepEquals, tc.want)
		})
	}
}

var lexErrors = []struct {
	in, want string
}{
	{`local x = "abc`, `1:11: unfinished string`},
	{"x = 'a\nb'", `1:5: unfinished string`},
	{`x = [[abc`, `1:5: unfinished long string`},
	{`x = [=abc`, `1:5: invalid long string delimiter`},
	{`--[[ comment`, `1:1: unfinished long comment`},
	{"x = 1\n--[==[ ]] ]=]", `2:1: unfinished long comment`},
	{`x = 0xg`, `1:5: malformed number`},
	{`x = 1..2`, `1:5: malformed number`},
	{`x = 1 ~ 2`, `1:7: unexpected character '~'`},
	{`x = $`, `1:5: unexpected character '$'`},
	{`@ function`, `1:1: attribute must be followed by a name`},
	{"x = `a{{b}}`", `1:7: double braces are not permitted within interpolated strings`},
	{"x = `abc", `1:5: unfinished string`},
}

func TestLexErr(t *testing.T) {
	t.Parallel()
	for _, tc := range lexErrors {
		t.Run("", func(t *testing.T) {
			_, err := lexString(tc.in)
			qt.Assert(t, err, qt.Not(qt.IsNil))
			qt.Assert(t, err.Error(), qt.Equals, tc.want)
		})
	}
}

func TestValidNumber(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "1.", "1.5", "1e+5", "0xffffffffffffffffff", "1e999"} {
		qt.Check(t, validNumber(s), qt.IsTrue, qt.Commentf("%q", s))
	}
	for _, s := range []string{"0x", "0b2", "1e", "1.2.3", "12abc"} {
		qt.Check(t, validNumber(s), qt.IsFalse, qt.Commentf("%q", s))
	}
}
