// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

var printTests = []string{
	"",
	"\n\n",
	"-- only a comment",
	"#!/usr/bin/env luau\nprint(1)\n",
	"local x   =   5   ;   ",
	"\tlocal x: {[string]: number?} = {}\r\n",
	"if a then\n\tb()\nelseif c then\nelse --[[ x ]]\nend\n",
	"local s = `a{b}c{ `d{e}` }f`",
	"local l = [==[\n]]\n]==] .. [[x]]",
	"type T<A, B... = ...string> = (A, B...) -> ()",
	"x = function(...) return ... end;",
	"for i = 10, 1, -1 do end",
	"::top:: goto top",
	"local t = {f = function() end; [1] = 2,}",
	"local v = if x then y elseif z then w else nil",
	"a.b[c]:d(e)'f'{g}",
}

func TestPrintRoundTrip(t *testing.T) {
	t.Parallel()
	p := NewParser()
	printer := NewPrinter()
	for _, src := range printTests {
		t.Run("", func(t *testing.T) {
			f, err := p.Parse(strings.NewReader(src), "")
			qt.Assert(t, err, qt.IsNil)
			var buf bytes.Buffer
			qt.Assert(t, printer.Print(&buf, f), qt.IsNil)
			qt.Assert(t, buf.String(), qt.Equals, src)
		})
	}
}

func TestPrintNode(t *testing.T) {
	t.Parallel()
	f := parseString(t, "local a = 1 -- one\n\n-- two\nlocal b: number = 2\n")
	tests := []struct {
		node Node
		want string
	}{
		{f.Block.Stmts[0], "local a = 1 -- one\n"},
		{f.Block.Stmts[1], "\n-- two\nlocal b: number = 2\n"},
		{f.Block.Stmts[1].X.(*LocalAssign).Types[0], ": number "},
		{f.Block.Stmts[1].X.(*LocalAssign).Names.Items[0], "b"},
		{f.EOF, ""},
	}
	printer := NewPrinter()
	for _, tc := range tests {
		var buf bytes.Buffer
		qt.Assert(t, printer.Print(&buf, tc.node), qt.IsNil)
		qt.Check(t, buf.String(), qt.Equals, tc.want)
	}
}

type badWriter struct{}

var errBadWriter = errors.New("write: expected error")

func (b badWriter) Write(p []byte) (int, error) { return 0, errBadWriter }

func TestWriteErr(t *testing.T) {
	t.Parallel()
	f := parseString(t, "print(1)")
	err := NewPrinter().Print(badWriter{}, f)
	qt.Assert(t, errors.Is(err, errBadWriter), qt.IsTrue)
}
