// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"os"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestWalkSourceOrder(t *testing.T) {
	t.Parallel()
	src, err := os.ReadFile("testdata/corpus.luau")
	qt.Assert(t, err, qt.IsNil)
	f := parseString(t, string(src))

	var sb strings.Builder
	last := Pos(0)
	Walk(f, func(node Node) bool {
		l, ok := node.(*Lexeme)
		if !ok {
			return true
		}
		qt.Assert(t, l.Pos() > last, qt.IsTrue, qt.Commentf("%q", l.Value))
		last = l.Pos()
		sb.WriteString(l.Leading + l.Value + l.Trailing)
		return true
	})
	qt.Assert(t, sb.String(), qt.Equals, string(src))
}

func TestWalkStop(t *testing.T) {
	t.Parallel()
	f := parseString(t, "local function f() local x = 1 end\nprint(2)")
	var names []string
	Walk(f, func(node Node) bool {
		switch x := node.(type) {
		case *FuncBody:
			return false
		case *Lexeme:
			if x.Tok == Name || x.Tok == Number {
				names = append(names, x.Value)
			}
		}
		return true
	})
	qt.Assert(t, names, qt.DeepEquals, []string{"f", "print", "2"})
}

type newNode struct{}

func (newNode) Pos() Pos { return 0 }
func (newNode) End() Pos { return 0 }

func TestWalkUnexpectedType(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("did not panic")
		}
	}()
	Walk(newNode{}, func(Node) bool { return true })
}

func TestDebugPrint(t *testing.T) {
	t.Parallel()
	f := parseString(t, "local x: number = 5")
	var sb strings.Builder
	qt.Assert(t, DebugPrint(&sb, f.Block.Stmts[0].X), qt.IsNil)
	out := sb.String()
	qt.Check(t, strings.HasPrefix(out, "*syntax.LocalAssign {"), qt.IsTrue)
	qt.Check(t, strings.Contains(out, `Local: local "local" @0`), qt.IsTrue)
	qt.Check(t, strings.Contains(out, `Name: name "number" @9`), qt.IsTrue)
}
