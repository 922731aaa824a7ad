// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax_test

import (
	"os"
	"strings"

	"mvdan.cc/luaustrip/syntax"
)

func Example() {
	in := strings.NewReader(`type Point = {x: number, y: number}
local function norm(p: Point): number
	return math.sqrt(p.x ^ 2 + p.y ^ 2)
end
`)
	f, err := syntax.NewParser().Parse(in, "")
	if err != nil {
		return
	}
	f = syntax.StripTypes(f)
	syntax.NewPrinter().Print(os.Stdout, f)
	// Output:
	// local function norm(p)
	//	return math.sqrt(p.x ^ 2 + p.y ^ 2)
	// end
}

func ExampleWalk() {
	in := strings.NewReader(`local total = count * price`)
	f, err := syntax.NewParser().Parse(in, "")
	if err != nil {
		return
	}
	syntax.Walk(f, func(node syntax.Node) bool {
		if x, ok := node.(*syntax.Lexeme); ok && x.Tok == syntax.Name {
			x.Value = strings.ToUpper(x.Value)
		}
		return true
	})
	syntax.NewPrinter().Print(os.Stdout, f)
	// Output: local TOTAL = COUNT * PRICE
}

func ExampleAllBlocks() {
	in := strings.NewReader(`for _, v: number in values do print(v :: any) end`)
	f, err := syntax.NewParser().Parse(in, "")
	if err != nil {
		return
	}
	f = syntax.StripTypes(f, syntax.AllBlocks(true))
	syntax.NewPrinter().Print(os.Stdout, f)
	// Output: for _, v in values do print(v) end
}
