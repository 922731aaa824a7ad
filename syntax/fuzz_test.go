// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bytes"
	"strings"
	"testing"
)

func FuzzParsePrint(f *testing.F) {
	add := func(src string) {
		f.Add(src, false)
		f.Add(src, true)
	}
	for _, tc := range stripTests {
		add(tc.in)
	}
	for _, tc := range stripAllTests {
		add(tc.in)
	}
	for _, src := range printTests {
		add(src)
	}

	f.Fuzz(func(t *testing.T, src string, allBlocks bool) {
		parser := NewParser()
		prog, err := parser.Parse(strings.NewReader(src), "")
		if err != nil {
			t.Skip() // not valid Luau
		}
		printer := NewPrinter()
		var buf bytes.Buffer
		if err := printer.Print(&buf, prog); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != src {
			t.Fatalf("print did not round-trip:\nwant: %q\ngot:  %q", src, got)
		}

		buf.Reset()
		stripped := StripTypes(prog, AllBlocks(allBlocks))
		if err := printer.Print(&buf, stripped); err != nil {
			t.Fatal(err)
		}
		once := buf.String()
		prog2, err := parser.Parse(strings.NewReader(once), "")
		if err != nil {
			t.Fatalf("stripped program does not parse: %v\n%s", err, once)
		}
		buf.Reset()
		if err := printer.Print(&buf, StripTypes(prog2, AllBlocks(allBlocks))); err != nil {
			t.Fatal(err)
		}
		if twice := buf.String(); twice != once {
			t.Fatalf("stripping is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	})
}
