// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bufio"
	"io"
)

// Printer holds the internal state of the printing mechanism of a
// program.
type Printer struct {
	bufWriter *bufio.Writer
	err       error
}

// NewPrinter allocates a new Printer. A Printer may be reused for any
// number of sequential Print calls.
func NewPrinter() *Printer {
	return &Printer{bufWriter: bufio.NewWriter(nil)}
}

// Print writes the source text of the given node to w. Each lexeme is
// written with its leading and trailing trivia, so printing a *File
// produced by Parse gives back the original source.
//
// Only *File includes the whitespace and comments found after the last
// statement.
func (p *Printer) Print(w io.Writer, node Node) error {
	p.bufWriter.Reset(w)
	p.err = nil
	Walk(node, p.visit)
	if err := p.bufWriter.Flush(); p.err == nil {
		p.err = err
	}
	return p.err
}

func (p *Printer) visit(node Node) bool {
	if p.err != nil {
		return false
	}
	l, ok := node.(*Lexeme)
	if !ok {
		return true
	}
	for _, s := range [...]string{l.Leading, l.Value, l.Trailing} {
		if _, err := p.bufWriter.WriteString(s); err != nil {
			p.err = err
			return false
		}
	}
	return true
}
