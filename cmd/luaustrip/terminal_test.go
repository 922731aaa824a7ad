// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build !windows

package main

import (
	"bytes"
	"testing"

	"github.com/creack/pty"
	qt "github.com/frankban/quicktest"
)

func TestUseColor(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("TERM", "xterm")

	ptm, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open a pseudo-terminal: %v", err)
	}
	defer ptm.Close()
	defer tty.Close()

	qt.Check(t, useColor(tty), qt.IsTrue)
	qt.Check(t, useColor(new(bytes.Buffer)), qt.IsFalse)

	t.Setenv("TERM", "dumb")
	qt.Check(t, useColor(tty), qt.IsFalse)

	t.Setenv("FORCE_COLOR", "true")
	qt.Check(t, useColor(new(bytes.Buffer)), qt.IsTrue)
}
