// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package fileutil allows inspecting files to decide whether they hold Luau
// or Lua source code.
package fileutil

import (
	"io/fs"
	"regexp"
	"strings"
)

var (
	shebangRe = regexp.MustCompile(`^#![ \t]*/(?:usr/)?(?:local/)?bin/(?:env[ \t]+)?([^ \t\r\n]+)`)
	interpRe  = regexp.MustCompile(`^(lua(u|jit|[0-9.]+)?|lune)$`)
	extRe     = regexp.MustCompile(`\.(lua|luau)$`)
)

// Shebang parses a "#!" interpreter line and returns the name of the
// program it runs, such as "luau". An empty string is returned if bs does
// not start with a shebang.
func Shebang(bs []byte) string {
	m := shebangRe.FindSubmatch(bs)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// HasShebang reports whether bs starts with a shebang naming a Lua or Luau
// interpreter.
func HasShebang(bs []byte) bool {
	return interpRe.MatchString(Shebang(bs))
}

// Confidence describes how likely a file is to hold Luau source code.
type Confidence int

const (
	ConfNotLuau Confidence = iota
	ConfIfShebang
	ConfIsLuau
)

// CouldBeLuau reports how likely a directory entry is to be a Luau source
// file, judging by its name and type alone. ConfIfShebang means that the
// file's first line must be checked with HasShebang.
func CouldBeLuau(entry fs.DirEntry) Confidence {
	name := entry.Name()
	switch {
	case entry.IsDir(), name[0] == '.', !entry.Type().IsRegular():
		return ConfNotLuau
	case extRe.MatchString(name):
		return ConfIsLuau
	case strings.Contains(name, "."):
		return ConfNotLuau // different extension
	default:
		return ConfIfShebang
	}
}
