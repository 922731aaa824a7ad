// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// operators, longest first so that prefixes such as ".." don't shadow
// "..." or "..="
var opTokens = [...]struct {
	val string
	tok Token
}{
	{"...", Ellipsis},
	{"..=", ConcatAssign},
	{"//=", FloorDivAssign},
	{"..", DblDot},
	{"//", DblSlash},
	{"==", Eql},
	{"~=", Neq},
	{"<=", Leq},
	{">=", Geq},
	{"::", DblColon},
	{"->", Arrow},
	{"+=", AddAssign},
	{"-=", SubAssign},
	{"*=", MulAssign},
	{"/=", DivAssign},
	{"%=", ModAssign},
	{"^=", PowAssign},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"^", Caret},
	{"#", Hash},
	{"<", Lss},
	{">", Gtr},
	{"=", Assign},
	{"(", LeftParen},
	{")", RightParen},
	{"]", RightBrack},
	{";", Semicolon},
	{":", Colon},
	{",", Comma},
	{".", Dot},
	{"?", Question},
	{"|", Pipe},
	{"&", Amp},
}

func (p *Parser) byteAt(n int) byte {
	if n < len(p.src) {
		return p.src[n]
	}
	return 0
}

func (p *Parser) peekByte(ahead int) byte { return p.byteAt(p.npos + ahead) }

func (p *Parser) lexErr(offset int, format string, a ...any) {
	p.posErr(Pos(offset+1), format, a...)
}

// lexAll splits the whole source into lexemes, attaching trivia to
// each of them. The last lexeme is always EOF.
func (p *Parser) lexAll() {
	lead := p.shebang()
	for p.err == nil {
		lead += p.trivia(false)
		if p.err != nil {
			return
		}
		start := p.npos
		tok := p.lexToken()
		if p.err != nil {
			return
		}
		l := &Lexeme{
			Tok:      tok,
			ValuePos: Pos(start + 1),
			Value:    string(p.src[start:p.npos]),
			Leading:  lead,
		}
		p.toks = append(p.toks, l)
		if tok == EOF {
			return
		}
		l.Trailing = p.trivia(true)
		lead = ""
	}
}

func (p *Parser) shebang() string {
	if !bytes.HasPrefix(p.src, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(p.src, '\n')
	if end < 0 {
		end = len(p.src)
	}
	p.npos = end
	return string(p.src[:end])
}

// trivia consumes whitespace and comments. When trailing is true, it
// stops right after the first newline.
func (p *Parser) trivia(trailing bool) string {
	start := p.npos
	for p.npos < len(p.src) {
		b := p.src[p.npos]
		switch {
		case b == '\n':
			p.npos++
			if trailing {
				return string(p.src[start:p.npos])
			}
		case isSpace(b):
			p.npos++
		case b == '-' && p.peekByte(1) == '-':
			if !p.comment() {
				return ""
			}
		default:
			return string(p.src[start:p.npos])
		}
	}
	return string(p.src[start:p.npos])
}

func (p *Parser) comment() bool {
	start := p.npos
	p.npos += 2 // --
	if p.peekByte(0) == '[' {
		save := p.npos
		if sep := p.longSeparator(); sep >= 0 {
			if !p.longBracket(sep) {
				p.lexErr(start, "unfinished long comment")
				return false
			}
			return true
		}
		p.npos = save
	}
	for p.npos < len(p.src) && p.src[p.npos] != '\n' && p.src[p.npos] != '\r' {
		p.npos++
	}
	return true
}

// longSeparator consumes a sequence such as "[==[" or "]==]" up to its
// second bracket, returning the number of equal signs. It returns -1 if
// there are no equal signs nor a second bracket, and less than -1 if
// the sequence is malformed. The second bracket is not consumed.
func (p *Parser) longSeparator() int {
	open := p.src[p.npos]
	p.npos++
	count := 0
	for p.peekByte(0) == '=' {
		p.npos++
		count++
	}
	if p.peekByte(0) == open {
		return count
	}
	return -count - 1
}

// longBracket consumes the body of a long string or comment, starting at
// its second opening bracket. It reports whether the closing sequence
// was found.
func (p *Parser) longBracket(sep int) bool {
	p.npos++ // second [
	for p.npos < len(p.src) {
		if p.src[p.npos] != ']' {
			p.npos++
			continue
		}
		if p.longSeparator() == sep && p.peekByte(0) == ']' {
			p.npos++
			return true
		}
	}
	return false
}

func (p *Parser) lexToken() Token {
	if p.npos >= len(p.src) {
		return EOF
	}
	start := p.npos
	b := p.src[p.npos]
	switch {
	case isDigit(b), b == '.' && isDigit(p.peekByte(1)):
		return p.number()
	case isAlpha(b), b == '_':
		word := p.name()
		if tok, ok := reserved[word]; ok {
			return tok
		}
		return Name
	}
	switch b {
	case '"', '\'':
		return p.quotedString()
	case '`':
		p.npos++
		return p.interpSection(start, InterpBegin, InterpSimple)
	case '[':
		sep := p.longSeparator()
		switch {
		case sep >= 0:
			if !p.longBracket(sep) {
				p.lexErr(start, "unfinished long string")
			}
			return LongString
		case sep == -1:
			return LeftBrack
		}
		p.lexErr(start, "invalid long string delimiter")
		return illegalTok
	case '{':
		p.npos++
		if len(p.braces) > 0 {
			p.braces = append(p.braces, false)
		}
		return LeftBrace
	case '}':
		p.npos++
		if len(p.braces) == 0 {
			return RightBrace
		}
		interp := p.braces[len(p.braces)-1]
		p.braces = p.braces[:len(p.braces)-1]
		if interp {
			return p.interpSection(start, InterpMid, InterpEnd)
		}
		return RightBrace
	case '@':
		p.npos++
		if c := p.peekByte(0); !isAlpha(c) && c != '_' {
			p.lexErr(start, "attribute must be followed by a name")
			return illegalTok
		}
		p.name()
		return Attribute
	}
	rest := p.src[p.npos:]
	for _, op := range opTokens {
		if bytes.HasPrefix(rest, []byte(op.val)) {
			p.npos += len(op.val)
			return op.tok
		}
	}
	r, _ := utf8.DecodeRune(rest)
	p.lexErr(start, "unexpected character %q", r)
	return illegalTok
}

func (p *Parser) name() string {
	start := p.npos
	for p.npos < len(p.src) {
		b := p.src[p.npos]
		if !isAlpha(b) && !isDigit(b) && b != '_' {
			break
		}
		p.npos++
	}
	return string(p.src[start:p.npos])
}

// number skips a number-like sequence, which is then validated as a
// whole.
func (p *Parser) number() Token {
	start := p.npos
	for {
		p.npos++
		if b := p.peekByte(0); !isDigit(b) && b != '.' && b != '_' {
			break
		}
	}
	if b := p.peekByte(0); b == 'e' || b == 'E' {
		p.npos++
		if b := p.peekByte(0); b == '+' || b == '-' {
			p.npos++
		}
	}
	for {
		b := p.peekByte(0)
		if !isAlpha(b) && !isDigit(b) && b != '_' {
			break
		}
		p.npos++
	}
	if !validNumber(string(p.src[start:p.npos])) {
		p.lexErr(start, "malformed number")
	}
	return Number
}

func validNumber(s string) bool {
	s = strings.ReplaceAll(s, "_", "")
	var err error
	switch {
	case len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		_, err = strconv.ParseUint(s[2:], 16, 64)
	case len(s) > 1 && s[0] == '0' && (s[1] == 'b' || s[1] == 'B'):
		_, err = strconv.ParseUint(s[2:], 2, 64)
	default:
		_, err = strconv.ParseFloat(s, 64)
	}
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// escape skips a backslash and the escape sequence following it.
func (p *Parser) escape() {
	p.npos++ // \
	switch p.peekByte(0) {
	case 0:
	case '\r':
		p.npos++
		if p.peekByte(0) == '\n' {
			p.npos++
		}
	case 'z':
		p.npos++
		for p.npos < len(p.src) && isSpace(p.src[p.npos]) {
			p.npos++
		}
	default:
		p.npos++
	}
}

func (p *Parser) quotedString() Token {
	start := p.npos
	quote := p.src[p.npos]
	p.npos++
	for {
		switch p.peekByte(0) {
		case quote:
			p.npos++
			return String
		case '\\':
			if p.npos+1 >= len(p.src) {
				p.lexErr(start, "unfinished string")
				return String
			}
			p.escape()
		case 0, '\r', '\n':
			if p.npos >= len(p.src) || p.src[p.npos] != 0 {
				p.lexErr(start, "unfinished string")
				return String
			}
			p.npos++ // a literal NUL byte
		default:
			p.npos++
		}
	}
}

// interpSection reads an interpolated string section up to and including
// either an opening brace, yielding brace, or the closing backquote,
// yielding end.
func (p *Parser) interpSection(start int, brace, end Token) Token {
	for {
		switch p.peekByte(0) {
		case '`':
			p.npos++
			return end
		case '\\':
			if p.npos+1 >= len(p.src) {
				p.lexErr(start, "unfinished string")
				return end
			}
			if p.peekByte(1) == 'u' && p.peekByte(2) == '{' {
				// \u{...} is not an interpolation
				p.npos += 3
				continue
			}
			p.escape()
		case '{':
			if p.peekByte(1) == '{' {
				p.lexErr(p.npos, "double braces are not permitted within interpolated strings")
				return brace
			}
			p.npos++
			p.braces = append(p.braces, true)
			return brace
		case 0, '\r', '\n':
			if p.npos >= len(p.src) || p.src[p.npos] != 0 {
				p.lexErr(start, "unfinished string")
				return end
			}
			p.npos++
		default:
			p.npos++
		}
	}
}
