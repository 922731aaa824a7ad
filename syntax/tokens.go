// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

// Token is the kind of a lexeme.
type Token uint16

// The list of all possible tokens and reserved words.
const (
	illegalTok Token = iota
	EOF

	Name
	Number
	String     // "foo" or 'foo'
	LongString // [[foo]] or [==[foo]==]
	Attribute  // @native

	InterpBegin  // `foo{
	InterpMid    // }foo{
	InterpEnd    // }foo`
	InterpSimple // `foo`

	KwAnd
	KwBreak
	KwDo
	KwElse
	KwElseif
	KwEnd
	KwFalse
	KwFor
	KwFunction
	KwIf
	KwIn
	KwLocal
	KwNil
	KwNot
	KwOr
	KwRepeat
	KwReturn
	KwThen
	KwTrue
	KwUntil
	KwWhile

	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	DblSlash // //
	Percent  // %
	Caret    // ^
	Hash     // #
	Eql      // ==
	Neq      // ~=
	Leq      // <=
	Geq      // >=
	Lss      // <
	Gtr      // >
	Assign   // =

	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	LeftBrack  // [
	RightBrack // ]
	Semicolon  // ;
	Colon      // :
	DblColon   // ::
	Comma      // ,
	Dot        // .
	DblDot     // ..
	Ellipsis   // ...
	Arrow      // ->
	Question   // ?
	Pipe       // |
	Amp        // &

	AddAssign      // +=
	SubAssign      // -=
	MulAssign      // *=
	DivAssign      // /=
	FloorDivAssign // //=
	ModAssign      // %=
	PowAssign      // ^=
	ConcatAssign   // ..=
)

var tokNames = [...]string{
	illegalTok: "illegal token",
	EOF:        "EOF",

	Name:       "name",
	Number:     "number",
	String:     "string",
	LongString: "string",
	Attribute:  "attribute",

	InterpBegin:  "interpolated string",
	InterpMid:    "interpolated string",
	InterpEnd:    "interpolated string",
	InterpSimple: "interpolated string",

	KwAnd:      "and",
	KwBreak:    "break",
	KwDo:       "do",
	KwElse:     "else",
	KwElseif:   "elseif",
	KwEnd:      "end",
	KwFalse:    "false",
	KwFor:      "for",
	KwFunction: "function",
	KwIf:       "if",
	KwIn:       "in",
	KwLocal:    "local",
	KwNil:      "nil",
	KwNot:      "not",
	KwOr:       "or",
	KwRepeat:   "repeat",
	KwReturn:   "return",
	KwThen:     "then",
	KwTrue:     "true",
	KwUntil:    "until",
	KwWhile:    "while",

	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	Slash:    "/",
	DblSlash: "//",
	Percent:  "%",
	Caret:    "^",
	Hash:     "#",
	Eql:      "==",
	Neq:      "~=",
	Leq:      "<=",
	Geq:      ">=",
	Lss:      "<",
	Gtr:      ">",
	Assign:   "=",

	LeftParen:  "(",
	RightParen: ")",
	LeftBrace:  "{",
	RightBrace: "}",
	LeftBrack:  "[",
	RightBrack: "]",
	Semicolon:  ";",
	Colon:      ":",
	DblColon:   "::",
	Comma:      ",",
	Dot:        ".",
	DblDot:     "..",
	Ellipsis:   "...",
	Arrow:      "->",
	Question:   "?",
	Pipe:       "|",
	Amp:        "&",

	AddAssign:      "+=",
	SubAssign:      "-=",
	MulAssign:      "*=",
	DivAssign:      "/=",
	FloorDivAssign: "//=",
	ModAssign:      "%=",
	PowAssign:      "^=",
	ConcatAssign:   "..=",
}

func (t Token) String() string {
	if int(t) < len(tokNames) {
		return tokNames[t]
	}
	return "illegal token"
}

var reserved = map[string]Token{
	"and":      KwAnd,
	"break":    KwBreak,
	"do":       KwDo,
	"else":     KwElse,
	"elseif":   KwElseif,
	"end":      KwEnd,
	"false":    KwFalse,
	"for":      KwFor,
	"function": KwFunction,
	"if":       KwIf,
	"in":       KwIn,
	"local":    KwLocal,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"repeat":   KwRepeat,
	"return":   KwReturn,
	"then":     KwThen,
	"true":     KwTrue,
	"until":    KwUntil,
	"while":    KwWhile,
}

// IsKeyword returns true if the given word is a reserved word in Luau.
// Contextual keywords such as "type", "export" and "continue" are not
// reserved, as they are valid identifiers.
func IsKeyword(word string) bool {
	_, ok := reserved[word]
	return ok
}

func isCompoundAssign(t Token) bool {
	return t >= AddAssign && t <= ConcatAssign
}

func isUnaryOp(t Token) bool {
	switch t {
	case KwNot, Minus, Hash:
		return true
	}
	return false
}

const unaryPriority = 8

// binaryPriority holds the left and right priorities of each binary
// operator; right-associative operators have a lower right priority.
var binaryPriority = map[Token][2]int{
	Plus:     {6, 6},
	Minus:    {6, 6},
	Star:     {7, 7},
	Slash:    {7, 7},
	DblSlash: {7, 7},
	Percent:  {7, 7},
	Caret:    {10, 9},
	DblDot:   {5, 4},
	Neq:      {3, 3},
	Eql:      {3, 3},
	Lss:      {3, 3},
	Leq:      {3, 3},
	Gtr:      {3, 3},
	Geq:      {3, 3},
	KwAnd:    {2, 2},
	KwOr:     {1, 1},
}
