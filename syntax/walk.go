// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"fmt"
	"io"
	"reflect"
)

// Walk traverses a syntax tree in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Walk invokes f
// recursively for each of the non-nil children of node, followed by
// f(nil).
//
// Children are visited in source order, and lexemes are children too.
// Visiting every *Lexeme under a node thus yields its exact source text.
func Walk(node Node, f func(Node) bool) {
	if !f(node) {
		return
	}

	switch node := node.(type) {
	case *File:
		Walk(node.Block, f)
		walkLex(node.EOF, f)
	case *Lexeme:
	case *Block:
		walkList(node.Stmts, f)
	case *Stmt:
		Walk(node.X, f)
		walkLex(node.Semi, f)
	case *TypeSpec:
		Walk(node.Colon, f)
		Walk(node.Type, f)
	case *LocalAssign:
		Walk(node.Local, f)
		walkTyped(node.Names, node.Types, f)
		walkLex(node.Equals, f)
		walkSepList(node.Values, f)
	case *LocalFunc:
		walkList(node.Attrs, f)
		Walk(node.Local, f)
		Walk(node.Function, f)
		Walk(node.Name, f)
		Walk(node.Body, f)
	case *FuncDecl:
		walkList(node.Attrs, f)
		Walk(node.Function, f)
		Walk(node.Name, f)
		Walk(node.Body, f)
	case *FuncName:
		walkSepList(node.Names, f)
		walkLex(node.Colon, f)
		walkLex(node.Method, f)
	case *FuncBody:
		if node.Generics != nil {
			Walk(node.Generics, f)
		}
		Walk(node.Lparen, f)
		walkTyped(node.Params, node.Types, f)
		Walk(node.Rparen, f)
		if node.Return != nil {
			Walk(node.Return, f)
		}
		Walk(node.Block, f)
		Walk(node.EndKw, f)
	case *GenericDecl:
		Walk(node.Lt, f)
		walkSepList(node.Params, f)
		Walk(node.Gt, f)
	case *GenericParam:
		Walk(node.Name, f)
		walkLex(node.Dots, f)
		walkLex(node.Equals, f)
		if node.Default != nil {
			Walk(node.Default, f)
		}
	case *TypeDecl:
		walkLex(node.Export, f)
		Walk(node.Type, f)
		Walk(node.Name, f)
		if node.Generics != nil {
			Walk(node.Generics, f)
		}
		Walk(node.Equals, f)
		Walk(node.Value, f)
	case *TypeFuncDecl:
		walkLex(node.Export, f)
		Walk(node.Type, f)
		Walk(node.Function, f)
		Walk(node.Name, f)
		Walk(node.Body, f)
	case *DoStmt:
		Walk(node.Do, f)
		Walk(node.Block, f)
		Walk(node.EndKw, f)
	case *IfStmt:
		Walk(node.If, f)
		Walk(node.Cond, f)
		Walk(node.Then, f)
		Walk(node.Block, f)
		walkList(node.ElseIfs, f)
		if node.Else != nil {
			Walk(node.Else, f)
			Walk(node.ElseBlk, f)
		}
		Walk(node.EndKw, f)
	case *ElseIf:
		Walk(node.ElseIf, f)
		Walk(node.Cond, f)
		Walk(node.Then, f)
		Walk(node.Block, f)
	case *WhileStmt:
		Walk(node.While, f)
		Walk(node.Cond, f)
		Walk(node.Do, f)
		Walk(node.Block, f)
		Walk(node.EndKw, f)
	case *RepeatStmt:
		Walk(node.Repeat, f)
		Walk(node.Block, f)
		Walk(node.Until, f)
		Walk(node.Cond, f)
	case *NumericFor:
		Walk(node.For, f)
		Walk(node.Var, f)
		if node.Type != nil {
			Walk(node.Type, f)
		}
		Walk(node.Equals, f)
		Walk(node.Start, f)
		Walk(node.Comma1, f)
		Walk(node.Stop, f)
		if node.Comma2 != nil {
			Walk(node.Comma2, f)
			Walk(node.Step, f)
		}
		Walk(node.Do, f)
		Walk(node.Block, f)
		Walk(node.EndKw, f)
	case *GenericFor:
		Walk(node.For, f)
		walkTyped(node.Names, node.Types, f)
		Walk(node.In, f)
		walkSepList(node.Exprs, f)
		Walk(node.Do, f)
		Walk(node.Block, f)
		Walk(node.EndKw, f)
	case *ReturnStmt:
		Walk(node.Return, f)
		walkSepList(node.Values, f)
	case *BreakStmt:
		Walk(node.Break, f)
	case *ContinueStmt:
		Walk(node.Continue, f)
	case *GotoStmt:
		Walk(node.Goto, f)
		Walk(node.Label, f)
	case *LabelStmt:
		Walk(node.Open, f)
		Walk(node.Name, f)
		Walk(node.Close, f)
	case *AssignStmt:
		walkSepList(node.Vars, f)
		Walk(node.Equals, f)
		walkSepList(node.Values, f)
	case *CompoundAssign:
		Walk(node.Var, f)
		Walk(node.Op, f)
		Walk(node.Value, f)
	case *CallStmt:
		Walk(node.Call, f)

	case *ParenExpr:
		Walk(node.Lparen, f)
		Walk(node.X, f)
		Walk(node.Rparen, f)
	case *UnaryExpr:
		Walk(node.Op, f)
		Walk(node.X, f)
	case *BinaryExpr:
		Walk(node.X, f)
		Walk(node.Op, f)
		Walk(node.Y, f)
	case *DotExpr:
		Walk(node.X, f)
		Walk(node.Dot, f)
		Walk(node.Name, f)
	case *IndexExpr:
		Walk(node.X, f)
		Walk(node.Lbrack, f)
		Walk(node.Index, f)
		Walk(node.Rbrack, f)
	case *CallExpr:
		Walk(node.X, f)
		walkLex(node.Colon, f)
		walkLex(node.Method, f)
		walkLex(node.Lparen, f)
		walkSepList(node.Args, f)
		walkLex(node.Rparen, f)
	case *FuncExpr:
		walkList(node.Attrs, f)
		Walk(node.Function, f)
		Walk(node.Body, f)
	case *TableExpr:
		Walk(node.Lbrace, f)
		walkSepList(node.Fields, f)
		Walk(node.Rbrace, f)
	case *TableField:
		walkLex(node.Lbrack, f)
		if node.Key != nil {
			Walk(node.Key, f)
		}
		walkLex(node.Rbrack, f)
		walkLex(node.Name, f)
		walkLex(node.Equals, f)
		Walk(node.Value, f)
	case *IfExpr:
		Walk(node.If, f)
		Walk(node.Cond, f)
		Walk(node.Then, f)
		Walk(node.X, f)
		walkList(node.ElseIfs, f)
		Walk(node.Else, f)
		Walk(node.Y, f)
	case *ElseIfExpr:
		Walk(node.ElseIf, f)
		Walk(node.Cond, f)
		Walk(node.Then, f)
		Walk(node.X, f)
	case *InterpString:
		for i, part := range node.Parts {
			Walk(part, f)
			if i < len(node.Exprs) {
				Walk(node.Exprs[i], f)
			}
		}
	case *TypeAssertion:
		Walk(node.X, f)
		Walk(node.Op, f)
		Walk(node.Type, f)

	case *TypeName:
		walkLex(node.Prefix, f)
		walkLex(node.Dot, f)
		Walk(node.Name, f)
		if node.Lt != nil {
			Walk(node.Lt, f)
			walkSepList(node.Args, f)
			Walk(node.Gt, f)
		}
	case *TypeTypeof:
		Walk(node.Typeof, f)
		Walk(node.Lparen, f)
		Walk(node.X, f)
		Walk(node.Rparen, f)
	case *TypeTable:
		Walk(node.Lbrace, f)
		walkSepList(node.Fields, f)
		Walk(node.Rbrace, f)
	case *TypeField:
		walkLex(node.Access, f)
		walkLex(node.Lbrack, f)
		if node.Key != nil {
			Walk(node.Key, f)
		}
		walkLex(node.Rbrack, f)
		walkLex(node.Name, f)
		walkLex(node.Colon, f)
		Walk(node.Value, f)
	case *TypeFunc:
		if node.Generics != nil {
			Walk(node.Generics, f)
		}
		Walk(node.Lparen, f)
		walkSepList(node.Params, f)
		Walk(node.Rparen, f)
		Walk(node.Arrow, f)
		Walk(node.Return, f)
	case *TypeParam:
		walkLex(node.Name, f)
		walkLex(node.Colon, f)
		Walk(node.Type, f)
	case *TypeParen:
		Walk(node.Lparen, f)
		walkSepList(node.Types, f)
		Walk(node.Rparen, f)
	case *TypeOptional:
		Walk(node.X, f)
		Walk(node.Question, f)
	case *TypeUnion:
		walkLex(node.Lead, f)
		walkSepList(node.Types, f)
	case *TypeVariadic:
		Walk(node.Dots, f)
		Walk(node.Type, f)
	case *TypeGenericPack:
		Walk(node.Name, f)
		Walk(node.Dots, f)
	default:
		panic(fmt.Sprintf("syntax.Walk: unexpected node type %T", node))
	}

	f(nil)
}

func walkList[N Node](list []N, f func(Node) bool) {
	for _, node := range list {
		Walk(node, f)
	}
}

// walkLex walks an optional lexeme.
func walkLex(l *Lexeme, f func(Node) bool) {
	if l != nil {
		Walk(l, f)
	}
}

func walkSepList[N Node](list List[N], f func(Node) bool) {
	for i, node := range list.Items {
		Walk(node, f)
		if i < len(list.Seps) {
			Walk(list.Seps[i], f)
		}
	}
}

// walkTyped walks a list of names along with their optional type
// annotations.
func walkTyped(names List[*Lexeme], types []*TypeSpec, f func(Node) bool) {
	for i, name := range names.Items {
		Walk(name, f)
		if i < len(types) && types[i] != nil {
			Walk(types[i], f)
		}
		if i < len(names.Seps) {
			Walk(names.Seps[i], f)
		}
	}
}

// DebugPrint prints the provided syntax tree, spanning multiple lines and with
// indentation. Can be useful to investigate the content of a syntax tree.
func DebugPrint(w io.Writer, node Node) error {
	p := debugPrinter{out: w}
	p.print(reflect.ValueOf(node))
	p.printf("\n")
	return p.err
}

type debugPrinter struct {
	out   io.Writer
	level int
	err   error
}

func (p *debugPrinter) printf(format string, args ...any) {
	_, err := fmt.Fprintf(p.out, format, args...)
	if err != nil && p.err == nil {
		p.err = err
	}
}

func (p *debugPrinter) newline() {
	p.printf("\n")
	for i := 0; i < p.level; i++ {
		p.printf(".  ")
	}
}

func (p *debugPrinter) print(x reflect.Value) {
	switch x.Kind() {
	case reflect.Interface:
		if x.IsNil() {
			p.printf("nil")
			return
		}
		p.print(x.Elem())
	case reflect.Ptr:
		if x.IsNil() {
			p.printf("nil")
			return
		}
		if l, ok := x.Interface().(*Lexeme); ok {
			// lexemes are common enough to deserve a single line
			p.printf("%s %q @%d", l.Tok, l.Value, l.ValuePos.Offset())
			return
		}
		p.printf("*")
		p.print(x.Elem())
	case reflect.Slice:
		p.printf("%s (len = %d) {", x.Type(), x.Len())
		if x.Len() > 0 {
			p.level++
			p.newline()
			for i := 0; i < x.Len(); i++ {
				p.printf("%d: ", i)
				p.print(x.Index(i))
				if i == x.Len()-1 {
					p.level--
				}
				p.newline()
			}
		}
		p.printf("}")

	case reflect.Struct:
		t := x.Type()
		p.printf("%s {", t)
		p.level++
		p.newline()
		for i := 0; i < t.NumField(); i++ {
			p.printf("%s: ", t.Field(i).Name)
			p.print(x.Field(i))
			if i == x.NumField()-1 {
				p.level--
			}
			p.newline()
		}
		p.printf("}")
	default:
		if s, ok := x.Interface().(fmt.Stringer); ok && !x.IsZero() {
			p.printf("%#v (%s)", x.Interface(), s)
		} else {
			p.printf("%#v", x.Interface())
		}
	}
}
