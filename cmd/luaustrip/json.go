// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"encoding/json"
	"go/token"
	"io"
	"reflect"

	"mvdan.cc/luaustrip/syntax"
)

var (
	posType   = reflect.TypeOf(syntax.Pos(0))
	tokenType = reflect.TypeOf(syntax.Token(0))
)

func writeJSON(w io.Writer, f *syntax.File, pretty bool) error {
	enc := jsonEncoder{file: f}
	val := reflect.ValueOf(f)
	v, _ := enc.recurse(val, val)
	jenc := json.NewEncoder(w)
	if pretty {
		jenc.SetIndent("", "\t")
	}
	return jenc.Encode(v)
}

// jsonEncoder turns a syntax tree into plain maps and slices. Positions
// are resolved to lines and columns within file.
type jsonEncoder struct {
	file *syntax.File
}

func (e jsonEncoder) recurse(val, valPtr reflect.Value) (any, string) {
	switch val.Kind() {
	case reflect.Ptr:
		elem := val.Elem()
		if !elem.IsValid() {
			return nil, ""
		}
		return e.recurse(elem, val)
	case reflect.Interface:
		if val.IsNil() {
			return nil, ""
		}
		v, tname := e.recurse(val.Elem(), val)
		m := v.(map[string]any)
		m["Type"] = tname
		return m, ""
	case reflect.Struct:
		m := make(map[string]any, val.NumField()+1)
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			ftyp := typ.Field(i)
			if ftyp.Type == posType || ftyp.Name == "Lines" {
				continue
			}
			if !token.IsExported(ftyp.Name) {
				continue
			}
			fval := val.Field(i)
			if ftyp.Type.Kind() == reflect.String && fval.String() == "" {
				continue // most lexemes have no trivia
			}
			v, _ := e.recurse(fval, fval)
			m[ftyp.Name] = v
		}
		// use valPtr to find the method, as methods are defined on the
		// pointer values.
		if posMethod := valPtr.MethodByName("Pos"); posMethod.IsValid() {
			if pos := e.translatePos(posMethod.Call(nil)[0]); pos != nil {
				m["Pos"] = pos
			}
		}
		if posMethod := valPtr.MethodByName("End"); posMethod.IsValid() {
			if pos := e.translatePos(posMethod.Call(nil)[0]); pos != nil {
				m["End"] = pos
			}
		}
		return m, typ.Name()
	case reflect.Slice:
		l := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			elem := val.Index(i)
			l[i], _ = e.recurse(elem, elem)
		}
		return l, ""
	}
	if val.Type() == tokenType {
		return val.Interface().(syntax.Token).String(), ""
	}
	return val.Interface(), ""
}

func (e jsonEncoder) translatePos(val reflect.Value) map[string]any {
	pos := val.Interface().(syntax.Pos)
	if !pos.IsValid() {
		return nil
	}
	p := e.file.Position(pos)
	return map[string]any{
		"Offset": p.Offset,
		"Line":   p.Line,
		"Col":    p.Column,
	}
}
