// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package fixture

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/tinfer/ast"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokPunct
)

type token struct {
	text string
	pos  int
	kind tokenKind
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || ('0' <= c && c <= '9') }

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{src[start:i], start, tokIdent})
		case strings.IndexByte("<>,?()[]{}", c) >= 0:
			toks = append(toks, token{src[i : i+1], i, tokPunct})
			i++
		default:
			return nil, errors.Errorf("Unexpected character %q at offset %d", c, i)
		}
	}
	return append(toks, token{"", len(src), tokEOF}), nil
}

type parser struct {
	toks []token
	pos  int
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(offset int) token {
	if i := p.pos + offset; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) isIdent(s string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == s
}

func (p *parser) accept(s string) bool {
	if p.isPunct(s) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.accept(s) {
		return p.errorf("Expected %q", s)
	}
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	t := p.peek()
	found := "end of input"
	if t.kind != tokEOF {
		found = fmt.Sprintf("%q", t.text)
	}
	return errors.Errorf("%s at offset %d, found %s", fmt.Sprintf(format, args...), t.pos, found)
}

func (p *parser) end() error {
	if p.peek().kind != tokEOF {
		return p.errorf("Unexpected input")
	}
	return nil
}

// ParseTypeExpr parses a single type expression:
//
//	_  dynamic  void  Never  Object  Null  T?  FutureOr<T>  Name<A, B>
//	R Function<X extends B>(A, [B], {C c, required D d})
//	(A, B, {C c})  (A,)  ()
func ParseTypeExpr(src string) (ast.TypeExpr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return t, p.end()
}

// ParseTypeParam parses a type-parameter declaration: `T` or `T extends B`.
func ParseTypeParam(src string) (ast.TypeParam, error) {
	p, err := newParser(src)
	if err != nil {
		return ast.TypeParam{}, err
	}
	tp, err := p.parseTypeParam()
	if err != nil {
		return ast.TypeParam{}, err
	}
	return tp, p.end()
}

func (p *parser) parseType() (ast.TypeExpr, error) {
	t, err := p.parseNullable()
	if err != nil {
		return nil, err
	}
	for p.isIdent("Function") {
		if next := p.peekAt(1); next.kind != tokPunct || (next.text != "(" && next.text != "<") {
			break
		}
		offset := p.next().pos
		fn, err := p.parseFunction(t, offset)
		if err != nil {
			return nil, err
		}
		t = fn
		for p.accept("?") {
			t = &ast.Nullable{Elem: t}
		}
	}
	return t, nil
}

func (p *parser) parseNullable() (ast.TypeExpr, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.accept("?") {
		t = &ast.Nullable{Elem: t}
	}
	return t, nil
}

func (p *parser) parsePrimary() (ast.TypeExpr, error) {
	t := p.peek()
	switch {
	case t.kind == tokIdent:
		p.pos++
		switch t.text {
		case "_":
			return &ast.Hole{Offset: t.pos}, nil
		case "FutureOr":
			if err := p.expect("<"); err != nil {
				return nil, err
			}
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expect(">"); err != nil {
				return nil, err
			}
			return &ast.FutureOr{Elem: elem, Offset: t.pos}, nil
		}
		name := &ast.Name{Name: t.text, Offset: t.pos}
		if p.accept("<") {
			args, err := p.parseTypeList(">")
			if err != nil {
				return nil, err
			}
			name.Args = args
		}
		return name, nil

	case p.isPunct("("):
		return p.parseParenthesized()
	}
	return nil, p.errorf("Expected a type")
}

// parseTypeList parses one or more comma-separated types followed by close.
func (p *parser) parseTypeList(close string) ([]ast.TypeExpr, error) {
	var list []ast.TypeExpr
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		list = append(list, t)
		if p.accept(close) {
			return list, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
		if p.accept(close) {
			return list, nil
		}
	}
}

// parseParenthesized parses a record type or a parenthesized type.
func (p *parser) parseParenthesized() (ast.TypeExpr, error) {
	rec := &ast.Record{Offset: p.next().pos}
	if p.accept(")") {
		return rec, nil
	}
	if p.isPunct("{") {
		named, err := p.parseNamed(false)
		if err != nil {
			return nil, err
		}
		rec.Named = named
		return rec, p.expect(")")
	}
	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.accept(")") {
		return first, nil
	}
	rec.Positional = []ast.TypeExpr{first}
	for p.accept(",") {
		if p.isPunct(")") {
			break
		}
		if p.isPunct("{") {
			named, err := p.parseNamed(false)
			if err != nil {
				return nil, err
			}
			rec.Named = named
			break
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		rec.Positional = append(rec.Positional, t)
	}
	return rec, p.expect(")")
}

// parseNamed parses `{T a, required U b}`. The required modifier is only accepted for
// function parameters.
func (p *parser) parseNamed(params bool) ([]ast.NamedParam, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var named []ast.NamedParam
	seen := make(map[string]bool)
	for {
		required := false
		if next := p.peekAt(1); params && p.isIdent("required") && (next.kind == tokIdent || next.text == "(") {
			p.pos++
			required = true
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		nameTok := p.peek()
		if nameTok.kind != tokIdent {
			return nil, p.errorf("Expected a name")
		}
		p.pos++
		if seen[nameTok.text] {
			return nil, errors.Errorf("Duplicate name %s at offset %d", nameTok.text, nameTok.pos)
		}
		seen[nameTok.text] = true
		named = append(named, ast.NamedParam{Name: nameTok.text, Type: t, Required: required})
		if !p.accept(",") || p.isPunct("}") {
			break
		}
	}
	return named, p.expect("}")
}

func (p *parser) parseTypeParam() (ast.TypeParam, error) {
	nameTok := p.peek()
	if nameTok.kind != tokIdent || nameTok.text == "_" {
		return ast.TypeParam{}, p.errorf("Expected a type-parameter name")
	}
	p.pos++
	tp := ast.TypeParam{Name: nameTok.text}
	if p.isIdent("extends") {
		p.pos++
		bound, err := p.parseType()
		if err != nil {
			return ast.TypeParam{}, err
		}
		tp.Bound = bound
	}
	return tp, nil
}

func (p *parser) parseFunction(ret ast.TypeExpr, offset int) (*ast.Func, error) {
	fn := &ast.Func{Return: ret, Offset: offset}
	if p.accept("<") {
		for {
			tp, err := p.parseTypeParam()
			if err != nil {
				return nil, err
			}
			fn.TypeParams = append(fn.TypeParams, tp)
			if p.accept(">") {
				break
			}
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	optional := false
	for !p.accept(")") {
		switch {
		case p.isPunct("["):
			if optional || fn.Named != nil {
				return nil, p.errorf("Unexpected optional parameters")
			}
			p.pos++
			list, err := p.parseTypeList("]")
			if err != nil {
				return nil, err
			}
			fn.Positional = append(fn.Positional, list...)
			optional = true
		case p.isPunct("{"):
			if fn.Named != nil {
				return nil, p.errorf("Unexpected named parameters")
			}
			named, err := p.parseNamed(true)
			if err != nil {
				return nil, err
			}
			fn.Named = named
		default:
			if optional || fn.Named != nil {
				return nil, p.errorf("Required parameters must precede optional and named parameters")
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fn.Positional = append(fn.Positional, t)
			fn.Required++
		}
		if !p.accept(",") {
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	return fn, nil
}
