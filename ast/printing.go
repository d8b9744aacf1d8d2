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

package ast

import (
	"strings"
)

// Returns a string representation of a type expression, in the notation accepted by the parser.
func ExprString(e TypeExpr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e TypeExpr) {
	switch et := e.(type) {
	case *Hole:
		sb.WriteByte('_')

	case *Name:
		sb.WriteString(et.Name)
		if len(et.Args) == 0 {
			return
		}
		sb.WriteByte('<')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, arg)
		}
		sb.WriteByte('>')

	case *Nullable:
		exprString(sb, true, et.Elem)
		sb.WriteByte('?')

	case *FutureOr:
		sb.WriteString("FutureOr<")
		exprString(sb, false, et.Elem)
		sb.WriteByte('>')

	case *Func:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Return)
		sb.WriteString(" Function")
		if len(et.TypeParams) > 0 {
			sb.WriteByte('<')
			for i, tp := range et.TypeParams {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(tp.Name)
				if tp.Bound != nil {
					sb.WriteString(" extends ")
					exprString(sb, false, tp.Bound)
				}
			}
			sb.WriteByte('>')
		}
		sb.WriteByte('(')
		for i, p := range et.Positional {
			if i > 0 {
				sb.WriteString(", ")
			}
			if i == et.Required {
				sb.WriteByte('[')
			}
			exprString(sb, false, p)
		}
		if et.Required < len(et.Positional) {
			sb.WriteByte(']')
		}
		if len(et.Named) > 0 {
			if len(et.Positional) > 0 {
				sb.WriteString(", ")
			}
			namedString(sb, et.Named)
		}
		sb.WriteByte(')')
		if simple {
			sb.WriteByte(')')
		}

	case *Record:
		sb.WriteByte('(')
		for i, p := range et.Positional {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, p)
		}
		switch {
		case len(et.Named) > 0:
			if len(et.Positional) > 0 {
				sb.WriteString(", ")
			}
			namedString(sb, et.Named)
		case len(et.Positional) == 1:
			sb.WriteByte(',')
		}
		sb.WriteByte(')')

	default:
		sb.WriteString("<INVALID-TYPE-EXPRESSION>")
	}
}

func namedString(sb *strings.Builder, named []NamedParam) {
	sb.WriteByte('{')
	for i, p := range named {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Required {
			sb.WriteString("required ")
		}
		exprString(sb, false, p.Type)
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
	}
	sb.WriteByte('}')
}
