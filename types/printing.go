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

package types

import (
	"sort"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// TypeString returns a string representation of a type or type schema.
//
// The notation is `_` for the unknown marker, `T?`, `FutureOr<T>`, `Name<A, B>`,
// `R Function<X extends B>(A, [B], {C c, required D d})` and `(A, B, {C c})`.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

func (t Prim) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Void:
		return "void"
	case Never:
		return "Never"
	case Object:
		return "Object"
	case Null:
		return "Null"
	}
	return "<INVALID-PRIM>"
}

func (t Unknown) String() string      { return "_" }
func (t *Nullable) String() string    { return TypeString(t) }
func (t *FutureOr) String() string    { return TypeString(t) }
func (t *Interface) String() string   { return TypeString(t) }
func (t *Function) String() string    { return TypeString(t) }
func (t *Record) String() string      { return TypeString(t) }
func (tv *Var) String() string        { return tv.name }
func (s Substitution) String() string { return SubstitutionString(s, nil) }

// SubstitutionString prints s as `{X: int, Y: num}`. Variables in order are printed first,
// in that order; the remaining variables are printed by id.
func SubstitutionString(s Substitution, order []*Var) string {
	var sb strings.Builder
	sb.WriteByte('{')
	seen := make(map[*Var]bool, len(order))
	first := true
	emit := func(tv *Var) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(tv.Name())
		sb.WriteString(": ")
		sb.WriteString(TypeString(s[tv]))
	}
	for _, tv := range order {
		if _, ok := s[tv]; ok && !seen[tv] {
			seen[tv] = true
			emit(tv)
		}
	}
	rest := make([]*Var, 0, len(s))
	for tv := range s {
		if !seen[tv] {
			rest = append(rest, tv)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Id() < rest[j].Id() })
	for _, tv := range rest {
		emit(tv)
	}
	sb.WriteByte('}')
	return sb.String()
}

func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case Prim:
		p.sb.WriteString(t.String())

	case Unknown:
		p.sb.WriteByte('_')

	case *Var:
		p.sb.WriteString(t.Name())

	case *Nullable:
		typeString(p, true, t.Elem)
		p.sb.WriteByte('?')

	case *FutureOr:
		p.sb.WriteString("FutureOr<")
		typeString(p, false, t.Elem)
		p.sb.WriteByte('>')

	case *Interface:
		p.sb.WriteString(t.Decl.Name)
		if len(t.Args) == 0 {
			return
		}
		p.sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, arg)
		}
		p.sb.WriteByte('>')

	case *Function:
		if simple {
			p.sb.WriteByte('(')
		}
		typeString(p, true, t.Return)
		p.sb.WriteString(" Function")
		if len(t.TypeParams) > 0 {
			p.sb.WriteByte('<')
			for i, tv := range t.TypeParams {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				typeString(p, false, tv)
				if b := tv.Bound(); b != nil {
					p.sb.WriteString(" extends ")
					typeString(p, false, b)
				}
			}
			p.sb.WriteByte('>')
		}
		p.sb.WriteByte('(')
		for i, param := range t.Positional {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if i == t.Required {
				p.sb.WriteByte('[')
			}
			typeString(p, false, param)
		}
		if t.Optional() > 0 {
			p.sb.WriteByte(']')
		}
		if t.Named.Len() > 0 {
			if len(t.Positional) > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteByte('{')
			i := 0
			t.Named.Range(func(name string, f Field) bool {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				if f.Required {
					p.sb.WriteString("required ")
				}
				typeString(p, false, f.Type)
				p.sb.WriteByte(' ')
				p.sb.WriteString(name)
				i++
				return true
			})
			p.sb.WriteByte('}')
		}
		p.sb.WriteByte(')')
		if simple {
			p.sb.WriteByte(')')
		}

	case *Record:
		p.sb.WriteByte('(')
		for i, field := range t.Positional {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, field)
		}
		switch {
		case t.Named.Len() > 0:
			if len(t.Positional) > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteByte('{')
			i := 0
			t.Named.Range(func(name string, f Field) bool {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				typeString(p, false, f.Type)
				p.sb.WriteByte(' ')
				p.sb.WriteString(name)
				i++
				return true
			})
			p.sb.WriteByte('}')
		case len(t.Positional) == 1:
			p.sb.WriteByte(',')
		}
		p.sb.WriteByte(')')

	default:
		p.sb.WriteString("<INVALID-TYPE>")
	}
}
