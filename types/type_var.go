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

// Type variable
//
// A type-variable is an opaque identity. Its declared bound is attached after creation,
// which allows bounds to refer to the variable itself (`X extends Comparable<X>`) or to
// sibling variables declared alongside it.
type Var struct {
	bound Type
	name  string
	id    int32
}

// NewVar creates a type-variable with the given id and display name. The bound is unset.
func NewVar(id int, name string) *Var {
	return &Var{id: int32(id), name: name}
}

func (tv *Var) Id() int      { return int(tv.id) }
func (tv *Var) Name() string { return tv.name }

// Bound returns the declared bound, or nil if none was declared (equivalent to `Object?`).
func (tv *Var) Bound() Type { return tv.bound }

// BoundOrTop returns the declared bound, or `Object?` when no bound was declared.
func (tv *Var) BoundOrTop() Type {
	if tv.bound == nil {
		return ObjectQ
	}
	return tv.bound
}

// SetBound attaches a declared bound. Bounds must be set before the variable is shared.
func (tv *Var) SetBound(bound Type) { tv.bound = bound }

// Variables returns the type-variables which occur free in t, in first-occurrence order.
func Variables(t Type) []*Var {
	var vars []*Var
	seen := make(map[*Var]bool)
	var visit func(Type, map[*Var]bool)
	visit = func(t Type, bound map[*Var]bool) {
		switch t := t.(type) {
		case *Var:
			if !seen[t] && !bound[t] {
				seen[t] = true
				vars = append(vars, t)
			}
		case *Nullable:
			visit(t.Elem, bound)
		case *FutureOr:
			visit(t.Elem, bound)
		case *Interface:
			for _, arg := range t.Args {
				visit(arg, bound)
			}
		case *Function:
			if len(t.TypeParams) > 0 {
				inner := make(map[*Var]bool, len(bound)+len(t.TypeParams))
				for tv := range bound {
					inner[tv] = true
				}
				for _, tv := range t.TypeParams {
					inner[tv] = true
				}
				bound = inner
				for _, tv := range t.TypeParams {
					if b := tv.Bound(); b != nil {
						visit(b, bound)
					}
				}
			}
			for _, p := range t.Positional {
				visit(p, bound)
			}
			t.Named.Range(func(name string, f Field) bool {
				visit(f.Type, bound)
				return true
			})
			visit(t.Return, bound)
		case *Record:
			for _, p := range t.Positional {
				visit(p, bound)
			}
			t.Named.Range(func(name string, f Field) bool {
				visit(f.Type, bound)
				return true
			})
		}
	}
	visit(t, nil)
	return vars
}
