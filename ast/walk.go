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

// WalkTypeExpr calls f for e and each of its sub-expressions, in source order. Bounds of
// type-parameters are visited before the function they belong to.
func WalkTypeExpr(e TypeExpr, f func(TypeExpr)) {
	switch e := e.(type) {
	case *Hole:
		f(e)

	case *Name:
		f(e)
		for _, arg := range e.Args {
			WalkTypeExpr(arg, f)
		}

	case *Nullable:
		f(e)
		WalkTypeExpr(e.Elem, f)

	case *FutureOr:
		f(e)
		WalkTypeExpr(e.Elem, f)

	case *Func:
		for _, tp := range e.TypeParams {
			if tp.Bound != nil {
				WalkTypeExpr(tp.Bound, f)
			}
		}
		f(e)
		WalkTypeExpr(e.Return, f)
		for _, p := range e.Positional {
			WalkTypeExpr(p, f)
		}
		for _, p := range e.Named {
			WalkTypeExpr(p.Type, f)
		}

	case *Record:
		f(e)
		for _, p := range e.Positional {
			WalkTypeExpr(p, f)
		}
		for _, p := range e.Named {
			WalkTypeExpr(p.Type, f)
		}

	case nil:

	default:
		panic("unknown type expression: " + e.ExprName())
	}
}

// ReferencedNames returns the names referenced by e which are not bound by a generic
// function type within e, in first-occurrence order.
func ReferencedNames(e TypeExpr) []string {
	var names []string
	seen := make(map[string]bool)
	var visit func(TypeExpr, map[string]bool)
	visit = func(e TypeExpr, bound map[string]bool) {
		switch e := e.(type) {
		case *Name:
			if !bound[e.Name] && !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
			for _, arg := range e.Args {
				visit(arg, bound)
			}
		case *Nullable:
			visit(e.Elem, bound)
		case *FutureOr:
			visit(e.Elem, bound)
		case *Func:
			if len(e.TypeParams) > 0 {
				inner := make(map[string]bool, len(bound)+len(e.TypeParams))
				for name := range bound {
					inner[name] = true
				}
				for _, tp := range e.TypeParams {
					inner[tp.Name] = true
				}
				bound = inner
				for _, tp := range e.TypeParams {
					if tp.Bound != nil {
						visit(tp.Bound, bound)
					}
				}
			}
			visit(e.Return, bound)
			for _, p := range e.Positional {
				visit(p, bound)
			}
			for _, p := range e.Named {
				visit(p.Type, bound)
			}
		case *Record:
			for _, p := range e.Positional {
				visit(p, bound)
			}
			for _, p := range e.Named {
				visit(p.Type, bound)
			}
		}
	}
	visit(e, nil)
	return names
}
