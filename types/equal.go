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
	"hash/fnv"
	"strconv"
)

// Equal reports whether a and b are structurally identical. Type-variables are compared
// by identity, except for type parameters of generic function types, which are compared
// up to renaming. Named parameters and fields are compared by name.
func Equal(a, b Type) bool { return equal(a, b, nil) }

// binders pairs the type parameters of two generic function types under comparison.
type binders struct {
	a, b  []*Var
	outer *binders
}

func (bs *binders) lookup(a, b *Var) (matched, found bool) {
	for ; bs != nil; bs = bs.outer {
		for i := range bs.a {
			if bs.a[i] == a || bs.b[i] == b {
				return bs.a[i] == a && bs.b[i] == b, true
			}
		}
	}
	return false, false
}

func equal(a, b Type, bs *binders) bool {
	switch a := a.(type) {
	case Prim:
		bp, ok := b.(Prim)
		return ok && a == bp
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case *Var:
		bv, ok := b.(*Var)
		if !ok {
			return false
		}
		if matched, found := bs.lookup(a, bv); found {
			return matched
		}
		return a == bv
	case *Nullable:
		bn, ok := b.(*Nullable)
		return ok && equal(a.Elem, bn.Elem, bs)
	case *FutureOr:
		bf, ok := b.(*FutureOr)
		return ok && equal(a.Elem, bf.Elem, bs)
	case *Interface:
		bi, ok := b.(*Interface)
		return ok && a.Decl == bi.Decl && equalLists(a.Args, bi.Args, bs)
	case *Function:
		bf, ok := b.(*Function)
		if !ok || len(a.TypeParams) != len(bf.TypeParams) || a.Required != bf.Required {
			return false
		}
		if len(a.TypeParams) > 0 {
			bs = &binders{a: a.TypeParams, b: bf.TypeParams, outer: bs}
			for i, tv := range a.TypeParams {
				ab, bb := tv.BoundOrTop(), bf.TypeParams[i].BoundOrTop()
				if !equal(ab, bb, bs) {
					return false
				}
			}
		}
		return equalLists(a.Positional, bf.Positional, bs) &&
			equalFields(a.Named, bf.Named, bs) &&
			equal(a.Return, bf.Return, bs)
	case *Record:
		br, ok := b.(*Record)
		return ok && equalLists(a.Positional, br.Positional, bs) && equalFields(a.Named, br.Named, bs)
	}
	return false
}

func equalLists(a, b []Type, bs *binders) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], bs) {
			return false
		}
	}
	return true
}

func equalFields(a, b Fields, bs *binders) bool {
	if a.Len() != b.Len() {
		return false
	}
	eq := true
	a.Range(func(name string, fa Field) bool {
		fb, ok := b.Get(name)
		eq = ok && fa.Required == fb.Required && equal(fa.Type, fb.Type, bs)
		return eq
	})
	return eq
}

// Hash returns a structural hash of t which is consistent with Equal: generic function
// type parameters are hashed by binding position, and named parameters by name.
func Hash(t Type) uint64 {
	h := fnv.New64a()
	var scratch []byte
	var depth map[*Var]int
	var visit func(Type)
	write := func(s string) { h.Write([]byte(s)) }
	visit = func(t Type) {
		switch t := t.(type) {
		case Prim:
			scratch = strconv.AppendInt(scratch[:0], int64(t), 10)
			write("p")
			h.Write(scratch)
		case Unknown:
			write("_")
		case *Var:
			if i, ok := depth[t]; ok {
				scratch = strconv.AppendInt(scratch[:0], int64(i), 10)
				write("b")
			} else {
				scratch = strconv.AppendInt(scratch[:0], int64(t.Id()), 10)
				write("v")
			}
			h.Write(scratch)
		case *Nullable:
			write("?")
			visit(t.Elem)
		case *FutureOr:
			write("F")
			visit(t.Elem)
		case *Interface:
			write("I")
			write(t.Decl.Name)
			for _, arg := range t.Args {
				write(",")
				visit(arg)
			}
		case *Function:
			write("Fn")
			if len(t.TypeParams) > 0 {
				if depth == nil {
					depth = make(map[*Var]int)
				}
				for _, tv := range t.TypeParams {
					depth[tv] = len(depth)
				}
				for _, tv := range t.TypeParams {
					write("<")
					visit(tv.BoundOrTop())
				}
			}
			scratch = strconv.AppendInt(scratch[:0], int64(t.Required), 10)
			h.Write(scratch)
			for _, p := range t.Positional {
				write(",")
				visit(p)
			}
			t.Named.Range(func(name string, f Field) bool {
				write(name)
				if f.Required {
					write("!")
				}
				visit(f.Type)
				return true
			})
			write("->")
			visit(t.Return)
		case *Record:
			write("R")
			for _, p := range t.Positional {
				write(",")
				visit(p)
			}
			t.Named.Range(func(name string, f Field) bool {
				write(name)
				visit(f.Type)
				return true
			})
		}
	}
	visit(t)
	return h.Sum64()
}
