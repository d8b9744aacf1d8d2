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

package typeutil

import (
	"github.com/wdamron/tinfer/types"
)

// IsSubtype reports whether s is a subtype of t. An unknown marker on either side is
// treated as compatible with anything; callers which need a sound answer for schemas close
// them with respect to the unknown marker first.
//
// Results are memoized for the remainder of the current episode.
func (ctx *CommonContext) IsSubtype(s, t types.Type) bool {
	if s == t {
		return true
	}
	ctx.ensureInit()
	key := [2]uint64{types.Hash(s), types.Hash(t)}
	for _, m := range ctx.subtypes[key] {
		if types.Equal(m.sub, s) && types.Equal(m.super, t) {
			return m.result
		}
	}
	// guards against re-entry through cyclic supertype edges
	i := len(ctx.subtypes[key])
	ctx.subtypes[key] = append(ctx.subtypes[key], subtypeMemo{sub: s, super: t})
	result := ctx.isSubtype(s, t)
	ctx.subtypes[key][i].result = result
	return result
}

func (ctx *CommonContext) isSubtype(s, t types.Type) bool {
	if types.Equal(s, t) || types.IsTop(t) || types.IsBottom(s) {
		return true
	}
	if _, ok := s.(types.Unknown); ok {
		return true
	}
	if _, ok := t.(types.Unknown); ok {
		return true
	}

	if types.IsObject(t) {
		switch s := s.(type) {
		case types.Prim:
			return s == types.Object
		case *types.Var:
			return ctx.IsSubtype(s.BoundOrTop(), t)
		case *types.FutureOr:
			return ctx.IsSubtype(s.Elem, t)
		case *types.Nullable:
			return false
		}
		return true
	}

	if types.IsNull(s) {
		switch t := t.(type) {
		case *types.Nullable:
			return true
		case *types.FutureOr:
			return ctx.IsSubtype(s, t.Elem)
		case *types.Var:
			return false
		}
		return types.IsNull(t)
	}

	switch ss := s.(type) {
	case *types.FutureOr:
		return ctx.IsSubtype(types.NewFuture(ss.Elem), t) && ctx.IsSubtype(ss.Elem, t)
	case *types.Nullable:
		return ctx.IsSubtype(ss.Elem, t) && ctx.IsSubtype(types.Null, t)
	}

	switch tt := t.(type) {
	case *types.FutureOr:
		if ctx.IsSubtype(s, types.NewFuture(tt.Elem)) || ctx.IsSubtype(s, tt.Elem) {
			return true
		}
		if sv, ok := s.(*types.Var); ok {
			return ctx.IsSubtype(sv.BoundOrTop(), t)
		}
		return false
	case *types.Nullable:
		if ctx.IsSubtype(s, tt.Elem) {
			return true
		}
		if sv, ok := s.(*types.Var); ok {
			return ctx.IsSubtype(sv.BoundOrTop(), t)
		}
		return false
	}

	if sv, ok := s.(*types.Var); ok {
		return ctx.IsSubtype(sv.BoundOrTop(), t)
	}

	switch tt := t.(type) {
	case *types.Var:
		return false

	case *types.Interface:
		switch ss := s.(type) {
		case *types.Function:
			return tt.Decl == types.FunctionDecl
		case *types.Record:
			return tt.Decl == types.RecordDecl
		case *types.Interface:
			return ctx.isInterfaceSubtype(ss, tt)
		}
		return false

	case *types.Function:
		if sf, ok := s.(*types.Function); ok {
			return ctx.isFunctionSubtype(sf, tt)
		}
		return false

	case *types.Record:
		if sr, ok := s.(*types.Record); ok {
			return ctx.isRecordSubtype(sr, tt)
		}
		return false
	}
	return false
}

func (ctx *CommonContext) isInterfaceSubtype(s, t *types.Interface) bool {
	inst := ctx.AsInstanceOf(s, t.Decl)
	if inst == nil || len(inst.Args) != len(t.Args) {
		return false
	}
	for i, arg := range inst.Args {
		switch t.Decl.Variance(i) {
		case types.Covariant:
			if !ctx.IsSubtype(arg, t.Args[i]) {
				return false
			}
		case types.Contravariant:
			if !ctx.IsSubtype(t.Args[i], arg) {
				return false
			}
		case types.Invariant:
			if !ctx.IsSubtype(arg, t.Args[i]) || !ctx.IsSubtype(t.Args[i], arg) {
				return false
			}
		}
	}
	return true
}

// alignTypeParams renames the type-parameters of s to those of t, returning nil if their
// counts or bounds differ.
func alignTypeParams(s, t *types.Function) *types.Function {
	if len(s.TypeParams) != len(t.TypeParams) {
		return nil
	}
	if len(s.TypeParams) == 0 {
		return s
	}
	args := make([]types.Type, len(t.TypeParams))
	for i, tv := range t.TypeParams {
		args[i] = tv
	}
	rename := types.NewSubstitution(s.TypeParams, args)
	for i, tv := range s.TypeParams {
		if !types.Equal(rename.Apply(tv.BoundOrTop()), t.TypeParams[i].BoundOrTop()) {
			return nil
		}
	}
	return &types.Function{
		Return:     rename.Apply(s.Return),
		Positional: applyList(rename, s.Positional),
		Required:   s.Required,
		Named:      s.Named.Map(rename.Apply),
	}
}

func applyList(s types.Substitution, ts []types.Type) []types.Type {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

// shapeCompatible reports whether a function of shape s may be used where a function of
// shape t is expected, ignoring parameter and return types.
func shapeCompatible(s, t *types.Function) bool {
	if s.Required > t.Required || len(s.Positional) < len(t.Positional) {
		return false
	}
	ok := true
	t.Named.Range(func(name string, tf types.Field) bool {
		sf, found := s.Named.Get(name)
		ok = found && (!sf.Required || tf.Required)
		return ok
	})
	if !ok {
		return false
	}
	s.Named.Range(func(name string, sf types.Field) bool {
		if sf.Required {
			_, ok = t.Named.Get(name)
		}
		return ok
	})
	return ok
}

func (ctx *CommonContext) isFunctionSubtype(s, t *types.Function) bool {
	if s = alignTypeParams(s, t); s == nil || !shapeCompatible(s, t) {
		return false
	}
	for i, tp := range t.Positional {
		if !ctx.IsSubtype(tp, s.Positional[i]) {
			return false
		}
	}
	ok := true
	t.Named.Range(func(name string, tf types.Field) bool {
		sf, _ := s.Named.Get(name)
		ok = ctx.IsSubtype(tf.Type, sf.Type)
		return ok
	})
	return ok && ctx.IsSubtype(s.Return, t.Return)
}

func sameRecordShape(s, t *types.Record) bool {
	if len(s.Positional) != len(t.Positional) || s.Named.Len() != t.Named.Len() {
		return false
	}
	ok := true
	t.Named.Range(func(name string, _ types.Field) bool {
		_, ok = s.Named.Get(name)
		return ok
	})
	return ok
}

func (ctx *CommonContext) isRecordSubtype(s, t *types.Record) bool {
	if !sameRecordShape(s, t) {
		return false
	}
	for i, tp := range t.Positional {
		if !ctx.IsSubtype(s.Positional[i], tp) {
			return false
		}
	}
	ok := true
	t.Named.Range(func(name string, tf types.Field) bool {
		sf, _ := s.Named.Get(name)
		ok = ctx.IsSubtype(sf.Type, tf.Type)
		return ok
	})
	return ok
}

// AsInstanceOf walks the supertype edges of t (superclass, then implemented interfaces,
// then mixins) until it reaches an instantiation of d, substituting t's arguments along
// the way. It returns nil if d is not a supertype of t.
func (ctx *CommonContext) AsInstanceOf(t *types.Interface, d *types.Decl) *types.Interface {
	return ctx.asInstanceOf(t, d, 0)
}

func (ctx *CommonContext) asInstanceOf(t *types.Interface, d *types.Decl, depth int) *types.Interface {
	if t.Decl == d {
		return t
	}
	if depth > maxHierarchyDepth {
		return nil
	}
	s := t.Substitution()
	for _, super := range ctx.supertypes(t.Decl) {
		if inst := ctx.asInstanceOf(s.Apply(super).(*types.Interface), d, depth+1); inst != nil {
			return inst
		}
	}
	return nil
}

const maxHierarchyDepth = 256

// Supertypes returns every instantiation t is a subtype of through supertype edges,
// including t itself, ordered by a depth-first walk.
func (ctx *CommonContext) Supertypes(t *types.Interface) []*types.Interface {
	var out []*types.Interface
	var visit func(*types.Interface, int)
	visit = func(t *types.Interface, depth int) {
		for _, seen := range out {
			if types.Equal(seen, t) {
				return
			}
		}
		out = append(out, t)
		if depth > maxHierarchyDepth {
			return
		}
		s := t.Substitution()
		for _, super := range ctx.supertypes(t.Decl) {
			visit(s.Apply(super).(*types.Interface), depth+1)
		}
	}
	visit(t, 0)
	return out
}

// Depth returns the length of the longest supertype path from d to Object. Declarations
// without supertypes have depth 1.
func (ctx *CommonContext) Depth(d *types.Decl) int {
	ctx.ensureInit()
	if n, ok := ctx.depths[d]; ok {
		return n
	}
	ctx.depths[d] = 1
	n := 1
	for _, super := range ctx.supertypes(d) {
		if m := ctx.Depth(super.Decl) + 1; m > n {
			n = m
		}
	}
	ctx.depths[d] = n
	return n
}
