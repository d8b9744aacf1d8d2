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

func topRank(t types.Type) int {
	switch t {
	case types.Dynamic:
		return 3
	case types.Void:
		return 2
	}
	return 1
}

func (ctx *CommonContext) isNonNullable(t types.Type) bool {
	return ctx.IsSubtype(LeastClosure(t, ElimUnknown), types.Object)
}

func stripNullable(t types.Type) types.Type {
	if n, ok := t.(*types.Nullable); ok {
		return n.Elem
	}
	return t
}

// Up computes the least upper bound of a and b. The unknown marker is an identity:
// Up(t, _) == Up(_, t) == t.
func (ctx *CommonContext) Up(a, b types.Type) types.Type {
	if _, ok := a.(types.Unknown); ok {
		return b
	}
	if _, ok := b.(types.Unknown); ok {
		return a
	}
	if types.Equal(a, b) {
		return a
	}

	switch topA, topB := types.IsTop(a), types.IsTop(b); {
	case topA && topB:
		if topRank(b) > topRank(a) {
			return b
		}
		return a
	case topA:
		return a
	case topB:
		return b
	}
	if types.IsBottom(a) {
		return b
	}
	if types.IsBottom(b) {
		return a
	}
	if types.IsNull(a) {
		return types.MakeNullable(b)
	}
	if types.IsNull(b) {
		return types.MakeNullable(a)
	}
	if types.IsObject(a) {
		if ctx.isNonNullable(b) {
			return a
		}
		return types.ObjectQ
	}
	if types.IsObject(b) {
		if ctx.isNonNullable(a) {
			return b
		}
		return types.ObjectQ
	}
	_, nullA := a.(*types.Nullable)
	_, nullB := b.(*types.Nullable)
	if nullA || nullB {
		return types.MakeNullable(ctx.Up(stripNullable(a), stripNullable(b)))
	}

	lcA, lcB := LeastClosure(a, ElimUnknown), LeastClosure(b, ElimUnknown)
	if ctx.IsSubtype(lcA, lcB) {
		return b
	}
	if ctx.IsSubtype(lcB, lcA) {
		return a
	}

	if tv, ok := a.(*types.Var); ok {
		return ctx.Up(tv.BoundOrTop(), b)
	}
	if tv, ok := b.(*types.Var); ok {
		return ctx.Up(a, tv.BoundOrTop())
	}

	if fa, ok := a.(*types.FutureOr); ok {
		if fb, ok := b.(*types.FutureOr); ok {
			return &types.FutureOr{Elem: ctx.Up(fa.Elem, fb.Elem)}
		}
		if eb, ok := types.IsFuture(b); ok {
			return &types.FutureOr{Elem: ctx.Up(fa.Elem, eb)}
		}
		return &types.FutureOr{Elem: ctx.Up(fa.Elem, b)}
	}
	if fb, ok := b.(*types.FutureOr); ok {
		if ea, ok := types.IsFuture(a); ok {
			return &types.FutureOr{Elem: ctx.Up(ea, fb.Elem)}
		}
		return &types.FutureOr{Elem: ctx.Up(a, fb.Elem)}
	}

	switch aa := a.(type) {
	case *types.Function:
		if fb, ok := b.(*types.Function); ok {
			if r := ctx.upFunctions(aa, fb); r != nil {
				return r
			}
			return types.FunctionType
		}
		return ctx.Up(types.FunctionType, b)

	case *types.Record:
		if rb, ok := b.(*types.Record); ok {
			if sameRecordShape(aa, rb) {
				return ctx.mapRecords(aa, rb, ctx.Up)
			}
			return types.RecordType
		}
		return ctx.Up(types.RecordType, b)

	case *types.Interface:
		switch bb := b.(type) {
		case *types.Function:
			return ctx.Up(a, types.FunctionType)
		case *types.Record:
			return ctx.Up(a, types.RecordType)
		case *types.Interface:
			return ctx.upInterfaces(aa, bb)
		}
	}
	return types.ObjectQ
}

// Down computes the greatest lower bound of a and b. The unknown marker is an identity:
// Down(t, _) == Down(_, t) == t.
func (ctx *CommonContext) Down(a, b types.Type) types.Type {
	if _, ok := a.(types.Unknown); ok {
		return b
	}
	if _, ok := b.(types.Unknown); ok {
		return a
	}
	if types.Equal(a, b) {
		return a
	}

	switch topA, topB := types.IsTop(a), types.IsTop(b); {
	case topA && topB:
		if topRank(b) < topRank(a) {
			return b
		}
		return a
	case topA:
		return b
	case topB:
		return a
	}
	if types.IsBottom(a) {
		return a
	}
	if types.IsBottom(b) {
		return b
	}
	if types.IsNull(a) || types.IsNull(b) {
		other := b
		if !types.IsNull(a) {
			other = a
		}
		if ctx.IsSubtype(types.Null, GreatestClosure(other, ElimUnknown)) {
			return types.Null
		}
		return types.Never
	}
	if types.IsObject(a) || types.IsObject(b) {
		obj, other := a, b
		if !types.IsObject(a) {
			obj, other = b, a
		}
		switch o := other.(type) {
		case *types.Nullable:
			return ctx.Down(obj, o.Elem)
		case *types.FutureOr:
			return &types.FutureOr{Elem: ctx.Down(obj, o.Elem)}
		}
		if ctx.isNonNullable(other) {
			return other
		}
		return types.Never
	}

	na, nullA := a.(*types.Nullable)
	nb, nullB := b.(*types.Nullable)
	switch {
	case nullA && nullB:
		return types.MakeNullable(ctx.Down(na.Elem, nb.Elem))
	case nullA:
		return ctx.Down(na.Elem, b)
	case nullB:
		return ctx.Down(a, nb.Elem)
	}

	if fa, ok := a.(*types.FutureOr); ok {
		if fb, ok := b.(*types.FutureOr); ok {
			return &types.FutureOr{Elem: ctx.Down(fa.Elem, fb.Elem)}
		}
		if eb, ok := types.IsFuture(b); ok {
			return types.NewFuture(ctx.Down(fa.Elem, eb))
		}
		return ctx.Down(fa.Elem, b)
	}
	if fb, ok := b.(*types.FutureOr); ok {
		if ea, ok := types.IsFuture(a); ok {
			return types.NewFuture(ctx.Down(ea, fb.Elem))
		}
		return ctx.Down(a, fb.Elem)
	}

	// Schemas are compared by their greatest closures only. A schema whose closure is not
	// a subtype of the other side (List<_> against Iterable<int>) is not refined against
	// it, and unrelated declarations meet at Never below.
	gcA, gcB := GreatestClosure(a, ElimUnknown), GreatestClosure(b, ElimUnknown)
	if ctx.IsSubtype(gcA, gcB) {
		return a
	}
	if ctx.IsSubtype(gcB, gcA) {
		return b
	}

	switch aa := a.(type) {
	case *types.Function:
		if fb, ok := b.(*types.Function); ok {
			if r := ctx.downFunctions(aa, fb); r != nil {
				return r
			}
		}
	case *types.Record:
		if rb, ok := b.(*types.Record); ok && sameRecordShape(aa, rb) {
			return ctx.mapRecords(aa, rb, ctx.Down)
		}
	case *types.Interface:
		if ib, ok := b.(*types.Interface); ok && aa.Decl == ib.Decl {
			if r := ctx.pointwise(aa, ib, ctx.Down, ctx.Up); r != nil {
				return r
			}
		}
	}
	return types.Never
}

// sameFunctionShape returns b with its type-parameters renamed to a's, or nil if the two
// functions differ in parameter counts, named parameters or type-parameter bounds.
func sameFunctionShape(a, b *types.Function) *types.Function {
	if len(a.Positional) != len(b.Positional) || a.Required != b.Required || a.Named.Len() != b.Named.Len() {
		return nil
	}
	ok := true
	a.Named.Range(func(name string, fa types.Field) bool {
		fb, found := b.Named.Get(name)
		ok = found && fa.Required == fb.Required
		return ok
	})
	if !ok {
		return nil
	}
	return alignTypeParams(b, a)
}

func (ctx *CommonContext) combineFunctions(a, b *types.Function, params, ret func(x, y types.Type) types.Type) types.Type {
	if b = sameFunctionShape(a, b); b == nil {
		return nil
	}
	positional := make([]types.Type, len(a.Positional))
	for i, p := range a.Positional {
		positional[i] = params(p, b.Positional[i])
	}
	named := types.NewFieldsBuilder()
	a.Named.Range(func(name string, fa types.Field) bool {
		fb, _ := b.Named.Get(name)
		named.Set(name, types.Field{Type: params(fa.Type, fb.Type), Required: fa.Required})
		return true
	})
	return &types.Function{
		Return:     ret(a.Return, b.Return),
		Positional: positional,
		Required:   a.Required,
		Named:      named.Build(),
		TypeParams: a.TypeParams,
	}
}

func (ctx *CommonContext) upFunctions(a, b *types.Function) types.Type {
	return ctx.combineFunctions(a, b, ctx.Down, ctx.Up)
}

func (ctx *CommonContext) downFunctions(a, b *types.Function) types.Type {
	return ctx.combineFunctions(a, b, ctx.Up, ctx.Down)
}

func (ctx *CommonContext) mapRecords(a, b *types.Record, f func(x, y types.Type) types.Type) types.Type {
	positional := make([]types.Type, len(a.Positional))
	for i, p := range a.Positional {
		positional[i] = f(p, b.Positional[i])
	}
	named := types.NewFieldsBuilder()
	a.Named.Range(func(name string, fa types.Field) bool {
		fb, _ := b.Named.Get(name)
		named.Set(name, types.Field{Type: f(fa.Type, fb.Type)})
		return true
	})
	return &types.Record{Positional: positional, Named: named.Build()}
}

// pointwise combines the arguments of two instantiations of the same declaration:
// covariant arguments with same, contravariant arguments with opposite, and invariant
// arguments only when they are equal. It returns nil when invariant arguments differ.
func (ctx *CommonContext) pointwise(a, b *types.Interface, same, opposite func(x, y types.Type) types.Type) types.Type {
	args := make([]types.Type, len(a.Args))
	for i, arg := range a.Args {
		switch a.Decl.Variance(i) {
		case types.Contravariant:
			args[i] = opposite(arg, b.Args[i])
		case types.Invariant:
			if !types.Equal(arg, b.Args[i]) {
				return nil
			}
			args[i] = arg
		default:
			args[i] = same(arg, b.Args[i])
		}
	}
	return &types.Interface{Decl: a.Decl, Args: args}
}

func (ctx *CommonContext) upInterfaces(a, b *types.Interface) types.Type {
	if a.Decl == b.Decl {
		if r := ctx.pointwise(a, b, ctx.Up, ctx.Down); r != nil {
			return r
		}
	}
	supersB := ctx.Supertypes(b)
	byDepth := make(map[int][]*types.Interface)
	maxDepth := 0
	for _, sa := range ctx.Supertypes(a) {
		for _, sb := range supersB {
			if types.Equal(sa, sb) {
				d := ctx.Depth(sa.Decl)
				byDepth[d] = append(byDepth[d], sa)
				if d > maxDepth {
					maxDepth = d
				}
				break
			}
		}
	}
	for d := maxDepth; d > 0; d-- {
		if candidates := byDepth[d]; len(candidates) == 1 {
			return candidates[0]
		}
	}
	return types.Object
}
