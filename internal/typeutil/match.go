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

// Match attempts to derive constraints on the variables in L under which p is a subtype of
// q. It returns false if no such constraints can be derived; an empty constraint set with
// true means p is a subtype of q without constraining any variable.
//
// Cases are tried in order and the first applicable case decides the result, except that
// the alternatives for a FutureOr or nullable q fall through when none of them succeeds.
func (ctx *CommonContext) Match(p, q types.Type, L VarSet) (ConstraintSet, bool) {
	ctx.ensureInit()
	if !ctx.tracing() {
		return ctx.match(p, q, L)
	}
	ctx.tracef("match %v <: %v", p, q)
	ctx.indent++
	cs, ok := ctx.match(p, q, L)
	ctx.indent--
	if ok {
		ctx.tracef("=> %v", cs)
	} else {
		ctx.tracef("=> no match")
	}
	return cs, ok
}

func (ctx *CommonContext) rule(name string) {
	if ctx.tracing() {
		ctx.tracef("[%s]", name)
	}
}

func (ctx *CommonContext) match(p, q types.Type, L VarSet) (ConstraintSet, bool) {
	empty := EmptyConstraintSet

	_, unknownP := p.(types.Unknown)
	_, unknownQ := q.(types.Unknown)
	if unknownP || unknownQ {
		ctx.rule("unknown")
		return empty, true
	}

	if pv, ok := p.(*types.Var); ok && L.Contains(pv) {
		ctx.rule("inferred-lower")
		if types.Equal(p, q) {
			return empty, true
		}
		return NewConstraintSet(NewConstraint(types.UnknownType, pv, q)), true
	}
	if qv, ok := q.(*types.Var); ok && L.Contains(qv) {
		ctx.rule("inferred-upper")
		return NewConstraintSet(NewConstraint(p, qv, types.UnknownType)), true
	}

	if types.Equal(p, q) {
		ctx.rule("identical")
		return empty, true
	}

	switch qq := q.(type) {
	case *types.FutureOr:
		if cs, ok := ctx.matchFutureOr(p, qq, L); ok {
			return cs, true
		}
	case *types.Nullable:
		if cs, ok := ctx.matchNullable(p, qq, L); ok {
			return cs, true
		}
	}

	switch pp := p.(type) {
	case *types.FutureOr:
		ctx.rule("split-futureor")
		return ctx.matchSplit(types.NewFuture(pp.Elem), pp.Elem, q, L)
	case *types.Nullable:
		ctx.rule("split-nullable")
		return ctx.matchSplit(pp.Elem, types.Null, q, L)
	}

	if types.IsTop(q) || types.IsBottom(p) {
		ctx.rule("trivial")
		return empty, true
	}
	if types.IsObject(q) {
		ctx.rule("object")
		switch pp := p.(type) {
		case types.Prim:
			return empty, pp == types.Object
		case *types.Interface, *types.Function, *types.Record:
			return empty, true
		case *types.Var:
			return ctx.Match(pp.BoundOrTop(), q, L)
		}
		return empty, false
	}

	if pv, ok := p.(*types.Var); ok {
		ctx.rule("bound")
		return ctx.Match(pv.BoundOrTop(), q, L)
	}

	switch qq := q.(type) {
	case *types.Interface:
		switch pp := p.(type) {
		case *types.Function:
			ctx.rule("function-interface")
			return empty, qq.Decl == types.FunctionDecl
		case *types.Record:
			ctx.rule("record-interface")
			return empty, qq.Decl == types.RecordDecl
		case *types.Interface:
			inst := ctx.AsInstanceOf(pp, qq.Decl)
			if inst == nil {
				ctx.rule("unrelated-interfaces")
				return empty, false
			}
			if inst.Decl == pp.Decl {
				ctx.rule("same-interface")
			} else {
				ctx.rule("superinterface")
			}
			return ctx.matchArgs(inst, qq, L)
		}

	case *types.Function:
		if pp, ok := p.(*types.Function); ok {
			if pp.IsGeneric() || qq.IsGeneric() {
				ctx.rule("generic-function")
				return ctx.matchGenericFunctions(pp, qq, L)
			}
			ctx.rule("function")
			return ctx.matchFunctions(pp, qq, L)
		}

	case *types.Record:
		if pp, ok := p.(*types.Record); ok {
			ctx.rule("record")
			return ctx.matchRecords(pp, qq, L)
		}
	}

	ctx.rule("none")
	return empty, false
}

func (ctx *CommonContext) matchFutureOr(p types.Type, q *types.FutureOr, L VarSet) (ConstraintSet, bool) {
	if pp, ok := p.(*types.FutureOr); ok {
		ctx.rule("futureor-futureor")
		if cs, ok := ctx.Match(pp.Elem, q.Elem, L); ok {
			return cs, true
		}
	}
	future := types.NewFuture(q.Elem)
	ctx.rule("futureor-future")
	if cs, ok := ctx.Match(p, future, L); ok && !cs.IsEmpty() {
		return cs, true
	}
	ctx.rule("futureor-value")
	if cs, ok := ctx.Match(p, q.Elem, L); ok {
		return cs, true
	}
	ctx.rule("futureor-future-empty")
	return ctx.Match(p, future, L)
}

func (ctx *CommonContext) matchNullable(p types.Type, q *types.Nullable, L VarSet) (ConstraintSet, bool) {
	if pp, ok := p.(*types.Nullable); ok {
		ctx.rule("nullable-nullable")
		if cs, ok := ctx.Match(pp.Elem, q.Elem, L); ok {
			return cs, true
		}
	}
	if p == types.Dynamic || p == types.Void {
		ctx.rule("nullable-top")
		if cs, ok := ctx.Match(types.Object, q.Elem, L); ok {
			return cs, true
		}
	}
	ctx.rule("nullable-value")
	if cs, ok := ctx.Match(p, q.Elem, L); ok && !cs.IsEmpty() {
		return cs, true
	}
	ctx.rule("nullable-null")
	if cs, ok := ctx.Match(p, types.Null, L); ok {
		return cs, true
	}
	ctx.rule("nullable-value-empty")
	return ctx.Match(p, q.Elem, L)
}

func (ctx *CommonContext) matchSplit(p1, p2, q types.Type, L VarSet) (ConstraintSet, bool) {
	cs1, ok := ctx.Match(p1, q, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	cs2, ok := ctx.Match(p2, q, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	return cs1.Concat(cs2), true
}

// matchArgs matches the arguments of two instantiations of the same declaration according
// to the declared variance of each type-parameter.
func (ctx *CommonContext) matchArgs(p, q *types.Interface, L VarSet) (ConstraintSet, bool) {
	if len(p.Args) != len(q.Args) {
		return EmptyConstraintSet, false
	}
	cs := EmptyConstraintSet
	for i, arg := range p.Args {
		var ok bool
		var sub ConstraintSet
		switch q.Decl.Variance(i) {
		case types.Covariant:
			sub, ok = ctx.Match(arg, q.Args[i], L)
		case types.Contravariant:
			sub, ok = ctx.Match(q.Args[i], arg, L)
		case types.Invariant:
			sub, ok = ctx.matchMutual(arg, q.Args[i], L)
		default:
			ok = true
		}
		if !ok {
			return EmptyConstraintSet, false
		}
		cs = cs.Concat(sub)
	}
	return cs, true
}

// matchMutual matches a against b and b against a.
func (ctx *CommonContext) matchMutual(a, b types.Type, L VarSet) (ConstraintSet, bool) {
	cs1, ok := ctx.Match(a, b, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	cs2, ok := ctx.Match(b, a, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	return cs1.Concat(cs2), true
}

func (ctx *CommonContext) matchFunctions(p, q *types.Function, L VarSet) (ConstraintSet, bool) {
	if !shapeCompatible(p, q) {
		return EmptyConstraintSet, false
	}
	cs := EmptyConstraintSet
	for i, qp := range q.Positional {
		sub, ok := ctx.Match(qp, p.Positional[i], L)
		if !ok {
			return EmptyConstraintSet, false
		}
		cs = cs.Concat(sub)
	}
	ok := true
	q.Named.Range(func(name string, qf types.Field) bool {
		pf, _ := p.Named.Get(name)
		var sub ConstraintSet
		if sub, ok = ctx.Match(qf.Type, pf.Type, L); ok {
			cs = cs.Concat(sub)
		}
		return ok
	})
	if !ok {
		return EmptyConstraintSet, false
	}
	sub, ok := ctx.Match(p.Return, q.Return, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	return cs.Concat(sub), true
}

func (ctx *CommonContext) matchGenericFunctions(p, q *types.Function, L VarSet) (ConstraintSet, bool) {
	if len(p.TypeParams) != len(q.TypeParams) {
		return EmptyConstraintSet, false
	}
	fresh := ctx.VarTracker.Rename(q.TypeParams)
	args := make([]types.Type, len(fresh))
	for i, tv := range fresh {
		args[i] = tv
	}
	sp, sq := types.NewSubstitution(p.TypeParams, args), types.NewSubstitution(q.TypeParams, args)

	cs := EmptyConstraintSet
	for i, tv := range fresh {
		bp, bq := sp.Apply(p.TypeParams[i].BoundOrTop()), sq.Apply(q.TypeParams[i].BoundOrTop())
		tv.SetBound(bq)
		sub, ok := ctx.matchMutual(bp, bq, L)
		if !ok {
			return EmptyConstraintSet, false
		}
		cs = cs.Concat(sub)
	}

	pBody := &types.Function{Return: sp.Apply(p.Return), Positional: applyList(sp, p.Positional), Required: p.Required, Named: p.Named.Map(sp.Apply)}
	qBody := &types.Function{Return: sq.Apply(q.Return), Positional: applyList(sq, q.Positional), Required: q.Required, Named: q.Named.Map(sq.Apply)}
	sub, ok := ctx.matchFunctions(pBody, qBody, L)
	if !ok {
		return EmptyConstraintSet, false
	}
	return cs.Concat(sub).Close(ElimVars(fresh...)), true
}

func (ctx *CommonContext) matchRecords(p, q *types.Record, L VarSet) (ConstraintSet, bool) {
	if !sameRecordShape(p, q) {
		return EmptyConstraintSet, false
	}
	cs := EmptyConstraintSet
	for i, qp := range q.Positional {
		sub, ok := ctx.Match(p.Positional[i], qp, L)
		if !ok {
			return EmptyConstraintSet, false
		}
		cs = cs.Concat(sub)
	}
	ok := true
	q.Named.Range(func(name string, qf types.Field) bool {
		pf, _ := p.Named.Get(name)
		var sub ConstraintSet
		if sub, ok = ctx.Match(pf.Type, qf.Type, L); ok {
			cs = cs.Concat(sub)
		}
		return ok
	})
	if !ok {
		return EmptyConstraintSet, false
	}
	return cs, true
}
