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

// LeastClosure returns a subtype of every type obtained by substituting types for the
// eliminated terms of t: covariant occurrences become `Never`, contravariant occurrences
// become `Object?`.
func LeastClosure(t types.Type, e Elim) types.Type { return closure(t, e, true) }

// GreatestClosure returns a supertype of every type obtained by substituting types for the
// eliminated terms of t: covariant occurrences become `Object?`, contravariant occurrences
// become `Never`.
func GreatestClosure(t types.Type, e Elim) types.Type { return closure(t, e, false) }

func bottomOrTop(least bool) types.Type {
	if least {
		return types.Never
	}
	return types.ObjectQ
}

func closure(t types.Type, e Elim, least bool) types.Type {
	if e.Occurrences(t).Total() == 0 {
		return t
	}
	switch t := t.(type) {
	case types.Unknown, *types.Var:
		// the occurrence check above guarantees t is eliminated
		return bottomOrTop(least)

	case *types.Nullable:
		return types.MakeNullable(closure(t.Elem, e, least))

	case *types.FutureOr:
		return &types.FutureOr{Elem: closure(t.Elem, e, least)}

	case *types.Interface:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			switch t.Decl.Variance(i) {
			case types.Contravariant:
				args[i] = closure(arg, e, !least)
			case types.Invariant:
				lo, hi := closure(arg, e, true), closure(arg, e, false)
				if !types.Equal(lo, hi) {
					// no single argument is sound in both directions
					return bottomOrTop(least)
				}
				args[i] = lo
			default:
				args[i] = closure(arg, e, least)
			}
		}
		return &types.Interface{Decl: t.Decl, Args: args}

	case *types.Function:
		for _, tv := range t.TypeParams {
			if b := tv.Bound(); b != nil && e.Mentions(b) {
				if least {
					return types.Never
				}
				return types.FunctionType
			}
		}
		positional := make([]types.Type, len(t.Positional))
		for i, p := range t.Positional {
			positional[i] = closure(p, e, !least)
		}
		named := t.Named.Map(func(p types.Type) types.Type { return closure(p, e, !least) })
		return &types.Function{
			Return:     closure(t.Return, e, least),
			Positional: positional,
			Required:   t.Required,
			Named:      named,
			TypeParams: t.TypeParams,
		}

	case *types.Record:
		positional := make([]types.Type, len(t.Positional))
		for i, p := range t.Positional {
			positional[i] = closure(p, e, least)
		}
		return &types.Record{
			Positional: positional,
			Named:      t.Named.Map(func(p types.Type) types.Type { return closure(p, e, least) }),
		}
	}
	return t
}

// CloseConstraint returns the closure of c with respect to e: the lower bound is replaced
// by its greatest closure and the upper bound by its least closure.
func CloseConstraint(c Constraint, e Elim) Constraint {
	return Constraint{
		Lower: GreatestClosure(c.Lower, e),
		Var:   c.Var,
		Upper: LeastClosure(c.Upper, e),
	}
}
