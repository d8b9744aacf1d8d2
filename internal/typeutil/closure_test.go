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
	"testing"

	. "github.com/wdamron/tinfer/construct"
	"github.com/wdamron/tinfer/internal/corelib"
	"github.com/wdamron/tinfer/types"
)

func TestClosures(t *testing.T) {
	_, lib := newTestContext()
	X := testVar("X", nil)
	T := testVar("T", X)
	e := ElimVars(X)
	intT := lib.IntType()

	cases := []struct {
		t              types.Type
		least, greatest types.Type
	}{
		{X, types.Never, types.ObjectQ},
		{intT, intT, intT},
		{lib.ListOf(X), lib.ListOf(types.Never), lib.ListOf(types.ObjectQ)},
		{lib.SinkOf(X), lib.SinkOf(types.ObjectQ), lib.SinkOf(types.Never)},
		{lib.CellOf(X), types.Never, types.ObjectQ},
		{lib.CellOf(intT), lib.CellOf(intT), lib.CellOf(intT)},
		{TNullable(X), types.Null, types.ObjectQ},
		{TFunc(X, X), TFunc(types.Never, types.ObjectQ), TFunc(types.ObjectQ, types.Never)},
		{TGeneric([]*types.Var{T}, TFunc(T)), types.Never, types.FunctionType},
		{TRecord(X, intT), TRecord(types.Never, intT), TRecord(types.ObjectQ, intT)},
	}
	for _, c := range cases {
		expectType(t, "least closure of "+types.TypeString(c.t), c.least, LeastClosure(c.t, e))
		expectType(t, "greatest closure of "+types.TypeString(c.t), c.greatest, GreatestClosure(c.t, e))
	}

	expectType(t, "least closure of List<_>", lib.ListOf(types.Never), LeastClosure(lib.ListOf(types.UnknownType), ElimUnknown))
	expectType(t, "greatest closure of _", types.ObjectQ, GreatestClosure(types.UnknownType, ElimUnknown))
}

func closureSamples(lib *corelib.Library, X *types.Var) []types.Type {
	return []types.Type{
		X,
		lib.ListOf(X),
		lib.SinkOf(X),
		lib.CellOf(X),
		lib.MapOf(X, lib.SinkOf(X)),
		TNullable(X),
		TFutureOr(TNullable(X)),
		TFunc(X, X),
		TFunc(lib.IntType(), TFunc(X, lib.ListOf(X))),
		TRecord(X, lib.SinkOf(X)),
	}
}

func TestClosureIdempotence(t *testing.T) {
	_, lib := newTestContext()
	X := testVar("X", nil)
	e := ElimVars(X)
	for _, s := range closureSamples(lib, X) {
		least := LeastClosure(s, e)
		expectType(t, "least closure of "+types.TypeString(s), least, LeastClosure(least, e))
		greatest := GreatestClosure(s, e)
		expectType(t, "greatest closure of "+types.TypeString(s), greatest, GreatestClosure(greatest, e))
	}
}

func TestClosureOrdering(t *testing.T) {
	ctx, lib := newTestContext()
	X := testVar("X", nil)
	e := ElimVars(X)
	for _, s := range closureSamples(lib, X) {
		least, greatest := LeastClosure(s, e), GreatestClosure(s, e)
		for _, arg := range []types.Type{lib.IntType(), types.Never, types.ObjectQ, TNullable(lib.NumType())} {
			inst := types.NewSubstitution([]*types.Var{X}, []types.Type{arg}).Apply(s)
			if !ctx.IsSubtype(least, inst) {
				t.Fatalf("expected %v <: %v", least, inst)
			}
			if !ctx.IsSubtype(inst, greatest) {
				t.Fatalf("expected %v <: %v", inst, greatest)
			}
		}
	}
}

func TestCloseConstraint(t *testing.T) {
	_, lib := newTestContext()
	X, F := testVar("X", nil), testVar("F", nil)
	c := CloseConstraint(Constraint{Lower: lib.ListOf(F), Var: X, Upper: lib.ListOf(F)}, ElimVars(F))
	expectType(t, "lower", lib.ListOf(types.ObjectQ), c.Lower)
	expectType(t, "upper", lib.ListOf(types.Never), c.Upper)
}
