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
	"github.com/wdamron/tinfer/types"
)

func TestFindOccurrences(t *testing.T) {
	_, lib := newTestContext()
	X := testVar("X", nil)
	T := testVar("T", X)

	cases := []struct {
		t        types.Type
		expected types.Variance
	}{
		{lib.IntType(), types.Unrelated},
		{X, types.Covariant},
		{lib.ListOf(X), types.Covariant},
		{TNullable(TFutureOr(X)), types.Covariant},
		{lib.SinkOf(X), types.Contravariant},
		{lib.SinkOf(lib.SinkOf(X)), types.Covariant},
		{lib.CellOf(X), types.Invariant},
		{TFunc(lib.IntType(), X), types.Contravariant},
		{TFunc(X, X), types.Invariant},
		{TFunc(lib.IntType(), TFunc(lib.IntType(), X)), types.Covariant},
		{TGeneric([]*types.Var{T}, TFunc(T)), types.Invariant},
		{TRecord(X, lib.IntType()), types.Covariant},
	}
	for _, c := range cases {
		if v := VarianceIn(X, c.t); v != c.expected {
			t.Fatalf("X in %v: expected %v, found %v", c.t, c.expected, v)
		}
	}

	o := FindOccurrences(X, TFunc(X, X, lib.ListOf(X)))
	if o.Covariant != 1 || o.Contravariant != 2 || o.Invariant != 0 || o.Total() != 3 {
		t.Fatalf("unexpected occurrences: %+v", o)
	}

	o = ElimUnknown.Occurrences(lib.MapOf(types.UnknownType, lib.SinkOf(types.UnknownType)))
	if o.Covariant != 1 || o.Contravariant != 1 {
		t.Fatalf("unexpected occurrences of the unknown marker: %+v", o)
	}
}
