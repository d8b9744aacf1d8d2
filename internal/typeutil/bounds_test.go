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

func TestUpDownUnknownIdentity(t *testing.T) {
	ctx, lib := newTestContext()
	X := testVar("X", nil)
	samples := []types.Type{
		lib.IntType(),
		lib.ListOf(types.UnknownType),
		TNullable(lib.StringType()),
		TFunc(lib.IntType(), X),
		types.Dynamic,
		types.Never,
		types.UnknownType,
	}
	for _, s := range samples {
		expectType(t, "up(T, _)", s, ctx.Up(s, types.UnknownType))
		expectType(t, "up(_, T)", s, ctx.Up(types.UnknownType, s))
		expectType(t, "down(T, _)", s, ctx.Down(s, types.UnknownType))
		expectType(t, "down(_, T)", s, ctx.Down(types.UnknownType, s))
	}
}

func TestUp(t *testing.T) {
	ctx, lib := newTestContext()
	intT, numT, doubleT, stringT := lib.IntType(), lib.NumType(), lib.DoubleType(), lib.StringType()
	X := testVar("X", intT)

	cases := []struct {
		a, b, expected types.Type
	}{
		{intT, numT, numT},
		{intT, doubleT, numT},
		{intT, stringT, types.Object},
		{lib.ListOf(intT), lib.ListOf(doubleT), lib.ListOf(numT)},
		{lib.ListOf(intT), lib.IterableOf(numT), lib.IterableOf(numT)},
		{lib.SinkOf(intT), lib.SinkOf(numT), lib.SinkOf(intT)},
		{lib.CellOf(intT), lib.CellOf(numT), types.Object},
		{intT, types.Null, TNullable(intT)},
		{TNullable(intT), doubleT, TNullable(numT)},
		{intT, types.Never, intT},
		{intT, types.ObjectQ, types.ObjectQ},
		{types.Dynamic, types.Void, types.Dynamic},
		{types.Object, TNullable(intT), types.ObjectQ},
		{types.Object, intT, types.Object},
		{X, doubleT, numT},
		{X, intT, intT},
		{TFutureOr(intT), TFuture(doubleT), TFutureOr(numT)},
		{TFunc(intT, intT), TFunc(doubleT, intT), TFunc(numT, intT)},
		{TFunc(intT, intT), TFunc(intT), types.FunctionType},
		{TRecord(intT), TRecord(doubleT), TRecord(numT)},
		{TRecord(intT), TRecord(intT, intT), types.RecordType},
		{lib.ListOf(types.UnknownType), lib.ListOf(intT), lib.ListOf(intT)},
	}
	for _, c := range cases {
		expectType(t, "up("+types.TypeString(c.a)+", "+types.TypeString(c.b)+")", c.expected, ctx.Up(c.a, c.b))
	}
}

func TestDown(t *testing.T) {
	ctx, lib := newTestContext()
	intT, numT, doubleT, stringT := lib.IntType(), lib.NumType(), lib.DoubleType(), lib.StringType()

	cases := []struct {
		a, b, expected types.Type
	}{
		{intT, numT, intT},
		{numT, intT, intT},
		{intT, stringT, types.Never},
		{lib.SinkOf(intT), lib.SinkOf(doubleT), lib.SinkOf(numT)},
		{lib.ListOf(intT), lib.IterableOf(numT), lib.ListOf(intT)},
		{TNullable(intT), TNullable(numT), TNullable(intT)},
		{TNullable(intT), numT, intT},
		{types.Object, TNullable(intT), intT},
		{types.Null, TNullable(intT), types.Null},
		{types.Null, intT, types.Never},
		{types.ObjectQ, types.Void, types.ObjectQ},
		{types.Dynamic, intT, intT},
		{TFutureOr(intT), TFuture(numT), TFuture(intT)},
		{TFutureOr(intT), numT, intT},
		{TFunc(intT, intT), TFunc(numT, doubleT), TFunc(intT, numT)},
		{TRecord(intT, numT), TRecord(numT, doubleT), TRecord(intT, doubleT)},
		{lib.ListOf(types.UnknownType), lib.ListOf(intT), lib.ListOf(intT)},
		{lib.ListOf(types.UnknownType), lib.IterableOf(intT), types.Never},
	}
	for _, c := range cases {
		expectType(t, "down("+types.TypeString(c.a)+", "+types.TypeString(c.b)+")", c.expected, ctx.Down(c.a, c.b))
	}
}
