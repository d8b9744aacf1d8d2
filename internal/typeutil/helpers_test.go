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

	"github.com/davecgh/go-spew/spew"

	. "github.com/wdamron/tinfer/construct"
	"github.com/wdamron/tinfer/internal/corelib"
	"github.com/wdamron/tinfer/types"
)

func newTestContext() (*CommonContext, *corelib.Library) {
	lib := corelib.New()
	ctx := &CommonContext{Hierarchy: lib}
	ctx.Init()
	return ctx, lib
}

var nextTestVarId = 1

func testVar(name string, bound types.Type) *types.Var {
	nextTestVarId++
	return TVar(nextTestVarId, name, bound)
}

func expectType(t *testing.T, label string, expected, actual types.Type) {
	t.Helper()
	if !types.Equal(expected, actual) {
		t.Fatalf("%s: expected %v, found %v", label, expected, actual)
	}
}

func expectConstraints(t *testing.T, cs ConstraintSet, expected ...string) {
	t.Helper()
	actual := cs.Slice()
	if len(actual) != len(expected) {
		t.Fatalf("expected %d constraints, found %d:\n%s", len(expected), len(actual), spew.Sdump(cs.String()))
	}
	for i, c := range actual {
		if c.String() != expected[i] {
			t.Fatalf("constraint %d: expected %s, found %s", i, expected[i], c.String())
		}
	}
}
