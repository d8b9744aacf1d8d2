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

package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/wdamron/tinfer/construct"
	"github.com/wdamron/tinfer/types"
)

func TestEqualUpToRenaming(t *testing.T) {
	X, Y := TVar(1, "X", nil), TVar(2, "Y", nil)
	a := TGeneric([]*types.Var{X}, TFunc(X, X))
	b := TGeneric([]*types.Var{Y}, TFunc(Y, Y))
	if !types.Equal(a, b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	if types.Hash(a) != types.Hash(b) {
		t.Fatalf("expected equal hashes for %v and %v", a, b)
	}
	if types.Equal(TFunc(X, X), TFunc(Y, Y)) {
		t.Fatalf("free variables must be compared by identity")
	}

	Z := TVar(3, "Z", types.Object)
	if types.Equal(a, TGeneric([]*types.Var{Z}, TFunc(Z, Z))) {
		t.Fatalf("type-parameters with different bounds must not be equal")
	}
}

func TestNamedParameterOrder(t *testing.T) {
	named1 := map[string]types.Field{"a": {Type: types.Object}, "b": {Type: types.Null, Required: true}}
	f1 := TFuncNamed(types.Void, nil, named1)
	f2 := TFuncNamed(types.Void, nil, map[string]types.Field{"b": {Type: types.Null, Required: true}, "a": {Type: types.Object}})
	if !types.Equal(f1, f2) || types.Hash(f1) != types.Hash(f2) {
		t.Fatalf("named parameter order must not affect equality")
	}
	if diff := cmp.Diff([]string{"a", "b"}, f1.Named.Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
	f3 := TFuncNamed(types.Void, nil, map[string]types.Field{"a": {Type: types.Object}, "b": {Type: types.Null}})
	if types.Equal(f1, f3) {
		t.Fatalf("required-ness of named parameters must affect equality")
	}
}

func TestTypeString(t *testing.T) {
	List := Class("List", []*types.Var{TVar(100, "E", nil)})
	X := TVar(1, "X", nil)
	B := TVar(2, "B", types.Object)

	cases := []struct {
		t    types.Type
		want string
	}{
		{types.UnknownType, "_"},
		{types.ObjectQ, "Object?"},
		{TNullable(TInterface(List, X)), "List<X>?"},
		{TFutureOr(types.Null), "FutureOr<Null>"},
		{TFuncOpt(types.Void, []types.Type{X}, types.Object), "void Function(X, [Object])"},
		{TGeneric([]*types.Var{B}, TFunc(B, B)), "B Function<B extends Object>(B)"},
		{TFuncNamed(X, []types.Type{X}, map[string]types.Field{"c": {Type: types.Object, Required: true}}), "X Function(X, {required Object c})"},
		{TNullable(TFunc(X)), "(X Function())?"},
		{TRecord(X), "(X,)"},
		{TRecordNamed([]types.Type{X}, map[string]types.Type{"n": types.Null}), "(X, {Null n})"},
	}
	for _, c := range cases {
		if got := types.TypeString(c.t); got != c.want {
			t.Errorf("expected %q, found %q", c.want, got)
		}
	}

	s := types.NewSubstitution([]*types.Var{B, X}, []types.Type{types.Object, types.Null})
	if got := types.SubstitutionString(s, []*types.Var{X}); got != "{X: Null, B: Object}" {
		t.Errorf("unexpected substitution string %q", got)
	}
}

func TestSubstitute(t *testing.T) {
	List := Class("List", []*types.Var{TVar(100, "E", nil)})
	X, Y := TVar(1, "X", nil), TVar(2, "Y", nil)
	s := types.NewSubstitution([]*types.Var{X}, []types.Type{types.Object})

	got := s.Apply(TFunc(TInterface(List, X), Y, TNullable(X)))
	want := TFunc(TInterface(List, types.Object), Y, types.ObjectQ)
	if !types.Equal(got, want) {
		t.Fatalf("expected %v, found %v", want, got)
	}

	// unaffected types are shared:
	unaffected := TInterface(List, Y)
	if s.Apply(unaffected) != unaffected {
		t.Fatalf("expected the input to be returned unchanged")
	}

	// type-parameters shadow the substitution:
	generic := TGeneric([]*types.Var{X}, TFunc(X, Y))
	if s.Apply(generic) != generic {
		t.Fatalf("bound type-parameters must not be substituted")
	}

	// bounds mentioning substituted variables are renamed, not modified:
	Z := TVar(3, "Z", Y)
	bounded := TGeneric([]*types.Var{Z}, TFunc(Z))
	inst := types.NewSubstitution([]*types.Var{Y}, []types.Type{types.Null}).Apply(bounded).(*types.Function)
	if inst.TypeParams[0] == Z || Z.Bound() != types.Type(Y) || inst.TypeParams[0].Bound() != types.Type(types.Null) {
		t.Fatalf("unexpected instantiation %v", inst)
	}
	if got := types.TypeString(bounded.Instantiate([]types.Type{types.Never})); got != "Never Function()" {
		t.Fatalf("unexpected instantiation %q", got)
	}
}

func TestMakeNullable(t *testing.T) {
	X := TVar(1, "X", nil)
	cases := []struct {
		t, want types.Type
	}{
		{types.Never, types.Null},
		{types.Dynamic, types.Dynamic},
		{types.Null, types.Null},
		{types.UnknownType, types.UnknownType},
		{types.ObjectQ, types.ObjectQ},
		{X, &types.Nullable{Elem: X}},
		{TFutureOr(types.ObjectQ), TFutureOr(types.ObjectQ)},
	}
	for _, c := range cases {
		if got := types.MakeNullable(c.t); !types.Equal(got, c.want) {
			t.Errorf("MakeNullable(%v): expected %v, found %v", c.t, c.want, got)
		}
	}
	if !types.IsTop(TFutureOr(types.ObjectQ)) || !types.IsObject(TFutureOr(types.Object)) || !types.IsNull(TNullable(types.Never)) {
		t.Errorf("unexpected classification of top, object or null types")
	}
}

func TestVariance(t *testing.T) {
	if types.Contravariant.Flip() != types.Covariant || types.Covariant.Compose(types.Invariant) != types.Invariant {
		t.Fatalf("unexpected composition")
	}
	if types.Covariant.Meet(types.Contravariant) != types.Invariant || types.Unrelated.Meet(types.Covariant) != types.Covariant {
		t.Fatalf("unexpected meet")
	}
	for _, v := range []types.Variance{types.Unrelated, types.Covariant, types.Contravariant, types.Invariant} {
		if parsed, ok := types.ParseVariance(v.String()); !ok || parsed != v {
			t.Errorf("ParseVariance(%q) = %v, %v", v.String(), parsed, ok)
		}
	}
}

func TestVariables(t *testing.T) {
	X, Y, Z := TVar(1, "X", nil), TVar(2, "Y", nil), TVar(3, "Z", nil)
	fn := TFunc(Y, X, TGeneric([]*types.Var{Z}, TFunc(Z, X)), Y)
	if diff := cmp.Diff([]string{"X", "Y"}, names(types.Variables(fn))); diff != "" {
		t.Fatalf("unexpected free variables (-want +got):\n%s", diff)
	}
}

func names(vars []*types.Var) []string {
	out := make([]string, len(vars))
	for i, tv := range vars {
		out[i] = tv.Name()
	}
	return out
}
