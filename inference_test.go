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

package tinfer

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/tinfer/construct"
	"github.com/wdamron/tinfer/internal/corelib"
	"github.com/wdamron/tinfer/types"
)

func newTestEnv() (*TypeEnv, *corelib.Library) {
	return NewTypeEnv(nil), corelib.New()
}

// T foldRight<T>(T base, T Function(String, T) combine)
func foldRightSignature(env *TypeEnv, lib *corelib.Library) (*types.Function, *types.Var) {
	T := env.NewVar("T")
	combine := TFunc(T, lib.StringType(), T)
	return TGeneric([]*types.Var{T}, TFunc(T, T, combine)), T
}

func TestInferFoldRight(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	sig, T := foldRightSignature(env, lib)
	args := []types.Type{lib.IntType(), TFunc(lib.IntType(), lib.StringType(), lib.IntType())}

	// Infer twice to ensure state is properly reset between calls:
	for i := 0; i < 2; i++ {
		s, err := ctx.Infer(sig, args, types.UnknownType)
		require.NoError(t, err)
		assert.Equal(t, "{T: int}", types.SubstitutionString(s, sig.TypeParams))
		assert.True(t, types.Equal(lib.IntType(), s[T]))
	}
}

func TestInferUsesContext(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	T := env.NewVar("T")
	id := TGeneric([]*types.Var{T}, TFunc(T, T))

	s, err := ctx.Infer(id, []types.Type{lib.IntType()}, lib.NumType())
	require.NoError(t, err)
	assert.Equal(t, "num", types.TypeString(s[T]))

	s, err = ctx.Infer(id, []types.Type{lib.IntType()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "int", types.TypeString(s[T]))

	// a context which cannot match the return type is ignored:
	s, err = ctx.Infer(TGeneric([]*types.Var{T}, TFunc(lib.ListOf(T), T)), []types.Type{lib.IntType()}, lib.StringType())
	require.NoError(t, err)
	assert.Equal(t, "int", types.TypeString(s[T]))
}

func TestInferStagedBounds(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	XY := env.NewVars("X", "Y")
	X, Y := XY[0], XY[1]
	X.SetBound(lib.ListOf(Y))
	Y.SetBound(lib.NumType())
	sig := TGeneric(XY, TFunc(types.Void, X))

	s, err := ctx.Infer(sig, []types.Type{lib.ListOf(lib.IntType())}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{X: List<int>, Y: num}", types.SubstitutionString(s, XY))
}

func TestInferBoundOnLaterParameter(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	XY := env.NewVars("X", "Y")
	X, Y := XY[0], XY[1]
	X.SetBound(Y)
	Y.SetBound(lib.NumType())

	s, err := ctx.Infer(TGeneric(XY, TFunc(types.Void)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "{X: num, Y: num}", types.SubstitutionString(s, XY))

	YX := []*types.Var{Y, X}
	s, err = ctx.Infer(TGeneric(YX, TFunc(types.Void)), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "{Y: num, X: num}", types.SubstitutionString(s, YX))

	s, err = ctx.Infer(TGeneric(XY, TFunc(types.Void, Y)), []types.Type{lib.IntType()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{X: int, Y: int}", types.SubstitutionString(s, XY))
}

func TestInferFBoundedParameter(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	T := env.NewVar("T")
	T.SetBound(lib.ComparableOf(T))
	maxOf := TGeneric([]*types.Var{T}, TFunc(T, T, T))

	s, err := ctx.Infer(maxOf, []types.Type{lib.NumType(), lib.NumType()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "num", types.TypeString(s[T]))

	// int implements Comparable<num>, which is not a subtype of Comparable<int>:
	_, err = ctx.Infer(maxOf, []types.Type{lib.IntType(), lib.IntType()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsatisfiedBound), "unexpected error: %v", err)
}

func TestInferFailures(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)

	T := env.NewVar("T")
	T.SetBound(lib.NumType())
	bounded := TGeneric([]*types.Var{T}, TFunc(T, T))
	_, err := ctx.Infer(bounded, []types.Type{lib.StringType()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverConstrained), "unexpected error: %v", err)
	var failure *InferenceFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, T, failure.Var)
	assert.Equal(t, "String", types.TypeString(failure.Lower))
	assert.Equal(t, "num", types.TypeString(failure.Upper))

	E := env.NewVar("E")
	listParam := TGeneric([]*types.Var{E}, TFunc(types.Void, lib.ListOf(E)))
	_, err = ctx.Infer(listParam, []types.Type{lib.StringType()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch), "unexpected error: %v", err)
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 0, failure.ArgIndex)

	_, err = ctx.Infer(listParam, []types.Type{lib.ListOf(lib.IntType()), lib.IntType()}, nil)
	assert.True(t, errors.Is(err, ErrMalformed), "unexpected error: %v", err)

	_, err = ctx.Infer(listParam, []types.Type{lib.Map.Instantiate(lib.IntType())}, nil)
	assert.True(t, errors.Is(err, ErrMalformed), "unexpected error: %v", err)

	_, err = ctx.Infer(nil, nil, nil)
	assert.True(t, errors.Is(err, ErrMalformed), "unexpected error: %v", err)

	XY := env.NewVars("X", "Y")
	X, Y := XY[0], XY[1]
	X.SetBound(Y)
	Y.SetBound(lib.NumType())
	_, err = ctx.Infer(TGeneric(XY, TFunc(types.Void, X, Y)), []types.Type{lib.StringType(), lib.IntType()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsatisfiedBound), "unexpected error: %v", err)
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, X, failure.Var)
	assert.Equal(t, "int", types.TypeString(failure.Bound))

	Y.SetBound(X)
	_, err = ctx.Infer(TGeneric(XY, TFunc(types.Void, X, Y)), []types.Type{lib.IntType(), lib.IntType()}, nil)
	assert.True(t, errors.Is(err, ErrMalformed), "unexpected error: %v", err)
}

func TestInferNullableAndFutureOr(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	T := env.NewVar("T")

	s, err := ctx.Infer(TGeneric([]*types.Var{T}, TFunc(T, TNullable(T))), []types.Type{TNullable(lib.IntType())}, nil)
	require.NoError(t, err)
	assert.Equal(t, "int", types.TypeString(s[T]))

	s, err = ctx.Infer(TGeneric([]*types.Var{T}, TFunc(T, TFutureOr(T))), []types.Type{TFuture(lib.IntType())}, nil)
	require.NoError(t, err)
	assert.Equal(t, "int", types.TypeString(s[T]))

	s, err = ctx.Infer(TGeneric([]*types.Var{T}, TFunc(T, T, T)), []types.Type{lib.IntType(), types.Null}, nil)
	require.NoError(t, err)
	assert.Equal(t, "int?", types.TypeString(s[T]))
}

func TestInferGenericFunctionArgument(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	R := env.NewVar("R")
	S := env.NewVar("S")
	// R apply<R>(R Function<S>(S) f)
	sig := TGeneric([]*types.Var{R}, TFunc(R, TGeneric([]*types.Var{S}, TFunc(R, S))))
	U := env.NewVar("U")
	arg := TGeneric([]*types.Var{U}, TFunc(lib.IntType(), U))

	s, err := ctx.Infer(sig, []types.Type{arg}, nil)
	require.NoError(t, err)
	assert.Equal(t, "int", types.TypeString(s[R]))
}

func TestInferMember(t *testing.T) {
	_, lib := newTestEnv()
	ctx := NewContext(lib)
	combine := TFunc(lib.StringType(), lib.StringType(), lib.IntType())

	sig, s, err := ctx.InferMember(lib.ListOf(lib.IntType()), "fold", []types.Type{lib.StringType(), combine}, nil)
	require.NoError(t, err)
	assert.Equal(t, "T Function<T>(T, T Function(T, int))", types.TypeString(sig))
	assert.Equal(t, "String", types.TypeString(s[sig.TypeParams[0]]))

	_, _, err = ctx.InferMember(lib.ListOf(lib.IntType()), "missing", nil, nil)
	assert.True(t, errors.Is(err, ErrMalformed), "unexpected error: %v", err)
}

func TestPartialSolve(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	KV := env.NewVars("K", "V")
	sig := TGeneric(KV, TFunc(lib.MapOf(KV[0], KV[1])))

	partial, err := ctx.PartialSolve(sig, lib.MapOf(lib.StringType(), types.UnknownType))
	require.NoError(t, err)
	require.Len(t, partial, 2)
	assert.Equal(t, "String", types.TypeString(partial[0]))
	assert.Equal(t, "_", types.TypeString(partial[1]))
}

func TestMatchAndBounds(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)

	cs, ok := ctx.Match(lib.ListOf(lib.IntType()), lib.ListOf(lib.NumType()))
	require.True(t, ok)
	assert.Equal(t, 0, cs.Len())

	X := env.NewVar("X")
	cs, ok = ctx.Match(lib.ListOf(X), lib.ListOf(lib.NumType()), X)
	require.True(t, ok)
	assert.Equal(t, "{_ <: X <: num}", cs.String())
	assert.Equal(t, "num", types.TypeString(ctx.GroundedSolve(cs, X)))

	S1 := lib.StringType()
	cs, ok = ctx.Match(TFunc(lib.IntType(), X), TFunc(lib.NumType(), S1), X)
	require.True(t, ok)
	assert.Equal(t, "{String <: X <: _}", cs.String())

	assert.Equal(t, "num", types.TypeString(ctx.UpperBound(lib.IntType(), lib.DoubleType())))
	assert.Equal(t, "int", types.TypeString(ctx.LowerBound(lib.IntType(), lib.NumType())))
	assert.True(t, ctx.IsSubtype(lib.IntType(), lib.NumType()))

	assert.Equal(t, "List<Never>", types.TypeString(LeastClosure(lib.ListOf(X), ElimVars(X))))
	assert.Equal(t, "List<Object?>", types.TypeString(GreatestClosure(lib.ListOf(types.UnknownType), ElimUnknown)))

	lower, upper := ctx.Merge(NewConstraintSet(
		Constraint{Lower: lib.IntType(), Var: X, Upper: types.UnknownType},
		Constraint{Lower: lib.DoubleType(), Var: X, Upper: types.UnknownType},
	), X)
	assert.Equal(t, "num", types.TypeString(lower))
	assert.Equal(t, "_", types.TypeString(upper))
}

func TestTracer(t *testing.T) {
	env, lib := newTestEnv()
	ctx := NewContext(lib)
	var lines []string
	ctx.SetTracer(TracerFunc(func(format string, args ...interface{}) {
		lines = append(lines, format)
	}))
	sig, _ := foldRightSignature(env, lib)
	_, err := ctx.Infer(sig, []types.Type{lib.IntType(), TFunc(lib.IntType(), lib.StringType(), lib.IntType())}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
	assert.Contains(t, lines, "solution: %s")
}

func TestConcurrentContexts(t *testing.T) {
	env, lib := newTestEnv()
	sig, T := foldRightSignature(env, lib)
	args := []types.Type{lib.IntType(), TFunc(lib.IntType(), lib.StringType(), lib.IntType())}

	var wg sync.WaitGroup
	results := make([]types.Type, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := NewContext(lib)
			for n := 0; n < 50; n++ {
				s, err := ctx.Infer(sig, args, nil)
				if err != nil {
					errs[i] = err
					return
				}
				results[i] = s[T]
			}
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "int", types.TypeString(results[i]))
	}
}
