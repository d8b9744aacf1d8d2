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

package construct

import (
	"github.com/wdamron/tinfer/types"
)

// Types

// Create a new type-variable with the given id, name and (optional) bound.
func TVar(id int, name string, bound types.Type) *types.Var {
	tv := types.NewVar(id, name)
	if bound != nil {
		tv.SetBound(bound)
	}
	return tv
}

// The unknown marker: `_`
func TUnknown() types.Type { return types.UnknownType }

// Interface type: `List<int>`
func TInterface(decl *types.Decl, args ...types.Type) *types.Interface {
	return &types.Interface{Decl: decl, Args: args}
}

// Nullable type: `int?`
func TNullable(t types.Type) types.Type { return types.MakeNullable(t) }

// `FutureOr<int>`
func TFutureOr(t types.Type) *types.FutureOr { return &types.FutureOr{Elem: t} }

// `Future<int>`
func TFuture(t types.Type) *types.Interface { return types.NewFuture(t) }

// Function type with required positional parameters: `int Function(String, int)`
func TFunc(ret types.Type, params ...types.Type) *types.Function {
	return &types.Function{Return: ret, Positional: params, Required: len(params)}
}

// Function type with optional positional parameters: `int Function(String, [int])`
func TFuncOpt(ret types.Type, required []types.Type, optional ...types.Type) *types.Function {
	params := make([]types.Type, 0, len(required)+len(optional))
	params = append(append(params, required...), optional...)
	return &types.Function{Return: ret, Positional: params, Required: len(required)}
}

// Function type with named parameters: `int Function(String, {required int n})`
func TFuncNamed(ret types.Type, positional []types.Type, named map[string]types.Field) *types.Function {
	b := types.NewFieldsBuilder()
	for name, f := range named {
		b.Set(name, f)
	}
	return &types.Function{Return: ret, Positional: positional, Required: len(positional), Named: b.Build()}
}

// Generic function type: `T Function<T>(T)`
func TGeneric(params []*types.Var, fn *types.Function) *types.Function {
	return &types.Function{
		Return:     fn.Return,
		Positional: fn.Positional,
		Required:   fn.Required,
		Named:      fn.Named,
		TypeParams: params,
	}
}

// Record type with positional fields: `(int, String)`
func TRecord(positional ...types.Type) *types.Record {
	return &types.Record{Positional: positional}
}

// Record type with named fields: `(int, {String name})`
func TRecordNamed(positional []types.Type, named map[string]types.Type) *types.Record {
	return &types.Record{Positional: positional, Named: types.NewFlatFields(named)}
}

// Declarations

// Declare a class with the given type-parameters (all covariant) and direct supertypes.
// The first supertype is used as the superclass.
func Class(name string, params []*types.Var, supers ...*types.Interface) *types.Decl {
	d := &types.Decl{Name: name, TypeParams: params}
	if len(supers) > 0 {
		d.Superclass, d.Interfaces = supers[0], supers[1:]
	}
	return d
}

// Declare an interface with explicitly-declared variances and implemented interfaces.
func Interface(name string, params []*types.Var, variances []types.Variance, supers ...*types.Interface) *types.Decl {
	return &types.Decl{Name: name, TypeParams: params, Variances: variances, Interfaces: supers}
}
