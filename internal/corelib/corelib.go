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

// Package corelib declares a small core class library (numbers, strings, collections and
// a few classes with declared variance) used by tests, fixtures and the command-line tool.
package corelib

import (
	"github.com/wdamron/tinfer/construct"
	"github.com/wdamron/tinfer/types"
)

// BaseVarId is the first id assigned to class type-parameters declared by the library.
const BaseVarId = 1 << 20

// Library holds the declarations of the core classes.
type Library struct {
	Num, Int, Double, String, Bool *types.Decl
	Comparable, Iterable, List     *types.Decl
	Map, Sink, Cell                *types.Decl

	decls  map[string]*types.Decl
	nextId int
}

func (lib *Library) newVar(name string) *types.Var {
	tv := construct.TVar(lib.nextId, name, nil)
	lib.nextId++
	return tv
}

func (lib *Library) add(d *types.Decl) *types.Decl {
	lib.decls[d.Name] = d
	return d
}

// New declares a fresh copy of the core library.
func New() *Library {
	lib := &Library{decls: make(map[string]*types.Decl, 16), nextId: BaseVarId}

	T := lib.newVar("T")
	lib.Comparable = lib.add(construct.Class("Comparable", []*types.Var{T}))

	lib.Num = lib.add(construct.Interface("num", nil, nil))
	lib.Num.Interfaces = []*types.Interface{construct.TInterface(lib.Comparable, lib.Num.Self())}
	lib.Int = lib.add(construct.Class("int", nil, lib.Num.Self()))
	lib.Double = lib.add(construct.Class("double", nil, lib.Num.Self()))

	lib.String = lib.add(construct.Interface("String", nil, nil))
	lib.String.Interfaces = []*types.Interface{construct.TInterface(lib.Comparable, lib.String.Self())}
	lib.Bool = lib.add(construct.Class("bool", nil))

	E := lib.newVar("E")
	lib.Iterable = lib.add(construct.Class("Iterable", []*types.Var{E}))
	LE := lib.newVar("E")
	lib.List = lib.add(construct.Class("List", []*types.Var{LE}, construct.TInterface(lib.Iterable, LE)))

	K, V := lib.newVar("K"), lib.newVar("V")
	lib.Map = lib.add(construct.Class("Map", []*types.Var{K, V}))

	ST := lib.newVar("T")
	lib.Sink = lib.add(construct.Interface("Sink", []*types.Var{ST}, []types.Variance{types.Contravariant}))
	CT := lib.newVar("T")
	lib.Cell = lib.add(construct.Interface("Cell", []*types.Var{CT}, []types.Variance{types.Invariant}))

	lib.Iterable.Members = map[string]*types.Function{
		"fold": foldSignature(lib, E),
	}
	return lib
}

// foldSignature builds `T Function<T>(T, T Function(T, E))`, a member of Iterable<E>.
func foldSignature(lib *Library, E *types.Var) *types.Function {
	T := lib.newVar("T")
	combine := construct.TFunc(T, T, E)
	return construct.TGeneric([]*types.Var{T}, construct.TFunc(T, T, combine))
}

// Lookup returns the declaration with the given name.
func (lib *Library) Lookup(name string) (*types.Decl, bool) {
	d, ok := lib.decls[name]
	return d, ok
}

// Decls returns every declaration in the library, keyed by name.
func (lib *Library) Decls() map[string]*types.Decl { return lib.decls }

// Superinterfaces returns the declared supertypes of d.
func (lib *Library) Superinterfaces(d *types.Decl) []*types.Interface { return d.Supertypes() }

// MemberSignature returns the signature of a member declared by d.
func (lib *Library) MemberSignature(d *types.Decl, name string) (*types.Function, bool) {
	fn, ok := d.Members[name]
	return fn, ok
}

// Type helpers for the non-generic classes:

func (lib *Library) IntType() *types.Interface    { return lib.Int.Self() }
func (lib *Library) NumType() *types.Interface    { return lib.Num.Self() }
func (lib *Library) DoubleType() *types.Interface { return lib.Double.Self() }
func (lib *Library) StringType() *types.Interface { return lib.String.Self() }
func (lib *Library) BoolType() *types.Interface   { return lib.Bool.Self() }

func (lib *Library) ListOf(elem types.Type) *types.Interface     { return lib.List.Instantiate(elem) }
func (lib *Library) IterableOf(elem types.Type) *types.Interface { return lib.Iterable.Instantiate(elem) }
func (lib *Library) ComparableOf(t types.Type) *types.Interface  { return lib.Comparable.Instantiate(t) }
func (lib *Library) MapOf(k, v types.Type) *types.Interface      { return lib.Map.Instantiate(k, v) }
func (lib *Library) SinkOf(t types.Type) *types.Interface        { return lib.Sink.Instantiate(t) }
func (lib *Library) CellOf(t types.Type) *types.Interface        { return lib.Cell.Instantiate(t) }
