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

// Package ast declares the syntax of type expressions and class declarations, as written
// in scenario files and on the command line. Names are unresolved; resolution against a
// type-environment produces types.Type values.
package ast

// TypeExpr is the base for all type expressions.
type TypeExpr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Offset of the expression within its source text.
	Pos() int
}

var (
	_ TypeExpr = (*Hole)(nil)
	_ TypeExpr = (*Name)(nil)
	_ TypeExpr = (*Nullable)(nil)
	_ TypeExpr = (*FutureOr)(nil)
	_ TypeExpr = (*Func)(nil)
	_ TypeExpr = (*Record)(nil)
)

// Unknown marker: `_`
type Hole struct {
	Offset int
}

// "Hole"
func (e *Hole) ExprName() string { return "Hole" }

func (e *Hole) Pos() int { return e.Offset }

// Named type, type-variable or primitive: `List<int>`, `T`, `Object`
type Name struct {
	Name   string
	Args   []TypeExpr
	Offset int
}

// "Name"
func (e *Name) ExprName() string { return "Name" }

func (e *Name) Pos() int { return e.Offset }

// Nullable type: `T?`
type Nullable struct {
	Elem TypeExpr
}

// "Nullable"
func (e *Nullable) ExprName() string { return "Nullable" }

func (e *Nullable) Pos() int { return e.Elem.Pos() }

// `FutureOr<T>`
type FutureOr struct {
	Elem   TypeExpr
	Offset int
}

// "FutureOr"
func (e *FutureOr) ExprName() string { return "FutureOr" }

func (e *FutureOr) Pos() int { return e.Offset }

// Type-parameter of a generic function or class: `X extends B`
type TypeParam struct {
	Name  string
	Bound TypeExpr
}

// Named parameter or record field: `required T name`
type NamedParam struct {
	Name     string
	Type     TypeExpr
	Required bool
}

// Function type: `R Function<X extends B>(A, [B], {C c})`
type Func struct {
	Return     TypeExpr
	TypeParams []TypeParam
	Positional []TypeExpr
	// Number of required positional parameters
	Required int
	Named    []NamedParam
	Offset   int
}

// "Func"
func (e *Func) ExprName() string { return "Func" }

func (e *Func) Pos() int { return e.Offset }

// Record type: `(A, B, {C c})`
type Record struct {
	Positional []TypeExpr
	Named      []NamedParam
	Offset     int
}

// "Record"
func (e *Record) ExprName() string { return "Record" }

func (e *Record) Pos() int { return e.Offset }

// Class declaration
type ClassDecl struct {
	Name       string
	TypeParams []TypeParam
	// Declared variance of each type-parameter (`out`, `in`, `inout`); missing entries are covariant
	Variances  []string
	Superclass TypeExpr
	Interfaces []TypeExpr
	Mixins     []TypeExpr
	Members    []Member
}

// Member signature of a class
type Member struct {
	Name      string
	Signature *Func
}

// Supertypes returns the superclass, implemented interfaces and mixins of d, in order.
func (d *ClassDecl) Supertypes() []TypeExpr {
	supers := make([]TypeExpr, 0, 1+len(d.Interfaces)+len(d.Mixins))
	if d.Superclass != nil {
		supers = append(supers, d.Superclass)
	}
	supers = append(supers, d.Interfaces...)
	return append(supers, d.Mixins...)
}
