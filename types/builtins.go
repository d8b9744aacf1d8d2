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

package types

// Built-in declarations which the matching rules refer to directly.
var (
	// FutureDecl is `Future<T>`, covariant in T.
	FutureDecl = newBuiltin("Future", "T")
	// FunctionDecl is the nominal supertype of every function type.
	FunctionDecl = newBuiltin("Function")
	// RecordDecl is the nominal supertype of every record type.
	RecordDecl = newBuiltin("Record")
)

// Negative ids are reserved for built-in type parameters.
func newBuiltin(name string, params ...string) *Decl {
	d := &Decl{Name: name, builtin: true}
	for i, p := range params {
		d.TypeParams = append(d.TypeParams, NewVar(-1-i, p))
	}
	return d
}

// NewFuture returns `Future<t>`.
func NewFuture(t Type) *Interface { return &Interface{Decl: FutureDecl, Args: []Type{t}} }

// FunctionType is the interface type `Function`.
var FunctionType = &Interface{Decl: FunctionDecl}

// RecordType is the interface type `Record`.
var RecordType = &Interface{Decl: RecordDecl}

// IsFuture reports whether t is `Future<T>`, returning T.
func IsFuture(t Type) (Type, bool) {
	if it, ok := t.(*Interface); ok && it.Decl == FutureDecl && len(it.Args) == 1 {
		return it.Args[0], true
	}
	return nil, false
}
