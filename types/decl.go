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

// Decl is a nominal (class/interface) declaration supplied by the declaration resolver.
//
// Supertypes are expressed in terms of the declaration's own type parameters. A Decl
// must not be modified after it has been shared with an inference context.
type Decl struct {
	Name       string
	TypeParams []*Var
	// Variances holds the declared variance of each type parameter; a nil slice means
	// all parameters are covariant.
	Variances  []Variance
	Superclass *Interface
	Interfaces []*Interface
	Mixins     []*Interface
	// Members maps member names to their (possibly generic) function signatures.
	Members map[string]*Function
	builtin bool
}

// Variance returns the declared variance of the i'th type parameter.
func (d *Decl) Variance(i int) Variance {
	if i < len(d.Variances) {
		return d.Variances[i]
	}
	return Covariant
}

// Arity returns the number of declared type parameters.
func (d *Decl) Arity() int { return len(d.TypeParams) }

// Supertypes returns the direct supertypes in lookup order: superclass, then
// implemented interfaces in declaration order, then mixins in declaration order.
func (d *Decl) Supertypes() []*Interface {
	n := len(d.Interfaces) + len(d.Mixins)
	if d.Superclass != nil {
		n++
	}
	supers := make([]*Interface, 0, n)
	if d.Superclass != nil {
		supers = append(supers, d.Superclass)
	}
	supers = append(supers, d.Interfaces...)
	return append(supers, d.Mixins...)
}

// IsBuiltin reports whether d is one of the built-in declarations (Future, Function, Record).
func (d *Decl) IsBuiltin() bool { return d.builtin }

// Instantiate returns the interface type for d applied to args.
func (d *Decl) Instantiate(args ...Type) *Interface {
	return &Interface{Decl: d, Args: args}
}

// Self returns d applied to its own type parameters.
func (d *Decl) Self() *Interface {
	args := make([]Type, len(d.TypeParams))
	for i, tv := range d.TypeParams {
		args[i] = tv
	}
	return &Interface{Decl: d, Args: args}
}

// Substitution returns the mapping from d's type parameters to the arguments of t.
func (t *Interface) Substitution() Substitution {
	s := make(Substitution, len(t.Args))
	for i, tv := range t.Decl.TypeParams {
		if i < len(t.Args) {
			s[tv] = t.Args[i]
		}
	}
	return s
}
