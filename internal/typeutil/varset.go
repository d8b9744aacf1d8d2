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
	set "github.com/hashicorp/go-set/v2"

	"github.com/wdamron/tinfer/types"
)

// VarSet is an immutable set of type-variables, such as the variables being inferred.
type VarSet struct {
	s *set.Set[*types.Var]
}

func NewVarSet(vars ...*types.Var) VarSet {
	return VarSet{set.From(vars)}
}

func (vs VarSet) Len() int {
	if vs.s == nil {
		return 0
	}
	return vs.s.Size()
}

func (vs VarSet) Contains(tv *types.Var) bool {
	return vs.s != nil && vs.s.Contains(tv)
}

// Mentions reports whether any member of vs occurs free in t.
func (vs VarSet) Mentions(t types.Type) bool {
	if vs.Len() == 0 {
		return false
	}
	return types.Any(t, func(t types.Type) bool {
		tv, ok := t.(*types.Var)
		return ok && vs.s.Contains(tv)
	})
}

// Elim is a set of terms to eliminate from a type: a set of type-variables, optionally
// together with the unknown marker.
type Elim struct {
	Vars    VarSet
	Unknown bool
}

// ElimUnknown eliminates only the unknown marker.
var ElimUnknown = Elim{Unknown: true}

// ElimVars eliminates the given type-variables.
func ElimVars(vars ...*types.Var) Elim { return Elim{Vars: NewVarSet(vars...)} }

func (e Elim) matches(t types.Type) bool {
	switch t := t.(type) {
	case types.Unknown:
		return e.Unknown
	case *types.Var:
		return e.Vars.Contains(t)
	}
	return false
}

// Mentions reports whether any eliminated term occurs in t.
func (e Elim) Mentions(t types.Type) bool {
	if !e.Unknown && e.Vars.Len() == 0 {
		return false
	}
	return types.Any(t, e.matches)
}
