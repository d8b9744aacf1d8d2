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
	"strings"

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/tinfer/types"
)

// Constraint requires the eventual type of Var to be a supertype of Lower and a subtype of
// Upper. Either bound may be the unknown marker.
type Constraint struct {
	Lower types.Type
	Var   *types.Var
	Upper types.Type
}

// NewConstraint builds a constraint on tv. Bounds may not mention tv; occurrences are
// eliminated by taking the greatest closure of the lower bound and the least closure of the
// upper bound with respect to tv.
func NewConstraint(lower types.Type, tv *types.Var, upper types.Type) Constraint {
	c := Constraint{Lower: lower, Var: tv, Upper: upper}
	if !c.IsValid() {
		c = CloseConstraint(c, ElimVars(tv))
	}
	return c
}

// IsValid reports whether neither bound mentions the constrained variable.
func (c Constraint) IsValid() bool {
	return !types.ContainsVar(c.Lower, c.Var) && !types.ContainsVar(c.Upper, c.Var)
}

func (c Constraint) String() string {
	return types.TypeString(c.Lower) + " <: " + c.Var.Name() + " <: " + types.TypeString(c.Upper)
}

var emptyList = immutable.NewList()

// EmptyConstraintSet is a constraint set with no members.
var EmptyConstraintSet = ConstraintSet{emptyList}

// ConstraintSet is a persistent, ordered list of constraints. Appending returns a new set
// which shares structure with the original; sets are never mutated in place.
type ConstraintSet struct {
	l *immutable.List
}

func NewConstraintSet(cs ...Constraint) ConstraintSet {
	b := immutable.NewListBuilder(emptyList)
	for _, c := range cs {
		b.Append(c)
	}
	return ConstraintSet{b.List()}
}

func (s ConstraintSet) imm() *immutable.List {
	if s.l == nil {
		return emptyList
	}
	return s.l
}

func (s ConstraintSet) Len() int             { return s.imm().Len() }
func (s ConstraintSet) Get(i int) Constraint { return s.imm().Get(i).(Constraint) }
func (s ConstraintSet) IsEmpty() bool        { return s.Len() == 0 }

func (s ConstraintSet) Append(c Constraint) ConstraintSet {
	return ConstraintSet{s.imm().Append(c)}
}

// Concat returns the constraints of s followed by the constraints of other.
func (s ConstraintSet) Concat(other ConstraintSet) ConstraintSet {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	b := immutable.NewListBuilder(s.imm())
	other.Range(func(_ int, c Constraint) bool {
		b.Append(c)
		return true
	})
	return ConstraintSet{b.List()}
}

// If f returns false, iteration will be stopped.
func (s ConstraintSet) Range(f func(int, Constraint) bool) {
	iter := s.imm().Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if !f(i, v.(Constraint)) {
			return
		}
	}
}

// For returns the constraints on tv, in order.
func (s ConstraintSet) For(tv *types.Var) []Constraint {
	var out []Constraint
	s.Range(func(_ int, c Constraint) bool {
		if c.Var == tv {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Close returns the closure of every constraint in s with respect to e.
func (s ConstraintSet) Close(e Elim) ConstraintSet {
	b := immutable.NewListBuilder(emptyList)
	s.Range(func(_ int, c Constraint) bool {
		b.Append(CloseConstraint(c, e))
		return true
	})
	return ConstraintSet{b.List()}
}

func (s ConstraintSet) Slice() []Constraint {
	out := make([]Constraint, 0, s.Len())
	s.Range(func(_ int, c Constraint) bool {
		out = append(out, c)
		return true
	})
	return out
}

func (s ConstraintSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	s.Range(func(i int, c Constraint) bool {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
