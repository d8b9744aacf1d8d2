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
	"github.com/wdamron/tinfer/types"
)

// Occurrences counts the positions at which a term occurs within a type, by variance.
type Occurrences struct {
	Covariant     int
	Contravariant int
	Invariant     int
}

func (o Occurrences) Total() int { return o.Covariant + o.Contravariant + o.Invariant }

// Variance combines all occurrences: Unrelated when there are none, Covariant or
// Contravariant when every occurrence agrees, Invariant otherwise.
func (o Occurrences) Variance() types.Variance {
	v := types.Unrelated
	if o.Covariant > 0 {
		v = v.Meet(types.Covariant)
	}
	if o.Contravariant > 0 {
		v = v.Meet(types.Contravariant)
	}
	if o.Invariant > 0 {
		v = types.Invariant
	}
	return v
}

func (o *Occurrences) add(v types.Variance) {
	switch v {
	case types.Covariant:
		o.Covariant++
	case types.Contravariant:
		o.Contravariant++
	case types.Invariant:
		o.Invariant++
	}
}

// FindOccurrences classifies every occurrence of s inside t.
func FindOccurrences(s, t types.Type) Occurrences {
	var o Occurrences
	occurrences(t, func(t types.Type) bool { return types.Equal(s, t) }, types.Covariant, &o)
	return o
}

// Occurrences classifies every occurrence of an eliminated term inside t.
func (e Elim) Occurrences(t types.Type) Occurrences {
	var o Occurrences
	occurrences(t, e.matches, types.Covariant, &o)
	return o
}

// VarianceIn returns the combined variance of tv's occurrences in t.
func VarianceIn(tv *types.Var, t types.Type) types.Variance {
	return FindOccurrences(tv, t).Variance()
}

func occurrences(t types.Type, pred func(types.Type) bool, v types.Variance, o *Occurrences) {
	if pred(t) {
		o.add(v)
		return
	}
	switch t := t.(type) {
	case *types.Nullable:
		occurrences(t.Elem, pred, v, o)

	case *types.FutureOr:
		occurrences(t.Elem, pred, v, o)

	case *types.Interface:
		for i, arg := range t.Args {
			occurrences(arg, pred, v.Compose(t.Decl.Variance(i)), o)
		}

	case *types.Function:
		for _, tv := range t.TypeParams {
			if b := tv.Bound(); b != nil {
				occurrences(b, pred, types.Invariant, o)
			}
		}
		for _, p := range t.Positional {
			occurrences(p, pred, v.Flip(), o)
		}
		t.Named.Range(func(_ string, f types.Field) bool {
			occurrences(f.Type, pred, v.Flip(), o)
			return true
		})
		occurrences(t.Return, pred, v, o)

	case *types.Record:
		for _, p := range t.Positional {
			occurrences(p, pred, v, o)
		}
		t.Named.Range(func(_ string, f types.Field) bool {
			occurrences(f.Type, pred, v, o)
			return true
		})
	}
}
