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

// Substitution maps type-variables to types (or type schemas).
type Substitution map[*Var]Type

// NewSubstitution zips vars with ts. Extra entries in either slice are ignored.
func NewSubstitution(vars []*Var, ts []Type) Substitution {
	s := make(Substitution, len(vars))
	for i, tv := range vars {
		if i < len(ts) {
			s[tv] = ts[i]
		}
	}
	return s
}

// Apply substitutes s into t. Components of t which are unaffected are shared, not copied.
func (s Substitution) Apply(t Type) Type {
	if len(s) == 0 {
		return t
	}
	return Substitute(t, func(tv *Var) (Type, bool) {
		r, ok := s[tv]
		return r, ok
	})
}

// Substitute replaces each free type-variable of t for which lookup succeeds.
//
// Type parameters of generic function types are never replaced; when a substitution
// changes their bounds, they are renamed to fresh variables so the input is not modified.
func Substitute(t Type, lookup func(*Var) (Type, bool)) Type {
	switch t := t.(type) {
	case *Var:
		if r, ok := lookup(t); ok {
			return r
		}
		return t

	case *Nullable:
		elem := Substitute(t.Elem, lookup)
		if elem == t.Elem {
			return t
		}
		return MakeNullable(elem)

	case *FutureOr:
		elem := Substitute(t.Elem, lookup)
		if elem == t.Elem {
			return t
		}
		return &FutureOr{Elem: elem}

	case *Interface:
		args, changed := substituteList(t.Args, lookup)
		if !changed {
			return t
		}
		return &Interface{Decl: t.Decl, Args: args}

	case *Function:
		return substituteFunction(t, lookup)

	case *Record:
		positional, changed := substituteList(t.Positional, lookup)
		named, namedChanged := substituteFields(t.Named, lookup)
		if !changed && !namedChanged {
			return t
		}
		return &Record{Positional: positional, Named: named}
	}
	return t
}

func substituteFunction(t *Function, lookup func(*Var) (Type, bool)) Type {
	params, renamed := t.TypeParams, false
	if len(params) > 0 {
		// binders shadow outer substitutions:
		outer := lookup
		lookup = func(tv *Var) (Type, bool) {
			for _, p := range t.TypeParams {
				if p == tv {
					return nil, false
				}
			}
			return outer(tv)
		}
		boundsChanged := false
		bounds := make([]Type, len(params))
		for i, tv := range params {
			if b := tv.Bound(); b != nil {
				bounds[i] = Substitute(b, lookup)
				boundsChanged = boundsChanged || bounds[i] != b
			}
		}
		if boundsChanged {
			fresh := make([]*Var, len(params))
			rename := make(Substitution, len(params))
			for i, tv := range params {
				fresh[i] = NewVar(tv.Id(), tv.Name())
				rename[tv] = fresh[i]
			}
			for i, tv := range fresh {
				if bounds[i] != nil {
					tv.SetBound(rename.Apply(bounds[i]))
				}
			}
			inner := lookup
			lookup = func(tv *Var) (Type, bool) {
				if r, ok := rename[tv]; ok {
					return r, true
				}
				return inner(tv)
			}
			params, renamed = fresh, true
		}
	}
	positional, changed := substituteList(t.Positional, lookup)
	named, namedChanged := substituteFields(t.Named, lookup)
	ret := Substitute(t.Return, lookup)
	if !renamed && !changed && !namedChanged && ret == t.Return {
		return t
	}
	return &Function{Return: ret, Positional: positional, Required: t.Required, Named: named, TypeParams: params}
}

func substituteList(ts []Type, lookup func(*Var) (Type, bool)) ([]Type, bool) {
	var out []Type
	for i, t := range ts {
		r := Substitute(t, lookup)
		if r != t && out == nil {
			out = make([]Type, len(ts))
			copy(out, ts[:i])
		}
		if out != nil {
			out[i] = r
		}
	}
	if out == nil {
		return ts, false
	}
	return out, true
}

func substituteFields(m Fields, lookup func(*Var) (Type, bool)) (Fields, bool) {
	changed := false
	m.Range(func(_ string, f Field) bool {
		changed = Substitute(f.Type, lookup) != f.Type
		return !changed
	})
	if !changed {
		return m, false
	}
	return m.Map(func(t Type) Type { return Substitute(t, lookup) }), true
}

// Instantiate substitutes args for the type-parameters of a generic function, returning
// the non-generic function type.
func (t *Function) Instantiate(args []Type) *Function {
	s := NewSubstitution(t.TypeParams, args)
	positional := make([]Type, len(t.Positional))
	for i, p := range t.Positional {
		positional[i] = s.Apply(p)
	}
	return &Function{
		Return:     s.Apply(t.Return),
		Positional: positional,
		Required:   t.Required,
		Named:      t.Named.Map(s.Apply),
	}
}
