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

// Type is the base interface for all types and type schemas.
//
// A type schema is a type which may contain the unknown marker (see Unknown). A schema
// without unknown leaves is a type. Types are immutable once constructed and may be
// shared across inference episodes and goroutines.
type Type interface {
	TypeName() string
}

func (t Prim) TypeName() string       { return "Prim" }
func (t Unknown) TypeName() string    { return "Unknown" }
func (t *Nullable) TypeName() string  { return "Nullable" }
func (t *FutureOr) TypeName() string  { return "FutureOr" }
func (t *Interface) TypeName() string { return "Interface" }
func (t *Function) TypeName() string  { return "Function" }
func (t *Record) TypeName() string    { return "Record" }
func (t *Var) TypeName() string       { return "Var" }

// Primitive type marker: `dynamic`, `void`, `Never`, `Object` or `Null`
type Prim uint8

const (
	Dynamic Prim = iota
	Void
	Never
	Object
	Null
)

// Unknown is the schema hole `_`, standing for an as-yet-undetermined type.
type Unknown struct{}

// Nullable type: `T?`
type Nullable struct {
	Elem Type
}

// Union of a type and its future: `FutureOr<T>`
type FutureOr struct {
	Elem Type
}

// Interface type: `List<int>`
type Interface struct {
	Decl *Decl
	Args []Type
}

// Function type: `R Function<X extends B>(A1, [A2], {A3 name})`
//
// Positional holds required and optional positional parameters; the first Required
// of them are required. Named parameters are kept in canonical (sorted) order.
type Function struct {
	Return     Type
	Positional []Type
	Required   int
	Named      Fields
	TypeParams []*Var
}

// Record type: `(A, B, {C name})`
type Record struct {
	Positional []Type
	Named      Fields
}

// IsGeneric reports whether the function type declares its own type parameters.
func (t *Function) IsGeneric() bool { return len(t.TypeParams) > 0 }

// Optional returns the number of optional positional parameters.
func (t *Function) Optional() int { return len(t.Positional) - t.Required }

// Common singletons:
var (
	UnknownType Type = Unknown{}
	// ObjectQ is the canonical top type `Object?`.
	ObjectQ Type = &Nullable{Elem: Object}
)

// IsTop reports whether t is a top type: `dynamic`, `void`, `Object?`, `T?` for a top T,
// or `FutureOr<T>` for a top T.
func IsTop(t Type) bool {
	switch t := t.(type) {
	case Prim:
		return t == Dynamic || t == Void
	case *Nullable:
		return t.Elem == Object || IsTop(t.Elem)
	case *FutureOr:
		return IsTop(t.Elem)
	}
	return false
}

// IsObject reports whether t is `Object` or `FutureOr<Object>` (nested).
func IsObject(t Type) bool {
	switch t := t.(type) {
	case Prim:
		return t == Object
	case *FutureOr:
		return IsObject(t.Elem)
	}
	return false
}

// IsBottom reports whether t is `Never`, or a type variable bounded by a bottom type.
func IsBottom(t Type) bool {
	switch t := t.(type) {
	case Prim:
		return t == Never
	case *Var:
		if b := t.Bound(); b != nil {
			return IsBottom(b)
		}
	}
	return false
}

// IsNull reports whether t is `Null` or `Never?`.
func IsNull(t Type) bool {
	switch t := t.(type) {
	case Prim:
		return t == Null
	case *Nullable:
		return IsBottom(t.Elem)
	}
	return false
}

// MakeNullable returns `t?`, normalizing trivial cases: `T??` is `T?`, top types and
// `Null` are already nullable, and `Never?` is `Null`.
func MakeNullable(t Type) Type {
	switch tt := t.(type) {
	case Unknown:
		return t
	case *Nullable:
		return t
	case Prim:
		switch tt {
		case Dynamic, Void, Null:
			return t
		case Never:
			return Null
		}
	case *FutureOr:
		if IsTop(tt.Elem) {
			return t
		}
	}
	return &Nullable{Elem: t}
}

// ContainsUnknown reports whether t is a type schema with at least one unknown leaf.
func ContainsUnknown(t Type) bool {
	return Any(t, func(t Type) bool {
		_, ok := t.(Unknown)
		return ok
	})
}

// IsKnown reports whether t is fully known (contains no unknown leaves).
func IsKnown(t Type) bool { return !ContainsUnknown(t) }

// ContainsVar reports whether the type-variable v occurs free in t.
func ContainsVar(t Type, v *Var) bool {
	return Any(t, func(t Type) bool { return t == Type(v) })
}

// Any reports whether pred holds for t or any component of t. Bounds of generic function
// type parameters are visited; bounds of other type variables are not.
func Any(t Type, pred func(Type) bool) bool {
	if pred(t) {
		return true
	}
	switch t := t.(type) {
	case *Nullable:
		return Any(t.Elem, pred)
	case *FutureOr:
		return Any(t.Elem, pred)
	case *Interface:
		for _, arg := range t.Args {
			if Any(arg, pred) {
				return true
			}
		}
	case *Function:
		for _, tv := range t.TypeParams {
			if b := tv.Bound(); b != nil && Any(b, pred) {
				return true
			}
		}
		for _, p := range t.Positional {
			if Any(p, pred) {
				return true
			}
		}
		found := false
		t.Named.Range(func(name string, f Field) bool {
			found = Any(f.Type, pred)
			return !found
		})
		if found {
			return true
		}
		return Any(t.Return, pred)
	case *Record:
		for _, p := range t.Positional {
			if Any(p, pred) {
				return true
			}
		}
		found := false
		t.Named.Range(func(name string, f Field) bool {
			found = Any(f.Type, pred)
			return !found
		})
		return found
	}
	return false
}
