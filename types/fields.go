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

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// EmptyFields contains no named parameters or fields.
var EmptyFields = Fields{emptyMap}

// Field is a named function parameter or a named record field.
type Field struct {
	Type Type
	// Required is only meaningful for named function parameters.
	Required bool
}

// Fields is an immutable map from names to named parameters/fields, iterated in sorted
// name order. The textual order of named parameters never affects equality.
type Fields struct {
	m *immutable.SortedMap
}

func NewFields() Fields { return Fields{emptyMap} }

// NewFlatFields creates optional fields (or record fields) from a plain map.
func NewFlatFields(m map[string]Type) Fields {
	b := NewFieldsBuilder()
	for name, t := range m {
		b.Set(name, Field{Type: t})
	}
	return b.Build()
}

func (m Fields) imm() *immutable.SortedMap {
	if m.m == nil {
		return emptyMap
	}
	return m.m
}

func (m Fields) Len() int { return m.imm().Len() }

func (m Fields) Get(name string) (Field, bool) {
	f, ok := m.imm().Get(name)
	if !ok {
		return Field{}, false
	}
	return f.(Field), true
}

// Range visits each field in sorted name order until f returns false.
func (m Fields) Range(f func(string, Field) bool) {
	iter := m.imm().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Field)) {
			return
		}
	}
}

// Names returns the sorted field names.
func (m Fields) Names() []string {
	names := make([]string, 0, m.Len())
	m.Range(func(name string, _ Field) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Map returns a copy of m with each field type replaced by f(type).
func (m Fields) Map(f func(Type) Type) Fields {
	if m.Len() == 0 {
		return m
	}
	b := m.Builder()
	m.Range(func(name string, field Field) bool {
		b.Set(name, Field{Type: f(field.Type), Required: field.Required})
		return true
	})
	return b.Build()
}

func (m Fields) Builder() FieldsBuilder {
	return FieldsBuilder{immutable.NewSortedMapBuilder(m.imm())}
}

type FieldsBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldsBuilder() FieldsBuilder {
	return FieldsBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

func (b FieldsBuilder) Len() int {
	if b.b == nil {
		return 0
	}
	return b.b.Len()
}

func (b FieldsBuilder) Set(name string, f Field) FieldsBuilder {
	b.b.Set(name, f)
	return b
}

func (b FieldsBuilder) Delete(name string) FieldsBuilder {
	b.b.Delete(name)
	return b
}

func (b FieldsBuilder) Build() Fields {
	if b.b == nil {
		return EmptyFields
	}
	return Fields{b.b.Map()}
}
