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

package astutil

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/tinfer/ast"
	"github.com/wdamron/tinfer/internal/util"
)

// Analysis for a group of class declarations which may refer to each other.
//
// Type-arguments, bounds and member signatures may refer to any class of the group (or to
// the class being declared), but a class must be declared after the classes it extends,
// implements or mixes in. The supertype graph is sorted into strongly-connected components;
// a component with more than one class, or a class which is its own supertype, is a cyclic
// hierarchy.
type Analysis struct {
	Index map[string]int // map from class name to declaration index
	Graph util.Graph     // edges from each class to the classes which directly extend it
	Order []int          // declaration indexes, supertypes first
	Err   error
}

func (a *Analysis) Init(decls []*ast.ClassDecl) {
	a.Index = make(map[string]int, len(decls))
	a.Graph = util.NewGraph(len(decls))
	a.Order, a.Err = nil, nil
}

// Analyze computes a declaration order for decls. Supertypes which are not declared in the
// group are ignored; they must be resolved elsewhere.
func (a *Analysis) Analyze(decls []*ast.ClassDecl) error {
	a.Init(decls)
	for i, d := range decls {
		if _, exists := a.Index[d.Name]; exists {
			a.Err = errors.Errorf("Class %s is declared more than once", d.Name)
			return a.Err
		}
		a.Index[d.Name] = i
	}
	for i, d := range decls {
		for _, super := range d.Supertypes() {
			name, ok := super.(*ast.Name)
			if !ok {
				a.Err = errors.Errorf("Class %s: supertype %s is not a class", d.Name, ast.ExprString(super))
				return a.Err
			}
			if j, ok := a.Index[name.Name]; ok {
				a.Graph.AddEdge(j, i)
			}
		}
	}
	if cycles := a.Graph.Cycles(); len(cycles) > 0 {
		names := make([]string, len(cycles[0]))
		for i, v := range cycles[0] {
			names[i] = decls[v].Name
		}
		a.Err = errors.Errorf("Cyclic class hierarchy: %s", strings.Join(names, ", "))
		return a.Err
	}
	for _, c := range a.Graph.SCC() {
		a.Order = append(a.Order, c...)
	}
	return nil
}
