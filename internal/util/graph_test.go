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

package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSCCTopologicalOrder(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	g.AddEdge(2, 3)

	sccs := g.SCC()
	if len(sccs) != 3 {
		t.Fatalf("expected 3 components, found %d: %v", len(sccs), sccs)
	}
	if diff := cmp.Diff([]int{0}, sccs[0]); diff != "" {
		t.Fatalf("first component (-want +got):\n%s", diff)
	}
	if len(sccs[1]) != 2 {
		t.Fatalf("expected a component of size 2, found %v", sccs[1])
	}
	if diff := cmp.Diff([]int{3}, sccs[2]); diff != "" {
		t.Fatalf("last component (-want +got):\n%s", diff)
	}
}

func TestCycles(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(2, 2)
	cycles := g.Cycles()
	if diff := cmp.Diff([][]int{{2}}, cycles); diff != "" {
		t.Fatalf("cycles (-want +got):\n%s", diff)
	}

	g = NewGraph(2)
	g.AddEdge(0, 1)
	if cycles := g.Cycles(); len(cycles) != 0 {
		t.Fatalf("expected no cycles, found %v", cycles)
	}
}
