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

// Tracer receives a line of trace output for each matching rule and solving step.
type Tracer interface {
	Tracef(format string, args ...interface{})
}

// TracerFunc adapts a printf-style function to a Tracer.
type TracerFunc func(format string, args ...interface{})

func (f TracerFunc) Tracef(format string, args ...interface{}) { f(format, args...) }

// Hierarchy supplies the direct supertypes of a declaration, in lookup order
// (superclass, implemented interfaces, mixins).
type Hierarchy interface {
	Superinterfaces(d *types.Decl) []*types.Interface
}

type subtypeMemo struct {
	sub, super types.Type
	result     bool
}

// CommonContext holds the state owned by a single inference episode: the memo table for
// subtype checks, supertype depths for UP, and fresh type-variables introduced while
// matching generic function types.
//
// A context cannot be used concurrently. Episodes on separate contexts share no mutable
// state and may run in parallel.
type CommonContext struct {
	Hierarchy  Hierarchy
	Tracer     Tracer
	VarTracker VarTracker

	subtypes map[[2]uint64][]subtypeMemo
	depths   map[*types.Decl]int
	indent   int
}

func (ctx *CommonContext) Init() {
	ctx.subtypes, ctx.depths = make(map[[2]uint64][]subtypeMemo, 64), make(map[*types.Decl]int, 16)
	if ctx.VarTracker.NextId == 0 {
		ctx.VarTracker.NextId = FreshVarBaseId
	}
}

// Reset discards all per-episode state.
func (ctx *CommonContext) Reset() {
	ctx.VarTracker.Reset()
	for k := range ctx.subtypes {
		delete(ctx.subtypes, k)
	}
	for k := range ctx.depths {
		delete(ctx.depths, k)
	}
	ctx.indent = 0
}

func (ctx *CommonContext) ensureInit() {
	if ctx.subtypes == nil {
		ctx.Init()
	}
}

func (ctx *CommonContext) supertypes(d *types.Decl) []*types.Interface {
	if ctx.Hierarchy != nil && !d.IsBuiltin() {
		return ctx.Hierarchy.Superinterfaces(d)
	}
	return d.Supertypes()
}

func (ctx *CommonContext) tracing() bool { return ctx.Tracer != nil }

func (ctx *CommonContext) tracef(format string, args ...interface{}) {
	if ctx.Tracer == nil {
		return
	}
	if ctx.indent > 0 {
		pad := make([]byte, 2*ctx.indent)
		for i := range pad {
			pad[i] = ' '
		}
		format = string(pad) + format
	}
	ctx.Tracer.Tracef(format, args...)
}
