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

// FreshVarBaseId is the first id assigned to fresh type-variables, so they do not collide
// with ids assigned by a type-environment.
const FreshVarBaseId = 1 << 30

// VarTracker allocates fresh type-variables for an inference episode and tracks allocations.
type VarTracker struct {
	NextId int
	vars   []*types.Var
}

func (vt *VarTracker) Reset() {
	for i := range vt.vars {
		vt.vars[i] = nil
	}
	vt.vars = vt.vars[:0]
}

// New allocates a fresh type-variable. Fresh variables print with a leading `'`.
func (vt *VarTracker) New(name string) *types.Var {
	tv := types.NewVar(vt.NextId, "'"+name)
	vt.NextId++
	vt.vars = append(vt.vars, tv)
	return tv
}

// Rename allocates one fresh variable for each of vars, keeping their names.
func (vt *VarTracker) Rename(vars []*types.Var) []*types.Var {
	fresh := make([]*types.Var, len(vars))
	for i, tv := range vars {
		fresh[i] = vt.New(tv.Name())
	}
	return fresh
}
