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

package tinfer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/tinfer/internal/util"
	"github.com/wdamron/tinfer/types"
)

// Resolver supplies the declaration graph consumed by inference: the direct supertypes of
// a declaration (superclass, then implemented interfaces, then mixins) and the signatures
// of its members.
type Resolver interface {
	Superinterfaces(d *types.Decl) []*types.Interface
	MemberSignature(d *types.Decl, name string) (*types.Function, bool)
}

// TypeEnv is a type-environment containing class declarations. TypeEnv implements Resolver.
//
// A type-environment cannot be modified concurrently; once all classes are declared it may
// be shared by any number of inference contexts.
type TypeEnv struct {
	// Next unused type-variable id
	NextVarId int
	// Declarations in the parent of the current type-environment
	Parent *TypeEnv
	// Classes declared in the current type-environment
	Classes map[string]*types.Decl
}

// Create a type-environment. The new environment will inherit declarations from the parent, if the parent is not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	env := &TypeEnv{
		Parent:  parent,
		Classes: make(map[string]*types.Decl),
	}
	if parent != nil {
		env.NextVarId = parent.NextVarId
	}
	return env
}

func (e *TypeEnv) freshId() int {
	id := e.NextVarId
	e.NextVarId++
	return id
}

// Create an unbounded type-variable with a unique id.
func (e *TypeEnv) NewVar(name string) *types.Var { return types.NewVar(e.freshId(), name) }

// Create unbounded type-variables with unique ids. Bounds may be attached afterwards with SetBound,
// which allows bounds to refer to any of the variables.
func (e *TypeEnv) NewVars(names ...string) []*types.Var {
	vars := make([]*types.Var, len(names))
	for i, name := range names {
		vars[i] = e.NewVar(name)
	}
	return vars
}

// ClassSpec describes a class declaration.
type ClassSpec struct {
	Name       string
	TypeParams []*types.Var
	// Declared variance of each type-parameter; missing entries are covariant
	Variances  []types.Variance
	Superclass *types.Interface
	Interfaces []*types.Interface
	Mixins     []*types.Interface
	Members    map[string]*types.Function
}

// Declare a class within the type-environment. The supertypes, type-parameter bounds and
// member signatures of the class are validated before it is added.
func (e *TypeEnv) DeclareClass(cs ClassSpec) (*types.Decl, error) {
	d := &types.Decl{
		Name:       cs.Name,
		TypeParams: cs.TypeParams,
		Variances:  cs.Variances,
		Superclass: cs.Superclass,
		Interfaces: cs.Interfaces,
		Mixins:     cs.Mixins,
		Members:    cs.Members,
	}
	if err := e.Declare(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Declare adds a declaration which was built elsewhere, after validating it as DeclareClass
// does. Supertypes and members of d may refer to d itself.
func (e *TypeEnv) Declare(d *types.Decl) error {
	if d == nil || d.Name == "" {
		return errors.New("Class name must not be empty")
	}
	if existing := e.Lookup(d.Name); existing != nil {
		return errors.Errorf("Class %s is already declared", d.Name)
	}
	if len(d.Variances) > len(d.TypeParams) {
		return errors.Errorf("Class %s declares %d variances for %d type-parameters", d.Name, len(d.Variances), len(d.TypeParams))
	}
	for _, super := range d.Supertypes() {
		if super == nil || super.Decl == nil {
			return errors.Errorf("Class %s has an undeclared supertype", d.Name)
		}
		if super.Decl == types.FunctionDecl || super.Decl == types.RecordDecl {
			return errors.Errorf("Class %s may not extend or implement %s", d.Name, super.Decl.Name)
		}
		if err := ValidateType(super); err != nil {
			return errors.Wrapf(err, "Class %s", d.Name)
		}
	}
	if err := ValidateTypeParams(d.TypeParams); err != nil {
		return errors.Wrapf(err, "Class %s", d.Name)
	}
	for name, sig := range d.Members {
		if err := ValidateType(sig); err != nil {
			return errors.Wrapf(err, "Class %s, member %s", d.Name, name)
		}
	}
	e.Classes[d.Name] = d
	return nil
}

// Lookup a declared class in the environment or its parent environment(s).
func (e *TypeEnv) Lookup(name string) *types.Decl {
	if d, ok := e.Classes[name]; ok {
		return d
	}
	if e.Parent == nil {
		return nil
	}
	return e.Parent.Lookup(name)
}

// Superinterfaces returns the declared supertypes of d.
func (e *TypeEnv) Superinterfaces(d *types.Decl) []*types.Interface { return d.Supertypes() }

// MemberSignature returns the signature of a member declared directly by d.
func (e *TypeEnv) MemberSignature(d *types.Decl, name string) (*types.Function, bool) {
	sig, ok := d.Members[name]
	return sig, ok
}

// ValidateTypeParams checks the bounds of a list of type-parameters. Bounds may refer to
// the parameters themselves through type constructors (`X extends Comparable<X>`), but a
// chain of parameters each bounded directly by the next may not form a cycle
// (`X extends Y, Y extends X` or `X extends X`).
func ValidateTypeParams(vars []*types.Var) error {
	for _, tv := range vars {
		if b := tv.Bound(); b != nil {
			if err := ValidateType(b); err != nil {
				return errors.Wrapf(err, "Bound of %s", tv.Name())
			}
		}
	}
	if cycle := boundCycle(vars); cycle != nil {
		names := make([]string, len(cycle))
		for i, tv := range cycle {
			names[i] = tv.Name()
		}
		return errors.Errorf("Type-parameter bounds form a cycle: %s", strings.Join(names, ", "))
	}
	return nil
}

// boundCycle returns the first cycle in the graph whose edges link each variable to a
// variable of the list which is its bound.
func boundCycle(vars []*types.Var) []*types.Var {
	index := make(map[*types.Var]int, len(vars))
	for i, tv := range vars {
		index[tv] = i
	}
	g := util.NewGraph(len(vars))
	for i, tv := range vars {
		if bv, ok := tv.Bound().(*types.Var); ok {
			if j, ok := index[bv]; ok {
				g.AddEdge(i, j)
			}
		}
	}
	cycles := g.Cycles()
	if len(cycles) == 0 {
		return nil
	}
	cycle := make([]*types.Var, len(cycles[0]))
	for i, v := range cycles[0] {
		cycle[i] = vars[v]
	}
	return cycle
}

// ValidateType checks that interface types have the declared number of type-arguments,
// that function types have consistent parameter counts, and that the type-parameters of
// generic function types have valid bounds.
func ValidateType(t types.Type) error {
	var err error
	types.Any(t, func(t types.Type) bool {
		switch t := t.(type) {
		case nil:
			err = errors.New("Missing type")
		case *types.Interface:
			if t.Decl == nil {
				err = errors.New("Interface type has no declaration")
			} else if len(t.Args) != t.Decl.Arity() {
				err = errors.Errorf("%s expects %d type-arguments, found %d", t.Decl.Name, t.Decl.Arity(), len(t.Args))
			}
		case *types.Function:
			if t.Required < 0 || t.Required > len(t.Positional) {
				err = errors.Errorf("Function type has %d required of %d positional parameters", t.Required, len(t.Positional))
			} else if t.IsGeneric() {
				if boundCycle(t.TypeParams) != nil {
					err = errors.New("Generic function type-parameter bounds form a cycle")
				}
			}
		}
		return err != nil
	})
	return err
}
