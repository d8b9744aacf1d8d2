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

package fixture

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wdamron/tinfer"
	"github.com/wdamron/tinfer/ast"
	"github.com/wdamron/tinfer/internal/astutil"
	"github.com/wdamron/tinfer/internal/corelib"
	"github.com/wdamron/tinfer/types"
)

// BaseVarId is the first id assigned to type-variables created by a notation.
const BaseVarId = 1 << 24

var prims = map[string]types.Prim{
	"dynamic": types.Dynamic,
	"void":    types.Void,
	"Never":   types.Never,
	"Object":  types.Object,
	"Null":    types.Null,
}

var builtins = map[string]*types.Decl{
	types.FutureDecl.Name:   types.FutureDecl,
	types.FunctionDecl.Name: types.FunctionDecl,
	types.RecordDecl.Name:   types.RecordDecl,
}

// Scope maps type-variable names to type-variables. Inner scopes shadow outer scopes.
type Scope struct {
	vars   map[string]*types.Var
	parent *Scope
}

// Lookup a type-variable in the scope or its parent scope(s).
func (s *Scope) Lookup(name string) (*types.Var, bool) {
	for ; s != nil; s = s.parent {
		if tv, ok := s.vars[name]; ok {
			return tv, true
		}
	}
	return nil, false
}

// Notation resolves type expressions against a type-environment.
type Notation struct {
	Env *tinfer.TypeEnv
	// classes of the group currently being declared
	pending map[string]*types.Decl
}

// Create a notation for the given type-environment.
func NewNotation(env *tinfer.TypeEnv) *Notation {
	return &Notation{Env: env, pending: make(map[string]*types.Decl)}
}

// CoreEnv returns a type-environment whose parent holds the core class library.
func CoreEnv() *tinfer.TypeEnv {
	lib := corelib.New()
	core := tinfer.NewTypeEnv(nil)
	decls := lib.Decls()
	names := maps.Keys(decls)
	slices.Sort(names)
	for _, name := range names {
		core.Classes[name] = decls[name]
	}
	env := tinfer.NewTypeEnv(core)
	env.NextVarId = BaseVarId
	return env
}

func (n *Notation) lookupDecl(name string) *types.Decl {
	if d, ok := n.pending[name]; ok {
		return d
	}
	if d := n.Env.Lookup(name); d != nil {
		return d
	}
	return builtins[name]
}

// IsDeclared reports whether name refers to a class, a built-in declaration or a primitive type.
func (n *Notation) IsDeclared(name string) bool {
	if _, ok := prims[name]; ok {
		return true
	}
	return n.lookupDecl(name) != nil
}

// FreeNames returns the names referenced by e which do not refer to a declaration, in
// first-occurrence order.
func (n *Notation) FreeNames(exprs ...ast.TypeExpr) []string {
	var free []string
	seen := make(map[string]bool)
	for _, e := range exprs {
		for _, name := range ast.ReferencedNames(e) {
			if !seen[name] && !n.IsDeclared(name) {
				seen[name] = true
				free = append(free, name)
			}
		}
	}
	return free
}

// Bind creates a type-variable for each name, in a new scope nested in parent.
func (n *Notation) Bind(parent *Scope, names ...string) (*Scope, []*types.Var, error) {
	sc := &Scope{vars: make(map[string]*types.Var, len(names)), parent: parent}
	vars := make([]*types.Var, len(names))
	for i, name := range names {
		if _, exists := sc.vars[name]; exists {
			return nil, nil, errors.Errorf("Duplicate type-parameter %s", name)
		}
		vars[i] = n.Env.NewVar(name)
		sc.vars[name] = vars[i]
	}
	return sc, vars, nil
}

// bindParams binds type-parameters and resolves their bounds within the new scope, so
// bounds may refer to any of the parameters.
func (n *Notation) bindParams(parent *Scope, params []ast.TypeParam) (*Scope, []*types.Var, error) {
	names := make([]string, len(params))
	for i, tp := range params {
		names[i] = tp.Name
	}
	sc, vars, err := n.Bind(parent, names...)
	if err != nil {
		return nil, nil, err
	}
	return sc, vars, n.resolveBounds(sc, params, vars)
}

func (n *Notation) resolveBounds(sc *Scope, params []ast.TypeParam, vars []*types.Var) error {
	for i, tp := range params {
		if tp.Bound == nil {
			continue
		}
		bound, err := n.Resolve(tp.Bound, sc)
		if err != nil {
			return errors.Wrapf(err, "Bound of %s", tp.Name)
		}
		vars[i].SetBound(bound)
	}
	return nil
}

// ParseType parses and resolves a type expression within sc (which may be nil).
func (n *Notation) ParseType(src string, sc *Scope) (types.Type, error) {
	e, err := ParseTypeExpr(src)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", src)
	}
	t, err := n.Resolve(e, sc)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", src)
	}
	return t, nil
}

// ParseFunction parses and resolves a function type within sc (which may be nil).
func (n *Notation) ParseFunction(src string, sc *Scope) (*types.Function, error) {
	t, err := n.ParseType(src, sc)
	if err != nil {
		return nil, err
	}
	fn, ok := t.(*types.Function)
	if !ok {
		return nil, errors.Errorf("%q is not a function type", src)
	}
	return fn, nil
}

// Resolve the names within e. Type-variables are looked up in sc before declarations.
func (n *Notation) Resolve(e ast.TypeExpr, sc *Scope) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Hole:
		return types.UnknownType, nil

	case *ast.Name:
		return n.resolveName(e, sc)

	case *ast.Nullable:
		elem, err := n.Resolve(e.Elem, sc)
		if err != nil {
			return nil, err
		}
		return types.MakeNullable(elem), nil

	case *ast.FutureOr:
		elem, err := n.Resolve(e.Elem, sc)
		if err != nil {
			return nil, err
		}
		return &types.FutureOr{Elem: elem}, nil

	case *ast.Func:
		return n.resolveFunc(e, sc)

	case *ast.Record:
		positional, err := n.resolveList(e.Positional, sc)
		if err != nil {
			return nil, err
		}
		named, err := n.resolveNamed(e.Named, sc)
		if err != nil {
			return nil, err
		}
		return &types.Record{Positional: positional, Named: named}, nil

	case nil:
		return nil, errors.New("Missing type expression")
	}
	return nil, errors.Errorf("Unexpected %s expression", e.ExprName())
}

func (n *Notation) resolveName(e *ast.Name, sc *Scope) (types.Type, error) {
	if tv, ok := sc.Lookup(e.Name); ok {
		if len(e.Args) > 0 {
			return nil, errors.Errorf("Type-variable %s does not take type-arguments (offset %d)", e.Name, e.Offset)
		}
		return tv, nil
	}
	if prim, ok := prims[e.Name]; ok {
		if len(e.Args) > 0 {
			return nil, errors.Errorf("%s does not take type-arguments (offset %d)", e.Name, e.Offset)
		}
		return prim, nil
	}
	d := n.lookupDecl(e.Name)
	if d == nil {
		return nil, errors.Errorf("Undeclared type %s (offset %d)", e.Name, e.Offset)
	}
	if len(e.Args) != d.Arity() {
		return nil, errors.Errorf("%s expects %d type-arguments, found %d (offset %d)", e.Name, d.Arity(), len(e.Args), e.Offset)
	}
	args, err := n.resolveList(e.Args, sc)
	if err != nil {
		return nil, err
	}
	return &types.Interface{Decl: d, Args: args}, nil
}

func (n *Notation) resolveFunc(e *ast.Func, sc *Scope) (*types.Function, error) {
	var params []*types.Var
	if len(e.TypeParams) > 0 {
		var err error
		if sc, params, err = n.bindParams(sc, e.TypeParams); err != nil {
			return nil, err
		}
	}
	ret, err := n.Resolve(e.Return, sc)
	if err != nil {
		return nil, err
	}
	positional, err := n.resolveList(e.Positional, sc)
	if err != nil {
		return nil, err
	}
	named, err := n.resolveNamed(e.Named, sc)
	if err != nil {
		return nil, err
	}
	return &types.Function{Return: ret, Positional: positional, Required: e.Required, Named: named, TypeParams: params}, nil
}

func (n *Notation) resolveList(es []ast.TypeExpr, sc *Scope) ([]types.Type, error) {
	if len(es) == 0 {
		return nil, nil
	}
	ts := make([]types.Type, len(es))
	for i, e := range es {
		t, err := n.Resolve(e, sc)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

func (n *Notation) resolveNamed(named []ast.NamedParam, sc *Scope) (types.Fields, error) {
	if len(named) == 0 {
		return types.EmptyFields, nil
	}
	b := types.NewFieldsBuilder()
	for _, p := range named {
		t, err := n.Resolve(p.Type, sc)
		if err != nil {
			return types.EmptyFields, err
		}
		b.Set(p.Name, types.Field{Type: t, Required: p.Required})
	}
	return b.Build(), nil
}

// DeclareClasses declares a group of classes which may refer to each other. Each class is
// declared after its supertypes; type-arguments, bounds and member signatures may refer to
// any class of the group.
func (n *Notation) DeclareClasses(decls []*ast.ClassDecl) ([]*types.Decl, error) {
	var a astutil.Analysis
	if err := a.Analyze(decls); err != nil {
		return nil, err
	}

	out := make([]*types.Decl, len(decls))
	scopes := make([]*Scope, len(decls))
	defer func() {
		for _, d := range decls {
			delete(n.pending, d.Name)
		}
	}()
	for i, d := range decls {
		if n.IsDeclared(d.Name) {
			return nil, errors.Errorf("Class %s is already declared", d.Name)
		}
		names := make([]string, len(d.TypeParams))
		for j, tp := range d.TypeParams {
			names[j] = tp.Name
		}
		sc, vars, err := n.Bind(nil, names...)
		if err != nil {
			return nil, errors.Wrapf(err, "Class %s", d.Name)
		}
		out[i], scopes[i] = &types.Decl{Name: d.Name, TypeParams: vars}, sc
		n.pending[d.Name] = out[i]
	}

	for i, d := range decls {
		if err := n.completeClass(out[i], d, scopes[i]); err != nil {
			return nil, errors.Wrapf(err, "Class %s", d.Name)
		}
	}
	for _, i := range a.Order {
		if err := n.Env.Declare(out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (n *Notation) completeClass(decl *types.Decl, d *ast.ClassDecl, sc *Scope) error {
	if err := n.resolveBounds(sc, d.TypeParams, decl.TypeParams); err != nil {
		return err
	}
	for _, v := range d.Variances {
		variance, ok := types.ParseVariance(v)
		if !ok {
			return errors.Errorf("Unknown variance %q", v)
		}
		decl.Variances = append(decl.Variances, variance)
	}
	resolveSuper := func(e ast.TypeExpr) (*types.Interface, error) {
		t, err := n.Resolve(e, sc)
		if err != nil {
			return nil, err
		}
		it, ok := t.(*types.Interface)
		if !ok {
			return nil, errors.Errorf("Supertype %s is not a class", ast.ExprString(e))
		}
		return it, nil
	}
	var err error
	if d.Superclass != nil {
		if decl.Superclass, err = resolveSuper(d.Superclass); err != nil {
			return err
		}
	}
	for _, e := range d.Interfaces {
		it, err := resolveSuper(e)
		if err != nil {
			return err
		}
		decl.Interfaces = append(decl.Interfaces, it)
	}
	for _, e := range d.Mixins {
		it, err := resolveSuper(e)
		if err != nil {
			return err
		}
		decl.Mixins = append(decl.Mixins, it)
	}
	if len(d.Members) > 0 {
		decl.Members = make(map[string]*types.Function, len(d.Members))
	}
	for _, m := range d.Members {
		if _, exists := decl.Members[m.Name]; exists {
			return errors.Errorf("Duplicate member %s", m.Name)
		}
		fn, err := n.resolveFunc(m.Signature, sc)
		if err != nil {
			return errors.Wrapf(err, "Member %s", m.Name)
		}
		decl.Members[m.Name] = fn
	}
	return nil
}
