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
	"github.com/wdamron/tinfer/internal/typeutil"
	"github.com/wdamron/tinfer/types"
)

// InferenceContext is a reusable context for type-argument inference. Each call to Infer
// is a separate episode; memoized subtype checks and fresh type-variables are discarded
// between episodes.
//
// An inference context cannot be used concurrently. Contexts share no mutable state, so
// separate contexts may run in parallel over the same declarations.
type InferenceContext struct {
	common     typeutil.CommonContext
	resolver   Resolver
	needsReset bool
}

// Create a new inference context which reads the declaration graph through resolver.
// A nil resolver uses the supertypes recorded on each declaration.
func NewContext(resolver Resolver) *InferenceContext {
	ti := &InferenceContext{resolver: resolver}
	if resolver != nil {
		ti.common.Hierarchy = resolver
	}
	ti.common.Init()
	return ti
}

// Set a tracer to receive a line for each matching rule and solving step. A nil tracer disables tracing.
func (ti *InferenceContext) SetTracer(tracer Tracer) { ti.common.Tracer = tracer }

func (ti *InferenceContext) reset() {
	ti.common.Reset()
	ti.needsReset = false
}

// Reset the state of the context. The context will be reset automatically before inference.
func (ti *InferenceContext) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

func (ti *InferenceContext) begin() {
	if ti.needsReset {
		ti.reset()
	}
	ti.needsReset = true
}

func (ti *InferenceContext) tracef(format string, args ...interface{}) {
	if ti.common.Tracer != nil {
		ti.common.Tracer.Tracef(format, args...)
	}
}

func validateSignature(sig *types.Function, context types.Type) *InferenceFailure {
	if sig == nil {
		return malformed(-1, "missing signature")
	}
	if err := ValidateType(sig); err != nil {
		return malformed(-1, "%v", err)
	}
	if err := ValidateTypeParams(sig.TypeParams); err != nil {
		return malformed(-1, "%v", err)
	}
	if context != nil {
		if err := ValidateType(context); err != nil {
			return malformed(-1, "context: %v", err)
		}
	}
	return nil
}

func validateCall(sig *types.Function, args []types.Type, context types.Type) *InferenceFailure {
	if f := validateSignature(sig, context); f != nil {
		return f
	}
	if len(args) < sig.Required || len(args) > len(sig.Positional) {
		return malformed(-1, "expected %d to %d arguments, found %d", sig.Required, len(sig.Positional), len(args))
	}
	for i, arg := range args {
		if err := ValidateType(arg); err != nil {
			return malformed(i, "%v", err)
		}
	}
	return nil
}

// Infer the type-arguments of the generic function sig, called with positional arguments
// of the given types, where the result is expected to match the context type schema. A nil
// context is treated as the unknown marker.
//
// The returned substitution maps each type-parameter of sig to a type without unknown
// holes. Failures are returned as *InferenceFailure.
func (ti *InferenceContext) Infer(sig *types.Function, args []types.Type, context types.Type) (types.Substitution, error) {
	if f := validateCall(sig, args, context); f != nil {
		return nil, f
	}
	ti.begin()
	vars := sig.TypeParams
	L := typeutil.NewVarSet(vars...)

	cs, partial, f := ti.solveContext(sig, context, L)
	if f != nil {
		return nil, f
	}

	for i, arg := range args {
		param := sig.Positional[i]
		sub, ok := ti.common.Match(arg, param, L)
		if !ok {
			return nil, &InferenceFailure{Kind: NoMatch, ArgIndex: i, Lower: arg, Upper: param}
		}
		cs = cs.Concat(sub)
	}

	results, failure := ti.common.SolveSet(cs, vars, partial, true)
	if failure != nil {
		return nil, failureFromSolver(failure)
	}
	s := types.NewSubstitution(vars, results)
	ti.tracef("solution: %s", types.SubstitutionString(s, vars))

	for i, arg := range args {
		param := s.Apply(sig.Positional[i])
		if !ti.common.IsSubtype(arg, param) {
			return nil, &InferenceFailure{Kind: NoMatch, ArgIndex: i, Lower: arg, Upper: param, Constraints: cs.Slice()}
		}
	}
	return s, nil
}

// solveContext matches the return type of sig against the context and computes the
// downward partial solution. A context which cannot be matched does not constrain
// the solution.
func (ti *InferenceContext) solveContext(sig *types.Function, context types.Type, L typeutil.VarSet) (ConstraintSet, []types.Type, *InferenceFailure) {
	cs := typeutil.EmptyConstraintSet
	if context != nil {
		if sub, ok := ti.common.Match(sig.Return, context, L); ok {
			cs = sub
		} else {
			ti.tracef("context %v does not match %v; ignored", context, sig.Return)
		}
	}
	partial, failure := ti.common.SolveSet(cs, sig.TypeParams, nil, false)
	if failure != nil {
		return cs, nil, failureFromSolver(failure)
	}
	return cs, partial, nil
}

// PartialSolve computes the downward solution for the type-parameters of sig from the
// context type schema alone. Parameters which the context does not constrain are unknown.
func (ti *InferenceContext) PartialSolve(sig *types.Function, context types.Type) ([]types.Type, error) {
	if f := validateSignature(sig, context); f != nil {
		return nil, f
	}
	ti.begin()
	_, partial, f := ti.solveContext(sig, context, typeutil.NewVarSet(sig.TypeParams...))
	if f != nil {
		return nil, f
	}
	return partial, nil
}

// InferMember looks up the member name of receiver through the resolver, substitutes the
// receiver's type-arguments into its signature, and infers the member's type-arguments.
// The instantiated signature is returned together with the substitution.
func (ti *InferenceContext) InferMember(receiver *types.Interface, name string, args []types.Type, context types.Type) (*types.Function, types.Substitution, error) {
	sig, ok := ti.memberSignature(receiver, name)
	if !ok {
		return nil, nil, malformed(-1, "%v has no member %s", receiver, name)
	}
	s, err := ti.Infer(sig, args, context)
	if err != nil {
		return sig, nil, err
	}
	return sig, s, nil
}

func (ti *InferenceContext) memberSignature(receiver *types.Interface, name string) (*types.Function, bool) {
	if ti.resolver == nil || receiver == nil {
		return nil, false
	}
	ti.begin()
	for _, inst := range ti.common.Supertypes(receiver) {
		if sig, ok := ti.resolver.MemberSignature(inst.Decl, name); ok {
			return inst.Substitution().Apply(sig).(*types.Function), true
		}
	}
	return nil, false
}

// Match derives constraints on vars under which p is a subtype of q.
func (ti *InferenceContext) Match(p, q types.Type, vars ...*types.Var) (ConstraintSet, bool) {
	ti.begin()
	return ti.common.Match(p, q, typeutil.NewVarSet(vars...))
}

// IsSubtype reports whether s is a subtype of t.
func (ti *InferenceContext) IsSubtype(s, t types.Type) bool {
	ti.begin()
	return ti.common.IsSubtype(s, t)
}

// UpperBound computes UP(a, b), the least upper bound of two types or schemas.
func (ti *InferenceContext) UpperBound(a, b types.Type) types.Type {
	ti.begin()
	return ti.common.Up(a, b)
}

// LowerBound computes DOWN(a, b), the greatest lower bound of two types or schemas.
func (ti *InferenceContext) LowerBound(a, b types.Type) types.Type {
	ti.begin()
	return ti.common.Down(a, b)
}

// Merge combines the constraints on tv into a lower and upper bound.
func (ti *InferenceContext) Merge(cs ConstraintSet, tv *types.Var) (lower, upper types.Type) {
	ti.begin()
	return ti.common.Merge(cs, tv)
}

// Solve returns a (possibly partial) solution for tv.
func (ti *InferenceContext) Solve(cs ConstraintSet, tv *types.Var) types.Type {
	ti.begin()
	return ti.common.Solve(cs, tv)
}

// GroundedSolve returns a solution for tv without unknown holes.
func (ti *InferenceContext) GroundedSolve(cs ConstraintSet, tv *types.Var) types.Type {
	ti.begin()
	return ti.common.GroundedSolve(cs, tv)
}

// SolveSet solves vars left to right, starting from partial (which may be nil).
func (ti *InferenceContext) SolveSet(cs ConstraintSet, vars []*types.Var, partial []types.Type, grounded bool) ([]types.Type, error) {
	ti.begin()
	results, failure := ti.common.SolveSet(cs, vars, partial, grounded)
	if failure != nil {
		return nil, failureFromSolver(failure)
	}
	return results, nil
}

// Eliminate the unknown marker.
var ElimUnknown = typeutil.ElimUnknown

// Eliminate the given type-variables.
func ElimVars(vars ...*types.Var) Elim { return typeutil.ElimVars(vars...) }

// LeastClosure returns a subtype of t which does not mention the eliminated terms.
func LeastClosure(t types.Type, e Elim) types.Type { return typeutil.LeastClosure(t, e) }

// GreatestClosure returns a supertype of t which does not mention the eliminated terms.
func GreatestClosure(t types.Type, e Elim) types.Type { return typeutil.GreatestClosure(t, e) }

// NewConstraintSet builds a constraint set from the given constraints, in order.
func NewConstraintSet(cs ...Constraint) ConstraintSet { return typeutil.NewConstraintSet(cs...) }
