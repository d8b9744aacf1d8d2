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
	"fmt"

	"github.com/wdamron/tinfer/types"
)

type FailureKind uint8

const (
	// NoMatch: an argument (or the return type) could not be matched.
	NoMatch FailureKind = iota + 1
	// OverConstrained: the merged lower bound of a variable is not a subtype of its merged upper bound.
	OverConstrained
	// UnsatisfiedBound: a solved variable does not satisfy its declared bound.
	UnsatisfiedBound
	// Malformed: the signature or arguments are ill-formed.
	Malformed
)

func (k FailureKind) String() string {
	switch k {
	case NoMatch:
		return "no match"
	case OverConstrained:
		return "over-constrained"
	case UnsatisfiedBound:
		return "unsatisfied bound"
	case Malformed:
		return "malformed"
	}
	return "unknown failure"
}

// Failure describes why solving failed for a single variable.
type Failure struct {
	Kind        FailureKind
	Var         *types.Var
	Lower       types.Type
	Upper       types.Type
	Bound       types.Type
	Value       types.Type
	Constraints []Constraint
}

func (f *Failure) Error() string {
	switch f.Kind {
	case OverConstrained:
		return fmt.Sprintf("%s: %v is not a subtype of %v for %s", f.Kind, f.Lower, f.Upper, f.Var.Name())
	case UnsatisfiedBound:
		return fmt.Sprintf("%s: %v does not satisfy %s extends %v", f.Kind, f.Value, f.Var.Name(), f.Bound)
	}
	if f.Var != nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Var.Name())
	}
	return f.Kind.String()
}

func (ctx *CommonContext) merge(cs []Constraint) (lower, upper types.Type) {
	lower, upper = types.UnknownType, types.UnknownType
	for _, c := range cs {
		lower = ctx.Up(lower, c.Lower)
		upper = ctx.Down(upper, c.Upper)
	}
	return lower, upper
}

// Merge combines the constraints on tv into a single pair of bounds: the upper bound (UP)
// of all lower bounds and the lower bound (DOWN) of all upper bounds. Both start from the
// unknown marker.
func (ctx *CommonContext) Merge(cs ConstraintSet, tv *types.Var) (lower, upper types.Type) {
	ctx.ensureInit()
	return ctx.merge(cs.For(tv))
}

func isUnknown(t types.Type) bool {
	_, ok := t.(types.Unknown)
	return ok
}

func chooseSolution(lower, upper types.Type, grounded bool) types.Type {
	switch {
	case types.IsKnown(lower):
		return lower
	case types.IsKnown(upper):
		return upper
	case !isUnknown(lower):
		if grounded {
			return LeastClosure(lower, ElimUnknown)
		}
		return lower
	case !isUnknown(upper):
		if grounded {
			return GreatestClosure(upper, ElimUnknown)
		}
		return upper
	}
	if grounded {
		return GreatestClosure(upper, ElimUnknown)
	}
	return types.UnknownType
}

// Solve returns the best schema for tv given the constraints in cs: a fully known lower
// bound, else a fully known upper bound, else whichever bound is not the bare unknown
// marker (preferring the lower bound), else the unknown marker.
func (ctx *CommonContext) Solve(cs ConstraintSet, tv *types.Var) types.Type {
	lower, upper := ctx.Merge(cs, tv)
	return chooseSolution(lower, upper, false)
}

// GroundedSolve is like Solve, but never returns a schema containing the unknown marker:
// a partially known lower bound is replaced by its least closure and a partially known
// upper bound by its greatest closure.
func (ctx *CommonContext) GroundedSolve(cs ConstraintSet, tv *types.Var) types.Type {
	lower, upper := ctx.Merge(cs, tv)
	return chooseSolution(lower, upper, true)
}

// SolveSet solves vars left to right. A variable whose partial solution is fully known
// keeps it. Otherwise the variable's constraints are augmented with its declared bound, in
// which earlier variables are replaced by their solutions and the variable itself and later
// variables by their partial solutions.
//
// When grounded is false, variables without constraints of their own remain unknown.
// When grounded is true, every result is free of the unknown marker and is checked against
// its declared bound with all solutions substituted. A variable without constraints of
// its own is solved from its bound, in which later variables whose partial solutions are
// still unknown are replaced by their defaults (see withDefaults).
func (ctx *CommonContext) SolveSet(cs ConstraintSet, vars []*types.Var, partial []types.Type, grounded bool) ([]types.Type, *Failure) {
	ctx.ensureInit()
	results := make([]types.Type, len(vars))
	stage := make(types.Substitution, len(vars))
	for i, tv := range vars {
		stage[tv] = partialAt(partial, i)
	}

	for i, tv := range vars {
		if p := partialAt(partial, i); types.IsKnown(p) {
			results[i] = p
			stage[tv] = p
			continue
		}

		own := cs.For(tv)
		augmented := make([]Constraint, 0, len(own)+1)
		for _, c := range own {
			augmented = append(augmented, Constraint{Lower: stage.Apply(c.Lower), Var: tv, Upper: stage.Apply(c.Upper)})
		}
		if b := tv.Bound(); b != nil {
			bs := stage
			if grounded && len(own) == 0 {
				bs = ctx.withDefaults(cs, stage, vars, i+1)
			}
			augmented = append(augmented, Constraint{Lower: types.UnknownType, Var: tv, Upper: bs.Apply(b)})
		}

		lower, upper := ctx.merge(augmented)
		if types.IsKnown(lower) && types.IsKnown(upper) && !ctx.IsSubtype(lower, upper) {
			return nil, &Failure{Kind: OverConstrained, Var: tv, Lower: lower, Upper: upper, Bound: tv.Bound(), Constraints: augmented}
		}

		var value types.Type
		if !grounded && len(own) == 0 {
			value = types.UnknownType
		} else {
			value = chooseSolution(lower, upper, grounded)
		}
		ctx.tracef("solve %s: %v <: %s <: %v => %v", tv.Name(), lower, tv.Name(), upper, value)
		results[i] = value
		stage[tv] = value
	}

	if grounded {
		final := types.NewSubstitution(vars, results)
		for i, tv := range vars {
			b := tv.Bound()
			if b == nil {
				continue
			}
			bound := final.Apply(b)
			if !ctx.IsSubtype(results[i], bound) {
				return nil, &Failure{Kind: UnsatisfiedBound, Var: tv, Bound: bound, Value: results[i], Constraints: cs.For(tv)}
			}
		}
	}
	return results, nil
}

// withDefaults returns stage with each of vars[from:] whose staged type is the unknown
// marker replaced by its default: the solution of its own constraints when that is fully
// known, else its closed bound (see boundDefault). stage is returned unchanged when there
// is nothing to replace.
func (ctx *CommonContext) withDefaults(cs ConstraintSet, stage types.Substitution, vars []*types.Var, from int) types.Substitution {
	var out types.Substitution
	for _, tv := range vars[from:] {
		if !isUnknown(stage[tv]) {
			continue
		}
		if out == nil {
			out = make(types.Substitution, len(stage))
			for k, v := range stage {
				out[k] = v
			}
		}
		out[tv] = boundDefault(tv, vars)
		if own := cs.For(tv); len(own) > 0 {
			lower, upper := ctx.merge(own)
			if v := chooseSolution(lower, upper, false); types.IsKnown(v) && !NewVarSet(vars...).Mentions(v) {
				out[tv] = v
			}
		}
	}
	if out == nil {
		return stage
	}
	return out
}

// boundDefault is the greatest closure of the declared bound of tv (Object? when tv is
// unbounded) with respect to vars and the unknown marker.
func boundDefault(tv *types.Var, vars []*types.Var) types.Type {
	b := tv.Bound()
	if b == nil {
		return types.ObjectQ
	}
	return GreatestClosure(b, Elim{Vars: NewVarSet(vars...), Unknown: true})
}

func partialAt(partial []types.Type, i int) types.Type {
	if i < len(partial) && partial[i] != nil {
		return partial[i]
	}
	return types.UnknownType
}
