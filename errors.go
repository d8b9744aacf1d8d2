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
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wdamron/tinfer/internal/typeutil"
	"github.com/wdamron/tinfer/types"
)

// Causes of inference failures. Use errors.Is to test the kind of an *InferenceFailure.
var (
	ErrNoMatch          = errors.New("Argument type does not match parameter type")
	ErrOverConstrained  = errors.New("Type-variable is over-constrained")
	ErrUnsatisfiedBound = errors.New("Type-variable bound is not satisfied")
	ErrMalformed        = errors.New("Malformed signature or argument types")
)

type FailureKind = typeutil.FailureKind

const (
	NoMatch          = typeutil.NoMatch
	OverConstrained  = typeutil.OverConstrained
	UnsatisfiedBound = typeutil.UnsatisfiedBound
	Malformed        = typeutil.Malformed
)

type (
	// Constraint requires a type-variable to lie between a lower and upper bound.
	Constraint = typeutil.Constraint
	// ConstraintSet is a persistent, ordered list of constraints.
	ConstraintSet = typeutil.ConstraintSet
	// Elim is a set of terms to eliminate when computing closures.
	Elim = typeutil.Elim
	// Tracer receives trace output for each matching rule and solving step.
	Tracer = typeutil.Tracer
	// TracerFunc adapts a printf-style function to a Tracer.
	TracerFunc = typeutil.TracerFunc
)

// InferenceFailure describes why inference failed for a single episode.
type InferenceFailure struct {
	Kind FailureKind
	// The type-variable which could not be solved, if any
	Var *types.Var
	// The declared bound of Var, with solutions substituted
	Bound types.Type
	// Merged lower and upper bounds for Var, or the argument and parameter type for a no-match failure
	Lower, Upper types.Type
	// The solution which failed to satisfy Bound
	Value types.Type
	// Index of the offending argument, or -1
	ArgIndex int
	// Constraints on Var which contributed to the failure
	Constraints []Constraint
	// Additional detail for malformed input
	Reason string
}

func (f *InferenceFailure) Unwrap() error {
	switch f.Kind {
	case NoMatch:
		return ErrNoMatch
	case OverConstrained:
		return ErrOverConstrained
	case UnsatisfiedBound:
		return ErrUnsatisfiedBound
	}
	return ErrMalformed
}

func (f *InferenceFailure) Error() string {
	var sb strings.Builder
	sb.WriteString(f.Unwrap().Error())
	if f.ArgIndex >= 0 {
		fmt.Fprintf(&sb, " (argument %d)", f.ArgIndex)
	}
	switch {
	case f.Reason != "":
		sb.WriteString(": " + f.Reason)
	case f.Kind == NoMatch && f.Lower != nil:
		fmt.Fprintf(&sb, ": %v is not a subtype of %v", f.Lower, f.Upper)
	case f.Kind == OverConstrained:
		fmt.Fprintf(&sb, ": %v <: %s <: %v", f.Lower, f.Var.Name(), f.Upper)
	case f.Kind == UnsatisfiedBound:
		fmt.Fprintf(&sb, ": %v does not satisfy %s extends %v", f.Value, f.Var.Name(), f.Bound)
	}
	return sb.String()
}

func failureFromSolver(f *typeutil.Failure) *InferenceFailure {
	return &InferenceFailure{
		Kind:        f.Kind,
		Var:         f.Var,
		Bound:       f.Bound,
		Lower:       f.Lower,
		Upper:       f.Upper,
		Value:       f.Value,
		ArgIndex:    -1,
		Constraints: f.Constraints,
	}
}

func malformed(argIndex int, format string, args ...interface{}) *InferenceFailure {
	return &InferenceFailure{Kind: Malformed, ArgIndex: argIndex, Reason: fmt.Sprintf(format, args...)}
}
