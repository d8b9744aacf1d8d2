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

// Package tinfer infers type arguments for calls to generic functions in a nominal,
// null-safe type-system with subtyping, declared variance, FutureOr, function and record
// types.
//
// Inference is local: given a generic signature, the static types of the arguments and
// a context type schema (a type which may contain the unknown marker `_`), the engine
// matches each argument against its parameter to generate subtype constraints on the
// signature's type-parameters, merges the constraints for each parameter into a pair of
// bounds, and solves the parameters left to right, consulting each parameter's declared
// bound (which may refer to other type-parameters of the same signature).
//
//
// Supported Features:
//
//   * Type schemas with unknown holes, least/greatest closures and UP/DOWN over schemas
//   * Declared variance (covariant, contravariant, invariant) for class type-parameters
//   * Nullable, FutureOr, function (including generic function) and record types
//   * F-bounded and mutually-referential type-parameter bounds
//   * Downward (context-only) partial solutions and fully grounded solutions
//   * Structured failures describing the variable, bounds and constraints involved
//
//
// Types and declarations are immutable once constructed and may be shared by concurrent
// inference contexts; an InferenceContext itself cannot be used concurrently.
package tinfer
