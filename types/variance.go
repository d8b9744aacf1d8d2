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

package types

// Variance of a position within a type, or the declared variance of a type parameter.
type Variance uint8

const (
	// Unrelated: no occurrence
	Unrelated Variance = iota
	Covariant
	Contravariant
	Invariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	case Invariant:
		return "invariant"
	}
	return "unrelated"
}

// ParseVariance parses the names produced by Variance.String, plus the short forms
// `out`, `in` and `inout`.
func ParseVariance(s string) (Variance, bool) {
	switch s {
	case "covariant", "out", "":
		return Covariant, true
	case "contravariant", "in":
		return Contravariant, true
	case "invariant", "inout":
		return Invariant, true
	case "unrelated":
		return Unrelated, true
	}
	return Unrelated, false
}

// Compose returns the variance of an inner position (with variance inner) nested in an
// outer position (with variance v).
func (v Variance) Compose(inner Variance) Variance {
	switch {
	case v == Unrelated || inner == Unrelated:
		return Unrelated
	case v == Invariant || inner == Invariant:
		return Invariant
	case v == inner:
		return Covariant
	}
	return Contravariant
}

// Flip swaps covariant and contravariant positions.
func (v Variance) Flip() Variance { return v.Compose(Contravariant) }

// Meet combines the variances of two occurrences of the same term.
func (v Variance) Meet(other Variance) Variance {
	switch {
	case v == Unrelated:
		return other
	case other == Unrelated || v == other:
		return v
	}
	return Invariant
}
