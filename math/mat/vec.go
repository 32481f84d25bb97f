package mat

import (
	"fmt"

	"github.com/gonum/floats"
)

// Vectors is the algebra of fixed-length []float64 values. Dim is the length
// of the zero vector and of every decoded value. A Dim of zero accepts values
// of any length.
type Vectors struct {
	Dim int
}

func (v Vectors) Zero() []float64 { return make([]float64, v.Dim) }

func (v Vectors) Add(a, b []float64) []float64 {
	checkLengths(a, b)
	return floats.AddTo(make([]float64, len(a)), a, b)
}

func (v Vectors) Sub(a, b []float64) []float64 {
	checkLengths(a, b)
	return floats.SubTo(make([]float64, len(a)), a, b)
}

func (v Vectors) Scale(s float64, a []float64) []float64 {
	out := make([]float64, len(a))
	copy(out, a)
	floats.Scale(s, out)
	return out
}

func (v Vectors) Equal(a, b []float64) bool { return floats.Equal(a, b) }

func (v Vectors) Components(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

func (v Vectors) FromComponents(c []float64) ([]float64, error) {
	if v.Dim > 0 && len(c) != v.Dim {
		return nil, fmt.Errorf(
			"I expected a vector with %d components, but was given %d.",
			v.Dim, len(c),
		)
	}
	return v.Components(c), nil
}

func (v Vectors) Len() int {
	if v.Dim == 0 {
		return -1
	}
	return v.Dim
}

// checkLengths panics on mismatched operands. A table whose values have
// different lengths is a programming error, not a data error.
func checkLengths(a, b []float64) {
	if len(a) != len(b) {
		panic(fmt.Sprintf(
			"Vector lengths %d and %d are not equal.", len(a), len(b),
		))
	}
}
