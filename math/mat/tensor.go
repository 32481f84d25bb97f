package mat

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

var _ Space[*mat64.Dense] = Tensors{}

// Tensors is the algebra of Rows x Cols matrices. Components are stored in
// row-major order.
type Tensors struct {
	Rows, Cols int
}

func (t Tensors) Zero() *mat64.Dense { return mat64.NewDense(t.Rows, t.Cols, nil) }

func (t Tensors) Add(a, b *mat64.Dense) *mat64.Dense {
	out := &mat64.Dense{}
	out.Add(a, b)
	return out
}

func (t Tensors) Sub(a, b *mat64.Dense) *mat64.Dense {
	out := &mat64.Dense{}
	out.Sub(a, b)
	return out
}

func (t Tensors) Scale(s float64, a *mat64.Dense) *mat64.Dense {
	out := &mat64.Dense{}
	out.Scale(s, a)
	return out
}

func (t Tensors) Equal(a, b *mat64.Dense) bool { return mat64.Equal(a, b) }

func (t Tensors) Components(v *mat64.Dense) []float64 {
	r, c := v.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, v.RawRowView(i)...)
	}
	return out
}

func (t Tensors) FromComponents(c []float64) (*mat64.Dense, error) {
	if len(c) != t.Len() {
		return nil, fmt.Errorf(
			"I expected a %dx%d tensor with %d components, but was given %d.",
			t.Rows, t.Cols, t.Len(), len(c),
		)
	}
	vals := make([]float64, len(c))
	copy(vals, c)
	return mat64.NewDense(t.Rows, t.Cols, vals), nil
}

func (t Tensors) Len() int { return t.Rows * t.Cols }
