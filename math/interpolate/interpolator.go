/*package interpolate implements extrapolating piecewise-linear lookup tables
in one and two dimensions, along with the algebra used to blend tables
together.

Tables only read their data during evaluation, so one table may be evaluated
from many goroutines at once. Changing a table's bounds policy while it is
being evaluated is a race.
*/
package interpolate

import (
	"fmt"
)

// Interpolator is a 1D interpolator over values of type T.
type Interpolator[T any] interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) (T, error)
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]T) ([]T, error)
}

var (
	_ Interpolator[float64]   = &Linear[float64]{}
	_ Interpolator[[]float64] = &Linear[[]float64]{}
)

// BiInterpolator is a 2D interpolator over values of type T.
type BiInterpolator[T any] interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y float64) (T, error)
	// EvalAll evaluates a sequeunce of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys []float64, out ...[]T) ([]T, error)
}

var (
	_ BiInterpolator[float64]   = &Table[float64]{}
	_ BiInterpolator[[]float64] = &Table[[]float64]{}
)

// outBuffer returns the optional output array of an EvalAll call, or a new
// one of length n.
func outBuffer[T any](n int, out [][]T) ([]T, error) {
	if len(out) == 0 {
		return make([]T, n), nil
	}
	if len(out[0]) < n {
		return nil, fmt.Errorf(
			"interpolate: output array has length %d, but %d values are "+
				"evaluated: %w", len(out[0]), n, ErrShapeMismatch,
		)
	}
	return out[0], nil
}
