package interpolate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/math/calc"
	"github.com/phil-mansfield/tabular/math/mat"
)

// Linear is a one dimensional extrapolating interpolator over a sequence of
// columns sorted by Y.
type Linear[T any] struct {
	cols   []Column[T]
	alg    mat.Algebra[T]
	bounds Bounds
	log    *zap.Logger
}

// NewLinear creates a linear interpolator over cols. Only the WithBounds and
// WithLogger options have an effect.
func NewLinear[T any](
	alg mat.Algebra[T], cols []Column[T], opts ...Option,
) *Linear[T] {
	o := loadOptions(opts)
	return &Linear[T]{cols: cols, alg: alg, bounds: o.bounds, log: o.log}
}

// Eval returns the interpolated value at y.
func (lin *Linear[T]) Eval(y float64) (T, error) {
	return eval1D(lin.alg, lin.bounds, lin.log, lin.cols, y)
}

// EvalAll evaluates the interpolator at all the given y values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear[T]) EvalAll(ys []float64, out ...[]T) ([]T, error) {
	buf, err := outBuffer(len(ys), out)
	if err != nil {
		return nil, err
	}
	for i, y := range ys {
		v, err := lin.Eval(y)
		if err != nil {
			return nil, err
		}
		buf[i] = v
	}
	return buf, nil
}

// Eval1D evaluates cols as a one dimensional table at y using the table's
// algebra and bounds policy.
func (t *Table[T]) Eval1D(cols []Column[T], y float64) (T, error) {
	return eval1D(t.alg, t.bounds, t.log, cols, y)
}

// eval1D is the bracketed one dimensional evaluator. A single column is a
// constant. Queries which land exactly on a key return that key's value
// untouched.
func eval1D[T any](
	alg mat.Algebra[T], b Bounds, log *zap.Logger, cols []Column[T], y float64,
) (T, error) {
	n := len(cols)
	switch n {
	case 0:
		log.Warn("cannot interpolate an empty row, returning zero",
			zap.Error(ErrInsufficientData))
		return alg.Zero(), nil
	case 1:
		return cols[0].Val, nil
	}

	lo, hi := cols[0], cols[n-1]
	if y < lo.Y || y > hi.Y {
		if err := checkDomain(b, log, "y", y, lo.Y, hi.Y); err != nil {
			var zero T
			return zero, err
		}
		if y < lo.Y {
			next := cols[1]
			return calc.Lerp(alg, lo.Y, next.Y, lo.Val, next.Val, y), nil
		}
		prev := cols[n-2]
		return calc.Lerp(alg, hi.Y, prev.Y, hi.Val, prev.Val, y), nil
	}

	i := sort.Search(n, func(i int) bool { return cols[i].Y > y }) - 1
	if cols[i].Y == y || i == n-1 {
		return cols[i].Val, nil
	}
	c0, c1 := cols[i], cols[i+1]
	return calc.Lerp(alg, c0.Y, c1.Y, c0.Val, c1.Val, y), nil
}
