package interpolate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/math/calc"
)

// span is the pair of rows which bound a query's x value.
type span[T any] struct {
	x0, x1     int
	dx, f      float64
	row0, row1 []Column[T]
}

// flat is true if both rows are functions of x alone.
func (s *span[T]) flat() bool {
	return len(s.row0) == 1 && len(s.row1) == 1
}

// yRange returns the union of the column brackets of y in both rows.
func (s *span[T]) yRange(y float64) (lo, hi int) {
	k0, k1 := colKeys[T](s.row0), colKeys[T](s.row1)
	lo = min(bracket(k0, y, false), bracket(k1, y, false))
	hi = max(bracket(k0, y, true), bracket(k1, y, true))
	return lo, hi
}

// key returns the key of column i of the virtual row blended between the two
// rows.
func (s *span[T]) key(i int) float64 {
	return calc.BlendKey(at(s.row0, i).Y, at(s.row1, i).Y, s.f)
}

// index returns the position within [lo, hi] of the last virtual column whose
// key is less than y, leaving room for the column after it.
func (s *span[T]) index(lo, hi int, y float64) int {
	k := 0
	for i := lo; i <= hi; i++ {
		if s.key(i) < y {
			k = i - lo
		}
	}
	if k > hi-lo-1 {
		k = hi - lo - 1
	}
	return max(k, 0)
}

// span finds the rows bounding x and applies the bounds policy to x. The
// table must have at least two rows.
func (t *Table[T]) span(x float64) (*span[T], error) {
	n := len(t.rows)
	err := checkDomain(t.bounds, t.log, "x", x, t.rows[0].X, t.rows[n-1].X)
	if err != nil {
		return nil, err
	}

	keys := rowKeys[T](t.rows)
	s := &span[T]{x0: bracket(keys, x, false), x1: bracket(keys, x, true)}
	r0, r1 := t.rows[s.x0], t.rows[s.x1]
	s.row0, s.row1 = r0.Cols, r1.Cols
	s.dx = r1.X - r0.X
	s.f = (x - r0.X) / s.dx
	return s, nil
}

// checkY applies the bounds policy to y against the first and last keys of
// the virtual row.
func (t *Table[T]) checkY(s *span[T], y float64) error {
	n0, n1 := len(s.row0), len(s.row1)
	lo := calc.BlendKey(s.row0[0].Y, s.row1[0].Y, s.f)
	hi := calc.BlendKey(s.row0[n0-1].Y, s.row1[n1-1].Y, s.f)
	return checkDomain(t.bounds, t.log, "y", y, lo, hi)
}

// Eval evaluates the table at (x, y).
//
// The two rows which bound x are blended column-by-column into a virtual row,
// and the virtual row is then interpolated at y. This is exact when both rows
// share the same y keys. Rows with different keys are blended by column
// index, not by key.
//
// The bounds policy is applied to x against the first and last row keys and
// to y against the ends of the virtual row. Multi-row tables are checked just
// like single-row ones, so under BoundsError a query outside the table fails
// instead of being extrapolated.
func (t *Table[T]) Eval(x, y float64) (T, error) {
	var zero T
	switch len(t.rows) {
	case 0:
		t.log.Warn("cannot extrapolate a zero-sized table, returning zero",
			zap.Error(ErrInsufficientData))
		return t.alg.Zero(), nil
	case 1:
		return t.Eval1D(t.rows[0].Cols, y)
	}

	s, err := t.span(x)
	if err != nil {
		return zero, err
	}
	if s.flat() {
		return calc.Blend(t.alg, s.row0[0].Val, s.row1[0].Val, s.f), nil
	}
	if err := t.checkY(s, y); err != nil {
		return zero, err
	}

	lo, hi := s.yRange(y)
	i := lo + s.index(lo, hi, y)
	v0 := calc.Blend(t.alg, at(s.row0, i).Val, at(s.row1, i).Val, s.f)
	v1 := calc.Blend(t.alg, at(s.row0, i+1).Val, at(s.row1, i+1).Val, s.f)
	return calc.Lerp(t.alg, s.key(i), s.key(i+1), v0, v1, y), nil
}

// EvalAll evaluates the table at all the given (x, y) values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used. xs and
// ys must have the same length, and the output array must be at least that
// long.
func (t *Table[T]) EvalAll(xs, ys []float64, out ...[]T) ([]T, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolate: %d x values but %d y values: %w",
			len(xs), len(ys), ErrShapeMismatch)
	}
	buf, err := outBuffer(len(xs), out)
	if err != nil {
		return nil, err
	}
	for i := range xs {
		v, err := t.Eval(xs[i], ys[i])
		if err != nil {
			return nil, err
		}
		buf[i] = v
	}
	return buf, nil
}

// DerivX estimates the derivative of the table along x at (x, y).
//
// The bracket is located on the virtual row exactly as in Eval, but the
// difference is taken between the lower row's value at the bracket's first
// column and the upper row's value at its second column. The mixed
// difference is intentional and must be preserved.
func (t *Table[T]) DerivX(x, y float64) (T, error) {
	var zero T
	if len(t.rows) <= 1 {
		t.log.Warn(
			"cannot differentiate a zero- or one-sized table, returning zero",
			zap.Error(ErrInsufficientData),
		)
		return t.alg.Zero(), nil
	}

	s, err := t.span(x)
	if err != nil {
		return zero, err
	}
	if s.flat() {
		return calc.Slope(t.alg, s.row0[0].Val, s.row1[0].Val, s.dx), nil
	}
	if err := t.checkY(s, y); err != nil {
		return zero, err
	}

	lo, hi := s.yRange(y)
	i := lo + s.index(lo, hi, y)
	return calc.Slope(t.alg, at(s.row0, i).Val, at(s.row1, i+1).Val, s.dx), nil
}
