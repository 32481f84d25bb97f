package interpolate

import (
	"sort"
)

// searcher is a sequence of strictly increasing keys.
type searcher interface {
	Len() int
	Key(i int) float64
}

type rowKeys[T any] []Row[T]

func (r rowKeys[T]) Len() int          { return len(r) }
func (r rowKeys[T]) Key(i int) float64 { return r[i].X }

type colKeys[T any] []Column[T]

func (c colKeys[T]) Len() int          { return len(c) }
func (c colKeys[T]) Key(i int) float64 { return c[i].Y }

// bracket returns one side of the interpolation bracket around x. The forward
// side is the last key <= x, and the reverse side is the key after it. Points
// outside the keys are clamped so that the two sides always name a valid pair
// of indices to extrapolate from: the forward side never exceeds n-2 and the
// reverse side is never less than 1.
//
// bracket never reports bounds violations. That is up to its callers.
func bracket(s searcher, x float64, reverse bool) int {
	n := s.Len()
	if n < 2 {
		return 0
	}

	// Number of keys <= x.
	c := sort.Search(n, func(i int) bool { return s.Key(i) > x })

	if reverse {
		switch {
		case c == n:
			return n - 1
		case c <= 1:
			return 1
		}
		return c
	}

	switch {
	case c >= n-1:
		return n - 2
	case c == 0:
		return 0
	}
	return c - 1
}

// at returns column i of a row, clamping i to the row's last column. Rows
// with different numbers of columns are blended positionally, and this is how
// the shorter row is stretched.
func at[T any](cols []Column[T], i int) Column[T] {
	if i >= len(cols) {
		return cols[len(cols)-1]
	}
	return cols[i]
}
