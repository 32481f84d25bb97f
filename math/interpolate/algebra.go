package interpolate

import (
	"fmt"
)

// Add returns the elementwise sum of two tables. Values are paired up by
// position, not by key, so both tables should share the same grid.
//
// The tables must have the same number of rows, even if one of them is null.
// If a is null, a copy of b is returned, and vice versa. Otherwise the result
// takes its policy and source from a.
func Add[T any](a, b *Table[T]) (*Table[T], error) {
	if err := sameLen("sum", a, b); err != nil {
		return nil, err
	}
	if a.null {
		return b.clone(), nil
	} else if b.null {
		return a.clone(), nil
	}

	out, err := zip("sum", a, b, a.alg.Add)
	if err != nil {
		return nil, err
	}
	out.null = false
	return out, nil
}

// Subtract returns the elementwise difference a - b. Unlike Add, null tables
// get no special treatment: their values are subtracted like any other. The
// result is null only if a is.
func Subtract[T any](a, b *Table[T]) (*Table[T], error) {
	if err := sameLen("subtract", a, b); err != nil {
		return nil, err
	}
	return zip("subtract", a, b, a.alg.Sub)
}

// Scale returns s * a. Scaling by one or scaling a null table returns a copy
// of a. Scaling by zero returns a null table which still has a's grid, so it
// can be added to tables of the same shape later.
func Scale[T any](s float64, a *Table[T]) *Table[T] {
	out := a.clone()
	if s == 1 || a.null {
		return out
	}

	for i := range out.rows {
		cols := out.rows[i].Cols
		for j := range cols {
			cols[j].Val = a.alg.Scale(s, cols[j].Val)
		}
	}
	if s == 0 {
		out.null = true
	}
	return out
}

// Difference returns wb*b - wa*a.
func Difference[T any](wa float64, a *Table[T], wb float64, b *Table[T]) (*Table[T], error) {
	return Subtract(Scale(wb, b), Scale(wa, a))
}

// Mix returns the weighted sum of tables, e.g. the property table of a
// mixture given the mass fractions of its components. All the tables must
// share the same grid.
func Mix[T any](weights []float64, tables []*Table[T]) (*Table[T], error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("cannot mix zero tables: %w", ErrEmptyTable)
	} else if len(weights) != len(tables) {
		return nil, fmt.Errorf(
			"given %d weights for %d tables: %w",
			len(weights), len(tables), ErrShapeMismatch,
		)
	}

	out := Scale(weights[0], tables[0])
	for i := 1; i < len(tables); i++ {
		var err error
		out, err = Add(out, Scale(weights[i], tables[i]))
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return out, nil
}

func sameLen[T any](op string, a, b *Table[T]) error {
	if len(a.rows) != len(b.rows) {
		return &ShapeError{Op: op, Row: -1, Left: len(a.rows), Right: len(b.rows)}
	}
	return nil
}

// zip applies f to every pair of values in a and b. b's rows may be longer
// than a's, but not shorter.
func zip[T any](op string, a, b *Table[T], f func(x, y T) T) (*Table[T], error) {
	for i := range a.rows {
		na, nb := len(a.rows[i].Cols), len(b.rows[i].Cols)
		if nb < na {
			return nil, &ShapeError{Op: op, Row: i, Left: na, Right: nb}
		}
	}

	out := a.clone()
	for i := range out.rows {
		cols, other := out.rows[i].Cols, b.rows[i].Cols
		for j := range cols {
			cols[j].Val = f(cols[j].Val, other[j].Val)
		}
	}
	return out, nil
}
