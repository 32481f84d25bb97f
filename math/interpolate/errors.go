package interpolate

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a table is built from zero rows.
	ErrEmptyTable = errors.New("interpolate: table is empty")
	// ErrOutOfOrder is returned when the row keys of a table are not
	// strictly increasing. Errors matching it are *OrderError values.
	ErrOutOfOrder = errors.New("interpolate: out-of-order value")
	// ErrOutOfDomain is returned for queries outside a table under the
	// BoundsError policy. Errors matching it are *DomainError values.
	ErrOutOfDomain = errors.New("interpolate: value out of bounds")
	// ErrShapeMismatch is returned when the operands of a table operation
	// have different shapes. Errors from the algebra which match it are
	// *ShapeError values. EvalAll also returns it for inputs and outputs of
	// different lengths.
	ErrShapeMismatch = errors.New("interpolate: table shapes differ")
	// ErrInsufficientData is attached to diagnostics for evaluations which
	// cannot be performed because the table is too small. It is never
	// returned.
	ErrInsufficientData = errors.New("interpolate: not enough data")
)

// OrderError reports the first row key which is not greater than the key
// before it.
type OrderError struct {
	Index int
	Value float64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf(
		"interpolate: out-of-order value %g at index %d", e.Value, e.Index,
	)
}

func (e *OrderError) Unwrap() error { return ErrOutOfOrder }

// DomainError reports a query outside a table's keys.
type DomainError struct {
	// Axis is "x" for row keys and "y" for column keys.
	Axis  string
	Value float64
	Bound float64
	// Upper is true if Bound is the upper bound of the table.
	Upper bool
}

func (e *DomainError) Error() string {
	if e.Upper {
		return fmt.Sprintf(
			"interpolate: %s value (%g) greater than upper bound (%g)",
			e.Axis, e.Value, e.Bound,
		)
	}
	return fmt.Sprintf(
		"interpolate: %s value (%g) less than lower bound (%g)",
		e.Axis, e.Value, e.Bound,
	)
}

func (e *DomainError) Unwrap() error { return ErrOutOfDomain }

// ShapeError reports operands with different shapes. Row is -1 if the tables
// have different numbers of rows; otherwise Left and Right are the column
// counts of that row.
type ShapeError struct {
	Op          string
	Row         int
	Left, Right int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf(
			"interpolate: attempt to %s tables with different sizes "+
				"(%d rows and %d rows)", e.Op, e.Left, e.Right,
		)
	}
	return fmt.Sprintf(
		"interpolate: attempt to %s tables with different sizes "+
			"(row %d has %d columns and %d columns)",
		e.Op, e.Row, e.Left, e.Right,
	)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }
