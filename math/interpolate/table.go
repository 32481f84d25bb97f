package interpolate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/mat"
)

// UndefinedFileName is the file name of tables which weren't read from a file.
const UndefinedFileName = "fileNameIsUndefined"

// Column is a single y-keyed value in a Row.
type Column[T any] struct {
	Y   float64
	Val T
}

// Row is an x-keyed slice of a table. Its columns must be sorted by Y. This is
// assumed, not checked.
type Row[T any] struct {
	X    float64
	Cols []Column[T]
}

// Source describes where a table came from. It is only used to reload and
// write tables.
type Source struct {
	FileName string
	// ReaderType names the reader used for FileName, e.g. "openFoam".
	ReaderType string
	// HasHeaderLine is true if FileName starts with a line which should be
	// skipped. Only used by the csv reader.
	HasHeaderLine bool
}

// Table is a two dimensional table of values sorted by strictly increasing
// row keys. A table with a single row is a one dimensional table over y.
//
// Tables are never modified after they are built. The operations in
// algebra.go return new tables.
type Table[T any] struct {
	rows   []Row[T]
	alg    mat.Algebra[T]
	bounds Bounds
	source Source
	null   bool
	log    *zap.Logger
}

type options struct {
	bounds Bounds
	source Source
	log    *zap.Logger
}

// Option configures a Table or a Linear interpolator.
type Option func(*options)

// WithBounds sets the out-of-bounds policy. The default is BoundsWarn.
func WithBounds(b Bounds) Option {
	return func(o *options) { o.bounds = b }
}

// WithSource records where the table was read from.
func WithSource(s Source) Option {
	return func(o *options) { o.source = s }
}

// WithLogger sets the logger used for diagnostics. The default is
// logging.L().
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func loadOptions(opts []Option) *options {
	o := &options{
		bounds: BoundsWarn,
		source: Source{FileName: UndefinedFileName},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logging.L()
	}
	return o
}

// New creates a table out of rows. New returns an error wrapping
// ErrEmptyTable if there are no rows or if a row has no columns, and an
// *OrderError if the row keys are not strictly increasing.
//
// The table takes ownership of rows.
func New[T any](
	alg mat.Algebra[T], rows []Row[T], opts ...Option,
) (*Table[T], error) {
	o := loadOptions(opts)
	t := &Table[T]{
		rows: rows, alg: alg, bounds: o.bounds, source: o.source, log: o.log,
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf(
			"table read from %s is empty: %w", o.source.FileName, ErrEmptyTable,
		)
	}
	for i := range rows {
		if len(rows[i].Cols) == 0 {
			return nil, fmt.Errorf(
				"row %d of table read from %s is empty: %w",
				i, o.source.FileName, ErrEmptyTable,
			)
		}
	}
	if err := t.CheckOrder(); err != nil {
		return nil, err
	}

	return t, nil
}

// Null creates an empty table which is flagged as the additive identity. It
// evaluates to zero everywhere.
func Null[T any](alg mat.Algebra[T], opts ...Option) *Table[T] {
	o := loadOptions(opts)
	return &Table[T]{
		alg: alg, bounds: o.bounds, source: o.source, log: o.log, null: true,
	}
}

// CheckOrder returns an *OrderError describing the first row key which is not
// strictly greater than the key before it.
func (t *Table[T]) CheckOrder() error {
	for i := 1; i < len(t.rows); i++ {
		if t.rows[i].X <= t.rows[i-1].X {
			return &OrderError{Index: i, Value: t.rows[i].X}
		}
	}
	return nil
}

// Rows returns the rows of the table. The returned slice must not be modified.
func (t *Table[T]) Rows() []Row[T] { return t.rows }

// Len returns the number of rows in the table.
func (t *Table[T]) Len() int { return len(t.rows) }

// IsNull returns true if the table is flagged as the additive identity.
func (t *Table[T]) IsNull() bool { return t.null }

// Source returns where the table was read from.
func (t *Table[T]) Source() Source { return t.source }

// Algebra returns the algebra of the table's values.
func (t *Table[T]) Algebra() mat.Algebra[T] { return t.alg }

// Equal returns true if both tables have identical keys and values. Bounds
// policies, sources, and null flags are not compared.
func (t *Table[T]) Equal(u *Table[T]) bool {
	if len(t.rows) != len(u.rows) {
		return false
	}
	for i := range t.rows {
		r1, r2 := t.rows[i], u.rows[i]
		if r1.X != r2.X || len(r1.Cols) != len(r2.Cols) {
			return false
		}
		for j := range r1.Cols {
			c1, c2 := r1.Cols[j], r2.Cols[j]
			if c1.Y != c2.Y || !t.alg.Equal(c1.Val, c2.Val) {
				return false
			}
		}
	}
	return true
}

// clone copies the table's structure. Values are shared, since algebras
// never modify them.
func (t *Table[T]) clone() *Table[T] {
	out := *t
	out.rows = make([]Row[T], len(t.rows))
	for i, row := range t.rows {
		out.rows[i].X = row.X
		out.rows[i].Cols = append([]Column[T](nil), row.Cols...)
	}
	return &out
}
