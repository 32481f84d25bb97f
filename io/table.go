/*The io package contains code for reading tables from disk and writing them
back out. It provides an abstract interface (TableReader) that allows the rest
of the code to read tables stored in different formats in the same way.

If you want to add a new table format (call it "my_format"), here's what that
looks like:

1. Make a file in this directory called my_format.go.

2. Make a struct in that file named "MyFormatReader" with a ReadTable method
that has the same type signature as the one in the TableReader interface. All
it needs to do is turn the file into a RawTable. The rows don't need to be
validated: Load does that for you.

3. Add a case for your format to NewReader() below, and add its name to the
reader types that the parse package knows about.

4. If you want to be able to convert tables into your format, write a
WriteMyFormat function next to the reader, and add a test that sends a table
through it and back.
*/
package io

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// TableReader reads the rows of a table out of a stream. Not threadsafe.
type TableReader interface {
	ReadTable(rd io.Reader) (*RawTable, error)
}

// RawTable is a table whose values haven't been converted to a value type.
type RawTable struct {
	// Header holds any dictionary entries stored alongside the rows.
	Header map[string]interface{}
	Rows   []RawRow
}

// RawRow is one row of a RawTable.
type RawRow struct {
	X    float64
	Cols []RawColumn
}

// RawColumn is one column of a RawRow. Val holds the components of the
// value.
type RawColumn struct {
	Y   float64
	Val []float64
}

// NewReader returns the reader described by src.
func NewReader(src interpolate.Source) (TableReader, error) {
	switch src.ReaderType {
	case parse.OpenFoam, "":
		return &FoamReader{}, nil
	case parse.CSV:
		return &CSVReader{HasHeaderLine: src.HasHeaderLine}, nil
	case parse.YAML:
		return &YAMLReader{}, nil
	}
	return nil, fmt.Errorf(
		"I don't know how to read tables of type '%s'.", src.ReaderType,
	)
}

// Decode converts the rows of raw into values of space.
func Decode[T any](raw *RawTable, space mat.Space[T]) ([]interpolate.Row[T], error) {
	rows := make([]interpolate.Row[T], len(raw.Rows))
	for i, r := range raw.Rows {
		rows[i].X = r.X
		rows[i].Cols = make([]interpolate.Column[T], len(r.Cols))
		for j, c := range r.Cols {
			v, err := space.FromComponents(c.Val)
			if err != nil {
				return nil, fmt.Errorf(
					"row %d (x = %g), column %d (y = %g): %w", i, r.X, j, c.Y, err,
				)
			}
			rows[i].Cols[j] = interpolate.Column[T]{Y: c.Y, Val: v}
		}
	}
	return rows, nil
}

// Encode flattens the rows of t into components. The header holds the
// table's fileName and outOfBounds entries.
func Encode[T any](t *interpolate.Table[T], space mat.Space[T]) *RawTable {
	raw := &RawTable{
		Header: map[string]interface{}{
			parse.FileNameKey:    t.Source().FileName,
			parse.OutOfBoundsKey: t.Bounds().String(),
		},
		Rows: make([]RawRow, t.Len()),
	}
	for i, r := range t.Rows() {
		raw.Rows[i].X = r.X
		raw.Rows[i].Cols = make([]RawColumn, len(r.Cols))
		for j, c := range r.Cols {
			raw.Rows[i].Cols[j] = RawColumn{Y: c.Y, Val: space.Components(c.Val)}
		}
	}
	return raw
}

// ReadRows reads the rows of a table stored in the format described by src.
func ReadRows[T any](
	rd io.Reader, src interpolate.Source, space mat.Space[T],
) ([]interpolate.Row[T], error) {
	reader, err := NewReader(src)
	if err != nil {
		return nil, err
	}
	raw, err := reader.ReadTable(rd)
	if err != nil {
		return nil, err
	}
	return Decode(raw, space)
}

// Load reads the table described by cfg and validates it. Options given
// here take precedence over the ones in cfg. If cfg doesn't set outOfBounds,
// an outOfBounds entry in the file's header is used instead.
func Load[T any](
	cfg *parse.TableConfig, space mat.Space[T], opts ...interpolate.Option,
) (*interpolate.Table[T], error) {
	fname := cfg.Source.FileName
	bs, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	reader, err := NewReader(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	raw, err := reader.ReadTable(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("I could not read the table %s: %w", fname, err)
	}
	rows, err := Decode(raw, space)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	base := cfg.Options()
	if word, ok := raw.Header[parse.OutOfBoundsKey].(string); ok && !cfg.BoundsSet {
		base = append(base, interpolate.WithBounds(
			interpolate.ParseBounds(word, logging.L()),
		))
	}

	t, err := interpolate.New[T](space, rows, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	logging.L().Debug("loaded table",
		zap.String("fileName", fname),
		zap.String("readerType", cfg.Source.ReaderType),
		zap.Int("rows", t.Len()),
		zap.Uint64("fileHash", xxhash.Sum64(bs)),
	)
	return t, nil
}
