package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
)

// CSVReader reads tables with one column per line:
//
//	x, y, value components...
//
// Consecutive lines with the same x belong to the same row. Lines starting
// with '#' are ignored.
type CSVReader struct {
	HasHeaderLine bool
}

// ReadTable reads a table of comma-separated values.
func (r *CSVReader) ReadTable(rd io.Reader) (*RawTable, error) {
	cr := csv.NewReader(rd)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	raw := &RawTable{Header: map[string]interface{}{}}
	skipped := !r.HasHeaderLine
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if !skipped {
			skipped = true
			continue
		}

		if len(rec) < 3 {
			return nil, fmt.Errorf(
				"I could not parse line %d of the table because it has %d "+
					"fields, but I need at least three (x, y, and a value).",
				line, len(rec),
			)
		}

		vals := make([]float64, len(rec))
		for i := range rec {
			vals[i], err = strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf(
					"I could not parse line %d of the table because field "+
						"%d, '%s', isn't a number.", line, i+1, rec[i],
				)
			}
		}

		x, col := vals[0], RawColumn{Y: vals[1], Val: vals[2:]}
		n := len(raw.Rows)
		if n == 0 || raw.Rows[n-1].X != x {
			raw.Rows = append(raw.Rows, RawRow{X: x})
			n++
		}
		raw.Rows[n-1].Cols = append(raw.Rows[n-1].Cols, col)
	}

	return raw, nil
}

// WriteCSV writes t in the format read by CSVReader. If header is true, a
// header line naming the fields is written first.
func WriteCSV[T any](
	wr io.Writer, t *interpolate.Table[T], space mat.Space[T], header bool,
) error {
	raw := Encode(t, space)
	cw := csv.NewWriter(wr)

	if header {
		rec := []string{"x", "y"}
		if len(raw.Rows) > 0 {
			nv := len(raw.Rows[0].Cols[0].Val)
			if nv == 1 {
				rec = append(rec, "value")
			} else {
				for i := 0; i < nv; i++ {
					rec = append(rec, fmt.Sprintf("value%d", i))
				}
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	for _, row := range raw.Rows {
		for _, col := range row.Cols {
			rec := []string{formatFloat(row.X), formatFloat(col.Y)}
			for _, v := range col.Val {
				rec = append(rec, formatFloat(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
