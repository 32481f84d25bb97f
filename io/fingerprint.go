package io

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
)

// Fingerprint hashes the keys and values of t. Tables with equal contents
// have equal fingerprints, regardless of their sources or bounds policies.
func Fingerprint[T any](t *interpolate.Table[T], space mat.Space[T]) uint64 {
	d := xxhash.New()
	buf := make([]byte, 8)
	put := func(x float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(x))
		d.Write(buf)
	}
	putLen := func(n int) {
		binary.LittleEndian.PutUint64(buf, uint64(n))
		d.Write(buf)
	}

	rows := t.Rows()
	putLen(len(rows))
	for _, row := range rows {
		put(row.X)
		putLen(len(row.Cols))
		for _, col := range row.Cols {
			put(col.Y)
			comps := space.Components(col.Val)
			putLen(len(comps))
			for _, c := range comps {
				put(c)
			}
		}
	}

	return d.Sum64()
}
