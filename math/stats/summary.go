/*package stats summarizes the order statistics of samples taken from a
table.*/
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the order statistics of a sample. Lo and Hi are the 5th and
// 95th percentiles.
type Summary struct {
	Min, Lo, Median, Hi, Max float64
}

// Summarize computes the order statistics of a non-empty slice. xs is not
// modified. An optional buffer slice of the same size may be supplied to
// prevent unneeded heap allocations.
func Summarize(xs []float64, buf ...[]float64) Summary {
	if len(xs) == 0 {
		panic("xs empty in call to Summarize(xs)")
	}

	var sorted []float64
	if len(buf) == 0 {
		sorted = make([]float64, len(xs))
	} else {
		sorted = buf[0]
		if len(sorted) != len(xs) {
			panic("Length of buffer does not equal length of input array.")
		}
	}
	copy(sorted, xs)
	sort.Float64s(sorted)

	return Summary{
		Min:    sorted[0],
		Lo:     Percentile(sorted, 0.05),
		Median: Percentile(sorted, 0.5),
		Hi:     Percentile(sorted, 0.95),
		Max:    sorted[len(sorted)-1],
	}
}

// Percentile returns the smallest element of a sorted, non-empty slice which
// is at least a fraction p of the slice. p must be in the range [0, 1].
func Percentile(sorted []float64, p float64) float64 {
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
