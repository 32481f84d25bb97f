package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	xs := make([]float64, 100)
	for i, j := range rand.Perm(len(xs)) {
		xs[i] = float64(j + 1)
	}
	orig := append([]float64{}, xs...)

	s := Summarize(xs, make([]float64, len(xs)))
	assert.Equal(t, Summary{Min: 1, Lo: 5, Median: 50, Hi: 95, Max: 100}, s)
	assert.Equal(t, orig, xs)

	assert.Equal(t, Summary{7, 7, 7, 7, 7}, Summarize([]float64{7}))
	assert.Equal(t, Summary{-1, -1, 2, 3, 3}, Summarize([]float64{3, -1, 2}))
	assert.Panics(t, func() { Summarize(nil) })
	assert.Panics(t, func() { Summarize(xs, make([]float64, 3)) })
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	tests := []struct {
		p, want float64
	}{
		{0, 1},
		{0.25, 1},
		{0.3, 2},
		{0.5, 2},
		{0.75, 3},
		{1, 4},
	}

	for i, test := range tests {
		assert.Equal(t, test.want, Percentile(sorted, test.p), "%d) p = %g", i, test.p)
	}
	assert.Panics(t, func() { Percentile(sorted, 1.5) })
}
