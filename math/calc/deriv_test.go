package calc

import (
	"testing"

	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	s := mat.Scalars{}
	tests := []struct {
		x1, x2, y1, y2, x, want float64
	}{
		{0, 1, 0, 1, 0.5, 0.5},
		{0, 1, 0, 1, -1, -1},
		{0, 1, 0, 1, 2, 2},
		{1, 3, 10, 20, 2, 15},
		{3, 1, 20, 10, 4, 25},
	}

	for i, test := range tests {
		got := Lerp[float64](s, test.x1, test.x2, test.y1, test.y2, test.x)
		assert.InDelta(t, test.want, got, 1e-12, "%d) Lerp(%+v)", i, test)
	}
}

func TestBlend(t *testing.T) {
	v := mat.Vectors{Dim: 2}
	got := Blend[[]float64](v, []float64{0, 10}, []float64{2, 20}, 0.25)
	assert.Equal(t, []float64{0.5, 12.5}, got)
	assert.Equal(t, 1.5, BlendKey(1, 3, 0.25))
}

func TestSlope(t *testing.T) {
	s := mat.Scalars{}
	assert.Equal(t, 2.0, Slope[float64](s, 1, 5, 2))
	assert.Equal(t, -4.0, Slope[float64](s, 5, 1, 1))
}
