package interpolate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/math/mat"
)

func plane(x, y float64) float64 { return 10*x + y }

func TestBracket(t *testing.T) {
	keys := colKeys[float64](cols(0, 0, 1, 0, 2, 0, 3, 0))

	tests := []struct {
		x        float64
		fwd, rev int
	}{
		{-1, 0, 1},
		{0, 0, 1},
		{0.5, 0, 1},
		{1, 1, 2},
		{1.5, 1, 2},
		{2, 2, 3},
		{2.5, 2, 3},
		{3, 2, 3},
		{4, 2, 3},
	}

	for i, test := range tests {
		assert.Equal(t, test.fwd, bracket(keys, test.x, false), "%d) fwd %g", i, test.x)
		assert.Equal(t, test.rev, bracket(keys, test.x, true), "%d) rev %g", i, test.x)
	}

	one := colKeys[float64](cols(5, 1))
	assert.Equal(t, 0, bracket(one, 0, false))
	assert.Equal(t, 0, bracket(one, 10, true))
}

func TestEvalSingleRow(t *testing.T) {
	rows := []Row[float64]{{X: 5, Cols: cols(0, 10, 1, 20)}}
	tab, err := New[float64](scalars, rows, WithBounds(BoundsError))
	require.NoError(t, err)

	for _, x := range []float64{-1e6, 0, 5, 17} {
		v, err := tab.Eval(x, 0.5)
		require.NoError(t, err)
		assert.Equal(t, 15.0, v, "Eval(%g, 0.5)", x)
	}

	_, err = tab.Eval(5, 2)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestEvalPlane(t *testing.T) {
	tab := grid(t, []float64{0, 1, 3}, []float64{0, 1, 2, 4}, plane,
		WithBounds(BoundsError))

	tests := []struct{ x, y float64 }{
		{0, 0}, {1, 2}, {3, 4}, {0.5, 1.5}, {2, 3}, {0.25, 0.75},
		{2.9, 3.9}, {1, 0.5}, {0.5, 4},
	}

	for i, test := range tests {
		v, err := tab.Eval(test.x, test.y)
		require.NoError(t, err, "%d)", i)
		assert.InDelta(t, plane(test.x, test.y), v, 1e-12,
			"%d) Eval(%g, %g)", i, test.x, test.y)
	}
}

func TestEvalGridPoints(t *testing.T) {
	f := func(x, y float64) float64 { return x*x + 3*y*y - x*y }
	xs, ys := []float64{-1, 0, 0.5, 2}, []float64{0, 0.3, 1, 5}
	tab := grid(t, xs, ys, f, WithBounds(BoundsError))

	for _, x := range xs {
		for _, y := range ys {
			v, err := tab.Eval(x, y)
			require.NoError(t, err)
			assert.InDelta(t, f(x, y), v, 1e-12, "Eval(%g, %g)", x, y)
		}
	}
}

func TestEvalExtrapolate(t *testing.T) {
	tab := grid(t, []float64{0, 1}, []float64{0, 1, 2}, plane,
		WithBounds(BoundsExtrapolate))

	tests := []struct{ x, y float64 }{
		{2, 3}, {-1, 1}, {0.5, -1}, {-2, -2}, {5, 0.5},
	}
	for i, test := range tests {
		v, err := tab.Eval(test.x, test.y)
		require.NoError(t, err, "%d)", i)
		assert.InDelta(t, plane(test.x, test.y), v, 1e-12,
			"%d) Eval(%g, %g)", i, test.x, test.y)
	}

	tab.SetBounds(BoundsError)
	_, err := tab.Eval(2, 1)
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "x", de.Axis)
	assert.True(t, de.Upper)

	_, err = tab.Eval(0.5, -1)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "y", de.Axis)
	assert.False(t, de.Upper)
	assert.Equal(t, 0.0, de.Bound)
}

func TestEvalWarn(t *testing.T) {
	log, logs := observed()
	tab := grid(t, []float64{0, 1}, []float64{0, 1}, plane,
		WithBounds(BoundsWarn), WithLogger(log))

	v, err := tab.Eval(-1, 2)
	require.NoError(t, err)
	assert.InDelta(t, plane(-1, 2), v, 1e-12)
	assert.Equal(t, 2, logs.Len())
}

func TestEvalSingleColumnRows(t *testing.T) {
	rows := []Row[float64]{
		{X: 0, Cols: cols(0, 1)},
		{X: 2, Cols: cols(0, 3)},
		{X: 3, Cols: cols(0, 7)},
	}
	tab, err := New[float64](scalars, rows, WithBounds(BoundsError))
	require.NoError(t, err)

	for _, y := range []float64{-5, 0, 5} {
		v, err := tab.Eval(1, y)
		require.NoError(t, err)
		assert.Equal(t, 2.0, v)

		d, err := tab.DerivX(1, y)
		require.NoError(t, err)
		assert.Equal(t, 1.0, d)

		d, err = tab.DerivX(2.5, y)
		require.NoError(t, err)
		assert.Equal(t, 4.0, d)
	}
}

func TestEvalMismatchedRows(t *testing.T) {
	rows := []Row[float64]{
		{X: 0, Cols: cols(0, 0, 1, 1, 2, 2)},
		{X: 1, Cols: cols(0, 10, 1, 11)},
	}
	tab, err := New[float64](scalars, rows, WithBounds(BoundsError))
	require.NoError(t, err)

	v, err := tab.Eval(0.5, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, v, 1e-12)

	v, err = tab.Eval(0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, v, 1e-12)
}

func TestEvalVectors(t *testing.T) {
	vecs := mat.Vectors{Dim: 2}
	rows := []Row[[]float64]{
		{X: 0, Cols: []Column[[]float64]{{0, []float64{0, 0}}, {1, []float64{1, -1}}}},
		{X: 2, Cols: []Column[[]float64]{{0, []float64{2, 4}}, {1, []float64{3, 3}}}},
	}
	tab, err := New[[]float64](vecs, rows, WithBounds(BoundsError))
	require.NoError(t, err)

	v, err := tab.Eval(1, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, 1.5}, v, 1e-12)
}

func TestEvalAll(t *testing.T) {
	tab := grid(t, []float64{0, 1}, []float64{0, 1}, plane,
		WithBounds(BoundsError))

	out, err := tab.EvalAll([]float64{0, 0.5, 1}, []float64{1, 0.5, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 5.5, 10}, out, 1e-12)

	_, err = tab.EvalAll([]float64{0, 2}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrOutOfDomain)

	buf := make([]float64, 2)
	out, err = tab.EvalAll([]float64{0, 1}, []float64{0, 1}, buf)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 11}, buf, 1e-12)
	assert.Equal(t, buf, out)

	tests := []struct {
		xs, ys []float64
		out    [][]float64
	}{
		{[]float64{0, 0.5}, []float64{0}, nil},
		{[]float64{0}, []float64{0, 0.5}, nil},
		{[]float64{0, 0.5}, []float64{0, 0.5}, [][]float64{make([]float64, 1)}},
	}
	for i, test := range tests {
		_, err := tab.EvalAll(test.xs, test.ys, test.out...)
		assert.ErrorIs(t, err, ErrShapeMismatch, "%d)", i)
	}
}

func TestDerivX(t *testing.T) {
	tab := grid(t, []float64{0, 1}, []float64{0, 1, 2}, plane,
		WithBounds(BoundsError))

	// The difference runs from the lower row's first bracket column to the
	// upper row's second bracket column.
	tests := []struct{ x, y, want float64 }{
		{0.5, 1.5, (12 - 1) / 1.0},
		{0.5, 0.5, (11 - 0) / 1.0},
		{0.5, 0, (11 - 0) / 1.0},
		{0.25, 2, (12 - 1) / 1.0},
	}

	for i, test := range tests {
		d, err := tab.DerivX(test.x, test.y)
		require.NoError(t, err, "%d)", i)
		assert.InDelta(t, test.want, d, 1e-12, "%d) DerivX(%g, %g)", i, test.x, test.y)
	}

	_, err := tab.DerivX(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestDerivXMismatchedRows(t *testing.T) {
	rows := []Row[float64]{
		{X: 0, Cols: cols(0, 0, 1, 1, 2, 2)},
		{X: 1, Cols: cols(0, 10, 1, 11)},
	}
	tab, err := New[float64](scalars, rows, WithBounds(BoundsError))
	require.NoError(t, err)

	// Past the end of the shorter row, its last column stands in.
	tests := []struct{ x, y, want float64 }{
		{0.5, 1.5, (11 - 1) / 1.0},
		{0.5, 0.5, (11 - 0) / 1.0},
		{0.25, 1.75, (11 - 1) / 1.0},
	}

	for i, test := range tests {
		d, err := tab.DerivX(test.x, test.y)
		require.NoError(t, err, "%d)", i)
		assert.InDelta(t, test.want, d, 1e-12, "%d) DerivX(%g, %g)", i, test.x, test.y)
	}
}

func TestDerivXWarn(t *testing.T) {
	log, logs := observed()
	tab := grid(t, []float64{0, 1}, []float64{0, 1, 2}, plane,
		WithBounds(BoundsWarn), WithLogger(log))

	tests := []struct {
		x, y, want float64
		axis       string
	}{
		{2, 0.5, (11 - 0) / 1.0, "x"},
		{-1, 0.5, (11 - 0) / 1.0, "x"},
		{0.5, 3, (12 - 1) / 1.0, "y"},
		{0.5, -1, (11 - 0) / 1.0, "y"},
	}

	for i, test := range tests {
		before := logs.Len()
		d, err := tab.DerivX(test.x, test.y)
		require.NoError(t, err, "%d)", i)
		assert.InDelta(t, test.want, d, 1e-12, "%d) DerivX(%g, %g)", i, test.x, test.y)

		entries := logs.All()[before:]
		require.Len(t, entries, 1, "%d)", i)
		assert.Equal(t, test.axis, entries[0].ContextMap()["axis"], "%d)", i)
	}
}

func TestDerivXDegenerate(t *testing.T) {
	log, logs := observed()
	rows := []Row[float64]{{X: 0, Cols: cols(0, 1, 1, 2)}}
	tab, err := New[float64](scalars, rows, WithLogger(log))
	require.NoError(t, err)

	d, err := tab.DerivX(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = Null[float64](scalars, WithLogger(log)).DerivX(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	assert.Equal(t, 2, logs.FilterMessageSnippet("differentiate").Len())
}

func TestConcurrentEval(t *testing.T) {
	tab := grid(t, []float64{0, 1, 2}, []float64{0, 1, 2}, plane,
		WithBounds(BoundsExtrapolate), WithLogger(zap.NewNop()))

	done := make(chan float64)
	for i := 0; i < 8; i++ {
		go func(i int) {
			v, _ := tab.Eval(float64(i)/4, 1.5)
			done <- v - plane(float64(i)/4, 1.5)
		}(i)
	}
	for i := 0; i < 8; i++ {
		assert.InDelta(t, 0.0, <-done, 1e-12)
	}
}
