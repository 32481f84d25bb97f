package interpolate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T, vals ...float64) *Table[float64] {
	t.Helper()
	rows := []Row[float64]{
		{X: 0, Cols: cols(0, vals[0], 1, vals[1])},
		{X: 1, Cols: cols(0, vals[2], 1, vals[3])},
	}
	tab, err := New[float64](scalars, rows)
	require.NoError(t, err)
	return tab
}

func TestAdd(t *testing.T) {
	a, ones := square(t, 1, 2, 3, 4), square(t, 1, 1, 1, 1)

	sum, err := Add(a, ones)
	require.NoError(t, err)
	assert.True(t, sum.Equal(square(t, 2, 3, 4, 5)))
	assert.False(t, sum.IsNull())

	// Operands are untouched.
	assert.True(t, a.Equal(square(t, 1, 2, 3, 4)))

	v, err := sum.Eval(0.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, v, 1e-12)
}

func TestAddShapes(t *testing.T) {
	short, err := New[float64](scalars, keyRows(0, 1))
	require.NoError(t, err)
	long, err := New[float64](scalars, keyRows(0, 1, 2))
	require.NoError(t, err)

	_, err = Add(short, long)
	require.ErrorIs(t, err, ErrShapeMismatch)
	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, -1, se.Row)
	assert.Equal(t, 2, se.Left)
	assert.Equal(t, 3, se.Right)

	// Row counts are checked even for null tables.
	_, err = Add(Scale(0, short), long)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// b may not have fewer columns than a.
	narrow, err := New[float64](scalars, []Row[float64]{
		{X: 0, Cols: cols(0, 1, 1, 2)},
		{X: 1, Cols: cols(0, 3)},
	})
	require.NoError(t, err)
	_, err = Add(square(t, 1, 2, 3, 4), narrow)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Row)
	assert.Equal(t, 2, se.Left)
	assert.Equal(t, 1, se.Right)
}

func TestScale(t *testing.T) {
	a := square(t, 1, 2, 3, 4)

	assert.True(t, Scale(1, a).Equal(a))
	assert.True(t, Scale(2, a).Equal(square(t, 2, 4, 6, 8)))
	assert.True(t, Scale(-0.5, a).Equal(square(t, -0.5, -1, -1.5, -2)))

	zero := Scale(0, a)
	assert.True(t, zero.IsNull())
	assert.Equal(t, a.Len(), zero.Len())
	assert.False(t, a.IsNull())

	// Null tables are copied rather than scaled.
	assert.True(t, Scale(3, zero).IsNull())
}

func TestAddIdentity(t *testing.T) {
	a, u := square(t, 1, 2, 3, 4), square(t, 5, -6, 7, 0.5)
	zero := Scale(0, a)

	sum, err := Add(zero, u)
	require.NoError(t, err)
	assert.True(t, sum.Equal(u))

	sum, err = Add(u, zero)
	require.NoError(t, err)
	assert.True(t, sum.Equal(u))

	sum, err = Add(zero, zero)
	require.NoError(t, err)
	assert.True(t, sum.IsNull())
}

func TestAddNullKeepsOperand(t *testing.T) {
	src := Source{FileName: "u.dat", ReaderType: "csv", HasHeaderLine: true}
	u, err := New[float64](scalars, []Row[float64]{
		{X: 0, Cols: cols(0, 5, 1, -6)},
		{X: 1, Cols: cols(0, 7, 1, 0.5)},
	}, WithBounds(BoundsExtrapolate), WithSource(src))
	require.NoError(t, err)
	zero := Scale(0, square(t, 1, 2, 3, 4))

	tests := []struct {
		name string
		a, b *Table[float64]
	}{
		{"null + u", zero, u},
		{"u + null", u, zero},
	}

	for _, test := range tests {
		sum, err := Add(test.a, test.b)
		require.NoError(t, err, test.name)
		assert.True(t, sum.Equal(u), test.name)
		assert.False(t, sum.IsNull(), test.name)
		assert.Equal(t, BoundsExtrapolate, sum.Bounds(), test.name)
		assert.Equal(t, src, sum.Source(), test.name)

		// The result is a copy.
		sum.Rows()[0].Cols[0].Val = 100
		assert.Equal(t, 5.0, u.Rows()[0].Cols[0].Val, test.name)
		sum.SetBounds(BoundsError)
		assert.Equal(t, BoundsExtrapolate, u.Bounds(), test.name)
	}
}

func TestSubtract(t *testing.T) {
	a, b := square(t, 5, 5, 5, 5), square(t, 1, 2, 3, 4)

	diff, err := Subtract(a, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(square(t, 4, 3, 2, 1)))

	// Null tables are subtracted like any other table.
	zero := Scale(0, a)
	diff, err = Subtract(zero, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(square(t, -1, -2, -3, -4)))
	assert.True(t, diff.IsNull())

	diff, err = Subtract(b, zero)
	require.NoError(t, err)
	assert.True(t, diff.Equal(b))
	assert.False(t, diff.IsNull())

	_, err = Subtract(a, Null[float64](scalars))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDifference(t *testing.T) {
	a, b := square(t, 1, 2, 3, 4), square(t, 1, 1, 1, 1)

	diff, err := Difference(2, a, 3, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(square(t, 1, -1, -3, -5)))
}

func TestMix(t *testing.T) {
	a, b := square(t, 1, 2, 3, 4), square(t, 3, 2, 1, 0)

	mix, err := Mix([]float64{0.25, 0.75}, []*Table[float64]{a, b})
	require.NoError(t, err)
	assert.True(t, mix.Equal(square(t, 2.5, 2, 1.5, 1)))

	mix, err = Mix([]float64{1}, []*Table[float64]{a})
	require.NoError(t, err)
	assert.True(t, mix.Equal(a))

	_, err = Mix(nil, []*Table[float64]{})
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = Mix([]float64{1}, []*Table[float64]{a, b})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	short, err := New[float64](scalars, keyRows(0, 1, 2))
	require.NoError(t, err)
	_, err = Mix([]float64{1, 1}, []*Table[float64]{a, short})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
