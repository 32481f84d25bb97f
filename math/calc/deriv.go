/*package calc provides the basic calculus routines used by the table engine.
Every routine works on any value type with a mat.Algebra.
*/
package calc

import (
	"github.com/phil-mansfield/tabular/math/mat"
)

// Lerp evaluates the line through (x1, y1) and (x2, y2) at x:
//
//	y1 + (x - x1)/(x2 - x1) * (y2 - y1)
//
// x does not need to lie between x1 and x2, so Lerp also extrapolates.
func Lerp[T any](alg mat.Algebra[T], x1, x2 float64, y1, y2 T, x float64) T {
	return alg.Add(y1, alg.Scale((x-x1)/(x2-x1), alg.Sub(y2, y1)))
}

// Blend returns a + f*(b - a).
func Blend[T any](alg mat.Algebra[T], a, b T, f float64) T {
	return alg.Add(a, alg.Scale(f, alg.Sub(b, a)))
}

// BlendKey is Blend for coordinates.
func BlendKey(a, b, f float64) float64 {
	return a + f*(b-a)
}

// Slope computes the first-order finite difference (y2 - y1) / dx.
func Slope[T any](alg mat.Algebra[T], y1, y2 T, dx float64) T {
	return alg.Scale(1/dx, alg.Sub(y2, y1))
}
