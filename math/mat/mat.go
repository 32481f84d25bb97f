/*package mat contains the value algebras that tables are generic over. An
algebra knows how to add, subtract, and scale values of one type, and a codec
knows how to flatten those values into components for storage.

Algebras never modify their operands: every operation returns a new value, so
tables may share values between copies.
*/
package mat

import (
	"fmt"
)

// Algebra is the set of operations a table needs from its value type.
type Algebra[T any] interface {
	// Zero returns the additive identity.
	Zero() T
	// Add returns a + b.
	Add(a, b T) T
	// Sub returns a - b.
	Sub(a, b T) T
	// Scale returns s * a.
	Scale(s float64, a T) T
	// Equal returns true if a and b hold identical components.
	Equal(a, b T) bool
}

// Codec converts values to and from flat component lists.
type Codec[T any] interface {
	// Components returns the components of v in storage order.
	Components(v T) []float64
	// FromComponents builds a value out of its components.
	FromComponents(c []float64) (T, error)
	// Len returns the number of components in a value, or -1 if values may
	// have any length.
	Len() int
}

// Space is an Algebra which can also be stored.
type Space[T any] interface {
	Algebra[T]
	Codec[T]
}

var (
	_ Space[float64]   = Scalars{}
	_ Space[[]float64] = Vectors{}
)

// Scalars is the algebra of float64 values.
type Scalars struct{}

func (Scalars) Zero() float64                  { return 0 }
func (Scalars) Add(a, b float64) float64       { return a + b }
func (Scalars) Sub(a, b float64) float64       { return a - b }
func (Scalars) Scale(s, a float64) float64     { return s * a }
func (Scalars) Equal(a, b float64) bool        { return a == b }
func (Scalars) Components(v float64) []float64 { return []float64{v} }
func (Scalars) Len() int                       { return 1 }

func (Scalars) FromComponents(c []float64) (float64, error) {
	if len(c) != 1 {
		return 0, fmt.Errorf(
			"I expected a scalar value, but was given %d components.", len(c),
		)
	}
	return c[0], nil
}
