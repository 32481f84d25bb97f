/*package rand provides the point generators used to probe tables: a fast
xorshift pseudo random number generator and a Sobol quasi random sequence.

Here are some usage examples:

	// Pseudo random points
	gen := New(1337)
	x := gen.Uniform(3, 7)

	// Multiple random floats (faster)
	xs := make([]float64, 100)
	gen.UniformAt(3, 7, xs)

	// Quasi random points which cover the unit square evenly
	seq := NewSobolSequence()
	p, err := seq.Next(2)
*/
package rand

import (
	"math"
	"time"
)

var xorshiftMaxUint = float64(math.MaxUint32)

// Generator is a xorshift random number generator. Not threadsafe.
type Generator struct {
	w, x, y, z uint32
}

// NewTimeSeed returns a new random number generator that uses the current
// time as the seed.
func NewTimeSeed() *Generator {
	return New(uint64(time.Now().UnixNano()))
}

// New returns a new random number generator.
func New(seed uint64) *Generator {
	return &Generator{
		x: 123456789, y: 362436069, z: 521288629, w: uint32(seed),
	}
}

// next returns a float in the range [0, 1).
func (gen *Generator) next() float64 {
	for {
		t := gen.x ^ (gen.x << 11)
		gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
		gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
		res := float64(math.MaxUint32-gen.w) / xorshiftMaxUint
		if res < 1 {
			return res
		}
	}
}

// Uniform returns a float uniformly at random within the range [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	return gen.next()*(high-low) + low
}

// UniformAt writes floats generated uniformly at random in the range
// [low, high) to every element in a target slice.
func (gen *Generator) UniformAt(low, high float64, target []float64) {
	for i := range target {
		target[i] = gen.next()*(high-low) + low
	}
}
