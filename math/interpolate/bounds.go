package interpolate

import (
	"go.uber.org/zap"
)

// Bounds is the policy for queries which fall outside a table.
type Bounds int

const (
	// BoundsError fails out-of-bounds queries with a *DomainError.
	BoundsError Bounds = iota
	// BoundsWarn logs a warning and then extrapolates.
	BoundsWarn
	// BoundsExtrapolate silently extrapolates.
	BoundsExtrapolate
)

// String returns the configuration word for b. Unknown policies print as
// "warn", since that is what they would be read back as.
func (b Bounds) String() string {
	switch b {
	case BoundsError:
		return "error"
	case BoundsExtrapolate:
		return "extrapolate"
	}
	return "warn"
}

// ParseBounds converts a configuration word to a policy. Unrecognized words
// are logged and treated as "warn".
func ParseBounds(word string, log *zap.Logger) Bounds {
	switch word {
	case "error":
		return BoundsError
	case "warn":
		return BoundsWarn
	case "extrapolate":
		return BoundsExtrapolate
	}
	log.Warn("bad outOfBounds specifier, using 'warn'", zap.String("word", word))
	return BoundsWarn
}

// Bounds returns the table's out-of-bounds policy.
func (t *Table[T]) Bounds() Bounds { return t.bounds }

// SetBounds changes the table's out-of-bounds policy and returns the previous
// one.
func (t *Table[T]) SetBounds(b Bounds) Bounds {
	prev := t.bounds
	t.bounds = b
	return prev
}

// WithBounds runs fn with the table's policy set to b. The previous policy is
// restored when fn returns, fails, or panics.
func (t *Table[T]) WithBounds(b Bounds, fn func(t *Table[T]) error) error {
	prev := t.SetBounds(b)
	defer t.SetBounds(prev)
	return fn(t)
}

// checkDomain applies the policy b to a query x against the keys [lo, hi].
// Only BoundsError produces an error.
func checkDomain(
	b Bounds, log *zap.Logger, axis string, x, lo, hi float64,
) error {
	if x >= lo && x <= hi {
		return nil
	}
	upper, bound := x > hi, lo
	if upper {
		bound = hi
	}

	switch b {
	case BoundsError:
		return &DomainError{Axis: axis, Value: x, Bound: bound, Upper: upper}
	case BoundsWarn:
		msg := "value less than lower bound, extrapolating the first entries"
		if upper {
			msg = "value greater than upper bound, extrapolating the last entries"
		}
		log.Warn(msg,
			zap.String("axis", axis),
			zap.Float64("value", x),
			zap.Float64("bound", bound),
		)
	}
	return nil
}
