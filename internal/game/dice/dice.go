// Package dice provides the randomness abstraction for the duel combat engine.
package dice

//go:generate mockgen -destination=mock/mock_source.go -package=dicemock github.com/cory-johannsen/duel/internal/game/dice Source

// Source is the randomness provider for every combat draw.
//
// Each call consumes exactly one draw from the underlying generator.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random value in [0, 1).
	Float64() float64
}

// Between returns a uniform random int in the inclusive range [lo, hi].
// A range with hi < lo collapses to lo.
//
// Postcondition: lo <= result <= max(lo, hi); exactly one Intn draw is consumed.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance draws one value and reports whether it falls below p.
//
// Postcondition: p <= 0 never succeeds; p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Clamp bounds v to [lo, hi].
//
// Precondition: lo <= hi.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
