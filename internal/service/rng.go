package service

import "math/rand"

// Rand is the single randomness seam for the negotiation pipeline. Everything
// random - stance draws, price jitter, template picks, termination odds -
// goes through it so tests can substitute deterministic sequences.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

type seededRand struct {
	src *rand.Rand
}

// NewRand returns a Rand backed by math/rand with the given seed.
func NewRand(seed int64) Rand {
	return &seededRand{src: rand.New(rand.NewSource(seed))}
}

func (r *seededRand) Float64() float64 { return r.src.Float64() }
func (r *seededRand) Intn(n int) int   { return r.src.Intn(n) }

// weightedPick returns an index drawn from the given weights. Weights must be
// non-negative with a positive sum; on a degenerate input the last index wins.
func weightedPick(rng Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return len(weights) - 1
	}
	roll := rng.Float64() * total
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// pickString draws one entry from a non-empty slice.
func pickString(rng Rand, items []string) string {
	return items[rng.Intn(len(items))]
}
