package nn

import (
	"math"
	"math/rand/v2"
)

const (
	// weightScale widens the Xavier range for weights. With the textbook
	// bound a 5-layer sigmoid stack starts with every XOR output near 0.5
	// and sits on the 0.25 loss plateau. The wider spread makes that less
	// likely but does not rule it out.
	weightScale = 2.0

	// biasScale keeps biases an order of magnitude below the Xavier bound.
	biasScale = 0.1
)

// XavierLimit returns the Xavier (Glorot) uniform bound sqrt(6/(fanIn+fanOut)).
func XavierLimit(fanIn, fanOut int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+fanOut))
}

// uniform draws from U(-1, 1).
func uniform(rng *rand.Rand) float64 {
	//nolint:gosec // weight initialization is not security-critical
	return rng.Float64()*2 - 1
}

// initWeight draws a weight value from the 2x scaled Xavier distribution:
//
//	U(-1, 1) * sqrt(6/(fanIn+fanOut)) * 2
func initWeight(rng *rand.Rand, fanIn, fanOut int) float64 {
	return uniform(rng) * XavierLimit(fanIn, fanOut) * weightScale
}

// initBias draws a small bias value:
//
//	U(-1, 1) * sqrt(6/(fanIn+fanOut)) * 0.1
//
// Construction and reinitialization share this formula.
func initBias(rng *rand.Rand, fanIn, fanOut int) float64 {
	return uniform(rng) * XavierLimit(fanIn, fanOut) * biasScale
}

// Option configures a Network at construction time.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed makes initialization deterministic. Two networks built with the
// same architecture and seed start from identical weights and biases.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand uses r for construction and every later Reinitialize call.
// The Network takes ownership of r; do not share it between networks that
// are trained concurrently.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

func defaultRand() *rand.Rand {
	//nolint:gosec // weight initialization is not security-critical
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
