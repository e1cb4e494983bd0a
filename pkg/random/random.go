// Package random provides uniform samplers for terrain generation.
package random

import "math/rand/v2"

// Sampler returns independent samples uniformly distributed in [0, 1).
type Sampler func() float32

// New creates a deterministic sampler backed by a PCG source seeded with seed.
func New(seed uint64) Sampler {
	r := rand.New(rand.NewPCG(seed, 0))
	return r.Float32
}

// Default returns a sampler backed by the auto-seeded global source.
func Default() Sampler {
	return rand.Float32
}

// Constant returns a sampler that always yields v.
func Constant(v float32) Sampler {
	return func() float32 { return v }
}

// Sequence returns a sampler that yields values in order and then repeats them.
// An empty sequence behaves like Constant(0).
func Sequence(values ...float32) Sampler {
	i := 0
	return func() float32 {
		if len(values) == 0 {
			return 0
		}
		v := values[i%len(values)]
		i++
		return v
	}
}

// Counting wraps s and reports how many samples have been drawn.
func Counting(s Sampler) (Sampler, func() int) {
	n := 0
	counted := func() float32 {
		n++
		return s()
	}
	return counted, func() int { return n }
}
